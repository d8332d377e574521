package rest

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"listing-feed-service/internal/contextkeys"
	"listing-feed-service/internal/core/port"
	"listing-feed-service/internal/core/port/usecases_port"
)

type MessagingHandler struct {
	getConversationsUC usecases_port.GetConversationsUseCase
	getMessagesUC      usecases_port.GetMessagesUseCase
	sendMessageUC      usecases_port.SendMessageUseCase
	listPendingUC      usecases_port.ListPendingUseCase
	acceptPendingUC    usecases_port.AcceptPendingUseCase
	ignorePendingUC    usecases_port.IgnorePendingUseCase
}

func NewMessagingHandler(
	getConversationsUC usecases_port.GetConversationsUseCase,
	getMessagesUC usecases_port.GetMessagesUseCase,
	sendMessageUC usecases_port.SendMessageUseCase,
	listPendingUC usecases_port.ListPendingUseCase,
	acceptPendingUC usecases_port.AcceptPendingUseCase,
	ignorePendingUC usecases_port.IgnorePendingUseCase,
) *MessagingHandler {
	return &MessagingHandler{
		getConversationsUC: getConversationsUC,
		getMessagesUC:      getMessagesUC,
		sendMessageUC:      sendMessageUC,
		listPendingUC:      listPendingUC,
		acceptPendingUC:    acceptPendingUC,
		ignorePendingUC:    ignorePendingUC,
	}
}

// GetConversations handles GET /api/v1/conversations
func (h *MessagingHandler) GetConversations(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	selfID := contextkeys.UserIDFromContext(r.Context())

	feed, err := h.getConversationsUC.Execute(r.Context())
	if err != nil {
		logger.Error("conversation fetch failed", err, nil)
		respondWithDomainError(w, err)
		return
	}
	out := make([]conversationDTO, 0, len(feed.Conversations))
	for _, c := range feed.Conversations {
		out = append(out, toConversationDTO(c, selfID))
	}
	resp := map[string]interface{}{"conversations": out, "total": len(out)}
	if feed.Informational {
		resp["notice"] = "Showing recently saved conversations. Live data is temporarily unavailable."
	}
	RespondWithJSON(w, http.StatusOK, resp)
}

// GetMessages handles GET /api/v1/conversations/{conversationID}/messages
func (h *MessagingHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	conversationID := chi.URLParam(r, "conversationID")
	if conversationID == "" {
		WriteJSONError(w, http.StatusBadRequest, "conversation id is required")
		return
	}

	history, err := h.getMessagesUC.Execute(r.Context(), conversationID)
	if err != nil {
		logger.Error("message fetch failed", err, port.Fields{"conversation_id": conversationID})
		respondWithDomainError(w, err)
		return
	}
	resp := map[string]interface{}{"groups": toMessageGroupDTOs(history.Groups)}
	if history.Informational {
		resp["notice"] = "Showing recently saved messages. Live data is temporarily unavailable."
	}
	RespondWithJSON(w, http.StatusOK, resp)
}

// SendMessage handles POST /api/v1/conversations/{conversationID}/messages
func (h *MessagingHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	conversationID := chi.URLParam(r, "conversationID")
	if conversationID == "" {
		WriteJSONError(w, http.StatusBadRequest, "conversation id is required")
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		WriteJSONError(w, http.StatusBadRequest, "message content is required")
		return
	}

	receipt, err := h.sendMessageUC.Execute(r.Context(), conversationID, req.Content)
	if err != nil {
		logger.Error("message send failed", err, port.Fields{"conversation_id": conversationID})
		respondWithDomainError(w, err)
		return
	}

	status := http.StatusCreated
	if receipt.Queued {
		// delivery deferred, not completed
		status = http.StatusAccepted
	}
	RespondWithJSON(w, status, sendMessageResponse{
		Message: messageDTO{
			ID:             receipt.Message.ID,
			ConversationID: receipt.Message.ConversationID,
			SenderID:       receipt.Message.SenderID,
			Content:        receipt.Message.Content,
			Read:           receipt.Message.Read,
			CreatedAt:      receipt.Message.CreatedAt,
		},
		Queued: receipt.Queued,
		Notice: receipt.Notice,
	})
}

// ListPendingMessages handles GET /api/v1/pending-messages
func (h *MessagingHandler) ListPendingMessages(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	userID := contextkeys.UserIDFromContext(r.Context())

	pending, err := h.listPendingUC.Execute(r.Context(), userID)
	if err != nil {
		logger.Error("pending list failed", err, nil)
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"pending": toPendingMessageDTOs(pending),
		"total":   len(pending),
	})
}

// AcceptPendingMessage handles POST /api/v1/pending-messages/{messageID}/accept
func (h *MessagingHandler) AcceptPendingMessage(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	userID := contextkeys.UserIDFromContext(r.Context())

	messageID := chi.URLParam(r, "messageID")
	if messageID == "" {
		WriteJSONError(w, http.StatusBadRequest, "message id is required")
		return
	}

	conversation, err := h.acceptPendingUC.Execute(r.Context(), userID, messageID)
	if err != nil {
		logger.Error("pending accept failed", err, port.Fields{"message_id": messageID})
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"conversation": toConversationDTO(*conversation, userID),
	})
}

// IgnorePendingMessage handles POST /api/v1/pending-messages/{messageID}/ignore
func (h *MessagingHandler) IgnorePendingMessage(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	userID := contextkeys.UserIDFromContext(r.Context())

	messageID := chi.URLParam(r, "messageID")
	if messageID == "" {
		WriteJSONError(w, http.StatusBadRequest, "message id is required")
		return
	}

	if err := h.ignorePendingUC.Execute(r.Context(), userID, messageID); err != nil {
		logger.Error("pending ignore failed", err, port.Fields{"message_id": messageID})
		respondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
