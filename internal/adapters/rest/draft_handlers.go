package rest

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"listing-feed-service/internal/contextkeys"
	"listing-feed-service/internal/core/port"
	"listing-feed-service/internal/core/port/usecases_port"
)

// drafts are bounded form payloads, not uploads
const maxDraftBytes = 256 * 1024

type DraftHandler struct {
	getDraftUC  usecases_port.GetDraftUseCase
	saveDraftUC usecases_port.SaveDraftUseCase
}

func NewDraftHandler(getDraftUC usecases_port.GetDraftUseCase, saveDraftUC usecases_port.SaveDraftUseCase) *DraftHandler {
	return &DraftHandler{getDraftUC: getDraftUC, saveDraftUC: saveDraftUC}
}

// GetDraft handles GET /api/v1/drafts/{draftID}
func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	userID := contextkeys.UserIDFromContext(r.Context())

	draftID := chi.URLParam(r, "draftID")
	if draftID == "" {
		WriteJSONError(w, http.StatusBadRequest, "draft id is required")
		return
	}

	payload, source, err := h.getDraftUC.Execute(r.Context(), userID, draftID)
	if err != nil {
		logger.Error("draft load failed", err, port.Fields{"draft_id": draftID})
		respondWithDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Draft-Source", source)
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

// SaveDraft handles PUT /api/v1/drafts/{draftID}
func (h *DraftHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	userID := contextkeys.UserIDFromContext(r.Context())

	draftID := chi.URLParam(r, "draftID")
	if draftID == "" {
		WriteJSONError(w, http.StatusBadRequest, "draft id is required")
		return
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxDraftBytes+1))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if len(payload) > maxDraftBytes {
		WriteJSONError(w, http.StatusRequestEntityTooLarge, "draft payload is too large")
		return
	}

	if err := h.saveDraftUC.Execute(r.Context(), userID, draftID, payload); err != nil {
		logger.Error("draft save failed", err, port.Fields{"draft_id": draftID})
		respondWithDomainError(w, err)
		return
	}
	// the write is debounced, acceptance is all we can promise
	w.WriteHeader(http.StatusAccepted)
}
