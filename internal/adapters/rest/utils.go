package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"listing-feed-service/internal/core/domain"
)

// WriteJSONError sends a JSON body with an "error" field and the given status.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// RespondWithJSON sends the payload as a JSON response.
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithDomainError maps domain sentinel errors onto HTTP statuses.
func respondWithDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		WriteJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		WriteJSONError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrNetworkUnavailable):
		WriteJSONError(w, http.StatusBadGateway, "upstream service is unreachable")
	case errors.Is(err, domain.ErrServer), errors.Is(err, domain.ErrMalformedResponse):
		WriteJSONError(w, http.StatusBadGateway, "upstream service failed")
	default:
		WriteJSONError(w, http.StatusInternalServerError, "internal error")
	}
}
