package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"listing-feed-service/internal/contextkeys"
	"listing-feed-service/internal/core/domain"
	"listing-feed-service/internal/core/port"
	"listing-feed-service/internal/core/port/usecases_port"
)

type ListingHandler struct {
	getHomeFeedUC      usecases_port.GetHomeFeedUseCase
	findListingsUC     usecases_port.FindListingsUseCase
	resolveListingUC   usecases_port.ResolveListingUseCase
	getFilterOptionsUC usecases_port.GetFilterOptionsUseCase
	getAgentsUC        usecases_port.GetAgentsUseCase
}

func NewListingHandler(
	getHomeFeedUC usecases_port.GetHomeFeedUseCase,
	findListingsUC usecases_port.FindListingsUseCase,
	resolveListingUC usecases_port.ResolveListingUseCase,
	getFilterOptionsUC usecases_port.GetFilterOptionsUseCase,
	getAgentsUC usecases_port.GetAgentsUseCase,
) *ListingHandler {
	return &ListingHandler{
		getHomeFeedUC:      getHomeFeedUC,
		findListingsUC:     findListingsUC,
		resolveListingUC:   resolveListingUC,
		getFilterOptionsUC: getFilterOptionsUC,
		getAgentsUC:        getAgentsUC,
	}
}

// GetHomeFeed handles GET /api/v1/home-feed
func (h *ListingHandler) GetHomeFeed(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	listings, err := h.getHomeFeedUC.Execute(r.Context())
	if err != nil {
		logger.Error("home feed failed", err, nil)
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"listings": toListingDTOs(listings),
		"total":    len(listings),
	})
}

// FindListings handles GET /api/v1/listings
func (h *ListingHandler) FindListings(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	criteria := domain.ParseFilterCriteria(r.URL.Query())
	result, err := h.findListingsUC.Execute(r.Context(), criteria)
	if err != nil {
		logger.Error("listing search failed", err, nil)
		respondWithDomainError(w, err)
		return
	}
	resp := map[string]interface{}{
		"listings": toListingDTOs(result.Listings),
		"total":    len(result.Listings),
		"applied":  criteria.QueryValues().Encode(),
	}
	if result.Informational {
		resp["notice"] = "Showing sample data. Live search results are temporarily unavailable."
	}
	RespondWithJSON(w, http.StatusOK, resp)
}

// GetListingDetails handles GET /api/v1/listings/{listingID}
func (h *ListingHandler) GetListingDetails(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	listingID := chi.URLParam(r, "listingID")
	if listingID == "" {
		WriteJSONError(w, http.StatusBadRequest, "listing id is required")
		return
	}

	resolved, err := h.resolveListingUC.Execute(r.Context(), listingID)
	if err != nil {
		logger.Warn("listing resolution failed", port.Fields{"listing_id": listingID, "error": err.Error()})
		respondWithDomainError(w, err)
		return
	}

	resp := listingDetailsResponse{
		Listing: toListingDTO(*resolved.Listing),
		Source:  resolved.Source,
	}
	if resolved.Informational {
		resp.Notice = "Showing sample data. Live listing details are temporarily unavailable."
	}
	RespondWithJSON(w, http.StatusOK, resp)
}

// GetFilterOptions handles GET /api/v1/filters/options
func (h *ListingHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.getFilterOptionsUC.Execute(r.Context())
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	sortKeys := make([]string, 0, len(options.SortKeys))
	for _, k := range options.SortKeys {
		sortKeys = append(sortKeys, string(k))
	}
	RespondWithJSON(w, http.StatusOK, filterOptionsDTO{
		RegionalStates: options.RegionalStates,
		PriceRanges:    options.PriceRanges,
		PropertyTypes:  options.PropertyTypes,
		CountBuckets:   options.CountBuckets,
		SortKeys:       sortKeys,
	})
}

// GetAgents handles GET /api/v1/agents
func (h *ListingHandler) GetAgents(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	agents, err := h.getAgentsUC.Execute(r.Context())
	if err != nil {
		logger.Error("agent directory fetch failed", err, nil)
		respondWithDomainError(w, err)
		return
	}
	out := make([]agentDTO, 0, len(agents))
	for _, a := range agents {
		out = append(out, agentDTO{
			ID:             a.ID,
			Name:           a.Name,
			Phone:          a.Phone,
			Email:          a.Email,
			Region:         a.Region,
			Specialization: a.Specialization,
			Rating:         a.Rating,
			Verified:       a.Verified,
		})
	}
	RespondWithJSON(w, http.StatusOK, map[string]interface{}{"agents": out, "total": len(out)})
}

// BuildMortgageSchedule handles POST /api/v1/mortgage/schedule. The
// computation is pure, so no use case sits in between.
func (h *ListingHandler) BuildMortgageSchedule(w http.ResponseWriter, r *http.Request) {
	var req mortgageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	schedule, err := domain.BuildMortgageSchedule(domain.MortgageInput{
		Principal:     req.Principal,
		AnnualRatePct: req.AnnualRatePct,
		TermYears:     req.TermYears,
		DownPayment:   req.DownPayment,
	})
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toMortgageScheduleDTO(schedule))
}
