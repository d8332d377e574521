package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"listing-feed-service/internal/contextkeys"
	"listing-feed-service/internal/contracts"
	"listing-feed-service/internal/core/domain"
	"listing-feed-service/internal/core/port"
)

// FetchListings pulls one offering type's feed and normalizes it. Records
// that fail schema validation are skipped, not fatal; an unusable envelope
// is ErrMalformedResponse so the fallback chain can advance.
func (c *Client) FetchListings(ctx context.Context, offering domain.OfferingType) ([]domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "MarketplaceClient",
		"method":    "FetchListings",
		"offering":  string(offering),
	})

	u := fmt.Sprintf("%s/api/properties?offeringType=%s", c.baseURL, url.QueryEscape(string(offering)))
	logger.Debug("Sending request to marketplace API", port.Fields{"url": u})

	body, err := c.get(ctx, u)
	if err != nil {
		logger.Error("Marketplace request failed", err, nil)
		return nil, err
	}

	raws, err := decodeRecords(body)
	if err != nil {
		logger.Error("Failed to decode listings payload", err, nil)
		return nil, err
	}

	listings := make([]domain.Listing, 0, len(raws))
	skipped := 0
	for _, raw := range raws {
		encoded, _ := json.Marshal(raw)
		if err := contracts.ValidateListingPayload(encoded); err != nil {
			skipped++
			logger.Warn("Skipping listing that failed schema validation", port.Fields{"error": err.Error()})
			continue
		}
		listings = append(listings, toDomainListing(raw))
	}

	logger.Info("Fetched and normalized listings", port.Fields{
		"count":   len(listings),
		"skipped": skipped,
	})
	return listings, nil
}

// FetchListingByID resolves one listing. A payload that fails schema
// validation is ErrMalformedResponse.
func (c *Client) FetchListingByID(ctx context.Context, id string) (*domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "MarketplaceClient",
		"method":     "FetchListingByID",
		"listing_id": id,
	})

	u := fmt.Sprintf("%s/api/properties/%s", c.baseURL, url.PathEscape(id))
	logger.Debug("Sending request to marketplace API", port.Fields{"url": u})

	body, err := c.get(ctx, u)
	if err != nil {
		logger.Error("Marketplace request failed", err, nil)
		return nil, err
	}

	raw, err := decodeRecord(body)
	if err != nil {
		return nil, err
	}
	encoded, _ := json.Marshal(raw)
	if err := contracts.ValidateListingPayload(encoded); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	listing := toDomainListing(raw)
	return &listing, nil
}

// FetchAgents pulls the agent directory.
func (c *Client) FetchAgents(ctx context.Context) ([]domain.Agent, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "MarketplaceClient",
		"method":    "FetchAgents",
	})

	body, err := c.get(ctx, c.baseURL+"/api/agents")
	if err != nil {
		logger.Error("Marketplace request failed", err, nil)
		return nil, err
	}

	raws, err := decodeRecords(body)
	if err != nil {
		return nil, err
	}

	agents := make([]domain.Agent, 0, len(raws))
	for _, raw := range raws {
		agents = append(agents, toDomainAgent(raw))
	}
	logger.Info("Fetched agents", port.Fields{"count": len(agents)})
	return agents, nil
}
