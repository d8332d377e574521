// Package mockdata serves the bundled sample data used as the terminal tier
// of every fallback chain. It is loaded once from embedded JSON and can
// never fail at runtime, which is what guarantees chains terminate.
package mockdata

import (
	_ "embed"
	"encoding/json"
	"log"

	"listing-feed-service/internal/core/domain"
)

//go:embed samples/listings.json
var listingsJSON []byte

//go:embed samples/empty_draft.json
var emptyDraftJSON []byte

// SampleData implements port.SampleDataPort.
type SampleData struct {
	listings []domain.Listing
}

// sampleRecord mirrors the sample file layout, which deliberately uses the
// current upstream schema (nested address and price).
type sampleRecord struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	PropertyType string `json:"propertyType"`
	OfferingType string `json:"offeringType"`
	Price        struct {
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	} `json:"price"`
	Address struct {
		Street        string `json:"street"`
		SubCity       string `json:"sub_city"`
		City          string `json:"city"`
		RegionalState string `json:"regional_state"`
		Country       string `json:"country"`
	} `json:"address"`
	Bedrooms   int      `json:"bedrooms"`
	Bathrooms  int      `json:"bathrooms"`
	AreaSize   float64  `json:"area_size"`
	AreaUnit   string   `json:"area_unit"`
	MediaPaths []string `json:"media_paths"`
	Amenities  []string `json:"amenities"`
	CreatedAt  string   `json:"created_at"`
}

func NewSampleData() *SampleData {
	var records []sampleRecord
	if err := json.Unmarshal(listingsJSON, &records); err != nil {
		// embedded data is part of the binary; failing to parse it is a
		// build defect, not a runtime condition
		log.Fatalf("failed to parse embedded sample listings: %v", err)
	}

	s := &SampleData{listings: make([]domain.Listing, 0, len(records))}
	for _, r := range records {
		s.listings = append(s.listings, r.toDomain())
	}
	return s
}

func (r sampleRecord) toDomain() domain.Listing {
	l := domain.Listing{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		PropertyType: r.PropertyType,
		OfferingType: domain.NormalizeOfferingType(r.OfferingType),
		Price:        domain.Price{Amount: r.Price.Amount, Currency: r.Price.Currency},
		Address: domain.Address{
			Street:        r.Address.Street,
			SubCity:       r.Address.SubCity,
			City:          r.Address.City,
			RegionalState: r.Address.RegionalState,
			Country:       r.Address.Country,
		},
		Bedrooms:  r.Bedrooms,
		Bathrooms: r.Bathrooms,
		AreaSize:  r.AreaSize,
		AreaUnit:  r.AreaUnit,
		Amenities: r.Amenities,
	}
	for _, path := range r.MediaPaths {
		l.Media = append(l.Media, domain.Media{URL: path})
	}
	l.CreatedAt, _ = parseSampleTime(r.CreatedAt)
	l.UpdatedAt = l.CreatedAt
	return l
}

// SampleFeed returns a copy of the bundled feed.
func (s *SampleData) SampleFeed() []domain.Listing {
	out := make([]domain.Listing, len(s.listings))
	copy(out, s.listings)
	return out
}

// SampleListing returns the sample with the given id, or the first sample
// re-keyed to the requested id so the caller always gets a renderable record.
func (s *SampleData) SampleListing(id string) *domain.Listing {
	for _, l := range s.listings {
		if l.ID == id {
			cp := l
			return &cp
		}
	}
	cp := s.listings[0]
	cp.ID = id
	return &cp
}

// EmptyDraft returns the empty property-edit form payload.
func (s *SampleData) EmptyDraft() []byte {
	out := make([]byte, len(emptyDraftJSON))
	copy(out, emptyDraftJSON)
	return out
}
