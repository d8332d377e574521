package domain

import (
	"math/rand"
	"strings"
	"time"
)

// OfferingType is the canonical deal type of a listing.
type OfferingType string

const (
	OfferingForSale OfferingType = "For Sale"
	OfferingForRent OfferingType = "For Rent"
)

// NormalizeOfferingType maps the raw spellings the upstream API has used over
// time ("sale", "rent", "sell", "let", "For Rent", ...) onto the canonical pair.
// Anything unrecognized is treated as a sale listing.
func NormalizeOfferingType(raw string) OfferingType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "rent", "let", "for rent", "for-rent":
		return OfferingForRent
	default:
		return OfferingForSale
	}
}

// Address is the canonical location of a listing.
type Address struct {
	Street        string
	City          string
	SubCity       string
	RegionalState string
	Country       string
}

// UnknownLocation is the terminal fallback when no recognized address field
// is present on a raw record.
const UnknownLocation = "Unknown Location"

// DisplayLabel joins the non-empty address parts for rendering. An address
// with no parts at all yields UnknownLocation.
func (a Address) DisplayLabel() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Street, a.SubCity, a.City, a.RegionalState, a.Country} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	if len(parts) == 0 {
		return UnknownLocation
	}
	return strings.Join(parts, ", ")
}

// Media is one image attached to a listing.
type Media struct {
	URL     string
	Caption string
}

// PlaceholderImages are substituted when a record carries no media at all.
// The URLs are fixed assets served by the marketplace CDN.
var PlaceholderImages = []string{
	"/uploads/test-property-image-1194bc7e-9a9f-4e84-b57b-e0acbc97061.jpg",
	"/uploads/1732445144652-804218492-genMid.731631728_27_0.jpg",
	"/uploads/1732445144652-804218492-genMid.731631728_14_0.jpg",
}

// Listing is the canonical property record used everywhere above the
// upstream adapters. Raw upstream payloads are mapped into this shape once,
// at the adapter boundary.
type Listing struct {
	ID           string
	Title        string
	Description  string
	PropertyType string
	OfferingType OfferingType
	Price        Price
	Address      Address
	Bedrooms     int
	Bathrooms    int
	AreaSize     float64
	AreaUnit     string
	Media        []Media
	Amenities    []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DeduplicateListings returns one entry per unique id, preserving first-seen
// order. Records with an empty id are kept as-is and never deduplicated
// against each other; the upstream occasionally emits such records and the
// feed tolerates them rather than dropping data.
func DeduplicateListings(in []Listing) []Listing {
	seen := make(map[string]struct{}, len(in))
	out := make([]Listing, 0, len(in))
	for _, l := range in {
		if l.ID == "" {
			out = append(out, l)
			continue
		}
		if _, dup := seen[l.ID]; dup {
			continue
		}
		seen[l.ID] = struct{}{}
		out = append(out, l)
	}
	return out
}

// ShuffleListings shuffles in place. The mixed homepage feed is shuffled so
// sale and rent results interleave instead of appearing as two blocks.
func ShuffleListings(ls []Listing, r *rand.Rand) {
	r.Shuffle(len(ls), func(i, j int) {
		ls[i], ls[j] = ls[j], ls[i]
	})
}

// IsPlaceholderRecord reports whether a resolved record consists entirely of
// the empty-form defaults. Such a record means the source technically answered
// but has nothing real for this id, and the caller should keep walking the
// fallback chain. The exact constants mirror the upstream's empty form, so
// keep them in sync when the upstream changes.
func IsPlaceholderRecord(l *Listing) bool {
	if l == nil {
		return true
	}
	if l.Title != "" || l.Description != "" {
		return false
	}
	if l.Price.Amount != 0 {
		return false
	}
	if l.Address.DisplayLabel() != UnknownLocation {
		return false
	}
	for _, m := range l.Media {
		if !isPlaceholderImage(m.URL) {
			return false
		}
	}
	return true
}

func isPlaceholderImage(url string) bool {
	for _, p := range PlaceholderImages {
		if url == p {
			return true
		}
	}
	return false
}
