package domain

import (
	"math/rand"
	"testing"
)

func TestNormalizeOfferingType(t *testing.T) {
	cases := []struct {
		raw  string
		want OfferingType
	}{
		{"rent", OfferingForRent},
		{"For Rent", OfferingForRent},
		{"for-rent", OfferingForRent},
		{"LET", OfferingForRent},
		{"sale", OfferingForSale},
		{"sell", OfferingForSale},
		{"", OfferingForSale},
		{"mystery", OfferingForSale},
	}
	for _, tc := range cases {
		if got := NormalizeOfferingType(tc.raw); got != tc.want {
			t.Fatalf("NormalizeOfferingType(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestAddressDisplayLabel(t *testing.T) {
	a := Address{Street: "Bole Road", City: "Addis Ababa", Country: "Ethiopia"}
	if got := a.DisplayLabel(); got != "Bole Road, Addis Ababa, Ethiopia" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestAddressDisplayLabelEmptyFallsBack(t *testing.T) {
	if got := (Address{}).DisplayLabel(); got != UnknownLocation {
		t.Fatalf("empty address should render %q, got %q", UnknownLocation, got)
	}
	if got := (Address{City: "   "}).DisplayLabel(); got != UnknownLocation {
		t.Fatalf("whitespace-only address should render %q, got %q", UnknownLocation, got)
	}
}

func TestDeduplicateListingsKeepsFirstSeenOrder(t *testing.T) {
	in := []Listing{
		{ID: "1", Title: "first"},
		{ID: "2", Title: "second"},
		{ID: "1", Title: "duplicate of first"},
		{ID: "3", Title: "third"},
	}
	got := DeduplicateListings(in)
	if len(got) != 3 {
		t.Fatalf("expected 3 unique listings, got %d", len(got))
	}
	if got[0].Title != "first" || got[1].Title != "second" || got[2].Title != "third" {
		t.Fatalf("first-seen order not preserved: %+v", got)
	}
}

func TestDeduplicateListingsIsIdempotent(t *testing.T) {
	in := []Listing{{ID: "1"}, {ID: "2"}, {ID: "1"}}
	once := DeduplicateListings(in)
	twice := DeduplicateListings(once)
	if len(once) != len(twice) {
		t.Fatalf("second pass changed the result: %d vs %d", len(once), len(twice))
	}
}

func TestDeduplicateListingsKeepsIDLessRecords(t *testing.T) {
	in := []Listing{{Title: "no id A"}, {Title: "no id B"}, {ID: "1"}}
	got := DeduplicateListings(in)
	if len(got) != 3 {
		t.Fatalf("id-less records must all survive, got %d of 3", len(got))
	}
}

func TestShuffleListingsKeepsAllElements(t *testing.T) {
	in := []Listing{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}}
	ShuffleListings(in, rand.New(rand.NewSource(42)))

	seen := make(map[string]bool, len(in))
	for _, l := range in {
		seen[l.ID] = true
	}
	for _, id := range []string{"1", "2", "3", "4"} {
		if !seen[id] {
			t.Fatalf("listing %s lost during shuffle", id)
		}
	}
}

func TestIsPlaceholderRecord(t *testing.T) {
	empty := &Listing{
		Media: []Media{{URL: PlaceholderImages[0]}},
	}
	if !IsPlaceholderRecord(empty) {
		t.Fatalf("empty-form record should be detected as placeholder")
	}
	if !IsPlaceholderRecord(nil) {
		t.Fatalf("nil record should count as placeholder")
	}

	real := &Listing{Title: "Villa in Bole"}
	if IsPlaceholderRecord(real) {
		t.Fatalf("titled record must not be a placeholder")
	}
	priced := &Listing{Price: Price{Amount: 100}}
	if IsPlaceholderRecord(priced) {
		t.Fatalf("priced record must not be a placeholder")
	}
	located := &Listing{Address: Address{City: "Adama"}}
	if IsPlaceholderRecord(located) {
		t.Fatalf("located record must not be a placeholder")
	}
	withRealMedia := &Listing{Media: []Media{{URL: "/uploads/real-photo.jpg"}}}
	if IsPlaceholderRecord(withRealMedia) {
		t.Fatalf("record with non-placeholder media must not be a placeholder")
	}
}
