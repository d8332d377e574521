package marketplace

import (
	"testing"
	"time"
)

func TestFirstStringPrefersEarlierKeys(t *testing.T) {
	raw := rawRecord{"title": "canonical", "subject": "legacy"}
	if got := raw.firstString("title", "subject"); got != "canonical" {
		t.Fatalf("expected the first candidate key to win, got %q", got)
	}
}

func TestFirstStringSkipsEmptyAndNull(t *testing.T) {
	raw := rawRecord{"title": "  ", "property_title": nil, "subject": "fallback"}
	if got := raw.firstString("title", "property_title", "subject"); got != "fallback" {
		t.Fatalf("expected blank and null values skipped, got %q", got)
	}
}

func TestFirstStringStringifiesNumbers(t *testing.T) {
	raw := rawRecord{"id": float64(42)}
	if got := raw.firstString("id"); got != "42" {
		t.Fatalf("expected numeric id stringified, got %q", got)
	}
}

func TestFirstNumberAcceptsNumericStrings(t *testing.T) {
	raw := rawRecord{"price": "1250000"}
	n, ok := raw.firstNumber("price")
	if !ok || n != 1250000 {
		t.Fatalf("expected string-typed number parsed, got %v (%v)", n, ok)
	}
}

func TestFirstNumberMissReturnsFalse(t *testing.T) {
	raw := rawRecord{"price": "not a number"}
	if _, ok := raw.firstNumber("price", "total_price"); ok {
		t.Fatalf("unparseable value must not count as a hit")
	}
}

func TestFirstTimeParsesVariants(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
		want  time.Time
	}{
		{"rfc3339", "2025-06-15T10:30:00Z", time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)},
		{"date only", "2025-06-15", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"epoch millis", float64(1750000000000), time.UnixMilli(1750000000000).UTC()},
		{"epoch seconds", float64(1750000000), time.Unix(1750000000, 0).UTC()},
	}
	for _, tc := range cases {
		raw := rawRecord{"createdAt": tc.value}
		got, ok := raw.firstTime("createdAt")
		if !ok {
			t.Fatalf("%s: expected a parse, got a miss", tc.name)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFirstObjectIgnoresEmptyObjects(t *testing.T) {
	raw := rawRecord{
		"address":  map[string]interface{}{},
		"location": map[string]interface{}{"city": "Adama"},
	}
	obj, ok := raw.firstObject("address", "location")
	if !ok {
		t.Fatalf("expected the non-empty object")
	}
	if obj.firstString("city") != "Adama" {
		t.Fatalf("wrong object selected: %v", obj)
	}
}
