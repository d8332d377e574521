package domain

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// SortKey selects the comparator applied to a filtered result set. The
// values are exactly the ones the marketplace UI exposes in its sort select.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortBedrooms  SortKey = "bedrooms"
)

// AnyValue is the sentinel a criterion takes when the user has not narrowed
// it. The UI emits both spellings depending on the control.
func isAnySentinel(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "any", "all":
		return true
	}
	return false
}

// FilterCriteria is the user-selected predicate set. It round-trips through
// URL query parameters: ParseFilterCriteria(c.QueryValues()) reproduces c for
// any non-default field.
type FilterCriteria struct {
	Query         string
	PriceRange    string // "0-500000", "5000000+", "any"
	PropertyType  string
	Bedrooms      string // "1".."4", "5+", "any"
	Bathrooms     string
	RegionalState string
	SortBy        SortKey
	OfferingType  OfferingType // empty means both
}

// ParseFilterCriteria reconstructs criteria from URL query parameters.
func ParseFilterCriteria(q url.Values) FilterCriteria {
	c := FilterCriteria{
		Query:         q.Get("search"),
		PriceRange:    q.Get("priceRange"),
		PropertyType:  q.Get("propertyType"),
		Bedrooms:      q.Get("bedrooms"),
		Bathrooms:     q.Get("bathrooms"),
		RegionalState: q.Get("regionalState"),
		SortBy:        SortKey(q.Get("sortBy")),
	}
	if v := q.Get("offeringType"); v != "" {
		c.OfferingType = NormalizeOfferingType(v)
	}
	return c
}

// QueryValues serializes the criteria back to URL query parameters, omitting
// default/empty fields so applied filters produce minimal URLs.
func (c FilterCriteria) QueryValues() url.Values {
	q := url.Values{}
	setIf := func(key, val string) {
		if val != "" {
			q.Set(key, val)
		}
	}
	setIf("search", c.Query)
	setIf("priceRange", c.PriceRange)
	setIf("propertyType", c.PropertyType)
	setIf("bedrooms", c.Bedrooms)
	setIf("bathrooms", c.Bathrooms)
	setIf("regionalState", c.RegionalState)
	setIf("sortBy", string(c.SortBy))
	if c.OfferingType != "" {
		q.Set("offeringType", string(c.OfferingType))
	}
	return q
}

// Apply filters and sorts a copy of the given records. The input slice is
// not mutated.
func (c FilterCriteria) Apply(ls []Listing) []Listing {
	out := make([]Listing, 0, len(ls))
	for _, l := range ls {
		if c.matches(l) {
			out = append(out, l)
		}
	}
	sortListings(out, c.SortBy)
	return out
}

func (c FilterCriteria) matches(l Listing) bool {
	if c.OfferingType != "" && l.OfferingType != c.OfferingType {
		return false
	}
	if !isAnySentinel(c.Query) && !matchesQuery(l, c.Query) {
		return false
	}
	if !isAnySentinel(c.PriceRange) && !matchesPriceRange(c.PriceRange, l.Price.Amount) {
		return false
	}
	if !isAnySentinel(c.PropertyType) && !strings.EqualFold(l.PropertyType, strings.TrimSpace(c.PropertyType)) {
		return false
	}
	if !isAnySentinel(c.Bedrooms) && !matchesCountBucket(c.Bedrooms, l.Bedrooms) {
		return false
	}
	if !isAnySentinel(c.Bathrooms) && !matchesCountBucket(c.Bathrooms, l.Bathrooms) {
		return false
	}
	if !isAnySentinel(c.RegionalState) && !MatchesRegion(c.RegionalState, l.Address.RegionalState) {
		return false
	}
	return true
}

func matchesQuery(l Listing, query string) bool {
	needle := strings.ToLower(strings.TrimSpace(query))
	for _, hay := range []string{l.Title, l.Description, l.Address.DisplayLabel()} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

// MatchesRegion matches a user-typed region against a display label.
// Beyond a plain substring match it accepts a prefix of any
// whitespace-delimited token of the label, so "addis" matches
// "Addis Ababa City Administration" and so does "admin" (via the
// "Administration" token). This is a deliberate UX affordance.
func MatchesRegion(input, label string) bool {
	needle := strings.ToLower(strings.TrimSpace(input))
	hay := strings.ToLower(label)
	if needle == "" || strings.Contains(hay, needle) {
		return true
	}
	for _, token := range strings.Fields(hay) {
		if strings.HasPrefix(token, needle) {
			return true
		}
	}
	return false
}

// matchesPriceRange interprets "min-max" and open-ended "min+" buckets.
func matchesPriceRange(bucket string, amount float64) bool {
	bucket = strings.TrimSpace(bucket)
	if open, ok := strings.CutSuffix(bucket, "+"); ok {
		min, err := strconv.ParseFloat(open, 64)
		return err == nil && amount >= min
	}
	lo, hi, ok := strings.Cut(bucket, "-")
	if !ok {
		return false
	}
	min, errLo := strconv.ParseFloat(lo, 64)
	max, errHi := strconv.ParseFloat(hi, 64)
	if errLo != nil || errHi != nil {
		return false
	}
	return amount >= min && amount <= max
}

// matchesCountBucket interprets "N" as an exact match and "N+" as at-least-N.
func matchesCountBucket(bucket string, n int) bool {
	bucket = strings.TrimSpace(bucket)
	if open, ok := strings.CutSuffix(bucket, "+"); ok {
		min, err := strconv.Atoi(open)
		return err == nil && n >= min
	}
	want, err := strconv.Atoi(bucket)
	return err == nil && n == want
}

// FilterOptions are the dictionaries the search UI builds its controls from.
type FilterOptions struct {
	RegionalStates []string
	PriceRanges    []string
	PropertyTypes  []string
	CountBuckets   []string
	SortKeys       []SortKey
}

// AllSortKeys enumerates every sort key reachable from the UI's select.
var AllSortKeys = []SortKey{SortNewest, SortPriceAsc, SortPriceDesc, SortBedrooms}

// sortListings applies a total order for the given key, with the listing id
// as a stable tiebreak so equal elements keep a deterministic order.
func sortListings(ls []Listing, key SortKey) {
	var less func(a, b Listing) bool
	switch key {
	case SortPriceAsc:
		less = func(a, b Listing) bool { return a.Price.Amount < b.Price.Amount }
	case SortPriceDesc:
		less = func(a, b Listing) bool { return a.Price.Amount > b.Price.Amount }
	case SortBedrooms:
		less = func(a, b Listing) bool { return a.Bedrooms > b.Bedrooms }
	case SortNewest:
		less = func(a, b Listing) bool { return a.CreatedAt.After(b.CreatedAt) }
	default:
		return
	}
	sort.SliceStable(ls, func(i, j int) bool {
		a, b := ls[i], ls[j]
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return a.ID < b.ID
	})
}
