package constants

// Regional states as the marketplace displays them. The filter engine
// matches user input against these labels token-by-token.
var RegionalStates = []string{
	"Addis Ababa City Administration",
	"Afar Region",
	"Amhara Region",
	"Benishangul-Gumuz Region",
	"Central Ethiopia Region",
	"Dire Dawa City Administration",
	"Gambela Region",
	"Harari Region",
	"Oromia Region",
	"Sidama Region",
	"Somali Region",
	"South Ethiopia Region",
	"South West Ethiopia Peoples' Region",
	"Tigray Region",
}

// Price range buckets (ETB) exposed by the search UI.
var PriceRanges = []string{
	"any",
	"0-500000",
	"500000-1000000",
	"1000000-3000000",
	"3000000-5000000",
	"5000000+",
}

// Property types the upstream schema recognizes.
var PropertyTypes = []string{
	"all",
	"Apartment",
	"House",
	"Villa",
	"Condominium",
	"Commercial",
	"Land",
}

// Bedroom/bathroom buckets exposed by the search UI.
var CountBuckets = []string{"any", "1", "2", "3", "4", "5+"}
