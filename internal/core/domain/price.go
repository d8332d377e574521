package domain

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultCurrency is assumed whenever a raw record carries a price but no
// currency. The marketplace operates in Ethiopian birr.
const DefaultCurrency = "ETB"

// Price is the canonical price of a listing.
type Price struct {
	Amount   float64
	Currency string
}

var pricePrinter = message.NewPrinter(language.English)

// Format renders the price with locale-aware thousands separators and the
// resolved currency code in place of the formatter's default symbol,
// e.g. "ETB 1,250,000".
func (p Price) Format() string {
	cur := strings.TrimSpace(p.Currency)
	if cur == "" {
		cur = DefaultCurrency
	}
	formatted := pricePrinter.Sprint(number.Decimal(p.Amount, number.MaxFractionDigits(0)))
	return cur + " " + formatted
}
