// Package format provides the locale-fixed display formatters for prices
// and dates. All functions are pure and total: any finite input produces a
// best-effort string, never an error.
package format

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ren89/property-listing-app/internal/models"
)

// Fixed en-PH / PHP presentation, zero fraction digits.
const currencySymbol = "₱"

// Price formats a full price, e.g. 5000 -> "₱5,000".
func Price(price float64) string {
	return currencySymbol + humanize.Comma(int64(math.Round(price)))
}

// CompactPrice abbreviates for space-constrained display: one decimal on
// the millions tier ("₱1.5M"), whole thousands below that ("₱500K"), and
// the grouped full form under a thousand.
func CompactPrice(price float64) string {
	abs := math.Abs(price)
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("%s%.1fM", currencySymbol, price/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%s%.0fK", currencySymbol, price/1_000)
	default:
		return Price(price)
	}
}

// Date renders a timestamp as month-abbreviated day, year: "Jan 2, 2006".
func Date(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// PriceWithSuffix appends the recurring-charge marker for rentals:
// "₱5,000/mo" for ForRent, plain "₱5,000" otherwise.
func PriceWithSuffix(price float64, status models.PropertyStatus) string {
	formatted := Price(price)
	if status == models.PropertyStatusForRent {
		return formatted + "/mo"
	}
	return formatted
}
