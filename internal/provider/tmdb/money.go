package tmdb

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatBoxOffice renders revenue as a worldwide gross, with a profit
// multiplier suffix when the budget is known:
//
//	FormatBoxOffice(238000000, 70000000) = "$238M worldwide (3.4x budget)"
func FormatBoxOffice(revenue, budget int64) string {
	result := formatAmount(revenue) + " worldwide"
	if budget > 0 {
		result += fmt.Sprintf(" (%.1fx budget)", float64(revenue)/float64(budget))
	}
	return result
}

// formatAmount scales a dollar amount: billions keep one decimal,
// millions drop decimals, anything smaller is comma-grouped in full.
func formatAmount(amount int64) string {
	switch {
	case amount >= 1_000_000_000:
		return fmt.Sprintf("$%.1fB", float64(amount)/1e9)
	case amount >= 1_000_000:
		return fmt.Sprintf("$%.0fM", float64(amount)/1e6)
	default:
		return "$" + humanize.Comma(amount)
	}
}

// FormatRevenueLong is the long-unit variant used for the fallback
// record's BoxOffice field: "$1.5 billion", "$238 million".
func FormatRevenueLong(revenue int64) string {
	switch {
	case revenue >= 1_000_000_000:
		return fmt.Sprintf("$%.1f billion", float64(revenue)/1e9)
	case revenue >= 1_000_000:
		return fmt.Sprintf("$%.0f million", float64(revenue)/1e6)
	default:
		return "$" + humanize.Comma(revenue)
	}
}
