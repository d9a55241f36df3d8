package valuation

import (
	"strings"

	"github.com/epeers/networth/internal/models"
)

// splitEpsilon is the split sum at or below which a holding is treated as
// having no explicit allocation.
const splitEpsilon = 0.01

// DefaultEmployerTickers are the tickers classified as employment equity when
// no splits are set.
var DefaultEmployerTickers = []string{"GOOG", "GOOGL"}

// Last-resort name markers. Matched case-insensitively against the holding name.
var (
	bondMarkers    = []string{"bond", "אג\"ח", "govt", "shekel"}
	depositMarkers = []string{"deposit", "cash", "פיקדון"}
)

// Classify spreads a holding's base-currency market value across the six
// risk buckets.
//
// Liabilities and negative values contribute nothing. Explicit splits are
// applied as given, so a split sum other than 1.0 over- or under-allocates the
// holding. Without splits, exactly one bucket receives the whole value,
// chosen by the first matching rule: crypto kind, work category or employer
// ticker, bond name, cash kind or deposit name, foreign currency, and
// finally domestic equity.
func Classify(h *models.Holding, marketValue float64, employerTickers []string) models.Allocation {
	var out models.Allocation
	if h.IsLiability() || marketValue < 0 {
		return out
	}

	if HasExplicitSplits(h) {
		for i, frac := range h.Allocation.ByBucket() {
			out[i] = marketValue * frac
		}
		return out
	}

	out[FallbackBucket(h, employerTickers)] = marketValue
	return out
}

// FallbackBucket picks the single bucket for a holding without explicit splits.
func FallbackBucket(h *models.Holding, employerTickers []string) models.Bucket {
	name := strings.ToLower(h.Name)
	switch {
	case h.Kind == models.KindCrypto:
		return models.BucketCrypto
	case h.Category == models.CategoryWork || isEmployerTicker(h.Symbol, employerTickers):
		return models.BucketEmployment
	case containsAny(name, bondMarkers):
		return models.BucketBonds
	case h.Kind == models.KindCash || containsAny(name, depositMarkers):
		return models.BucketCash
	case h.Currency == models.CurrencyUSD:
		return models.BucketForeignEquity
	default:
		return models.BucketDomesticEquity
	}
}

// HasExplicitSplits reports whether the holding's splits drive classification.
func HasExplicitSplits(h *models.Holding) bool {
	return h.Allocation.Sum() > splitEpsilon
}

func isEmployerTicker(symbol string, employerTickers []string) bool {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	if sym == "" {
		return false
	}
	for _, t := range employerTickers {
		if strings.EqualFold(sym, strings.TrimSpace(t)) {
			return true
		}
	}
	return false
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// SplitsUnbalanced reports whether explicit splits are set but do not sum to
// 1.0 within tolerance. Such splits are still applied as given.
func SplitsUnbalanced(h *models.Holding) bool {
	if !HasExplicitSplits(h) {
		return false
	}
	sum := h.Allocation.Sum()
	return sum < 1-splitEpsilon || sum > 1+splitEpsilon
}
