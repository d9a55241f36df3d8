package valuation

import (
	"strings"

	"github.com/epeers/networth/internal/models"
)

// PairSeparator joins a crypto asset code and its quote currency, e.g. "BTC-USD".
const PairSeparator = "-"

// ResolveSymbol returns the key a holding is looked up by in the price map.
// Crypto holdings without an explicit pair get the holding currency appended.
func ResolveSymbol(h *models.Holding) string {
	sym := strings.TrimSpace(h.Symbol)
	if h.Kind == models.KindCrypto && sym != "" && !strings.Contains(sym, PairSeparator) {
		sym = sym + PairSeparator + string(h.Currency)
	}
	return sym
}

// LookupSymbols returns the distinct lookup symbols for holdings that need a
// fetched price, in first-seen order. Cash and holdings with a positive manual
// price are skipped.
func LookupSymbols(holdings []models.Holding) []string {
	seen := make(map[string]struct{}, len(holdings))
	var out []string
	for i := range holdings {
		h := &holdings[i]
		if hasManualPrice(h) || h.Kind == models.KindCash {
			continue
		}
		sym := ResolveSymbol(h)
		if sym == "" {
			continue
		}
		if _, ok := seen[sym]; ok {
			continue
		}
		seen[sym] = struct{}{}
		out = append(out, sym)
	}
	return out
}

// PairSymbols returns the set of lookup symbols that are crypto pairs and
// must be quoted as such. Tickers like "BRK-B" contain the separator too, so
// the holding kind decides, not the spelling.
func PairSymbols(holdings []models.Holding) map[string]bool {
	out := make(map[string]bool)
	for i := range holdings {
		h := &holdings[i]
		if h.Kind != models.KindCrypto || hasManualPrice(h) {
			continue
		}
		if sym := ResolveSymbol(h); sym != "" {
			out[sym] = true
		}
	}
	return out
}

func hasManualPrice(h *models.Holding) bool {
	return h.ManualPrice != nil && *h.ManualPrice > 0
}

// ResolvePrice picks the price for a holding: a positive manual price wins,
// cash is held at par, otherwise the fetched price for its lookup symbol,
// otherwise zero. found is false when the holding ends up valued at zero for
// lack of a price.
func ResolvePrice(h *models.Holding, prices map[string]float64) (price float64, manual bool, found bool) {
	if hasManualPrice(h) {
		return *h.ManualPrice, true, true
	}
	if h.Kind == models.KindCash {
		return 1, false, true
	}
	p, ok := prices[ResolveSymbol(h)]
	if !ok || p <= 0 {
		return 0, false, false
	}
	return p, false, true
}
