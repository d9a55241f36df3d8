package valuation

import "github.com/epeers/networth/internal/models"

// Fallback rates used when a configured rate is missing or malformed.
const (
	DefaultCapitalGainsRate = 0.25
	DefaultMarginalRate     = 0.50
	DefaultPensionRate      = 0.25
)

// TaxRules carries the effective rates for one holding.
type TaxRules struct {
	CapitalGainsRate float64  // from settings
	Override         *float64 // per-holding rate, if any; zero means exempt
}

// RulesFor builds the tax rules for a holding under the given settings.
func RulesFor(h *models.Holding, s models.Settings) TaxRules {
	return TaxRules{
		CapitalGainsRate: s.CapitalGainsTaxRate,
		Override:         h.TaxRate,
	}
}

func (r TaxRules) override() (float64, bool) {
	if r.Override != nil && models.ValidFraction(*r.Override) {
		return *r.Override, true
	}
	return 0, false
}

func (r TaxRules) capitalGains() float64 {
	if rate, ok := r.override(); ok {
		return rate
	}
	if models.ValidRate(r.CapitalGainsRate) {
		return r.CapitalGainsRate
	}
	return DefaultCapitalGainsRate
}

func (r TaxRules) pension() float64 {
	if rate, ok := r.override(); ok {
		return rate
	}
	return DefaultPensionRate
}

// EstimateTax returns the estimated tax liability of a holding in the base
// currency, selecting the rule by location category:
//
//   - pension: the whole market value is taxed, modeling early withdrawal.
//   - future_needs: never taxed.
//   - everything else, including work holdings and unknown categories:
//     capital gains on (marketValue - costBasis), zero on a loss.
//
// Work holdings are taxed on the gain only here. Vest-aware taxation of
// employee equity lives in GrantTax, and the flat marginal-rate model is kept
// as EstimateTaxSimple. The two models disagree on purpose and are not
// reconciled.
func EstimateTax(category models.LocationCategory, marketValue, costBasis float64, rules TaxRules) float64 {
	var tax float64
	switch category {
	case models.CategoryFutureNeeds:
		return 0
	case models.CategoryPension:
		tax = marketValue * rules.pension()
	default:
		tax = capitalGainsTax(marketValue, costBasis, rules.capitalGains())
	}
	return nonNegative(tax)
}

// EstimateTaxSimple is the kind-based alternate reported next to EstimateTax
// as HoldingValuation.TaxSimple. Employee equity is taxed at the marginal rate on its full value;
// everything else pays a flat 25% on positive gains.
func EstimateTaxSimple(kind models.AssetKind, marketValue, costBasis, marginalRate float64) float64 {
	if kind == models.KindEmployeeEquity {
		if !models.ValidRate(marginalRate) {
			marginalRate = DefaultMarginalRate
		}
		return nonNegative(marketValue * marginalRate)
	}
	return nonNegative(capitalGainsTax(marketValue, costBasis, DefaultCapitalGainsRate))
}

func capitalGainsTax(marketValue, costBasis, rate float64) float64 {
	gain := marketValue - costBasis
	if gain <= 0 {
		return 0
	}
	return gain * rate
}

func nonNegative(v float64) float64 {
	if v > 0 {
		return v
	}
	return 0
}
