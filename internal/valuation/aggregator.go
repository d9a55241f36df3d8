package valuation

import (
	"math"

	"github.com/epeers/networth/internal/models"
)

const (
	// RealReturn is the conservative real annual return used for the long
	// horizon projection. Illustrative charts may use a higher nominal rate.
	RealReturn = 0.05
	// ProjectionYears is the horizon of FutureValue40y.
	ProjectionYears = 40
)

// Input is everything one valuation pass needs for a single owner.
type Input struct {
	OwnerID         int64
	Holdings        []models.Holding
	Prices          map[string]float64 // lookup symbol -> native price; missing means unpriced
	FXRate          float64            // ILS per USD
	Settings        models.Settings
	EmployerTickers []string // nil uses DefaultEmployerTickers
}

// ValueHolding runs the per-holding pipeline: price resolution, currency
// normalization, tax and allocation. settings must already be effective.
func ValueHolding(h *models.Holding, prices map[string]float64, fxRate float64, settings models.Settings, employerTickers []string) models.HoldingValuation {
	price, manual, found := ResolvePrice(h, prices)

	mvNative := price * h.Quantity
	mv := Normalize(mvNative, h.Currency, fxRate)
	cb := Normalize(h.CostBasis, h.Currency, fxRate)
	if h.IsLiability() {
		// Obligations are recorded as positive amounts and count against net worth.
		mv, cb = -math.Abs(mv), -math.Abs(cb)
	}
	tax := EstimateTax(h.Category, mv, cb, RulesFor(h, settings))

	return models.HoldingValuation{
		HoldingID:    h.ID,
		Name:         h.Name,
		Symbol:       h.Symbol,
		LookupSymbol: ResolveSymbol(h),
		Kind:         h.Kind,
		Category:     h.Category,
		Currency:     h.Currency,
		Quantity:     h.Quantity,
		Price:        price,
		ManualPrice:  manual,
		Unpriced:     !found,
		MarketValue:  mv,
		CostBasis:    cb,
		Tax:          tax,
		TaxSimple:    EstimateTaxSimple(h.Kind, mv, cb, settings.IncomeTaxRate),
		NetAfterTax:  mv - tax,
		GainPct:      GainPct(mv, cb),
		Allocation:   Classify(h, mv, employerTickers),
		Liquidity:    LiquidityOf(h),
	}
}

// GainPct returns the percentage gain over cost basis, or 0 when the cost
// basis is not positive.
func GainPct(marketValue, costBasis float64) float64 {
	if costBasis <= 0 {
		return 0
	}
	return (marketValue - costBasis) / costBasis * 100
}

// Aggregate values every holding in list order and accumulates the totals,
// allocation, liquidity and projections. An empty holding list yields an
// all-zero summary.
func Aggregate(in Input) models.PortfolioSummary {
	settings := in.Settings.Effective()
	fx := in.FXRate
	if !(fx > 0) || math.IsInf(fx, 0) {
		fx = settings.FXRate
	}
	employers := in.EmployerTickers
	if employers == nil {
		employers = DefaultEmployerTickers
	}

	out := models.PortfolioSummary{
		OwnerID:         in.OwnerID,
		BaseCurrency:    settings.BaseCurrency,
		FXRate:          fx,
		Holdings:        make([]models.HoldingValuation, 0, len(in.Holdings)),
		UnpricedSymbols: []string{},
	}
	unpriced := make(map[string]struct{})

	for i := range in.Holdings {
		h := &in.Holdings[i]
		v := ValueHolding(h, in.Prices, fx, settings, employers)

		if !settings.CryptoIncluded() && h.Kind == models.KindCrypto {
			v.Excluded = true
			out.Holdings = append(out.Holdings, v)
			continue
		}

		if v.Unpriced && h.Quantity != 0 {
			if _, ok := unpriced[v.LookupSymbol]; !ok {
				unpriced[v.LookupSymbol] = struct{}{}
				out.UnpricedSymbols = append(out.UnpricedSymbols, v.LookupSymbol)
			}
		}

		out.TotalNetWorth += v.MarketValue
		out.TotalAfterTax += v.NetAfterTax
		out.TotalTax += v.Tax
		out.TotalTaxSimple += v.TaxSimple
		out.TotalCostBasis += v.CostBasis
		out.Allocation.Add(v.Allocation)
		addLiquidity(&out.Liquidity, v)
		out.Holdings = append(out.Holdings, v)
	}

	out.TotalGain = out.TotalNetWorth - out.TotalCostBasis
	out.TotalGainPct = GainPct(out.TotalNetWorth, out.TotalCostBasis)
	out.AllocationPct = allocationPct(out.Allocation)
	finishLiquidity(&out.Liquidity, out.TotalNetWorth)
	out.SWRMonthly = SWRMonthly(out.TotalAfterTax, settings.SWRRate)
	out.FutureValue40y = FutureValue(out.TotalAfterTax, RealReturn, ProjectionYears)
	return out
}

// SWRMonthly is the monthly withdrawal sustainable at the given annual rate.
func SWRMonthly(afterTax, swrRate float64) float64 {
	return afterTax * swrRate / 12
}

// FutureValue compounds principal at rate for the given number of years.
func FutureValue(principal, rate float64, years int) float64 {
	return principal * math.Pow(1+rate, float64(years))
}

// allocationPct expresses each bucket as a percentage of the allocated total.
func allocationPct(a models.Allocation) models.Allocation {
	var out models.Allocation
	total := a.Total()
	if total <= 0 {
		return out
	}
	for i, v := range a {
		out[i] = v / total * 100
	}
	return out
}
