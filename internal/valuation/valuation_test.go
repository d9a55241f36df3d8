package valuation

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epeers/networth/internal/models"
)

const tol = 1e-9

func f64(v float64) *float64 { return &v }

func holding(kind models.AssetKind, cat models.LocationCategory, cur models.Currency, qty, cpu float64) models.Holding {
	return models.Holding{
		ID:          1,
		OwnerID:     7,
		Name:        "Test Holding",
		Kind:        kind,
		Category:    cat,
		Symbol:      "TST",
		Quantity:    qty,
		CostPerUnit: cpu,
		CostBasis:   qty * cpu,
		Currency:    cur,
	}
}

func TestNormalize_DomesticIsIdentity(t *testing.T) {
	for _, rate := range []float64{0, 1, 3.6, 1000} {
		assert.Equal(t, 123.45, Normalize(123.45, models.CurrencyILS, rate))
	}
}

func TestNormalize_ForeignIsLinear(t *testing.T) {
	a, r := 250.0, 3.6
	one := Normalize(a, models.CurrencyUSD, r)
	two := Normalize(2*a, models.CurrencyUSD, r)
	assert.InDelta(t, a*r, one, tol)
	assert.InDelta(t, 2*one, two, tol)
}

func TestNormalize_UnknownCurrencyPassesThrough(t *testing.T) {
	assert.Equal(t, 10.0, Normalize(10, models.Currency("EUR"), 4))
}

func TestResolveSymbol(t *testing.T) {
	h := holding(models.KindCrypto, models.CategoryCryptoWallet, models.CurrencyUSD, 1, 1)
	h.Symbol = " BTC "
	assert.Equal(t, "BTC-USD", ResolveSymbol(&h))

	h.Symbol = "AETH-USD"
	assert.Equal(t, "AETH-USD", ResolveSymbol(&h))

	eq := holding(models.KindEquity, models.CategoryBrokerage, models.CurrencyUSD, 1, 1)
	eq.Symbol = " VOO\t"
	assert.Equal(t, "VOO", ResolveSymbol(&eq))
}

func TestLookupSymbols_SkipsManualAndDuplicates(t *testing.T) {
	a := holding(models.KindBondCorporate, models.CategoryBankAccount, models.CurrencyILS, 1, 1)
	a.Symbol = "1183441"
	b := a
	b.ID = 2
	c := holding(models.KindFund, models.CategoryPension, models.CurrencyILS, 1, 1)
	c.Symbol = "CLAL_PEN"
	c.ManualPrice = f64(17180)
	d := holding(models.KindCrypto, models.CategoryCryptoWallet, models.CurrencyUSD, 1, 1)
	d.Symbol = "ETH"

	e := holding(models.KindCash, models.CategoryBankAccount, models.CurrencyUSD, 500, 1)
	e.Symbol = "USD"

	assert.Equal(t, []string{"1183441", "ETH-USD"}, LookupSymbols([]models.Holding{a, b, c, d, e}))
}

func TestPairSymbols_ByKindNotSpelling(t *testing.T) {
	brk := holding(models.KindEquity, models.CategoryBrokerage, models.CurrencyUSD, 1, 1)
	brk.Symbol = "BRK-B"
	btc := holding(models.KindCrypto, models.CategoryCryptoWallet, models.CurrencyUSD, 1, 1)
	btc.Symbol = "BTC"
	aeth := holding(models.KindCrypto, models.CategoryCryptoWallet, models.CurrencyUSD, 1, 1)
	aeth.Symbol = "AETH-USD"
	manual := btc
	manual.Symbol = "SOL"
	manual.ManualPrice = f64(150)

	pairs := PairSymbols([]models.Holding{brk, btc, aeth, manual})
	assert.Equal(t, map[string]bool{"BTC-USD": true, "AETH-USD": true}, pairs)
	assert.False(t, pairs["BRK-B"])
}

func TestResolvePrice(t *testing.T) {
	h := holding(models.KindEquity, models.CategoryBrokerage, models.CurrencyUSD, 1, 1)
	prices := map[string]float64{"TST": 12}

	p, manual, found := ResolvePrice(&h, prices)
	assert.Equal(t, 12.0, p)
	assert.False(t, manual)
	assert.True(t, found)

	h.ManualPrice = f64(0)
	p, _, _ = ResolvePrice(&h, prices)
	assert.Equal(t, 12.0, p, "a zero manual price is ignored")

	h.ManualPrice = f64(80)
	p, manual, _ = ResolvePrice(&h, prices)
	assert.Equal(t, 80.0, p)
	assert.True(t, manual)

	h.ManualPrice = nil
	p, _, found = ResolvePrice(&h, map[string]float64{})
	assert.Equal(t, 0.0, p)
	assert.False(t, found)
}

func TestResolvePrice_CashAtPar(t *testing.T) {
	h := holding(models.KindCash, models.CategoryBankAccount, models.CurrencyUSD, 250, 1)
	h.Symbol = "USD"

	p, manual, found := ResolvePrice(&h, nil)
	assert.Equal(t, 1.0, p)
	assert.False(t, manual)
	assert.True(t, found)

	h.ManualPrice = f64(0.98)
	p, manual, _ = ResolvePrice(&h, nil)
	assert.Equal(t, 0.98, p, "a manual price still wins over par")
	assert.True(t, manual)
}

func TestEstimateTax_NeverNegative(t *testing.T) {
	cats := []models.LocationCategory{
		models.CategoryBankAccount, models.CategoryBrokerage, models.CategoryPension,
		models.CategoryWork, models.CategoryCryptoWallet, models.CategoryInvestmentFund,
		models.CategoryFutureNeeds, models.LocationCategory("mystery"),
	}
	values := []float64{-500, 0, 10, 1000}
	for _, c := range cats {
		for _, mv := range values {
			for _, cb := range values {
				tax := EstimateTax(c, mv, cb, TaxRules{CapitalGainsRate: 0.25})
				assert.GreaterOrEqual(t, tax, 0.0, "category %s mv %v cb %v", c, mv, cb)
			}
		}
	}
}

func TestEstimateTax_ZeroOnLoss(t *testing.T) {
	for _, c := range []models.LocationCategory{
		models.CategoryBankAccount, models.CategoryBrokerage, models.CategoryCryptoWallet,
		models.CategoryInvestmentFund, models.CategoryWork,
	} {
		assert.Zero(t, EstimateTax(c, 100, 100, TaxRules{CapitalGainsRate: 0.25}))
		assert.Zero(t, EstimateTax(c, 90, 100, TaxRules{CapitalGainsRate: 0.25}))
	}
}

func TestEstimateTax_Rules(t *testing.T) {
	rules := TaxRules{CapitalGainsRate: 0.3}

	assert.InDelta(t, 60.0, EstimateTax(models.CategoryBrokerage, 300, 100, rules), tol)
	assert.InDelta(t, 60.0, EstimateTax(models.CategoryWork, 300, 100, rules), tol)
	assert.InDelta(t, 60.0, EstimateTax(models.LocationCategory("unknown"), 300, 100, rules), tol)

	// pension taxes the whole value at 25% regardless of the capital-gains rate
	assert.InDelta(t, 75.0, EstimateTax(models.CategoryPension, 300, 100, rules), tol)
	assert.InDelta(t, 30.0, EstimateTax(models.CategoryPension, 300, 100, TaxRules{Override: f64(0.1)}), tol)

	assert.Zero(t, EstimateTax(models.CategoryFutureNeeds, 300, 100, rules))

	// override wins over settings
	assert.InDelta(t, 20.0, EstimateTax(models.CategoryBrokerage, 300, 100, TaxRules{CapitalGainsRate: 0.3, Override: f64(0.1)}), tol)

	// an explicit zero marks the holding tax exempt
	assert.Zero(t, EstimateTax(models.CategoryBrokerage, 300, 100, TaxRules{CapitalGainsRate: 0.3, Override: f64(0)}))
	assert.Zero(t, EstimateTax(models.CategoryPension, 300, 100, TaxRules{Override: f64(0)}))
}

func TestEstimateTax_MalformedRatesFallBack(t *testing.T) {
	assert.InDelta(t, 50.0, EstimateTax(models.CategoryBrokerage, 300, 100, TaxRules{}), tol)
	assert.InDelta(t, 50.0, EstimateTax(models.CategoryBrokerage, 300, 100, TaxRules{CapitalGainsRate: -1}), tol)
	assert.InDelta(t, 50.0, EstimateTax(models.CategoryBrokerage, 300, 100, TaxRules{CapitalGainsRate: 7}), tol)
	assert.InDelta(t, 50.0, EstimateTax(models.CategoryBrokerage, 300, 100, TaxRules{Override: f64(3)}), tol)
}

func TestEstimateTaxSimple(t *testing.T) {
	assert.InDelta(t, 500.0, EstimateTaxSimple(models.KindEmployeeEquity, 1000, 0, 0.5), tol)
	assert.InDelta(t, 500.0, EstimateTaxSimple(models.KindEmployeeEquity, 1000, 0, 0), tol, "missing marginal rate defaults to 50%")
	assert.InDelta(t, 400.0, EstimateTaxSimple(models.KindEmployeeEquity, 1000, 900, 0.4), tol, "full value, not gain")
	assert.InDelta(t, 25.0, EstimateTaxSimple(models.KindEquity, 200, 100, 0.5), tol)
	assert.Zero(t, EstimateTaxSimple(models.KindEquity, 100, 200, 0.5))
}

func TestClassify_ExplicitSplitsConserveValue(t *testing.T) {
	h := holding(models.KindFund, models.CategoryPension, models.CurrencyILS, 1, 1)
	h.Allocation = models.AllocationSplits{DomesticEquity: 0.157, ForeignEquity: 0.385, Bonds: 0.458}

	alloc := Classify(&h, 17180, nil)
	assert.InDelta(t, 17180, alloc.Total(), 1e-6)
	assert.InDelta(t, 17180*0.385, alloc[models.BucketForeignEquity], 1e-6)
	assert.Zero(t, alloc[models.BucketCrypto])
}

func TestClassify_MalformedSplitsPassThrough(t *testing.T) {
	h := holding(models.KindFund, models.CategoryInvestmentFund, models.CurrencyILS, 1, 1)

	h.Allocation = models.AllocationSplits{DomesticEquity: 0.5, Bonds: 0.2}
	under := Classify(&h, 1000, nil)
	assert.InDelta(t, 700, under.Total(), 1e-9)

	h.Allocation = models.AllocationSplits{DomesticEquity: 0.8, Cash: 0.7}
	over := Classify(&h, 1000, nil)
	assert.InDelta(t, 1500, over.Total(), 1e-9)
	assert.InDelta(t, 700, over[models.BucketCash], 1e-9)
}

func TestClassify_TinySplitsUseFallback(t *testing.T) {
	h := holding(models.KindEquity, models.CategoryBrokerage, models.CurrencyUSD, 1, 1)
	h.Allocation = models.AllocationSplits{Cash: 0.005}
	alloc := Classify(&h, 1000, nil)
	assert.Equal(t, 1000.0, alloc[models.BucketForeignEquity])
	assert.Equal(t, 1000.0, alloc.Total())
}

func TestClassify_FallbackTotality(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(h *models.Holding)
		want   models.Bucket
	}{
		{"crypto kind", func(h *models.Holding) { h.Kind = models.KindCrypto }, models.BucketCrypto},
		{"crypto beats bond name", func(h *models.Holding) {
			h.Kind = models.KindCrypto
			h.Name = "Bond Token"
		}, models.BucketCrypto},
		{"work category", func(h *models.Holding) { h.Category = models.CategoryWork }, models.BucketEmployment},
		{"employer ticker", func(h *models.Holding) { h.Symbol = "goog" }, models.BucketEmployment},
		{"bond name", func(h *models.Holding) { h.Name = "Azrieli Bond H" }, models.BucketBonds},
		{"bond beats cash kind", func(h *models.Holding) {
			h.Kind = models.KindCash
			h.Name = "Govt Shekel 0330"
		}, models.BucketBonds},
		{"cash kind", func(h *models.Holding) { h.Kind = models.KindCash }, models.BucketCash},
		{"deposit name", func(h *models.Holding) { h.Name = "Bank Deposit 12m" }, models.BucketCash},
		{"foreign currency", func(h *models.Holding) { h.Currency = models.CurrencyUSD }, models.BucketForeignEquity},
		{"domestic default", func(h *models.Holding) {}, models.BucketDomesticEquity},
		{"unknown kind", func(h *models.Holding) { h.Kind = models.AssetKind("warrant") }, models.BucketDomesticEquity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := holding(models.KindEquity, models.CategoryBrokerage, models.CurrencyILS, 1, 1)
			h.Name = "Plain Holding"
			tc.mutate(&h)

			alloc := Classify(&h, 500, DefaultEmployerTickers)
			nonZero := 0
			for _, v := range alloc {
				if v != 0 {
					nonZero++
				}
			}
			assert.Equal(t, 1, nonZero)
			assert.Equal(t, 500.0, alloc[tc.want])
		})
	}
}

func TestClassify_LiabilityAndNegativeExcluded(t *testing.T) {
	h := holding(models.KindLiability, models.CategoryFutureNeeds, models.CurrencyILS, 1, 1)
	assert.Zero(t, Classify(&h, 5000, nil).Total())

	h = holding(models.KindEquity, models.CategoryBrokerage, models.CurrencyILS, 1, 1)
	h.Allocation = models.AllocationSplits{DomesticEquity: 1}
	assert.Zero(t, Classify(&h, -10, nil).Total())
}

func TestAggregate_EmptyPortfolio(t *testing.T) {
	s := Aggregate(Input{OwnerID: 3})
	assert.Zero(t, s.TotalNetWorth)
	assert.Zero(t, s.TotalAfterTax)
	assert.Zero(t, s.SWRMonthly)
	assert.Zero(t, s.FutureValue40y)
	assert.Equal(t, models.Allocation{}, s.Allocation)
	assert.Empty(t, s.Holdings)
	assert.Equal(t, int64(3), s.OwnerID)
}

func TestAggregate_CashScenario(t *testing.T) {
	h := holding(models.KindCash, models.CategoryBankAccount, models.CurrencyILS, 100, 1)
	h.Symbol = "ILS"
	h.Name = "Checking ILS"
	h.Allocation = models.AllocationSplits{Cash: 1}

	s := Aggregate(Input{Holdings: []models.Holding{h}, Prices: map[string]float64{}, FXRate: 3.6, Settings: models.DefaultSettings(1)})

	assert.InDelta(t, 100, s.TotalNetWorth, tol)
	assert.Zero(t, s.TotalTax)
	assert.Empty(t, s.UnpricedSymbols)
	require.Len(t, s.Holdings, 1)
	assert.False(t, s.Holdings[0].Unpriced)
	assert.Equal(t, 1.0, s.Holdings[0].Price)
	assert.InDelta(t, 100, s.Allocation[models.BucketCash], tol)
	for _, b := range models.AllBuckets {
		if b != models.BucketCash {
			assert.Zero(t, s.Allocation[b], b.String())
		}
	}
}

func TestAggregate_ForeignEquityScenario(t *testing.T) {
	h := holding(models.KindEquity, models.CategoryBrokerage, models.CurrencyUSD, 10, 50)
	h.Name = "Inv. VOO"
	h.Symbol = "VOO"
	h.ManualPrice = f64(80)

	settings := models.DefaultSettings(1)
	s := Aggregate(Input{
		Holdings: []models.Holding{h},
		Prices:   map[string]float64{"VOO": 999},
		FXRate:   3.6,
		Settings: settings,
	})

	require.Len(t, s.Holdings, 1)
	d := s.Holdings[0]
	assert.InDelta(t, 2880, d.MarketValue, 1e-6)
	assert.InDelta(t, 1800, d.CostBasis, 1e-6)
	assert.InDelta(t, 270, d.Tax, 1e-6)
	assert.InDelta(t, 2610, d.NetAfterTax, 1e-6)
	assert.InDelta(t, 60, d.GainPct, 1e-6)
	assert.Equal(t, 80.0, d.Price)
	assert.True(t, d.ManualPrice)
	assert.InDelta(t, 2880, s.Allocation[models.BucketForeignEquity], 1e-6)
	assert.InDelta(t, 2880, s.Allocation.Total(), 1e-6)
}

func TestAggregate_Additivity(t *testing.T) {
	cash := holding(models.KindCash, models.CategoryBankAccount, models.CurrencyUSD, 32, 3.09)
	cash.Symbol = "USD"
	cash.ManualPrice = f64(1)
	bond := holding(models.KindBondGovernment, models.CategoryBankAccount, models.CurrencyILS, 5255, 0.91)
	bond.Symbol = "1160985"
	bond.Name = "Govt Shekel 0330"
	pension := holding(models.KindFund, models.CategoryPension, models.CurrencyILS, 1, 25089)
	pension.ManualPrice = f64(26000)
	pension.Allocation = models.AllocationSplits{DomesticEquity: 0.19, ForeignEquity: 0.62, Bonds: 0.19}
	loan := holding(models.KindLiability, models.CategoryFutureNeeds, models.CurrencyILS, 1, 0)
	loan.ManualPrice = f64(20000)
	missing := holding(models.KindEquity, models.CategoryBrokerage, models.CurrencyUSD, 3, 100)
	missing.Symbol = "NOPE"

	in := Input{
		Holdings: []models.Holding{cash, bond, pension, loan, missing},
		Prices:   map[string]float64{"1160985": 0.95},
		FXRate:   3.7,
		Settings: models.DefaultSettings(1),
	}
	s := Aggregate(in)

	var mv, net float64
	for _, d := range s.Holdings {
		mv += d.MarketValue
		net += d.NetAfterTax
	}
	assert.InDelta(t, mv, s.TotalNetWorth, 1e-6)
	assert.InDelta(t, net, s.TotalAfterTax, 1e-6)
	assert.InDelta(t, s.TotalAfterTax*0.04/12, s.SWRMonthly, 1e-6)
	assert.Equal(t, []string{"NOPE"}, s.UnpricedSymbols)
	assert.True(t, s.Holdings[4].Unpriced)
	assert.Zero(t, s.Holdings[4].MarketValue)
}

func TestAggregate_LiabilityReducesNetWorthNotAllocation(t *testing.T) {
	eq := holding(models.KindEquity, models.CategoryBrokerage, models.CurrencyILS, 10, 10)
	eq.ManualPrice = f64(10)
	loan := holding(models.KindLiability, models.CategoryFutureNeeds, models.CurrencyILS, 1, 0)
	loan.ManualPrice = f64(40)
	loan.Allocation = models.AllocationSplits{Cash: 1}

	s := Aggregate(Input{Holdings: []models.Holding{eq, loan}, Settings: models.DefaultSettings(1)})

	assert.InDelta(t, 60, s.TotalNetWorth, tol)
	assert.InDelta(t, 60, s.TotalAfterTax, tol)
	assert.InDelta(t, -40, s.Holdings[1].MarketValue, tol)
	assert.InDelta(t, 100, s.Allocation.Total(), tol)
	assert.Zero(t, s.Holdings[1].Allocation.Total())
	assert.Equal(t, models.LiquidityNone, s.Holdings[1].Liquidity)
}

func TestAggregate_FutureNeedsCountsAgainstNetWorth(t *testing.T) {
	eq := holding(models.KindEquity, models.CategoryBrokerage, models.CurrencyILS, 10, 10)
	eq.ManualPrice = f64(10)
	reserved := holding(models.KindCash, models.CategoryFutureNeeds, models.CurrencyILS, 1, 0)
	reserved.Name = "Wedding fund"
	reserved.ManualPrice = f64(40)
	reserved.Allocation = models.AllocationSplits{Cash: 1}

	s := Aggregate(Input{Holdings: []models.Holding{eq, reserved}, Settings: models.DefaultSettings(1)})

	require.Len(t, s.Holdings, 2)
	assert.InDelta(t, -40, s.Holdings[1].MarketValue, tol)
	assert.Zero(t, s.Holdings[1].Tax)
	assert.Zero(t, s.Holdings[1].Allocation.Total())
	assert.InDelta(t, 60, s.TotalNetWorth, tol)
	assert.InDelta(t, 100, s.Allocation.Total(), tol)
}

func TestAggregate_TaxSimpleUsesIncomeTaxRate(t *testing.T) {
	rsu := holding(models.KindEmployeeEquity, models.CategoryWork, models.CurrencyILS, 10, 50)
	rsu.ManualPrice = f64(100)
	eq := holding(models.KindEquity, models.CategoryBrokerage, models.CurrencyILS, 1, 100)
	eq.ManualPrice = f64(300)

	settings := models.DefaultSettings(1)
	settings.IncomeTaxRate = 0.47
	s := Aggregate(Input{Holdings: []models.Holding{rsu, eq}, Settings: settings})

	require.Len(t, s.Holdings, 2)
	assert.InDelta(t, 470, s.Holdings[0].TaxSimple, tol, "full value at the marginal rate")
	assert.InDelta(t, 125, s.Holdings[0].Tax, tol, "category model taxes the gain only")
	assert.InDelta(t, 50, s.Holdings[1].TaxSimple, tol)
	assert.InDelta(t, 520, s.TotalTaxSimple, tol)

	settings.IncomeTaxRate = 0
	s = Aggregate(Input{Holdings: []models.Holding{rsu}, Settings: settings})
	assert.InDelta(t, 500, s.Holdings[0].TaxSimple, tol, "unset rate falls back to the default")
}

func TestAggregate_DoesNotMutateInputs(t *testing.T) {
	h := holding(models.KindCrypto, models.CategoryCryptoWallet, models.CurrencyUSD, 0.5, 30000)
	h.Symbol = "BTC"
	holdings := []models.Holding{h}
	settings := models.Settings{AllocationTargets: map[string]float64{"crypto": 5}}
	prices := map[string]float64{"BTC-USD": 60000}

	_ = Aggregate(Input{Holdings: holdings, Prices: prices, FXRate: 3.6, Settings: settings})

	assert.Equal(t, "BTC", holdings[0].Symbol)
	assert.Equal(t, 15000.0, holdings[0].CostBasis)
	assert.Len(t, prices, 1)
	assert.Zero(t, settings.CapitalGainsTaxRate)
	assert.Nil(t, settings.IncludeCrypto)
}

func TestAggregate_ExcludeCrypto(t *testing.T) {
	btc := holding(models.KindCrypto, models.CategoryCryptoWallet, models.CurrencyUSD, 1, 100)
	btc.Symbol = "BTC"
	eq := holding(models.KindEquity, models.CategoryBrokerage, models.CurrencyILS, 1, 100)
	eq.ManualPrice = f64(100)

	settings := models.DefaultSettings(1)
	off := false
	settings.IncludeCrypto = &off

	s := Aggregate(Input{
		Holdings: []models.Holding{btc, eq},
		Prices:   map[string]float64{"BTC-USD": 200},
		FXRate:   1,
		Settings: settings,
	})

	require.Len(t, s.Holdings, 2)
	assert.True(t, s.Holdings[0].Excluded)
	assert.InDelta(t, 200, s.Holdings[0].MarketValue, tol)
	assert.InDelta(t, 100, s.TotalNetWorth, tol)
	assert.Zero(t, s.Allocation[models.BucketCrypto])
}

func TestAggregate_ZeroSettingsUseDefaults(t *testing.T) {
	h := holding(models.KindEquity, models.CategoryBrokerage, models.CurrencyUSD, 1, 100)
	h.ManualPrice = f64(200)

	s := Aggregate(Input{Holdings: []models.Holding{h}})

	// FX falls back to 3.6, capital gains to 25%
	assert.InDelta(t, 720, s.TotalNetWorth, 1e-6)
	assert.InDelta(t, 90, s.TotalTax, 1e-6)
	assert.Equal(t, models.DefaultFXRate, s.FXRate)
}

func TestAggregate_Projections(t *testing.T) {
	h := holding(models.KindCash, models.CategoryBankAccount, models.CurrencyILS, 1200, 1)
	h.ManualPrice = f64(1)

	s := Aggregate(Input{Holdings: []models.Holding{h}, Settings: models.DefaultSettings(1)})
	assert.InDelta(t, 4, s.SWRMonthly, 1e-9)
	assert.InDelta(t, 1200*math.Pow(1.05, 40), s.FutureValue40y, 1e-6)
}

func TestAggregate_Liquidity(t *testing.T) {
	cash := holding(models.KindCash, models.CategoryBankAccount, models.CurrencyILS, 100, 1)
	cash.ManualPrice = f64(1)
	fund := holding(models.KindETF, models.CategoryBrokerage, models.CurrencyILS, 3, 100)
	fund.ManualPrice = f64(100)
	coin := holding(models.KindCrypto, models.CategoryCryptoWallet, models.CurrencyILS, 1, 100)
	coin.ManualPrice = f64(100)

	s := Aggregate(Input{Holdings: []models.Holding{cash, fund, coin}, Settings: models.DefaultSettings(1)})
	assert.InDelta(t, 100, s.Liquidity.Liquid, tol)
	assert.InDelta(t, 300, s.Liquidity.SemiLiquid, tol)
	assert.InDelta(t, 100, s.Liquidity.Illiquid, tol)
	assert.InDelta(t, 60, s.Liquidity.SemiLiquidPct, tol)
}

func TestGroupGrants(t *testing.T) {
	d := func(y int, m time.Month, day int) time.Time { return time.Date(y, m, day, 0, 0, 0, 0, time.UTC) }
	grants := []models.StockGrant{
		{Name: "GSU 2023-A (Vested)", GrantDate: d(2023, 3, 8), VestDate: d(2025, 3, 8), Units: 26, GrantPrice: 96.65, IsVested: true},
		{Name: "GSU 2022-A", GrantDate: d(2022, 1, 1), VestDate: d(2024, 1, 1), Units: 18, GrantPrice: 145.53, IsVested: true},
		{Name: "GSU 2023-A (Unvested)", GrantDate: d(2023, 3, 8), VestDate: d(2025, 9, 8), Units: 10, GrantPrice: 96.65},
	}

	groups := GroupGrants(grants, 200)
	require.Len(t, groups, 2)

	assert.Equal(t, d(2022, 1, 1), groups[0].GrantDate)
	g := groups[1]
	assert.Equal(t, 96.65, g.GrantPrice)
	assert.Equal(t, 36.0, g.TotalUnits)
	assert.Equal(t, 26.0, g.VestedUnits)
	assert.Equal(t, 10.0, g.UnvestedUnits)
	assert.Equal(t, d(2025, 9, 8), g.FullVestDate)
	assert.Equal(t, 2000.0, g.UnvestedValue)
	assert.Equal(t, 2, g.Tranches)
}

func TestGroupGrants_SameDateDifferentPriceStaySeparate(t *testing.T) {
	day := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	grants := []models.StockGrant{
		{GrantDate: day, VestDate: day, Units: 1, GrantPrice: 185.92},
		{GrantDate: day.Add(5 * time.Hour), VestDate: day, Units: 2, GrantPrice: 185.92},
		{GrantDate: day, VestDate: day, Units: 4, GrantPrice: 190},
	}
	groups := GroupGrants(grants, 1)
	require.Len(t, groups, 2)
	assert.Equal(t, 3.0, groups[0].TotalUnits)
	assert.Equal(t, 4.0, groups[1].TotalUnits)
}

func TestGrantTax_Modes(t *testing.T) {
	avg := GrantTax(100, 100, nil, models.TaxModeAverage)
	assert.InDelta(t, 10000, avg.GrossValue, tol)
	assert.InDelta(t, 3500, avg.Tax, tol)
	assert.InDelta(t, 6500, avg.NetValue, tol)
	assert.Equal(t, 100.0, avg.VestPrice)

	opt := GrantTax(100, 100, f64(90), models.TaxModeOptimized)
	assert.InDelta(t, 3000, opt.Tax, tol)
	assert.InDelta(t, 7000, opt.NetValue, tol)
	assert.Equal(t, 90.0, opt.VestPrice)

	cur := GrantTax(100, 100, nil, models.TaxModeCurrent)
	assert.InDelta(t, 4500, cur.Tax, tol)

	unknown := GrantTax(100, 100, nil, models.TaxMode("Whatever"))
	assert.Equal(t, models.TaxModeAverage, unknown.Mode)
	assert.InDelta(t, 3500, unknown.Tax, tol)
}

func TestSummarizeGrants(t *testing.T) {
	day := time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)
	grants := []models.StockGrant{
		{GrantDate: day, VestDate: day.AddDate(2, 0, 0), Units: 10, GrantPrice: 144.07, IsVested: true},
		{GrantDate: day, VestDate: day.AddDate(2, 0, 0), Units: 12, GrantPrice: 144.07},
	}
	s := SummarizeGrants(grants, map[string]float64{"GOOG": 100}, 3.5, models.TaxModeAverage)

	require.Len(t, s.Groups, 1)
	assert.Equal(t, "GOOG", s.Groups[0].Symbol)
	assert.InDelta(t, 1000, s.VestedValueUSD, tol)
	assert.InDelta(t, 1200, s.UnvestedValueUSD, tol)
	assert.InDelta(t, 4200, s.UnvestedValueBase, 1e-6)
	assert.InDelta(t, 780, s.UnvestedNet.NetValue, 1e-6)
	assert.InDelta(t, 2730, s.UnvestedNetBase, 1e-6)
}

func TestRebalance(t *testing.T) {
	summary := models.PortfolioSummary{TotalNetWorth: 1000}
	summary.Allocation[models.BucketForeignEquity] = 600
	summary.Allocation[models.BucketCash] = 400

	drifts := Rebalance(summary, map[string]float64{"US Stocks": 50, "cash": 30, "bonds": 20, "bogus": 99})
	require.Len(t, drifts, models.BucketCount)

	byName := map[string]models.Drift{}
	for _, d := range drifts {
		byName[d.Bucket] = d
	}
	assert.InDelta(t, 10, byName["foreign_equity"].DriftPct, tol)
	assert.InDelta(t, -100, byName["foreign_equity"].MoveAmount, tol)
	assert.InDelta(t, 200, byName["bonds"].MoveAmount, tol)
	assert.Equal(t, "domestic_equity", drifts[0].Bucket)
}

func TestRebalance_ZeroNetWorth(t *testing.T) {
	drifts := Rebalance(models.PortfolioSummary{}, map[string]float64{"cash": 100})
	for _, d := range drifts {
		assert.Zero(t, d.ActualPct)
		assert.Zero(t, d.MoveAmount)
	}
}
