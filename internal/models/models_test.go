package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssetKind(t *testing.T) {
	k, err := ParseAssetKind(" Crypto ")
	require.NoError(t, err)
	assert.Equal(t, KindCrypto, k)

	_, err = ParseAssetKind("warrant")
	assert.True(t, errors.Is(err, ErrUnknownAssetKind))
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("PENSION")
	require.NoError(t, err)
	assert.Equal(t, CategoryPension, c)

	_, err = ParseCategory("offshore")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestParseCurrency(t *testing.T) {
	c, err := ParseCurrency("usd")
	require.NoError(t, err)
	assert.Equal(t, CurrencyUSD, c)

	_, err = ParseCurrency("EUR")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestDefaultCategory(t *testing.T) {
	assert.Equal(t, CategoryCryptoWallet, DefaultCategory(KindCrypto))
	assert.Equal(t, CategoryWork, DefaultCategory(KindEmployeeEquity))
	assert.Equal(t, CategoryFutureNeeds, DefaultCategory(KindLiability))
	assert.Equal(t, CategoryBankAccount, DefaultCategory(KindBondGovernment))
	assert.Equal(t, CategoryBrokerage, DefaultCategory(KindETF))
}

func TestIsLiability(t *testing.T) {
	assert.True(t, (&Holding{Category: CategoryFutureNeeds}).IsLiability())
	assert.True(t, (&Holding{Kind: KindLiability, Category: CategoryBankAccount}).IsLiability())
	assert.False(t, (&Holding{Kind: KindCash, Category: CategoryBankAccount}).IsLiability())
}

func TestParseTaxMode(t *testing.T) {
	m, err := ParseTaxMode("Optimized")
	require.NoError(t, err)
	assert.Equal(t, TaxModeOptimized, m)

	_, err = ParseTaxMode("optimized")
	assert.ErrorIs(t, err, ErrUnknownTaxMode)
}

func TestParseBucket(t *testing.T) {
	cases := map[string]Bucket{
		"foreign_equity":    BucketForeignEquity,
		"employment_equity": BucketEmployment,
		"US Stocks":         BucketForeignEquity,
		"IL Stocks":         BucketDomesticEquity,
		"Work":              BucketEmployment,
		" Cash ":            BucketCash,
	}
	for in, want := range cases {
		got, ok := ParseBucket(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseBucket("real_estate")
	assert.False(t, ok)
}

func TestBucketString(t *testing.T) {
	assert.Equal(t, "bonds", BucketBonds.String())
	assert.Equal(t, "bucket(9)", Bucket(9).String())
}

func TestAllocationJSON(t *testing.T) {
	var a Allocation
	a[BucketCrypto] = 12.5
	a[BucketCash] = 3

	b, err := json.Marshal(a)
	require.NoError(t, err)

	var m map[string]float64
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Len(t, m, BucketCount)
	assert.Equal(t, 12.5, m["crypto"])
	assert.Equal(t, 0.0, m["bonds"])

	var back Allocation
	require.NoError(t, json.Unmarshal([]byte(`{"crypto":1,"Work":2,"unknown":3}`), &back))
	assert.Equal(t, 1.0, back[BucketCrypto])
	assert.Equal(t, 2.0, back[BucketEmployment])
	assert.Equal(t, 3.0, back.Total())
}

func TestAllocationSplits(t *testing.T) {
	s := AllocationSplits{DomesticEquity: 0.2, Bonds: 0.3, Employment: 0.5}
	assert.InDelta(t, 1.0, s.Sum(), 1e-12)
	by := s.ByBucket()
	assert.Equal(t, 0.5, by[BucketEmployment])
	assert.Equal(t, 0.3, by[BucketBonds])
}

func TestSettingsEffective(t *testing.T) {
	off := false
	s := Settings{
		OwnerID:             4,
		FXRate:              -1,
		CapitalGainsTaxRate: 1.5,
		GSUTaxMode:          "Sometimes",
		SWRRate:             0.035,
		IncludeCrypto:       &off,
		AllocationTargets:   map[string]float64{"cash": 10},
	}
	e := s.Effective()

	assert.Equal(t, CurrencyILS, e.BaseCurrency)
	assert.Equal(t, DefaultFXRate, e.FXRate)
	assert.Equal(t, DefaultCapitalGainsTaxRate, e.CapitalGainsTaxRate)
	assert.Equal(t, DefaultIncomeTaxRate, e.IncomeTaxRate)
	assert.Equal(t, TaxModeAverage, e.GSUTaxMode)
	assert.Equal(t, 0.035, e.SWRRate)
	assert.False(t, e.CryptoIncluded())

	e.AllocationTargets["cash"] = 50
	assert.Equal(t, 10.0, s.AllocationTargets["cash"], "targets map is copied")
}

func TestSettingsCryptoIncludedDefault(t *testing.T) {
	assert.True(t, Settings{}.CryptoIncluded())
	assert.True(t, Settings{}.Effective().CryptoIncluded())
	assert.True(t, DefaultSettings(1).CryptoIncluded())
}

func TestValidRate(t *testing.T) {
	assert.True(t, ValidRate(1))
	assert.True(t, ValidRate(0.25))
	assert.False(t, ValidRate(0))
	assert.False(t, ValidRate(-0.1))
	assert.False(t, ValidRate(1.01))
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 2.35, RoundMoney(2.345))
	assert.Equal(t, -1.5, RoundMoney(-1.499999))
	assert.Equal(t, 12.35, RoundPct(12.3456))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$80.00", FormatMoney(80, CurrencyUSD))
	assert.Equal(t, "$1,234.57", FormatMoney(1234.567, CurrencyUSD))
}

func TestFlexibleDate(t *testing.T) {
	var d struct {
		A FlexibleDate `json:"a"`
		B FlexibleDate `json:"b"`
		C FlexibleDate `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"2024-03-06","b":"2024-03-06T10:00:00Z","c":""}`), &d))
	assert.Equal(t, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), d.A.Time)
	assert.Equal(t, 10, d.B.Hour())
	assert.True(t, d.C.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"a":"06/03/2024"}`), &d))
}

func TestSummaryRounded(t *testing.T) {
	s := PortfolioSummary{
		TotalNetWorth: 1234.5678,
		TotalGainPct:  12.3456,
		Holdings:      []HoldingValuation{{MarketValue: 10.005, Tax: 0.333}},
	}
	s.Allocation[BucketCash] = 99.999

	r := s.Rounded()
	assert.Equal(t, 1234.57, r.TotalNetWorth)
	assert.Equal(t, 12.35, r.TotalGainPct)
	assert.Equal(t, 100.0, r.Allocation[BucketCash])
	assert.Equal(t, 10.01, r.Holdings[0].MarketValue)
	assert.Equal(t, 0.33, r.Holdings[0].Tax)
	assert.Equal(t, 10.005, s.Holdings[0].MarketValue, "original left untouched")
}
