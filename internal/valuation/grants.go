package valuation

import (
	"sort"
	"strings"
	"time"

	"github.com/epeers/networth/internal/models"
)

// Blended grant tax rates. These are rough approximations of the income and
// capital-gains mix, not derived from bracket or holding-period rules.
const (
	GrantRateAverage   = 0.35
	GrantRateCurrent   = 0.45
	GrantRateOptimized = 0.30
)

// GrantRate returns the blended rate for a tax mode. Unknown modes use Average.
func GrantRate(mode models.TaxMode) float64 {
	switch mode {
	case models.TaxModeCurrent:
		return GrantRateCurrent
	case models.TaxModeOptimized:
		return GrantRateOptimized
	default:
		return GrantRateAverage
	}
}

// GrantTax values a block of grant units net of tax under the selected mode.
// The blended rate applies to the gross value. vestPrice only affects the
// reported vest price; when absent the current price stands in.
func GrantTax(units, currentPrice float64, vestPrice *float64, mode models.TaxMode) models.GrantValuation {
	if _, err := models.ParseTaxMode(string(mode)); err != nil {
		mode = models.DefaultGSUTaxMode
	}
	vp := currentPrice
	if vestPrice != nil && *vestPrice > 0 {
		vp = *vestPrice
	}
	gross := units * currentPrice
	rate := GrantRate(mode)
	tax := nonNegative(gross * rate)
	return models.GrantValuation{
		Mode:       mode,
		Units:      units,
		Price:      currentPrice,
		VestPrice:  vp,
		GrossValue: gross,
		TaxRate:    rate,
		Tax:        tax,
		NetValue:   gross - tax,
	}
}

type grantKey struct {
	date  string
	price float64
}

// GroupGrants merges tranches sharing grant date (by calendar day) and grant
// price. Each group's full-vest date is the latest vest date among its
// tranches, and unit values use currentPrice. Groups are returned ordered by
// grant date, then grant price.
func GroupGrants(grants []models.StockGrant, currentPrice float64) []models.GrantGroup {
	index := make(map[grantKey]int)
	var groups []models.GrantGroup

	for _, g := range grants {
		key := grantKey{date: g.GrantDate.Format("2006-01-02"), price: g.GrantPrice}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.GrantGroup{
				GrantDate:  dayOf(g.GrantDate),
				GrantPrice: g.GrantPrice,
				Symbol:     grantSymbol(g),
			})
		}
		grp := &groups[i]
		grp.Tranches++
		grp.TotalUnits += g.Units
		if g.IsVested {
			grp.VestedUnits += g.Units
		} else {
			grp.UnvestedUnits += g.Units
		}
		if g.VestDate.After(grp.FullVestDate) {
			grp.FullVestDate = g.VestDate
		}
	}

	for i := range groups {
		groups[i].VestedValue = groups[i].VestedUnits * currentPrice
		groups[i].UnvestedValue = groups[i].UnvestedUnits * currentPrice
	}

	sort.SliceStable(groups, func(a, b int) bool {
		if !groups[a].GrantDate.Equal(groups[b].GrantDate) {
			return groups[a].GrantDate.Before(groups[b].GrantDate)
		}
		return groups[a].GrantPrice < groups[b].GrantPrice
	})
	return groups
}

// SummarizeGrants groups tranches and totals them. The current price is
// looked up by each tranche group's symbol; fxRate converts USD totals to the
// base currency.
func SummarizeGrants(grants []models.StockGrant, prices map[string]float64, fxRate float64, mode models.TaxMode) models.GrantSummary {
	bySymbol := make(map[string][]models.StockGrant)
	var symbols []string
	for _, g := range grants {
		sym := grantSymbol(g)
		if _, ok := bySymbol[sym]; !ok {
			symbols = append(symbols, sym)
		}
		bySymbol[sym] = append(bySymbol[sym], g)
	}

	out := models.GrantSummary{Groups: []models.GrantGroup{}}
	var unvestedNet, unvestedGross, unvestedUnits, unvestedTax float64
	for _, sym := range symbols {
		price := prices[sym]
		for _, grp := range GroupGrants(bySymbol[sym], price) {
			out.Groups = append(out.Groups, grp)
			out.VestedUnits += grp.VestedUnits
			out.UnvestedUnits += grp.UnvestedUnits
			out.VestedValueUSD += grp.VestedValue
			out.UnvestedValueUSD += grp.UnvestedValue
		}
		v := GrantTax(unitsUnvested(bySymbol[sym]), price, nil, mode)
		unvestedUnits += v.Units
		unvestedGross += v.GrossValue
		unvestedTax += v.Tax
		unvestedNet += v.NetValue
	}

	if _, err := models.ParseTaxMode(string(mode)); err != nil {
		mode = models.DefaultGSUTaxMode
	}
	out.UnvestedNet = models.GrantValuation{
		Mode:       mode,
		Units:      unvestedUnits,
		GrossValue: unvestedGross,
		TaxRate:    GrantRate(mode),
		Tax:        unvestedTax,
		NetValue:   unvestedNet,
	}
	if unvestedUnits > 0 {
		out.UnvestedNet.Price = unvestedGross / unvestedUnits
		out.UnvestedNet.VestPrice = out.UnvestedNet.Price
	}
	out.UnvestedValueBase = Normalize(out.UnvestedValueUSD, models.CurrencyUSD, fxRate)
	out.UnvestedNetBase = Normalize(unvestedNet, models.CurrencyUSD, fxRate)
	return out
}

func unitsUnvested(grants []models.StockGrant) float64 {
	var u float64
	for _, g := range grants {
		if !g.IsVested {
			u += g.Units
		}
	}
	return u
}

func grantSymbol(g models.StockGrant) string {
	sym := strings.ToUpper(strings.TrimSpace(g.Symbol))
	if sym == "" {
		return models.DefaultGrantSymbol
	}
	return sym
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// GrantSymbols returns the distinct underlying tickers of the tranches, in
// first-seen order, as SummarizeGrants looks them up.
func GrantSymbols(grants []models.StockGrant) []string {
	seen := make(map[string]struct{}, len(grants))
	var out []string
	for _, g := range grants {
		sym := grantSymbol(g)
		if _, ok := seen[sym]; ok {
			continue
		}
		seen[sym] = struct{}{}
		out = append(out, sym)
	}
	return out
}
