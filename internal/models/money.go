package models

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// RoundMoney rounds an amount to two decimal places, half away from zero.
func RoundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// RoundPct rounds a percentage to two decimal places.
func RoundPct(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// FormatMoney renders an amount in the given currency, e.g. "₪2,880.00" or "$80.00".
func FormatMoney(v float64, cur Currency) string {
	minor := decimal.NewFromFloat(v).Shift(2).Round(0).IntPart()
	return money.New(minor, string(cur)).Display()
}

// Rounded returns a copy of the summary with money rounded to cents and
// percentages to two places. Per-holding detail is rounded the same way.
func (s PortfolioSummary) Rounded() PortfolioSummary {
	out := s
	out.TotalNetWorth = RoundMoney(s.TotalNetWorth)
	out.TotalAfterTax = RoundMoney(s.TotalAfterTax)
	out.TotalTax = RoundMoney(s.TotalTax)
	out.TotalTaxSimple = RoundMoney(s.TotalTaxSimple)
	out.TotalCostBasis = RoundMoney(s.TotalCostBasis)
	out.TotalGain = RoundMoney(s.TotalGain)
	out.TotalGainPct = RoundPct(s.TotalGainPct)
	out.SWRMonthly = RoundMoney(s.SWRMonthly)
	out.FutureValue40y = RoundMoney(s.FutureValue40y)
	for b := range s.Allocation {
		out.Allocation[b] = RoundMoney(s.Allocation[b])
		out.AllocationPct[b] = RoundPct(s.AllocationPct[b])
	}
	out.Liquidity = LiquidityBreakdown{
		Liquid:        RoundMoney(s.Liquidity.Liquid),
		SemiLiquid:    RoundMoney(s.Liquidity.SemiLiquid),
		Illiquid:      RoundMoney(s.Liquidity.Illiquid),
		LiquidPct:     RoundPct(s.Liquidity.LiquidPct),
		SemiLiquidPct: RoundPct(s.Liquidity.SemiLiquidPct),
		IlliquidPct:   RoundPct(s.Liquidity.IlliquidPct),
	}
	out.Holdings = make([]HoldingValuation, len(s.Holdings))
	for i, v := range s.Holdings {
		v.MarketValue = RoundMoney(v.MarketValue)
		v.CostBasis = RoundMoney(v.CostBasis)
		v.Tax = RoundMoney(v.Tax)
		v.TaxSimple = RoundMoney(v.TaxSimple)
		v.NetAfterTax = RoundMoney(v.NetAfterTax)
		v.GainPct = RoundPct(v.GainPct)
		for b := range v.Allocation {
			v.Allocation[b] = RoundMoney(v.Allocation[b])
		}
		out.Holdings[i] = v
	}
	return out
}
