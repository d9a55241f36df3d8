package valuation

import "github.com/epeers/networth/internal/models"

// LiquidityOf classifies a holding by how quickly it converts to cash.
// Liabilities are not counted in any class.
func LiquidityOf(h *models.Holding) models.Liquidity {
	if h.IsLiability() {
		return models.LiquidityNone
	}
	switch h.Kind {
	case models.KindCash, models.KindBondCorporate, models.KindBondGovernment:
		return models.LiquidityLiquid
	case models.KindCrypto:
		return models.LiquidityIlliquid
	default:
		return models.LiquiditySemiLiquid
	}
}

func addLiquidity(b *models.LiquidityBreakdown, v models.HoldingValuation) {
	switch v.Liquidity {
	case models.LiquidityLiquid:
		b.Liquid += v.MarketValue
	case models.LiquiditySemiLiquid:
		b.SemiLiquid += v.MarketValue
	case models.LiquidityIlliquid:
		b.Illiquid += v.MarketValue
	}
}

func finishLiquidity(b *models.LiquidityBreakdown, netWorth float64) {
	if netWorth <= 0 {
		return
	}
	b.LiquidPct = b.Liquid / netWorth * 100
	b.SemiLiquidPct = b.SemiLiquid / netWorth * 100
	b.IlliquidPct = b.Illiquid / netWorth * 100
}
