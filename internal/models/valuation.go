package models

// HoldingValuation is the per-holding detail produced by a portfolio pass.
// Monetary fields are in the base currency unless noted.
type HoldingValuation struct {
	HoldingID    int64            `json:"holding_id"`
	Name         string           `json:"name"`
	Symbol       string           `json:"symbol"`        // as stored
	LookupSymbol string           `json:"lookup_symbol"` // as used against the price map
	Kind         AssetKind        `json:"kind"`
	Category     LocationCategory `json:"category"`
	Currency     Currency         `json:"currency"`
	Quantity     float64          `json:"quantity"`
	Price        float64          `json:"price"`         // native currency
	ManualPrice  bool             `json:"manual_price"`
	Unpriced     bool             `json:"unpriced"`
	MarketValue  float64          `json:"market_value"`
	CostBasis    float64          `json:"cost_basis"`
	Tax          float64          `json:"tax"`
	TaxSimple    float64          `json:"tax_simple"`    // kind-based estimate at the marginal income tax rate
	NetAfterTax  float64          `json:"net_after_tax"`
	GainPct      float64          `json:"gain_pct"`
	Allocation   Allocation       `json:"allocation"`
	Liquidity    Liquidity        `json:"liquidity"`
	Excluded     bool             `json:"excluded"`      // left out of totals by settings
}

// Liquidity groups holdings by how quickly they convert to cash.
type Liquidity string

const (
	LiquidityLiquid     Liquidity = "liquid"
	LiquiditySemiLiquid Liquidity = "semi_liquid"
	LiquidityIlliquid   Liquidity = "illiquid"
	LiquidityNone       Liquidity = "none"
)

// LiquidityBreakdown totals market value per liquidity class.
type LiquidityBreakdown struct {
	Liquid        float64 `json:"liquid"`
	SemiLiquid    float64 `json:"semi_liquid"`
	Illiquid      float64 `json:"illiquid"`
	LiquidPct     float64 `json:"liquid_pct"`
	SemiLiquidPct float64 `json:"semi_liquid_pct"`
	IlliquidPct   float64 `json:"illiquid_pct"`
}

// PortfolioSummary is the aggregated result of a portfolio valuation pass.
type PortfolioSummary struct {
	OwnerID         int64              `json:"owner_id"`
	BaseCurrency    Currency           `json:"base_currency"`
	FXRate          float64            `json:"fx_rate"`
	TotalNetWorth   float64            `json:"total_net_worth"`
	TotalAfterTax   float64            `json:"total_after_tax"`
	TotalTax        float64            `json:"total_tax"`
	TotalTaxSimple  float64            `json:"total_tax_simple"`
	TotalCostBasis  float64            `json:"total_cost_basis"`
	TotalGain       float64            `json:"total_gain"`
	TotalGainPct    float64            `json:"total_gain_pct"`
	Allocation      Allocation         `json:"allocation"`
	AllocationPct   Allocation         `json:"allocation_pct"`
	Liquidity       LiquidityBreakdown `json:"liquidity"`
	SWRMonthly      float64            `json:"swr_monthly"`
	FutureValue40y  float64            `json:"future_value_40y"`
	Holdings        []HoldingValuation `json:"holdings"`
	UnpricedSymbols []string           `json:"unpriced_symbols"`
}

// Drift compares a bucket's actual share with its target.
type Drift struct {
	Bucket     string  `json:"bucket"`
	Actual     float64 `json:"actual"`
	ActualPct  float64 `json:"actual_pct"`
	TargetPct  float64 `json:"target_pct"`
	DriftPct   float64 `json:"drift_pct"`
	MoveAmount float64 `json:"move_amount"` // positive = buy, negative = sell
}
