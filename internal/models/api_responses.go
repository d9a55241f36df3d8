package models

// CreateHoldingRequest represents the request body for adding a holding
type CreateHoldingRequest struct {
	Name        string            `json:"name" binding:"required"`
	Kind        string            `json:"kind" binding:"required"`
	Category    string            `json:"category"` // defaults from kind
	Symbol      string            `json:"symbol" binding:"required"`
	Quantity    float64           `json:"quantity"`
	CostPerUnit float64           `json:"cost_per_unit"`
	Currency    string            `json:"currency" binding:"required"`
	ManualPrice *float64          `json:"manual_price"`
	TaxRate     *float64          `json:"tax_rate"`
	Allocation  *AllocationSplits `json:"allocation"`
	Notes       *string           `json:"notes"`
	AcquiredAt  *FlexibleDate     `json:"acquired_at"`
}

// UpdateHoldingRequest represents the request body for updating a holding.
// Nil fields are left unchanged.
type UpdateHoldingRequest struct {
	Name        *string           `json:"name"`
	Category    *string           `json:"category"`
	Symbol      *string           `json:"symbol"`
	Quantity    *float64          `json:"quantity"`
	CostPerUnit *float64          `json:"cost_per_unit"`
	ManualPrice *float64          `json:"manual_price"` // zero clears the override
	TaxRate     *float64          `json:"tax_rate"`     // zero is exempt, negative clears the override
	Allocation  *AllocationSplits `json:"allocation"`
	Notes       *string           `json:"notes"`
}

// CreateGrantRequest represents the request body for adding a grant tranche
type CreateGrantRequest struct {
	Name       string       `json:"name" binding:"required"`
	Symbol     string       `json:"symbol"`
	GrantDate  FlexibleDate `json:"grant_date" binding:"required"`
	VestDate   FlexibleDate `json:"vest_date" binding:"required"`
	Units      float64      `json:"units" binding:"required"`
	GrantPrice float64      `json:"grant_price"`
	VestPrice  *float64     `json:"vest_price"`
	IsVested   bool         `json:"is_vested"`
}

// HoldingListResponse wraps holdings with any validation warnings
type HoldingListResponse struct {
	Holdings []Holding `json:"holdings"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// ImportHoldingsResponse reports the outcome of a CSV import
type ImportHoldingsResponse struct {
	Imported int       `json:"imported"`
	Holdings []Holding `json:"holdings"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// SummaryResponse is the portfolio summary with display strings and warnings
type SummaryResponse struct {
	Summary  PortfolioSummary  `json:"summary"`
	Display  map[string]string `json:"display"`
	Warnings []Warning         `json:"warnings,omitempty"`
}

// GrantsResponse is the grant aggregation view
type GrantsResponse struct {
	Grants   GrantSummary       `json:"grants"`
	Prices   map[string]float64 `json:"prices"` // current USD price per underlying symbol
	FXRate   float64            `json:"fx_rate"`
	Warnings []Warning          `json:"warnings,omitempty"`
}

// RebalanceResponse lists per-bucket drift against allocation targets
type RebalanceResponse struct {
	NetWorth float64   `json:"net_worth"`
	Drifts   []Drift   `json:"drifts"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
