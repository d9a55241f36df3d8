package models

import "time"

// DefaultGrantSymbol is the underlying ticker assumed when a grant omits one.
const DefaultGrantSymbol = "GOOG"

// StockGrant is one vesting tranche of an employee equity grant.
// A partially vested grant is stored as two tranches sharing grant date,
// vest date and grant price, one vested and one not.
type StockGrant struct {
	ID         int64     `json:"id"`
	OwnerID    int64     `json:"owner_id"`
	Name       string    `json:"name"`
	Symbol     string    `json:"symbol"`
	GrantDate  time.Time `json:"grant_date"`
	VestDate   time.Time `json:"vest_date"` // full-vest completion date
	Units      float64   `json:"units"`
	GrantPrice float64   `json:"grant_price"` // USD
	VestPrice  *float64  `json:"vest_price,omitempty"`
	IsVested   bool      `json:"is_vested"`
	CreatedAt  time.Time `json:"created_at"`
}

// GrantGroup aggregates tranches sharing grant date and grant price.
type GrantGroup struct {
	GrantDate     time.Time `json:"grant_date"`
	GrantPrice    float64   `json:"grant_price"`
	Symbol        string    `json:"symbol"`
	FullVestDate  time.Time `json:"full_vest_date"`
	TotalUnits    float64   `json:"total_units"`
	VestedUnits   float64   `json:"vested_units"`
	UnvestedUnits float64   `json:"unvested_units"`
	VestedValue   float64   `json:"vested_value"`   // USD at current price
	UnvestedValue float64   `json:"unvested_value"` // USD at current price
	Tranches      int       `json:"tranches"`
}

// GrantValuation is the net-of-tax value of a block of grant units.
type GrantValuation struct {
	Mode       TaxMode `json:"mode"`
	Units      float64 `json:"units"`
	Price      float64 `json:"price"`
	VestPrice  float64 `json:"vest_price"` // current price when none was recorded
	GrossValue float64 `json:"gross_value"`
	TaxRate    float64 `json:"tax_rate"`
	Tax        float64 `json:"tax"`
	NetValue   float64 `json:"net_value"`
}

// GrantSummary totals all grant groups for an owner.
type GrantSummary struct {
	Groups            []GrantGroup   `json:"groups"`
	VestedUnits       float64        `json:"vested_units"`
	UnvestedUnits     float64        `json:"unvested_units"`
	VestedValueUSD    float64        `json:"vested_value_usd"`
	UnvestedValueUSD  float64        `json:"unvested_value_usd"`
	UnvestedValueBase float64        `json:"unvested_value_base"`
	UnvestedNet       GrantValuation `json:"unvested_net"` // USD
	UnvestedNetBase   float64        `json:"unvested_net_base"`
}
