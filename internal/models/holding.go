package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnknownAssetKind = errors.New("unknown asset kind")
	ErrUnknownCategory  = errors.New("unknown location category")
	ErrUnknownCurrency  = errors.New("unsupported currency")
)

// AssetKind describes what a holding is.
type AssetKind string

const (
	KindEquity         AssetKind = "equity"
	KindETF            AssetKind = "etf"
	KindBondCorporate  AssetKind = "bond_corporate"
	KindBondGovernment AssetKind = "bond_government"
	KindCrypto         AssetKind = "crypto"
	KindCash           AssetKind = "cash"
	KindEmployeeEquity AssetKind = "employee_equity"
	KindFund           AssetKind = "fund"
	KindLiability      AssetKind = "liability"
)

var assetKinds = map[AssetKind]struct{}{
	KindEquity:         {},
	KindETF:            {},
	KindBondCorporate:  {},
	KindBondGovernment: {},
	KindCrypto:         {},
	KindCash:           {},
	KindEmployeeEquity: {},
	KindFund:           {},
	KindLiability:      {},
}

// ParseAssetKind validates a kind tag. Matching is case-insensitive.
func ParseAssetKind(s string) (AssetKind, error) {
	k := AssetKind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := assetKinds[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAssetKind, s)
	}
	return k, nil
}

// IsBond reports whether the kind is one of the bond kinds.
func (k AssetKind) IsBond() bool {
	return k == KindBondCorporate || k == KindBondGovernment
}

// LocationCategory describes where a holding sits and drives tax-rule selection.
type LocationCategory string

const (
	CategoryBankAccount    LocationCategory = "bank_account"
	CategoryBrokerage      LocationCategory = "brokerage"
	CategoryPension        LocationCategory = "pension"
	CategoryWork           LocationCategory = "work"
	CategoryCryptoWallet   LocationCategory = "crypto_wallet"
	CategoryInvestmentFund LocationCategory = "investment_fund"
	CategoryFutureNeeds    LocationCategory = "future_needs"
)

var locationCategories = map[LocationCategory]struct{}{
	CategoryBankAccount:    {},
	CategoryBrokerage:      {},
	CategoryPension:        {},
	CategoryWork:           {},
	CategoryCryptoWallet:   {},
	CategoryInvestmentFund: {},
	CategoryFutureNeeds:    {},
}

// ParseCategory validates a category tag. Matching is case-insensitive.
func ParseCategory(s string) (LocationCategory, error) {
	c := LocationCategory(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := locationCategories[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// DefaultCategory returns the category a holding of the given kind lands in
// when none is specified.
func DefaultCategory(k AssetKind) LocationCategory {
	switch k {
	case KindCrypto:
		return CategoryCryptoWallet
	case KindEmployeeEquity:
		return CategoryWork
	case KindLiability:
		return CategoryFutureNeeds
	case KindFund:
		return CategoryInvestmentFund
	case KindCash, KindBondCorporate, KindBondGovernment:
		return CategoryBankAccount
	default:
		return CategoryBrokerage
	}
}

// Currency is one of the two supported currency codes.
type Currency string

const (
	CurrencyILS Currency = "ILS" // domestic, base
	CurrencyUSD Currency = "USD" // foreign
)

// ParseCurrency validates a currency code.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if c != CurrencyILS && c != CurrencyUSD {
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, s)
	}
	return c, nil
}

// AllocationSplits holds user-specified fractions per risk bucket.
// Either all are zero (fallback classification applies) or they should sum to
// roughly 1.0. The sum is not enforced; over- and under-allocation pass through.
type AllocationSplits struct {
	DomesticEquity float64 `json:"domestic_equity"`
	ForeignEquity  float64 `json:"foreign_equity"`
	Crypto         float64 `json:"crypto"`
	Employment     float64 `json:"employment_equity"`
	Bonds          float64 `json:"bonds"`
	Cash           float64 `json:"cash"`
}

// Sum returns the total of all six fractions.
func (s AllocationSplits) Sum() float64 {
	return s.DomesticEquity + s.ForeignEquity + s.Crypto + s.Employment + s.Bonds + s.Cash
}

// ByBucket returns the fractions indexed in bucket order.
func (s AllocationSplits) ByBucket() [BucketCount]float64 {
	return [BucketCount]float64{
		BucketDomesticEquity: s.DomesticEquity,
		BucketForeignEquity:  s.ForeignEquity,
		BucketCrypto:         s.Crypto,
		BucketEmployment:     s.Employment,
		BucketBonds:          s.Bonds,
		BucketCash:           s.Cash,
	}
}

// Holding represents a single portfolio position.
type Holding struct {
	ID          int64            `json:"id"`
	OwnerID     int64            `json:"owner_id"`
	Name        string           `json:"name"`
	Kind        AssetKind        `json:"kind"`
	Category    LocationCategory `json:"category"`
	Symbol      string           `json:"symbol"`
	Quantity    float64          `json:"quantity"`
	CostPerUnit float64          `json:"cost_per_unit"`
	CostBasis   float64          `json:"cost_basis"` // native currency, quantity * cost_per_unit at last write
	Currency    Currency         `json:"currency"`
	ManualPrice *float64         `json:"manual_price,omitempty"`
	TaxRate     *float64         `json:"tax_rate,omitempty"`
	Allocation  AllocationSplits `json:"allocation"`
	Notes       *string          `json:"notes,omitempty"`
	AcquiredAt  time.Time        `json:"acquired_at"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// IsLiability reports whether the holding represents a committed future
// obligation rather than investable capital.
func (h *Holding) IsLiability() bool {
	return h.Category == CategoryFutureNeeds || h.Kind == KindLiability
}
