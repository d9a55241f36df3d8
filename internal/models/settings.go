package models

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrUnknownTaxMode = errors.New("unknown tax mode")

// TaxMode selects the blended rate used to value employee equity grants.
type TaxMode string

const (
	TaxModeAverage   TaxMode = "Average"
	TaxModeCurrent   TaxMode = "Current"
	TaxModeOptimized TaxMode = "Optimized"
)

// ParseTaxMode validates a tax mode name.
func ParseTaxMode(s string) (TaxMode, error) {
	switch m := TaxMode(s); m {
	case TaxModeAverage, TaxModeCurrent, TaxModeOptimized:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTaxMode, s)
}

// Defaults applied to absent or malformed settings fields.
const (
	DefaultFXRate              = 3.6
	DefaultIncomeTaxRate       = 0.50
	DefaultCapitalGainsTaxRate = 0.25
	DefaultSWRRate             = 0.04
	DefaultGSUTaxMode          = TaxModeAverage
)

// Settings is the per-owner configuration record.
type Settings struct {
	OwnerID             int64              `json:"owner_id"`
	BaseCurrency        Currency           `json:"base_currency"`
	FXRate              float64            `json:"fx_rate"` // ILS per USD
	UseManualFX         bool               `json:"use_manual_fx"`
	IncomeTaxRate       float64            `json:"income_tax_rate"`
	CapitalGainsTaxRate float64            `json:"capital_gains_tax_rate"`
	GSUTaxMode          TaxMode            `json:"gsu_tax_mode"`
	SWRRate             float64            `json:"swr_rate"`
	IncludeCrypto       *bool              `json:"include_crypto"`     // nil counts as true
	AllocationTargets   map[string]float64 `json:"allocation_targets"` // bucket name -> percent
	UpdatedAt           time.Time          `json:"updated_at"`
}

// DefaultSettings returns the settings an owner starts with.
func DefaultSettings(ownerID int64) Settings {
	return Settings{
		OwnerID:             ownerID,
		BaseCurrency:        CurrencyILS,
		FXRate:              DefaultFXRate,
		IncomeTaxRate:       DefaultIncomeTaxRate,
		CapitalGainsTaxRate: DefaultCapitalGainsTaxRate,
		GSUTaxMode:          DefaultGSUTaxMode,
		SWRRate:             DefaultSWRRate,
		IncludeCrypto:       boolPtr(true),
		AllocationTargets:   map[string]float64{},
	}
}

// CryptoIncluded reports whether crypto holdings count toward totals.
func (s Settings) CryptoIncluded() bool {
	return s.IncludeCrypto == nil || *s.IncludeCrypto
}

func boolPtr(b bool) *bool { return &b }

// Effective returns a copy with missing or malformed fields replaced by defaults.
func (s Settings) Effective() Settings {
	out := s
	if out.BaseCurrency == "" {
		out.BaseCurrency = CurrencyILS
	}
	if !(out.FXRate > 0) || math.IsInf(out.FXRate, 0) {
		out.FXRate = DefaultFXRate
	}
	if !ValidRate(out.IncomeTaxRate) {
		out.IncomeTaxRate = DefaultIncomeTaxRate
	}
	if !ValidRate(out.CapitalGainsTaxRate) {
		out.CapitalGainsTaxRate = DefaultCapitalGainsTaxRate
	}
	if _, err := ParseTaxMode(string(out.GSUTaxMode)); err != nil {
		out.GSUTaxMode = DefaultGSUTaxMode
	}
	if !ValidRate(out.SWRRate) {
		out.SWRRate = DefaultSWRRate
	}
	out.IncludeCrypto = boolPtr(s.CryptoIncluded())
	targets := make(map[string]float64, len(s.AllocationTargets))
	for k, v := range s.AllocationTargets {
		targets[k] = v
	}
	out.AllocationTargets = targets
	return out
}

// ValidRate reports whether r is a usable rate fraction in (0, 1].
// Zero is treated as absent.
func ValidRate(r float64) bool {
	return r > 0 && r <= 1 && !math.IsNaN(r)
}

// ValidFraction reports whether r lies in [0, 1]. Per-holding tax overrides
// use it so that an explicit zero marks the holding exempt.
func ValidFraction(r float64) bool {
	return r >= 0 && r <= 1
}

// UpdateSettingsRequest is the body of PUT /settings. Nil fields are left unchanged.
type UpdateSettingsRequest struct {
	FXRate              *float64           `json:"fx_rate"`
	UseManualFX         *bool              `json:"use_manual_fx"`
	IncomeTaxRate       *float64           `json:"income_tax_rate"`
	CapitalGainsTaxRate *float64           `json:"capital_gains_tax_rate"`
	GSUTaxMode          *string            `json:"gsu_tax_mode"`
	SWRRate             *float64           `json:"swr_rate"`
	IncludeCrypto       *bool              `json:"include_crypto"`
	AllocationTargets   map[string]float64 `json:"allocation_targets"`
}
