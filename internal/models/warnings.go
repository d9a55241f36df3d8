package models

// WarningCode categorizes warnings by subsystem.
// W2xxx = pricing, W3xxx = validation.
type WarningCode string

const (
	WarnUnpricedSymbol     WarningCode = "W2001" // no price from any source, valued at zero
	WarnFXFallback         WarningCode = "W2002" // live FX unavailable, stored or default rate used
	WarnPriceSourceFailed  WarningCode = "W2003" // a provider call failed, later source may have answered
	WarnAllocationSplitSum WarningCode = "W3001" // explicit splits do not sum to 1.0, passed through as-is
)

// Warning represents a non-fatal issue encountered during processing.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}
