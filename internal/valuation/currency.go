// Package valuation is the portfolio valuation and aggregation engine.
//
// Every function in this package is a pure computation over in-memory data:
// nothing here performs I/O, logs, or mutates its arguments. Inputs are treated
// as best-effort data and every operation returns a complete result rather than
// an error. A missing price values a holding at zero, an unknown category falls
// back to the general capital-gains and domestic-equity rules, and divisions by
// zero yield zero.
package valuation

import "github.com/epeers/networth/internal/models"

// Normalize converts an amount in the given currency into the base currency.
// fxRate is ILS per one USD. Foreign (USD) amounts are multiplied by the rate;
// ILS and any unrecognized code pass through unchanged.
func Normalize(amount float64, currency models.Currency, fxRate float64) float64 {
	if currency == models.CurrencyUSD {
		return amount * fxRate
	}
	return amount
}
