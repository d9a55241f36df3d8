package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/epeers/networth/internal/models"
)

type warningContextKey struct{}

// WarningCollector gathers the non-fatal pricing and valuation problems of one
// request. A summary and a grants lookup in the same request can hit the same
// unpriced symbol, so identical warnings are kept once.
type WarningCollector struct {
	mu       sync.Mutex
	seen     map[models.Warning]struct{}
	warnings []models.Warning
}

// NewWarningContext attaches an empty collector to ctx. The handler keeps the
// returned collector and copies its warnings into the response envelope.
func NewWarningContext(ctx context.Context) (context.Context, *WarningCollector) {
	wc := &WarningCollector{seen: make(map[models.Warning]struct{})}
	return context.WithValue(ctx, warningContextKey{}, wc), wc
}

// AddWarning records w on the collector in ctx, if any.
func AddWarning(ctx context.Context, w models.Warning) {
	wc, ok := ctx.Value(warningContextKey{}).(*WarningCollector)
	if !ok || wc == nil {
		return
	}
	wc.mu.Lock()
	defer wc.mu.Unlock()
	if _, dup := wc.seen[w]; dup {
		return
	}
	wc.seen[w] = struct{}{}
	wc.warnings = append(wc.warnings, w)
}

// Warnf formats a message and records it under code.
func Warnf(ctx context.Context, code models.WarningCode, format string, args ...any) {
	AddWarning(ctx, models.Warning{Code: code, Message: fmt.Sprintf(format, args...)})
}

// GetWarnings returns a copy of the warnings in the order they were raised.
func (wc *WarningCollector) GetWarnings() []models.Warning {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	return append([]models.Warning(nil), wc.warnings...)
}
