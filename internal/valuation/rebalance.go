package valuation

import "github.com/epeers/networth/internal/models"

// Rebalance compares the summary's bucket allocation with target percentages
// keyed by bucket name or legacy alias. Buckets without a target are compared
// against 0%; unknown keys are ignored.
// Actual percentages are taken against total net worth, so liabilities pull
// every bucket's share up. MoveAmount is what must be bought (positive) or
// sold (negative) in the base currency to reach the target.
func Rebalance(summary models.PortfolioSummary, targets map[string]float64) []models.Drift {
	nw := summary.TotalNetWorth
	var byBucket [models.BucketCount]float64
	for name, pct := range targets {
		if b, ok := models.ParseBucket(name); ok {
			byBucket[b] += pct
		}
	}
	out := make([]models.Drift, 0, models.BucketCount)
	for _, b := range models.AllBuckets {
		actual := summary.Allocation[b]
		var actualPct float64
		if nw > 0 {
			actualPct = actual / nw * 100
		}
		target := byBucket[b]
		drift := actualPct - target
		out = append(out, models.Drift{
			Bucket:     b.String(),
			Actual:     actual,
			ActualPct:  actualPct,
			TargetPct:  target,
			DriftPct:   drift,
			MoveAmount: -drift * nw / 100,
		})
	}
	return out
}
