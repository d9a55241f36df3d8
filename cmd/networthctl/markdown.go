package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/epeers/networth/internal/models"
	"github.com/epeers/networth/internal/services"
)

// printMarkdown renders md for the terminal, falling back to plain text.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

func summaryMarkdown(s models.PortfolioSummary, drifts []models.Drift, warnings []models.Warning) string {
	display := services.DisplayTotals(s)
	cur := s.BaseCurrency
	if cur == "" {
		cur = models.CurrencyILS
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Portfolio summary (owner %d)\n\n", s.OwnerID)
	fmt.Fprintf(&b, "USD/ILS rate: %.4f\n\n", s.FXRate)

	b.WriteString("| | |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Net worth | %s |\n", display["total_net_worth"])
	fmt.Fprintf(&b, "| After tax | %s |\n", display["total_after_tax"])
	fmt.Fprintf(&b, "| Estimated tax | %s |\n", display["total_tax"])
	fmt.Fprintf(&b, "| Estimated tax (marginal rate model) | %s |\n", display["total_tax_simple"])
	fmt.Fprintf(&b, "| Gain | %s (%.2f%%) |\n", display["total_gain"], s.TotalGainPct)
	fmt.Fprintf(&b, "| Monthly safe withdrawal | %s |\n", display["swr_monthly"])
	fmt.Fprintf(&b, "| In 40 years | %s |\n\n", display["future_value_40y"])

	b.WriteString("## Allocation\n\n| Bucket | Value | Share | Target | Move |\n|---|---:|---:|---:|---:|\n")
	for i, bucket := range models.AllBuckets {
		line := fmt.Sprintf("| %s | %s | %.2f%% |", bucket, display[bucket.String()], s.AllocationPct[bucket])
		if i < len(drifts) {
			d := drifts[i]
			line += fmt.Sprintf(" %.2f%% | %s |", d.TargetPct, models.FormatMoney(d.MoveAmount, cur))
		} else {
			line += " | |"
		}
		b.WriteString(line + "\n")
	}

	l := s.Liquidity
	b.WriteString("\n## Liquidity\n\n| Class | Value | Share |\n|---|---:|---:|\n")
	fmt.Fprintf(&b, "| Liquid | %s | %.2f%% |\n", models.FormatMoney(l.Liquid, cur), l.LiquidPct)
	fmt.Fprintf(&b, "| Semi-liquid | %s | %.2f%% |\n", models.FormatMoney(l.SemiLiquid, cur), l.SemiLiquidPct)
	fmt.Fprintf(&b, "| Illiquid | %s | %.2f%% |\n", models.FormatMoney(l.Illiquid, cur), l.IlliquidPct)

	if len(s.Holdings) > 0 {
		b.WriteString("\n## Holdings\n\n| Name | Symbol | Value | Tax | Gain |\n|---|---|---:|---:|---:|\n")
		for _, h := range s.Holdings {
			name := h.Name
			if h.Excluded {
				name += " (excluded)"
			}
			if h.Unpriced {
				name += " (unpriced)"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %.2f%% |\n",
				name, h.Symbol, models.FormatMoney(h.MarketValue, cur), models.FormatMoney(h.Tax, cur), h.GainPct)
		}
	}

	if len(warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range warnings {
			fmt.Fprintf(&b, "- **%s** %s\n", w.Code, w.Message)
		}
	}
	return b.String()
}
