package exporter

import (
	"fmt"
	"strings"

	"appsalescli/pkg/contracts/domain"
)

// formatAmount formats a monetary value for export with exactly 2 decimal
// places, so values like 1.4 appear as 1.40.
func formatAmount(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatQuantity formats an integer quantity for export
func formatQuantity(q int64) string {
	return fmt.Sprintf("%d", q)
}

// formatProceeds renders a per-currency proceeds list as a single cell,
// keeping the first-seen currency order of the breakdown.
func formatProceeds(proceeds []domain.CurrencyProceeds) string {
	if len(proceeds) == 0 {
		return ""
	}
	parts := make([]string, len(proceeds))
	for i, p := range proceeds {
		parts[i] = fmt.Sprintf("%s %s", p.Currency, formatAmount(p.Amount))
	}
	return strings.Join(parts, "; ")
}
