// Package export renders a scenario and its computed metrics into
// downloadable report formats. Exporters read metric fields verbatim and
// perform no recomputation.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/avelier/forecast-service/internal/engine"
	"github.com/avelier/forecast-service/internal/models"
)

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// WriteCSV streams the full report as CSV: summary metrics, the annual and
// monthly series, the marketing channels and the expense breakdown.
func WriteCSV(w io.Writer, s *models.Scenario, m engine.CalculatedMetrics) error {
	cw := csv.NewWriter(w)

	records := [][]string{
		{"Scenario", s.Name},
		{"Description", s.Description},
		{},
		{"Metric", "Value"},
		{"COGS per unit", money(m.COGSPerUnit)},
		{"COGS total (year 1)", money(m.COGSTotal)},
		{"Gross margin %", percent(m.GrossMarginPct)},
		{"Net margin %", percent(m.NetMarginPct)},
		{"Break-even month", fmt.Sprintf("%d", m.BreakEvenMonth)},
		{"CAC", money(m.Marketing.CAC)},
		{"LTV", money(m.Marketing.LTV)},
		{"LTV:CAC", fmt.Sprintf("%.2f", m.Marketing.LTVToCAC)},
		{"Customer lifespan (months)", fmt.Sprintf("%.1f", m.Marketing.CustomerLifespanMonths)},
		{"Paid sales / month", fmt.Sprintf("%.1f", m.Marketing.PaidSales)},
		{"Organic sales / month", fmt.Sprintf("%.1f", m.Marketing.OrganicSales)},
		{"Organic %", percent(m.Marketing.OrganicPct)},
		{},
		{"Year", "Revenue", "Gross Profit", "Net Profit"},
	}
	for y := 0; y < engine.YearsHorizon; y++ {
		records = append(records, []string{
			fmt.Sprintf("%d", y+1),
			money(m.Annual.Revenue[y]),
			money(m.Annual.GrossProfit[y]),
			money(m.Annual.NetProfit[y]),
		})
	}

	records = append(records, []string{}, []string{"Month", "Revenue", "Cash Flow", "Cumulative Profit"})
	for i := 0; i < engine.MonthsHorizon; i++ {
		records = append(records, []string{
			fmt.Sprintf("%d", i+1),
			money(m.Monthly.Revenue[i]),
			money(m.Monthly.CashFlow[i]),
			money(m.Monthly.CumulativeProfit[i]),
		})
	}

	records = append(records, []string{}, []string{"Channel", "Spend", "Clicks", "Est. Sales", "Est. CAC"})
	for _, ch := range m.Marketing.Channels {
		records = append(records, []string{
			ch.Name,
			money(ch.Spend),
			fmt.Sprintf("%.0f", ch.Clicks),
			fmt.Sprintf("%.1f", ch.EstimatedSales),
			money(ch.EstimatedCAC),
		})
	}

	records = append(records, []string{},
		[]string{"Expense Category", "Year 1 Total"},
		[]string{"Product materials", money(m.Expenses.ProductMaterials)},
		[]string{"Shipping", money(m.Expenses.Shipping)},
		[]string{"Marketing", money(m.Expenses.Marketing)},
		[]string{"Operational", money(m.Expenses.Operational)},
		[]string{"Misc", money(m.Expenses.Misc)},
	)

	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
