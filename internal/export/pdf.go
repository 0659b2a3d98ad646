package export

import (
	"bytes"
	"fmt"

	"github.com/avelier/forecast-service/internal/engine"
	"github.com/avelier/forecast-service/internal/models"
	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
)

// GeneratePDF renders the scenario report as a PDF document.
func GeneratePDF(s *models.Scenario, m engine.CalculatedMetrics) (*bytes.Buffer, error) {
	doc := pdf.NewMaroto(consts.Portrait, consts.A4)
	doc.SetPageMargins(20, 20, 20)

	darkGray := color.Color{Red: 38, Green: 38, Blue: 34}
	mediumGray := color.Color{Red: 121, Green: 119, Blue: 109}

	doc.Row(15, func() {
		doc.Col(12, func() {
			doc.Text("FINANCIAL PROJECTION", props.Text{
				Size:  22,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
	})

	doc.Row(8, func() {
		doc.Col(12, func() {
			doc.Text(s.Name, props.Text{
				Size:  14,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
	})
	if s.Description != "" {
		doc.Row(6, func() {
			doc.Col(12, func() {
				doc.Text(s.Description, props.Text{
					Size:  9,
					Color: mediumGray,
				})
			})
		})
	}

	doc.Row(8, func() {})

	// Key metrics
	keyMetrics := [][2]string{
		{"COGS per unit", fmt.Sprintf("$%.2f", m.COGSPerUnit)},
		{"Gross margin", fmt.Sprintf("%.1f%%", m.GrossMarginPct)},
		{"Net margin", fmt.Sprintf("%.1f%%", m.NetMarginPct)},
		{"Break-even month", fmt.Sprintf("%d", m.BreakEvenMonth)},
		{"CAC", fmt.Sprintf("$%.2f", m.Marketing.CAC)},
		{"LTV", fmt.Sprintf("$%.2f", m.Marketing.LTV)},
		{"LTV:CAC", fmt.Sprintf("%.2f", m.Marketing.LTVToCAC)},
		{"Organic sales share", fmt.Sprintf("%.1f%%", m.Marketing.OrganicPct)},
	}
	doc.Row(6, func() {
		doc.Col(12, func() {
			doc.Text("KEY METRICS", props.Text{Size: 8, Style: consts.Bold, Color: darkGray})
		})
	})
	for _, kv := range keyMetrics {
		label, value := kv[0], kv[1]
		doc.Row(5, func() {
			doc.Col(6, func() {
				doc.Text(label, props.Text{Size: 9, Color: mediumGray})
			})
			doc.Col(6, func() {
				doc.Text(value, props.Text{Size: 9, Color: darkGray, Align: consts.Right})
			})
		})
	}

	doc.Row(8, func() {})

	// Annual projection table
	doc.Row(6, func() {
		doc.Col(3, func() {
			doc.Text("Year", props.Text{Size: 8, Style: consts.Bold, Color: darkGray})
		})
		doc.Col(3, func() {
			doc.Text("Revenue", props.Text{Size: 8, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
		doc.Col(3, func() {
			doc.Text("Gross Profit", props.Text{Size: 8, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
		doc.Col(3, func() {
			doc.Text("Net Profit", props.Text{Size: 8, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
	})
	for y := 0; y < engine.YearsHorizon; y++ {
		year := y
		doc.Row(6, func() {
			doc.Col(3, func() {
				doc.Text(fmt.Sprintf("Year %d", year+1), props.Text{Size: 9, Color: darkGray})
			})
			doc.Col(3, func() {
				doc.Text(fmt.Sprintf("$%.0f", m.Annual.Revenue[year]), props.Text{Size: 9, Color: darkGray, Align: consts.Right})
			})
			doc.Col(3, func() {
				doc.Text(fmt.Sprintf("$%.0f", m.Annual.GrossProfit[year]), props.Text{Size: 9, Color: darkGray, Align: consts.Right})
			})
			doc.Col(3, func() {
				doc.Text(fmt.Sprintf("$%.0f", m.Annual.NetProfit[year]), props.Text{Size: 9, Color: darkGray, Align: consts.Right})
			})
		})
	}

	doc.Row(8, func() {})

	// Marketing channels
	doc.Row(6, func() {
		doc.Col(4, func() {
			doc.Text("Channel", props.Text{Size: 8, Style: consts.Bold, Color: darkGray})
		})
		doc.Col(2, func() {
			doc.Text("Spend", props.Text{Size: 8, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
		doc.Col(2, func() {
			doc.Text("Clicks", props.Text{Size: 8, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
		doc.Col(2, func() {
			doc.Text("Sales", props.Text{Size: 8, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
		doc.Col(2, func() {
			doc.Text("CAC", props.Text{Size: 8, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
	})
	for _, ch := range m.Marketing.Channels {
		channel := ch
		doc.Row(6, func() {
			doc.Col(4, func() {
				doc.Text(channel.Name, props.Text{Size: 9, Color: darkGray})
			})
			doc.Col(2, func() {
				doc.Text(fmt.Sprintf("$%.0f", channel.Spend), props.Text{Size: 9, Color: darkGray, Align: consts.Right})
			})
			doc.Col(2, func() {
				doc.Text(fmt.Sprintf("%.0f", channel.Clicks), props.Text{Size: 9, Color: darkGray, Align: consts.Right})
			})
			doc.Col(2, func() {
				doc.Text(fmt.Sprintf("%.1f", channel.EstimatedSales), props.Text{Size: 9, Color: darkGray, Align: consts.Right})
			})
			doc.Col(2, func() {
				doc.Text(fmt.Sprintf("$%.2f", channel.EstimatedCAC), props.Text{Size: 9, Color: darkGray, Align: consts.Right})
			})
		})
	}

	doc.Row(8, func() {})

	// Expense breakdown
	doc.Row(6, func() {
		doc.Col(12, func() {
			doc.Text("YEAR 1 EXPENSE BREAKDOWN", props.Text{Size: 8, Style: consts.Bold, Color: darkGray})
		})
	})
	breakdown := [][2]string{
		{"Product materials", fmt.Sprintf("$%.0f", m.Expenses.ProductMaterials)},
		{"Shipping", fmt.Sprintf("$%.0f", m.Expenses.Shipping)},
		{"Marketing", fmt.Sprintf("$%.0f", m.Expenses.Marketing)},
		{"Operational", fmt.Sprintf("$%.0f", m.Expenses.Operational)},
		{"Misc", fmt.Sprintf("$%.0f", m.Expenses.Misc)},
	}
	for _, kv := range breakdown {
		label, value := kv[0], kv[1]
		doc.Row(5, func() {
			doc.Col(6, func() {
				doc.Text(label, props.Text{Size: 9, Color: mediumGray})
			})
			doc.Col(6, func() {
				doc.Text(value, props.Text{Size: 9, Color: darkGray, Align: consts.Right})
			})
		})
	}

	buf, err := doc.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pdf: %w", err)
	}
	return &buf, nil
}
