package export

import (
	"fmt"
	"io"

	"github.com/avelier/forecast-service/internal/engine"
	"github.com/avelier/forecast-service/internal/models"
	"github.com/beevik/etree"
)

// WriteXML streams the full report as an XML document.
func WriteXML(w io.Writer, s *models.Scenario, m engine.CalculatedMetrics) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("scenario")
	root.CreateAttr("id", s.ID)
	root.CreateElement("name").SetText(s.Name)
	root.CreateElement("description").SetText(s.Description)

	metrics := root.CreateElement("metrics")
	addValue(metrics, "cogsPerUnit", m.COGSPerUnit)
	addValue(metrics, "cogsTotal", m.COGSTotal)
	addValue(metrics, "grossMarginPct", m.GrossMarginPct)
	addValue(metrics, "netMarginPct", m.NetMarginPct)
	metrics.CreateElement("breakEvenMonth").SetText(fmt.Sprintf("%d", m.BreakEvenMonth))

	marketing := metrics.CreateElement("marketing")
	addValue(marketing, "cac", m.Marketing.CAC)
	addValue(marketing, "ltv", m.Marketing.LTV)
	addValue(marketing, "ltvToCac", m.Marketing.LTVToCAC)
	addValue(marketing, "churnRatePct", m.Marketing.ChurnRatePct)
	addValue(marketing, "paidSales", m.Marketing.PaidSales)
	addValue(marketing, "organicSales", m.Marketing.OrganicSales)
	addValue(marketing, "organicPct", m.Marketing.OrganicPct)
	addValue(marketing, "acquisitionSpend", m.Marketing.AcquisitionSpend)
	addValue(marketing, "retentionSpend", m.Marketing.RetentionSpend)
	addValue(marketing, "customerLifespanMonths", m.Marketing.CustomerLifespanMonths)

	channels := marketing.CreateElement("channels")
	for _, ch := range m.Marketing.Channels {
		el := channels.CreateElement("channel")
		el.CreateAttr("name", ch.Name)
		addValue(el, "spend", ch.Spend)
		addValue(el, "clicks", ch.Clicks)
		addValue(el, "estimatedSales", ch.EstimatedSales)
		addValue(el, "estimatedCac", ch.EstimatedCAC)
	}

	annual := metrics.CreateElement("annual")
	for y := 0; y < engine.YearsHorizon; y++ {
		el := annual.CreateElement("year")
		el.CreateAttr("index", fmt.Sprintf("%d", y+1))
		addValue(el, "revenue", m.Annual.Revenue[y])
		addValue(el, "grossProfit", m.Annual.GrossProfit[y])
		addValue(el, "netProfit", m.Annual.NetProfit[y])
	}

	monthly := metrics.CreateElement("monthly")
	for i := 0; i < engine.MonthsHorizon; i++ {
		el := monthly.CreateElement("month")
		el.CreateAttr("index", fmt.Sprintf("%d", i+1))
		addValue(el, "revenue", m.Monthly.Revenue[i])
		addValue(el, "cashFlow", m.Monthly.CashFlow[i])
		addValue(el, "cumulativeProfit", m.Monthly.CumulativeProfit[i])
	}

	expenses := metrics.CreateElement("expenseBreakdown")
	addValue(expenses, "productMaterials", m.Expenses.ProductMaterials)
	addValue(expenses, "shipping", m.Expenses.Shipping)
	addValue(expenses, "marketing", m.Expenses.Marketing)
	addValue(expenses, "operational", m.Expenses.Operational)
	addValue(expenses, "misc", m.Expenses.Misc)

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write xml: %w", err)
	}
	return nil
}

func addValue(parent *etree.Element, tag string, v float64) {
	parent.CreateElement(tag).SetText(fmt.Sprintf("%.2f", v))
}
