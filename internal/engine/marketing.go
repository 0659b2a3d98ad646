package engine

import "math"

// targetPOAS is the profit-on-ad-spend target used to size how many paid
// sales the monthly budget can support.
const targetPOAS = 1.5

// ChannelMetrics is the estimated performance of one paid traffic source
// given its share of the budget.
type ChannelMetrics struct {
	Name           string  `json:"name"`
	Spend          float64 `json:"spend"`
	Clicks         float64 `json:"clicks"`
	EstimatedSales float64 `json:"estimated_sales"`
	EstimatedCAC   float64 `json:"estimated_cac"`
}

// MarketingMetrics is the customer-economics output of the attribution
// stage. LTVToCAC is filled in by the orchestrator.
type MarketingMetrics struct {
	CAC                    float64          `json:"cac"`
	LTV                    float64          `json:"ltv"`
	LTVToCAC               float64          `json:"ltv_to_cac"`
	ChurnRatePct           float64          `json:"churn_rate_pct"`
	PaidSales              float64          `json:"paid_sales"`
	OrganicSales           float64          `json:"organic_sales"`
	OrganicPct             float64          `json:"organic_pct"`
	AcquisitionSpend       float64          `json:"acquisition_spend"`
	RetentionSpend         float64          `json:"retention_spend"`
	CustomerLifespanMonths float64          `json:"customer_lifespan_months"`
	Channels               []ChannelMetrics `json:"channels"`
}

// AttributeMarketing computes the paid-vs-organic sales split, CAC and
// churn-derived LTV from the monthly budget allocation. Every division is
// guarded: a non-positive profit per unit supports zero paid sales, zero
// churn yields a zero lifespan, and a zero paid count yields a zero CAC.
func AttributeMarketing(a AssumptionSet, cogsPerUnit float64) MarketingMetrics {
	monthlyTarget := a.Year1Volume / 12
	budget := a.Marketing.MonthlyBudget

	acquisition := budget * a.Marketing.AcquisitionPct / 100
	retention := budget - acquisition

	profitPerUnit := a.PricePerUnit - cogsPerUnit

	var potentialPaid float64
	if profitPerUnit > 0 {
		potentialPaid = budget * targetPOAS / profitPerUnit
	}
	paid := math.Min(monthlyTarget, potentialPaid)
	organic := math.Max(0, monthlyTarget-paid)

	var organicPct float64
	if monthlyTarget > 0 {
		organicPct = organic / monthlyTarget * 100
	}

	var cac float64
	if paid > 0 {
		cac = acquisition / paid
	}

	var lifespan float64
	if a.Misc.MonthlyChurnPct > 0 {
		lifespan = 1 / (a.Misc.MonthlyChurnPct / 100)
	}
	ltv := profitPerUnit * lifespan

	return MarketingMetrics{
		CAC:                    cac,
		LTV:                    ltv,
		ChurnRatePct:           a.Misc.MonthlyChurnPct,
		PaidSales:              paid,
		OrganicSales:           organic,
		OrganicPct:             organicPct,
		AcquisitionSpend:       acquisition,
		RetentionSpend:         retention,
		CustomerLifespanMonths: lifespan,
		Channels:               channelBreakdown(a.Marketing),
	}
}

// channelBreakdown estimates clicks, sales and acquisition cost per channel
// from the raw budget shares. Shares are reported as entered; they are not
// normalized to 100%.
func channelBreakdown(m MarketingConfig) []ChannelMetrics {
	rows := make([]ChannelMetrics, 0, len(m.Channels))
	for _, ch := range m.Channels {
		spend := m.MonthlyBudget * ch.BudgetSharePct / 100

		var clicks float64
		if ch.CostPerClick > 0 {
			clicks = spend / ch.CostPerClick
		}
		sales := clicks * ch.ConversionRatePct / 100

		var cac float64
		if sales > 0 {
			cac = spend / sales
		}

		rows = append(rows, ChannelMetrics{
			Name:           ch.Name,
			Spend:          spend,
			Clicks:         clicks,
			EstimatedSales: sales,
			EstimatedCAC:   cac,
		})
	}
	return rows
}
