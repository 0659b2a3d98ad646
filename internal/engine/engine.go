// Package engine implements the projection engine: a pure, deterministic
// transformation of a business assumption set into monthly and annual
// financial time series with unit-economics metrics. It performs no I/O,
// holds no state, and is safe to invoke concurrently.
package engine

// CalculatedMetrics is the fully derived output of ComputeMetrics. It has
// no identity of its own: it is rebuilt from scratch on every assumption
// change and is never persisted.
type CalculatedMetrics struct {
	Annual  AnnualSeries  `json:"annual"`
	Monthly MonthlySeries `json:"monthly"`

	BreakEvenMonth int `json:"break_even_month"`

	COGSPerUnit float64   `json:"cogs_per_unit"`
	COGSTotal   float64   `json:"cogs_total"`
	UnitCosts   UnitCosts `json:"unit_costs"`

	GrossMarginPct float64 `json:"gross_margin_pct"`
	NetMarginPct   float64 `json:"net_margin_pct"`

	Marketing MarketingMetrics `json:"marketing"`
	Expenses  ExpenseBreakdown `json:"expenses"`
}

// ComputeMetrics runs all calculation stages over a single assumption set.
// It is total over numeric inputs: divide-by-zero paths resolve to 0 and
// no result is ever NaN or infinite for well-typed input.
func ComputeMetrics(a AssumptionSet) CalculatedMetrics {
	costs := ResolveUnitCosts(a)

	monthly := ProjectMonthly(a, costs.Total)
	annual := ProjectAnnual(a, costs.Total)
	marketing := AttributeMarketing(a, costs.Total)

	if marketing.CAC > 0 {
		marketing.LTVToCAC = marketing.LTV / marketing.CAC
	}

	year1Revenue := annual.Revenue[0]
	cogsTotal := a.Year1Volume * costs.Total

	var grossMargin, netMargin float64
	if year1Revenue > 0 {
		grossMargin = annual.GrossProfit[0] / year1Revenue * 100
		netMargin = annual.NetProfit[0] / year1Revenue * 100
	}

	return CalculatedMetrics{
		Annual:         annual,
		Monthly:        monthly,
		BreakEvenMonth: BreakEvenMonth(monthly.CumulativeProfit),
		COGSPerUnit:    costs.Total,
		COGSTotal:      cogsTotal,
		UnitCosts:      costs,
		GrossMarginPct: grossMargin,
		NetMarginPct:   netMargin,
		Marketing:      marketing,
		Expenses:       AllocateExpenses(a, costs, year1Revenue, cogsTotal),
	}
}
