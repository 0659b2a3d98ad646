package engine

import "math"

// YearsHorizon is the length of the annual projection.
const YearsHorizon = 5

// AnnualSeries holds three parallel 5-year sequences, index 0 = Year 1.
type AnnualSeries struct {
	Revenue     []float64 `json:"revenue"`
	GrossProfit []float64 `json:"gross_profit"`
	NetProfit   []float64 `json:"net_profit"`
}

// ProjectAnnual generates the 5-year projection by applying the annual
// growth rate directly per year. This is intentionally a separate formula
// from the monthly compounding in ProjectMonthly: the two views diverge
// slightly over the same growth input and must not be reconciled, since
// doing so would change observable output.
func ProjectAnnual(a AssumptionSet, cogsPerUnit float64) AnnualSeries {
	fixed := operationsAnnualTotal(a.Operations) + a.Misc.LegalCompliance + a.Misc.RndBudget
	marketing := a.Marketing.MonthlyBudget * 12
	software := softwareMonthlyTotal(a.Operations.Software) * 12

	s := AnnualSeries{
		Revenue:     make([]float64, YearsHorizon),
		GrossProfit: make([]float64, YearsHorizon),
		NetProfit:   make([]float64, YearsHorizon),
	}

	for y := 0; y < YearsHorizon; y++ {
		units := a.Year1Volume * math.Pow(1+a.AnnualGrowthPct/100, float64(y))
		revenue := units * a.PricePerUnit
		cogs := units * cogsPerUnit
		returns := revenue * a.Misc.ReturnsRefundsPct / 100
		gross := revenue - cogs - returns

		processing := revenue * a.Misc.PaymentProcessingPct / 100
		preTax := gross - processing - fixed - marketing - software
		// Losses never generate a tax credit.
		tax := math.Max(0, preTax*a.Misc.TaxRatePct/100)

		s.Revenue[y] = revenue
		s.GrossProfit[y] = gross
		s.NetProfit[y] = preTax - tax
	}

	return s
}
