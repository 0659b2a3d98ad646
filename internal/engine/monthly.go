package engine

import "math"

// MonthsHorizon is the length of the monthly projection.
const MonthsHorizon = 60

// MonthlySeries holds three parallel 60-month sequences. CumulativeProfit
// starts from a -InitialInvestment baseline and accumulates the monthly
// cash flow; it is the series the break-even locator scans.
type MonthlySeries struct {
	Revenue          []float64 `json:"revenue"`
	CumulativeProfit []float64 `json:"cumulative_profit"`
	CashFlow         []float64 `json:"cash_flow"`
}

// ProjectMonthly generates the 60-month projection. The annual growth rate
// is converted to an equivalent monthly compounding rate; fixed, software
// and marketing costs are flat across the horizon (the model deliberately
// does not scale marketing spend with growth).
func ProjectMonthly(a AssumptionSet, cogsPerUnit float64) MonthlySeries {
	monthlyRate := math.Pow(1+a.AnnualGrowthPct/100, 1.0/12) - 1
	baseUnits := a.Year1Volume / 12

	fixedMonthly := (operationsAnnualTotal(a.Operations) + a.Misc.LegalCompliance + a.Misc.RndBudget) / 12
	softwareMonthly := softwareMonthlyTotal(a.Operations.Software)
	marketingMonthly := a.Marketing.MonthlyBudget

	s := MonthlySeries{
		Revenue:          make([]float64, MonthsHorizon),
		CumulativeProfit: make([]float64, MonthsHorizon),
		CashFlow:         make([]float64, MonthsHorizon),
	}

	cumulative := -a.InitialInvestment
	for m := 0; m < MonthsHorizon; m++ {
		units := baseUnits * math.Pow(1+monthlyRate, float64(m))
		revenue := units * a.PricePerUnit
		cogs := units * cogsPerUnit
		processing := revenue * a.Misc.PaymentProcessingPct / 100
		returns := revenue * a.Misc.ReturnsRefundsPct / 100

		expenses := cogs + processing + returns + fixedMonthly + softwareMonthly + marketingMonthly
		profit := revenue - expenses
		cumulative += profit

		s.Revenue[m] = revenue
		s.CashFlow[m] = profit
		s.CumulativeProfit[m] = cumulative
	}

	return s
}

// BreakEvenMonth returns the 1-based month in which cumulative profit
// first reaches zero. A model that never recoups the initial investment
// within the horizon saturates to MonthsHorizon rather than signaling
// absence; callers must not read that as breaking even exactly at month 60.
func BreakEvenMonth(cumulative []float64) int {
	for i, v := range cumulative {
		if v >= 0 {
			return i + 1
		}
	}
	return MonthsHorizon
}

// operationsAnnualTotal sums the six annual fixed-cost categories.
func operationsAnnualTotal(o OperationsConfig) float64 {
	return o.LaborCost + o.RentUtilities + o.OfficeExpenses + o.ToolsEquipment + o.TechFees + o.Travel
}

// softwareMonthlyTotal sums the four fixed subscriptions and any custom tools.
func softwareMonthlyTotal(s SoftwareCosts) float64 {
	total := s.Storefront + s.EmailMarketing + s.Accounting + s.Analytics
	for _, c := range s.Custom {
		total += c.Amount
	}
	return total
}
