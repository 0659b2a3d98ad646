package engine

import "math"

// ExpenseBreakdown restates the Year-1 totals into five top-level
// reporting categories.
type ExpenseBreakdown struct {
	ProductMaterials float64 `json:"product_materials"`
	Shipping         float64 `json:"shipping"`
	Marketing        float64 `json:"marketing"`
	Operational      float64 `json:"operational"`
	Misc             float64 `json:"misc"`
}

// AllocateExpenses builds the Year-1 expense breakdown. The tax term uses
// a pre-tax figure recomputed locally from this stage's own groupings
// (software folds into operational here, unlike the annual aggregator);
// the two computations are kept independent on purpose and are not
// guaranteed bit-identical in all edge cases.
func AllocateExpenses(a AssumptionSet, costs UnitCosts, year1Revenue, year1COGS float64) ExpenseBreakdown {
	units := a.Year1Volume

	materials := costs.Materials * units
	shipping := (costs.InboundShipping + costs.OutboundShipping) * units
	marketing := a.Marketing.MonthlyBudget * 12
	operational := operationsAnnualTotal(a.Operations) + softwareMonthlyTotal(a.Operations.Software)*12

	processing := year1Revenue * a.Misc.PaymentProcessingPct / 100
	returns := year1Revenue * a.Misc.ReturnsRefundsPct / 100

	preTax := year1Revenue - year1COGS - marketing - operational - processing - returns
	taxes := math.Max(0, preTax*a.Misc.TaxRatePct/100)

	return ExpenseBreakdown{
		ProductMaterials: materials,
		Shipping:         shipping,
		Marketing:        marketing,
		Operational:      operational,
		Misc:             taxes + processing + returns + a.Misc.LegalCompliance + a.Misc.RndBudget,
	}
}
