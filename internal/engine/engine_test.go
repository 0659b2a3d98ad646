package engine

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zeroAssumptions returns a minimal set with every rate and cost at zero.
func zeroAssumptions() AssumptionSet {
	return AssumptionSet{}
}

// flatScenario is the reference scenario: price 65, 8000 units in year 1,
// 50% growth, 100k invested, the seven cost fields summing to 15, and no
// shipping/marketing/operational/misc costs at all.
func flatScenario() AssumptionSet {
	return AssumptionSet{
		PricePerUnit:      65,
		Year1Volume:       8000,
		AnnualGrowthPct:   50,
		InitialInvestment: 100000,
		Costs: CostStructure{
			Packaging:   3,
			Concentrate: 5,
			Chip:        2,
			Print:       1,
			ShippingBox: 1,
			Labor:       2,
			Accessories: 1,
		},
	}
}

func TestComputeMetrics_SeriesLengths(t *testing.T) {
	for _, a := range []AssumptionSet{zeroAssumptions(), flatScenario(), DefaultAssumptions()} {
		m := ComputeMetrics(a)
		assert.Len(t, m.Annual.Revenue, YearsHorizon)
		assert.Len(t, m.Annual.GrossProfit, YearsHorizon)
		assert.Len(t, m.Annual.NetProfit, YearsHorizon)
		assert.Len(t, m.Monthly.Revenue, MonthsHorizon)
		assert.Len(t, m.Monthly.CumulativeProfit, MonthsHorizon)
		assert.Len(t, m.Monthly.CashFlow, MonthsHorizon)
	}
}

func TestComputeMetrics_ReferenceScenario(t *testing.T) {
	m := ComputeMetrics(flatScenario())

	assert.InDelta(t, 15.0, m.COGSPerUnit, 1e-9)
	assert.InDelta(t, 520000.0, m.Annual.Revenue[0], 1e-6)
	assert.InDelta(t, 120000.0, m.COGSTotal, 1e-6)
	// Returns are zero here, so gross profit is revenue minus COGS.
	assert.InDelta(t, 400000.0, m.Annual.GrossProfit[0], 1e-6)
}

func TestComputeMetrics_ZeroVolumeNeverNaN(t *testing.T) {
	a := DefaultAssumptions()
	a.Year1Volume = 0
	m := ComputeMetrics(a)

	assert.Equal(t, 0.0, m.Marketing.PaidSales)
	assert.Equal(t, 0.0, m.Marketing.OrganicSales)
	assert.Equal(t, 0.0, m.Marketing.OrganicPct)
	assert.Equal(t, 0.0, m.GrossMarginPct)
	assert.Equal(t, 0.0, m.NetMarginPct)

	for _, v := range m.Monthly.Revenue {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
	for _, v := range m.Monthly.CumulativeProfit {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
}

func TestComputeMetrics_UnprofitableUnitEconomics(t *testing.T) {
	a := flatScenario()
	a.PricePerUnit = 10 // below the 15/unit COGS
	a.Marketing.MonthlyBudget = 4000
	a.Marketing.AcquisitionPct = 100
	m := ComputeMetrics(a)

	assert.Equal(t, 0.0, m.Marketing.CAC)
	assert.Equal(t, 0.0, m.Marketing.PaidSales)
	// The full monthly target is organic when paid sales cannot be supported.
	assert.InDelta(t, a.Year1Volume/12, m.Marketing.OrganicSales, 1e-9)
	assert.InDelta(t, 100.0, m.Marketing.OrganicPct, 1e-9)
	assert.Equal(t, 0.0, m.Marketing.LTVToCAC)
}

func TestComputeMetrics_ZeroChurn(t *testing.T) {
	a := DefaultAssumptions()
	a.Misc.MonthlyChurnPct = 0
	m := ComputeMetrics(a)

	assert.Equal(t, 0.0, m.Marketing.CustomerLifespanMonths)
	assert.Equal(t, 0.0, m.Marketing.LTV)
}

func TestComputeMetrics_ZeroBudget(t *testing.T) {
	a := DefaultAssumptions()
	a.Marketing.MonthlyBudget = 0
	m := ComputeMetrics(a)

	assert.Equal(t, 0.0, m.Marketing.AcquisitionSpend)
	assert.Equal(t, 0.0, m.Marketing.RetentionSpend)
	assert.Equal(t, 0.0, m.Marketing.PaidSales)
	assert.InDelta(t, a.Year1Volume/12, m.Marketing.OrganicSales, 1e-9)
	assert.InDelta(t, 100.0, m.Marketing.OrganicPct, 1e-9)
}

func TestComputeMetrics_Idempotent(t *testing.T) {
	a := DefaultAssumptions()
	first := ComputeMetrics(a)
	second := ComputeMetrics(a)
	assert.Equal(t, first, second)
}

func TestComputeMetrics_BreakEvenMonotoneInInvestment(t *testing.T) {
	a := DefaultAssumptions()
	prev := 0
	for _, investment := range []float64{0, 10000, 50000, 200000, 1000000, 1e9} {
		a.InitialInvestment = investment
		m := ComputeMetrics(a)
		assert.GreaterOrEqual(t, m.BreakEvenMonth, prev,
			"break-even month decreased when investment grew to %.0f", investment)
		prev = m.BreakEvenMonth
	}
}

func TestComputeMetrics_BreakEvenSaturates(t *testing.T) {
	a := DefaultAssumptions()
	a.InitialInvestment = 1e12
	m := ComputeMetrics(a)
	assert.Equal(t, MonthsHorizon, m.BreakEvenMonth)
}

func TestComputeMetrics_SerializationRoundTrip(t *testing.T) {
	a := DefaultAssumptions()
	a.Costs.CustomCosts = []NamedCost{{Name: "sticker", Amount: 0.25}, {Name: "sticker", Amount: 0.1}}
	a.Operations.Software.Custom = []NamedCost{{Name: "reporting", Amount: 75}}

	blob, err := json.Marshal(a)
	require.NoError(t, err)

	var restored AssumptionSet
	require.NoError(t, json.Unmarshal(blob, &restored))

	assert.Equal(t, ComputeMetrics(a), ComputeMetrics(restored))
}

func TestComputeMetrics_TaxesNeverNegative(t *testing.T) {
	a := DefaultAssumptions()
	a.Year1Volume = 10 // deeply unprofitable
	m := ComputeMetrics(a)

	for y := 0; y < YearsHorizon; y++ {
		// Net profit of a loss-making year equals pre-tax profit: no credit.
		assert.LessOrEqual(t, m.Annual.NetProfit[y], 0.0)
		assert.False(t, math.IsNaN(m.Annual.NetProfit[y]))
	}
}

func TestComputeMetrics_DualGrowthModelsDiverge(t *testing.T) {
	a := DefaultAssumptions()
	m := ComputeMetrics(a)

	var monthlyYear1 float64
	for i := 0; i < 12; i++ {
		monthlyYear1 += m.Monthly.Revenue[i]
	}
	// The monthly series compounds within the year while the annual series
	// applies the rate per whole year, so year 1 of the two views differs.
	assert.Greater(t, math.Abs(m.Annual.Revenue[0]-monthlyYear1), 1.0)
}
