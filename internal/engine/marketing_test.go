package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeMarketing_PaidSalesCappedByTarget(t *testing.T) {
	a := AssumptionSet{
		PricePerUnit: 100,
		Year1Volume:  1200, // target 100/month
		Marketing:    MarketingConfig{MonthlyBudget: 100000, AcquisitionPct: 60},
		Misc:         MiscConfig{MonthlyChurnPct: 5},
	}
	// COGS 0: profit/unit 100, budget supports 1500 paid sales, capped at 100.
	m := AttributeMarketing(a, 0)

	assert.InDelta(t, 100.0, m.PaidSales, 1e-9)
	assert.InDelta(t, 0.0, m.OrganicSales, 1e-9)
	assert.InDelta(t, 0.0, m.OrganicPct, 1e-9)
	assert.InDelta(t, 60000.0, m.AcquisitionSpend, 1e-9)
	assert.InDelta(t, 40000.0, m.RetentionSpend, 1e-9)
	assert.InDelta(t, 600.0, m.CAC, 1e-9)
	assert.InDelta(t, 20.0, m.CustomerLifespanMonths, 1e-9)
	assert.InDelta(t, 2000.0, m.LTV, 1e-9)
}

func TestAttributeMarketing_BudgetLimitedPaidSales(t *testing.T) {
	a := AssumptionSet{
		PricePerUnit: 50,
		Year1Volume:  12000, // target 1000/month
		Marketing:    MarketingConfig{MonthlyBudget: 2000, AcquisitionPct: 100},
	}
	// profit/unit 30: supportable paid sales = 2000*1.5/30 = 100.
	m := AttributeMarketing(a, 20)

	assert.InDelta(t, 100.0, m.PaidSales, 1e-9)
	assert.InDelta(t, 900.0, m.OrganicSales, 1e-9)
	assert.InDelta(t, 90.0, m.OrganicPct, 1e-9)
	assert.InDelta(t, 20.0, m.CAC, 1e-9)
}

func TestChannelBreakdown_Guards(t *testing.T) {
	m := MarketingConfig{
		MonthlyBudget: 1000,
		Channels: []ChannelAllocation{
			{Name: "paid search", BudgetSharePct: 50, CostPerClick: 2, ConversionRatePct: 4},
			{Name: "free cpc", BudgetSharePct: 30, CostPerClick: 0, ConversionRatePct: 4},
			{Name: "no conversion", BudgetSharePct: 20, CostPerClick: 1, ConversionRatePct: 0},
		},
	}
	rows := channelBreakdown(m)
	require.Len(t, rows, 3)

	assert.InDelta(t, 500.0, rows[0].Spend, 1e-9)
	assert.InDelta(t, 250.0, rows[0].Clicks, 1e-9)
	assert.InDelta(t, 10.0, rows[0].EstimatedSales, 1e-9)
	assert.InDelta(t, 50.0, rows[0].EstimatedCAC, 1e-9)

	// CPC 0 resolves clicks (and everything downstream) to 0, not Inf.
	assert.Equal(t, 0.0, rows[1].Clicks)
	assert.Equal(t, 0.0, rows[1].EstimatedSales)
	assert.Equal(t, 0.0, rows[1].EstimatedCAC)

	// Zero conversion keeps the estimated CAC at 0 rather than dividing by zero.
	assert.Equal(t, 0.0, rows[2].EstimatedSales)
	assert.Equal(t, 0.0, rows[2].EstimatedCAC)

	for _, row := range rows {
		assert.False(t, math.IsNaN(row.EstimatedCAC) || math.IsInf(row.EstimatedCAC, 0))
	}
}

func TestChannelBreakdown_SharesNotNormalized(t *testing.T) {
	m := MarketingConfig{
		MonthlyBudget: 1000,
		Channels: []ChannelAllocation{
			{Name: "a", BudgetSharePct: 90, CostPerClick: 1, ConversionRatePct: 1},
			{Name: "b", BudgetSharePct: 90, CostPerClick: 1, ConversionRatePct: 1},
		},
	}
	rows := channelBreakdown(m)
	require.Len(t, rows, 2)

	// Overallocated shares are reported as entered; the engine does not rescale.
	assert.InDelta(t, 900.0, rows[0].Spend, 1e-9)
	assert.InDelta(t, 900.0, rows[1].Spend, 1e-9)
}

func TestBreakEvenMonth(t *testing.T) {
	tests := []struct {
		name       string
		cumulative []float64
		want       int
	}{
		{"immediate", []float64{0, 5, 10}, 1},
		{"mid series", []float64{-10, -2, 3, 8}, 3},
		{"never", []float64{-10, -8, -6}, MonthsHorizon},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BreakEvenMonth(tt.cumulative))
		})
	}
}
