package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveUnitCosts_ThirdParty(t *testing.T) {
	a := AssumptionSet{
		PricePerUnit: 40,
		Year1Volume:  6000,
		Costs: CostStructure{
			Packaging:   1,
			Concentrate: 2,
			Chip:        0.5,
			Print:       0.25,
			ShippingBox: 0.75,
			Labor:       1.5,
			Accessories: 1,
			CustomCosts: []NamedCost{{Name: "insert card", Amount: 0.2}, {Name: "qc", Amount: 0.3}},
		},
		Shipping: ShippingConfig{
			FulfillmentMode: FulfillmentThirdParty,
			ThirdParty:      ThirdPartyShipping{PickAndPack: 2, Storage: 0.5, Postage: 6},
			Inbound: InboundShipping{
				ContainerCost:     5000,
				CustomsDutyPct:    5,
				FreightForwarding: 1000,
				PortHandling:      500,
			},
		},
	}
	costs := ResolveUnitCosts(a)

	assert.InDelta(t, 7.5, costs.Materials, 1e-9)
	// 5000/5000 + 40*5% + 1000/5000 + 500/5000 = 1 + 2 + 0.2 + 0.1
	assert.InDelta(t, 3.3, costs.InboundShipping, 1e-9)
	assert.InDelta(t, 8.5, costs.OutboundShipping, 1e-9)
	assert.InDelta(t, costs.Materials+costs.InboundShipping+costs.OutboundShipping, costs.Total, 1e-9)
}

func TestResolveUnitCosts_SelfFulfillment(t *testing.T) {
	a := AssumptionSet{
		Year1Volume: 1200, // 100 units/month
		Shipping: ShippingConfig{
			FulfillmentMode: FulfillmentSelf,
			SelfFulfillment: SelfFulfillmentShipping{Labor: 2, Postage: 5, WarehouseRent: 800},
		},
	}
	costs := ResolveUnitCosts(a)

	// 2 + 5 + 800/100
	assert.InDelta(t, 15.0, costs.OutboundShipping, 1e-9)
}

func TestResolveUnitCosts_SelfFulfillmentZeroVolume(t *testing.T) {
	a := AssumptionSet{
		Year1Volume: 0,
		Shipping: ShippingConfig{
			FulfillmentMode: FulfillmentSelf,
			SelfFulfillment: SelfFulfillmentShipping{Labor: 2, Postage: 5, WarehouseRent: 800},
		},
	}
	costs := ResolveUnitCosts(a)

	// The warehouse-rent amortization degrades to 0 instead of dividing by zero.
	assert.InDelta(t, 7.0, costs.OutboundShipping, 1e-9)
}

func TestResolveUnitCosts_ModeSelectsOutboundStructure(t *testing.T) {
	a := AssumptionSet{
		Year1Volume: 1200,
		Shipping: ShippingConfig{
			FulfillmentMode: FulfillmentThirdParty,
			ThirdParty:      ThirdPartyShipping{PickAndPack: 1, Storage: 1, Postage: 1},
			SelfFulfillment: SelfFulfillmentShipping{Labor: 50, Postage: 50, WarehouseRent: 5000},
		},
	}
	assert.InDelta(t, 3.0, ResolveUnitCosts(a).OutboundShipping, 1e-9)

	a.Shipping.FulfillmentMode = FulfillmentSelf
	assert.InDelta(t, 150.0, ResolveUnitCosts(a).OutboundShipping, 1e-9)
}
