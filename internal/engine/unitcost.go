package engine

// unitsPerContainer is the assumed container capacity used to amortize
// inbound shipping costs down to a per-unit figure.
const unitsPerContainer = 5000

// UnitCosts is the resolved per-unit cost breakdown. Total is the
// COGS-per-unit figure every downstream stage consumes; it is computed
// once here and threaded through, never recomputed.
type UnitCosts struct {
	Materials        float64 `json:"materials"`
	InboundShipping  float64 `json:"inbound_shipping"`
	OutboundShipping float64 `json:"outbound_shipping"`
	Total            float64 `json:"total"`
}

// ResolveUnitCosts derives per-unit materials and shipping costs from the
// cost structure and shipping configuration. Inputs are trusted to be
// non-negative; division by a zero monthly volume degrades the amortized
// warehouse-rent term to 0.
func ResolveUnitCosts(a AssumptionSet) UnitCosts {
	materials := a.Costs.Packaging +
		a.Costs.Concentrate +
		a.Costs.Chip +
		a.Costs.Print +
		a.Costs.ShippingBox +
		a.Costs.Labor +
		a.Costs.Accessories
	for _, c := range a.Costs.CustomCosts {
		materials += c.Amount
	}

	in := a.Shipping.Inbound
	inbound := in.ContainerCost/unitsPerContainer +
		a.PricePerUnit*in.CustomsDutyPct/100 +
		in.FreightForwarding/unitsPerContainer +
		in.PortHandling/unitsPerContainer

	var outbound float64
	switch a.Shipping.FulfillmentMode {
	case FulfillmentSelf:
		sf := a.Shipping.SelfFulfillment
		outbound = sf.Labor + sf.Postage
		monthlyVolume := a.Year1Volume / 12
		if monthlyVolume > 0 {
			outbound += sf.WarehouseRent / monthlyVolume
		}
	default:
		tp := a.Shipping.ThirdParty
		outbound = tp.PickAndPack + tp.Storage + tp.Postage
	}

	return UnitCosts{
		Materials:        materials,
		InboundShipping:  inbound,
		OutboundShipping: outbound,
		Total:            materials + inbound + outbound,
	}
}
