package engine

// Fulfillment modes for outbound shipping.
const (
	FulfillmentThirdParty = "3pl"
	FulfillmentSelf       = "self"
)

// NamedCost is a user-defined cost line item. Names are free text and
// not required to be unique; only the amounts participate in sums.
type NamedCost struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// CostStructure holds the per-unit production cost components.
type CostStructure struct {
	Packaging   float64     `json:"packaging"`
	Concentrate float64     `json:"concentrate"`
	Chip        float64     `json:"chip"`
	Print       float64     `json:"print"`
	ShippingBox float64     `json:"shipping_box"`
	Labor       float64     `json:"labor"`
	Accessories float64     `json:"accessories"`
	CustomCosts []NamedCost `json:"custom_costs"`
}

// ThirdPartyShipping is the outbound cost structure when fulfillment is
// outsourced to a 3PL. All fields are flat per-unit amounts.
type ThirdPartyShipping struct {
	PickAndPack float64 `json:"pick_and_pack"`
	Storage     float64 `json:"storage"`
	Postage     float64 `json:"postage"`
}

// SelfFulfillmentShipping is the outbound cost structure for in-house
// fulfillment. WarehouseRent is a monthly amount amortized over monthly
// unit volume.
type SelfFulfillmentShipping struct {
	Labor         float64 `json:"labor"`
	Postage       float64 `json:"postage"`
	WarehouseRent float64 `json:"warehouse_rent"`
}

// InboundShipping covers getting stock from the manufacturer to the
// warehouse. Always applies regardless of fulfillment mode.
type InboundShipping struct {
	ContainerCost     float64 `json:"container_cost"`
	CustomsDutyPct    float64 `json:"customs_duty_pct"`
	FreightForwarding float64 `json:"freight_forwarding"`
	PortHandling      float64 `json:"port_handling"`
}

// ShippingConfig selects one of two mutually exclusive outbound structures
// via FulfillmentMode; the inbound structure is always active.
type ShippingConfig struct {
	FulfillmentMode string                  `json:"fulfillment_mode"`
	ThirdParty      ThirdPartyShipping      `json:"third_party"`
	SelfFulfillment SelfFulfillmentShipping `json:"self_fulfillment"`
	Inbound         InboundShipping         `json:"inbound"`
}

// ChannelAllocation describes one paid traffic source. Budget shares are
// user-entered and not normalized; the UI surfaces imbalance but the
// engine reports the raw allocation.
type ChannelAllocation struct {
	Name              string  `json:"name"`
	BudgetSharePct    float64 `json:"budget_share_pct"`
	CostPerClick      float64 `json:"cost_per_click"`
	ConversionRatePct float64 `json:"conversion_rate_pct"`
}

// MarketingConfig is the monthly paid-acquisition plan. AcquisitionPct is
// the legacy acquisition-vs-retention split; the per-channel allocation is
// the primary view and is allowed to disagree with it.
type MarketingConfig struct {
	MonthlyBudget  float64             `json:"monthly_budget"`
	Channels       []ChannelAllocation `json:"channels"`
	AcquisitionPct float64             `json:"acquisition_pct"`
}

// SoftwareCosts holds the four fixed monthly subscriptions plus any
// user-defined monthly tools.
type SoftwareCosts struct {
	Storefront     float64     `json:"storefront"`
	EmailMarketing float64     `json:"email_marketing"`
	Accounting     float64     `json:"accounting"`
	Analytics      float64     `json:"analytics"`
	Custom         []NamedCost `json:"custom"`
}

// OperationsConfig holds the six annual fixed-cost categories and the
// monthly software stack.
type OperationsConfig struct {
	LaborCost      float64       `json:"labor_cost"`
	RentUtilities  float64       `json:"rent_utilities"`
	OfficeExpenses float64       `json:"office_expenses"`
	ToolsEquipment float64       `json:"tools_equipment"`
	TechFees       float64       `json:"tech_fees"`
	Travel         float64       `json:"travel"`
	Software       SoftwareCosts `json:"software"`
}

// MiscConfig holds rates and the two remaining annual fixed costs.
type MiscConfig struct {
	PaymentProcessingPct float64 `json:"payment_processing_pct"`
	TaxRatePct           float64 `json:"tax_rate_pct"`
	ReturnsRefundsPct    float64 `json:"returns_refunds_pct"`
	MonthlyChurnPct      float64 `json:"monthly_churn_pct"`
	LegalCompliance      float64 `json:"legal_compliance"`
	RndBudget            float64 `json:"rnd_budget"`
}

// AssumptionSet is the immutable input of the projection engine. A single
// value fully determines the computed metrics; the engine never reads or
// writes state outside of it.
type AssumptionSet struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	PricePerUnit      float64 `json:"price_per_unit"`
	Year1Volume       float64 `json:"year1_volume"`
	AnnualGrowthPct   float64 `json:"annual_growth_pct"`
	InitialInvestment float64 `json:"initial_investment"`

	Costs      CostStructure    `json:"costs"`
	Shipping   ShippingConfig   `json:"shipping"`
	Marketing  MarketingConfig  `json:"marketing"`
	Operations OperationsConfig `json:"operations"`
	Misc       MiscConfig       `json:"misc"`
}

// DefaultAssumptions returns the starter model used to seed a new scenario.
func DefaultAssumptions() AssumptionSet {
	return AssumptionSet{
		Name:              "New Scenario",
		PricePerUnit:      49,
		Year1Volume:       6000,
		AnnualGrowthPct:   40,
		InitialInvestment: 50000,
		Costs: CostStructure{
			Packaging:   1.2,
			Concentrate: 3.5,
			Chip:        0.8,
			Print:       0.4,
			ShippingBox: 0.6,
			Labor:       2.0,
			Accessories: 0.5,
			CustomCosts: []NamedCost{},
		},
		Shipping: ShippingConfig{
			FulfillmentMode: FulfillmentThirdParty,
			ThirdParty: ThirdPartyShipping{
				PickAndPack: 2.5,
				Storage:     0.4,
				Postage:     5.9,
			},
			SelfFulfillment: SelfFulfillmentShipping{
				Labor:         1.8,
				Postage:       6.5,
				WarehouseRent: 1200,
			},
			Inbound: InboundShipping{
				ContainerCost:     4500,
				CustomsDutyPct:    3.5,
				FreightForwarding: 900,
				PortHandling:      600,
			},
		},
		Marketing: MarketingConfig{
			MonthlyBudget:  5000,
			AcquisitionPct: 70,
			Channels: []ChannelAllocation{
				{Name: "Meta Ads", BudgetSharePct: 40, CostPerClick: 1.2, ConversionRatePct: 2.5},
				{Name: "Google Ads", BudgetSharePct: 25, CostPerClick: 1.8, ConversionRatePct: 3.2},
				{Name: "TikTok", BudgetSharePct: 15, CostPerClick: 0.9, ConversionRatePct: 1.4},
				{Name: "Influencers", BudgetSharePct: 12, CostPerClick: 2.4, ConversionRatePct: 4.0},
				{Name: "Email", BudgetSharePct: 8, CostPerClick: 0.3, ConversionRatePct: 5.5},
			},
		},
		Operations: OperationsConfig{
			LaborCost:      48000,
			RentUtilities:  12000,
			OfficeExpenses: 3600,
			ToolsEquipment: 2400,
			TechFees:       4800,
			Travel:         3000,
			Software: SoftwareCosts{
				Storefront:     39,
				EmailMarketing: 60,
				Accounting:     30,
				Analytics:      50,
				Custom:         []NamedCost{},
			},
		},
		Misc: MiscConfig{
			PaymentProcessingPct: 2.9,
			TaxRatePct:           21,
			ReturnsRefundsPct:    3,
			MonthlyChurnPct:      8,
			LegalCompliance:      2500,
			RndBudget:            6000,
		},
	}
}
