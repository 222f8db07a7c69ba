package model

// PricingConfig holds the unit price for every material the takeoff produces.
type PricingConfig struct {
	FabricPerFoot float64 `json:"fabric_per_foot" mapstructure:"fabric_per_foot"`
	LinePost      float64 `json:"line_post" mapstructure:"line_post"`
	EndPost       float64 `json:"end_post" mapstructure:"end_post"`
	CornerPost    float64 `json:"corner_post" mapstructure:"corner_post"`
	TopRail       float64 `json:"top_rail" mapstructure:"top_rail"` // per 21 ft stick
	TieWire       float64 `json:"tie_wire" mapstructure:"tie_wire"`
	LoopCap       float64 `json:"loop_cap" mapstructure:"loop_cap"`
	PostCap       float64 `json:"post_cap" mapstructure:"post_cap"`
	BraceBand     float64 `json:"brace_band" mapstructure:"brace_band"`
	TensionBar    float64 `json:"tension_bar" mapstructure:"tension_bar"`
	TensionBand   float64 `json:"tension_band" mapstructure:"tension_band"`
	NutAndBolt    float64 `json:"nut_and_bolt" mapstructure:"nut_and_bolt"`
}

// MaterialKind identifies a priced line of the bill of quantities.
type MaterialKind string

const (
	MaterialFabric      MaterialKind = "fabric"
	MaterialLinePost    MaterialKind = "line_post"
	MaterialEndPost     MaterialKind = "end_post"
	MaterialCornerPost  MaterialKind = "corner_post"
	MaterialTopRail     MaterialKind = "top_rail"
	MaterialTieWire     MaterialKind = "tie_wire"
	MaterialLoopCap     MaterialKind = "loop_cap"
	MaterialPostCap     MaterialKind = "post_cap"
	MaterialBraceBand   MaterialKind = "brace_band"
	MaterialTensionBar  MaterialKind = "tension_bar"
	MaterialTensionBand MaterialKind = "tension_band"
	MaterialNutAndBolt  MaterialKind = "nut_and_bolt"
)

// LineItem is one priced material of a takeoff.
type LineItem struct {
	Kind      MaterialKind `json:"kind"`
	Label     string       `json:"label"`
	Unit      string       `json:"unit"`
	Quantity  float64      `json:"quantity"`
	UnitPrice float64      `json:"unit_price"`
	Extended  float64      `json:"extended"`
}

// material describes how a kind is read from a result and priced.
type material struct {
	kind     MaterialKind
	label    string
	unit     string
	quantity func(EstimationResult) *int
	price    func(PricingConfig) float64
}

// countedMaterials lists the optional materials in display order. Fabric is
// handled separately because it is always present and measured in feet.
var countedMaterials = []material{
	{MaterialLinePost, "Line posts", "ea", func(r EstimationResult) *int { return r.InteriorLinePosts }, func(p PricingConfig) float64 { return p.LinePost }},
	{MaterialEndPost, "End posts", "ea", func(r EstimationResult) *int { return r.Ends }, func(p PricingConfig) float64 { return p.EndPost }},
	{MaterialCornerPost, "Corner posts", "ea", func(r EstimationResult) *int { return r.Corners }, func(p PricingConfig) float64 { return p.CornerPost }},
	{MaterialTopRail, "Top rail", "stick", func(r EstimationResult) *int { return r.TopRailSticks }, func(p PricingConfig) float64 { return p.TopRail }},
	{MaterialTieWire, "Tie wires", "ea", func(r EstimationResult) *int { return r.TieWires }, func(p PricingConfig) float64 { return p.TieWire }},
	{MaterialLoopCap, "Loop caps", "ea", func(r EstimationResult) *int { return r.LoopCaps }, func(p PricingConfig) float64 { return p.LoopCap }},
	{MaterialPostCap, "Post caps", "ea", func(r EstimationResult) *int { return r.PostCaps }, func(p PricingConfig) float64 { return p.PostCap }},
	{MaterialBraceBand, "Brace bands", "ea", func(r EstimationResult) *int { return r.BraceBands }, func(p PricingConfig) float64 { return p.BraceBand }},
	{MaterialTensionBar, "Tension bars", "ea", func(r EstimationResult) *int { return r.TensionBars }, func(p PricingConfig) float64 { return p.TensionBar }},
	{MaterialTensionBand, "Tension bands", "ea", func(r EstimationResult) *int { return r.TensionBands }, func(p PricingConfig) float64 { return p.TensionBand }},
	{MaterialNutAndBolt, "Nuts & bolts", "ea", func(r EstimationResult) *int { return r.NutsAndBolts }, func(p PricingConfig) float64 { return p.NutAndBolt }},
}

// LineItems prices every material present in the result. Fabric always
// comes first; absent materials produce no line.
func LineItems(res EstimationResult, pricing PricingConfig) []LineItem {
	items := []LineItem{{
		Kind:      MaterialFabric,
		Label:     "Fabric (" + res.FabricType + ")",
		Unit:      "ft",
		Quantity:  res.FabricFootage,
		UnitPrice: pricing.FabricPerFoot,
		Extended:  res.FabricFootage * pricing.FabricPerFoot,
	}}
	for _, m := range countedMaterials {
		q := m.quantity(res)
		if q == nil {
			continue
		}
		price := m.price(pricing)
		items = append(items, LineItem{
			Kind:      m.kind,
			Label:     m.label,
			Unit:      m.unit,
			Quantity:  float64(*q),
			UnitPrice: price,
			Extended:  float64(*q) * price,
		})
	}
	return items
}

// ComputeCost returns the total material cost of a takeoff. The value is
// not rounded; rounding for display is left to the caller.
func ComputeCost(res EstimationResult, pricing PricingConfig) float64 {
	var total float64
	for _, item := range LineItems(res, pricing) {
		total += item.Extended
	}
	return total
}
