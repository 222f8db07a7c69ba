package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitPricing() PricingConfig {
	return PricingConfig{
		FabricPerFoot: 1, LinePost: 1, EndPost: 1, CornerPost: 1, TopRail: 1, TieWire: 1,
		LoopCap: 1, PostCap: 1, BraceBand: 1, TensionBar: 1, TensionBand: 1, NutAndBolt: 1,
	}
}

func TestComputeCost_ZeroPricingIsZero(t *testing.T) {
	inputs := []EstimationInput{
		{},
		{Runs: runsOf(100), FenceHeight: "4", FenceType: FenceResidential, Ends: 2},
		{Runs: runsOf(50, 25), FenceHeight: "6", FenceType: FenceCommercial, Corners: 4},
		{Runs: runsOf(333.3), FenceHeight: "8", Ends: 3, Corners: 5},
	}
	for _, in := range inputs {
		assert.Equal(t, 0.0, ComputeCost(Compute(in), PricingConfig{}))
	}
}

func TestComputeCost_UnitPricesSumQuantities(t *testing.T) {
	res := Compute(EstimationInput{Runs: runsOf(100), FenceHeight: "4", FenceType: FenceResidential, Ends: 2})

	// 100 ft fabric + 9 line + 2 end + 5 rail + 150 ties + 9 loop caps
	// + 2 post caps + 2 brace bands + 2 tension bars + 8 tension bands + 10 nuts & bolts
	assert.InDelta(t, 299.0, ComputeCost(res, unitPricing()), 1e-9)
}

func TestComputeCost_FabricAlwaysPriced(t *testing.T) {
	res := Compute(EstimationInput{Runs: runsOf(100), FenceHeight: "4", Ends: 2})
	assert.InDelta(t, 250.0, ComputeCost(res, PricingConfig{FabricPerFoot: 2.5}), 1e-9)

	empty := EstimationResult{FabricType: FabricType9ga, FabricFootage: 12}
	assert.InDelta(t, 30.0, ComputeCost(empty, PricingConfig{FabricPerFoot: 2.5, LinePost: 99}), 1e-9)
}

func TestComputeCost_AbsentMaterialsContributeNothing(t *testing.T) {
	res := EstimationResult{
		FabricType:    FabricType9ga,
		FabricFootage: 0,
		TieWires:      intPtr(10),
	}
	pricing := unitPricing()
	pricing.TieWire = 0.5
	pricing.LinePost = 1000
	pricing.TensionBand = 1000
	assert.InDelta(t, 5.0, ComputeCost(res, pricing), 1e-9)
}

func TestComputeCost_MatchesDefaultPriceList(t *testing.T) {
	res := Compute(EstimationInput{Runs: runsOf(50, 25), FenceHeight: "6", FenceType: FenceCommercial, Corners: 4})
	p := DefaultPricing()

	want := 75*p.FabricPerFoot +
		5*p.LinePost +
		4*p.CornerPost +
		4*p.TopRail +
		113*p.TieWire +
		5*p.LoopCap +
		4*p.PostCap +
		8*p.BraceBand +
		8*p.TensionBar +
		24*p.TensionBand +
		32*p.NutAndBolt
	assert.InDelta(t, want, ComputeCost(res, p), 1e-9)
}

func TestLineItems_OrderAndPresence(t *testing.T) {
	res := Compute(EstimationInput{Runs: runsOf(50, 25), FenceHeight: "6", FenceType: FenceCommercial, Corners: 4})
	items := LineItems(res, DefaultPricing())

	kinds := make([]MaterialKind, len(items))
	for i, it := range items {
		kinds[i] = it.Kind
	}
	assert.Equal(t, []MaterialKind{
		MaterialFabric,
		MaterialLinePost,
		MaterialCornerPost,
		MaterialTopRail,
		MaterialTieWire,
		MaterialLoopCap,
		MaterialPostCap,
		MaterialBraceBand,
		MaterialTensionBar,
		MaterialTensionBand,
		MaterialNutAndBolt,
	}, kinds)

	require.NotEmpty(t, items)
	assert.Equal(t, "ft", items[0].Unit)
	assert.Equal(t, 75.0, items[0].Quantity)
	assert.Contains(t, items[0].Label, FabricType9ga)
}

func TestLineItems_ExtendedIsQuantityTimesPrice(t *testing.T) {
	res := Compute(EstimationInput{Runs: runsOf(140), FenceHeight: "5", Ends: 2, Corners: 2})
	var total float64
	for _, it := range LineItems(res, DefaultPricing()) {
		assert.InDelta(t, it.Quantity*it.UnitPrice, it.Extended, 1e-9, it.Label)
		total += it.Extended
	}
	assert.InDelta(t, total, ComputeCost(res, DefaultPricing()), 1e-9)
}
