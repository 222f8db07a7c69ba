package model

import "testing"

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()

	if cfg.DefaultFenceHeight != "4" {
		t.Errorf("expected default height 4, got %q", cfg.DefaultFenceHeight)
	}
	if cfg.DefaultFenceType != FenceResidential {
		t.Errorf("expected residential default, got %s", cfg.DefaultFenceType)
	}
	if cfg.DefaultEnds != 2 {
		t.Errorf("expected 2 default ends, got %d", cfg.DefaultEnds)
	}
	if cfg.Pricing != DefaultPricing() {
		t.Error("expected default price list")
	}
	if cfg.RecentJobs == nil {
		t.Error("RecentJobs should not be nil")
	}
	if cfg.CurrencySymbol == "" {
		t.Error("expected a currency symbol")
	}
}

func TestDefaultPricingHasNoFreeMaterials(t *testing.T) {
	p := DefaultPricing()
	prices := []float64{
		p.FabricPerFoot, p.LinePost, p.EndPost, p.CornerPost, p.TopRail, p.TieWire,
		p.LoopCap, p.PostCap, p.BraceBand, p.TensionBar, p.TensionBand, p.NutAndBolt,
	}
	for i, price := range prices {
		if price <= 0 {
			t.Errorf("price %d should be positive, got %f", i, price)
		}
	}
}

func TestApplyToInput(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultFenceHeight = "6"
	cfg.DefaultFenceType = FenceCommercial
	cfg.DefaultCorners = 3

	in := EstimationInput{Runs: []FenceRun{{Length: 40}}}
	cfg.ApplyToInput(&in)

	if in.FenceHeight != "6" {
		t.Errorf("expected height 6, got %q", in.FenceHeight)
	}
	if in.FenceType != FenceCommercial {
		t.Errorf("expected commercial, got %s", in.FenceType)
	}
	if in.Corners != 3 {
		t.Errorf("expected 3 corners, got %d", in.Corners)
	}
	if len(in.Runs) != 1 {
		t.Errorf("runs should be untouched, got %d", len(in.Runs))
	}
}

func TestAddRecentJob(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentJob("a", 3)
	cfg.AddRecentJob("b", 3)
	cfg.AddRecentJob("c", 3)
	cfg.AddRecentJob("a", 3)

	want := []string{"a", "c", "b"}
	if len(cfg.RecentJobs) != len(want) {
		t.Fatalf("expected %v, got %v", want, cfg.RecentJobs)
	}
	for i := range want {
		if cfg.RecentJobs[i] != want[i] {
			t.Errorf("expected %v, got %v", want, cfg.RecentJobs)
			break
		}
	}

	cfg.AddRecentJob("d", 3)
	if len(cfg.RecentJobs) != 3 || cfg.RecentJobs[0] != "d" {
		t.Errorf("expected list capped at 3 with d first, got %v", cfg.RecentJobs)
	}
}
