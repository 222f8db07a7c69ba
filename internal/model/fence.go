package model

import "github.com/google/uuid"

// FenceType selects the pipe gauge used for the framework.
type FenceType string

const (
	FenceResidential FenceType = "residential"
	FenceCommercial  FenceType = "commercial"
)

func (t FenceType) String() string {
	if t == FenceResidential {
		return "Residential"
	}
	return "Commercial"
}

// ParseFenceType maps user input to a FenceType. Unknown values are reported
// with ok=false and fall back to commercial, which is what the takeoff does
// with anything that is not residential.
func ParseFenceType(s string) (FenceType, bool) {
	switch s {
	case "residential", "Residential", "res", "r":
		return FenceResidential, true
	case "commercial", "Commercial", "com", "c":
		return FenceCommercial, true
	default:
		return FenceCommercial, false
	}
}

// FenceRun is a single straight measured segment of fence.
type FenceRun struct {
	ID     string  `json:"id,omitempty"`
	Label  string  `json:"label,omitempty"`
	Length float64 `json:"length"` // linear feet
}

func NewFenceRun(label string, length float64) FenceRun {
	return FenceRun{
		ID:     uuid.New().String()[:8],
		Label:  label,
		Length: length,
	}
}

// TotalLength sums the length of all runs. Order does not matter.
func TotalLength(runs []FenceRun) float64 {
	var total float64
	for _, r := range runs {
		total += r.Length
	}
	return total
}

// EstimationInput is the measured geometry plus the structural parameters
// for one fence.
type EstimationInput struct {
	Runs        []FenceRun `json:"runs"`
	FenceHeight string     `json:"fence_height"` // feet, e.g. "4", "6"
	FenceType   FenceType  `json:"fence_type"`
	Ends        int        `json:"ends"`
	Corners     int        `json:"corners"`
}

// EstimationResult is the bill of quantities for a fence. Optional counts
// are nil when the material is not needed, so a stored result only carries
// the materials that apply.
type EstimationResult struct {
	FabricType    string  `json:"fabric_type"`
	FabricFootage float64 `json:"fabric_footage"`
	PipeWeight    string  `json:"pipe_weight"`

	InteriorLinePosts *int `json:"interior_line_posts,omitempty"`
	TopRailSticks     *int `json:"top_rail_sticks,omitempty"`
	TieWires          *int `json:"tie_wires,omitempty"`
	LoopCaps          *int `json:"loop_caps,omitempty"`
	PostCaps          *int `json:"post_caps,omitempty"`
	BraceBands        *int `json:"brace_bands,omitempty"`
	TensionBars       *int `json:"tension_bars,omitempty"`
	TensionBands      *int `json:"tension_bands,omitempty"`
	NutsAndBolts      *int `json:"nuts_and_bolts,omitempty"`

	// Caller-supplied post counts, echoed when positive.
	Ends    *int `json:"ends,omitempty"`
	Corners *int `json:"corners,omitempty"`
}

// TerminalPosts returns the number of end plus corner posts recorded in the result.
func (r EstimationResult) TerminalPosts() int {
	return Count(r.Ends) + Count(r.Corners)
}

// Count dereferences an optional quantity, treating absent as zero.
func Count(q *int) int {
	if q == nil {
		return 0
	}
	return *q
}

func intPtr(v int) *int {
	return &v
}
