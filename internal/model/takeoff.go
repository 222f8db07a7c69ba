package model

import (
	"math"
	"strings"
	"unicode"
)

// Takeoff constants for 9 gauge chain link.
const (
	FabricType9ga = "9ga wire"

	PipeResidential = "SS20 WT"
	PipeCommercial  = "SS40 WT"

	postSpacingFeet    = 10.0 // line posts go in every 10 ft
	railStickFeet      = 21.0 // top rail is sold in 21 ft sticks
	tieWiresPerFoot    = 1.5
	bandsPerEndPost    = 1
	bandsPerCornerPost = 2
)

// linePostRule is one row of the interior line post policy. Rules are
// evaluated in order and the first match wins.
type linePostRule struct {
	name    string
	matches func(ends, corners int) bool
	count   func(sections, postSpots, corners int) int
}

// linePostRules maps (ends, corners) to the number of interior line posts.
//
// The "no ends, no corners" row can never fire: the row above it already
// takes every ends == 0 input. It stays in its place so the table matches
// the rule set estimators have been quoting with.
var linePostRules = []linePostRule{
	{
		name:    "single end",
		matches: func(ends, corners int) bool { return ends == 1 && corners == 0 },
		count:   func(_, postSpots, corners int) int { return postSpots - 1 - corners },
	},
	{
		name:    "no ends",
		matches: func(ends, corners int) bool { return ends == 0 && corners >= 0 },
		count:   func(_, postSpots, corners int) int { return postSpots - corners },
	},
	{
		name:    "no ends, no corners",
		matches: func(ends, corners int) bool { return ends == 0 && corners == 0 },
		count:   func(sections, _, _ int) int { return sections - 1 },
	},
	{
		name:    "two ends",
		matches: func(int, int) bool { return true },
		count:   func(_, postSpots, corners int) int { return postSpots - 2 - corners },
	},
}

// interiorLinePosts applies the first matching policy row, clamped at zero.
func interiorLinePosts(sections, ends, corners int) (int, string) {
	postSpots := sections + 1
	for _, rule := range linePostRules {
		if rule.matches(ends, corners) {
			return max(0, rule.count(sections, postSpots, corners)), rule.name
		}
	}
	return 0, ""
}

// Sections returns the number of 10 ft post spacings needed for a fence of
// the given total length.
func Sections(totalLength float64) int {
	return int(math.Ceil(totalLength / postSpacingFeet))
}

// Compute derives the bill of quantities for a fence. It performs no input
// validation; see ComputeValidated for the checked variant.
func Compute(in EstimationInput) EstimationResult {
	totalLength := TotalLength(in.Runs)
	sections := Sections(totalLength)
	linePosts, _ := interiorLinePosts(sections, in.Ends, in.Corners)

	res := EstimationResult{
		FabricType:    FabricType9ga,
		FabricFootage: totalLength,
		PipeWeight:    pipeWeightFor(in.FenceType),
	}

	if linePosts > 0 {
		res.InteriorLinePosts = intPtr(linePosts)
		res.LoopCaps = intPtr(linePosts)
	}
	if sticks := int(math.Ceil(totalLength / railStickFeet)); sticks > 0 {
		res.TopRailSticks = intPtr(sticks)
	}
	if ties := int(math.Ceil(totalLength * tieWiresPerFoot)); ties > 0 {
		res.TieWires = intPtr(ties)
	}

	terminalPosts := in.Ends + in.Corners
	if terminalPosts > 0 {
		braceBands := bandsPerEndPost*in.Ends + bandsPerCornerPost*in.Corners
		height, _ := parseHeight(in.FenceHeight)
		tensionBands := height * terminalPosts

		res.BraceBands = intPtr(braceBands)
		res.TensionBars = intPtr(braceBands)
		res.TensionBands = intPtr(tensionBands)
		res.NutsAndBolts = intPtr(tensionBands + braceBands)
		res.PostCaps = intPtr(terminalPosts)
	}

	if in.Ends > 0 {
		res.Ends = intPtr(in.Ends)
	}
	if in.Corners > 0 {
		res.Corners = intPtr(in.Corners)
	}
	return res
}

func pipeWeightFor(t FenceType) string {
	if t == FenceResidential {
		return PipeResidential
	}
	return PipeCommercial
}

// parseHeight reads the leading integer of a height string the way form
// fields are usually parsed: surrounding space and a sign are allowed and
// anything after the digits is ignored ("6ft" is 6, "4.5" is 4). It reports
// ok=false when there are no leading digits and returns 0.
func parseHeight(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, digits := 0, 0
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
