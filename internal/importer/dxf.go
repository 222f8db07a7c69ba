package importer

import (
	"fmt"
	"math"

	"github.com/piwi3910/fencecalc/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// minSegmentFeet drops drafting slivers left by snapping.
const minSegmentFeet = 0.01

// ImportDXF imports runs from a site plan. Every LINE, every ARC and every
// LWPOLYLINE segment becomes one run. unitsPerFoot converts drawing units
// to feet (12 for a plan drawn in inches); values <= 0 mean the drawing is
// already in feet.
func ImportDXF(path string, unitsPerFoot float64) ImportResult {
	result := ImportResult{}
	if unitsPerFoot <= 0 {
		unitsPerFoot = 1
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var lengths []float64
	skipped := 0
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.Line:
			lengths = append(lengths, distance(e.Start[0], e.Start[1], e.End[0], e.End[1]))

		case *entity.Arc:
			lengths = append(lengths, arcLength(e))

		case *entity.LwPolyline:
			lengths = append(lengths, lwPolylineSegments(e)...)

		default:
			skipped++
		}
	}

	if skipped > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Skipped %d unsupported DXF entities", skipped))
	}

	for _, l := range lengths {
		feet := l / unitsPerFoot
		if feet < minSegmentFeet {
			result.Warnings = append(result.Warnings, "Skipped zero-length segment")
			continue
		}
		result.Runs = append(result.Runs, model.NewFenceRun(fmt.Sprintf("DXF Run %d", len(result.Runs)+1), feet))
	}

	if len(result.Runs) == 0 {
		result.Errors = append(result.Errors, "No fence runs found in DXF file")
	}
	return result
}

// lwPolylineSegments returns the length of every segment of a polyline,
// including the closing segment of a closed one. Bulged segments are
// measured along the arc.
func lwPolylineSegments(lw *entity.LwPolyline) []float64 {
	n := len(lw.Vertices)
	if n < 2 {
		return nil
	}

	last := n - 1
	if lw.Closed {
		last = n
	}

	segs := make([]float64, 0, last)
	for i := 0; i < last; i++ {
		a := lw.Vertices[i]
		b := lw.Vertices[(i+1)%n]
		chord := distance(a[0], a[1], b[0], b[1])

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}
		segs = append(segs, bulgeLength(chord, bulge))
	}
	return segs
}

// bulgeLength converts a chord and a DXF bulge (tangent of a quarter of
// the included angle) to the arc length.
func bulgeLength(chord, bulge float64) float64 {
	if math.Abs(bulge) < 1e-9 || chord < 1e-9 {
		return chord
	}
	theta := 4 * math.Atan(math.Abs(bulge))
	radius := chord / (2 * math.Sin(theta/2))
	return radius * theta
}

// arcLength measures a DXF ARC, which always runs counter-clockwise from
// the start angle to the end angle in degrees.
func arcLength(a *entity.Arc) float64 {
	sweep := a.Angle[1] - a.Angle[0]
	if sweep <= 0 {
		sweep += 360
	}
	return a.Circle.Radius * sweep * math.Pi / 180
}

func distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}
