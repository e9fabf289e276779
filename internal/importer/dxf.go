package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/rodor-repo/ThreeJS-sub001/internal/model"
)

// point is a 2D coordinate in elevation space (mm, Y up from the floor).
type point struct {
	X, Y float64
}

// segment represents a line segment between two points, used for
// chaining disconnected LINE entities into closed outlines.
type segment struct {
	start point
	end   point
}

// defaultImportDepth is assumed for cabinets traced from a flat
// elevation drawing, which carries no depth information.
const defaultImportDepth = 560.0

// minImportSize filters out construction marks and stray geometry.
const minImportSize = 10.0

// ImportDXF imports cabinets from a DXF elevation drawing. Each closed
// shape (LWPOLYLINE or chain of connected LINEs) becomes a cabinet
// sized and positioned from its bounding box, with the type inferred
// from the box's size and height off the floor. Curved entities are
// skipped: cabinets are rectangles.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

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

	var outlines [][]point
	var segments []segment
	curved := 0

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			outline, hasBulge := lwPolylineToOutline(e)
			if hasBulge {
				result.Warnings = append(result.Warnings,
					"Ignored arc bulges on a polyline; using straight edges")
			}
			if len(outline) >= 3 {
				outlines = append(outlines, outline)
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: point{X: e.Start[0], Y: e.Start[1]},
				end:   point{X: e.End[0], Y: e.End[1]},
			})

		case *entity.Circle, *entity.Arc:
			curved++

		default:
			// Text, dimensions, and other annotations are skipped
		}
	}

	if curved > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Skipped %d curved entities", curved))
	}

	// Chain loose LINE segments into closed outlines
	outlines = append(outlines, chainSegments(segments, 0.01)...)

	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	// Drawings are not always placed at the room origin; shift the whole
	// elevation so the lowest left shape sits at (0, 0).
	if dx, dy, shifted := originShift(outlines); shifted {
		for _, outline := range outlines {
			for i := range outline {
				outline[i].X += dx
				outline[i].Y += dy
			}
		}
		result.Warnings = append(result.Warnings, "Shifted drawing onto the room origin")
	}

	// Left to right, so generated names follow the wall.
	sort.SliceStable(outlines, func(i, j int) bool {
		iMin, _ := boundingBox(outlines[i])
		jMin, _ := boundingBox(outlines[j])
		return iMin.X < jMin.X
	})

	for _, outline := range outlines {
		min, max := boundingBox(outline)
		width := max.X - min.X
		height := max.Y - min.Y

		if width < minImportSize || height < minImportSize {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.0f x %.0f mm)", width, height))
			continue
		}

		t := classifyOutline(width, height, min.Y)
		c := model.NewCabinet(t, width, height, defaultImportDepth)
		c.Name = fmt.Sprintf("Cabinet %d", len(result.Cabinets)+1)
		c.Position.X = min.X
		c.Position.Y = min.Y
		result.Cabinets = append(result.Cabinets, c)
	}

	if len(result.Cabinets) == 0 {
		result.Errors = append(result.Errors, "No usable shapes found in DXF file")
	}

	return result
}

// classifyOutline guesses the cabinet type of a traced rectangle from
// its size and its height off the floor.
func classifyOutline(w, h, y float64) model.CabinetType {
	switch {
	case w <= 30:
		return model.TypePanel
	case w <= 100:
		return model.TypeFiller
	case h <= 60 && y >= 1000:
		return model.TypeUnderPanel
	case h <= 60:
		return model.TypeBenchtop
	case h <= 250 && y < 60:
		return model.TypeKicker
	case y >= 2000:
		return model.TypeBulkhead
	case y >= 800:
		return model.TypeTop
	case h >= 1600:
		return model.TypeTall
	default:
		return model.TypeBase
	}
}

// lwPolylineToOutline converts a DXF LWPOLYLINE entity to an outline,
// reporting whether any vertex carried an arc bulge.
func lwPolylineToOutline(lw *entity.LwPolyline) ([]point, bool) {
	outline := make([]point, 0, len(lw.Vertices))
	hasBulge := false

	for i, v := range lw.Vertices {
		if i < len(lw.Bulges) && math.Abs(lw.Bulges[i]) > 1e-9 {
			hasBulge = true
		}
		outline = append(outline, point{X: v[0], Y: v[1]})
	}

	return outline, hasBulge
}

// originShift returns the translation that moves the outlines' joint
// bounding box onto the origin, and whether a shift is needed.
func originShift(outlines [][]point) (float64, float64, bool) {
	minX := math.Inf(1)
	minY := math.Inf(1)
	for _, outline := range outlines {
		min, _ := boundingBox(outline)
		minX = math.Min(minX, min.X)
		minY = math.Min(minY, min.Y)
	}
	if minX >= 0 && minY >= 0 {
		return 0, 0, false
	}
	dx := math.Max(0, -minX)
	dy := math.Max(0, -minY)
	return dx, dy, true
}

// boundingBox returns the min and max corners of an outline.
func boundingBox(outline []point) (point, point) {
	min := point{X: math.Inf(1), Y: math.Inf(1)}
	max := point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range outline {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// chainSegments connects individual segments into closed outlines.
// tolerance is the maximum distance between endpoints to consider them connected.
func chainSegments(segs []segment, tolerance float64) [][]point {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines [][]point

	for {
		// Find the first unused segment
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []point{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		// Try to extend the chain
		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		// Closed chains drop the duplicate closing point; open chains
		// are discarded as construction lines.
		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			outlines = append(outlines, chain[:len(chain)-1])
		}
	}

	return outlines
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b point, tolerance float64) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx+dy*dy) <= tolerance
}
