package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/GlassCut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// dxfTolerance is the maximum gap between endpoints considered connected.
const dxfTolerance = 0.01

type point struct {
	x, y float64
}

// segment is a line segment, used for chaining loose LINE entities into
// closed outlines.
type segment struct {
	start point
	end   point
}

// ImportScrapsDXF imports scraps traced in a CAD drawing. Every closed
// axis-aligned rectangle, drawn as an LWPOLYLINE or as connected LINEs,
// becomes a scrap of quantity 1. Other shapes are skipped with a warning.
func ImportScrapsDXF(path string) ImportResult {
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

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			var outline []point
			for _, v := range e.Vertices {
				outline = append(outline, point{v[0], v[1]})
			}
			outlines = append(outlines, outline)

		case *entity.Line:
			segments = append(segments, segment{
				start: point{e.Start[0], e.Start[1]},
				end:   point{e.End[0], e.End[1]},
			})

		default:
			// Arcs, circles and text do not describe a rectangular sheet
		}
	}

	outlines = append(outlines, chainSegments(segments, dxfTolerance)...)
	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	for i, outline := range outlines {
		width, height, ok := rectangleSize(outline, dxfTolerance)
		if !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Shape %d: not an axis-aligned rectangle, skipping", i+1))
			continue
		}
		if width < dxfTolerance || height < dxfTolerance {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Shape %d: degenerate size %.2f x %.2f, skipping", i+1, width, height))
			continue
		}
		name := fmt.Sprintf("DXF Scrap %d", len(result.Scraps)+1)
		result.Scraps = append(result.Scraps, model.NewScrap(name, "", width, height, 1))
	}

	return result
}

// rectangleSize reports the size of outline when its corners are exactly the
// four corners of its bounding box.
func rectangleSize(outline []point, tolerance float64) (float64, float64, bool) {
	if len(outline) == 5 && pointsClose(outline[0], outline[4], tolerance) {
		outline = outline[:4]
	}
	if len(outline) != 4 {
		return 0, 0, false
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range outline {
		minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
		minY, maxY = math.Min(minY, p.y), math.Max(maxY, p.y)
	}

	corners := []point{{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}}
	for _, c := range corners {
		found := false
		for _, p := range outline {
			if pointsClose(c, p, tolerance) {
				found = true
				break
			}
		}
		if !found {
			return 0, 0, false
		}
	}
	return maxX - minX, maxY - minY, true
}

// chainSegments connects individual segments into closed outlines.
// Open chains are dropped.
func chainSegments(segs []segment, tolerance float64) [][]point {
	used := make([]bool, len(segs))
	var outlines [][]point

	for startIdx := range segs {
		if used[startIdx] {
			continue
		}

		chain := []point{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

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

		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			outlines = append(outlines, chain[:len(chain)-1])
		}
	}

	// Largest first for consistent ordering
	sort.SliceStable(outlines, func(i, j int) bool {
		return outlineArea(outlines[i]) > outlineArea(outlines[j])
	})

	return outlines
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b point, tolerance float64) bool {
	return math.Hypot(a.x-b.x, a.y-b.y) <= tolerance
}

// outlineArea computes the absolute area of a polygon using the shoelace formula.
func outlineArea(o []point) float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += o[i].x * o[j].y
		area -= o[j].x * o[i].y
	}
	return math.Abs(area) / 2
}
