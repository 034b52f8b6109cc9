package engine

import (
	"fmt"

	"github.com/piwi3910/GlassCut/internal/model"
)

// layoutTolerance absorbs floating point rounding in split coordinates.
const layoutTolerance = 1e-6

// ValidateLayout checks that every placement lies inside the sheet and that
// no two placements overlap. Touching edges are allowed.
func ValidateLayout(sheet model.SheetResult) error {
	sw, sh := sheet.ScrapDims.Width, sheet.ScrapDims.Height
	for i, p := range sheet.Layout {
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("piece %d has empty footprint %gx%g", p.PieceID, p.Width, p.Height)
		}
		if p.X < -layoutTolerance || p.Y < -layoutTolerance ||
			p.X+p.Width > sw+layoutTolerance || p.Y+p.Height > sh+layoutTolerance {
			return fmt.Errorf("piece %d at (%g, %g) size %gx%g exceeds sheet %gx%g",
				p.PieceID, p.X, p.Y, p.Width, p.Height, sw, sh)
		}
		for _, q := range sheet.Layout[i+1:] {
			if placementsOverlap(p, q) {
				return fmt.Errorf("pieces %d and %d overlap", p.PieceID, q.PieceID)
			}
		}
	}
	return nil
}

// placementsOverlap returns true if two placements overlap (not just touch).
func placementsOverlap(a, b model.Placement) bool {
	return a.X < b.X+b.Width-layoutTolerance && a.X+a.Width > b.X+layoutTolerance &&
		a.Y < b.Y+b.Height-layoutTolerance && a.Y+a.Height > b.Y+layoutTolerance
}
