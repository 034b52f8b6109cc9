package engine

import (
	"github.com/piwi3910/GlassCut/internal/model"
)

// Selection is the winning candidate of one evaluation round.
type Selection struct {
	Sheet  model.SheetResult
	Index  int   // Position of the chosen scrap in the candidate list
	Placed []int // IDs of the pieces placed on the sheet
}

// SelectBestScrap packs the pending pieces onto a fresh sheet of every
// usable scrap and returns the one that fits the most pieces, then the one
// with the least waste. Ties go to the earliest candidate. Scraps with no
// remaining quantity or invalid dimensions are skipped, as are scraps that
// fit nothing. It reports false when no scrap takes any piece.
// Neither argument is modified.
func SelectBestScrap(scraps []model.Scrap, pending []model.Piece) (Selection, bool) {
	best := Selection{Index: -1}

	for i, s := range scraps {
		if !s.Valid() {
			continue
		}
		sheet := PackSheet(s, pending)
		if sheet.FittedPieces == 0 {
			continue
		}
		if best.Index < 0 ||
			sheet.FittedPieces > best.Sheet.FittedPieces ||
			(sheet.FittedPieces == best.Sheet.FittedPieces && sheet.WastePercent < best.Sheet.WastePercent) {
			best.Sheet = sheet
			best.Index = i
		}
	}

	if best.Index < 0 {
		return Selection{}, false
	}

	best.Placed = make([]int, 0, len(best.Sheet.Layout))
	for _, p := range best.Sheet.Layout {
		best.Placed = append(best.Placed, p.PieceID)
	}
	return best, true
}
