package engine

import (
	"github.com/piwi3910/GlassCut/internal/model"
)

// guillotinePacker implements the guillotine bin-packing algorithm.
// It maintains a list of free rectangles and splits them on each insertion.
// Free rectangles are never merged or pruned.
type guillotinePacker struct {
	freeRects  []rect
	placements []model.Placement
	cuts       []model.Cut
}

type rect struct {
	x, y, w, h float64
}

func (r rect) area() float64 {
	return r.w * r.h
}

func newGuillotinePacker(width, height float64) *guillotinePacker {
	return &guillotinePacker{
		freeRects: []rect{{0, 0, width, height}},
	}
}

// insert tries to place a piece using the Best Area Fit (BAF) heuristic.
// Each free rect is tried with the piece as-is, then turned 90°. The first
// strictly smallest leftover area wins. Returns whether the piece was placed.
func (gp *guillotinePacker) insert(piece model.Piece) bool {
	bestIdx := -1
	bestAreaFit := 0.0
	bestRotated := false
	pieceArea := piece.Area()

	for i, r := range gp.freeRects {
		areaFit := r.area() - pieceArea
		if r.w >= piece.Width && r.h >= piece.Height {
			if bestIdx < 0 || areaFit < bestAreaFit {
				bestIdx, bestAreaFit, bestRotated = i, areaFit, false
			}
		}
		if piece.Width != piece.Height && r.w >= piece.Height && r.h >= piece.Width {
			if bestIdx < 0 || areaFit < bestAreaFit {
				bestIdx, bestAreaFit, bestRotated = i, areaFit, true
			}
		}
	}

	if bestIdx < 0 {
		return false
	}

	chosen := gp.freeRects[bestIdx]
	gp.freeRects = append(gp.freeRects[:bestIdx], gp.freeRects[bestIdx+1:]...)

	w, h := piece.Width, piece.Height
	if bestRotated {
		w, h = h, w
	}

	gp.placements = append(gp.placements, model.Placement{
		PieceID: piece.ID,
		Label:   piece.Label,
		X:       chosen.x,
		Y:       chosen.y,
		Width:   w,
		Height:  h,
		Rotated: bestRotated,
	})
	gp.split(chosen, w, h)

	return true
}

// split divides the remainder of r around a w x h piece placed at its
// origin. The cut direction keeps the larger remainder whole.
func (gp *guillotinePacker) split(r rect, w, h float64) {
	wRem := r.w - w
	hRem := r.h - h

	var first, second rect
	if wRem*r.h > r.w*hRem {
		// Vertical split: full-height strip on the right
		first = rect{x: r.x + w, y: r.y, w: wRem, h: r.h}
		second = rect{x: r.x, y: r.y + h, w: w, h: hRem}
		gp.addCut(model.CutVertical, r.x+w, r.y, r.h, wRem)
		gp.addCut(model.CutHorizontal, r.x, r.y+h, w, hRem)
	} else {
		// Horizontal split: full-width strip below
		first = rect{x: r.x, y: r.y + h, w: r.w, h: hRem}
		second = rect{x: r.x + w, y: r.y, w: wRem, h: h}
		gp.addCut(model.CutHorizontal, r.x, r.y+h, r.w, hRem)
		gp.addCut(model.CutVertical, r.x+w, r.y, h, wRem)
	}

	for _, nr := range []rect{first, second} {
		if nr.w > 0 && nr.h > 0 {
			gp.freeRects = append(gp.freeRects, nr)
		}
	}
}

// addCut records a cut only when it separates a non-empty remainder.
func (gp *guillotinePacker) addCut(axis model.CutAxis, x, y, length, remainder float64) {
	if remainder <= 0 {
		return
	}
	gp.cuts = append(gp.cuts, model.Cut{
		Seq:    len(gp.cuts) + 1,
		Axis:   axis,
		X:      x,
		Y:      y,
		Length: length,
	})
}

// PackSheet places as many of the pieces as possible on one sheet of the
// given scrap, trying them in the given order. Pieces that do not fit are
// skipped. The returned result carries no CutID.
func PackSheet(scrap model.Scrap, pieces []model.Piece) model.SheetResult {
	packer := newGuillotinePacker(scrap.Width, scrap.Height)
	for _, p := range pieces {
		packer.insert(p)
	}

	sheet := model.SheetResult{
		ScrapID:      scrap.ID,
		ScrapName:    scrap.DisplayName(),
		ScrapType:    scrap.Type,
		ScrapDims:    model.Dimensions{Width: scrap.Width, Height: scrap.Height},
		Layout:       packer.placements,
		TotalPieces:  len(pieces),
		FittedPieces: len(packer.placements),
		CutList:      packer.cuts,
	}
	if sheet.Layout == nil {
		sheet.Layout = []model.Placement{}
	}
	if sheet.CutList == nil {
		sheet.CutList = []model.Cut{}
	}
	sheet.WastePercent = wastePercent(sheet.TotalArea(), sheet.UsedArea())
	return sheet
}

// wastePercent returns the uncovered share of area as a percentage.
func wastePercent(area, used float64) float64 {
	if area <= 0 {
		return 0
	}
	waste := (area - used) * 100 / area
	if waste < 0 {
		return 0
	}
	return waste
}
