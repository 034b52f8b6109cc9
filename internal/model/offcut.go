package model

import (
	"math"
	"sort"
)

// Offcut represents a usable rectangular remnant left over after cutting a sheet.
type Offcut struct {
	ID          string  `json:"id"`
	SourceID    string  `json:"source_id"`   // Scrap ID of the sheet it came from
	SourceName  string  `json:"source_name"` // Display name of that sheet
	SourceCutID int     `json:"source_cut_id"`
	Type        string  `json:"type,omitempty"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
}

// Area returns the area of the offcut.
func (o Offcut) Area() float64 {
	return o.Width * o.Height
}

// ToScrap converts an offcut into a new inventory scrap so it can be cut later.
func (o Offcut) ToScrap() Scrap {
	return NewScrap("Offcut "+o.SourceName, o.Type, o.Width, o.Height, 1)
}

// DetectOffcuts finds the remnant strips beyond the bounding box of the
// placed pieces: a full-height strip on the right and a strip below the
// pieces up to their right edge. Strips with a side shorter than minDim or
// an area under minArea are waste, not offcuts.
func DetectOffcuts(sr SheetResult, minDim, minArea float64) []Offcut {
	sheetW := sr.ScrapDims.Width
	sheetH := sr.ScrapDims.Height

	newOffcut := func(x, y, w, h float64) Offcut {
		return Offcut{
			ID:          NewID(),
			SourceID:    sr.ScrapID,
			SourceName:  sr.ScrapName,
			SourceCutID: sr.CutID,
			Type:        sr.ScrapType,
			X:           x,
			Y:           y,
			Width:       w,
			Height:      h,
		}
	}

	if len(sr.Layout) == 0 {
		return []Offcut{newOffcut(0, 0, sheetW, sheetH)}
	}

	var maxRight, maxBottom float64
	for _, p := range sr.Layout {
		maxRight = math.Max(maxRight, p.X+p.Width)
		maxBottom = math.Max(maxBottom, p.Y+p.Height)
	}

	usable := func(w, h float64) bool {
		return w >= minDim && h >= minDim && w*h >= minArea
	}

	var offcuts []Offcut

	rightW := sheetW - maxRight
	if usable(rightW, sheetH) {
		offcuts = append(offcuts, newOffcut(maxRight, 0, rightW, sheetH))
	}

	bottomH := sheetH - maxBottom
	bottomW := math.Min(maxRight, sheetW)
	if usable(bottomW, bottomH) {
		offcuts = append(offcuts, newOffcut(0, maxBottom, bottomW, bottomH))
	}

	sort.SliceStable(offcuts, func(i, j int) bool {
		return offcuts[i].Area() > offcuts[j].Area()
	})

	return offcuts
}

// DetectAllOffcuts finds offcuts across all sheets of an allocation.
func DetectAllOffcuts(result AllocationResult, minDim, minArea float64) []Offcut {
	var all []Offcut
	for _, sheet := range result.UsedScraps {
		all = append(all, DetectOffcuts(sheet, minDim, minArea)...)
	}
	return all
}

// TotalOffcutArea returns the total area of all offcuts.
func TotalOffcutArea(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Area()
	}
	return total
}
