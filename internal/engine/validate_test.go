package engine

import (
	"testing"

	"github.com/piwi3910/GlassCut/internal/model"
	"github.com/stretchr/testify/assert"
)

func sheetWith(w, h float64, layout ...model.Placement) model.SheetResult {
	return model.SheetResult{ScrapDims: model.Dimensions{Width: w, Height: h}, Layout: layout}
}

func TestValidateLayout_TouchingIsValid(t *testing.T) {
	sheet := sheetWith(100, 100,
		model.Placement{PieceID: 1, X: 0, Y: 0, Width: 50, Height: 100},
		model.Placement{PieceID: 2, X: 50, Y: 0, Width: 50, Height: 100},
	)
	assert.NoError(t, ValidateLayout(sheet))
}

func TestValidateLayout_Overlap(t *testing.T) {
	sheet := sheetWith(100, 100,
		model.Placement{PieceID: 1, X: 0, Y: 0, Width: 60, Height: 60},
		model.Placement{PieceID: 2, X: 50, Y: 50, Width: 40, Height: 40},
	)
	assert.ErrorContains(t, ValidateLayout(sheet), "overlap")
}

func TestValidateLayout_OutOfBounds(t *testing.T) {
	assert.Error(t, ValidateLayout(sheetWith(100, 100,
		model.Placement{PieceID: 1, X: 60, Y: 0, Width: 50, Height: 50},
	)))
	assert.Error(t, ValidateLayout(sheetWith(100, 100,
		model.Placement{PieceID: 1, X: -1, Y: 0, Width: 50, Height: 50},
	)))
}

func TestValidateLayout_EmptyFootprint(t *testing.T) {
	assert.Error(t, ValidateLayout(sheetWith(100, 100,
		model.Placement{PieceID: 1, X: 0, Y: 0, Width: 0, Height: 50},
	)))
}

func TestValidateLayout_Empty(t *testing.T) {
	assert.NoError(t, ValidateLayout(sheetWith(100, 100)))
}
