package model

import (
	"math"
	"testing"
)

func TestCalculatePurchaseEstimate(t *testing.T) {
	pieces := []Piece{
		{ID: 1, Width: 100, Height: 100},
		{ID: 2, Width: 100, Height: 100},
		{ID: 3, Width: 100, Height: 50},
	}

	est := CalculatePurchaseEstimate(pieces, 200, 100, 10, 40)

	if est.TotalPieceArea != 25000 {
		t.Errorf("expected piece area 25000, got %f", est.TotalPieceArea)
	}
	if math.Abs(est.SheetsNeededExact-1.25) > 1e-9 {
		t.Errorf("expected 1.25 exact sheets, got %f", est.SheetsNeededExact)
	}
	if est.SheetsNeededMin != 2 {
		t.Errorf("expected 2 minimum sheets, got %d", est.SheetsNeededMin)
	}
	if est.SheetsWithWaste != 2 {
		t.Errorf("expected 2 sheets with waste, got %d", est.SheetsWithWaste)
	}
	if est.EstimatedCost != 80 {
		t.Errorf("expected cost 80, got %f", est.EstimatedCost)
	}
	if est.Oversized != 0 {
		t.Errorf("expected no oversized pieces, got %d", est.Oversized)
	}
}

func TestCalculatePurchaseEstimateRotatedFit(t *testing.T) {
	// 50x150 only fits a 200x100 sheet when turned.
	est := CalculatePurchaseEstimate([]Piece{{ID: 1, Width: 50, Height: 150}}, 200, 100, 0, 0)
	if est.Oversized != 0 {
		t.Errorf("expected rotated piece to count as fitting, got %d oversized", est.Oversized)
	}
	if est.SheetsNeededMin != 1 {
		t.Errorf("expected 1 sheet, got %d", est.SheetsNeededMin)
	}
}

func TestCalculatePurchaseEstimateOversized(t *testing.T) {
	pieces := []Piece{
		{ID: 1, Width: 500, Height: 500},
		{ID: 2, Width: 10, Height: 10},
	}
	est := CalculatePurchaseEstimate(pieces, 200, 100, 0, 0)
	if est.Oversized != 1 {
		t.Errorf("expected 1 oversized piece, got %d", est.Oversized)
	}
	if est.TotalPieceArea != 100 {
		t.Errorf("expected only fitting pieces in area, got %f", est.TotalPieceArea)
	}
}

func TestCalculatePurchaseEstimateNoStockSheet(t *testing.T) {
	est := CalculatePurchaseEstimate([]Piece{{ID: 1, Width: 10, Height: 10}}, 0, 0, 15, 0)
	if est.SheetsNeededMin != 0 {
		t.Errorf("expected 0 sheets without a stock size, got %d", est.SheetsNeededMin)
	}
	if est.Oversized != 1 {
		t.Errorf("expected piece reported as oversized, got %d", est.Oversized)
	}
}

func TestCalculatePurchaseEstimateEmpty(t *testing.T) {
	est := CalculatePurchaseEstimate(nil, 321, 225, 15, 100)
	if est.SheetsWithWaste != 0 || est.EstimatedCost != 0 {
		t.Errorf("expected nothing to buy, got %+v", est)
	}
}
