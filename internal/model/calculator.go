package model

import "math"

// PurchaseEstimate holds how many new full sheets are needed for pieces the
// inventory could not supply.
type PurchaseEstimate struct {
	TotalPieceArea    float64 `json:"total_piece_area"`
	SheetArea         float64 `json:"sheet_area"`
	SheetsNeededExact float64 `json:"sheets_needed_exact"`
	SheetsNeededMin   int     `json:"sheets_needed_min"`
	SheetsWithWaste   int     `json:"sheets_with_waste"`
	WastePercent      float64 `json:"waste_percent"`
	EstimatedCost     float64 `json:"estimated_cost"`
	PricePerSheet     float64 `json:"price_per_sheet"`
	Oversized         int     `json:"oversized"` // Pieces that fit the stock sheet in neither orientation
}

// CalculatePurchaseEstimate computes how many stock sheets of sheetWidth x
// sheetHeight to buy for the given pieces, with an extra waste allowance.
// Pieces larger than the stock sheet are counted in Oversized and excluded.
func CalculatePurchaseEstimate(pieces []Piece, sheetWidth, sheetHeight, wastePercent, pricePerSheet float64) PurchaseEstimate {
	var totalArea float64
	oversized := 0
	for _, p := range pieces {
		fits := (p.Width <= sheetWidth && p.Height <= sheetHeight) ||
			(p.Height <= sheetWidth && p.Width <= sheetHeight)
		if !fits {
			oversized++
			continue
		}
		totalArea += p.Area()
	}

	sheetArea := sheetWidth * sheetHeight
	if sheetArea <= 0 {
		return PurchaseEstimate{
			TotalPieceArea: totalArea,
			WastePercent:   wastePercent,
			Oversized:      len(pieces),
		}
	}

	exact := totalArea / sheetArea
	minSheets := int(math.Ceil(exact))

	withWaste := int(math.Ceil(exact * (1.0 + wastePercent/100.0)))
	if withWaste < minSheets {
		withWaste = minSheets
	}

	return PurchaseEstimate{
		TotalPieceArea:    totalArea,
		SheetArea:         sheetArea,
		SheetsNeededExact: exact,
		SheetsNeededMin:   minSheets,
		SheetsWithWaste:   withWaste,
		WastePercent:      wastePercent,
		EstimatedCost:     float64(withWaste) * pricePerSheet,
		PricePerSheet:     pricePerSheet,
		Oversized:         oversized,
	}
}
