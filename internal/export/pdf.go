// Package export provides functionality for exporting cutting allocations
// to various file formats.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/GlassCut/internal/model"
)

// pieceColor represents an RGB color for a placed piece.
type pieceColor struct {
	R, G, B int
}

var pieceColors = []pieceColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	cutListWidth = 60.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF document containing the allocation.
// Each consumed sheet is rendered on its own page with a layout diagram and
// its cut list, followed by a summary page with overall statistics.
func ExportPDF(path string, result model.AllocationResult, cfg model.AppConfig) error {
	if len(result.UsedScraps) == 0 && len(result.PendingOrders) == 0 {
		return fmt.Errorf("nothing to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, sheet := range result.UsedScraps {
		pdf.AddPage()
		renderSheetPage(pdf, sheet, cfg.Unit)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result, cfg)

	return pdf.OutputFileAndClose(path)
}

// renderSheetPage draws a single sheet result on the current PDF page.
func renderSheetPage(pdf *fpdf.Fpdf, sheet model.SheetResult, unit string) {
	dims := sheet.ScrapDims

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Cut #%d: %s (%g x %g %s)", sheet.CutID, sheet.ScrapName, dims.Width, dims.Height, unit)
	if sheet.ScrapType != "" {
		title += " - " + sheet.ScrapType
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Pieces: %d of %d | Used area: %.0f sq %s | Waste: %.1f%%",
		sheet.FittedPieces, sheet.TotalPieces, sheet.UsedArea(), unit, sheet.WastePercent)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight - cutListWidth - 5
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	scale := math.Min(drawWidth/dims.Width, drawHeight/dims.Height)
	canvasW := dims.Width * scale
	canvasH := dims.Height * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Glass background
	pdf.SetFillColor(214, 234, 248)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, p := range sheet.Layout {
		col := pieceColors[i%len(pieceColors)]
		pw := p.Width * scale
		ph := p.Height * scale
		px := offsetX + p.X*scale
		py := offsetY + p.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := pieceLabel(p)
			size := fmt.Sprintf("%gx%g", p.Width, p.Height)

			labelW := pdf.GetStringWidth(label)
			sizeW := pdf.GetStringWidth(size)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && sizeW < pw-2 {
				pdf.SetXY(px+(pw-sizeW)/2, py+ph/2)
				pdf.CellFormat(sizeW, 4, size, "", 0, "C", false, 0, "")
			}
		}
	}

	drawCutLines(pdf, sheet.CutList, scale, offsetX, offsetY)
	drawDimensionAnnotations(pdf, dims, unit, offsetX, offsetY, canvasW, canvasH)
	drawPiecesLegend(pdf, sheet, offsetY+canvasH+6)
	drawCutList(pdf, sheet.CutList, unit, pageWidth-marginRight-cutListWidth, drawAreaTop)
}

// drawCutLines overlays the guillotine cuts as dashed red lines with their
// sequence numbers.
func drawCutLines(pdf *fpdf.Fpdf, cuts []model.Cut, scale, offsetX, offsetY float64) {
	if len(cuts) == 0 {
		return
	}
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.25)
	pdf.SetDashPattern([]float64{1.5, 1}, 0)
	pdf.SetFont("Helvetica", "B", 6)
	pdf.SetTextColor(200, 0, 0)

	for _, c := range cuts {
		ex, ey := c.End()
		x1, y1 := offsetX+c.X*scale, offsetY+c.Y*scale
		x2, y2 := offsetX+ex*scale, offsetY+ey*scale
		pdf.Line(x1, y1, x2, y2)

		pdf.SetXY(x1+0.5, y1+0.5)
		pdf.CellFormat(4, 2.5, fmt.Sprintf("%d", c.Seq), "", 0, "L", false, 0, "")
	}

	pdf.SetDashPattern([]float64{}, 0)
	pdf.SetTextColor(0, 0, 0)
}

// drawCutList prints the ordered cut instructions beside the diagram.
func drawCutList(pdf *fpdf.Fpdf, cuts []model.Cut, unit string, x, y float64) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(x, y)
	pdf.CellFormat(cutListWidth, 5, "Cut sequence", "B", 0, "L", false, 0, "")
	y += 6

	pdf.SetFont("Helvetica", "", 7)
	maxY := pageHeight - marginBottom - 4
	for i, c := range cuts {
		if y > maxY {
			pdf.SetXY(x, y)
			pdf.CellFormat(cutListWidth, 3.5, fmt.Sprintf("... %d more", len(cuts)-i), "", 0, "L", false, 0, "")
			break
		}
		pdf.SetXY(x, y)
		pdf.CellFormat(cutListWidth, 3.5, describeCut(c, unit), "", 0, "L", false, 0, "")
		y += 3.8
	}
}

// describeCut renders one cut as a short instruction line.
func describeCut(c model.Cut, unit string) string {
	if c.Axis == model.CutVertical {
		return fmt.Sprintf("%d. Vertical at x=%g from y=%g, %g %s", c.Seq, c.X, c.Y, c.Length, unit)
	}
	return fmt.Sprintf("%d. Horizontal at y=%g from x=%g, %g %s", c.Seq, c.Y, c.X, c.Length, unit)
}

// drawDimensionAnnotations adds width and height labels outside the sheet rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, dims model.Dimensions, unit string, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%g %s", dims.Width, unit)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%g %s", dims.Height, unit)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawPiecesLegend renders a compact legend of placed pieces below the diagram.
func drawPiecesLegend(pdf *fpdf.Fpdf, sheet model.SheetResult, startY float64) {
	if len(sheet.Layout) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Pieces placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight - cutListWidth - 5

	for i, p := range sheet.Layout {
		col := pieceColors[i%len(pieceColors)]
		label := fmt.Sprintf("%s (%gx%g)", pieceLabel(p), p.Width, p.Height)
		if p.Rotated {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.AllocationResult, cfg model.AppConfig) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Glass Cutting Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Sheets Used", fmt.Sprintf("%d", len(result.UsedScraps))},
		{"Overall Waste", fmt.Sprintf("%.1f%%", result.TotalWastePercent())},
		{"Pieces Placed", fmt.Sprintf("%d", result.TotalFitted())},
		{"Pending Pieces", fmt.Sprintf("%d", len(result.PendingOrders))},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	if len(result.UsedScraps) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(100, 7, "Sheet Breakdown", "", 0, "L", false, 0, "")
		y += 9

		colWidths := []float64{20, 70, 45, 45, 30, 30, 27}
		headers := []string{"Cut #", "Scrap", "Type", "Dimensions", "Pieces", "Waste", "Cuts"}

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		xPos := marginLeft
		for i, header := range headers {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
			xPos += colWidths[i]
		}
		y += 6

		pdf.SetFont("Helvetica", "", 9)
		for i, sheet := range result.UsedScraps {
			if y > pageHeight-marginBottom-40 {
				break
			}
			xPos = marginLeft
			rowData := []string{
				fmt.Sprintf("%d", sheet.CutID),
				sheet.ScrapName,
				sheet.ScrapType,
				fmt.Sprintf("%g x %g %s", sheet.ScrapDims.Width, sheet.ScrapDims.Height, cfg.Unit),
				fmt.Sprintf("%d", sheet.FittedPieces),
				fmt.Sprintf("%.1f%%", sheet.WastePercent),
				fmt.Sprintf("%d", len(sheet.CutList)),
			}

			if i%2 == 0 {
				pdf.SetFillColor(245, 245, 245)
			} else {
				pdf.SetFillColor(255, 255, 255)
			}

			for j, cell := range rowData {
				pdf.SetXY(xPos, y)
				pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
				xPos += colWidths[j]
			}
			y += 6
		}
	}

	if len(result.PendingOrders) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, fmt.Sprintf("INSUFFICIENT MATERIAL: could not fit %d pieces", len(result.PendingOrders)), "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, line := range pendingSummary(result.PendingOrders, cfg.Unit) {
			if y > pageHeight-marginBottom-20 {
				break
			}
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(200, 5, "- "+line, "", 0, "L", false, 0, "")
			y += 5
		}

		if cfg.StockWidth > 0 && cfg.StockHeight > 0 {
			est := model.CalculatePurchaseEstimate(result.PendingOrders, cfg.StockWidth, cfg.StockHeight, cfg.PurchaseWastePercent, cfg.StockPrice)
			y += 3
			pdf.SetFont("Helvetica", "B", 9)
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("Buy %d new sheet(s) of %g x %g %s (%.0f%% allowance)",
				est.SheetsWithWaste, cfg.StockWidth, cfg.StockHeight, cfg.Unit, est.WastePercent)
			if est.PricePerSheet > 0 {
				text += fmt.Sprintf(", est. cost %.2f", est.EstimatedCost)
			}
			if est.Oversized > 0 {
				text += fmt.Sprintf("; %d piece(s) exceed the stock sheet", est.Oversized)
			}
			pdf.CellFormat(250, 5, text, "", 0, "L", false, 0, "")
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by GlassCut - Glass Scrap Optimizer", "", 0, "C", false, 0, "")
}

// pendingSummary groups pending pieces by size, e.g. "3 x 600 x 400 cm".
func pendingSummary(pending []model.Piece, unit string) []string {
	type size struct{ w, h float64 }
	counts := make(map[size]int)
	var order []size
	for _, p := range pending {
		s := size{p.Width, p.Height}
		if counts[s] == 0 {
			order = append(order, s)
		}
		counts[s]++
	}
	lines := make([]string, 0, len(order))
	for _, s := range order {
		lines = append(lines, fmt.Sprintf("%d x %g x %g %s", counts[s], s.w, s.h, unit))
	}
	return lines
}

// pieceLabel returns the placement label, or a generated one.
func pieceLabel(p model.Placement) string {
	if p.Label != "" {
		return p.Label
	}
	return fmt.Sprintf("#%d", p.PieceID)
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
