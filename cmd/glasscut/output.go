package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/piwi3910/GlassCut/internal/engine"
	"github.com/piwi3910/GlassCut/internal/model"
)

func printAllocation(w io.Writer, result model.AllocationResult, cfg model.AppConfig) {
	if len(result.UsedScraps) == 0 {
		fmt.Fprintln(w, "No sheet could be used.")
	}

	for _, s := range result.UsedScraps {
		fmt.Fprintf(w, "Cut #%d: %s (%g x %g %s)", s.CutID, s.ScrapName, s.ScrapDims.Width, s.ScrapDims.Height, cfg.Unit)
		if s.ScrapType != "" {
			fmt.Fprintf(w, " [%s]", s.ScrapType)
		}
		fmt.Fprintf(w, " - %d of %d pieces, waste %.1f%%\n", s.FittedPieces, s.TotalPieces, s.WastePercent)

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  PIECE\tLABEL\tX\tY\tW\tH\tROTATED")
		for _, p := range s.Layout {
			rotated := ""
			if p.Rotated {
				rotated = "yes"
			}
			fmt.Fprintf(tw, "  %d\t%s\t%g\t%g\t%g\t%g\t%s\n", p.PieceID, p.Label, p.X, p.Y, p.Width, p.Height, rotated)
		}
		tw.Flush()

		for _, c := range s.CutList {
			fmt.Fprintf(w, "  cut %d: %s at (%g, %g), length %g\n", c.Seq, c.Axis, c.X, c.Y, c.Length)
		}
	}

	fmt.Fprintf(w, "\nSheets used: %d, pieces placed: %d, overall waste: %.1f%%\n",
		len(result.UsedScraps), result.TotalFitted(), result.TotalWastePercent())

	if !result.HasPending() {
		return
	}
	fmt.Fprintf(w, "Pending pieces: %d\n", len(result.PendingOrders))
	for _, p := range result.PendingOrders {
		label := p.Label
		if label == "" {
			label = fmt.Sprintf("#%d", p.ID)
		}
		fmt.Fprintf(w, "  %s: %g x %g %s\n", label, p.Width, p.Height, cfg.Unit)
	}

	if cfg.StockWidth > 0 && cfg.StockHeight > 0 {
		est := model.CalculatePurchaseEstimate(result.PendingOrders, cfg.StockWidth, cfg.StockHeight, cfg.PurchaseWastePercent, cfg.StockPrice)
		fmt.Fprintf(w, "Purchase estimate: %d sheet(s) of %g x %g %s", est.SheetsWithWaste, cfg.StockWidth, cfg.StockHeight, cfg.Unit)
		if est.PricePerSheet > 0 {
			fmt.Fprintf(w, ", cost %.2f", est.EstimatedCost)
		}
		fmt.Fprintln(w)
		if est.Oversized > 0 {
			fmt.Fprintf(w, "  %d piece(s) are larger than a stock sheet\n", est.Oversized)
		}
	}
}

func printEdgeWork(w io.Writer, orders []model.Order, cfg model.AppConfig) {
	summary := model.CalculateEdgeWork(orders, cfg.EdgeWorkWastePercent)
	if summary.PieceCount == 0 {
		return
	}
	fmt.Fprintf(w, "Polishing: %d edge(s) on %d piece(s), %g %s (%g %s with %.0f%% allowance)\n",
		summary.EdgeCount, summary.PieceCount, summary.TotalLength, cfg.Unit,
		summary.TotalWithWasteLength, cfg.Unit, summary.WastePercent)
	for _, o := range model.CalculatePerOrderEdgeWork(orders) {
		fmt.Fprintf(w, "  %s %g x %g x%d: %s, %g %s\n", o.Label, o.Width, o.Height, o.Quantity, o.Edges, o.TotalLength, cfg.Unit)
	}
}

func printComparison(w io.Writer, results []engine.ComparisonResult) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tSHEETS\tPLACED\tPENDING\tWASTE")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.1f%%\n", r.Scenario.Name, r.SheetsUsed, r.PiecesPlaced, r.PendingCount, r.WastePercent)
	}
	tw.Flush()
}
