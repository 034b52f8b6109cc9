package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/GlassCut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// DXF layer names.
const (
	LayerSheet  = "SHEET"
	LayerPieces = "PIECES"
	LayerCuts   = "CUTS"
)

// ExportSheetDXF writes one sheet layout as a DXF drawing: the sheet outline,
// every placed piece outline and every guillotine cut, each on its own layer.
// Layout coordinates have their origin at the top-left corner, so Y is
// flipped to the usual CAD orientation.
func ExportSheetDXF(path string, sheet model.SheetResult) error {
	h := sheet.ScrapDims.Height
	d := dxf.NewDrawing()

	if _, err := d.AddLayer(LayerSheet, color.White, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerSheet, err)
	}
	if err := addRect(d, 0, 0, sheet.ScrapDims.Width, h, h); err != nil {
		return err
	}

	if _, err := d.AddLayer(LayerPieces, color.Green, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerPieces, err)
	}
	for _, p := range sheet.Layout {
		if err := addRect(d, p.X, p.Y, p.Width, p.Height, h); err != nil {
			return err
		}
	}

	if _, err := d.AddLayer(LayerCuts, color.Red, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerCuts, err)
	}
	for _, c := range sheet.CutList {
		ex, ey := c.End()
		if _, err := d.Line(c.X, h-c.Y, 0, ex, h-ey, 0); err != nil {
			return fmt.Errorf("failed to draw cut %d: %w", c.Seq, err)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// ExportDXF writes one DXF file per consumed sheet into dir, named
// sheet_<cutID>.dxf, and returns the written paths in cut order.
func ExportDXF(dir string, result model.AllocationResult) ([]string, error) {
	if len(result.UsedScraps) == 0 {
		return nil, fmt.Errorf("no sheets to export")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	paths := make([]string, 0, len(result.UsedScraps))
	for _, sheet := range result.UsedScraps {
		path := filepath.Join(dir, fmt.Sprintf("sheet_%d.dxf", sheet.CutID))
		if err := ExportSheetDXF(path, sheet); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// addRect draws an axis-aligned rectangle given in layout coordinates.
func addRect(d *drawing.Drawing, x, y, w, h, sheetH float64) error {
	top := sheetH - y
	bottom := sheetH - y - h
	corners := [][2]float64{{x, bottom}, {x + w, bottom}, {x + w, top}, {x, top}}
	for i := range corners {
		a := corners[i]
		b := corners[(i+1)%len(corners)]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return fmt.Errorf("failed to draw rectangle edge: %w", err)
		}
	}
	return nil
}
