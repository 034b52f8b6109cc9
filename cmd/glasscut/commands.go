package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/piwi3910/GlassCut/internal/engine"
	"github.com/piwi3910/GlassCut/internal/export"
	"github.com/piwi3910/GlassCut/internal/gcode"
	"github.com/piwi3910/GlassCut/internal/importer"
	"github.com/piwi3910/GlassCut/internal/model"
	"github.com/piwi3910/GlassCut/internal/project"
	"github.com/piwi3910/GlassCut/internal/server"
	"k8s.io/klog/v2"
)

type app struct {
	cfg        model.AppConfig
	configPath string
	store      *project.Store
	out        io.Writer
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	switch args[0] {
	case "optimize":
		return a.optimize(args[1:])
	case "quick":
		return a.quick(args[1:])
	case "compare":
		return a.compare(args[1:])
	case "import":
		return a.importFile(args[1:])
	case "backup":
		return a.backup(args[1:])
	case "restore":
		return a.restore(args[1:])
	case "serve":
		return a.serve(ctx, args[1:])
	default:
		printUsage()
		return inputError(fmt.Errorf("unknown command %q", args[0]))
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func (a *app) optimize(args []string) error {
	fs := newFlagSet("optimize")
	inventoryPath := fs.String("inventory", "", "inventory file (.csv, .xlsx, .json, .dxf); defaults to the workspace")
	ordersPath := fs.String("orders", "", "orders file (.csv, .xlsx, .json); defaults to the workspace")
	asJSON := fs.Bool("json", false, "print the allocation as JSON")
	pdfPath := fs.String("pdf", "", "write the cutting report PDF to this file")
	labelsPath := fs.String("labels", "", "write piece labels PDF to this file")
	dxfDir := fs.String("dxf", "", "write one DXF drawing per sheet into this directory")
	gcodeDir := fs.String("gcode", "", "write one scoring program per sheet into this directory")
	chartPath := fs.String("chart", "", "write the waste chart HTML to this file")
	saveOffcuts := fs.Bool("save-offcuts", false, "update the workspace: consume used sheets and store reusable offcuts")
	if err := fs.Parse(args); err != nil {
		return inputError(err)
	}

	scraps, fromWorkspace, err := a.loadScraps(*inventoryPath)
	if err != nil {
		return err
	}
	orders, err := a.loadOrders(*ordersPath)
	if err != nil {
		return err
	}

	result := engine.New().Optimize(scraps, orders)
	klog.InfoS("Allocation finished",
		"sheets", len(result.UsedScraps),
		"placed", result.TotalFitted(),
		"pending", len(result.PendingOrders))

	if *asJSON {
		if err := writeJSON(a.out, result); err != nil {
			return ioError(err)
		}
	} else {
		printAllocation(a.out, result, a.cfg)
		printEdgeWork(a.out, orders, a.cfg)
	}

	if err := a.writeOutputs(result, outputPaths{
		pdf:    *pdfPath,
		labels: *labelsPath,
		dxf:    *dxfDir,
		gcode:  *gcodeDir,
		chart:  *chartPath,
	}); err != nil {
		return ioError(err)
	}

	if *saveOffcuts {
		if err := a.saveOffcuts(result, fromWorkspace); err != nil {
			return ioError(err)
		}
	}

	if result.HasPending() {
		return errPending
	}
	return nil
}

type outputPaths struct {
	pdf, labels, dxf, gcode, chart string
}

func (a *app) writeOutputs(result model.AllocationResult, paths outputPaths) error {
	if paths.pdf != "" {
		if err := export.ExportPDF(paths.pdf, result, a.cfg); err != nil {
			return fmt.Errorf("failed to export PDF: %w", err)
		}
		klog.InfoS("Wrote report", "path", paths.pdf)
	}
	if paths.labels != "" {
		if err := export.ExportLabels(paths.labels, result, a.cfg.Unit); err != nil {
			return fmt.Errorf("failed to export labels: %w", err)
		}
		klog.InfoS("Wrote labels", "path", paths.labels)
	}
	if paths.dxf != "" {
		written, err := export.ExportDXF(paths.dxf, result)
		if err != nil {
			return fmt.Errorf("failed to export DXF: %w", err)
		}
		klog.InfoS("Wrote DXF drawings", "dir", paths.dxf, "files", len(written))
	}
	if paths.gcode != "" {
		written, err := writePrograms(paths.gcode, result, a.cfg)
		if err != nil {
			return err
		}
		klog.InfoS("Wrote scoring programs", "dir", paths.gcode, "files", len(written))
	}
	if paths.chart != "" {
		f, err := os.Create(paths.chart)
		if err != nil {
			return fmt.Errorf("failed to create chart file: %w", err)
		}
		if err := export.RenderWasteChart(f, result); err != nil {
			f.Close()
			return fmt.Errorf("failed to render chart: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write chart: %w", err)
		}
		klog.InfoS("Wrote chart", "path", paths.chart)
	}
	return nil
}

// writePrograms writes sheet_<cutID>.nc for every consumed sheet.
func writePrograms(dir string, result model.AllocationResult, cfg model.AppConfig) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	gen := gcode.New(cfg)
	programs := gen.GenerateAll(result)
	paths := make([]string, 0, len(programs))
	for i, code := range programs {
		path := filepath.Join(dir, fmt.Sprintf("sheet_%d.nc", result.UsedScraps[i].CutID))
		if err := os.WriteFile(path, []byte(code), 0644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// saveOffcuts stores reusable remnants as new scraps. Consumed sheets are
// removed from the workspace only when the inventory came from it.
func (a *app) saveOffcuts(result model.AllocationResult, consume bool) error {
	offcuts := model.DetectAllOffcuts(result, a.cfg.OffcutMinDimension, a.cfg.OffcutMinArea)
	_, err := a.store.Update(func(ws *model.Workspace) error {
		if consume {
			ws.ConsumeSheets(result)
		}
		ws.AddOffcuts(offcuts)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update workspace: %w", err)
	}
	fmt.Fprintf(a.out, "Saved %d offcut(s) to the workspace (%.0f sq %s)\n",
		len(offcuts), model.TotalOffcutArea(offcuts), a.cfg.Unit)
	return nil
}

func (a *app) quick(args []string) error {
	fs := newFlagSet("quick")
	width := fs.Float64("width", 0, "sheet width")
	height := fs.Float64("height", 0, "sheet height")
	ordersPath := fs.String("orders", "", "orders file; defaults to the workspace")
	asJSON := fs.Bool("json", false, "print the allocation as JSON")
	if err := fs.Parse(args); err != nil {
		return inputError(err)
	}
	if *width <= 0 || *height <= 0 {
		return inputError(errors.New("--width and --height must be positive"))
	}

	orders, err := a.loadOrders(*ordersPath)
	if err != nil {
		return err
	}

	result := engine.New().QuickCheck(*width, *height, orders)
	if *asJSON {
		if err := writeJSON(a.out, result); err != nil {
			return ioError(err)
		}
	} else {
		printAllocation(a.out, result, a.cfg)
	}
	if result.HasPending() {
		return errPending
	}
	return nil
}

func (a *app) compare(args []string) error {
	fs := newFlagSet("compare")
	inventoryPath := fs.String("inventory", "", "inventory file; defaults to the workspace")
	ordersPath := fs.String("orders", "", "orders file; defaults to the workspace")
	asJSON := fs.Bool("json", false, "print the comparison as JSON")
	if err := fs.Parse(args); err != nil {
		return inputError(err)
	}

	scraps, _, err := a.loadScraps(*inventoryPath)
	if err != nil {
		return err
	}
	orders, err := a.loadOrders(*ordersPath)
	if err != nil {
		return err
	}

	results := engine.CompareScenarios(engine.BuildDefaultScenarios(scraps, a.cfg), orders)
	if *asJSON {
		if err := writeJSON(a.out, results); err != nil {
			return ioError(err)
		}
		return nil
	}
	printComparison(a.out, results)
	return nil
}

func (a *app) importFile(args []string) error {
	fs := newFlagSet("import")
	inventoryPath := fs.String("inventory", "", "add scraps from this file to the workspace")
	ordersPath := fs.String("orders", "", "add orders from this file to the workspace")
	if err := fs.Parse(args); err != nil {
		return inputError(err)
	}
	if (*inventoryPath == "") == (*ordersPath == "") {
		return inputError(errors.New("exactly one of --inventory or --orders is required"))
	}

	kind, path := importer.KindScraps, *inventoryPath
	if *ordersPath != "" {
		kind, path = importer.KindOrders, *ordersPath
	}
	res, err := importEntries(path, kind)
	if err != nil {
		return err
	}

	_, err = a.store.Update(func(ws *model.Workspace) error {
		for _, s := range res.Scraps {
			ws.AddScrap(s)
		}
		for _, o := range res.Orders {
			ws.AddOrder(o)
		}
		return nil
	})
	if err != nil {
		return ioError(fmt.Errorf("failed to update workspace: %w", err))
	}
	fmt.Fprintf(a.out, "Imported %d %s into %s\n", res.Count(), kind, a.store.Path())
	return nil
}

func (a *app) backup(args []string) error {
	fs := newFlagSet("backup")
	outPath := fs.String("out", "glasscut-backup.json", "backup file to write")
	if err := fs.Parse(args); err != nil {
		return inputError(err)
	}

	ws, err := a.store.Load()
	if err != nil {
		return ioError(err)
	}
	if err := project.ExportAllData(*outPath, a.cfg, ws); err != nil {
		return ioError(err)
	}
	fmt.Fprintf(a.out, "Backup written to %s\n", *outPath)
	return nil
}

func (a *app) restore(args []string) error {
	fs := newFlagSet("restore")
	inPath := fs.String("in", "", "backup file to restore")
	if err := fs.Parse(args); err != nil {
		return inputError(err)
	}
	if *inPath == "" {
		return inputError(errors.New("--in is required"))
	}

	backup, err := project.ImportAllData(*inPath)
	if err != nil {
		return inputError(err)
	}
	if err := project.SaveAppConfig(a.configPath, backup.Config); err != nil {
		return ioError(err)
	}
	if err := project.SaveWorkspace(a.store.Path(), backup.Workspace); err != nil {
		return ioError(err)
	}
	fmt.Fprintf(a.out, "Restored %d scrap(s) and %d order(s) from %s\n",
		len(backup.Workspace.Inventory), len(backup.Workspace.Orders), *inPath)
	return nil
}

func (a *app) serve(ctx context.Context, args []string) error {
	fs := newFlagSet("serve")
	addr := fs.String("addr", a.cfg.ServerAddr, "listen address")
	if err := fs.Parse(args); err != nil {
		return inputError(err)
	}

	if err := server.New(a.store, a.cfg).Run(ctx, *addr); err != nil {
		return ioError(err)
	}
	return nil
}

// loadScraps reads inventory from path, or from the workspace when path is
// empty. It reports whether the workspace was used.
func (a *app) loadScraps(path string) ([]model.Scrap, bool, error) {
	if path == "" {
		ws, err := a.store.Load()
		if err != nil {
			return nil, false, ioError(err)
		}
		return ws.Inventory, true, nil
	}
	res, err := importEntries(path, importer.KindScraps)
	if err != nil {
		return nil, false, err
	}
	return res.Scraps, false, nil
}

func (a *app) loadOrders(path string) ([]model.Order, error) {
	if path == "" {
		ws, err := a.store.Load()
		if err != nil {
			return nil, ioError(err)
		}
		return ws.Orders, nil
	}
	res, err := importEntries(path, importer.KindOrders)
	if err != nil {
		return nil, err
	}
	return res.Orders, nil
}

// importEntries imports a file, logging row warnings. Row errors fail the
// import only when nothing usable was read.
func importEntries(path string, kind importer.Kind) (importer.ImportResult, error) {
	res := importer.ImportFile(path, kind)
	for _, w := range res.Warnings {
		klog.InfoS("Import warning", "file", path, "warning", w)
	}
	for _, e := range res.Errors {
		klog.ErrorS(errors.New(e), "Import error", "file", path)
	}
	if res.Count() == 0 {
		if len(res.Errors) > 0 {
			return res, inputError(fmt.Errorf("failed to import %s from %s: %s", kind, path, res.Errors[0]))
		}
		return res, inputError(fmt.Errorf("no %s found in %s", kind, path))
	}
	klog.V(2).InfoS("Imported", "file", path, "kind", kind.String(), "count", res.Count())
	return res, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
