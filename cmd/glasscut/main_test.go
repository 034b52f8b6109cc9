package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/GlassCut/internal/model"
	"github.com/piwi3910/GlassCut/internal/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	out := &bytes.Buffer{}
	return &app{
		cfg:        model.DefaultAppConfig(),
		configPath: filepath.Join(dir, "config.json"),
		store:      project.NewStore(filepath.Join(dir, "workspace.json")),
		out:        out,
	}, out
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runCmd(a *app, args ...string) int {
	return exitCode(a.dispatch(context.Background(), args), io.Discard)
}

const inventoryCSV = "name,width,height,quantity\nLarge,1000,500,1\n"
const ordersCSV = "label,width,height,quantity\nPane,400,300,1\nSmall,300,200,1\n"

func TestOptimizeJSON(t *testing.T) {
	a, out := newTestApp(t)
	inv := writeFile(t, "inventory.csv", inventoryCSV)
	orders := writeFile(t, "orders.csv", ordersCSV)

	code := runCmd(a, "optimize", "--inventory", inv, "--orders", orders, "--json")
	require.Equal(t, exitOK, code, out.String())

	var result model.AllocationResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	require.Len(t, result.UsedScraps, 1)
	assert.Equal(t, "Large", result.UsedScraps[0].ScrapName)
	assert.Equal(t, 2, result.UsedScraps[0].FittedPieces)
	assert.Equal(t, 64.0, result.UsedScraps[0].WastePercent)
}

func TestOptimizePendingExitCode(t *testing.T) {
	a, out := newTestApp(t)
	inv := writeFile(t, "inventory.csv", "width,height,quantity\n100,100,1\n")
	orders := writeFile(t, "orders.csv", "width,height,quantity\n100,100,2\n")

	code := runCmd(a, "optimize", "--inventory", inv, "--orders", orders)
	assert.Equal(t, exitPending, code)
	assert.Contains(t, out.String(), "Pending pieces: 1")
	assert.Contains(t, out.String(), "Purchase estimate: 1 sheet(s)")
}

func TestOptimizeWritesOutputs(t *testing.T) {
	a, _ := newTestApp(t)
	inv := writeFile(t, "inventory.csv", inventoryCSV)
	orders := writeFile(t, "orders.csv", ordersCSV)
	dir := t.TempDir()

	code := runCmd(a, "optimize",
		"--inventory", inv, "--orders", orders,
		"--pdf", filepath.Join(dir, "report.pdf"),
		"--labels", filepath.Join(dir, "labels.pdf"),
		"--dxf", filepath.Join(dir, "dxf"),
		"--gcode", filepath.Join(dir, "nc"),
		"--chart", filepath.Join(dir, "chart.html"))
	require.Equal(t, exitOK, code)

	for _, p := range []string{
		"report.pdf",
		"labels.pdf",
		filepath.Join("dxf", "sheet_1.dxf"),
		filepath.Join("nc", "sheet_1.nc"),
		"chart.html",
	} {
		info, err := os.Stat(filepath.Join(dir, p))
		if assert.NoError(t, err, p) {
			assert.NotZero(t, info.Size(), p)
		}
	}
}

func TestOptimizeBadInput(t *testing.T) {
	a, _ := newTestApp(t)
	orders := writeFile(t, "orders.csv", ordersCSV)

	assert.Equal(t, exitInput, runCmd(a, "optimize", "--inventory", filepath.Join(t.TempDir(), "missing.csv"), "--orders", orders))
	assert.Equal(t, exitInput, runCmd(a, "optimize", "--no-such-flag"))
}

func TestImportThenOptimizeWorkspace(t *testing.T) {
	a, out := newTestApp(t)
	inv := writeFile(t, "inventory.csv", inventoryCSV)
	orders := writeFile(t, "orders.csv", "width,height,quantity\n400,500,1\n")

	require.Equal(t, exitOK, runCmd(a, "import", "--inventory", inv))
	require.Equal(t, exitOK, runCmd(a, "import", "--orders", orders))
	assert.Contains(t, out.String(), "Imported 1 scraps")
	assert.Contains(t, out.String(), "Imported 1 orders")

	out.Reset()
	require.Equal(t, exitOK, runCmd(a, "optimize", "--save-offcuts"))
	assert.Contains(t, out.String(), "Saved 1 offcut(s)")

	// The sheet was consumed and its 600 x 500 remnant stored
	ws, err := a.store.Load()
	require.NoError(t, err)
	require.Len(t, ws.Inventory, 1)
	assert.Equal(t, 600.0, ws.Inventory[0].Width)
	assert.Equal(t, 500.0, ws.Inventory[0].Height)
}

func TestImportRequiresOneSource(t *testing.T) {
	a, _ := newTestApp(t)
	assert.Equal(t, exitInput, runCmd(a, "import"))
	assert.Equal(t, exitInput, runCmd(a, "import", "--inventory", "a.csv", "--orders", "b.csv"))
}

func TestQuick(t *testing.T) {
	a, out := newTestApp(t)
	orders := writeFile(t, "orders.csv", "width,height,quantity\n50,50,4\n")

	require.Equal(t, exitOK, runCmd(a, "quick", "--width", "100", "--height", "100", "--orders", orders))
	assert.Contains(t, out.String(), "Quick Check")
	assert.Contains(t, out.String(), "4 of 4 pieces, waste 0.0%")

	assert.Equal(t, exitInput, runCmd(a, "quick", "--width", "0", "--height", "100"))
}

func TestCompare(t *testing.T) {
	a, out := newTestApp(t)
	inv := writeFile(t, "inventory.csv", "width,height,quantity\n100,100,1\n")
	orders := writeFile(t, "orders.csv", "width,height,quantity\n100,100,2\n")

	require.Equal(t, exitOK, runCmd(a, "compare", "--inventory", inv, "--orders", orders))
	assert.Contains(t, out.String(), "Current Inventory")
	assert.Contains(t, out.String(), "Plus New Sheet 321x225 cm")
}

func TestBackupRestore(t *testing.T) {
	a, _ := newTestApp(t)
	_, err := a.store.Update(func(ws *model.Workspace) error {
		ws.AddScrap(model.Scrap{ID: "s1", Width: 10, Height: 10, Quantity: 1})
		return nil
	})
	require.NoError(t, err)

	backupPath := filepath.Join(t.TempDir(), "backup.json")
	require.Equal(t, exitOK, runCmd(a, "backup", "--out", backupPath))

	b, _ := newTestApp(t)
	require.Equal(t, exitOK, runCmd(b, "restore", "--in", backupPath))

	ws, err := b.store.Load()
	require.NoError(t, err)
	require.Len(t, ws.Inventory, 1)
	assert.Equal(t, "s1", ws.Inventory[0].ID)

	_, err = os.Stat(b.configPath)
	assert.NoError(t, err)

	assert.Equal(t, exitInput, runCmd(b, "restore"))
}

func TestUnknownCommand(t *testing.T) {
	a, _ := newTestApp(t)
	assert.Equal(t, exitInput, runCmd(a, "frobnicate"))
}

func TestExitCode(t *testing.T) {
	var w bytes.Buffer
	assert.Equal(t, exitOK, exitCode(nil, &w))
	assert.Empty(t, w.String())
	assert.Equal(t, exitPending, exitCode(errPending, &w))
	assert.Equal(t, exitIO, exitCode(ioError(errors.New("disk full")), &w))
	assert.Equal(t, exitInput, exitCode(inputError(errors.New("bad")), &w))
	assert.Equal(t, exitInput, exitCode(errors.New("other"), &w))
	assert.Contains(t, w.String(), "disk full")
}
