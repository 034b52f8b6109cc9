package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/GlassCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

func TestExportDXF_WritesOneFilePerSheet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dxf")

	paths, err := ExportDXF(dir, buildTestResult())
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "sheet_1.dxf"), paths[0])
	assert.Equal(t, filepath.Join(dir, "sheet_2.dxf"), paths[1])

	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.NotZero(t, info.Size())
	}
}

func TestExportSheetDXF_Geometry(t *testing.T) {
	sheet := buildTestResult().UsedScraps[0]
	path := filepath.Join(t.TempDir(), "sheet.dxf")
	require.NoError(t, ExportSheetDXF(path, sheet))

	d, err := dxf.Open(path)
	require.NoError(t, err)

	var lines []*entity.Line
	for _, ent := range d.Entities() {
		if l, ok := ent.(*entity.Line); ok {
			lines = append(lines, l)
		}
	}
	// Outline + 2 pieces as 4 edges each, plus 2 cuts
	require.Len(t, lines, 4+2*4+2)

	// The horizontal cut at layout y=400 lands at y=100 once flipped
	cut := lines[len(lines)-1]
	assert.InDelta(t, 0, cut.Start[0], 1e-9)
	assert.InDelta(t, 100, cut.Start[1], 1e-9)
	assert.InDelta(t, 600, cut.End[0], 1e-9)
	assert.InDelta(t, 100, cut.End[1], 1e-9)
}

func TestExportDXF_EmptyResult(t *testing.T) {
	_, err := ExportDXF(t.TempDir(), model.AllocationResult{})
	assert.Error(t, err)
}
