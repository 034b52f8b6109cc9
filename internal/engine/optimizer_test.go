package engine

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/piwi3910/GlassCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrap(id string, w, h float64, qty int) model.Scrap {
	return model.Scrap{ID: id, Width: w, Height: h, Quantity: qty}
}

func order(w, h float64, qty int) model.Order {
	return model.Order{Width: w, Height: h, Quantity: qty}
}

// checkAllocation asserts the properties every allocation must satisfy.
func checkAllocation(t *testing.T, scraps []model.Scrap, orders []model.Order, result model.AllocationResult) {
	t.Helper()

	assert.Equal(t, CountPieces(orders), result.TotalFitted()+len(result.PendingOrders), "pieces must be conserved")

	seen := make(map[int]bool)
	for _, sheet := range result.UsedScraps {
		require.NoError(t, ValidateLayout(sheet))
		assert.GreaterOrEqual(t, sheet.WastePercent, 0.0)
		assert.LessOrEqual(t, sheet.WastePercent, 100.0)
		assert.Equal(t, len(sheet.Layout), sheet.FittedPieces)
		for _, p := range sheet.Layout {
			assert.False(t, seen[p.PieceID], "piece %d placed twice", p.PieceID)
			seen[p.PieceID] = true
		}
	}
	for _, p := range result.PendingOrders {
		assert.False(t, seen[p.ID], "piece %d both placed and pending", p.ID)
	}

	available := make(map[string]int)
	for _, s := range scraps {
		available[s.ID] += s.Quantity
	}
	for id, used := range result.Consumption() {
		assert.LessOrEqual(t, used, available[id], "scrap %s over-consumed", id)
	}
}

func TestOptimize_TwoPiecesOneSheet(t *testing.T) {
	scraps := []model.Scrap{scrap("s1", 1000, 1000, 1)}
	orders := []model.Order{order(400, 300, 2)}

	result := New().Optimize(scraps, orders)
	checkAllocation(t, scraps, orders, result)

	require.Len(t, result.UsedScraps, 1)
	assert.Empty(t, result.PendingOrders)

	sheet := result.UsedScraps[0]
	assert.Equal(t, 1, sheet.CutID)
	assert.Equal(t, "s1", sheet.ScrapID)
	assert.Equal(t, 2, sheet.FittedPieces)
	assert.Equal(t, 2, sheet.TotalPieces)
	assert.InDelta(t, 76.0, sheet.WastePercent, 1e-9)
	assert.Equal(t, 0.0, sheet.Layout[0].X)
	assert.Equal(t, 400.0, sheet.Layout[1].X)
	assert.Equal(t, 0.0, sheet.Layout[1].Y)
}

func TestOptimize_PieceTooLarge(t *testing.T) {
	scraps := []model.Scrap{scrap("s1", 500, 500, 1)}
	orders := []model.Order{order(600, 400, 1)}

	result := New().Optimize(scraps, orders)
	checkAllocation(t, scraps, orders, result)

	assert.Empty(t, result.UsedScraps)
	require.Len(t, result.PendingOrders, 1)
	assert.Equal(t, 600.0, result.PendingOrders[0].Width)
	assert.True(t, result.HasPending())
}

func TestOptimize_OneSheetPerPiece(t *testing.T) {
	scraps := []model.Scrap{scrap("small", 300, 200, 1), scrap("large", 1000, 1000, 1)}
	orders := []model.Order{order(280, 180, 1), order(900, 900, 1)}

	result := New().Optimize(scraps, orders)
	checkAllocation(t, scraps, orders, result)

	require.Len(t, result.UsedScraps, 2)
	assert.Empty(t, result.PendingOrders)

	// Both candidates fit one piece; the snug sheet wastes less.
	first := result.UsedScraps[0]
	assert.Equal(t, "small", first.ScrapID)
	assert.Equal(t, 1, first.CutID)
	assert.InDelta(t, 16.0, first.WastePercent, 1e-9)

	second := result.UsedScraps[1]
	assert.Equal(t, "large", second.ScrapID)
	assert.Equal(t, 2, second.CutID)
	assert.InDelta(t, 19.0, second.WastePercent, 1e-9)
}

func TestOptimize_GridAcrossSheets(t *testing.T) {
	scraps := []model.Scrap{scrap("s", 100, 100, 3)}
	orders := []model.Order{order(50, 50, 7)}

	result := New().Optimize(scraps, orders)
	checkAllocation(t, scraps, orders, result)

	require.Len(t, result.UsedScraps, 2)
	assert.Empty(t, result.PendingOrders)
	assert.Equal(t, 4, result.UsedScraps[0].FittedPieces)
	assert.Equal(t, 0.0, result.UsedScraps[0].WastePercent)
	assert.Equal(t, 3, result.UsedScraps[1].FittedPieces)
	assert.Equal(t, 25.0, result.UsedScraps[1].WastePercent)
	assert.Equal(t, map[string]int{"s": 2}, result.Consumption())
}

func TestOptimize_QuantityLimitsConsumption(t *testing.T) {
	scraps := []model.Scrap{scrap("s", 100, 100, 1)}
	orders := []model.Order{order(50, 50, 7)}

	result := New().Optimize(scraps, orders)
	checkAllocation(t, scraps, orders, result)

	require.Len(t, result.UsedScraps, 1)
	assert.Len(t, result.PendingOrders, 3)
}

func TestOptimize_IterationLimit(t *testing.T) {
	scraps := []model.Scrap{scrap("s", 10, 10, 200)}
	orders := []model.Order{order(10, 10, 150)}

	result := New().Optimize(scraps, orders)
	checkAllocation(t, scraps, orders, result)

	assert.Len(t, result.UsedScraps, MaxIterations)
	assert.Len(t, result.PendingOrders, 50)
	assert.Equal(t, MaxIterations, result.UsedScraps[MaxIterations-1].CutID)
}

func TestOptimize_CustomIterationLimit(t *testing.T) {
	opt := &Optimizer{maxIterations: 2}
	result := opt.Optimize([]model.Scrap{scrap("s", 10, 10, 5)}, []model.Order{order(10, 10, 5)})
	assert.Len(t, result.UsedScraps, 2)
	assert.Len(t, result.PendingOrders, 3)
}

func TestOptimize_EmptyInputs(t *testing.T) {
	opt := New()

	result := opt.Optimize(nil, nil)
	assert.Empty(t, result.UsedScraps)
	assert.Empty(t, result.PendingOrders)
	assert.False(t, result.HasPending())

	result = opt.Optimize(nil, []model.Order{order(10, 10, 2)})
	assert.Empty(t, result.UsedScraps)
	assert.Len(t, result.PendingOrders, 2)

	result = opt.Optimize([]model.Scrap{scrap("s", 100, 100, 1)}, nil)
	assert.Empty(t, result.UsedScraps)
	assert.Empty(t, result.PendingOrders)
}

func TestOptimize_InvalidEntriesIgnored(t *testing.T) {
	scraps := []model.Scrap{
		scrap("zero-qty", 1000, 1000, 0),
		scrap("negative", -5, 100, 1),
		scrap("ok", 100, 100, 1),
	}
	orders := []model.Order{order(0, 10, 1), order(10, 10, -1), order(10, 10, 1)}

	result := New().Optimize(scraps, orders)
	require.Len(t, result.UsedScraps, 1)
	assert.Equal(t, "ok", result.UsedScraps[0].ScrapID)
	assert.Empty(t, result.PendingOrders)
}

func TestOptimize_InfeasiblePieceAlwaysPending(t *testing.T) {
	scraps := []model.Scrap{scrap("a", 100, 200, 2), scrap("b", 150, 150, 1)}
	orders := []model.Order{order(50, 50, 3), order(300, 300, 1)}

	result := New().Optimize(scraps, orders)
	checkAllocation(t, scraps, orders, result)

	require.Len(t, result.PendingOrders, 1)
	assert.Equal(t, 300.0, result.PendingOrders[0].Width)
}

func TestOptimize_DoesNotModifyCallerInventory(t *testing.T) {
	scraps := []model.Scrap{scrap("s", 100, 100, 3), {Width: 50, Height: 50, Quantity: 1}}
	orders := []model.Order{order(50, 50, 7)}
	before := append([]model.Scrap(nil), scraps...)

	New().Optimize(scraps, orders)
	assert.Equal(t, before, scraps)
}

func TestOptimize_FillsMissingScrapIDs(t *testing.T) {
	scraps := []model.Scrap{
		{Width: 10, Height: 10, Quantity: 1},
		{Width: 100, Height: 100, Quantity: 1},
	}
	result := New().Optimize(scraps, []model.Order{order(90, 90, 1)})

	require.Len(t, result.UsedScraps, 1)
	assert.Equal(t, "2", result.UsedScraps[0].ScrapID)
	assert.Equal(t, "Scrap #2", result.UsedScraps[0].ScrapName)

	// A filled-in position must not collide with an explicit ID
	mixed := []model.Scrap{
		{Width: 100, Height: 100, Quantity: 1},
		{ID: "1", Width: 200, Height: 200, Quantity: 1},
	}
	result = New().Optimize(mixed, []model.Order{order(100, 100, 1), order(200, 200, 1)})

	require.Len(t, result.UsedScraps, 2)
	ids := map[string]model.Dimensions{}
	for _, s := range result.UsedScraps {
		ids[s.ScrapID] = s.ScrapDims
	}
	assert.Equal(t, model.Dimensions{Width: 200, Height: 200}, ids["1"])
	assert.Equal(t, model.Dimensions{Width: 100, Height: 100}, ids["1-2"])
	assert.Equal(t, map[string]int{"1": 1, "1-2": 1}, result.Consumption())
}

func TestOptimize_Deterministic(t *testing.T) {
	scraps := []model.Scrap{scrap("a", 250, 180, 2), scrap("b", 120, 300, 1), scrap("c", 90, 90, 4)}
	orders := []model.Order{order(60, 40, 5), order(100, 80, 3), order(30, 30, 9), order(45, 120, 2)}

	opt := New()
	first := opt.Optimize(scraps, orders)
	second := opt.Optimize(scraps, orders)
	assert.Equal(t, first, second)
}

func TestOptimize_RandomizedProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	opt := New()

	for round := 0; round < 50; round++ {
		var scraps []model.Scrap
		for i := 0; i < 1+rng.Intn(4); i++ {
			scraps = append(scraps, scrap(
				string(rune('a'+i)),
				float64(20+rng.Intn(100)),
				float64(20+rng.Intn(100)),
				1+rng.Intn(3),
			))
		}
		var orders []model.Order
		for i := 0; i < 1+rng.Intn(5); i++ {
			orders = append(orders, order(
				float64(1+rng.Intn(60)),
				float64(1+rng.Intn(60)),
				1+rng.Intn(4),
			))
		}

		result := opt.Optimize(scraps, orders)
		checkAllocation(t, scraps, orders, result)
		for _, sheet := range result.UsedScraps {
			if sheet.UsedArea() == sheet.TotalArea() {
				assert.Equal(t, 0.0, sheet.WastePercent)
			} else {
				assert.Greater(t, sheet.WastePercent, 0.0)
			}
		}
	}
}

func TestOptimize_AliasedInput(t *testing.T) {
	var scraps []model.Scrap
	var orders []model.Order
	require.NoError(t, json.Unmarshal([]byte(`[{"id":"s1","nombre":"Retazo","ancho":"1000","alto":1000,"cantidad":1}]`), &scraps))
	require.NoError(t, json.Unmarshal([]byte(`[{"width":"abc","ancho":400,"alto":"300","cantidad":1.5}]`), &orders))

	result := New().Optimize(scraps, orders)
	require.Len(t, result.UsedScraps, 1)
	assert.Equal(t, "Retazo", result.UsedScraps[0].ScrapName)
	assert.Equal(t, 2, result.UsedScraps[0].FittedPieces)
	assert.InDelta(t, 76.0, result.UsedScraps[0].WastePercent, 1e-9)
}

func TestBestOption_MatchesFirstSheet(t *testing.T) {
	scraps := []model.Scrap{scrap("small", 300, 200, 1), scrap("large", 1000, 1000, 1)}
	orders := []model.Order{order(280, 180, 1), order(900, 900, 1)}
	opt := New()

	best, ok := opt.BestOption(scraps, orders)
	require.True(t, ok)
	assert.Equal(t, opt.Optimize(scraps, orders).UsedScraps[0], best)

	_, ok = opt.BestOption(scraps, []model.Order{order(5000, 5000, 1)})
	assert.False(t, ok)
}

func TestQuickCheck(t *testing.T) {
	opt := New()

	result := opt.QuickCheck(1000, 1000, []model.Order{order(400, 300, 2)})
	require.Len(t, result.UsedScraps, 1)
	assert.Equal(t, QuickCheckID, result.UsedScraps[0].ScrapID)
	assert.Equal(t, "Quick Check", result.UsedScraps[0].ScrapType)
	assert.Empty(t, result.PendingOrders)

	// Only one sheet is available, so the overflow stays pending.
	result = opt.QuickCheck(100, 100, []model.Order{order(50, 50, 6)})
	require.Len(t, result.UsedScraps, 1)
	assert.Len(t, result.PendingOrders, 2)

	result = opt.QuickCheck(0, 100, []model.Order{order(50, 50, 1)})
	assert.Empty(t, result.UsedScraps)
	assert.Len(t, result.PendingOrders, 1)
}

func TestRemovePieces(t *testing.T) {
	pending := pieces([2]float64{1, 1}, [2]float64{2, 2}, [2]float64{3, 3})
	kept := removePieces(pending, []int{2})
	require.Len(t, kept, 2)
	assert.Equal(t, 1, kept[0].ID)
	assert.Equal(t, 3, kept[1].ID)
	assert.Len(t, pending, 3)
}
