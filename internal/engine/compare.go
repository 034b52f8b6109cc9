package engine

import (
	"fmt"

	"github.com/piwi3910/GlassCut/internal/model"
)

// ComparisonScenario defines a named inventory to compare.
type ComparisonScenario struct {
	Name   string        `json:"name"`
	Scraps []model.Scrap `json:"scraps"`
}

// ComparisonResult holds the allocation and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario     ComparisonScenario     `json:"scenario"`
	Result       model.AllocationResult `json:"result"`
	SheetsUsed   int                    `json:"sheets_used"`
	PiecesPlaced int                    `json:"pieces_placed"`
	PendingCount int                    `json:"pending_count"`
	WastePercent float64                `json:"waste_percent"`
}

// CompareScenarios runs the optimizer for each scenario and returns the
// results in scenario order. This enables side-by-side comparison of
// inventory alternatives (e.g., buying a new sheet before cutting).
func CompareScenarios(scenarios []ComparisonScenario, orders []model.Order) []ComparisonResult {
	opt := New()
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result := opt.Optimize(scenario.Scraps, orders)
		results = append(results, ComparisonResult{
			Scenario:     scenario,
			Result:       result,
			SheetsUsed:   len(result.UsedScraps),
			PiecesPlaced: result.TotalFitted(),
			PendingCount: len(result.PendingOrders),
			WastePercent: result.TotalWastePercent(),
		})
	}

	return results
}

// NewStockID is the scrap ID of the hypothetical stock sheet added by
// BuildDefaultScenarios.
const NewStockID = "new-stock"

// BuildDefaultScenarios compares the current inventory with the same
// inventory plus one new full stock sheet from the configuration.
func BuildDefaultScenarios(inventory []model.Scrap, cfg model.AppConfig) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:   "Current Inventory",
			Scraps: inventory,
		},
	}

	if cfg.StockWidth > 0 && cfg.StockHeight > 0 {
		withStock := make([]model.Scrap, len(inventory), len(inventory)+1)
		copy(withStock, inventory)
		withStock = append(withStock, model.Scrap{
			ID:       NewStockID,
			Name:     "New stock sheet",
			Type:     "Stock",
			Width:    cfg.StockWidth,
			Height:   cfg.StockHeight,
			Quantity: 1,
		})
		scenarios = append(scenarios, ComparisonScenario{
			Name:   fmt.Sprintf("Plus New Sheet %gx%g %s", cfg.StockWidth, cfg.StockHeight, cfg.Unit),
			Scraps: withStock,
		})
	}

	return scenarios
}
