package engine

import (
	"strconv"

	"k8s.io/klog/v2"

	"github.com/piwi3910/GlassCut/internal/model"
)

// MaxIterations bounds the number of sheets a single allocation may consume.
const MaxIterations = 100

// QuickCheckID is the scrap ID used by QuickCheck for its temporary sheet.
const QuickCheckID = "quick-check"

// Optimizer allocates pieces across scraps sheet by sheet.
// It holds no state between calls and is safe for concurrent use.
type Optimizer struct {
	maxIterations int
}

func New() *Optimizer {
	return &Optimizer{maxIterations: MaxIterations}
}

// Optimize expands the orders into pieces and allocates them across the
// scraps. The caller's slices are never modified.
func (o *Optimizer) Optimize(scraps []model.Scrap, orders []model.Order) model.AllocationResult {
	return o.Allocate(scraps, ExpandOrders(orders))
}

// Allocate repeatedly picks the best scrap for the still pending pieces,
// consumes one sheet of it and removes the pieces it took, until nothing is
// pending, nothing fits or the iteration limit is hit. Every round
// re-evaluates all scraps against all pending pieces from scratch.
func (o *Optimizer) Allocate(scraps []model.Scrap, pieces []model.Piece) model.AllocationResult {
	working := workingInventory(scraps)
	pending := make([]model.Piece, len(pieces))
	copy(pending, pieces)

	result := model.AllocationResult{
		UsedScraps: []model.SheetResult{},
	}

	for iteration := 0; len(pending) > 0; iteration++ {
		if iteration >= o.maxIterations {
			klog.InfoS("Iteration limit reached", "limit", o.maxIterations, "pending", len(pending))
			break
		}

		sel, ok := SelectBestScrap(working, pending)
		if !ok {
			klog.V(2).InfoS("No scrap fits the pending pieces", "pending", len(pending))
			break
		}

		if err := ValidateLayout(sel.Sheet); err != nil {
			klog.ErrorS(err, "Rejected invalid layout", "scrap", sel.Sheet.ScrapID)
			break
		}

		sel.Sheet.CutID = len(result.UsedScraps) + 1
		result.UsedScraps = append(result.UsedScraps, sel.Sheet)
		pending = removePieces(pending, sel.Placed)
		working[sel.Index].Quantity--

		klog.V(2).InfoS("Consumed sheet",
			"cutID", sel.Sheet.CutID,
			"scrap", sel.Sheet.ScrapID,
			"fitted", sel.Sheet.FittedPieces,
			"waste", sel.Sheet.WastePercent,
			"pending", len(pending),
			"remaining", working[sel.Index].Quantity)
	}

	result.PendingOrders = pending
	return result
}

// BestOption returns the first sheet of the full allocation, or false when
// nothing could be placed.
func (o *Optimizer) BestOption(scraps []model.Scrap, orders []model.Order) (model.SheetResult, bool) {
	result := o.Optimize(scraps, orders)
	if len(result.UsedScraps) == 0 {
		return model.SheetResult{}, false
	}
	return result.UsedScraps[0], true
}

// QuickCheck allocates the orders onto a single hypothetical sheet of the
// given size, without touching any inventory.
func (o *Optimizer) QuickCheck(width, height float64, orders []model.Order) model.AllocationResult {
	sheet := model.Scrap{
		ID:       QuickCheckID,
		Name:     "Quick Check",
		Type:     "Quick Check",
		Width:    width,
		Height:   height,
		Quantity: 1,
	}
	return o.Optimize([]model.Scrap{sheet}, orders)
}

// workingInventory copies the usable scraps so quantities can be
// decremented without touching the caller's data. Scraps without an ID get
// their 1-based input position, suffixed ("3-2") when another scrap already
// uses that ID.
func workingInventory(scraps []model.Scrap) []model.Scrap {
	taken := make(map[string]bool, len(scraps))
	for _, s := range scraps {
		if s.ID != "" {
			taken[s.ID] = true
		}
	}

	working := make([]model.Scrap, 0, len(scraps))
	for i, s := range scraps {
		if !s.Valid() {
			continue
		}
		if s.ID == "" {
			pos := strconv.Itoa(i + 1)
			s.ID = pos
			for n := 2; taken[s.ID]; n++ {
				s.ID = pos + "-" + strconv.Itoa(n)
			}
			taken[s.ID] = true
		}
		working = append(working, s)
	}
	return working
}

// removePieces returns pending without the pieces whose IDs are in placed,
// keeping the order of the rest.
func removePieces(pending []model.Piece, placed []int) []model.Piece {
	done := make(map[int]bool, len(placed))
	for _, id := range placed {
		done[id] = true
	}
	kept := make([]model.Piece, 0, len(pending))
	for _, p := range pending {
		if !done[p.ID] {
			kept = append(kept, p)
		}
	}
	return kept
}
