package engine

import (
	"sort"

	"github.com/piwi3910/GlassCut/internal/model"
)

// ExpandOrders flattens orders into individual pieces, one per unit of
// quantity. Orders with a non-positive width, height or quantity are
// skipped. Piece IDs are assigned 1, 2, 3... in input order before the
// pieces are sorted by area descending; equal areas keep input order.
func ExpandOrders(orders []model.Order) []model.Piece {
	var pieces []model.Piece
	nextID := 1
	for i, o := range orders {
		if !o.Valid() {
			continue
		}
		for seq := 0; seq < o.Quantity; seq++ {
			pieces = append(pieces, model.Piece{
				ID:         nextID,
				OrderIndex: i,
				Seq:        seq,
				OrderID:    o.ID,
				Label:      o.Label,
				Width:      o.Width,
				Height:     o.Height,
			})
			nextID++
		}
	}

	// Largest first = less fragmentation
	sort.SliceStable(pieces, func(i, j int) bool {
		return pieces[i].Area() > pieces[j].Area()
	})
	return pieces
}

// CountPieces returns how many pieces ExpandOrders would produce.
func CountPieces(orders []model.Order) int {
	n := 0
	for _, o := range orders {
		if o.Valid() {
			n += o.Quantity
		}
	}
	return n
}
