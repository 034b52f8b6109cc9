package model

import (
	"fmt"
	"math"
	"strings"
)

// EdgeSet is a bitmask of piece edges that need polishing after cutting.
type EdgeSet uint8

const (
	EdgeTop EdgeSet = 1 << iota
	EdgeBottom
	EdgeLeft
	EdgeRight

	EdgeAll = EdgeTop | EdgeBottom | EdgeLeft | EdgeRight
)

var edgeTokens = map[string]EdgeSet{
	"t": EdgeTop, "top": EdgeTop, "arriba": EdgeTop,
	"b": EdgeBottom, "bottom": EdgeBottom, "abajo": EdgeBottom,
	"l": EdgeLeft, "left": EdgeLeft, "izquierda": EdgeLeft,
	"r": EdgeRight, "right": EdgeRight, "derecha": EdgeRight,
	"all": EdgeAll, "todos": EdgeAll,
	"none": 0, "-": 0,
}

// ParseEdgeSet parses strings such as "T+B", "top,left" or "all".
func ParseEdgeSet(s string) (EdgeSet, error) {
	var set EdgeSet
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '+' || r == ',' || r == ' ' || r == '|'
	})
	for _, f := range fields {
		edge, ok := edgeTokens[f]
		if !ok {
			return set, fmt.Errorf("unknown edge %q", f)
		}
		set |= edge
	}
	return set, nil
}

// String renders the set as "T+B+L+R" (subset in that order), or "" when empty.
func (e EdgeSet) String() string {
	var parts []string
	for _, edge := range []struct {
		bit  EdgeSet
		name string
	}{{EdgeTop, "T"}, {EdgeBottom, "B"}, {EdgeLeft, "L"}, {EdgeRight, "R"}} {
		if e&edge.bit != 0 {
			parts = append(parts, edge.name)
		}
	}
	return strings.Join(parts, "+")
}

func (e EdgeSet) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *EdgeSet) UnmarshalText(text []byte) error {
	set, err := ParseEdgeSet(string(text))
	if err != nil {
		return err
	}
	*e = set
	return nil
}

// HasAny reports whether at least one edge is selected.
func (e EdgeSet) HasAny() bool {
	return e&EdgeAll != 0
}

// EdgeCount returns the number of selected edges.
func (e EdgeSet) EdgeCount() int {
	n := 0
	for _, bit := range []EdgeSet{EdgeTop, EdgeBottom, EdgeLeft, EdgeRight} {
		if e&bit != 0 {
			n++
		}
	}
	return n
}

// LinearLength returns the polished length for one piece of size w x h.
// Top and bottom edges run along the width, left and right along the height.
func (e EdgeSet) LinearLength(w, h float64) float64 {
	var total float64
	if e&EdgeTop != 0 {
		total += w
	}
	if e&EdgeBottom != 0 {
		total += w
	}
	if e&EdgeLeft != 0 {
		total += h
	}
	if e&EdgeRight != 0 {
		total += h
	}
	return total
}

// EdgeWorkSummary holds the polishing requirements for a set of orders.
// Lengths are in the caller's unit.
type EdgeWorkSummary struct {
	TotalLength          float64 `json:"total_length"`
	WastePercent         float64 `json:"waste_percent"`
	TotalWithWasteLength float64 `json:"total_with_waste_length"`
	PieceCount           int     `json:"piece_count"` // Pieces needing any polishing
	EdgeCount            int     `json:"edge_count"`
}

// CalculateEdgeWork computes the total polished edge length for a list of orders.
// wastePercent is the extra allowance to add (e.g., 10 for 10%).
func CalculateEdgeWork(orders []Order, wastePercent float64) EdgeWorkSummary {
	var total float64
	var pieceCount, edgeCount int

	for _, o := range orders {
		if !o.Valid() || !o.Polish.HasAny() {
			continue
		}
		total += o.Polish.LinearLength(o.Width, o.Height) * float64(o.Quantity)
		pieceCount += o.Quantity
		edgeCount += o.Polish.EdgeCount() * o.Quantity
	}

	withWaste := total * (1.0 + wastePercent/100.0)

	return EdgeWorkSummary{
		TotalLength:          total,
		WastePercent:         wastePercent,
		TotalWithWasteLength: math.Ceil(withWaste),
		PieceCount:           pieceCount,
		EdgeCount:            edgeCount,
	}
}

// OrderEdgeWork is the polishing breakdown of one order.
type OrderEdgeWork struct {
	Label         string  `json:"label"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Quantity      int     `json:"quantity"`
	Edges         string  `json:"edges"`
	LengthPerUnit float64 `json:"length_per_unit"`
	TotalLength   float64 `json:"total_length"`
}

// CalculatePerOrderEdgeWork returns the polishing breakdown per order.
func CalculatePerOrderEdgeWork(orders []Order) []OrderEdgeWork {
	var results []OrderEdgeWork
	for _, o := range orders {
		if !o.Valid() || !o.Polish.HasAny() {
			continue
		}
		perUnit := o.Polish.LinearLength(o.Width, o.Height)
		results = append(results, OrderEdgeWork{
			Label:         o.Label,
			Width:         o.Width,
			Height:        o.Height,
			Quantity:      o.Quantity,
			Edges:         o.Polish.String(),
			LengthPerUnit: perUnit,
			TotalLength:   perUnit * float64(o.Quantity),
		})
	}
	return results
}
