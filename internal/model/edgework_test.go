package model

import (
	"encoding/json"
	"testing"
)

func TestParseEdgeSet(t *testing.T) {
	cases := []struct {
		in   string
		want EdgeSet
	}{
		{"T+B", EdgeTop | EdgeBottom},
		{"top, left", EdgeTop | EdgeLeft},
		{"all", EdgeAll},
		{"Todos", EdgeAll},
		{"arriba|derecha", EdgeTop | EdgeRight},
		{"none", 0},
		{"", 0},
	}
	for _, tc := range cases {
		got, err := ParseEdgeSet(tc.in)
		if err != nil {
			t.Errorf("ParseEdgeSet(%q) returned error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseEdgeSet(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if _, err := ParseEdgeSet("diagonal"); err == nil {
		t.Error("expected error for unknown edge")
	}
}

func TestEdgeSetString(t *testing.T) {
	if s := (EdgeRight | EdgeTop).String(); s != "T+R" {
		t.Errorf("expected T+R, got %q", s)
	}
	if s := EdgeAll.String(); s != "T+B+L+R" {
		t.Errorf("expected T+B+L+R, got %q", s)
	}
	if s := EdgeSet(0).String(); s != "" {
		t.Errorf("expected empty string, got %q", s)
	}
}

func TestEdgeSetJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Polish EdgeSet `json:"polish"`
	}{EdgeLeft | EdgeRight})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"polish":"L+R"}` {
		t.Errorf("unexpected JSON: %s", data)
	}

	var out struct {
		Polish EdgeSet `json:"polish"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if out.Polish != EdgeLeft|EdgeRight {
		t.Errorf("expected L+R, got %v", out.Polish)
	}
}

func TestEdgeSetLinearLength(t *testing.T) {
	if l := EdgeAll.LinearLength(100, 50); l != 300 {
		t.Errorf("expected perimeter 300, got %f", l)
	}
	if l := (EdgeTop | EdgeLeft).LinearLength(100, 50); l != 150 {
		t.Errorf("expected 150, got %f", l)
	}
}

func TestCalculateEdgeWork(t *testing.T) {
	orders := []Order{
		{Width: 100, Height: 50, Quantity: 2, Polish: EdgeAll},
		{Width: 40, Height: 40, Quantity: 3, Polish: EdgeTop},
		{Width: 10, Height: 10, Quantity: 5},
	}

	summary := CalculateEdgeWork(orders, 50)

	// 2*300 + 3*40
	if summary.TotalLength != 720 {
		t.Errorf("expected 720, got %f", summary.TotalLength)
	}
	if summary.TotalWithWasteLength != 1080 {
		t.Errorf("expected 1080 with waste, got %f", summary.TotalWithWasteLength)
	}
	if summary.PieceCount != 5 {
		t.Errorf("expected 5 polished pieces, got %d", summary.PieceCount)
	}
	if summary.EdgeCount != 11 {
		t.Errorf("expected 11 edges, got %d", summary.EdgeCount)
	}
}

func TestCalculatePerOrderEdgeWork(t *testing.T) {
	orders := []Order{
		{Label: "Shelf", Width: 80, Height: 20, Quantity: 4, Polish: EdgeTop | EdgeBottom},
		{Label: "Plain", Width: 80, Height: 20, Quantity: 4},
	}
	rows := CalculatePerOrderEdgeWork(orders)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Edges != "T+B" || rows[0].LengthPerUnit != 160 || rows[0].TotalLength != 640 {
		t.Errorf("unexpected row: %+v", rows[0])
	}
}
