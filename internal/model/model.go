package model

import (
	"github.com/google/uuid"
)

// NewID returns a short random identifier for new records.
func NewID() string {
	return uuid.New().String()[:8]
}

// Order represents a requested glass piece size to be cut Quantity times.
type Order struct {
	ID       string  `json:"id"`
	Label    string  `json:"label,omitempty"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Quantity int     `json:"quantity"`
	Polish   EdgeSet `json:"polish,omitempty"` // Edges to be polished after cutting
}

func NewOrder(label string, w, h float64, qty int) Order {
	return Order{
		ID:       NewID(),
		Label:    label,
		Width:    w,
		Height:   h,
		Quantity: qty,
	}
}

// Valid reports whether the order describes something to cut.
func (o Order) Valid() bool {
	return o.Width > 0 && o.Height > 0 && o.Quantity > 0
}

// Scrap is a type of glass remnant held in inventory. Quantity identical
// physical sheets of this size are available.
type Scrap struct {
	ID       string  `json:"id"`
	Name     string  `json:"name,omitempty"`
	Type     string  `json:"type,omitempty"` // Glass type, e.g. "Clear 6mm"
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Quantity int     `json:"quantity"`
}

func NewScrap(name, glassType string, w, h float64, qty int) Scrap {
	return Scrap{
		ID:       NewID(),
		Name:     name,
		Type:     glassType,
		Width:    w,
		Height:   h,
		Quantity: qty,
	}
}

// DisplayName returns the scrap name, or a generated one when none was given.
func (s Scrap) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return "Scrap #" + s.ID
}

// Area returns the area of one physical sheet of this scrap type.
func (s Scrap) Area() float64 {
	return s.Width * s.Height
}

// Valid reports whether the scrap can take part in an optimization.
func (s Scrap) Valid() bool {
	return s.Width > 0 && s.Height > 0 && s.Quantity > 0
}

// Piece is one physically distinct rectangle to be cut, produced by
// expanding an Order by its quantity. ID is unique within one optimization.
type Piece struct {
	ID         int     `json:"id"`
	OrderIndex int     `json:"order_index"` // Position of the source order in the input
	Seq        int     `json:"seq"`         // 0-based copy number within the order
	OrderID    string  `json:"order_id,omitempty"`
	Label      string  `json:"label,omitempty"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
}

// Area returns the piece area.
func (p Piece) Area() float64 {
	return p.Width * p.Height
}

// Dimensions is a width/height pair in the caller's unit.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns Width * Height.
func (d Dimensions) Area() float64 {
	return d.Width * d.Height
}

// Placement is the position and footprint of one piece on a sheet.
// Width and Height are the placed (possibly rotated) footprint.
type Placement struct {
	PieceID int     `json:"piece_id"`
	Label   string  `json:"label,omitempty"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Rotated bool    `json:"rotated"` // Whether the piece was turned 90°
}

// Area returns the placed footprint area.
func (p Placement) Area() float64 {
	return p.Width * p.Height
}

// CutAxis is the direction of a straight edge-to-edge cut.
type CutAxis string

const (
	CutVertical   CutAxis = "vertical"
	CutHorizontal CutAxis = "horizontal"
)

// Cut is one guillotine cut on a sheet, starting at (X, Y) and running
// Length along its axis (down for vertical cuts, right for horizontal ones).
type Cut struct {
	Seq    int     `json:"seq"`
	Axis   CutAxis `json:"axis"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Length float64 `json:"length"`
}

// End returns the end point of the cut.
func (c Cut) End() (float64, float64) {
	if c.Axis == CutVertical {
		return c.X, c.Y + c.Length
	}
	return c.X + c.Length, c.Y
}

// SheetResult is the outcome of packing one physical sheet.
type SheetResult struct {
	CutID        int         `json:"cut_id"` // 1-based consumption order within an allocation
	ScrapID      string      `json:"scrap_id"`
	ScrapName    string      `json:"scrap_name"`
	ScrapType    string      `json:"scrap_type,omitempty"`
	ScrapDims    Dimensions  `json:"scrap_dims"`
	Layout       []Placement `json:"layout"`
	TotalPieces  int         `json:"total_pieces"` // Pending pieces when this sheet was chosen
	FittedPieces int         `json:"fitted_pieces"`
	WastePercent float64     `json:"waste_percent"`
	CutList      []Cut       `json:"cut_list"`
}

// UsedArea returns the total area covered by placed pieces.
func (sr SheetResult) UsedArea() float64 {
	var total float64
	for _, p := range sr.Layout {
		total += p.Area()
	}
	return total
}

// TotalArea returns the sheet area.
func (sr SheetResult) TotalArea() float64 {
	return sr.ScrapDims.Area()
}

// Efficiency returns the usage percentage.
func (sr SheetResult) Efficiency() float64 {
	ta := sr.TotalArea()
	if ta == 0 {
		return 0
	}
	return (sr.UsedArea() / ta) * 100.0
}

// AllocationResult holds the full multi-sheet solution.
type AllocationResult struct {
	UsedScraps    []SheetResult `json:"used_scraps"`
	PendingOrders []Piece       `json:"pending_orders"`
}

// TotalFitted returns the number of pieces placed across all sheets.
func (ar AllocationResult) TotalFitted() int {
	total := 0
	for _, s := range ar.UsedScraps {
		total += s.FittedPieces
	}
	return total
}

// TotalWastePercent returns the area-weighted waste over all used sheets.
func (ar AllocationResult) TotalWastePercent() float64 {
	var usedArea, totalArea float64
	for _, s := range ar.UsedScraps {
		usedArea += s.UsedArea()
		totalArea += s.TotalArea()
	}
	if totalArea == 0 {
		return 0
	}
	return (totalArea - usedArea) / totalArea * 100.0
}

// Consumption returns how many physical sheets were used per scrap ID.
func (ar AllocationResult) Consumption() map[string]int {
	used := make(map[string]int)
	for _, s := range ar.UsedScraps {
		used[s.ScrapID]++
	}
	return used
}

// HasPending reports whether some pieces could not be placed.
func (ar AllocationResult) HasPending() bool {
	return len(ar.PendingOrders) > 0
}
