package model

import "fmt"

// Workspace holds the user's scrap inventory and pending orders.
type Workspace struct {
	Inventory []Scrap `json:"inventory"`
	Orders    []Order `json:"orders"`
}

// NewWorkspace returns an empty workspace.
func NewWorkspace() Workspace {
	return Workspace{
		Inventory: []Scrap{},
		Orders:    []Order{},
	}
}

// AddScrap appends a scrap, generating a sequential name when missing. A
// missing ID, or one already held by another scrap, is replaced by a new one.
func (w *Workspace) AddScrap(s Scrap) Scrap {
	if s.ID == "" || w.FindScrap(s.ID) != nil {
		s.ID = NewID()
	}
	if s.Name == "" {
		s.Name = fmt.Sprintf("Scrap #%d", len(w.Inventory)+1)
	}
	w.Inventory = append(w.Inventory, s)
	return s
}

// RemoveScrap deletes the scrap with the given ID. It reports whether one was removed.
func (w *Workspace) RemoveScrap(id string) bool {
	for i := range w.Inventory {
		if w.Inventory[i].ID == id {
			w.Inventory = append(w.Inventory[:i], w.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// FindScrap returns a pointer to the scrap with the given ID, or nil.
func (w *Workspace) FindScrap(id string) *Scrap {
	for i := range w.Inventory {
		if w.Inventory[i].ID == id {
			return &w.Inventory[i]
		}
	}
	return nil
}

// AddOrder appends an order. A missing or already used ID is replaced.
func (w *Workspace) AddOrder(o Order) Order {
	if o.ID == "" || w.FindOrder(o.ID) != nil {
		o.ID = NewID()
	}
	w.Orders = append(w.Orders, o)
	return o
}

// RemoveOrder deletes the order with the given ID. It reports whether one was removed.
func (w *Workspace) RemoveOrder(id string) bool {
	for i := range w.Orders {
		if w.Orders[i].ID == id {
			w.Orders = append(w.Orders[:i], w.Orders[i+1:]...)
			return true
		}
	}
	return false
}

// FindOrder returns a pointer to the order with the given ID, or nil.
func (w *Workspace) FindOrder(id string) *Order {
	for i := range w.Orders {
		if w.Orders[i].ID == id {
			return &w.Orders[i]
		}
	}
	return nil
}

// AddOffcuts turns offcuts into new inventory scraps and returns them.
func (w *Workspace) AddOffcuts(offcuts []Offcut) []Scrap {
	added := make([]Scrap, 0, len(offcuts))
	for _, o := range offcuts {
		added = append(added, w.AddScrap(o.ToScrap()))
	}
	return added
}

// ConsumeSheets decrements inventory quantities by the sheets an allocation used.
// Each used sheet is taken once, from the first scrap with its ID that still
// has stock. Scraps whose quantity drops to zero are removed.
func (w *Workspace) ConsumeSheets(result AllocationResult) {
	used := result.Consumption()
	kept := w.Inventory[:0]
	for _, s := range w.Inventory {
		take := min(used[s.ID], max(s.Quantity, 0))
		used[s.ID] -= take
		s.Quantity -= take
		if s.Quantity > 0 {
			kept = append(kept, s)
		}
	}
	w.Inventory = kept
}

// TotalSheets returns the number of physical sheets in inventory.
func (w Workspace) TotalSheets() int {
	total := 0
	for _, s := range w.Inventory {
		if s.Quantity > 0 {
			total += s.Quantity
		}
	}
	return total
}

// Clone returns a copy that shares no slices with w.
func (w Workspace) Clone() Workspace {
	cp := Workspace{
		Inventory: make([]Scrap, len(w.Inventory)),
		Orders:    make([]Order, len(w.Orders)),
	}
	copy(cp.Inventory, w.Inventory)
	copy(cp.Orders, w.Orders)
	return cp
}
