package model

import (
	"fmt"
	"strings"
)

// Supported length units. All dimensions in one optimization share the same unit.
const (
	UnitMM = "mm"
	UnitCM = "cm"
	UnitM  = "m"
)

// AppConfig holds application-wide preferences and defaults.
// Lengths are expressed in Unit.
type AppConfig struct {
	Unit string `json:"unit"`

	// Full stock sheet used to estimate purchases for unplaced pieces
	StockWidth           float64 `json:"stock_width"`
	StockHeight          float64 `json:"stock_height"`
	StockPrice           float64 `json:"stock_price"`
	PurchaseWastePercent float64 `json:"purchase_waste_percent"`

	// Remnants below these limits are waste rather than reusable offcuts
	OffcutMinDimension float64 `json:"offcut_min_dimension"`
	OffcutMinArea      float64 `json:"offcut_min_area"`

	EdgeWorkWastePercent float64 `json:"edge_work_waste_percent"`

	// Cutting table output
	TableProfile  string  `json:"table_profile"`
	ScoreFeedRate float64 `json:"score_feed_rate"` // unit/min

	ServerAddr string `json:"server_addr"`
}

// DefaultAppConfig returns the defaults for a shop working in centimeters
// with standard 321 x 225 cm float glass sheets.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Unit:                 UnitCM,
		StockWidth:           321,
		StockHeight:          225,
		StockPrice:           0,
		PurchaseWastePercent: 15,
		OffcutMinDimension:   10,
		OffcutMinArea:        400,
		EdgeWorkWastePercent: 5,
		TableProfile:         "Generic",
		ScoreFeedRate:        6000,
		ServerAddr:           ":8080",
	}
}

// Validate checks the values that would make downstream output meaningless.
func (c AppConfig) Validate() error {
	switch c.Unit {
	case UnitMM, UnitCM, UnitM:
	default:
		return fmt.Errorf("unsupported unit %q (want mm, cm or m)", c.Unit)
	}
	if c.StockWidth < 0 || c.StockHeight < 0 {
		return fmt.Errorf("stock sheet size must not be negative")
	}
	if !knownProfile(c.TableProfile) {
		return fmt.Errorf("unknown table profile %q (want one of %s)", c.TableProfile, strings.Join(GetTableProfileNames(), ", "))
	}
	if c.ScoreFeedRate <= 0 {
		return fmt.Errorf("score feed rate must be positive")
	}
	return nil
}

func knownProfile(name string) bool {
	for _, n := range GetTableProfileNames() {
		if n == name {
			return true
		}
	}
	return false
}
