package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record is a loosely typed input row, as decoded from JSON or a spreadsheet.
type Record map[string]any

// Field aliases accepted on input records: English first, then Spanish.
var (
	WidthKeys    = []string{"width", "ancho"}
	HeightKeys   = []string{"height", "alto"}
	QuantityKeys = []string{"quantity", "cantidad"}
	NameKeys     = []string{"name", "nombre"}
	TypeKeys     = []string{"type", "tipo"}
	LabelKeys    = []string{"label", "etiqueta"}
	PolishKeys   = []string{"polish", "pulido"}
	IDKeys       = []string{"id"}
)

// maxCount bounds a single quantity so a typo cannot expand into an
// unbounded number of pieces.
const maxCount = 100000

// NumberValue returns the first value among keys that parses to a strictly
// positive finite number. Absent, nil and empty values are skipped. It
// returns 0 when no key qualifies.
func NumberValue(rec Record, keys ...string) float64 {
	for _, key := range keys {
		raw, ok := rec[key]
		if !ok || raw == nil {
			continue
		}
		if s, isStr := raw.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		v, ok := toFloat(raw)
		if ok && v > 0 {
			return v
		}
	}
	return 0
}

// CountValue resolves a quantity. Fractional values round up, since a
// request for 2.5 items still needs three physical pieces.
func CountValue(rec Record, keys ...string) int {
	v := NumberValue(rec, keys...)
	if v <= 0 {
		return 0
	}
	c := math.Ceil(v)
	if c > maxCount {
		return maxCount
	}
	return int(c)
}

// StringValue returns the first non-empty value among keys, formatted as a string.
func StringValue(rec Record, keys ...string) string {
	for _, key := range keys {
		raw, ok := rec[key]
		if !ok || raw == nil {
			continue
		}
		var s string
		switch v := raw.(type) {
		case string:
			s = strings.TrimSpace(v)
		case json.Number:
			s = v.String()
		case float64:
			s = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			s = fmt.Sprint(v)
		}
		if s != "" {
			return s
		}
	}
	return ""
}

func toFloat(raw any) (float64, bool) {
	var v float64
	switch n := raw.(type) {
	case float64:
		v = n
	case float32:
		v = float64(n)
	case int:
		v = float64(n)
	case int8:
		v = float64(n)
	case int16:
		v = float64(n)
	case int32:
		v = float64(n)
	case int64:
		v = float64(n)
	case uint:
		v = float64(n)
	case uint8:
		v = float64(n)
	case uint16:
		v = float64(n)
	case uint32:
		v = float64(n)
	case uint64:
		v = float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		v = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		v = f
	default:
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// OrderFromRecord builds an Order, resolving field aliases. Invalid numeric
// fields resolve to 0; callers filter with Order.Valid.
func OrderFromRecord(rec Record) Order {
	o := Order{
		ID:       StringValue(rec, IDKeys...),
		Label:    StringValue(rec, LabelKeys...),
		Width:    NumberValue(rec, WidthKeys...),
		Height:   NumberValue(rec, HeightKeys...),
		Quantity: CountValue(rec, QuantityKeys...),
	}
	if polish := StringValue(rec, PolishKeys...); polish != "" {
		o.Polish, _ = ParseEdgeSet(polish)
	}
	return o
}

// ScrapFromRecord builds a Scrap, resolving field aliases.
func ScrapFromRecord(rec Record) Scrap {
	return Scrap{
		ID:       StringValue(rec, IDKeys...),
		Name:     StringValue(rec, NameKeys...),
		Type:     StringValue(rec, TypeKeys...),
		Width:    NumberValue(rec, WidthKeys...),
		Height:   NumberValue(rec, HeightKeys...),
		Quantity: CountValue(rec, QuantityKeys...),
	}
}

func decodeRecord(data []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var rec Record
	if err := dec.Decode(&rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// UnmarshalJSON accepts both English and Spanish field names.
func (o *Order) UnmarshalJSON(data []byte) error {
	rec, err := decodeRecord(data)
	if err != nil {
		return fmt.Errorf("failed to decode order: %w", err)
	}
	*o = OrderFromRecord(rec)
	return nil
}

// UnmarshalJSON accepts both English and Spanish field names.
func (s *Scrap) UnmarshalJSON(data []byte) error {
	rec, err := decodeRecord(data)
	if err != nil {
		return fmt.Errorf("failed to decode scrap: %w", err)
	}
	*s = ScrapFromRecord(rec)
	return nil
}
