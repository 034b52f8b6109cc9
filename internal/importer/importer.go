// Package importer provides CSV, Excel and JSON import of glass orders and
// scrap inventories. It supports automatic delimiter detection, flexible
// column mapping, and case-insensitive English and Spanish headers.
package importer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/GlassCut/internal/model"
	"github.com/xuri/excelize/v2"
)

// Kind selects what a file describes.
type Kind int

const (
	KindOrders Kind = iota
	KindScraps
)

func (k Kind) String() string {
	if k == KindScraps {
		return "scraps"
	}
	return "orders"
}

// ImportResult holds the results of an import operation. Only the slice
// matching the requested Kind is filled.
type ImportResult struct {
	Orders   []model.Order
	Scraps   []model.Scrap
	Errors   []string
	Warnings []string
}

// Count returns the number of imported entries.
func (r ImportResult) Count() int {
	return len(r.Orders) + len(r.Scraps)
}

// Column roles
const (
	colID       = "id"
	colLabel    = "label"
	colName     = "name"
	colType     = "type"
	colWidth    = "width"
	colHeight   = "height"
	colQuantity = "quantity"
	colPolish   = "polish"
)

// ColumnMapping maps column roles to their indices in the data.
type ColumnMapping map[string]int

// Index returns the column of role, or -1 when it is not mapped.
func (m ColumnMapping) Index(role string) int {
	if idx, ok := m[role]; ok {
		return idx
	}
	return -1
}

// headerAliases maps column roles to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	colID:       {"id", "code", "codigo", "código"},
	colLabel:    {"label", "etiqueta", "description", "descripcion", "descripción", "piece", "pieza", "item"},
	colName:     {"name", "nombre"},
	colType:     {"type", "tipo", "glass", "vidrio", "material"},
	colWidth:    {"width", "w", "ancho", "x"},
	colHeight:   {"height", "h", "alto", "y"},
	colQuantity: {"quantity", "qty", "count", "pcs", "pieces", "cantidad", "cant"},
	colPolish:   {"polish", "pulido", "edges", "cantos"},
}

// Column order assumed when a file has no header row.
var positionalColumns = map[Kind][]string{
	KindOrders: {colLabel, colWidth, colHeight, colQuantity, colPolish},
	KindScraps: {colName, colType, colWidth, colHeight, colQuantity},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each role.
// Returns the mapping and true if a header was detected, or the positional
// mapping for kind and false if no header was found.
func DetectColumns(row []string, kind Kind) (ColumnMapping, bool) {
	mapping := ColumnMapping{}
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias && mapping.Index(role) == -1 {
					mapping[role] = i
				}
			}
		}
	}

	if len(mapping) > 0 {
		return mapping, true
	}

	positional := ColumnMapping{}
	for i, role := range positionalColumns[kind] {
		positional[role] = i
	}
	return positional, false
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// decimalComma turns "12,5" into "12.5" for spreadsheets saved with a
// European locale. Values with both separators are left alone.
func decimalComma(s string) string {
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		return strings.Replace(s, ",", ".", 1)
	}
	return s
}

// parseRow turns a row into an input record and reports row level problems.
// Returns the record, any error message, and any warnings.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.Record, string, []string) {
	rec := model.Record{}
	for role := range headerAliases {
		if v := getCell(row, mapping.Index(role)); v != "" {
			rec[role] = v
		}
	}

	for _, role := range []string{colWidth, colHeight} {
		raw, ok := rec[role].(string)
		if !ok {
			return nil, fmt.Sprintf("%s: Missing %s value", rowLabel, role), nil
		}
		raw = decimalComma(raw)
		rec[role] = raw
		if model.NumberValue(rec, role) <= 0 {
			return nil, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, role, raw), nil
		}
	}

	var warnings []string
	raw, ok := rec[colQuantity].(string)
	if !ok {
		rec[colQuantity] = "1"
		warnings = append(warnings, fmt.Sprintf("%s: Missing quantity, assuming 1", rowLabel))
	} else {
		raw = decimalComma(raw)
		rec[colQuantity] = raw
		qty := model.NumberValue(rec, colQuantity)
		if qty <= 0 {
			return nil, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, raw), nil
		}
		if qty != float64(int64(qty)) {
			warnings = append(warnings, fmt.Sprintf("%s: Quantity %s rounded up to %d", rowLabel, raw, model.CountValue(rec, colQuantity)))
		}
	}

	if polish, ok := rec[colPolish].(string); ok {
		if _, err := model.ParseEdgeSet(polish); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown polish edges '%s', ignoring", rowLabel, polish))
			delete(rec, colPolish)
		}
	}

	return rec, "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportFile imports a .csv, .txt, .xlsx, .xlsm or .json file, picking the
// format from the extension.
func ImportFile(path string, kind Kind) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return ImportExcel(path, kind)
	case ".json":
		return ImportJSON(path, kind)
	case ".dxf":
		if kind == KindScraps {
			return ImportScrapsDXF(path)
		}
		return ImportResult{Errors: []string{"DXF files can only describe scraps"}}
	default:
		return ImportCSV(path, kind)
	}
}

// ImportCSV imports orders or scraps from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string, kind Kind) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	var warnings []string
	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	result = ImportCSVFromReader(bytes.NewReader(data), delimiter, kind)
	result.Warnings = append(warnings, result.Warnings...)
	return result
}

// ImportCSVFromReader imports from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, kind Kind) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", kind)
}

// ImportExcel imports from the first sheet of an Excel workbook.
func ImportExcel(path string, kind Kind) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", kind)
}

// ImportJSON imports a JSON array of records. Field names follow the same
// English and Spanish aliases as the API.
func ImportJSON(path string, kind Kind) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var records []model.Record
	if err := dec.Decode(&records); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read JSON: %v", err))
		return result
	}

	for i, rec := range records {
		if !appendRecord(&result, rec, kind) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Entry %d: Width, height, and quantity must be positive, skipping", i+1))
		}
	}
	return result
}

// appendRecord converts rec and appends it when valid.
func appendRecord(result *ImportResult, rec model.Record, kind Kind) bool {
	if kind == KindScraps {
		s := model.ScrapFromRecord(rec)
		if !s.Valid() {
			return false
		}
		if s.ID == "" {
			s.ID = model.NewID()
		}
		result.Scraps = append(result.Scraps, s)
		return true
	}

	o := model.OrderFromRecord(rec)
	if !o.Valid() {
		return false
	}
	if o.ID == "" {
		o.ID = model.NewID()
	}
	if o.Label == "" {
		o.Label = fmt.Sprintf("Piece %d", len(result.Orders)+1)
	}
	result.Orders = append(result.Orders, o)
	return true
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row.
func importFromRows(rows [][]string, rowPrefix string, kind Kind) ImportResult {
	result := ImportResult{}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0], kind)
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Index(colWidth) == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Index(colHeight) == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else {
		// A non-numeric width in the first row is an unrecognized header
		widthCell := decimalComma(getCell(rows[0], mapping.Index(colWidth)))
		if _, err := strconv.ParseFloat(widthCell, 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		rec, errMsg, warnings := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		appendRecord(&result, rec, kind)
	}

	return result
}
