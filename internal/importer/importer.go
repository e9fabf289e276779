// Package importer reads cabinet schedules from CSV, Excel, and DXF
// files. It supports automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rodor-repo/ThreeJS-sub001/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Cabinets []*model.Cabinet
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Type    int
	Name    int
	Width   int
	Height  int
	Depth   int
	X       int
	Y       int
	View    int
	Product int
	Drawers int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"type":    {"type", "cabinet type", "kind", "unit", "category"},
	"name":    {"name", "label", "cabinet", "description", "desc"},
	"width":   {"width", "w", "wide"},
	"height":  {"height", "h", "high"},
	"depth":   {"depth", "d", "deep"},
	"x":       {"x", "pos x", "position x", "left"},
	"y":       {"y", "pos y", "position y", "bottom"},
	"view":    {"view", "wall", "elevation", "view id"},
	"product": {"product", "product id", "catalog id", "sku"},
	"drawers": {"drawers", "drawer qty", "drawer count"},
}

// typeAliases maps trade names to cabinet types, on top of the type
// strings themselves.
var typeAliases = map[string]model.CabinetType{
	"upper":       model.TypeTop,
	"wall":        model.TypeTop,
	"pantry":      model.TypeTall,
	"toe kick":    model.TypeKicker,
	"toekick":     model.TypeKicker,
	"under panel": model.TypeUnderPanel,
	"bench":       model.TypeBenchtop,
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
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Score: count how many rows have the same column count as the first row
		// Only consider delimiters that produce more than 1 column
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

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Type:    -1,
		Name:    -1,
		Width:   -1,
		Height:  -1,
		Depth:   -1,
		X:       -1,
		Y:       -1,
		View:    -1,
		Product: -1,
		Drawers: -1,
	}

	assign := map[string]*int{
		"type":    &mapping.Type,
		"name":    &mapping.Name,
		"width":   &mapping.Width,
		"height":  &mapping.Height,
		"depth":   &mapping.Depth,
		"x":       &mapping.X,
		"y":       &mapping.Y,
		"view":    &mapping.View,
		"product": &mapping.Product,
		"drawers": &mapping.Drawers,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					if target := assign[role]; *target == -1 {
						*target = i
					}
				}
			}
		}
	}

	if !isHeader {
		// Fall back to positional mapping:
		// Type, Name, Width, Height, Depth, X, Y, View, Product, Drawers
		return ColumnMapping{
			Type:    0,
			Name:    1,
			Width:   2,
			Height:  3,
			Depth:   4,
			X:       5,
			Y:       6,
			View:    7,
			Product: 8,
			Drawers: 9,
		}, false
	}

	return mapping, true
}

// parseCabinetType converts a type string to a model.CabinetType.
// It returns the type and a boolean indicating whether the string was recognized.
func parseCabinetType(s string) (model.CabinetType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, t := range model.AllCabinetTypes() {
		if normalized == strings.ToLower(string(t)) {
			return t, true
		}
	}
	if t, ok := typeAliases[normalized]; ok {
		return t, true
	}
	return "", false
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseDimension reads a required positive float column.
func parseDimension(row []string, idx int, field, rowLabel string) (float64, string) {
	str := getCell(row, idx)
	if str == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, field)
	}
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, field, str)
	}
	if v <= 0 {
		return 0, fmt.Sprintf("%s: %s must be positive", rowLabel, field)
	}
	return v, ""
}

// parseRow extracts a Cabinet from a row using the given column mapping.
// Returns the cabinet, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, cabinetCount int) (*model.Cabinet, string, string) {
	typeStr := getCell(row, mapping.Type)
	if typeStr == "" {
		return nil, fmt.Sprintf("%s: Missing cabinet type", rowLabel), ""
	}
	cabType, ok := parseCabinetType(typeStr)
	if !ok {
		return nil, fmt.Sprintf("%s: Unknown cabinet type '%s'", rowLabel, typeStr), ""
	}

	width, errMsg := parseDimension(row, mapping.Width, "width", rowLabel)
	if errMsg != "" {
		return nil, errMsg, ""
	}
	height, errMsg := parseDimension(row, mapping.Height, "height", rowLabel)
	if errMsg != "" {
		return nil, errMsg, ""
	}
	depth, errMsg := parseDimension(row, mapping.Depth, "depth", rowLabel)
	if errMsg != "" {
		return nil, errMsg, ""
	}

	c := model.NewCabinet(cabType, width, height, depth)

	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Cabinet %d", cabinetCount+1)
	}
	c.Name = name

	var warning string
	for _, pos := range []struct {
		idx   int
		field string
		dst   *float64
	}{
		{mapping.X, "X", &c.Position.X},
		{mapping.Y, "Y", &c.Position.Y},
	} {
		str := getCell(row, pos.idx)
		if str == "" {
			continue
		}
		v, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return nil, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, pos.field, str), ""
		}
		if v < 0 {
			warning = fmt.Sprintf("%s: Negative %s clamped to 0", rowLabel, pos.field)
			v = 0
		}
		*pos.dst = v
	}

	if view := getCell(row, mapping.View); view != "" {
		c.ViewID = strings.ToLower(view)
	}
	c.ProductID = getCell(row, mapping.Product)

	if drawerStr := getCell(row, mapping.Drawers); drawerStr != "" {
		qty, err := strconv.Atoi(drawerStr)
		if err != nil || qty < 0 {
			return nil, fmt.Sprintf("%s: Invalid drawer count '%s'", rowLabel, drawerStr), ""
		}
		if qty > 0 {
			heights := make([]float64, qty)
			for i := range heights {
				heights[i] = height / float64(qty)
			}
			c.Drawers = model.DrawerSet{Enabled: true, Quantity: qty, Heights: heights}
		}
	}

	return c, "", warning
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

// ImportCSV imports cabinets from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
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

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	result = importFromRows(records, "Line", result.Warnings)
	return result
}

// ImportCSVFromReader imports cabinets from a CSV reader with a specific delimiter.
// This is useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
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

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports cabinets from an Excel (.xlsx, .xls) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
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

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into cabinets.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	// Detect columns from first row
	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		// Validate that required columns were found
		missing := []string{}
		if mapping.Type == -1 {
			missing = append(missing, "Type")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if mapping.Depth == -1 {
			missing = append(missing, "Depth")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else {
		// No header: check if the width column is numeric (positional mapping)
		if len(rows[0]) >= 5 {
			if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][2]), 64); err != nil {
				// Width column is not numeric - might be an unrecognized header
				// Skip it as a header but use positional mapping
				startRow = 1
				result.Warnings = append(result.Warnings, "Detected header row, skipping")
			}
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		cabinet, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Cabinets))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Cabinets = append(result.Cabinets, cabinet)
	}

	return result
}
