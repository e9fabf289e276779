package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/rodor-repo/ThreeJS-sub001/internal/model"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Type,Width,Height,Depth\nbase,600,720,560\ntop,900,600,320\n")
	got := DetectCSVDelimiter(data)
	if got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Type;Width;Height;Depth\nbase;600;720;560\ntop;900;600;320\n")
	got := DetectCSVDelimiter(data)
	if got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Type\tWidth\tHeight\tDepth\nbase\t600\t720\t560\ntop\t900\t600\t320\n")
	got := DetectCSVDelimiter(data)
	if got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Type|Width|Height|Depth\nbase|600|720|560\ntop|900|600|320\n")
	got := DetectCSVDelimiter(data)
	if got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Type", "Name", "Width", "Height", "Depth", "X", "Y", "View", "Product", "Drawers"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Type != 0 {
		t.Errorf("expected Type at 0, got %d", mapping.Type)
	}
	if mapping.Name != 1 {
		t.Errorf("expected Name at 1, got %d", mapping.Name)
	}
	if mapping.Width != 2 {
		t.Errorf("expected Width at 2, got %d", mapping.Width)
	}
	if mapping.Height != 3 {
		t.Errorf("expected Height at 3, got %d", mapping.Height)
	}
	if mapping.Depth != 4 {
		t.Errorf("expected Depth at 4, got %d", mapping.Depth)
	}
	if mapping.X != 5 || mapping.Y != 6 {
		t.Errorf("expected X,Y at 5,6, got %d,%d", mapping.X, mapping.Y)
	}
	if mapping.View != 7 {
		t.Errorf("expected View at 7, got %d", mapping.View)
	}
	if mapping.Product != 8 {
		t.Errorf("expected Product at 8, got %d", mapping.Product)
	}
	if mapping.Drawers != 9 {
		t.Errorf("expected Drawers at 9, got %d", mapping.Drawers)
	}
}

func TestDetectColumns_CaseInsensitive(t *testing.T) {
	row := []string{"TYPE", "LABEL", "WIDTH", "HEIGHT", "DEPTH"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Type != 0 {
		t.Errorf("expected Type at 0, got %d", mapping.Type)
	}
	if mapping.Name != 1 {
		t.Errorf("expected Name at 1, got %d", mapping.Name)
	}
}

func TestDetectColumns_AlternativeNames(t *testing.T) {
	row := []string{"Kind", "Description", "W", "H", "D", "Pos X", "Pos Y", "Wall", "SKU", "Drawer Qty"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Type != 0 {
		t.Errorf("expected Type at 0, got %d", mapping.Type)
	}
	if mapping.Width != 2 || mapping.Height != 3 || mapping.Depth != 4 {
		t.Errorf("expected W,H,D at 2,3,4, got %d,%d,%d", mapping.Width, mapping.Height, mapping.Depth)
	}
	if mapping.X != 5 || mapping.Y != 6 {
		t.Errorf("expected Pos X,Pos Y at 5,6, got %d,%d", mapping.X, mapping.Y)
	}
	if mapping.View != 7 {
		t.Errorf("expected View at 7, got %d", mapping.View)
	}
	if mapping.Product != 8 {
		t.Errorf("expected Product at 8, got %d", mapping.Product)
	}
	if mapping.Drawers != 9 {
		t.Errorf("expected Drawers at 9, got %d", mapping.Drawers)
	}
}

func TestDetectColumns_ReorderedColumns(t *testing.T) {
	row := []string{"Depth", "Height", "Width", "Type"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Depth != 0 {
		t.Errorf("expected Depth at 0, got %d", mapping.Depth)
	}
	if mapping.Height != 1 {
		t.Errorf("expected Height at 1, got %d", mapping.Height)
	}
	if mapping.Width != 2 {
		t.Errorf("expected Width at 2, got %d", mapping.Width)
	}
	if mapping.Type != 3 {
		t.Errorf("expected Type at 3, got %d", mapping.Type)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	row := []string{"base", "Sink Base", "600", "720", "560"}
	mapping, isHeader := DetectColumns(row)

	if isHeader {
		t.Error("expected no header to be detected")
	}
	// Positional fallback
	if mapping.Type != 0 || mapping.Name != 1 || mapping.Width != 2 {
		t.Errorf("unexpected positional mapping: %+v", mapping)
	}
}

// ─── CSV Reader Tests ──────────────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	csv := `Type,Name,Width,Height,Depth,X,Y,View,Drawers
base,Sink Base,600,720,560,0,150,Front,
base,Drawer Base,450,720,560,600,150,front,3
top,Top 1,900,600,320,0,1400,front,`

	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Cabinets) != 3 {
		t.Fatalf("expected 3 cabinets, got %d", len(result.Cabinets))
	}

	sink := result.Cabinets[0]
	if sink.Type != model.TypeBase {
		t.Errorf("expected base type, got %v", sink.Type)
	}
	if sink.Name != "Sink Base" {
		t.Errorf("expected 'Sink Base', got %q", sink.Name)
	}
	if sink.Dimensions.Width != 600 || sink.Dimensions.Height != 720 || sink.Dimensions.Depth != 560 {
		t.Errorf("wrong dimensions: %+v", sink.Dimensions)
	}
	if sink.Position.X != 0 || sink.Position.Y != 150 {
		t.Errorf("wrong position: %+v", sink.Position)
	}
	if sink.ViewID != "front" {
		t.Errorf("view ids are lowercased, got %q", sink.ViewID)
	}
	if sink.Drawers.Enabled {
		t.Error("sink base should have no drawers")
	}

	drawers := result.Cabinets[1]
	if !drawers.Drawers.Enabled || drawers.Drawers.Quantity != 3 {
		t.Fatalf("expected 3 drawers, got %+v", drawers.Drawers)
	}
	for i, h := range drawers.Drawers.Heights {
		if h != 240 {
			t.Errorf("drawer %d height = %.0f, want equal split 240", i, h)
		}
	}

	if result.Cabinets[2].Type != model.TypeTop {
		t.Errorf("expected top type, got %v", result.Cabinets[2].Type)
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	csv := `base,Sink Base,600,720,560
tall,Pantry,600,2100,560`

	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Cabinets) != 2 {
		t.Fatalf("expected 2 cabinets, got %d (errors: %v)", len(result.Cabinets), result.Errors)
	}
	if result.Cabinets[0].ViewID != model.ViewNone {
		t.Errorf("cabinets without a view column stay unplaced, got %q", result.Cabinets[0].ViewID)
	}
	if result.Cabinets[1].Type != model.TypeTall {
		t.Errorf("expected tall type, got %v", result.Cabinets[1].Type)
	}
}

func TestImportCSVFromReader_SemicolonDelimiter(t *testing.T) {
	csv := "Type;Width;Height;Depth\nbase;600;720;560"

	result := ImportCSVFromReader(strings.NewReader(csv), ';')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Cabinets) != 1 {
		t.Fatalf("expected 1 cabinet, got %d", len(result.Cabinets))
	}
}

func TestImportCSVFromReader_DefaultName(t *testing.T) {
	csv := "Type,Width,Height,Depth\nbase,600,720,560\nbase,450,720,560"

	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Cabinets) != 2 {
		t.Fatalf("expected 2 cabinets, got %d", len(result.Cabinets))
	}
	if result.Cabinets[0].Name != "Cabinet 1" {
		t.Errorf("expected generated name 'Cabinet 1', got %q", result.Cabinets[0].Name)
	}
	if result.Cabinets[1].Name != "Cabinet 2" {
		t.Errorf("expected generated name 'Cabinet 2', got %q", result.Cabinets[1].Name)
	}
}

func TestImportCSVFromReader_TypeAliases(t *testing.T) {
	csv := `Type,Width,Height,Depth
upper,900,600,320
pantry,600,2100,560
toe kick,600,150,50`

	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	want := []model.CabinetType{model.TypeTop, model.TypeTall, model.TypeKicker}
	for i, c := range result.Cabinets {
		if c.Type != want[i] {
			t.Errorf("cabinet %d type = %v, want %v", i, c.Type, want[i])
		}
	}
}

func TestImportCSVFromReader_UnknownType(t *testing.T) {
	csv := "Type,Width,Height,Depth\nhovercraft,600,720,560"

	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Cabinets) != 0 {
		t.Errorf("expected no cabinets, got %d", len(result.Cabinets))
	}
	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], "Unknown cabinet type") {
		t.Errorf("expected unknown type error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_InvalidWidth(t *testing.T) {
	csv := "Type,Width,Height,Depth\nbase,abc,720,560"

	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Cabinets) != 0 {
		t.Errorf("expected no cabinets, got %d", len(result.Cabinets))
	}
	if len(result.Errors) == 0 {
		t.Error("expected error for invalid width")
	}
}

func TestImportCSVFromReader_NegativeValues(t *testing.T) {
	csv := "Type,Width,Height,Depth\nbase,-600,720,560"

	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Cabinets) != 0 {
		t.Errorf("expected no cabinets, got %d", len(result.Cabinets))
	}
	if len(result.Errors) == 0 {
		t.Error("expected error for negative width")
	}
}

func TestImportCSVFromReader_NegativePositionClamped(t *testing.T) {
	csv := "Type,Width,Height,Depth,X,Y\nbase,600,720,560,-50,150"

	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Cabinets) != 1 {
		t.Fatalf("expected 1 cabinet, got %d", len(result.Cabinets))
	}
	if result.Cabinets[0].Position.X != 0 {
		t.Errorf("expected X clamped to 0, got %.0f", result.Cabinets[0].Position.X)
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "clamped") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a clamping warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_InvalidDrawerCount(t *testing.T) {
	csv := "Type,Width,Height,Depth,Drawers\nbase,600,720,560,lots"

	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Cabinets) != 0 {
		t.Errorf("expected no cabinets, got %d", len(result.Cabinets))
	}
	if len(result.Errors) == 0 {
		t.Error("expected error for invalid drawer count")
	}
}

func TestImportCSVFromReader_MixedValidAndInvalid(t *testing.T) {
	csv := `Type,Width,Height,Depth
base,600,720,560
base,oops,720,560
tall,600,2100,560`

	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Cabinets) != 2 {
		t.Errorf("expected 2 valid cabinets, got %d", len(result.Cabinets))
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_EmptyRows(t *testing.T) {
	csv := "Type,Width,Height,Depth\nbase,600,720,560\n,,,\n\ntall,600,2100,560"

	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Cabinets) != 2 {
		t.Errorf("expected 2 cabinets with empty rows skipped, got %d", len(result.Cabinets))
	}
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

func TestImportCSVFromReader_MissingRequiredColumnInHeader(t *testing.T) {
	csv := "Type,Width,Height\nbase,600,720"

	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Cabinets) != 0 {
		t.Errorf("expected no cabinets, got %d", len(result.Cabinets))
	}
	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], "Depth") {
		t.Errorf("expected missing Depth column error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_OnlyHeaders(t *testing.T) {
	csv := "Type,Width,Height,Depth"

	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Cabinets) != 0 {
		t.Errorf("expected no cabinets, got %d", len(result.Cabinets))
	}
}

func TestImportCSVFromReader_WhitespaceInValues(t *testing.T) {
	csv := "Type,Width,Height,Depth\n  base  ,  600  ,  720  ,  560  "

	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Cabinets) != 1 {
		t.Fatalf("expected 1 cabinet, got %d", len(result.Cabinets))
	}
	if result.Cabinets[0].Dimensions.Width != 600 {
		t.Errorf("expected width 600, got %f", result.Cabinets[0].Dimensions.Width)
	}
}

func TestImportCSVFromReader_DecimalValues(t *testing.T) {
	csv := "Type,Width,Height,Depth\nbenchtop,600.5,33.3,600"

	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Cabinets[0].Dimensions.Width != 600.5 {
		t.Errorf("expected width 600.5, got %f", result.Cabinets[0].Dimensions.Width)
	}
	if result.Cabinets[0].Dimensions.Height != 33.3 {
		t.Errorf("expected height 33.3, got %f", result.Cabinets[0].Dimensions.Height)
	}
}

// ─── CSV File Tests ────────────────────────────────────────

func TestImportCSV_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schedule.csv")
	csv := "Type,Name,Width,Height,Depth,View\nbase,Sink Base,600,720,560,front\n"
	if err := os.WriteFile(path, []byte(csv), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Cabinets) != 1 {
		t.Fatalf("expected 1 cabinet, got %d", len(result.Cabinets))
	}
	if result.Cabinets[0].Name != "Sink Base" {
		t.Errorf("expected 'Sink Base', got %q", result.Cabinets[0].Name)
	}
}

func TestImportCSV_SemicolonFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schedule_semi.csv")
	csv := "Type;Name;Width;Height;Depth\nbase;Sink Base;600;720;560\ntall;Pantry;600;2100;560\n"
	if err := os.WriteFile(path, []byte(csv), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)

	if len(result.Cabinets) != 2 {
		t.Fatalf("expected 2 cabinets, got %d (errors: %v)", len(result.Cabinets), result.Errors)
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a delimiter warning, got %v", result.Warnings)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV("/nonexistent/file.csv")

	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)

	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "schedule.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Type", "Name", "Width", "Height", "Depth", "View", "Drawers"},
		{"base", "Drawer Base", 450, 720, 560, "front", 3},
		{"top", "Top 1", 900, 600, 320, "front", ""},
	})

	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Cabinets) != 2 {
		t.Fatalf("expected 2 cabinets, got %d", len(result.Cabinets))
	}

	if result.Cabinets[0].Name != "Drawer Base" {
		t.Errorf("expected 'Drawer Base', got %q", result.Cabinets[0].Name)
	}
	if result.Cabinets[0].Drawers.Quantity != 3 {
		t.Errorf("expected 3 drawers, got %d", result.Cabinets[0].Drawers.Quantity)
	}
	if result.Cabinets[1].Type != model.TypeTop {
		t.Errorf("expected top type, got %v", result.Cabinets[1].Type)
	}
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"base", "Sink Base", 600, 720, 560},
		{"tall", "Pantry", 600, 2100, 560},
	})

	result := ImportExcel(path)

	if len(result.Cabinets) != 2 {
		t.Fatalf("expected 2 cabinets, got %d (errors: %v)", len(result.Cabinets), result.Errors)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel("/nonexistent/file.xlsx")

	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportExcel_InvalidData(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Type", "Width", "Height", "Depth"},
		{"base", "abc", 720, 560},
	})

	result := ImportExcel(path)

	if len(result.Errors) == 0 {
		t.Error("expected error for invalid width")
	}
}

// ─── parseCabinetType Tests ────────────────────────────────

func TestParseCabinetType(t *testing.T) {
	tests := []struct {
		input    string
		expected model.CabinetType
		ok       bool
	}{
		{"base", model.TypeBase, true},
		{"Base", model.TypeBase, true},
		{"TALL", model.TypeTall, true},
		{"underPanel", model.TypeUnderPanel, true},
		{"underpanel", model.TypeUnderPanel, true},
		{"upper", model.TypeTop, true},
		{"wall", model.TypeTop, true},
		{"pantry", model.TypeTall, true},
		{"toe kick", model.TypeKicker, true},
		{"toekick", model.TypeKicker, true},
		{"bench", model.TypeBenchtop, true},
		{"  appliance  ", model.TypeAppliance, true},
		{"hovercraft", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := parseCabinetType(tt.input)
		if ok != tt.ok {
			t.Errorf("parseCabinetType(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && got != tt.expected {
			t.Errorf("parseCabinetType(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}
