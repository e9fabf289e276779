package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/rodor-repo/ThreeJS-sub001/internal/model"
)

const (
	cutListSheet  = "Cut List"
	materialSheet = "Material"
	bandingSheet  = "Edge Banding"
)

// sheetWriter wraps cell writes with a sticky error so row loops stay
// readable.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) set(col, row int, value interface{}) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellValue(w.sheet, cell, value)
}

func (w *sheetWriter) setRow(row int, values ...interface{}) {
	for i, v := range values {
		w.set(i+1, row, v)
	}
}

// ExportCutList writes the design's cut list as an Excel workbook with
// three sheets: the panel list, the sheet material estimate, and the
// edge banding totals.
func ExportCutList(path string, scene *model.Scene, cfg model.AppConfig) error {
	if scene == nil {
		return fmt.Errorf("no scene to export")
	}
	panels := scene.CutList()
	if len(panels) == 0 {
		return fmt.Errorf("no panels to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", cutListSheet); err != nil {
		return fmt.Errorf("failed to prepare workbook: %w", err)
	}
	for _, name := range []string{materialSheet, bandingSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E0EBF5"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writePanelSheet(f, panels, headerStyle); err != nil {
		return err
	}

	estimate := model.EstimateMaterial(panels, cfg.SheetWidth, cfg.SheetHeight, cfg.WastePercent, cfg.PricePerSheet)
	if err := writeMaterialSheet(f, estimate); err != nil {
		return err
	}

	banding := model.CalculateEdgeBanding(panels, cfg.WastePercent)
	if err := writeBandingSheet(f, banding); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// writePanelSheet fills the cut list sheet, one row per panel line.
func writePanelSheet(f *excelize.File, panels []model.Panel, headerStyle int) error {
	w := &sheetWriter{f: f, sheet: cutListSheet}
	w.setRow(1, "Cabinet", "Panel", "Width (mm)", "Height (mm)", "Qty", "Edge Banding")

	row := 2
	for _, p := range panels {
		w.setRow(row, p.CabinetName, string(p.Kind), p.Width, p.Height, p.Quantity, p.Banding.String())
		row++
	}
	if w.err != nil {
		return fmt.Errorf("failed to write cut list: %w", w.err)
	}

	if err := f.SetCellStyle(cutListSheet, "A1", "F1", headerStyle); err != nil {
		return fmt.Errorf("failed to style cut list header: %w", err)
	}
	if err := f.SetColWidth(cutListSheet, "A", "B", 24); err != nil {
		return fmt.Errorf("failed to size cut list columns: %w", err)
	}
	if err := f.SetColWidth(cutListSheet, "C", "F", 14); err != nil {
		return fmt.Errorf("failed to size cut list columns: %w", err)
	}
	return nil
}

// writeMaterialSheet fills the sheet purchasing estimate.
func writeMaterialSheet(f *excelize.File, est model.MaterialEstimate) error {
	w := &sheetWriter{f: f, sheet: materialSheet}
	w.setRow(1, "Total panel area (m2)", est.TotalPanelArea/1e6)
	w.setRow(2, "Sheet area (m2)", est.SheetArea/1e6)
	w.setRow(3, "Sheets needed (exact)", est.SheetsNeededExact)
	w.setRow(4, "Sheets needed (minimum)", est.SheetsNeededMin)
	w.setRow(5, "Sheets incl. waste", est.SheetsWithWaste)
	w.setRow(6, "Waste percent", est.WastePercent)
	if est.PricePerSheet > 0 {
		w.setRow(7, "Price per sheet", est.PricePerSheet)
		w.setRow(8, "Estimated cost", est.EstimatedCost)
	}
	if w.err != nil {
		return fmt.Errorf("failed to write material estimate: %w", w.err)
	}
	if err := f.SetColWidth(materialSheet, "A", "A", 26); err != nil {
		return fmt.Errorf("failed to size material columns: %w", err)
	}
	return nil
}

// writeBandingSheet fills the edge banding totals.
func writeBandingSheet(f *excelize.File, sum model.EdgeBandingSummary) error {
	w := &sheetWriter{f: f, sheet: bandingSheet}
	w.setRow(1, "Banded panels", sum.PanelCount)
	w.setRow(2, "Banded edges", sum.EdgeCount)
	w.setRow(3, "Total length (m)", sum.TotalLinearM)
	w.setRow(4, "Waste percent", sum.WastePercent)
	w.setRow(5, "Length incl. waste (m)", sum.TotalWithWasteM)
	if w.err != nil {
		return fmt.Errorf("failed to write edge banding summary: %w", w.err)
	}
	if err := f.SetColWidth(bandingSheet, "A", "A", 26); err != nil {
		return fmt.Errorf("failed to size edge banding columns: %w", err)
	}
	return nil
}
