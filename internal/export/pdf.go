// Package export renders a design to shareable file formats: elevation
// PDFs, QR-coded cabinet labels, DXF drawings, and cut list workbooks.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/rodor-repo/ThreeJS-sub001/internal/model"
)

// typeColor represents an RGB fill for a cabinet type.
type typeColor struct {
	R, G, B int
}

// typeColors mirrors the color scheme used by the elevation canvas.
var typeColors = map[model.CabinetType]typeColor{
	model.TypeBase:       {R: 76, G: 175, B: 80},   // green
	model.TypeTop:        {R: 33, G: 150, B: 243},  // blue
	model.TypeTall:       {R: 255, G: 152, B: 0},   // orange
	model.TypeWardrobe:   {R: 156, G: 39, B: 176},  // purple
	model.TypePanel:      {R: 0, G: 188, B: 212},   // cyan
	model.TypeFiller:     {R: 244, G: 67, B: 54},   // red
	model.TypeKicker:     {R: 121, G: 85, B: 72},   // brown
	model.TypeBulkhead:   {R: 255, G: 235, B: 59},  // yellow
	model.TypeBenchtop:   {R: 158, G: 158, B: 158}, // grey
	model.TypeUnderPanel: {R: 205, G: 220, B: 57},  // lime
	model.TypeAppliance:  {R: 96, G: 125, B: 139},  // slate
}

func colorFor(t model.CabinetType) typeColor {
	if c, ok := typeColors[t]; ok {
		return c
	}
	return typeColor{R: 189, G: 189, B: 189}
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 14.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF document of the design. Each view is
// rendered on its own page as a wall elevation, followed by a summary
// page with cabinet statistics and a material estimate.
func ExportPDF(path string, scene *model.Scene, cfg model.AppConfig) error {
	if scene == nil || len(scene.Cabinets) == 0 {
		return fmt.Errorf("no cabinets to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, viewID := range scene.ViewIDs() {
		pdf.AddPage()
		renderViewPage(pdf, scene, viewID, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, scene, cfg)

	return pdf.OutputFileAndClose(path)
}

// renderWidth returns the width a cabinet occupies on the drawing.
// Appliances may render wider than their carcass.
func renderWidth(c *model.Cabinet) float64 {
	if c.Type == model.TypeAppliance && c.VisualWidth > 0 {
		return c.VisualWidth
	}
	return c.Dimensions.Width
}

// renderViewPage draws one wall elevation on the current PDF page.
func renderViewPage(pdf *fpdf.Fpdf, scene *model.Scene, viewID string, viewNum int) {
	members := scene.InView(viewID)
	room := scene.Room

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("View %d: %s (%.0f x %.0f mm wall)", viewNum, viewID, room.Width, room.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Cabinets: %d | Floor run: %.0f mm | Wall run: %.0f mm",
		len(members), rowRun(members, false), rowRun(members, true))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Calculate drawing area
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	// Scale to fit the wall within the drawing area
	scaleX := drawWidth / room.Width
	scaleY := drawHeight / room.Height
	scale := math.Min(scaleX, scaleY)

	canvasW := room.Width * scale
	canvasH := room.Height * scale

	// Center the drawing horizontally
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Wall background
	pdf.SetFillColor(250, 248, 243)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Draw cabinets front-on. Attachments last so kickers and benchtops
	// sit over the carcass outline they belong to.
	for _, pass := range []bool{false, true} {
		for _, c := range members {
			if c.Type.DependsOnParent() != pass {
				continue
			}
			renderCabinet(pdf, c, room, scale, offsetX, offsetY)
		}
	}

	drawDimensionAnnotations(pdf, room, offsetX, offsetY, canvasW, canvasH)
	drawTypeLegend(pdf, members, offsetY+canvasH+5)
}

// renderCabinet draws a single cabinet rectangle with drawer and door
// subdivisions and a centered label.
func renderCabinet(pdf *fpdf.Fpdf, c *model.Cabinet, room model.Room, scale, offsetX, offsetY float64) {
	w := renderWidth(c)
	h := c.Dimensions.Height
	pw := w * scale
	ph := h * scale
	px := offsetX + c.Position.X*scale
	// Elevation Y grows up from the floor, PDF Y grows down the page.
	py := offsetY + (room.Height-(c.Position.Y+h))*scale

	col := colorFor(c.Type)
	pdf.SetFillColor(col.R, col.G, col.B)
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.3)
	pdf.Rect(px, py, pw, ph, "FD")

	// Drawer fronts stack top-down; dividers at cumulative heights.
	if c.Drawers.Enabled && len(c.Drawers.Heights) > 1 {
		pdf.SetDrawColor(60, 60, 60)
		pdf.SetLineWidth(0.2)
		cum := 0.0
		for _, dh := range c.Drawers.Heights[:len(c.Drawers.Heights)-1] {
			cum += dh
			ly := py + cum*scale
			pdf.Line(px, ly, px+pw, ly)
		}
	}

	// Door split lines
	if c.Doors > 1 {
		pdf.SetDrawColor(60, 60, 60)
		pdf.SetLineWidth(0.2)
		doorW := pw / float64(c.Doors)
		for i := 1; i < c.Doors; i++ {
			lx := px + doorW*float64(i)
			pdf.Line(lx, py, lx, py+ph)
		}
	}

	// Label (only if rectangle is large enough)
	if pw > 15 && ph > 8 {
		pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
		pdf.SetTextColor(0, 0, 0)

		label := c.Name
		dims := fmt.Sprintf("%.0fx%.0f", c.Dimensions.Width, h)

		labelW := pdf.GetStringWidth(label)
		dimsW := pdf.GetStringWidth(dims)

		if labelW < pw-2 {
			pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
			pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
		}
		if ph > 14 && dimsW < pw-2 {
			pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
			pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
		}
	}
}

// rowRun returns the horizontal extent covered by the wall mounted or
// floor standing cabinets of a view.
func rowRun(members []*model.Cabinet, wallMounted bool) float64 {
	minX := math.Inf(1)
	maxX := math.Inf(-1)
	for _, c := range members {
		if c.Type.WallMounted() != wallMounted {
			continue
		}
		minX = math.Min(minX, c.Left())
		maxX = math.Max(maxX, c.Left()+renderWidth(c))
	}
	if maxX <= minX {
		return 0
	}
	return maxX - minX
}

// drawDimensionAnnotations adds wall dimension labels outside the elevation.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, room model.Room, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	// Width annotation (below the wall)
	widthLabel := fmt.Sprintf("%.0f mm", room.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	// Height annotation (to the left of the wall, rotated)
	heightLabel := fmt.Sprintf("%.0f mm", room.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawTypeLegend renders a compact legend of the cabinet types present
// in a view at the bottom of the page.
func drawTypeLegend(pdf *fpdf.Fpdf, members []*model.Cabinet, startY float64) {
	if len(members) == 0 {
		return
	}

	present := map[model.CabinetType]int{}
	for _, c := range members {
		present[c.Type]++
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Cabinet types:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for _, t := range model.AllCabinetTypes() {
		count, ok := present[t]
		if !ok {
			continue
		}
		col := colorFor(t)
		label := fmt.Sprintf("%s (%d)", t, count)
		labelW := pdf.GetStringWidth(label) + 6

		// Wrap to next line if needed
		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final page with design-wide statistics,
// the material estimate, and the configured defaults.
func renderSummaryPage(pdf *fpdf.Fpdf, scene *model.Scene, cfg model.AppConfig) {
	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Design Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	panels := scene.CutList()
	estimate := model.EstimateMaterial(panels, cfg.SheetWidth, cfg.SheetHeight, cfg.WastePercent, cfg.PricePerSheet)
	banding := model.CalculateEdgeBanding(panels, cfg.WastePercent)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Views", fmt.Sprintf("%d", len(scene.ViewIDs()))},
		{"Cabinets", fmt.Sprintf("%d", len(scene.Cabinets))},
		{"Panels to Cut", fmt.Sprintf("%d", countPanels(panels))},
		{"Sheets Required", fmt.Sprintf("%d (incl. %.0f%% waste)", estimate.SheetsWithWaste, estimate.WastePercent)},
		{"Edge Banding", fmt.Sprintf("%.1f m", banding.TotalWithWasteM)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	// Per-view breakdown table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "View Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 60, 35, 50, 50, 50}
	headers := []string{"View", "Name", "Cabinets", "Floor Run", "Wall Run", "Tallest Point"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, viewID := range scene.ViewIDs() {
		members := scene.InView(viewID)
		tallest := 0.0
		for _, c := range members {
			tallest = math.Max(tallest, c.Top())
		}
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			viewID,
			fmt.Sprintf("%d", len(members)),
			fmt.Sprintf("%.0f mm", rowRun(members, false)),
			fmt.Sprintf("%.0f mm", rowRun(members, true)),
			fmt.Sprintf("%.0f mm", tallest),
		}

		// Alternate row background
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	// Free cabinet warning
	free := freeCabinets(scene)
	if len(free) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "NOTE: Cabinets Outside Any View", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)

		for _, c := range free {
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s: %.0f x %.0f x %.0f mm", c.Name,
				c.Dimensions.Width, c.Dimensions.Height, c.Dimensions.Depth)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	// Configured defaults
	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Settings", "", 0, "L", false, 0, "")
	y += 9

	settingsItems := []struct {
		label string
		value string
	}{
		{"Room Size", fmt.Sprintf("%.0f x %.0f mm", scene.Room.Width, scene.Room.Height)},
		{"Drawer Height Range", fmt.Sprintf("%.0f - %.0f mm", cfg.DrawerMinHeight, cfg.DrawerMaxHeight)},
		{"Stock Sheet", fmt.Sprintf("%.0f x %.0f mm", cfg.SheetWidth, cfg.SheetHeight)},
		{"Waste Allowance", fmt.Sprintf("%.0f%%", cfg.WastePercent)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by sub001 - Parametric Cabinet Designer", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

// countPanels returns the total number of boards in a cut list,
// quantities included.
func countPanels(panels []model.Panel) int {
	total := 0
	for _, p := range panels {
		total += p.Quantity
	}
	return total
}

// freeCabinets returns the cabinets that are not assigned to any view.
func freeCabinets(scene *model.Scene) []*model.Cabinet {
	var free []*model.Cabinet
	for _, c := range scene.Cabinets {
		if !c.InView() {
			free = append(free, c)
		}
	}
	return free
}
