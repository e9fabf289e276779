package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/rodor-repo/ThreeJS-sub001/internal/model"
)

// LabelInfo holds the data encoded into each cabinet label's QR code.
type LabelInfo struct {
	CabinetID string  `json:"id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	ViewID    string  `json:"view"`
	Width     float64 `json:"width_mm"`
	Height    float64 `json:"height_mm"`
	Depth     float64 `json:"depth_mm"`
	X         float64 `json:"x_mm"`
	Y         float64 `json:"y_mm"`
	ProductID string  `json:"product_id,omitempty"`
	DrawerQty int     `json:"drawer_qty,omitempty"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per cabinet.
// Each label contains the cabinet name, dimensions, and a QR code
// encoding the cabinet metadata as JSON. Labels are laid out on a
// standard label sheet format (Avery 5160 / 3 columns x 10 rows on
// US Letter).
func ExportLabels(path string, scene *model.Scene) error {
	if scene == nil || len(scene.Cabinets) == 0 {
		return fmt.Errorf("no cabinets to generate labels for")
	}

	labels := CollectLabelInfos(scene)

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		// Add new page when needed
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Name, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Draw light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	// Generate QR code PNG bytes
	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	// Register QR image with a unique name
	imgName := fmt.Sprintf("qr_%s", info.CabinetID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	// Place QR code on the right side of the label
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// Text area (left side of label)
	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Cabinet name (bold, larger)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	// Truncate name if too long
	name := info.Name
	if pdf.GetStringWidth(name) > textW {
		for len(name) > 0 && pdf.GetStringWidth(name+"...") > textW {
			name = name[:len(name)-1]
		}
		name += "..."
	}
	pdf.CellFormat(textW, 4.5, name, "", 1, "L", false, 0, "")

	// Dimensions
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.0f x %.0f x %.0f mm", info.Width, info.Height, info.Depth)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	// View and position info
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	placement := fmt.Sprintf("%s @ (%.0f, %.0f)", info.ViewID, info.X, info.Y)
	if info.ViewID == model.ViewNone {
		placement = "unplaced"
	}
	pdf.CellFormat(textW, 3, placement, "", 1, "L", false, 0, "")

	// Drawer indicator
	if info.DrawerQty > 0 {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, fmt.Sprintf("%d drawers", info.DrawerQty), "", 0, "L", false, 0, "")
	}

	// Reset text color
	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectLabelInfos extracts label information for every cabinet,
// ordered by view and then left to right along the wall. Useful for
// testing or alternative label formats.
func CollectLabelInfos(scene *model.Scene) []LabelInfo {
	labels := make([]LabelInfo, 0, len(scene.Cabinets))
	for _, c := range scene.Cabinets {
		info := LabelInfo{
			CabinetID: c.ID,
			Name:      c.Name,
			Type:      string(c.Type),
			ViewID:    c.ViewID,
			Width:     c.Dimensions.Width,
			Height:    c.Dimensions.Height,
			Depth:     c.Dimensions.Depth,
			X:         c.Position.X,
			Y:         c.Position.Y,
			ProductID: c.ProductID,
		}
		if c.Drawers.Enabled {
			info.DrawerQty = c.Drawers.Quantity
		}
		labels = append(labels, info)
	}
	sort.SliceStable(labels, func(i, j int) bool {
		if labels[i].ViewID != labels[j].ViewID {
			return labels[i].ViewID < labels[j].ViewID
		}
		return labels[i].X < labels[j].X
	})
	return labels
}
