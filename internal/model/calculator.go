package model

import "math"

// MaterialEstimate holds the results of a sheet purchasing calculation
// for a cut list.
type MaterialEstimate struct {
	TotalPanelArea    float64 `json:"total_panel_area"`    // Total area of all panels (sq mm)
	SheetArea         float64 `json:"sheet_area"`          // Area of one sheet (sq mm)
	SheetsNeededExact float64 `json:"sheets_needed_exact"` // Exact fractional number of sheets
	SheetsNeededMin   int     `json:"sheets_needed_min"`   // Minimum sheets (ceiling of exact)
	SheetsWithWaste   int     `json:"sheets_with_waste"`   // Recommended sheets including waste factor
	WastePercent      float64 `json:"waste_percent"`       // Waste factor applied (e.g., 15 for 15%)
	EstimatedCost     float64 `json:"estimated_cost"`      // Total cost if pricing available
	PricePerSheet     float64 `json:"price_per_sheet"`     // Price used for estimation
}

// EstimateMaterial computes how many stock sheets a cut list consumes.
// It applies a waste percentage on top of the raw area requirement.
func EstimateMaterial(panels []Panel, sheetWidth, sheetHeight, wastePercent, pricePerSheet float64) MaterialEstimate {
	var totalArea float64
	for _, p := range panels {
		totalArea += p.Width * p.Height * float64(p.Quantity)
	}

	sheetArea := sheetWidth * sheetHeight
	if sheetArea <= 0 {
		return MaterialEstimate{
			TotalPanelArea: totalArea,
			WastePercent:   wastePercent,
		}
	}

	exactSheets := totalArea / sheetArea
	minSheets := int(math.Ceil(exactSheets))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	sheetsWithWaste := int(math.Ceil(exactSheets * wasteFactor))
	if sheetsWithWaste < minSheets {
		sheetsWithWaste = minSheets
	}

	return MaterialEstimate{
		TotalPanelArea:    totalArea,
		SheetArea:         sheetArea,
		SheetsNeededExact: exactSheets,
		SheetsNeededMin:   minSheets,
		SheetsWithWaste:   sheetsWithWaste,
		WastePercent:      wastePercent,
		EstimatedCost:     float64(sheetsWithWaste) * pricePerSheet,
		PricePerSheet:     pricePerSheet,
	}
}
