package model

import (
	"math"
	"strings"
)

// EdgeBanding marks which edges of a panel receive banding tape.
// Front and Back are the long (width) edges, Left and Right the short
// (height) edges.
type EdgeBanding struct {
	Front bool `json:"front"`
	Back  bool `json:"back"`
	Left  bool `json:"left"`
	Right bool `json:"right"`
}

// HasAny reports whether any edge is banded.
func (e EdgeBanding) HasAny() bool {
	return e.Front || e.Back || e.Left || e.Right
}

// EdgeCount returns the number of banded edges.
func (e EdgeBanding) EdgeCount() int {
	n := 0
	for _, b := range []bool{e.Front, e.Back, e.Left, e.Right} {
		if b {
			n++
		}
	}
	return n
}

// LinearLength returns the total banding length in mm for a panel of
// the given width and height.
func (e EdgeBanding) LinearLength(width, height float64) float64 {
	var total float64
	if e.Front {
		total += width
	}
	if e.Back {
		total += width
	}
	if e.Left {
		total += height
	}
	if e.Right {
		total += height
	}
	return total
}

// String renders the banded edges compactly, e.g. "F+B+L+R".
func (e EdgeBanding) String() string {
	var parts []string
	if e.Front {
		parts = append(parts, "F")
	}
	if e.Back {
		parts = append(parts, "B")
	}
	if e.Left {
		parts = append(parts, "L")
	}
	if e.Right {
		parts = append(parts, "R")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "+")
}

// EdgeBandingSummary holds the calculated edge banding requirements for
// a full cut list.
type EdgeBandingSummary struct {
	TotalLinearMM    float64 `json:"total_linear_mm"`
	TotalLinearM     float64 `json:"total_linear_m"`
	WastePercent     float64 `json:"waste_percent"`
	TotalWithWasteMM float64 `json:"total_with_waste_mm"`
	TotalWithWasteM  float64 `json:"total_with_waste_m"`
	PanelCount       int     `json:"panel_count"`
	EdgeCount        int     `json:"edge_count"`
}

// CalculateEdgeBanding computes the total edge banding needed for a cut
// list. wastePercent is the additional percentage to add for waste
// (e.g. 10 for 10%).
func CalculateEdgeBanding(panels []Panel, wastePercent float64) EdgeBandingSummary {
	var totalMM float64
	var panelCount, edgeCount int

	for _, p := range panels {
		if !p.Banding.HasAny() {
			continue
		}
		lengthPerPiece := p.Banding.LinearLength(p.Width, p.Height)
		edgesPerPiece := p.Banding.EdgeCount()

		totalMM += lengthPerPiece * float64(p.Quantity)
		panelCount += p.Quantity
		edgeCount += edgesPerPiece * p.Quantity
	}

	wasteFactor := 1.0 + (wastePercent / 100.0)
	totalWithWaste := totalMM * wasteFactor

	return EdgeBandingSummary{
		TotalLinearMM:    totalMM,
		TotalLinearM:     totalMM / 1000.0,
		WastePercent:     wastePercent,
		TotalWithWasteMM: math.Ceil(totalWithWaste),
		TotalWithWasteM:  math.Ceil(totalWithWaste) / 1000.0,
		PanelCount:       panelCount,
		EdgeCount:        edgeCount,
	}
}
