package model

import "fmt"

// PanelKind classifies a board cut from sheet stock.
type PanelKind string

const (
	PanelSide        PanelKind = "side"
	PanelTopRail     PanelKind = "top"
	PanelBottom      PanelKind = "bottom"
	PanelBack        PanelKind = "back"
	PanelShelf       PanelKind = "shelf"
	PanelDoor        PanelKind = "door"
	PanelDrawerFront PanelKind = "drawerFront"
	PanelSlab        PanelKind = "slab"
)

// Panel is one rectangular board required to build a cabinet.
type Panel struct {
	CabinetID   string      `json:"cabinet_id"`
	CabinetName string      `json:"cabinet_name"`
	Kind        PanelKind   `json:"kind"`
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	Quantity    int         `json:"quantity"`
	Banding     EdgeBanding `json:"banding"`
}

// Label returns a human readable identifier for cut lists and labels.
func (p Panel) Label() string {
	return fmt.Sprintf("%s %s", p.CabinetName, p.Kind)
}

// boardThickness is the carcass material thickness assumed when
// decomposing a cabinet into panels.
const boardThickness = 18.0

// shelfSetback keeps shelves clear of the back panel and door swing.
const shelfSetback = 20.0

// CutList decomposes every cabinet in the scene into the panels needed
// to build it. Appliances contribute nothing; they arrive finished.
// Single-board types (panels, fillers, kickers, benchtops, under
// panels) become one slab each.
func (s *Scene) CutList() []Panel {
	var panels []Panel
	for _, c := range s.Cabinets {
		panels = append(panels, c.Panels()...)
	}
	return panels
}

// Panels returns the board breakdown for a single cabinet.
func (c *Cabinet) Panels() []Panel {
	w := c.Dimensions.Width
	h := c.Dimensions.Height
	d := c.Dimensions.Depth

	switch c.Type {
	case TypeAppliance:
		return nil

	case TypePanel, TypeFiller, TypeKicker, TypeBenchtop, TypeUnderPanel:
		return []Panel{{
			CabinetID:   c.ID,
			CabinetName: c.Name,
			Kind:        PanelSlab,
			Width:       w,
			Height:      h,
			Quantity:    1,
			Banding:     EdgeBanding{Front: true},
		}}
	}

	// Carcass types: base, top, tall, wardrobe, bulkhead.
	panels := []Panel{
		{CabinetID: c.ID, CabinetName: c.Name, Kind: PanelSide,
			Width: d, Height: h, Quantity: 2, Banding: EdgeBanding{Front: true}},
		{CabinetID: c.ID, CabinetName: c.Name, Kind: PanelTopRail,
			Width: w - 2*boardThickness, Height: d, Quantity: 1, Banding: EdgeBanding{Front: true}},
		{CabinetID: c.ID, CabinetName: c.Name, Kind: PanelBottom,
			Width: w - 2*boardThickness, Height: d, Quantity: 1, Banding: EdgeBanding{Front: true}},
		{CabinetID: c.ID, CabinetName: c.Name, Kind: PanelBack,
			Width: w, Height: h, Quantity: 1},
	}

	if c.Shelves > 0 {
		panels = append(panels, Panel{
			CabinetID:   c.ID,
			CabinetName: c.Name,
			Kind:        PanelShelf,
			Width:       w - 2*boardThickness,
			Height:      d - shelfSetback,
			Quantity:    c.Shelves,
			Banding:     EdgeBanding{Front: true},
		})
	}

	if c.Doors > 0 {
		doorW := w / float64(c.Doors)
		panels = append(panels, Panel{
			CabinetID:   c.ID,
			CabinetName: c.Name,
			Kind:        PanelDoor,
			Width:       doorW,
			Height:      h + c.DoorOverhang,
			Quantity:    c.Doors,
			Banding:     EdgeBanding{Front: true, Back: true, Left: true, Right: true},
		})
	}

	if c.Drawers.Enabled {
		for _, dh := range c.Drawers.Heights {
			panels = append(panels, Panel{
				CabinetID:   c.ID,
				CabinetName: c.Name,
				Kind:        PanelDrawerFront,
				Width:       w,
				Height:      dh,
				Quantity:    1,
				Banding:     EdgeBanding{Front: true, Back: true, Left: true, Right: true},
			})
		}
	}

	return panels
}
