package model

import "github.com/google/uuid"

// CabinetType identifies the kind of unit a cabinet represents.
// The set is closed: values outside this list are rejected at creation
// and import time.
type CabinetType string

const (
	TypeBase       CabinetType = "base"
	TypeTop        CabinetType = "top"
	TypeTall       CabinetType = "tall"
	TypePanel      CabinetType = "panel"
	TypeFiller     CabinetType = "filler"
	TypeWardrobe   CabinetType = "wardrobe"
	TypeKicker     CabinetType = "kicker"
	TypeBulkhead   CabinetType = "bulkhead"
	TypeBenchtop   CabinetType = "benchtop"
	TypeUnderPanel CabinetType = "underPanel"
	TypeAppliance  CabinetType = "appliance"
)

// AllCabinetTypes returns every valid cabinet type in display order.
func AllCabinetTypes() []CabinetType {
	return []CabinetType{
		TypeBase, TypeTop, TypeTall, TypePanel, TypeFiller, TypeWardrobe,
		TypeKicker, TypeBulkhead, TypeBenchtop, TypeUnderPanel, TypeAppliance,
	}
}

// Valid reports whether t is one of the known cabinet types.
func (t CabinetType) Valid() bool {
	switch t {
	case TypeBase, TypeTop, TypeTall, TypePanel, TypeFiller, TypeWardrobe,
		TypeKicker, TypeBulkhead, TypeBenchtop, TypeUnderPanel, TypeAppliance:
		return true
	}
	return false
}

// WallMounted reports whether the type hangs on the wall rather than
// standing on the floor. Wall mounted units follow a view movement in
// both axes; floor units only follow horizontally.
func (t CabinetType) WallMounted() bool {
	switch t {
	case TypeTop, TypeBulkhead, TypeUnderPanel:
		return true
	}
	return false
}

// DependsOnParent reports whether the type is an attachment that only
// exists relative to a host cabinet. Removing the host removes these too.
func (t CabinetType) DependsOnParent() bool {
	switch t {
	case TypeKicker, TypeBulkhead, TypeBenchtop, TypeUnderPanel, TypeFiller, TypePanel:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (t CabinetType) String() string { return string(t) }

// Dimensions holds the outer size of a cabinet in mm.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// Position locates a cabinet in the room. X is the left edge measured
// from the room origin, Y is the bottom edge measured from the floor,
// Z is the offset from the wall plane. All mm.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// DrawerSet holds the drawer configuration of a cabinet. Heights always
// sum to the cabinet's internal height when Enabled; the Editing flag is
// set while the user drags a drawer divider so that external rebalancing
// leaves the in-progress values alone.
type DrawerSet struct {
	Enabled  bool      `json:"enabled"`
	Quantity int       `json:"quantity"`
	Heights  []float64 `json:"heights"`
	Editing  bool      `json:"-"`
}

// Clone returns a deep copy of the drawer set.
func (d DrawerSet) Clone() DrawerSet {
	cp := d
	if d.Heights != nil {
		cp.Heights = make([]float64, len(d.Heights))
		copy(cp.Heights, d.Heights)
	}
	return cp
}

// Cabinet is a single unit in the scene.
type Cabinet struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Type CabinetType `json:"type"`

	Dimensions Dimensions `json:"dimensions"`
	Position   Position   `json:"position"`

	// ViewID names the wall elevation this cabinet belongs to.
	// "none" means the cabinet floats outside any view.
	ViewID string `json:"view_id"`

	// Edge locks pin the named edge during a width change.
	LeftLock  bool `json:"left_lock"`
	RightLock bool `json:"right_lock"`

	// ProductID links the cabinet to its catalog product. Empty for
	// free-drawn units that carry no catalog dimensions.
	ProductID string `json:"product_id,omitempty"`

	// ParentID links attachment types (kicker, benchtop, ...) to their
	// host cabinet for cascade removal.
	ParentID string `json:"parent_id,omitempty"`

	// VisualWidth overrides the rendered width of appliances whose
	// physical carcass is narrower than the space they occupy.
	VisualWidth float64 `json:"visual_width,omitempty"`

	DoorOverhang float64   `json:"door_overhang"`
	Doors        int       `json:"doors"`
	Shelves      int       `json:"shelves"`
	Drawers      DrawerSet `json:"drawers"`
}

// NewCabinet creates a cabinet of the given type and size with a
// generated ID, outside any view and unlocked on both edges.
func NewCabinet(t CabinetType, w, h, d float64) *Cabinet {
	return &Cabinet{
		ID:         uuid.New().String()[:8],
		Name:       string(t),
		Type:       t,
		Dimensions: Dimensions{Width: w, Height: h, Depth: d},
		ViewID:     ViewNone,
	}
}

// NewTypedCabinet creates a cabinet of the given type using the default
// dimensions for that type.
func NewTypedCabinet(t CabinetType) *Cabinet {
	dims := DefaultDimensions(t)
	c := NewCabinet(t, dims.Width, dims.Height, dims.Depth)
	if t == TypeBase || t == TypeTall || t == TypeWardrobe || t == TypeAppliance {
		c.Position.Y = defaultKickerHeight
	}
	return c
}

// ViewNone is the view id of cabinets that belong to no view.
const ViewNone = "none"

const defaultKickerHeight = 150.0

// DefaultDimensions returns the standard size for a cabinet type.
func DefaultDimensions(t CabinetType) Dimensions {
	switch t {
	case TypeTop:
		return Dimensions{Width: 600, Height: 720, Depth: 300}
	case TypeTall:
		return Dimensions{Width: 600, Height: 2100, Depth: 560}
	case TypePanel:
		return Dimensions{Width: 18, Height: 720, Depth: 560}
	case TypeFiller:
		return Dimensions{Width: 50, Height: 720, Depth: 560}
	case TypeWardrobe:
		return Dimensions{Width: 900, Height: 2100, Depth: 600}
	case TypeKicker:
		return Dimensions{Width: 600, Height: 150, Depth: 50}
	case TypeBulkhead:
		return Dimensions{Width: 600, Height: 300, Depth: 350}
	case TypeBenchtop:
		return Dimensions{Width: 600, Height: 33, Depth: 600}
	case TypeUnderPanel:
		return Dimensions{Width: 600, Height: 18, Depth: 300}
	default: // base, appliance
		return Dimensions{Width: 600, Height: 720, Depth: 560}
	}
}

// Left returns the x coordinate of the left edge.
func (c *Cabinet) Left() float64 { return c.Position.X }

// Right returns the x coordinate of the right edge.
func (c *Cabinet) Right() float64 { return c.Position.X + c.Dimensions.Width }

// CenterX returns the x coordinate of the horizontal center.
func (c *Cabinet) CenterX() float64 { return c.Position.X + c.Dimensions.Width/2 }

// Top returns the y coordinate of the top edge.
func (c *Cabinet) Top() float64 { return c.Position.Y + c.Dimensions.Height }

// InView reports whether the cabinet belongs to a real view.
func (c *Cabinet) InView() bool { return c.ViewID != "" && c.ViewID != ViewNone }

// Field resolves a named attribute for formula evaluation. Appliances
// report their visual width when one is set, and benchtops report their
// height above the floor rather than the slab thickness.
func (c *Cabinet) Field(name string) (float64, bool) {
	switch name {
	case "width":
		if c.Type == TypeAppliance && c.VisualWidth > 0 {
			return c.VisualWidth, true
		}
		return c.Dimensions.Width, true
	case "height":
		if c.Type == TypeBenchtop {
			return c.Position.Y + c.Dimensions.Height, true
		}
		return c.Dimensions.Height, true
	case "depth":
		return c.Dimensions.Depth, true
	case "x", "left":
		return c.Position.X, true
	case "right":
		return c.Right(), true
	case "y":
		return c.Position.Y, true
	case "z":
		return c.Position.Z, true
	case "top":
		return c.Top(), true
	case "doorOverhang":
		return c.DoorOverhang, true
	case "doorQty":
		return float64(c.Doors), true
	case "shelfQty":
		return float64(c.Shelves), true
	case "drawerQty":
		return float64(c.Drawers.Quantity), true
	}
	return 0, false
}

// Clone returns a deep copy of the cabinet.
func (c *Cabinet) Clone() *Cabinet {
	cp := *c
	cp.Drawers = c.Drawers.Clone()
	return &cp
}
