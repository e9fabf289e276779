// Package catalog holds the product catalog data that drives cabinet
// dimensions: generic dimensions (GDs), their role mapping, per-product
// dimension entries, and the per-cabinet value stores that override
// catalog defaults.
package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// GDRole names what a generic dimension controls on a cabinet.
type GDRole string

const (
	RoleWidth        GDRole = "width"
	RoleHeight       GDRole = "height"
	RoleDepth        GDRole = "depth"
	RoleDoorOverhang GDRole = "doorOverhang"
	RoleShelfQty     GDRole = "shelfQty"
	RoleDrawerQty    GDRole = "drawerQty"
	RoleDoorQty      GDRole = "doorQty"
)

// drawerRolePrefix is shared by the indexed drawer height roles
// drawerHeight0 through drawerHeight4.
const drawerRolePrefix = "drawerHeight"

// maxDrawerRoles bounds the indexed drawer height roles.
const maxDrawerRoles = 5

// RoleForDrawer returns the role controlling the height of drawer i.
// Only indices 0 through 4 have roles.
func RoleForDrawer(i int) (GDRole, bool) {
	if i < 0 || i >= maxDrawerRoles {
		return "", false
	}
	return GDRole(drawerRolePrefix + strconv.Itoa(i)), true
}

// DrawerIndex returns the drawer index for an indexed drawer height
// role, or false for every other role.
func (r GDRole) DrawerIndex() (int, bool) {
	s := string(r)
	if !strings.HasPrefix(s, drawerRolePrefix) {
		return 0, false
	}
	i, err := strconv.Atoi(s[len(drawerRolePrefix):])
	if err != nil || i < 0 || i >= maxDrawerRoles {
		return 0, false
	}
	return i, true
}

// Valid reports whether r is a known role.
func (r GDRole) Valid() bool {
	switch r {
	case RoleWidth, RoleHeight, RoleDepth, RoleDoorOverhang,
		RoleShelfQty, RoleDrawerQty, RoleDoorQty:
		return true
	}
	_, ok := r.DrawerIndex()
	return ok
}

// Quantity reports whether the role carries a count rather than a
// length in mm.
func (r GDRole) Quantity() bool {
	switch r {
	case RoleShelfQty, RoleDrawerQty, RoleDoorQty:
		return true
	}
	return false
}

// Badge returns the short chip label shown next to a dimension input.
func (r GDRole) Badge() string {
	switch r {
	case RoleWidth:
		return "W"
	case RoleHeight:
		return "H"
	case RoleDepth:
		return "D"
	case RoleDoorOverhang:
		return "DO"
	case RoleShelfQty:
		return "SH"
	case RoleDrawerQty:
		return "DR"
	case RoleDoorQty:
		return "DOOR"
	}
	if i, ok := r.DrawerIndex(); ok {
		return fmt.Sprintf("H%d", i+1)
	}
	return "?"
}

// ValueType constrains how a dimension entry accepts values.
type ValueType string

const (
	ValueRange     ValueType = "range"     // Any value between Min and Max
	ValueSelection ValueType = "selection" // One of the listed Options
)

// GD is a generic dimension declared by a product.
type GD struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Visible bool    `json:"visible"`
}

// DimensionEntry describes the editable surface of one GD on a product:
// its value constraints, catalog default, and display order.
type DimensionEntry struct {
	GDID    string    `json:"gd_id"`
	Type    ValueType `json:"value_type"`
	Min     float64   `json:"min"`
	Max     float64   `json:"max"`
	Options []float64 `json:"options,omitempty"`
	Default float64   `json:"default_value"`
	SortNum int       `json:"sort_num"`
	Visible bool      `json:"visible"`
}

// Accepts reports whether the entry allows the given value.
func (d DimensionEntry) Accepts(v float64) bool {
	switch d.Type {
	case ValueSelection:
		for _, opt := range d.Options {
			if opt == v {
				return true
			}
		}
		return false
	default:
		if d.Min > 0 && v < d.Min {
			return false
		}
		if d.Max > 0 && v > d.Max {
			return false
		}
		return true
	}
}

// Clamp returns the nearest value the entry allows.
func (d DimensionEntry) Clamp(v float64) float64 {
	switch d.Type {
	case ValueSelection:
		if len(d.Options) == 0 {
			return v
		}
		best := d.Options[0]
		for _, opt := range d.Options[1:] {
			if abs(opt-v) < abs(best-v) {
				best = opt
			}
		}
		return best
	default:
		if d.Min > 0 && v < d.Min {
			return d.Min
		}
		if d.Max > 0 && v > d.Max {
			return d.Max
		}
		return v
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// ProductData is everything the catalog knows about one product. The
// ThreeJSGDMapping assigns each GD its role on the 3D cabinet; GDs
// without a mapping entry are inert data.
type ProductData struct {
	ID   string                    `json:"id"`
	Name string                    `json:"name"`
	GDs  []GD                      `json:"gds"`
	Dims map[string]DimensionEntry `json:"dims"`

	ThreeJSGDMapping map[string]GDRole `json:"threeJsGDMapping"`
}

// RoleOf returns the role mapped to the given GD id.
func (p *ProductData) RoleOf(gdID string) (GDRole, bool) {
	role, ok := p.ThreeJSGDMapping[gdID]
	return role, ok
}

// GDForRole returns the first GD mapped to the given role, preferring
// visible entries in SortNum order.
func (p *ProductData) GDForRole(role GDRole) (string, bool) {
	bestID := ""
	bestSort := 0
	bestVisible := false
	for gdID, r := range p.ThreeJSGDMapping {
		if r != role {
			continue
		}
		entry, hasEntry := p.Dims[gdID]
		visible := hasEntry && entry.Visible
		sortNum := 0
		if hasEntry {
			sortNum = entry.SortNum
		}
		if bestID == "" ||
			(visible && !bestVisible) ||
			(visible == bestVisible && sortNum < bestSort) {
			bestID = gdID
			bestSort = sortNum
			bestVisible = visible
		}
	}
	return bestID, bestID != ""
}

// DefaultFor returns the catalog default value for a GD id, or 0 when
// the product has no dimension entry for it.
func (p *ProductData) DefaultFor(gdID string) float64 {
	if entry, ok := p.Dims[gdID]; ok {
		return entry.Default
	}
	return 0
}
