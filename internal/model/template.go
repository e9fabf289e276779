package model

import (
	"time"

	"github.com/google/uuid"
)

// CabinetPreset is a reusable cabinet configuration that captures type,
// dimensions, and front configuration but not placement. Presets seed
// new cabinets without touching the catalog.
type CabinetPreset struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
	Type        CabinetType `json:"type"`
	Dimensions  Dimensions  `json:"dimensions"`
	DoorOverhang float64    `json:"door_overhang"`
	Doors       int         `json:"doors"`
	Shelves     int         `json:"shelves"`
	Drawers     DrawerSet   `json:"drawers"`
	ProductID   string      `json:"product_id,omitempty"`
}

// NewCabinetPreset captures a preset from an existing cabinet. Position,
// view membership, and locks are intentionally excluded.
func NewCabinetPreset(name, description string, c *Cabinet) CabinetPreset {
	now := time.Now().UTC().Format(time.RFC3339)
	return CabinetPreset{
		ID:           uuid.New().String()[:8],
		Name:         name,
		Description:  description,
		CreatedAt:    now,
		UpdatedAt:    now,
		Type:         c.Type,
		Dimensions:   c.Dimensions,
		DoorOverhang: c.DoorOverhang,
		Doors:        c.Doors,
		Shelves:      c.Shelves,
		Drawers:      c.Drawers.Clone(),
		ProductID:    c.ProductID,
	}
}

// ToCabinet creates a fresh cabinet from this preset. The cabinet gets
// its own ID so it is independent of the preset.
func (p CabinetPreset) ToCabinet() *Cabinet {
	c := NewCabinet(p.Type, p.Dimensions.Width, p.Dimensions.Height, p.Dimensions.Depth)
	c.Name = p.Name
	c.DoorOverhang = p.DoorOverhang
	c.Doors = p.Doors
	c.Shelves = p.Shelves
	c.Drawers = p.Drawers.Clone()
	c.ProductID = p.ProductID
	return c
}

// PresetStore holds a collection of cabinet presets.
type PresetStore struct {
	Presets []CabinetPreset `json:"presets"`
}

// NewPresetStore creates an empty preset store.
func NewPresetStore() PresetStore {
	return PresetStore{
		Presets: []CabinetPreset{},
	}
}

// Add adds a preset to the store.
func (ps *PresetStore) Add(p CabinetPreset) {
	ps.Presets = append(ps.Presets, p)
}

// Remove removes a preset by ID. Returns true if found and removed.
func (ps *PresetStore) Remove(id string) bool {
	for i, p := range ps.Presets {
		if p.ID == id {
			ps.Presets = append(ps.Presets[:i], ps.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (ps *PresetStore) FindByID(id string) *CabinetPreset {
	for i := range ps.Presets {
		if ps.Presets[i].ID == id {
			return &ps.Presets[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (ps *PresetStore) FindByName(name string) *CabinetPreset {
	for i := range ps.Presets {
		if ps.Presets[i].Name == name {
			return &ps.Presets[i]
		}
	}
	return nil
}

// Names returns a list of preset names for UI dropdowns.
func (ps *PresetStore) Names() []string {
	names := make([]string, len(ps.Presets))
	for i, p := range ps.Presets {
		names[i] = p.Name
	}
	return names
}
