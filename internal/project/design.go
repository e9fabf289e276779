package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rodor-repo/ThreeJS-sub001/internal/catalog"
	"github.com/rodor-repo/ThreeJS-sub001/internal/engine"
	"github.com/rodor-repo/ThreeJS-sub001/internal/model"
)

// DesignExt is the file extension for saved designs.
const DesignExt = ".json"

// Design is the on-disk form of a saved editing session: the scene
// plus every relation and value store that gives it meaning.
type Design struct {
	Name    string `json:"name"`
	SavedAt string `json:"saved_at"`

	Room     model.Room       `json:"room"`
	Cabinets []*model.Cabinet `json:"cabinets"`

	Groups   map[string][]engine.GroupLink  `json:"groups,omitempty"`
	Syncs    map[string][]string            `json:"syncs,omitempty"`
	Formulas map[string]map[string]string   `json:"formulas,omitempty"`
	Edits    map[string]map[string]float64  `json:"edits,omitempty"`
	Panels   map[string]*catalog.PanelState `json:"panels,omitempty"`
}

// NewDesign stamps a named design with the current time.
func NewDesign(name string) Design {
	return Design{
		Name:    name,
		SavedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// DefaultDesignDir returns the directory where designs are saved.
func DefaultDesignDir() string {
	return filepath.Join(DefaultConfigDir(), "designs")
}

// DesignPath returns the save path for a named design in the default
// directory.
func DesignPath(name string) string {
	return filepath.Join(DefaultDesignDir(), name+DesignExt)
}

// SaveDesign writes a design to the given path as JSON, creating any
// missing parent directories.
func SaveDesign(path string, d Design) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("design has no name")
	}
	if d.SavedAt == "" {
		d.SavedAt = time.Now().UTC().Format(time.RFC3339)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create design directory: %w", err)
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal design: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadDesign reads a design from the given path and validates it.
func LoadDesign(path string) (Design, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Design{}, fmt.Errorf("failed to read design file: %w", err)
	}
	var d Design
	if err := json.Unmarshal(data, &d); err != nil {
		return Design{}, fmt.Errorf("failed to parse design file: %w", err)
	}
	if err := validateDesign(&d); err != nil {
		return Design{}, err
	}
	return d, nil
}

// validateDesign rejects structurally broken designs and fills in the
// optional maps so callers never see nil.
func validateDesign(d *Design) error {
	seen := make(map[string]bool, len(d.Cabinets))
	for _, c := range d.Cabinets {
		if c == nil {
			return fmt.Errorf("design contains a null cabinet entry")
		}
		if c.ID == "" {
			return fmt.Errorf("design contains a cabinet without an id")
		}
		if seen[c.ID] {
			return fmt.Errorf("design contains duplicate cabinet id %q", c.ID)
		}
		seen[c.ID] = true
		if !c.Type.Valid() {
			return fmt.Errorf("design contains unknown cabinet type %q", c.Type)
		}
	}

	if d.Groups == nil {
		d.Groups = map[string][]engine.GroupLink{}
	}
	if d.Syncs == nil {
		d.Syncs = map[string][]string{}
	}
	if d.Formulas == nil {
		d.Formulas = map[string]map[string]string{}
	}
	if d.Edits == nil {
		d.Edits = map[string]map[string]float64{}
	}
	if d.Panels == nil {
		d.Panels = map[string]*catalog.PanelState{}
	}
	return nil
}

// ListDesigns returns the design names found in a directory, sorted by
// filename. A missing directory yields an empty list.
func ListDesigns(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), DesignExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), DesignExt))
	}
	return names, nil
}
