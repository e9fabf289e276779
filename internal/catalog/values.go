package catalog

import "sync"

// PanelState is the persisted dimension state a user saved for one
// cabinet, plus its chosen material color. Values are keyed by GD id.
type PanelState struct {
	Values        map[string]float64 `json:"values"`
	MaterialColor string             `json:"material_color,omitempty"`
}

// PanelStore holds the saved panel state per cabinet.
type PanelStore struct {
	mu     sync.RWMutex
	states map[string]*PanelState
}

// NewPanelStore creates an empty panel store.
func NewPanelStore() *PanelStore {
	return &PanelStore{states: make(map[string]*PanelState)}
}

// Set records a saved value for a cabinet's GD.
func (s *PanelStore) Set(cabinetID, gdID string, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[cabinetID]
	if !ok {
		st = &PanelState{Values: make(map[string]float64)}
		s.states[cabinetID] = st
	}
	st.Values[gdID] = value
}

// SetColor records the material color for a cabinet.
func (s *PanelStore) SetColor(cabinetID, color string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[cabinetID]
	if !ok {
		st = &PanelState{Values: make(map[string]float64)}
		s.states[cabinetID] = st
	}
	st.MaterialColor = color
}

// Value returns the saved value for a cabinet's GD.
func (s *PanelStore) Value(cabinetID, gdID string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.states[cabinetID]
	if !ok {
		return 0, false
	}
	v, ok := st.Values[gdID]
	return v, ok
}

// Get returns a copy of the full panel state for a cabinet.
func (s *PanelStore) Get(cabinetID string) (PanelState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.states[cabinetID]
	if !ok {
		return PanelState{}, false
	}
	cp := PanelState{
		Values:        make(map[string]float64, len(st.Values)),
		MaterialColor: st.MaterialColor,
	}
	for k, v := range st.Values {
		cp.Values[k] = v
	}
	return cp, true
}

// Remove drops the saved state for a cabinet.
func (s *PanelStore) Remove(cabinetID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, cabinetID)
}

// Replace swaps the whole store content. Used by design load.
func (s *PanelStore) Replace(states map[string]*PanelState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if states == nil {
		states = make(map[string]*PanelState)
	}
	s.states = states
}

// Snapshot returns a deep copy of the store content. Used by design save.
func (s *PanelStore) Snapshot() map[string]*PanelState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*PanelState, len(s.states))
	for id, st := range s.states {
		cp := &PanelState{
			Values:        make(map[string]float64, len(st.Values)),
			MaterialColor: st.MaterialColor,
		}
		for k, v := range st.Values {
			cp.Values[k] = v
		}
		out[id] = cp
	}
	return out
}

// EditStore holds the in-session dimension edits per cabinet. Edits
// outrank saved panel state and catalog defaults when resolving a value.
type EditStore struct {
	mu    sync.RWMutex
	edits map[string]map[string]float64
}

// NewEditStore creates an empty edit store.
func NewEditStore() *EditStore {
	return &EditStore{edits: make(map[string]map[string]float64)}
}

// Set records an edit for a cabinet's GD.
func (s *EditStore) Set(cabinetID, gdID string, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.edits[cabinetID]
	if !ok {
		m = make(map[string]float64)
		s.edits[cabinetID] = m
	}
	m[gdID] = value
}

// Value returns the edited value for a cabinet's GD.
func (s *EditStore) Value(cabinetID, gdID string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.edits[cabinetID]
	if !ok {
		return 0, false
	}
	v, ok := m[gdID]
	return v, ok
}

// Clear drops every edit for a cabinet.
func (s *EditStore) Clear(cabinetID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.edits, cabinetID)
}

// Replace swaps the whole store content. Used by design load.
func (s *EditStore) Replace(edits map[string]map[string]float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if edits == nil {
		edits = make(map[string]map[string]float64)
	}
	s.edits = edits
}

// Snapshot returns a deep copy of the store content. Used by design save.
func (s *EditStore) Snapshot() map[string]map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]map[string]float64, len(s.edits))
	for id, m := range s.edits {
		cp := make(map[string]float64, len(m))
		for k, v := range m {
			cp[k] = v
		}
		out[id] = cp
	}
	return out
}

// Values resolves the live value of a GD for a cabinet. The precedence
// order is fixed: an in-session edit wins over saved panel state, which
// wins over the catalog default. Missing everywhere resolves to 0.
type Values struct {
	Registry *Registry
	Edits    *EditStore
	Panels   *PanelStore
}

// Resolve returns the live value for a cabinet's GD and whether any
// source supplied it.
func (v Values) Resolve(cabinetID, productID, gdID string) (float64, bool) {
	if v.Edits != nil {
		if val, ok := v.Edits.Value(cabinetID, gdID); ok {
			return val, true
		}
	}
	if v.Panels != nil {
		if val, ok := v.Panels.Value(cabinetID, gdID); ok {
			return val, true
		}
	}
	if v.Registry != nil && productID != "" {
		if p, ok := v.Registry.Get(productID); ok {
			if entry, ok := p.Dims[gdID]; ok {
				return entry.Default, true
			}
		}
	}
	return 0, false
}
