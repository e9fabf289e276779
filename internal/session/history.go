package session

import (
	"github.com/rodor-repo/ThreeJS-sub001/internal/catalog"
	"github.com/rodor-repo/ThreeJS-sub001/internal/engine"
	"github.com/rodor-repo/ThreeJS-sub001/internal/model"
)

const defaultMaxDepth = 50

// Snapshot captures the full editable state at a point in time: the
// scene, the relation maps, the value stores, and the formula map.
type Snapshot struct {
	Scene    *model.Scene
	Groups   map[string][]engine.GroupLink
	Syncs    map[string][]string
	Edits    map[string]map[string]float64
	Panels   map[string]*catalog.PanelState
	Formulas map[string]map[string]string
	Label    string // Human-readable description (e.g. "Resize Base 1")
}

// History manages undo/redo stacks of design snapshots.
type History struct {
	undoStack []Snapshot
	redoStack []Snapshot
	maxDepth  int
}

// NewHistory creates a History with the default max depth of 50.
func NewHistory() *History {
	return &History{maxDepth: defaultMaxDepth}
}

// Push saves a snapshot onto the undo stack and clears the redo stack.
// This should be called before the modification is applied.
func (h *History) Push(s Snapshot) {
	h.undoStack = append(h.undoStack, s)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[len(h.undoStack)-h.maxDepth:]
	}
	h.redoStack = nil
}

// Undo pops the most recent snapshot from the undo stack and pushes
// the current state onto the redo stack. Returns the snapshot to
// restore and true, or an empty snapshot and false if nothing to undo.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if len(h.undoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, current)
	return last, true
}

// Redo pops the most recent snapshot from the redo stack and pushes
// the current state onto the undo stack. Returns the snapshot to
// restore and true, or an empty snapshot and false if nothing to redo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.redoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, current)
	return last, true
}

// CanUndo returns true if there is at least one snapshot to undo.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if there is at least one snapshot to redo.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// Clear removes all undo and redo history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

// copyGroups returns a deep copy of a group relation map.
func copyGroups(groups map[string][]engine.GroupLink) map[string][]engine.GroupLink {
	cp := make(map[string][]engine.GroupLink, len(groups))
	for id, links := range groups {
		ls := make([]engine.GroupLink, len(links))
		copy(ls, links)
		cp[id] = ls
	}
	return cp
}

// copySyncs returns a deep copy of a sync relation map.
func copySyncs(syncs map[string][]string) map[string][]string {
	cp := make(map[string][]string, len(syncs))
	for id, partners := range syncs {
		ps := make([]string, len(partners))
		copy(ps, partners)
		cp[id] = ps
	}
	return cp
}

// copyEdits returns a deep copy of an edit value map.
func copyEdits(edits map[string]map[string]float64) map[string]map[string]float64 {
	cp := make(map[string]map[string]float64, len(edits))
	for id, m := range edits {
		ms := make(map[string]float64, len(m))
		for k, v := range m {
			ms[k] = v
		}
		cp[id] = ms
	}
	return cp
}

// copyPanels returns a deep copy of a panel state map.
func copyPanels(panels map[string]*catalog.PanelState) map[string]*catalog.PanelState {
	cp := make(map[string]*catalog.PanelState, len(panels))
	for id, st := range panels {
		vals := make(map[string]float64, len(st.Values))
		for k, v := range st.Values {
			vals[k] = v
		}
		cp[id] = &catalog.PanelState{Values: vals, MaterialColor: st.MaterialColor}
	}
	return cp
}

// copyFormulas returns a deep copy of a formula map.
func copyFormulas(formulas map[string]map[string]string) map[string]map[string]string {
	cp := make(map[string]map[string]string, len(formulas))
	for viewID, byGd := range formulas {
		ms := make(map[string]string, len(byGd))
		for gdID, expr := range byGd {
			ms[gdID] = expr
		}
		cp[viewID] = ms
	}
	return cp
}
