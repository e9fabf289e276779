package session

import (
	"github.com/rodor-repo/ThreeJS-sub001/internal/model"
	"github.com/rodor-repo/ThreeJS-sub001/internal/project"
)

// CaptureDesign snapshots the session into a saveable design.
func (s *Session) CaptureDesign(name string) project.Design {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.makeSnapshot(name)
	d := project.NewDesign(name)
	d.Room = snap.Scene.Room
	d.Cabinets = snap.Scene.Cabinets
	d.Groups = snap.Groups
	d.Syncs = snap.Syncs
	d.Formulas = snap.Formulas
	d.Edits = snap.Edits
	d.Panels = snap.Panels
	return d
}

// RestoreDesign replaces the whole session state with a loaded design.
// The undo history and selection are cleared; a zero room falls back
// to the configured default size.
func (s *Session) RestoreDesign(d project.Design) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := d.Room
	if room.Width <= 0 || room.Height <= 0 {
		room = model.Room{Width: s.cfg.DefaultRoomWidth, Height: s.cfg.DefaultRoomHeight}
	}
	snap := Snapshot{
		Scene:    &model.Scene{Room: room, Cabinets: d.Cabinets},
		Groups:   d.Groups,
		Syncs:    d.Syncs,
		Edits:    d.Edits,
		Panels:   d.Panels,
		Formulas: d.Formulas,
		Label:    d.Name,
	}
	s.restore(snap)
	s.history.Clear()
	s.selection = make(map[string]bool)
}
