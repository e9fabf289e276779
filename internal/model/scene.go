package model

import "sort"

// Room bounds the scene. Width runs along the wall, Height up from the
// floor. Both mm.
type Room struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Scene holds every cabinet in the design together with the room they
// stand in. Views are not stored anywhere: a view is simply the set of
// cabinets sharing a ViewID at the moment of asking.
type Scene struct {
	Room     Room       `json:"room"`
	Cabinets []*Cabinet `json:"cabinets"`
}

// NewScene creates an empty scene with the given room size.
func NewScene(roomWidth, roomHeight float64) *Scene {
	return &Scene{
		Room:     Room{Width: roomWidth, Height: roomHeight},
		Cabinets: []*Cabinet{},
	}
}

// Add appends a cabinet to the scene.
func (s *Scene) Add(c *Cabinet) {
	s.Cabinets = append(s.Cabinets, c)
}

// Find returns the cabinet with the given id, or nil.
func (s *Scene) Find(id string) *Cabinet {
	for _, c := range s.Cabinets {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Remove deletes the cabinet with the given id along with every
// attachment that names it as parent. Returns the removed ids, or nil
// if the id was not present.
func (s *Scene) Remove(id string) []string {
	if s.Find(id) == nil {
		return nil
	}

	doomed := map[string]bool{id: true}
	// Attachments of attachments are possible (a benchtop hosting an
	// under panel), so expand until stable.
	for {
		grew := false
		for _, c := range s.Cabinets {
			if doomed[c.ID] {
				continue
			}
			if c.Type.DependsOnParent() && c.ParentID != "" && doomed[c.ParentID] {
				doomed[c.ID] = true
				grew = true
			}
		}
		if !grew {
			break
		}
	}

	var removed []string
	kept := s.Cabinets[:0]
	for _, c := range s.Cabinets {
		if doomed[c.ID] {
			removed = append(removed, c.ID)
		} else {
			kept = append(kept, c)
		}
	}
	s.Cabinets = kept
	return removed
}

// InView returns the cabinets belonging to the given view. The "none"
// pseudo view always yields an empty cohort.
func (s *Scene) InView(viewID string) []*Cabinet {
	if viewID == "" || viewID == ViewNone {
		return nil
	}
	var members []*Cabinet
	for _, c := range s.Cabinets {
		if c.ViewID == viewID {
			members = append(members, c)
		}
	}
	return members
}

// ViewIDs returns the sorted set of view ids present in the scene,
// excluding "none".
func (s *Scene) ViewIDs() []string {
	seen := map[string]bool{}
	for _, c := range s.Cabinets {
		if c.InView() {
			seen[c.ViewID] = true
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Children returns the attachments whose ParentID is the given id.
func (s *Scene) Children(id string) []*Cabinet {
	var kids []*Cabinet
	for _, c := range s.Cabinets {
		if c.ParentID == id {
			kids = append(kids, c)
		}
	}
	return kids
}

// Clone returns a deep copy of the scene.
func (s *Scene) Clone() *Scene {
	cp := &Scene{
		Room:     s.Room,
		Cabinets: make([]*Cabinet, len(s.Cabinets)),
	}
	for i, c := range s.Cabinets {
		cp.Cabinets[i] = c.Clone()
	}
	return cp
}
