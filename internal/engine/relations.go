package engine

import (
	"sort"
	"sync"
)

// GroupLink ties a cabinet to a partner that receives a share of its
// width changes.
type GroupLink struct {
	CabinetID string  `json:"cabinet_id"`
	Percent   float64 `json:"percent"`
}

// GroupStore holds the proportional pairing relation. Links are
// directional per cabinet but pairing always creates both directions.
// After every mutation the percentages on each side sum to exactly 100.
type GroupStore struct {
	mu    sync.RWMutex
	links map[string][]GroupLink
}

// NewGroupStore creates an empty group store.
func NewGroupStore() *GroupStore {
	return &GroupStore{links: make(map[string][]GroupLink)}
}

// Pair links a and b in both directions. A new partner enters with an
// equal share; existing partners keep their relative proportions.
func (g *GroupStore) Pair(a, b string) {
	if a == b || a == "" || b == "" {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addLink(a, b)
	g.addLink(b, a)
}

func (g *GroupStore) addLink(owner, partner string) {
	links := g.links[owner]
	for _, l := range links {
		if l.CabinetID == partner {
			return
		}
	}
	links = append(links, GroupLink{CabinetID: partner})
	g.links[owner] = normalizeEqualNewcomer(links)
}

// normalizeEqualNewcomer gives the last link (the newcomer, at percent
// 0) an equal slice and rescales the rest proportionally so the sum is
// exactly 100.
func normalizeEqualNewcomer(links []GroupLink) []GroupLink {
	n := len(links)
	if n == 0 {
		return links
	}
	if n == 1 {
		links[0].Percent = 100
		return links
	}
	newcomerShare := 100.0 / float64(n)
	oldSum := 0.0
	for _, l := range links[:n-1] {
		oldSum += l.Percent
	}
	remaining := 100 - newcomerShare
	runningSum := 0.0
	for i := range links[:n-1] {
		if oldSum > 0 {
			links[i].Percent = links[i].Percent / oldSum * remaining
		} else {
			links[i].Percent = remaining / float64(n-1)
		}
		runningSum += links[i].Percent
	}
	links[n-1].Percent = 100 - runningSum
	return links
}

// Unpair removes the link between a and b in both directions and
// renormalizes what remains on each side.
func (g *GroupStore) Unpair(a, b string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.removeLink(a, b)
	g.removeLink(b, a)
}

func (g *GroupStore) removeLink(owner, partner string) {
	links := g.links[owner]
	for i, l := range links {
		if l.CabinetID == partner {
			links = append(links[:i], links[i+1:]...)
			break
		}
	}
	if len(links) == 0 {
		delete(g.links, owner)
		return
	}
	g.links[owner] = renormalize(links)
}

// renormalize rescales percentages proportionally to sum exactly 100.
func renormalize(links []GroupLink) []GroupLink {
	sum := 0.0
	for _, l := range links {
		sum += l.Percent
	}
	if sum <= 0 {
		equal := 100.0 / float64(len(links))
		running := 0.0
		for i := range links[:len(links)-1] {
			links[i].Percent = equal
			running += equal
		}
		links[len(links)-1].Percent = 100 - running
		return links
	}
	running := 0.0
	for i := range links[:len(links)-1] {
		links[i].Percent = links[i].Percent / sum * 100
		running += links[i].Percent
	}
	links[len(links)-1].Percent = 100 - running
	return links
}

// SetPercent pins one partner's share and rescales the others to fill
// the remainder, keeping the sum at exactly 100.
func (g *GroupStore) SetPercent(owner, partner string, percent float64) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	links := g.links[owner]
	idx := -1
	for i, l := range links {
		if l.CabinetID == partner {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	if len(links) == 1 {
		links[0].Percent = 100
		return
	}

	links[idx].Percent = percent
	remaining := 100 - percent
	otherSum := 0.0
	for i, l := range links {
		if i != idx {
			otherSum += l.Percent
		}
	}
	lastOther := -1
	running := 0.0
	for i := range links {
		if i == idx {
			continue
		}
		lastOther = i
	}
	for i := range links {
		if i == idx || i == lastOther {
			continue
		}
		if otherSum > 0 {
			links[i].Percent = links[i].Percent / otherSum * remaining
		} else {
			links[i].Percent = remaining / float64(len(links)-1)
		}
		running += links[i].Percent
	}
	links[lastOther].Percent = remaining - running
}

// Links returns a copy of the group links for a cabinet.
func (g *GroupStore) Links(id string) []GroupLink {
	g.mu.RLock()
	defer g.mu.RUnlock()
	links := g.links[id]
	if links == nil {
		return nil
	}
	cp := make([]GroupLink, len(links))
	copy(cp, links)
	return cp
}

// Clear removes a cabinet from the relation entirely, dropping both its
// own links and every reverse link pointing at it.
func (g *GroupStore) Clear(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.links, id)
	for owner, links := range g.links {
		for i, l := range links {
			if l.CabinetID == id {
				links = append(links[:i], links[i+1:]...)
				break
			}
		}
		if len(links) == 0 {
			delete(g.links, owner)
		} else {
			g.links[owner] = renormalize(links)
		}
	}
}

// Snapshot returns a deep copy of the relation. Used by design save.
func (g *GroupStore) Snapshot() map[string][]GroupLink {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make(map[string][]GroupLink, len(g.links))
	for id, links := range g.links {
		cp := make([]GroupLink, len(links))
		copy(cp, links)
		out[id] = cp
	}
	return out
}

// Replace swaps the relation content. Used by design load.
func (g *GroupStore) Replace(links map[string][]GroupLink) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if links == nil {
		links = make(map[string][]GroupLink)
	}
	g.links = links
}

// SyncStore holds the bidirectional sync relation: flat unordered
// membership between cabinets whose widths resize as one span.
type SyncStore struct {
	mu      sync.RWMutex
	members map[string]map[string]bool
}

// NewSyncStore creates an empty sync store.
func NewSyncStore() *SyncStore {
	return &SyncStore{members: make(map[string]map[string]bool)}
}

// Link joins a and b into the sync relation.
func (s *SyncStore) Link(a, b string) {
	if a == b || a == "" || b == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.members[a] == nil {
		s.members[a] = make(map[string]bool)
	}
	if s.members[b] == nil {
		s.members[b] = make(map[string]bool)
	}
	s.members[a][b] = true
	s.members[b][a] = true
}

// Unlink removes the tie between a and b.
func (s *SyncStore) Unlink(a, b string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.members[a], b)
	delete(s.members[b], a)
	if len(s.members[a]) == 0 {
		delete(s.members, a)
	}
	if len(s.members[b]) == 0 {
		delete(s.members, b)
	}
}

// Linked reports whether a and b are synced.
func (s *SyncStore) Linked(a, b string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.members[a][b]
}

// Members returns the sorted ids synced with the given cabinet, not
// including the cabinet itself.
func (s *SyncStore) Members(id string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := s.members[id]
	if len(set) == 0 {
		return nil
	}
	ids := make([]string, 0, len(set))
	for m := range set {
		ids = append(ids, m)
	}
	sort.Strings(ids)
	return ids
}

// Clear removes a cabinet from the relation entirely.
func (s *SyncStore) Clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for partner := range s.members[id] {
		delete(s.members[partner], id)
		if len(s.members[partner]) == 0 {
			delete(s.members, partner)
		}
	}
	delete(s.members, id)
}

// Snapshot returns the relation as sorted partner lists. Used by design save.
func (s *SyncStore) Snapshot() map[string][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]string, len(s.members))
	for id, set := range s.members {
		ids := make([]string, 0, len(set))
		for m := range set {
			ids = append(ids, m)
		}
		sort.Strings(ids)
		out[id] = ids
	}
	return out
}

// Replace swaps the relation content. Used by design load.
func (s *SyncStore) Replace(links map[string][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = make(map[string]map[string]bool, len(links))
	for id, partners := range links {
		for _, p := range partners {
			if s.members[id] == nil {
				s.members[id] = make(map[string]bool)
			}
			if s.members[p] == nil {
				s.members[p] = make(map[string]bool)
			}
			s.members[id][p] = true
			s.members[p][id] = true
		}
	}
}
