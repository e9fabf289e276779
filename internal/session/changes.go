package session

import (
	"fmt"
	"strings"

	"github.com/rodor-repo/ThreeJS-sub001/internal/model"
)

// CabinetChange describes what happened to one cabinet between two
// scene states.
type CabinetChange struct {
	ID       string
	Name     string
	FromPos  model.Position
	ToPos    model.Position
	FromDims model.Dimensions
	ToDims   model.Dimensions
}

// ChangeReport summarizes the scene differences an operation produced.
// A cabinet that both moved and resized appears in both lists.
type ChangeReport struct {
	Added   []CabinetChange
	Removed []CabinetChange
	Moved   []CabinetChange
	Resized []CabinetChange
}

// Empty reports whether the two scenes match.
func (r ChangeReport) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 &&
		len(r.Moved) == 0 && len(r.Resized) == 0
}

// Summary renders a one-line account of the report.
func (r ChangeReport) Summary() string {
	if r.Empty() {
		return "no changes"
	}
	var parts []string
	if n := len(r.Added); n > 0 {
		parts = append(parts, fmt.Sprintf("%d added", n))
	}
	if n := len(r.Removed); n > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", n))
	}
	if n := len(r.Moved); n > 0 {
		parts = append(parts, fmt.Sprintf("%d moved", n))
	}
	if n := len(r.Resized); n > 0 {
		parts = append(parts, fmt.Sprintf("%d resized", n))
	}
	return strings.Join(parts, ", ")
}

const changeTolerance = 0.05

func positionsDiffer(a, b model.Position) bool {
	return abs(a.X-b.X) > changeTolerance ||
		abs(a.Y-b.Y) > changeTolerance ||
		abs(a.Z-b.Z) > changeTolerance
}

func dimensionsDiffer(a, b model.Dimensions) bool {
	return abs(a.Width-b.Width) > changeTolerance ||
		abs(a.Height-b.Height) > changeTolerance ||
		abs(a.Depth-b.Depth) > changeTolerance
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// CompareScenes diffs two scene states cabinet by cabinet. Pass a
// clone taken before an operation and the live scene after it.
func CompareScenes(before, after *model.Scene) ChangeReport {
	var report ChangeReport

	prior := make(map[string]*model.Cabinet, len(before.Cabinets))
	for _, c := range before.Cabinets {
		prior[c.ID] = c
	}

	for _, c := range after.Cabinets {
		was, ok := prior[c.ID]
		if !ok {
			report.Added = append(report.Added, CabinetChange{
				ID: c.ID, Name: c.Name,
				ToPos: c.Position, ToDims: c.Dimensions,
			})
			continue
		}
		delete(prior, c.ID)

		change := CabinetChange{
			ID: c.ID, Name: c.Name,
			FromPos: was.Position, ToPos: c.Position,
			FromDims: was.Dimensions, ToDims: c.Dimensions,
		}
		if positionsDiffer(was.Position, c.Position) {
			report.Moved = append(report.Moved, change)
		}
		if dimensionsDiffer(was.Dimensions, c.Dimensions) {
			report.Resized = append(report.Resized, change)
		}
	}

	for _, was := range before.Cabinets {
		if _, stillGone := prior[was.ID]; stillGone {
			report.Removed = append(report.Removed, CabinetChange{
				ID: was.ID, Name: was.Name,
				FromPos: was.Position, FromDims: was.Dimensions,
			})
		}
	}

	return report
}

// ChangesSince diffs the live scene against an earlier clone.
func (s *Session) ChangesSince(before *model.Scene) ChangeReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CompareScenes(before, s.scene)
}

// SceneSnapshot returns a deep copy of the live scene for diffing
// around an operation.
func (s *Session) SceneSnapshot() *model.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene.Clone()
}
