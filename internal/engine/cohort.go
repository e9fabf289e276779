package engine

import "github.com/rodor-repo/ThreeJS-sub001/internal/model"

// MoveView translates every cabinet in a view by the same delta,
// skipping ids in exclude (cabinets already placed by group or sync
// resolution for the same event). Wall mounted cabinets clamp to the
// room on both axes; floor standing cabinets clamp horizontally and
// keep their vertical anchor. Returns the ids that were moved.
func (d *Distributor) MoveView(viewID string, dx, dy float64, exclude map[string]bool) []string {
	if viewID == "" || viewID == model.ViewNone {
		return nil
	}
	var moved []string
	for _, c := range d.Scene.InView(viewID) {
		if exclude[c.ID] {
			continue
		}
		c.Position.X = clampAxis(c.Position.X+dx, c.Dimensions.Width, d.Scene.Room.Width)
		if c.Type.WallMounted() {
			c.Position.Y = clampAxis(c.Position.Y+dy, c.Dimensions.Height, d.Scene.Room.Height)
		}
		moved = append(moved, c.ID)
	}
	return moved
}

// clampAxis keeps [pos, pos+size] inside [0, limit]. A zero limit
// means the room dimension is unset and only the lower bound applies.
func clampAxis(pos, size, limit float64) float64 {
	if limit > 0 && pos+size > limit {
		pos = limit - size
	}
	if pos < 0 {
		pos = 0
	}
	return pos
}
