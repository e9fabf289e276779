// Package engine resolves cabinet dimension edits against the scene:
// lock-aware anchoring, proportional group distribution, synced span
// resizing, and whole-view cohort movement.
package engine

import (
	"errors"

	"github.com/rodor-repo/ThreeJS-sub001/internal/model"
)

// ErrBothLocked signals a width edit on a cabinet with both edges locked.
var ErrBothLocked = errors.New("engine: both edges locked")

// ErrBadWidth signals a zero or negative target width.
var ErrBadWidth = errors.New("engine: width must be positive")

// Placement is the resolved geometry for one cabinet width edit. DX is
// the left edge displacement; callers use it to shift attachments that
// ride along with the cabinet.
type Placement struct {
	X     float64
	Width float64
	DX    float64
}

// AnchorWidth computes where a cabinet lands after a width change,
// honoring its edge locks. Pure geometry: the cabinet is not mutated.
//
// A locked left edge pins x; a locked right edge pins x+width; with no
// lock the resize is symmetric about the old center. Both edges locked
// rejects the edit. The resulting x is floor-clamped at 0; there is no
// upper clamp because a cabinet may extend past the wall, which the
// hosting layer resolves by widening the wall.
func AnchorWidth(c *model.Cabinet, newWidth float64) (Placement, error) {
	if newWidth <= 0 {
		return Placement{}, &model.ValidationError{
			Reason: "Cannot resize: width must be greater than zero",
			Err:    ErrBadWidth,
		}
	}
	if c.LeftLock && c.RightLock {
		return Placement{}, &model.ValidationError{
			Reason: "Cannot resize: both edges are locked",
			Err:    ErrBothLocked,
		}
	}

	var x float64
	switch {
	case c.LeftLock:
		x = c.Position.X
	case c.RightLock:
		x = c.Right() - newWidth
	default:
		x = c.CenterX() - newWidth/2
	}

	if x < 0 {
		x = 0
	}

	return Placement{X: x, Width: newWidth, DX: x - c.Position.X}, nil
}

// Apply writes the resolved placement onto the cabinet.
func (p Placement) Apply(c *model.Cabinet) {
	c.Position.X = p.X
	c.Dimensions.Width = p.Width
}
