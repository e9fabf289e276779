package session

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/rodor-repo/ThreeJS-sub001/internal/catalog"
	"github.com/rodor-repo/ThreeJS-sub001/internal/engine"
	"github.com/rodor-repo/ThreeJS-sub001/internal/model"
)

// applyGD writes an evaluated GD value onto every cabinet in the view
// whose product maps that GD to a role. Cabinets that reject the value
// are skipped; the write only counts as failed when no cabinet took
// it. Runs under the session lock via the formula engine.
func (s *Session) applyGD(viewID, gdID string, value float64) error {
	applied := 0
	var firstErr error
	for _, c := range s.scene.InView(viewID) {
		if c.ProductID == "" {
			continue
		}
		p, ok := s.registry.Get(c.ProductID)
		if !ok {
			continue
		}
		role, ok := p.RoleOf(gdID)
		if !ok {
			continue
		}
		ok, err := s.applyRoleValue(c, role, value)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			s.log.Warn("gd value rejected",
				zap.String("cabinet", c.ID),
				zap.String("gd", gdID),
				zap.Float64("value", value),
				zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		s.edits.Set(c.ID, gdID, value)
		applied++
	}
	if applied == 0 && firstErr != nil {
		return firstErr
	}
	return nil
}

// applyRoleValue lands a value on the cabinet aspect the role names.
// Returns whether the value was applied; a false with nil error means
// the write was deliberately suppressed.
func (s *Session) applyRoleValue(c *model.Cabinet, role catalog.GDRole, value float64) (bool, error) {
	switch role {
	case catalog.RoleWidth:
		placement, err := engine.AnchorWidth(c, value)
		if err != nil {
			return false, err
		}
		placement.Apply(c)
	case catalog.RoleHeight:
		if value <= 0 {
			return false, model.NewValidationError("Cannot resize: height must be greater than zero")
		}
		oldHeight := c.Dimensions.Height
		c.Dimensions.Height = value
		s.balancer.Rescale(&c.Drawers, oldHeight, value)
	case catalog.RoleDepth:
		if value <= 0 {
			return false, model.NewValidationError("Cannot resize: depth must be greater than zero")
		}
		c.Dimensions.Depth = value
	case catalog.RoleDoorOverhang:
		c.DoorOverhang = value
	case catalog.RoleDoorQty:
		c.Doors = int(math.Round(value))
	case catalog.RoleShelfQty:
		c.Shelves = int(math.Round(value))
	case catalog.RoleDrawerQty:
		s.balancer.SetQuantity(&c.Drawers, c.Dimensions.Height, int(math.Round(value)))
	default:
		k, ok := role.DrawerIndex()
		if !ok {
			return false, fmt.Errorf("session: unknown dimension role %q", role)
		}
		if c.Drawers.Editing {
			// The user is typing in this cabinet's drawer fields;
			// formula results wait for the next recalc.
			return false, nil
		}
		if err := s.balancer.EditHeight(&c.Drawers, c.Dimensions.Height, k, value); err != nil {
			return false, err
		}
	}
	return true, nil
}
