// Package drawers balances drawer heights inside a cabinet. The last
// drawer is the dependent one: it always takes whatever height the
// independent drawers leave over, so its height is calculated, never
// edited.
package drawers

import (
	"fmt"
	"math"

	"github.com/rodor-repo/ThreeJS-sub001/internal/model"
)

// Bounds constrains a single drawer height in millimeters.
type Bounds struct {
	Min float64
	Max float64
}

// DefaultBounds returns the stock drawer height limits.
func DefaultBounds() Bounds {
	return Bounds{Min: 50, Max: 2000}
}

// Balancer recomputes drawer heights after quantity, height, and
// cabinet size changes. All heights are rounded to 0.1mm.
type Balancer struct {
	Bounds Bounds
}

// NewBalancer builds a balancer, substituting default bounds for a
// zero value.
func NewBalancer(b Bounds) *Balancer {
	if b.Min <= 0 && b.Max <= 0 {
		b = DefaultBounds()
	}
	return &Balancer{Bounds: b}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// SplitEqual divides a cabinet height into quantity equal drawer
// heights.
func (b *Balancer) SplitEqual(cabinetHeight float64, quantity int) []float64 {
	if quantity <= 0 {
		return nil
	}
	heights := make([]float64, quantity)
	each := round1(cabinetHeight / float64(quantity))
	for i := range heights {
		heights[i] = each
	}
	return heights
}

// SetQuantity resizes the drawer set to the new quantity and resets
// every height to an equal split.
func (b *Balancer) SetQuantity(set *model.DrawerSet, cabinetHeight float64, quantity int) {
	if quantity <= 0 {
		set.Enabled = false
		set.Quantity = 0
		set.Heights = nil
		return
	}
	set.Enabled = true
	set.Quantity = quantity
	set.Heights = b.SplitEqual(cabinetHeight, quantity)
}

// EditHeight sets drawer k to height h and rebalances the rest: other
// independent drawers take an equal share of what remains, floored at
// the minimum, and the dependent last drawer absorbs the residual.
//
// The edit is validated before anything changes. Editing the dependent
// drawer itself is rejected, as is any edit that would push the
// dependent drawer outside its bounds.
func (b *Balancer) EditHeight(set *model.DrawerSet, cabinetHeight float64, k int, h float64) error {
	q := set.Quantity
	if !set.Enabled || q < 1 {
		return model.NewValidationError("Cannot edit drawer height: drawers are not enabled")
	}
	if k < 0 || k >= q {
		return model.NewValidationError(fmt.Sprintf("Cannot edit drawer %d: cabinet has %d drawers", k+1, q))
	}
	if k == q-1 {
		return model.NewValidationError("Cannot edit the last drawer: its height is calculated from the others")
	}

	heights := set.Heights
	if len(heights) != q {
		heights = b.SplitEqual(cabinetHeight, q)
	}

	share := (cabinetHeight - h) / float64(q-1)
	next := make([]float64, q)
	copy(next, heights)
	next[k] = round1(h)

	othersTotal := 0.0
	for i := 0; i < q-1; i++ {
		if i == k {
			continue
		}
		next[i] = round1(max(share, b.Bounds.Min))
		othersTotal += next[i]
	}

	dependent := round1(cabinetHeight - next[k] - othersTotal)
	if dependent < b.Bounds.Min {
		return model.NewValidationError(fmt.Sprintf(
			"Cannot increase height: last drawer would be too small (min %.0fmm)", b.Bounds.Min))
	}
	if dependent > b.Bounds.Max {
		return model.NewValidationError(fmt.Sprintf(
			"Cannot decrease height: last drawer would be too large (max %.0fmm)", b.Bounds.Max))
	}
	next[q-1] = dependent

	set.Heights = next
	return nil
}

// Rescale adapts drawer heights to a new cabinet height, scaling
// existing non-zero heights proportionally. If the scaled heights no
// longer fit it falls back to an equal split.
func (b *Balancer) Rescale(set *model.DrawerSet, oldHeight, newHeight float64) {
	if !set.Enabled || set.Quantity < 1 {
		return
	}
	if oldHeight <= 0 || len(set.Heights) != set.Quantity {
		set.Heights = b.SplitEqual(newHeight, set.Quantity)
		return
	}

	ratio := newHeight / oldHeight
	total := 0.0
	for i, h := range set.Heights {
		if h > 0 {
			set.Heights[i] = round1(h * ratio)
		}
		total += set.Heights[i]
	}
	if total > newHeight+0.5 {
		set.Heights = b.SplitEqual(newHeight, set.Quantity)
	}
}

// Dependent reports the index of the calculated drawer, or -1 when the
// set has no drawers.
func Dependent(set model.DrawerSet) int {
	if !set.Enabled || set.Quantity < 1 {
		return -1
	}
	return set.Quantity - 1
}
