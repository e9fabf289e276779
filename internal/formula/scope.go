package formula

import (
	"fmt"
	"math"

	"github.com/dop251/goja"

	"github.com/rodor-repo/ThreeJS-sub001/internal/catalog"
	"github.com/rodor-repo/ThreeJS-sub001/internal/model"
)

// Scope is the read-only data surface a formula can see. Every
// resolver degrades to 0 when the requested data is missing, so a
// formula over an incomplete scene still yields a number.
type Scope struct {
	Scene  *model.Scene
	Values catalog.Values
}

// Cab resolves a cabinet field: position, dimension, edge, or a
// type-specific virtual field such as an appliance's visual width.
func (s Scope) Cab(id, field string) float64 {
	c := s.Scene.Find(id)
	if c == nil {
		return 0
	}
	v, _ := c.Field(field)
	return v
}

// Dim resolves the live value of a cabinet's GD: edits first, then
// saved panel state, then the catalog default.
func (s Scope) Dim(id, gdID string) float64 {
	c := s.Scene.Find(id)
	if c == nil {
		return 0
	}
	v, _ := s.Values.Resolve(c.ID, c.ProductID, gdID)
	return v
}

// ViewGd resolves a GD across a view: the first member cabinet with a
// visible catalog entry for the GD supplies the value.
func (s Scope) ViewGd(viewID, gdID string) float64 {
	v, _ := s.viewGd(viewID, gdID)
	return v
}

func (s Scope) viewGd(viewID, gdID string) (float64, bool) {
	if s.Values.Registry == nil {
		return 0, false
	}
	for _, c := range s.Scene.InView(viewID) {
		if c.ProductID == "" {
			continue
		}
		p, ok := s.Values.Registry.Get(c.ProductID)
		if !ok {
			continue
		}
		entry, ok := p.Dims[gdID]
		if !ok || !entry.Visible {
			continue
		}
		return s.Values.Resolve(c.ID, c.ProductID, gdID)
	}
	return 0, false
}

// newVM builds a fresh runtime with the scope's resolvers bound as
// host functions. A new VM per recalc keeps formulas from smuggling
// state between evaluations.
func newVM(s Scope) *goja.Runtime {
	vm := goja.New()
	vm.Set("cab", s.Cab)
	vm.Set("dim", s.Dim)
	vm.Set("viewGd", s.ViewGd)
	return vm
}

// eval runs one formula and normalizes the result to a finite number.
func eval(vm *goja.Runtime, expr string) (float64, error) {
	val, err := vm.RunString(expr)
	if err != nil {
		if ex, ok := err.(*goja.Exception); ok {
			return 0, fmt.Errorf("formula: %s", ex.String())
		}
		return 0, fmt.Errorf("formula: %w", err)
	}
	f := val.ToFloat()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("formula: result %q is not a finite number", val.String())
	}
	return f, nil
}
