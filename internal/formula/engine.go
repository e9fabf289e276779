// Package formula evaluates per-view dimension formulas against the
// live scene and writes changed results back through the hosting
// layer. Evaluation is pass-limited rather than locked: each recalc
// runs at most three passes and stops as soon as a pass changes
// nothing.
package formula

import (
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rodor-repo/ThreeJS-sub001/internal/catalog"
	"github.com/rodor-repo/ThreeJS-sub001/internal/model"
)

const (
	// maxPasses bounds one recalc. Formulas that feed each other
	// settle within this limit or stay where the last pass left them.
	maxPasses = 3

	// epsilon is the smallest value change worth applying, in
	// millimeters.
	epsilon = 0.1
)

// State tracks where the engine is in its evaluation cycle.
type State int

const (
	StateIdle State = iota
	StateEvaluating
	StateApplying
)

func (s State) String() string {
	switch s {
	case StateEvaluating:
		return "evaluating"
	case StateApplying:
		return "applying"
	default:
		return "idle"
	}
}

// Applier writes an evaluated GD value back to every cabinet in a
// view whose product maps that GD. The engine decides when a value
// changed; the applier owns how the write lands on cabinet state.
type Applier interface {
	ApplyGD(viewID, gdID string, value float64) error
}

type formulaKey struct {
	viewID string
	gdID   string
}

// Engine stores per-view formulas and drives their evaluation to a
// fixed point. Callers serialize access; the engine keeps no locks of
// its own beyond the evaluation state machine.
type Engine struct {
	scope   Scope
	applier Applier
	hooks   Hooks
	log     *zap.Logger

	formulas map[string]map[string]string
	lastEval map[formulaKey]time.Time
	state    State
	rejected int

	schedule func()
}

// NewEngine wires an evaluator over a scene and its value stores. A
// nil logger is replaced with a no-op logger.
func NewEngine(scene *model.Scene, values catalog.Values, applier Applier, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		scope:    Scope{Scene: scene, Values: values},
		applier:  applier,
		hooks:    NoopHooks{},
		log:      logger.Named("formula"),
		formulas: make(map[string]map[string]string),
		lastEval: make(map[formulaKey]time.Time),
	}
}

// SetHooks installs an observer. A nil value restores the no-op hooks.
func (e *Engine) SetHooks(h Hooks) {
	if h == nil {
		h = NoopHooks{}
	}
	e.hooks = h
}

// SetScheduler installs the callback that defers a recalc after a
// formula edit. Without one, edits only take effect on an explicit
// Recalc.
func (e *Engine) SetScheduler(schedule func()) {
	e.schedule = schedule
}

// SetFormula stores a formula for a view's GD and schedules a
// recomputation. An empty or whitespace formula removes the entry.
func (e *Engine) SetFormula(viewID, gdID, expr string) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		if byGd, ok := e.formulas[viewID]; ok {
			if _, ok := byGd[gdID]; ok {
				delete(byGd, gdID)
				if len(byGd) == 0 {
					delete(e.formulas, viewID)
				}
				e.hooks.OnFormulaRemoved(viewID, gdID)
			}
		}
	} else {
		byGd, ok := e.formulas[viewID]
		if !ok {
			byGd = make(map[string]string)
			e.formulas[viewID] = byGd
		}
		byGd[gdID] = expr
		e.hooks.OnFormulaSet(viewID, gdID, expr)
	}
	if e.schedule != nil {
		e.schedule()
	}
}

// Formula returns the stored formula for a view's GD.
func (e *Engine) Formula(viewID, gdID string) (string, bool) {
	expr, ok := e.formulas[viewID][gdID]
	return expr, ok
}

// State returns the engine's current evaluation state.
func (e *Engine) State() State { return e.state }

// Rejected returns how many recalc triggers were refused because an
// evaluation was already running.
func (e *Engine) Rejected() int { return e.rejected }

// LastEvaluated returns when a formula's result last landed on the
// scene.
func (e *Engine) LastEvaluated(viewID, gdID string) (time.Time, bool) {
	t, ok := e.lastEval[formulaKey{viewID, gdID}]
	return t, ok
}

// Recalc evaluates every stored formula until values settle or the
// pass limit is hit, and returns how many values were applied. A
// trigger that lands while an evaluation is running is dropped; the
// running pass will pick up any state it changed.
func (e *Engine) Recalc() int {
	if e.state != StateIdle {
		e.rejected++
		e.hooks.OnRecalcSkipped()
		e.log.Debug("recalc trigger dropped", zap.Stringer("state", e.state))
		return 0
	}
	e.state = StateEvaluating
	defer func() { e.state = StateIdle }()

	total := 0
	for pass := 1; pass <= maxPasses; pass++ {
		changes := e.runPass(pass)
		total += changes
		if changes == 0 {
			break
		}
	}
	if total > 0 {
		e.hooks.OnFormulasApplied(total)
	}
	return total
}

// runPass evaluates each (view, gd, formula) triple once in a stable
// order. A formula that fails to evaluate is skipped with a warning;
// the rest of the batch still runs.
func (e *Engine) runPass(pass int) int {
	vm := newVM(e.scope)
	changes := 0

	viewIDs := make([]string, 0, len(e.formulas))
	for viewID := range e.formulas {
		viewIDs = append(viewIDs, viewID)
	}
	sort.Strings(viewIDs)

	for _, viewID := range viewIDs {
		if !e.viewHasProducts(viewID) {
			continue
		}
		byGd := e.formulas[viewID]
		gdIDs := make([]string, 0, len(byGd))
		for gdID := range byGd {
			gdIDs = append(gdIDs, gdID)
		}
		sort.Strings(gdIDs)

		for _, gdID := range gdIDs {
			result, err := eval(vm, byGd[gdID])
			if err != nil {
				e.log.Warn("formula skipped",
					zap.String("view", viewID),
					zap.String("gd", gdID),
					zap.Error(err))
				e.hooks.OnFormulaRejected(viewID, gdID, err)
				continue
			}
			current := e.scope.ViewGd(viewID, gdID)
			if math.Abs(result-current) <= epsilon {
				continue
			}

			e.state = StateApplying
			err = e.applier.ApplyGD(viewID, gdID, result)
			e.state = StateEvaluating
			if err != nil {
				e.log.Warn("formula result not applied",
					zap.String("view", viewID),
					zap.String("gd", gdID),
					zap.Float64("value", result),
					zap.Error(err))
				e.hooks.OnFormulaRejected(viewID, gdID, err)
				continue
			}
			e.lastEval[formulaKey{viewID, gdID}] = time.Now()
			changes++
		}
	}

	e.hooks.OnPass(pass, changes)
	return changes
}

// viewHasProducts reports whether any member of the view carries
// catalog product data. Views of free-drawn cabinets have nothing a
// formula could bind to.
func (e *Engine) viewHasProducts(viewID string) bool {
	for _, c := range e.scope.Scene.InView(viewID) {
		if c.ProductID != "" {
			return true
		}
	}
	return false
}

// Snapshot returns a deep copy of the formula map. Used by design save.
func (e *Engine) Snapshot() map[string]map[string]string {
	out := make(map[string]map[string]string, len(e.formulas))
	for viewID, byGd := range e.formulas {
		cp := make(map[string]string, len(byGd))
		for gdID, expr := range byGd {
			cp[gdID] = expr
		}
		out[viewID] = cp
	}
	return out
}

// Replace swaps the formula map. Used by design load.
func (e *Engine) Replace(formulas map[string]map[string]string) {
	if formulas == nil {
		formulas = make(map[string]map[string]string)
	}
	e.formulas = formulas
}
