package formula

// Hooks receives events from the formula engine. Implementations run
// synchronously on the evaluation path and must be fast.
type Hooks interface {
	// OnFormulaSet records a stored or replaced formula.
	OnFormulaSet(viewID, gdID, expr string)

	// OnFormulaRemoved records a cleared formula.
	OnFormulaRemoved(viewID, gdID string)

	// OnRecalcSkipped records a recalc trigger that arrived while an
	// evaluation was already running.
	OnRecalcSkipped()

	// OnPass records a completed evaluation pass and how many values
	// it changed.
	OnPass(pass, changes int)

	// OnFormulasApplied fires after a recalc that changed at least one
	// value. The hosting layer uses it to schedule cohort realignment.
	OnFormulasApplied(changes int)

	// OnFormulaRejected records a formula whose result did not land,
	// either because evaluation failed or because every cabinet
	// refused the value.
	OnFormulaRejected(viewID, gdID string, err error)
}

// NoopHooks is the default observer; it ignores every event.
type NoopHooks struct{}

func (NoopHooks) OnFormulaSet(string, string, string)     {}
func (NoopHooks) OnFormulaRemoved(string, string)         {}
func (NoopHooks) OnRecalcSkipped()                        {}
func (NoopHooks) OnPass(int, int)                         {}
func (NoopHooks) OnFormulasApplied(int)                   {}
func (NoopHooks) OnFormulaRejected(string, string, error) {}
