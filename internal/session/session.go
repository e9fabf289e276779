// Package session owns the live editing state: the scene, the value
// stores, the relation maps, and the evaluation machinery that reacts
// to edits. Every public method serializes on one mutex; the debounce
// timers re-enter through the same lock, so mutation stays
// single-threaded the way a UI event loop would drive it.
package session

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rodor-repo/ThreeJS-sub001/internal/catalog"
	"github.com/rodor-repo/ThreeJS-sub001/internal/drawers"
	"github.com/rodor-repo/ThreeJS-sub001/internal/engine"
	"github.com/rodor-repo/ThreeJS-sub001/internal/formula"
	"github.com/rodor-repo/ThreeJS-sub001/internal/model"
)

// Session is the live design being edited.
type Session struct {
	mu sync.Mutex

	scene    *model.Scene
	registry *catalog.Registry
	edits    *catalog.EditStore
	panels   *catalog.PanelStore
	groups   *engine.GroupStore
	syncs    *engine.SyncStore

	dist     *engine.Distributor
	balancer *drawers.Balancer
	eng      *formula.Engine
	sched    *formula.Scheduler
	history  *History

	selection map[string]bool
	cfg       model.AppConfig
	log       *zap.Logger
}

// gdApplier lets the formula engine write values back through the
// session without re-locking; the engine only runs under the session
// lock.
type gdApplier struct{ s *Session }

func (a gdApplier) ApplyGD(viewID, gdID string, value float64) error {
	return a.s.applyGD(viewID, gdID, value)
}

// engineHooks schedules cohort realignment whenever a recalc lands
// changed values.
type engineHooks struct {
	formula.NoopHooks
	s *Session
}

func (h engineHooks) OnFormulasApplied(int) { h.s.sched.Realign() }

// New builds a session over the given catalog with an empty scene
// sized from the config. A nil logger is replaced with a no-op logger.
func New(cfg model.AppConfig, registry *catalog.Registry, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultRoomWidth <= 0 || cfg.DefaultRoomHeight <= 0 {
		cfg = model.DefaultAppConfig()
	}
	if registry == nil {
		registry = catalog.NewRegistry(logger)
	}

	s := &Session{
		scene:     model.NewScene(cfg.DefaultRoomWidth, cfg.DefaultRoomHeight),
		registry:  registry,
		edits:     catalog.NewEditStore(),
		panels:    catalog.NewPanelStore(),
		groups:    engine.NewGroupStore(),
		syncs:     engine.NewSyncStore(),
		history:   NewHistory(),
		selection: make(map[string]bool),
		cfg:       cfg,
		log:       logger.Named("session"),
	}
	s.dist = engine.NewDistributor(s.scene, s.groups, s.syncs, logger)
	s.balancer = drawers.NewBalancer(drawers.Bounds{
		Min: cfg.DrawerMinHeight,
		Max: cfg.DrawerMaxHeight,
	})

	values := catalog.Values{Registry: registry, Edits: s.edits, Panels: s.panels}
	s.eng = formula.NewEngine(s.scene, values, gdApplier{s}, logger)
	s.eng.SetHooks(engineHooks{s: s})
	s.sched = formula.NewScheduler(
		time.Duration(cfg.RecalcDelayMS)*time.Millisecond,
		time.Duration(cfg.RealignDelayMS)*time.Millisecond,
		s.recalcNow, s.realignNow)
	s.eng.SetScheduler(s.sched.Recalc)
	return s
}

// Close cancels the pending debounce triggers.
func (s *Session) Close() {
	s.sched.Close()
}

// Scene returns the live scene. Callers treat it as read-only;
// mutations go through session methods.
func (s *Session) Scene() *model.Scene { return s.scene }

// Config returns the session's settings.
func (s *Session) Config() model.AppConfig { return s.cfg }

// Values returns the resolver over the session's value stores.
func (s *Session) Values() catalog.Values {
	return catalog.Values{Registry: s.registry, Edits: s.edits, Panels: s.panels}
}

func (s *Session) recalcNow() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eng.Recalc()
}

func (s *Session) realignNow() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, viewID := range s.scene.ViewIDs() {
		s.realignView(viewID)
	}
	s.sched.Recalc()
}

// Recalc runs a formula evaluation immediately and returns how many
// values changed.
func (s *Session) Recalc() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Recalc()
}

// Realign packs every view's rows immediately.
func (s *Session) Realign() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, viewID := range s.scene.ViewIDs() {
		s.realignView(viewID)
	}
}

// realignView closes the gaps a round of width changes left behind:
// floor and wall rows are packed separately, each keeping its leftmost
// edge and original order. Attachments follow their parents and are
// not packed.
func (s *Session) realignView(viewID string) {
	var floor, wall []*model.Cabinet
	for _, c := range s.scene.InView(viewID) {
		if c.ParentID != "" {
			continue
		}
		if c.Type.WallMounted() {
			wall = append(wall, c)
		} else {
			floor = append(floor, c)
		}
	}
	packRow(floor)
	packRow(wall)
}

func packRow(row []*model.Cabinet) {
	if len(row) < 2 {
		return
	}
	sort.SliceStable(row, func(a, b int) bool {
		return row[a].Position.X < row[b].Position.X
	})
	right := row[0].Right()
	for _, c := range row[1:] {
		c.Position.X = right
		right = c.Right()
	}
}

// makeSnapshot deep-copies the current editable state.
func (s *Session) makeSnapshot(label string) Snapshot {
	return Snapshot{
		Scene:    s.scene.Clone(),
		Groups:   s.groups.Snapshot(),
		Syncs:    s.syncs.Snapshot(),
		Edits:    s.edits.Snapshot(),
		Panels:   s.panels.Snapshot(),
		Formulas: s.eng.Snapshot(),
		Label:    label,
	}
}

func (s *Session) pushHistory(label string) {
	s.history.Push(s.makeSnapshot(label))
}

// restore installs a snapshot. The scene object is mutated in place so
// the distributor and formula engine keep their reference; the stores
// receive fresh copies so the history entry stays pristine.
func (s *Session) restore(snap Snapshot) {
	clone := snap.Scene.Clone()
	s.scene.Room = clone.Room
	s.scene.Cabinets = clone.Cabinets

	s.groups.Replace(copyGroups(snap.Groups))
	s.syncs.Replace(copySyncs(snap.Syncs))
	s.edits.Replace(copyEdits(snap.Edits))
	s.panels.Replace(copyPanels(snap.Panels))
	s.eng.Replace(copyFormulas(snap.Formulas))

	for id := range s.selection {
		if s.scene.Find(id) == nil {
			delete(s.selection, id)
		}
	}
	s.sched.Recalc()
}

// Undo reverts the most recent operation. Returns false when there is
// nothing to undo.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.history.Undo(s.makeSnapshot("current"))
	if !ok {
		return false
	}
	s.restore(snap)
	return true
}

// Redo reapplies the most recently undone operation.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.history.Redo(s.makeSnapshot("current"))
	if !ok {
		return false
	}
	s.restore(snap)
	return true
}

// CanUndo reports whether an undo step exists.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

// CanRedo reports whether a redo step exists.
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// AddCabinet creates a typed cabinet in a view, placed flush to the
// right of the view's current members.
func (s *Session) AddCabinet(t model.CabinetType, viewID string) *model.Cabinet {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushHistory("Add " + t.String())
	return s.addCabinet(t, viewID)
}

func (s *Session) addCabinet(t model.CabinetType, viewID string) *model.Cabinet {
	c := model.NewTypedCabinet(t)
	c.ViewID = viewID
	rightEdge := 0.0
	for _, member := range s.scene.InView(viewID) {
		if member.Type.WallMounted() == t.WallMounted() && member.Right() > rightEdge {
			rightEdge = member.Right()
		}
	}
	c.Position.X = rightEdge
	s.scene.Add(c)
	s.sched.Recalc()
	return c
}

// AddProductCabinet creates a cabinet bound to a catalog product,
// dimensioned from the product's defaults. Dimension roles land before
// the drawer roles so drawer splits see the final height.
func (s *Session) AddProductCabinet(t model.CabinetType, viewID, productID string) (*model.Cabinet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.registry.Get(productID)
	if !ok {
		return nil, fmt.Errorf("session: unknown product %q", productID)
	}
	s.pushHistory("Add " + p.Name)

	c := s.addCabinet(t, viewID)
	c.ProductID = productID
	c.Name = p.Name
	for _, role := range orderedRoles() {
		gdID, ok := p.GDForRole(role)
		if !ok {
			continue
		}
		entry, ok := p.Dims[gdID]
		if !ok {
			continue
		}
		s.applyRoleValue(c, role, entry.Default)
	}
	return c, nil
}

// orderedRoles lists every role in apply order.
func orderedRoles() []catalog.GDRole {
	roles := []catalog.GDRole{
		catalog.RoleWidth, catalog.RoleHeight, catalog.RoleDepth,
		catalog.RoleDoorOverhang, catalog.RoleDoorQty,
		catalog.RoleShelfQty, catalog.RoleDrawerQty,
	}
	for i := 0; ; i++ {
		role, ok := catalog.RoleForDrawer(i)
		if !ok {
			break
		}
		roles = append(roles, role)
	}
	return roles
}

// RemoveCabinet deletes a cabinet and its attachments, dropping their
// relations, selections, and stored values.
func (s *Session) RemoveCabinet(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scene.Find(id) == nil {
		return fmt.Errorf("session: no cabinet %q", id)
	}
	s.pushHistory("Remove cabinet")

	for _, removed := range s.scene.Remove(id) {
		s.groups.Clear(removed)
		s.syncs.Clear(removed)
		s.edits.Clear(removed)
		s.panels.Remove(removed)
		delete(s.selection, removed)
	}
	s.sched.Recalc()
	return nil
}

// SetSelection replaces the multi-selection with the given cabinet
// ids; unknown ids are dropped.
func (s *Session) SetSelection(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = make(map[string]bool, len(ids))
	for _, id := range ids {
		if s.scene.Find(id) != nil {
			s.selection[id] = true
		}
	}
}

// Selection returns the selected cabinet ids, sorted.
func (s *Session) Selection() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.selection))
	for id := range s.selection {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SetCabinetWidth resizes a cabinet and propagates the change: a
// selected sync cohort absorbs the delta when active, otherwise group
// partners take their shares and the cabinet re-anchors under its own
// locks. The rest of the view follows any positional shift. The edit
// is rejected before any state changes if the width is not positive or
// both edges are locked.
func (s *Session) SetCabinetWidth(id string, newWidth float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.scene.Find(id)
	if c == nil {
		return fmt.Errorf("session: no cabinet %q", id)
	}

	placement, err := engine.AnchorWidth(c, newWidth)
	if err != nil {
		return err
	}
	s.pushHistory("Resize " + c.Name)

	delta := newWidth - c.Dimensions.Width
	oldX := c.Position.X
	exclude := map[string]bool{c.ID: true}

	if adjusted, ok := s.dist.ApplySync(c, newWidth, s.selection); ok {
		for _, aid := range adjusted {
			exclude[aid] = true
		}
	} else {
		for _, aid := range s.dist.ApplyGroup(c, delta) {
			exclude[aid] = true
		}
		placement.Apply(c)
	}

	if dx := c.Position.X - oldX; dx != 0 && c.InView() {
		s.dist.MoveView(c.ViewID, dx, 0, exclude)
	}
	s.mirrorRoleEdit(c, catalog.RoleWidth, newWidth)
	s.sched.Recalc()
	return nil
}

// SetCabinetHeight resizes a cabinet vertically and rescales its
// drawer heights to match.
func (s *Session) SetCabinetHeight(id string, newHeight float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.scene.Find(id)
	if c == nil {
		return fmt.Errorf("session: no cabinet %q", id)
	}
	if newHeight <= 0 {
		return model.NewValidationError("Cannot resize: height must be greater than zero")
	}
	s.pushHistory("Resize " + c.Name)

	oldHeight := c.Dimensions.Height
	c.Dimensions.Height = newHeight
	s.balancer.Rescale(&c.Drawers, oldHeight, newHeight)
	s.mirrorRoleEdit(c, catalog.RoleHeight, newHeight)
	s.sched.Recalc()
	return nil
}

// SetCabinetDepth resizes a cabinet front to back.
func (s *Session) SetCabinetDepth(id string, newDepth float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.scene.Find(id)
	if c == nil {
		return fmt.Errorf("session: no cabinet %q", id)
	}
	if newDepth <= 0 {
		return model.NewValidationError("Cannot resize: depth must be greater than zero")
	}
	s.pushHistory("Resize " + c.Name)

	c.Dimensions.Depth = newDepth
	s.mirrorRoleEdit(c, catalog.RoleDepth, newDepth)
	s.sched.Recalc()
	return nil
}

// MoveCabinet drags a cabinet. A cabinet in a view drags its whole
// view along, each member clamped to the room by its own type; a
// free cabinet moves alone.
func (s *Session) MoveCabinet(id string, dx, dy float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.scene.Find(id)
	if c == nil {
		return fmt.Errorf("session: no cabinet %q", id)
	}
	s.pushHistory("Move " + c.Name)

	if c.InView() {
		s.dist.MoveView(c.ViewID, dx, dy, nil)
	} else {
		c.Position.X += dx
		if c.Type.WallMounted() {
			c.Position.Y += dy
		}
	}
	s.sched.Recalc()
	return nil
}

// SetLeftLock pins or releases a cabinet's left edge.
func (s *Session) SetLeftLock(id string, locked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.scene.Find(id)
	if c == nil {
		return fmt.Errorf("session: no cabinet %q", id)
	}
	c.LeftLock = locked
	return nil
}

// SetRightLock pins or releases a cabinet's right edge.
func (s *Session) SetRightLock(id string, locked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.scene.Find(id)
	if c == nil {
		return fmt.Errorf("session: no cabinet %q", id)
	}
	c.RightLock = locked
	return nil
}

// SetDrawerQuantity changes how many drawers a cabinet has and resets
// their heights to an equal split.
func (s *Session) SetDrawerQuantity(id string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.scene.Find(id)
	if c == nil {
		return fmt.Errorf("session: no cabinet %q", id)
	}
	s.pushHistory("Drawer quantity")

	s.balancer.SetQuantity(&c.Drawers, c.Dimensions.Height, quantity)
	s.mirrorRoleEdit(c, catalog.RoleDrawerQty, float64(quantity))
	s.sched.Recalc()
	return nil
}

// SetDrawerHeight edits one independent drawer's height; the last
// drawer absorbs the residual. Rejected edits change nothing.
func (s *Session) SetDrawerHeight(id string, index int, height float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.scene.Find(id)
	if c == nil {
		return fmt.Errorf("session: no cabinet %q", id)
	}

	snap := s.makeSnapshot("Drawer height")
	if err := s.balancer.EditHeight(&c.Drawers, c.Dimensions.Height, index, height); err != nil {
		return err
	}
	s.history.Push(snap)

	if role, ok := catalog.RoleForDrawer(index); ok {
		s.mirrorRoleEdit(c, role, height)
	}
	s.sched.Recalc()
	return nil
}

// BeginDrawerEdit marks a cabinet's drawers as being edited
// interactively, which keeps formula results from overwriting them
// mid-typing.
func (s *Session) BeginDrawerEdit(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.scene.Find(id); c != nil {
		c.Drawers.Editing = true
	}
}

// EndDrawerEdit clears the interactive editing mark.
func (s *Session) EndDrawerEdit(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.scene.Find(id); c != nil {
		c.Drawers.Editing = false
	}
}

// PairGroup links two cabinets for proportional width distribution.
func (s *Session) PairGroup(a, b string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireCabinets(a, b); err != nil {
		return err
	}
	s.pushHistory("Pair cabinets")
	s.groups.Pair(a, b)
	return nil
}

// UnpairGroup removes the proportional link between two cabinets.
func (s *Session) UnpairGroup(a, b string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushHistory("Unpair cabinets")
	s.groups.Unpair(a, b)
}

// SetGroupPercent pins one partner's share of an owner's width changes.
func (s *Session) SetGroupPercent(owner, partner string, percent float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushHistory("Group share")
	s.groups.SetPercent(owner, partner, percent)
}

// LinkSync joins two cabinets into the sync relation.
func (s *Session) LinkSync(a, b string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireCabinets(a, b); err != nil {
		return err
	}
	s.pushHistory("Sync cabinets")
	s.syncs.Link(a, b)
	return nil
}

// UnlinkSync removes the sync tie between two cabinets.
func (s *Session) UnlinkSync(a, b string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushHistory("Unsync cabinets")
	s.syncs.Unlink(a, b)
}

func (s *Session) requireCabinets(ids ...string) error {
	for _, id := range ids {
		if s.scene.Find(id) == nil {
			return fmt.Errorf("session: no cabinet %q", id)
		}
	}
	return nil
}

// SetFormula stores or clears a formula for a view's GD and schedules
// its evaluation.
func (s *Session) SetFormula(viewID, gdID, expr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eng.SetFormula(viewID, gdID, expr)
}

// Formula returns the stored formula for a view's GD.
func (s *Session) Formula(viewID, gdID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Formula(viewID, gdID)
}

// SetPanelValue saves a cabinet's GD value into its persisted panel
// state.
func (s *Session) SetPanelValue(cabinetID, gdID string, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panels.Set(cabinetID, gdID, value)
}

// mirrorRoleEdit records a geometric edit in the edit store under the
// cabinet's GD for that role, so formula resolution sees the latest
// value.
func (s *Session) mirrorRoleEdit(c *model.Cabinet, role catalog.GDRole, value float64) {
	if c.ProductID == "" {
		return
	}
	gdID, ok := s.registry.GDForRole(c.ProductID, role)
	if !ok {
		return
	}
	s.edits.Set(c.ID, gdID, value)
}
