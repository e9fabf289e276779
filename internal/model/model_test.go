package model

import (
	"testing"
)

func TestCabinetTypeValid(t *testing.T) {
	for _, ct := range AllCabinetTypes() {
		if !ct.Valid() {
			t.Errorf("type %s should be valid", ct)
		}
	}
	if CabinetType("sideboard").Valid() {
		t.Error("unknown type should not be valid")
	}
	if CabinetType("").Valid() {
		t.Error("empty type should not be valid")
	}
}

func TestCabinetTypeWallMounted(t *testing.T) {
	tests := []struct {
		ct       CabinetType
		expected bool
	}{
		{TypeTop, true},
		{TypeBulkhead, true},
		{TypeUnderPanel, true},
		{TypeBase, false},
		{TypeTall, false},
		{TypeWardrobe, false},
		{TypeKicker, false},
		{TypeBenchtop, false},
		{TypeAppliance, false},
	}
	for _, tt := range tests {
		if got := tt.ct.WallMounted(); got != tt.expected {
			t.Errorf("%s.WallMounted() = %v, want %v", tt.ct, got, tt.expected)
		}
	}
}

func TestCabinetTypeDependsOnParent(t *testing.T) {
	dependent := []CabinetType{TypeKicker, TypeBulkhead, TypeBenchtop, TypeUnderPanel, TypeFiller, TypePanel}
	for _, ct := range dependent {
		if !ct.DependsOnParent() {
			t.Errorf("%s should depend on a parent", ct)
		}
	}
	independent := []CabinetType{TypeBase, TypeTop, TypeTall, TypeWardrobe, TypeAppliance}
	for _, ct := range independent {
		if ct.DependsOnParent() {
			t.Errorf("%s should not depend on a parent", ct)
		}
	}
}

func TestNewCabinet(t *testing.T) {
	c := NewCabinet(TypeBase, 600, 720, 560)
	if c.ID == "" {
		t.Error("cabinet should get a generated ID")
	}
	if c.ViewID != ViewNone {
		t.Errorf("new cabinet should be outside any view, got %q", c.ViewID)
	}
	if c.LeftLock || c.RightLock {
		t.Error("new cabinet should be unlocked on both edges")
	}
	if c.Dimensions.Width != 600 || c.Dimensions.Height != 720 || c.Dimensions.Depth != 560 {
		t.Errorf("unexpected dimensions: %+v", c.Dimensions)
	}
}

func TestNewTypedCabinetFloorTypesSitOnKicker(t *testing.T) {
	base := NewTypedCabinet(TypeBase)
	if base.Position.Y != 150 {
		t.Errorf("base cabinet should sit at kicker height, got y=%f", base.Position.Y)
	}
	top := NewTypedCabinet(TypeTop)
	if top.Position.Y != 0 {
		t.Errorf("top cabinet y should default to 0, got %f", top.Position.Y)
	}
}

func TestCabinetEdges(t *testing.T) {
	c := NewCabinet(TypeBase, 600, 720, 560)
	c.Position = Position{X: 100, Y: 150}

	if c.Left() != 100 {
		t.Errorf("Left() = %f, want 100", c.Left())
	}
	if c.Right() != 700 {
		t.Errorf("Right() = %f, want 700", c.Right())
	}
	if c.CenterX() != 400 {
		t.Errorf("CenterX() = %f, want 400", c.CenterX())
	}
	if c.Top() != 870 {
		t.Errorf("Top() = %f, want 870", c.Top())
	}
}

func TestCabinetFieldVirtualWidth(t *testing.T) {
	c := NewCabinet(TypeAppliance, 600, 720, 560)

	v, ok := c.Field("width")
	if !ok || v != 600 {
		t.Errorf("width without visual override = %f, want 600", v)
	}

	c.VisualWidth = 900
	v, ok = c.Field("width")
	if !ok || v != 900 {
		t.Errorf("appliance width with visual override = %f, want 900", v)
	}

	// Non-appliance types ignore VisualWidth
	b := NewCabinet(TypeBase, 600, 720, 560)
	b.VisualWidth = 900
	v, _ = b.Field("width")
	if v != 600 {
		t.Errorf("base width should ignore VisualWidth, got %f", v)
	}
}

func TestCabinetFieldBenchtopHeight(t *testing.T) {
	c := NewCabinet(TypeBenchtop, 600, 33, 600)
	c.Position.Y = 870

	v, ok := c.Field("height")
	if !ok || v != 903 {
		t.Errorf("benchtop height = %f, want 903 (height above floor)", v)
	}
}

func TestCabinetFieldUnknown(t *testing.T) {
	c := NewCabinet(TypeBase, 600, 720, 560)
	if _, ok := c.Field("sparkle"); ok {
		t.Error("unknown field should not resolve")
	}
}

func TestSceneRemoveCascadesAttachments(t *testing.T) {
	s := NewScene(4000, 2700)

	host := NewCabinet(TypeBase, 600, 720, 560)
	bench := NewCabinet(TypeBenchtop, 600, 33, 600)
	bench.ParentID = host.ID
	under := NewCabinet(TypeUnderPanel, 600, 18, 300)
	under.ParentID = bench.ID
	other := NewCabinet(TypeBase, 450, 720, 560)

	s.Add(host)
	s.Add(bench)
	s.Add(under)
	s.Add(other)

	removed := s.Remove(host.ID)
	if len(removed) != 3 {
		t.Fatalf("expected 3 removed (host + chained attachments), got %d", len(removed))
	}
	if s.Find(other.ID) == nil {
		t.Error("unrelated cabinet should survive")
	}
	if s.Find(bench.ID) != nil || s.Find(under.ID) != nil {
		t.Error("attachments should be cascade removed")
	}
}

func TestSceneRemoveUnknownID(t *testing.T) {
	s := NewScene(4000, 2700)
	if removed := s.Remove("nope"); removed != nil {
		t.Errorf("removing unknown id should return nil, got %v", removed)
	}
}

func TestSceneInViewExcludesNone(t *testing.T) {
	s := NewScene(4000, 2700)

	a := NewCabinet(TypeBase, 600, 720, 560)
	a.ViewID = "north"
	b := NewCabinet(TypeBase, 600, 720, 560)
	b.ViewID = "north"
	c := NewCabinet(TypeBase, 600, 720, 560)
	// c stays in "none"

	s.Add(a)
	s.Add(b)
	s.Add(c)

	members := s.InView("north")
	if len(members) != 2 {
		t.Errorf("expected 2 members in north view, got %d", len(members))
	}
	if got := s.InView(ViewNone); got != nil {
		t.Error("the none pseudo view should always be empty")
	}

	ids := s.ViewIDs()
	if len(ids) != 1 || ids[0] != "north" {
		t.Errorf("ViewIDs() = %v, want [north]", ids)
	}
}

func TestSceneClone(t *testing.T) {
	s := NewScene(4000, 2700)
	c := NewCabinet(TypeBase, 600, 720, 560)
	c.Drawers = DrawerSet{Enabled: true, Quantity: 2, Heights: []float64{360, 360}}
	s.Add(c)

	cp := s.Clone()
	cp.Cabinets[0].Dimensions.Width = 900
	cp.Cabinets[0].Drawers.Heights[0] = 100

	if s.Cabinets[0].Dimensions.Width != 600 {
		t.Error("clone should not share cabinet structs")
	}
	if s.Cabinets[0].Drawers.Heights[0] != 360 {
		t.Error("clone should not share drawer height slices")
	}
}

func TestCutListSingleBoardTypes(t *testing.T) {
	f := NewCabinet(TypeFiller, 50, 720, 560)
	panels := f.Panels()
	if len(panels) != 1 {
		t.Fatalf("filler should decompose to 1 slab, got %d", len(panels))
	}
	if panels[0].Kind != PanelSlab {
		t.Errorf("expected slab, got %s", panels[0].Kind)
	}
}

func TestCutListApplianceHasNoPanels(t *testing.T) {
	a := NewCabinet(TypeAppliance, 600, 720, 560)
	if panels := a.Panels(); panels != nil {
		t.Errorf("appliance should have no panels, got %d", len(panels))
	}
}

func TestCutListCarcassBreakdown(t *testing.T) {
	c := NewCabinet(TypeBase, 600, 720, 560)
	c.Doors = 2
	c.Shelves = 1
	c.Drawers = DrawerSet{Enabled: true, Quantity: 2, Heights: []float64{360, 360}}

	panels := c.Panels()

	counts := map[PanelKind]int{}
	for _, p := range panels {
		counts[p.Kind] += p.Quantity
	}

	if counts[PanelSide] != 2 {
		t.Errorf("expected 2 sides, got %d", counts[PanelSide])
	}
	if counts[PanelDoor] != 2 {
		t.Errorf("expected 2 doors, got %d", counts[PanelDoor])
	}
	if counts[PanelShelf] != 1 {
		t.Errorf("expected 1 shelf, got %d", counts[PanelShelf])
	}
	if counts[PanelDrawerFront] != 2 {
		t.Errorf("expected 2 drawer fronts, got %d", counts[PanelDrawerFront])
	}
	if counts[PanelBack] != 1 {
		t.Errorf("expected 1 back, got %d", counts[PanelBack])
	}
}

func TestEdgeBandingString(t *testing.T) {
	tests := []struct {
		banding  EdgeBanding
		expected string
	}{
		{EdgeBanding{}, "-"},
		{EdgeBanding{Front: true}, "F"},
		{EdgeBanding{Front: true, Back: true, Left: true, Right: true}, "F+B+L+R"},
		{EdgeBanding{Left: true, Right: true}, "L+R"},
	}
	for _, tt := range tests {
		if got := tt.banding.String(); got != tt.expected {
			t.Errorf("String() = %q, want %q", got, tt.expected)
		}
	}
}

func TestCalculateEdgeBanding(t *testing.T) {
	panels := []Panel{
		{Kind: PanelDoor, Width: 300, Height: 700, Quantity: 2,
			Banding: EdgeBanding{Front: true, Back: true, Left: true, Right: true}},
		{Kind: PanelBack, Width: 600, Height: 720, Quantity: 1},
	}

	summary := CalculateEdgeBanding(panels, 10)

	// Each door: 2*300 + 2*700 = 2000mm, two doors = 4000mm
	if summary.TotalLinearMM != 4000 {
		t.Errorf("TotalLinearMM = %f, want 4000", summary.TotalLinearMM)
	}
	if summary.TotalWithWasteMM != 4400 {
		t.Errorf("TotalWithWasteMM = %f, want 4400", summary.TotalWithWasteMM)
	}
	if summary.PanelCount != 2 {
		t.Errorf("PanelCount = %d, want 2", summary.PanelCount)
	}
	if summary.EdgeCount != 8 {
		t.Errorf("EdgeCount = %d, want 8", summary.EdgeCount)
	}
}

func TestEstimateMaterial(t *testing.T) {
	panels := []Panel{
		{Width: 1200, Height: 600, Quantity: 2},
	}

	est := EstimateMaterial(panels, 2400, 1200, 15, 80)

	// 2 * 0.72 sq m on a 2.88 sq m sheet = 0.5 sheets exact
	if est.SheetsNeededExact != 0.5 {
		t.Errorf("SheetsNeededExact = %f, want 0.5", est.SheetsNeededExact)
	}
	if est.SheetsNeededMin != 1 {
		t.Errorf("SheetsNeededMin = %d, want 1", est.SheetsNeededMin)
	}
	if est.EstimatedCost != 80 {
		t.Errorf("EstimatedCost = %f, want 80", est.EstimatedCost)
	}
}

func TestEstimateMaterialZeroSheet(t *testing.T) {
	est := EstimateMaterial([]Panel{{Width: 100, Height: 100, Quantity: 1}}, 0, 0, 10, 50)
	if est.SheetsNeededMin != 0 {
		t.Errorf("zero sheet area should produce zero sheets, got %d", est.SheetsNeededMin)
	}
	if est.TotalPanelArea != 10000 {
		t.Errorf("TotalPanelArea = %f, want 10000", est.TotalPanelArea)
	}
}

func TestCabinetPresetRoundTrip(t *testing.T) {
	c := NewCabinet(TypeBase, 450, 720, 560)
	c.Doors = 1
	c.Shelves = 2
	c.Drawers = DrawerSet{Enabled: true, Quantity: 3, Heights: []float64{240, 240, 240}}
	c.Position = Position{X: 1000, Y: 150}
	c.ViewID = "north"
	c.LeftLock = true

	preset := NewCabinetPreset("Slim base", "450 base with drawers", c)
	fresh := preset.ToCabinet()

	if fresh.ID == c.ID {
		t.Error("preset cabinet should get a fresh ID")
	}
	if fresh.ViewID != ViewNone {
		t.Error("preset cabinet should not inherit view membership")
	}
	if fresh.LeftLock {
		t.Error("preset cabinet should not inherit locks")
	}
	if fresh.Dimensions != c.Dimensions {
		t.Errorf("dimensions should carry over: %+v", fresh.Dimensions)
	}
	if len(fresh.Drawers.Heights) != 3 {
		t.Fatalf("drawer heights should carry over, got %d", len(fresh.Drawers.Heights))
	}

	// Mutating the fresh cabinet must not touch the preset.
	fresh.Drawers.Heights[0] = 1
	if preset.Drawers.Heights[0] != 240 {
		t.Error("preset should not share drawer slices with created cabinets")
	}
}

func TestPresetStore(t *testing.T) {
	store := NewPresetStore()
	c := NewCabinet(TypeBase, 600, 720, 560)
	p := NewCabinetPreset("Standard base", "", c)
	store.Add(p)

	if store.FindByID(p.ID) == nil {
		t.Error("FindByID should locate the preset")
	}
	if store.FindByName("Standard base") == nil {
		t.Error("FindByName should locate the preset")
	}
	if names := store.Names(); len(names) != 1 || names[0] != "Standard base" {
		t.Errorf("Names() = %v", names)
	}
	if !store.Remove(p.ID) {
		t.Error("Remove should report success")
	}
	if store.Remove(p.ID) {
		t.Error("Remove on missing id should report failure")
	}
}
