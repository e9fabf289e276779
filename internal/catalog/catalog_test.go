package catalog

import (
	"testing"
)

func TestRoleForDrawer(t *testing.T) {
	tests := []struct {
		index    int
		expected GDRole
		ok       bool
	}{
		{0, "drawerHeight0", true},
		{4, "drawerHeight4", true},
		{5, "", false},
		{-1, "", false},
	}
	for _, tt := range tests {
		role, ok := RoleForDrawer(tt.index)
		if ok != tt.ok || role != tt.expected {
			t.Errorf("RoleForDrawer(%d) = (%q, %v), want (%q, %v)",
				tt.index, role, ok, tt.expected, tt.ok)
		}
	}
}

func TestDrawerIndexRoundTrip(t *testing.T) {
	for i := 0; i < 5; i++ {
		role, _ := RoleForDrawer(i)
		got, ok := role.DrawerIndex()
		if !ok || got != i {
			t.Errorf("DrawerIndex of %s = (%d, %v), want (%d, true)", role, got, ok, i)
		}
	}
	if _, ok := RoleWidth.DrawerIndex(); ok {
		t.Error("width role should have no drawer index")
	}
	if _, ok := GDRole("drawerHeight9").DrawerIndex(); ok {
		t.Error("out of range drawer role should not parse")
	}
}

func TestRoleValid(t *testing.T) {
	valid := []GDRole{RoleWidth, RoleHeight, RoleDepth, RoleDoorOverhang,
		RoleShelfQty, RoleDrawerQty, RoleDoorQty, "drawerHeight0", "drawerHeight4"}
	for _, r := range valid {
		if !r.Valid() {
			t.Errorf("%s should be valid", r)
		}
	}
	invalid := []GDRole{"", "widths", "drawerHeight5", "drawerHeight-1"}
	for _, r := range invalid {
		if r.Valid() {
			t.Errorf("%s should not be valid", r)
		}
	}
}

func TestRoleBadges(t *testing.T) {
	tests := []struct {
		role     GDRole
		expected string
	}{
		{RoleWidth, "W"},
		{RoleHeight, "H"},
		{RoleDepth, "D"},
		{RoleDoorOverhang, "DO"},
		{RoleShelfQty, "SH"},
		{RoleDrawerQty, "DR"},
		{RoleDoorQty, "DOOR"},
		{"drawerHeight0", "H1"},
		{"drawerHeight4", "H5"},
		{"bogus", "?"},
	}
	for _, tt := range tests {
		if got := tt.role.Badge(); got != tt.expected {
			t.Errorf("Badge(%s) = %q, want %q", tt.role, got, tt.expected)
		}
	}
}

func TestDimensionEntryRange(t *testing.T) {
	entry := DimensionEntry{Type: ValueRange, Min: 300, Max: 1200}

	if !entry.Accepts(600) {
		t.Error("600 should be accepted in [300, 1200]")
	}
	if entry.Accepts(200) || entry.Accepts(1500) {
		t.Error("out of range values should be rejected")
	}
	if got := entry.Clamp(200); got != 300 {
		t.Errorf("Clamp(200) = %f, want 300", got)
	}
	if got := entry.Clamp(1500); got != 1200 {
		t.Errorf("Clamp(1500) = %f, want 1200", got)
	}
	if got := entry.Clamp(600); got != 600 {
		t.Errorf("Clamp(600) = %f, want 600", got)
	}
}

func TestDimensionEntrySelection(t *testing.T) {
	entry := DimensionEntry{Type: ValueSelection, Options: []float64{300, 450, 600}}

	if !entry.Accepts(450) {
		t.Error("listed option should be accepted")
	}
	if entry.Accepts(500) {
		t.Error("unlisted value should be rejected")
	}
	if got := entry.Clamp(500); got != 450 {
		t.Errorf("Clamp(500) = %f, want nearest option 450", got)
	}
	if got := entry.Clamp(580); got != 600 {
		t.Errorf("Clamp(580) = %f, want nearest option 600", got)
	}
}

func testProduct() *ProductData {
	return &ProductData{
		ID:   "prod-1",
		Name: "Base 2 Door",
		GDs: []GD{
			{ID: "gd-w", Name: "Width", Min: 300, Max: 1200, Visible: true},
			{ID: "gd-h", Name: "Height", Min: 500, Max: 900, Visible: true},
			{ID: "gd-w2", Name: "Carcass Width", Visible: false},
		},
		Dims: map[string]DimensionEntry{
			"gd-w":  {GDID: "gd-w", Type: ValueRange, Min: 300, Max: 1200, Default: 600, SortNum: 1, Visible: true},
			"gd-h":  {GDID: "gd-h", Type: ValueRange, Min: 500, Max: 900, Default: 720, SortNum: 2, Visible: true},
			"gd-w2": {GDID: "gd-w2", Type: ValueRange, Default: 564, SortNum: 9, Visible: false},
		},
		ThreeJSGDMapping: map[string]GDRole{
			"gd-w":  RoleWidth,
			"gd-h":  RoleHeight,
			"gd-w2": RoleWidth,
		},
	}
}

func TestProductRoleOf(t *testing.T) {
	p := testProduct()
	role, ok := p.RoleOf("gd-w")
	if !ok || role != RoleWidth {
		t.Errorf("RoleOf(gd-w) = (%s, %v), want (width, true)", role, ok)
	}
	if _, ok := p.RoleOf("missing"); ok {
		t.Error("unmapped gd should have no role")
	}
}

func TestProductGDForRolePrefersVisible(t *testing.T) {
	p := testProduct()

	// Both gd-w and gd-w2 map to width; the visible one with the lower
	// sort number must win.
	gdID, ok := p.GDForRole(RoleWidth)
	if !ok || gdID != "gd-w" {
		t.Errorf("GDForRole(width) = (%s, %v), want (gd-w, true)", gdID, ok)
	}

	if _, ok := p.GDForRole(RoleDepth); ok {
		t.Error("unmapped role should not resolve")
	}
}

func TestRegistryPutGet(t *testing.T) {
	r := NewRegistry(nil)
	r.Put(testProduct())

	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
	p, ok := r.Get("prod-1")
	if !ok || p.Name != "Base 2 Door" {
		t.Error("Get should return the cached product")
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("unknown product should not resolve")
	}

	role, ok := r.RoleOf("prod-1", "gd-h")
	if !ok || role != RoleHeight {
		t.Errorf("RoleOf = (%s, %v), want (height, true)", role, ok)
	}
	gdID, ok := r.GDForRole("prod-1", RoleHeight)
	if !ok || gdID != "gd-h" {
		t.Errorf("GDForRole = (%s, %v), want (gd-h, true)", gdID, ok)
	}
}

func TestValuesResolutionPriority(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Put(testProduct())
	edits := NewEditStore()
	panels := NewPanelStore()
	values := Values{Registry: reg, Edits: edits, Panels: panels}

	// Catalog default only.
	v, ok := values.Resolve("cab-1", "prod-1", "gd-w")
	if !ok || v != 600 {
		t.Errorf("catalog default = (%f, %v), want (600, true)", v, ok)
	}

	// Panel state outranks the default.
	panels.Set("cab-1", "gd-w", 450)
	v, _ = values.Resolve("cab-1", "prod-1", "gd-w")
	if v != 450 {
		t.Errorf("panel state = %f, want 450", v)
	}

	// An edit outranks both.
	edits.Set("cab-1", "gd-w", 480)
	v, _ = values.Resolve("cab-1", "prod-1", "gd-w")
	if v != 480 {
		t.Errorf("edit = %f, want 480", v)
	}

	// Clearing the edit falls back to panel state.
	edits.Clear("cab-1")
	v, _ = values.Resolve("cab-1", "prod-1", "gd-w")
	if v != 450 {
		t.Errorf("after clear = %f, want 450", v)
	}

	// Nothing anywhere resolves to 0, not found.
	v, ok = values.Resolve("cab-1", "prod-1", "gd-missing")
	if ok || v != 0 {
		t.Errorf("missing gd = (%f, %v), want (0, false)", v, ok)
	}
	v, ok = values.Resolve("cab-2", "", "gd-w")
	if ok || v != 0 {
		t.Errorf("no product = (%f, %v), want (0, false)", v, ok)
	}
}

func TestPanelStoreSnapshotIsDeep(t *testing.T) {
	panels := NewPanelStore()
	panels.Set("cab-1", "gd-w", 450)
	panels.SetColor("cab-1", "oak")

	snap := panels.Snapshot()
	snap["cab-1"].Values["gd-w"] = 999

	if v, _ := panels.Value("cab-1", "gd-w"); v != 450 {
		t.Error("snapshot must not alias the live store")
	}

	st, ok := panels.Get("cab-1")
	if !ok || st.MaterialColor != "oak" {
		t.Errorf("Get = (%+v, %v)", st, ok)
	}

	panels.Remove("cab-1")
	if _, ok := panels.Value("cab-1", "gd-w"); ok {
		t.Error("removed cabinet should have no panel state")
	}
}

func TestEditStoreSnapshotRoundTrip(t *testing.T) {
	edits := NewEditStore()
	edits.Set("cab-1", "gd-w", 480)
	edits.Set("cab-2", "gd-h", 900)

	snap := edits.Snapshot()

	fresh := NewEditStore()
	fresh.Replace(snap)

	if v, ok := fresh.Value("cab-1", "gd-w"); !ok || v != 480 {
		t.Errorf("restored edit = (%f, %v), want (480, true)", v, ok)
	}
	if v, ok := fresh.Value("cab-2", "gd-h"); !ok || v != 900 {
		t.Errorf("restored edit = (%f, %v), want (900, true)", v, ok)
	}
}
