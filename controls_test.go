package bgcraft

import "testing"

func TestBuildControlsDispatch(t *testing.T) {
	schema := []ControlSpec{
		{Key: "count", Label: "Count", Kind: ControlNumber, Min: Bound(1), Max: Bound(9), Step: 1},
		{Key: "rate", Label: "Rate", Kind: ControlNumber},
		{Key: "on", Label: "On", Kind: ControlBoolean},
		{Key: "mode", Label: "Mode", Kind: ControlSelect, Choices: []string{"a", "b", "c"}},
		{Key: "tint", Label: "Tint", Kind: ControlText, RichColor: true},
		{Key: "name", Label: "Name", Kind: ControlText, Placeholder: "type here"},
		{Key: "absent", Label: "Absent", Kind: ControlText},
	}
	opts := Options{
		"count": float64(4),
		"rate":  0.5,
		"on":    true,
		"mode":  "b",
		"tint":  "rgba(255, 0, 0, 0.5)",
		"name":  "hello",
	}
	controls := BuildControls(schema, opts)
	if len(controls) != 6 {
		t.Fatalf("controls = %d, want 6 (key with no option skipped)", len(controls))
	}

	byKey := map[string]*Control{}
	for _, c := range controls {
		byKey[c.Key] = c
	}

	if c := byKey["count"]; c.Display != "4" || c.Step != 1 {
		t.Errorf("count = %q step %v, want 4 step 1", c.Display, c.Step)
	}
	if c := byKey["rate"]; c.Step != defaultNumberStep {
		t.Errorf("rate step = %v, want default %v", c.Step, defaultNumberStep)
	}
	if c := byKey["on"]; !c.Checked {
		t.Error("on should be checked")
	}
	if c := byKey["mode"]; c.Selected != 1 {
		t.Errorf("mode selected = %d, want 1", c.Selected)
	}
	if c := byKey["tint"]; c.Color == nil {
		t.Error("rich color control should carry a color field")
	} else if c.Color.Swatch != "#ff0000" || c.Color.Opacity != 0.5 {
		t.Errorf("tint color = %v, want #ff0000 at 0.5", *c.Color)
	}
	if c := byKey["name"]; c.Placeholder != "type here" || c.Color != nil {
		t.Errorf("name control = %+v, want plain text", c)
	}
}

func TestBuildControlsUnparsableRichColor(t *testing.T) {
	schema := []ControlSpec{
		{Key: "tint", Label: "Tint", Kind: ControlText, RichColor: true},
	}
	controls := BuildControls(schema, Options{"tint": "not a color"})
	c := controls[0]
	if c.Color == nil {
		t.Fatal("color field missing")
	}
	if c.Color.Swatch != "#ffffff" || c.Color.Opacity != 1 {
		t.Errorf("fallback color = %v, want opaque white", *c.Color)
	}
	if c.Display != "not a color" {
		t.Errorf("Display = %q, raw text must stay authoritative", c.Display)
	}
}

func TestControlCommitted(t *testing.T) {
	cases := []struct {
		kind ControlKind
		want bool
	}{
		{ControlNumber, false},
		{ControlText, false},
		{ControlColor, false},
		{ControlBoolean, true},
		{ControlSelect, true},
	}
	for _, tc := range cases {
		c := &Control{Kind: tc.kind}
		if got := c.Committed(); got != tc.want {
			t.Errorf("Committed(%v) = %v, want %v", tc.kind, got, tc.want)
		}
	}
}

func TestReflectGuard(t *testing.T) {
	c := &Control{Kind: ControlNumber, Key: "v", Display: "2"}
	if !c.Reflect(3.5) {
		t.Error("Reflect(3.5) should report a change")
	}
	if c.Display != "3.5" {
		t.Errorf("Display = %q, want 3.5", c.Display)
	}
	if c.Reflect(3.5) {
		t.Error("Reflect of the displayed value should be a no-op")
	}
}

func TestReflectBooleanAndSelect(t *testing.T) {
	b := &Control{Kind: ControlBoolean, Key: "on", Display: "false"}
	b.Reflect(true)
	if !b.Checked || b.Display != "true" {
		t.Errorf("boolean reflect = checked %v display %q", b.Checked, b.Display)
	}

	s := &Control{Kind: ControlSelect, Key: "mode", Display: "a", Choices: []string{"a", "b"}}
	s.Reflect("b")
	if s.Selected != 1 {
		t.Errorf("select reflect selected = %d, want 1", s.Selected)
	}
	s.Reflect("missing")
	if s.Selected != 0 {
		t.Errorf("unknown choice selected = %d, want 0", s.Selected)
	}
}

func TestReflectUpdatesColorField(t *testing.T) {
	cf := &ColorField{Swatch: "#ffffff", Opacity: 1}
	c := &Control{Kind: ControlText, Key: "tint", Display: "", Color: cf}
	c.Reflect("rgba(0, 128, 255, 0.25)")
	if cf.Swatch != "#0080ff" {
		t.Errorf("swatch = %q, want #0080ff", cf.Swatch)
	}
	if cf.Opacity != 0.25 {
		t.Errorf("opacity = %v, want 0.25", cf.Opacity)
	}
	// Unparsable text leaves the last good derivation in place.
	c.Reflect("garbage")
	if cf.Swatch != "#0080ff" {
		t.Errorf("swatch after garbage = %q, want last good value", cf.Swatch)
	}
}

func TestComposeColorRoundTrip(t *testing.T) {
	got := ComposeColor("#0080ff", 0.25)
	if got != "rgba(0, 128, 255, 0.25)" {
		t.Errorf("ComposeColor = %q", got)
	}
	cf, ok := DeriveColorField(got)
	if !ok {
		t.Fatal("composed string did not parse back")
	}
	if cf.Swatch != "#0080ff" || cf.Opacity != 0.25 {
		t.Errorf("round trip = %v", cf)
	}

	if got := ComposeColor("junk", 2); got != "rgba(255, 255, 255, 1)" {
		t.Errorf("ComposeColor(junk, 2) = %q, want opaque white with clamped alpha", got)
	}
}
