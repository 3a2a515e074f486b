package bgcraft

import "testing"

func TestOptionsCloneIsolation(t *testing.T) {
	src := Options{
		"count":   float64(5),
		"label":   "hello",
		"on":      true,
		"palette": []string{"red", "green"},
	}
	cp := src.Clone()

	if !valueEqual(cp["palette"], src["palette"]) {
		t.Fatalf("clone palette = %v, want %v", cp["palette"], src["palette"])
	}
	cp["palette"].([]string)[0] = "blue"
	if src["palette"].([]string)[0] != "red" {
		t.Error("mutating the clone's list leaked into the source")
	}
	cp["count"] = float64(9)
	if src["count"].(float64) != 5 {
		t.Error("mutating the clone leaked into the source")
	}
}

func TestOptionsCloneNil(t *testing.T) {
	var o Options
	cp := o.Clone()
	if cp == nil {
		t.Fatal("Clone of nil should return an empty, usable map")
	}
	cp["k"] = "v" // must not panic
}

func TestOptionsMerge(t *testing.T) {
	o := Options{"a": float64(1), "b": "x"}
	o.Merge(Options{"b": "y", "c": []string{"p"}})
	if o["a"].(float64) != 1 {
		t.Errorf("a = %v, want 1", o["a"])
	}
	if o["b"].(string) != "y" {
		t.Errorf("b = %v, want y", o["b"])
	}
	if got := o["c"].([]string); len(got) != 1 || got[0] != "p" {
		t.Errorf("c = %v, want [p]", got)
	}
}

func TestOptionsAccessorsFallback(t *testing.T) {
	o := Options{"n": float64(2.5), "s": "txt", "b": true, "l": []string{"a"}}

	if got := o.Float("n", 0); got != 2.5 {
		t.Errorf("Float = %v, want 2.5", got)
	}
	if got := o.Float("missing", 7); got != 7 {
		t.Errorf("Float fallback = %v, want 7", got)
	}
	if got := o.Float("s", 7); got != 7 {
		t.Errorf("Float on wrong kind = %v, want fallback 7", got)
	}
	if got := o.Int("n", 0); got != 3 {
		t.Errorf("Int = %v, want 3 (rounded)", got)
	}
	if got := o.Bool("b", false); !got {
		t.Error("Bool = false, want true")
	}
	if got := o.String("s", ""); got != "txt" {
		t.Errorf("String = %q, want txt", got)
	}
	if got := o.Strings("l", nil); len(got) != 1 || got[0] != "a" {
		t.Errorf("Strings = %v, want [a]", got)
	}
}

func TestOptionsColor(t *testing.T) {
	o := Options{"good": "#ff0000", "bad": "not-a-color"}
	fallback := Color{R: 0.5, G: 0.5, B: 0.5, A: 1}

	c := o.Color("good", fallback)
	if c.R != 1 || c.G != 0 || c.B != 0 {
		t.Errorf("Color = %+v, want red", c)
	}
	if got := o.Color("bad", fallback); got != fallback {
		t.Errorf("Color on unparsable = %+v, want fallback", got)
	}
	if got := o.Color("missing", fallback); got != fallback {
		t.Errorf("Color on missing = %+v, want fallback", got)
	}
}

func TestValueEqual(t *testing.T) {
	cases := []struct {
		a, b any
		want bool
	}{
		{float64(1), float64(1), true},
		{float64(1), float64(2), false},
		{"x", "x", true},
		{true, false, false},
		{[]string{"a", "b"}, []string{"a", "b"}, true},
		{[]string{"a"}, []string{"a", "b"}, false},
		{[]string{"a"}, "a", false},
		{[]string{}, []string{}, true},
	}
	for _, c := range cases {
		if got := valueEqual(c.a, c.b); got != c.want {
			t.Errorf("valueEqual(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestDisplayString(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{float64(3), "3"},
		{float64(0.25), "0.25"},
		{true, "true"},
		{false, "false"},
		{"plain", "plain"},
		{[]string{"a", "b"}, "a, b"},
		{[]string{}, ""},
		{nil, ""},
	}
	for _, c := range cases {
		if got := displayString(c.in); got != c.want {
			t.Errorf("displayString(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
