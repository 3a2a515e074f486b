package effects

import (
	"testing"

	"github.com/bgcraft/bgcraft"
)

func newTestStarfield(t *testing.T, w, h int, opts bgcraft.Options) *Starfield {
	t.Helper()
	merged := StarfieldDescriptor().Defaults.Clone()
	merged.Merge(opts)
	e, err := NewStarfield(bgcraft.NewSurface(w, h), merged)
	if err != nil {
		t.Fatalf("NewStarfield: %v", err)
	}
	return e.(*Starfield)
}

func TestStarfieldPoolResize(t *testing.T) {
	e := newTestStarfield(t, 0, 0, bgcraft.Options{"starCount": float64(100)})
	if len(e.stars) != 100 {
		t.Fatalf("stars = %d, want 100", len(e.stars))
	}

	first := e.stars[0]
	e.ApplyOptions(bgcraft.Options{"starCount": float64(40)})
	if len(e.stars) != 40 {
		t.Fatalf("stars after shrink = %d, want 40", len(e.stars))
	}
	if e.stars[0] != first {
		t.Error("shrink must keep the leading stars in place")
	}

	e.ApplyOptions(bgcraft.Options{"starCount": float64(80)})
	if len(e.stars) != 80 {
		t.Fatalf("stars after grow = %d, want 80", len(e.stars))
	}
	if e.stars[0] != first {
		t.Error("grow must keep existing stars")
	}
}

func TestStarfieldPartialUpdateLeavesPoolAlone(t *testing.T) {
	e := newTestStarfield(t, 0, 0, nil)
	before := len(e.stars)
	e.ApplyOptions(bgcraft.Options{"speed": float64(9)})
	if len(e.stars) != before {
		t.Errorf("stars = %d after a speed change, want %d", len(e.stars), before)
	}
	if e.cfg.speed != 9 {
		t.Errorf("speed = %v, want 9", e.cfg.speed)
	}
	// Other settings untouched.
	if !e.cfg.warp {
		t.Error("warp reset by an unrelated partial update")
	}
}

func TestStarfieldDirectionChangeClearsTrails(t *testing.T) {
	e := newTestStarfield(t, 200, 150, nil)
	e.Start()
	e.Advance(1.0 / 60)
	trailed := 0
	for i := range e.stars {
		if e.stars[i].hasPrev {
			trailed++
		}
	}
	if trailed == 0 {
		t.Fatal("no star recorded a previous position after Advance")
	}

	e.ApplyOptions(bgcraft.Options{"direction": "left"})
	for i := range e.stars {
		if e.stars[i].hasPrev {
			t.Fatal("trails must be cleared on a direction change")
		}
	}
	if e.cfg.direction != "left" {
		t.Errorf("direction = %q, want left", e.cfg.direction)
	}
}

func TestStarfieldOutwardRespawn(t *testing.T) {
	e := newTestStarfield(t, 200, 150, bgcraft.Options{"speed": float64(20)})
	e.Start()
	for i := 0; i < 600; i++ {
		e.Advance(1.0 / 60)
	}
	for i := range e.stars {
		z := e.stars[i].z
		if z <= 0 || z > 1 {
			t.Fatalf("star %d depth = %v, want in (0, 1]", i, z)
		}
	}
}

func TestStarfieldDriftWraps(t *testing.T) {
	e := newTestStarfield(t, 200, 150, bgcraft.Options{
		"direction": "left",
		"speed":     float64(20),
	})
	e.Start()
	for i := 0; i < 600; i++ {
		e.Advance(1.0 / 60)
	}
	for i := range e.stars {
		x := e.stars[i].x
		if x < -1.001 || x > 1.001 {
			t.Fatalf("star %d x = %v, want wrapped into [-1, 1]", i, x)
		}
	}
}

func TestStarfieldZeroAreaAdvanceIsSafe(t *testing.T) {
	e := newTestStarfield(t, 0, 0, nil)
	e.Start()
	e.Advance(1.0 / 60) // must not divide by the zero center
	e.Draw()            // no image, no-op
}

func TestStarfieldLifecycle(t *testing.T) {
	e := newTestStarfield(t, 0, 0, nil)
	if e.Animating() {
		t.Error("animating before Start")
	}
	e.Start()
	e.Start()
	if !e.Animating() {
		t.Error("not animating after Start")
	}
	e.Stop()
	if e.Animating() {
		t.Error("animating after Stop")
	}
	e.Start()
	if !e.Animating() {
		t.Error("Stop must not prevent a resume")
	}
	e.Destroy()
	if e.Animating() {
		t.Error("animating after Destroy")
	}
	if e.stars != nil {
		t.Error("star pool retained after Destroy")
	}
}

func TestStarfieldColorOption(t *testing.T) {
	e := newTestStarfield(t, 0, 0, bgcraft.Options{"starColor": "rgba(255, 0, 0, 0.5)"})
	if e.cfg.color.R != 1 || e.cfg.color.G != 0 || e.cfg.color.A != 0.5 {
		t.Errorf("color = %+v, want red at half alpha", e.cfg.color)
	}
	// Unparsable color falls back to the prior value.
	e.ApplyOptions(bgcraft.Options{"starColor": "nonsense"})
	if e.cfg.color.R != 1 || e.cfg.color.A != 0.5 {
		t.Errorf("color = %+v after bad input, want unchanged", e.cfg.color)
	}
}
