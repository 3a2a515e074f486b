package bgcraft

import "testing"

func TestEnsureSizeKeepsExplicitSize(t *testing.T) {
	s := NewSurface(640, 480)
	w, h := s.EnsureSize()
	if w != 640 || h != 480 {
		t.Errorf("EnsureSize = %dx%d, want 640x480", w, h)
	}
	if s.UsedFallback() {
		t.Error("fallback flag set for an explicitly sized surface")
	}
}

func TestEnsureSizePrefersParent(t *testing.T) {
	s := NewSurface(0, 0)
	s.SetParentSize(1200, 900)
	w, h := s.EnsureSize()
	if w != 1200 || h != 900 {
		t.Errorf("EnsureSize = %dx%d, want parent 1200x900", w, h)
	}
	if s.UsedFallback() {
		t.Error("fallback flag set when the parent size was usable")
	}
}

func TestEnsureSizeFallsBackToDefault(t *testing.T) {
	s := NewSurface(0, 0)
	w, h := s.EnsureSize()
	if w != DefaultSurfaceWidth || h != DefaultSurfaceHeight {
		t.Errorf("EnsureSize = %dx%d, want default %dx%d",
			w, h, DefaultSurfaceWidth, DefaultSurfaceHeight)
	}
	if !s.UsedFallback() {
		t.Error("fallback flag not set")
	}

	// Once a real parent size arrives, the flag clears on the next pass.
	s.SetSize(0, 0)
	s.SetParentSize(300, 200)
	s.EnsureSize()
	if s.UsedFallback() {
		t.Error("fallback flag should clear when a real size is available")
	}
}

func TestSetSizeNoopWhenUnchanged(t *testing.T) {
	s := NewSurface(100, 100)
	s.SetSize(100, 100)
	if w, h := s.Size(); w != 100 || h != 100 {
		t.Errorf("Size = %dx%d, want 100x100", w, h)
	}
	s.SetSize(50, 40)
	if w, h := s.Size(); w != 50 || h != 40 {
		t.Errorf("Size = %dx%d, want 50x40", w, h)
	}
}

func TestZeroAreaSurfaceHasNoImage(t *testing.T) {
	s := NewSurface(0, 0)
	if s.Image() != nil {
		t.Error("zero-area surface must not allocate an image")
	}
	// Clear and Dispose must tolerate the unallocated state.
	s.Clear()
	s.Dispose()
}

type recordingListener struct {
	hits      int
	x, y      float64
	surface   *Surface
	selfEject bool
}

func (r *recordingListener) PointerDown(x, y float64) {
	r.hits++
	r.x, r.y = x, y
	if r.selfEject {
		r.surface.RemovePointerListener(r)
	}
}

func TestPointerListeners(t *testing.T) {
	s := NewSurface(100, 100)
	a := &recordingListener{}
	b := &recordingListener{}
	s.AddPointerListener(a)
	s.AddPointerListener(b)
	s.AddPointerListener(nil)
	if got := s.ListenerCount(); got != 2 {
		t.Fatalf("ListenerCount = %d, want 2 (nil ignored)", got)
	}

	s.NotifyPointerDown(10, 20)
	if a.hits != 1 || b.hits != 1 {
		t.Errorf("hits = %d, %d, want 1, 1", a.hits, b.hits)
	}
	if a.x != 10 || a.y != 20 {
		t.Errorf("coords = %v, %v, want 10, 20", a.x, a.y)
	}

	s.RemovePointerListener(a)
	if got := s.ListenerCount(); got != 1 {
		t.Errorf("ListenerCount after remove = %d, want 1", got)
	}
	s.RemovePointerListener(a) // absent, no-op
	s.NotifyPointerDown(1, 2)
	if a.hits != 1 || b.hits != 2 {
		t.Errorf("hits = %d, %d, want 1, 2", a.hits, b.hits)
	}
}

func TestListenerMayDeregisterDuringNotify(t *testing.T) {
	s := NewSurface(100, 100)
	a := &recordingListener{surface: s, selfEject: true}
	b := &recordingListener{}
	s.AddPointerListener(a)
	s.AddPointerListener(b)

	s.NotifyPointerDown(5, 5)
	if a.hits != 1 || b.hits != 1 {
		t.Errorf("hits = %d, %d, want both notified despite self-removal", a.hits, b.hits)
	}
	if got := s.ListenerCount(); got != 1 {
		t.Errorf("ListenerCount = %d, want 1", got)
	}
}
