package bgcraft

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Default surface dimensions, used when neither the surface nor its parent
// container has a measurable size.
const (
	DefaultSurfaceWidth  = 800
	DefaultSurfaceHeight = 600
)

// PointerListener receives pointer presses on the surface. Effects that react
// to input register themselves and must deregister in Destroy.
type PointerListener interface {
	PointerDown(x, y float64)
}

// Surface is the shared drawing target: an offscreen Ebitengine image plus
// its logical size. The builder owns the surface; a reference is lent, never
// transferred, to the live effect instance.
type Surface struct {
	img  *ebiten.Image
	w, h int

	// Parent container's measured size, reported by the host. Used as the
	// preferred fallback when the surface's own size collapses to zero.
	parentW, parentH int

	// fallback records that EnsureSize had to fall back to the default
	// size, so the host can reserve visible space for it.
	fallback bool

	listeners []PointerListener
}

// NewSurface creates a surface with the given logical size. The backing image
// is allocated lazily on first use, so logic-only tests never touch the GPU.
func NewSurface(w, h int) *Surface {
	return &Surface{w: w, h: h}
}

// Size returns the current logical dimensions.
func (s *Surface) Size() (w, h int) {
	return s.w, s.h
}

// SetParentSize records the parent container's measured dimensions.
func (s *Surface) SetParentSize(w, h int) {
	s.parentW, s.parentH = w, h
}

// SetSize resizes the surface. The backing image is reallocated on next use.
func (s *Surface) SetSize(w, h int) {
	if w == s.w && h == s.h {
		return
	}
	s.w, s.h = w, h
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
}

// EnsureSize applies the auto-sizing policy: keep a non-zero size as is,
// otherwise prefer the parent's measured size, otherwise fall back to the
// default dimensions. Returns the resulting size.
func (s *Surface) EnsureSize() (w, h int) {
	if s.w > 0 && s.h > 0 {
		s.fallback = false
		return s.w, s.h
	}
	if s.parentW > 0 && s.parentH > 0 {
		s.SetSize(s.parentW, s.parentH)
		s.fallback = false
		return s.w, s.h
	}
	s.SetSize(DefaultSurfaceWidth, DefaultSurfaceHeight)
	s.fallback = true
	return s.w, s.h
}

// UsedFallback reports whether the last EnsureSize had to assign the default
// size. Hosts should reserve a minimum visible area when this is set.
func (s *Surface) UsedFallback() bool {
	return s.fallback
}

// Image returns the backing image, allocating it at the current size on first
// use. Returns nil while the surface has zero area.
func (s *Surface) Image() *ebiten.Image {
	if s.w <= 0 || s.h <= 0 {
		return nil
	}
	if s.img == nil {
		s.img = ebiten.NewImage(s.w, s.h)
	}
	return s.img
}

// Clear fills the surface with transparent black. A no-op when the backing
// image has not been allocated.
func (s *Surface) Clear() {
	if s.img != nil {
		s.img.Clear()
	}
}

// AddPointerListener registers a listener for pointer presses.
func (s *Surface) AddPointerListener(l PointerListener) {
	if l == nil {
		return
	}
	s.listeners = append(s.listeners, l)
}

// RemovePointerListener deregisters a previously added listener.
func (s *Surface) RemovePointerListener(l PointerListener) {
	for i, have := range s.listeners {
		if have == l {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

// ListenerCount returns the number of registered pointer listeners.
func (s *Surface) ListenerCount() int {
	return len(s.listeners)
}

// NotifyPointerDown forwards a pointer press to all registered listeners.
// Called by the host when a press lands inside the surface.
func (s *Surface) NotifyPointerDown(x, y float64) {
	// Iterate over a copy so a listener may deregister itself.
	ls := make([]PointerListener, len(s.listeners))
	copy(ls, s.listeners)
	for _, l := range ls {
		l.PointerDown(x, y)
	}
}

// Dispose releases the backing image. The surface may be resized and reused
// afterward.
func (s *Surface) Dispose() {
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
}
