package effects

import (
	"errors"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/bgcraft/bgcraft"
)

// Bokeh defaults.
const (
	bokehDefaultCount = 40
	bokehDefaultPulse = 1.0
	bokehDefaultDrift = 1.0
)

var bokehDefaultTint = bgcraft.Color{R: 1, G: 0.72, B: 0.42, A: 0.35}

// disc is one out-of-focus light. Its radius breathes via an eased tween
// that reverses each time it finishes.
type disc struct {
	x, y   float64
	vx, vy float64
	radius float64
	tint   bgcraft.Color

	pulse   *gween.Tween
	scale   float64
	growing bool
}

type bokehConfig struct {
	count      int
	pulseSpeed float64
	drift      float64
	tint       bgcraft.Color
	blend      bgcraft.BlendMode
}

// Bokeh renders drifting, softly pulsing discs of light, composited with a
// selectable blend mode.
type Bokeh struct {
	surface *bgcraft.Surface
	cfg     bokehConfig
	discs   []disc

	w, h      float64
	animating bool
}

// BokehDescriptor returns the registry entry for the Bokeh effect.
func BokehDescriptor() bgcraft.Descriptor {
	return bgcraft.Descriptor{
		Name: "Bokeh",
		New:  NewBokeh,
		Defaults: bgcraft.Options{
			"discCount":  float64(bokehDefaultCount),
			"pulseSpeed": bokehDefaultPulse,
			"drift":      bokehDefaultDrift,
			"tint":       "rgba(255, 184, 108, 0.35)",
			"blend":      "add",
		},
		Schema: []bgcraft.ControlSpec{
			{
				Key: "discCount", Label: "Discs", Kind: bgcraft.ControlNumber,
				Min: bgcraft.Bound(5), Max: bgcraft.Bound(200), Step: 1,
				RequiresRestart: true,
			},
			{
				Key: "pulseSpeed", Label: "Pulse", Kind: bgcraft.ControlNumber,
				Min: bgcraft.Bound(0.1), Max: bgcraft.Bound(4), Step: 0.1,
				Tooltip: "How fast discs breathe in and out",
			},
			{
				Key: "drift", Label: "Drift", Kind: bgcraft.ControlNumber,
				Min: bgcraft.Bound(0), Max: bgcraft.Bound(5), Step: 0.1,
			},
			{
				Key: "tint", Label: "Tint", Kind: bgcraft.ControlText,
				RichColor: true,
			},
			{
				Key: "blend", Label: "Blend mode", Kind: bgcraft.ControlSelect,
				Choices: []string{"normal", "add", "screen"},
			},
		},
	}
}

// NewBokeh constructs a Bokeh effect on the given surface.
func NewBokeh(s *bgcraft.Surface, opts bgcraft.Options) (bgcraft.Effect, error) {
	if s == nil {
		return nil, errors.New("bokeh: no drawing surface")
	}
	e := &Bokeh{surface: s}
	e.cfg = bokehConfig{
		count:      opts.Int("discCount", bokehDefaultCount),
		pulseSpeed: opts.Float("pulseSpeed", bokehDefaultPulse),
		drift:      opts.Float("drift", bokehDefaultDrift),
		tint:       opts.Color("tint", bokehDefaultTint),
		blend:      bgcraft.ParseBlendMode(opts.String("blend", "add")),
	}
	e.recomputeBounds()
	e.resizeDiscs(e.cfg.count)
	return e, nil
}

// Start begins animating. Idempotent.
func (e *Bokeh) Start() {
	e.animating = true
}

// Stop halts animation, keeping disc state. Idempotent.
func (e *Bokeh) Stop() {
	e.animating = false
}

// Destroy stops the effect and drops the disc pool.
func (e *Bokeh) Destroy() {
	e.Stop()
	e.discs = nil
}

// Animating reports whether the effect wants per-frame advancement.
func (e *Bokeh) Animating() bool {
	return e.animating
}

// Resize recomputes the drift bounds and redraws when idle.
func (e *Bokeh) Resize() {
	e.recomputeBounds()
	if !e.animating {
		e.Draw()
	}
}

func (e *Bokeh) recomputeBounds() {
	w, h := e.surface.Size()
	e.w, e.h = float64(w), float64(h)
}

// ApplyOptions merges a partial option update. A disc-count change resizes
// the pool in place; a tint change recolors discs around the new base.
func (e *Bokeh) ApplyOptions(partial bgcraft.Options) {
	if _, ok := partial["discCount"]; ok {
		if n := partial.Int("discCount", e.cfg.count); n != e.cfg.count {
			e.resizeDiscs(n)
		}
	}
	e.cfg.pulseSpeed = partial.Float("pulseSpeed", e.cfg.pulseSpeed)
	e.cfg.drift = partial.Float("drift", e.cfg.drift)
	if _, ok := partial["tint"]; ok {
		e.cfg.tint = partial.Color("tint", e.cfg.tint)
		for i := range e.discs {
			e.discs[i].tint = e.vary(e.cfg.tint)
		}
	}
	if _, ok := partial["blend"]; ok {
		e.cfg.blend = bgcraft.ParseBlendMode(partial.String("blend", "add"))
	}
}

func (e *Bokeh) resizeDiscs(n int) {
	if n < 0 {
		n = 0
	}
	e.cfg.count = n
	if n <= len(e.discs) {
		e.discs = e.discs[:n]
		return
	}
	for len(e.discs) < n {
		e.discs = append(e.discs, e.newDisc())
	}
}

func (e *Bokeh) newDisc() disc {
	w, h := e.w, e.h
	if w <= 0 {
		w = bgcraft.DefaultSurfaceWidth
	}
	if h <= 0 {
		h = bgcraft.DefaultSurfaceHeight
	}
	angle := rand.Float64() * 2 * math.Pi
	return disc{
		x:       rand.Float64() * w,
		y:       rand.Float64() * h,
		vx:      8 * math.Cos(angle),
		vy:      8 * math.Sin(angle),
		radius:  10 + rand.Float64()*50,
		tint:    e.vary(e.cfg.tint),
		pulse:   gween.New(0.75, 1.25, 1.5+float32(rand.Float64()), ease.InOutQuad),
		scale:   1,
		growing: true,
	}
}

// vary jitters the tint slightly so the field is not uniform.
func (e *Bokeh) vary(c bgcraft.Color) bgcraft.Color {
	j := func(v float64) float64 {
		v += (rand.Float64() - 0.5) * 0.15
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
	return bgcraft.Color{R: j(c.R), G: j(c.G), B: j(c.B), A: c.A}
}

// Advance steps drift and the pulse tweens by dt seconds.
func (e *Bokeh) Advance(dt float64) {
	if e.w <= 0 || e.h <= 0 {
		return
	}
	for i := range e.discs {
		d := &e.discs[i]
		d.x += d.vx * e.cfg.drift * dt
		d.y += d.vy * e.cfg.drift * dt
		// Wrap with a margin so discs slide off before reappearing.
		m := d.radius * 1.5
		if d.x < -m {
			d.x = e.w + m
		} else if d.x > e.w+m {
			d.x = -m
		}
		if d.y < -m {
			d.y = e.h + m
		} else if d.y > e.h+m {
			d.y = -m
		}

		v, finished := d.pulse.Update(float32(dt * e.cfg.pulseSpeed))
		d.scale = float64(v)
		if finished {
			// Reverse the breath.
			from, to := float32(1.25), float32(0.75)
			if !d.growing {
				from, to = to, from
			}
			d.growing = !d.growing
			d.pulse = gween.New(from, to, 1.5+float32(rand.Float64()), ease.InOutQuad)
		}
	}
}

// Draw performs one render pass of the current state.
func (e *Bokeh) Draw() {
	img := e.surface.Image()
	if img == nil {
		return
	}
	img.Fill(bgcraft.Color{R: 0.06, G: 0.04, B: 0.09, A: 1}.NRGBA())

	blend := e.cfg.blend.EbitenBlend()
	for i := range e.discs {
		d := &e.discs[i]
		drawDisc(img, d, blend)
	}
}

// drawDisc renders one disc with its blend mode. Two concentric fills fake
// the soft out-of-focus edge.
func drawDisc(img *ebiten.Image, d *disc, blend ebiten.Blend) {
	r := float32(d.radius * d.scale)
	fillCircle(img, float32(d.x), float32(d.y), r, d.tint.WithAlpha(d.tint.A*0.4), blend)
	fillCircle(img, float32(d.x), float32(d.y), r*0.8, d.tint, blend)
}

// fillCircle draws a filled circle through DrawTriangles, since the vector
// helpers expose no blend parameter. Vertex colors are premultiplied.
func fillCircle(dst *ebiten.Image, cx, cy, r float32, tint bgcraft.Color, blend ebiten.Blend) {
	var p vector.Path
	p.Arc(cx, cy, r, 0, 2*math.Pi, vector.Clockwise)
	p.Close()

	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	a := float32(tint.A)
	cr := float32(tint.R) * a
	cg := float32(tint.G) * a
	cb := float32(tint.B) * a
	for i := range vs {
		vs[i].SrcX = 0.5
		vs[i].SrcY = 0.5
		vs[i].ColorR = cr
		vs[i].ColorG = cg
		vs[i].ColorB = cb
		vs[i].ColorA = a
	}

	op := &ebiten.DrawTrianglesOptions{
		Blend:     blend,
		FillRule:  ebiten.FillRuleNonZero,
		AntiAlias: true,
	}
	dst.DrawTriangles(vs, is, whitePixel, op)
}
