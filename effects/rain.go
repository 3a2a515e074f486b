package effects

import (
	"errors"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/bgcraft/bgcraft"
)

// Rain defaults.
const (
	rainDefaultCount = 400
	rainDefaultSpeed = 1.5
	rainDefaultWind  = 0.5
	splashPool       = 256
	splashGravity    = 900
)

var rainDefaultPalette = []string{"#4a6cf7", "#7a9cf9", "#a9c1fb"}

type drop struct {
	x, y  float64
	depth float64 // 0.3..1, scales speed and length
	color bgcraft.Color
}

// splash holds one splash particle. Dead particles are swap-removed.
type splash struct {
	x, y    float64
	vx, vy  float64
	life    float64
	maxLife float64
	color   bgcraft.Color
}

type rainConfig struct {
	count    int
	speed    float64
	wind     float64
	palette  []bgcraft.Color
	splashes bool
}

// Rain is a streaking-raindrop effect with an optional splash burst on
// pointer presses. It registers itself as a pointer listener on the surface
// and deregisters on Destroy.
type Rain struct {
	surface *bgcraft.Surface
	cfg     rainConfig

	drops    []drop
	splashes []splash
	alive    int

	w, h      float64
	animating bool
}

// RainDescriptor returns the registry entry for the Rain effect.
func RainDescriptor() bgcraft.Descriptor {
	return bgcraft.Descriptor{
		Name: "Rain",
		New:  NewRain,
		Defaults: bgcraft.Options{
			"dropCount": float64(rainDefaultCount),
			"speed":     rainDefaultSpeed,
			"wind":      rainDefaultWind,
			"palette":   append([]string(nil), rainDefaultPalette...),
			"splashes":  true,
		},
		Schema: []bgcraft.ControlSpec{
			{
				Key: "dropCount", Label: "Drops", Kind: bgcraft.ControlNumber,
				Min: bgcraft.Bound(50), Max: bgcraft.Bound(1500), Step: 1,
				RequiresRestart: true,
			},
			{
				Key: "speed", Label: "Fall speed", Kind: bgcraft.ControlNumber,
				Min: bgcraft.Bound(0.2), Max: bgcraft.Bound(4), Step: 0.1,
			},
			{
				Key: "wind", Label: "Wind", Kind: bgcraft.ControlNumber,
				Min: bgcraft.Bound(-3), Max: bgcraft.Bound(3), Step: 0.1,
				Tooltip: "Horizontal drift; negative blows left",
			},
			{
				Key: "palette", Label: "Palette", Kind: bgcraft.ControlText,
				Placeholder: "#4a6cf7, #7a9cf9, #a9c1fb",
				Tooltip:     "Comma-separated drop colors",
			},
			{
				Key: "splashes", Label: "Splash on click", Kind: bgcraft.ControlBoolean,
			},
		},
	}
}

// NewRain constructs a Rain effect. The palette option is coerced into
// parsed colors here; unparsable entries are dropped and an empty result
// falls back to the default palette.
func NewRain(s *bgcraft.Surface, opts bgcraft.Options) (bgcraft.Effect, error) {
	if s == nil {
		return nil, errors.New("rain: no drawing surface")
	}
	e := &Rain{surface: s}
	e.cfg = rainConfig{
		count:    opts.Int("dropCount", rainDefaultCount),
		speed:    opts.Float("speed", rainDefaultSpeed),
		wind:     opts.Float("wind", rainDefaultWind),
		palette:  parsePalette(opts.Strings("palette", rainDefaultPalette)),
		splashes: opts.Bool("splashes", true),
	}
	e.recomputeBounds()
	e.resizeDrops(e.cfg.count)
	e.splashes = make([]splash, splashPool)
	s.AddPointerListener(e)
	return e, nil
}

// parsePalette coerces color strings into colors, dropping unparsable
// entries. An empty result falls back to the default palette.
func parsePalette(raw []string) []bgcraft.Color {
	out := make([]bgcraft.Color, 0, len(raw))
	for _, s := range raw {
		if c, ok := bgcraft.ParseColor(s); ok {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return parsePalette(rainDefaultPalette)
	}
	return out
}

// Start begins animating. Idempotent.
func (e *Rain) Start() {
	e.animating = true
}

// Stop halts animation, keeping drop and splash state. Idempotent.
func (e *Rain) Stop() {
	e.animating = false
}

// Destroy stops the effect, deregisters the pointer listener, and drops the
// particle pools.
func (e *Rain) Destroy() {
	e.Stop()
	e.surface.RemovePointerListener(e)
	e.drops = nil
	e.splashes = nil
	e.alive = 0
}

// Animating reports whether the effect wants per-frame advancement.
func (e *Rain) Animating() bool {
	return e.animating
}

// Resize recomputes the fall bounds and re-wraps drops into them, then
// redraws when idle.
func (e *Rain) Resize() {
	oldW, oldH := e.w, e.h
	e.recomputeBounds()
	if oldW > 0 && oldH > 0 && e.w > 0 && e.h > 0 {
		for i := range e.drops {
			e.drops[i].x = e.drops[i].x / oldW * e.w
			e.drops[i].y = e.drops[i].y / oldH * e.h
		}
	}
	if !e.animating {
		e.Draw()
	}
}

func (e *Rain) recomputeBounds() {
	w, h := e.surface.Size()
	e.w, e.h = float64(w), float64(h)
}

// ApplyOptions merges a partial option update. A drop-count change resizes
// the drop pool in place; a palette change recolors existing drops.
func (e *Rain) ApplyOptions(partial bgcraft.Options) {
	if _, ok := partial["dropCount"]; ok {
		if n := partial.Int("dropCount", e.cfg.count); n != e.cfg.count {
			e.resizeDrops(n)
		}
	}
	e.cfg.speed = partial.Float("speed", e.cfg.speed)
	e.cfg.wind = partial.Float("wind", e.cfg.wind)
	e.cfg.splashes = partial.Bool("splashes", e.cfg.splashes)
	if _, ok := partial["palette"]; ok {
		e.cfg.palette = parsePalette(partial.Strings("palette", nil))
		for i := range e.drops {
			e.drops[i].color = e.pick()
		}
	}
}

func (e *Rain) resizeDrops(n int) {
	if n < 0 {
		n = 0
	}
	e.cfg.count = n
	if n <= len(e.drops) {
		e.drops = e.drops[:n]
		return
	}
	for len(e.drops) < n {
		e.drops = append(e.drops, e.newDrop(true))
	}
}

func (e *Rain) newDrop(anywhere bool) drop {
	w, h := e.w, e.h
	if w <= 0 {
		w = bgcraft.DefaultSurfaceWidth
	}
	if h <= 0 {
		h = bgcraft.DefaultSurfaceHeight
	}
	d := drop{
		x:     rand.Float64() * w,
		y:     -rand.Float64() * h * 0.2,
		depth: 0.3 + rand.Float64()*0.7,
		color: e.pick(),
	}
	if anywhere {
		d.y = rand.Float64() * h
	}
	return d
}

func (e *Rain) pick() bgcraft.Color {
	return e.cfg.palette[rand.IntN(len(e.cfg.palette))]
}

// PointerDown spawns a splash burst at the press position when splashes are
// enabled. Implements bgcraft.PointerListener.
func (e *Rain) PointerDown(x, y float64) {
	if !e.cfg.splashes || e.splashes == nil {
		return
	}
	for i := 0; i < 24 && e.alive < len(e.splashes); i++ {
		p := &e.splashes[e.alive]
		angle := rand.Float64() * 2 * math.Pi
		speed := 60 + rand.Float64()*180
		*p = splash{
			x: x, y: y,
			vx:    speed * math.Cos(angle),
			vy:    -speed * math.Abs(math.Sin(angle)),
			life:  0.4 + rand.Float64()*0.4,
			color: e.pick(),
		}
		p.maxLife = p.life
		e.alive++
	}
}

// Advance steps drops and splash particles by dt seconds.
func (e *Rain) Advance(dt float64) {
	if e.w <= 0 || e.h <= 0 {
		return
	}
	fall := e.cfg.speed * 420 * dt
	drift := e.cfg.wind * 120 * dt
	for i := range e.drops {
		d := &e.drops[i]
		d.y += fall * d.depth
		d.x += drift * d.depth
		if d.y > e.h || d.x < -20 || d.x > e.w+20 {
			e.drops[i] = e.newDrop(false)
		}
	}

	// Update splash particles, swap-remove dead ones.
	i := 0
	for i < e.alive {
		p := &e.splashes[i]
		p.life -= dt
		if p.life <= 0 {
			e.alive--
			e.splashes[i] = e.splashes[e.alive]
			continue
		}
		p.vy += splashGravity * dt
		p.x += p.vx * dt
		p.y += p.vy * dt
		i++
	}
}

// Draw performs one render pass of the current state.
func (e *Rain) Draw() {
	img := e.surface.Image()
	if img == nil {
		return
	}
	img.Fill(bgcraft.Color{R: 0.03, G: 0.04, B: 0.08, A: 1}.NRGBA())

	for i := range e.drops {
		d := &e.drops[i]
		length := 8 + 16*d.depth*e.cfg.speed
		tilt := e.cfg.wind * 4 * d.depth
		col := d.color.WithAlpha(0.3 + 0.7*d.depth).NRGBA()
		vector.StrokeLine(img,
			float32(d.x), float32(d.y),
			float32(d.x+tilt), float32(d.y+length),
			float32(0.5+d.depth), col, true)
	}

	for i := 0; i < e.alive; i++ {
		p := &e.splashes[i]
		t := p.life / p.maxLife
		vector.DrawFilledCircle(img,
			float32(p.x), float32(p.y),
			float32(1+2*t), p.color.WithAlpha(t).NRGBA(), true)
	}
}
