package effects

import (
	"errors"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/bgcraft/bgcraft"
)

// Starfield defaults.
const (
	starfieldDefaultCount = 300
	starfieldDefaultSpeed = 2.0
	starfieldMinDepth     = 0.05
)

var starfieldDefaultColor = bgcraft.Color{R: 1, G: 1, B: 1, A: 1}

// star holds per-star simulation state. Positions are normalized to [-1, 1]
// around the surface center; z is depth in (0, 1] for the outward mode.
type star struct {
	x, y, z float64
	// Previous projected position, for warp trails.
	px, py float64
	hasPrev bool
}

type starfieldConfig struct {
	count     int
	speed     float64
	warp      bool
	color     bgcraft.Color
	direction string // "outward", "left", "up"
}

// Starfield is a flying-through-space effect: stars stream outward from the
// center (or drift directionally), leaving warp trails when enabled.
type Starfield struct {
	surface *bgcraft.Surface
	cfg     starfieldConfig
	stars   []star

	// Geometry derived from the surface dimensions, recomputed on Resize.
	w, h, cx, cy float64

	animating bool
}

// StarfieldDescriptor returns the registry entry for the Starfield effect.
func StarfieldDescriptor() bgcraft.Descriptor {
	return bgcraft.Descriptor{
		Name: "Starfield",
		New:  NewStarfield,
		Defaults: bgcraft.Options{
			"starCount":  float64(starfieldDefaultCount),
			"speed":      starfieldDefaultSpeed,
			"warpEffect": true,
			"starColor":  "rgba(255, 255, 255, 1)",
			"direction":  "outward",
		},
		Schema: []bgcraft.ControlSpec{
			{
				Key: "starCount", Label: "Stars", Kind: bgcraft.ControlNumber,
				Min: bgcraft.Bound(50), Max: bgcraft.Bound(2000), Step: 1,
				Tooltip:         "Number of stars in the field",
				RequiresRestart: true,
			},
			{
				Key: "speed", Label: "Speed", Kind: bgcraft.ControlNumber,
				Min: bgcraft.Bound(0.1), Max: bgcraft.Bound(20), Step: 0.1,
			},
			{
				Key: "warpEffect", Label: "Warp trails", Kind: bgcraft.ControlBoolean,
				Tooltip: "Stars leave streaks instead of points",
			},
			{
				Key: "starColor", Label: "Star color", Kind: bgcraft.ControlText,
				RichColor: true,
			},
			{
				Key: "direction", Label: "Direction", Kind: bgcraft.ControlSelect,
				Choices: []string{"outward", "left", "up"},
			},
		},
	}
}

// NewStarfield constructs a Starfield on the given surface. Options are
// coerced against the effect's defaults; the surface may still have zero
// area at this point.
func NewStarfield(s *bgcraft.Surface, opts bgcraft.Options) (bgcraft.Effect, error) {
	if s == nil {
		return nil, errors.New("starfield: no drawing surface")
	}
	e := &Starfield{surface: s}
	e.cfg = starfieldConfig{
		count:     opts.Int("starCount", starfieldDefaultCount),
		speed:     opts.Float("speed", starfieldDefaultSpeed),
		warp:      opts.Bool("warpEffect", true),
		color:     opts.Color("starColor", starfieldDefaultColor),
		direction: opts.String("direction", "outward"),
	}
	e.recomputeBounds()
	e.resizeStars(e.cfg.count)
	return e, nil
}

// Start begins animating. Idempotent.
func (e *Starfield) Start() {
	e.animating = true
}

// Stop halts animation, keeping star state for a later resume. Idempotent.
func (e *Starfield) Stop() {
	e.animating = false
}

// Destroy stops the effect and drops the star pool.
func (e *Starfield) Destroy() {
	e.Stop()
	e.stars = nil
}

// Animating reports whether the effect wants per-frame advancement.
func (e *Starfield) Animating() bool {
	return e.animating
}

// Resize recomputes the projection geometry from the surface dimensions and
// redraws immediately when not animating.
func (e *Starfield) Resize() {
	e.recomputeBounds()
	if !e.animating {
		e.Draw()
	}
}

func (e *Starfield) recomputeBounds() {
	w, h := e.surface.Size()
	e.w, e.h = float64(w), float64(h)
	e.cx, e.cy = e.w/2, e.h/2
}

// ApplyOptions merges a partial option update. A star-count change resizes
// the star pool in place; all other options apply without touching it.
func (e *Starfield) ApplyOptions(partial bgcraft.Options) {
	if _, ok := partial["starCount"]; ok {
		if n := partial.Int("starCount", e.cfg.count); n != e.cfg.count {
			e.resizeStars(n)
		}
	}
	e.cfg.speed = partial.Float("speed", e.cfg.speed)
	e.cfg.warp = partial.Bool("warpEffect", e.cfg.warp)
	e.cfg.color = partial.Color("starColor", e.cfg.color)
	if _, ok := partial["direction"]; ok {
		e.cfg.direction = partial.String("direction", e.cfg.direction)
		// Trails from the old heading would streak across the switch.
		e.clearTrails()
	}
}

// resizeStars grows or shrinks the pool to n, keeping existing stars.
func (e *Starfield) resizeStars(n int) {
	if n < 0 {
		n = 0
	}
	e.cfg.count = n
	if n <= len(e.stars) {
		e.stars = e.stars[:n]
		return
	}
	for len(e.stars) < n {
		e.stars = append(e.stars, newStar())
	}
}

func newStar() star {
	return star{
		x: rand.Float64()*2 - 1,
		y: rand.Float64()*2 - 1,
		z: starfieldMinDepth + rand.Float64()*(1-starfieldMinDepth),
	}
}

func (e *Starfield) clearTrails() {
	for i := range e.stars {
		e.stars[i].hasPrev = false
	}
}

// Advance steps the simulation by dt seconds.
func (e *Starfield) Advance(dt float64) {
	if e.w <= 0 || e.h <= 0 {
		return
	}
	switch e.cfg.direction {
	case "left":
		e.advanceDrift(dt, -1, 0)
	case "up":
		e.advanceDrift(dt, 0, -1)
	default:
		e.advanceOutward(dt)
	}
}

func (e *Starfield) advanceOutward(dt float64) {
	for i := range e.stars {
		s := &e.stars[i]
		s.px, s.py = e.project(s)
		s.hasPrev = true
		s.z -= e.cfg.speed * 0.2 * dt
		if s.z <= starfieldMinDepth {
			e.stars[i] = newStar()
			e.stars[i].z = 1
		}
	}
}

func (e *Starfield) advanceDrift(dt, dx, dy float64) {
	// Depth scales drift speed so the field has parallax.
	for i := range e.stars {
		s := &e.stars[i]
		s.px, s.py = e.project(s)
		s.hasPrev = true
		v := e.cfg.speed * 0.3 * dt / s.z
		s.x += dx * v
		s.y += dy * v
		if s.x < -1 {
			s.x += 2
			s.hasPrev = false
		}
		if s.y < -1 {
			s.y += 2
			s.hasPrev = false
		}
	}
}

// project maps a star's normalized position to surface pixels.
func (e *Starfield) project(s *star) (x, y float64) {
	switch e.cfg.direction {
	case "left", "up":
		return e.cx + s.x*e.cx, e.cy + s.y*e.cy
	default:
		return e.cx + s.x/s.z*e.cx, e.cy + s.y/s.z*e.cy
	}
}

// Draw performs one render pass of the current state.
func (e *Starfield) Draw() {
	img := e.surface.Image()
	if img == nil {
		return
	}
	if e.cfg.warp {
		// Dim the previous frame instead of clearing, so motion trails
		// accumulate.
		dimFrame(img, 0.25)
	} else {
		img.Fill(bgcraft.Color{A: 1}.NRGBA())
	}

	col := e.cfg.color.NRGBA()
	for i := range e.stars {
		s := &e.stars[i]
		x, y := e.project(s)
		if x < 0 || x >= e.w || y < 0 || y >= e.h {
			continue
		}
		r := float32(1.5 * (1.2 - s.z))
		if r < 0.5 {
			r = 0.5
		}
		if e.cfg.warp && s.hasPrev {
			vector.StrokeLine(img, float32(s.px), float32(s.py), float32(x), float32(y), r, col, true)
			continue
		}
		vector.DrawFilledCircle(img, float32(x), float32(y), r, col, true)
	}
}

// dimFrame multiplies the frame toward black by strength in [0, 1].
func dimFrame(img *ebiten.Image, strength float64) {
	b := img.Bounds()
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(b.Dx()), float64(b.Dy()))
	op.ColorScale.Scale(0, 0, 0, float32(strength))
	img.DrawImage(whitePixel, &op)
}

var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(bgcraft.ColorWhite.NRGBA())
}
