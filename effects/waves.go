package effects

import (
	"errors"
	"math"

	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/bgcraft/bgcraft"
)

// Waves defaults.
const (
	wavesDefaultCount     = 3
	wavesDefaultAmplitude = 40.0
	wavesDefaultDetail    = 96
)

var wavesDefaultColor = bgcraft.Color{R: 0.18, G: 0.5, B: 0.85, A: 0.6}

type wavesConfig struct {
	waves     int
	amplitude float64
	detail    int
	animate   bool
	color     bgcraft.Color
}

// Waves renders layered sine waves across the bottom of the surface. With
// animation off it is a static effect: Start performs a single render pass
// and the builder's loop stays idle.
type Waves struct {
	surface *bgcraft.Surface
	cfg     wavesConfig

	// Column x-positions, derived from the surface width and the detail
	// option. Recomputed by Resize.
	columns []float64
	w, h    float64

	phase   float64
	swell   *gween.Tween
	swelling bool
	swellVal float64

	started bool
}

// WavesDescriptor returns the registry entry for the Waves effect.
func WavesDescriptor() bgcraft.Descriptor {
	return bgcraft.Descriptor{
		Name: "Waves",
		New:  NewWaves,
		Defaults: bgcraft.Options{
			"waveCount": float64(wavesDefaultCount),
			"amplitude": wavesDefaultAmplitude,
			"detail":    float64(wavesDefaultDetail),
			"animate":   true,
			"waveColor": "rgba(46, 128, 217, 0.6)",
		},
		Schema: []bgcraft.ControlSpec{
			{
				Key: "waveCount", Label: "Waves", Kind: bgcraft.ControlNumber,
				Min: bgcraft.Bound(1), Max: bgcraft.Bound(8), Step: 1,
			},
			{
				Key: "amplitude", Label: "Amplitude", Kind: bgcraft.ControlNumber,
				Min: bgcraft.Bound(5), Max: bgcraft.Bound(200), Step: 1,
			},
			{
				Key: "detail", Label: "Detail", Kind: bgcraft.ControlNumber,
				Min: bgcraft.Bound(16), Max: bgcraft.Bound(256), Step: 1,
				Tooltip:        "Sample columns across the width",
				RequiresResize: true,
			},
			{
				Key: "animate", Label: "Animate", Kind: bgcraft.ControlBoolean,
			},
			{
				Key: "waveColor", Label: "Wave color", Kind: bgcraft.ControlText,
				RichColor: true,
			},
		},
	}
}

// NewWaves constructs a Waves effect on the given surface.
func NewWaves(s *bgcraft.Surface, opts bgcraft.Options) (bgcraft.Effect, error) {
	if s == nil {
		return nil, errors.New("waves: no drawing surface")
	}
	e := &Waves{surface: s}
	e.cfg = wavesConfig{
		waves:     opts.Int("waveCount", wavesDefaultCount),
		amplitude: opts.Float("amplitude", wavesDefaultAmplitude),
		detail:    opts.Int("detail", wavesDefaultDetail),
		animate:   opts.Bool("animate", true),
		color:     opts.Color("waveColor", wavesDefaultColor),
	}
	e.swell = gween.New(0.85, 1.15, 3, ease.InOutSine)
	e.swelling = true
	e.swellVal = 1
	e.Resize()
	return e, nil
}

// Start begins animating, or renders a single frame when animation is off.
// Idempotent.
func (e *Waves) Start() {
	if e.started {
		return
	}
	e.started = true
	if !e.cfg.animate {
		e.Draw()
	}
}

// Stop halts animation, keeping the phase for a later resume. Idempotent.
func (e *Waves) Stop() {
	e.started = false
}

// Destroy stops the effect and drops the column geometry.
func (e *Waves) Destroy() {
	e.Stop()
	e.columns = nil
}

// Animating reports whether the effect wants per-frame advancement.
func (e *Waves) Animating() bool {
	return e.started && e.cfg.animate
}

// Resize recomputes the column geometry from the surface width and the
// detail option, then redraws when idle. The wave phase is untouched.
func (e *Waves) Resize() {
	w, h := e.surface.Size()
	e.w, e.h = float64(w), float64(h)

	n := e.cfg.detail
	if n < 2 {
		n = 2
	}
	e.columns = e.columns[:0]
	if e.w > 0 {
		step := e.w / float64(n-1)
		for i := 0; i < n; i++ {
			e.columns = append(e.columns, float64(i)*step)
		}
	}
	if !e.Animating() {
		e.Draw()
	}
}

// ApplyOptions merges a partial option update. A detail change only marks
// geometry stale; the builder follows with Resize via the RequiresResize
// flag.
func (e *Waves) ApplyOptions(partial bgcraft.Options) {
	e.cfg.waves = partial.Int("waveCount", e.cfg.waves)
	e.cfg.amplitude = partial.Float("amplitude", e.cfg.amplitude)
	e.cfg.detail = partial.Int("detail", e.cfg.detail)
	e.cfg.animate = partial.Bool("animate", e.cfg.animate)
	e.cfg.color = partial.Color("waveColor", e.cfg.color)
}

// Advance steps the phase and the swell tween by dt seconds.
func (e *Waves) Advance(dt float64) {
	e.phase += dt
	v, finished := e.swell.Update(float32(dt))
	e.swellVal = float64(v)
	if finished {
		from, to := float32(1.15), float32(0.85)
		if !e.swelling {
			from, to = to, from
		}
		e.swelling = !e.swelling
		e.swell = gween.New(from, to, 3, ease.InOutSine)
	}
}

// Draw performs one render pass of the current state.
func (e *Waves) Draw() {
	img := e.surface.Image()
	if img == nil || len(e.columns) < 2 {
		return
	}
	img.Fill(bgcraft.Color{R: 0.02, G: 0.05, B: 0.1, A: 1}.NRGBA())

	amp := e.cfg.amplitude * e.swellVal
	for layer := 0; layer < e.cfg.waves; layer++ {
		l := float64(layer)
		base := e.h * (0.55 + 0.1*l)
		freq := 1.5 + 0.7*l
		speed := 0.6 + 0.35*l
		alpha := e.cfg.color.A * (1 - l/float64(e.cfg.waves+1))
		col := e.cfg.color.WithAlpha(alpha).NRGBA()

		prevX := e.columns[0]
		prevY := base + amp*math.Sin(e.phase*speed)
		for i := 1; i < len(e.columns); i++ {
			x := e.columns[i]
			y := base + amp*math.Sin(x/e.w*freq*2*math.Pi+e.phase*speed)
			vector.StrokeLine(img,
				float32(prevX), float32(prevY),
				float32(x), float32(y),
				2, col, true)
			prevX, prevY = x, y
		}
	}
}
