package bgcraft

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sentinel errors for the builder's contracted failure paths.
var (
	// ErrBuilderInvalid is returned when the builder failed to initialize
	// or has been destroyed. An invalid builder honors no operations.
	ErrBuilderInvalid = errors.New("bgcraft: builder is invalid")
	// ErrUnknownEffect is returned by Select for an unregistered name.
	ErrUnknownEffect = errors.New("bgcraft: unknown effect")
)

// ChangeEvent is emitted after every stored option change and on effect
// switch, carrying a snapshot of the full current option set. Consumed by
// persistence glue.
type ChangeEvent struct {
	Effect  string
	Options Options
}

// Builder orchestrates the one live effect instance: registration, selection,
// option validation and coercion, live updates, and teardown. It owns the
// surface and the control models; effects only borrow the surface.
//
// The builder is either Empty (no effect selected) or Active (an instance is
// running or statically drawn). All methods are single-goroutine; the builder
// is driven from the host's update loop.
type Builder struct {
	surface *Surface
	log     *Logger

	descriptors map[string]*Descriptor
	order       []string

	active     Effect
	activeName string
	options    Options
	controls   []*Control

	loop     *Loop
	onChange func(ChangeEvent)

	inlineErr string
	invalid   bool
}

// NewBuilder creates a builder around the given surface. A nil surface is a
// fatal configuration error: the builder is created permanently invalid and
// refuses all operations. A nil logger falls back to DiscardLogger.
func NewBuilder(surface *Surface, log *Logger) *Builder {
	if log == nil {
		log = DiscardLogger()
	}
	b := &Builder{
		surface:     surface,
		log:         log,
		descriptors: make(map[string]*Descriptor),
		options:     Options{},
	}
	b.loop = NewLoop(b.step)
	if surface == nil {
		b.invalid = true
		log.Errorf("builder: no surface available, marking invalid")
	}
	return b
}

// SetOnChange installs the change-notification callback. Pass nil to remove.
func (b *Builder) SetOnChange(fn func(ChangeEvent)) {
	b.onChange = fn
}

// Register adds an effect descriptor to the registry. On an invalid builder
// registration is dropped with a log entry only. A descriptor that fails
// schema validation (a control key with no matching default, a select with no
// choices, an out-of-range default) is rejected loudly.
func (b *Builder) Register(d Descriptor) error {
	if b.invalid {
		b.log.Errorf("register %q: builder is invalid, dropping", d.Name)
		return nil
	}
	if err := validateDescriptor(d); err != nil {
		b.log.Errorf("register: %v", err)
		return fmt.Errorf("register: %w", err)
	}
	if _, dup := b.descriptors[d.Name]; dup {
		err := fmt.Errorf("register: effect %q already registered", d.Name)
		b.log.Errorf("%v", err)
		return err
	}
	desc := d
	b.descriptors[d.Name] = &desc
	b.order = append(b.order, d.Name)
	return nil
}

// EffectNames returns the registered effect names in registration order.
func (b *Builder) EffectNames() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Select makes the named effect active, replacing any current instance. The
// new option set is a deep copy of load when given, else of the descriptor's
// defaults. A constructor failure aborts the selection: the builder logs,
// records an inline error, and is left Empty but usable.
func (b *Builder) Select(name string, load Options) error {
	if b.invalid {
		return ErrBuilderInvalid
	}
	d, ok := b.descriptors[name]
	if !ok {
		return fmt.Errorf("select %q: %w", name, ErrUnknownEffect)
	}

	b.teardown()
	b.surface.Clear()

	opts := d.Defaults.Clone()
	if load != nil {
		opts = load.Clone()
	}

	b.surface.EnsureSize()
	inst, err := d.New(b.surface, opts)
	if err != nil {
		b.activeName = ""
		b.options = Options{}
		b.controls = nil
		b.inlineErr = fmt.Sprintf("could not start %q: %v", name, err)
		b.log.Errorf("select %q: constructor failed: %v", name, err)
		return fmt.Errorf("select %q: %w", name, err)
	}

	b.inlineErr = ""
	b.active = inst
	b.activeName = name
	b.options = opts
	b.controls = BuildControls(d.Schema, opts)

	inst.Start()
	if inst.Animating() {
		b.loop.Start()
	} else {
		b.loop.Stop()
	}

	b.emitChange()
	return nil
}

// UpdateOption validates and coerces a raw control value for key, stores it,
// reflects it back into the control model, notifies listeners, and applies it
// to the live instance incrementally or via a full restart, per the control
// spec's flags. A key with no control spec passes through unvalidated.
func (b *Builder) UpdateOption(key string, raw any) {
	if b.invalid || b.activeName == "" {
		return
	}
	d := b.descriptors[b.activeName]
	cs := d.spec(key)

	value := raw
	if cs != nil {
		switch cs.Kind {
		case ControlNumber:
			value = b.coerceNumber(d, cs, raw)
		case ControlText:
			if _, isList := d.Defaults[key].([]string); isList {
				value = coerceList(raw)
			}
		}
	}

	b.options[key] = value

	// Reflect only when the processed value differs from what the control
	// displays, so typing is not disrupted by a cursor reset.
	if c := b.control(key); c != nil {
		c.Reflect(value)
	}

	b.emitChange()

	if cs == nil || !cs.RequiresRestart {
		if b.active != nil {
			b.active.ApplyOptions(Options{key: value})
			if cs != nil && cs.RequiresResize {
				b.active.Resize()
			}
			// The change may have started or stopped the effect's own
			// animation; keep the loop in step with it.
			if b.active.Animating() {
				b.loop.Start()
			} else {
				b.loop.Stop()
				b.active.Draw()
			}
		}
		return
	}
	b.restart()
}

// coerceNumber applies the numeric pipeline: parse, revert-on-invalid, clamp
// to the spec bounds, then integer or 4-decimal rounding.
func (b *Builder) coerceNumber(d *Descriptor, cs *ControlSpec, raw any) float64 {
	s := strings.TrimSpace(fmt.Sprint(raw))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Revert to the previously stored value, else the default, and run
		// it through the same clamp and round below.
		if prev, ok := b.options[cs.Key].(float64); ok {
			v = prev
		} else if def, ok := d.Defaults[cs.Key].(float64); ok {
			v = def
		} else {
			v = 0
		}
	}
	if cs.Min != nil && v < *cs.Min {
		v = *cs.Min
	}
	if cs.Max != nil && v > *cs.Max {
		v = *cs.Max
	}
	if cs.integerStep() || (cs.Step == 0 && v == math.Trunc(v)) {
		return math.Round(v)
	}
	return round4(v)
}

// coerceList splits a comma-separated string into a trimmed list, dropping
// empty segments. An all-empty input yields an empty list. Non-string input
// that is not already a list is kept as a scalar fallback.
func coerceList(raw any) any {
	switch t := raw.(type) {
	case string:
		out := []string{}
		for _, part := range strings.Split(t, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
		return out
	case []string:
		cp := make([]string, len(t))
		copy(cp, t)
		return cp
	default:
		return raw
	}
}

// restart tears down the live instance and reinstantiates it with the full
// current option set. On constructor failure the instance stays nil and an
// inline error is surfaced; the builder remains usable.
func (b *Builder) restart() {
	d, ok := b.descriptors[b.activeName]
	if !ok {
		return
	}
	b.teardown()
	b.surface.Clear()
	b.surface.EnsureSize()

	inst, err := d.New(b.surface, b.options.Clone())
	if err != nil {
		b.loop.Stop()
		b.inlineErr = fmt.Sprintf("could not restart %q: %v", b.activeName, err)
		b.log.Errorf("restart %q: constructor failed: %v", b.activeName, err)
		return
	}
	b.inlineErr = ""
	b.active = inst
	inst.Start()
	if inst.Animating() {
		b.loop.Start()
	} else {
		b.loop.Stop()
	}
}

// Clear transitions Active to Empty: destroys the instance, clears the
// surface and option set, and drops the control models so the host shows its
// placeholder.
func (b *Builder) Clear() {
	if b.invalid {
		return
	}
	b.teardown()
	b.loop.Stop()
	b.surface.Clear()
	b.activeName = ""
	b.options = Options{}
	b.controls = nil
	b.inlineErr = ""
}

// Destroy performs full teardown and marks the builder permanently invalid.
// No further operations are honored afterward.
func (b *Builder) Destroy() {
	if b.invalid {
		return
	}
	b.teardown()
	b.loop.Stop()
	if b.surface != nil {
		b.surface.Dispose()
	}
	b.descriptors = make(map[string]*Descriptor)
	b.order = nil
	b.options = Options{}
	b.controls = nil
	b.activeName = ""
	b.invalid = true
}

// teardown destroys the current instance, if any.
func (b *Builder) teardown() {
	if b.active != nil {
		b.active.Destroy()
		b.active = nil
	}
}

// Advance drives the animation loop by dt seconds. Call once per host frame.
func (b *Builder) Advance(dt float64) {
	if b.invalid {
		return
	}
	b.loop.Tick(dt)
}

// step is the loop task: advance and redraw the live instance while it
// animates.
func (b *Builder) step(dt float64) {
	if b.active == nil || !b.active.Animating() {
		return
	}
	b.active.Advance(dt)
	b.active.Draw()
}

// HandleResize is the serialized external-resize path: it records the new
// container dimensions, resizes the surface, and forwards to the active
// instance's Resize.
func (b *Builder) HandleResize(w, h int) {
	if b.invalid {
		return
	}
	b.surface.SetParentSize(w, h)
	if w > 0 && h > 0 {
		b.surface.SetSize(w, h)
	} else {
		b.surface.EnsureSize()
	}
	if b.active != nil {
		b.active.Resize()
	}
}

func (b *Builder) emitChange() {
	if b.onChange != nil {
		b.onChange(ChangeEvent{Effect: b.activeName, Options: b.options.Clone()})
	}
}

func (b *Builder) control(key string) *Control {
	for _, c := range b.controls {
		if c.Key == key {
			return c
		}
	}
	return nil
}

// ActiveName returns the selected effect's name, or "" when Empty.
func (b *Builder) ActiveName() string {
	return b.activeName
}

// ActiveEffect returns the live instance, or nil.
func (b *Builder) ActiveEffect() Effect {
	return b.active
}

// Options returns a snapshot of the current option set.
func (b *Builder) Options() Options {
	return b.options.Clone()
}

// Controls returns the control models for the active effect's schema.
func (b *Builder) Controls() []*Control {
	return b.controls
}

// Descriptor returns the registered descriptor for name, or nil.
func (b *Builder) Descriptor(name string) *Descriptor {
	return b.descriptors[name]
}

// Surface returns the builder's drawing surface.
func (b *Builder) Surface() *Surface {
	return b.surface
}

// InlineError returns the user-facing error from the last failed
// instantiation, or "".
func (b *Builder) InlineError() string {
	return b.inlineErr
}

// Invalid reports whether the builder has been destroyed or failed to
// initialize.
func (b *Builder) Invalid() bool {
	return b.invalid
}

// Animating reports whether the animation loop is currently running.
func (b *Builder) Animating() bool {
	return b.loop.Running()
}
