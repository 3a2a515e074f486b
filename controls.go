package bgcraft

// defaultNumberStep is the fine-grained increment used when a numeric spec
// leaves Step unspecified.
const defaultNumberStep = 0.01

// Control is the renderable model for one schema entry: what a host draws and
// edits. Edits funnel back through Builder.UpdateOption; boolean and select
// controls commit on change, the rest update live while typing.
type Control struct {
	Kind  ControlKind
	Key   string
	Label string

	// Display is the control's current displayed value.
	Display string

	// Numeric bounds and increment (ControlNumber).
	Min, Max *float64
	Step     float64

	// Choices and the index of the selected entry (ControlSelect).
	Choices  []string
	Selected int

	// Checked is the toggle state (ControlBoolean).
	Checked bool

	Placeholder string
	Tooltip     string

	// Color is the derived swatch/opacity pair for rich color text
	// controls, nil otherwise.
	Color *ColorField
}

// ColorField is the visual companion of a rich color text control: a swatch
// hex plus an opacity slider value. The text control stays the authoritative
// source; the field is derived for display and composed back on swatch or
// slider edits.
type ColorField struct {
	Swatch  string
	Opacity float64
}

// Committed reports whether the control applies edits on commit rather than
// per keystroke.
func (c *Control) Committed() bool {
	return c.Kind == ControlBoolean || c.Kind == ControlSelect
}

// Reflect updates the control's displayed state from a processed option
// value. The display is rewritten only when it differs, so reflecting a
// value the user just typed does not disturb their cursor. Reports whether
// anything changed.
func (c *Control) Reflect(value any) bool {
	display := displayString(value)
	if display == c.Display {
		return false
	}
	c.Display = display
	switch c.Kind {
	case ControlBoolean:
		c.Checked, _ = value.(bool)
	case ControlSelect:
		c.Selected = choiceIndex(c.Choices, display)
	}
	if c.Color != nil {
		// Display-only derivation; does not re-enter the update path.
		if cf, ok := DeriveColorField(display); ok {
			*c.Color = cf
		}
	}
	return true
}

// BuildControls generates control models from a schema and the current option
// set. Pure: it never touches the builder or the live instance.
func BuildControls(schema []ControlSpec, opts Options) []*Control {
	controls := make([]*Control, 0, len(schema))
	for i := range schema {
		cs := &schema[i]
		value, ok := opts[cs.Key]
		if !ok {
			continue
		}
		c := &Control{
			Kind:        cs.Kind,
			Key:         cs.Key,
			Label:       cs.Label,
			Display:     displayString(value),
			Min:         cs.Min,
			Max:         cs.Max,
			Step:        cs.Step,
			Choices:     cs.Choices,
			Placeholder: cs.Placeholder,
			Tooltip:     cs.Tooltip,
		}
		switch cs.Kind {
		case ControlNumber:
			if c.Step == 0 {
				c.Step = defaultNumberStep
			}
		case ControlBoolean:
			c.Checked, _ = value.(bool)
		case ControlSelect:
			c.Selected = choiceIndex(cs.Choices, c.Display)
		case ControlText:
			if cs.RichColor {
				cf, ok := DeriveColorField(c.Display)
				if !ok {
					cf = ColorField{Swatch: "#ffffff", Opacity: 1}
				}
				c.Color = &cf
			}
		}
		controls = append(controls, c)
	}
	return controls
}

// choiceIndex returns the index of value among choices (string-compared),
// or 0 when absent.
func choiceIndex(choices []string, value string) int {
	for i, ch := range choices {
		if ch == value {
			return i
		}
	}
	return 0
}

// DeriveColorField parses a raw color string into swatch and opacity state
// for display. The boolean result reports whether the string parsed.
func DeriveColorField(raw string) (ColorField, bool) {
	c, ok := ParseColor(raw)
	if !ok {
		return ColorField{}, false
	}
	return ColorField{Swatch: HexColor(c), Opacity: c.A}, true
}

// ComposeColor combines a swatch hex and an opacity into the canonical
// rgba() option string. Editing the swatch or slider composes a new string
// that is written back through the normal update path. An unparsable swatch
// composes opaque white at the given opacity.
func ComposeColor(swatch string, opacity float64) string {
	c, ok := ParseColor(swatch)
	if !ok {
		c = ColorWhite
	}
	return FormatColor(c.WithAlpha(clamp01(opacity)))
}
