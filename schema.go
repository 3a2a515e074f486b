package bgcraft

import (
	"fmt"
	"math"
)

// ControlKind distinguishes the UI control generated for a ControlSpec.
type ControlKind uint8

const (
	ControlNumber  ControlKind = iota // numeric input with min/max/step
	ControlText                       // free text (list-valued when the default is a list)
	ControlColor                      // plain color value
	ControlBoolean                    // toggle, committed on change
	ControlSelect                     // closed enumeration, committed on change
)

// ControlSpec describes one adjustable option of an effect.
type ControlSpec struct {
	// Key names the option; it must exist in the descriptor's Defaults.
	Key   string
	Label string
	Kind  ControlKind

	// Min and Max bound numeric values. A nil bound is open-ended.
	Min *float64
	Max *float64
	// Step is the control increment. An integer step >= 1 makes the option
	// integer-valued; zero means unspecified.
	Step float64

	// Choices is the closed value set for ControlSelect.
	Choices []string

	Placeholder string
	Tooltip     string

	// RichColor marks a text spec whose value is a color-function string,
	// rendered with a paired swatch and opacity slider.
	RichColor bool

	// RequiresRestart forces a destroy-and-recreate of the live instance
	// when this option changes. RequiresResize triggers a resize pass after
	// an incremental update.
	RequiresRestart bool
	RequiresResize  bool
}

// Bound is a convenience for building *float64 spec bounds.
func Bound(v float64) *float64 {
	return &v
}

// Descriptor is a registry entry: an effect's display name, constructor,
// default options, and control schema. Immutable after registration.
type Descriptor struct {
	Name     string
	New      Constructor
	Defaults Options
	Schema   []ControlSpec
}

// spec returns the ControlSpec for key, or nil when the schema has none.
func (d *Descriptor) spec(key string) *ControlSpec {
	for i := range d.Schema {
		if d.Schema[i].Key == key {
			return &d.Schema[i]
		}
	}
	return nil
}

// validateDescriptor checks a descriptor at registration time. Every schema
// key must exist in Defaults (a typo would otherwise silently no-op at
// runtime), keys must be unique, selects need choices containing the default,
// and numeric defaults must lie within their declared bounds.
func validateDescriptor(d Descriptor) error {
	if d.Name == "" {
		return fmt.Errorf("descriptor has no name")
	}
	if d.New == nil {
		return fmt.Errorf("effect %q: nil constructor", d.Name)
	}
	seen := make(map[string]bool, len(d.Schema))
	for _, cs := range d.Schema {
		if cs.Key == "" {
			return fmt.Errorf("effect %q: control spec with empty key", d.Name)
		}
		if seen[cs.Key] {
			return fmt.Errorf("effect %q: duplicate control key %q", d.Name, cs.Key)
		}
		seen[cs.Key] = true

		def, ok := d.Defaults[cs.Key]
		if !ok {
			return fmt.Errorf("effect %q: control key %q has no default option", d.Name, cs.Key)
		}

		switch cs.Kind {
		case ControlNumber:
			v, ok := def.(float64)
			if !ok {
				return fmt.Errorf("effect %q: key %q: number control requires a float64 default, got %T", d.Name, cs.Key, def)
			}
			if cs.Min != nil && cs.Max != nil && *cs.Min > *cs.Max {
				return fmt.Errorf("effect %q: key %q: min %v exceeds max %v", d.Name, cs.Key, *cs.Min, *cs.Max)
			}
			if cs.Min != nil && v < *cs.Min || cs.Max != nil && v > *cs.Max {
				return fmt.Errorf("effect %q: key %q: default %v outside [%v, %v]", d.Name, cs.Key, v, boundString(cs.Min), boundString(cs.Max))
			}
		case ControlSelect:
			if len(cs.Choices) == 0 {
				return fmt.Errorf("effect %q: key %q: select control has no choices", d.Name, cs.Key)
			}
			s, ok := def.(string)
			if !ok {
				return fmt.Errorf("effect %q: key %q: select control requires a string default, got %T", d.Name, cs.Key, def)
			}
			found := false
			for _, c := range cs.Choices {
				if c == s {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("effect %q: key %q: default %q not among choices", d.Name, cs.Key, s)
			}
		case ControlBoolean:
			if _, ok := def.(bool); !ok {
				return fmt.Errorf("effect %q: key %q: boolean control requires a bool default, got %T", d.Name, cs.Key, def)
			}
		}
	}
	return nil
}

func boundString(b *float64) string {
	if b == nil {
		return "-"
	}
	return fmt.Sprintf("%v", *b)
}

// integerStep reports whether the spec's step makes the option
// integer-valued: an integer step of at least 1.
func (cs *ControlSpec) integerStep() bool {
	return cs.Step >= 1 && cs.Step == math.Trunc(cs.Step)
}
