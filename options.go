package bgcraft

import (
	"fmt"
	"strconv"
)

// Options is the option set for one effect: a mapping from ControlSpec keys to
// values. Permitted value kinds are float64, bool, string, and []string.
// Numeric values are always stored as float64 regardless of whether the
// control treats them as integers.
type Options map[string]any

// Clone returns a deep copy. Cloning is explicit and kind-aware; slices are
// copied so the result never aliases the source (or an effect's defaults).
func (o Options) Clone() Options {
	if o == nil {
		return Options{}
	}
	out := make(Options, len(o))
	for k, v := range o {
		if list, ok := v.([]string); ok {
			cp := make([]string, len(list))
			copy(cp, list)
			out[k] = cp
			continue
		}
		out[k] = v
	}
	return out
}

// Merge copies every entry of partial into o, overwriting existing keys.
// List values are copied, not aliased.
func (o Options) Merge(partial Options) {
	for k, v := range partial {
		if list, ok := v.([]string); ok {
			cp := make([]string, len(list))
			copy(cp, list)
			o[k] = cp
			continue
		}
		o[k] = v
	}
}

// Float returns the float64 value for key, or fallback when the key is absent
// or holds a different kind.
func (o Options) Float(key string, fallback float64) float64 {
	if v, ok := o[key].(float64); ok {
		return v
	}
	return fallback
}

// Int returns the value for key rounded to int, or fallback.
func (o Options) Int(key string, fallback int) int {
	if v, ok := o[key].(float64); ok {
		return int(v + 0.5)
	}
	return fallback
}

// Bool returns the bool value for key, or fallback.
func (o Options) Bool(key string, fallback bool) bool {
	if v, ok := o[key].(bool); ok {
		return v
	}
	return fallback
}

// String returns the string value for key, or fallback.
func (o Options) String(key, fallback string) string {
	if v, ok := o[key].(string); ok {
		return v
	}
	return fallback
}

// Strings returns the list value for key, or fallback. The returned slice is
// the stored one; callers must not mutate it.
func (o Options) Strings(key string, fallback []string) []string {
	if v, ok := o[key].([]string); ok {
		return v
	}
	return fallback
}

// Color returns the parsed color value for key, or fallback when the key is
// absent or the stored string does not parse.
func (o Options) Color(key string, fallback Color) Color {
	if s, ok := o[key].(string); ok {
		if c, ok := ParseColor(s); ok {
			return c
		}
	}
	return fallback
}

// valueEqual compares two option values, treating []string by content.
func valueEqual(a, b any) bool {
	la, aok := a.([]string)
	lb, bok := b.([]string)
	if aok || bok {
		if !aok || !bok || len(la) != len(lb) {
			return false
		}
		for i := range la {
			if la[i] != lb[i] {
				return false
			}
		}
		return true
	}
	return a == b
}

// displayString renders an option value the way its control displays it.
// Numbers drop trailing zeros, lists join with ", ".
func displayString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case string:
		return t
	case []string:
		out := ""
		for i, s := range t {
			if i > 0 {
				out += ", "
			}
			out += s
		}
		return out
	default:
		return fmt.Sprint(t)
	}
}
