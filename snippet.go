package bgcraft

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/atotto/clipboard"
)

// GenerateSnippet assembles a self-contained Go source snippet for embedding
// the named effect elsewhere: usage instructions, the effect's source, and an
// initialization function applying only the options that differ from the
// effect's defaults.
func GenerateSnippet(name, source string, defaults, opts Options) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "// Background effect %q exported from bgcraft.\n", name)
	sb.WriteString("//\n")
	sb.WriteString("// Usage: drop this file into your project, create a bgcraft.Surface,\n")
	sb.WriteString("// and construct the effect with ConfiguredOptions():\n")
	sb.WriteString("//\n")
	fmt.Fprintf(&sb, "//\teffect, err := New%s(surface, ConfiguredOptions())\n", exportIdent(name))
	sb.WriteString("//\teffect.Start()\n")
	sb.WriteString("//\n")
	sb.WriteString("// Drive effect.Advance and effect.Draw from your frame loop.\n\n")

	sb.WriteString(strings.TrimRight(source, "\n"))
	sb.WriteString("\n\n")

	sb.WriteString("// ConfiguredOptions returns the option overrides chosen in the\n")
	sb.WriteString("// configurator. Keys not listed keep the effect's defaults.\n")
	sb.WriteString("func ConfiguredOptions() bgcraft.Options {\n")
	sb.WriteString("\treturn bgcraft.Options{\n")
	for _, key := range nonDefaultKeys(defaults, opts) {
		fmt.Fprintf(&sb, "\t\t%q: %s,\n", key, optionLiteral(opts[key]))
	}
	sb.WriteString("\t}\n")
	sb.WriteString("}\n")

	return sb.String()
}

// nonDefaultKeys returns the keys of opts whose values differ from defaults,
// sorted for stable output.
func nonDefaultKeys(defaults, opts Options) []string {
	keys := make([]string, 0, len(opts))
	for k, v := range opts {
		if def, ok := defaults[k]; ok && valueEqual(def, v) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// optionLiteral renders an option value as a Go literal.
func optionLiteral(v any) string {
	switch t := v.(type) {
	case float64:
		s := strconv.FormatFloat(t, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	case bool:
		return strconv.FormatBool(t)
	case string:
		return strconv.Quote(t)
	case []string:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = strconv.Quote(e)
		}
		return "[]string{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%#v", v)
	}
}

// exportIdent turns a display name into an exported Go identifier
// ("Starfield", "Gradient Flow" -> "GradientFlow").
func exportIdent(name string) string {
	var sb strings.Builder
	upper := true
	for _, r := range name {
		if r == ' ' || r == '-' || r == '_' {
			upper = true
			continue
		}
		if upper {
			sb.WriteString(strings.ToUpper(string(r)))
			upper = false
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// HighlightSnippet writes the snippet to w with terminal syntax highlighting.
func HighlightSnippet(w io.Writer, code string) error {
	if err := quick.Highlight(w, code, "go", "terminal256", "monokai"); err != nil {
		return fmt.Errorf("highlight snippet: %w", err)
	}
	return nil
}

// CopySnippet places the snippet on the system clipboard.
func CopySnippet(code string) error {
	if err := clipboard.WriteAll(code); err != nil {
		return fmt.Errorf("copy snippet: %w", err)
	}
	return nil
}
