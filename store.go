package bgcraft

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// State is the persisted session document: the last selected effect and the
// last-used option set per effect name.
type State struct {
	LastEffect string             `yaml:"last_effect,omitempty"`
	Options    map[string]Options `yaml:"options,omitempty"`
}

// Store persists State as a YAML file. Loads tolerate a missing file; saves
// are atomic (temp file then rename) so a crash never leaves a torn state.
type Store struct {
	path  string
	log   *Logger
	state State
}

// DefaultStatePath returns the conventional state file location under the
// user config directory.
func DefaultStatePath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("state path: %w", err)
	}
	return filepath.Join(base, "bgcraft", "state.yaml"), nil
}

// NewStore creates a store backed by the YAML file at path. A nil logger
// falls back to DiscardLogger.
func NewStore(path string, log *Logger) *Store {
	if log == nil {
		log = DiscardLogger()
	}
	return &Store{
		path:  path,
		log:   log,
		state: State{Options: map[string]Options{}},
	}
}

// Load reads the state file. A missing file yields empty state and no error;
// a malformed file is an error.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("load state: parse %s: %w", s.path, err)
	}
	if st.Options == nil {
		st.Options = map[string]Options{}
	}
	// Re-type list values: YAML decodes them as []any.
	for name, opts := range st.Options {
		st.Options[name] = normalizeOptions(opts)
	}
	s.state = st
	return nil
}

// normalizeOptions converts YAML-decoded values to the option value kinds:
// numbers to float64, []any of strings to []string.
func normalizeOptions(opts Options) Options {
	out := make(Options, len(opts))
	for k, v := range opts {
		switch t := v.(type) {
		case int:
			out[k] = float64(t)
		case int64:
			out[k] = float64(t)
		case []any:
			list := make([]string, 0, len(t))
			for _, e := range t {
				list = append(list, fmt.Sprint(e))
			}
			out[k] = list
		default:
			out[k] = v
		}
	}
	return out
}

// Save writes the state file atomically, creating parent directories as
// needed.
func (s *Store) Save() error {
	data, err := yaml.Marshal(&s.state)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "state-*.yaml")
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save state: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Remember records a change event and saves. Intended as the builder's
// OnChange callback target.
func (s *Store) Remember(ev ChangeEvent) {
	if ev.Effect == "" {
		return
	}
	s.state.LastEffect = ev.Effect
	s.state.Options[ev.Effect] = ev.Options.Clone()
	if err := s.Save(); err != nil {
		s.log.Errorf("remember %q: %v", ev.Effect, err)
	}
}

// Forget clears the last-effect record (the user cleared the preview) and
// saves.
func (s *Store) Forget() {
	s.state.LastEffect = ""
	if err := s.Save(); err != nil {
		s.log.Errorf("forget: %v", err)
	}
}

// LastEffect returns the persisted last selected effect name, or "".
func (s *Store) LastEffect() string {
	return s.state.LastEffect
}

// OptionsFor returns a copy of the persisted option set for the named effect,
// or nil when none was saved.
func (s *Store) OptionsFor(name string) Options {
	opts, ok := s.state.Options[name]
	if !ok {
		return nil
	}
	return opts.Clone()
}
