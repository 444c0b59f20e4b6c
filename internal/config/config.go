package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/yourusername/cardshell/internal/suggest"
)

const (
	DefaultConfigDir  = ".config/cardshell"
	DefaultConfigName = "settings"
	EnvPrefix         = "CARDSHELL"
)

// newViper returns a viper instance seeded with the built-in defaults and
// environment overrides (CARDSHELL_<KEY>, key upper-cased).
func newViper() (*viper.Viper, error) {
	v := viper.New()

	defaults, err := DefaultsMap()
	if err != nil {
		return nil, err
	}
	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v, nil
}

// DefaultsMap returns the built-in settings as a flat key->value map
func DefaultsMap() (map[string]interface{}, error) {
	d := Defaults()
	return d.Map()
}

// Map returns the settings as a flat key->value map keyed by the
// canonical names
func (s *Settings) Map() (map[string]interface{}, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	out := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return out, nil
}

// Keys returns every canonical settings key, sorted
func Keys() []string {
	m, _ := DefaultsMap()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load reads settings from the specified path or default location.
// If path is empty, the file Resolve finds under ~/.config/cardshell is used;
// a missing default file is not an error.
func Load(path string) (*Settings, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	file, err := Resolve(path)
	if err != nil {
		return nil, err
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return decode(v)
}

// Resolve returns the settings file Load reads for path. An empty path
// searches the default directory in viper's extension order and returns
// "" when no file is there.
func Resolve(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	dir := filepath.Join(home, DefaultConfigDir)
	for _, ext := range viper.SupportedExts {
		p := filepath.Join(dir, DefaultConfigName+"."+ext)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", nil
}

// FromSnapshot builds settings from a flat key->value preference snapshot
// layered over the defaults.
func FromSnapshot(snapshot map[string]interface{}) (*Settings, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}
	if len(snapshot) > 0 {
		if err := v.MergeConfigMap(snapshot); err != nil {
			return nil, fmt.Errorf("failed to merge snapshot: %w", err)
		}
	}
	return decode(v)
}

// LoadFromBytes loads settings from raw bytes
// format should be "yaml" or "json"
func LoadFromBytes(data []byte, format string) (*Settings, error) {
	snapshot := make(map[string]interface{})

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &snapshot); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &snapshot); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}

	if err := CheckKeys(snapshot); err != nil {
		return nil, err
	}
	return FromSnapshot(snapshot)
}

// CheckKeys reports the first key in snapshot that is not a settings key
func CheckKeys(snapshot map[string]interface{}) error {
	known := Keys()
	lower := make(map[string]bool, len(known))
	for _, k := range known {
		lower[strings.ToLower(k)] = true
	}

	names := make([]string, 0, len(snapshot))
	for k := range snapshot {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, k := range names {
		if lower[strings.ToLower(k)] {
			continue
		}
		if s, ok := suggest.Closest(k, known); ok {
			return fmt.Errorf("unknown setting %q (did you mean %q?)", k, s)
		}
		return fmt.Errorf("unknown setting %q", k)
	}
	return nil
}

func decode(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &s, nil
}
