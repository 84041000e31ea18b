package gate

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the optional per-repository configuration file name.
const ConfigFile = ".chaosgate.yml"

// Config carries the host-environment knobs for a run. The file-format
// contract (markers, allow-list, selector prefix) is compiled in and never
// configurable.
type Config struct {
	// BaseRef overrides base branch resolution. Empty means auto-detect.
	BaseRef string `yaml:"base_ref"`
	// Remote names the git remote holding the base branch. Default "origin".
	Remote string `yaml:"remote"`
	// Watch tunes the local re-validation loop.
	Watch WatchConfig `yaml:"watch"`
}

// WatchConfig tunes the `chaosgate watch` command.
type WatchConfig struct {
	// DebounceMS is the quiet period after a filesystem event before the
	// checks re-run. Default 250.
	DebounceMS int `yaml:"debounce_ms"`
	// Patterns are doublestar globs, relative to the repository root,
	// selecting which changed paths trigger a re-run. Default: the two
	// target files.
	Patterns []string `yaml:"patterns"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Remote: "origin",
		Watch: WatchConfig{
			DebounceMS: 250,
			Patterns:   []string{HTMLTarget, CSSTarget},
		},
	}
}

// LoadConfig reads ConfigFile from dir, layering it over the defaults.
// A missing file is not an error.
func LoadConfig(dir string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", ConfigFile, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", ConfigFile, err)
	}
	if cfg.Remote == "" {
		cfg.Remote = "origin"
	}
	if cfg.Watch.DebounceMS <= 0 {
		cfg.Watch.DebounceMS = 250
	}
	if len(cfg.Watch.Patterns) == 0 {
		cfg.Watch.Patterns = []string{HTMLTarget, CSSTarget}
	}
	return cfg, nil
}
