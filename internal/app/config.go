package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/specialistvlad/originals/internal/binding"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ManifestsPath is an optional file or directory of extra manifests,
	// loaded on top of the built-in ones.
	ManifestsPath string
	RealmKind     binding.RealmKind

	LogFormat   string
	LogLevel    string
	InspectPort int

	// ScriptPath runs one script and exits. List prints the registry and
	// exits. With neither set the app starts the REPL.
	ScriptPath  string
	List        bool
	HistoryPath string
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		RealmKind: binding.Window,
		LogFormat: "text",
		LogLevel:  "info",
	}
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.RealmKind == "" {
		cfg.RealmKind = binding.Window
	}
	kind, err := binding.ParseRealmKind(string(cfg.RealmKind))
	if err != nil {
		return nil, err
	}
	cfg.RealmKind = kind

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	if cfg.InspectPort < 0 || cfg.InspectPort > 65535 {
		return nil, fmt.Errorf("invalid inspect port %d", cfg.InspectPort)
	}
	if cfg.List && cfg.ScriptPath != "" {
		return nil, errors.New("a script path and the list flag cannot be combined")
	}
	return &cfg, nil
}

// fileConfig is the on-disk TOML shape of Config.
type fileConfig struct {
	ManifestsPath string `toml:"manifests_path"`
	Realm         string `toml:"realm"`
	LogFormat     string `toml:"log_format"`
	LogLevel      string `toml:"log_level"`
	InspectPort   int    `toml:"inspect_port"`
	HistoryPath   string `toml:"history_path"`
}

// LoadFileConfig overlays the keys present in the TOML file at path onto
// cfg. Keys absent from the file leave cfg untouched; unknown keys are an
// error.
func LoadFileConfig(path string, cfg *Config) error {
	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("config file %s has unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if md.IsDefined("manifests_path") {
		cfg.ManifestsPath = fc.ManifestsPath
	}
	if md.IsDefined("realm") {
		cfg.RealmKind = binding.RealmKind(fc.Realm)
	}
	if md.IsDefined("log_format") {
		cfg.LogFormat = fc.LogFormat
	}
	if md.IsDefined("log_level") {
		cfg.LogLevel = fc.LogLevel
	}
	if md.IsDefined("inspect_port") {
		cfg.InspectPort = fc.InspectPort
	}
	if md.IsDefined("history_path") {
		cfg.HistoryPath = fc.HistoryPath
	}
	return nil
}
