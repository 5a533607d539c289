package platform

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/lenient/pkg/core"
	"github.com/aretw0/lenient/pkg/dialect"
)

// DefaultConfigFile is the name looked up by the CLI.
const DefaultConfigFile = ".lenient.yaml"

// Config is the file form of the subsystem settings.
type Config struct {
	Scopes       map[string]core.Language `yaml:"scopes"`
	Paths        []string                 `yaml:"paths"`
	AtomicWrites bool                     `yaml:"atomic_writes"`
	LogLevel     string                   `yaml:"log_level"`
}

// DefaultConfig returns the settings used without a config file.
func DefaultConfig() Config {
	return Config{Scopes: dialect.DefaultScopes()}
}

// LoadConfig reads a YAML config file over the defaults. A missing file
// is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if len(file.Scopes) > 0 {
		cfg.Scopes = file.Scopes
	}
	cfg.Paths = file.Paths
	cfg.AtomicWrites = file.AtomicWrites
	cfg.LogLevel = file.LogLevel

	for scope, lang := range cfg.Scopes {
		if lang != core.LanguageJS && lang != core.LanguageJSON {
			return cfg, fmt.Errorf("invalid config %s: scope %q: %w: %q", path, scope, core.ErrUnsupportedLanguage, lang)
		}
	}
	return cfg, nil
}

// Level parses LogLevel, defaulting to Info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// merge overlays the explicitly set options onto a loaded config.
func (o *options) merge(file Config) Config {
	cfg := file
	if o.set["scopes"] {
		cfg.Scopes = o.config.Scopes
	}
	if o.set["paths"] {
		cfg.Paths = o.config.Paths
	}
	if o.set["atomic_writes"] {
		cfg.AtomicWrites = o.config.AtomicWrites
	}
	return cfg
}
