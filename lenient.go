package lenient

import (
	"log/slog"

	"github.com/aretw0/lenient/internal/platform"
	"github.com/aretw0/lenient/pkg/core"
	"github.com/aretw0/lenient/pkg/dialect"
)

// --- Types ---

// Subsystem is a public alias for the dialect subsystem.
type Subsystem = dialect.Subsystem

// Outcome is a public alias for the result of a grammar change.
type Outcome = dialect.Outcome

// Config is a public alias for the config file settings.
type Config = platform.Config

// --- Configuration ---

// Option defines a functional option for configuring the subsystem.
type Option = platform.Option

// WithProvider injects a custom converter provider.
func WithProvider(p core.Provider) Option {
	return platform.WithProvider(p)
}

// WithNotifier injects the host's notification surface.
func WithNotifier(n core.Notifier) Option {
	return platform.WithNotifier(n)
}

// WithLogger sets the logger for the subsystem.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithConfigFile loads settings from a YAML file.
func WithConfigFile(path string) Option {
	return platform.WithConfigFile(path)
}

// WithScope maps a lenient scope name to the language it presents.
func WithScope(scope string, lang core.Language) Option {
	return platform.WithScope(scope, lang)
}

// WithPaths restricts lenient mode to documents matching the globs.
func WithPaths(patterns ...string) Option {
	return platform.WithPaths(patterns...)
}

// WithAtomicWrites enables temp-file-and-rename saves for disk handles.
func WithAtomicWrites(enabled bool) Option {
	return platform.WithAtomicWrites(enabled)
}

// --- Factory ---

// New creates a dialect subsystem ready to be activated on a workspace.
func New(opts ...Option) (*Subsystem, error) {
	rt, err := platform.New(opts...)
	if err != nil {
		return nil, err
	}
	return rt.Subsystem, nil
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	return platform.LoadConfig(path)
}
