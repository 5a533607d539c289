package platform

import (
	"log/slog"

	"github.com/aretw0/lenient/pkg/core"
)

// options holds the internal configuration for the lenient subsystem.
type options struct {
	provider   core.Provider
	notifier   core.Notifier
	logger     *slog.Logger
	configFile string
	config     Config
	// set records which config fields were given explicitly, so they win
	// over the config file.
	set map[string]bool
}

// Option defines a functional option for configuring the subsystem.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		config: DefaultConfig(),
		set:    make(map[string]bool),
	}
}

// WithProvider injects a custom converter provider.
// Defaults to the built-in JS and JSON converters.
func WithProvider(p core.Provider) Option {
	return func(o *options) {
		o.provider = p
	}
}

// WithNotifier injects the host's notification surface.
// Defaults to an in-memory notify.Center.
func WithNotifier(n core.Notifier) Option {
	return func(o *options) {
		o.notifier = n
	}
}

// WithLogger sets the logger for the subsystem.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithConfigFile loads settings from a YAML file. Explicit options win.
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.configFile = path
	}
}

// WithScope maps a lenient scope name to the language it presents.
func WithScope(scope string, lang core.Language) Option {
	return func(o *options) {
		if !o.set["scopes"] {
			o.config.Scopes = make(map[string]core.Language)
			o.set["scopes"] = true
		}
		o.config.Scopes[scope] = lang
	}
}

// WithPaths restricts lenient mode to documents matching the doublestar globs.
func WithPaths(patterns ...string) Option {
	return func(o *options) {
		o.config.Paths = patterns
		o.set["paths"] = true
	}
}

// WithAtomicWrites makes disk handles opened by Open commit saves with a
// temp file and rename instead of truncating in place.
func WithAtomicWrites(enabled bool) Option {
	return func(o *options) {
		o.config.AtomicWrites = enabled
		o.set["atomic_writes"] = true
	}
}
