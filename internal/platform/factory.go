package platform

import (
	"log/slog"

	"github.com/aretw0/lenient/pkg/adapters/fs"
	"github.com/aretw0/lenient/pkg/converters"
	"github.com/aretw0/lenient/pkg/core"
	"github.com/aretw0/lenient/pkg/dialect"
	"github.com/aretw0/lenient/pkg/notify"
)

// Runtime is the wired subsystem plus the settings it was built from.
type Runtime struct {
	Subsystem *dialect.Subsystem
	Provider  core.Provider
	Notifier  core.Notifier
	Config    Config
	Logger    *slog.Logger
}

// New builds a dialect subsystem from options.
//
//	rt, err := platform.New(platform.WithConfigFile(".lenient.yaml"))
//	err = rt.Subsystem.Activate(workspace)
func New(opts ...Option) (*Runtime, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	cfg := o.config
	if o.configFile != "" {
		file, err := LoadConfig(o.configFile)
		if err != nil {
			return nil, err
		}
		cfg = o.merge(file)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}
	provider := o.provider
	if provider == nil {
		provider = converters.Default()
	}
	notifier := o.notifier
	if notifier == nil {
		notifier = notify.NewCenter(logger)
	}

	sub, err := dialect.New(dialect.Config{
		Provider: provider,
		Notifier: notifier,
		Logger:   logger,
		Scopes:   cfg.Scopes,
		Paths:    cfg.Paths,
	})
	if err != nil {
		return nil, err
	}

	return &Runtime{
		Subsystem: sub,
		Provider:  provider,
		Notifier:  notifier,
		Config:    cfg,
		Logger:    logger,
	}, nil
}

// Open returns a disk handle configured like the runtime.
func (rt *Runtime) Open(path string) (*fs.File, error) {
	return fs.NewFile(fs.Config{
		Path:   path,
		Atomic: rt.Config.AtomicWrites,
		Logger: rt.Logger,
	})
}
