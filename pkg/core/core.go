package core

import (
	"sync"

	"github.com/arthur-debert/keeper/pkg/config"
	"github.com/arthur-debert/keeper/pkg/logging"
	"github.com/arthur-debert/keeper/pkg/store"
	"github.com/arthur-debert/keeper/pkg/stores"
)

// App is an opened keeper instance.
type App struct {
	Config   *config.Config
	Registry *stores.Registry

	// DataDir is the resolved application data root.
	DataDir string

	closeOnce sync.Once
}

// Open builds the registry described by cfg. A nil cfg means
// config.Default(). The codec and the data root are resolved up front, so a
// misconfigured host fails here rather than on its first save.
func Open(cfg *config.Config, opts ...Option) (*App, error) {
	logger := logging.GetLogger("core")

	o := &openOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger != nil {
		logger = *o.logger
	}
	if cfg == nil {
		cfg = config.Default()
	}

	c, err := cfg.ResolveCodec()
	if err != nil {
		return nil, err
	}
	resolver := cfg.Resolver()
	dataDir, err := resolver.DataDir()
	if err != nil {
		return nil, err
	}

	storeOpts := []store.Option{
		store.WithCodec(c),
		store.WithResolver(resolver),
		store.WithFS(o.fs),
	}
	regOpts := []stores.Option{
		stores.WithDefaults(cfg.Defaults),
		stores.WithStoreOptions(storeOpts...),
		stores.WithNotifier(o.notifier),
		stores.WithMetrics(o.metrics),
	}
	if o.logger != nil {
		regOpts = append(regOpts, stores.WithLogger(*o.logger))
	}

	app := &App{
		Config:   cfg,
		Registry: stores.New(regOpts...),
		DataDir:  dataDir,
	}
	logger.Debug().
		Str("dataDir", dataDir).
		Str("codec", c.Name()).
		Strs("stores", cfg.StorePaths()).
		Msg("Keeper opened")
	return app, nil
}

// Close runs the registry's shutdown hook. Only the first call has an effect.
func (a *App) Close() {
	a.closeOnce.Do(a.Registry.Shutdown)
}
