package stores

import (
	"github.com/arthur-debert/keeper/pkg/metrics"
	"github.com/arthur-debert/keeper/pkg/notify"
	"github.com/arthur-debert/keeper/pkg/store"
	"github.com/arthur-debert/keeper/pkg/types"
	"github.com/rs/zerolog"
)

// Option configures a Registry.
type Option func(*Registry)

// WithDefaults sets the initialization configuration: the default values of
// each store path. Every listed store is created and loaded by New.
func WithDefaults(defaults map[string]types.Map) Option {
	return func(r *Registry) {
		for p, d := range defaults {
			r.configured[p] = d
		}
	}
}

// WithStoreOptions applies opts to every store the registry creates.
func WithStoreOptions(opts ...store.Option) Option {
	return func(r *Registry) {
		r.storeOpts = append(r.storeOpts, opts...)
	}
}

// WithNotifier sets where change events are delivered. Defaults to notify.Nop.
func WithNotifier(n notify.Notifier) Option {
	return func(r *Registry) {
		if n != nil {
			r.notifier = n
		}
	}
}

// WithLogger sets the registry's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithMetrics instruments the registry.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}
