package core

import (
	"github.com/arthur-debert/keeper/pkg/metrics"
	"github.com/arthur-debert/keeper/pkg/notify"
	"github.com/arthur-debert/keeper/pkg/types"
	"github.com/rs/zerolog"
)

// Option customizes Open.
type Option func(*openOptions)

type openOptions struct {
	fs       types.FS
	notifier notify.Notifier
	metrics  *metrics.Metrics
	logger   *zerolog.Logger
}

// WithFS sets the filesystem backing files live on.
func WithFS(fs types.FS) Option {
	return func(o *openOptions) {
		o.fs = fs
	}
}

// WithNotifier sets where change events are delivered.
func WithNotifier(n notify.Notifier) Option {
	return func(o *openOptions) {
		o.notifier = n
	}
}

// WithMetrics instruments the registry.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *openOptions) {
		o.metrics = m
	}
}

// WithLogger replaces the component loggers of the registry.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *openOptions) {
		o.logger = &logger
	}
}
