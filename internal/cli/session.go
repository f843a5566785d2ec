package cli

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/arthur-debert/keeper/pkg/config"
	"github.com/arthur-debert/keeper/pkg/core"
	"github.com/arthur-debert/keeper/pkg/errors"
	"github.com/arthur-debert/keeper/pkg/logging"
	"github.com/arthur-debert/keeper/pkg/metrics"
	"github.com/arthur-debert/keeper/pkg/notify"
	"github.com/arthur-debert/keeper/pkg/stores"
	"github.com/arthur-debert/keeper/pkg/ui"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// storeFunc runs one registry operation and returns the result to render.
type storeFunc func(reg *stores.Registry) (interface{}, error)

// runStore opens keeper as configured by the flags, runs fn, shuts the
// registry down and renders the outcome. An interrupt while fn runs still
// shuts the registry down, so mutations already made are saved.
func runStore(cmd *cobra.Command, opts *globalOptions, fn storeFunc) error {
	logger := logging.GetLogger("cli")

	console, err := ui.NewConsole(opts.format, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	fail := func(err error) error {
		if rerr := console.Err.RenderError(err); rerr != nil {
			logger.Error().Err(rerr).Msg("Failed to render error")
			return err
		}
		return reportedError{err}
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return fail(err)
	}

	bus := notify.NewBus()
	bus.Subscribe(notify.NewLogListener(logging.GetLogger("events")))
	var lines *notify.JSONLinesListener
	if opts.events {
		lines = notify.NewJSONLinesListener(cmd.ErrOrStderr())
		bus.Subscribe(lines)
	}

	coreOpts := []core.Option{core.WithNotifier(bus)}
	var gatherer *prometheus.Registry
	if opts.metrics {
		gatherer = prometheus.NewRegistry()
		m, err := metrics.New(gatherer)
		if err != nil {
			return fail(errors.Wrap(err, errors.ErrInternal, "failed to register metrics"))
		}
		coreOpts = append(coreOpts, core.WithMetrics(m))
	}

	app, err := core.Open(cfg, coreOpts...)
	if err != nil {
		return fail(err)
	}

	result, err := runInterruptible(cmd.Context(), logger, app, fn)
	app.Close()

	if lines != nil && lines.Err() != nil {
		logger.Warn().Err(lines.Err()).Msg("Failed to write change events")
	}
	if gatherer != nil {
		if werr := metrics.WriteText(cmd.ErrOrStderr(), gatherer); werr != nil {
			logger.Warn().Err(werr).Msg("Failed to write metrics")
		}
	}

	if err != nil {
		if stderrors.Is(err, context.Canceled) {
			if rerr := console.Out.RenderMessage(MsgInterruptedSaved); rerr != nil {
				logger.Warn().Err(rerr).Msg("Failed to render message")
			}
		}
		return fail(err)
	}
	return console.Out.RenderResult(result)
}

// reportedError marks an error that has already been rendered.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error { return e.error }

// Reported reports whether err was already shown to the user by a command.
func Reported(err error) bool {
	var r reportedError
	return stderrors.As(err, &r)
}

type outcome struct {
	result interface{}
	err    error
}

// runInterruptible runs fn on a separate goroutine and returns early when
// SIGINT or SIGTERM arrives or ctx is cancelled.
func runInterruptible(ctx context.Context, logger zerolog.Logger, app *core.App, fn storeFunc) (interface{}, error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan outcome, 1)
	go func() {
		result, err := fn(app.Registry)
		done <- outcome{result: result, err: err}
	}()

	select {
	case o := <-done:
		return o.result, o.err
	case <-ctx.Done():
		logger.Warn().Msg("Interrupted, saving stores")
		return nil, errors.Wrap(ctx.Err(), errors.ErrInternal, MsgErrInterrupted)
	}
}

// loadConfig reads the configuration and applies the flag overrides.
func loadConfig(opts *globalOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}
	if opts.dataDir != "" {
		cfg.DataDir = opts.dataDir
	}
	if opts.codec != "" {
		cfg.Codec = strings.ToLower(strings.TrimSpace(opts.codec))
	}
	return cfg, nil
}
