package stores

import (
	stderrors "errors"
	"maps"
	"slices"
	"sync"

	"github.com/arthur-debert/keeper/pkg/errors"
	"github.com/arthur-debert/keeper/pkg/logging"
	"github.com/arthur-debert/keeper/pkg/metrics"
	"github.com/arthur-debert/keeper/pkg/notify"
	"github.com/arthur-debert/keeper/pkg/paths"
	"github.com/arthur-debert/keeper/pkg/store"
	"github.com/arthur-debert/keeper/pkg/types"
	"github.com/rs/zerolog"
)

// Registry owns every store of the process.
type Registry struct {
	mu       sync.Mutex
	stores   map[string]*store.Store
	poisoned bool

	configured map[string]types.Map
	storeOpts  []store.Option
	notifier   notify.Notifier
	logger     zerolog.Logger
	metrics    *metrics.Metrics
}

// New creates a registry and initializes the stores named by WithDefaults:
// each is built with its defaults and loaded from disk. Load failures are
// logged and leave the store in its default state.
func New(opts ...Option) *Registry {
	r := &Registry{
		stores:     make(map[string]*store.Store),
		configured: make(map[string]types.Map),
		notifier:   notify.Nop,
		logger:     logging.GetLogger("stores"),
	}
	for _, opt := range opts {
		opt(r)
	}

	configured := make(map[string]types.Map, len(r.configured))
	for p, d := range r.configured {
		clean, err := paths.CleanStorePath(p)
		if err != nil {
			r.logger.Error().Err(err).Str("path", p).Msg("Ignoring configured store")
			continue
		}
		configured[clean] = d
	}
	r.configured = configured

	for _, p := range slices.Sorted(maps.Keys(r.configured)) {
		if _, err := r.storeFor(p); err != nil {
			r.logger.Error().Err(err).Str("path", p).Msg("Failed to initialize store")
		}
	}
	r.logger.Debug().Int("stores", len(r.stores)).Msg("Registry initialized")
	return r
}

// WithStore runs fn on the store for path, creating and loading it on first
// use. Events returned by fn are delivered before WithStore returns.
func (r *Registry) WithStore(path string, fn func(*store.Store) ([]types.ChangeEvent, error)) error {
	_, err := with(r, "with", path, func(s *store.Store) (struct{}, []types.ChangeEvent, error) {
		events, err := fn(s)
		return struct{}{}, events, err
	})
	return err
}

// With is WithStore for functions that return a result.
func With[T any](r *Registry, path string, fn func(*store.Store) (T, []types.ChangeEvent, error)) (T, error) {
	return with(r, "with", path, fn)
}

// with is the single path to store state. It holds the registry lock for
// the lookup, fn and event delivery. A panic in any of them poisons the
// registry.
func with[T any](r *Registry, op, path string, fn func(*store.Store) (T, []types.ChangeEvent, error)) (result T, err error) {
	defer func() { r.metrics.RecordOperation(op, err) }()

	clean, err := paths.CleanStorePath(path)
	if err != nil {
		return result, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.poisoned {
		return result, poisonedError()
	}

	completed := false
	defer func() {
		if !completed {
			r.poisoned = true
			r.logger.Error().Str("path", clean).Str("op", op).Msg("Operation panicked, registry is poisoned")
		}
	}()

	s, err := r.storeFor(clean)
	if err != nil {
		completed = true
		return result, err
	}

	result, events, err := fn(s)
	r.deliver(events)
	completed = true
	return result, err
}

// storeFor returns the store for a clean path, creating it if needed.
// Callers hold r.mu, except New which runs before r is shared.
func (r *Registry) storeFor(path string) (*store.Store, error) {
	if s, ok := r.stores[path]; ok {
		return s, nil
	}

	opts := slices.Clone(r.storeOpts)
	if d, ok := r.configured[path]; ok {
		opts = append(opts, store.WithDefaults(d))
	}
	s, err := store.New(path, opts...)
	if err != nil {
		return nil, err
	}

	r.loadOrFallback(s)
	r.stores[path] = s
	r.metrics.SetManagedStores(len(r.stores))
	r.logger.Debug().Str("path", path).Bool("defaults", s.HasDefaults()).Msg("Store created")
	return s, nil
}

// loadOrFallback loads s from disk and reports whether it succeeded. On
// failure s keeps its default state; the error is only logged.
func (r *Registry) loadOrFallback(s *store.Store) bool {
	err := s.Load()
	if err == nil {
		return true
	}
	r.metrics.RecordLoadFailure()
	r.logger.Debug().Err(err).Str("path", s.Path()).
		Str("code", string(errors.GetErrorCode(err))).
		Msg("Store not loaded, using defaults")
	return false
}

func (r *Registry) deliver(events []types.ChangeEvent) {
	if len(events) == 0 {
		return
	}
	r.notifier.Notify(events)
	r.metrics.RecordEvents(len(events))
}

// Paths returns the paths of every managed store, sorted.
func (r *Registry) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Sorted(maps.Keys(r.stores))
}

// Poisoned reports whether an earlier operation panicked while holding the
// registry lock.
func (r *Registry) Poisoned() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.poisoned
}

// SaveAll saves every store and returns the failures joined together.
func (r *Registry) SaveAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.poisoned {
		return poisonedError()
	}
	var errs []error
	r.saveAllLocked(func(_ string, err error) {
		errs = append(errs, err)
	})
	return stderrors.Join(errs...)
}

// Shutdown saves every store. Failures are logged and do not stop the
// remaining saves. A poisoned registry saves nothing.
func (r *Registry) Shutdown() {
	done := logging.LogOperationStart(r.logger, "shutdown")
	defer done()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.poisoned {
		r.logger.Error().Msg("Registry is poisoned, skipping save on shutdown")
		return
	}
	failed := 0
	r.saveAllLocked(func(path string, err error) {
		failed++
		r.logger.Error().Err(err).Str("path", path).Msg("Failed to save store on shutdown")
	})
	r.logger.Debug().Int("saved", len(r.stores)-failed).Int("failed", failed).
		Int("stores", len(r.stores)).Msg("Stores saved on shutdown")
}

// saveAllLocked saves every store in path order and calls onError for each
// failure. Callers hold r.mu.
func (r *Registry) saveAllLocked(onError func(path string, err error)) {
	for _, p := range slices.Sorted(maps.Keys(r.stores)) {
		err := r.stores[p].Save()
		r.metrics.RecordOperation("save", err)
		if err != nil {
			r.metrics.RecordSaveFailure()
			onError(p, err)
		}
	}
}

func poisonedError() error {
	return errors.New(errors.ErrPoisoned, "store registry is poisoned by an earlier panic")
}
