package store

import (
	stderrors "errors"
	"iter"
	"maps"
	"path/filepath"
	"slices"

	"github.com/arthur-debert/keeper/pkg/codec"
	"github.com/arthur-debert/keeper/pkg/errors"
	"github.com/arthur-debert/keeper/pkg/filesystem"
	"github.com/arthur-debert/keeper/pkg/paths"
	"github.com/arthur-debert/keeper/pkg/types"
)

// Store is one file-backed key-value mapping.
type Store struct {
	path     string
	cache    types.Map
	defaults types.Map
	codec    codec.Codec
	fs       types.FS
	resolver paths.Resolver
}

// New creates a store for path. Without defaults the cache starts empty;
// with defaults it starts as a copy of them.
func New(path string, opts ...Option) (*Store, error) {
	clean, err := paths.CleanStorePath(path)
	if err != nil {
		return nil, err
	}

	o := options{
		codec: codec.Default,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.fs == nil {
		o.fs = filesystem.NewOS()
	}
	if o.resolver == nil {
		o.resolver = paths.Default()
	}

	defaults, err := types.NormalizeMap(o.defaults)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSerialize, "invalid default value").
			WithDetail("path", clean)
	}

	s := &Store{
		path:     clean,
		cache:    types.Map{},
		defaults: defaults,
		codec:    o.codec,
		fs:       o.fs,
		resolver: o.resolver,
	}
	if defaults != nil {
		s.cache = types.CloneMap(defaults)
	}
	return s, nil
}

// Path returns the store's cleaned path, as used in change events.
func (s *Store) Path() string {
	return s.path
}

// ResolvedPath returns the file the store is loaded from and saved to.
func (s *Store) ResolvedPath() (string, error) {
	return paths.Resolve(s.resolver, s.path)
}

// HasDefaults reports whether the store was built with defaults.
func (s *Store) HasDefaults() bool {
	return s.defaults != nil
}

// Defaults returns a copy of the store's defaults, or nil if it has none.
func (s *Store) Defaults() types.Map {
	return types.CloneMap(s.defaults)
}

// Codec returns the codec of the backing file.
func (s *Store) Codec() codec.Codec {
	return s.codec
}

// Get returns a copy of the value stored under key.
func (s *Store) Get(key string) (types.Value, bool) {
	v, ok := s.cache[key]
	if !ok {
		return nil, false
	}
	return types.Clone(v), true
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	_, ok := s.cache[key]
	return ok
}

// Set stores value under key and returns the resulting change event. An
// event is produced even when the value is unchanged. Values that cannot be
// represented as JSON are rejected and leave the store untouched.
func (s *Store) Set(key string, value types.Value) ([]types.ChangeEvent, error) {
	v, err := types.Normalize(value)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSerialize, "cannot store value for key %q", key).
			WithDetail("path", s.path).
			WithDetail("key", key)
	}
	s.cache[key] = v
	return []types.ChangeEvent{s.event(key, v)}, nil
}

// Delete removes key. It reports whether the key was present and, if so,
// returns a removal event.
func (s *Store) Delete(key string) (bool, []types.ChangeEvent) {
	if _, ok := s.cache[key]; !ok {
		return false, nil
	}
	delete(s.cache, key)
	return true, []types.ChangeEvent{s.event(key, nil)}
}

// Clear removes every key and returns one removal event per key.
func (s *Store) Clear() []types.ChangeEvent {
	keys := s.sortedKeys()
	events := make([]types.ChangeEvent, 0, len(keys))
	for _, k := range keys {
		events = append(events, s.event(k, nil))
	}
	clear(s.cache)
	return events
}

// Reset restores the cache to the defaults. It returns an event for every
// key whose value changes: keys that differ from or are missing their
// default get the default, keys without a default are removed. A store
// without defaults is cleared.
func (s *Store) Reset() []types.ChangeEvent {
	if s.defaults == nil {
		return s.Clear()
	}

	var events []types.ChangeEvent
	for _, k := range s.sortedKeys() {
		def, hasDefault := s.defaults[k]
		switch {
		case !hasDefault:
			events = append(events, s.event(k, nil))
		case !types.Equal(s.cache[k], def):
			events = append(events, s.event(k, def))
		}
	}
	for _, k := range slices.Sorted(maps.Keys(s.defaults)) {
		if _, present := s.cache[k]; !present {
			events = append(events, s.event(k, s.defaults[k]))
		}
	}

	s.cache = types.CloneMap(s.defaults)
	return events
}

// Keys returns a snapshot of the keys. Each call yields a fresh view.
func (s *Store) Keys() iter.Seq[string] {
	keys := slices.Collect(maps.Keys(s.cache))
	return slices.Values(keys)
}

// Values returns a snapshot of copies of the values.
func (s *Store) Values() iter.Seq[types.Value] {
	values := make([]types.Value, 0, len(s.cache))
	for _, v := range s.cache {
		values = append(values, types.Clone(v))
	}
	return slices.Values(values)
}

// Entries returns a snapshot of key/value pairs.
func (s *Store) Entries() iter.Seq2[string, types.Value] {
	snapshot := types.CloneMap(s.cache)
	return maps.All(snapshot)
}

// Len returns the number of keys.
func (s *Store) Len() int {
	return len(s.cache)
}

// Load reads the backing file and merges its content into the cache. Keys
// from the file overwrite keys in memory; keys only in memory are kept. On
// any failure the cache is left as it was.
func (s *Store) Load() error {
	file, err := s.ResolvedPath()
	if err != nil {
		return err
	}

	data, err := s.fs.ReadFile(file)
	if err != nil {
		return errors.WrapPath(err, errors.ErrIO, "read", file)
	}

	decoded, err := s.codec.Decode(data)
	if err != nil {
		return codecError(err, errors.ErrDeserialize, file)
	}

	for k, v := range decoded {
		s.cache[k] = v
	}
	return nil
}

// Save writes the cache to the backing file, creating parent directories
// and replacing any previous content.
func (s *Store) Save() error {
	file, err := s.ResolvedPath()
	if err != nil {
		return err
	}

	if err := s.fs.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return errors.WrapPath(err, errors.ErrIO, "create directory for", file)
	}

	data, err := s.codec.Encode(s.cache)
	if err != nil {
		return codecError(err, errors.ErrSerialize, file)
	}
	if err := s.fs.WriteFile(file, data, 0644); err != nil {
		return errors.WrapPath(err, errors.ErrIO, "write", file)
	}
	return nil
}

func (s *Store) event(key string, value types.Value) types.ChangeEvent {
	return types.ChangeEvent{Path: s.path, Key: key, Value: types.Clone(value)}
}

func (s *Store) sortedKeys() []string {
	return slices.Sorted(maps.Keys(s.cache))
}

// codecError records the backing file on a codec error. Errors from
// codecs that do not use keeper's error codes get code.
func codecError(err error, code errors.ErrorCode, file string) error {
	var ke *errors.KeeperError
	if stderrors.As(err, &ke) {
		return ke.WithDetail("path", file)
	}
	return errors.Wrapf(err, code, "codec failed for %s", file).WithDetail("path", file)
}
