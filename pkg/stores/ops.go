package stores

import (
	"maps"
	"slices"

	"github.com/arthur-debert/keeper/pkg/store"
	"github.com/arthur-debert/keeper/pkg/types"
)

// Get returns the value under key in the store at path.
func (r *Registry) Get(path, key string) (types.Value, bool, error) {
	type found struct {
		value types.Value
		ok    bool
	}
	res, err := with(r, "get", path, func(s *store.Store) (found, []types.ChangeEvent, error) {
		v, ok := s.Get(key)
		return found{v, ok}, nil, nil
	})
	return res.value, res.ok, err
}

// Has reports whether key exists in the store at path.
func (r *Registry) Has(path, key string) (bool, error) {
	return with(r, "has", path, func(s *store.Store) (bool, []types.ChangeEvent, error) {
		return s.Has(key), nil, nil
	})
}

// Set stores value under key.
func (r *Registry) Set(path, key string, value types.Value) error {
	_, err := with(r, "set", path, func(s *store.Store) (struct{}, []types.ChangeEvent, error) {
		events, err := s.Set(key, value)
		return struct{}{}, events, err
	})
	return err
}

// Delete removes key and reports whether it was present.
func (r *Registry) Delete(path, key string) (bool, error) {
	return with(r, "delete", path, func(s *store.Store) (bool, []types.ChangeEvent, error) {
		removed, events := s.Delete(key)
		return removed, events, nil
	})
}

// Clear removes every key of the store at path.
func (r *Registry) Clear(path string) error {
	_, err := with(r, "clear", path, func(s *store.Store) (struct{}, []types.ChangeEvent, error) {
		return struct{}{}, s.Clear(), nil
	})
	return err
}

// Reset restores the store at path to its defaults.
func (r *Registry) Reset(path string) error {
	_, err := with(r, "reset", path, func(s *store.Store) (struct{}, []types.ChangeEvent, error) {
		return struct{}{}, s.Reset(), nil
	})
	return err
}

// Keys returns the keys of the store at path, sorted.
func (r *Registry) Keys(path string) ([]string, error) {
	return with(r, "keys", path, func(s *store.Store) ([]string, []types.ChangeEvent, error) {
		return slices.Sorted(s.Keys()), nil, nil
	})
}

// Values returns the values of the store at path, in key order.
func (r *Registry) Values(path string) ([]types.Value, error) {
	return with(r, "values", path, func(s *store.Store) ([]types.Value, []types.ChangeEvent, error) {
		entries := maps.Collect(s.Entries())
		values := make([]types.Value, 0, len(entries))
		for _, k := range slices.Sorted(maps.Keys(entries)) {
			values = append(values, entries[k])
		}
		return values, nil, nil
	})
}

// Entries returns a snapshot of the store at path.
func (r *Registry) Entries(path string) (types.Map, error) {
	return with(r, "entries", path, func(s *store.Store) (types.Map, []types.ChangeEvent, error) {
		return maps.Collect(s.Entries()), nil, nil
	})
}

// Length returns the number of keys in the store at path.
func (r *Registry) Length(path string) (int, error) {
	return with(r, "length", path, func(s *store.Store) (int, []types.ChangeEvent, error) {
		return s.Len(), nil, nil
	})
}

// Load merges the backing file of the store at path into its cache.
func (r *Registry) Load(path string) error {
	_, err := with(r, "load", path, func(s *store.Store) (struct{}, []types.ChangeEvent, error) {
		return struct{}{}, nil, s.Load()
	})
	return err
}

// Save writes the store at path to its backing file.
func (r *Registry) Save(path string) error {
	_, err := with(r, "save", path, func(s *store.Store) (struct{}, []types.ChangeEvent, error) {
		return struct{}{}, nil, s.Save()
	})
	return err
}
