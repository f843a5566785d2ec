package store_test

import (
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"maps"
	"slices"
	"testing"

	"github.com/arthur-debert/keeper/pkg/codec"
	"github.com/arthur-debert/keeper/pkg/errors"
	"github.com/arthur-debert/keeper/pkg/filesystem"
	"github.com/arthur-debert/keeper/pkg/paths"
	"github.com/arthur-debert/keeper/pkg/store"
	"github.com/arthur-debert/keeper/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const root = "/data"

// newStore builds a store on an in-memory filesystem rooted at /data.
func newStore(t *testing.T, path string, opts ...store.Option) (*store.Store, types.FS) {
	t.Helper()
	fsys := filesystem.NewMemory()
	opts = append([]store.Option{store.WithFS(fsys), store.WithResolver(paths.Static(root))}, opts...)
	s, err := store.New(path, opts...)
	require.NoError(t, err)
	return s, fsys
}

func event(path, key string, value types.Value) types.ChangeEvent {
	return types.ChangeEvent{Path: path, Key: key, Value: value}
}

func TestNew(t *testing.T) {
	t.Run("plain store starts empty", func(t *testing.T) {
		s, _ := newStore(t, "plain.json")
		assert.Equal(t, 0, s.Len())
		assert.False(t, s.HasDefaults())
		assert.Nil(t, s.Defaults())
		assert.Equal(t, "json", s.Codec().Name())
	})

	t.Run("defaults seed the cache", func(t *testing.T) {
		s, _ := newStore(t, "settings.json", store.WithDefaults(types.Map{"theme": "dark", "size": 12}))
		assert.True(t, s.HasDefaults())
		assert.Equal(t, 2, s.Len())

		v, ok := s.Get("size")
		require.True(t, ok)
		assert.Equal(t, float64(12), v)
	})

	t.Run("single default creates defaults", func(t *testing.T) {
		s, _ := newStore(t, "a.json", store.WithDefault("k", "v"), store.WithDefault("n", true))
		assert.Equal(t, types.Map{"k": "v", "n": true}, s.Defaults())
	})

	t.Run("empty defaults are still defaults", func(t *testing.T) {
		s, _ := newStore(t, "a.json", store.WithDefaults(types.Map{}))
		assert.True(t, s.HasDefaults())
		assert.Equal(t, 0, s.Len())
	})

	t.Run("nil defaults are no defaults", func(t *testing.T) {
		s, _ := newStore(t, "a.json", store.WithDefaults(nil))
		assert.False(t, s.HasDefaults())
	})

	t.Run("path is cleaned", func(t *testing.T) {
		s, _ := newStore(t, "./dir//a.json")
		assert.Equal(t, "dir/a.json", s.Path())
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := store.New("")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("unrepresentable default", func(t *testing.T) {
		_, err := store.New("a.json", store.WithDefault("ch", make(chan int)))
		assert.True(t, errors.IsErrorCode(err, errors.ErrSerialize))
	})
}

func TestDefaultsAreCopied(t *testing.T) {
	defaults := types.Map{"list": []any{"a"}}
	s, _ := newStore(t, "a.json", store.WithDefaults(defaults))

	defaults["list"] = []any{"changed"}
	got := s.Defaults()
	got["list"] = "mutated"

	assert.Equal(t, types.Map{"list": []any{"a"}}, s.Defaults())
}

func TestGetReturnsCopy(t *testing.T) {
	s, _ := newStore(t, "a.json")
	_, err := s.Set("obj", map[string]any{"inner": []any{1}})
	require.NoError(t, err)

	v, ok := s.Get("obj")
	require.True(t, ok)
	v.(map[string]any)["inner"] = "mutated"

	again, _ := s.Get("obj")
	assert.Equal(t, map[string]any{"inner": []any{float64(1)}}, again)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestSet(t *testing.T) {
	s, _ := newStore(t, "a.json")

	events, err := s.Set("theme", "light")
	require.NoError(t, err)
	assert.Equal(t, []types.ChangeEvent{event("a.json", "theme", "light")}, events)
	assert.True(t, s.Has("theme"))

	// setting the same value still produces an event
	events, err = s.Set("theme", "light")
	require.NoError(t, err)
	assert.Len(t, events, 1)

	// values are normalized to their JSON form
	events, err = s.Set("count", 3)
	require.NoError(t, err)
	assert.Equal(t, float64(3), events[0].Value)
}

func TestSet_RejectsNonJSON(t *testing.T) {
	s, _ := newStore(t, "a.json", store.WithDefault("keep", "me"))

	events, err := s.Set("fn", func() {})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSerialize))
	assert.Nil(t, events)
	assert.False(t, s.Has("fn"))
	assert.Equal(t, 1, s.Len())
}

func TestDelete(t *testing.T) {
	s, _ := newStore(t, "a.json", store.WithDefault("k", "v"))

	removed, events := s.Delete("k")
	assert.True(t, removed)
	assert.Equal(t, []types.ChangeEvent{event("a.json", "k", nil)}, events)
	assert.True(t, events[0].IsRemoval())

	removed, events = s.Delete("k")
	assert.False(t, removed)
	assert.Empty(t, events)
}

func TestClear(t *testing.T) {
	s, _ := newStore(t, "a.json", store.WithDefaults(types.Map{"b": 1, "a": 2}))

	events := s.Clear()
	assert.Equal(t, []types.ChangeEvent{
		event("a.json", "a", nil),
		event("a.json", "b", nil),
	}, events)
	assert.Equal(t, 0, s.Len())

	assert.Empty(t, s.Clear())
}

func TestReset_WithDefaults(t *testing.T) {
	s, _ := newStore(t, "settings.json", store.WithDefaults(types.Map{
		"theme":   "dark",
		"volume":  5,
		"unused":  true,
		"deleted": "x",
	}))

	_, err := s.Set("theme", "light")
	require.NoError(t, err)
	_, err = s.Set("extra", "added")
	require.NoError(t, err)
	s.Delete("deleted")

	events := s.Reset()

	assert.ElementsMatch(t, []types.ChangeEvent{
		event("settings.json", "theme", "dark"),
		event("settings.json", "extra", nil),
		event("settings.json", "deleted", "x"),
	}, events)

	assert.Equal(t, s.Defaults(), maps.Collect(s.Entries()))
}

func TestReset_WithoutDefaultsClears(t *testing.T) {
	s, _ := newStore(t, "a.json")
	_, err := s.Set("x", 1)
	require.NoError(t, err)

	events := s.Reset()
	assert.Equal(t, []types.ChangeEvent{event("a.json", "x", nil)}, events)
	assert.Equal(t, 0, s.Len())
}

func TestReset_UntouchedStoreIsQuiet(t *testing.T) {
	s, _ := newStore(t, "a.json", store.WithDefaults(types.Map{"a": 1}))
	assert.Empty(t, s.Reset())
}

func TestViewsAreRestartableSnapshots(t *testing.T) {
	s, _ := newStore(t, "a.json", store.WithDefaults(types.Map{"a": 1, "b": 2}))

	keys := s.Keys()
	values := s.Values()
	entries := s.Entries()

	_, err := s.Set("c", 3)
	require.NoError(t, err)

	for range 2 {
		assert.ElementsMatch(t, []string{"a", "b"}, slices.Collect(keys))
		assert.ElementsMatch(t, []types.Value{float64(1), float64(2)}, slices.Collect(values))
		assert.Equal(t, types.Map{"a": float64(1), "b": float64(2)}, maps.Collect(entries))
	}
	assert.Equal(t, 3, s.Len())
}

func TestLoad_MergesIntoCache(t *testing.T) {
	s, fsys := newStore(t, "settings.json", store.WithDefaults(types.Map{"theme": "dark", "lang": "en"}))
	require.NoError(t, fsys.MkdirAll(root, 0755))
	require.NoError(t, fsys.WriteFile(root+"/settings.json", []byte(`{"theme":"light","font":"mono"}`), 0644))

	require.NoError(t, s.Load())

	assert.Equal(t, types.Map{"theme": "light", "lang": "en", "font": "mono"}, maps.Collect(s.Entries()))
}

func TestLoad_Failures(t *testing.T) {
	tests := []struct {
		name     string
		content  []byte
		resolver paths.Resolver
		wantCode errors.ErrorCode
		notExist bool
	}{
		{name: "missing file", resolver: paths.Static(root), wantCode: errors.ErrIO, notExist: true},
		{name: "malformed file", content: []byte(`{"a":`), resolver: paths.Static(root), wantCode: errors.ErrDeserialize},
		{name: "not an object", content: []byte(`[1,2]`), resolver: paths.Static(root), wantCode: errors.ErrDeserialize},
		{name: "no data root", resolver: paths.Static(""), wantCode: errors.ErrDataDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := filesystem.NewMemory()
			if tt.content != nil {
				require.NoError(t, fsys.WriteFile(root+"/s.json", tt.content, 0644))
			}
			s, err := store.New("s.json", store.WithFS(fsys), store.WithResolver(tt.resolver), store.WithDefault("k", "v"))
			require.NoError(t, err)

			err = s.Load()
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.wantCode), "got %v", err)
			if tt.notExist {
				assert.ErrorIs(t, err, fs.ErrNotExist)
			}

			assert.Equal(t, types.Map{"k": "v"}, maps.Collect(s.Entries()))
		})
	}
}

func TestLoad_ErrorCarriesPath(t *testing.T) {
	s, fsys := newStore(t, "bad.json")
	require.NoError(t, fsys.WriteFile(root+"/bad.json", []byte("nope"), 0644))

	err := s.Load()
	assert.Equal(t, root+"/bad.json", errors.GetErrorDetails(err)["path"])
	assert.Equal(t, "json", errors.GetErrorDetails(err)["codec"])
}

func TestSave(t *testing.T) {
	s, fsys := newStore(t, "nested/dir/s.json", store.WithDefaults(types.Map{"a": 1}))

	require.NoError(t, s.Save())
	data, err := fsys.ReadFile(root + "/nested/dir/s.json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, map[string]any{"a": float64(1)}, got)

	// saving again replaces the previous content
	s.Clear()
	require.NoError(t, s.Save())
	data, err = fsys.ReadFile(root + "/nested/dir/s.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestSave_ReadOnlyFilesystem(t *testing.T) {
	s, err := store.New("s.json",
		store.WithFS(filesystem.NewReadOnly(afero.NewMemMapFs())),
		store.WithResolver(paths.Static(root)))
	require.NoError(t, err)

	err = s.Save()
	assert.True(t, errors.IsErrorCode(err, errors.ErrIO), "got %v", err)
}

func TestSave_TOMLRejectsNull(t *testing.T) {
	s, _ := newStore(t, "s.toml", store.WithCodec(codec.TOML{}))
	_, err := s.Set("nothing", nil)
	require.NoError(t, err)

	err = s.Save()
	assert.True(t, errors.IsErrorCode(err, errors.ErrSerialize), "got %v", err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"json", "legacy", "yaml"} {
		t.Run(name, func(t *testing.T) {
			c, err := codec.Lookup(name)
			require.NoError(t, err)

			fsys := filesystem.NewMemory()
			opts := []store.Option{store.WithFS(fsys), store.WithResolver(paths.Static(root)), store.WithCodec(c)}

			first, err := store.New("rt.bin", opts...)
			require.NoError(t, err)
			for k, v := range (types.Map{"s": "x", "n": 1.5, "b": false, "nil": nil, "list": []any{"a", 2}, "obj": map[string]any{"k": "v"}}) {
				_, err := first.Set(k, v)
				require.NoError(t, err)
			}
			require.NoError(t, first.Save())

			second, err := store.New("rt.bin", opts...)
			require.NoError(t, err)
			require.NoError(t, second.Load())

			assert.Equal(t, maps.Collect(first.Entries()), maps.Collect(second.Entries()))
		})
	}
}

func TestAbsoluteStorePath(t *testing.T) {
	fsys := filesystem.NewMemory()
	s, err := store.New("/elsewhere/s.json", store.WithFS(fsys), store.WithResolver(paths.Static("")))
	require.NoError(t, err)

	resolved, err := s.ResolvedPath()
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere/s.json", resolved)

	_, err = s.Set("a", 1)
	require.NoError(t, err)
	require.NoError(t, s.Save())

	_, err = fsys.Stat("/elsewhere/s.json")
	assert.NoError(t, err)
}

type plainCodec struct{}

func (plainCodec) Name() string                     { return "plain" }
func (plainCodec) Encode(types.Map) ([]byte, error) { return nil, stderrors.New("boom") }
func (plainCodec) Decode([]byte) (types.Map, error) { return nil, stderrors.New("boom") }

func TestForeignCodecErrorsAreCoded(t *testing.T) {
	s, fsys := newStore(t, "s.txt", store.WithCodec(plainCodec{}))
	require.NoError(t, fsys.WriteFile(root+"/s.txt", []byte("x"), 0644))

	assert.True(t, errors.IsErrorCode(s.Load(), errors.ErrDeserialize))
	assert.True(t, errors.IsErrorCode(s.Save(), errors.ErrSerialize))
}
