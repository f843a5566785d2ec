package testutil_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/keeper/pkg/filesystem"
	"github.com/arthur-debert/keeper/pkg/paths"
	"github.com/arthur-debert/keeper/pkg/store"
	"github.com/arthur-debert/keeper/pkg/testutil"
	"github.com/arthur-debert/keeper/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestEnvironment_MemoryOnly(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

	root, err := env.Resolver.DataDir()
	require.NoError(t, err)
	assert.Equal(t, "/virtual/data", root)

	env.WithFileTree(testutil.FileTree{
		"a.json": `{"k":1}`,
		"nested": testutil.FileTree{"b.json": "{}"},
	})
	assert.Equal(t, `{"k":1}`, env.ReadStore("a.json"))
	assert.Equal(t, "{}", env.ReadStore("nested/b.json"))

	s, err := store.New("a.json", env.StoreOptions()...)
	require.NoError(t, err)
	require.NoError(t, s.Load())
	v, ok := s.Get("k")
	assert.True(t, ok)
	assert.Equal(t, float64(1), v)

	_, err = os.Stat(env.DataDir)
	assert.True(t, os.IsNotExist(err), "memory environment must not touch the disk")
}

func TestTestEnvironment_Isolated(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)

	assert.Equal(t, filepath.Join(env.ConfigDir, "keeper", "keeper.toml"), paths.Default().ConfigFile())
	assert.Equal(t, filepath.Join(env.StateDir, "keeper", "keeper.log"), paths.Default().LogFile())
	assert.Empty(t, os.Getenv(paths.EnvDataDir))

	path := env.WriteConfig(`codec = "yaml"`)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `codec = "yaml"`, string(data))

	env.WithFileTree(testutil.FileTree{"s.json": "{}"})
	_, err = os.Stat(env.StoreFile("s.json"))
	assert.NoError(t, err)
}

func TestEventRecorder(t *testing.T) {
	rec := &testutil.EventRecorder{}
	rec.Notify([]types.ChangeEvent{{Path: "a", Key: "k", Value: "v"}})
	rec.Notify([]types.ChangeEvent{{Path: "a", Key: "k"}})

	assert.Equal(t, 2, rec.Calls())
	assert.Equal(t, []types.ChangeEvent{
		{Path: "a", Key: "k", Value: "v"},
		{Path: "a", Key: "k"},
	}, rec.Events())
}

func TestFailingFS(t *testing.T) {
	fsys := testutil.FailingFS{
		FS:   filesystem.NewMemory(),
		Fail: func(name string) bool { return strings.Contains(name, "broken") },
	}

	assert.NoError(t, fsys.WriteFile("/ok.json", []byte("{}"), 0644))
	err := fsys.WriteFile("/broken.json", []byte("{}"), 0644)
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestNewLogger(t *testing.T) {
	logger, buf := testutil.NewLogger()
	logger.Debug().Str("path", "a.json").Msg("hello")
	assert.Contains(t, buf.String(), `"path":"a.json"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}
