package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/keeper/pkg/errors"
)

// Environment variable names
const (
	// EnvDataDir overrides the XDG data directory for keeper
	EnvDataDir = "KEEPER_DATA_DIR"

	// EnvConfigFile points at an explicit configuration file
	EnvConfigFile = "KEEPER_CONFIG"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name used under each XDG base directory
	AppDirName = "keeper"

	// ConfigFileName is the name of the default configuration file
	ConfigFileName = "keeper.toml"
	// LogFileName is the name of the log file under the state directory
	LogFileName = "keeper.log"
)

// Resolver supplies the absolute directory all relative store paths are
// rooted under. It fails with a DATA_DIR error when no root is available.
type Resolver interface {
	DataDir() (string, error)
}

// Paths resolves keeper's data and config locations.
type Paths struct {
	dataDir string
	source  string
}

// New creates a Paths instance. The data root is taken from override, then
// from KEEPER_DATA_DIR, then from $XDG_DATA_HOME/keeper.
func New(override string) *Paths {
	if override != "" {
		return &Paths{dataDir: expandHome(override), source: "override"}
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return &Paths{dataDir: expandHome(env), source: EnvDataDir}
	}
	if xdg.DataHome == "" {
		return &Paths{source: "xdg"}
	}
	return &Paths{dataDir: filepath.Join(xdg.DataHome, AppDirName), source: "xdg"}
}

// Default resolves the data root from the environment only.
func Default() *Paths {
	return New("")
}

// DataDir implements Resolver.
func (p *Paths) DataDir() (string, error) {
	if p.dataDir == "" {
		return "", errors.New(errors.ErrDataDir, "cannot determine application data directory").
			WithDetail("source", p.source)
	}
	if p.source == "xdg" && !filepath.IsAbs(p.dataDir) {
		// xdg falls back to a relative path when the home directory is unknown
		return "", errors.Newf(errors.ErrDataDir, "application data directory %q is not absolute", p.dataDir).
			WithDetail("source", p.source)
	}
	abs, err := filepath.Abs(p.dataDir)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrDataDir, "failed to get absolute path for data directory %q", p.dataDir).
			WithDetail("source", p.source)
	}
	return abs, nil
}

// ConfigFile returns the configuration file keeper reads by default:
// KEEPER_CONFIG when set, else $XDG_CONFIG_HOME/keeper/keeper.toml.
func (p *Paths) ConfigFile() string {
	if env := os.Getenv(EnvConfigFile); env != "" {
		return expandHome(env)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName, ConfigFileName)
}

// LogFile returns $XDG_STATE_HOME/keeper/keeper.log.
func (p *Paths) LogFile() string {
	return filepath.Join(xdg.StateHome, AppDirName, LogFileName)
}

// Static is a Resolver that always returns the same directory. An empty
// Static is an unavailable root.
type Static string

// DataDir implements Resolver.
func (s Static) DataDir() (string, error) {
	if s == "" {
		return "", errors.New(errors.ErrDataDir, "no application data directory configured")
	}
	abs, err := filepath.Abs(string(s))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrDataDir, "failed to get absolute path for data directory %q", string(s)).
			WithDetail("path", string(s))
	}
	return abs, nil
}

// CleanStorePath validates a store path and returns its canonical form,
// which is both the registry key and the path reported in change events.
func CleanStorePath(storePath string) (string, error) {
	if strings.TrimSpace(storePath) == "" {
		return "", errors.New(errors.ErrInvalidInput, "store path cannot be empty")
	}
	return filepath.Clean(storePath), nil
}

// Resolve returns the file a store lives in. Absolute store paths are used
// as they are; relative ones are joined to the resolver's data root.
func Resolve(r Resolver, storePath string) (string, error) {
	clean, err := CleanStorePath(storePath)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(clean) {
		return clean, nil
	}
	if r == nil {
		return "", errors.New(errors.ErrDataDir, "no data directory resolver configured")
	}
	root, err := r.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, clean), nil
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
