package config

import (
	"sort"

	"github.com/arthur-debert/keeper/pkg/codec"
	"github.com/arthur-debert/keeper/pkg/errors"
	"github.com/arthur-debert/keeper/pkg/paths"
	"github.com/arthur-debert/keeper/pkg/types"
)

// Config is the resolved initialization configuration.
type Config struct {
	// DataDir overrides the application data directory. Empty means the
	// platform default.
	DataDir string `koanf:"data_dir"`

	// Codec names the on-disk format of every store.
	Codec string `koanf:"codec"`

	// Defaults maps a store path to the values that store starts with and
	// returns to on reset.
	Defaults map[string]types.Map `koanf:"defaults"`
}

// Default returns the configuration used when nothing else is configured.
func Default() *Config {
	return &Config{Codec: codec.Default.Name()}
}

// StorePaths returns the store paths that have configured defaults, sorted.
func (c *Config) StorePaths() []string {
	out := make([]string, 0, len(c.Defaults))
	for p := range c.Defaults {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// ResolveCodec returns the codec named by the configuration.
func (c *Config) ResolveCodec() (codec.Codec, error) {
	cd, err := codec.Lookup(c.Codec)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigValid, "invalid codec %q", c.Codec).
			WithDetail("available", codec.Names())
	}
	return cd, nil
}

// Resolver returns the data root resolver for this configuration.
func (c *Config) Resolver() *paths.Paths {
	return paths.New(c.DataDir)
}

// validate checks the codec name and canonicalizes the defaults: store
// paths are cleaned and values normalized to their JSON form.
func (c *Config) validate() error {
	if _, err := c.ResolveCodec(); err != nil {
		return err
	}

	if len(c.Defaults) == 0 {
		c.Defaults = nil
		return nil
	}

	cleaned := make(map[string]types.Map, len(c.Defaults))
	for storePath, values := range c.Defaults {
		clean, err := paths.CleanStorePath(storePath)
		if err != nil {
			return errors.Wrap(err, errors.ErrConfigValid, "invalid store path in defaults")
		}
		if _, dup := cleaned[clean]; dup {
			return errors.Newf(errors.ErrConfigValid, "store path %q is configured more than once", clean).
				WithDetail("path", clean)
		}

		normalized, err := types.NormalizeMap(values)
		if err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "invalid defaults for store %q", clean).
				WithDetail("path", clean)
		}
		if normalized == nil {
			normalized = types.Map{}
		}
		cleaned[clean] = normalized
	}
	c.Defaults = cleaned
	return nil
}
