package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/arthur-debert/keeper/pkg/codec"
	"github.com/arthur-debert/keeper/pkg/errors"
	"github.com/arthur-debert/keeper/pkg/logging"
	"github.com/arthur-debert/keeper/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable keeper reads configuration from.
const EnvPrefix = "KEEPER_"

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Load builds the configuration from built-in defaults, the config file and
// the environment, in that order of precedence.
//
// An empty path means the default location: KEEPER_CONFIG when set,
// otherwise $XDG_CONFIG_HOME/keeper/keeper.toml. A missing default file is
// not an error; a missing file that was asked for explicitly is.
func Load(path string) (*Config, error) {
	logger := logging.GetLogger("config")

	explicit := path != "" || os.Getenv(paths.EnvConfigFile) != ""
	if path == "" {
		path = paths.Default().ConfigFile()
	}

	k, err := newKoanf()
	if err != nil {
		return nil, err
	}

	// 2. Config file
	if _, statErr := os.Stat(path); statErr != nil {
		if explicit || !os.IsNotExist(statErr) {
			return nil, errors.WrapPath(statErr, errors.ErrConfigLoad, "stat config", path)
		}
		logger.Debug().Str("path", path).Msg("No config file, using defaults")
	} else {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	return finish(k)
}

// Parse builds the configuration from in-memory config file content.
// format is a file extension such as "toml", ".yaml" or "yml".
// Environment variables still take precedence over data.
func Parse(data []byte, format string) (*Config, error) {
	k, err := newKoanf()
	if err != nil {
		return nil, err
	}

	parser, err := parserFor("config." + strings.TrimPrefix(format, "."))
	if err != nil {
		return nil, err
	}
	if err := k.Load(&rawBytesProvider{bytes: data}, parser); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse config").
			WithDetail("format", format)
	}

	return finish(k)
}

// newKoanf returns a koanf instance holding the built-in defaults.
func newKoanf() (*koanf.Koanf, error) {
	k := koanf.New(".")

	// 1. Built-in defaults
	defaults := map[string]interface{}{
		"codec": codec.Default.Name(),
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load built-in defaults")
	}
	return k, nil
}

// finish layers the environment on top of k, then decodes and validates.
func finish(k *koanf.Koanf) (*Config, error) {
	// 3. Environment
	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKeyValue), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Unmarshal. Store paths such as "settings.json" contain the key
	// delimiter, so decode from the nested map rather than flat paths.
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				trimStringHookFunc(),
				lowerCodecHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	// 5. Post-process
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKeyValue maps KEEPER_DATA_DIR to data_dir. Only top-level settings are
// read from the environment and empty variables are ignored. KEEPER_CONFIG
// selects the file and is skipped.
func envKeyValue(key, value string) (string, interface{}) {
	if value == "" {
		return "", nil
	}
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	switch key {
	case "data_dir", "codec":
		return key, value
	default:
		return "", nil
	}
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigParse, "unsupported config format %q", filepath.Ext(path)).
			WithDetail("path", path)
	}
}

// trimStringHookFunc strips surrounding whitespace from string settings.
// Default values decode into interface{} and are left alone.
func trimStringHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.String {
			return data, nil
		}
		return strings.TrimSpace(reflect.ValueOf(data).String()), nil
	}
}

// lowerCodecHookFunc makes codec names case-insensitive.
func lowerCodecHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.Map || t != reflect.TypeOf(Config{}) {
			return data, nil
		}
		m, ok := data.(map[string]interface{})
		if !ok {
			return data, nil
		}
		if name, ok := m["codec"].(string); ok {
			m["codec"] = strings.ToLower(name)
		}
		return data, nil
	}
}
