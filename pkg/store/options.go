package store

import (
	"github.com/arthur-debert/keeper/pkg/codec"
	"github.com/arthur-debert/keeper/pkg/paths"
	"github.com/arthur-debert/keeper/pkg/types"
)

// Option configures a Store at construction time.
type Option func(*options)

type options struct {
	defaults types.Map
	codec    codec.Codec
	fs       types.FS
	resolver paths.Resolver
}

// WithDefaults sets the values the store starts with and returns to on
// Reset. The map is copied. A nil map leaves the store without defaults;
// an empty map gives it empty defaults.
func WithDefaults(defaults types.Map) Option {
	return func(o *options) {
		if defaults == nil {
			return
		}
		if o.defaults == nil {
			o.defaults = make(types.Map, len(defaults))
		}
		for k, v := range defaults {
			o.defaults[k] = v
		}
	}
}

// WithDefault adds a single default value, creating the defaults if the
// store has none yet.
func WithDefault(key string, value types.Value) Option {
	return func(o *options) {
		if o.defaults == nil {
			o.defaults = types.Map{}
		}
		o.defaults[key] = value
	}
}

// WithCodec sets the format of the backing file. Defaults to codec.Default.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithFS sets the filesystem the backing file is read from and written to.
func WithFS(fs types.FS) Option {
	return func(o *options) {
		if fs != nil {
			o.fs = fs
		}
	}
}

// WithResolver sets where relative store paths are rooted.
func WithResolver(r paths.Resolver) Option {
	return func(o *options) {
		if r != nil {
			o.resolver = r
		}
	}
}
