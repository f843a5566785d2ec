package codec

import (
	"github.com/arthur-debert/keeper/pkg/errors"
	"github.com/arthur-debert/keeper/pkg/registry"
	"github.com/arthur-debert/keeper/pkg/types"
)

// Codec encodes a store's cache to bytes and decodes it back.
// Encode must return a SERIALIZE error and Decode a DESERIALIZE error
// when they fail. Decode returns normalized values.
type Codec interface {
	Name() string
	Encode(m types.Map) ([]byte, error)
	Decode(data []byte) (types.Map, error)
}

// Default is the codec used when none is configured.
var Default Codec = JSON{}

var codecs = registry.New[Codec]("codec")

func init() {
	registry.MustRegister(codecs, JSON{}.Name(), Codec(JSON{}))
	registry.MustRegister(codecs, Legacy{}.Name(), Codec(Legacy{}))
	registry.MustRegister(codecs, TOML{}.Name(), Codec(TOML{}))
	registry.MustRegister(codecs, YAML{}.Name(), Codec(YAML{}))
}

// Register makes c available to Lookup under c.Name().
func Register(c Codec) error {
	return codecs.Register(c.Name(), c)
}

// Lookup returns the codec registered under name. An empty name selects
// Default.
func Lookup(name string) (Codec, error) {
	if name == "" {
		return Default, nil
	}
	return codecs.Get(name)
}

// Names lists the registered codec names in sorted order.
func Names() []string {
	return codecs.List()
}

func serializeError(c Codec, err error) error {
	return errors.Wrapf(err, errors.ErrSerialize, "%s encode failed", c.Name()).
		WithDetail("codec", c.Name())
}

func deserializeError(c Codec, err error) error {
	return errors.Wrapf(err, errors.ErrDeserialize, "%s decode failed", c.Name()).
		WithDetail("codec", c.Name())
}

// finish normalizes a freshly decoded map. A nil map (empty document or
// explicit null) is rejected because a store file always holds an object.
func finish(c Codec, m map[string]any) (types.Map, error) {
	if m == nil {
		return nil, errors.Newf(errors.ErrDeserialize, "%s decode failed: document is not a mapping", c.Name()).
			WithDetail("codec", c.Name())
	}
	out, err := types.NormalizeMap(m)
	if err != nil {
		return nil, deserializeError(c, err)
	}
	return out, nil
}
