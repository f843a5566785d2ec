package codec

import (
	"fmt"

	"github.com/arthur-debert/keeper/pkg/types"
	toml "github.com/pelletier/go-toml/v2"
)

// TOML stores the cache as a TOML document. TOML has no null, so a cache
// holding nil anywhere cannot be encoded.
type TOML struct{}

func (TOML) Name() string { return "toml" }

func (c TOML) Encode(m types.Map) ([]byte, error) {
	if m == nil {
		m = types.Map{}
	}
	for k, v := range m {
		if path, ok := findNull(v, k); ok {
			return nil, serializeError(c, fmt.Errorf("null value at %q cannot be expressed in TOML", path))
		}
	}
	data, err := toml.Marshal(m)
	if err != nil {
		return nil, serializeError(c, err)
	}
	return data, nil
}

func (c TOML) Decode(data []byte) (types.Map, error) {
	m := map[string]any{}
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, deserializeError(c, err)
	}
	return finish(c, m)
}

func findNull(v types.Value, path string) (string, bool) {
	switch t := v.(type) {
	case nil:
		return path, true
	case map[string]any:
		for k, child := range t {
			if p, ok := findNull(child, path+"."+k); ok {
				return p, true
			}
		}
	case []any:
		for i, child := range t {
			if p, ok := findNull(child, fmt.Sprintf("%s[%d]", path, i)); ok {
				return p, true
			}
		}
	}
	return "", false
}
