package codec

import (
	"github.com/arthur-debert/keeper/pkg/types"
	"gopkg.in/yaml.v3"
)

// YAML stores the cache as a YAML mapping.
type YAML struct{}

func (YAML) Name() string { return "yaml" }

func (c YAML) Encode(m types.Map) ([]byte, error) {
	if m == nil {
		m = types.Map{}
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, serializeError(c, err)
	}
	return data, nil
}

func (c YAML) Decode(data []byte) (types.Map, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, deserializeError(c, err)
	}
	return finish(c, m)
}
