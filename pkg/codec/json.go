package codec

import (
	"encoding/json"

	"github.com/arthur-debert/keeper/pkg/types"
)

// JSON stores the cache as a single JSON object.
type JSON struct{}

func (JSON) Name() string { return "json" }

func (c JSON) Encode(m types.Map) ([]byte, error) {
	if m == nil {
		m = types.Map{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, serializeError(c, err)
	}
	return data, nil
}

func (c JSON) Decode(data []byte) (types.Map, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, deserializeError(c, err)
	}
	return finish(c, m)
}
