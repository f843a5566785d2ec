package codec

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/arthur-debert/keeper/pkg/types"
)

const lengthPrefixSize = 8

// Legacy wraps the JSON text in a length-prefixed binary frame: a
// little-endian uint64 byte count followed by the UTF-8 text. Bytes after
// the declared length are ignored.
type Legacy struct{}

func (Legacy) Name() string { return "legacy" }

func (c Legacy) Encode(m types.Map) ([]byte, error) {
	if m == nil {
		m = types.Map{}
	}
	text, err := json.Marshal(m)
	if err != nil {
		return nil, serializeError(c, err)
	}
	out := make([]byte, lengthPrefixSize, lengthPrefixSize+len(text))
	binary.LittleEndian.PutUint64(out, uint64(len(text)))
	return append(out, text...), nil
}

func (c Legacy) Decode(data []byte) (types.Map, error) {
	if len(data) < lengthPrefixSize {
		return nil, deserializeError(c, fmt.Errorf("frame too short: %d bytes", len(data)))
	}
	n := binary.LittleEndian.Uint64(data[:lengthPrefixSize])
	body := data[lengthPrefixSize:]
	if n > uint64(len(body)) {
		return nil, deserializeError(c, fmt.Errorf("declared length %d exceeds %d available bytes", n, len(body)))
	}
	text := body[:n]
	if !utf8.Valid(text) {
		return nil, deserializeError(c, fmt.Errorf("payload is not valid UTF-8"))
	}

	var m map[string]any
	if err := json.Unmarshal(text, &m); err != nil {
		return nil, deserializeError(c, err)
	}
	return finish(c, m)
}
