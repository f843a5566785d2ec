package display

import (
	"encoding/json"
	"fmt"

	"github.com/arthur-debert/keeper/pkg/types"
)

// FormatValue renders a value for humans: strings as they are, everything
// else as compact JSON.
func FormatValue(v types.Value) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
