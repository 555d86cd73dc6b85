package redditsearch

import (
	"encoding/json"
	"fmt"
)

// formatJSON renders a result as two-space indented JSON. Values that
// cannot be marshaled fall back to their string form instead of failing
// the call.
func formatJSON(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
