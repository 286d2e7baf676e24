package pipewire

import (
	"encoding/json"
	"fmt"
)

// ParseDump decodes the raw output of a pw-dump invocation into a snapshot.
// The dump must be a JSON array of objects; objects of unrecognized types are
// retained here and classified (or dropped) by the graph view.
func ParseDump(data []byte) (GraphSnapshot, error) {
	var snapshot GraphSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse graph dump: %w", err)
	}
	return snapshot, nil
}
