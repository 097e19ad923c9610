package scan

import (
	"encoding/json"

	"github.com/iliyamo/theater-staff/internal/model"
)

// ParseBatch decodes a JSON array of observations entry by entry.  Entries
// that are not objects, or whose type/data are not strings, are dropped; a
// payload that is not an array at all yields an empty batch.
func ParseBatch(raw json.RawMessage) []model.Observation {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}
	out := make([]model.Observation, 0, len(entries))
	for _, e := range entries {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(e, &fields); err != nil || fields == nil {
			continue
		}
		var o model.Observation
		if err := json.Unmarshal(fields["type"], &o.Type); err != nil {
			continue
		}
		if err := json.Unmarshal(fields["data"], &o.Data); err != nil {
			continue
		}
		out = append(out, o)
	}
	return out
}
