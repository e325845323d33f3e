package store

import (
	"encoding/json"

	"github.com/vidwall/vidwall-console/api/types/v1alpha1"
)

// NormalizeStatus reduces a raw backend streaming status to a boolean.
// Backends have reported either a bare boolean or an object wrapping one;
// anything unrecognized normalizes to false so degraded status never blocks
// the rest of a poll cycle. All stored status values pass through here —
// the heterogeneous shapes never cross the store boundary.
func NormalizeStatus(raw v1alpha1.RawStreamingStatus) bool {
	if len(raw) == 0 {
		return false
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}

	var obj struct {
		IsStreaming *bool `json:"is_streaming"`
		Streaming   *bool `json:"streaming"`
		Active      *bool `json:"active"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return false
	}
	switch {
	case obj.IsStreaming != nil:
		return *obj.IsStreaming
	case obj.Streaming != nil:
		return *obj.Streaming
	case obj.Active != nil:
		return *obj.Active
	}
	return false
}

// NormalizeStatusMap normalizes a batched status response
func NormalizeStatusMap(raw map[string]v1alpha1.RawStreamingStatus) map[string]bool {
	out := make(map[string]bool, len(raw))
	for id, status := range raw {
		out[id] = NormalizeStatus(status)
	}
	return out
}
