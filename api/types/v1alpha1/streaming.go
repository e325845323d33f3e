package v1alpha1

import "encoding/json"

// StartMultiVideoRequest starts streaming with one video per screen
type StartMultiVideoRequest struct {
	// VideoFiles holds one entry per screen index, all files non-empty
	VideoFiles []VideoAssignment `json:"video_files"`
	// ScreenCount and Orientation describe the group layout so the
	// backend does not need to re-derive it
	ScreenCount int         `json:"screen_count"`
	Orientation Orientation `json:"orientation"`
}

// StartSingleVideoSplitRequest starts streaming one video cropped across all
// screens. The backend computes the per-screen crop regions.
type StartSingleVideoSplitRequest struct {
	// VideoFile is the single source video to split
	VideoFile string `json:"video_file"`
	// ScreenCount and Orientation describe the group layout
	ScreenCount int         `json:"screen_count"`
	Orientation Orientation `json:"orientation"`
	// EnableLooping restarts the video when it ends
	EnableLooping bool `json:"enable_looping"`
}

// ScreenAssignmentList is the backend response for a group's current
// client-to-screen assignments
type ScreenAssignmentList struct {
	GroupID     string   `json:"group_id"`
	Assignments []Client `json:"assignments"`
}

// RawStreamingStatus is a backend streaming status value before
// normalization. Older backends report a bare boolean while newer ones wrap
// it in an object, so the raw bytes are carried until the engine's
// normalization boundary.
type RawStreamingStatus json.RawMessage

// MarshalJSON returns the raw status bytes unchanged.
func (r RawStreamingStatus) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

// UnmarshalJSON stores the raw status bytes unchanged.
func (r *RawStreamingStatus) UnmarshalJSON(data []byte) error {
	*r = append((*r)[:0], data...)
	return nil
}

// StreamingStatusMap is the backend response mapping group ids to raw
// streaming status values
type StreamingStatusMap struct {
	Statuses map[string]RawStreamingStatus `json:"statuses"`
}
