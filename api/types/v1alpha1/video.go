package v1alpha1

// Video represents an uploaded source video file. Videos are immutable once
// uploaded; the name doubles as the identifier.
type Video struct {
	// Name uniquely identifies the video
	Name string `json:"name"`
	// Path is where the backend stores the file
	Path string `json:"path"`
	// Size is the file size in bytes
	Size int64 `json:"size"`
}

// VideoList is the backend response listing all videos
type VideoList struct {
	Videos []Video `json:"videos"`
}

// DeleteVideoRequest removes an uploaded video
type DeleteVideoRequest struct {
	Name string `json:"name"`
}

// VideoAssignment maps one screen index to a source video file. An empty
// File means the screen is unset.
type VideoAssignment struct {
	// Screen is the zero-based screen index
	Screen int `json:"screen"`
	// File is the assigned video name, empty when unset
	File string `json:"file"`
}
