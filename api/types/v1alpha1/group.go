// Package v1alpha1 contains API types for the Vidwall Console system.
package v1alpha1

// Orientation describes how a group's screens are laid out
type Orientation string

const (
	// OrientationHorizontal lays screens out in a single row
	OrientationHorizontal Orientation = "horizontal"
	// OrientationVertical lays screens out in a single column
	OrientationVertical Orientation = "vertical"
	// OrientationGrid lays screens out in a rectangular grid
	OrientationGrid Orientation = "grid"
)

// StreamingMode selects how a group's screens are fed video
type StreamingMode string

const (
	// StreamingModeMultiVideo streams an independently assigned video to every screen
	StreamingModeMultiVideo StreamingMode = "multi_video"
	// StreamingModeSingleVideoSplit crops one video into per-screen sections
	StreamingModeSingleVideoSplit StreamingMode = "single_video_split"
)

// GroupStatus represents the backend-reported lifecycle state of a group
type GroupStatus string

const (
	// GroupStatusInactive indicates no streaming is in progress
	GroupStatusInactive GroupStatus = "inactive"
	// GroupStatusStarting indicates streaming startup is in progress
	GroupStatusStarting GroupStatus = "starting"
	// GroupStatusActive indicates the group is streaming
	GroupStatusActive GroupStatus = "active"
	// GroupStatusStopping indicates streaming shutdown is in progress
	GroupStatusStopping GroupStatus = "stopping"
)

// Group represents a streaming unit backed by one encoder container
type Group struct {
	// ID uniquely identifies the group, stable across backend restarts
	ID string `json:"id"`
	// Name is a human-readable identifier
	Name string `json:"name"`
	// ScreenCount is the number of screens this group drives
	ScreenCount int `json:"screen_count"`
	// Orientation describes the physical screen layout
	Orientation Orientation `json:"orientation"`
	// StreamingMode selects multi-video or single-video-split operation
	StreamingMode StreamingMode `json:"streaming_mode"`
	// DockerRunning reports whether the encoder container is up
	DockerRunning bool `json:"docker_running"`
	// Status is the backend-reported streaming lifecycle state
	Status GroupStatus `json:"status"`
	// AvailableStreams lists the stream identifiers the group exposes
	AvailableStreams []string `json:"available_streams,omitempty"`
	// Ports lists the network ports the group's streams are served on
	Ports []int `json:"ports,omitempty"`
}

// GroupList is the backend response listing all groups
type GroupList struct {
	Groups []Group `json:"groups"`
}

// CreateGroupRequest represents a request to create a new group
type CreateGroupRequest struct {
	// Name is the desired group name
	Name string `json:"name"`
	// ScreenCount is the number of screens the group will drive
	ScreenCount int `json:"screen_count"`
	// Orientation describes the physical screen layout
	Orientation Orientation `json:"orientation"`
	// StreamingMode is fixed at creation time
	StreamingMode StreamingMode `json:"streaming_mode"`
}
