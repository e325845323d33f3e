package v1alpha1

import "time"

// ClientStatus represents whether a playback client is considered reachable
type ClientStatus string

const (
	// ClientStatusActive indicates the client has been seen recently
	ClientStatusActive ClientStatus = "active"
	// ClientStatusInactive indicates the client has not been seen recently
	ClientStatusInactive ClientStatus = "inactive"
)

// Client represents a registered playback device
type Client struct {
	// ClientID uniquely identifies the device registration
	ClientID string `json:"client_id"`
	// Hostname is the device-reported host name
	Hostname string `json:"hostname"`
	// IPAddress is the device's last known address
	IPAddress string `json:"ip_address"`
	// DisplayName is an optional operator-assigned label
	DisplayName string `json:"display_name,omitempty"`
	// GroupID is the group this client is assigned to, empty when unassigned
	GroupID string `json:"group_id,omitempty"`
	// ScreenNumber is the zero-based screen index within the group.
	// It is nil when the client is not pinned to a screen, and is only
	// meaningful when GroupID is set.
	ScreenNumber *int `json:"screen_number,omitempty"`
	// Status is derived from LastSeen by the backend
	Status ClientStatus `json:"status"`
	// LastSeen is when the client last contacted the backend
	LastSeen time.Time `json:"last_seen"`
}

// AssignedToScreen reports whether the client is pinned to a screen index
func (c Client) AssignedToScreen() bool {
	return c.ScreenNumber != nil
}

// ClientList is the backend response listing all clients
type ClientList struct {
	Clients []Client `json:"clients"`
}

// RegisterClientRequest represents a request to register a playback device
type RegisterClientRequest struct {
	ClientID    string `json:"client_id"`
	Hostname    string `json:"hostname"`
	IPAddress   string `json:"ip_address"`
	DisplayName string `json:"display_name,omitempty"`
}

// RenameClientRequest sets a client's operator-assigned label
type RenameClientRequest struct {
	ClientID    string `json:"client_id"`
	DisplayName string `json:"display_name"`
}

// RemoveClientRequest deletes a client registration
type RemoveClientRequest struct {
	ClientID string `json:"client_id"`
}

// AssignGroupRequest assigns a client to a group
type AssignGroupRequest struct {
	ClientID string `json:"client_id"`
	GroupID  string `json:"group_id"`
}

// UnassignGroupRequest removes a client from its group
type UnassignGroupRequest struct {
	ClientID string `json:"client_id"`
}

// AssignScreenRequest pins a client to a screen index within a group
type AssignScreenRequest struct {
	ClientID     string `json:"client_id"`
	GroupID      string `json:"group_id"`
	ScreenNumber int    `json:"screen_number"`
}

// UnassignScreenRequest releases a client from its screen index
type UnassignScreenRequest struct {
	ClientID string `json:"client_id"`
}
