package client

import (
	"context"
	"net/http"

	"github.com/vidwall/vidwall-console/api/types/v1alpha1"
)

// ListClients retrieves all registered playback devices.
func (c *Client) ListClients(ctx context.Context) ([]v1alpha1.Client, error) {
	const op = "ListClients"

	resp, err := c.doRequest(ctx, op, http.MethodGet, "/api/clients", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var list v1alpha1.ClientList
	if err := decodeResponse(op, resp, &list); err != nil {
		return nil, err
	}
	return list.Clients, nil
}

// RegisterClient registers a playback device. Registration is normally
// device-initiated; this call exists for manual enrollment.
func (c *Client) RegisterClient(ctx context.Context, req v1alpha1.RegisterClientRequest) error {
	const op = "RegisterClient"

	resp, err := c.doRequest(ctx, op, http.MethodPost, "/api/clients/register", req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(op, resp, nil)
}

// RemoveClient deletes a client registration.
func (c *Client) RemoveClient(ctx context.Context, clientID string) error {
	const op = "RemoveClient"

	resp, err := c.doRequest(ctx, op, http.MethodPost, "/api/clients/remove",
		v1alpha1.RemoveClientRequest{ClientID: clientID})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(op, resp, nil)
}

// RenameClient sets a client's operator-assigned display name.
func (c *Client) RenameClient(ctx context.Context, clientID, displayName string) error {
	const op = "RenameClient"

	resp, err := c.doRequest(ctx, op, http.MethodPost, "/api/clients/rename",
		v1alpha1.RenameClientRequest{ClientID: clientID, DisplayName: displayName})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(op, resp, nil)
}

// AssignClientToGroup places a client into a group. The client keeps no
// screen assignment until one is made explicitly.
func (c *Client) AssignClientToGroup(ctx context.Context, clientID, groupID string) error {
	const op = "AssignClientToGroup"

	resp, err := c.doRequest(ctx, op, http.MethodPost, "/api/clients/assign_group",
		v1alpha1.AssignGroupRequest{ClientID: clientID, GroupID: groupID})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(op, resp, nil)
}

// UnassignClientFromGroup removes a client from its group, clearing any
// screen assignment along with it.
func (c *Client) UnassignClientFromGroup(ctx context.Context, clientID string) error {
	const op = "UnassignClientFromGroup"

	resp, err := c.doRequest(ctx, op, http.MethodPost, "/api/clients/unassign_group",
		v1alpha1.UnassignGroupRequest{ClientID: clientID})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(op, resp, nil)
}

// AssignClientToScreen pins a client to a zero-based screen index within a
// group. The backend validates the index against the group's screen count.
func (c *Client) AssignClientToScreen(ctx context.Context, clientID, groupID string, screenNumber int) error {
	const op = "AssignClientToScreen"

	resp, err := c.doRequest(ctx, op, http.MethodPost, "/api/clients/assign_screen",
		v1alpha1.AssignScreenRequest{ClientID: clientID, GroupID: groupID, ScreenNumber: screenNumber})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(op, resp, nil)
}

// UnassignClientFromScreen releases a client from its screen index while
// keeping it in its group.
func (c *Client) UnassignClientFromScreen(ctx context.Context, clientID string) error {
	const op = "UnassignClientFromScreen"

	resp, err := c.doRequest(ctx, op, http.MethodPost, "/api/clients/unassign_screen",
		v1alpha1.UnassignScreenRequest{ClientID: clientID})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(op, resp, nil)
}
