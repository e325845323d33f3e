package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vidwall/vidwall-console/api/types/v1alpha1"
)

// ListGroups retrieves all streaming groups known to the backend, including
// groups whose encoder container is not currently running.
func (c *Client) ListGroups(ctx context.Context) ([]v1alpha1.Group, error) {
	const op = "ListGroups"

	resp, err := c.doRequest(ctx, op, http.MethodGet, "/api/groups", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var list v1alpha1.GroupList
	if err := decodeResponse(op, resp, &list); err != nil {
		return nil, err
	}
	return list.Groups, nil
}

// CreateGroup creates a new streaming group. The backend allocates the
// container and ports; the returned group carries the assigned id.
func (c *Client) CreateGroup(ctx context.Context, req v1alpha1.CreateGroupRequest) (*v1alpha1.Group, error) {
	const op = "CreateGroup"

	resp, err := c.doRequest(ctx, op, http.MethodPost, "/api/groups", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var group v1alpha1.Group
	if err := decodeResponse(op, resp, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// DeleteGroup removes a streaming group and tears down its container.
func (c *Client) DeleteGroup(ctx context.Context, groupID string) error {
	const op = "DeleteGroup"

	resp, err := c.doRequest(ctx, op, http.MethodPost, fmt.Sprintf("/api/groups/%s/delete", groupID), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(op, resp, nil)
}

// AutoAssignScreens asks the backend to distribute a group's clients across
// its screens in one round trip. The assignment is computed server-side.
func (c *Client) AutoAssignScreens(ctx context.Context, groupID string) error {
	const op = "AutoAssignScreens"

	resp, err := c.doRequest(ctx, op, http.MethodPost, fmt.Sprintf("/api/groups/%s/auto_assign_screens", groupID), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(op, resp, nil)
}

// GetScreenAssignments retrieves a group's current client-to-screen
// assignments as the backend sees them.
func (c *Client) GetScreenAssignments(ctx context.Context, groupID string) (*v1alpha1.ScreenAssignmentList, error) {
	const op = "GetScreenAssignments"

	resp, err := c.doRequest(ctx, op, http.MethodGet, fmt.Sprintf("/api/groups/%s/screen_assignments", groupID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var list v1alpha1.ScreenAssignmentList
	if err := decodeResponse(op, resp, &list); err != nil {
		return nil, err
	}
	return &list, nil
}
