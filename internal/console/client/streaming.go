package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vidwall/vidwall-console/api/types/v1alpha1"
)

// StartMultiVideo starts streaming for a group with one video per screen.
// The caller is responsible for validating that every screen index carries a
// non-empty file before issuing the call.
func (c *Client) StartMultiVideo(ctx context.Context, groupID string, req v1alpha1.StartMultiVideoRequest) error {
	const op = "StartMultiVideo"

	resp, err := c.doRequest(ctx, op, http.MethodPost,
		fmt.Sprintf("/api/groups/%s/start_multi_video", groupID), req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(op, resp, nil)
}

// StartSingleVideoSplit starts streaming one video cropped across a group's
// screens. Crop regions are computed by the backend from the group layout.
func (c *Client) StartSingleVideoSplit(ctx context.Context, groupID string, req v1alpha1.StartSingleVideoSplitRequest) error {
	const op = "StartSingleVideoSplit"

	resp, err := c.doRequest(ctx, op, http.MethodPost,
		fmt.Sprintf("/api/groups/%s/start_single_video_split", groupID), req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(op, resp, nil)
}

// StopStreaming stops streaming for a group regardless of the mode that was
// started.
func (c *Client) StopStreaming(ctx context.Context, groupID string) error {
	const op = "StopStreaming"

	resp, err := c.doRequest(ctx, op, http.MethodPost,
		fmt.Sprintf("/api/groups/%s/stop_streaming", groupID), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(op, resp, nil)
}

// GetStreamingStatus fetches the raw streaming status for one group. The
// value shape varies across backend versions and is normalized by the engine
// before use.
func (c *Client) GetStreamingStatus(ctx context.Context, groupID string) (v1alpha1.RawStreamingStatus, error) {
	const op = "GetStreamingStatus"

	resp, err := c.doRequest(ctx, op, http.MethodGet,
		fmt.Sprintf("/api/groups/%s/streaming_status", groupID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var raw v1alpha1.RawStreamingStatus
	if err := decodeResponse(op, resp, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// GetAllStreamingStatuses fetches raw streaming statuses for every group in
// one batched call.
func (c *Client) GetAllStreamingStatuses(ctx context.Context) (map[string]v1alpha1.RawStreamingStatus, error) {
	const op = "GetAllStreamingStatuses"

	resp, err := c.doRequest(ctx, op, http.MethodGet, "/api/streaming_status", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var statuses v1alpha1.StreamingStatusMap
	if err := decodeResponse(op, resp, &statuses); err != nil {
		return nil, err
	}
	return statuses.Statuses, nil
}
