package client

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"

	"github.com/google/uuid"

	"github.com/vidwall/vidwall-console/api/types/v1alpha1"
	"github.com/vidwall/vidwall-console/internal/console/errors"
)

// ListVideos retrieves all uploaded source videos.
func (c *Client) ListVideos(ctx context.Context) ([]v1alpha1.Video, error) {
	const op = "ListVideos"

	resp, err := c.doRequest(ctx, op, http.MethodGet, "/api/videos", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var list v1alpha1.VideoList
	if err := decodeResponse(op, resp, &list); err != nil {
		return nil, err
	}
	return list.Videos, nil
}

// UploadVideo uploads a source video as a multipart form. The name must be
// unique; the backend rejects duplicates with a domain error.
func (c *Client) UploadVideo(ctx context.Context, name string, content io.Reader) (*v1alpha1.Video, error) {
	const op = "UploadVideo"

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return nil, errors.NewTransport(op, err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, errors.NewTransport(op, err)
	}
	if err := mw.Close(); err != nil {
		return nil, errors.NewTransport(op, err)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, errors.NewTransport(op, err)
	}
	u.Path = path.Join(u.Path, "/api/videos/upload")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), &body)
	if err != nil {
		return nil, errors.NewTransport(op, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewTransport(op, err)
	}
	defer resp.Body.Close()

	var video v1alpha1.Video
	if err := decodeResponse(op, resp, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// DeleteVideo removes an uploaded video.
func (c *Client) DeleteVideo(ctx context.Context, name string) error {
	const op = "DeleteVideo"

	resp, err := c.doRequest(ctx, op, http.MethodPost, "/api/videos/delete",
		v1alpha1.DeleteVideoRequest{Name: name})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(op, resp, nil)
}
