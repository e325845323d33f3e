package client

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	"github.com/vidwall/vidwall-console/internal/console/errors"
)

// decodeResponse checks the response status and decodes the JSON body into
// the provided target. A nil target only checks the status.
func decodeResponse(op string, resp *http.Response, target interface{}) error {
	if err := handleResponse(op, resp); err != nil {
		return err
	}
	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return errors.NewProtocol(op, "malformed response body", err)
		}
	}
	return nil
}

// handleResponse normalizes a backend response into the engine error
// taxonomy. A non-2xx status with a JSON error body is a domain error; a
// non-JSON body where JSON was expected is always a protocol error.
func handleResponse(op string, resp *http.Response) error {
	if !jsonContentType(resp) {
		return errors.NewProtocol(op,
			fmt.Sprintf("HTTP %d: unexpected content type %q", resp.StatusCode, resp.Header.Get("Content-Type")),
			nil)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var apiErr struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
		return errors.NewProtocol(op,
			fmt.Sprintf("HTTP %d: unable to decode error response", resp.StatusCode), err)
	}

	msg := apiErr.Error
	if msg == "" {
		msg = apiErr.Message
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return errors.NewDomain(op, msg)
}

func jsonContentType(resp *http.Response) bool {
	ct := resp.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}
