// Package vision is the HTTP client for the facial/emotion collaborator,
// which returns per-sampled-frame observations for a video recording.
package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/mockview/mockview/backend/internal/analysis/video"
)

// Client posts recordings to the vision service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the service at baseURL. An empty baseURL
// produces a disabled client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Enabled reports whether a collaborator endpoint was configured.
func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// AnalyzeFrames uploads the recording and decodes the per-frame observation
// list.
func (c *Client) AnalyzeFrames(ctx context.Context, videoBytes []byte) ([]video.FrameObservation, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("vision collaborator not configured")
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("file", "answer.webm")
	if err != nil {
		return nil, err
	}
	if _, err = fw.Write(videoBytes); err != nil {
		return nil, err
	}
	if err = w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("vision %s: %s", resp.Status, string(msg))
	}

	var out struct {
		Frames []video.FrameObservation `json:"frames"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("vision decode: %w", err)
	}
	return out.Frames, nil
}
