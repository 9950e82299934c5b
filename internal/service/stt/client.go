// Package stt is the HTTP client for the speech-to-text collaborator. The
// service is an opaque contract: audio bytes in, transcript and confidence
// out. Availability is never assumed; callers wrap Transcribe with the
// collab budget and degrade on failure.
package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Result is the collaborator's transcription output.
type Result struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
}

// Client posts recordings to the transcription service.
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

// Transcribe uploads the recording as multipart form data and decodes the
// transcription response.
func (c *Client) Transcribe(ctx context.Context, audio []byte) (Result, error) {
	if !c.Enabled() {
		return Result{}, fmt.Errorf("stt collaborator not configured")
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("file", "answer.wav")
	if err != nil {
		return Result{}, err
	}
	if _, err = fw.Write(audio); err != nil {
		return Result{}, err
	}
	if err = w.Close(); err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transcribe", &body)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return Result{}, fmt.Errorf("stt %s: %s", resp.Status, string(msg))
	}

	var out Result
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{}, fmt.Errorf("stt decode: %w", err)
	}
	return out, nil
}
