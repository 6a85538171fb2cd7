// Package testutil provides testing utilities for API handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
)

// Client is an HTTP client for testing API endpoints.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	t          *testing.T
}

// NewClient creates a new test client.
func NewClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{},
		t:          t,
	}
}

// Do performs a request with an optional JSON body and returns the response.
func (c *Client) Do(method, path string, body interface{}) *http.Response {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		c.t.Fatalf("create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// Get performs a GET request.
func (c *Client) Get(path string) *http.Response {
	return c.Do(http.MethodGet, path, nil)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(path string, body interface{}) *http.Response {
	return c.Do(http.MethodPost, path, body)
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(path string, body interface{}) *http.Response {
	return c.Do(http.MethodPatch, path, body)
}

// Delete performs a DELETE request.
func (c *Client) Delete(path string) *http.Response {
	return c.Do(http.MethodDelete, path, nil)
}

// DecodeData unmarshals the {"data": ...} envelope of resp into out and
// closes the body.
func (c *Client) DecodeData(resp *http.Response, out interface{}) {
	c.t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.t.Fatalf("read response body: %v", err)
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		c.t.Fatalf("unmarshal envelope %q: %v", raw, err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		c.t.Fatalf("unmarshal data %q: %v", envelope.Data, err)
	}
}

// ErrorMessage returns the {"error":{"message":...}} of resp and closes the
// body.
func (c *Client) ErrorMessage(resp *http.Response) string {
	c.t.Helper()
	defer resp.Body.Close()

	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		c.t.Fatalf("decode error envelope: %v", err)
	}
	return envelope.Error.Message
}
