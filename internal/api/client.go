package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is used when neither the environment nor the settings
	// file provides a backend address.
	DefaultBaseURL = "http://127.0.0.1:8000"

	defaultHTTPTimeout = 2 * time.Minute
)

// UsageRecorder receives usage events emitted after successful calls. The
// adapter never records anything for a failed call.
type UsageRecorder interface {
	RecordConversation()
	RecordVideoProcessed()
	RecordAnalysisSample(confidencePercent int)
}

// Config describes how to build a backend client.
type Config struct {
	BaseURL    string
	Token      string
	Usage      UsageRecorder
	HTTPClient *http.Client
}

// Client talks to the CogniFlow backend. All request/response translation
// between UI-level types and the wire contract lives on its methods.
type Client struct {
	baseURL string
	token   string
	usage   UsageRecorder
	client  *http.Client
}

// New builds a Client from cfg, falling back to DefaultBaseURL and a default
// timeout when unset. Cancellation belongs to the caller's context.
func New(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{
		baseURL: base,
		token:   cfg.Token,
		usage:   cfg.Usage,
		client:  client,
	}
}

// BaseURL reports the resolved backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetToken installs the bearer token sent with authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) postFile(ctx context.Context, path, filename string, data []byte, out any) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := part.Write(data); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.do(req, out)
}

func (c *Client) postQuery(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}
