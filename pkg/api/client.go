// Package api is the HTTP client for the tutor backend: saving tutors,
// fetching the instructor dashboard, and loading sidebar fragments. There
// is no retry policy anywhere; failures return errors the caller surfaces
// and state is left unchanged.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client talks to the tutor backend.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithToken sets the bearer token sent on authenticated requests.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for a backend base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tutor is the save payload. Content carries the rendered canvas HTML.
type Tutor struct {
	ID          int64          `json:"-"`
	Title       string         `json:"title"`
	Content     TutorContent   `json:"content"`
	Description string         `json:"description"`
	SubjectArea string         `json:"subject_area"`
	Settings    map[string]any `json:"settings"`
}

// TutorContent wraps the canvas HTML.
type TutorContent struct {
	HTML string `json:"html"`
}

type saveResponse struct {
	Tutor struct {
		ID int64 `json:"id"`
	} `json:"tutor"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// SaveTutor persists a tutor. A 201 response means the backend created a
// new tutor; the returned id is the one the caller should adopt. A 200
// response means an in-place update and echoes the tutor's id.
func (c *Client) SaveTutor(ctx context.Context, tutor Tutor) (int64, error) {
	body, err := json.Marshal(tutor)
	if err != nil {
		return 0, fmt.Errorf("api: marshal tutor: %w", err)
	}

	url := fmt.Sprintf("%s/tutors/update/%d", c.baseURL, tutor.ID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("api: build save request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("api: save tutor: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var out saveResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return 0, fmt.Errorf("api: decode save response: %w", err)
		}
		if resp.StatusCode == http.StatusCreated {
			return out.Tutor.ID, nil
		}
		if out.Tutor.ID != 0 {
			return out.Tutor.ID, nil
		}
		return tutor.ID, nil
	default:
		return 0, c.apiError("save tutor", resp)
	}
}

// Dashboard is the instructor landing data.
type Dashboard struct {
	Metrics      map[string]any   `json:"metrics"`
	Courses      []map[string]any `json:"courses"`
	Tutors       []map[string]any `json:"tutors"`
	ActivityFeed []map[string]any `json:"activityFeed"`
}

// FetchDashboard loads the instructor dashboard with bearer auth.
func (c *Client) FetchDashboard(ctx context.Context) (*Dashboard, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/dashboard/instructor-main", nil)
	if err != nil {
		return nil, fmt.Errorf("api: build dashboard request: %w", err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: fetch dashboard: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError("fetch dashboard", resp)
	}
	var out Dashboard
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("api: decode dashboard: %w", err)
	}
	return &out, nil
}

// FetchSidebar loads a sidebar HTML fragment and separates its scripts from
// the injectable markup.
func (c *Client) FetchSidebar(ctx context.Context, url string) (*Sidebar, error) {
	if !strings.Contains(url, "://") {
		url = c.baseURL + "/" + strings.TrimLeft(url, "/")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("api: build sidebar request: %w", err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: fetch sidebar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError("fetch sidebar", resp)
	}
	markup, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("api: read sidebar: %w", err)
	}
	return ParseSidebar(string(markup))
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// apiError decodes the backend's {error} body, falling back to the status.
func (c *Client) apiError(verb string, resp *http.Response) error {
	var out errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err == nil && out.Error != "" {
		return fmt.Errorf("api: %s: %s (status %d)", verb, out.Error, resp.StatusCode)
	}
	return fmt.Errorf("api: %s: unexpected status %d", verb, resp.StatusCode)
}
