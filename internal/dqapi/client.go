// Package dqapi is the typed client for the DQ HR backend's timesheet,
// holiday and leave endpoints.
package dqapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/dq-aem-sibaram/dq-timesheet/internal/model"
)

// Client is an authenticated DQ backend API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client using the provided token and OAuth2 config.
// Refreshed tokens are persisted back to disk as a side effect.
func NewClient(ctx context.Context, baseURL string, tok *oauth2.Token, cfg *oauth2.Config) *Client {
	ts := cfg.TokenSource(ctx, tok)
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: oauth2.NewClient(ctx, &savingTokenSource{ts: ts}),
	}
}

// NewClientWithHTTPClient creates a client on a caller-supplied http.Client.
// Used by tests and by deployments that front the backend with their own
// transport.
func NewClientWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: hc}
}

// savingTokenSource wraps a TokenSource and persists refreshed tokens.
type savingTokenSource struct {
	ts oauth2.TokenSource
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.ts.Token()
	if err != nil {
		return nil, err
	}
	// Best-effort save; ignore errors.
	_ = saveToken(tok)
	return tok, nil
}

// envelope is the backend's uniform response wrapper. flag=false is reported
// as an error, indistinguishable from a transport failure to callers.
type envelope struct {
	Flag     bool            `json:"flag"`
	Message  string          `json:"message"`
	Response json.RawMessage `json:"response"`
}

// call issues one request and decodes the envelope into out (which may be
// nil for ack-only endpoints).
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend error %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decoding backend response: %w", err)
	}
	if !env.Flag {
		if env.Message == "" {
			env.Message = "request rejected"
		}
		return fmt.Errorf("backend rejected request: %s", env.Message)
	}
	if out != nil && len(env.Response) > 0 {
		if err := json.Unmarshal(env.Response, out); err != nil {
			return fmt.Errorf("decoding backend payload: %w", err)
		}
	}
	return nil
}

// ListActiveHolidays returns the configured holidays. Filtering to active
// entries happens in the grid; the endpoint already scopes to active ones
// but older backends return the full table.
func (c *Client) ListActiveHolidays(ctx context.Context) ([]model.HolidayEntry, error) {
	var holidays []model.HolidayEntry
	if err := c.call(ctx, http.MethodGet, "/api/v1/holidays/active", nil, nil, &holidays); err != nil {
		return nil, err
	}
	return holidays, nil
}

// ListApprovedLeaves returns the approved leave days for a calendar year.
func (c *Client) ListApprovedLeaves(ctx context.Context, year string) ([]model.LeaveDayEntry, error) {
	q := url.Values{"year": {year}}
	var leaves []model.LeaveDayEntry
	if err := c.call(ctx, http.MethodGet, "/api/v1/leaves/approved", q, nil, &leaves); err != nil {
		return nil, err
	}
	return leaves, nil
}

// ListTimesheets returns the caller's timesheet entries whose work date falls
// within [startDate, endDate], both ISO dates inclusive.
func (c *Client) ListTimesheets(ctx context.Context, startDate, endDate string) ([]model.TimesheetEntry, error) {
	q := url.Values{"startDate": {startDate}, "endDate": {endDate}}
	var entries []model.TimesheetEntry
	if err := c.call(ctx, http.MethodGet, "/api/v1/timesheets", q, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateTimesheets creates a batch of entries in one request and returns the
// assigned identifiers.
func (c *Client) CreateTimesheets(ctx context.Context, entries []model.TimesheetCreate) ([]model.TimesheetCreated, error) {
	var created []model.TimesheetCreated
	if err := c.call(ctx, http.MethodPost, "/api/v1/timesheets/batch", nil, entries, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateTimesheet replaces one entry by its remote identifier.
func (c *Client) UpdateTimesheet(ctx context.Context, timesheetID string, entry model.TimesheetCreate) error {
	return c.call(ctx, http.MethodPut, "/api/v1/timesheets/"+url.PathEscape(timesheetID), nil, entry, nil)
}

// DeleteTimesheet removes one entry by its remote identifier.
func (c *Client) DeleteTimesheet(ctx context.Context, timesheetID string) error {
	return c.call(ctx, http.MethodDelete, "/api/v1/timesheets/"+url.PathEscape(timesheetID), nil, nil, nil)
}

// SubmitForApproval moves the given entries to Submitted in one request.
func (c *Client) SubmitForApproval(ctx context.Context, timesheetIDs []string) error {
	body := struct {
		TimesheetIDs []string `json:"timesheet_ids"`
	}{TimesheetIDs: timesheetIDs}
	return c.call(ctx, http.MethodPost, "/api/v1/timesheets/submit", nil, body, nil)
}
