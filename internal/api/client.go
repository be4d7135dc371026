package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"craft-cli/internal/model"
)

const DefaultBaseURL = "http://localhost:8080/api/v1"

// Client talks to the CrafT backend. The document store semantics the builder
// relies on live here: GetForm/UpdateForm for the autosave loop, publish
// lifecycle, duplication, deletion, and submission review.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Dashboard(ctx context.Context) (*Dashboard, error) {
	var resp struct {
		Forms []wireForm     `json:"forms"`
		Stats DashboardStats `json:"stats"`
	}
	if err := c.do(ctx, http.MethodGet, "/user/dashboard", nil, &resp); err != nil {
		return nil, err
	}
	d := &Dashboard{Stats: resp.Stats}
	for _, f := range resp.Forms {
		d.Forms = append(d.Forms, f.summary())
	}
	return d, nil
}

func (c *Client) CreateForm(ctx context.Context, title, description string) (*model.FormSummary, error) {
	req := struct {
		Title       string  `json:"title"`
		Description *string `json:"description"`
	}{Title: title, Description: ptrFromStr(description)}

	var w wireForm
	if err := c.do(ctx, http.MethodPost, "/user/forms", req, &w); err != nil {
		return nil, err
	}
	s := w.summary()
	return &s, nil
}

func (c *Client) GetForm(ctx context.Context, id string) (*FormDetail, error) {
	var f FormDetail
	if err := c.do(ctx, http.MethodGet, "/user/forms/"+url.PathEscape(id), nil, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (c *Client) UpdateForm(ctx context.Context, id string, upd FormUpdate) error {
	return c.do(ctx, http.MethodPut, "/user/forms/"+url.PathEscape(id), upd, nil)
}

func (c *Client) PublishForm(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPut, "/user/forms/"+url.PathEscape(id)+"/publish", nil, nil)
}

func (c *Client) UnpublishForm(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPut, "/user/forms/"+url.PathEscape(id)+"/unpublish", nil, nil)
}

func (c *Client) DuplicateForm(ctx context.Context, id string) (*model.FormSummary, error) {
	var w wireForm
	if err := c.do(ctx, http.MethodPost, "/user/forms/"+url.PathEscape(id)+"/duplicate", nil, &w); err != nil {
		return nil, err
	}
	s := w.summary()
	return &s, nil
}

func (c *Client) DeleteForm(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/user/forms/"+url.PathEscape(id), nil, nil)
}

func (c *Client) GetFormSubmissions(ctx context.Context, id string) ([]model.Submission, error) {
	var ws []wireSubmission
	if err := c.do(ctx, http.MethodGet, "/user/forms/"+url.PathEscape(id)+"/submissions", nil, &ws); err != nil {
		return nil, err
	}
	out := make([]model.Submission, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.submission())
	}
	return out, nil
}

func (c *Client) GetPublicForm(ctx context.Context, username, slug string) (*FormDetail, error) {
	var f FormDetail
	path := "/public/forms/" + url.PathEscape(username) + "/" + url.PathEscape(slug)
	if err := c.do(ctx, http.MethodGet, path, nil, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// SubmitForm sends an end-user response to a public form and returns the new
// submission id. Builder preview never calls this; it is for the real
// public-form flow.
func (c *Client) SubmitForm(ctx context.Context, id string, answers []SubmitAnswer) (string, error) {
	req := struct {
		Answers []SubmitAnswer `json:"answers"`
	}{Answers: answers}
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/public/forms/"+url.PathEscape(id)+"/submit", req, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}
	var envelope struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	// Best effort: some failures (proxies, panics) are not JSON.
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(b, &envelope) == nil {
		apiErr.Message = envelope.Error
		apiErr.Detail = envelope.Detail
	}
	return apiErr
}
