// Package githubapi is a thin client for the GitHub repository contents API,
// scoped to reading and conditionally writing single files. The file's blob
// sha doubles as an optimistic-concurrency token: a write carrying a stale
// sha is rejected by the API.
package githubapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/common"
)

const (
	defaultBaseURL = "https://api.github.com"
	acceptHeader   = "application/vnd.github.v3+json"
)

// ContentFile is a decoded file fetched from the contents API.
type ContentFile struct {
	// Content is the raw file body, already base64-decoded.
	Content []byte
	// SHA is the blob sha of this revision, used as the version token
	// for conditional writes.
	SHA string
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	owner      string
	repo       string
	branch     string
}

type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests against a fake.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func NewClient(token, owner, repo, branch string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    defaultBaseURL,
		token:      token,
		owner:      owner,
		repo:       repo,
		branch:     branch,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) contentsURL(path string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, c.owner, c.repo, path)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", acceptHeader)
}

// contentResponse is the wire shape of a GET and of the "content" object in
// a PUT response.
type contentResponse struct {
	Content string `json:"content"`
	SHA     string `json:"sha"`
}

// Get fetches the file at path. A missing file yields common.ErrorNotFound;
// every other failure is returned with the response detail preserved.
func (c *Client) Get(ctx context.Context, path string) (*ContentFile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.contentsURL(path), nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github get: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("github get: reading response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, common.ErrorNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github get: %s: %s", resp.Status, string(body))
	}

	var cr contentResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, fmt.Errorf("github get: decoding response: %w", err)
	}

	// The API wraps base64 payloads across lines.
	decoded, err := base64.StdEncoding.DecodeString(stripWhitespace(cr.Content))
	if err != nil {
		return nil, fmt.Errorf("github get: decoding content: %w", err)
	}

	return &ContentFile{Content: decoded, SHA: cr.SHA}, nil
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"`
}

type putResponse struct {
	Content contentResponse `json:"content"`
}

// Put writes content to path with the given commit message. A non-empty sha
// makes the write conditional on that revision still being current; the API
// answers 409 or 422 when it is not, surfaced as common.ErrVersionConflict.
// An empty sha creates the file.
func (c *Client) Put(ctx context.Context, path string, content []byte, sha, message string) (string, error) {
	payload, err := json.Marshal(putRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		Branch:  c.branch,
		SHA:     sha,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.contentsURL(path), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("github put: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("github put: reading response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusConflict, http.StatusUnprocessableEntity:
		return "", fmt.Errorf("%w: %s: %s", common.ErrVersionConflict, resp.Status, string(body))
	default:
		return "", fmt.Errorf("github put: %s: %s", resp.Status, string(body))
	}

	var pr putResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return "", fmt.Errorf("github put: decoding response: %w", err)
	}
	return pr.Content.SHA, nil
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, s)
}
