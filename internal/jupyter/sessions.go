package jupyter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
)

// DefaultTimeout is the per-request timeout of a new Client. Zero leaves a
// session query bounded by the transport and the caller's context only.
const DefaultTimeout time.Duration = 0

// Session is one entry of a server's api/sessions listing.
type Session struct {
	ID       string    `json:"id"`
	Path     string    `json:"path,omitempty"`
	Name     string    `json:"name,omitempty"`
	Type     string    `json:"type,omitempty"`
	Kernel   Kernel    `json:"kernel"`
	Notebook *Notebook `json:"notebook,omitempty"`
}

// Kernel identifies the kernel backing a session.
type Kernel struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Notebook is the notebook attached to a session.
type Notebook struct {
	Path string `json:"path"`
	Name string `json:"name,omitempty"`
}

// NotebookPath returns notebook.path, or the top-level path reported by
// servers that no longer send the notebook object.
func (s Session) NotebookPath() string {
	if s.Notebook != nil && s.Notebook.Path != "" {
		return s.Notebook.Path
	}
	return s.Path
}

// Client queries the session API of notebook servers.
type Client struct {
	timeout time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the per-request timeout. Zero leaves requests bounded only
// by the transport and the caller's context.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a session client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SessionsURL builds the api/sessions URL for srv. Servers without token and
// password are addressed without credentials; every other server gets its
// advertised token as a query parameter, even when that token is empty.
func SessionsURL(srv Server) string {
	u := srv.URL + "api/sessions"
	if srv.Open() {
		return u
	}
	return u + "?" + url.Values{"token": {srv.Token}}.Encode()
}

// Sessions fetches the active sessions of srv.
func (c *Client) Sessions(ctx context.Context, srv Server) ([]Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, SessionsURL(srv), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create sessions request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient(srv).Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("sessions request failed with status: %d", resp.StatusCode)
	}

	var sessions []Session
	if err := json.NewDecoder(resp.Body).Decode(&sessions); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}

	return sessions, nil
}

// httpClient returns a client for srv. Servers with a token also get it as a
// bearer Authorization header, which Jupyter Server accepts alongside the
// query parameter.
func (c *Client) httpClient(srv Server) *http.Client {
	transport := http.DefaultTransport
	if srv.Token != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: srv.Token}),
			Base:   http.DefaultTransport,
		}
	}

	return &http.Client{
		Transport: transport,
		Timeout:   c.timeout,
	}
}
