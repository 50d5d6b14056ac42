// Package locator finds the notebook a kernel is running in and the numbered
// notebooks next to it.
//
// The current notebook is found by matching the kernel identifier against
// the sessions reported by every running notebook server. Sibling notebooks
// follow the numeric prefix convention: "3_intro.ipynb", "4_body.ipynb",
// "5_end.ipynb" are ordered by their leading integer.
package locator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/d-kuro/nbloc/internal/errors"
	"github.com/d-kuro/nbloc/internal/jupyter"
	"github.com/d-kuro/nbloc/internal/logging"
)

// Lookup failures. Each is distinguishable with errors.Is.
var (
	// ErrCurrentUndetermined means no server reported a session for the
	// running kernel, or the kernel itself could not be identified.
	ErrCurrentUndetermined = errors.Sentinel(errors.ErrNotFound, "current notebook undetermined")

	// ErrNoNumericPrefix means the current notebook name does not start
	// with a number, so it has no neighbours.
	ErrNoNumericPrefix = errors.Sentinel(errors.ErrValidation, "notebook name has no numeric prefix")

	// ErrNoNotebook means no notebook file matches the requested number or
	// prefix.
	ErrNoNotebook = errors.Sentinel(errors.ErrNotFound, "no matching notebook")
)

// Environment supplies the running kernel's identifier and the notebook
// servers that may host it. The server list may contain stale entries.
type Environment interface {
	KernelID() (string, error)
	Servers() ([]jupyter.Server, error)
}

// SessionSource fetches the active sessions of a server.
type SessionSource interface {
	Sessions(ctx context.Context, srv jupyter.Server) ([]jupyter.Session, error)
}

// Probe is the outcome of querying one server: either its sessions or the
// reason it was skipped.
type Probe struct {
	Server   jupyter.Server
	Sessions []jupyter.Session
	Err      error
}

// Skipped reports whether the server could not be queried.
func (p Probe) Skipped() bool {
	return p.Err != nil
}

// Find returns the notebook path of the session running kernelID.
func (p Probe) Find(kernelID string) (string, bool) {
	for _, sess := range p.Sessions {
		if sess.Kernel.ID == kernelID {
			return sess.NotebookPath(), true
		}
	}
	return "", false
}

// ServerStatus summarizes a probe for reporting. Tokens are never included.
type ServerStatus struct {
	URL         string `json:"url"`
	RuntimeFile string `json:"runtime_file,omitempty"`
	PID         int    `json:"pid,omitempty"`
	Root        string `json:"root,omitempty"`
	Credentials bool   `json:"credentials"`
	Sessions    int    `json:"sessions"`
	Skipped     string `json:"skipped,omitempty"`
}

// Status summarizes the probe.
func (p Probe) Status() ServerStatus {
	status := ServerStatus{
		URL:         p.Server.URL,
		RuntimeFile: p.Server.RuntimeFile,
		PID:         p.Server.PID,
		Root:        p.Server.Root(),
		Credentials: !p.Server.Open(),
		Sessions:    len(p.Sessions),
	}
	if p.Skipped() {
		status.Skipped = p.Err.Error()
	}
	return status
}

// Locator resolves notebooks for the running kernel.
type Locator struct {
	env      Environment
	sessions SessionSource
	dir      string
	logger   *logging.Logger
}

// Option configures a Locator.
type Option func(*Locator)

// WithDir sets the directory searched for sibling notebooks. The default is
// the current working directory.
func WithDir(dir string) Option {
	return func(l *Locator) {
		if dir != "" {
			l.dir = dir
		}
	}
}

// WithLogger sets the logger used to report skipped servers.
func WithLogger(logger *logging.Logger) Option {
	return func(l *Locator) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a Locator. A nil sessions source uses a default jupyter.Client.
func New(env Environment, sessions SessionSource, opts ...Option) *Locator {
	if sessions == nil {
		sessions = jupyter.NewClient()
	}

	l := &Locator{
		env:      env,
		sessions: sessions,
		dir:      ".",
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Dir returns the directory searched for sibling notebooks.
func (l *Locator) Dir() string {
	return l.dir
}

// CurrentPath returns the path of the notebook the running kernel belongs
// to, as reported by the first server (in enumeration order) with a matching
// session. Servers that fail to answer are skipped. When no server knows the
// kernel the error wraps ErrCurrentUndetermined.
func (l *Locator) CurrentPath(ctx context.Context) (string, error) {
	kernelID, err := l.env.KernelID()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCurrentUndetermined, err)
	}

	servers, err := l.env.Servers()
	if err != nil {
		return "", fmt.Errorf("%w: failed to list servers: %w", ErrCurrentUndetermined, err)
	}

	logger := l.logger.WithKernel(kernelID)
	for _, srv := range servers {
		p := l.probe(ctx, srv)
		if p.Skipped() {
			logger.WithServer(srv.URL).Debug("Skipping notebook server", slog.Any("error", p.Err))
			continue
		}

		if path, ok := p.Find(kernelID); ok {
			logger.Debug("Resolved current notebook",
				slog.String("server", srv.URL),
				slog.String("path", path))
			return path, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrCurrentUndetermined, err)
	}

	return "", fmt.Errorf("%w: no session for kernel %s on %d server(s)", ErrCurrentUndetermined, kernelID, len(servers))
}

// Probe queries every advertised server and reports each outcome.
func (l *Locator) Probe(ctx context.Context) ([]Probe, error) {
	servers, err := l.env.Servers()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list servers")
	}

	probes := make([]Probe, 0, len(servers))
	for _, srv := range servers {
		probes = append(probes, l.probe(ctx, srv))
	}
	return probes, nil
}

func (l *Locator) probe(ctx context.Context, srv jupyter.Server) Probe {
	sessions, err := l.sessions.Sessions(ctx, srv)
	if err != nil {
		return Probe{Server: srv, Err: err}
	}
	return Probe{Server: srv, Sessions: sessions}
}
