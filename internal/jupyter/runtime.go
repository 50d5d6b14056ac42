package jupyter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Runtime file patterns written by running servers: the classic Notebook
// server uses nbserver-<pid>.json, Jupyter Server uses jpserver-<pid>.json.
var serverFilePatterns = []string{"nbserver-*.json", "jpserver-*.json"}

// Server describes a running notebook server as advertised in its runtime
// file. Entries may be stale: the process may have exited without removing
// the file.
type Server struct {
	URL         string `json:"url"`
	Token       string `json:"token"`
	Password    bool   `json:"password"`
	BaseURL     string `json:"base_url,omitempty"`
	Hostname    string `json:"hostname,omitempty"`
	Port        int    `json:"port,omitempty"`
	PID         int    `json:"pid,omitempty"`
	Secure      bool   `json:"secure,omitempty"`
	NotebookDir string `json:"notebook_dir,omitempty"`
	RootDir     string `json:"root_dir,omitempty"`
	Version     string `json:"version,omitempty"`

	// RuntimeFile is the file the record was read from.
	RuntimeFile string `json:"-"`
}

// Open reports whether the server advertises neither a token nor a password,
// in which case its API is queried without credentials.
func (s Server) Open() bool {
	return s.Token == "" && !s.Password
}

// Root returns the directory the server serves notebooks from.
func (s Server) Root() string {
	if s.RootDir != "" {
		return s.RootDir
	}
	return s.NotebookDir
}

// RuntimeDirs returns the Jupyter runtime directory for this user, following
// the lookup order used by jupyter_core.
func RuntimeDirs() []string {
	return runtimeDirs(os.Getenv, os.UserHomeDir, runtime.GOOS)
}

func runtimeDirs(getenv func(string) string, home func() (string, error), goos string) []string {
	if dir := getenv("JUPYTER_RUNTIME_DIR"); dir != "" {
		return []string{dir}
	}
	if dir := getenv("JUPYTER_DATA_DIR"); dir != "" {
		return []string{filepath.Join(dir, "runtime")}
	}

	switch goos {
	case "windows":
		if appData := getenv("APPDATA"); appData != "" {
			return []string{filepath.Join(appData, "jupyter", "runtime")}
		}
	case "darwin":
		if h, err := home(); err == nil {
			return []string{filepath.Join(h, "Library", "Jupyter", "runtime")}
		}
	default:
		if xdg := getenv("XDG_DATA_HOME"); xdg != "" {
			return []string{filepath.Join(xdg, "jupyter", "runtime")}
		}
		if h, err := home(); err == nil {
			return []string{filepath.Join(h, ".local", "share", "jupyter", "runtime")}
		}
	}

	return nil
}

// ListServers reads every server runtime file in dirs. Servers are returned
// directory by directory, sorted by file name within a directory. Unreadable
// or malformed files are skipped.
func ListServers(dirs ...string) ([]Server, error) {
	var servers []Server

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if !isServerFile(entry.Name()) {
				continue
			}
			srv, err := readServerFile(filepath.Join(dir, entry.Name()))
			if err != nil {
				continue
			}
			servers = append(servers, srv)
		}
	}

	return servers, nil
}

// isServerFile matches name against the runtime file patterns. Only the base
// name is matched so the directory is never read as a pattern.
func isServerFile(name string) bool {
	for _, pattern := range serverFilePatterns {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

func readServerFile(path string) (Server, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Server{}, err
	}

	var srv Server
	if err := json.Unmarshal(data, &srv); err != nil {
		return Server{}, err
	}
	if srv.URL == "" {
		return Server{}, os.ErrInvalid
	}
	if !strings.HasSuffix(srv.URL, "/") {
		srv.URL += "/"
	}
	srv.RuntimeFile = path

	return srv, nil
}
