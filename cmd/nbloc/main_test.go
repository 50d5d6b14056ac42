package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d-kuro/nbloc/internal/jupyter"
	"github.com/d-kuro/nbloc/internal/locator"
)

type fixture struct {
	runtimeDir     string
	notebookDir    string
	connectionFile string
}

func newFixture(t *testing.T, current string) *fixture {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"LOG_LEVEL", "NBLOC_CONNECTION_FILE", "JUPYTER_RUNTIME_DIR", "NBLOC_NOTEBOOK_DIR"} {
		t.Setenv(key, "")
	}

	kernelID := uuid.NewString()
	f := &fixture{
		runtimeDir:  t.TempDir(),
		notebookDir: t.TempDir(),
	}
	f.connectionFile = filepath.Join(f.runtimeDir, "kernel-"+kernelID+".json")

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("token") != "tok" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_ = json.NewEncoder(w).Encode([]jupyter.Session{{
			ID:       uuid.NewString(),
			Kernel:   jupyter.Kernel{ID: kernelID},
			Notebook: &jupyter.Notebook{Path: current},
		}})
	}))
	t.Cleanup(ts.Close)

	data, err := json.Marshal(map[string]any{"url": ts.URL + "/", "token": "tok", "password": false, "pid": 1234})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(f.runtimeDir, "jpserver-1234.json"), data, 0o600))

	for _, name := range []string{"3_intro.ipynb", "4_body.ipynb", "5_end.ipynb"} {
		require.NoError(t, os.WriteFile(filepath.Join(f.notebookDir, name), []byte("{}"), 0o644))
	}

	return f
}

func (f *fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{
		"--connection-file", f.connectionFile,
		"--runtime-dir", f.runtimeDir,
		"--dir", f.notebookDir,
		"--timeout", "2s",
	}, args...))

	err := cmd.Execute()
	return strings.TrimSpace(stdout.String()), err
}

func TestLocateCommands(t *testing.T) {
	f := newFixture(t, "course/4_body.ipynb")

	out, err := f.run(t, "current")
	require.NoError(t, err)
	assert.Equal(t, "course/4_body.ipynb", out)

	out, err = f.run(t, "next")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.notebookDir, "5_end.ipynb"), out)

	out, err = f.run(t, "previous")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.notebookDir, "3_intro.ipynb"), out)

	out, err = f.run(t, "number", "5")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.notebookDir, "5_end.ipynb"), out)

	out, err = f.run(t, "number", "--prefix", "3")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.notebookDir, "3_intro.ipynb"), out)

	_, err = f.run(t, "number", "9")
	assert.ErrorIs(t, err, locator.ErrNoNotebook)

	_, err = f.run(t, "number", "five")
	assert.Error(t, err)
}

func TestCurrentUndetermined(t *testing.T) {
	f := newFixture(t, "4_body.ipynb")
	f.connectionFile = filepath.Join(f.runtimeDir, "kernel-unknown.json")

	_, err := f.run(t, "next")
	assert.ErrorIs(t, err, locator.ErrCurrentUndetermined)
}

func TestListCommand(t *testing.T) {
	f := newFixture(t, "4_body.ipynb")

	out, err := f.run(t, "ls", "--json")
	require.NoError(t, err)

	var notebooks []locator.Notebook
	require.NoError(t, json.Unmarshal([]byte(out), &notebooks))
	require.Len(t, notebooks, 3)
	assert.Equal(t, 3, notebooks[0].Number)
	assert.Equal(t, 5, notebooks[2].Number)

	out, err = f.run(t, "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "4_body.ipynb")
}

func TestServersCommand(t *testing.T) {
	f := newFixture(t, "4_body.ipynb")
	stale := []byte(`{"url": "http://127.0.0.1:1/", "token": "", "password": false}`)
	require.NoError(t, os.WriteFile(filepath.Join(f.runtimeDir, "nbserver-1.json"), stale, 0o600))

	out, err := f.run(t, "servers", "--json")
	require.NoError(t, err)
	assert.NotContains(t, out, "tok\"")

	var statuses []locator.ServerStatus
	require.NoError(t, json.Unmarshal([]byte(out), &statuses))
	require.Len(t, statuses, 2)
	assert.Equal(t, 1, statuses[0].Sessions)
	assert.True(t, statuses[0].Credentials)
	assert.NotEmpty(t, statuses[1].Skipped)

	out, err = f.run(t, "servers")
	require.NoError(t, err)
	assert.Contains(t, out, "skipped:")
}

func TestInvalidConfiguration(t *testing.T) {
	f := newFixture(t, "4_body.ipynb")

	_, err := f.run(t, "--timeout", "soon", "current")
	assert.Error(t, err)

	_, err = f.run(t, "--config", filepath.Join(f.runtimeDir, "missing.yaml"), "current")
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	f := newFixture(t, "4_body.ipynb")

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	cfg := "notebook_dir: " + f.notebookDir + "\nruntime_dirs: [" + f.runtimeDir + "]\nconnection_file: " + f.connectionFile + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	var stdout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfgPath, "next"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, filepath.Join(f.notebookDir, "5_end.ipynb"), strings.TrimSpace(stdout.String()))
}

func TestNegativeNumberAfterDoubleDash(t *testing.T) {
	f := newFixture(t, "4_body.ipynb")

	_, err := f.run(t, "number", "--", "-1")
	assert.ErrorIs(t, err, locator.ErrNoNotebook)
}

func TestWithoutHome(t *testing.T) {
	f := newFixture(t, "4_body.ipynb")
	t.Setenv("HOME", "")

	out, err := f.run(t, "number", "5")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.notebookDir, "5_end.ipynb"), out)
}

func TestHelpIgnoresBrokenConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".nbloc"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".nbloc", "config.yaml"), []byte("log_level: loud\n"), 0o600))

	for _, args := range [][]string{{"help"}, {"help", "next"}, {"completion", "bash"}, {"version"}} {
		var stdout bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&stdout)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(args)

		require.NoError(t, cmd.Execute(), "nbloc %s", strings.Join(args, " "))
		assert.NotEmpty(t, stdout.String(), "nbloc %s", strings.Join(args, " "))
	}

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"ls"})
	assert.Error(t, cmd.Execute())
}
