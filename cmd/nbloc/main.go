// Package main implements the nbloc command line tool. It finds the notebook
// the surrounding Jupyter kernel is running and its numbered neighbours.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/d-kuro/nbloc/internal/cmd"
	"github.com/d-kuro/nbloc/internal/config"
	"github.com/d-kuro/nbloc/internal/jupyter"
	"github.com/d-kuro/nbloc/internal/locator"
	"github.com/d-kuro/nbloc/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// globalFlags holds the flags shared by every command.
type globalFlags struct {
	configPath     string
	connectionFile string
	runtimeDirs    []string
	notebookDir    string
	logLevel       string
	timeout        string
}

// app is the state built once flags and configuration are resolved.
type app struct {
	flags   globalFlags
	config  *config.Config
	logger  *logging.Logger
	locator *locator.Locator
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "nbloc",
		Short: "Locate the current Jupyter notebook and its numbered neighbours",
		Long: `nbloc finds the notebook the surrounding Jupyter kernel is running by matching
the kernel identifier against the sessions of every local notebook server.
Sibling notebooks are found by their leading number: 3_intro.ipynb,
4_body.ipynb, 5_end.ipynb.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsSetup(cmd) {
				return nil
			}
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.flags.configPath, "config", "", "Config file (default ~/.nbloc/config.yaml)")
	flags.StringVarP(&a.flags.connectionFile, "connection-file", "f", "", "Kernel connection file (default: detected from the kernel process)")
	flags.StringSliceVar(&a.flags.runtimeDirs, "runtime-dir", nil, "Jupyter runtime directory to scan for servers (repeatable)")
	flags.StringVarP(&a.flags.notebookDir, "dir", "d", "", "Directory searched for sibling notebooks (default .)")
	flags.StringVar(&a.flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&a.flags.timeout, "timeout", "", "Per-server request timeout, e.g. 2s")

	rootCmd.AddCommand(
		newCurrentCmd(a),
		newAdjacentCmd(a, "next", "Print the notebook numbered one above the current one", 1),
		newAdjacentCmd(a, "previous", "Print the notebook numbered one below the current one", -1),
		newNumberCmd(a),
		newListCmd(a),
		newServersCmd(a),
		newServeCmd(a),
		cmd.NewVersionCmd(),
	)

	return rootCmd
}

// setup resolves configuration with precedence flags > environment > file >
// defaults and builds the locator.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	cfg.ApplyEnv(os.Getenv)

	flags := cmd.Flags()
	if flags.Changed("connection-file") {
		cfg.ConnectionFile = a.flags.connectionFile
	}
	if flags.Changed("runtime-dir") {
		cfg.RuntimeDirs = a.flags.runtimeDirs
	}
	if flags.Changed("dir") {
		cfg.NotebookDir = a.flags.notebookDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.flags.logLevel
	}
	if flags.Changed("timeout") {
		cfg.RequestTimeout = a.flags.timeout
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		return err
	}

	a.config = cfg
	a.logger = logging.NewLoggerWithWriter(cfg.LogLevel, cmd.ErrOrStderr())

	env := &jupyter.Env{
		ConnectionFile: resolveConnectionFile(cmd.Context(), cfg.ConnectionFile),
		RuntimeDirs:    cfg.RuntimeDirs,
	}
	a.logger.Debug("Resolved environment",
		"connection_file", env.ConnectionFile,
		"runtime_dirs", env.RuntimeDirs,
		"notebook_dir", cfg.NotebookDir)

	a.locator = locator.New(env,
		jupyter.NewClient(jupyter.WithTimeout(timeout)),
		locator.WithDir(cfg.NotebookDir),
		locator.WithLogger(a.logger),
	)
	return nil
}

// loadConfig reads the --config file, or the optional default file. Without
// a home directory there is no default file and the defaults are used.
func (a *app) loadConfig() (*config.Config, error) {
	if a.flags.configPath != "" {
		return config.Load(a.flags.configPath, false)
	}

	path, err := config.DefaultPath()
	if err != nil {
		return config.Default(), nil
	}
	return config.Load(path, true)
}

// needsSetup reports whether cmd uses the locator. Help, completion and
// version output must work even with a broken configuration.
func needsSetup(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "version", "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

// resolveConnectionFile prefers an explicit setting over the kernel found
// among this process's ancestors.
func resolveConnectionFile(ctx context.Context, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if file, ok := jupyter.ConnectionFileFromAncestors(ctx, os.Getppid()); ok {
		return file
	}
	return ""
}
