// Package jupyter talks to the local Jupyter installation: it reads kernel
// connection files, discovers running notebook servers from their runtime
// files and queries their session API.
package jupyter

import (
	"path/filepath"
	"strings"

	"github.com/d-kuro/nbloc/internal/errors"
)

// ErrNoConnectionFile is returned when the kernel connection file cannot be
// determined for the current process.
var ErrNoConnectionFile = errors.Sentinel(errors.ErrNotFound, "kernel connection file not found")

// KernelIDFromConnectionFile extracts the kernel identifier from a connection
// file path of the form ".../kernel-<id>.json". The identifier is everything
// between the first '-' and the following '.'.
func KernelIDFromConnectionFile(path string) (string, error) {
	base := filepath.Base(path)

	_, rest, ok := strings.Cut(base, "-")
	if !ok {
		return "", errors.Validation("connection file %q has no kernel identifier", base)
	}

	id, _, _ := strings.Cut(rest, ".")
	if id == "" {
		return "", errors.Validation("connection file %q has an empty kernel identifier", base)
	}

	return id, nil
}

// ConnectionFileFromArgs finds the connection file in a kernel command line.
// Kernels are started as "<kernel> -f <connection file>"; "--f=<file>" and a
// bare "kernel-*.json" argument are accepted too.
func ConnectionFileFromArgs(args []string) (string, bool) {
	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "-f" || arg == "--f":
			if i+1 < len(args) {
				return args[i+1], true
			}
			return "", false
		case strings.HasPrefix(arg, "-f="):
			return strings.TrimPrefix(arg, "-f="), true
		case strings.HasPrefix(arg, "--f="):
			return strings.TrimPrefix(arg, "--f="), true
		}
	}

	for _, arg := range args {
		base := filepath.Base(arg)
		if strings.HasPrefix(base, "kernel-") && strings.HasSuffix(base, ".json") {
			return arg, true
		}
	}

	return "", false
}
