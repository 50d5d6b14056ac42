package jupyter

// Env is the live Jupyter environment of the current process: the kernel
// connection file and the runtime directories that servers advertise
// themselves in.
type Env struct {
	// ConnectionFile is the running kernel's connection file.
	ConnectionFile string

	// RuntimeDirs overrides the runtime directory lookup when non-empty.
	RuntimeDirs []string
}

// KernelID returns the identifier of the running kernel.
func (e *Env) KernelID() (string, error) {
	if e.ConnectionFile == "" {
		return "", ErrNoConnectionFile
	}
	return KernelIDFromConnectionFile(e.ConnectionFile)
}

// Servers lists the notebook servers advertised in the runtime directories.
func (e *Env) Servers() ([]Server, error) {
	dirs := e.RuntimeDirs
	if len(dirs) == 0 {
		dirs = RuntimeDirs()
	}
	return ListServers(dirs...)
}
