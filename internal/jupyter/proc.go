package jupyter

import (
	"context"

	"github.com/shirou/gopsutil/v4/process"
)

// maxAncestors bounds the walk up the process tree.
const maxAncestors = 8

// processInfo is the part of a process handle the ancestor walk reads.
type processInfo interface {
	CmdlineSliceWithContext(ctx context.Context) ([]string, error)
	PpidWithContext(ctx context.Context) (int32, error)
}

// findProcess opens a handle on a running process.
var findProcess = func(ctx context.Context, pid int32) (processInfo, error) {
	return process.NewProcessWithContext(ctx, pid)
}

// ConnectionFileFromAncestors looks for a kernel command line among pid and
// its ancestors. A command run from a notebook cell ("!nbloc next") is a
// descendant of the kernel, usually through a shell.
func ConnectionFileFromAncestors(ctx context.Context, pid int) (string, bool) {
	current := int32(pid)
	for i := 0; i < maxAncestors && current > 1; i++ {
		proc, err := findProcess(ctx, current)
		if err != nil {
			return "", false
		}

		if args, err := proc.CmdlineSliceWithContext(ctx); err == nil {
			if file, ok := ConnectionFileFromArgs(args); ok {
				return file, true
			}
		}

		ppid, err := proc.PpidWithContext(ctx)
		if err != nil || ppid == current {
			return "", false
		}
		current = ppid
	}
	return "", false
}
