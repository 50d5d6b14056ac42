package locator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/d-kuro/nbloc/internal/errors"
)

// Extension is the notebook file extension.
const Extension = ".ipynb"

// Notebook is a numbered notebook file.
type Notebook struct {
	Path   string `json:"path"`
	Number int    `json:"number"`
}

// NumericPrefix parses the full leading digit run of the base name of path.
func NumericPrefix(path string) (int, bool) {
	base := filepath.Base(path)

	end := 0
	for end < len(base) && base[end] >= '0' && base[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.Atoi(base[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Next returns the notebook numbered one above the current notebook.
func (l *Locator) Next(ctx context.Context) (string, error) {
	return l.Adjacent(ctx, 1)
}

// Previous returns the notebook numbered one below the current notebook.
func (l *Locator) Previous(ctx context.Context) (string, error) {
	return l.Adjacent(ctx, -1)
}

// Adjacent returns the notebook whose number is the current notebook's
// number plus delta.
func (l *Locator) Adjacent(ctx context.Context, delta int) (string, error) {
	current, err := l.CurrentPath(ctx)
	if err != nil {
		return "", err
	}

	n, ok := NumericPrefix(current)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoNumericPrefix, filepath.Base(current))
	}

	return l.ByNumber(n + delta)
}

// ByNumber returns the first notebook, in name order, whose numeric prefix
// equals n. Zero padding is ignored, so "05_x.ipynb" is notebook 5 while
// "50_x.ipynb" is not.
func (l *Locator) ByNumber(n int) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("%w: number %d", ErrNoNotebook, n)
	}

	notebooks, err := l.List()
	if err != nil {
		return "", err
	}

	for _, nb := range notebooks {
		if nb.Number == n {
			return nb.Path, nil
		}
	}
	return "", fmt.Errorf("%w: number %d in %s", ErrNoNotebook, n, l.dir)
}

// ByPrefix returns the first notebook, in name order, whose file name starts
// with prefix. The prefix is matched literally.
func (l *Locator) ByPrefix(prefix string) (string, error) {
	if prefix == "" {
		return "", errors.Validation("notebook prefix cannot be empty")
	}

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return "", errors.Wrap(err, "failed to read notebook directory")
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, Extension) {
			continue
		}

		path := filepath.Join(l.dir, name)
		if isNotebookFile(path) {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: prefix %q in %s", ErrNoNotebook, prefix, l.dir)
}

// List returns every numbered notebook in the directory, ordered by number
// and then by name.
func (l *Locator) List() ([]Notebook, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read notebook directory")
	}

	var notebooks []Notebook
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, Extension) {
			continue
		}

		n, ok := NumericPrefix(name)
		if !ok {
			continue
		}

		path := filepath.Join(l.dir, name)
		if !isNotebookFile(path) {
			continue
		}
		notebooks = append(notebooks, Notebook{Path: path, Number: n})
	}

	sort.SliceStable(notebooks, func(i, j int) bool {
		if notebooks[i].Number != notebooks[j].Number {
			return notebooks[i].Number < notebooks[j].Number
		}
		return notebooks[i].Path < notebooks[j].Path
	})

	return notebooks, nil
}

// isNotebookFile reports whether path names a regular file, following links.
func isNotebookFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
