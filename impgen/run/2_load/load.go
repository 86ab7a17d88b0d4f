// Package load parses the Go files of a single directory into DST.
package load

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// Exported variables.
var (
	ErrNoGoFiles = errors.New("no go files")
)

// Dir parses every .go file in dir, test files included. Files that fail to parse
// are skipped; generated output from an earlier run may be mid-edit.
func Dir(dir string) ([]*dst.File, *token.FileSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") {
			continue
		}

		names = append(names, entry.Name())
	}

	sort.Strings(names)

	fset := token.NewFileSet()
	dec := decorator.NewDecorator(fset)
	files := make([]*dst.File, 0, len(names))

	for _, name := range names {
		file, parseErr := dec.ParseFile(filepath.Join(dir, name), nil, 0)
		if parseErr != nil {
			continue
		}

		files = append(files, file)
	}

	if len(files) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoGoFiles, dir)
	}

	return files, fset, nil
}
