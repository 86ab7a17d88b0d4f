// Package output writes generated facades next to the code that requested them.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/toejough/go-reorder"
)

// Writer writes generated files.
type Writer interface {
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// Filename returns generated_<name>.go, or generated_<name>_test.go when the
// requesting package or file is a test.
func Filename(name, pkgName, goFile string) string {
	base := strings.TrimSuffix(strings.TrimSuffix(name, ".go"), "_test")

	if strings.HasSuffix(pkgName, "_test") || strings.HasSuffix(goFile, "_test.go") {
		return "generated_" + base + "_test.go"
	}

	return "generated_" + base + ".go"
}

// Write reorders code into the project's declaration order and writes it to
// filename. A reorder failure is reported to out and the code is written as is.
func Write(code, filename string, fileWriter Writer, out io.Writer) error {
	const generatedFilePermissions = 0o600

	reordered, err := reorder.Source(code)
	if err != nil {
		_, _ = fmt.Fprintf(out, "Warning: failed to reorder %s: %v\n", filename, err)

		reordered = code
	}

	err = fileWriter.WriteFile(filename, []byte(reordered), generatedFilePermissions)
	if err != nil {
		return fmt.Errorf("error writing %s: %w", filename, err)
	}

	_, _ = fmt.Fprintf(out, "%s written successfully.\n", filename)

	return nil
}
