// impgen generates typed facades over impshape mocks. Add
// `//go:generate impgen <Interface>` next to a local interface declaration to get
// generated_<Interface>Shape.go, whose methods call the mock's instance members.
// Use `--name <Facade>` to pick a different type name.
package main

import (
	"fmt"
	"go/token"
	"os"

	"github.com/dave/dst"

	"github.com/toejough/impshape/impgen/run"
	load "github.com/toejough/impshape/impgen/run/2_load"
)

func main() {
	err := run.Run(os.Args, os.Getenv, &realFileSystem{}, &realPackageLoader{}, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// realFileSystem implements run.FileSystem using the os package.
type realFileSystem struct{}

// WriteFile writes data to the file named by name.
func (fs *realFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	err := os.WriteFile(name, data, perm)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", name, err)
	}

	return nil
}

// realPackageLoader implements run.PackageLoader by parsing the directory with dst.
type realPackageLoader struct{}

// Load parses the Go files in dir.
func (pl *realPackageLoader) Load(dir string) ([]*dst.File, *token.FileSet, error) {
	files, fset, err := load.Dir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load package %q: %w", dir, err)
	}

	return files, fset, nil
}
