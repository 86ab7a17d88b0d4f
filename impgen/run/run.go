// Package run implements the impgen tool in a testable way.
package run

import (
	"errors"
	"fmt"
	"go/token"
	"io"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/dave/dst"

	detect "github.com/toejough/impshape/impgen/run/3_detect"
	generate "github.com/toejough/impshape/impgen/run/5_generate"
	output "github.com/toejough/impshape/impgen/run/6_output"
)

// Exported variables.
var (
	ErrPackageMismatch = errors.New("interface is declared in a different package")
)

// FileSystem writes generated files.
type FileSystem interface {
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// PackageLoader parses the Go files of a directory.
type PackageLoader interface {
	Load(dir string) ([]*dst.File, *token.FileSet, error)
}

// Run executes impgen. It finds the named interface in the current directory,
// renders a facade dispatching every method to an impshape mock, and writes it
// next to the file carrying the go:generate directive. Progress goes to out.
func Run(args []string, getEnv func(string) string, fileSys FileSystem, pkgLoader PackageLoader, out io.Writer) error {
	parsed, err := parseArgs(args)
	if err != nil {
		return err
	}

	files, _, err := pkgLoader.Load(".")
	if err != nil {
		return fmt.Errorf("failed to load package: %w", err)
	}

	iface, err := detect.Find(files, parsed.Interface)
	if err != nil {
		return err
	}

	pkgName := getEnv("GOPACKAGE")
	if pkgName == "" {
		pkgName = iface.Package
	}

	if pkgName != iface.Package {
		return fmt.Errorf("%w: %s is in %s, generating into %s", ErrPackageMismatch, iface.Name, iface.Package, pkgName)
	}

	name := parsed.Name
	if name == "" {
		name = iface.Name + "Shape"
	}

	code, err := generate.Facade(iface, name, pkgName)
	if err != nil {
		return err
	}

	return output.Write(code, output.Filename(name, pkgName, getEnv("GOFILE")), fileSys, out)
}

// cliArgs defines the command-line arguments for the generator.
type cliArgs struct {
	Interface string `arg:"positional,required" help:"name of a local interface to implement"`
	Name      string `arg:"--name"              help:"name for the generated facade (defaults to <Interface>Shape)"`
}

// parseArgs parses command-line arguments into cliArgs.
func parseArgs(args []string) (cliArgs, error) {
	var parsed cliArgs

	parser, err := arg.NewParser(arg.Config{Program: "impgen"}, &parsed)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to create argument parser: %w", err)
	}

	var cmdArgs []string
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	err = parser.Parse(cmdArgs)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to parse arguments: %w", err)
	}

	return parsed, nil
}
