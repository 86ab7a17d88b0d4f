//go:build targ

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/akedrou/textdiff"
	"github.com/toejough/go-reorder"
	"github.com/toejough/targ"
	"github.com/toejough/targ/file"
	"github.com/toejough/targ/sh"

	"github.com/toejough/impshape/plan"
)

// Build builds the local impgen binary.
func Build() error {
	fmt.Println("Building impgen...")

	if err := os.MkdirAll("bin", 0o755); err != nil {
		return fmt.Errorf("failed to create bin directory: %w", err)
	}

	return sh.Run("go", "build", "-o", "bin/impgen", "./impgen")
}

// Check runs all checks & fixes on the code, in order of correctness.
func Check() error {
	fmt.Println("Checking...")

	return targ.Deps(
		Tidy,          // clean up the module dependencies
		FixImports,    // fix imports to remove unused ones
		CheckPlans,    // example plans must stay loadable
		CheckCoverage, // does our code work?
		CheckNils,     // is it nil free?
		ReorderDecls,  // linter will yell about declaration order if not correct
		Lint,
	)
}

// CheckCoverage checks that function coverage meets the minimum threshold.
func CheckCoverage() error {
	fmt.Println("Checking coverage...")

	if err := targ.Deps(Test); err != nil {
		return err
	}

	out, err := output("go", "tool", "cover", "-func=coverage.out")
	if err != nil {
		return err
	}

	const minimum = 80.0

	percentPattern := regexp.MustCompile(`\d+\.\d`)
	lowest := lineAndCoverage{coverage: 101}

	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "main.go") || strings.Contains(line, "generated_") || strings.Contains(line, "total:") {
			continue
		}

		percent, err := strconv.ParseFloat(percentPattern.FindString(line), 64)
		if err != nil {
			return fmt.Errorf("unreadable coverage line %q: %w", line, err)
		}

		if percent < lowest.coverage {
			lowest = lineAndCoverage{line, percent}
		}
	}

	if lowest.line == "" {
		return errors.New("no coverage data")
	}

	fmt.Printf("Lowest function coverage: %s\n", lowest.line)

	if lowest.coverage < minimum {
		return fmt.Errorf("function coverage was less than the limit of %.1f:\n  %s", minimum, lowest.line)
	}

	return nil
}

// CheckForFail runs all checks on the code for determining whether any fail.
func CheckForFail() error {
	fmt.Println("Checking...")

	// Checks from fastest to slowest
	return targ.Deps(
		ReorderDeclsCheck,
		CheckPlans,
		LintForFail,
		TestForFail,
		CheckNilsForFail,
		CheckCoverage,
	)
}

// CheckNils checks for nils and fixes what it can.
func CheckNils() error {
	fmt.Println("Running check for nils...")
	return sh.Run("nilaway", "-fix", "./...")
}

// CheckNilsForFail checks for nils, just for failure.
func CheckNilsForFail() error {
	fmt.Println("Running check for nils...")
	return sh.Run("nilaway", "./...")
}

// CheckPlans loads every *.plan.yaml in the repo and builds its mock.
func CheckPlans() error {
	fmt.Println("Checking plans...")

	files, err := globs(".", []string{".yaml"})
	if err != nil {
		return fmt.Errorf("failed to find plans: %w", err)
	}

	failures := 0

	for _, path := range files {
		if !strings.HasSuffix(path, ".plan.yaml") {
			continue
		}

		if err := checkPlan(path); err != nil {
			fmt.Printf("  %s: %v\n", path, err)

			failures++
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d plan(s) failed to build", failures)
	}

	return nil
}

// FixImports fixes all imports in the codebase.
func FixImports() error {
	fmt.Println("Fixing imports...")
	return sh.Run("goimports", "-w", ".")
}

// Generate runs go generate on all packages using the locally-built impgen binary.
func Generate() error {
	fmt.Println("Generating...")

	if err := targ.Deps(Build); err != nil {
		return err
	}

	binDir, err := filepath.Abs("bin")
	if err != nil {
		return fmt.Errorf("failed to get absolute path for bin: %w", err)
	}

	cmd := exec.Command("go", "generate", "./...")
	cmd.Env = append(os.Environ(), "PATH="+binDir+string(filepath.ListSeparator)+os.Getenv("PATH"))
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

// Lint lints the codebase.
func Lint() error {
	fmt.Println("Linting...")
	return sh.Run("golangci-lint", "run", "-c", "dev/golangci.toml")
}

// LintForFail lints the codebase purely to find out whether anything fails.
func LintForFail() error {
	fmt.Println("Linting to check for overall pass/fail...")

	return sh.Run(
		"golangci-lint", "run",
		"-c", "dev/golangci.toml",
		"--fix=false",
		"--max-issues-per-linter=1",
		"--max-same-issues=1",
		"--allow-parallel-runners",
	)
}

// Mutate runs the mutation tests.
func Mutate() error {
	fmt.Println("Running mutation tests...")

	if err := targ.Deps(TestForFail); err != nil {
		return err
	}

	return sh.Run("go", "test", "-timeout=6000s", "-tags=mutation", "-ooze.v", "./...", "-run=TestMutation")
}

// ReorderDecls reorders declarations in Go files per conventions.
func ReorderDecls() error {
	fmt.Println("Reordering declarations...")

	changed, err := reorderSources(func(path, _, reordered string) error {
		fmt.Printf("  Reordered: %s\n", path)

		return os.WriteFile(path, []byte(reordered), 0o600)
	})
	if err != nil {
		return err
	}

	fmt.Printf("Reordered %d file(s).\n", changed)

	return nil
}

// ReorderDeclsCheck reports which files need reordering without modifying them.
func ReorderDeclsCheck() error {
	fmt.Println("Checking declaration order...")

	changed, err := reorderSources(func(path, current, reordered string) error {
		fmt.Printf("\n%s:\n", path)
		printSectionOrder(current)
		fmt.Printf("\n%s\n", textdiff.Unified(path+" (current)", path+" (reordered)", current, reordered))

		return nil
	})
	if err != nil {
		return err
	}

	if changed > 0 {
		return fmt.Errorf("%d file(s) need reordering; run 'targ reorder-decls' to fix", changed)
	}

	return nil
}

// Test runs the unit tests.
func Test() error {
	fmt.Println("Running unit tests...")

	if err := targ.Deps(Generate); err != nil {
		return err
	}

	return sh.Run(
		"go",
		"test",
		"-timeout=2m",
		"-race",
		"-count=1",
		"-coverprofile=coverage.out",
		"-coverpkg=./...",
		"-cover",
		"./...",
	)
}

// TestForFail runs the unit tests purely to find out whether any fail.
func TestForFail() error {
	fmt.Println("Running unit tests for overall pass/fail...")

	if err := targ.Deps(Generate); err != nil {
		return err
	}

	return sh.Run("go", "test", "-timeout=30s", "./...", "-failfast")
}

// Tidy tidies up go.mod.
func Tidy() error {
	fmt.Println("Tidying go.mod...")
	return sh.Run("go", "mod", "tidy")
}

// Watch re-runs Check whenever files change.
func Watch(ctx context.Context) error {
	fmt.Println("Watching...")

	patterns := []string{"**/*.go", "**/*.yaml", "**/*.toml"}

	return file.Watch(ctx, patterns, file.WatchOptions{}, func(changes file.ChangeSet) error {
		if !hasRelevantChanges(changes) {
			return nil
		}

		fmt.Println("Change detected...")

		targ.ResetDeps()

		if err := Check(); err != nil {
			fmt.Println("continuing to watch after check failure (see errors above)")
		} else {
			fmt.Println("continuing to watch after all checks passed!")
		}

		return nil
	})
}

type lineAndCoverage struct {
	line     string
	coverage float64
}

func checkPlan(path string) error {
	handle, err := os.Open(path)
	if err != nil {
		return err
	}
	defer handle.Close()

	loaded, err := plan.Load(handle)
	if err != nil {
		return err
	}

	_, err = loaded.Build()

	return err
}

func globs(dir string, ext []string) ([]string, error) {
	files := []string{}

	err := filepath.Walk(dir, func(path string, _ os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("unable to find all glob matches: %w", err)
		}

		if slices.Contains(ext, filepath.Ext(path)) {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}

// hasRelevantChanges filters out the files Check itself produces.
func hasRelevantChanges(changes file.ChangeSet) bool {
	allFiles := append(append(changes.Added, changes.Removed...), changes.Modified...)

	for _, f := range allFiles {
		if strings.Contains(f, "generated_") || strings.HasSuffix(f, "coverage.out") {
			continue
		}

		return true
	}

	return false
}

func isGeneratedFile(path string) (bool, error) {
	handle, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer handle.Close()

	buf := make([]byte, 200)

	n, err := handle.Read(buf)
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	content := string(buf[:n])

	return strings.Contains(content, "Code generated") || strings.Contains(content, "DO NOT EDIT"), nil
}

// output runs a command and captures stdout only (stderr goes to os.Stderr).
func output(command string, args ...string) (string, error) {
	buf := &bytes.Buffer{}
	cmd := exec.Command(command, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = buf
	cmd.Stderr = os.Stderr
	err := cmd.Run()

	return strings.TrimSuffix(buf.String(), "\n"), err
}

func printSectionOrder(content string) {
	sectionOrder, err := reorder.AnalyzeSectionOrder(content)
	if err != nil {
		fmt.Printf("  Warning: failed to analyze sections: %v\n", err)

		return
	}

	fmt.Println("  Current order:")

	for i, section := range sectionOrder.Sections {
		note := ""
		if section.Expected != i+1 {
			note = fmt.Sprintf(" <- should be #%d", section.Expected)
		}

		fmt.Printf("    %d. %-24s%s\n", i+1, section.Name, note)
	}
}

// sourceFiles lists hand-written Go files outside vendor and hidden directories.
// reorderSources runs go-reorder over every hand-written source file and calls
// onChange for each file whose order differs. It returns the number of such files.
func reorderSources(onChange func(path, current, reordered string) error) (int, error) {
	files, err := sourceFiles()
	if err != nil {
		return 0, err
	}

	changed := 0

	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return changed, fmt.Errorf("failed to read %s: %w", path, err)
		}

		reordered, err := reorder.Source(string(content))
		if err != nil {
			fmt.Printf("Warning: failed to reorder %s: %v\n", path, err)

			continue
		}

		if string(content) == reordered {
			continue
		}

		if err := onChange(path, string(content), reordered); err != nil {
			return changed, fmt.Errorf("%s: %w", path, err)
		}

		changed++
	}

	return changed, nil
}

func sourceFiles() ([]string, error) {
	files, err := globs(".", []string{".go"})
	if err != nil {
		return nil, fmt.Errorf("failed to find Go files: %w", err)
	}

	kept := files[:0]

	for _, path := range files {
		if strings.Contains(path, "generated_") || strings.HasPrefix(path, "vendor/") ||
			strings.Contains(path, "/.") || strings.HasPrefix(path, "_examples/") {
			continue
		}

		generated, err := isGeneratedFile(path)
		if err != nil {
			return nil, err
		}

		if !generated {
			kept = append(kept, path)
		}
	}

	return kept, nil
}
