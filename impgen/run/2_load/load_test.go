package load_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"

	load "github.com/toejough/impshape/impgen/run/2_load"
)

func TestDir_ParsesSourceAndTestFiles(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	dir := t.TempDir()
	writeFile(t, dir, "shape.go", "package shape\n\ntype Shape interface{ Area() float64 }\n")
	writeFile(t, dir, "shape_test.go", "package shape\n")
	writeFile(t, dir, "broken.go", "package shape\n\nfunc {\n")
	writeFile(t, dir, "notes.txt", "not go")

	files, fset, err := load.Dir(dir)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(fset).NotTo(BeNil())
	g.Expect(files).To(HaveLen(2))
	g.Expect(files[0].Name.Name).To(Equal("shape"))
}

func TestDir_NoGoFiles(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	dir := t.TempDir()
	writeFile(t, dir, "README.md", "# nothing")

	_, _, err := load.Dir(dir)

	g.Expect(err).To(MatchError(load.ErrNoGoFiles))
}

func TestDir_MissingDirectory(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, _, err := load.Dir(filepath.Join(t.TempDir(), "absent"))

	g.Expect(err).To(MatchError(ContainSubstring("failed to read directory")))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()

	err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600)
	if err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}
