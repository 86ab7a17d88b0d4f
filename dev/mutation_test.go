//go:build mutation

package dev

import (
	"testing"

	"github.com/gtramontina/ooze"
)

// TestMutation covers the generator, which the root mutation run skips.
func TestMutation(t *testing.T) {
	ooze.Release(
		t,
		ooze.WithTestCommand("go test -buildvcs=false ./impgen/..."),
		ooze.Parallel(),
		ooze.IgnoreSourceFiles("^(dev|internal|match|plan|jsbind|UAT)/.*|impshape.go|main.go|generated_.*|.*_test.go"),
		ooze.WithMinimumThreshold(0.90),
		ooze.WithRepositoryRoot(".."),
		ooze.ForceColors(),
	)
}
