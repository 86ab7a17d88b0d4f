//go:build mutation

package impshape_test

import (
	"testing"

	"github.com/gtramontina/ooze"
)

func TestMutation(t *testing.T) {
	ooze.Release(
		t,
		ooze.WithTestCommand("go test -buildvcs=false ./internal/... ./match/... ./plan/... ./jsbind/..."),
		ooze.Parallel(),
		ooze.IgnoreSourceFiles("^dev/.*|^impgen/.*|^UAT/.*|generated_.*|.*_test.go"),
		ooze.WithMinimumThreshold(0.90),
		ooze.WithRepositoryRoot("."),
		ooze.ForceColors(),
	)
}
