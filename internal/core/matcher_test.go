package core_test

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/toejough/impshape/internal/core"
)

func TestMatchRecord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		actual   core.Record
		expected []any
		ok       bool
		message  string
	}{
		{name: "equal values", actual: core.Record{1, "a"}, expected: []any{1, "a"}, ok: true},
		{name: "gomega matcher", actual: core.Record{5}, expected: []any{BeNumerically(">", 3)}, ok: true},
		{name: "length mismatch", actual: core.Record{1}, expected: []any{1, 2}, message: "expected 2 args, got 1"},
		{name: "value mismatch", actual: core.Record{1, 2}, expected: []any{1, 3}, message: "arg 1: expected 3, got 2"},
		{name: "failing matcher", actual: core.Record{"x"}, expected: []any{BeEmpty()}, message: "arg 0:"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			ok, message := core.MatchRecord(test.actual, test.expected)

			g.Expect(ok).To(Equal(test.ok))

			if test.ok {
				g.Expect(message).To(BeEmpty())
			} else {
				g.Expect(message).To(ContainSubstring(test.message))
			}
		})
	}
}

func TestMatchValue_MatcherError(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ok, message := core.MatchValue("not a number", BeNumerically(">", 1))

	g.Expect(ok).To(BeFalse())
	g.Expect(message).NotTo(BeEmpty())
}
