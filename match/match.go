// Package match provides matchers for impshape call records.
// This package is designed to be dot-imported alongside gomega matchers:
//
//	import (
//	    . "github.com/onsi/gomega"
//	    . "github.com/toejough/impshape/match"
//	)
//
//	g.Expect(mock.Lookup(impshape.KindFunction)["add"]).To(HaveRecords([]any{2, BeNumerically(">", 0)}))
//
// Every matcher here also satisfies gomega's GomegaMatcher.
package match

import (
	"errors"
	"fmt"
	"strings"

	"github.com/akedrou/textdiff"

	"github.com/toejough/impshape"
)

// Matcher defines the interface for flexible value matching.
// Compatible with gomega.GomegaMatcher via duck typing.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
	NegatedFailureMessage(actual any) string
}

// BeAny is a matcher that matches any value.
// Useful when you don't care about a particular argument.
//
//nolint:gochecknoglobals // Intentional exported constant-like value
var BeAny Matcher = anyMatcher{}

// HaveCallCount matches a slot holding exactly count records.
func HaveCallCount(count int) Matcher {
	return &callCountMatcher{count: count}
}

// HaveRecords matches a slot whose records equal expected, in order.
// Each expected record is a list of argument values or matchers; non-matcher values
// are compared with reflect.DeepEqual. Failure messages include a unified diff of
// the expected and actual records.
func HaveRecords(expected ...[]any) Matcher {
	return &recordsMatcher{expected: expected}
}

// Satisfy returns a matcher that uses a predicate function to check for a match.
// The predicate should return nil if the value matches, or an error describing
// the mismatch if it does not.
//
// Example:
//
//	g.Expect(records).To(HaveRecords([]any{Satisfy(func(x int) error {
//	    if x < 0 { return fmt.Errorf("expected positive, got %d", x) }
//	    return nil
//	})}))
func Satisfy[T any](predicate func(T) error) Matcher {
	return &satisfyMatcher[T]{predicate: predicate}
}

// unexported variables.
var (
	errNotRecords   = errors.New("not a record list")
	errTypeMismatch = errors.New("type mismatch")
)

// anyMatcher is the implementation of the BeAny matcher.
type anyMatcher struct{}

// FailureMessage returns an empty string since BeAny always matches.
func (anyMatcher) FailureMessage(any) string {
	return ""
}

// Match always returns true - matches any value.
func (anyMatcher) Match(any) (bool, error) {
	return true, nil
}

func (anyMatcher) NegatedFailureMessage(actual any) string {
	return fmt.Sprintf("expected %#v not to match anything, but BeAny matches everything", actual)
}

type callCountMatcher struct {
	count int
}

func (m *callCountMatcher) FailureMessage(actual any) string {
	records, _ := toRecords(actual)

	return fmt.Sprintf("expected %d calls, got %d:\n%s", m.count, len(records), renderRecords(records))
}

func (m *callCountMatcher) Match(actual any) (bool, error) {
	records, err := toRecords(actual)
	if err != nil {
		return false, err
	}

	return len(records) == m.count, nil
}

func (m *callCountMatcher) NegatedFailureMessage(any) string {
	return fmt.Sprintf("expected a call count other than %d", m.count)
}

type recordsMatcher struct {
	expected [][]any
	reason   string
}

func (m *recordsMatcher) FailureMessage(actual any) string {
	records, _ := toRecords(actual)

	expected := make([]impshape.Record, len(m.expected))
	for i, record := range m.expected {
		expected[i] = record
	}

	diff := textdiff.Unified("expected", "actual", renderRecords(expected), renderRecords(records))

	return fmt.Sprintf("call records do not match: %s\n%s", m.reason, diff)
}

func (m *recordsMatcher) Match(actual any) (bool, error) {
	records, err := toRecords(actual)
	if err != nil {
		return false, err
	}

	if len(records) != len(m.expected) {
		m.reason = fmt.Sprintf("expected %d records, got %d", len(m.expected), len(records))

		return false, nil
	}

	for index, want := range m.expected {
		ok, msg := impshape.MatchRecord(records[index], want)
		if !ok {
			m.reason = fmt.Sprintf("record %d: %s", index, msg)

			return false, nil
		}
	}

	m.reason = ""

	return true, nil
}

func (m *recordsMatcher) NegatedFailureMessage(actual any) string {
	records, _ := toRecords(actual)

	return fmt.Sprintf("expected call records not to match, got:\n%s", renderRecords(records))
}

type satisfyMatcher[T any] struct {
	predicate func(T) error
	lastErr   error
}

func (m *satisfyMatcher[T]) FailureMessage(actual any) string {
	if m.lastErr != nil {
		return fmt.Sprintf("value %v does not satisfy predicate: %v", actual, m.lastErr)
	}

	return fmt.Sprintf("value %v does not satisfy predicate", actual)
}

func (m *satisfyMatcher[T]) Match(actual any) (bool, error) {
	val, ok := actual.(T)

	if !ok {
		return false, fmt.Errorf("%w: expected %T, got %T", errTypeMismatch, *new(T), actual)
	}

	m.lastErr = m.predicate(val)

	return m.lastErr == nil, nil
}

func (m *satisfyMatcher[T]) NegatedFailureMessage(actual any) string {
	return fmt.Sprintf("value %v unexpectedly satisfies predicate", actual)
}

// renderRecords prints one record per line, for diffing.
func renderRecords(records []impshape.Record) string {
	var buf strings.Builder

	for _, record := range records {
		fmt.Fprintf(&buf, "%#v\n", []any(record))
	}

	return buf.String()
}

func toRecords(actual any) ([]impshape.Record, error) {
	switch typed := actual.(type) {
	case []impshape.Record:
		return typed, nil
	case [][]any:
		records := make([]impshape.Record, len(typed))
		for i, record := range typed {
			records[i] = record
		}

		return records, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %T", errNotRecords, actual)
	}
}
