package core

import (
	"fmt"
	"reflect"
)

// Matcher is satisfied by gomega matchers and by the matchers in the match package.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
}

// MatchRecord checks a recorded argument list against expected values.
// Each expected value may be a Matcher; other values are compared with reflect.DeepEqual.
// Returns (success, message). message is empty on success.
func MatchRecord(actual Record, expected []any) (bool, string) {
	if len(actual) != len(expected) {
		return false, fmt.Sprintf("expected %d args, got %d", len(expected), len(actual))
	}

	for index, want := range expected {
		ok, msg := MatchValue(actual[index], want)
		if !ok {
			return false, fmt.Sprintf("arg %d: %s", index, msg)
		}
	}

	return true, ""
}

// MatchValue checks if actual matches expected.
// If expected implements Matcher, its Match method decides.
// Otherwise reflect.DeepEqual is used.
func MatchValue(actual, expected any) (bool, string) {
	if matcher, ok := expected.(Matcher); ok {
		success, err := matcher.Match(actual)
		if err != nil {
			return false, err.Error()
		}

		if !success {
			return false, matcher.FailureMessage(actual)
		}

		return true, ""
	}

	if reflect.DeepEqual(actual, expected) {
		return true, ""
	}

	return false, fmt.Sprintf("expected %#v, got %#v", expected, actual)
}
