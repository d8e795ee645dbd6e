package switcher

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// FuzzyMatcher matches when every rune of the query appears in the
// candidate's key in order, ignoring case. A nil key uses fmt.Sprint.
func FuzzyMatcher[T any](key func(T) string) Matcher[T] {
	key = keyOrSprint(key)
	return func(query string, candidate T) bool {
		return len(fuzzy.Find(query, []string{key(candidate)})) > 0
	}
}

// SubstringMatcher matches when the candidate's key contains the query,
// ignoring case. A nil key uses fmt.Sprint.
func SubstringMatcher[T any](key func(T) string) Matcher[T] {
	key = keyOrSprint(key)
	return func(query string, candidate T) bool {
		return strings.Contains(strings.ToLower(key(candidate)), strings.ToLower(query))
	}
}

// MatcherByName returns the matcher registered under name ("fuzzy" or
// "substring").
func MatcherByName[T any](name string, key func(T) string) (Matcher[T], error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "fuzzy":
		return FuzzyMatcher(key), nil
	case "substring":
		return SubstringMatcher(key), nil
	default:
		return nil, fmt.Errorf("unknown matcher %q", name)
	}
}

func keyOrSprint[T any](key func(T) string) func(T) string {
	if key != nil {
		return key
	}
	return func(v T) string { return fmt.Sprint(v) }
}
