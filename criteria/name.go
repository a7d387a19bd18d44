// Package criteria provides the predicates used to select which entries are migrated
// and which container objects are listed.
package criteria

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Operator combines the results of the entries within one rule list.
type Operator string

const (
	// And requires every entry of a list to hold. It is the default when no operator
	// is set.
	And Operator = "and"
	// Or requires at least one entry of a list to hold. Unrecognized operators
	// behave like Or.
	Or Operator = "or"
)

// NameRule is a set of substring, prefix, suffix and glob conditions on a name. Each
// non-empty list is reduced with Operator, and all non-empty lists must then hold.
type NameRule struct {
	InPath    []string `mapstructure:"in_path"`
	NotInPath []string `mapstructure:"not_in_path"`
	Starts    []string `mapstructure:"starts"`
	NotStarts []string `mapstructure:"not_starts"`
	Ends      []string `mapstructure:"ends"`
	NotEnds   []string `mapstructure:"not_ends"`
	Globs     []string `mapstructure:"globs"`
	NotGlobs  []string `mapstructure:"not_globs"`
	Operator  Operator `mapstructure:"operator"`
}

// Empty reports whether the rule has no condition at all.
func (rule NameRule) Empty() bool {
	return len(rule.InPath)+len(rule.NotInPath)+len(rule.Starts)+len(rule.NotStarts)+
		len(rule.Ends)+len(rule.NotEnds)+len(rule.Globs)+len(rule.NotGlobs) == 0
}

// Match evaluates the rule against name.
func (rule NameRule) Match(name string) bool {
	reduce := anyOf
	if rule.Operator == And || rule.Operator == "" {
		reduce = allOf
	}

	return reduce(rule.InPath, func(s string) bool { return strings.Contains(name, s) }) &&
		reduce(rule.NotInPath, func(s string) bool { return !strings.Contains(name, s) }) &&
		reduce(rule.Starts, func(s string) bool { return strings.HasPrefix(name, s) }) &&
		reduce(rule.NotStarts, func(s string) bool { return !strings.HasPrefix(name, s) }) &&
		reduce(rule.Ends, func(s string) bool { return strings.HasSuffix(name, s) }) &&
		reduce(rule.NotEnds, func(s string) bool { return !strings.HasSuffix(name, s) }) &&
		reduce(rule.Globs, func(s string) bool { return globMatch(s, name) }) &&
		reduce(rule.NotGlobs, func(s string) bool { return !globMatch(s, name) })
}

// Name evaluates rule against path as given.
func Name(path string, rule NameRule) bool {
	return rule.Match(path)
}

// ByName returns a path predicate applying rule to the final segment of the path.
func ByName(rule NameRule) func(path string) bool {
	return OnName(rule.Match)
}

// OnName adapts a predicate on names into a predicate on paths.
func OnName(fn func(name string) bool) func(path string) bool {
	return func(path string) bool {
		return fn(filepath.Base(path))
	}
}

// ValidateGlobs reports the first malformed glob pattern of the rule.
func (rule NameRule) ValidateGlobs() error {
	for _, pattern := range append(append([]string{}, rule.Globs...), rule.NotGlobs...) {
		if !doublestar.ValidatePattern(pattern) {
			return doublestar.ErrBadPattern
		}
	}
	return nil
}

// globMatch treats malformed patterns as non-matching.
func globMatch(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}

// allOf and anyOf skip empty lists, an empty list always holds.
func allOf(items []string, fn func(string) bool) bool {
	for _, item := range items {
		if !fn(item) {
			return false
		}
	}
	return true
}

func anyOf(items []string, fn func(string) bool) bool {
	if len(items) == 0 {
		return true
	}
	for _, item := range items {
		if fn(item) {
			return true
		}
	}
	return false
}
