package filters

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// PathFilter matches paths relative to the repository root, always with /.
type PathFilter func(path string) bool

func AllPaths(string) bool {
	return true
}

// ParsePathFilter accepts globs, combined with | (or) and & (and), and negated with a leading !.
func ParsePathFilter(rule string) (PathFilter, error) {
	rule = strings.TrimSpace(rule)

	switch {
	case rule == "":
		return AllPaths, nil

	case strings.Contains(rule, "|"):
		clauses, err := parsePathFilterList(strings.Split(rule, "|"))
		if err != nil {
			return nil, err
		}

		return func(path string) bool {
			return lo.SomeBy(clauses, func(f PathFilter) bool { return f(path) })
		}, nil

	case strings.Contains(rule, "&"):
		clauses, err := parsePathFilterList(strings.Split(rule, "&"))
		if err != nil {
			return nil, err
		}

		return func(path string) bool {
			return lo.EveryBy(clauses, func(f PathFilter) bool { return f(path) })
		}, nil

	case strings.HasPrefix(rule, "!"):
		f, err := ParsePathFilter(rule[1:])
		if err != nil {
			return nil, err
		}

		return func(path string) bool {
			return !f(path)
		}, nil

	default:
		if !doublestar.ValidatePattern(rule) {
			return nil, errors.Errorf("invalid path glob: %v", rule)
		}

		return func(path string) bool {
			m, err := doublestar.Match(rule, path)
			return err == nil && m
		}, nil
	}
}

func parsePathFilterList(rules []string) ([]PathFilter, error) {
	result := make([]PathFilter, 0, len(rules))

	for _, rule := range rules {
		f, err := ParsePathFilter(rule)
		if err != nil {
			return nil, err
		}

		result = append(result, f)
	}

	return result, nil
}

// Filter keeps the items whose path matches.
func Filter[T any](filter PathFilter, items []T, path func(T) string) []T {
	if filter == nil {
		return items
	}

	return lo.Filter(items, func(item T, _ int) bool {
		return filter(path(item))
	})
}
