package scanner

import (
	"fmt"
	"path"
	"runtime"
	"strings"

	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

// Matcher reports whether a file name matches any of a set of glob patterns.
type Matcher struct {
	patterns []string
	fold     bool
}

// NewMatcher compiles patterns. An empty list matches every name.
// Patterns written with a leading "[!" class are accepted as negated classes.
// Names are compared case-insensitively on Windows.
func NewMatcher(patterns []string) (*Matcher, error) {
	return newMatcher(patterns, runtime.GOOS == "windows")
}

func newMatcher(patterns []string, fold bool) (*Matcher, error) {
	if len(patterns) == 0 {
		patterns = []string{shadowforensic.DefaultFilter}
	}

	m := &Matcher{fold: fold}
	for _, p := range patterns {
		normalized := normalizePattern(p)
		if fold {
			normalized = strings.ToLower(normalized)
		}
		if _, err := path.Match(normalized, ""); err != nil {
			return nil, fmt.Errorf("%q: %w", p, shadowforensic.ErrInvalidPattern)
		}
		m.patterns = append(m.patterns, normalized)
	}
	return m, nil
}

// normalizePattern rewrites shell-style "[!...]" classes into the "[^...]"
// form understood by path.Match.
func normalizePattern(p string) string {
	return strings.ReplaceAll(p, "[!", "[^")
}

// Match reports whether the file name matches at least one pattern.
func (m *Matcher) Match(name string) bool {
	if m.fold {
		name = strings.ToLower(name)
	}
	for _, p := range m.patterns {
		if ok, _ := path.Match(p, name); ok {
			return true
		}
	}
	return false
}

// SizeRange is an inclusive byte range. Max of zero means unbounded.
type SizeRange struct {
	Min int64
	Max int64
}

// Contains reports whether size lies within the range.
func (r SizeRange) Contains(size int64) bool {
	if size < r.Min {
		return false
	}
	return r.Max <= 0 || size <= r.Max
}
