package filesystem

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const invalidExcludePatternTemplateConstant = "invalid exclude pattern %q"

// ExcludeFilter reports whether a path relative to a walk root should be skipped.
type ExcludeFilter struct {
	patterns []string
}

// NewExcludeFilter validates the glob patterns and builds a filter. Blank patterns are ignored.
func NewExcludeFilter(patterns []string) (*ExcludeFilter, error) {
	validPatterns := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if len(trimmedPattern) == 0 {
			continue
		}
		if !doublestar.ValidatePattern(trimmedPattern) {
			return nil, fmt.Errorf(invalidExcludePatternTemplateConstant, trimmedPattern)
		}
		validPatterns = append(validPatterns, trimmedPattern)
	}
	return &ExcludeFilter{patterns: validPatterns}, nil
}

// Excludes reports whether relativePath matches any pattern. Matching uses forward slashes on every platform.
func (filter *ExcludeFilter) Excludes(relativePath string) bool {
	if filter == nil || len(filter.patterns) == 0 {
		return false
	}
	slashPath := filepath.ToSlash(relativePath)
	for _, pattern := range filter.patterns {
		if matched, _ := doublestar.Match(pattern, slashPath); matched {
			return true
		}
	}
	return false
}

// Patterns returns a copy of the validated patterns.
func (filter *ExcludeFilter) Patterns() []string {
	if filter == nil {
		return nil
	}
	return append([]string{}, filter.patterns...)
}
