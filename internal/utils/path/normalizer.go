package pathutils

import (
	"path/filepath"
	"strings"
)

// Normalizer turns user supplied root paths into clean filesystem paths.
type Normalizer struct {
	homeExpander *HomeExpander
}

// NewNormalizer constructs a Normalizer backed by the operating system home directory lookup.
func NewNormalizer() *Normalizer {
	return NewNormalizerWithExpander(NewHomeExpander())
}

// NewNormalizerWithExpander constructs a Normalizer using the provided expander.
func NewNormalizerWithExpander(expander *HomeExpander) *Normalizer {
	if expander == nil {
		expander = NewHomeExpander()
	}
	return &Normalizer{homeExpander: expander}
}

// Normalize trims whitespace, expands the home shortcut, and cleans the path.
// Empty input stays empty so callers can tell "not provided" apart from ".".
func (normalizer *Normalizer) Normalize(rawPath string) string {
	trimmedPath := strings.TrimSpace(rawPath)
	if len(trimmedPath) == 0 {
		return ""
	}
	return filepath.Clean(normalizer.homeExpander.Expand(trimmedPath))
}
