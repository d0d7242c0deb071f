// Package extract pulls candidate function-definition names out of
// source text.
//
// Extraction is heuristic, not a parse: any line containing the literal
// marker "def " is treated as a definition, including occurrences inside
// strings or comments. Completeness and correctness are explicitly not
// guaranteed.
package extract

import (
	"os"
	"strings"

	"github.com/defrec/defrec/internal/errors"
)

// Marker is the literal substring that flags a line as a candidate
// definition.
const Marker = "def "

// Extractor extracts candidate names from file content.
type Extractor struct {
	marker string
}

// New creates an Extractor using the default marker.
func New() *Extractor {
	return &Extractor{marker: Marker}
}

// NewWithMarker creates an Extractor with a custom marker substring.
func NewWithMarker(marker string) *Extractor {
	if marker == "" {
		marker = Marker
	}
	return &Extractor{marker: marker}
}

// Extract returns the candidate names found in content, in appearance
// order. A file with no marker yields an empty (nil) slice, which is a
// valid result, not a failure.
//
// For each candidate line the name is the trimmed line with the first
// marker occurrence removed, cut before the first "(". A line without
// "(" contributes the entire remainder. The cut keeps any whitespace
// between name and parenthesis ("def foo (x):" yields "foo "); that
// artifact is preserved deliberately so indexes stay comparable across
// versions.
func (e *Extractor) Extract(content string) []string {
	var names []string
	for _, line := range strings.Split(content, "\n") {
		if !strings.Contains(line, e.marker) {
			continue
		}
		rest := strings.TrimSpace(line)
		rest = strings.Replace(rest, e.marker, "", 1)
		if i := strings.IndexByte(rest, '('); i >= 0 {
			rest = rest[:i]
		}
		names = append(names, rest)
	}
	return names
}

// ExtractFile reads path and extracts candidate names from it.
// Any read failure (missing file, permissions, I/O error) is reported
// as an extraction error, distinct from a readable file that simply
// contains no definitions.
func (e *Extractor) ExtractFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ExtractionError(path, err)
	}
	return e.Extract(string(data)), nil
}
