// Package publish writes computed artifacts (figures, tables, code
// listings) into the chapter tree and registers each rendered LaTeX
// fragment in its parent file via an \input{} statement.
package publish

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Location addresses a spot in the chapter tree as an ordered sequence of
// 1 to 3 path segments: chapter, optional section, optional subsection.
type Location struct {
	segments []string
}

// ParseLocation derives a Location from a newline-delimited string such as
// "chapter3\nsection2" or "chapter4\nsection2\nsubsection1". The input is
// lower-cased and stripped of spaces; blank segments are dropped.
func ParseLocation(s string) (Location, error) {
	cleaned := strings.ReplaceAll(strings.ToLower(s), " ", "")
	var segments []string
	for _, segment := range strings.Split(cleaned, "\n") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	if len(segments) < 1 || len(segments) > 3 {
		return Location{}, fmt.Errorf("publish: location needs 1 to 3 segments, got %d in %q", len(segments), s)
	}
	return Location{segments: segments}, nil
}

// Dir resolves the target directory below the chapters directory:
// chapters/<chapter>/sections/<section>/subsections/<subsection>, cut off
// after however many segments the location carries.
func (l Location) Dir(chaptersDir string) string {
	nesting := []string{"", "sections", "subsections"}
	dir := chaptersDir
	for i, segment := range l.segments {
		if nesting[i] != "" {
			dir = filepath.Join(dir, nesting[i])
		}
		dir = filepath.Join(dir, segment)
	}
	return dir
}

// String renders the location as a slash path, e.g. "chapter3/section2".
func (l Location) String() string {
	return strings.Join(l.segments, "/")
}
