package parse

import (
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
)

// MarkerSet splits free text into labeled segments. Each marker is a
// pattern labeling the start of one segment; a segment runs from the end of
// its marker to the start of whichever other marker appears next, or to the
// end of the text. Markers that never occur yield empty segments.
type MarkerSet struct {
	markers []*regexp.Regexp
}

// NewMarkerSet compiles the given patterns into a MarkerSet. Order is
// significant: Split returns segments in the same order.
func NewMarkerSet(patterns ...string) (*MarkerSet, error) {
	ms := &MarkerSet{markers: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, eris.Wrapf(err, "parse: compile marker %q", p)
		}
		ms.markers = append(ms.markers, re)
	}
	return ms, nil
}

// MustMarkerSet is NewMarkerSet for package-level marker tables.
func MustMarkerSet(patterns ...string) *MarkerSet {
	ms, err := NewMarkerSet(patterns...)
	if err != nil {
		panic(err)
	}
	return ms
}

// Split returns one trimmed segment per marker, in marker order.
func (ms *MarkerSet) Split(text string) []string {
	type match struct {
		start, end int
	}

	matches := make([]*match, len(ms.markers))
	for i, re := range ms.markers {
		if loc := re.FindStringIndex(text); loc != nil {
			matches[i] = &match{start: loc[0], end: loc[1]}
		}
	}

	segments := make([]string, len(ms.markers))
	for i, m := range matches {
		if m == nil {
			continue
		}
		// The segment ends at the nearest other marker that starts after
		// this one's label.
		end := len(text)
		for j, other := range matches {
			if j == i || other == nil {
				continue
			}
			if other.start >= m.end && other.start < end {
				end = other.start
			}
		}
		segments[i] = strings.TrimSpace(text[m.end:end])
	}
	return segments
}
