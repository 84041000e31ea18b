// Package region splits the chaos-board document around its editable
// marker pair.
package region

import (
	"strings"

	"github.com/chaos-board/chaosgate/pkg/core"
)

// Marker literals delimiting the editable span of the board document.
// They are part of the on-disk file format and never configurable.
const (
	StartMarker = "<!-- CHAOS_START -->"
	EndMarker   = "<!-- CHAOS_END -->"
)

// Split is the three-way partition of one document around the marker pair.
// Before ends with the start marker, After begins with the end marker, and
// Before+Region+After reproduces the input byte for byte.
type Split struct {
	Before string
	Region string
	After  string
}

// Cut locates the marker pair in doc and partitions it. It returns
// core.ErrMalformedRegion when either marker is absent or the end marker
// does not come strictly after the start marker. Content is preserved
// verbatim; callers rely on byte-exact fidelity of Before and After.
func Cut(doc string) (Split, error) {
	start := strings.Index(doc, StartMarker)
	end := strings.Index(doc, EndMarker)
	if start == -1 || end == -1 || end <= start {
		return Split{}, core.ErrMalformedRegion
	}

	return Split{
		Before: doc[:start+len(StartMarker)],
		Region: doc[start+len(StartMarker) : end],
		After:  doc[end:],
	}, nil
}
