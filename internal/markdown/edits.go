package markdown

import (
	"cmp"
	"fmt"
	"slices"
)

// Edit replaces source[Start:End] with Replacement. End is exclusive.
type Edit struct {
	Start       int
	End         int
	Replacement []byte
}

// ApplyEdits applies non-overlapping edits, all expressed as offsets into the
// source, and returns the new content. Untouched bytes are copied
// verbatim so the result differs from source only inside the edited ranges.
func ApplyEdits(source []byte, edits []Edit) ([]byte, error) {
	if len(edits) == 0 {
		return source, nil
	}

	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b Edit) int {
		return cmp.Compare(a.Start, b.Start)
	})

	prevEnd := 0
	grow := 0
	for i, e := range sorted {
		switch {
		case e.Start < 0 || e.End < 0:
			return nil, fmt.Errorf("invalid edit at %d: negative range", e.Start)
		case e.End < e.Start:
			return nil, fmt.Errorf("invalid edit at %d: end before start", e.Start)
		case e.End > len(source):
			return nil, fmt.Errorf("invalid edit at %d: range out of bounds", e.Start)
		case i > 0 && e.Start < prevEnd:
			return nil, fmt.Errorf("invalid edit at %d: overlaps previous edit", e.Start)
		}
		prevEnd = e.End
		grow += len(e.Replacement) - (e.End - e.Start)
	}

	out := make([]byte, 0, len(source)+max(grow, 0))
	last := 0
	for _, e := range sorted {
		out = append(out, source[last:e.Start]...)
		out = append(out, e.Replacement...)
		last = e.End
	}
	out = append(out, source[last:]...)
	return out, nil
}
