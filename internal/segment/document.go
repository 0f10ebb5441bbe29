package segment

import (
	"iter"
	"slices"
	"strings"

	"lem/internal/source"
)

// Document is the ordered segment sequence produced by one scan.
type Document struct {
	File     source.FileID
	segments []Segment
}

// NewDocument wraps already built segments; the slice is owned by the Document afterwards.
func NewDocument(file source.FileID, segments []Segment) *Document {
	return &Document{File: file, segments: segments}
}

// Len returns the number of segments.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.segments)
}

// At returns the i-th segment.
func (d *Document) At(i int) Segment {
	return d.segments[i]
}

// Segments returns a copy of the segment list; callers may keep and modify it.
func (d *Document) Segments() []Segment {
	if d == nil {
		return nil
	}
	return slices.Clone(d.segments)
}

// All iterates over the segments in document order. It can be ranged over any number of times.
func (d *Document) All() iter.Seq2[int, Segment] {
	return func(yield func(int, Segment) bool) {
		if d == nil {
			return
		}
		for i, seg := range d.segments {
			if !yield(i, seg) {
				return
			}
		}
	}
}

// Text concatenates all segment texts; it equals the scanned input.
func (d *Document) Text() string {
	if d == nil {
		return ""
	}
	var sb strings.Builder
	for _, seg := range d.segments {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

// Count returns the number of segments of kind k.
func (d *Document) Count(k Kind) int {
	n := 0
	for _, seg := range d.All() {
		if seg.Kind == k {
			n++
		}
	}
	return n
}
