// Package strip removes comments from a segmented document and keeps code verbatim.
// A removed block comment leaves a space (or its line terminators) behind,
// so tokens on either side never merge.
package strip

import (
	"strings"

	"lem/internal/segment"
)

// Options configure the stripper.
type Options struct {
	// KeepLines replaces a removed delimited comment with the line terminators
	// it contained, so the following code keeps its line numbers.
	// A comment without terminators becomes a single space either way.
	KeepLines bool
}

// Stripper is a segment.Handler that writes code segments and drops comments.
type Stripper struct {
	segment.BaseHandler
	opts    Options
	out     strings.Builder
	removed int
}

// New creates a Stripper.
func New(opts Options) *Stripper {
	return &Stripper{opts: opts}
}

func (s *Stripper) EnterDocument(*segment.Document) {
	s.out.Reset()
	s.removed = 0
}

func (s *Stripper) EnterCode(seg segment.Segment) {
	s.out.WriteString(seg.Text)
}

func (s *Stripper) EnterLineComment(segment.Segment) {
	// терминатор строки принадлежит следующему сегменту кода
	s.removed++
}

func (s *Stripper) EnterDelimitedComment(seg segment.Segment) {
	s.removed++
	if s.opts.KeepLines {
		if lines := lineTerminators(seg.Text); lines != "" {
			s.out.WriteString(lines)
			return
		}
	}
	// комментарий разделяет соседние лексемы: "int/**/x" не должно стать "intx"
	s.out.WriteByte(' ')
}

// String returns the stripped text of the last walked document.
func (s *Stripper) String() string {
	return s.out.String()
}

// Removed returns how many comments the last walk dropped.
func (s *Stripper) Removed() int {
	return s.removed
}

// lineTerminators returns the CR, LF and CRLF sequences of text in order.
func lineTerminators(text string) string {
	var sb strings.Builder
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r', '\n':
			sb.WriteByte(text[i])
		}
	}
	return sb.String()
}

// Strip walks doc and returns its text without comments.
func Strip(doc *segment.Document, opts Options) string {
	s := New(opts)
	segment.Walk(doc, s)
	return s.String()
}
