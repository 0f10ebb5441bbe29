// Package weave renders a segmented document as markdown: comments become
// prose and code runs become fenced blocks, in document order.
package weave

import (
	"strings"

	"lem/internal/segment"
)

// DefaultSkipMarkers are the markers that drop a segment from the output.
var DefaultSkipMarkers = []string{"todo:"}

// Options configure the weaver.
type Options struct {
	// Language is the info string of code fences; empty gives a bare fence.
	Language string
	// SkipMarkers drop any segment whose raw text contains one of them.
	SkipMarkers []string
}

// DefaultOptions returns options with the default skip markers.
func DefaultOptions() Options {
	return Options{SkipMarkers: append([]string(nil), DefaultSkipMarkers...)}
}

// Snippet is one rendered markdown fragment and the segment kind it came from.
type Snippet struct {
	Kind     segment.Kind
	Markdown string
}

// Weaver is a segment.Handler collecting markdown snippets.
type Weaver struct {
	segment.BaseHandler
	opts     Options
	snippets []Snippet
}

// New creates a Weaver.
func New(opts Options) *Weaver {
	return &Weaver{opts: opts}
}

// EnterDocument resets the collected snippets.
func (w *Weaver) EnterDocument(*segment.Document) {
	w.snippets = w.snippets[:0]
}

func (w *Weaver) EnterDelimitedComment(seg segment.Segment) {
	if w.skip(seg) {
		return
	}
	text := strings.TrimPrefix(seg.Text, "/*")
	if !seg.Unterminated {
		text = strings.TrimSuffix(text, "*/")
	}
	w.add(seg.Kind, strings.TrimSpace(text))
}

func (w *Weaver) EnterLineComment(seg segment.Segment) {
	if w.skip(seg) {
		return
	}
	w.add(seg.Kind, strings.TrimSpace(strings.TrimPrefix(seg.Text, "//")))
}

func (w *Weaver) EnterCode(seg segment.Segment) {
	if w.skip(seg) {
		return
	}
	code := strings.TrimLeft(seg.Text, "\r\n")
	code = strings.TrimRight(code, " \t\r\n\v\f")
	w.add(seg.Kind, "```"+w.opts.Language+"\n"+code+"\n```")
}

// Snippets returns the snippets collected by the last walk.
func (w *Weaver) Snippets() []Snippet {
	return append([]Snippet(nil), w.snippets...)
}

// String joins the snippets with blank lines.
func (w *Weaver) String() string {
	if len(w.snippets) == 0 {
		return ""
	}
	parts := make([]string, len(w.snippets))
	for i, s := range w.snippets {
		parts[i] = s.Markdown
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func (w *Weaver) skip(seg segment.Segment) bool {
	if strings.TrimSpace(seg.Text) == "" {
		return true
	}
	for _, marker := range w.opts.SkipMarkers {
		if marker != "" && strings.Contains(seg.Text, marker) {
			return true
		}
	}
	return false
}

func (w *Weaver) add(kind segment.Kind, markdown string) {
	if markdown == "" {
		return
	}
	w.snippets = append(w.snippets, Snippet{Kind: kind, Markdown: markdown})
}

// Markdown walks doc and returns the woven markdown.
func Markdown(doc *segment.Document, opts Options) string {
	w := New(opts)
	segment.Walk(doc, w)
	return w.String()
}
