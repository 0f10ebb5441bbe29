// Package testkit holds invariant checks shared by unit tests and fuzzers.
package testkit

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"lem/internal/scanner"
	"lem/internal/segment"
	"lem/internal/token"
)

// CheckTokenInvariants verifies that tokens tile input:
// 1) every token is non-empty and its Text equals input[Start:End]
// 2) each token starts where the previous one ended, the first at 0
// 3) the last token ends at len(input)
func CheckTokenInvariants(input string, tokens []token.Token) error {
	var off uint32
	for i, tok := range tokens {
		if tok.Span.Start != off {
			return fmt.Errorf("token %d starts at %d, want %d", i, tok.Span.Start, off)
		}
		if tok.Span.Empty() {
			return fmt.Errorf("token %d is empty at %d", i, off)
		}
		if int(tok.Span.End) > len(input) {
			return fmt.Errorf("token %d ends beyond input: %d > %d", i, tok.Span.End, len(input))
		}
		if tok.Text != input[tok.Span.Start:tok.Span.End] {
			return fmt.Errorf("token %d text %q does not match span %v", i, tok.Text, tok.Span)
		}
		off = tok.Span.End
	}
	lenInput, err := safecast.Conv[uint32](len(input))
	if err != nil {
		return fmt.Errorf("len input overflow: %w", err)
	}
	if off != lenInput {
		return fmt.Errorf("tokens end at %d, input has %d bytes", off, lenInput)
	}
	return nil
}

// CheckDocumentInvariants verifies the segment-level guarantees:
// round trip, non-empty ordered segments, no adjacent Code segments, and
// the shape of each comment kind.
func CheckDocumentInvariants(input string, doc *segment.Document) error {
	if got := doc.Text(); got != input {
		return fmt.Errorf("round trip mismatch: got %q, want %q", got, input)
	}
	prev := segment.Invalid
	var off uint32
	for i, seg := range doc.All() {
		if seg.Text == "" {
			return fmt.Errorf("segment %d is empty", i)
		}
		if seg.Span.Start != off || int(seg.Span.Len()) != len(seg.Text) {
			return fmt.Errorf("segment %d span %v does not follow offset %d", i, seg.Span, off)
		}
		off = seg.Span.End
		if seg.Kind == segment.Code && prev == segment.Code {
			return fmt.Errorf("segments %d and %d are both Code", i-1, i)
		}
		if err := checkShape(seg); err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
		prev = seg.Kind
	}
	return nil
}

func checkShape(seg segment.Segment) error {
	switch seg.Kind {
	case segment.DelimitedComment:
		if !strings.HasPrefix(seg.Text, "/*") {
			return fmt.Errorf("delimited comment %q does not start with /*", seg.Text)
		}
		if !seg.Unterminated && (len(seg.Text) < 4 || !strings.HasSuffix(seg.Text, "*/")) {
			return fmt.Errorf("terminated delimited comment %q does not end with */", seg.Text)
		}
	case segment.LineComment:
		if !strings.HasPrefix(seg.Text, "//") {
			return fmt.Errorf("line comment %q does not start with //", seg.Text)
		}
		if strings.ContainsAny(seg.Text, "\r\n") {
			return fmt.Errorf("line comment %q contains a line terminator", seg.Text)
		}
	case segment.Code:
	default:
		return fmt.Errorf("invalid kind %v", seg.Kind)
	}
	return nil
}

// CheckReclassification rescans every segment of doc on its own and expects
// exactly one segment of the same kind covering the whole text.
func CheckReclassification(doc *segment.Document, opts scanner.Options) error {
	for i, seg := range doc.All() {
		tokens := scanner.TokenizeString(seg.Text, opts)
		again := segment.FromTokens(0, tokens)
		if again.Len() != 1 {
			return fmt.Errorf("segment %d (%v %q) rescans into %d segments", i, seg.Kind, seg.Text, again.Len())
		}
		if got := again.At(0); got.Kind != seg.Kind || got.Text != seg.Text {
			return fmt.Errorf("segment %d (%v %q) rescans as %v %q", i, seg.Kind, seg.Text, got.Kind, got.Text)
		}
	}
	return nil
}
