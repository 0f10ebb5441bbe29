package segment

import (
	"lem/internal/source"
	"lem/internal/token"
)

// Kind is the closed set of segment variants.
type Kind uint8

const (
	// Invalid is the zero value and never appears in a Document.
	Invalid Kind = iota
	// DelimitedComment is a "/* ... */" comment, possibly unterminated.
	DelimitedComment
	// LineComment is a "//" comment without its line terminator.
	LineComment
	// Code is a maximal run of non-comment text.
	Code
)

func (k Kind) String() string {
	switch k {
	case DelimitedComment:
		return "DelimitedComment"
	case LineComment:
		return "LineComment"
	case Code:
		return "Code"
	default:
		return "Invalid"
	}
}

// Segment is one typed, non-empty slice of the input.
type Segment struct {
	Kind Kind
	Span source.Span
	Text string
	// Unterminated is set on delimited comments that ran to end of input.
	Unterminated bool
}

func kindOf(k token.Kind) Kind {
	switch k {
	case token.DelimitedComment:
		return DelimitedComment
	case token.LineComment:
		return LineComment
	case token.Any:
		return Code
	default:
		return Invalid
	}
}
