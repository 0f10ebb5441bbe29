package token

import (
	"lem/internal/source"
)

// Flags carries per-token scan facts.
type Flags uint8

const (
	// FlagUnterminated marks a delimited comment that reached end of input before "*/".
	FlagUnterminated Flags = 1 << iota
)

// Token represents a single classified slice of the input.
type Token struct {
	Kind  Kind
	Span  source.Span
	Text  string
	Flags Flags
}

// Unterminated reports whether the token is a delimited comment without its closing "*/".
func (t Token) Unterminated() bool {
	return t.Flags&FlagUnterminated != 0
}

// IsComment reports whether the token is a delimited or line comment.
func (t Token) IsComment() bool { return t.Kind.IsComment() }
