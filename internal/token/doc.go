// Package token defines the token kinds produced by the comment scanner.
// Invariants:
//   - Token.Text is a slice of the original source (Text == Content[Span.Start:Span.End]).
//   - Tokens of one input tile it: no gaps, no overlaps, ordered by Span.Start.
//   - Any tokens cover exactly one character (one UTF-8 rune, or one byte of invalid UTF-8).
package token
