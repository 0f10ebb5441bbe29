package segfmt

import (
	"encoding/json"
	"io"

	"lem/internal/segment"
	"lem/internal/source"
	"lem/internal/token"
)

// SegmentOutput is the serialized form of a segment.
type SegmentOutput struct {
	Kind         string         `json:"kind" msgpack:"kind"`
	Text         string         `json:"text" msgpack:"text"`
	Span         source.Span    `json:"span" msgpack:"span"`
	Start        source.LineCol `json:"start" msgpack:"start"`
	End          source.LineCol `json:"end" msgpack:"end"`
	Unterminated bool           `json:"unterminated,omitempty" msgpack:"unterminated,omitempty"`
}

// TokenOutput is the serialized form of a token.
type TokenOutput struct {
	Kind         string      `json:"kind"`
	Text         string      `json:"text"`
	Span         source.Span `json:"span"`
	Unterminated bool        `json:"unterminated,omitempty"`
}

// SegmentsOutput converts doc into its serialized form.
func SegmentsOutput(doc *segment.Document, fs *source.FileSet) []SegmentOutput {
	out := make([]SegmentOutput, 0, doc.Len())
	for _, seg := range doc.All() {
		start, end := fs.Resolve(seg.Span)
		out = append(out, SegmentOutput{
			Kind:         seg.Kind.String(),
			Text:         seg.Text,
			Span:         seg.Span,
			Start:        start,
			End:          end,
			Unterminated: seg.Unterminated,
		})
	}
	return out
}

// FormatSegmentsJSON выводит сегменты в JSON формате
func FormatSegmentsJSON(w io.Writer, doc *segment.Document, fs *source.FileSet) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(SegmentsOutput(doc, fs))
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:         tok.Kind.String(),
			Text:         tok.Text,
			Span:         tok.Span,
			Unterminated: tok.Unterminated(),
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
