package segment

import (
	"iter"
	"slices"
	"strings"

	"lem/internal/scanner"
	"lem/internal/source"
	"lem/internal/token"
)

// Build folds a token stream into a Document.
// Comment tokens become their own segments; consecutive Any tokens are
// accumulated and flushed as one Code segment at the next comment or at the end.
func Build(file source.FileID, tokens iter.Seq[token.Token]) *Document {
	return build(file, tokens, nil)
}

// build is Build with an optional slice func. When slice is set, Code text is
// cut from the file in one piece instead of being joined token by token.
func build(file source.FileID, tokens iter.Seq[token.Token], slice func(source.Span) string) *Document {
	var (
		segments []Segment
		code     strings.Builder
		codeSpan source.Span
		pending  bool
	)

	flush := func() {
		if !pending {
			return
		}
		var text string
		if slice != nil {
			text = slice(codeSpan)
		} else {
			text = code.String()
			code.Reset()
		}
		segments = append(segments, Segment{
			Kind: Code,
			Span: codeSpan,
			Text: text,
		})
		pending = false
	}

	for tok := range tokens {
		if tok.IsComment() {
			flush()
			segments = append(segments, Segment{
				Kind:         kindOf(tok.Kind),
				Span:         tok.Span,
				Text:         tok.Text,
				Unterminated: tok.Unterminated(),
			})
			continue
		}
		if tok.Kind != token.Any {
			continue
		}
		if !pending {
			codeSpan = tok.Span
			pending = true
		} else {
			codeSpan.End = tok.Span.End
		}
		if slice == nil {
			code.WriteString(tok.Text)
		}
	}
	flush()

	return NewDocument(file, segments)
}

// FromTokens is Build over a materialized token list.
func FromTokens(file source.FileID, tokens []token.Token) *Document {
	return Build(file, slices.Values(tokens))
}

// Parse scans file and segments the result in one pass.
func Parse(file *source.File, opts scanner.Options) *Document {
	return build(file.ID, scanner.New(file, opts).All(), file.Slice)
}

// ParseString segments text with the default scanner options.
func ParseString(text string) *Document {
	fs := source.NewFileSet()
	return Parse(fs.Get(fs.AddVirtual("<string>", []byte(text))), scanner.Options{})
}
