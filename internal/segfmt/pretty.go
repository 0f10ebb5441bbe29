package segfmt

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"lem/internal/segment"
	"lem/internal/source"
	"lem/internal/token"
)

var (
	delimitedColor = []color.Attribute{color.FgGreen}
	lineColor      = []color.Attribute{color.FgCyan}
	codeColor      = []color.Attribute{color.FgWhite}
	warnColor      = []color.Attribute{color.FgYellow, color.Bold}
)

func paint(attrs []color.Attribute, enabled bool, s string) string {
	if !enabled {
		return s
	}
	// цвет включаем явно: решение принимает вызывающий (--color), а не автоопределение пакета
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

func kindColor(k segment.Kind) []color.Attribute {
	switch k {
	case segment.DelimitedComment:
		return delimitedColor
	case segment.LineComment:
		return lineColor
	default:
		return codeColor
	}
}

// quote quotes s and truncates the quoted form to width cells.
func quote(s string, width int) string {
	q := strconv.Quote(s)
	if width <= 0 || runewidth.StringWidth(q) <= width {
		return q
	}
	if width <= 3 {
		return runewidth.Truncate(q, width, "")
	}
	return runewidth.Truncate(q, width, "...")
}

// FormatSegmentsPretty prints one line per segment:
// index, kind, quoted text and line:col range.
func FormatSegmentsPretty(w io.Writer, doc *segment.Document, fs *source.FileSet, opts PrettyOpts) error {
	for i, seg := range doc.All() {
		start, end := fs.Resolve(seg.Span)
		kind := paint(kindColor(seg.Kind), opts.Color, fmt.Sprintf("%-16s", seg.Kind.String()))
		if _, err := fmt.Fprintf(w, "%3d: %s %s at %d:%d-%d:%d",
			i+1, kind, quote(seg.Text, opts.Width),
			start.Line, start.Col, end.Line, end.Col); err != nil {
			return err
		}
		if seg.Unterminated {
			if _, err := fmt.Fprint(w, " ", paint(warnColor, opts.Color, "(unterminated)")); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet, opts PrettyOpts) error {
	for i, tok := range tokens {
		start, end := fs.Resolve(tok.Span)
		kind := fmt.Sprintf("%-16s", tok.Kind.String())
		switch tok.Kind {
		case token.DelimitedComment:
			kind = paint(delimitedColor, opts.Color, kind)
		case token.LineComment:
			kind = paint(lineColor, opts.Color, kind)
		}
		if _, err := fmt.Fprintf(w, "%3d: %s %s at %d:%d-%d:%d\n",
			i+1, kind, quote(tok.Text, opts.Width),
			start.Line, start.Col, end.Line, end.Col); err != nil {
			return err
		}
	}
	return nil
}
