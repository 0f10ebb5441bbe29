package scanner

import (
	"fmt"
	"iter"
	"unicode/utf8"

	"fortio.org/safecast"

	"lem/internal/source"
	"lem/internal/token"
	"lem/internal/trace"
)

// Scanner classifies a file's content into DelimitedComment, LineComment and Any tokens.
// A Scanner owns its cursor and must not be shared between goroutines;
// independent Scanners over the same file are fine.
type Scanner struct {
	file   *source.File
	cursor Cursor
	opts   Options
}

// New creates a scanner positioned at the start of file.
func New(file *source.File, opts Options) *Scanner {
	return &Scanner{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next token. ok is false once the input is exhausted.
func (s *Scanner) Next() (tok token.Token, ok bool) {
	if s.cursor.EOF() {
		return token.Token{}, false
	}

	// порядок важен: "/*" раньше "//", затем одиночный символ
	if b0, b1, has2 := s.cursor.Peek2(); has2 && b0 == '/' {
		switch b1 {
		case '*':
			return s.scanDelimitedComment(), true
		case '/':
			return s.scanLineComment(), true
		}
	}
	return s.scanAny(), true
}

// All returns the remaining tokens as a lazy sequence.
func (s *Scanner) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			tok, ok := s.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Tokenize scans the whole file.
func Tokenize(file *source.File, opts Options) []token.Token {
	s := New(file, opts)
	tokens := make([]token.Token, 0, len(file.Content)/4+1)
	for tok := range s.All() {
		tokens = append(tokens, tok)
	}
	return tokens
}

// TokenizeString scans text through a throwaway virtual file.
func TokenizeString(text string, opts Options) []token.Token {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<string>", []byte(text))
	return Tokenize(fs.Get(id), opts)
}

// scanDelimitedComment consumes "/* ... */". The first "*/" closes the comment
// unless Options.Nested is set. Unterminated comments run to end of input.
func (s *Scanner) scanDelimitedComment() token.Token {
	start := s.cursor.Mark()
	s.cursor.Eat2('/', '*')

	depth := 1
	for depth > 0 && !s.cursor.EOF() {
		if s.cursor.Eat2('*', '/') {
			depth--
			continue
		}
		if s.opts.Nested && s.cursor.Eat2('/', '*') {
			depth++
			continue
		}
		s.cursor.Bump()
	}

	tok := s.makeToken(token.DelimitedComment, start)
	if depth > 0 {
		tok.Flags |= token.FlagUnterminated
		trace.Point(s.opts.tracer(), trace.ScopeItem, "unterminated block comment",
			fmt.Sprintf("%s at offset %d", s.file.Path, tok.Span.Start), 0)
	}
	return tok
}

// scanLineComment consumes "//" up to, but not including, CR, LF or end of input.
func (s *Scanner) scanLineComment() token.Token {
	start := s.cursor.Mark()
	s.cursor.Eat2('/', '/')
	for !s.cursor.EOF() {
		if b := s.cursor.Peek(); b == '\n' || b == '\r' {
			break
		}
		s.cursor.Bump()
	}
	return s.makeToken(token.LineComment, start)
}

// scanAny consumes exactly one character: a full UTF-8 rune, or a single byte
// when the input is not valid UTF-8 at this position.
func (s *Scanner) scanAny() token.Token {
	start := s.cursor.Mark()
	b := s.cursor.Peek()
	if b < utf8.RuneSelf {
		s.cursor.Bump()
		return s.makeToken(token.Any, start)
	}
	_, size := utf8.DecodeRune(s.file.Content[s.cursor.Off:s.cursor.Limit])
	// DecodeRune returns size 1 for invalid encodings, so progress is guaranteed
	usz, err := safecast.Conv[uint32](size)
	if err != nil {
		panic(fmt.Errorf("scanAny overflow: %w", err))
	}
	s.cursor.Off += usz
	return s.makeToken(token.Any, start)
}

func (s *Scanner) makeToken(kind token.Kind, start Mark) token.Token {
	sp := s.cursor.SpanFrom(start)
	return token.Token{
		Kind: kind,
		Span: sp,
		Text: s.file.Slice(sp),
	}
}
