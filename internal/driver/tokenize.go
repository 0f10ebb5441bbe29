package driver

import (
	"context"
	"io"

	"lem/internal/scanner"
	"lem/internal/source"
	"lem/internal/token"
	"lem/internal/trace"
)

// TokenizeResult holds the raw token stream of one file.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
}

// Tokenize loads path and returns its tokens.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := loadTimed(opts.Timer, func() (source.FileID, error) { return fs.Load(path) })
	if err != nil {
		return nil, err
	}
	return tokenizeLoaded(ctx, fs, fileID, opts), nil
}

// TokenizeReader is Tokenize over an already open stream such as stdin.
func TokenizeReader(ctx context.Context, name string, r io.Reader, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := loadTimed(opts.Timer, func() (source.FileID, error) { return fs.LoadReader(name, r) })
	if err != nil {
		return nil, err
	}
	return tokenizeLoaded(ctx, fs, fileID, opts), nil
}

func tokenizeLoaded(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options) *TokenizeResult {
	file := fs.Get(fileID)
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "tokenize", trace.CurrentSpan(ctx))

	phase := beginPhase(opts.Timer, "scan")
	tokens := scanner.Tokenize(file, scanOptions(ctx, opts))
	endPhase(opts.Timer, phase, "")

	span.WithExtra("tokens", itoa(len(tokens))).End(file.Path)
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
	}
}
