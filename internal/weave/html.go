package weave

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"lem/internal/segment"
)

var renderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

// WriteHTML renders every snippet of the last walk to HTML, one after another.
// Snippets are converted separately, so a stray fence in one comment never
// swallows the snippets after it.
func (w *Weaver) WriteHTML(out io.Writer) error {
	var buf bytes.Buffer
	for i, s := range w.snippets {
		buf.Reset()
		if err := renderer.Convert([]byte(s.Markdown), &buf); err != nil {
			return fmt.Errorf("render snippet %d: %w", i+1, err)
		}
		if _, err := out.Write(buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

// HTML walks doc and writes the woven document as HTML.
func HTML(out io.Writer, doc *segment.Document, opts Options) error {
	w := New(opts)
	segment.Walk(doc, w)
	return w.WriteHTML(out)
}
