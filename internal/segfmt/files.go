package segfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/vmihailenco/msgpack/v5"

	"lem/internal/segment"
	"lem/internal/source"
)

var (
	headerColor = []color.Attribute{color.Bold}
	errorColor  = []color.Attribute{color.FgRed, color.Bold}
)

// FileDocument is one file of a directory scan. Doc is nil when Err is set.
type FileDocument struct {
	Path string
	Doc  *segment.Document
	Err  error
}

// FileOutput is the serialized form of a FileDocument.
type FileOutput struct {
	Path     string          `json:"path" msgpack:"path"`
	Segments []SegmentOutput `json:"segments,omitempty" msgpack:"segments,omitempty"`
	Error    string          `json:"error,omitempty" msgpack:"error,omitempty"`
}

// FilesOutput converts files into their serialized form.
func FilesOutput(files []FileDocument, fs *source.FileSet) []FileOutput {
	out := make([]FileOutput, 0, len(files))
	for _, f := range files {
		fo := FileOutput{Path: f.Path}
		if f.Err != nil {
			fo.Error = f.Err.Error()
		} else if f.Doc != nil {
			fo.Segments = SegmentsOutput(f.Doc, fs)
		}
		out = append(out, fo)
	}
	return out
}

// WriteFiles renders several documents. Pretty output prints a header per file;
// json and msgpack write one array of FileOutput.
func WriteFiles(w io.Writer, format Format, files []FileDocument, fs *source.FileSet, opts PrettyOpts) error {
	switch format {
	case FormatPretty:
		return formatFilesPretty(w, files, fs, opts)
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(FilesOutput(files, fs))
	case FormatMsgpack:
		if err := msgpack.NewEncoder(w).Encode(FilesOutput(files, fs)); err != nil {
			return fmt.Errorf("encode files: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func formatFilesPretty(w io.Writer, files []FileDocument, fs *source.FileSet, opts PrettyOpts) error {
	for i, f := range files {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		header := "==> " + displayPath(f, fs, opts.PathMode) + " <=="
		if _, err := fmt.Fprintln(w, paint(headerColor, opts.Color, header)); err != nil {
			return err
		}
		if f.Err != nil {
			if _, err := fmt.Fprintln(w, paint(errorColor, opts.Color, "error:"), f.Err); err != nil {
				return err
			}
			continue
		}
		if f.Doc == nil {
			continue
		}
		if err := FormatSegmentsPretty(w, f.Doc, fs, opts); err != nil {
			return err
		}
	}
	return nil
}

func displayPath(f FileDocument, fs *source.FileSet, mode PathMode) string {
	if mode == "" {
		mode = PathModeRelative
	}
	// файлы без документа (ошибка загрузки) форматируем по сырому пути
	if f.Doc != nil {
		return fs.Get(f.Doc.File).FormatPath(string(mode), fs.BaseDir())
	}
	return source.FormatPath(f.Path, string(mode), fs.BaseDir())
}
