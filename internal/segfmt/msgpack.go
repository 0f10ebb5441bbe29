package segfmt

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"lem/internal/segment"
	"lem/internal/source"
)

// FormatSegmentsMsgpack writes the segment list as one msgpack array.
func FormatSegmentsMsgpack(w io.Writer, doc *segment.Document, fs *source.FileSet) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(SegmentsOutput(doc, fs)); err != nil {
		return fmt.Errorf("encode segments: %w", err)
	}
	return nil
}

// DecodeSegmentsMsgpack reads a list written by FormatSegmentsMsgpack.
func DecodeSegmentsMsgpack(r io.Reader) ([]SegmentOutput, error) {
	var out []SegmentOutput
	if err := msgpack.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode segments: %w", err)
	}
	return out, nil
}
