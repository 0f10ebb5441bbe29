package segfmt

import (
	"fmt"
	"io"
	"strings"

	"lem/internal/segment"
	"lem/internal/source"
)

// Format selects a segment renderer.
type Format string

const (
	FormatPretty  Format = "pretty"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPretty, FormatJSON, FormatMsgpack:
		return f, nil
	case "":
		return FormatPretty, nil
	default:
		return "", fmt.Errorf("unknown format: %s (expected pretty|json|msgpack)", s)
	}
}

// WriteSegments renders doc in the given format.
func WriteSegments(w io.Writer, format Format, doc *segment.Document, fs *source.FileSet, opts PrettyOpts) error {
	switch format {
	case FormatPretty:
		return FormatSegmentsPretty(w, doc, fs, opts)
	case FormatJSON:
		return FormatSegmentsJSON(w, doc, fs)
	case FormatMsgpack:
		return FormatSegmentsMsgpack(w, doc, fs)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
