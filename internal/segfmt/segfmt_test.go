package segfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"lem/internal/scanner"
	"lem/internal/segfmt"
	"lem/internal/segment"
	"lem/internal/source"
)

func parse(t *testing.T, input string) (*segment.Document, *source.FileSet, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.c", []byte(input)))
	return segment.Parse(file, scanner.Options{}), fs, file
}

func TestFormatSegmentsPretty(t *testing.T) {
	doc, fs, _ := parse(t, "int a; // hi\n/* open")
	var buf bytes.Buffer
	if err := segfmt.FormatSegmentsPretty(&buf, doc, fs, segfmt.PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		`  1: Code             "int a; " at 1:1-1:8`,
		`  2: LineComment      "// hi" at 1:8-1:13`,
		`  3: Code             "\n" at 1:13-2:1`,
		`  4: DelimitedComment "/* open" at 2:1-2:8 (unterminated)`,
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("pretty output mismatch (-want +got):\n%s", diff)
	}
}

func TestPrettyTruncatesAndColors(t *testing.T) {
	doc, fs, _ := parse(t, "// a rather long comment")
	var buf bytes.Buffer
	if err := segfmt.FormatSegmentsPretty(&buf, doc, fs, segfmt.PrettyOpts{Width: 10, Color: true}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `"// a r...`) {
		t.Errorf("text not truncated: %q", out)
	}
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("expected ANSI color codes: %q", out)
	}
}

func TestFormatSegmentsJSON(t *testing.T) {
	doc, fs, _ := parse(t, "x/*y*/")
	var buf bytes.Buffer
	if err := segfmt.FormatSegmentsJSON(&buf, doc, fs); err != nil {
		t.Fatal(err)
	}
	var got []segfmt.SegmentOutput
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 2 || got[0].Kind != "Code" || got[1].Kind != "DelimitedComment" || got[1].Text != "/*y*/" {
		t.Fatalf("unexpected json %+v", got)
	}
	if got[1].Span.Start != 1 || got[1].Span.End != 6 {
		t.Fatalf("unexpected span %+v", got[1].Span)
	}
}

func TestMsgpackRoundTrip(t *testing.T) {
	doc, fs, _ := parse(t, "a // b\n/* c")
	var buf bytes.Buffer
	if err := segfmt.FormatSegmentsMsgpack(&buf, doc, fs); err != nil {
		t.Fatal(err)
	}
	got, err := segfmt.DecodeSegmentsMsgpack(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(segfmt.SegmentsOutput(doc, fs), got); diff != "" {
		t.Errorf("msgpack mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.c", []byte("a//b")))
	tokens := scanner.Tokenize(file, scanner.Options{})

	var pretty bytes.Buffer
	if err := segfmt.FormatTokensPretty(&pretty, tokens, fs, segfmt.PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(pretty.String(), `  2: LineComment      "//b" at 1:2-1:5`) {
		t.Errorf("unexpected pretty tokens:\n%s", pretty.String())
	}

	var js bytes.Buffer
	if err := segfmt.FormatTokensJSON(&js, tokens); err != nil {
		t.Fatal(err)
	}
	var got []segfmt.TokenOutput
	if err := json.Unmarshal(js.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Kind != "Any" || got[1].Kind != "LineComment" {
		t.Fatalf("unexpected tokens %+v", got)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]segfmt.Format{"": segfmt.FormatPretty, "JSON": segfmt.FormatJSON, "msgpack": segfmt.FormatMsgpack} {
		got, err := segfmt.ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := segfmt.ParseFormat("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
