package weave_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"lem/internal/segment"
	"lem/internal/weave"
)

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  weave.Options
		want  string
	}{
		{
			name:  "comments become prose",
			input: "// Everything is straightforward here\nfun main() {}\n",
			opts:  weave.Options{Language: "kotlin"},
			want:  "Everything is straightforward here\n\n```kotlin\nfun main() {}\n```\n",
		},
		{
			name:  "delimited comment is trimmed",
			input: "/*\n    When all of the results are available\n */\nx()",
			opts:  weave.Options{},
			want:  "When all of the results are available\n\n```\nx()\n```\n",
		},
		{
			name:  "todo comments are skipped",
			input: "// todo: sloppy\nval a = 1\n",
			opts:  weave.DefaultOptions(),
			want:  "```\nval a = 1\n```\n",
		},
		{
			name:  "blank code is skipped",
			input: "// a\n\n// b",
			opts:  weave.Options{},
			want:  "a\n\nb\n",
		},
		{
			name:  "stray close stays in code",
			input: "/* open */ x /* still open */ */",
			opts:  weave.Options{},
			want:  "open\n\n```\n x\n```\n\nstill open\n\n```\n */\n```\n",
		},
		{
			name:  "empty comment produces nothing",
			input: "/**/",
			opts:  weave.Options{},
			want:  "",
		},
		{
			name:  "empty input",
			input: "",
			opts:  weave.Options{},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := weave.Markdown(segment.ParseString(tt.input), tt.opts)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("markdown mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnterminatedComment(t *testing.T) {
	got := weave.Markdown(segment.ParseString("/* tail */"[:8]), weave.Options{})
	if got != "tail\n" {
		t.Fatalf("got %q", got)
	}
}

func TestSnippetsAndReuse(t *testing.T) {
	w := weave.New(weave.Options{Language: "c"})
	segment.Walk(segment.ParseString("/* a */b"), w)
	segment.Walk(segment.ParseString("// c\n"), w)

	want := []weave.Snippet{{Kind: segment.LineComment, Markdown: "c"}}
	if diff := cmp.Diff(want, w.Snippets()); diff != "" {
		t.Errorf("snippets mismatch (-want +got):\n%s", diff)
	}
}

func TestLanguageForPath(t *testing.T) {
	cases := map[string]string{
		"src/Main.kt":      "kotlin",
		"a/b/lib.H":        "c",
		"app.ts":           "typescript",
		"README":           "",
		"notes.md":         "",
		"build.gradle.kts": "kotlin",
	}
	for path, want := range cases {
		if got := weave.LanguageForPath(path); got != want {
			t.Errorf("LanguageForPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	doc := segment.ParseString("// Everything is <b>fine</b>\nif (a < b) {}\n")
	if err := weave.HTML(&buf, doc, weave.Options{Language: "kotlin"}); err != nil {
		t.Fatal(err)
	}
	want := "<p>Everything is <!-- raw HTML omitted -->fine<!-- raw HTML omitted --></p>\n" +
		"<pre><code class=\"language-kotlin\">if (a &lt; b) {}\n</code></pre>\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("html mismatch (-want +got):\n%s", diff)
	}
}

func TestHTMLRendersSnippetsSeparately(t *testing.T) {
	var buf bytes.Buffer
	// незакрытый fence в комментарии не должен съесть следующий код
	if err := weave.HTML(&buf, segment.ParseString("// ```\nx\n"), weave.Options{}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), "<pre><code>x\n</code></pre>\n") {
		t.Errorf("code snippet lost:\n%s", buf.String())
	}
}
