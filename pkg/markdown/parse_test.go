package markdown

import (
	"strings"
	"testing"

	"github.com/loomlit/loom/pkg/literate"
)

const sampleDoc = `# Hello

Prose before the first chunk.

` + "```c file=\"out.c\"\n" +
	`int main() {
  <<body>>
}
` + "```\n" + `
More prose.

` + "```c name=\"body\"\n" +
	`return 0;
` + "```\n"

func TestParseExtractsFences(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc), "doc.md")
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if len(doc.Blocks) != 2 {
		t.Fatalf("Parse() blocks = %d, want 2", len(doc.Blocks))
	}

	root := doc.Blocks[0]
	if root.File != "out.c" {
		t.Errorf("first block File = %q, want %q", root.File, "out.c")
	}
	wantLines := []string{"int main() {", "  <<body>>", "}"}
	if len(root.Lines) != len(wantLines) {
		t.Fatalf("first block lines = %v, want %v", root.Lines, wantLines)
	}
	for i := range wantLines {
		if root.Lines[i] != wantLines[i] {
			t.Errorf("first block line %d = %q, want %q", i, root.Lines[i], wantLines[i])
		}
	}
	if root.Source.File != "doc.md" || root.Source.Line != 5 {
		t.Errorf("first block source = %+v, want doc.md:5", root.Source)
	}

	named := doc.Blocks[1]
	if named.Title != "body" {
		t.Errorf("second block Title = %q, want %q", named.Title, "body")
	}
	if named.Source.Line != 13 {
		t.Errorf("second block source line = %d, want 13", named.Source.Line)
	}
}

func TestParseBlocksFeedTheEngine(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc), "doc.md")
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	s := literate.NewSession(nil)
	if err := s.Collect(doc.Blocks); err != nil {
		t.Fatalf("Collect() unexpected error: %v", err)
	}
	if got := s.Roots(); len(got) != 1 || got[0] != "out.c" {
		t.Errorf("Roots() = %v, want [out.c]", got)
	}
	if !s.Exists("body") {
		t.Error("named chunk from fence attribute not defined")
	}
}

func TestParseFrontmatter(t *testing.T) {
	src := `+++
output_dir = "src"
line_directive = '#line {line} "{file}"'
+++

` + "```c file=\"main.c\"\n" + "int x;\n" + "```\n"

	doc, err := Parse([]byte(src), "doc.md")
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if doc.Config.OutputDir != "src" {
		t.Errorf("Config.OutputDir = %q, want %q", doc.Config.OutputDir, "src")
	}
	if !strings.Contains(doc.Config.LineDirective, "{line}") {
		t.Errorf("Config.LineDirective = %q, want template with {line}", doc.Config.LineDirective)
	}
	if len(doc.Blocks) != 1 {
		t.Fatalf("Parse() blocks = %d, want 1", len(doc.Blocks))
	}
	// Frontmatter lines still count toward source positions.
	if got := doc.Blocks[0].Source.Line; got != 6 {
		t.Errorf("block source line = %d, want 6", got)
	}
}

func TestParseUnterminatedFrontmatter(t *testing.T) {
	if _, err := Parse([]byte("+++\noutput_dir = \"x\"\n"), "doc.md"); err == nil {
		t.Fatal("Parse() expected error for unterminated frontmatter, got nil")
	}
}

func TestParseInfoAttributes(t *testing.T) {
	tests := []struct {
		name     string
		info     string
		wantLang string
		wantFile string
		wantName string
	}{
		{
			name:     "file attribute",
			info:     `c file="out.c"`,
			wantLang: "c",
			wantFile: "out.c",
		},
		{
			name:     "quoted name with spaces",
			info:     `go name="main loop"`,
			wantLang: "go",
			wantName: "main loop",
		},
		{
			name:     "unquoted value",
			info:     `python file=gen.py`,
			wantLang: "python",
			wantFile: "gen.py",
		},
		{
			name:     "language only",
			info:     "rust",
			wantLang: "rust",
		},
		{
			name: "empty info",
			info: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lang, attrs := parseInfo(tt.info)
			if lang != tt.wantLang {
				t.Errorf("parseInfo(%q) lang = %q, want %q", tt.info, lang, tt.wantLang)
			}
			if attrs["file"] != tt.wantFile {
				t.Errorf("parseInfo(%q) file = %q, want %q", tt.info, attrs["file"], tt.wantFile)
			}
			if attrs["name"] != tt.wantName {
				t.Errorf("parseInfo(%q) name = %q, want %q", tt.info, attrs["name"], tt.wantName)
			}
		})
	}
}

func TestParseFileMissing(t *testing.T) {
	if _, err := ParseFile("/nonexistent/doc.md"); err == nil {
		t.Fatal("ParseFile() expected error for missing file, got nil")
	}
}
