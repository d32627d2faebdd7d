// Package markdown is loom's document frontend. It segments a literate
// markdown document into the definition blocks consumed by pkg/literate
// and renders the woven document back out with navigation annotations.
//
// Fenced code blocks are chunk-defining. The fence info string carries
// attributes: `file="out.c"` binds the block to an output artifact,
// `name="chunk title"` defines a named chunk, and a block whose first
// line is `<<Title>>=` uses inline section syntax. An optional leading
// TOML frontmatter (+++ ... +++) supplies document configuration.
package markdown

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/loomlit/loom/pkg/config"
	"github.com/loomlit/loom/pkg/literate"
)

// frontmatterDelim opens and closes the TOML frontmatter section.
const frontmatterDelim = "+++"

// fence ties a definition block to its position in the document so the
// woven renderer can re-emit the source with annotations in place.
type fence struct {
	block     *literate.Block
	startLine int // 0-based index of the opening fence line
	endLine   int // 0-based index of the closing fence line
}

// Document is a parsed literate markdown file.
type Document struct {
	Path   string
	Dir    string
	Lines  []string // raw source split into lines
	Config config.Config
	Blocks []*literate.Block

	fences []fence
}

// ParseFile reads and parses a literate document from disk.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses literate markdown source. The name is used for source
// locations and error messages.
func Parse(source []byte, name string) (*Document, error) {
	doc := &Document{
		Path:  name,
		Dir:   dirOf(name),
		Lines: splitLines(source),
	}

	body, bodyOffset, err := doc.extractFrontmatter(source)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))
	starts := lineStarts(body)

	err = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		doc.addFence(fcb, body, starts, bodyOffset)
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse document %s: %w", name, err)
	}
	return doc, nil
}

// extractFrontmatter strips a leading +++ TOML block, returning the
// remaining source and the number of lines removed.
func (d *Document) extractFrontmatter(source []byte) ([]byte, int, error) {
	if len(d.Lines) == 0 || strings.TrimRight(d.Lines[0], "\r") != frontmatterDelim {
		return source, 0, nil
	}
	for i := 1; i < len(d.Lines); i++ {
		if strings.TrimRight(d.Lines[i], "\r") != frontmatterDelim {
			continue
		}
		raw := strings.Join(d.Lines[1:i], "\n")
		if err := toml.Unmarshal([]byte(raw), &d.Config); err != nil {
			return nil, 0, fmt.Errorf("parse frontmatter in %s: %w", d.Path, err)
		}
		body := []byte(strings.Join(d.Lines[i+1:], "\n"))
		return body, i + 1, nil
	}
	return nil, 0, fmt.Errorf("parse frontmatter in %s: unterminated %s block", d.Path, frontmatterDelim)
}

// addFence converts one fenced code block into a definition block.
func (d *Document) addFence(fcb *ast.FencedCodeBlock, body []byte, starts []int, bodyOffset int) {
	segs := fcb.Lines()
	if segs.Len() == 0 && fcb.Info == nil {
		return // empty bare fence, nothing to define
	}

	lines := make([]string, 0, segs.Len())
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		lines = append(lines, strings.TrimRight(string(seg.Value(body)), "\n"))
	}

	var info string
	var openLine int
	if fcb.Info != nil {
		info = string(fcb.Info.Segment.Value(body))
		openLine = lineAt(starts, fcb.Info.Segment.Start)
	} else {
		openLine = lineAt(starts, segs.At(0).Start) - 1
	}

	endLine := openLine + 1
	if segs.Len() > 0 {
		endLine = lineAt(starts, segs.At(segs.Len()-1).Stop-1) + 1
	}

	_, attrs := parseInfo(info)
	b := &literate.Block{
		Style: literate.StyleChunk,
		File:  attrs["file"],
		Title: attrs["name"],
		Lines: lines,
		// 1-based position of the opening fence in the original file.
		Source: literate.Location{File: d.Path, Line: openLine + bodyOffset + 1},
	}
	d.Blocks = append(d.Blocks, b)
	d.fences = append(d.fences, fence{
		block:     b,
		startLine: openLine + bodyOffset,
		endLine:   endLine + bodyOffset,
	})
}

// parseInfo splits a fence info string into the language word and
// key=value attributes. Values may be double-quoted to contain spaces.
func parseInfo(info string) (lang string, attrs map[string]string) {
	attrs = make(map[string]string)
	for _, tok := range splitQuoted(strings.TrimSpace(info)) {
		k, v, found := strings.Cut(tok, "=")
		if !found {
			if lang == "" {
				lang = tok
			}
			continue
		}
		attrs[k] = strings.Trim(v, `"`)
	}
	return lang, attrs
}

// splitQuoted splits on spaces, keeping double-quoted runs intact.
func splitQuoted(s string) []string {
	var toks []string
	var cur strings.Builder
	quoted := false
	for _, r := range s {
		switch {
		case r == '"':
			quoted = !quoted
			cur.WriteRune(r)
		case r == ' ' && !quoted:
			if cur.Len() > 0 {
				toks = append(toks, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		toks = append(toks, cur.String())
	}
	return toks
}

// lineStarts returns the byte offset of every line start.
func lineStarts(src []byte) []int {
	starts := []int{0}
	for i, c := range src {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineAt returns the 0-based line index containing the byte offset.
func lineAt(starts []int, offset int) int {
	return sort.Search(len(starts), func(i int) bool { return starts[i] > offset }) - 1
}

func splitLines(src []byte) []string {
	if len(src) == 0 {
		return nil
	}
	s := strings.TrimSuffix(string(src), "\n")
	return strings.Split(s, "\n")
}

func dirOf(path string) string {
	return filepath.Dir(path)
}
