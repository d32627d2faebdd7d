package markdown

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var sectionHeader = regexp.MustCompile(`^<<(.+)>>=[ \t\r]*$`)

// RenderWoven re-emits the document source with weave annotations: an
// HTML anchor ahead of every annotated definition block and, for chunks
// defined in several parts, a caption line with previous/next links
// after the block. Run [literate.Session.Weave] over the document's
// blocks first; fences the annotator never touched render unchanged.
func RenderWoven(doc *Document, w io.Writer) error {
	before := make(map[int]*fence) // opening fence line -> fence
	after := make(map[int]*fence)  // closing fence line -> fence
	for i := range doc.fences {
		f := &doc.fences[i]
		if f.block.ID == "" {
			continue
		}
		before[f.startLine] = f
		after[f.endLine] = f
	}

	bw := bufio.NewWriter(w)
	for i, line := range doc.Lines {
		if f, ok := before[i]; ok {
			fmt.Fprintf(bw, "<a id=%q></a>\n", f.block.ID)
		}
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
		if f, ok := after[i]; ok && f.block.Parts > 1 {
			if _, err := bw.WriteString(caption(f) + "\n"); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// caption builds the navigation line rendered under a multi-part chunk
// definition.
func caption(f *fence) string {
	b := f.block
	title := b.Title
	if title == "" {
		title = b.File
	}
	if title == "" && len(b.Lines) > 0 {
		// Inline-section blocks carry their titles in the body.
		if m := sectionHeader.FindStringSubmatch(b.Lines[0]); m != nil {
			title = m[1]
		}
	}

	parts := []string{fmt.Sprintf("*⟨%s⟩ %d/%d*", title, b.Seq, b.Parts)}
	if b.PrevID != "" {
		parts = append(parts, fmt.Sprintf("[prev](#%s)", b.PrevID))
	}
	if b.NextID != "" {
		parts = append(parts, fmt.Sprintf("[next](#%s)", b.NextID))
	}
	return strings.Join(parts, " · ")
}
