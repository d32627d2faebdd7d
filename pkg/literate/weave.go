package literate

import (
	"fmt"
	"strings"
)

// Weave annotates the document's definition blocks with sequential
// navigation metadata. Every contributing block receives a 1-based
// sequence number within its title and a stable anchor identifier
// derived from (title, sequence); blocks of titles with more than one
// contribution additionally link to their neighbors in document order.
// The mutation is in place on the blocks handed to [Session.Collect];
// rendering the links into markup is the frontend's job.
func (s *Session) Weave() {
	// Anchor assignment first, so neighbor links always point at
	// finalized identifiers. Blocks defining several chunks keep the
	// anchor of their first contribution.
	used := make(map[string]bool)
	for _, title := range s.defOrder {
		for i, b := range s.defs[title] {
			if b.ID != "" {
				used[b.ID] = true
				continue
			}
			b.ID = uniqueAnchor(title, i+1, used)
		}
	}

	for _, title := range s.defOrder {
		blocks := s.defs[title]
		n := len(blocks)
		for i, b := range blocks {
			if b.Seq != 0 {
				continue // already annotated via an earlier title
			}
			b.Seq = i + 1
			b.Parts = n
			if n < 2 {
				continue
			}
			if i > 0 {
				b.PrevID = blocks[i-1].ID
			}
			if i < n-1 {
				b.NextID = blocks[i+1].ID
			}
		}
	}
}

// uniqueAnchor derives a deterministic, document-unique anchor from a
// chunk title and its sequence index.
func uniqueAnchor(title string, seq int, used map[string]bool) string {
	anchor := fmt.Sprintf("%s-%d", slugify(title), seq)
	for used[anchor] {
		anchor += "-x"
	}
	used[anchor] = true
	return anchor
}

// slugify sanitizes a chunk title into safe anchor syntax: lowercase
// alphanumerics with single dashes for everything else.
func slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
