package literate

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// Chunk is a named, append-only sequence of elements accumulated from
// one or more definition blocks.
type Chunk struct {
	Title    string
	Elements []Element
}

// Session holds all per-document state: the named-chunk and root-chunk
// registries, the chunk-name set used for abbreviation resolution, and
// the per-title definition-block bookkeeping consumed by weave. A
// Session is constructed per document; there is no shared global state,
// so isolated or repeated runs never interfere.
//
// Session is not safe for concurrent use. The engine is strictly staged:
// one full [Session.Collect] pass must complete before any tangle or
// weave operation, because forward references require full knowledge of
// every chunk contribution.
type Session struct {
	chunks    map[string]*Chunk  // named chunks, keyed by full title
	roots     map[string]*Chunk  // root chunks, keyed by output target
	rootOrder []string           // targets in document order
	names     map[string]struct{} // every title defined or referenced

	defs     map[string][]*Block // per-title contributing blocks, document order
	defOrder []string            // titles in first-contribution order

	logger *log.Logger
}

// NewSession creates an empty session. A nil logger falls back to the
// default charm logger.
func NewSession(logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	return &Session{
		chunks: make(map[string]*Chunk),
		roots:  make(map[string]*Chunk),
		names:  make(map[string]struct{}),
		defs:   make(map[string][]*Block),
		logger: logger,
	}
}

// DefineRoot creates a root chunk bound to the given output target.
// Returns [ErrDuplicateRoot] if the target already has a definition.
func (s *Session) DefineRoot(target string, elements []Element) error {
	if _, ok := s.roots[target]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateRoot, target)
	}
	s.roots[target] = &Chunk{Title: target, Elements: elements}
	s.rootOrder = append(s.rootOrder, target)
	return nil
}

// Append adds elements to the named chunk with the given full title,
// creating the chunk on first use. Contributions concatenate in call
// order and are never reordered.
func (s *Session) Append(title string, elements []Element) {
	c, ok := s.chunks[title]
	if !ok {
		c = &Chunk{Title: title}
		s.chunks[title] = c
	}
	c.Elements = append(c.Elements, elements...)
	s.names[title] = struct{}{}
}

// Exists reports whether a named chunk with the given full title has
// been defined.
func (s *Session) Exists(title string) bool {
	_, ok := s.chunks[title]
	return ok
}

// Elements returns the ordered element sequence of the named chunk, or
// nil if the title is undefined.
func (s *Session) Elements(title string) []Element {
	if c, ok := s.chunks[title]; ok {
		return c.Elements
	}
	return nil
}

// Roots returns the root targets in document order.
func (s *Session) Roots() []string { return s.rootOrder }

// RootElements returns the element sequence of the root chunk bound to
// target, or nil if no such root exists.
func (s *Session) RootElements(target string) []Element {
	if c, ok := s.roots[target]; ok {
		return c.Elements
	}
	return nil
}

// Titles returns every chunk title that received at least one
// contribution (roots included), in first-contribution order.
func (s *Session) Titles() []string { return s.defOrder }

// Blocks returns the definition blocks that contributed to title, in
// document order.
func (s *Session) Blocks(title string) []*Block { return s.defs[title] }

// Names returns the chunk-name set: every named-chunk title ever defined
// or referenced by a full (unabbreviated) title.
func (s *Session) Names() map[string]struct{} { return s.names }

// resolve resolves a possibly abbreviated title against the current
// chunk-name set.
func (s *Session) resolve(raw string) (string, error) {
	return ResolveTitle(raw, s.names)
}

// Collect runs the single sequential scan over the document's definition
// blocks, populating the chunk registries and the per-title block lists.
// Non-chunk blocks are ignored. Order matters: abbreviated definition
// titles resolve against the names known up to that point.
func (s *Session) Collect(blocks []*Block) error {
	for _, b := range blocks {
		if b.Style != StyleChunk {
			continue
		}
		if err := s.collectBlock(b); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) collectBlock(b *Block) error {
	switch {
	case b.File != "":
		elems := s.parseLines(b.Lines, b.Source)
		if err := s.DefineRoot(b.File, elems); err != nil {
			return fmt.Errorf("%s:%d: %w", b.Source.File, b.Source.Line, err)
		}
		s.recordDef(b.File, b)

	case len(b.Lines) > 0 && sectionLine.MatchString(b.Lines[0]):
		if err := s.collectSections(b); err != nil {
			return err
		}

	case b.Title != "":
		title, err := s.resolve(b.Title)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", b.Source.File, b.Source.Line, err)
		}
		s.Append(title, s.parseLines(b.Lines, b.Source))
		s.recordDef(title, b)

	default:
		s.logger.Debugf("skipping untitled chunk block at %s:%d", b.Source.File, b.Source.Line)
	}
	return nil
}

// collectSections splits a block whose first line is a `<<Title>>=`
// header into one chunk contribution per section. A section title
// containing no whitespace is an output target (root chunk); a title
// containing whitespace is a named chunk. This lets short, space-free
// identifiers double as filenames while descriptive multi-word titles
// remain internal fragments.
func (s *Session) collectSections(b *Block) error {
	i := 0
	for i < len(b.Lines) {
		m := sectionLine.FindStringSubmatch(b.Lines[i])
		if m == nil {
			// Unreachable for i==0 by the caller's guard; stray content
			// between sections belongs to the preceding one.
			return fmt.Errorf("%s:%d: expected <<Title>>= section header", b.Source.File, b.Source.Line+i)
		}
		title, err := s.resolve(m[1])
		if err != nil {
			return fmt.Errorf("%s:%d: %w", b.Source.File, b.Source.Line+i, err)
		}

		start := i + 1
		end := start
		for end < len(b.Lines) && !sectionLine.MatchString(b.Lines[end]) {
			end++
		}

		loc := Location{File: b.Source.File, Line: b.Source.Line + i}
		elems := s.parseLines(b.Lines[start:end], loc)

		if strings.ContainsAny(title, " \t") {
			s.Append(title, elems)
		} else {
			if err := s.DefineRoot(title, elems); err != nil {
				return fmt.Errorf("%s:%d: %w", b.Source.File, b.Source.Line+i, err)
			}
		}
		s.recordDef(title, b)
		i = end
	}
	return nil
}

// parseLines classifies raw content lines once, at collection time, and
// prefixes the result with a source marker so tangle can emit line
// directives. Full reference targets join the chunk-name set as they
// are seen, which is what allows abbreviations to resolve to titles that
// are referenced before (or without ever) being defined.
func (s *Session) parseLines(lines []string, loc Location) []Element {
	elems := make([]Element, 0, len(lines)+1)
	elems = append(elems, Marker{File: loc.File, Line: loc.Line})
	for _, line := range lines {
		el := ClassifyLine(line)
		if ref, ok := el.(Ref); ok && !strings.HasSuffix(ref.Target, abbrevSuffix) {
			s.names[ref.Target] = struct{}{}
		}
		elems = append(elems, el)
	}
	return elems
}

func (s *Session) recordDef(title string, b *Block) {
	if _, ok := s.defs[title]; !ok {
		s.defOrder = append(s.defOrder, title)
	}
	s.defs[title] = append(s.defs[title], b)
}
