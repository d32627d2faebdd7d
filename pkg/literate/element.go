// Package literate implements the tangle/weave engine at the heart of
// loom: a registry of named code chunks collected from a document's
// definition blocks, recursive reference expansion into output artifacts
// (tangle), and navigation-link annotation of multi-part chunk
// definitions (weave).
//
// The package is frontend-agnostic. It consumes an ordered sequence of
// [Block] values produced by a document parser (see pkg/markdown) and
// never touches markup syntax itself.
package literate

// Element is one entry in a chunk's body. It is a closed union: the only
// implementations are [Marker], [Text], and [Ref]. Lines are classified
// exactly once, at collection time, so the expansion algorithm never
// re-parses content during recursive traversal.
type Element interface {
	isElement()
}

// Marker records the source position of the content that follows it.
// Markers emit nothing directly; when a line-directive template is
// configured, the tangler formats one directive line per marker.
type Marker struct {
	File string // originating document path
	Line int    // line number of the defining fence or section header
}

// Text is a literal output line, without its trailing newline.
type Text struct {
	Line string
}

// Ref is a line consisting solely of a reference to another chunk.
// Target may be abbreviated (ellipsis suffix); it is resolved against
// the full chunk-name set during expansion. Indent is the leading
// whitespace captured verbatim from the reference line and is prefixed
// to everything the referenced chunk emits.
type Ref struct {
	Target string
	Indent string
}

func (Marker) isElement() {}
func (Text) isElement()   {}
func (Ref) isElement()    {}
