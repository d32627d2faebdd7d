package literate

// StyleChunk marks a definition block as chunk-defining. Blocks with any
// other style are ignored by [Session.Collect].
const StyleChunk = "chunk"

// Location is a source position within the host document.
type Location struct {
	File string
	Line int
}

// Block is one definition block handed to the engine by the document
// frontend. Exactly one of File or Title identifies the chunk being
// defined; when both are empty the block may still define chunks through
// inline `<<Title>>=` section headers in its first line.
//
// The weave fields are written in place by [Session.Weave] and read back
// by the frontend when rendering the woven document.
type Block struct {
	Style  string   // block kind; only StyleChunk is collected
	File   string   // output target when the block defines a root chunk
	Title  string   // chunk title (possibly abbreviated) when File is empty
	Lines  []string // literal content lines, in order
	Source Location // position of the block's opening fence

	// Weave metadata.
	ID     string // stable anchor identifier
	Seq    int    // 1-based index among the title's contributing blocks
	Parts  int    // total contributing blocks for the title
	PrevID string // anchor of the previous contributing block, if any
	NextID string // anchor of the next contributing block, if any
}
