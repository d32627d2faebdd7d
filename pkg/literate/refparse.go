package literate

import "regexp"

// refLine matches a line that is nothing but a chunk reference: leading
// whitespace, <<target>>, and optional trailing whitespace. The leading
// whitespace is captured verbatim as the indentation to apply to the
// referenced chunk's expansion.
var refLine = regexp.MustCompile(`^([ \t]*)<<(.+)>>[ \t\r]*$`)

// sectionLine matches an inline chunk-section header of the form
// `<<Title>>=`, which splits a definition block into multiple chunk
// contributions.
var sectionLine = regexp.MustCompile(`^<<(.+)>>=[ \t\r]*$`)

// ClassifyLine classifies a single content line as either a literal
// [Text] line or a [Ref]. A line is a reference only if its entire
// content, after trailing whitespace is stripped, is leading whitespace
// followed by <<...>> and nothing else.
func ClassifyLine(line string) Element {
	if m := refLine.FindStringSubmatch(line); m != nil {
		return Ref{Target: m[2], Indent: m[1]}
	}
	return Text{Line: line}
}
