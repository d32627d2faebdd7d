package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loomlit/loom/pkg/config"
	"github.com/loomlit/loom/pkg/literate"
)

// chunksCommand creates the chunk listing command.
func (c *CLI) chunksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chunks <document.md>",
		Short: "List the chunks a document defines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runChunks(args[0])
		},
	}
	return cmd
}

func (c *CLI) runChunks(path string) error {
	_, session, _, err := c.loadDocument(path, config.Config{})
	if err != nil {
		return err
	}

	roots := session.Roots()
	fmt.Println(StyleTitle.Render("Roots"))
	if len(roots) == 0 {
		printDetail("none")
	}
	for _, target := range roots {
		display := target
		if target == literate.StdoutTarget {
			display = "* (standard output)"
		}
		printDetail("%s  %s", StyleHighlight.Render(display), countSuffix(session.RootElements(target)))
	}

	fmt.Println(StyleTitle.Render("Named chunks"))
	named := 0
	for _, title := range session.Titles() {
		if !session.Exists(title) {
			continue
		}
		named++
		suffix := countSuffix(session.Elements(title))
		if parts := len(session.Blocks(title)); parts > 1 {
			suffix += fmt.Sprintf(", %d parts", parts)
		}
		printDetail("%s  %s", StyleValue.Render("<<"+title+">>"), suffix)
	}
	if named == 0 {
		printDetail("none")
	}
	return nil
}

// countSuffix summarizes a chunk body as line/reference counts.
func countSuffix(elems []literate.Element) string {
	lines, refs := 0, 0
	for _, el := range elems {
		switch el.(type) {
		case literate.Text:
			lines++
		case literate.Ref:
			refs++
		}
	}
	return StyleDim.Render(fmt.Sprintf("(%d lines, %d refs)", lines, refs))
}
