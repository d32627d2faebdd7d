package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loomlit/loom/pkg/config"
	"github.com/loomlit/loom/pkg/markdown"
)

// weaveCommand creates the weave command.
func (c *CLI) weaveCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "weave <document.md>",
		Short: "Render the document with navigation annotations",
		Long: `Annotate multi-part chunk definitions with sequence numbers and
previous/next links, and render the woven document.

Chunks defined by several blocks across the document get a stable anchor
per block and navigation links between consecutive parts. The woven
markdown is written to --output, or to <document>.woven.md by default.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWeave(args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "woven document path ('-' for stdout)")

	return cmd
}

func (c *CLI) runWeave(path, output string) error {
	tracker := newProgress(c.Logger)

	doc, session, _, err := c.loadDocument(path, config.Config{})
	if err != nil {
		return err
	}

	session.Weave()

	if output == "-" {
		if err := markdown.RenderWoven(doc, os.Stdout); err != nil {
			return fmt.Errorf("weave %s: %w", path, err)
		}
		return nil
	}

	if output == "" {
		output = strings.TrimSuffix(path, ".md") + ".woven.md"
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	defer f.Close()
	if err := markdown.RenderWoven(doc, f); err != nil {
		return fmt.Errorf("weave %s: %w", path, err)
	}

	tracker.done(fmt.Sprintf("Wove %d chunk title(s)", len(session.Titles())))
	printSuccess("Wove %s", path)
	printFile(output)
	return nil
}
