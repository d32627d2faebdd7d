package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loomlit/loom/pkg/chunkgraph"
	"github.com/loomlit/loom/pkg/config"
)

// Graph output formats.
const (
	formatDOT  = "dot"
	formatSVG  = "svg"
	formatPNG  = "png"
	formatJSON = "json"
)

var validGraphFormats = map[string]bool{
	formatDOT:  true,
	formatSVG:  true,
	formatPNG:  true,
	formatJSON: true,
}

// graphCommand creates the graph export command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "graph <document.md>",
		Short: "Export the chunk-reference graph",
		Long: `Export the document's chunk-reference graph.

Nodes are chunk titles, edges are references between chunks. Root chunks
and undefined reference targets are styled distinctly, which makes
dangling references visible before a tangle is attempted.

Formats: dot (default), svg, png, json.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validGraphFormats[format] {
				return fmt.Errorf("invalid format: %q (must be one of: dot, svg, png, json)", format)
			}
			return c.runGraph(cmd, args[0], format, output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatDOT, "output format: dot, svg, png, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, path, format, output string) error {
	_, session, _, err := c.loadDocument(path, config.Config{})
	if err != nil {
		return err
	}
	g := chunkgraph.Build(session)
	loggerFromContext(cmd.Context()).Debugf("built chunk graph: %d nodes, %d edges", len(g.Nodes), len(g.Edges))

	var data []byte
	switch format {
	case formatDOT:
		data = []byte(g.ToDOT())
	case formatJSON:
		var sb strings.Builder
		if err := g.WriteJSON(&sb); err != nil {
			return err
		}
		data = []byte(sb.String())
	case formatSVG, formatPNG:
		spin := newSpinner(cmd.Context(), fmt.Sprintf("Rendering %s...", format))
		spin.Start()
		if format == formatSVG {
			data, err = chunkgraph.RenderSVG(cmd.Context(), g.ToDOT())
		} else {
			data, err = chunkgraph.RenderPNG(cmd.Context(), g.ToDOT())
		}
		if err != nil {
			spin.StopWithError("Render failed")
			return fmt.Errorf("render %s: %w", format, err)
		}
		spin.Stop()
	}

	if output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Exported chunk graph (%d chunks, %d references)", len(g.Nodes), len(g.Edges))
	printFile(output)
	return nil
}
