package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/loomlit/loom/pkg/config"
	"github.com/loomlit/loom/pkg/literate"
)

// tangleOpts holds the command-line flags for the tangle command.
type tangleOpts struct {
	outputDir     string // overrides output_dir from loom.toml/frontmatter
	lineDirective string // overrides line_directive
	root          string // tangle a single root instead of all of them
	interactive   bool   // pick the root interactively
}

// tangleCommand creates the tangle command.
func (c *CLI) tangleCommand() *cobra.Command {
	var opts tangleOpts

	cmd := &cobra.Command{
		Use:   "tangle <document.md>",
		Short: "Expand chunk references into output files",
		Long: `Expand the document's root chunks into output artifacts.

Every root chunk (a code block bound to a file via its 'file' attribute,
or a space-free <<name>>= section) is recursively expanded: chunk
references are replaced by the referenced chunk's content, with the
reference line's indentation applied to the whole expansion. The special
target '*' writes to standard output.

Examples:
  loom tangle book.md                  # tangle every root
  loom tangle book.md --root out.c     # tangle one root
  loom tangle book.md --select         # pick a root interactively`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTangle(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "d", "", "output subdirectory (overrides document config)")
	cmd.Flags().StringVar(&opts.lineDirective, "line-directive", "", "location directive template with {line} and {file} slots")
	cmd.Flags().StringVar(&opts.root, "root", "", "tangle only the given root target")
	cmd.Flags().BoolVar(&opts.interactive, "select", false, "select the root to tangle interactively")

	return cmd
}

func (c *CLI) runTangle(cmd *cobra.Command, path string, opts tangleOpts) error {
	tracker := newProgress(c.Logger)

	_, session, cfg, err := c.loadDocument(path, config.Config{
		OutputDir:     opts.outputDir,
		LineDirective: opts.lineDirective,
	})
	if err != nil {
		return err
	}

	roots := session.Roots()
	if len(roots) == 0 {
		printInfo("%s defines no root chunks, nothing to tangle", path)
		return nil
	}

	if opts.interactive {
		selected, err := pickRoot(roots)
		if err != nil {
			return err
		}
		if selected == "" {
			printInfo("no root selected")
			return nil
		}
		opts.root = selected
	}

	outDir := filepath.Dir(path)
	if cfg.OutputDir != "" {
		outDir = filepath.Join(outDir, cfg.OutputDir)
	}
	tangler := literate.NewTangler(session, literate.TangleOptions{
		Dir:           outDir,
		LineDirective: cfg.LineDirective,
		Logger:        c.Logger,
	})

	if opts.root != "" {
		roots = []string{opts.root}
		if err := tangler.TangleRoot(opts.root); err != nil {
			printError("tangle failed")
			return fmt.Errorf("tangle %s: %w", opts.root, err)
		}
	} else if err := tangler.TangleAll(); err != nil {
		printError("tangle failed")
		return fmt.Errorf("tangle %s: %w", path, err)
	}

	tracker.done(fmt.Sprintf("Tangled %d root(s)", len(roots)))
	printSuccess("Tangled %s", path)
	for _, target := range roots {
		if target == literate.StdoutTarget {
			printDetail("wrote standard output")
			continue
		}
		printFile(filepath.Join(outDir, target))
	}
	return nil
}
