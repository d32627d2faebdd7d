// Package cli implements the loom command-line interface.
//
// The main commands are:
//   - tangle: expand chunk references into output artifacts
//   - weave:  render the document with navigation annotations
//   - graph:  export the chunk-reference graph (dot, svg, png, json)
//   - chunks: list the chunks a document defines
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context for structured progress tracking.
package cli

import (
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/loomlit/loom/pkg/buildinfo"
	"github.com/loomlit/loom/pkg/config"
	"github.com/loomlit/loom/pkg/literate"
	"github.com/loomlit/loom/pkg/markdown"
)

// appName is the application name used for display and config lookup.
const appName = "loom"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Loom tangles and weaves literate markdown documents",
		Long:         `Loom is a literate-programming tool: code chunks defined in a markdown document are recursively expanded into output files (tangle), and multi-part chunk definitions are cross-linked for readable rendering (weave).`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.tangleCommand())
	root.AddCommand(c.weaveCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.chunksCommand())

	return root
}

// loadDocument parses a literate document and collects its chunks into a
// fresh session. Host configuration is resolved in precedence order:
// loom.toml next to the document, then document frontmatter, then the
// flag overrides the caller hands in.
func (c *CLI) loadDocument(path string, overrides config.Config) (*markdown.Document, *literate.Session, config.Config, error) {
	doc, err := markdown.ParseFile(path)
	if err != nil {
		return nil, nil, config.Config{}, err
	}

	fileCfg, err := config.Load(filepath.Join(doc.Dir, config.FileName))
	if err != nil {
		return nil, nil, config.Config{}, err
	}
	cfg := fileCfg.Merge(doc.Config).Merge(overrides)

	session := literate.NewSession(c.Logger)
	if err := session.Collect(doc.Blocks); err != nil {
		return nil, nil, config.Config{}, err
	}
	return doc, session, cfg, nil
}
