// Package config loads loom configuration. Defaults come from an
// optional loom.toml next to the document; document frontmatter
// attributes override the file, and command-line flags override both.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileName is the per-project configuration file loom looks for in the
// document's directory.
const FileName = "loom.toml"

// Config holds the host-supplied knobs the engine consumes.
type Config struct {
	// OutputDir is the subdirectory (relative to the document) that
	// tangled artifacts are written under. Empty means the document's
	// own directory.
	OutputDir string `toml:"output_dir"`

	// LineDirective is the location-directive template with {line} and
	// {file} slots. Empty disables directive emission.
	LineDirective string `toml:"line_directive"`
}

// Load reads a TOML configuration file. A missing file is not an error
// and yields the zero config.
func Load(path string) (Config, error) {
	var c Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return c, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}

// Merge overlays o on top of c: every non-empty field of o wins.
func (c Config) Merge(o Config) Config {
	if o.OutputDir != "" {
		c.OutputDir = o.OutputDir
	}
	if o.LineDirective != "" {
		c.LineDirective = o.LineDirective
	}
	return c
}
