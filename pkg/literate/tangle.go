package literate

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// StdoutTarget is the sentinel root target that tangles to the process's
// standard output stream instead of a file.
const StdoutTarget = "*"

// TangleOptions configures a [Tangler].
type TangleOptions struct {
	// Dir is the destination directory for file artifacts, typically
	// join(docDir, outputSubdir). Created if missing.
	Dir string

	// LineDirective is the template for emitted location directives,
	// with named slots {line} and {file}. Empty disables emission.
	LineDirective string

	// Stdout receives the output of StdoutTarget roots. Defaults to
	// os.Stdout.
	Stdout io.Writer

	// Logger receives per-root progress at debug level. Defaults to the
	// charm default logger.
	Logger *log.Logger
}

// Tangler recursively expands root chunks into output artifacts. All
// chunk contributions must be collected before tangling begins; the
// session is only read, never mutated.
type Tangler struct {
	session   *Session
	dir       string
	directive string
	stdout    io.Writer
	logger    *log.Logger
}

// NewTangler creates a tangler over a fully collected session.
func NewTangler(s *Session, opts TangleOptions) *Tangler {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Tangler{
		session:   s,
		dir:       opts.Dir,
		directive: opts.LineDirective,
		stdout:    opts.Stdout,
		logger:    opts.Logger,
	}
}

// TangleAll tangles every root chunk in document order. Roots share one
// failure domain: the first failing root aborts the run.
func (t *Tangler) TangleAll() error {
	for _, target := range t.session.Roots() {
		if err := t.TangleRoot(target); err != nil {
			return err
		}
	}
	return nil
}

// TangleRoot expands a single root chunk into its destination. File
// destinations are written atomically: output goes to a temporary file
// that is renamed into place only on success, so a failed tangle never
// leaves a partial artifact. When the destination already holds
// identical content the existing file is left untouched, preserving its
// modification time.
func (t *Tangler) TangleRoot(target string) error {
	elems := t.session.RootElements(target)
	if elems == nil {
		return fmt.Errorf("%w: no root chunk %q", ErrUndefinedReference, target)
	}

	if target == StdoutTarget {
		w := bufio.NewWriter(t.stdout)
		if err := t.expand(w, target, elems, "", map[string]bool{target: true}); err != nil {
			return err
		}
		return w.Flush()
	}

	if t.dir != "" {
		if err := os.MkdirAll(t.dir, 0o755); err != nil {
			return fmt.Errorf("create output dir %s: %w", t.dir, err)
		}
	}
	dest := filepath.Join(t.dir, target)
	if parent := filepath.Dir(dest); parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return fmt.Errorf("create output dir %s: %w", parent, err)
		}
	}

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	if err := t.expand(w, target, elems, "", map[string]bool{target: true}); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if unchanged(dest, buf.Bytes()) {
		t.logger.Debugf("unchanged %s", dest)
		return nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".loom-*")
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", dest, err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename %s: %w", dest, err)
	}
	return nil
}

// cursor tracks the last-known source position while expanding a single
// chunk. It starts unset; markers set it, text lines advance it.
type cursor struct {
	file string
	line int
	set  bool
}

// expand iterates a chunk's elements in order, writing text with the
// accumulated indentation and recursing into references. Indentation
// composes additively across nesting depth. The active map holds every
// title on the current expansion path; encountering one again is a
// cycle. The same chunk reached via non-overlapping branches of a
// common ancestor is legal, which is why entries are removed again when
// a nested expansion returns.
func (t *Tangler) expand(w *bufio.Writer, title string, elems []Element, indent string, active map[string]bool) error {
	var cur cursor
	for _, el := range elems {
		switch e := el.(type) {
		case Marker:
			cur = cursor{file: e.File, line: e.Line, set: true}
			if err := t.writeDirective(w, cur); err != nil {
				return err
			}

		case Text:
			cur.line++
			if e.Line == "" {
				if err := w.WriteByte('\n'); err != nil {
					return err
				}
				break
			}
			if _, err := w.WriteString(indent + e.Line + "\n"); err != nil {
				return err
			}

		case Ref:
			cur.line++
			resolved, err := t.session.resolve(e.Target)
			if err != nil {
				return fmt.Errorf("in <<%s>>: %w", title, err)
			}
			if active[resolved] {
				return fmt.Errorf("%w: <<%s>> referenced from <<%s>>", ErrRecursiveReference, resolved, title)
			}
			if !t.session.Exists(resolved) {
				return fmt.Errorf("%w: <<%s>> referenced from <<%s>>", ErrUndefinedReference, resolved, title)
			}
			active[resolved] = true
			err = t.expand(w, resolved, t.session.Elements(resolved), indent+e.Indent, active)
			delete(active, resolved)
			if err != nil {
				return err
			}
			// Restore the outer chunk's position so line numbering in
			// the artifact stays consistent after the nested expansion.
			if err := t.writeDirective(w, cur); err != nil {
				return err
			}

		default:
			return fmt.Errorf("%w: %T in <<%s>>", ErrMalformedElement, el, title)
		}
	}
	return nil
}

func (t *Tangler) writeDirective(w *bufio.Writer, cur cursor) error {
	if t.directive == "" || !cur.set {
		return nil
	}
	line := strings.NewReplacer(
		"{line}", strconv.Itoa(cur.line),
		"{file}", cur.file,
	).Replace(t.directive)
	_, err := w.WriteString(line + "\n")
	return err
}

// unchanged reports whether path already holds exactly the given
// content, compared by SHA-256.
func unchanged(path string, content []byte) bool {
	existing, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return sha256.Sum256(existing) == sha256.Sum256(content)
}
