// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/pubtree/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders one line per pass and a closing total.
func (r *Renderer) RenderResult(result *display.PublishResult) error {
	var b strings.Builder
	for _, p := range result.Passes {
		fmt.Fprintf(&b, "%-10s %s -> %s: %s\n", p.Name, p.Source, p.Dest, Counts(p))
		for _, e := range p.Errors {
			fmt.Fprintf(&b, "  error: %s\n", e)
		}
	}
	total := result.Totals()
	if result.DryRun {
		fmt.Fprintf(&b, "dry run, nothing written: %s\n", Counts(total))
	} else {
		fmt.Fprintf(&b, "done: %s\n", Counts(total))
	}
	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

// Counts formats the non-zero counters of a pass, e.g.
// "2 written, 1 unchanged".
func Counts(p display.PassResult) string {
	parts := []string{fmt.Sprintf("%d written", p.Written)}
	add := func(n int, label string) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, label))
		}
	}
	add(p.Unchanged, "unchanged")
	add(p.Touched, "touched")
	add(p.Previewed, "previewed")
	add(p.Pending, "conflicts pending")
	add(p.Failed, "failed")
	return strings.Join(parts, ", ")
}
