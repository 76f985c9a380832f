// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/pubtree/pkg/style"
	"github.com/arthur-debert/pubtree/pkg/ui/display"
	"github.com/arthur-debert/pubtree/pkg/ui/text"
)

// Renderer provides styled terminal output
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

// RenderResult renders a styled block per pass and a closing total.
func (r *Renderer) RenderResult(result *display.PublishResult) error {
	var b strings.Builder
	for _, p := range result.Passes {
		status := style.SuccessStyle.Render("✓")
		if p.Failed > 0 {
			status = style.ErrorStyle.Render("✗")
		} else if p.Pending > 0 {
			status = style.WarningStyle.Render("!")
		}
		fmt.Fprintf(&b, "%s %s %s %s\n",
			status,
			style.TitleStyle.Render(p.Name),
			style.PathStyle.Render(p.Dest),
			style.MutedStyle.Render(text.Counts(p)))
		for _, e := range p.Errors {
			fmt.Fprintf(&b, "    %s\n", style.ErrorStyle.Render(e))
		}
	}

	total := result.Totals()
	if result.DryRun {
		fmt.Fprintf(&b, "%s %s\n", style.WarningStyle.Render("dry run, nothing written:"), text.Counts(total))
	} else {
		fmt.Fprintf(&b, "%s %s\n", style.SuccessStyle.Render("done!"), text.Counts(total))
	}
	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error with styling
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "%s %v\n", style.ErrorStyle.Render("Error:"), err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, style.InfoStyle.Render(msg))
	return err
}
