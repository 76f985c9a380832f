package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/pubtree/pkg/style"
)

// Printer writes preview output of the render pass. It implements
// treesync.Printer.
type Printer struct {
	out    io.Writer
	styled bool
}

// NewPrinter returns a printer writing to out. Diff lines are colored
// when format is FormatTerminal, or FormatAuto on a color terminal.
func NewPrinter(out io.Writer, format Format) *Printer {
	if format == FormatAuto {
		format = DetectFormat(out)
	}
	return &Printer{out: out, styled: format == FormatTerminal}
}

// PrintDiff writes a unified diff.
func (p *Printer) PrintDiff(dest, diff string) {
	if !p.styled {
		fmt.Fprint(p.out, ensureNewline(diff))
		return
	}
	lines := strings.Split(strings.TrimSuffix(diff, "\n"), "\n")
	for _, line := range lines {
		fmt.Fprintln(p.out, style.DiffLine(line))
	}
}

// PrintCreated reports a destination that the run creates.
func (p *Printer) PrintCreated(dest string) {
	if !p.styled {
		fmt.Fprintf(p.out, "created: %s\n", dest)
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", style.SuccessStyle.Render("created:"), style.PathStyle.Render(dest))
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
