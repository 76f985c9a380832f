package treesync

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const noNewline = "\n\\ No newline at end of file\n"

// Diff returns a unified diff from before to after with both sides
// labelled path. Identical texts give an empty string.
func Diff(path, before, after string) (string, error) {
	if before == after {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(before),
		B:        splitLines(after),
		FromFile: path,
		ToFile:   path,
		Context:  3,
	})
}

// splitLines keeps line terminators. An unterminated last line carries the
// usual "No newline" marker so it differs from its terminated form.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	last := len(lines) - 1
	if lines[last] == "" {
		return lines[:last]
	}
	lines[last] += noNewline
	return lines
}
