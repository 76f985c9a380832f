// Package confirmations asks the operator how to settle publish conflicts.
package confirmations

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/pubtree/pkg/logging"
	"github.com/arthur-debert/pubtree/pkg/treesync"
)

// ConsoleResolver asks on a console whether an edited destination may be
// overwritten. It implements treesync.ConflictResolver.
type ConsoleResolver struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsoleResolver creates a resolver reading answers from in and
// writing prompts to out.
func NewConsoleResolver(in io.Reader, out io.Writer) *ConsoleResolver {
	return &ConsoleResolver{in: bufio.NewReader(in), out: out}
}

// Resolve prompts once for the conflict. Only "y" or "yes" overwrite; any
// other answer, an empty line or a read failure keeps the destination.
func (c *ConsoleResolver) Resolve(existing, incoming treesync.FileMeta) treesync.Resolution {
	logger := logging.GetLogger("ui.confirmations")

	fmt.Fprintf(c.out, "%s was edited, override? (y/n): ", existing.Path)

	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(c.out)
		logger.Warn().Err(err).Str("path", existing.Path).Msg("no answer, keeping destination")
		return treesync.ResolutionSkip
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	logger.Debug().
		Str("path", existing.Path).
		Str("source", incoming.Path).
		Str("answer", answer).
		Msg("conflict answer")

	if answer == "y" || answer == "yes" {
		return treesync.ResolutionOverwrite
	}
	return treesync.ResolutionSkip
}
