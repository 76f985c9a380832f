package style

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestDiffLine_PlainProfileKeepsText(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	lines := []string{"--- a", "+++ a", "@@ -1 +1 @@", "+added", "-removed", " context"}
	for _, line := range lines {
		assert.Contains(t, DiffLine(line), line)
	}
	assert.Equal(t, " context", DiffLine(" context"))
}
