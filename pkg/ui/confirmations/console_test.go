package confirmations

import (
	"bytes"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/arthur-debert/pubtree/pkg/treesync"
	"github.com/stretchr/testify/assert"
)

func TestConsoleResolver(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  treesync.Resolution
	}{
		{"yes", "y\n", treesync.ResolutionOverwrite},
		{"long yes", "yes\n", treesync.ResolutionOverwrite},
		{"upper case with spaces", "  YES \n", treesync.ResolutionOverwrite},
		{"no", "n\n", treesync.ResolutionSkip},
		{"empty line", "\n", treesync.ResolutionSkip},
		{"garbage", "sure thing\n", treesync.ResolutionSkip},
		{"eof", "", treesync.ResolutionSkip},
		{"answer without newline", "y", treesync.ResolutionOverwrite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			r := NewConsoleResolver(strings.NewReader(tt.input), &out)

			got := r.Resolve(treesync.FileMeta{Path: "/out/style.css"}, treesync.FileMeta{Path: "/src/style.css"})
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "/out/style.css was edited, override? (y/n): ")
		})
	}
}

func TestConsoleResolver_ReadsOneAnswerPerConflict(t *testing.T) {
	var out bytes.Buffer
	r := NewConsoleResolver(strings.NewReader("y\nn\n"), &out)

	assert.Equal(t, treesync.ResolutionOverwrite, r.Resolve(treesync.FileMeta{Path: "a"}, treesync.FileMeta{}))
	assert.Equal(t, treesync.ResolutionSkip, r.Resolve(treesync.FileMeta{Path: "b"}, treesync.FileMeta{}))
	assert.Equal(t, treesync.ResolutionSkip, r.Resolve(treesync.FileMeta{Path: "c"}, treesync.FileMeta{}))
}

func TestConsoleResolver_ReadErrorSkips(t *testing.T) {
	var out bytes.Buffer
	r := NewConsoleResolver(iotest.ErrReader(assert.AnError), &out)
	assert.Equal(t, treesync.ResolutionSkip, r.Resolve(treesync.FileMeta{Path: "a"}, treesync.FileMeta{}))
}
