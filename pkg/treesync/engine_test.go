package treesync

import (
	"fmt"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/pubtree/pkg/errors"
	"github.com/arthur-debert/pubtree/pkg/render"
	"github.com/arthur-debert/pubtree/pkg/testutil"
	"github.com/arthur-debert/pubtree/pkg/tree"
	"github.com/arthur-debert/pubtree/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	sourceTime = time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	editTime   = time.Date(2023, 7, 1, 12, 0, 0, 0, time.UTC)
)

type recordingPrinter struct {
	diffs   map[string]string
	created []string
}

func newRecordingPrinter() *recordingPrinter {
	return &recordingPrinter{diffs: make(map[string]string)}
}

func (p *recordingPrinter) PrintDiff(dest, diff string) { p.diffs[dest] = diff }
func (p *recordingPrinter) PrintCreated(dest string)    { p.created = append(p.created, dest) }

type countingResolver struct {
	answer Resolution
	calls  []FileMeta
}

func (r *countingResolver) Resolve(existing, incoming FileMeta) Resolution {
	r.calls = append(r.calls, existing, incoming)
	return r.answer
}

// failingFS fails reads of one path.
type failingFS struct {
	types.FS
	path string
}

func (f failingFS) ReadFile(name string) ([]byte, error) {
	if name == f.path {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrPermission}
	}
	return f.FS.ReadFile(name)
}

func setupPages(t *testing.T) types.FS {
	t.Helper()
	fsys := testutil.NewTestFS()
	testutil.WriteTree(t, fsys, "/in", map[string]string{
		"pages/index.html":      "<h1>{{ title }}</h1>\n",
		"pages/blog/post.html":  "{% for n in nav %}{{ n }}\n{% endfor %}",
		"pages/blog/.post.swp":  "swap",
		"pages/blog/post.html~": "backup",
		"pages/empty/.keep.swp": "swap",
	})
	return fsys
}

var pageVars = render.Vars{"title": "Home", "nav": []interface{}{"Home", "About"}}

func TestRenderPublish_WritesRenderedTree(t *testing.T) {
	fsys := setupPages(t)
	engine := New(Options{FS: fsys, Renderer: render.NewPongo(fsys, "/in")})

	report, err := engine.RenderPublish("/in/pages", "/out/pages", pageVars, tree.EditorBackups)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Writes())
	assert.Equal(t, "<h1>Home</h1>\n", testutil.ReadString(t, fsys, "/out/pages/index.html"))
	assert.Equal(t, "Home\nAbout\n", testutil.ReadString(t, fsys, "/out/pages/blog/post.html"))
	assert.False(t, testutil.Exists(fsys, "/out/pages/blog/.post.swp"))
	assert.False(t, testutil.Exists(fsys, "/out/pages/blog/post.html~"))
	assert.True(t, testutil.Exists(fsys, "/out/pages/empty"), "directories are mirrored")

	for _, o := range report.Outcomes {
		assert.Equal(t, DecisionRender, o.Decision)
	}
}

func TestRenderPublish_OverwritesUnconditionally(t *testing.T) {
	fsys := setupPages(t)
	testutil.WriteTree(t, fsys, "/out", map[string]string{"pages/index.html": "hand edited"})
	engine := New(Options{FS: fsys, Renderer: render.NewPongo(fsys, "/in"), Resolver: Always(ResolutionSkip)})

	_, err := engine.RenderPublish("/in/pages", "/out/pages", pageVars, tree.EditorBackups)
	require.NoError(t, err)
	assert.Equal(t, "<h1>Home</h1>\n", testutil.ReadString(t, fsys, "/out/pages/index.html"))
}

func TestRenderPublish_SingleFile(t *testing.T) {
	fsys := setupPages(t)
	engine := New(Options{FS: fsys, Renderer: render.NewPongo(fsys, "/in")})

	report, err := engine.RenderPublish("/in/pages/index.html", "/out/index.html", pageVars, tree.EditorBackups)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Writes())
	assert.Equal(t, "<h1>Home</h1>\n", testutil.ReadString(t, fsys, "/out/index.html"))
}

func TestRenderPublish_PreviewNeverMutates(t *testing.T) {
	fsys := setupPages(t)
	testutil.WriteTree(t, fsys, "/out", map[string]string{
		"pages/index.html": "<h1>Old</h1>\n",
		"pages/other.html": "untouched",
	})
	before := testutil.Snapshot(t, fsys, "/out")

	printer := newRecordingPrinter()
	engine := New(Options{
		FS:       fsys,
		Renderer: render.NewPongo(fsys, "/in"),
		Printer:  printer,
		DryRun:   true,
		Diff:     true,
	})

	report, err := engine.RenderPublish("/in/pages", "/out/pages", pageVars, tree.EditorBackups)
	require.NoError(t, err)

	assert.Equal(t, before, testutil.Snapshot(t, fsys, "/out"))
	assert.Equal(t, 0, report.Writes())
	assert.Equal(t, 2, report.Count(ActionPreviewed))

	assert.Equal(t, []string{"/out/pages/blog/post.html"}, printer.created)
	diff := printer.diffs["/out/pages/index.html"]
	assert.Contains(t, diff, "--- /out/pages/index.html")
	assert.Contains(t, diff, "+++ /out/pages/index.html")
	assert.Contains(t, diff, "-<h1>Old</h1>")
	assert.Contains(t, diff, "+<h1>Home</h1>")
}

func TestRenderPublish_DiffWithoutDryRunWrites(t *testing.T) {
	fsys := setupPages(t)
	testutil.WriteTree(t, fsys, "/out", map[string]string{"pages/index.html": "<h1>Home</h1>\n"})
	printer := newRecordingPrinter()
	engine := New(Options{FS: fsys, Renderer: render.NewPongo(fsys, "/in"), Printer: printer, Diff: true})

	report, err := engine.RenderPublish("/in/pages", "/out/pages", pageVars, tree.EditorBackups)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Writes())
	assert.Empty(t, printer.diffs, "identical output prints no diff")
	assert.Equal(t, []string{"/out/pages/blog/post.html"}, printer.created)
}

func TestRenderPublish_PreviewUnreadableDestination(t *testing.T) {
	fsys := setupPages(t)
	testutil.WriteTree(t, fsys, "/out", map[string]string{"pages/index.html": "<h1>Old</h1>\n"})
	printer := newRecordingPrinter()
	engine := New(Options{
		FS:       failingFS{FS: fsys, path: "/out/pages/index.html"},
		Renderer: render.NewPongo(fsys, "/in"),
		Printer:  printer,
		DryRun:   true,
		Diff:     true,
	})

	report, err := engine.RenderPublish("/in/pages", "/out/pages", pageVars, tree.EditorBackups)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Count(ActionPreviewed))
	assert.Equal(t, []string{"/out/pages/blog/post.html"}, printer.created)
	assert.Empty(t, printer.diffs)
}

func TestRenderPublish_RenderFailureEndsPass(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.WriteTree(t, fsys, "/in", map[string]string{
		"pages/a.html": "{% if x %}never closed",
		"pages/b.html": "fine",
	})
	engine := New(Options{FS: fsys, Renderer: render.NewPongo(fsys, "/in")})

	report, err := engine.RenderPublish("/in/pages", "/out/pages", pageVars, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateSyntax))
	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, ActionFailed, report.Outcomes[0].Action)
	assert.False(t, testutil.Exists(fsys, "/out/pages/b.html"))
}

func TestRenderPublish_MissingSource(t *testing.T) {
	fsys := testutil.NewTestFS()
	engine := New(Options{FS: fsys, Renderer: render.NewPongo(fsys, "/in")})

	_, err := engine.RenderPublish("/in/pages", "/out/pages", pageVars, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}

func setupStatic(t *testing.T) types.FS {
	t.Helper()
	fsys := testutil.NewTestFS()
	testutil.WriteTree(t, fsys, "/src", map[string]string{
		"index.html":         "homepage template",
		"style.css":          "body {}",
		"img/logo.svg":       "<svg/>",
		"img/index.html":     "nested index",
		"fonts/mono/a.woff2": "font",
	})
	for _, p := range []string{"/src/style.css", "/src/img/logo.svg", "/src/img/index.html", "/src/fonts/mono/a.woff2", "/src/index.html"} {
		testutil.SetModTime(t, fsys, p, sourceTime)
	}
	for _, p := range []string{"/src/img", "/src/fonts/mono", "/src/fonts", "/src"} {
		testutil.SetModTime(t, fsys, p, sourceTime)
	}
	return fsys
}

func TestCopySync_CopiesAndPreservesMetadata(t *testing.T) {
	fsys := setupStatic(t)
	require.NoError(t, fsys.Chmod("/src/style.css", 0600))
	engine := New(Options{FS: fsys})

	report, err := engine.CopySync("/src", "/out", tree.Names{"index.html"})
	require.NoError(t, err)
	require.NoError(t, report.Err())

	snap := testutil.Snapshot(t, fsys, "/out")
	assert.Equal(t, []string{"fonts", "fonts/mono", "fonts/mono/a.woff2", "img", "img/logo.svg", "style.css"}, testutil.Paths(snap))
	assert.Equal(t, "body {}", snap["style.css"].Content)
	assert.Equal(t, fs.FileMode(0600), snap["style.css"].Mode)
	assert.True(t, snap["style.css"].ModTime.Equal(sourceTime))
	assert.True(t, snap["fonts/mono"].ModTime.Equal(sourceTime), "directory times are copied after their children")
	assert.Equal(t, 3, report.Writes())
	for _, o := range report.Outcomes {
		assert.Equal(t, DecisionCopy, o.Decision)
	}
}

func TestCopySync_Idempotent(t *testing.T) {
	fsys := setupStatic(t)
	resolver := &countingResolver{answer: ResolutionOverwrite}
	engine := New(Options{FS: fsys, Resolver: resolver})

	first, err := engine.CopySync("/src", "/out", tree.Names{"index.html"})
	require.NoError(t, err)
	assert.Equal(t, 3, first.Writes())
	after := testutil.Snapshot(t, fsys, "/out")

	second, err := engine.CopySync("/src", "/out", tree.Names{"index.html"})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Writes())
	assert.Equal(t, 3, second.Count(ActionUnchanged))
	for _, o := range second.Outcomes {
		assert.Equal(t, DecisionSkip, o.Decision, o.Path)
	}
	assert.Empty(t, resolver.calls)
	assert.Equal(t, after, testutil.Snapshot(t, fsys, "/out"))
}

func editDestination(t *testing.T, fsys types.FS) {
	t.Helper()
	testutil.WriteTree(t, fsys, "/out", map[string]string{"style.css": "body { color: red }"})
	testutil.SetModTime(t, fsys, "/out/style.css", editTime)
}

func TestCopySync_Conflict(t *testing.T) {
	tests := []struct {
		name        string
		force       bool
		answer      Resolution
		wantContent string
		wantCalls   int
		wantAction  Action
	}{
		{"answer no keeps edits", false, ResolutionSkip, "body { color: red }", 1, ActionUnchanged},
		{"answer yes overwrites", false, ResolutionOverwrite, "body {}", 1, ActionWritten},
		{"force overwrites without asking", true, ResolutionSkip, "body {}", 0, ActionWritten},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := setupStatic(t)
			editDestination(t, fsys)
			resolver := &countingResolver{answer: tt.answer}
			engine := New(Options{FS: fsys, Resolver: resolver, Force: tt.force})

			report, err := engine.CopySync("/src/style.css", "/out/style.css", nil)
			require.NoError(t, err)
			require.Len(t, report.Outcomes, 1)

			o := report.Outcomes[0]
			assert.Equal(t, DecisionConflict, o.Decision)
			assert.Equal(t, tt.wantAction, o.Action)
			assert.Equal(t, tt.wantContent, testutil.ReadString(t, fsys, "/out/style.css"))
			assert.Len(t, resolver.calls, tt.wantCalls*2)

			if tt.wantCalls > 0 {
				existing, incoming := resolver.calls[0], resolver.calls[1]
				assert.Equal(t, "/out/style.css", existing.Path)
				assert.True(t, existing.ModTime.Equal(editTime))
				assert.Equal(t, "/src/style.css", incoming.Path)
				assert.True(t, incoming.ModTime.Equal(sourceTime))
			}

			info, err := fsys.Stat("/out/style.css")
			require.NoError(t, err)
			if tt.wantAction == ActionWritten {
				assert.True(t, info.ModTime().Equal(sourceTime))
			} else {
				assert.True(t, info.ModTime().Equal(editTime))
			}
		})
	}
}

func TestCopySync_NilResolverSkips(t *testing.T) {
	fsys := setupStatic(t)
	editDestination(t, fsys)

	report, err := New(Options{FS: fsys}).CopySync("/src", "/out", tree.Names{"index.html"})
	require.NoError(t, err)
	assert.Equal(t, "body { color: red }", testutil.ReadString(t, fsys, "/out/style.css"))
	assert.Equal(t, 2, report.Writes())
}

func TestCopySync_DryRun(t *testing.T) {
	fsys := setupStatic(t)
	editDestination(t, fsys)
	before := testutil.Snapshot(t, fsys, "/out")
	resolver := &countingResolver{answer: ResolutionOverwrite}

	report, err := New(Options{FS: fsys, Resolver: resolver, DryRun: true}).CopySync("/src", "/out", tree.Names{"index.html"})
	require.NoError(t, err)

	assert.Equal(t, before, testutil.Snapshot(t, fsys, "/out"))
	assert.Empty(t, resolver.calls, "dry runs never prompt")
	assert.Equal(t, 0, report.Writes())
	assert.Equal(t, 1, report.Count(ActionPending))
	assert.Equal(t, 2, report.Count(ActionPreviewed))
}

func TestCopySync_ExcludesNamesAtEveryLevel(t *testing.T) {
	fsys := setupStatic(t)

	report, err := New(Options{FS: fsys}).CopySync("/src", "/out", tree.Names{"index.html"})
	require.NoError(t, err)

	assert.False(t, testutil.Exists(fsys, "/out/index.html"))
	assert.False(t, testutil.Exists(fsys, "/out/img/index.html"))
	for _, o := range report.Outcomes {
		assert.False(t, strings.HasSuffix(o.Path, "index.html"))
	}
}

func TestCopySync_PerFileErrorsContinue(t *testing.T) {
	base := setupStatic(t)
	fsys := failingFS{FS: base, path: "/src/img/logo.svg"}

	report, err := New(Options{FS: fsys}).CopySync("/src", "/out", tree.Names{"index.html"})
	require.NoError(t, err, "per-file failures are warnings")

	assert.Equal(t, 2, report.Writes())
	assert.Equal(t, 1, report.Count(ActionFailed))
	require.Error(t, report.Err())
	assert.True(t, errors.IsErrorCode(report.Err(), errors.ErrFileAccess))
	assert.Equal(t, "/src/img/logo.svg", report.Failed()[0].Path)
	assert.True(t, testutil.Exists(base, "/out/style.css"))
	assert.True(t, testutil.Exists(base, "/out/fonts/mono/a.woff2"))
}

func TestCopySync_Checksum(t *testing.T) {
	fsys := setupStatic(t)
	testutil.WriteTree(t, fsys, "/out", map[string]string{"style.css": "body {}"})
	testutil.SetModTime(t, fsys, "/out/style.css", editTime)
	resolver := &countingResolver{answer: ResolutionSkip}
	engine := New(Options{FS: fsys, Resolver: resolver, Checksum: true})

	report, err := engine.CopySync("/src/style.css", "/out/style.css", nil)
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, DecisionSkip, report.Outcomes[0].Decision)
	assert.Equal(t, ActionTouched, report.Outcomes[0].Action)
	assert.Empty(t, resolver.calls)

	info, err := fsys.Stat("/out/style.css")
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(sourceTime), "destination is restamped")

	// different content still conflicts
	editDestination(t, fsys)
	report, err = engine.CopySync("/src/style.css", "/out/style.css", nil)
	require.NoError(t, err)
	assert.Equal(t, DecisionConflict, report.Outcomes[0].Decision)
	assert.Len(t, resolver.calls, 2)
}

func TestCopySync_DestinationIsDirectory(t *testing.T) {
	fsys := setupStatic(t)
	require.NoError(t, fsys.MkdirAll("/out/style.css", 0755))

	report, err := New(Options{FS: fsys}).CopySync("/src", "/out", tree.Names{"index.html"})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count(ActionFailed))
	assert.Equal(t, 2, report.Writes())
}

func TestReport(t *testing.T) {
	r := &Report{}
	r.add(Outcome{Path: "a", Action: ActionWritten})
	r.add(Outcome{Path: "b", Action: ActionFailed, Err: fmt.Errorf("boom b")})
	other := &Report{}
	other.add(Outcome{Path: "c", Action: ActionFailed, Err: fmt.Errorf("boom c")})
	r.Merge(other)
	r.Merge(nil)

	assert.Equal(t, 1, r.Writes())
	assert.Equal(t, 2, r.Count(ActionFailed))
	require.Error(t, r.Err())
	assert.Contains(t, r.Err().Error(), "boom b")
	assert.Contains(t, r.Err().Error(), "boom c")
	assert.NoError(t, (&Report{}).Err())
}

func TestDiff(t *testing.T) {
	diff, err := Diff("/out/a.txt", "one\ntwo\n", "one\nthree\n")
	require.NoError(t, err)
	assert.Equal(t, "--- /out/a.txt\n+++ /out/a.txt\n@@ -1,2 +1,2 @@\n one\n-two\n+three\n", diff)

	same, err := Diff("/out/a.txt", "x\n", "x\n")
	require.NoError(t, err)
	assert.Empty(t, same)

	added, err := Diff("/out/a.txt", "", "one\n")
	require.NoError(t, err)
	assert.Equal(t, "--- /out/a.txt\n+++ /out/a.txt\n@@ -0,0 +1 @@\n+one\n", added)

	unterminated, err := Diff("/out/a.txt", "x\n", "x")
	require.NoError(t, err)
	assert.Equal(t, "--- /out/a.txt\n+++ /out/a.txt\n@@ -1 +1 @@\n-x\n+x\n\\ No newline at end of file\n", unterminated)
}
