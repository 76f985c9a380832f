// Package treesync publishes a source tree into a destination tree.
//
// Two passes share one traversal over tree.Entry values:
//
//   - RenderPublish renders every template leaf and writes the result,
//     always overwriting. With Diff it prints a unified diff against the
//     current destination, or "created" for a new one.
//   - CopySync copies static files. A destination whose modification time
//     equals its source is skipped. A differing time is a conflict settled
//     by Force or by the ConflictResolver; the zero answer keeps the
//     destination. Directory metadata is copied once the directory's
//     children are done, so repeated runs converge.
//
// DryRun runs both passes without touching the destination tree and
// without prompting.
package treesync

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/pubtree/pkg/errors"
	"github.com/arthur-debert/pubtree/pkg/internal/hashutil"
	"github.com/arthur-debert/pubtree/pkg/logging"
	"github.com/arthur-debert/pubtree/pkg/render"
	"github.com/arthur-debert/pubtree/pkg/tree"
	"github.com/arthur-debert/pubtree/pkg/types"
	"github.com/rs/zerolog"
)

const (
	defaultFileMode fs.FileMode = 0644
	defaultDirMode  fs.FileMode = 0755
)

// Options configures an Engine.
type Options struct {
	FS       types.FS
	Renderer render.Renderer
	Printer  Printer
	Resolver ConflictResolver

	// Force overwrites conflicting destinations without asking.
	Force bool
	// DryRun decides everything but writes nothing.
	DryRun bool
	// Diff prints rendered changes through the Printer.
	Diff bool
	// Checksum treats a conflict with identical content as up to date and
	// only restamps the destination.
	Checksum bool

	// FileMode is used for rendered files, DirMode for created directories.
	FileMode fs.FileMode
	DirMode  fs.FileMode
}

// Engine runs render and copy passes.
type Engine struct {
	opts   Options
	logger zerolog.Logger
}

// New creates an engine. A nil Resolver skips every conflict and a nil
// Printer discards preview output.
func New(opts Options) *Engine {
	if opts.Printer == nil {
		opts.Printer = discardPrinter{}
	}
	if opts.Resolver == nil {
		opts.Resolver = Always(ResolutionSkip)
	}
	if opts.FileMode == 0 {
		opts.FileMode = defaultFileMode
	}
	if opts.DirMode == 0 {
		opts.DirMode = defaultDirMode
	}
	return &Engine{
		opts:   opts,
		logger: logging.GetLogger("treesync"),
	}
}

// RenderPublish renders source, a template file or a directory of them,
// into dest. Leaves matching ignore are left out. The first failing leaf
// ends the pass; its error is returned along with the report so far.
func (e *Engine) RenderPublish(source, dest string, vars render.Vars, ignore tree.Matcher) (*Report, error) {
	if e.opts.Renderer == nil {
		return nil, errors.New(errors.ErrInternal, "render pass needs a renderer")
	}
	logger := e.logger.With().Str("pass", "render").Str("source", source).Str("dest", dest).Logger()
	logger.Info().Bool("dryRun", e.opts.DryRun).Bool("diff", e.opts.Diff).Msg("publishing templates")

	root, err := tree.Scan(e.opts.FS, source, ignore)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	if err := e.renderEntry(root, dest, vars, report); err != nil {
		return report, err
	}
	logger.Info().
		Int("written", report.Writes()).
		Int("previewed", report.Count(ActionPreviewed)).
		Msg("templates published")
	return report, nil
}

func (e *Engine) renderEntry(entry tree.Entry, dest string, vars render.Vars, report *Report) error {
	switch entry := entry.(type) {
	case *tree.Dir:
		if err := e.ensureDir(dest); err != nil {
			report.add(Outcome{Path: entry.Path(), Dest: dest, Decision: DecisionRender, Action: ActionFailed, Err: err})
			return err
		}
		for _, child := range entry.Children {
			if err := e.renderEntry(child, filepath.Join(dest, child.Name()), vars, report); err != nil {
				return err
			}
		}
		return nil
	case *tree.Leaf:
		outcome := e.renderLeaf(entry, dest, vars)
		report.add(outcome)
		return outcome.Err
	}
	return nil
}

func (e *Engine) renderLeaf(leaf *tree.Leaf, dest string, vars render.Vars) Outcome {
	outcome := Outcome{Path: leaf.Path(), Dest: dest, Decision: DecisionRender}

	content, err := e.opts.Renderer.Render(leaf.Path(), vars)
	if err != nil {
		outcome.Action = ActionFailed
		outcome.Err = err
		return outcome
	}

	if e.opts.Diff {
		e.preview(dest, content)
	}

	if e.opts.DryRun {
		outcome.Action = ActionPreviewed
		return outcome
	}

	if err := e.ensureDir(filepath.Dir(dest)); err != nil {
		outcome.Action = ActionFailed
		outcome.Err = err
		return outcome
	}
	if err := e.opts.FS.WriteFile(dest, []byte(content), e.opts.FileMode); err != nil {
		outcome.Action = ActionFailed
		outcome.Err = errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", dest).WithDetail("path", dest)
		return outcome
	}
	e.logger.Debug().Str("dest", dest).Msg("rendered")
	outcome.Action = ActionWritten
	return outcome
}

func (e *Engine) preview(dest, content string) {
	before, err := e.opts.FS.ReadFile(dest)
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		e.opts.Printer.PrintCreated(dest)
		return
	case err != nil:
		e.logger.Warn().Err(err).Str("dest", dest).Msg("cannot read destination for preview")
		return
	}
	diff, err := Diff(dest, string(before), content)
	if err != nil {
		e.logger.Warn().Err(err).Str("dest", dest).Msg("cannot compute diff")
		return
	}
	if diff != "" {
		e.opts.Printer.PrintDiff(dest, diff)
	}
}

// CopySync copies source, a file or a directory, into dest. Entries whose
// name matches exclude are left out at every level. Per-file failures are
// recorded in the report and the traversal goes on; the returned error is
// only set when source itself cannot be read.
func (e *Engine) CopySync(source, dest string, exclude tree.Matcher) (*Report, error) {
	logger := e.logger.With().Str("pass", "copy").Str("source", source).Str("dest", dest).Logger()
	logger.Info().Bool("dryRun", e.opts.DryRun).Bool("force", e.opts.Force).Msg("syncing files")

	root, err := tree.Scan(e.opts.FS, source, exclude)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	if _, ok := root.(*tree.Leaf); ok {
		if err := e.ensureDir(filepath.Dir(dest)); err != nil {
			e.warn(report, Outcome{Path: source, Dest: dest, Decision: DecisionCopy, Action: ActionFailed, Err: err})
			return report, nil
		}
	}
	e.copyEntry(root, dest, report)

	logger.Info().
		Int("written", report.Writes()).
		Int("unchanged", report.Count(ActionUnchanged)).
		Int("failed", report.Count(ActionFailed)).
		Msg("files synced")
	return report, nil
}

func (e *Engine) copyEntry(entry tree.Entry, dest string, report *Report) {
	switch entry := entry.(type) {
	case *tree.Dir:
		if err := e.ensureDir(dest); err != nil {
			e.warn(report, Outcome{Path: entry.Path(), Dest: dest, Decision: DecisionCopy, Action: ActionFailed, Err: err})
			return
		}
		for _, child := range entry.Children {
			e.copyEntry(child, filepath.Join(dest, child.Name()), report)
		}
		if err := e.copyMeta(dest, entry.Info()); err != nil {
			e.warn(report, Outcome{Path: entry.Path(), Dest: dest, Decision: DecisionCopy, Action: ActionFailed, Err: err})
		}
	case *tree.Leaf:
		outcome := e.copyLeaf(entry, dest)
		if outcome.Err != nil {
			e.warn(report, outcome)
			return
		}
		report.add(outcome)
	}
}

// copyLeaf walks the copy state machine for one file.
func (e *Engine) copyLeaf(leaf *tree.Leaf, dest string) Outcome {
	outcome := Outcome{Path: leaf.Path(), Dest: dest}

	existing, err := e.opts.FS.Stat(dest)
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		outcome.Decision = DecisionCopy
		return e.copyFile(leaf, dest, false, outcome)
	case err != nil:
		outcome.Decision = DecisionCopy
		outcome.Action = ActionFailed
		outcome.Err = errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", dest).WithDetail("path", dest)
		return outcome
	case existing.IsDir():
		outcome.Decision = DecisionConflict
		outcome.Action = ActionFailed
		outcome.Err = errors.Newf(errors.ErrFileWrite, "%s is a directory", dest).WithDetail("path", dest)
		return outcome
	case existing.ModTime().Equal(leaf.ModTime()):
		outcome.Decision = DecisionSkip
		outcome.Action = ActionUnchanged
		return outcome
	}

	outcome.Decision = DecisionConflict
	if e.opts.Checksum {
		same, err := hashutil.SameContent(e.opts.FS, leaf.Path(), e.opts.FS, dest)
		if err == nil && same {
			outcome.Decision = DecisionSkip
			return e.restamp(leaf, dest, outcome)
		}
	}

	if e.opts.Force {
		return e.copyFile(leaf, dest, true, outcome)
	}
	if e.opts.DryRun {
		outcome.Action = ActionPending
		return outcome
	}

	answer := e.opts.Resolver.Resolve(metaOf(dest, existing), metaOf(leaf.Path(), leaf.Info()))
	e.logger.Debug().Str("dest", dest).Stringer("resolution", answer).Msg("conflict resolved")
	if answer != ResolutionOverwrite {
		outcome.Action = ActionUnchanged
		return outcome
	}
	return e.copyFile(leaf, dest, true, outcome)
}

// copyFile writes the source content to dest and copies mode and times.
// replace removes the old destination first.
func (e *Engine) copyFile(leaf *tree.Leaf, dest string, replace bool, outcome Outcome) Outcome {
	if e.opts.DryRun {
		outcome.Action = ActionPreviewed
		return outcome
	}

	fail := func(err error) Outcome {
		outcome.Action = ActionFailed
		outcome.Err = err
		return outcome
	}

	data, err := leaf.Read(e.opts.FS)
	if err != nil {
		return fail(errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", leaf.Path()).WithDetail("path", leaf.Path()))
	}
	if replace {
		if err := e.opts.FS.Remove(dest); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return fail(errors.Wrapf(err, errors.ErrFileWrite, "cannot replace %s", dest).WithDetail("path", dest))
		}
	}
	if err := e.opts.FS.WriteFile(dest, data, leaf.Mode()); err != nil {
		return fail(errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", dest).WithDetail("path", dest))
	}
	if err := e.copyMeta(dest, leaf.Info()); err != nil {
		return fail(err)
	}

	e.logger.Debug().Str("source", leaf.Path()).Str("dest", dest).Bool("replaced", replace).Msg("copied")
	outcome.Action = ActionWritten
	return outcome
}

func (e *Engine) restamp(leaf *tree.Leaf, dest string, outcome Outcome) Outcome {
	if e.opts.DryRun {
		outcome.Action = ActionUnchanged
		return outcome
	}
	if err := e.copyMeta(dest, leaf.Info()); err != nil {
		outcome.Action = ActionFailed
		outcome.Err = err
		return outcome
	}
	outcome.Action = ActionTouched
	return outcome
}

func (e *Engine) copyMeta(dest string, info fs.FileInfo) error {
	if e.opts.DryRun {
		return nil
	}
	if err := e.opts.FS.Chmod(dest, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot set mode of %s", dest).WithDetail("path", dest)
	}
	if err := e.opts.FS.Chtimes(dest, info.ModTime(), info.ModTime()); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot set times of %s", dest).WithDetail("path", dest)
	}
	return nil
}

func (e *Engine) ensureDir(path string) error {
	if e.opts.DryRun {
		return nil
	}
	if err := e.opts.FS.MkdirAll(path, e.opts.DirMode); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory %s", path).WithDetail("path", path)
	}
	return nil
}

func (e *Engine) warn(report *Report, o Outcome) {
	e.logger.Warn().Err(o.Err).Str("source", o.Path).Str("dest", o.Dest).Msg("skipping entry")
	report.add(o)
}
