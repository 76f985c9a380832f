package treesync

import (
	"io/fs"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Decision is what the engine chose for a leaf when it was visited.
type Decision int

const (
	// DecisionRender renders a template over the destination.
	DecisionRender Decision = iota
	// DecisionCopy copies a source file to a missing destination.
	DecisionCopy
	// DecisionSkip leaves an up to date destination alone.
	DecisionSkip
	// DecisionConflict marks a destination whose timestamp differs from
	// its source. The conflict resolver or --force settle it.
	DecisionConflict
)

func (d Decision) String() string {
	switch d {
	case DecisionRender:
		return "render"
	case DecisionCopy:
		return "copy"
	case DecisionSkip:
		return "skip"
	case DecisionConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Action is what actually happened to the destination.
type Action int

const (
	// ActionUnchanged means the destination was left as it was.
	ActionUnchanged Action = iota
	// ActionWritten means the destination content was written.
	ActionWritten
	// ActionTouched means only the destination metadata was updated.
	ActionTouched
	// ActionPreviewed means a write was due but the run was a dry run.
	ActionPreviewed
	// ActionPending means a conflict was found during a dry run and was
	// not put to the resolver.
	ActionPending
	// ActionFailed means the entry could not be processed; see Outcome.Err.
	ActionFailed
)

func (a Action) String() string {
	switch a {
	case ActionUnchanged:
		return "unchanged"
	case ActionWritten:
		return "written"
	case ActionTouched:
		return "touched"
	case ActionPreviewed:
		return "previewed"
	case ActionPending:
		return "pending"
	case ActionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FileMeta describes one side of a conflict.
type FileMeta struct {
	Path    string
	ModTime time.Time
	Size    int64
	Mode    fs.FileMode
}

func metaOf(path string, info fs.FileInfo) FileMeta {
	return FileMeta{
		Path:    path,
		ModTime: info.ModTime(),
		Size:    info.Size(),
		Mode:    info.Mode().Perm(),
	}
}

// Resolution is the answer to a conflict. The zero value skips.
type Resolution int

const (
	ResolutionSkip Resolution = iota
	ResolutionOverwrite
)

func (r Resolution) String() string {
	if r == ResolutionOverwrite {
		return "overwrite"
	}
	return "skip"
}

// ConflictResolver settles a conflict between an edited destination and
// its source.
type ConflictResolver interface {
	Resolve(existing, incoming FileMeta) Resolution
}

// ResolverFunc adapts a function to ConflictResolver.
type ResolverFunc func(existing, incoming FileMeta) Resolution

// Resolve calls f.
func (f ResolverFunc) Resolve(existing, incoming FileMeta) Resolution {
	return f(existing, incoming)
}

// Always returns a resolver giving the same answer to every conflict.
func Always(r Resolution) ConflictResolver {
	return ResolverFunc(func(FileMeta, FileMeta) Resolution { return r })
}

// Printer shows preview output.
type Printer interface {
	// PrintDiff shows a unified diff for an existing destination.
	PrintDiff(dest, diff string)
	// PrintCreated reports a destination that does not exist yet.
	PrintCreated(dest string)
}

type discardPrinter struct{}

func (discardPrinter) PrintDiff(string, string) {}
func (discardPrinter) PrintCreated(string)      {}

// Outcome records how one entry was handled.
type Outcome struct {
	Path     string
	Dest     string
	Decision Decision
	Action   Action
	Err      error
}

// Report lists the outcomes of a pass in traversal order.
type Report struct {
	Outcomes []Outcome
}

func (r *Report) add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// Count returns how many outcomes ended with action.
func (r *Report) Count(action Action) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Action == action {
			n++
		}
	}
	return n
}

// Writes returns how many destination files had content written.
func (r *Report) Writes() int {
	return r.Count(ActionWritten)
}

// Failed returns the outcomes that carry an error.
func (r *Report) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// Err combines the errors of all failed outcomes, or returns nil.
func (r *Report) Err() error {
	var result *multierror.Error
	for _, o := range r.Outcomes {
		if o.Err != nil {
			result = multierror.Append(result, o.Err)
		}
	}
	return result.ErrorOrNil()
}

// Merge appends the outcomes of other.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Outcomes = append(r.Outcomes, other.Outcomes...)
}
