// Package display holds the result types shared by the output renderers.
package display

import (
	"time"

	"github.com/arthur-debert/pubtree/pkg/treesync"
)

// PublishResult is the outcome of one publish run.
type PublishResult struct {
	Command   string       `json:"command"`
	Input     string       `json:"input"`
	Output    string       `json:"output"`
	DryRun    bool         `json:"dryRun"`
	Passes    []PassResult `json:"passes"`
	Timestamp time.Time    `json:"timestamp"`
}

// PassResult summarises one render or copy pass.
type PassResult struct {
	Name      string   `json:"name"`
	Source    string   `json:"source"`
	Dest      string   `json:"dest"`
	Written   int      `json:"written"`
	Unchanged int      `json:"unchanged"`
	Touched   int      `json:"touched,omitempty"`
	Previewed int      `json:"previewed,omitempty"`
	Pending   int      `json:"pending,omitempty"`
	Failed    int      `json:"failed,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// NewPassResult counts the outcomes of report. err is the pass error, if
// any; it is only listed when no outcome already carries it.
func NewPassResult(name, source, dest string, report *treesync.Report, err error) PassResult {
	pass := PassResult{Name: name, Source: source, Dest: dest}
	if report != nil {
		pass.Written = report.Writes()
		pass.Unchanged = report.Count(treesync.ActionUnchanged)
		pass.Touched = report.Count(treesync.ActionTouched)
		pass.Previewed = report.Count(treesync.ActionPreviewed)
		pass.Pending = report.Count(treesync.ActionPending)
		pass.Failed = report.Count(treesync.ActionFailed)
		for _, o := range report.Failed() {
			pass.Errors = append(pass.Errors, o.Err.Error())
		}
	}
	if err != nil && pass.Failed == 0 {
		pass.Failed++
		pass.Errors = append(pass.Errors, err.Error())
	}
	return pass
}

// Totals adds up the counters of all passes.
func (r *PublishResult) Totals() PassResult {
	var total PassResult
	for _, p := range r.Passes {
		total.Written += p.Written
		total.Unchanged += p.Unchanged
		total.Touched += p.Touched
		total.Previewed += p.Previewed
		total.Pending += p.Pending
		total.Failed += p.Failed
	}
	return total
}
