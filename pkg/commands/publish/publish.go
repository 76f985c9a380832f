// Package publish runs a full publish: it loads and resolves the site
// configuration, then renders and copies the project into the output tree.
//
// Passes run in this order:
//
//	pages           <input>/<pages>            -> <output>/pages
//	homepage        <input>/<sources>/<home>   -> <output>/<home>
//	root_templates  each listed template       -> same relative path in <output>
//	copy_files      each listed file or dir    -> same relative path in <output>
//	sources         <input>/<sources>          -> <output>, homepage excluded
//	sitemap         rendered pages             -> <output>/sitemap.xml
//
// Render failures fail the run, while the remaining passes still run. A
// missing homepage ends the run. Copy failures are reported but never fail
// the run.
package publish

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/pubtree/pkg/config"
	"github.com/arthur-debert/pubtree/pkg/errors"
	"github.com/arthur-debert/pubtree/pkg/filesystem"
	"github.com/arthur-debert/pubtree/pkg/logging"
	"github.com/arthur-debert/pubtree/pkg/render"
	"github.com/arthur-debert/pubtree/pkg/resolve"
	"github.com/arthur-debert/pubtree/pkg/sitedata"
	"github.com/arthur-debert/pubtree/pkg/sitemap"
	"github.com/arthur-debert/pubtree/pkg/tree"
	"github.com/arthur-debert/pubtree/pkg/treesync"
	"github.com/arthur-debert/pubtree/pkg/types"
	"github.com/arthur-debert/pubtree/pkg/ui/display"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
)

// Pass names, as they appear in the result.
const (
	PassPages         = "pages"
	PassHomepage      = "homepage"
	PassRootTemplates = "root_templates"
	PassCopyFiles     = "copy_files"
	PassSources       = "sources"
	PassSitemap       = "sitemap"
)

// Site configuration keys read by the publisher.
const (
	KeyRootTemplates = "root_templates"
	KeyCopyFiles     = "copy_files"
)

// Options defines the options for the Publish command.
type Options struct {
	// InputDir holds the site configuration, pages and sources.
	InputDir string
	// OutputDir is the document root that gets written.
	OutputDir string
	// Settings defaults to config.Default().
	Settings *config.Settings
	// FS defaults to the OS filesystem.
	FS types.FS
	// Resolver settles copy conflicts; nil keeps edited files.
	Resolver treesync.ConflictResolver
	// Printer receives diff output.
	Printer treesync.Printer

	Force  bool
	DryRun bool
	Diff   bool

	// Now returns the build date; nil means time.Now.
	Now func() time.Time
}

type publisher struct {
	opts     Options
	settings *config.Settings
	site     *sitedata.Tree
	engine   *treesync.Engine
	ignore   tree.Matcher
	exclude  tree.Matcher
	result   *display.PublishResult
	report   *treesync.Report
	errs     *multierror.Error
	logger   zerolog.Logger
}

// Publish runs every pass. The result lists the passes that ran, and is
// returned along with the error when a render pass fails. Configuration
// problems are returned before anything is written, with a nil result.
func Publish(opts Options) (*display.PublishResult, error) {
	logger := logging.GetLogger("commands.publish")
	logger.Debug().Str("command", "Publish").Msg("Executing command")

	if opts.Settings == nil {
		opts.Settings = config.Default()
	}
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.OutputDir == "" {
		return nil, errors.New(errors.ErrInvalidInput, "output directory is required")
	}
	opts.InputDir = filepath.Clean(opts.InputDir)
	opts.OutputDir = filepath.Clean(opts.OutputDir)
	if err := requireDir(opts.FS, opts.InputDir); err != nil {
		return nil, err
	}

	fileMode, err := opts.Settings.Permissions.FileMode()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsLoad, "invalid settings")
	}
	dirMode, err := opts.Settings.Permissions.DirMode()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsLoad, "invalid settings")
	}

	now := opts.Now()
	site, err := LoadSite(opts.FS, opts.InputDir, opts.Settings, now)
	if err != nil {
		return nil, err
	}

	p := &publisher{
		opts:     opts,
		settings: opts.Settings,
		site:     site,
		engine: treesync.New(treesync.Options{
			FS:       opts.FS,
			Renderer: render.NewPongo(opts.FS, opts.InputDir),
			Printer:  opts.Printer,
			Resolver: opts.Resolver,
			Force:    opts.Force,
			DryRun:   opts.DryRun,
			Diff:     opts.Diff,
			Checksum: opts.Settings.Copy.Checksum,
			FileMode: fileMode,
			DirMode:  dirMode,
		}),
		ignore:  renderIgnore(opts.Settings.Render.Ignore),
		exclude: tree.Patterns(opts.Settings.Copy.Exclude...),
		result: &display.PublishResult{
			Command:   "publish",
			Input:     opts.InputDir,
			Output:    opts.OutputDir,
			DryRun:    opts.DryRun,
			Timestamp: now,
		},
		report: &treesync.Report{},
		logger: logger,
	}

	p.run(now)
	logger.Info().
		Int("written", p.report.Writes()).
		Int("touched", p.report.Count(treesync.ActionTouched)).
		Int("previewed", p.report.Count(treesync.ActionPreviewed)).
		Int("failed", len(p.report.Failed())).
		Msg("publish summary")

	if err := p.errs.ErrorOrNil(); err != nil {
		logger.Error().Err(err).Msg("Publish failed")
		return p.result, err
	}
	logger.Info().Str("command", "Publish").Msg("Command finished")
	return p.result, nil
}

func (p *publisher) run(now time.Time) {
	in, out := p.opts.InputDir, p.opts.OutputDir
	paths := p.settings.Paths

	pages := filepath.Join(in, paths.Pages)
	if p.exists(pages) {
		p.render(PassPages, pages, filepath.Join(out, "pages"))
	} else {
		p.logger.Warn().Str("path", pages).Msg("no pages directory, skipping")
	}

	homepage := filepath.Join(in, paths.Sources, paths.Homepage)
	if !p.exists(homepage) {
		err := errors.Newf(errors.ErrFileNotFound, "cannot create %s: %s does not exist", paths.Homepage, homepage).
			WithDetail("path", homepage)
		p.fail(display.NewPassResult(PassHomepage, homepage, filepath.Join(out, paths.Homepage), nil, err), err)
		return
	}
	p.render(PassHomepage, homepage, filepath.Join(out, paths.Homepage))

	if templates, ok := p.site.Strings(KeyRootTemplates); ok {
		for _, name := range templates {
			p.render(PassRootTemplates, filepath.Join(in, name), filepath.Join(out, name))
		}
	}

	if files, ok := p.site.Strings(KeyCopyFiles); ok {
		for _, name := range files {
			p.copy(PassCopyFiles, filepath.Join(in, name), filepath.Join(out, name), p.exclude)
		}
	}

	sources := filepath.Join(in, paths.Sources)
	p.copy(PassSources, sources, out, tree.Any(tree.Names{paths.Homepage}, p.exclude))

	if p.settings.Sitemap.Enabled {
		p.writeSitemap(now)
	}
}

// vars returns a fresh substitution mapping so no pass sees another's
// changes.
func (p *publisher) vars() render.Vars {
	m, _ := p.site.Interface().(map[string]interface{})
	return render.Vars(m)
}

// renderIgnore falls back to the editor backup globs when the settings
// leave render.ignore empty.
func renderIgnore(patterns []string) tree.Matcher {
	if len(patterns) == 0 {
		return tree.EditorBackups
	}
	return tree.Patterns(patterns...)
}

func (p *publisher) render(name, source, dest string) {
	defer logging.LogOperationStart(p.logger, name)()

	report, err := p.engine.RenderPublish(source, dest, p.vars(), p.ignore)
	p.report.Merge(report)
	pass := display.NewPassResult(name, source, dest, report, err)
	if err != nil {
		p.fail(pass, err)
		return
	}
	p.result.Passes = append(p.result.Passes, pass)
}

func (p *publisher) copy(name, source, dest string, exclude tree.Matcher) {
	defer logging.LogOperationStart(p.logger, name)()

	report, err := p.engine.CopySync(source, dest, exclude)
	p.report.Merge(report)
	if err != nil {
		p.logger.Warn().Err(err).Str("pass", name).Str("source", source).Msg("nothing to copy")
	} else if rerr := report.Err(); rerr != nil {
		p.logger.Warn().Err(rerr).Str("pass", name).Msg("some files were not copied")
	}
	p.result.Passes = append(p.result.Passes, display.NewPassResult(name, source, dest, report, err))
}

func (p *publisher) writeSitemap(now time.Time) {
	dest := filepath.Join(p.opts.OutputDir, sitemap.FileName)
	pass := display.PassResult{Name: PassSitemap, Source: p.opts.OutputDir, Dest: dest}
	defer logging.LogOperationStart(p.logger, PassSitemap)()

	var pages []string
	for _, o := range p.report.Outcomes {
		if o.Decision != treesync.DecisionRender {
			continue
		}
		if o.Action != treesync.ActionWritten && o.Action != treesync.ActionPreviewed {
			continue
		}
		switch strings.ToLower(filepath.Ext(o.Dest)) {
		case ".html", ".htm":
			pages = append(pages, o.Dest)
		}
	}

	entries, err := sitemap.Entries(p.settings.Sitemap.BaseURL, p.opts.OutputDir, pages, now)
	if err != nil {
		p.fail(pass, err)
		return
	}
	data, err := sitemap.Build(entries)
	if err != nil {
		p.fail(pass, err)
		return
	}
	if p.opts.DryRun {
		pass.Previewed = 1
		p.result.Passes = append(p.result.Passes, pass)
		return
	}

	fileMode, _ := p.settings.Permissions.FileMode()
	if err := p.opts.FS.WriteFile(dest, data, fileMode); err != nil {
		p.fail(pass, errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", dest).WithDetail("path", dest))
		return
	}
	p.logger.Info().Str("path", dest).Int("pages", len(entries)).Msg("sitemap written")
	pass.Written = 1
	p.result.Passes = append(p.result.Passes, pass)
}

func (p *publisher) fail(pass display.PassResult, err error) {
	if pass.Failed == 0 {
		pass.Failed = 1
		pass.Errors = append(pass.Errors, err.Error())
	}
	p.result.Passes = append(p.result.Passes, pass)
	p.errs = multierror.Append(p.errs, err)
}

func (p *publisher) exists(path string) bool {
	_, err := p.opts.FS.Stat(path)
	return err == nil
}

// LoadSite reads the site configuration of the project in inputDir, adds
// the build date under the configured key and resolves {{name}}
// references.
func LoadSite(fsys types.FS, inputDir string, settings *config.Settings, date time.Time) (*sitedata.Tree, error) {
	logger := logging.GetLogger("commands.publish")

	raw, err := sitedata.Load(fsys, filepath.Join(inputDir, settings.Paths.Config))
	if err != nil {
		return nil, err
	}
	raw = raw.With(settings.Render.DateKey, sitedata.Scalar(date))

	site, err := resolve.Resolve(raw)
	if err != nil {
		return nil, err
	}

	if e := logger.Debug(); e.Enabled() {
		if dump, err := site.ToYAML(); err == nil {
			e.Msgf("using site configuration:\n%s", dump)
		}
	}
	return site, nil
}

func requireDir(fsys types.FS, path string) error {
	info, err := fsys.Stat(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return errors.Newf(errors.ErrFileNotFound, "input directory %s does not exist", path).
			WithDetail("path", path)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", path).WithDetail("path", path)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrInvalidInput, "%s is not a directory", path).WithDetail("path", path)
	}
	return nil
}
