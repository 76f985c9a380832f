// Package render renders page templates with pongo2, a Django/Jinja style
// template engine.
//
// Templates are read through a types.FS. Names are either absolute paths or
// paths relative to the renderer's search root; include and extends tags
// resolve the same way. Two helpers are available as globals in every
// template:
//
//	{{ strftime(date, "%Y-%m-%d") }}          date to text
//	{{ strptime("2024-01-02", "%Y-%m-%d") }}  text to date
package render

import (
	"bytes"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arthur-debert/pubtree/pkg/errors"
	"github.com/arthur-debert/pubtree/pkg/logging"
	"github.com/arthur-debert/pubtree/pkg/types"
	"github.com/flosch/pongo2/v6"
)

var identifier = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Vars is the substitution mapping handed to a template.
type Vars map[string]interface{}

// Renderer turns a named template and a substitution mapping into text.
type Renderer interface {
	Render(name string, vars Vars) (string, error)
}

// Pongo renders templates with pongo2.
type Pongo struct {
	set    *pongo2.TemplateSet
	loader *fsLoader
}

func init() {
	// Values come from the site configuration, which may carry markup.
	pongo2.SetAutoescape(false)
}

// NewPongo returns a renderer reading templates from fsys below searchRoot.
func NewPongo(fsys types.FS, searchRoot string) *Pongo {
	loader := &fsLoader{fs: fsys, root: filepath.Clean(searchRoot)}
	set := pongo2.NewSet("pubtree", loader)
	set.Options.TrimBlocks = true
	set.Globals["strftime"] = Strftime
	set.Globals["strptime"] = Strptime
	return &Pongo{set: set, loader: loader}
}

// Render renders the template called name with vars. Templates are read
// again on every call so edits between passes are picked up.
func (p *Pongo) Render(name string, vars Vars) (string, error) {
	logger := logging.GetLogger("render")
	path := p.loader.Abs("", name)

	if _, err := p.loader.fs.Stat(path); err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateNotFound, "template %s not found", name).
			WithDetail("template", path)
	}

	tpl, err := p.set.FromFile(name)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateSyntax, "cannot parse template %s", name).
			WithDetail("template", path)
	}

	out, err := tpl.Execute(context(vars))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrRender, "cannot render template %s", name).
			WithDetail("template", path)
	}

	logger.Debug().Str("template", path).Int("bytes", len(out)).Msg("rendered template")
	return out, nil
}

// context drops keys that are not template identifiers. pongo2 refuses a
// context holding them and templates could not reference them anyway.
func context(vars Vars) pongo2.Context {
	logger := logging.GetLogger("render")
	ctx := make(pongo2.Context, len(vars))
	for k, v := range vars {
		if !identifier.MatchString(k) {
			logger.Trace().Str("key", k).Msg("key is not usable in templates")
			continue
		}
		ctx[k] = v
	}
	return ctx
}

// fsLoader implements pongo2.TemplateLoader on top of types.FS.
type fsLoader struct {
	fs   types.FS
	root string
}

// Abs resolves name against the search root. base, the including template,
// is ignored: relative names always start from the root. Names already below
// a relative root, as handed out by a tree scan, are kept.
func (l *fsLoader) Abs(base, name string) string {
	name = filepath.Clean(name)
	if filepath.IsAbs(name) || l.below(name) {
		return name
	}
	return filepath.Join(l.root, name)
}

func (l *fsLoader) below(name string) bool {
	if l.root == "." {
		return false
	}
	return name == l.root || strings.HasPrefix(name, l.root+string(filepath.Separator))
}

func (l *fsLoader) Get(path string) (io.Reader, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
