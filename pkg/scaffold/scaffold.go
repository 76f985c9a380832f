// Package scaffold creates a new project from the bundled starter site.
package scaffold

import (
	"embed"
	stderrors "errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/pubtree/pkg/errors"
	"github.com/arthur-debert/pubtree/pkg/filesystem"
	"github.com/arthur-debert/pubtree/pkg/logging"
	"github.com/arthur-debert/pubtree/pkg/tree"
	"github.com/arthur-debert/pubtree/pkg/types"
)

//go:embed all:project
var project embed.FS

const projectRoot = "project"

// ReadmeName is the starter project's README, shown after init.
const ReadmeName = "README.md"

// Options configures Init.
type Options struct {
	// Force writes into a directory that is not empty, replacing files
	// with the same names.
	Force bool
	// DryRun lists the files without writing them.
	DryRun bool

	FileMode fs.FileMode
	DirMode  fs.FileMode
}

// Result lists what Init wrote, relative to Dest.
type Result struct {
	Dest  string
	Files []string
}

// Source returns the bundled project as a read-only filesystem rooted at
// Root.
func Source() types.FS {
	return filesystem.NewEmbedded(project)
}

// Root is the path of the bundled project inside Source.
func Root() string {
	return projectRoot
}

// Readme returns the README of the bundled project.
func Readme() (string, error) {
	data, err := project.ReadFile(projectRoot + "/" + ReadmeName)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "bundled README is missing")
	}
	return string(data), nil
}

// Init copies the bundled project into dest on fsys. A dest that exists
// and is not an empty directory is refused unless opts.Force is set.
func Init(fsys types.FS, dest string, opts Options) (*Result, error) {
	logger := logging.GetLogger("scaffold")
	if opts.FileMode == 0 {
		opts.FileMode = 0644
	}
	if opts.DirMode == 0 {
		opts.DirMode = 0755
	}

	if err := checkDest(fsys, dest, opts.Force); err != nil {
		return nil, err
	}

	root, err := tree.Scan(Source(), projectRoot, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot read bundled project")
	}

	result := &Result{Dest: dest}
	for _, leaf := range tree.Leaves(root) {
		rel, err := relPath(leaf)
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, filepath.ToSlash(rel))
	}
	if opts.DryRun {
		logger.Info().Str("dest", dest).Int("files", len(result.Files)).Msg("dry run, nothing written")
		return result, nil
	}

	err = tree.Walk(root, func(entry tree.Entry) error {
		rel, err := relPath(entry)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)

		switch entry := entry.(type) {
		case *tree.Dir:
			if err := fsys.MkdirAll(target, opts.DirMode); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory %s", target).
					WithDetail("path", target)
			}
		case *tree.Leaf:
			data, err := entry.Read(Source())
			if err != nil {
				return errors.Wrapf(err, errors.ErrInternal, "cannot read bundled %s", rel)
			}
			if err := fsys.WriteFile(target, data, opts.FileMode); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", target).
					WithDetail("path", target)
			}
			logger.Debug().Str("path", target).Msg("created")
		}
		return nil
	}, nil)
	if err != nil {
		return result, err
	}

	logger.Info().Str("dest", dest).Int("files", len(result.Files)).Msg("project initialized")
	return result, nil
}

func relPath(entry tree.Entry) (string, error) {
	rel, err := filepath.Rel(projectRoot, entry.Path())
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "bundled path outside project")
	}
	return rel, nil
}

func checkDest(fsys types.FS, dest string, force bool) error {
	info, err := fsys.Stat(dest)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", dest).WithDetail("path", dest)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrAlreadyExists, "%s exists and is not a directory", dest).
			WithDetail("path", dest)
	}
	if force {
		return nil
	}
	entries, err := fsys.ReadDir(dest)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read directory %s", dest).WithDetail("path", dest)
	}
	if len(entries) > 0 {
		return errors.Newf(errors.ErrAlreadyExists, "directory %s already exists and is not empty", dest).
			WithDetail("path", dest)
	}
	return nil
}
