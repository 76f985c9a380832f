package initialize

import (
	"github.com/arthur-debert/pubtree/pkg/config"
	"github.com/arthur-debert/pubtree/pkg/errors"
	"github.com/arthur-debert/pubtree/pkg/filesystem"
	"github.com/arthur-debert/pubtree/pkg/logging"
	"github.com/arthur-debert/pubtree/pkg/scaffold"
	"github.com/arthur-debert/pubtree/pkg/types"
)

// InitProjectOptions defines the options for the InitProject command.
type InitProjectOptions struct {
	// Dest is the directory the starter project is written to.
	Dest string
	// Force writes into a directory that is not empty.
	Force bool
	// DryRun lists the files without writing them.
	DryRun bool
	// Settings provides file and directory permissions.
	Settings   *config.Settings
	FileSystem types.FS
}

// InitResult is the outcome of InitProject.
type InitResult struct {
	Dest   string
	Files  []string
	DryRun bool
	// Readme is the starter project's README, in Markdown.
	Readme string
}

// InitProject creates a new project from the bundled starter site.
func InitProject(opts InitProjectOptions) (*InitResult, error) {
	log := logging.GetLogger("commands.initialize")
	log.Debug().Str("command", "InitProject").Str("dest", opts.Dest).Msg("Executing command")

	if opts.Dest == "" {
		return nil, errors.New(errors.ErrInvalidInput, "project directory cannot be empty")
	}
	settings := opts.Settings
	if settings == nil {
		settings = config.Default()
	}
	fileMode, err := settings.Permissions.FileMode()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsLoad, "invalid settings")
	}
	dirMode, err := settings.Permissions.DirMode()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsLoad, "invalid settings")
	}
	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	created, err := scaffold.Init(fsys, opts.Dest, scaffold.Options{
		Force:    opts.Force,
		DryRun:   opts.DryRun,
		FileMode: fileMode,
		DirMode:  dirMode,
	})
	if err != nil {
		return nil, err
	}

	readme, err := scaffold.Readme()
	if err != nil {
		return nil, err
	}

	log.Info().Str("command", "InitProject").Int("files", len(created.Files)).Msg("Command finished")
	return &InitResult{
		Dest:   created.Dest,
		Files:  created.Files,
		DryRun: opts.DryRun,
		Readme: readme,
	}, nil
}
