package genconfig

import (
	"path/filepath"

	"github.com/arthur-debert/pubtree/pkg/config"
	"github.com/arthur-debert/pubtree/pkg/errors"
	"github.com/arthur-debert/pubtree/pkg/filesystem"
	"github.com/arthur-debert/pubtree/pkg/logging"
	"github.com/arthur-debert/pubtree/pkg/types"
)

// FileName is the project settings file written by GenConfig.
const FileName = ".pubtree.toml"

// GenConfigOptions holds options for the genconfig command
type GenConfigOptions struct {
	// InputDir is the project whose effective settings are printed, and
	// where the file is written.
	InputDir string
	// Settings defaults to loading the settings of InputDir.
	Settings *config.Settings
	// Write stores the file in InputDir instead of only returning it.
	Write bool
	// Commented comments out every value line.
	Commented  bool
	FileSystem types.FS
}

// GenConfigResult is the outcome of GenConfig.
type GenConfigResult struct {
	ConfigContent string
	FilesWritten  []string
}

// GenConfig outputs or writes the effective settings as TOML
func GenConfig(opts GenConfigOptions) (*GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	settings := opts.Settings
	if settings == nil {
		var err error
		if settings, err = config.Load(opts.InputDir, nil); err != nil {
			return nil, err
		}
	}

	content, err := config.GenerateConfigContent(settings, opts.Commented)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot encode settings")
	}
	result := &GenConfigResult{ConfigContent: content, FilesWritten: []string{}}

	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	target := filepath.Join(opts.InputDir, FileName)
	if _, err := fsys.Stat(target); err == nil {
		logger.Warn().Str("path", target).Msg("Config file already exists, skipping")
		return result, nil
	}
	if err := fsys.WriteFile(target, []byte(content), 0644); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileWrite, "failed to write config to %s", target).
			WithDetail("path", target)
	}

	logger.Info().Str("path", target).Msg("Written config file")
	result.FilesWritten = append(result.FilesWritten, target)
	return result, nil
}
