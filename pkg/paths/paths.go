package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/pubtree/pkg/errors"
)

const (
	// EnvHome is the standard home directory variable
	EnvHome = "HOME"

	// AppDirName is the directory name for pubtree files under XDG dirs
	AppDirName = "pubtree"

	// LogFileName is the name of the log file
	LogFileName = "pubtree.log"

	// DefaultOutputDir is the output directory, relative to home, used
	// when none is configured
	DefaultOutputDir = ".public_html"
)

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir := homeDir()
	if homeDir == "" {
		return path
	}
	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	// ~user is not expanded
	return path
}

// Normalize expands ~, makes path absolute and cleans it.
func Normalize(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}
	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path of %s", path)
	}
	return filepath.Clean(abs), nil
}

// DefaultOutput returns ~/.public_html.
func DefaultOutput() string {
	return filepath.Join(homeDir(), DefaultOutputDir)
}

// StateDir returns the XDG state directory for pubtree.
func StateDir() string {
	xdg.Reload()
	return filepath.Join(xdg.StateHome, AppDirName)
}

// LogFilePath returns the log file location.
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

func homeDir() string {
	if home := os.Getenv(EnvHome); home != "" {
		return home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}
