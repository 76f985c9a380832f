// Package commands provides high-level command implementations for pubtree.
//
// This package contains the command orchestration layer that coordinates
// between the CLI interface and the publishing packages.
//
// Each command is implemented in its own subdirectory:
//   - publish/    - Publish command
//   - initialize/ - InitProject command
//   - genconfig/  - GenConfig command
//
// This file re-exports the command functions so the CLI depends on a
// single package.
package commands

import (
	"github.com/arthur-debert/pubtree/pkg/commands/genconfig"
	"github.com/arthur-debert/pubtree/pkg/commands/initialize"
	"github.com/arthur-debert/pubtree/pkg/commands/publish"
	"github.com/arthur-debert/pubtree/pkg/ui/display"
)

// PublishOptions configures Publish.
type PublishOptions = publish.Options

// Publish renders and copies a project into its output tree.
func Publish(opts PublishOptions) (*display.PublishResult, error) {
	return publish.Publish(opts)
}

// InitProjectOptions configures InitProject.
type InitProjectOptions = initialize.InitProjectOptions

// InitResult is the outcome of InitProject.
type InitResult = initialize.InitResult

// InitProject creates a new project from the bundled starter site.
func InitProject(opts InitProjectOptions) (*InitResult, error) {
	return initialize.InitProject(opts)
}

// GenConfigOptions configures GenConfig.
type GenConfigOptions = genconfig.GenConfigOptions

// GenConfigResult is the outcome of GenConfig.
type GenConfigResult = genconfig.GenConfigResult

// GenConfig outputs or writes the effective settings.
func GenConfig(opts GenConfigOptions) (*GenConfigResult, error) {
	return genconfig.GenConfig(opts)
}
