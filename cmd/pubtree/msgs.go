package pubtree

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Publish a static site from templates and site data"
	MsgGenConfigShort  = "Print the effective settings as TOML"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgInitFormat    = "copying example project to %s\n"
	MsgInitDryRun    = "dry run, would create in %s:\n"
	MsgFileItem      = "  %s\n"
	MsgConfigWritten = "Written %s\n"
	MsgConfigExists  = "%s already exists, nothing written\n"
	MsgVersionFormat = "pubtree version %s\n"
	MsgCommitFormat  = "  commit: %s\n"
	MsgBuiltFormat   = "  built:  %s\n"

	// Error messages
	MsgErrSettings  = "failed to load settings: %w"
	MsgErrFormat    = "invalid output format: %w"
	MsgErrInit      = "failed to initialize project: %w"
	MsgErrGenConfig = "failed to generate config: %w"
	MsgErrPaths     = "invalid path: %w"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Don't write anything, only report what would change"
	MsgFlagForce   = "Don't ask before overwriting edited files"
	MsgFlagDiff    = "Show a unified diff of every rendered file that changes"
	MsgFlagInput   = "Directory containing config.yml, pages/ and sources/"
	MsgFlagOutput  = "Destination directory (defaults to ~/.public_html)"
	MsgFlagInit    = "Initialize a new project in `DIR` instead of publishing"
	MsgFlagFormat  = "Output format: auto, term, text or json"
	MsgFlagWrite   = "Write .pubtree.toml into the input directory"
	MsgFlagComment = "Comment out every value"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
