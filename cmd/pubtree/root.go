// Package pubtree builds the pubtree command line.
package pubtree

import (
	"embed"
	"io/fs"
	"os"

	"github.com/arthur-debert/pubtree/internal/version"
	"github.com/arthur-debert/pubtree/pkg/cobrax/topics"
	"github.com/arthur-debert/pubtree/pkg/logging"
	"github.com/arthur-debert/pubtree/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

type rootOptions struct {
	verbosity int
	dryRun    bool
	force     bool
	diff      bool
	input     string
	output    string
	initDir   string
	format    string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "pubtree",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logOpts := logging.DefaultOptions(opts.verbosity)
			logOpts.Color = logColor(opts.format)
			logging.Setup(logOpts)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.initDir != "" {
				return runInit(cmd, opts)
			}
			return runPublish(cmd, opts)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&opts.input, "input", "i", ".", MsgFlagInput)
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", "", MsgFlagFormat)

	// Publish flags
	rootCmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "d", false, MsgFlagDryRun)
	rootCmd.Flags().BoolVarP(&opts.force, "force", "f", false, MsgFlagForce)
	rootCmd.Flags().BoolVar(&opts.diff, "diff", false, MsgFlagDiff)
	rootCmd.Flags().StringVarP(&opts.output, "output", "o", "", MsgFlagOutput)
	rootCmd.Flags().StringVar(&opts.initDir, "init", "", MsgFlagInit)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newGenConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	helpTopics, _ := fs.Sub(topicFiles, "topics")
	if err := topics.Initialize(rootCmd, helpTopics, topics.Options{
		Extensions: []string{".md"},
		Renderer:   topicRenderer(rootCmd, opts),
	}); err != nil {
		log.Warn().Err(err).Msg("help topics unavailable")
	}

	return rootCmd
}

// logColor colors console logs only when --format asks for terminal output
// or, with auto, when stderr is a color terminal and NO_COLOR is unset.
func logColor(format string) bool {
	f, err := ui.ParseFormat(format)
	if err != nil || f == ui.FormatAuto {
		f = ui.DetectFormat(os.Stderr)
	}
	return f == ui.FormatTerminal
}

// topicRenderer styles markdown topics when the output is a terminal.
func topicRenderer(rootCmd *cobra.Command, opts *rootOptions) topics.Renderer {
	return topics.RendererFunc(func(content, ext string) string {
		if ext != ".md" {
			return content
		}
		format, err := ui.ParseFormat(opts.format)
		if err != nil || format == ui.FormatAuto {
			format = ui.DetectFormat(rootCmd.OutOrStdout())
		}
		return ui.RenderMarkdown(content, format, readmeWidth)
	})
}
