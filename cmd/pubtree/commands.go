package pubtree

import (
	"fmt"

	"github.com/arthur-debert/pubtree/internal/version"
	"github.com/arthur-debert/pubtree/pkg/commands"
	"github.com/arthur-debert/pubtree/pkg/config"
	"github.com/arthur-debert/pubtree/pkg/logging"
	"github.com/arthur-debert/pubtree/pkg/paths"
	"github.com/arthur-debert/pubtree/pkg/treesync"
	"github.com/arthur-debert/pubtree/pkg/ui"
	"github.com/arthur-debert/pubtree/pkg/ui/confirmations"
	"github.com/spf13/cobra"
)

const readmeWidth = 80

// loadSettings returns the normalized input directory and the settings
// of the project in it, with command-line overrides applied.
func loadSettings(opts *rootOptions) (string, *config.Settings, error) {
	input, err := paths.Normalize(opts.input)
	if err != nil {
		return "", nil, fmt.Errorf(MsgErrPaths, err)
	}

	overrides := map[string]interface{}{}
	if opts.output != "" {
		overrides["paths.output"] = opts.output
	}
	if opts.format != "" {
		overrides["ui.format"] = opts.format
	}

	settings, err := config.Load(input, overrides)
	if err != nil {
		return "", nil, fmt.Errorf(MsgErrSettings, err)
	}
	return input, settings, nil
}

func runPublish(cmd *cobra.Command, opts *rootOptions) error {
	logger := logging.GetLogger("cmd.publish")

	input, settings, err := loadSettings(opts)
	if err != nil {
		return err
	}
	format, err := ui.ParseFormat(settings.UI.Format)
	if err != nil {
		return fmt.Errorf(MsgErrFormat, err)
	}

	out := cmd.OutOrStdout()
	renderer, err := ui.NewRenderer(format, out)
	if err != nil {
		return fmt.Errorf(MsgErrFormat, err)
	}

	output := settings.Paths.Output
	if output == "" {
		output = paths.DefaultOutput()
	}
	if output, err = paths.Normalize(output); err != nil {
		return fmt.Errorf(MsgErrPaths, err)
	}

	var resolver treesync.ConflictResolver
	if !opts.force {
		resolver = confirmations.NewConsoleResolver(cmd.InOrStdin(), out)
	}

	logger.Info().
		Str("input", input).
		Str("output", output).
		Bool("dryRun", opts.dryRun).
		Bool("force", opts.force).
		Msg("Starting publish")

	result, err := commands.Publish(commands.PublishOptions{
		InputDir:  input,
		OutputDir: output,
		Settings:  settings,
		Resolver:  resolver,
		Printer:   ui.NewPrinter(out, format),
		Force:     opts.force,
		DryRun:    opts.dryRun,
		Diff:      opts.diff,
	})
	if result != nil {
		if rerr := renderer.RenderResult(result); rerr != nil {
			logger.Warn().Err(rerr).Msg("cannot render result")
		}
	}
	return err
}

func runInit(cmd *cobra.Command, opts *rootOptions) error {
	_, settings, err := loadSettings(opts)
	if err != nil {
		return err
	}
	dest, err := paths.Normalize(opts.initDir)
	if err != nil {
		return fmt.Errorf(MsgErrPaths, err)
	}

	result, err := commands.InitProject(commands.InitProjectOptions{
		Dest:     dest,
		Force:    opts.force,
		DryRun:   opts.dryRun,
		Settings: settings,
	})
	if err != nil {
		return fmt.Errorf(MsgErrInit, err)
	}

	out := cmd.OutOrStdout()
	if result.DryRun {
		fmt.Fprintf(out, MsgInitDryRun, result.Dest)
	} else {
		fmt.Fprintf(out, MsgInitFormat, result.Dest)
	}
	for _, file := range result.Files {
		fmt.Fprintf(out, MsgFileItem, file)
	}

	format, _ := ui.ParseFormat(settings.UI.Format)
	if format == ui.FormatAuto {
		format = ui.DetectFormat(out)
	}
	if !result.DryRun && format == ui.FormatTerminal {
		fmt.Fprintln(out)
		fmt.Fprint(out, ui.RenderMarkdown(result.Readme, format, readmeWidth))
	}
	return nil
}

func newGenConfigCmd(root *rootOptions) *cobra.Command {
	var write, commented bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, settings, err := loadSettings(root)
			if err != nil {
				return err
			}

			result, err := commands.GenConfig(commands.GenConfigOptions{
				InputDir:  input,
				Settings:  settings,
				Write:     write,
				Commented: commented,
			})
			if err != nil {
				return fmt.Errorf(MsgErrGenConfig, err)
			}

			out := cmd.OutOrStdout()
			if !write {
				fmt.Fprint(out, result.ConfigContent)
				return nil
			}
			if len(result.FilesWritten) == 0 {
				fmt.Fprintf(out, MsgConfigExists, input)
			}
			for _, path := range result.FilesWritten {
				fmt.Fprintf(out, MsgConfigWritten, path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&commented, "commented", false, MsgFlagComment)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionFormat, version.Version)
			fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			fmt.Fprintf(out, MsgBuiltFormat, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
