// Package rebatch is the command-line front end: it loads configuration,
// builds a session over the OS filesystem and renders results.
package rebatch

import (
	"embed"
	"io"
	"os"

	"github.com/arthur-debert/rebatch/internal/version"
	"github.com/arthur-debert/rebatch/pkg/cobrax/topics"
	"github.com/arthur-debert/rebatch/pkg/config"
	"github.com/arthur-debert/rebatch/pkg/errors"
	"github.com/arthur-debert/rebatch/pkg/filesystem"
	"github.com/arthur-debert/rebatch/pkg/logging"
	"github.com/arthur-debert/rebatch/pkg/types"
	"github.com/arthur-debert/rebatch/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed help/*.md
var helpFS embed.FS

// annotationDefaultsOnError marks commands that still run on a broken user config
const annotationDefaultsOnError = "rebatch/defaults-on-error"

// app holds global flag values and the state shared by every command
type app struct {
	verbosity  int
	dryRun     bool
	format     string
	configFile string

	cfg   *config.Config
	fs    types.FS
	stdin *os.File
}

func newApp() *app {
	return &app{fs: filesystem.NewOS(), stdin: os.Stdin}
}

// NewRootCmd creates the root command with every subcommand attached
func NewRootCmd() *cobra.Command {
	return newRootCmd(newApp())
}

func newRootCmd(a *app) *cobra.Command {
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "rebatch",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Short(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(a.verbosity)
			logging.LogCommand(cmd.CommandPath(), args)
			return a.loadConfig(cmd)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&a.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&a.format, "format", "", MsgFlagFormat)
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", MsgFlagConfig)

	rootCmd.AddGroup(&cobra.Group{ID: "files", Title: "FILES:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newPlanCmd(a))
	rootCmd.AddCommand(newRenameCmd(a))
	rootCmd.AddCommand(newTransferCmd(a, types.OperationCopy))
	rootCmd.AddCommand(newTransferCmd(a, types.OperationMove))
	rootCmd.AddCommand(newConflictsCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if _, err := topics.Initialize(rootCmd, helpFS, "help", topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// loadConfig merges defaults, user file, environment and the global flags
// that were set explicitly
func (a *app) loadConfig(cmd *cobra.Command) error {
	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("dry-run") {
		overrides["transfer.dry_run"] = a.dryRun
	}
	if cmd.Flags().Changed("format") {
		overrides["output.format"] = a.format
	}

	cfg, err := config.Load(config.LoadOptions{ConfigFile: a.configFile, Overrides: overrides})
	if err != nil {
		if _, ok := cmd.Annotations[annotationDefaultsOnError]; !ok && cmd.Name() != "help" {
			return err
		}
		log.Warn().Err(err).Msg("Configuration ignored, using defaults")
		if cfg, err = config.Defaults(); err != nil {
			return err
		}
	}
	a.cfg = cfg
	return nil
}

// outputFormat is the configured format, or auto before configuration is loaded
func (a *app) outputFormat() ui.Format {
	name := a.format
	if a.cfg != nil {
		name = a.cfg.Output.Format
	}
	f, err := ui.ParseFormat(name)
	if err != nil {
		return ui.FormatAuto
	}
	return f
}

func (a *app) renderer(w io.Writer) (ui.Renderer, error) {
	return ui.NewRenderer(a.outputFormat(), w)
}

// richOutput reports whether w gets terminal-formatted output
func (a *app) richOutput(w io.Writer) bool {
	switch a.outputFormat() {
	case ui.FormatTerminal:
		return true
	case ui.FormatAuto:
		f, ok := w.(*os.File)
		return ok && ui.DetectFormat(f) == ui.FormatTerminal
	default:
		return false
	}
}

// Execute runs the command line and returns the process exit status. Errors
// are rendered on stderr in the configured format.
func Execute() int {
	a := newApp()
	rootCmd := newRootCmd(a)
	if err := rootCmd.Execute(); err != nil {
		reportError(a, os.Stderr, err)
		return 1
	}
	return 0
}

func reportError(a *app, w io.Writer, err error) {
	r, rerr := a.renderer(w)
	if rerr != nil {
		r, _ = ui.NewRenderer(ui.FormatText, w)
	}
	if rerr := r.RenderError(err); rerr != nil {
		log.Error().Err(err).Msg("Command failed")
	}
}

// partialFailure is returned after rendering a batch in which some files failed
func partialFailure(result *types.TransferResult) error {
	return errors.Newf(errors.ErrTransferFailed, "%d of %d files failed", result.Counts.Failed, result.Counts.Total()).
		WithDetail("status", string(result.Status))
}
