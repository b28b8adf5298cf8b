package rebatch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/rebatch/internal/version"
	"github.com/arthur-debert/rebatch/pkg/config"
	"github.com/arthur-debert/rebatch/pkg/entries"
	"github.com/arthur-debert/rebatch/pkg/errors"
	"github.com/arthur-debert/rebatch/pkg/logging"
	"github.com/arthur-debert/rebatch/pkg/manifest"
	"github.com/arthur-debert/rebatch/pkg/paths"
	"github.com/arthur-debert/rebatch/pkg/registry"
	"github.com/arthur-debert/rebatch/pkg/session"
	"github.com/arthur-debert/rebatch/pkg/transfer"
	"github.com/arthur-debert/rebatch/pkg/types"
	"github.com/arthur-debert/rebatch/pkg/ui"
	"github.com/arthur-debert/rebatch/pkg/ui/confirmations"
	"github.com/arthur-debert/rebatch/pkg/ui/display"
	"github.com/arthur-debert/rebatch/pkg/view"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// newSession builds a session from the configuration. The returned func
// finishes the progress bar, if one was started.
func (a *app) newSession(cmd *cobra.Command, op types.Operation, policy types.Policy) (*session.Session, func()) {
	opts := session.Options{
		Listing: entries.Options{IncludeHidden: a.cfg.Listing.IncludeHidden},
		Transfer: transfer.Options{
			DryRun:     a.cfg.Transfer.DryRun,
			CopySuffix: a.cfg.Transfer.CopySuffix,
		},
	}

	if policy == types.PolicyNone && ui.IsTerminal(a.stdin) {
		opts.Transfer.Resolver = confirmations.NewConsoleResolver()
	}

	finish := func() {}
	if a.cfg.Transfer.Progress && op != "" && a.richOutput(cmd.OutOrStdout()) && ui.IsTerminal(os.Stderr) {
		opts.Transfer.Progress, finish = newProgress(op.Verb())
	}
	return session.New(a.fs, opts), finish
}

// policy resolves --on-conflict, falling back to transfer.on_conflict
func (a *app) policy(cmd *cobra.Command, flag string) (types.Policy, error) {
	if !cmd.Flags().Changed("on-conflict") {
		return a.cfg.Policy(), nil
	}
	return registry.LookupPolicy(flag)
}

func newListCmd(a *app) *cobra.Command {
	var (
		sel    selectFlags
		filter string
		sortBy string
		desc   bool
	)

	cmd := &cobra.Command{
		Use:     "list DIR",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		Long:    MsgListLong,
		Example: MsgListExample,
		GroupID: "files",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := a.cfg.Listing.Sort
			if cmd.Flags().Changed("sort") {
				k, err := view.ParseSortKey(sortBy)
				if err != nil {
					return err
				}
				key = k
			}
			direction := a.cfg.SortDirection()
			if cmd.Flags().Changed("desc") {
				direction = view.Ascending
				if desc {
					direction = view.Descending
				}
			}

			s, _ := a.newSession(cmd, "", types.PolicyNone)
			p, err := a.open(s, args[0])
			if err != nil {
				return err
			}
			if err := selectFiles(s.Registry(), sel.patterns, sel.all); err != nil {
				return err
			}

			r, err := a.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return r.RenderResult(display.NewListing(p.dir, s.Registry().Entries(), filter, key, direction))
		},
	}

	sel.register(cmd, false, false)
	cmd.Flags().StringVarP(&filter, "filter", "f", "", MsgFlagFilter)
	cmd.Flags().StringVar(&sortBy, "sort", "", MsgFlagSort)
	cmd.Flags().BoolVar(&desc, "desc", false, MsgFlagDesc)
	_ = cmd.RegisterFlagCompletionFunc("sort", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return view.SortKeyNames(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func newPlanCmd(a *app) *cobra.Command {
	var (
		sel    selectFlags
		output string
	)

	cmd := &cobra.Command{
		Use:     "plan DIR",
		Short:   MsgPlanShort,
		Long:    MsgPlanLong,
		Example: MsgPlanExample,
		GroupID: "files",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _ := a.newSession(cmd, "", types.PolicyNone)
			p, err := a.prepare(cmd, s, args[0], &sel, true)
			if err != nil {
				return err
			}

			report := &display.PlanReport{
				Manifest: manifest.FromSelection(p.dir, p.base, p.code, s.Registry().Selected()),
			}
			if output != "" {
				if err := manifest.Save(output, report.Manifest); err != nil {
					return err
				}
				report.SavedTo = output
			}

			r, err := a.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return r.RenderResult(report)
		},
	}

	sel.register(cmd, false, true)
	cmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)
	return cmd
}

func newRenameCmd(a *app) *cobra.Command {
	var (
		sel        selectFlags
		onConflict string
	)

	cmd := &cobra.Command{
		Use:     "rename [DIR]",
		Aliases: []string{"rn"},
		Short:   MsgRenameShort,
		Long:    MsgRenameLong,
		Example: MsgRenameExample,
		GroupID: "files",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			return a.runBatch(cmd, types.OperationRename, dir, "", &sel, onConflict)
		},
	}

	sel.register(cmd, true, true)
	addConflictFlag(cmd, &onConflict)
	return cmd
}

func newTransferCmd(a *app, op types.Operation) *cobra.Command {
	var (
		sel        selectFlags
		onConflict string
		to         string
	)

	cmd := &cobra.Command{
		Use:     string(op) + " [DIR] [DEST]",
		Long:    MsgTransferLong,
		GroupID: "files",
		Args:    cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dir, dest string
			switch {
			case len(args) == 2:
				dir, dest = args[0], args[1]
			case len(args) == 1 && sel.plan != "":
				dest = args[0]
			case len(args) == 1:
				dir = args[0]
			}
			if to != "" {
				if dest != "" {
					return errors.New(errors.ErrInvalidInput, "destination given twice: use DEST or --to")
				}
				dest = to
			}
			if dest == "" {
				return errors.Newf(errors.ErrInvalidDestination, "%s needs a destination directory", op)
			}
			return a.runBatch(cmd, op, dir, dest, &sel, onConflict)
		},
	}

	switch op {
	case types.OperationCopy:
		cmd.Short, cmd.Example, cmd.Aliases = MsgCopyShort, MsgCopyExample, []string{"cp"}
	case types.OperationMove:
		cmd.Short, cmd.Example, cmd.Aliases = MsgMoveShort, MsgMoveExample, []string{"mv"}
	}

	sel.register(cmd, true, true)
	addConflictFlag(cmd, &onConflict)
	cmd.Flags().StringVarP(&to, "to", "t", "", MsgFlagTo)
	return cmd
}

func addConflictFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "on-conflict", "c", "", MsgFlagOnConflict)
	_ = cmd.RegisterFlagCompletionFunc("on-conflict", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return registry.Policies().List(), cobra.ShellCompDirectiveNoFileComp
	})
}

// runBatch prepares the working set, runs op and renders the result. A
// batch where some files failed is rendered, then reported as an error.
func (a *app) runBatch(cmd *cobra.Command, op types.Operation, dir, dest string, sel *selectFlags, onConflict string) error {
	logger := logging.GetLogger("cmd." + string(op))

	policy, err := a.policy(cmd, onConflict)
	if err != nil {
		return err
	}

	s, finish := a.newSession(cmd, op, policy)
	defer finish()

	p, err := a.prepare(cmd, s, dir, sel, op == types.OperationRename)
	if err != nil {
		return err
	}
	if op.NeedsDestination() {
		if dest, err = paths.Normalize(dest); err != nil {
			return err
		}
	}

	logger.Info().
		Str("source", p.dir).
		Str("destination", dest).
		Str("policy", string(policy)).
		Bool("dry_run", a.cfg.Transfer.DryRun).
		Msg("Running batch")

	result, err := s.Run(op, dest, policy)
	finish()

	r, rerr := a.renderer(cmd.OutOrStdout())
	if rerr != nil {
		return rerr
	}
	if err != nil {
		renderRunError(r, err, result, &display.ConflictReport{
			Operation: op,
			Source:    p.dir,
			Checked:   len(s.Registry().Selected()),
		})
		return err
	}

	if err := r.RenderResult(result); err != nil {
		return err
	}
	if result.Status == types.StatusPartialFailure {
		return partialFailure(result)
	}
	return nil
}

// renderRunError renders what a failed run still has to show: the conflicts
// that stopped it, or the outcomes of files already touched.
func renderRunError(r ui.Renderer, err error, result *types.TransferResult, report *display.ConflictReport) {
	switch {
	case result == nil:
	case errors.IsErrorCode(err, errors.ErrConflictsUnresolved):
		report.Destination = result.Destination
		report.Conflicts = result.Conflicts
		_ = r.RenderResult(report)
	case result.Status != types.StatusAborted:
		_ = r.RenderResult(result)
	}
}

func newConflictsCmd(a *app) *cobra.Command {
	var sel selectFlags

	cmd := &cobra.Command{
		Use:     "conflicts DIR [DEST]",
		Short:   MsgConflictsShort,
		Long:    MsgConflictsLong,
		Example: MsgConflictsExample,
		GroupID: "files",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, dest := types.OperationRename, ""
			if len(args) == 2 {
				op = types.OperationCopy
			}

			s, _ := a.newSession(cmd, "", types.PolicyNone)
			p, err := a.prepare(cmd, s, args[0], &sel, op == types.OperationRename)
			if err != nil {
				return err
			}
			dest = p.dir
			if op == types.OperationCopy {
				if dest, err = paths.Normalize(args[1]); err != nil {
					return err
				}
			}

			found, err := s.Conflicts(op, dest)
			if err != nil {
				return err
			}

			r, err := a.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return r.RenderResult(&display.ConflictReport{
				Operation:   op,
				Source:      p.dir,
				Destination: dest,
				Checked:     len(s.Registry().Selected()),
				Conflicts:   found,
			})
		},
	}

	sel.register(cmd, true, true)
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:         "config",
		Short:       MsgConfigShort,
		Long:        MsgConfigLong,
		GroupID:     "misc",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationDefaultsOnError: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			content := config.GenerateConfigContent()
			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}

			path := filepath.Join(paths.New().ConfigDir(), paths.ConfigFileNames[0])
			if _, err := os.Stat(path); err == nil {
				return errors.Newf(errors.ErrAlreadyExists, "%s already exists", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return errors.Wrap(err, errors.ErrFileCreate, "cannot create config directory")
			}
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return errors.Wrap(err, errors.ErrFileWrite, "cannot write config file")
			}

			r, err := a.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return r.RenderMessage(fmt.Sprintf(MsgConfigWritten, path))
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       MsgVersionShort,
		GroupID:     "misc",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationDefaultsOnError: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Annotations:           map[string]string{annotationDefaultsOnError: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			switch args[0] {
			case "bash":
				err = cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
			case "zsh":
				err = cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				err = cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				err = cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			if err != nil {
				log.Error().Err(err).Str("shell", args[0]).Msg("Failed to generate completion")
			}
			return err
		},
	}
}
