package rebatch

import (
	"path/filepath"

	"github.com/arthur-debert/rebatch/pkg/entries"
	"github.com/arthur-debert/rebatch/pkg/errors"
	"github.com/arthur-debert/rebatch/pkg/logging"
	"github.com/arthur-debert/rebatch/pkg/manifest"
	"github.com/arthur-debert/rebatch/pkg/paths"
	"github.com/arthur-debert/rebatch/pkg/session"
	"github.com/spf13/cobra"
)

// selectFlags are shared by every command that builds a working set
type selectFlags struct {
	patterns []string
	all      bool
	plan     string
	base     string
	code     string
}

func (f *selectFlags) register(cmd *cobra.Command, withPlan, withNames bool) {
	cmd.Flags().StringArrayVarP(&f.patterns, "select", "s", nil, MsgFlagSelect)
	cmd.Flags().BoolVarP(&f.all, "all", "a", false, MsgFlagAll)
	if withPlan {
		cmd.Flags().StringVar(&f.plan, "plan", "", MsgFlagPlan)
		cmd.MarkFlagsMutuallyExclusive("plan", "select")
		cmd.MarkFlagsMutuallyExclusive("plan", "all")
	}
	if withNames {
		cmd.Flags().StringVar(&f.base, "base", "", MsgFlagBase)
		cmd.Flags().StringVar(&f.code, "code", "", MsgFlagCode)
		if withPlan {
			cmd.MarkFlagsMutuallyExclusive("plan", "base")
			cmd.MarkFlagsMutuallyExclusive("plan", "code")
		}
	}
}

// prepared describes the working set a command acts on
type prepared struct {
	dir  string
	base string
	code string
}

// prepare opens the source directory and builds the working set, from a
// manifest or from the selection flags. Names are planned when --base or
// --code is given, and always when needNames is set, falling back to the
// configured rename template.
func (a *app) prepare(cmd *cobra.Command, s *session.Session, dir string, sel *selectFlags, needNames bool) (*prepared, error) {
	logger := logging.GetLogger("cmd.prepare")

	if sel.plan != "" {
		m, err := manifest.Load(sel.plan)
		if err != nil {
			return nil, err
		}
		if dir == "" {
			dir = m.Directory
		}
		p, err := a.open(s, dir)
		if err != nil {
			return nil, err
		}
		p.base, p.code = m.Base, m.Code
		logger.Debug().Str("plan", sel.plan).Int("entries", len(m.Entries)).Msg("Applying plan")
		return p, manifest.Apply(s.Registry(), m)
	}

	p, err := a.open(s, dir)
	if err != nil {
		return nil, err
	}
	if err := selectFiles(s.Registry(), sel.patterns, sel.all); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if !needNames && !flags.Changed("base") && !flags.Changed("code") {
		return p, nil
	}

	p.base, p.code = sel.base, sel.code
	if !flags.Changed("base") {
		p.base = a.cfg.Rename.Base
	}
	if !flags.Changed("code") {
		p.code = a.cfg.Rename.Code
	}
	if p.base == "" && p.code == "" {
		return nil, errors.New(errors.ErrInvalidInput, "no naming template: use --base and --code, --plan, or set rename.base")
	}
	return p, s.Plan(p.base, p.code)
}

func (a *app) open(s *session.Session, dir string) (*prepared, error) {
	abs, err := paths.Normalize(dir)
	if err != nil {
		return nil, err
	}
	if _, err := s.Open(abs); err != nil {
		return nil, err
	}
	return &prepared{dir: abs}, nil
}

// selectFiles adds the entries matching any pattern to the working set, in
// listing order. With no patterns and all unset nothing is selected.
func selectFiles(reg *entries.Registry, patterns []string, all bool) error {
	if all {
		reg.SelectAll()
		return nil
	}
	if len(patterns) == 0 {
		return nil
	}

	for _, p := range patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return errors.Wrapf(err, errors.ErrInvalidInput, "bad pattern %q", p)
		}
	}

	var names []string
	for _, e := range reg.Entries() {
		for _, p := range patterns {
			if ok, _ := filepath.Match(p, e.FileName()); ok {
				names = append(names, e.FileName())
				break
			}
		}
	}
	if len(names) == 0 {
		return errors.New(errors.ErrNoSelection, "no file matches the selection").
			WithDetail("patterns", patterns)
	}
	return reg.SelectByName(names...)
}
