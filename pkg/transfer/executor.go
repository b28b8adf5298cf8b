package transfer

import (
	"path/filepath"
	"time"

	"github.com/arthur-debert/rebatch/pkg/conflicts"
	"github.com/arthur-debert/rebatch/pkg/errors"
	"github.com/arthur-debert/rebatch/pkg/filesystem"
	"github.com/arthur-debert/rebatch/pkg/logging"
	"github.com/arthur-debert/rebatch/pkg/planner"
	"github.com/arthur-debert/rebatch/pkg/types"
)

// Request describes one batch
type Request struct {
	Entries     []types.FileEntry
	Destination string
	Operation   types.Operation
	Policy      types.Policy
}

// ProgressFunc is called after every processed entry
type ProgressFunc func(done, total int)

// Options configure an Executor
type Options struct {
	DryRun     bool
	CopySuffix string
	Resolver   Resolver
	Progress   ProgressFunc
}

// Executor runs batches against a filesystem
type Executor struct {
	fs   types.FS
	opts Options
}

// NewExecutor creates a new transfer executor
func NewExecutor(fsys types.FS, opts Options) *Executor {
	if opts.CopySuffix == "" {
		opts.CopySuffix = conflicts.DefaultCopySuffix
	}
	return &Executor{fs: fsys, opts: opts}
}

// Execute runs a batch. The returned result is never nil. An error is
// returned only when the batch was aborted before any filesystem mutation;
// per-entry failures are reported on the result's outcomes.
func (x *Executor) Execute(req Request) (*types.TransferResult, error) {
	logger := logging.GetLogger("transfer.executor").With().
		Str("operation", string(req.Operation)).
		Int("entry_count", len(req.Entries)).
		Bool("dry_run", x.opts.DryRun).
		Logger()
	done := logging.LogOperationStart(logger, "transfer")
	defer done()

	result := &types.TransferResult{
		Operation:   req.Operation,
		Policy:      req.Policy,
		Destination: req.Destination,
		DryRun:      x.opts.DryRun,
		StartedAt:   time.Now(),
	}
	if len(req.Entries) > 0 {
		result.Source = req.Entries[0].Directory
	}
	if req.Operation == types.OperationRename {
		result.Destination = result.Source
	}

	abort := func(err error) (*types.TransferResult, error) {
		result.Status = types.StatusAborted
		result.Duration = time.Since(result.StartedAt)
		logger.Warn().Err(err).Msg("Batch aborted before any change")
		return result, err
	}

	if err := x.Validate(req); err != nil {
		return abort(err)
	}

	found := x.detect(req)
	result.Conflicts = found

	policy := req.Policy
	if len(found) > 0 && policy == types.PolicyNone {
		var err error
		policy, err = x.resolve(found)
		if err != nil {
			return abort(err)
		}
	}
	result.Policy = policy

	if len(found) > 0 {
		logger.Info().Int("conflicts", len(found)).Str("policy", string(policy)).Msg("Conflicts resolved by policy")
	}

	b := &batch{
		fs:      x.fs,
		dryRun:  x.opts.DryRun,
		suffix:  x.opts.CopySuffix,
		sources: make(map[string]types.EntryID, len(req.Entries)),
	}
	for _, e := range req.Entries {
		b.sources[filepath.Clean(e.Path())] = e.ID
	}

	steps := x.route(b, req, types.NewConflictSet(found), policy)

	for i, s := range steps {
		outcome := x.apply(req.Operation, s)
		result.Add(outcome)

		if outcome.Failed() {
			logger.Warn().Err(outcome.Error).Str("file", outcome.FileName).Msg("Entry failed")
		} else {
			logger.Debug().Str("file", outcome.FileName).Str("action", string(outcome.Action)).
				Str("destination", outcome.Destination).Msg("Entry processed")
		}

		if x.opts.Progress != nil {
			x.opts.Progress(i+1, len(steps))
		}
	}

	result.Finalize()
	result.Duration = time.Since(result.StartedAt)

	logger.Info().
		Str("status", string(result.Status)).
		Int("transferred", result.Counts.Transferred).
		Int("copied_aside", result.Counts.CopiedAside).
		Int("skipped", result.Counts.Skipped).
		Int("failed", result.Counts.Failed).
		Msg("Batch finished")
	return result, nil
}

// Validate performs the structural checks that abort a batch before
// conflict detection or any I/O
func (x *Executor) Validate(req Request) error {
	if len(req.Entries) == 0 {
		return errors.New(errors.ErrNoSelection, "no files selected")
	}

	switch req.Operation {
	case types.OperationCopy, types.OperationMove:
		if req.Destination == "" {
			return errors.Newf(errors.ErrInvalidDestination, "%s needs a destination directory", req.Operation)
		}
		if !filesystem.IsDir(x.fs, req.Destination) {
			return errors.Newf(errors.ErrInvalidDestination, "%s is not an existing directory", req.Destination).
				WithDetail("destination", req.Destination)
		}
	case types.OperationRename:
		if err := planner.Validate(req.Entries); err != nil {
			return err
		}
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown operation %q", req.Operation)
	}

	switch req.Policy {
	case types.PolicyNone, types.PolicyOverwrite, types.PolicyCreateCopy, types.PolicySkip:
	case types.PolicyAbort:
		return errors.New(errors.ErrAborted, "batch aborted")
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown conflict policy %q", req.Policy)
	}
	return nil
}

func (x *Executor) detect(req Request) []types.FileConflict {
	if req.Operation == types.OperationRename {
		return conflicts.DetectInPlace(x.fs, req.Entries)
	}
	return conflicts.Detect(x.fs, req.Entries, req.Destination)
}

// resolve asks the resolver for a policy covering every conflict
func (x *Executor) resolve(found []types.FileConflict) (types.Policy, error) {
	unresolved := func() error {
		return errors.Newf(errors.ErrConflictsUnresolved, "%d destination(s) already exist", len(found)).
			WithDetail("conflicts", found)
	}

	if x.opts.Resolver == nil {
		return types.PolicyNone, unresolved()
	}

	policy, err := x.opts.Resolver.Resolve(found)
	if err != nil {
		return types.PolicyNone, errors.Wrap(err, errors.ErrAborted, "conflict resolution failed")
	}

	switch {
	case policy == types.PolicyAbort:
		return types.PolicyNone, errors.New(errors.ErrAborted, "batch aborted")
	case policy == types.PolicyNone:
		return types.PolicyNone, unresolved()
	case !policy.IsResolving():
		return types.PolicyNone, errors.Newf(errors.ErrInvalidInput, "resolver returned unknown policy %q", policy)
	}
	return policy, nil
}

// route decides the destination of every entry. Conflicting entries go
// through the policy strategy, which performs overwrite deletions, so every
// deletion happens before the first transfer.
func (x *Executor) route(b *batch, req Request, found types.ConflictSet, policy types.Policy) []step {
	steps := make([]step, 0, len(req.Entries))
	for _, e := range req.Entries {
		if err := conflicts.ValidName(e.IntendedName()); err != nil {
			steps = append(steps, step{entry: e, action: types.ActionFailed, err: err})
			continue
		}
		if c, ok := found[e.ID]; ok {
			steps = append(steps, strategies[policy].route(b, e, c))
			continue
		}

		dir := req.Destination
		if req.Operation == types.OperationRename {
			dir = e.Directory
		}
		s := step{entry: e, dest: filepath.Join(dir, e.IntendedName()), action: types.ActionTransferred}
		if req.Operation == types.OperationRename && e.IntendedName() == e.FileName() {
			s.action = types.ActionUnchanged
		}
		steps = append(steps, s)
	}
	return steps
}

// apply performs one entry's filesystem operation
func (x *Executor) apply(op types.Operation, s step) types.EntryOutcome {
	outcome := types.EntryOutcome{
		EntryID:     s.entry.ID,
		FileName:    s.entry.FileName(),
		Source:      s.entry.Path(),
		Destination: s.dest,
		Action:      s.action,
		Replaced:    s.replaced,
		DryRun:      x.opts.DryRun,
	}
	fail := func(err error) types.EntryOutcome {
		outcome.Action = types.ActionFailed
		outcome.Replaced = false
		outcome.Error = asEntryError(err)
		return outcome
	}

	if s.err != nil {
		return fail(s.err)
	}
	if s.action == types.ActionSkipped {
		return outcome
	}

	exists, err := filesystem.Exists(x.fs, outcome.Source)
	if err != nil {
		return fail(err)
	}
	if !exists {
		return fail(errors.Newf(errors.ErrSourceMissing, "%s no longer exists", outcome.Source).
			WithDetail("path", outcome.Source))
	}

	if s.action == types.ActionUnchanged {
		return outcome
	}

	// copies rely on O_EXCL outside a dry run
	if (op != types.OperationCopy || x.opts.DryRun) && !(x.opts.DryRun && s.replaced) {
		taken, err := filesystem.DestinationTaken(x.fs, s.dest)
		if err != nil {
			return fail(err)
		}
		if taken {
			return fail(errors.Newf(errors.ErrDestinationExists, "%s appeared after conflicts were checked", s.dest).
				WithDetail("path", s.dest))
		}
	}

	if x.opts.DryRun {
		return outcome
	}

	switch op {
	case types.OperationCopy:
		err = filesystem.CopyFile(x.fs, outcome.Source, s.dest)
	default:
		err = filesystem.MoveFile(x.fs, outcome.Source, s.dest)
	}
	if err != nil {
		return fail(err)
	}
	return outcome
}

// asEntryError keeps classifiable per-entry codes and wraps everything else
// in TRANSFER_FAILED
func asEntryError(err error) error {
	switch errors.GetErrorCode(err) {
	case errors.ErrSourceMissing, errors.ErrDestinationExists, errors.ErrSameFile,
		errors.ErrPathInvalid, errors.ErrTransferFailed:
		return err
	default:
		return errors.Wrap(err, errors.ErrTransferFailed, "transfer failed")
	}
}
