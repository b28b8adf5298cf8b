// Package session wires the registry, planner, conflict detector and
// transfer executor into the load, plan, detect, execute and reload cycle a
// front end drives.
package session

import (
	"path/filepath"

	"github.com/arthur-debert/rebatch/pkg/conflicts"
	"github.com/arthur-debert/rebatch/pkg/entries"
	"github.com/arthur-debert/rebatch/pkg/logging"
	"github.com/arthur-debert/rebatch/pkg/planner"
	"github.com/arthur-debert/rebatch/pkg/transfer"
	"github.com/arthur-debert/rebatch/pkg/types"
)

// Session owns one registry and runs batches against it
type Session struct {
	fs       types.FS
	registry *entries.Registry
	executor *transfer.Executor
	dryRun   bool
}

// Options configure a Session
type Options struct {
	Listing  entries.Options
	Transfer transfer.Options
}

// New creates a session over fsys
func New(fsys types.FS, opts Options) *Session {
	return &Session{
		fs:       fsys,
		registry: entries.New(fsys, opts.Listing),
		executor: transfer.NewExecutor(fsys, opts.Transfer),
		dryRun:   opts.Transfer.DryRun,
	}
}

// Registry exposes the entry registry for selection and inspection
func (s *Session) Registry() *entries.Registry {
	return s.registry
}

// Open loads dir into the registry
func (s *Session) Open(dir string) ([]types.FileEntry, error) {
	return s.registry.Load(dir)
}

// Plan assigns target names to the working set
func (s *Session) Plan(baseName, code string) error {
	return planner.Plan(s.registry, baseName, code)
}

// Conflicts reports which selected entries would collide for op. For copy
// and move the destination directory is probed, for rename each entry's own
// directory. The batch's structural checks run first, so an empty selection
// or a bad destination is reported instead of an empty answer.
func (s *Session) Conflicts(op types.Operation, destination string) ([]types.FileConflict, error) {
	selected := s.registry.Selected()
	if err := s.executor.Validate(transfer.Request{
		Entries:     selected,
		Destination: destination,
		Operation:   op,
	}); err != nil {
		return nil, err
	}

	if op == types.OperationRename {
		return conflicts.DetectInPlace(s.fs, selected), nil
	}
	return conflicts.Detect(s.fs, selected, destination), nil
}

// Copy copies the working set into destination
func (s *Session) Copy(destination string, policy types.Policy) (*types.TransferResult, error) {
	return s.run(types.OperationCopy, destination, policy)
}

// Move moves the working set into destination
func (s *Session) Move(destination string, policy types.Policy) (*types.TransferResult, error) {
	return s.run(types.OperationMove, destination, policy)
}

// Rename renames the working set in place using the planned target names
func (s *Session) Rename(policy types.Policy) (*types.TransferResult, error) {
	return s.run(types.OperationRename, "", policy)
}

// Run executes op on the working set
func (s *Session) Run(op types.Operation, destination string, policy types.Policy) (*types.TransferResult, error) {
	return s.run(op, destination, policy)
}

func (s *Session) run(op types.Operation, destination string, policy types.Policy) (*types.TransferResult, error) {
	logger := logging.WithFields(map[string]interface{}{
		"component":   "session",
		"operation":   string(op),
		"destination": destination,
	})

	result, err := s.executor.Execute(transfer.Request{
		Entries:     s.registry.Selected(),
		Destination: destination,
		Operation:   op,
		Policy:      policy,
	})
	if err != nil {
		// aborted before any change: selection and targets stay as they were
		return result, err
	}
	if s.dryRun {
		return result, nil
	}

	var names []string
	if op == types.OperationRename {
		names = selectionAfterRename(result)
	}

	if _, err := s.registry.Reload(); err != nil {
		return result, err
	}
	if names != nil {
		n := s.registry.ReconcileSelection(names)
		logger.Debug().Int("reselected", n).Msg("Selection carried over by name")
	}
	return result, nil
}

// selectionAfterRename returns, in selection order, the names the renamed
// entries carry now: the new name on success, the old one otherwise.
func selectionAfterRename(result *types.TransferResult) []string {
	names := make([]string, 0, len(result.Outcomes))
	for _, o := range result.Outcomes {
		switch o.Action {
		case types.ActionTransferred, types.ActionCopiedAside:
			names = append(names, filepath.Base(o.Destination))
		default:
			names = append(names, o.FileName)
		}
	}
	return names
}
