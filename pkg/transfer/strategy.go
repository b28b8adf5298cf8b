package transfer

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/rebatch/pkg/conflicts"
	"github.com/arthur-debert/rebatch/pkg/errors"
	"github.com/arthur-debert/rebatch/pkg/filesystem"
	"github.com/arthur-debert/rebatch/pkg/types"
)

// step is the routing decision for one entry
type step struct {
	entry    types.FileEntry
	dest     string
	action   types.Action
	replaced bool
	err      error
}

// batch is the state shared by the strategies of one run
type batch struct {
	fs      types.FS
	dryRun  bool
	suffix  string
	sources map[string]types.EntryID
}

// strategy routes an entry whose destination is taken
type strategy interface {
	route(b *batch, e types.FileEntry, c types.FileConflict) step
}

var strategies = map[types.Policy]strategy{
	types.PolicyOverwrite:  overwriteStrategy{},
	types.PolicyCreateCopy: createCopyStrategy{},
	types.PolicySkip:       skipStrategy{},
}

type overwriteStrategy struct{}

// route deletes the occupied destination. A destination that is the source
// of an entry in this batch is never deleted.
func (overwriteStrategy) route(b *batch, e types.FileEntry, c types.FileConflict) step {
	s := step{entry: e, dest: c.TargetPath, action: types.ActionTransferred}
	target := filepath.Clean(c.TargetPath)

	if owner, ok := b.sources[target]; ok {
		if owner == e.ID {
			s.err = errors.Newf(errors.ErrSameFile, "%s is its own destination", e.FileName()).
				WithDetail("path", target)
		} else {
			s.err = errors.Newf(errors.ErrDestinationExists, "%s is the source of another file in this batch", target).
				WithDetail("path", target)
		}
		return s
	}

	exists, err := filesystem.DestinationTaken(b.fs, target)
	if err != nil {
		s.err = err
		return s
	}
	if !exists {
		// claimed by an earlier entry of the batch rather than present on disk
		return s
	}

	s.replaced = true
	if b.dryRun {
		return s
	}
	if err := b.fs.Remove(target); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		s.err = errors.Wrapf(err, errors.ErrTransferFailed, "cannot delete %s", target)
		s.replaced = false
	}
	return s
}

type createCopyStrategy struct{}

func (createCopyStrategy) route(b *batch, e types.FileEntry, c types.FileConflict) step {
	name := conflicts.AlternateName(e, b.suffix)
	if err := conflicts.ValidName(name); err != nil {
		return step{entry: e, action: types.ActionFailed, err: err}
	}
	alt := filepath.Join(filepath.Dir(c.TargetPath), name)
	s := step{entry: e, dest: alt, action: types.ActionCopiedAside}

	exists, err := filesystem.DestinationTaken(b.fs, alt)
	switch {
	case err != nil:
		s.err = err
	case exists:
		s.err = errors.Newf(errors.ErrDestinationExists, "alternate destination %s is taken too", alt).
			WithDetail("path", alt)
	}
	return s
}

type skipStrategy struct{}

func (skipStrategy) route(_ *batch, e types.FileEntry, c types.FileConflict) step {
	return step{entry: e, dest: c.TargetPath, action: types.ActionSkipped}
}
