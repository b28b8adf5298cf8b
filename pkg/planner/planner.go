// Package planner assigns target names to the working set.
//
// Names are formed as base + code + position, where position counts from 1 in
// selection order. Inputs are used verbatim: nothing is trimmed or sanitised.
package planner

import (
	"strconv"

	"github.com/arthur-debert/rebatch/pkg/errors"
	"github.com/arthur-debert/rebatch/pkg/logging"
	"github.com/arthur-debert/rebatch/pkg/types"
)

// WorkingSet is the part of the entry registry the planner needs
type WorkingSet interface {
	SelectedIDs() []types.EntryID
	SetTarget(id types.EntryID, name string) error
}

// Names returns the n target base names for a template
func Names(n int, baseName, code string) []string {
	if n <= 0 {
		return nil
	}
	names := make([]string, n)
	for i := range names {
		names[i] = baseName + code + strconv.Itoa(i+1)
	}
	return names
}

// Plan assigns base + code + position to every selected entry, in selection order
func Plan(ws WorkingSet, baseName, code string) error {
	logger := logging.GetLogger("planner")

	ids := ws.SelectedIDs()
	if len(ids) == 0 {
		return errors.New(errors.ErrNoSelection, "no files selected")
	}

	for i, name := range Names(len(ids), baseName, code) {
		if err := ws.SetTarget(ids[i], name); err != nil {
			return err
		}
		logger.Trace().Str("id", ids[i].Short()).Str("target", name).Msg("Target assigned")
	}

	logger.Debug().Int("entries", len(ids)).Str("base", baseName).Str("code", code).Msg("Rename planned")
	return nil
}

// Validate checks that entries form a complete rename plan
func Validate(entries []types.FileEntry) error {
	if len(entries) == 0 {
		return errors.New(errors.ErrNoSelection, "no files selected")
	}

	var missing []string
	for _, e := range entries {
		if !e.HasTarget() {
			missing = append(missing, e.FileName())
		}
	}
	if len(missing) > 0 {
		return errors.Newf(errors.ErrIncompleteRenamePlan, "%d of %d file(s) have no target name", len(missing), len(entries)).
			WithDetail("names", missing)
	}
	return nil
}
