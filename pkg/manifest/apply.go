package manifest

import (
	"github.com/arthur-debert/rebatch/pkg/errors"
	"github.com/arthur-debert/rebatch/pkg/types"
)

// Registry is the part of the entry registry a manifest is applied to
type Registry interface {
	ClearSelection()
	SelectByName(names ...string) error
	FindByName(fileName string) (types.FileEntry, bool)
	SetTarget(id types.EntryID, name string) error
}

// Apply replaces the working set with the manifest's entries, in order, and
// sets their target names. The registry must already be loaded; nothing is
// changed when a name is missing from it.
func Apply(reg Registry, m *Manifest) error {
	for _, e := range m.Entries {
		if _, ok := reg.FindByName(e.Name); !ok {
			return errors.Newf(errors.ErrEntryNotFound, "%s is listed in the manifest but not in %s", e.Name, m.Directory).
				WithDetail("name", e.Name)
		}
	}

	reg.ClearSelection()
	if err := reg.SelectByName(m.Names()...); err != nil {
		return err
	}
	for _, e := range m.Entries {
		entry, _ := reg.FindByName(e.Name)
		if err := reg.SetTarget(entry.ID, e.Target); err != nil {
			return err
		}
	}
	return nil
}
