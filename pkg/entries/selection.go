package entries

import (
	"github.com/arthur-debert/rebatch/pkg/errors"
	"github.com/arthur-debert/rebatch/pkg/types"
)

// Select adds an entry to the end of the working set. Selecting an already
// selected entry keeps its original position.
func (r *Registry) Select(id types.EntryID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return notFound(id)
	}
	r.selectLocked(id)
	return nil
}

// Deselect removes an entry from the working set
func (r *Registry) Deselect(id types.EntryID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return notFound(id)
	}
	r.deselectLocked(id)
	return nil
}

// Toggle flips the selection of an entry and returns the new state
func (r *Registry) Toggle(id types.EntryID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return false, notFound(id)
	}
	if r.selected[id] {
		r.deselectLocked(id)
		return false, nil
	}
	r.selectLocked(id)
	return true, nil
}

// SelectAll appends every unselected entry to the working set in listing order
func (r *Registry) SelectAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.order {
		r.selectLocked(id)
	}
}

// DeselectAll empties the working set
func (r *Registry) DeselectAll() {
	r.ClearSelection()
}

// ClearSelection empties the working set
func (r *Registry) ClearSelection() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.selection = nil
	r.selected = make(map[types.EntryID]bool)
}

// SelectByName appends the named entries to the working set in the given
// order. Nothing is selected when any name is unknown.
func (r *Registry) SelectByName(names ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]types.EntryID, 0, len(names))
	var missing []string
	for _, name := range names {
		id, ok := r.idByName(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		ids = append(ids, id)
	}
	if len(missing) > 0 {
		return errors.Newf(errors.ErrEntryNotFound, "%d file(s) not found in %s", len(missing), r.dir).
			WithDetail("names", missing)
	}

	for _, id := range ids {
		r.selectLocked(id)
	}
	return nil
}

// ReconcileSelection replaces the working set with the entries carrying the
// given names, typically after a reload. Names that no longer exist are
// ignored. It returns how many entries were selected.
func (r *Registry) ReconcileSelection(names []string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.selection = nil
	r.selected = make(map[types.EntryID]bool)
	for _, name := range names {
		if id, ok := r.idByName(name); ok {
			r.selectLocked(id)
		}
	}
	return len(r.selection)
}

// Selected resolves the working set to entry copies, in selection order
func (r *Registry) Selected() []types.FileEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.FileEntry, 0, len(r.selection))
	for _, id := range r.selection {
		out = append(out, r.copyOf(id))
	}
	return out
}

// SelectedIDs returns the working set in selection order
func (r *Registry) SelectedIDs() []types.EntryID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.EntryID, len(r.selection))
	copy(out, r.selection)
	return out
}

// IsSelected reports whether the entry is in the working set
func (r *Registry) IsSelected(id types.EntryID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.selected[id]
}

func (r *Registry) selectLocked(id types.EntryID) {
	if r.selected[id] {
		return
	}
	r.selected[id] = true
	r.selection = append(r.selection, id)
}

func (r *Registry) deselectLocked(id types.EntryID) {
	if !r.selected[id] {
		return
	}
	delete(r.selected, id)
	for i, sel := range r.selection {
		if sel == id {
			r.selection = append(r.selection[:i], r.selection[i+1:]...)
			break
		}
	}
}
