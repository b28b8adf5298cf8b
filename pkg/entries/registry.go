package entries

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/arthur-debert/rebatch/pkg/errors"
	"github.com/arthur-debert/rebatch/pkg/logging"
	"github.com/arthur-debert/rebatch/pkg/types"
)

// Options control how a directory is listed
type Options struct {
	// IncludeHidden lists files whose name starts with a dot
	IncludeHidden bool
}

// DefaultOptions lists everything
func DefaultOptions() Options {
	return Options{IncludeHidden: true}
}

// Registry owns the entries of one directory and the working set
type Registry struct {
	mu   sync.RWMutex
	fs   types.FS
	opts Options

	dir     string
	order   []types.EntryID
	entries map[types.EntryID]*types.FileEntry

	selection []types.EntryID
	selected  map[types.EntryID]bool
}

// New creates an empty registry reading through fsys
func New(fsys types.FS, opts Options) *Registry {
	return &Registry{
		fs:       fsys,
		opts:     opts,
		entries:  make(map[types.EntryID]*types.FileEntry),
		selected: make(map[types.EntryID]bool),
	}
}

// Directory returns the directory of the last load
func (r *Registry) Directory() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dir
}

// Load lists the immediate regular files of dir, replacing all entries and
// clearing the working set. On failure the registry is left empty.
func (r *Registry) Load(dir string) ([]types.FileEntry, error) {
	logger := logging.GetLogger("entries.registry")

	listed, err := r.list(dir)

	r.mu.Lock()
	r.dir = dir
	r.order = nil
	r.entries = make(map[types.EntryID]*types.FileEntry)
	r.selection = nil
	r.selected = make(map[types.EntryID]bool)
	if err == nil {
		for i := range listed {
			e := listed[i]
			r.order = append(r.order, e.ID)
			r.entries[e.ID] = &e
		}
	}
	r.mu.Unlock()

	if err != nil {
		logger.Warn().Err(err).Str("directory", dir).Msg("Directory could not be listed")
		return nil, err
	}

	logger.Debug().Str("directory", dir).Int("entries", len(listed)).Msg("Directory loaded")
	return r.Entries(), nil
}

// Reload re-lists the directory of the last load
func (r *Registry) Reload() ([]types.FileEntry, error) {
	return r.Load(r.Directory())
}

func (r *Registry) list(dir string) ([]types.FileEntry, error) {
	if dir == "" {
		return nil, errors.New(errors.ErrDirectoryUnreadable, "no directory given")
	}

	info, err := r.fs.Stat(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirectoryUnreadable, "cannot open %s", dir).
			WithDetail("directory", dir)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrDirectoryUnreadable, "%s is not a directory", dir).
			WithDetail("directory", dir)
	}

	dirEntries, err := r.fs.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirectoryUnreadable, "cannot read %s", dir).
			WithDetail("directory", dir)
	}

	var listed []types.FileEntry
	for _, d := range dirEntries {
		name := d.Name()
		if !r.opts.IncludeHidden && strings.HasPrefix(name, ".") {
			continue
		}

		fi, ok := r.regularFileInfo(dir, d)
		if !ok {
			continue
		}

		base, ext := types.SplitName(name)
		listed = append(listed, types.FileEntry{
			ID:           types.NewEntryID(),
			Directory:    dir,
			OriginalName: base,
			Extension:    ext,
			SizeKiB:      fi.Size() / 1024,
			ModifiedAt:   fi.ModTime(),
		})
	}

	sort.SliceStable(listed, func(i, j int) bool {
		a, b := listed[i].FileName(), listed[j].FileName()
		la, lb := strings.ToLower(a), strings.ToLower(b)
		if la != lb {
			return la < lb
		}
		return a < b
	})
	return listed, nil
}

// regularFileInfo returns file info for regular files and for symlinks that
// point at regular files. Directories and special files are skipped.
func (r *Registry) regularFileInfo(dir string, d fs.DirEntry) (fs.FileInfo, bool) {
	if d.Type()&fs.ModeSymlink != 0 {
		fi, err := r.fs.Stat(filepath.Join(dir, d.Name()))
		if err != nil || !fi.Mode().IsRegular() {
			return nil, false
		}
		return fi, true
	}
	if !d.Type().IsRegular() {
		return nil, false
	}
	fi, err := d.Info()
	if err != nil {
		// Vanished between ReadDir and Info
		return nil, false
	}
	return fi, true
}

// Entries returns copies of all entries in listing order
func (r *Registry) Entries() []types.FileEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.FileEntry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.copyOf(id))
	}
	return out
}

// Len returns the number of entries
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Get returns a copy of the entry with the given ID
func (r *Registry) Get(id types.EntryID) (types.FileEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.entries[id]; !ok {
		return types.FileEntry{}, notFound(id)
	}
	return r.copyOf(id), nil
}

// FindByName returns the entry whose on-disk name is fileName
func (r *Registry) FindByName(fileName string) (types.FileEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.idByName(fileName)
	if !ok {
		return types.FileEntry{}, false
	}
	return r.copyOf(id), true
}

// SetTarget assigns the proposed new base name of an entry. "" clears it.
func (r *Registry) SetTarget(id types.EntryID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return notFound(id)
	}
	e.TargetName = name
	return nil
}

// ClearTargets removes every planned target name
func (r *Registry) ClearTargets() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		e.TargetName = ""
	}
}

// copyOf must be called with the lock held
func (r *Registry) copyOf(id types.EntryID) types.FileEntry {
	e := *r.entries[id]
	e.Selected = r.selected[id]
	return e
}

// idByName must be called with the lock held
func (r *Registry) idByName(fileName string) (types.EntryID, bool) {
	for _, id := range r.order {
		if r.entries[id].FileName() == fileName {
			return id, true
		}
	}
	return "", false
}

func notFound(id types.EntryID) error {
	return errors.Newf(errors.ErrEntryNotFound, "no entry with id %s", id.Short()).
		WithDetail("id", id.String())
}
