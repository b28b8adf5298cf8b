// Package view projects registry entries for display: a case-sensitive
// substring filter on the base name followed by a stable sort on one column.
package view

import (
	"sort"
	"strings"

	"github.com/arthur-debert/rebatch/pkg/errors"
	"github.com/arthur-debert/rebatch/pkg/types"
)

// SortKey names a sortable column
type SortKey int

const (
	SortName SortKey = iota
	SortTargetName
	SortExtension
	SortSize
	SortModified
	SortDirectory
	SortChecked
)

// Direction of a sort
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

// Flip returns the opposite direction
func (d Direction) Flip() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

var keyNames = map[SortKey]string{
	SortName:       "name",
	SortTargetName: "target",
	SortExtension:  "ext",
	SortSize:       "size",
	SortModified:   "modified",
	SortDirectory:  "directory",
	SortChecked:    "checked",
}

var keyAliases = map[string]SortKey{
	"target_name": SortTargetName,
	"extension":   SortExtension,
	"mtime":       SortModified,
	"dir":         SortDirectory,
	"selected":    SortChecked,
}

func (k SortKey) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseSortKey maps a column name used on the command line or in config to a SortKey
func ParseSortKey(s string) (SortKey, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range keyNames {
		if n == name {
			return k, nil
		}
	}
	if k, ok := keyAliases[name]; ok {
		return k, nil
	}
	return SortName, errors.Newf(errors.ErrInvalidInput, "unknown sort key %q", s).
		WithDetail("valid", SortKeyNames())
}

// SortKeyNames lists the canonical sort key names in column order
func SortKeyNames() []string {
	names := make([]string, 0, len(keyNames))
	for k := SortName; k <= SortChecked; k++ {
		names = append(names, keyNames[k])
	}
	return names
}

// less reports whether a sorts before b on one column, ascending
type less func(a, b *types.FileEntry) bool

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

var comparators = map[SortKey]less{
	SortName:       func(a, b *types.FileEntry) bool { return a.OriginalName < b.OriginalName },
	SortTargetName: func(a, b *types.FileEntry) bool { return a.TargetName < b.TargetName },
	SortExtension:  func(a, b *types.FileEntry) bool { return a.Extension < b.Extension },
	SortSize:       func(a, b *types.FileEntry) bool { return a.SizeKiB < b.SizeKiB },
	SortModified:   func(a, b *types.FileEntry) bool { return a.ModifiedAt.Before(b.ModifiedAt) },
	SortDirectory:  func(a, b *types.FileEntry) bool { return a.Directory < b.Directory },
	SortChecked:    func(a, b *types.FileEntry) bool { return boolRank(a.Selected) < boolRank(b.Selected) },
}

// Filter keeps the entries whose OriginalName contains text. The input is
// never modified; an empty text keeps everything.
func Filter(entries []types.FileEntry, text string) []types.FileEntry {
	out := make([]types.FileEntry, 0, len(entries))
	for _, e := range entries {
		if text == "" || strings.Contains(e.OriginalName, text) {
			out = append(out, e)
		}
	}
	return out
}

// Sort stably orders entries in place on one column
func Sort(entries []types.FileEntry, key SortKey, dir Direction) {
	cmp, ok := comparators[key]
	if !ok {
		cmp = comparators[SortName]
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if dir == Descending {
			return cmp(&entries[j], &entries[i])
		}
		return cmp(&entries[i], &entries[j])
	})
}

// Project filters then sorts, returning a fresh slice
func Project(entries []types.FileEntry, filterText string, key SortKey, dir Direction) []types.FileEntry {
	out := Filter(entries, filterText)
	Sort(out, key, dir)
	return out
}
