// Package conflicts finds planned destinations that are already taken.
//
// Detection is read-only and uncached: every call probes the filesystem
// again, so calling it twice without filesystem changes yields the same
// result. A destination counts as taken when anything exists there, or when
// an earlier entry of the same batch is headed for the same path.
//
// Entries whose intended name is not a single path component, or whose
// destination cannot be probed, are never reported as conflicts: they fail on
// their own when the batch runs.
package conflicts

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/rebatch/pkg/errors"
	"github.com/arthur-debert/rebatch/pkg/filesystem"
	"github.com/arthur-debert/rebatch/pkg/logging"
	"github.com/arthur-debert/rebatch/pkg/types"
)

// DefaultCopySuffix is inserted before the extension by the create-copy policy
const DefaultCopySuffix = " (Copy)"

// CopyName returns the alternate file name used by the create-copy policy
func CopyName(baseName, ext, suffix string) string {
	return baseName + suffix + ext
}

// AlternateName is the create-copy name for an entry's intended name
func AlternateName(e types.FileEntry, suffix string) string {
	base := e.OriginalName
	if e.HasTarget() {
		base = e.TargetName
	}
	return CopyName(base, e.Extension, suffix)
}

// ValidName checks that name is usable as one file name inside a directory.
// Names are not sanitised, so a separator, a NUL byte, "." or ".." fail with
// PATH_INVALID instead of reaching outside the directory.
func ValidName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return errors.Newf(errors.ErrPathInvalid, "%q is not a valid file name", name).
			WithDetail("name", name)
	case strings.ContainsRune(name, '/'), strings.ContainsRune(name, filepath.Separator),
		strings.ContainsRune(name, 0):
		return errors.Newf(errors.ErrPathInvalid, "%q must not contain a path separator", name).
			WithDetail("name", name)
	}
	return nil
}

// Detect probes destinationDir for each entry's intended name. Conflicts are
// returned in input order.
func Detect(fsys types.FS, entries []types.FileEntry, destinationDir string) []types.FileConflict {
	return detect(fsys, entries, func(types.FileEntry) string { return destinationDir }, false)
}

// DetectInPlace probes each entry's own directory, as a rename would. An entry
// whose intended name equals its current name is not a conflict.
func DetectInPlace(fsys types.FS, entries []types.FileEntry) []types.FileConflict {
	return detect(fsys, entries, func(e types.FileEntry) string { return e.Directory }, true)
}

func detect(fsys types.FS, entries []types.FileEntry, dirOf func(types.FileEntry) string, inPlace bool) []types.FileConflict {
	logger := logging.GetLogger("conflicts")

	var found []types.FileConflict
	claimed := make(map[string]bool, len(entries))

	for _, e := range entries {
		name := e.IntendedName()
		if err := ValidName(name); err != nil {
			logger.Debug().Str("name", name).Msg("Not probing invalid name")
			continue
		}
		target := filepath.Join(dirOf(e), name)

		conflict := types.FileConflict{EntryID: e.ID, TargetPath: target, DisplayName: name}

		if claimed[target] {
			logger.Debug().Str("target", target).Msg("Two entries are headed for the same destination")
			found = append(found, conflict)
			continue
		}
		claimed[target] = true

		if inPlace && name == e.FileName() {
			continue
		}

		exists, err := filesystem.DestinationTaken(fsys, target)
		if err != nil {
			logger.Warn().Err(err).Str("target", target).Msg("Cannot probe destination")
			continue
		}
		if exists {
			logger.Debug().Str("target", target).Msg("Destination already exists")
			found = append(found, conflict)
		}
	}

	logger.Debug().Int("entries", len(entries)).Int("conflicts", len(found)).Msg("Conflict detection finished")
	return found
}
