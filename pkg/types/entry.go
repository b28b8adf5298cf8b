package types

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EntryID identifies a FileEntry within one registry load.
// IDs are not stable across loads; selection that must survive a reload is
// carried over by file name.
type EntryID string

// NewEntryID returns a fresh random identifier
func NewEntryID() EntryID {
	return EntryID(uuid.NewString())
}

// String returns the identifier as a string
func (id EntryID) String() string {
	return string(id)
}

// Short returns the first eight characters, enough to tell entries apart in logs
func (id EntryID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

// FileEntry represents one file on disk at the time of the last registry load
type FileEntry struct {
	ID EntryID `json:"id"`

	// Directory is the absolute path of the containing folder
	Directory string `json:"directory"`

	// OriginalName is the current base name, without extension
	OriginalName string `json:"originalName"`

	// TargetName is the proposed new base name. Empty means no rename requested.
	TargetName string `json:"targetName,omitempty"`

	// Extension includes the leading dot (".png"), empty when the file has none
	Extension string `json:"extension"`

	SizeKiB    int64     `json:"sizeKiB"`
	ModifiedAt time.Time `json:"modifiedAt"`

	// Selected mirrors working-set membership at the time the copy was handed out
	Selected bool `json:"selected"`
}

// SplitName splits a file name into base name and extension.
// A leading dot alone does not start an extension, so ".bashrc" has none.
func SplitName(fileName string) (string, string) {
	ext := filepath.Ext(fileName)
	base := strings.TrimSuffix(fileName, ext)
	if base == "" {
		return fileName, ""
	}
	return base, ext
}

// FileName returns the on-disk name: OriginalName + Extension
func (e FileEntry) FileName() string {
	return e.OriginalName + e.Extension
}

// Path returns the absolute on-disk path of the entry
func (e FileEntry) Path() string {
	return filepath.Join(e.Directory, e.FileName())
}

// HasTarget reports whether a rename has been planned for the entry
func (e FileEntry) HasTarget() bool {
	return e.TargetName != ""
}

// IntendedName returns the name the entry will carry at its destination:
// TargetName + Extension when a rename is planned, the current file name otherwise.
func (e FileEntry) IntendedName() string {
	if e.HasTarget() {
		return e.TargetName + e.Extension
	}
	return e.FileName()
}

// FileNames returns the on-disk names of the given entries, in order
func FileNames(entries []FileEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.FileName()
	}
	return names
}
