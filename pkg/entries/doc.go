// Package entries holds the File Entry Registry: the single owner of the
// FileEntry records listed from one flat directory, plus the working set of
// selected entries.
//
// The working set stores EntryIDs in selection order and is resolved against
// the registry on demand, so a target name assigned through the registry is
// visible to every caller that later reads the selection.
//
// A load always replaces the whole state. When the directory cannot be read
// the registry is left empty and DIRECTORY_UNREADABLE is returned.
package entries
