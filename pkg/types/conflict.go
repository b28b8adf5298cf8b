package types

// FileConflict pairs a planned destination path with the display name that
// would collide there. Conflicts are produced by detection and discarded once
// a policy has been applied.
type FileConflict struct {
	EntryID     EntryID `json:"entryId"`
	TargetPath  string  `json:"targetPath"`
	DisplayName string  `json:"displayName"`
}

// ConflictSet indexes conflicts by entry for quick membership checks
type ConflictSet map[EntryID]FileConflict

// NewConflictSet builds a ConflictSet from a slice of conflicts
func NewConflictSet(conflicts []FileConflict) ConflictSet {
	set := make(ConflictSet, len(conflicts))
	for _, c := range conflicts {
		set[c.EntryID] = c
	}
	return set
}

// Has reports whether the entry collides at its destination
func (s ConflictSet) Has(id EntryID) bool {
	_, ok := s[id]
	return ok
}
