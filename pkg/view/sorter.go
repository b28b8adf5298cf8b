package view

// Sorter remembers the active column and direction the way a clickable table
// header does: requesting the same key again flips the direction, another key
// starts ascending.
type Sorter struct {
	key    SortKey
	dir    Direction
	active bool
}

// NewSorter returns a sorter with no active column
func NewSorter() *Sorter {
	return &Sorter{}
}

// Request selects key and returns the direction to sort in
func (s *Sorter) Request(key SortKey) Direction {
	if s.active && s.key == key {
		s.dir = s.dir.Flip()
		return s.dir
	}
	s.key = key
	s.dir = Ascending
	s.active = true
	return s.dir
}

// Current returns the active column and direction. Before any request it
// reports name ascending.
func (s *Sorter) Current() (SortKey, Direction) {
	return s.key, s.dir
}
