package collection

import "time"

// Store is an insertion-ordered set of snapshots keyed by path.
//
// Removal swaps the last snapshot into the vacated slot, so removal is O(1)
// and Store order is not a display order. Callers that show the collection
// sort it themselves.
type Store struct {
	items     []Snapshot
	index     map[string]int
	totalSize int64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Len returns the number of snapshots.
func (s *Store) Len() int {
	return len(s.items)
}

// TotalSize is the sum of captured content lengths in bytes.
func (s *Store) TotalSize() int64 {
	return s.totalSize
}

// Contains reports whether path has a snapshot.
func (s *Store) Contains(path string) bool {
	_, ok := s.index[path]
	return ok
}

// Get returns the snapshot for path.
func (s *Store) Get(path string) (Snapshot, bool) {
	i, ok := s.index[path]
	if !ok {
		return Snapshot{}, false
	}
	return s.items[i], true
}

// At returns the snapshot at position i.
func (s *Store) At(i int) (Snapshot, bool) {
	if i < 0 || i >= len(s.items) {
		return Snapshot{}, false
	}
	return s.items[i], true
}

// Snapshots returns a copy of the snapshots in store order.
func (s *Store) Snapshots() []Snapshot {
	out := make([]Snapshot, len(s.items))
	copy(out, s.items)
	return out
}

// Put inserts snap or replaces the snapshot with the same path in place.
// It returns the replaced snapshot, if any.
func (s *Store) Put(snap Snapshot) (Snapshot, bool) {
	if i, ok := s.index[snap.Path]; ok {
		old := s.items[i]
		s.items[i] = snap
		s.totalSize += int64(len(snap.Content)) - int64(len(old.Content))
		return old, true
	}
	s.index[snap.Path] = len(s.items)
	s.items = append(s.items, snap)
	s.totalSize += int64(len(snap.Content))
	return Snapshot{}, false
}

// Remove drops the snapshot for path.
func (s *Store) Remove(path string) (Snapshot, bool) {
	i, ok := s.index[path]
	if !ok {
		return Snapshot{}, false
	}
	return s.removeAt(i), true
}

// removeAt swap-removes position i. Positions below i keep their snapshot.
func (s *Store) removeAt(i int) Snapshot {
	removed := s.items[i]
	last := len(s.items) - 1
	if i != last {
		s.items[i] = s.items[last]
		s.index[s.items[i].Path] = i
	}
	s.items[last] = Snapshot{}
	s.items = s.items[:last]
	delete(s.index, removed.Path)
	s.totalSize -= int64(len(removed.Content))
	return removed
}

// Clear empties the store and returns how many snapshots it held.
func (s *Store) Clear() int {
	n := len(s.items)
	s.items = nil
	s.index = make(map[string]int)
	s.totalSize = 0
	return n
}

// OldestCollectedAt returns the earliest capture time, or false when empty.
func (s *Store) OldestCollectedAt() (time.Time, bool) {
	if len(s.items) == 0 {
		return time.Time{}, false
	}
	oldest := s.items[0].CollectedAt
	for _, snap := range s.items[1:] {
		if snap.CollectedAt.Before(oldest) {
			oldest = snap.CollectedAt
		}
	}
	return oldest, true
}

// setModTime advances the stored modification time without re-capturing.
func (s *Store) setModTime(i int, modTime time.Time) {
	s.items[i].ModTime = modTime
}

// replaceAt swaps in a fresh capture for position i.
func (s *Store) replaceAt(i int, snap Snapshot) {
	old := s.items[i]
	s.items[i] = snap
	s.totalSize += int64(len(snap.Content)) - int64(len(old.Content))
}
