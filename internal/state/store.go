package state

// Store holds the finalized paths of one canvas session. Every mutation calls
// OnChange synchronously with a deep copy of the new pattern.
type Store struct {
	paths    Pattern
	OnChange func(Pattern)
}

func NewStore() *Store {
	return &Store{paths: make(Pattern, 0)}
}

func (s *Store) Len() int { return len(s.paths) }

// Snapshot returns a deep copy of the stored pattern.
func (s *Store) Snapshot() Pattern { return s.paths.Clone() }

// Append stores a copy of p. Incomplete paths are refused.
func (s *Store) Append(p Path) bool {
	if !p.Complete() {
		return false
	}
	s.paths = append(s.paths, p.Clone())
	s.notify()
	return true
}

// UndoLast removes the most recent path. On an empty store it does nothing
// and OnChange is not called.
func (s *Store) UndoLast() bool {
	if len(s.paths) == 0 {
		return false
	}
	s.paths[len(s.paths)-1] = nil
	s.paths = s.paths[:len(s.paths)-1]
	s.notify()
	return true
}

// Clear empties the store. OnChange always fires, even when nothing was stored.
func (s *Store) Clear() {
	s.paths = make(Pattern, 0)
	s.notify()
}

// Replace swaps in a copy of p, skipping incomplete paths.
func (s *Store) Replace(p Pattern) {
	paths := make(Pattern, 0, len(p))
	for _, path := range p {
		if path.Complete() {
			paths = append(paths, path.Clone())
		}
	}
	s.paths = paths
	s.notify()
}

func (s *Store) notify() {
	if s.OnChange != nil {
		s.OnChange(s.paths.Clone())
	}
}
