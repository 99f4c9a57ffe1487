package room

import (
	"sync"

	"github.com/JMF-Alex/ElImpostor-Frontend/pkg/protocol"
)

// Store holds the current authoritative room snapshot. Snapshots are swapped
// wholesale; there is no field-level mutation API, so a concurrent partial
// update cannot exist. The dispatcher is the single writer.
type Store struct {
	mu      sync.RWMutex
	current protocol.Room
	ok      bool
}

func NewStore() *Store {
	return &Store{}
}

// Replace swaps in a new snapshot. Last write wins by arrival order, which is
// the right answer when command effects and snapshots have no causal order.
func (s *Store) Replace(room protocol.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = room
	s.ok = true
}

// Current returns the latest snapshot, or ok=false before the first one.
func (s *Store) Current() (protocol.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.ok
}

// Clear drops the snapshot when the room context ends.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = protocol.Room{}
	s.ok = false
}
