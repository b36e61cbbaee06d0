package viewrouter

import "sync"

// MemoryStore is an in-process FragmentStore with browser-like history. Watchers
// fire whenever the fragment changes, including changes made through SetFragment.
type MemoryStore struct {
	mu       sync.Mutex
	history  []string
	index    int
	watchers []memoryWatcher
	nextID   int
	writes   []Write
}

// Write records one SetFragment call.
type Write struct {
	Fragment string
	Mode     WriteMode
}

type memoryWatcher struct {
	id int
	fn func(string)
}

// NewMemoryStore returns a store whose history starts at fragment.
func NewMemoryStore(fragment string) *MemoryStore {
	return &MemoryStore{history: []string{fragment}}
}

// Fragment returns the fragment at the current history position.
func (s *MemoryStore) Fragment() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history[s.index]
}

// SetFragment writes fragment, pushing or replacing the current history entry.
func (s *MemoryStore) SetFragment(fragment string, mode WriteMode) {
	s.mu.Lock()
	s.writes = append(s.writes, Write{Fragment: fragment, Mode: mode})
	s.mu.Unlock()
	s.change(fragment, mode)
}

// Navigate simulates the user editing the address bar or following a link.
func (s *MemoryStore) Navigate(fragment string) {
	s.change(fragment, Push)
}

// Back moves one entry back in history. It reports false at the first entry.
func (s *MemoryStore) Back() bool {
	return s.move(-1)
}

// Forward moves one entry forward in history. It reports false at the last entry.
func (s *MemoryStore) Forward() bool {
	return s.move(1)
}

// Watch registers fn for fragment changes.
func (s *MemoryStore) Watch(fn func(fragment string)) (cancel func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.watchers = append(s.watchers, memoryWatcher{id: id, fn: fn})
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, w := range s.watchers {
			if w.id == id {
				s.watchers = append(s.watchers[:i:i], s.watchers[i+1:]...)
				return
			}
		}
	}
}

// Writes returns every SetFragment call in order.
func (s *MemoryStore) Writes() []Write {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Write(nil), s.writes...)
}

// History returns the history entries and the current position.
func (s *MemoryStore) History() ([]string, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history...), s.index
}

func (s *MemoryStore) change(fragment string, mode WriteMode) {
	s.mu.Lock()
	previous := s.history[s.index]
	if mode == Replace {
		s.history[s.index] = fragment
	} else if previous != fragment {
		s.history = append(s.history[:s.index+1], fragment)
		s.index++
	}
	watchers := s.snapshot()
	s.mu.Unlock()

	if previous != fragment {
		notify(watchers, fragment)
	}
}

func (s *MemoryStore) move(delta int) bool {
	s.mu.Lock()
	next := s.index + delta
	if next < 0 || next >= len(s.history) {
		s.mu.Unlock()
		return false
	}
	previous := s.history[s.index]
	s.index = next
	fragment := s.history[next]
	watchers := s.snapshot()
	s.mu.Unlock()

	if previous != fragment {
		notify(watchers, fragment)
	}
	return true
}

func (s *MemoryStore) snapshot() []memoryWatcher {
	return append([]memoryWatcher(nil), s.watchers...)
}

func notify(watchers []memoryWatcher, fragment string) {
	for _, w := range watchers {
		w.fn(fragment)
	}
}
