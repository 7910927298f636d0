// Package lookup bounds the request rate of user-driven search inputs and
// guards against stale asynchronous results: fast typing is debounced, and
// a superseded response is never applied over newer state.
package lookup

import (
	"sync"
	"time"
)

// DefaultDebounce is the standard wait before a typed search term triggers
// a network fetch.
const DefaultDebounce = 300 * time.Millisecond

// Searcher debounces search terms and tags every fetch with a generation
// counter. Only the latest generation's result is applied, so ordering is
// last-request-wins rather than last-response-wins. Close flips a liveness
// flag so results arriving after teardown are dropped.
type Searcher struct {
	mu         sync.Mutex
	delay      time.Duration
	timer      *time.Timer
	generation uint64
	closed     bool
}

// NewSearcher creates a searcher with the given debounce window. A
// non-positive delay falls back to DefaultDebounce.
func NewSearcher(delay time.Duration) *Searcher {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Searcher{delay: delay}
}

// Search schedules a fetch of term after the debounce window. A newer call
// within the window cancels the pending one, so a burst of keystrokes
// issues exactly one fetch, for the final term. The apply callback runs
// only if no newer search started while the fetch was in flight and the
// searcher has not been closed.
func (s *Searcher) Search(term string, fetch func(term string) (interface{}, error), apply func(result interface{}, err error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.generation++
	gen := s.generation

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		if !s.current(gen) {
			return
		}
		result, err := fetch(term)
		if !s.current(gen) {
			return
		}
		apply(result, err)
	})
}

// Close drops any pending search and prevents further results from being
// applied. Safe to call more than once.
func (s *Searcher) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Searcher) current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && gen == s.generation
}
