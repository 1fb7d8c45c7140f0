package e2e

import "sync"

// SharedResult is the mutex-guarded cell holding the latest Result for one
// event. The application thread reads it via GetE2EResult while the reader
// writes it after each check; the whole value is copied under the lock so a
// reader can never observe a torn state/status pair.
type SharedResult struct {
	mu  sync.Mutex
	res Result
}

// NewSharedResult returns a cell primed with the pre-reception result.
func NewSharedResult() *SharedResult {
	return &SharedResult{res: Result{State: StateNoData, Status: StatusNotAvailable}}
}

// Get returns a copy of the stored result.
func (s *SharedResult) Get() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.res
}

// Set replaces the stored result.
func (s *SharedResult) Set(res Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.res = res
}
