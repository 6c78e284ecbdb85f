package cdg

import (
	"sync"
	"time"
)

// Clock reports how far playback has progressed.
type Clock interface {
	Elapsed() time.Duration
}

// Stopwatch is a Clock driven by wall time that can be paused. It is used
// when a track has no audio to follow.
type Stopwatch struct {
	mu      sync.Mutex
	now     func() time.Time
	start   time.Time
	elapsed time.Duration
	running bool
}

// NewStopwatch returns a running Stopwatch.
func NewStopwatch() *Stopwatch {
	return newStopwatch(time.Now)
}

func newStopwatch(now func() time.Time) *Stopwatch {
	return &Stopwatch{
		now:     now,
		start:   now(),
		running: true,
	}
}

// Elapsed returns the time the stopwatch has been running.
func (s *Stopwatch) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return s.elapsed + s.now().Sub(s.start)
	}
	return s.elapsed
}

// Pause stops the stopwatch.
func (s *Stopwatch) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.elapsed += s.now().Sub(s.start)
		s.running = false
	}
}

// Resume restarts a paused stopwatch.
func (s *Stopwatch) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		s.start = s.now()
		s.running = true
	}
}

// Toggle pauses a running stopwatch and resumes a paused one.
func (s *Stopwatch) Toggle() {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()

	if running {
		s.Pause()
	} else {
		s.Resume()
	}
}

// Paused returns true if the stopwatch is paused.
func (s *Stopwatch) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.running
}
