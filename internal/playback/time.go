package playback

import "time"

// TimeSource provides the current time and can be replaced in tests.
type TimeSource interface {
	Now() time.Time
}

// RealTime uses the standard time package.
type RealTime struct{}

func (RealTime) Now() time.Time { return time.Now() }

// FakeTime is a TimeSource that only moves when advanced.
type FakeTime struct {
	current time.Time
}

func NewFakeTime(start time.Time) *FakeTime {
	return &FakeTime{current: start}
}

func (f *FakeTime) Now() time.Time          { return f.current }
func (f *FakeTime) Advance(d time.Duration) { f.current = f.current.Add(d) }

// stopwatch is a resettable elapsed-time source.
type stopwatch struct {
	src   TimeSource
	start time.Time
}

func newStopwatch(src TimeSource) stopwatch {
	return stopwatch{src: src, start: src.Now()}
}

func (s *stopwatch) elapsed() time.Duration {
	return s.src.Now().Sub(s.start)
}

// restart returns the elapsed time and resets the stopwatch to now in one
// read of the time source.
func (s *stopwatch) restart() time.Duration {
	now := s.src.Now()
	d := now.Sub(s.start)
	s.start = now
	return d
}
