// Package playback implements the play/pause timing state machine that gates
// the pendulum integrator.
//
// A [Clock] owns two independent stopwatches. The step stopwatch produces the
// per-frame dt and is reset on every frame, so a pause never leaves a backlog
// of time for the integrator to catch up on. The session stopwatch measures
// the elapsed time shown to the user; it restarts from zero each time the
// clock leaves Paused.
package playback

import "time"

type State int

const (
	Paused State = iota
	Playing
)

func (s State) String() string {
	switch s {
	case Paused:
		return "paused"
	case Playing:
		return "playing"
	default:
		return "unknown"
	}
}

type Clock struct {
	src     TimeSource
	state   State
	step    stopwatch
	session stopwatch
	elapsed time.Duration
}

// New returns a clock in the given initial state. A nil src uses RealTime.
func New(src TimeSource, initial State) *Clock {
	if src == nil {
		src = RealTime{}
	}
	return &Clock{
		src:     src,
		state:   initial,
		step:    newStopwatch(src),
		session: newStopwatch(src),
	}
}

func (c *Clock) State() State    { return c.state }
func (c *Clock) IsPlaying() bool { return c.state == Playing }

// SetPlaying moves the clock to Playing or Paused. Entering Playing restarts
// both stopwatches; entering Paused captures the elapsed display value.
func (c *Clock) SetPlaying(playing bool) {
	if playing == c.IsPlaying() {
		return
	}
	if playing {
		c.step.restart()
		c.session.restart()
		c.state = Playing
		return
	}
	c.elapsed = c.session.elapsed()
	c.state = Paused
}

func (c *Clock) Toggle() {
	c.SetPlaying(!c.IsPlaying())
}

// ForcePause pauses a playing clock, e.g. when the window loses focus.
func (c *Clock) ForcePause() {
	c.SetPlaying(false)
}

// ConsumeStepDelta returns the seconds elapsed since the previous call, or
// since entering Playing, and resets the step stopwatch. While paused it
// resets the stopwatch and returns 0.
func (c *Clock) ConsumeStepDelta() float64 {
	d := c.step.restart()
	if !c.IsPlaying() {
		return 0
	}
	return d.Seconds()
}

// ElapsedDisplaySeconds returns the seconds played since last leaving Paused.
// While paused it keeps resetting the session stopwatch and returns the value
// frozen at the moment of pausing.
func (c *Clock) ElapsedDisplaySeconds() float64 {
	if !c.IsPlaying() {
		c.session.restart()
		return c.elapsed.Seconds()
	}
	c.elapsed = c.session.elapsed()
	return c.elapsed.Seconds()
}
