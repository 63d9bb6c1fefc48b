// Package scene drives one pendulum and one playback clock frame by frame.
//
// Presentation code calls [Scene.Frame] once per rendered frame and draws
// the returned [Readout]; input code calls [Scene.Toggle] and
// [Scene.ForcePause]. The scene holds no global state.
package scene

import (
	"github.com/san-kum/pendulum/internal/dynamo"
	"github.com/san-kum/pendulum/internal/physics"
	"github.com/san-kum/pendulum/internal/playback"
)

// Readout is everything a frame displays.
type Readout struct {
	Length             float64
	Radians            float64
	Degrees            float64
	Acceleration       float64
	LinearAcceleration float64
	Velocity           float64
	LinearVelocity     float64
	Elapsed            float64
	SimTime            float64
	Playing            bool
}

type Scene struct {
	pendulum  *physics.Pendulum
	clock     *playback.Clock
	initial   dynamo.State
	simTime   float64
	observers []dynamo.Observer
}

func New(p *physics.Pendulum, clock *playback.Clock) *Scene {
	return &Scene{
		pendulum:  p,
		clock:     clock,
		initial:   p.State(),
		observers: make([]dynamo.Observer, 0),
	}
}

func (s *Scene) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

func (s *Scene) Pendulum() *physics.Pendulum { return s.pendulum }
func (s *Scene) Clock() *playback.Clock      { return s.clock }

func (s *Scene) Toggle()     { s.clock.Toggle() }
func (s *Scene) ForcePause() { s.clock.ForcePause() }

// Reset restores the pendulum to its state at construction. The playback
// state is left alone.
func (s *Scene) Reset() {
	s.pendulum.Restore(s.initial)
	s.simTime = 0
}

// Frame consumes the step delta, advances the pendulum when playing and
// returns the values to display.
func (s *Scene) Frame() Readout {
	dt := s.clock.ConsumeStepDelta()
	if s.clock.IsPlaying() {
		s.pendulum.Tick(dt)
		s.simTime += dt
		x := s.pendulum.State()
		for _, obs := range s.observers {
			obs.OnStep(x, s.simTime)
		}
	}
	return s.readout()
}

func (s *Scene) readout() Readout {
	p := s.pendulum
	return Readout{
		Length:             p.Length(),
		Radians:            p.Radians(),
		Degrees:            p.Degrees(),
		Acceleration:       p.Acceleration(),
		LinearAcceleration: p.LinearAcceleration(),
		Velocity:           p.Velocity(),
		LinearVelocity:     p.LinearVelocity(),
		Elapsed:            s.clock.ElapsedDisplaySeconds(),
		SimTime:            s.simTime,
		Playing:            s.clock.IsPlaying(),
	}
}
