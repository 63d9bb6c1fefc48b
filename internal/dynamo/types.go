package dynamo

import "math"

// Indices into a pendulum State.
const (
	Angle = iota
	Velocity
	Acceleration
	StateDim
)

// State is a snapshot of the pendulum as [angle, velocity, acceleration].
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type Hamiltonian interface {
	Energy(x State) float64
}

// Drift is how far energy e has moved from the reference e0, relative to e0.
// A zero reference has nothing to scale by, so the absolute change is used.
func Drift(e0, e float64) float64 {
	if e0 == 0 {
		return math.Abs(e)
	}
	return math.Abs(e-e0) / math.Abs(e0)
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, t float64)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(x State, t float64)

func (f ObserverFunc) OnStep(x State, t float64) { f(x, t) }

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type Result struct {
	States      []State
	Times       []float64
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
	Errors      []error
}
