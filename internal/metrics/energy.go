package metrics

import (
	"math"

	"github.com/san-kum/pendulum/internal/dynamo"
)

// Energy averages the model's mechanical energy over the observed samples.
type Energy struct {
	model dynamo.Hamiltonian
	sum   float64
	n     int
}

func NewEnergy(model dynamo.Hamiltonian) *Energy {
	return &Energy{model: model}
}

func (e *Energy) Name() string { return "energy" }

func (e *Energy) Observe(x dynamo.State, t float64) {
	if len(x) <= dynamo.Velocity {
		return
	}
	e.sum += e.model.Energy(x)
	e.n++
}

func (e *Energy) Value() float64 {
	if e.n == 0 {
		return 0
	}
	return e.sum / float64(e.n)
}

func (e *Energy) Reset() { *e = Energy{model: e.model} }

// EnergyDrift is the worst dynamo.Drift seen against the first observed
// sample. It grows with dt because the Euler step does not conserve energy.
type EnergyDrift struct {
	model     dynamo.Hamiltonian
	reference float64
	worst     float64
	seeded    bool
}

func NewEnergyDrift(model dynamo.Hamiltonian) *EnergyDrift {
	return &EnergyDrift{model: model}
}

func (d *EnergyDrift) Name() string { return "energy_drift" }

func (d *EnergyDrift) Observe(x dynamo.State, t float64) {
	if len(x) <= dynamo.Velocity {
		return
	}
	en := d.model.Energy(x)
	if !d.seeded {
		d.reference, d.seeded = en, true
		return
	}
	d.worst = math.Max(d.worst, dynamo.Drift(d.reference, en))
}

func (d *EnergyDrift) Value() float64 { return d.worst }

func (d *EnergyDrift) Reset() { *d = EnergyDrift{model: d.model} }
