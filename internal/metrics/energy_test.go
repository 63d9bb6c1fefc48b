package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/pendulum/internal/dynamo"
	"github.com/san-kum/pendulum/internal/physics"
)

func TestEnergyMean(t *testing.T) {
	p := physics.NewPendulum()
	if err := p.SetLength(2.0); err != nil {
		t.Fatal(err)
	}
	m := NewEnergy(p)

	a := dynamo.State{0.7, -1.3, 0}
	b := dynamo.State{math.Pi / 2, 0.4, 0}
	m.Observe(a, 0)
	m.Observe(b, 0.1)

	expected := (p.Energy(a) + p.Energy(b)) / 2
	if math.Abs(m.Value()-expected) > 1e-9 {
		t.Errorf("expected mean energy %f, got %f", expected, m.Value())
	}
}

func TestEnergyIgnoresShortStates(t *testing.T) {
	m := NewEnergy(physics.NewPendulum())
	m.Observe(dynamo.State{0}, 0)
	if m.Value() != 0 {
		t.Errorf("expected no samples, got %f", m.Value())
	}
}

func TestEnergyReset(t *testing.T) {
	m := NewEnergy(physics.NewPendulum())

	m.Observe(dynamo.State{1.0, 1.0, 0}, 0)
	if m.Value() == 0 {
		t.Error("expected non-zero energy")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
	m.Observe(dynamo.State{0, 0, 0}, 0)
	if math.Abs(m.Value()-physics.Gravity) > 1e-12 {
		t.Errorf("reset should keep the model, got %f", m.Value())
	}
}

func TestEnergyDriftGrowsWithDt(t *testing.T) {
	drift := func(dt float64) float64 {
		p := physics.NewPendulum()
		p.SetDegrees(10)
		m := NewEnergyDrift(p)
		steps := int(5.0 / dt)
		for i := 0; i < steps; i++ {
			p.Tick(dt)
			m.Observe(p.State(), float64(i)*dt)
		}
		return m.Value()
	}

	small, large := drift(0.001), drift(0.05)
	if small >= large {
		t.Errorf("expected drift to grow with dt: dt=0.001 -> %e, dt=0.05 -> %e", small, large)
	}
}

func TestEnergyDriftFromRest(t *testing.T) {
	p := physics.NewPendulum()
	m := NewEnergyDrift(p)

	m.Observe(dynamo.State{math.Pi / 2, 0, 0}, 0)
	m.Observe(dynamo.State{math.Pi / 2, 0.5, 0}, 0.1)

	if math.Abs(m.Value()-0.125) > 1e-9 {
		t.Errorf("expected absolute drift 0.125 from a zero reference, got %f", m.Value())
	}
}

func TestPeakSpeed(t *testing.T) {
	m := NewPeakSpeed(2.0)
	for _, v := range []float64{1, -3, 2} {
		m.Observe(dynamo.State{0, v, 0}, 0)
	}
	if m.Value() != 6 {
		t.Errorf("expected peak speed 6, got %f", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected zero after reset, got %f", m.Value())
	}
}

func TestDefaults(t *testing.T) {
	p := physics.NewPendulum()
	ms := Defaults(p.Length(), p)

	names := map[string]bool{}
	for _, m := range ms {
		names[m.Name()] = true
	}
	for _, want := range []string{"energy", "energy_drift", "peak_speed"} {
		if !names[want] {
			t.Errorf("missing default metric %s", want)
		}
	}
}
