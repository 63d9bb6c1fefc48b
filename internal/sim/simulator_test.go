package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/pendulum/internal/dynamo"
	"github.com/san-kum/pendulum/internal/physics"
)

func TestSimulatorRun(t *testing.T) {
	p := physics.NewPendulum()
	sim := New(p)

	result, err := sim.Run(context.Background(), Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 11 {
		t.Errorf("expected 11 states, got %d", len(result.States))
	}
	if len(result.Times) != 11 {
		t.Errorf("expected 11 times, got %d", len(result.Times))
	}
	if result.StepsTaken != 10 {
		t.Errorf("expected 10 steps, got %d", result.StepsTaken)
	}

	ref := physics.NewPendulum()
	for i := 0; i < 10; i++ {
		ref.Tick(0.1)
	}
	final := result.States[len(result.States)-1]
	if math.Abs(final[dynamo.Angle]-ref.Radians()) > 1e-12 {
		t.Errorf("expected final angle %f, got %f", ref.Radians(), final[dynamo.Angle])
	}
}

func TestSimulatorSingleUnitStep(t *testing.T) {
	sim := New(physics.NewPendulum())

	result, err := sim.Run(context.Background(), Config{Dt: 1, Duration: 1})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	x := result.States[1]
	for i, want := range []float64{9.81, 9.81, 9.81} {
		if math.Abs(x[i]-want) > 1e-12 {
			t.Errorf("state[%d] = %f, want %f", i, x[i], want)
		}
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	sim := New(physics.NewPendulum())

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1.0}},
		{"negative dt", Config{Dt: -0.1, Duration: 1.0}},
		{"NaN dt", Config{Dt: math.NaN(), Duration: 1.0}},
		{"zero duration", Config{Dt: 0.1, Duration: 0}},
		{"negative duration", Config{Dt: 0.1, Duration: -1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sim.Run(context.Background(), tt.cfg)
			if !errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

type countMetric struct {
	count int
}

func (c *countMetric) Name() string { return "count" }

func (c *countMetric) Observe(x dynamo.State, t float64) { c.count++ }

func (c *countMetric) Value() float64 { return float64(c.count) }

func (c *countMetric) Reset() { c.count = 0 }

func TestSimulatorMetrics(t *testing.T) {
	sim := New(physics.NewPendulum())
	metric := &countMetric{}
	sim.AddMetric(metric)

	var observed int
	sim.AddObserver(dynamo.ObserverFunc(func(x dynamo.State, t float64) { observed++ }))

	result, err := sim.Run(context.Background(), Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Metrics["count"] != 10 {
		t.Errorf("expected 10 observations, got %f", result.Metrics["count"])
	}
	if observed != 10 {
		t.Errorf("expected 10 observer calls, got %d", observed)
	}
}

func TestSimulatorInvalidState(t *testing.T) {
	p := physics.NewPendulum()
	p.Gravity = math.Inf(1)
	sim := New(p)

	cfg := DefaultConfig()
	result, err := sim.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(result.Errors))
	}
	if !errors.Is(result.Errors[0], dynamo.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", result.Errors[0])
	}
	var simErr *dynamo.SimulationError
	if !errors.As(result.Errors[0], &simErr) || simErr.Step != 0 {
		t.Errorf("expected failure at step 0, got %v", result.Errors[0])
	}
	if result.StepsTaken != 0 {
		t.Errorf("expected no completed steps, got %d", result.StepsTaken)
	}
}

func TestSimulatorDriftFromHorizontal(t *testing.T) {
	sim := New(physics.NewPendulum())

	result, err := sim.Run(context.Background(), Config{Dt: 0.05, Duration: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !(result.EnergyDrift > 0) {
		t.Errorf("expected positive energy drift for a coarse horizontal release, got %v", result.EnergyDrift)
	}
}

func TestSimulatorDriftAfterDivergence(t *testing.T) {
	p := physics.NewPendulum()
	p.SetDegrees(45)
	sim := New(p)

	result, err := sim.Run(context.Background(), Config{Dt: 1e200, Duration: 1e201, ValidateState: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.Errors) != 1 || !errors.Is(result.Errors[0], dynamo.ErrInvalidState) {
		t.Fatalf("expected one ErrInvalidState, got %v", result.Errors)
	}
	if math.IsNaN(result.EnergyDrift) || math.IsInf(result.EnergyDrift, 0) {
		t.Errorf("drift should come from the last valid state, got %v", result.EnergyDrift)
	}
	for _, x := range result.States {
		if !x.IsValid() {
			t.Errorf("recorded invalid state %v", x)
		}
	}
}

func TestSimulatorCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(physics.NewPendulum()).Run(ctx, DefaultConfig())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunWithCallback(t *testing.T) {
	sim := New(physics.NewPendulum())

	var calls int
	err := sim.RunWithCallback(context.Background(), Config{Dt: 0.01, Duration: 1}, func(x dynamo.State, t float64) bool {
		calls++
		return calls < 5
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if calls != 5 {
		t.Errorf("expected callback to stop after 5 calls, got %d", calls)
	}
}
