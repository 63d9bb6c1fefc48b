package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/pendulum/internal/dynamo"
	"github.com/san-kum/pendulum/internal/physics"
)

type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.005,
		Duration:      10.0,
		ValidateState: true,
	}
}

// Simulator steps a pendulum at a fixed dt, the way Scene would if every
// frame took exactly dt seconds.
type Simulator struct {
	pendulum  *physics.Pendulum
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func New(p *physics.Pendulum) *Simulator {
	return &Simulator{
		pendulum:  p,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, cfg Config) (*dynamo.Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	result := &dynamo.Result{
		States:  make([]dynamo.State, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	x := s.pendulum.State()
	result.States = append(result.States, x)
	result.Times = append(result.Times, t)

	initialEnergy := s.pendulum.Energy(x)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		s.pendulum.Tick(cfg.Dt)
		t += cfg.Dt
		x = s.pendulum.State()

		if cfg.ValidateState && !x.IsValid() {
			result.Errors = append(result.Errors, &dynamo.SimulationError{
				Step:    i,
				Time:    t,
				State:   x,
				Wrapped: fmt.Errorf("step %d (t=%.4f): %w", i, t, dynamo.ErrInvalidState),
			})
			break
		}

		for _, m := range s.metrics {
			m.Observe(x, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, t)
		}

		result.StepsTaken++
		result.States = append(result.States, x)
		result.Times = append(result.Times, t)
	}

	last := result.States[len(result.States)-1]
	result.EnergyDrift = dynamo.Drift(initialEnergy, s.pendulum.Energy(last))

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback streams every step to callback until it returns false or
// the duration elapses.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(dynamo.State, float64) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	t := 0.0
	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(s.pendulum.State(), t) {
			return nil
		}

		s.pendulum.Tick(cfg.Dt)
		t += cfg.Dt

		if cfg.ValidateState && !s.pendulum.State().IsValid() {
			return fmt.Errorf("t=%.4f: %w", t, dynamo.ErrInvalidState)
		}
	}

	return nil
}

func validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) {
		return fmt.Errorf("dt must be positive, got %f: %w", cfg.Dt, dynamo.ErrParameterBounds)
	}
	if !(cfg.Duration > 0) {
		return fmt.Errorf("duration must be positive, got %f: %w", cfg.Duration, dynamo.ErrParameterBounds)
	}
	return nil
}
