// Package dynamo provides the shared primitives for the pendulum simulation.
//
// The package defines the types that flow between the integrator, the
// playback clock and everything observing them:
//
//   - [State]: [angle, velocity, acceleration] snapshot of the pendulum
//   - [Observer]: callback invoked after every advancing step
//   - [Metric]: accumulator summarising a run
//   - [Result]: output of a headless run
//
// Sentinel errors ([ErrParameterBounds], [ErrInvalidState], ...) are meant to
// be wrapped with fmt.Errorf and matched with errors.Is.
package dynamo
