// Package physics provides the pendulum model and its integration step.
//
// [Pendulum] measures its angle from the horizontal and advances with one
// explicit Euler step per frame:
//
//	acc   = g * cos(angle) / length
//	vel  += acc * dt
//	angle += vel * dt
//
// The model implements [dynamo.Configurable] for runtime parameter
// adjustment and exposes [Pendulum.Energy] for drift monitoring:
//
//	p := physics.NewPendulum()
//	p.SetDegrees(0)
//	p.Tick(0.01)
//	e := p.Energy(p.State())
package physics
