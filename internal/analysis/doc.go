// Package analysis measures recorded pendulum runs.
//
// [SwingPeriod] estimates the oscillation period from the angle trace via
// the power spectrum:
//
//	period := analysis.SwingPeriod(angles, dt)
//
// Large swings of this model are far from the small-angle period
// 2*pi*sqrt(L/g), so the measured value is the useful one.
package analysis
