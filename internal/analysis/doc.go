// Package analysis provides post-run diagnostics over recorded states.
//
// The package works on the flattened snapshots a run produces:
//
//   - [TrajectoryOf]: one node's path across a run
//   - [Component]: a single coordinate as a time series
//   - [PowerSpectrum] / [DominantFrequency]: gait periodicity via FFT
//   - [CrossingSection]: stroboscopic samples at threshold crossings
//   - [DivergenceRate]: separation growth between two runs
//
// # Gait Detection
//
// A walking creature oscillates; its foot height series carries the
// stride frequency:
//
//	ys := analysis.Component(result.States, 2*foot+1)
//	freq, power := analysis.DominantFrequency(ys, cfg.Dt)
package analysis
