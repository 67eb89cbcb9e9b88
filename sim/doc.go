// Package sim provides the discrete-event engine for multi-stage queueing
// networks.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - config.go: SimulationConfig, StageSpec and exhaustive validation
//   - simulator.go: the hour-by-hour arrival loop, abandonment and the stage pipeline
//   - server.go: the per-stage busy-until table (the only mutable shared state)
//   - metrics.go: CustomerRecord, HourRecord and SimulationReport
//
// # Architecture
//
// The sim package owns the run loop; supporting pieces live in sub-packages:
//   - sim/workload/: distribution families, service-time samplers and the Poisson arrival stream
//   - sim/trace/: optional reservation/abandonment trace
//   - sim/stats/: descriptive statistics, histograms, box plots, stem-and-leaf
//   - sim/fit/: maximum-likelihood fitting, AIC selection and inverse CDFs
//   - sim/analysis/: one-shot sample analysis combining stats and fit
//   - sim/sampling/: seeded random-variate buffers
//   - sim/montecarlo/: batch Monte-Carlo aggregation over summed variables
//
// # Determinism
//
// Randomness is never global. A PartitionedRNG derived from a SimulationKey
// hands each subsystem (arrivals, abandonment, each stage) its own
// *rand.Rand, so a fixed seed reproduces a run exactly and independent runs
// can use independent keys.
//
// # Boundary
//
// RunJSON, DecodeConfig, EncodeReport and DecodeReport form the text
// transport used by the CLI and by foreign callers.
package sim
