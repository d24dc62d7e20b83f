// Package kernel provides primitives shared by every aggregate of the
// workshop domain.
//
// The package includes:
//   - Clock: the single source of "now" for aggregates, handlers and sweeps
//   - SystemClock: the production clock, always in UTC
//   - ManualClock: a settable clock that lets sweeps and age thresholds be
//     driven deterministically
package kernel
