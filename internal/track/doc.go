// Package track defines the phase-space, element, and lattice data model
// shared by the pass-method library, the tracker, and the closed-orbit
// solvers.
//
// The central types are:
//
//   - [Pos]: a six-component phase-space coordinate (rx, px, ry, py, de, dl)
//   - [Element]: a tagged record of every parameter any pass method may read
//   - [Accelerator]: an ordered lattice plus global switches and energy
//   - [Kicktable]: a shared, immutable insertion-device kick grid
//
// Thread Safety
//
// Accelerator and Kicktable values are read-only once constructed and may be
// shared across goroutines tracking distinct Pos values concurrently.
package track
