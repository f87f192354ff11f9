// Package tracker implements the line and ring trackers: the loop that
// walks a Pos through an Accelerator's lattice one element at a time via
// passmethod.ElementPass, checking the vacuum chamber aperture after each
// map and recording a trajectory when asked.
//
// Thread safety: LinePass and RingPass read the Accelerator and mutate only
// the caller-supplied Pos and trajectory buffer; concurrent calls with
// distinct Pos/buffer pairs sharing one Accelerator are safe.
package tracker
