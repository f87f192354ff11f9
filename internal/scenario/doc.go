// Package scenario runs a YAML-described parameter scan over a lattice: a
// named element field is swept across a value range, and a closed-orbit
// solve or tracking run is repeated at each value. Scan points are
// independent and run concurrently with a bounded worker pool.
package scenario
