// Package analysis extracts betatron tunes from turn-by-turn tracking data:
// the power spectrum of a coordinate's per-turn history peaks at the
// fractional tune, the normalized betatron oscillation frequency.
package analysis
