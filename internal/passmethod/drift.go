package passmethod

import "github.com/lnls-sirius/trackgo/internal/track"

// drift6 advances pos through a field-free section of length l, matching
// trackcpp's drift6: the longitudinal momentum deviation de scales the
// effective path length, and dl accumulates the quadratic path-length
// correction from the transverse angles.
func drift6(pos *track.Pos, l float64) {
	pNorm := 1 / (1 + pos.De)
	normL := l * pNorm
	pos.Rx += normL * pos.Px
	pos.Ry += normL * pos.Py
	pos.Dl += normL * pNorm * (pos.Px*pos.Px+pos.Py*pos.Py) / 2
}

// Drift implements PassDrift: an exact field-free transport over the
// element's full length.
func Drift(pos *track.Pos, el *track.Element, acc *track.Accelerator) track.Status {
	applyEntryMisalignment(pos, el)
	drift6(pos, el.Length)
	applyExitMisalignment(pos, el)
	return track.StatusSuccess
}

// Identity implements PassIdentity: a zero-length no-op, used for markers
// and diagnostic-only locations.
func Identity(pos *track.Pos, el *track.Element, acc *track.Accelerator) track.Status {
	applyEntryMisalignment(pos, el)
	applyExitMisalignment(pos, el)
	return track.StatusSuccess
}
