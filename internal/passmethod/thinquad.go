package passmethod

import "github.com/lnls-sirius/trackgo/internal/track"

// ThinQuad implements PassThinQuad: a zero-length kick from the integrated
// quadrupole strength KL, horizontally focusing for KL > 0.
func ThinQuad(pos *track.Pos, el *track.Element, acc *track.Accelerator) track.Status {
	applyEntryMisalignment(pos, el)
	pos.Px -= el.ThinKL * pos.Rx
	pos.Py += el.ThinKL * pos.Ry
	applyExitMisalignment(pos, el)
	return track.StatusSuccess
}

// ThinSext implements PassThinSext: a zero-length kick from the integrated
// sextupole strength SL.
func ThinSext(pos *track.Pos, el *track.Element, acc *track.Accelerator) track.Status {
	applyEntryMisalignment(pos, el)
	pos.Px -= el.ThinSL * (pos.Rx*pos.Rx - pos.Ry*pos.Ry) / 2
	pos.Py += el.ThinSL * pos.Rx * pos.Ry
	applyExitMisalignment(pos, el)
	return track.StatusSuccess
}
