package passmethod

import "github.com/lnls-sirius/trackgo/internal/track"

// Kicktable implements PassKicktable: the bilinearly-interpolated
// horizontal and vertical kick from the element's insertion-device table,
// applied at the longitudinal center between half-length drifts over the
// table's declared length.
func Kicktable(pos *track.Pos, el *track.Element, acc *track.Accelerator) track.Status {
	if el.Kicktable == nil {
		return track.StatusPassMethodNotImplemented
	}

	applyEntryMisalignment(pos, el)

	half := el.Length / 2
	drift6(pos, half)
	hkick, vkick, ok := el.Kicktable.Interpolate(pos.Rx, pos.Ry)
	if !ok {
		return track.StatusKicktableOutOfRange
	}
	pos.Px += hkick
	pos.Py += vkick
	drift6(pos, half)

	applyExitMisalignment(pos, el)
	return track.StatusSuccess
}
