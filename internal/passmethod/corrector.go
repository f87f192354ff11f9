package passmethod

import "github.com/lnls-sirius/trackgo/internal/track"

// Corrector implements PassCorrector: a thin horizontal+vertical kick,
// sandwiched between half-length drifts when the element carries a nonzero
// length (a "thick" corrector magnet rather than a zero-length kicker).
func Corrector(pos *track.Pos, el *track.Element, acc *track.Accelerator) track.Status {
	applyEntryMisalignment(pos, el)

	if el.Length > 0 {
		half := el.Length / 2
		drift6(pos, half)
		pos.Px += el.Hkick
		pos.Py += el.Vkick
		drift6(pos, half)
	} else {
		pos.Px += el.Hkick
		pos.Py += el.Vkick
	}

	applyExitMisalignment(pos, el)
	return track.StatusSuccess
}
