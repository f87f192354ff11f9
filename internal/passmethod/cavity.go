package passmethod

import (
	"math"

	"github.com/lnls-sirius/trackgo/internal/track"
)

// Cavity implements PassCavity. With acc.CavityOn, the energy kick is
// applied at the element's longitudinal center, sandwiched between
// half-length drifts, with phase referenced so the synchronous particle
// (dl == 0) is a fixed point: de += (voltage/energy) * sin(-2*pi*f*dl/c).
// With acc.CavityOn false the element degenerates to a plain drift.
func Cavity(pos *track.Pos, el *track.Element, acc *track.Accelerator) track.Status {
	applyEntryMisalignment(pos, el)

	if !acc.CavityOn {
		drift6(pos, el.Length)
		applyExitMisalignment(pos, el)
		return track.StatusSuccess
	}

	half := el.Length / 2
	drift6(pos, half)
	phase := -2 * math.Pi * el.Frequency * pos.Dl / lightSpeed
	pos.De += (el.Voltage / acc.Energy) * math.Sin(phase)
	drift6(pos, half)

	applyExitMisalignment(pos, el)
	return track.StatusSuccess
}
