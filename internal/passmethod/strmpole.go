package passmethod

import "github.com/lnls-sirius/trackgo/internal/track"

// StrMPoleSymplectic4 implements PassStrMPoleSymplectic4: a straight
// multipole (quadrupole, sextupole, or any higher order carried in
// polynom_a/polynom_b) integrated over NrSteps slices with the 4th-order
// Forest-Ruth splitting.
func StrMPoleSymplectic4(pos *track.Pos, el *track.Element, acc *track.Accelerator) track.Status {
	applyEntryMisalignment(pos, el)

	symplectic4Pass(pos, el.Length, el.NrSteps, func(p *track.Pos, l float64) {
		strThinKick(p, el, acc, l)
	})

	applyExitMisalignment(pos, el)
	if !pos.IsFinite() {
		return track.StatusParticleLost
	}
	return track.StatusSuccess
}
