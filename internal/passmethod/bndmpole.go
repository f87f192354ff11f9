package passmethod

import (
	"math"

	"github.com/lnls-sirius/trackgo/internal/track"
)

// dipoleEdgeFringe applies the linear dipole edge-focusing kick at a sector
// bend's entrance or exit face, the standard thin-fringe correction driven
// by the edge angle and the pole-face gap.
func dipoleEdgeFringe(pos *track.Pos, irho, edgeAngle, gap, fint float64) {
	psi := fint * gap * irho * (1 + math.Sin(edgeAngle)*math.Sin(edgeAngle)) / math.Cos(edgeAngle)
	pos.Px += pos.Rx * irho * math.Tan(edgeAngle)
	pos.Py -= pos.Ry * irho * math.Tan(edgeAngle-psi)
}

// BndMPoleSymplectic4 implements PassBndMPoleSymplectic4: a combined-function
// bending magnet. The body uses the same Forest-Ruth drift-kick splitting as
// the straight multipole, but each thin kick carries the curvature
// correction and path-length term driven by irho = angle/length; the
// entrance and exit faces each receive a linear edge-fringe kick.
func BndMPoleSymplectic4(pos *track.Pos, el *track.Element, acc *track.Accelerator) track.Status {
	applyEntryMisalignment(pos, el)

	irho := el.Angle / el.Length

	dipoleEdgeFringe(pos, irho, el.AngleIn, el.Gap, el.FintIn)

	symplectic4Pass(pos, el.Length, el.NrSteps, func(p *track.Pos, l float64) {
		bndThinKick(p, el, acc, l, irho)
	})

	dipoleEdgeFringe(pos, irho, el.AngleOut, el.Gap, el.FintOut)

	applyExitMisalignment(pos, el)
	if !pos.IsFinite() {
		return track.StatusParticleLost
	}
	return track.StatusSuccess
}
