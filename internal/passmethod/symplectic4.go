package passmethod

import "github.com/lnls-sirius/trackgo/internal/track"

// Forest-Ruth fourth-order splitting coefficients: each integration slice of
// length l is advanced as
//
//	D(drift1*l) K(kick1*l) D(drift2*l) K(kick2*l) D(drift2*l) K(kick1*l) D(drift1*l)
const (
	frDrift1 = 0.6756035959798286638
	frDrift2 = -0.1756035959798286639
	frKick1  = 1.351207191959657328
	frKick2  = -1.702414383919314656
)

// strThinKick applies the straight-multipole thin kick: the ordinary field
// expansion, with an optional classical radiation-loss correction.
func strThinKick(pos *track.Pos, el *track.Element, acc *track.Accelerator, l float64) {
	reSum, imSum := evalMultipole(el.PolynomA, el.PolynomB, pos.Rx, pos.Ry)
	if acc.RadiationOn {
		pos.De += radiationLoss(acc.Energy/1e9, reSum, imSum, l)
	}
	pos.Px -= l * reSum
	pos.Py += l * imSum
}

// bndThinKick applies the bending-multipole thin kick: the field expansion
// plus the curvature correction and path-length accumulation driven by
// irho = angle/length, matching trackcpp's bndthinkick.
func bndThinKick(pos *track.Pos, el *track.Element, acc *track.Accelerator, l, irho float64) {
	reSum, imSum := evalMultipole(el.PolynomA, el.PolynomB, pos.Rx, pos.Ry)
	if acc.RadiationOn {
		b2 := reSum*reSum + imSum*imSum + irho*irho
		pos.De += -(cgamma / (2 * 3.141592653589793)) * (acc.Energy / 1e9) * (acc.Energy / 1e9) * (acc.Energy / 1e9) * b2 * l
	}
	pos.Px -= l * (reSum - (pos.De-pos.Rx*irho)*irho)
	pos.Py += l * imSum
	pos.Dl += l * irho * pos.Rx
}

// symplectic4Pass advances pos through nrSteps slices of a 4th-order
// Forest-Ruth integration, calling kick for each of the three thin-kick
// sub-steps per slice.
func symplectic4Pass(pos *track.Pos, length float64, nrSteps int, kick func(pos *track.Pos, l float64)) {
	if nrSteps < 1 {
		nrSteps = 1
	}
	sliceLen := length / float64(nrSteps)
	for s := 0; s < nrSteps; s++ {
		drift6(pos, sliceLen*frDrift1)
		kick(pos, sliceLen*frKick1)
		drift6(pos, sliceLen*frDrift2)
		kick(pos, sliceLen*frKick2)
		drift6(pos, sliceLen*frDrift2)
		kick(pos, sliceLen*frKick1)
		drift6(pos, sliceLen*frDrift1)
	}
}
