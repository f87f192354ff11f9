package passmethod

// cgamma is the classical radiation constant for electrons, 8.846056192e-5
// m/GeV^3. Used only by the approximate classical energy-loss model applied
// when an accelerator has radiation enabled; no quantum excitation or
// damping partition is modeled.
const cgamma = 8.846056192e-5

// evalMultipole evaluates the complex multipole field at transverse offset
// (x, y) via Horner's method, matching trackcpp's strthinkick/bndthinkick
// recursion: reSum is the normal (By-like) component, imSum the skew
// (Bx-like) component.
func evalMultipole(polynomA, polynomB []float64, x, y float64) (reSum, imSum float64) {
	order := len(polynomB)
	if len(polynomA) > order {
		order = len(polynomA)
	}
	if order == 0 {
		return 0, 0
	}
	at := func(p []float64, i int) float64 {
		if i < len(p) {
			return p[i]
		}
		return 0
	}

	reSum = at(polynomB, order-1)
	imSum = at(polynomA, order-1)
	for i := order - 2; i >= 0; i-- {
		reSum, imSum = reSum*x-imSum*y+at(polynomB, i), imSum*x+reSum*y+at(polynomA, i)
	}
	return reSum, imSum
}

// radiationLoss returns the fractional energy loss de incurred over path
// length l from the classical synchrotron radiation formula, approximating
// the local normalized field magnitude as the physical field.
func radiationLoss(energyGeV, reSum, imSum, l float64) float64 {
	b2 := reSum*reSum + imSum*imSum
	return -(cgamma / (2 * 3.141592653589793)) * energyGeV * energyGeV * energyGeV * b2 * l
}
