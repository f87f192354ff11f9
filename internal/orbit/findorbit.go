package orbit

import (
	"math"

	"github.com/lnls-sirius/trackgo/internal/track"
	"github.com/lnls-sirius/trackgo/internal/tracker"
)

const (
	defaultH       = 1e-8
	convergenceTol = 1e-12
	maxIterations  = 50
)

// trackOneTurn tracks x once around acc's lattice from element 0, returning
// the post-map position and the tracker's status. Loss or a pass-method
// failure during Jacobian formation propagates as-is.
func trackOneTurn(acc *track.Accelerator, x track.Pos) (track.Pos, track.Status) {
	var scratch []track.Pos
	pos := x
	_, _, status := tracker.LinePass(acc, &pos, 0, false, &scratch)
	return pos, status
}

// newtonOrbit runs the shared Newton iteration over the first dim
// coordinates of x0 (dim is 4 or 6), holding the remaining coordinates
// fixed at their x0 values throughout. If trace is non-nil, the residual
// infinity-norm of every iteration is appended to it, letting a caller (the
// live TUI) animate convergence; trace is never cleared on entry, matching
// the tracker package's trajectory-buffer contract.
func newtonOrbit(acc *track.Accelerator, x0 track.Pos, dim int, trace *[]float64) (track.Pos, track.Status) {
	x := x0.Array()

	for iter := 0; iter < maxIterations; iter++ {
		mapped, status := trackOneTurn(acc, track.FromArray(x))
		if status != track.StatusSuccess {
			return track.FromArray(x), status
		}
		m0 := mapped.Array()

		r := make([]float64, dim)
		maxR := 0.0
		for i := 0; i < dim; i++ {
			r[i] = m0[i] - x[i]
			if a := math.Abs(r[i]); a > maxR {
				maxR = a
			}
		}
		if trace != nil {
			*trace = append(*trace, maxR)
		}
		if maxR < convergenceTol {
			return track.FromArray(x), track.StatusSuccess
		}

		jac := make([][]float64, dim)
		for i := range jac {
			jac[i] = make([]float64, dim)
		}
		for j := 0; j < dim; j++ {
			xp := x
			xp[j] += defaultH
			mappedP, status := trackOneTurn(acc, track.FromArray(xp))
			if status != track.StatusSuccess {
				return track.FromArray(x), status
			}
			mp := mappedP.Array()
			for i := 0; i < dim; i++ {
				jac[i][j] = (mp[i] - m0[i]) / defaultH
			}
		}
		for i := 0; i < dim; i++ {
			jac[i][i] -= 1
		}
		for i := 0; i < dim; i++ {
			r[i] = -r[i]
		}

		delta, ok := solve(jac, r)
		if !ok {
			return track.FromArray(x), track.StatusFindOrbitNotConverged
		}
		for i := 0; i < dim; i++ {
			x[i] += delta[i]
		}
	}

	return track.FromArray(x), track.StatusFindOrbitNotConverged
}

// FindOrbit4 finds the transverse closed orbit with longitudinal
// coordinates (de, dl) held fixed at their guess values, the variant used
// when the accelerator's RF cavity is off.
func FindOrbit4(acc *track.Accelerator, guess track.Pos) (track.Pos, track.Status) {
	return newtonOrbit(acc, guess, 4, nil)
}

// FindOrbit6 finds the full six-dimensional closed orbit, the variant used
// when the accelerator's RF cavity is on.
func FindOrbit6(acc *track.Accelerator, guess track.Pos) (track.Pos, track.Status) {
	return newtonOrbit(acc, guess, 6, nil)
}

// FindOrbit picks FindOrbit4 or FindOrbit6 based on acc.CavityOn.
func FindOrbit(acc *track.Accelerator, guess track.Pos) (track.Pos, track.Status) {
	if acc.CavityOn {
		return FindOrbit6(acc, guess)
	}
	return FindOrbit4(acc, guess)
}

// FindOrbitTrace behaves like FindOrbit but additionally records the
// Newton iteration's residual infinity-norm history into trace, for the
// live TUI's convergence animation.
func FindOrbitTrace(acc *track.Accelerator, guess track.Pos, trace *[]float64) (track.Pos, track.Status) {
	dim := 4
	if acc.CavityOn {
		dim = 6
	}
	return newtonOrbit(acc, guess, dim, trace)
}

// ClosedOrbitTrajectory tracks orbit once around the lattice with
// trajectory recording on, returning the closed-orbit coordinate at every
// element entrance plus the final exit coordinate.
func ClosedOrbitTrajectory(acc *track.Accelerator, orbit track.Pos) ([]track.Pos, track.Status) {
	var traj []track.Pos
	pos := orbit
	_, _, status := tracker.LinePass(acc, &pos, 0, true, &traj)
	return traj, status
}
