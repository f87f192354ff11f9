package orbit

import (
	"github.com/lnls-sirius/trackgo/internal/passmethod"
	"github.com/lnls-sirius/trackgo/internal/track"
)

// Matrix6 is a 6x6 transfer matrix, rows then columns.
type Matrix6 [6][6]float64

// FindM66Result bundles the one-turn matrix around a converged orbit with
// the per-element transfer matrices that compose it.
type FindM66Result struct {
	Orbit         track.Pos
	M66           Matrix6
	ElementMatrix []Matrix6 // one per lattice element, orbit's local frame
}

// FindM66 converges the closed orbit (via FindOrbit, so RF on selects the 6D
// solver) and returns the one-turn finite-difference Jacobian around it
// along with the per-element transfer matrices built by perturbing the
// orbit at each element's entrance and tracking through that single
// element.
func FindM66(acc *track.Accelerator, guess track.Pos) (FindM66Result, track.Status) {
	orbit, status := FindOrbit(acc, guess)
	if status != track.StatusSuccess {
		return FindM66Result{}, status
	}

	m66, status := oneTurnJacobian(acc, orbit)
	if status != track.StatusSuccess {
		return FindM66Result{}, status
	}

	elemMatrices, status := elementJacobians(acc, orbit)
	if status != track.StatusSuccess {
		return FindM66Result{}, status
	}

	return FindM66Result{Orbit: orbit, M66: m66, ElementMatrix: elemMatrices}, track.StatusSuccess
}

func oneTurnJacobian(acc *track.Accelerator, orbit track.Pos) (Matrix6, track.Status) {
	var m Matrix6
	base, status := trackOneTurn(acc, orbit)
	if status != track.StatusSuccess {
		return m, status
	}
	b := base.Array()
	x0 := orbit.Array()

	for j := 0; j < 6; j++ {
		xp := x0
		xp[j] += defaultH
		mapped, status := trackOneTurn(acc, track.FromArray(xp))
		if status != track.StatusSuccess {
			return m, status
		}
		mp := mapped.Array()
		for i := 0; i < 6; i++ {
			m[i][j] = (mp[i] - b[i]) / defaultH
		}
	}
	return m, track.StatusSuccess
}

// elementJacobians tracks the orbit at each element's entrance, perturbing
// one coordinate at a time and passing the perturbed position through that
// single element, building the slice transfer matrix from the resulting
// finite differences.
func elementJacobians(acc *track.Accelerator, orbit track.Pos) ([]Matrix6, track.Status) {
	traj, status := ClosedOrbitTrajectory(acc, orbit)
	if status != track.StatusSuccess {
		return nil, status
	}

	n := acc.Len()
	out := make([]Matrix6, n)
	for idx := 0; idx < n; idx++ {
		entrance := traj[idx]
		el := acc.Lattice[idx]

		base := entrance
		baseStatus := passmethod.ElementPass(&base, &el, acc)
		if baseStatus != track.StatusSuccess {
			return nil, baseStatus
		}
		b := base.Array()
		x0 := entrance.Array()

		var jac Matrix6
		for j := 0; j < 6; j++ {
			xp := x0
			xp[j] += defaultH
			p := track.FromArray(xp)
			st := passmethod.ElementPass(&p, &el, acc)
			if st != track.StatusSuccess {
				return nil, st
			}
			mp := p.Array()
			for i := 0; i < 6; i++ {
				jac[i][j] = (mp[i] - b[i]) / defaultH
			}
		}
		out[idx] = jac
	}
	return out, track.StatusSuccess
}
