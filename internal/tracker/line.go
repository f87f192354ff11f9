package tracker

import (
	"math"

	"github.com/lnls-sirius/trackgo/internal/passmethod"
	"github.com/lnls-sirius/trackgo/internal/track"
)

// LinePass tracks pos once through every element of acc's lattice, starting
// at lattice index offset and wrapping modulo the lattice length. When
// recordTrajectory is true, the coordinate at the entrance of each element
// is appended to *traj before that element's map runs; on a clean exit the
// final post-map coordinate is appended too, regardless of recordTrajectory.
//
// *traj is never cleared on entry: other functions assume pos is not
// cleared in line_pass, so FindOrbit4/6 and FindM66 can append each Newton
// iteration's one-turn trajectory into a single shared buffer.
//
// rx/ry are checked for finiteness unconditionally, even with VchamberOn
// false: a pass method can hand back Inf/NaN (e.g. Drift with de == -1) with
// no aperture to blame it on, and that must still count as a loss. The
// hmin/hmax and vmin/vmax comparisons themselves are gated on VchamberOn.
//
// failedAt is the absolute lattice index of the element whose map or
// aperture check failed; it is meaningless when status is StatusSuccess.
func LinePass(acc *track.Accelerator, pos *track.Pos, offset int, recordTrajectory bool, traj *[]track.Pos) (lostPlane track.Plane, failedAt int, status track.Status) {
	n := acc.Len()
	if n == 0 {
		return track.PlaneNone, -1, track.StatusSuccess
	}

	for i := 0; i < n; i++ {
		idx := (offset + i) % n
		el := &acc.Lattice[idx]

		if recordTrajectory {
			*traj = append(*traj, *pos)
		}

		st := passmethod.ElementPass(pos, el, acc)
		if st != track.StatusSuccess {
			*traj = append(*traj, track.NaNPos())
			return track.PlaneNone, idx, st
		}

		rxFinite := !math.IsNaN(pos.Rx) && !math.IsInf(pos.Rx, 0)
		if !rxFinite || (acc.VchamberOn && (pos.Rx < el.Hmin || pos.Rx > el.Hmax)) {
			*traj = append(*traj, track.NaNPos())
			return track.PlaneX, idx, track.StatusParticleLost
		}
		ryFinite := !math.IsNaN(pos.Ry) && !math.IsInf(pos.Ry, 0)
		if !ryFinite || (acc.VchamberOn && (pos.Ry < el.Vmin || pos.Ry > el.Vmax)) {
			*traj = append(*traj, track.NaNPos())
			return track.PlaneY, idx, track.StatusParticleLost
		}
	}

	*traj = append(*traj, *pos)
	return track.PlaneNone, -1, track.StatusSuccess
}
