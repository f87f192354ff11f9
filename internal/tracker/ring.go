package tracker

import "github.com/lnls-sirius/trackgo/internal/track"

// RingPass tracks pos around turns revolutions of acc's lattice, invoking
// LinePass once per turn with trajectory recording forced off for the
// per-turn call. When recordTrajectory is true the post-turn coordinate is
// appended to *traj after every completed turn; otherwise only the final
// coordinate is appended once tracking finishes.
//
// turns == 0 is a no-op: pos is left unchanged, lostTurn is 0, and *traj
// receives a single entry equal to pos.
func RingPass(acc *track.Accelerator, pos *track.Pos, turns, offset int, recordTrajectory bool, traj *[]track.Pos) (lostTurn int, lostPlane track.Plane, status track.Status) {
	if turns == 0 {
		*traj = append(*traj, *pos)
		return 0, track.PlaneNone, track.StatusSuccess
	}

	var scratch []track.Pos
	for turn := 0; turn < turns; turn++ {
		scratch = scratch[:0]
		plane, _, st := LinePass(acc, pos, offset, false, &scratch)
		if st != track.StatusSuccess {
			return turn, plane, st
		}
		if recordTrajectory {
			*traj = append(*traj, *pos)
		}
	}

	if !recordTrajectory {
		*traj = append(*traj, *pos)
	}
	return 0, track.PlaneNone, track.StatusSuccess
}
