package tracker

import (
	"math"
	"testing"

	"github.com/lnls-sirius/trackgo/internal/track"
)

func simpleLattice() *track.Accelerator {
	acc := track.New()
	acc.Lattice = []track.Element{
		track.Drift("d1", 1.0),
		track.Drift("d2", 1.0),
	}
	return acc
}

func TestLinePassTrajectoryLength(t *testing.T) {
	acc := simpleLattice()
	pos := track.Pos{Rx: 1e-3}
	var traj []track.Pos

	_, _, status := LinePass(acc, &pos, 0, true, &traj)
	if status != track.StatusSuccess {
		t.Fatalf("unexpected status %v", status)
	}
	if len(traj) != len(acc.Lattice)+1 {
		t.Errorf("trajectory length = %d, want %d", len(traj), len(acc.Lattice)+1)
	}
}

func TestLinePassBufferNotCleared(t *testing.T) {
	acc := simpleLattice()
	pos := track.Pos{Rx: 1e-3}
	traj := []track.Pos{{Rx: 99}}

	LinePass(acc, &pos, 0, true, &traj)
	if traj[0].Rx != 99 {
		t.Errorf("LinePass must not clear a preexisting buffer; got %+v", traj[0])
	}
}

func TestLinePassOffsetWrapEquivalence(t *testing.T) {
	acc := simpleLattice()

	start := track.Pos{Rx: 1e-3, Px: 2e-4}
	posA := start
	var trajA []track.Pos
	LinePass(acc, &posA, 1, false, &trajA)
	LinePass(acc, &posA, 0, false, &trajA)

	posB := start
	var trajB []track.Pos
	LinePass(acc, &posB, 0, false, &trajB)

	if posA != posB {
		t.Errorf("offset(1)+offset(0) = %+v, want equal to offset(0) = %+v", posA, posB)
	}
}

func TestLinePassAperturePriorityHorizontal(t *testing.T) {
	acc := track.New()
	el := track.Drift("d1", 1.0)
	el.Hmin, el.Hmax = -1e-6, 1e-6
	el.Vmin, el.Vmax = -1e-6, 1e-6
	acc.Lattice = []track.Element{el}

	pos := track.Pos{Rx: 1.0, Ry: 1.0}
	var traj []track.Pos
	plane, _, status := LinePass(acc, &pos, 0, false, &traj)

	if status != track.StatusParticleLost {
		t.Fatalf("status = %v, want particle_lost", status)
	}
	if plane != track.PlaneX {
		t.Errorf("lost_plane = %v, want horizontal (checked first)", plane)
	}
	last := traj[len(traj)-1]
	if last.IsFinite() {
		t.Errorf("expected trailing NaN-filled record on loss, got %+v", last)
	}
}

func TestRingPassZeroTurns(t *testing.T) {
	acc := simpleLattice()
	pos := track.Pos{Rx: 1e-3}
	want := pos
	var traj []track.Pos

	lostTurn, plane, status := RingPass(acc, &pos, 0, 0, true, &traj)
	if lostTurn != 0 || plane != track.PlaneNone || status != track.StatusSuccess {
		t.Fatalf("unexpected result: %d %v %v", lostTurn, plane, status)
	}
	if pos != want {
		t.Errorf("zero-turn RingPass must leave pos unchanged: got %+v, want %+v", pos, want)
	}
	if len(traj) != 1 || traj[0] != want {
		t.Errorf("zero-turn RingPass must append exactly one entry equal to pos")
	}
}

func TestRingPassAccumulatesOverTurns(t *testing.T) {
	acc := simpleLattice()
	pos := track.Pos{Rx: 1e-3, Px: 1e-4}
	var traj []track.Pos

	_, _, status := RingPass(acc, &pos, 3, 0, false, &traj)
	if status != track.StatusSuccess {
		t.Fatalf("unexpected status %v", status)
	}
	wantRx := 1e-3 + 1e-4*2.0*3
	if math.Abs(pos.Rx-wantRx) > 1e-12 {
		t.Errorf("rx after 3 turns = %.17g, want %.17g", pos.Rx, wantRx)
	}
}
