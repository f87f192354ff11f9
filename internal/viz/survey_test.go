package viz

import (
	"math"
	"testing"

	"github.com/lnls-sirius/trackgo/internal/track"
)

func TestLatticeWireframeStraightLattice(t *testing.T) {
	acc := track.New()
	acc.Lattice = []track.Element{
		track.Drift("d1", 1.0),
		track.Quadrupole("qf", 0.2, 1.2, 10),
		track.Drift("d2", 1.0),
	}

	w := LatticeWireframe(acc)
	if len(w.Edges) != 3 {
		t.Fatalf("len(edges) = %d, want 3", len(w.Edges))
	}
	total := w.Edges[len(w.Edges)-1].End
	wantZ := 1.0 + 0.2 + 1.0
	if math.Abs(total.Z-wantZ) > 1e-12 || total.X != 0 {
		t.Errorf("final position = %+v, want z=%g x=0", total, wantZ)
	}
}

func TestLatticeWireframeBendClosesRing(t *testing.T) {
	acc := track.New()
	angle := math.Pi / 2
	length := angle * 1.0 // rho = 1
	acc.Lattice = []track.Element{
		track.RBend("b1", length, angle, angle/2, angle/2, 0.03, 0.5, 0.5, nil, nil, 0, 0, 20),
		track.RBend("b2", length, angle, angle/2, angle/2, 0.03, 0.5, 0.5, nil, nil, 0, 0, 20),
		track.RBend("b3", length, angle, angle/2, angle/2, 0.03, 0.5, 0.5, nil, nil, 0, 0, 20),
		track.RBend("b4", length, angle, angle/2, angle/2, 0.03, 0.5, 0.5, nil, nil, 0, 0, 20),
	}

	w := LatticeWireframe(acc)
	final := w.Edges[len(w.Edges)-1].End
	if math.Abs(final.X) > 1e-9 || math.Abs(final.Z) > 1e-9 {
		t.Errorf("four 90deg bends should close the ring, got %+v", final)
	}
}
