package passmethod

import (
	"math"
	"testing"

	"github.com/lnls-sirius/trackgo/internal/track"
)

func approxEqual(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestDriftLinearLimit(t *testing.T) {
	pos := track.Pos{Rx: 1e-3, Px: 1e-4}
	el := track.Drift("d1", 1.0)
	acc := track.New()

	status := ElementPass(&pos, &el, acc)
	if status != track.StatusSuccess {
		t.Fatalf("unexpected status %v", status)
	}
	if !approxEqual(pos.Rx, 1.0001, 1e-15) {
		t.Errorf("rx = %.17g, want 1.0001", pos.Rx)
	}
	if !approxEqual(pos.Px, 1e-4, 1e-15) {
		t.Errorf("px = %.17g, want 1e-4", pos.Px)
	}
	if pos.Ry != 0 || pos.Py != 0 || pos.De != 0 {
		t.Errorf("transverse-y and energy coordinates must be untouched by a drift")
	}
}

func TestThinQuadKick(t *testing.T) {
	pos := track.Pos{Rx: 1e-3}
	el := track.ThinQuadrupole("qf1", 0.5)
	acc := track.New()

	status := ElementPass(&pos, &el, acc)
	if status != track.StatusSuccess {
		t.Fatalf("unexpected status %v", status)
	}
	if !approxEqual(pos.Px, -5e-4, 1e-18) {
		t.Errorf("px = %.17g, want -5e-4", pos.Px)
	}
}

func TestCavityOffDegeneratesToDrift(t *testing.T) {
	pos := track.Pos{Rx: 1e-3, Px: 1e-4}
	withCavity := pos
	el := track.RFCavity("cav", 1.0, 500e6, 1e6)
	acc := track.New()
	acc.Energy = 3e9
	acc.CavityOn = false

	ElementPass(&withCavity, &el, acc)

	drift := pos
	driftEl := track.Drift("d", 1.0)
	ElementPass(&drift, &driftEl, acc)

	if withCavity != drift {
		t.Errorf("cavity off: got %+v, want plain drift result %+v", withCavity, drift)
	}
}

func TestCavitySynchronousParticleFixed(t *testing.T) {
	pos := track.Pos{Dl: 0}
	el := track.RFCavity("cav", 1.0, 500e6, 1e6)
	acc := track.New()
	acc.Energy = 3e9
	acc.CavityOn = true

	ElementPass(&pos, &el, acc)
	if pos.De != 0 {
		t.Errorf("synchronous particle (dl=0) must receive no energy kick, got de=%g", pos.De)
	}
}

func TestUnknownPassMethodReportsNotDefined(t *testing.T) {
	pos := track.Pos{}
	el := track.Drift("d", 1.0)
	el.PassMethod = track.PassMethod(99)
	acc := track.New()

	if status := ElementPass(&pos, &el, acc); status != track.StatusPassMethodNotDefined {
		t.Errorf("got %v, want StatusPassMethodNotDefined", status)
	}
}
