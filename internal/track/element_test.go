package track

import "testing"

func TestElementEqualDriftShortcut(t *testing.T) {
	a := Drift("d1", 1.0)
	b := Drift("d1", 1.0)
	b.TIn[0] = 1e-3 // misalignment on a drift has no observable effect

	if !a.Equal(b) {
		t.Errorf("expected physically-equivalent drifts to compare equal")
	}

	c := Drift("d1", 1.5)
	if a.Equal(c) {
		t.Errorf("expected drifts with different length to compare unequal")
	}
}

func TestElementEqualMarkerShortcut(t *testing.T) {
	a := Marker("bpm1")
	b := Marker("bpm1")
	b.RIn[0][0] = -1

	if !a.Equal(b) {
		t.Errorf("expected physically-equivalent markers to compare equal")
	}
}

func TestElementEqualQuadrupoleChecksFields(t *testing.T) {
	a := Quadrupole("qf1", 0.2, 1.5, 10)
	b := Quadrupole("qf1", 0.2, 1.5, 10)
	if !a.Equal(b) {
		t.Errorf("expected identical quadrupoles to compare equal")
	}

	c := Quadrupole("qf1", 0.2, 1.6, 10)
	if a.Equal(c) {
		t.Errorf("expected quadrupoles with different strength to compare unequal")
	}
}

func TestRBendSetsDipoleFromAngleNotPolynomB0(t *testing.T) {
	e := RBend("b1", 1.0, 0.1, 0.05, 0.05, 0.02, 0.5, 0.5, nil, nil, 0, 0, 20)
	if e.PolynomB[0] != 0 {
		t.Errorf("dipole strength must come from angle/length, not polynom_b[0]; got %g", e.PolynomB[0])
	}
	if len(e.PolynomA) < 3 || len(e.PolynomB) < 3 {
		t.Errorf("bend polynomials must have length >= 3")
	}
}
