package track

import (
	"math"
	"testing"
)

func TestPosArithmetic(t *testing.T) {
	a := Pos{Rx: 1, Px: 2, Ry: 3, Py: 4, De: 5, Dl: 6}
	b := Pos{Rx: 0.5, Px: 0.5, Ry: 0.5, Py: 0.5, De: 0.5, Dl: 0.5}

	sum := a.Add(b)
	want := Pos{1.5, 2.5, 3.5, 4.5, 5.5, 6.5}
	if sum != want {
		t.Errorf("Add: got %+v, want %+v", sum, want)
	}

	diff := a.Sub(b)
	want = Pos{0.5, 1.5, 2.5, 3.5, 4.5, 5.5}
	if diff != want {
		t.Errorf("Sub: got %+v, want %+v", diff, want)
	}

	scaled := a.Scale(2)
	want = Pos{2, 4, 6, 8, 10, 12}
	if scaled != want {
		t.Errorf("Scale: got %+v, want %+v", scaled, want)
	}
}

func TestPosIsFinite(t *testing.T) {
	ok := Pos{Rx: 1, Px: 2, Ry: 3, Py: 4, De: 5, Dl: 6}
	if !ok.IsFinite() {
		t.Errorf("expected finite position to report finite")
	}

	bad := ok
	bad.Rx = math.NaN()
	if bad.IsFinite() {
		t.Errorf("expected NaN rx to report not finite")
	}

	bad = ok
	bad.Py = math.Inf(1)
	if bad.IsFinite() {
		t.Errorf("expected +Inf py to report not finite")
	}
}

func TestNaNPos(t *testing.T) {
	p := NaNPos()
	if p.IsFinite() {
		t.Errorf("NaNPos should not be finite")
	}
}

func TestPosArrayRoundTrip(t *testing.T) {
	p := Pos{1, 2, 3, 4, 5, 6}
	if got := FromArray(p.Array()); got != p {
		t.Errorf("round trip: got %+v, want %+v", got, p)
	}
}
