package track

import (
	"fmt"
	"math"
	"strings"
)

// Element holds every parameter any pass method may consume, plus the
// entry/exit misalignment transform. Most fields are meaningless for most
// pass methods; which ones matter is determined entirely by PassMethod.
type Element struct {
	FamName    string
	PassMethod PassMethod

	Length  float64 // [m]
	NrSteps int     // integration slices for multipoles, >= 1

	Hmin, Hmax float64 // [m]
	Vmin, Vmax float64 // [m]

	Hkick, Vkick float64 // [rad]

	Angle, AngleIn, AngleOut float64 // [rad]
	Gap                      float64 // [m]
	FintIn, FintOut          float64

	ThinKL float64 // [1/m], thin quadrupole integrated strength
	ThinSL float64 // [1/m^2], thin sextupole integrated strength

	Frequency float64 // [Hz]
	Voltage   float64 // [V]

	PolynomA []float64 // skew multipole coefficients
	PolynomB []float64 // normal multipole coefficients

	Kicktable *Kicktable // shared, non-owning; nil unless PassKicktable

	TIn, TOut [6]float64
	RIn, ROut [6][6]float64
}

// NewElement builds a zero-length identity-transform drift with the given
// name and length, matching trackcpp's Element default constructor: r_in and
// r_out start as the identity matrix, t_in/t_out start at zero.
func NewElement(famName string, length float64) Element {
	e := Element{
		FamName:    famName,
		PassMethod: PassDrift,
		Length:     length,
		NrSteps:    1,
		Hmin:       -math.MaxFloat64,
		Hmax:       math.MaxFloat64,
		Vmin:       -math.MaxFloat64,
		Vmax:       math.MaxFloat64,
		PolynomA:   []float64{0, 0, 0},
		PolynomB:   []float64{0, 0, 0},
	}
	for i := 0; i < 6; i++ {
		e.RIn[i][i] = 1
		e.ROut[i][i] = 1
	}
	return e
}

// Marker builds a zero-length identity-pass element, used for beam position
// monitors and other diagnostic-only locations.
func Marker(famName string) Element {
	e := NewElement(famName, 0)
	e.PassMethod = PassIdentity
	return e
}

// Drift builds a field-free section of the given length.
func Drift(famName string, length float64) Element {
	e := NewElement(famName, length)
	e.PassMethod = PassDrift
	return e
}

// Corrector builds a thin horizontal+vertical kick element.
func Corrector(famName string, length, hkick, vkick float64) Element {
	e := NewElement(famName, length)
	e.PassMethod = PassCorrector
	e.Hkick = hkick
	e.Vkick = vkick
	return e
}

// HCorrector builds a horizontal-only corrector.
func HCorrector(famName string, length, hkick float64) Element {
	return Corrector(famName, length, hkick, 0)
}

// VCorrector builds a vertical-only corrector.
func VCorrector(famName string, length, vkick float64) Element {
	return Corrector(famName, length, 0, vkick)
}

// Quadrupole builds a straight multipole element whose only nonzero term is
// the normal quadrupole strength K (1/m^2, integrated over the slice as
// polynom_b[1]).
func Quadrupole(famName string, length, k float64, nrSteps int) Element {
	e := NewElement(famName, length)
	e.PassMethod = PassStrMPoleSymplectic4
	e.PolynomB[1] = k
	e.NrSteps = nrSteps
	return e
}

// Sextupole builds a straight multipole element with normal sextupole
// strength S (1/m^3, polynom_b[2]).
func Sextupole(famName string, length, s float64, nrSteps int) Element {
	e := NewElement(famName, length)
	e.PassMethod = PassStrMPoleSymplectic4
	e.PolynomB[2] = s
	e.NrSteps = nrSteps
	return e
}

// ThinQuadrupole builds a zero-length thin-kick quadrupole driven by the
// integrated strength KL.
func ThinQuadrupole(famName string, kl float64) Element {
	e := NewElement(famName, 0)
	e.PassMethod = PassThinQuad
	e.ThinKL = kl
	return e
}

// ThinSextupole builds a zero-length thin-kick sextupole driven by the
// integrated strength SL.
func ThinSextupole(famName string, sl float64) Element {
	e := NewElement(famName, 0)
	e.PassMethod = PassThinSext
	e.ThinSL = sl
	return e
}

// RBend builds a bending-multipole element. polynomA/polynomB are copied and
// resized to at least length 3; K and S overwrite polynom_b[1] and
// polynom_b[2] the way trackcpp's initialize_rbend does, so callers can pass
// either an explicit polynomial or the convenience K/S arguments.
func RBend(famName string, length, angle, angleIn, angleOut, gap, fintIn, fintOut float64, polynomA, polynomB []float64, k, s float64, nrSteps int) Element {
	e := NewElement(famName, length)
	e.PassMethod = PassBndMPoleSymplectic4
	e.Angle = angle
	e.AngleIn = angleIn
	e.AngleOut = angleOut
	e.Gap = gap
	e.FintIn = fintIn
	e.FintOut = fintOut
	e.PolynomA = padPolynom(polynomA, 3)
	e.PolynomB = padPolynom(polynomB, 3)
	e.PolynomB[1] = k
	e.PolynomB[2] = s
	e.NrSteps = nrSteps
	return e
}

// RFCavity builds an RF cavity element.
func RFCavity(famName string, length, frequency, voltage float64) Element {
	e := NewElement(famName, length)
	e.PassMethod = PassCavity
	e.Frequency = frequency
	e.Voltage = voltage
	return e
}

// KicktableElement builds an insertion-device element whose length is taken
// from the referenced kicktable.
func KicktableElement(famName string, kt *Kicktable) Element {
	e := NewElement(famName, 0)
	e.PassMethod = PassKicktable
	e.Kicktable = kt
	if kt != nil {
		e.Length = kt.Length
	}
	return e
}

func padPolynom(p []float64, minLen int) []float64 {
	out := make([]float64, len(p))
	copy(out, p)
	if len(out) < minLen {
		grown := make([]float64, minLen)
		copy(grown, out)
		out = grown
	}
	return out
}

// Equal implements the physical-equivalence shortcut trackcpp's
// Element::operator== uses: two drift-or-identity elements compare equal
// when their length and aperture match, regardless of every other field
// (misalignment on a field-free drift has no observable effect on tracking).
func (e Element) Equal(o Element) bool {
	if e.FamName != o.FamName {
		return false
	}
	if e.PassMethod != o.PassMethod {
		return false
	}
	if e.Length != o.Length {
		return false
	}
	if e.Hmin != o.Hmin || e.Hmax != o.Hmax || e.Vmin != o.Vmin || e.Vmax != o.Vmax {
		return false
	}
	if e.NrSteps != o.NrSteps {
		return false
	}

	if e.PassMethod == PassDrift || e.PassMethod == PassIdentity {
		return true
	}

	if e.Hkick != o.Hkick || e.Vkick != o.Vkick {
		return false
	}
	if e.Angle != o.Angle || e.AngleIn != o.AngleIn || e.AngleOut != o.AngleOut {
		return false
	}
	if e.Gap != o.Gap || e.FintIn != o.FintIn || e.FintOut != o.FintOut {
		return false
	}
	if e.ThinKL != o.ThinKL || e.ThinSL != o.ThinSL {
		return false
	}
	if e.Frequency != o.Frequency || e.Voltage != o.Voltage {
		return false
	}
	if !equalPolynom(e.PolynomA, o.PolynomA) || !equalPolynom(e.PolynomB, o.PolynomB) {
		return false
	}
	if e.TIn != o.TIn || e.TOut != o.TOut {
		return false
	}
	if e.RIn != o.RIn || e.ROut != o.ROut {
		return false
	}
	if (e.Kicktable == nil) != (o.Kicktable == nil) {
		return false
	}
	if e.Kicktable != nil && o.Kicktable != nil && !e.Kicktable.Equal(o.Kicktable) {
		return false
	}
	return true
}

func equalPolynom(a, b []float64) bool {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		var av, bv float64
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if av != bv {
			return false
		}
	}
	return true
}

// String renders the element the way trackcpp's operator<< does: only
// fields that differ from the implicit zero/identity default are printed.
func (e Element) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "fam_name      : %s", e.FamName)
	if e.Length != 0 {
		fmt.Fprintf(&b, "\nlength        : %g", e.Length)
	}
	fmt.Fprintf(&b, "\npass_method   : %s", e.PassMethod)
	if e.NrSteps > 1 {
		fmt.Fprintf(&b, "\nnr_steps      : %d", e.NrSteps)
	}
	if e.ThinKL != 0 {
		fmt.Fprintf(&b, "\nthin_KL       : %g", e.ThinKL)
	}
	if e.ThinSL != 0 {
		fmt.Fprintf(&b, "\nthin_SL       : %g", e.ThinSL)
	}
	if e.Angle != 0 {
		fmt.Fprintf(&b, "\nbending_angle : %g\nentrance_angle: %g\nexit_angle    : %g", e.Angle, e.AngleIn, e.AngleOut)
	}
	if order := polynomOrder(e.PolynomA); order > 0 {
		fmt.Fprintf(&b, "\npolynom_a     : %v", e.PolynomA[:order])
	}
	if order := polynomOrder(e.PolynomB); order > 0 {
		fmt.Fprintf(&b, "\npolynom_b     : %v", e.PolynomB[:order])
	}
	if e.Frequency != 0 {
		fmt.Fprintf(&b, "\nfrequency     : %g", e.Frequency)
	}
	if e.Voltage != 0 {
		fmt.Fprintf(&b, "\nvoltage       : %g", e.Voltage)
	}
	return b.String()
}

func polynomOrder(p []float64) int {
	order := 0
	for i, v := range p {
		if v != 0 {
			order = i + 1
		}
	}
	return order
}
