package viz

import (
	"math"

	"github.com/lnls-sirius/trackgo/internal/track"
)

// LatticeWireframe walks acc's lattice accumulating the physical survey
// coordinate (straight sections advance along the local forward axis, bends
// curve by their Angle over their Length) and returns one edge per element,
// renderable with [Render3D] for a bird's-eye layout of the ring.
func LatticeWireframe(acc *track.Accelerator) *Wireframe {
	w := NewWireframe()
	pos := Vec3{0, 0, 0}
	heading := 0.0 // radians, in the horizontal (x,z) plane

	for _, e := range acc.Lattice {
		start := pos
		if e.Angle == 0 || e.Length == 0 {
			dz, dx := math.Cos(heading)*e.Length, math.Sin(heading)*e.Length
			pos = Vec3{pos.X + dx, 0, pos.Z + dz}
		} else {
			rho := e.Length / e.Angle
			midHeading := heading + e.Angle/2
			chord := 2 * rho * math.Sin(e.Angle/2)
			dz, dx := math.Cos(midHeading)*chord, math.Sin(midHeading)*chord
			pos = Vec3{pos.X + dx, 0, pos.Z + dz}
			heading += e.Angle
		}
		w.AddEdge(start, pos, elementGlyph(e))
	}
	return w
}

func elementGlyph(e track.Element) rune {
	switch e.PassMethod {
	case track.PassDrift, track.PassIdentity:
		return '.'
	case track.PassCorrector:
		return 'C'
	case track.PassCavity:
		return 'V'
	case track.PassBndMPoleSymplectic4:
		return 'B'
	case track.PassStrMPoleSymplectic4:
		if len(e.PolynomB) > 2 && e.PolynomB[2] != 0 {
			return 'S'
		}
		return 'Q'
	default:
		return '?'
	}
}
