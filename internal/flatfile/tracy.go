package flatfile

import (
	"math"
	"os"

	"github.com/lnls-sirius/trackgo/internal/track"
)

const lightSpeed = 299792458.0

// tracy element-type codes, matching FlatFileType's declaration order in
// the original (un-retrieved) header.
const (
	tracyMarker = iota
	tracyDrift
	tracyCorrector
	tracyCavity
	tracyMpole
	tracyKicktable
)

// ReadTracy parses the legacy fixed-column tracy dialect. Corrector hkick is
// sign-flipped on read, an "AT idiosyncrasy" preserved unchanged from the
// original reader rather than silently corrected. Combined-function mpole
// entries synthesize r_in/r_out rotation blocks from the roll angle and
// t_in from the negated t_out offsets; cavity entries convert voltage and
// frequency into the native units used elsewhere in this package.
func ReadTracy(path string) (*track.Accelerator, track.Status) {
	f, err := os.Open(path)
	if err != nil {
		return nil, track.StatusFileNotFound
	}
	defer f.Close()

	dir := dirOf(path)
	acc := track.New()
	s := newTokenStream(f)

	for {
		famName, ok := s.nextToken()
		if !ok {
			break
		}
		if famName == "prtmfile:" {
			return nil, track.StatusFlatFileError
		}

		s.int() // Fnum
		s.int() // Knum
		s.int() // idx
		elType := s.int()
		s.int() // method
		nrSteps := s.int()
		if nrSteps < 1 {
			nrSteps = 1
		}
		hmin, hmax := s.float(), s.float()
		vmin, vmax := s.float(), s.float()

		e := track.NewElement(famName, 0)
		e.NrSteps = nrSteps
		e.Hmin, e.Hmax = hmin, hmax
		e.Vmin, e.Vmax = vmin, vmax

		if famName == "begin" {
			s.float() // length
			continue
		}

		switch elType {
		case tracyMarker:
			e.PassMethod = track.PassIdentity

		case tracyDrift:
			e.PassMethod = track.PassDrift
			e.Length = s.float()

		case tracyCorrector:
			e.PassMethod = track.PassCorrector
			s.float()
			s.float()
			s.float()
			s.int()
			s.int()
			s.int()
			e.Hkick = s.float()
			e.Vkick = s.float()
			e.Hkick = -e.Hkick // AT idiosyncrasies: sign convention differs from the native dialect.

		case tracyCavity:
			e.PassMethod = track.PassCavity
			e.Voltage = s.float()
			e.Frequency = s.float()
			harmonicNumber := s.int()
			energy := s.float()
			e.Voltage *= energy
			e.Frequency *= lightSpeed / (2 * math.Pi)
			acc.HarmonicNumber = harmonicNumber
			acc.Energy = energy

		case tracyMpole:
			var pdtPar, pdtErr float64
			e.TOut[0] = s.float()
			e.TOut[2] = s.float()
			pdtPar = s.float()
			pdtErr = s.float()
			e.Length = s.float()
			e.Angle = s.float()
			e.AngleIn = s.float()
			e.AngleOut = s.float()
			e.Gap = s.float()
			e.Angle *= e.Length
			e.AngleIn *= math.Pi / 180.0
			e.AngleOut *= math.Pi / 180.0
			if e.Angle != 0 {
				e.PassMethod = track.PassBndMPoleSymplectic4
			} else {
				e.PassMethod = track.PassStrMPoleSymplectic4
			}
			readTracyPolynomials(s, &e)
			e.TIn[0] = -e.TOut[0]
			e.TIn[2] = -e.TOut[2]

			ang := math.Pi * (pdtPar + pdtErr) / 180.0
			c, sn := math.Cos(ang), math.Sin(ang)
			e.RIn[0][0], e.RIn[0][2] = c, sn
			e.RIn[2][0], e.RIn[2][2] = -sn, c
			e.RIn[1][1], e.RIn[1][3] = c, sn
			e.RIn[3][1], e.RIn[3][3] = -sn, c
			e.ROut[0][0], e.ROut[0][2] = c, -sn
			e.ROut[2][0], e.ROut[2][2] = sn, c
			e.ROut[1][1], e.ROut[1][3] = c, -sn
			e.ROut[3][1], e.ROut[3][3] = sn, c

		case tracyKicktable:
			e.PassMethod = track.PassKicktable
			s.float()
			s.float()
			ktPath, _ := s.nextToken()
			kt, status := LoadKicktable(joinDir(dir, ktPath))
			if status != track.StatusSuccess {
				return nil, status
			}
			e.Kicktable = acc.AddKicktable(ktPath, kt)
			e.Length = e.Kicktable.Length

		default:
			// unrecognized element type: keep the header fields already
			// parsed and fall through with an identity map.
			e.PassMethod = track.PassIdentity
		}

		acc.Lattice = append(acc.Lattice, e)
	}

	if s.err != nil {
		return nil, track.StatusFlatFileError
	}
	return acc, track.StatusSuccess
}

func readTracyPolynomials(s *tokenStream, e *track.Element) {
	e.PolynomA = []float64{0, 0, 0}
	e.PolynomB = []float64{0, 0, 0}
	nrMonomials := s.int()
	s.int() // n_design
	for i := 0; i < nrMonomials; i++ {
		order := s.int()
		if order > len(e.PolynomB) {
			grownA := make([]float64, order)
			grownB := make([]float64, order)
			copy(grownA, e.PolynomA)
			copy(grownB, e.PolynomB)
			e.PolynomA, e.PolynomB = grownA, grownB
		}
		e.PolynomB[order-1] = s.float()
		e.PolynomA[order-1] = s.float()
	}
}
