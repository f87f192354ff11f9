package orbit_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lnls-sirius/trackgo/internal/orbit"
	"github.com/lnls-sirius/trackgo/internal/track"
)

var _ = Describe("FindOrbit4", func() {
	var acc *track.Accelerator

	BeforeEach(func() {
		acc = track.New()
		acc.Lattice = []track.Element{
			track.Drift("d1", 1.0),
			track.Quadrupole("qf", 0.2, 1.5, 10),
			track.Drift("d2", 1.0),
			track.Quadrupole("qd", 0.2, -1.5, 10),
		}
	})

	It("converges to the zero orbit for a lattice with no kicks or bends", func() {
		result, status := orbit.FindOrbit4(acc, track.Pos{})
		Expect(status).To(Equal(track.StatusSuccess))
		Expect(result.Rx).To(BeNumerically("~", 0, 1e-9))
		Expect(result.Px).To(BeNumerically("~", 0, 1e-9))
		Expect(result.Ry).To(BeNumerically("~", 0, 1e-9))
		Expect(result.Py).To(BeNumerically("~", 0, 1e-9))
	})

	It("converges to a nonzero orbit when a corrector displaces the beam", func() {
		acc.Lattice = append([]track.Element{track.HCorrector("ch1", 0, 1e-4)}, acc.Lattice...)
		result, status := orbit.FindOrbit4(acc, track.Pos{})
		Expect(status).To(Equal(track.StatusSuccess))
		Expect(result.Rx).NotTo(BeNumerically("~", 0, 1e-12))

		traj, status := orbit.ClosedOrbitTrajectory(acc, result)
		Expect(status).To(Equal(track.StatusSuccess))
		Expect(traj).To(HaveLen(acc.Len() + 1))
	})
})

var _ = Describe("FindM66", func() {
	It("returns a one-turn matrix whose diagonal dominates for a weak-focusing cell", func() {
		acc := track.New()
		acc.Lattice = []track.Element{
			track.Drift("d1", 1.0),
			track.Quadrupole("qf", 0.2, 0.8, 10),
			track.Drift("d2", 1.0),
			track.Quadrupole("qd", 0.2, -0.8, 10),
		}

		result, status := orbit.FindM66(acc, track.Pos{})
		Expect(status).To(Equal(track.StatusSuccess))
		Expect(result.ElementMatrix).To(HaveLen(acc.Len()))
		Expect(result.M66[5][5]).To(BeNumerically("~", 1, 1e-6))
	})
})
