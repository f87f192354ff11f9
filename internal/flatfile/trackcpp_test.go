package flatfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lnls-sirius/trackgo/internal/track"
)

func TestWriteReadRoundTrip(t *testing.T) {
	acc := track.New()
	acc.Energy = 3e9
	acc.HarmonicNumber = 864
	acc.CavityOn = true
	acc.RadiationOn = false
	acc.VchamberOn = true
	acc.Lattice = []track.Element{
		track.Drift("d1", 1.5),
		track.Quadrupole("qf1", 0.2, 1.234, 10),
		track.ThinQuadrupole("qf2", 0.876),
		track.ThinSextupole("sd1", -12.3),
		track.RFCavity("cav", 0, 500e6, 1e6),
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "lattice.txt")

	if status := WriteTrackcpp(path, acc); status != track.StatusSuccess {
		t.Fatalf("write failed: %v", status)
	}

	got, status := ReadTrackcpp(path)
	if status != track.StatusSuccess {
		t.Fatalf("read failed: %v", status)
	}

	if got.Energy != acc.Energy || got.HarmonicNumber != acc.HarmonicNumber {
		t.Errorf("header mismatch: got %+v", got)
	}
	if len(got.Lattice) != len(acc.Lattice) {
		t.Fatalf("lattice length = %d, want %d", len(got.Lattice), len(acc.Lattice))
	}
	for i := range acc.Lattice {
		if !got.Lattice[i].Equal(acc.Lattice[i]) {
			t.Errorf("element %d mismatch:\n got  %+v\n want %+v", i, got.Lattice[i], acc.Lattice[i])
		}
	}
}

func TestReadMissingFile(t *testing.T) {
	_, status := ReadTrackcpp("/nonexistent/path/lattice.txt")
	if status != track.StatusFileNotFound {
		t.Errorf("status = %v, want file_not_found", status)
	}
}

// TestHmaxResetsFoundHminEveryLine exercises the resolved ambiguity: a hmin
// line for one element that is never followed by a matching hmax leaves a
// stale hmax on the next element, because found_hmin resets unconditionally
// on every hmax line rather than only at element boundaries.
func TestHmaxResetsFoundHminEveryLine(t *testing.T) {
	content := `% energy 3.0e9 eV
% harmonic_number 864
% cavity_on false
% radiation_on false
% vchamber_on true

fam_name d1
length 1.0
pass_method drift_pass
hmin -0.02

fam_name d2
length 1.0
pass_method drift_pass
hmax 0.01
`
	dir := t.TempDir()
	path := filepath.Join(dir, "lattice.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	acc, status := ReadTrackcpp(path)
	if status != track.StatusSuccess {
		t.Fatalf("read failed: %v", status)
	}
	if len(acc.Lattice) != 2 {
		t.Fatalf("lattice length = %d, want 2", len(acc.Lattice))
	}
	// d2's own hmax line had no preceding hmin for d2, so hmin = -hmax.
	if acc.Lattice[1].Hmin != -0.01 {
		t.Errorf("d2.hmin = %g, want -0.01 (found_hmin must not leak across elements)", acc.Lattice[1].Hmin)
	}
}
