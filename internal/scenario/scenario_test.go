package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lnls-sirius/trackgo/internal/track"
)

func TestRunOrbitSweep(t *testing.T) {
	sc := &Scenario{
		Name:     "corrector sweep",
		Preset:   "fodo",
		Mode:     "orbit",
		Element:  "qf",
		Param:    "k",
		Min:      1.0,
		Max:      1.4,
		NumSteps: 5,
		Workers:  2,
	}

	points, err := Run(sc)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(points) != 5 {
		t.Fatalf("len(points) = %d, want 5", len(points))
	}
	for i, p := range points {
		if p.Err != nil {
			t.Fatalf("point %d: %v", i, p.Err)
		}
		if p.Status != track.StatusSuccess {
			t.Errorf("point %d: status = %v, want success", i, p.Status)
		}
		want := sc.Min + float64(i)*(sc.Max-sc.Min)/4
		if p.ParamValue != want {
			t.Errorf("point %d: param = %g, want %g", i, p.ParamValue, want)
		}
	}
}

func TestRunDoesNotMutateBasePreset(t *testing.T) {
	sc := &Scenario{
		Preset:   "fodo",
		Mode:     "orbit",
		Element:  "qf",
		Param:    "k",
		Min:      5.0,
		Max:      5.0,
		NumSteps: 1,
	}
	if _, err := Run(sc); err != nil {
		t.Fatalf("Run: %v", err)
	}

	fresh := sc.mustBase(t)
	if fresh.Lattice[0].PolynomB[1] != 1.2 {
		t.Errorf("preset qf K = %g, want unchanged 1.2", fresh.Lattice[0].PolynomB[1])
	}
}

func (sc *Scenario) mustBase(t *testing.T) *track.Accelerator {
	t.Helper()
	acc, err := sc.baseAccelerator()
	if err != nil {
		t.Fatalf("baseAccelerator: %v", err)
	}
	return acc
}

func TestRunUnknownElement(t *testing.T) {
	sc := &Scenario{Preset: "fodo", Element: "nope", Param: "k", NumSteps: 1}
	if _, err := Run(sc); err == nil {
		t.Error("expected error for unknown element")
	}
}

func TestLoadScenarioYAML(t *testing.T) {
	content := `
name: test scan
preset: fodo
mode: orbit
element: qf
param: k
min: 1.0
max: 1.4
num_steps: 3
`
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	sc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sc.Name != "test scan" || sc.Element != "qf" || sc.NumSteps != 3 {
		t.Errorf("loaded scenario mismatch: %+v", sc)
	}
}
