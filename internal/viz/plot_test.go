package viz

import (
	"strings"
	"testing"

	"github.com/lnls-sirius/trackgo/internal/track"
)

func TestPlotTrajectoryNonEmpty(t *testing.T) {
	traj := []track.Pos{
		{Rx: 1e-3, Ry: 0, De: 0},
		{Rx: -1e-3, Ry: 1e-4, De: 1e-5},
	}
	out := PlotTrajectory(traj)
	if !strings.Contains(out, "Rx [m]") {
		t.Error("expected Rx caption in output")
	}
}

func TestPlotTrajectoryEmpty(t *testing.T) {
	if got := PlotTrajectory(nil); got != "(empty trajectory)" {
		t.Errorf("got %q", got)
	}
}

func TestPlotConvergenceClampsZero(t *testing.T) {
	out := PlotConvergence([]float64{1e-3, 0, 1e-9})
	if out == "" {
		t.Error("expected non-empty plot")
	}
}

func TestPhaseSpaceCanvasDrawsWithinBounds(t *testing.T) {
	traj := []track.Pos{
		{Rx: -1e-3, Ry: -1e-3},
		{Rx: 1e-3, Ry: 1e-3},
		{Rx: 0, Ry: 0},
	}
	out := PhaseSpaceCanvas(traj, 20, 10)
	if len([]rune(out)) == 0 {
		t.Error("expected non-empty canvas render")
	}
}
