package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lnls-sirius/trackgo/internal/track"
)

func sampleTrajectory() []track.Pos {
	return []track.Pos{
		{Rx: 1e-3, Px: 0, Ry: 0, Py: 0, De: 0, Dl: 0},
		{Rx: 0.9e-3, Px: -1e-4, Ry: 0, Py: 0, De: 0, Dl: 1e-6},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("fodo", "track", 1, 0, track.StatusSuccess, track.PlaneNone, sampleTrajectory())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Lattice != "fodo" {
		t.Errorf("lattice = %q, want fodo", meta.Lattice)
	}
	if meta.Status != "success" {
		t.Errorf("status = %q, want success", meta.Status)
	}

	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	if len(traj) != 2 {
		t.Fatalf("len(traj) = %d, want 2", len(traj))
	}
	if traj[0].Rx != 1e-3 {
		t.Errorf("traj[0].Rx = %g, want 1e-3", traj[0].Rx)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save("fodo", "orbit", 0, 0, track.StatusSuccess, track.PlaneNone, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreRecordsLostPlane(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	st.Init()

	runID, err := st.Save("fodo", "track", 1, 0, track.StatusParticleLost, track.PlaneX, sampleTrajectory())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.LostPlane != "horizontal" {
		t.Errorf("lost_plane = %q, want horizontal", meta.LostPlane)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	st.Init()

	runID, err := st.Save("fodo", "track", 1, 0, track.StatusSuccess, track.PlaneNone, sampleTrajectory())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "trajectory.csv")); os.IsNotExist(err) {
		t.Error("trajectory.csv not created")
	}
}
