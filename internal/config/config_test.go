package config

import (
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Dialect != "trackcpp" {
		t.Errorf("default dialect = %q, want trackcpp", cfg.Dialect)
	}
	if cfg.Newton.Tolerance != DefaultTolerance {
		t.Errorf("default tolerance = %g, want %g", cfg.Newton.Tolerance, DefaultTolerance)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Lattice = "ring.txt"
	cfg.Mode = "orbit"
	cfg.RF = true
	cfg.InitPos = PosConfig{Rx: 1e-3, Py: 2e-4}

	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Lattice != cfg.Lattice || got.Mode != cfg.Mode || got.RF != cfg.RF {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, cfg)
	}
	if got.InitPos != cfg.InitPos {
		t.Errorf("init_pos mismatch: got %+v, want %+v", got.InitPos, cfg.InitPos)
	}
}

func TestPosConfigArray(t *testing.T) {
	p := PosConfig{Rx: 1, Px: 2, Ry: 3, Py: 4, De: 5, Dl: 6}
	want := [6]float64{1, 2, 3, 4, 5, 6}
	if got := p.Array(); got != want {
		t.Errorf("Array() = %v, want %v", got, want)
	}
}
