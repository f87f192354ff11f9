// Package store persists tracking-run results (metadata plus the recorded
// trajectory) to a directory tree, one subdirectory per run, and reloads
// them for later inspection or plotting.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/lnls-sirius/trackgo/internal/track"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata records the run's configuration and outcome; the trajectory
// itself lives alongside in trajectory.csv.
type RunMetadata struct {
	ID        string    `json:"id"`
	Lattice   string    `json:"lattice"`
	Mode      string    `json:"mode"` // "track", "orbit", or "m66"
	Timestamp time.Time `json:"timestamp"`
	Turns     int       `json:"turns"`
	Offset    int       `json:"offset"`
	Status    string    `json:"status"`
	LostPlane string    `json:"lost_plane,omitempty"`
}

// Save writes metadata.json and trajectory.csv for one run under a fresh
// run directory named from lattice and the current time, and returns the
// run ID.
func (s *Store) Save(lattice, mode string, turns, offset int, status track.Status, lostPlane track.Plane, traj []track.Pos) (string, error) {
	runID := fmt.Sprintf("%s_%d", sanitize(lattice), time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Lattice:   lattice,
		Mode:      mode,
		Timestamp: time.Now(),
		Turns:     turns,
		Offset:    offset,
		Status:    status.String(),
	}
	if lostPlane != track.PlaneNone {
		meta.LostPlane = lostPlane.String()
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := writeTrajectoryCSV(filepath.Join(runDir, "trajectory.csv"), traj); err != nil {
		return "", err
	}

	return runID, nil
}

func writeTrajectoryCSV(path string, traj []track.Pos) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"index", "rx", "px", "ry", "py", "de", "dl"}); err != nil {
		return err
	}
	for i, p := range traj {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(p.Rx, 'E', 16, 64),
			strconv.FormatFloat(p.Px, 'E', 16, 64),
			strconv.FormatFloat(p.Ry, 'E', 16, 64),
			strconv.FormatFloat(p.Py, 'E', 16, 64),
			strconv.FormatFloat(p.De, 'E', 16, 64),
			strconv.FormatFloat(p.Dl, 'E', 16, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrajectory reloads the recorded phase-space trajectory for runID.
func (s *Store) LoadTrajectory(runID string) ([]track.Pos, error) {
	csvPath := filepath.Join(s.baseDir, runID, "trajectory.csv")
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []track.Pos{}, nil
	}

	traj := make([]track.Pos, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 7 {
			continue
		}
		rx, _ := strconv.ParseFloat(rec[1], 64)
		px, _ := strconv.ParseFloat(rec[2], 64)
		ry, _ := strconv.ParseFloat(rec[3], 64)
		py, _ := strconv.ParseFloat(rec[4], 64)
		de, _ := strconv.ParseFloat(rec[5], 64)
		dl, _ := strconv.ParseFloat(rec[6], 64)
		traj = append(traj, track.Pos{Rx: rx, Px: px, Ry: ry, Py: py, De: de, Dl: dl})
	}
	return traj, nil
}

func sanitize(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if r == '/' || r == '\\' || r == ' ' {
			out = append(out, '_')
			continue
		}
		out = append(out, r)
	}
	if len(out) == 0 {
		return "run"
	}
	return string(out)
}
