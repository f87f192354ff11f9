package store

import (
	"encoding/json"
	"os"

	"github.com/lnls-sirius/trackgo/internal/track"
)

// ExportData is the flat JSON document written for a track/orbit/m66 run:
// configuration, outcome, and the recorded trajectory.
type ExportData struct {
	Lattice    string      `json:"lattice"`
	Mode       string      `json:"mode"`
	Turns      int         `json:"turns"`
	Offset     int         `json:"offset"`
	Status     string      `json:"status"`
	LostPlane  string      `json:"lost_plane,omitempty"`
	Trajectory []track.Pos `json:"trajectory"`
}

func newExportData(lattice, mode string, turns, offset int, status, lostPlane string, traj []track.Pos) ExportData {
	return ExportData{
		Lattice:    lattice,
		Mode:       mode,
		Turns:      turns,
		Offset:     offset,
		Status:     status,
		LostPlane:  lostPlane,
		Trajectory: traj,
	}
}

// ExportJSON writes a run's configuration and trajectory to path as JSON.
func ExportJSON(path, lattice, mode string, turns, offset int, status, lostPlane string, traj []track.Pos) error {
	data := newExportData(lattice, mode, turns, offset, status, lostPlane, traj)

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportJSONStdout writes the same document to standard output.
func ExportJSONStdout(lattice, mode string, turns, offset int, status, lostPlane string, traj []track.Pos) error {
	data := newExportData(lattice, mode, turns, offset, status, lostPlane, traj)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
