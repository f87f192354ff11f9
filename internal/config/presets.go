package config

import "github.com/lnls-sirius/trackgo/internal/track"

// LatticePresets holds small canned lattices keyed by name, useful for demos
// and tests that need a runnable Accelerator without a flat file on disk.
var LatticePresets = map[string]func() *track.Accelerator{
	"fodo": fodoCell,
	"bend_achromat": bendAchromat,
}

func fodoCell() *track.Accelerator {
	acc := track.New()
	acc.Energy = 3e9
	acc.Lattice = []track.Element{
		track.Quadrupole("qf", 0.2, 1.2, 10),
		track.Drift("d1", 1.0),
		track.Quadrupole("qd", 0.2, -1.2, 10),
		track.Drift("d2", 1.0),
	}
	return acc
}

func bendAchromat() *track.Accelerator {
	acc := track.New()
	acc.Energy = 3e9
	acc.Lattice = []track.Element{
		track.Quadrupole("qf1", 0.2, 1.4, 10),
		track.Drift("d1", 0.5),
		track.RBend("b1", 1.2, 0.1308997, 0.0654499, 0.0654499, 0.03, 0.5, 0.5, nil, nil, 0, 0, 20),
		track.Drift("d2", 0.5),
		track.Quadrupole("qd1", 0.2, -1.4, 10),
		track.Drift("d3", 0.5),
		track.RBend("b2", 1.2, 0.1308997, 0.0654499, 0.0654499, 0.03, 0.5, 0.5, nil, nil, 0, 0, 20),
		track.Drift("d4", 0.5),
		track.Quadrupole("qf2", 0.2, 1.4, 10),
	}
	return acc
}

// GetLatticePreset returns a fresh Accelerator for the named preset, or nil
// if no such preset exists.
func GetLatticePreset(name string) *track.Accelerator {
	build, ok := LatticePresets[name]
	if !ok {
		return nil
	}
	return build()
}

// ListLatticePresets returns the names of every registered lattice preset.
func ListLatticePresets() []string {
	names := make([]string, 0, len(LatticePresets))
	for name := range LatticePresets {
		names = append(names, name)
	}
	return names
}
