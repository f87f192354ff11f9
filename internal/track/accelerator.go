package track

// Accelerator is the ordered lattice plus the global switches and beam
// parameters every pass method may read. It is a value object: copying an
// Accelerator copies the lattice slice header (elements themselves are
// value types) but shares the Kicktables registry's underlying map, which
// is safe because kicktables are never mutated after loading.
type Accelerator struct {
	Lattice []Element

	Energy         float64 // [eV]
	HarmonicNumber int

	CavityOn    bool
	RadiationOn bool
	VchamberOn  bool

	// Kicktables maps the file path an element's kicktable was loaded from
	// to the shared, immutable table. Multiple paths may point at the same
	// *Kicktable when their contents hash identically (see AddKicktable).
	Kicktables map[string]*Kicktable
}

// New returns an Accelerator with vacuum-chamber checking enabled and no RF
// or radiation, the common starting point for a bare lattice.
func New() *Accelerator {
	return &Accelerator{
		Lattice:    nil,
		VchamberOn: true,
		Kicktables: make(map[string]*Kicktable),
	}
}

// AddKicktable registers a kicktable under filename, deduplicating by
// content: if a previously registered table (under any filename) has
// identical grid contents, that shared instance is reused and returned
// instead of kt.
func (a *Accelerator) AddKicktable(filename string, kt *Kicktable) *Kicktable {
	if a.Kicktables == nil {
		a.Kicktables = make(map[string]*Kicktable)
	}
	hash := kt.ContentHash()
	for _, existing := range a.Kicktables {
		if existing.ContentHash() == hash {
			a.Kicktables[filename] = existing
			return existing
		}
	}
	a.Kicktables[filename] = kt
	return kt
}

// Len returns the number of elements in the lattice.
func (a *Accelerator) Len() int { return len(a.Lattice) }
