package scenario

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/lnls-sirius/trackgo/internal/config"
	"github.com/lnls-sirius/trackgo/internal/flatfile"
	"github.com/lnls-sirius/trackgo/internal/orbit"
	"github.com/lnls-sirius/trackgo/internal/track"
	"github.com/lnls-sirius/trackgo/internal/tracker"
	"gopkg.in/yaml.v3"
)

// Scenario describes a parameter scan: a base lattice, the element field to
// sweep, the value range, and which solver to repeat at each value.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	Lattice string `yaml:"lattice"` // flat-file path; empty if Preset is set
	Dialect string `yaml:"dialect"` // "trackcpp" (default) or "tracy"
	Preset  string `yaml:"preset"`  // config.LatticePresets name, alternative to Lattice

	Mode string `yaml:"mode"` // "orbit", "m66", or "track"

	Element string `yaml:"element"` // fam_name of the element to perturb
	Param   string `yaml:"param"`   // hkick, vkick, length, thin_kl, thin_sl, k, s, polynom_b<N>, polynom_a<N>

	Min      float64 `yaml:"min"`
	Max      float64 `yaml:"max"`
	NumSteps int     `yaml:"num_steps"`

	InitPos config.PosConfig `yaml:"init_pos"`
	Turns   int              `yaml:"turns"`
	Offset  int              `yaml:"offset"`
	RF      bool             `yaml:"rf"`

	Workers int `yaml:"workers"` // bounded concurrency, default 4
}

// Point is the outcome of a single scan value.
type Point struct {
	Index      int
	ParamValue float64
	Orbit      track.Pos
	M66        *orbit.Matrix6
	FinalPos   track.Pos
	Status     track.Status
	Err        error
}

// Load reads a Scenario from a YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := &Scenario{Dialect: "trackcpp", Mode: "orbit", NumSteps: 1, Workers: 4}
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// baseAccelerator builds the unswept lattice the scan starts from.
func (sc *Scenario) baseAccelerator() (*track.Accelerator, error) {
	if sc.Preset != "" {
		acc := config.GetLatticePreset(sc.Preset)
		if acc == nil {
			return nil, fmt.Errorf("unknown lattice preset: %s", sc.Preset)
		}
		return acc, nil
	}
	if sc.Lattice == "" {
		return nil, fmt.Errorf("scenario %q: neither lattice nor preset set", sc.Name)
	}
	var acc *track.Accelerator
	var status track.Status
	if sc.Dialect == "tracy" {
		acc, status = flatfile.ReadTracy(sc.Lattice)
	} else {
		acc, status = flatfile.ReadTrackcpp(sc.Lattice)
	}
	if status != track.StatusSuccess {
		return nil, fmt.Errorf("loading lattice %q: %w", sc.Lattice, status)
	}
	return acc, nil
}

// cloneAccelerator copies the lattice slice so one goroutine's parameter
// perturbation can never be observed by another; elements are value types,
// so a shallow slice copy already isolates every scalar field. The one
// element this scan perturbs gets its polynomial slices deep-copied too,
// since those remain shared backing arrays after the shallow copy.
func cloneAccelerator(acc *track.Accelerator, sweptIdx int) *track.Accelerator {
	clone := *acc
	clone.Lattice = make([]track.Element, len(acc.Lattice))
	copy(clone.Lattice, acc.Lattice)
	if sweptIdx >= 0 {
		e := &clone.Lattice[sweptIdx]
		e.PolynomA = append([]float64(nil), e.PolynomA...)
		e.PolynomB = append([]float64(nil), e.PolynomB...)
	}
	return &clone
}

// setParam applies value to the named field of e, growing PolynomA/PolynomB
// as needed for an indexed polynom_a<N>/polynom_b<N> target.
func setParam(e *track.Element, name string, value float64) error {
	switch {
	case name == "hkick":
		e.Hkick = value
	case name == "vkick":
		e.Vkick = value
	case name == "length":
		e.Length = value
	case name == "thin_kl":
		e.ThinKL = value
	case name == "thin_sl":
		e.ThinSL = value
	case name == "angle":
		e.Angle = value
	case name == "k":
		growPolynom(&e.PolynomB, 2)
		e.PolynomB[1] = value
	case name == "s":
		growPolynom(&e.PolynomB, 3)
		e.PolynomB[2] = value
	case strings.HasPrefix(name, "polynom_b"):
		idx, err := strconv.Atoi(strings.TrimPrefix(name, "polynom_b"))
		if err != nil {
			return fmt.Errorf("bad polynom_b index in param %q: %w", name, err)
		}
		growPolynom(&e.PolynomB, idx+1)
		e.PolynomB[idx] = value
	case strings.HasPrefix(name, "polynom_a"):
		idx, err := strconv.Atoi(strings.TrimPrefix(name, "polynom_a"))
		if err != nil {
			return fmt.Errorf("bad polynom_a index in param %q: %w", name, err)
		}
		growPolynom(&e.PolynomA, idx+1)
		e.PolynomA[idx] = value
	default:
		return fmt.Errorf("unknown scan param: %s", name)
	}
	return nil
}

func growPolynom(p *[]float64, n int) {
	if len(*p) >= n {
		return
	}
	grown := make([]float64, n)
	copy(grown, *p)
	*p = grown
}

// Run executes the scan, returning one Point per step in ParamValue order.
// Points run concurrently across a bounded worker pool (default 4, overridden
// by Scenario.Workers); each worker operates on its own cloned Accelerator
// and Pos, never touching another worker's state.
func Run(sc *Scenario) ([]Point, error) {
	base, err := sc.baseAccelerator()
	if err != nil {
		return nil, err
	}

	sweptIdx := -1
	for i := range base.Lattice {
		if base.Lattice[i].FamName == sc.Element {
			sweptIdx = i
			break
		}
	}
	if sweptIdx < 0 {
		return nil, fmt.Errorf("scenario %q: element %q not found in lattice", sc.Name, sc.Element)
	}

	numSteps := sc.NumSteps
	if numSteps < 1 {
		numSteps = 1
	}
	workers := sc.Workers
	if workers < 1 {
		workers = 4
	}

	points := make([]Point, numSteps)
	step := 0.0
	if numSteps > 1 {
		step = (sc.Max - sc.Min) / float64(numSteps-1)
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i := 0; i < numSteps; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			paramValue := sc.Min
			if numSteps > 1 {
				paramValue = sc.Min + float64(idx)*step
			}

			acc := cloneAccelerator(base, sweptIdx)
			if err := setParam(&acc.Lattice[sweptIdx], sc.Param, paramValue); err != nil {
				points[idx] = Point{Index: idx, ParamValue: paramValue, Err: err}
				return
			}

			points[idx] = sc.runPoint(acc, idx, paramValue)
		}(i)
	}
	wg.Wait()

	return points, nil
}

func (sc *Scenario) runPoint(acc *track.Accelerator, idx int, paramValue float64) Point {
	p := Point{Index: idx, ParamValue: paramValue}

	switch sc.Mode {
	case "m66":
		result, status := orbit.FindM66(acc, track.Pos{})
		p.Status = status
		p.Orbit = result.Orbit
		m66 := result.M66
		p.M66 = &m66

	case "track":
		pos := track.FromArray(sc.InitPos.Array())
		turns := sc.Turns
		if turns < 1 {
			turns = 1
		}
		_, _, status := tracker.RingPass(acc, &pos, turns, sc.Offset, false, nil)
		p.Status = status
		p.FinalPos = pos

	default: // "orbit"
		guess := track.FromArray(sc.InitPos.Array())
		acc.CavityOn = sc.RF || acc.CavityOn
		o, status := orbit.FindOrbit(acc, guess)
		p.Status = status
		p.Orbit = o
	}

	return p
}
