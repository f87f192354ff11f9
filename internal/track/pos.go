package track

import "math"

// Pos is a six-dimensional phase-space coordinate: horizontal position and
// angle, vertical position and angle, relative energy deviation, and
// path-length deviation.
type Pos struct {
	Rx, Px, Ry, Py, De, Dl float64
}

// NaNPos returns the coordinate used to mark a lost particle's trailing
// trajectory record.
func NaNPos() Pos {
	nan := math.NaN()
	return Pos{nan, nan, nan, nan, nan, nan}
}

func (p Pos) Add(o Pos) Pos {
	return Pos{p.Rx + o.Rx, p.Px + o.Px, p.Ry + o.Ry, p.Py + o.Py, p.De + o.De, p.Dl + o.Dl}
}

func (p Pos) Sub(o Pos) Pos {
	return Pos{p.Rx - o.Rx, p.Px - o.Px, p.Ry - o.Ry, p.Py - o.Py, p.De - o.De, p.Dl - o.Dl}
}

func (p Pos) Scale(f float64) Pos {
	return Pos{p.Rx * f, p.Px * f, p.Ry * f, p.Py * f, p.De * f, p.Dl * f}
}

// Array exposes the coordinate as a fixed-size array, in component order,
// for code that needs to index it (the Newton solver, the linear solves).
func (p Pos) Array() [6]float64 {
	return [6]float64{p.Rx, p.Px, p.Ry, p.Py, p.De, p.Dl}
}

// FromArray rebuilds a Pos from the component order used by Array.
func FromArray(a [6]float64) Pos {
	return Pos{a[0], a[1], a[2], a[3], a[4], a[5]}
}

// IsFinite reports whether every component is neither NaN nor infinite.
func (p Pos) IsFinite() bool {
	return isFinite(p.Rx) && isFinite(p.Px) && isFinite(p.Ry) &&
		isFinite(p.Py) && isFinite(p.De) && isFinite(p.Dl)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// NormInf returns the infinity norm (max absolute component), used by the
// closed-orbit solver's convergence test.
func (p Pos) NormInf() float64 {
	m := math.Abs(p.Rx)
	m = math.Max(m, math.Abs(p.Px))
	m = math.Max(m, math.Abs(p.Ry))
	m = math.Max(m, math.Abs(p.Py))
	m = math.Max(m, math.Abs(p.De))
	m = math.Max(m, math.Abs(p.Dl))
	return m
}
