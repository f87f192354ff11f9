package track

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
)

// Kicktable is a rectangular grid of horizontal and vertical kicks as a
// function of transverse offset, used to model insertion devices. It is
// owned by an Accelerator's registry and referenced, never copied, by the
// elements that use it.
type Kicktable struct {
	Filename string

	Length float64 // [m]

	XMin, XMax float64
	XNrPts     int
	YMin, YMax float64
	YNrPts     int

	// XKick and YKick are stored row-major with y varying slowest, i.e.
	// value at (i, j) (x-index i, y-index j) is at XKick[j*XNrPts+i].
	XKick []float64
	YKick []float64
}

func (k *Kicktable) idx(i, j int) int { return j*k.XNrPts + i }

// Interpolate returns the bilinearly-interpolated horizontal and vertical
// kicks at (rx, ry). ok is false when the point falls outside the sampled
// grid.
func (k *Kicktable) Interpolate(rx, ry float64) (hkick, vkick float64, ok bool) {
	if k.XNrPts < 2 || k.YNrPts < 2 {
		return 0, 0, false
	}
	if rx < k.XMin || rx > k.XMax || ry < k.YMin || ry > k.YMax {
		return 0, 0, false
	}

	dx := (k.XMax - k.XMin) / float64(k.XNrPts-1)
	dy := (k.YMax - k.YMin) / float64(k.YNrPts-1)

	fi := (rx - k.XMin) / dx
	fj := (ry - k.YMin) / dy

	i0 := int(fi)
	j0 := int(fj)
	if i0 >= k.XNrPts-1 {
		i0 = k.XNrPts - 2
	}
	if j0 >= k.YNrPts-1 {
		j0 = k.YNrPts - 2
	}
	tx := fi - float64(i0)
	ty := fj - float64(j0)

	bilerp := func(grid []float64) float64 {
		v00 := grid[k.idx(i0, j0)]
		v10 := grid[k.idx(i0+1, j0)]
		v01 := grid[k.idx(i0, j0+1)]
		v11 := grid[k.idx(i0+1, j0+1)]
		return v00*(1-tx)*(1-ty) + v10*tx*(1-ty) + v01*(1-tx)*ty + v11*tx*ty
	}

	return bilerp(k.XKick), bilerp(k.YKick), true
}

// Equal compares all grid contents, ignoring Filename (two kicktables
// loaded from different paths but identical contents are the same table).
func (k *Kicktable) Equal(o *Kicktable) bool {
	if k == o {
		return true
	}
	if k == nil || o == nil {
		return false
	}
	if k.Length != o.Length || k.XMin != o.XMin || k.XMax != o.XMax ||
		k.YMin != o.YMin || k.YMax != o.YMax || k.XNrPts != o.XNrPts || k.YNrPts != o.YNrPts {
		return false
	}
	if len(k.XKick) != len(o.XKick) || len(k.YKick) != len(o.YKick) {
		return false
	}
	for i := range k.XKick {
		if k.XKick[i] != o.XKick[i] {
			return false
		}
	}
	for i := range k.YKick {
		if k.YKick[i] != o.YKick[i] {
			return false
		}
	}
	return true
}

// ContentHash returns a stable digest of the grid's numeric contents,
// independent of Filename, used by the Accelerator registry to deduplicate
// kicktables loaded under different names.
func (k *Kicktable) ContentHash() string {
	h := sha256.New()
	writeF := func(v float64) {
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	writeF(k.Length)
	writeF(k.XMin)
	writeF(k.XMax)
	writeF(k.YMin)
	writeF(k.YMax)
	fmt.Fprintf(h, "%d:%d", k.XNrPts, k.YNrPts)
	for _, v := range k.XKick {
		writeF(v)
	}
	for _, v := range k.YKick {
		writeF(v)
	}
	return hex.EncodeToString(h.Sum(nil))
}
