package passmethod

import "github.com/lnls-sirius/trackgo/internal/track"

// applyEntryMisalignment applies x <- R_in . (x - T_in), trackcpp's
// convention for translating into an element's misaligned frame before the
// body map runs.
func applyEntryMisalignment(pos *track.Pos, el *track.Element) {
	if el.TIn == ([6]float64{}) && el.RIn == identity6 {
		return
	}
	v := pos.Array()
	for i := range v {
		v[i] -= el.TIn[i]
	}
	*pos = track.FromArray(matVec6(el.RIn, v))
}

// applyExitMisalignment applies x <- R_out . x + T_out, translating back out
// of the element's misaligned frame after the body map runs.
func applyExitMisalignment(pos *track.Pos, el *track.Element) {
	if el.TOut == ([6]float64{}) && el.ROut == identity6 {
		return
	}
	v := matVec6(el.ROut, pos.Array())
	for i := range v {
		v[i] += el.TOut[i]
	}
	*pos = track.FromArray(v)
}

var identity6 = func() [6][6]float64 {
	var m [6][6]float64
	for i := range m {
		m[i][i] = 1
	}
	return m
}()

func matVec6(m [6][6]float64, v [6]float64) [6]float64 {
	var out [6]float64
	for i := 0; i < 6; i++ {
		var s float64
		for j := 0; j < 6; j++ {
			s += m[i][j] * v[j]
		}
		out[i] = s
	}
	return out
}
