package analysis

import "github.com/lnls-sirius/trackgo/internal/track"

// TuneResult is the extracted fractional betatron tune for one plane and
// the power spectrum it was read off, for plotting.
type TuneResult struct {
	Tune     float64
	Spectrum []float64
}

// HorizontalTune extracts the horizontal fractional tune from a turn-by-turn
// trajectory recorded by tracker.RingPass: the trajectory's Rx coordinate is
// zero-padded to the next power of two and its power spectrum's peak bin
// (excluding DC) gives the tune as a fraction of the revolution frequency.
func HorizontalTune(traj []track.Pos) TuneResult {
	return tuneOf(traj, func(p track.Pos) float64 { return p.Rx })
}

// VerticalTune is HorizontalTune for the Ry coordinate.
func VerticalTune(traj []track.Pos) TuneResult {
	return tuneOf(traj, func(p track.Pos) float64 { return p.Ry })
}

func tuneOf(traj []track.Pos, coord func(track.Pos) float64) TuneResult {
	if len(traj) < 2 {
		return TuneResult{}
	}
	data := make([]float64, len(traj))
	for i, p := range traj {
		data[i] = coord(p)
	}

	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)

	ps := PowerSpectrum(padded)
	if len(ps) < 2 {
		return TuneResult{Spectrum: ps}
	}

	peakIdx, peakVal := 1, ps[1]
	for i := 2; i < len(ps); i++ {
		if ps[i] > peakVal {
			peakVal, peakIdx = ps[i], i
		}
	}

	return TuneResult{
		Tune:     float64(peakIdx) / float64(2*len(ps)),
		Spectrum: ps,
	}
}
