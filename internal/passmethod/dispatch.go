package passmethod

import "github.com/lnls-sirius/trackgo/internal/track"

// Func is the signature every pass method satisfies.
type Func func(pos *track.Pos, el *track.Element, acc *track.Accelerator) track.Status

var table = [...]Func{
	track.PassIdentity:            Identity,
	track.PassDrift:               Drift,
	track.PassStrMPoleSymplectic4: StrMPoleSymplectic4,
	track.PassBndMPoleSymplectic4: BndMPoleSymplectic4,
	track.PassCorrector:           Corrector,
	track.PassCavity:              Cavity,
	track.PassThinQuad:            ThinQuad,
	track.PassThinSext:            ThinSext,
	track.PassKicktable:           Kicktable,
}

// ElementPass advances pos through el's map, dispatching on el.PassMethod.
// An out-of-range pass method (possible only via a hand-built Element, since
// the track and flatfile packages only ever produce valid tags) reports
// StatusPassMethodNotDefined rather than panicking.
func ElementPass(pos *track.Pos, el *track.Element, acc *track.Accelerator) track.Status {
	if int(el.PassMethod) < 0 || int(el.PassMethod) >= len(table) || table[el.PassMethod] == nil {
		return track.StatusPassMethodNotDefined
	}
	return table[el.PassMethod](pos, el, acc)
}
