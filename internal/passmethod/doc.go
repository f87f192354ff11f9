// Package passmethod implements the pass-method library: the family of
// closed-form and numerical maps that advance a single particle's
// phase-space coordinate through one lattice element.
//
// Every pass method has the signature
//
//	func(pos *track.Pos, el *track.Element, acc *track.Accelerator) track.Status
//
// [ElementPass] dispatches on el.PassMethod to the matching function. Pass
// methods never allocate beyond the fixed-size scratch each one owns
// internally; they are reentrant across distinct *track.Pos values.
package passmethod

// lightSpeed is c in m/s, used by the RF cavity phase and the legacy tracy
// flat-file dialect's frequency conversion.
const lightSpeed = 299792458.0
