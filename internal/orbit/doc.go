// Package orbit implements the closed-orbit Newton solvers: FindOrbit4 (RF
// off, transverse only), FindOrbit6 (full six-dimensional), and FindM66 (the
// one-turn transfer matrix and per-element transfer matrices around a
// converged orbit).
//
// All three build a finite-difference Jacobian by retracking one turn per
// perturbed coordinate and solve the resulting linear system with Gaussian
// elimination; none allocates beyond the fixed-size working matrices sized
// to the problem dimension.
package orbit
