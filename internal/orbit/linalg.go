package orbit

import "math"

// singularPivot is the threshold below which a pivot is treated as zero,
// matching the tracking library's choice for detecting a non-invertible
// one-turn-minus-identity Jacobian.
const singularPivot = 1e-20

// solve solves the n x n system a.x = b by Gaussian elimination with
// partial pivoting, mutating a and b in place. ok is false when a pivot
// falls below singularPivot.
func solve(a [][]float64, b []float64) (x []float64, ok bool) {
	n := len(b)
	for col := 0; col < n; col++ {
		pivotRow := col
		maxAbs := math.Abs(a[col][col])
		for r := col + 1; r < n; r++ {
			if v := math.Abs(a[r][col]); v > maxAbs {
				maxAbs = v
				pivotRow = r
			}
		}
		if maxAbs < singularPivot {
			return nil, false
		}
		if pivotRow != col {
			a[col], a[pivotRow] = a[pivotRow], a[col]
			b[col], b[pivotRow] = b[pivotRow], b[col]
		}

		pivot := a[col][col]
		for r := col + 1; r < n; r++ {
			factor := a[r][col] / pivot
			if factor == 0 {
				continue
			}
			for c := col; c < n; c++ {
				a[r][c] -= factor * a[col][c]
			}
			b[r] -= factor * b[col]
		}
	}

	x = make([]float64, n)
	for r := n - 1; r >= 0; r-- {
		sum := b[r]
		for c := r + 1; c < n; c++ {
			sum -= a[r][c] * x[c]
		}
		x[r] = sum / a[r][r]
	}
	return x, true
}
