package paste

import (
	"fmt"
	"math"
)

// solveAssignment solves the linear assignment problem for a square cost
// matrix in O(n³) (Kuhn–Munkres with potentials). It returns, for each row,
// the column index assigned by the minimum-total-cost perfect matching.
//
// A non-square matrix reaching this point is a construction bug in the
// caller, not a data condition, so it panics rather than degrading.
func solveAssignment(cost [][]float64) []int {
	n := len(cost)
	for i, row := range cost {
		if len(row) != n {
			panic(fmt.Sprintf("assignment matrix not square: row %d has %d columns, want %d", i, len(row), n))
		}
	}
	if n == 0 {
		return nil
	}

	u := make([]float64, n+1)
	v := make([]float64, n+1)
	match := make([]int, n+1) // match[j]: row currently assigned to column j
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		match[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		used := make([]bool, n+1)
		for j := range minv {
			minv[j] = math.MaxFloat64
		}

		for {
			used[j0] = true
			i0 := match[j0]
			delta := math.MaxFloat64
			j1 := 0

			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}

			for j := 0; j <= n; j++ {
				if used[j] {
					u[match[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if match[j0] == 0 {
				break
			}
		}

		// Augment along the alternating path back to the start.
		for j0 != 0 {
			j1 := way[j0]
			match[j0] = match[j1]
			j0 = j1
		}
	}

	assigned := make([]int, n)
	for j := 1; j <= n; j++ {
		if match[j] > 0 {
			assigned[match[j]-1] = j - 1
		}
	}
	return assigned
}
