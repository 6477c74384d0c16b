package compare

import "math"

// assign solves the rectangular assignment problem for the cost matrix and
// returns matched (row, column) pairs ordered by row. Exactly
// min(rows, cols) pairs are returned.
func assign(cost [][]int) [][2]int {
	rows := len(cost)
	if rows == 0 || len(cost[0]) == 0 {
		return nil
	}
	cols := len(cost[0])

	if rows <= cols {
		rowToCol := hungarian(cost)
		pairs := make([][2]int, rows)
		for r, c := range rowToCol {
			pairs[r] = [2]int{r, c}
		}
		return pairs
	}

	transposed := make([][]int, cols)
	for c := range transposed {
		transposed[c] = make([]int, rows)
		for r := range rows {
			transposed[c][r] = cost[r][c]
		}
	}
	colToRow := hungarian(transposed)
	matched := make([]int, rows)
	for r := range matched {
		matched[r] = -1
	}
	for c, r := range colToRow {
		matched[r] = c
	}
	pairs := make([][2]int, 0, cols)
	for r, c := range matched {
		if c >= 0 {
			pairs = append(pairs, [2]int{r, c})
		}
	}
	return pairs
}

// hungarian is the shortest augmenting path formulation with row and column
// potentials. It requires len(cost) <= len(cost[0]) and returns the column
// assigned to every row.
func hungarian(cost [][]int) []int {
	n, m := len(cost), len(cost[0])
	const inf = math.MaxInt / 2

	// 1-based; p[j] is the row matched to column j, way[j] the previous column
	// on the augmenting path.
	u := make([]int, n+1)
	v := make([]int, m+1)
	p := make([]int, m+1)
	way := make([]int, m+1)
	minv := make([]int, m+1)
	used := make([]bool, m+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		for j := range minv {
			minv[j] = inf
			used[j] = false
		}
		for {
			used[j0] = true
			i0, delta, j1 := p[j0], inf, 0
			for j := 1; j <= m; j++ {
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
			for j := 0; j <= m; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}
		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	rowToCol := make([]int, n)
	for j := 1; j <= m; j++ {
		if p[j] != 0 {
			rowToCol[p[j]-1] = j - 1
		}
	}
	return rowToCol
}
