package grid

import (
	"math"
	"slices"
)

// LinearPartition splits weights into at most k contiguous groups so that
// the largest group sum is as small as possible. Ties go to the earliest
// split. It returns nil when k <= 0 and one group per weight when k is at
// least len(weights).
func LinearPartition(weights []int, k int) [][]int {
	n := len(weights)
	if k <= 0 || n == 0 {
		return nil
	}
	if k >= n {
		groups := make([][]int, n)
		for i, w := range weights {
			groups[i] = []int{w}
		}
		return groups
	}

	sum := make([]int, n+1)
	for i, w := range weights {
		sum[i+1] = sum[i] + w
	}
	// cost[i][j] is the smallest possible largest sum when weights[:i]
	// is split into j groups; split[i][j] is where the last group starts.
	cost := make([][]int, n+1)
	split := make([][]int, n+1)
	for i := 1; i <= n; i++ {
		cost[i] = make([]int, k+1)
		split[i] = make([]int, k+1)
		cost[i][1] = sum[i]
	}
	for j := 2; j <= k; j++ {
		for i := j; i <= n; i++ {
			best, at := math.MaxInt, j-1
			for x := j - 1; x < i; x++ {
				if c := max(cost[x][j-1], sum[i]-sum[x]); c < best {
					best, at = c, x
				}
			}
			cost[i][j], split[i][j] = best, at
		}
	}

	groups := make([][]int, k)
	end := n
	for j := k; j > 1; j-- {
		x := split[end][j]
		groups[j-1] = slices.Clone(weights[x:end])
		end = x
	}
	groups[0] = slices.Clone(weights[:end])
	return groups
}
