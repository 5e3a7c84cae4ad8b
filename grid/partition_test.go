package grid

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLinearPartition(t *testing.T) {
	for _, tc := range []struct {
		name    string
		weights []int
		k       int
		want    [][]int
	}{
		{"even", []int{1, 1, 1, 1, 1, 1}, 3, [][]int{{1, 1}, {1, 1}, {1, 1}}},
		{"heavy first", []int{10, 1, 1, 1, 1, 1}, 2, [][]int{{10}, {1, 1, 1, 1, 1}}},
		{"skiena", []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, 3, [][]int{{1, 2, 3, 4, 5}, {6, 7}, {8, 9}}},
		{"tie takes earliest split", []int{100, 100, 100, 100, 100}, 2, [][]int{{100, 100}, {100, 100, 100}}},
		{"one group", []int{3, 1, 2}, 1, [][]int{{3, 1, 2}}},
		{"more groups than weights", []int{4, 5}, 3, [][]int{{4}, {5}}},
		{"zero groups", []int{4, 5}, 0, nil},
		{"empty", nil, 2, nil},
	} {
		got := LinearPartition(tc.weights, tc.k)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("%s (-want +got):\n%s", tc.name, diff)
		}
	}
}

func TestLinearPartitionMinimizesMax(t *testing.T) {
	weights := []int{7, 3, 9, 1, 4, 8, 2, 6}
	for k := 1; k <= len(weights); k++ {
		groups := LinearPartition(weights, k)
		if len(groups) != k {
			t.Fatalf("k=%d: %d groups", k, len(groups))
		}
		var flat []int
		worst := 0
		for _, g := range groups {
			if len(g) == 0 {
				t.Errorf("k=%d: empty group", k)
			}
			s := 0
			for _, w := range g {
				s += w
			}
			worst = max(worst, s)
			flat = append(flat, g...)
		}
		if diff := cmp.Diff(weights, flat); diff != "" {
			t.Errorf("k=%d: groups do not cover weights in order (-want +got):\n%s", k, diff)
		}
		if best := bruteForce(weights, k); worst != best {
			t.Errorf("k=%d: largest group %d, optimum %d", k, worst, best)
		}
	}
}

// bruteForce returns the optimal largest group sum by trying every split.
func bruteForce(w []int, k int) int {
	if k == 1 {
		s := 0
		for _, x := range w {
			s += x
		}
		return s
	}
	best := -1
	s := 0
	for i := 0; i < len(w)-k+1; i++ {
		s += w[i]
		c := max(s, bruteForce(w[i+1:], k-1))
		if best < 0 || c < best {
			best = c
		}
	}
	return best
}
