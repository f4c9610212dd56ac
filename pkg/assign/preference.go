package assign

import "github.com/sidravi1/vote2020/pkg/model"

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// computePreferred builds C5's preference edges over a TTC subset: for
// every active position k, the position of the precinct its endowed
// observer most prefers (minimum postal-code distance, ties broken by
// position/column order). Ownership is a bijection within the subset, so
// position k doubles as both "precinct k" and "the observer endowed at
// precinct k" — the composed map observer → precinct → owner collapses to
// this one preferred slice, per the bipartite-projection design note: no
// general graph library, just two parallel slices.
func computePreferred(roster *model.Roster, pool *model.Pool, precinctIdx []int, owner []string, active []bool) []int {
	n := len(precinctIdx)
	precinctPostCode := make([]int, n)
	for k, idx := range precinctIdx {
		precinctPostCode[k] = roster.All()[idx].PostCode
	}

	preferred := make([]int, n)
	for k := 0; k < n; k++ {
		if !active[k] {
			continue
		}
		observer, _ := pool.Get(owner[k])
		best := -1
		bestDist := -1
		for j := 0; j < n; j++ {
			if !active[j] {
				continue
			}
			d := abs(observer.PostCode - precinctPostCode[j])
			if bestDist < 0 || d < bestDist {
				bestDist = d
				best = j
			}
		}
		preferred[k] = best
	}
	return preferred
}

// findCycle follows the preferred pointers from each unvisited active node
// until a node already on the current walk is hit, and returns that cycle.
// preferred is total over the active domain, so some cycle always exists.
func findCycle(preferred []int, active []bool) []int {
	n := len(preferred)
	visited := make([]bool, n)

	for start := 0; start < n; start++ {
		if !active[start] || visited[start] {
			continue
		}

		var path []int
		onPath := make(map[int]int)
		cur := start
		for {
			if pos, ok := onPath[cur]; ok {
				return path[pos:]
			}
			if visited[cur] {
				break
			}
			onPath[cur] = len(path)
			path = append(path, cur)
			visited[cur] = true
			cur = preferred[cur]
		}
	}
	return nil
}
