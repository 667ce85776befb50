package ai

import "github.com/cory-johannsen/tactics/internal/game/battlefield"

// Reachable returns every cell reachable from start in at most mp steps over
// walkable cells, with the path leading to it (start excluded). The start
// cell itself is not included.
//
// Neighbours are explored in north, east, south, west order, so paths are
// shortest and deterministic.
func Reachable(m battlefield.Map, start, mp int) map[int][]int {
	paths := make(map[int][]int)
	if mp <= 0 {
		return paths
	}
	dims := m.Dimensions()
	visited := map[int]bool{start: true}
	frontier := []int{start}

	for depth := 0; depth < mp && len(frontier) > 0; depth++ {
		var next []int
		for _, from := range frontier {
			for _, n := range dims.Neighbors(from) {
				if visited[n] {
					continue
				}
				c, ok := m.Get(n)
				if !ok || !c.Walkable() {
					continue
				}
				visited[n] = true
				paths[n] = append(append([]int(nil), paths[from]...), n)
				next = append(next, n)
			}
		}
		frontier = next
	}
	return paths
}
