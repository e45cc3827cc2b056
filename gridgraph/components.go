package gridgraph

// ConnectedComponents finds all contiguous regions of enabled cells under
// 4-connectivity. Returns a slice of components; each component is a slice
// of row-major cell indices in BFS discovery order, and components appear in
// order of their lowest index.
//
// To convert an index back to (row,col), use Coordinate(idx).
//
// Time:   O(R·C·4).
// Memory: O(R·C) for visited flags and output.
func (g *Grid) ConnectedComponents() [][]int {
	seen := make([]bool, g.Len())
	var comps [][]int

	for i0 := 0; i0 < g.Len(); i0++ {
		if !g.enabled[i0] || seen[i0] {
			continue
		}
		// BFS to collect component
		queue := []int{i0}
		seen[i0] = true
		var comp []int

		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			comp = append(comp, u)
			for _, v := range g.Adjacent(u) {
				if !seen[v] {
					seen[v] = true
					queue = append(queue, v)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// ComponentLabels returns, for every cell, the index of its component in
// ConnectedComponents order, or -1 for disabled cells.
func (g *Grid) ComponentLabels() []int {
	labels := make([]int, g.Len())
	for i := range labels {
		labels[i] = -1
	}
	for ci, comp := range g.ConnectedComponents() {
		for _, idx := range comp {
			labels[idx] = ci
		}
	}
	return labels
}

// Reachable reports whether a path of enabled cells joins a and b.
// Disabled or out-of-range endpoints are never reachable.
func (g *Grid) Reachable(a, b int) bool {
	if !g.Enabled(a) || !g.Enabled(b) {
		return false
	}
	if a == b {
		return true
	}
	seen := make([]bool, g.Len())
	queue := []int{a}
	seen[a] = true
	for qi := 0; qi < len(queue); qi++ {
		for _, v := range g.Adjacent(queue[qi]) {
			if v == b {
				return true
			}
			if !seen[v] {
				seen[v] = true
				queue = append(queue, v)
			}
		}
	}
	return false
}
