package game

// FindShortestRoute returns a shortest path (by hop count, endpoints
// included) from start to end through territories held by their common
// owner, or nil when the endpoints differ in owner, are unclaimed, or no
// connected route exists. Breadth-first over the fixed adjacency-list
// order, so results are deterministic.
func FindShortestRoute(territories map[string]*TerritoryState, start, end string) []string {
	from, ok := territories[start]
	if !ok {
		return nil
	}
	to, ok := territories[end]
	if !ok {
		return nil
	}
	if from.Owner == 0 || from.Owner != to.Owner {
		return nil
	}
	if start == end {
		return []string{start}
	}

	owner := from.Owner
	visited := map[string]bool{start: true}
	queue := [][]string{{start}}

	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]

		for _, neighbor := range Territories[path[len(path)-1]].Adjacent {
			if visited[neighbor] {
				continue
			}
			state, ok := territories[neighbor]
			if !ok || state.Owner != owner {
				continue
			}
			next := append(append([]string{}, path...), neighbor)
			if neighbor == end {
				return next
			}
			visited[neighbor] = true
			queue = append(queue, next)
		}
	}
	return nil
}
