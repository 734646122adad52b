package domain

import "go.trai.ch/zerr"

const (
	unvisited = iota
	visiting
	visited
)

// CheckAcyclic walks the dependency edges of every derived node reachable
// from the given nodes and fails on a cycle. Construction order makes a
// cycle impossible through the public API, but the graph recurses
// unboundedly if one ever exists, so registration re-checks shape instead of
// trusting wiring authors.
func CheckAcyclic(nodes []Node) error {
	state := make(map[*DerivedNode]int)
	var path []string

	var visit func(d *DerivedNode) error
	visit = func(d *DerivedNode) error {
		state[d] = visiting
		path = append(path, d.name)

		for _, dep := range d.depList {
			dd, ok := dep.(*DerivedNode)
			if !ok {
				continue
			}
			switch state[dd] {
			case visiting:
				return buildCycleError(path, dd.name)
			case unvisited:
				if err := visit(dd); err != nil {
					return err
				}
			}
		}

		state[d] = visited
		path = path[:len(path)-1]
		return nil
	}

	for _, n := range nodes {
		d, ok := n.(*DerivedNode)
		if !ok {
			continue
		}
		if state[d] == unvisited {
			if err := visit(d); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error carrying the cycle path metadata.
func buildCycleError(path []string, name string) error {
	cyclePath := ""
	startIdx := 0
	for i, n := range path {
		if n == name {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i] + " -> "
	}
	cyclePath += name
	return zerr.With(zerr.Wrap(ErrDependencyCycle, ""), "cycle", cyclePath)
}
