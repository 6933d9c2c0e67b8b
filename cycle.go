package pipeline

type visitState uint8

const (
	unvisited visitState = iota
	onPath
	done
)

// frame is one entry of the depth-first path: a node and the index of the
// next outgoing edge to explore.
type frame struct {
	id   string
	next int
}

// IsAcyclic reports whether the graph has no cycle.
func (g *Graph) IsAcyclic() bool {
	return g.FindCycle() == nil
}

// FindCycle returns the first cycle met by a depth-first walk, as a closed path
// whose first and last ids are equal ([A B C A], or [A A] for a self-loop).
// It returns nil if the graph is acyclic.
//
// Roots are taken in node order and neighbors in edge order. The walk keeps
// its path on an explicit stack, so deep chains do not grow the goroutine
// stack. Targets that are not nodes are visited as leaves.
func (g *Graph) FindCycle() []string {
	state := make(map[string]visitState, len(g.order))
	var path []frame

	for _, root := range g.order {
		if state[root] != unvisited {
			continue
		}
		state[root] = onPath
		path = append(path[:0], frame{id: root})

		for len(path) > 0 {
			top := &path[len(path)-1]
			targets := g.out[top.id]
			if top.next == len(targets) {
				state[top.id] = done
				path = path[:len(path)-1]
				continue
			}
			next := targets[top.next]
			top.next++

			switch state[next] {
			case unvisited:
				state[next] = onPath
				path = append(path, frame{id: next})
			case onPath:
				return closeCycle(path, next)
			}
		}
	}
	return nil
}

// closeCycle cuts the path at the back-edge target and closes the loop.
func closeCycle(path []frame, target string) []string {
	start := len(path) - 1
	for start > 0 && path[start].id != target {
		start--
	}
	cycle := make([]string, 0, len(path)-start+1)
	for _, f := range path[start:] {
		cycle = append(cycle, f.id)
	}
	return append(cycle, target)
}
