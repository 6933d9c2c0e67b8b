package pipeline

// Graph is the adjacency structure built from one pipeline. It is owned by a
// single validation call and never shared.
type Graph struct {
	order []string
	out   map[string][]string
}

// NewGraph builds the adjacency map for nodes and edges.
//
// Every node id gets an entry, in node order; duplicate ids collapse into the
// first entry. An edge is appended to its source's list in edge order. Edges
// whose source is not a node are dropped, and no entry is created for a
// target that is not a node.
func NewGraph(nodes []Node, edges []Edge) *Graph {
	g := &Graph{
		order: make([]string, 0, len(nodes)),
		out:   make(map[string][]string, len(nodes)),
	}
	for _, n := range nodes {
		if _, ok := g.out[n.ID]; ok {
			continue
		}
		g.out[n.ID] = nil
		g.order = append(g.order, n.ID)
	}
	for _, e := range edges {
		if _, ok := g.out[e.Source]; !ok {
			continue
		}
		g.out[e.Source] = append(g.out[e.Source], e.Target)
	}
	return g
}

// Nodes returns the unique node ids in first-seen order.
func (g *Graph) Nodes() []string {
	return g.order
}

// Targets returns the ids reachable from id by one edge, in edge order.
func (g *Graph) Targets(id string) []string {
	return g.out[id]
}

// Has reports whether id has an entry in the adjacency map.
func (g *Graph) Has(id string) bool {
	_, ok := g.out[id]
	return ok
}

// Len returns the number of entries in the adjacency map.
func (g *Graph) Len() int {
	return len(g.order)
}
