// Package pipeline validates user-authored node/edge graphs submitted by the
// visual editor: it counts nodes and edges and reports whether the graph is
// acyclic.
package pipeline

import "encoding/json"

// Pipeline is the graph submitted for validation.
type Pipeline struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node represents a vertex in the pipeline.
// Data, Position and Type belong to the editor and are never interpreted here.
type Node struct {
	ID       string          `json:"id"`
	Data     json.RawMessage `json:"data,omitempty"`
	Position json.RawMessage `json:"position,omitempty"`
	Type     *string         `json:"type,omitempty"`
}

// Edge represents a directed connection Source → Target.
type Edge struct {
	ID     string  `json:"id"`
	Source string  `json:"source"`
	Target string  `json:"target"`
	Type   *string `json:"type,omitempty"`
}

// Result is the verdict returned for one pipeline.
type Result struct {
	NumNodes int    `json:"num_nodes"`
	NumEdges int    `json:"num_edges"`
	IsDAG    bool   `json:"is_dag"`
	Message  string `json:"message"`

	Status Status `json:"-"`
}

// Validate counts the submitted nodes and edges, checks the graph for cycles
// and classifies the outcome. NumEdges is the number of edges as submitted,
// including edges dropped because their source is unknown.
func Validate(nodes []Node, edges []Edge) Result {
	numNodes, numEdges := len(nodes), len(edges)

	isDAG := true
	if numNodes > 0 {
		isDAG = NewGraph(nodes, edges).IsAcyclic()
	}

	status := Classify(numNodes, numEdges, isDAG)
	return Result{
		NumNodes: numNodes,
		NumEdges: numEdges,
		IsDAG:    isDAG,
		Message:  status.message(numNodes, numEdges),
		Status:   status,
	}
}

// Validate is a convenience wrapper around the package-level Validate.
func (p *Pipeline) Validate() Result {
	return Validate(p.Nodes, p.Edges)
}
