package pipeline

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
		edges []Edge
		want  Result
	}{
		{
			name: "empty pipeline",
			want: Result{NumNodes: 0, NumEdges: 0, IsDAG: true,
				Message: "Pipeline is empty. Add some nodes to get started.", Status: StatusEmpty},
		},
		{
			name:  "single edge",
			nodes: nodes("A", "B"),
			edges: edges(e("A", "B")),
			want: Result{NumNodes: 2, NumEdges: 1, IsDAG: true,
				Message: "Pipeline is valid! 2 nodes, 1 edges.", Status: StatusValid},
		},
		{
			name:  "not connected",
			nodes: nodes("A", "B"),
			want: Result{NumNodes: 2, NumEdges: 0, IsDAG: true,
				Message: "Pipeline is valid but nodes are not connected.", Status: StatusDisconnected},
		},
		{
			name:  "two cycle",
			nodes: nodes("A", "B"),
			edges: edges(e("A", "B"), e("B", "A")),
			want: Result{NumNodes: 2, NumEdges: 2, IsDAG: false,
				Message: "Pipeline contains a cycle! Please remove circular connections.", Status: StatusCyclic},
		},
		{
			name:  "self loop",
			nodes: nodes("A"),
			edges: edges(e("A", "A")),
			want: Result{NumNodes: 1, NumEdges: 1, IsDAG: false,
				Message: "Pipeline contains a cycle! Please remove circular connections.", Status: StatusCyclic},
		},
		{
			name:  "three cycle",
			nodes: nodes("A", "B", "C"),
			edges: edges(e("A", "B"), e("B", "C"), e("C", "A")),
			want: Result{NumNodes: 3, NumEdges: 3, IsDAG: false,
				Message: "Pipeline contains a cycle! Please remove circular connections.", Status: StatusCyclic},
		},
		{
			name:  "single node",
			nodes: nodes("A"),
			want: Result{NumNodes: 1, NumEdges: 0, IsDAG: true,
				Message: "Pipeline is valid! 1 nodes, 0 edges.", Status: StatusValid},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.nodes, tt.edges))
		})
	}
}

func TestValidate_EmptyIgnoresEdges(t *testing.T) {
	got := Validate(nil, edges(e("a", "a"), e("a", "b")))

	assert.True(t, got.IsDAG)
	assert.Equal(t, 0, got.NumNodes)
	assert.Equal(t, 2, got.NumEdges)
	assert.Equal(t, StatusEmpty, got.Status)
	assert.Equal(t, msgEmpty, got.Message)
}

func TestValidate_CountsDroppedEdges(t *testing.T) {
	es := edges(e("A", "B"), e("ghost", "A"), e("ghost", "ghost"))
	got := Validate(nodes("A", "B"), es)

	assert.Equal(t, len(es), got.NumEdges)
	assert.True(t, got.IsDAG)
	assert.Equal(t, "Pipeline is valid! 2 nodes, 3 edges.", got.Message)
}

func TestValidate_DroppedEdgesStillCountAsConnected(t *testing.T) {
	// Every edge is dropped from the graph, but edge_count is what was submitted.
	got := Validate(nodes("A", "B"), edges(e("ghost", "A")))

	assert.Equal(t, StatusValid, got.Status)
	assert.Equal(t, 1, got.NumEdges)
}

func TestValidate_Idempotent(t *testing.T) {
	ns := nodes("A", "B", "C")
	es := edges(e("A", "B"), e("B", "C"), e("C", "A"))

	first := Validate(ns, es)
	second := Validate(ns, es)
	assert.Equal(t, first, second)
}

func TestValidate_ConcurrentCallsAreIndependent(t *testing.T) {
	acyclicNodes := nodes("A", "B", "C")
	acyclicEdges := edges(e("A", "B"), e("B", "C"))
	cyclicNodes := nodes("A", "B", "C")
	cyclicEdges := edges(e("A", "B"), e("B", "C"), e("C", "A"))

	wantAcyclic := Validate(acyclicNodes, acyclicEdges)
	wantCyclic := Validate(cyclicNodes, cyclicEdges)

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan string, workers*100)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if (w+i)%2 == 0 {
					if got := Validate(acyclicNodes, acyclicEdges); got != wantAcyclic {
						errs <- fmt.Sprintf("worker %d: acyclic got %+v", w, got)
					}
				} else if got := Validate(cyclicNodes, cyclicEdges); got != wantCyclic {
					errs <- fmt.Sprintf("worker %d: cyclic got %+v", w, got)
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
	assert.True(t, wantAcyclic.IsDAG)
	assert.False(t, wantCyclic.IsDAG)
}

func TestPipeline_ValidateFromJSON(t *testing.T) {
	body := `{
		"nodes": [
			{"id": "input-1", "type": "customInput", "data": {"inputName": "q"}, "position": {"x": 10, "y": 20}},
			{"id": "llm-1", "type": "llm", "data": {}, "position": {"x": 200, "y": 20}},
			{"id": "output-1", "type": null, "data": {}, "position": {}}
		],
		"edges": [
			{"id": "e1", "source": "input-1", "target": "llm-1", "type": "smoothstep"},
			{"id": "e2", "source": "llm-1", "target": "output-1"}
		]
	}`

	var p Pipeline
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	require.NotNil(t, p.Nodes[0].Type)
	assert.Equal(t, "customInput", *p.Nodes[0].Type)
	assert.Nil(t, p.Nodes[2].Type)

	got := p.Validate()
	assert.Equal(t, "Pipeline is valid! 3 nodes, 2 edges.", got.Message)

	out, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"num_nodes":3,"num_edges":2,"is_dag":true,"message":"Pipeline is valid! 3 nodes, 2 edges."}`, string(out))
}
