package pipeline

import "fmt"

// Status is the classification of a validated pipeline.
type Status uint8

const (
	StatusValid Status = iota
	StatusEmpty
	StatusCyclic
	StatusDisconnected
)

const (
	msgEmpty        = "Pipeline is empty. Add some nodes to get started."
	msgCyclic       = "Pipeline contains a cycle! Please remove circular connections."
	msgDisconnected = "Pipeline is valid but nodes are not connected."
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusCyclic:
		return "cyclic"
	case StatusDisconnected:
		return "disconnected"
	default:
		return "valid"
	}
}

// Classify picks the status for the given counts and verdict. The first
// matching rule wins: empty, then cyclic, then disconnected, then valid.
func Classify(numNodes, numEdges int, isDAG bool) Status {
	switch {
	case numNodes == 0:
		return StatusEmpty
	case !isDAG:
		return StatusCyclic
	case numEdges == 0 && numNodes > 1:
		return StatusDisconnected
	default:
		return StatusValid
	}
}

// Message returns the human-readable message for the given counts and verdict.
func Message(numNodes, numEdges int, isDAG bool) string {
	return Classify(numNodes, numEdges, isDAG).message(numNodes, numEdges)
}

func (s Status) message(numNodes, numEdges int) string {
	switch s {
	case StatusEmpty:
		return msgEmpty
	case StatusCyclic:
		return msgCyclic
	case StatusDisconnected:
		return msgDisconnected
	default:
		return fmt.Sprintf("Pipeline is valid! %d nodes, %d edges.", numNodes, numEdges)
	}
}
