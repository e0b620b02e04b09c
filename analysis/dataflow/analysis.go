// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dataflow

// An EdgeOf is a directed edge between two nodes of a control-flow graph.
type EdgeOf[Node any] interface {
	// Source returns the node control flows from.
	Source() Node

	// Target returns the node control flows to.
	Target() Node
}

// A Graph is the view of a control-flow graph the solver needs: node
// enumeration, the entry/exit predicates, and per-node edge enumeration.
// The concrete cfg.Graph satisfies Graph[*cfg.Node, *cfg.Edge].
type Graph[Node comparable, Edge EdgeOf[Node]] interface {
	// Nodes returns all nodes in a deterministic natural order.
	Nodes() []Node

	// IsEntry reports whether n is the unique entry node.
	IsEntry(n Node) bool

	// IsExit reports whether n is the unique exit node.
	IsExit(n Node) bool

	// InEdgesOf returns the edges whose target is n.
	InEdgesOf(n Node) []Edge

	// OutEdgesOf returns the edges whose source is n.
	OutEdgesOf(n Node) []Edge
}

// An Analysis is the contract a concrete dataflow analysis implements to be
// driven by the worklist solver. Implementations must be stateless apart from
// configuration: facts are owned by the solver's Result and must not be
// retained across calls.
type Analysis[Node comparable, Edge EdgeOf[Node], Fact any] interface {
	// IsForward reports the direction of the analysis.
	IsForward() bool

	// NewBoundaryFact returns the fact installed at the boundary node of g:
	// the entry for a forward analysis, the exit for a backward one.
	NewBoundaryFact(g Graph[Node, Edge]) Fact

	// NewInitialFact returns the fact installed at every non-boundary node
	// before solving starts.
	NewInitialFact() Fact

	// MeetInto meets fact into target, in place.
	MeetInto(fact, target Fact)

	// TransferNode applies the node transfer function, computing out from in
	// (forward) or in from out (backward), in place. It reports whether the
	// computed fact changed.
	TransferNode(node Node, in, out Fact) bool

	// NeedTransferEdge reports whether facts flowing along edge must be
	// transformed by TransferEdge before they are met into the neighbor.
	NeedTransferEdge(edge Edge) bool

	// TransferEdge applies the edge transfer function to fact. It is only
	// called on edges for which NeedTransferEdge is true, and must not
	// mutate fact.
	TransferEdge(edge Edge, fact Fact) Fact
}
