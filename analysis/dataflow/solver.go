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

// A FactOf is the constraint on dataflow facts: facts compare themselves
// structurally. Equality decides both IN-fact replacement and the solver's
// termination, so it must be exact.
type FactOf[Fact any] interface {
	Equals(other Fact) bool
}

// A Solver computes the fixpoint of a dataflow analysis over a control-flow
// graph with a worklist. A solver holds no per-solve state: one solver can
// serve any number of graphs, and independent solves may run concurrently.
type Solver[Node comparable, Edge EdgeOf[Node], Fact FactOf[Fact]] struct {
	analysis Analysis[Node, Edge, Fact]
}

// NewSolver returns a solver driving the given analysis.
func NewSolver[Node comparable, Edge EdgeOf[Node], Fact FactOf[Fact]](
	analysis Analysis[Node, Edge, Fact]) *Solver[Node, Edge, Fact] {
	return &Solver[Node, Edge, Fact]{analysis: analysis}
}

// Solve runs the analysis to its fixpoint over g and returns the per-node
// IN and OUT facts. Termination is guaranteed for monotone analyses over
// finite-height lattices; the solver does not defend against misbehaving
// analyses.
func (s *Solver[Node, Edge, Fact]) Solve(g Graph[Node, Edge]) *Result[Node, Fact] {
	result := NewResult[Node, Fact]()
	s.initialize(g, result)
	if s.analysis.IsForward() {
		s.doSolveForward(g, result)
	} else {
		s.doSolveBackward(g, result)
	}
	return result
}

// initialize installs the boundary fact at the entry (forward) or exit
// (backward) node and the initial fact everywhere else.
func (s *Solver[Node, Edge, Fact]) initialize(g Graph[Node, Edge], result *Result[Node, Fact]) {
	forward := s.analysis.IsForward()
	for _, node := range g.Nodes() {
		if (forward && g.IsEntry(node)) || (!forward && g.IsExit(node)) {
			result.SetInFact(node, s.analysis.NewBoundaryFact(g))
			result.SetOutFact(node, s.analysis.NewBoundaryFact(g))
			continue
		}
		result.SetInFact(node, s.analysis.NewInitialFact())
		result.SetOutFact(node, s.analysis.NewInitialFact())
	}
}

// doSolveForward iterates node transfers until no OUT fact changes. The
// worklist is seeded with every node in the graph's natural order, not only
// the entry; the extra initial transfers are wasted work but keep the result
// independent of the seeding choice.
func (s *Solver[Node, Edge, Fact]) doSolveForward(g Graph[Node, Edge], result *Result[Node, Fact]) {
	worklist := append([]Node{}, g.Nodes()...)
	for len(worklist) > 0 {
		node := worklist[0]
		worklist = worklist[1:]
		inFact := result.InFact(node)
		if !g.IsEntry(node) {
			newIn := s.analysis.NewInitialFact()
			for _, edge := range g.InEdgesOf(node) {
				predOut := result.OutFact(edge.Source())
				edgeFact := predOut
				if s.analysis.NeedTransferEdge(edge) {
					edgeFact = s.analysis.TransferEdge(edge, predOut)
				}
				s.analysis.MeetInto(edgeFact, newIn)
			}
			if !newIn.Equals(inFact) {
				inFact = newIn
				result.SetInFact(node, inFact)
			}
		}
		if s.analysis.TransferNode(node, inFact, result.OutFact(node)) {
			for _, edge := range g.OutEdgesOf(node) {
				worklist = append(worklist, edge.Target())
			}
		}
	}
}

// doSolveBackward is the mirror image of doSolveForward: OUT facts are met
// from successors' IN facts, the transfer maps OUT to IN, and predecessors
// are re-enqueued on change.
func (s *Solver[Node, Edge, Fact]) doSolveBackward(g Graph[Node, Edge], result *Result[Node, Fact]) {
	worklist := append([]Node{}, g.Nodes()...)
	for len(worklist) > 0 {
		node := worklist[0]
		worklist = worklist[1:]
		outFact := result.OutFact(node)
		if !g.IsExit(node) {
			newOut := s.analysis.NewInitialFact()
			for _, edge := range g.OutEdgesOf(node) {
				succIn := result.InFact(edge.Target())
				edgeFact := succIn
				if s.analysis.NeedTransferEdge(edge) {
					edgeFact = s.analysis.TransferEdge(edge, succIn)
				}
				s.analysis.MeetInto(edgeFact, newOut)
			}
			if !newOut.Equals(outFact) {
				outFact = newOut
				result.SetOutFact(node, outFact)
			}
		}
		if s.analysis.TransferNode(node, outFact, result.InFact(node)) {
			for _, edge := range g.InEdgesOf(node) {
				worklist = append(worklist, edge.Source())
			}
		}
	}
}
