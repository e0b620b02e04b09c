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

// Package cfg provides the control-flow graph the dataflow engine runs on.
// A graph has one synthetic entry and one synthetic exit node; every other
// node wraps exactly one ir.Stmt.
package cfg

import (
	"fmt"

	"github.com/lbr77/Tai-e-assignments/analysis/ir"
)

// A Node is one node of a control-flow graph.
type Node struct {
	index int
	stmt  ir.Stmt // nil for the synthetic entry and exit nodes
}

// Index returns the position of the node in the graph's node order. Indices
// are dense: they can be used to address per-node arrays.
func (n *Node) Index() int { return n.index }

// Stmt returns the statement wrapped by this node, or nil for the synthetic
// entry and exit nodes.
func (n *Node) Stmt() ir.Stmt { return n.stmt }

func (n *Node) String() string {
	if n.stmt == nil {
		switch n.index {
		case 0:
			return "entry"
		case 1:
			return "exit"
		}
	}
	return fmt.Sprintf("%d: %s", n.index, n.stmt)
}

// EdgeKind describes why control may flow along an edge.
type EdgeKind int

const (
	// FallThrough connects consecutive statements.
	FallThrough EdgeKind = iota
	// IfTrue is taken when the source branch condition holds.
	IfTrue
	// IfFalse is taken when the source branch condition does not hold.
	IfFalse
	// Goto is an unconditional jump between blocks.
	Goto
)

func (k EdgeKind) String() string {
	return [...]string{"fallthrough", "if-true", "if-false", "goto"}[k]
}

// An Edge is a directed control-flow edge between two nodes.
type Edge struct {
	kind   EdgeKind
	source *Node
	target *Node
}

// Kind returns the kind of the edge.
func (e *Edge) Kind() EdgeKind { return e.kind }

// Source returns the node control flows from.
func (e *Edge) Source() *Node { return e.source }

// Target returns the node control flows to.
func (e *Edge) Target() *Node { return e.target }

func (e *Edge) String() string {
	return fmt.Sprintf("[%s] %s -> %s", e.kind, e.source, e.target)
}

// A Graph is the control-flow graph of one function. It is built once by the
// frontend (or directly by tests) and is read-only during a solve.
type Graph struct {
	fn    *ir.IR
	nodes []*Node // nodes[0] is the entry, nodes[1] the exit
	in    map[*Node][]*Edge
	out   map[*Node][]*Edge
}

// NewGraph returns a graph for fn containing only the synthetic entry and
// exit nodes.
func NewGraph(fn *ir.IR) *Graph {
	g := &Graph{
		fn:  fn,
		in:  map[*Node][]*Edge{},
		out: map[*Node][]*Edge{},
	}
	g.nodes = []*Node{{index: 0}, {index: 1}}
	return g
}

// IR returns the function this graph was built for.
func (g *Graph) IR() *ir.IR { return g.fn }

// Entry returns the synthetic entry node.
func (g *Graph) Entry() *Node { return g.nodes[0] }

// Exit returns the synthetic exit node.
func (g *Graph) Exit() *Node { return g.nodes[1] }

// AddNode appends a node wrapping stmt to the graph.
func (g *Graph) AddNode(stmt ir.Stmt) *Node {
	n := &Node{index: len(g.nodes), stmt: stmt}
	g.nodes = append(g.nodes, n)
	return n
}

// AddEdge connects source to target with an edge of the given kind.
func (g *Graph) AddEdge(kind EdgeKind, source, target *Node) *Edge {
	e := &Edge{kind: kind, source: source, target: target}
	g.out[source] = append(g.out[source], e)
	g.in[target] = append(g.in[target], e)
	return e
}

// Nodes returns all nodes in their natural order: entry, exit, then statement
// nodes in insertion order. The worklist solver seeds its queue with this
// order, so it must be deterministic.
func (g *Graph) Nodes() []*Node { return g.nodes }

// Size returns the number of nodes, synthetic nodes included.
func (g *Graph) Size() int { return len(g.nodes) }

// IsEntry reports whether n is the synthetic entry node.
func (g *Graph) IsEntry(n *Node) bool { return n == g.nodes[0] }

// IsExit reports whether n is the synthetic exit node.
func (g *Graph) IsExit(n *Node) bool { return n == g.nodes[1] }

// InEdgesOf returns the edges whose target is n.
func (g *Graph) InEdgesOf(n *Node) []*Edge { return g.in[n] }

// OutEdgesOf returns the edges whose source is n.
func (g *Graph) OutEdgesOf(n *Node) []*Edge { return g.out[n] }
