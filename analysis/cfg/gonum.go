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

package cfg

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/traverse"
)

// Directed is an adaptor making a Graph usable with Gonum's graph utilities.
// Node IDs are the indices of the underlying cfg nodes.
type Directed struct {
	g *Graph
}

// AsDirected returns a view of g satisfying Gonum's graph.Directed.
func AsDirected(g *Graph) Directed {
	return Directed{g: g}
}

type gonumNode struct {
	n *Node
}

// ID implements graph.Node.
func (n gonumNode) ID() int64 { return int64(n.n.Index()) }

type gonumEdge struct {
	from, to gonumNode
}

// From implements graph.Edge.
func (e gonumEdge) From() graph.Node { return e.from }

// To implements graph.Edge.
func (e gonumEdge) To() graph.Node { return e.to }

// ReversedEdge implements graph.Edge.
func (e gonumEdge) ReversedEdge() graph.Edge { return gonumEdge{from: e.to, to: e.from} }

// Node implements graph.Graph.
func (d Directed) Node(id int64) graph.Node {
	for _, n := range d.g.Nodes() {
		if int64(n.Index()) == id {
			return gonumNode{n: n}
		}
	}
	return nil
}

// Nodes implements graph.Graph.
func (d Directed) Nodes() graph.Nodes {
	nodes := make([]graph.Node, 0, d.g.Size())
	for _, n := range d.g.Nodes() {
		nodes = append(nodes, gonumNode{n: n})
	}
	return iterator.NewOrderedNodes(nodes)
}

// From implements graph.Graph.
func (d Directed) From(id int64) graph.Nodes {
	n := d.Node(id)
	if n == nil {
		return graph.Empty
	}
	var nodes []graph.Node
	for _, e := range d.g.OutEdgesOf(n.(gonumNode).n) {
		nodes = append(nodes, gonumNode{n: e.Target()})
	}
	if len(nodes) == 0 {
		return graph.Empty
	}
	return iterator.NewOrderedNodes(nodes)
}

// To implements graph.Directed.
func (d Directed) To(id int64) graph.Nodes {
	n := d.Node(id)
	if n == nil {
		return graph.Empty
	}
	var nodes []graph.Node
	for _, e := range d.g.InEdgesOf(n.(gonumNode).n) {
		nodes = append(nodes, gonumNode{n: e.Source()})
	}
	if len(nodes) == 0 {
		return graph.Empty
	}
	return iterator.NewOrderedNodes(nodes)
}

// HasEdgeFromTo implements graph.Directed.
func (d Directed) HasEdgeFromTo(uid, vid int64) bool {
	u := d.Node(uid)
	if u == nil {
		return false
	}
	for _, e := range d.g.OutEdgesOf(u.(gonumNode).n) {
		if int64(e.Target().Index()) == vid {
			return true
		}
	}
	return false
}

// HasEdgeBetween implements graph.Graph.
func (d Directed) HasEdgeBetween(xid, yid int64) bool {
	return d.HasEdgeFromTo(xid, yid) || d.HasEdgeFromTo(yid, xid)
}

// Edge implements graph.Graph.
func (d Directed) Edge(uid, vid int64) graph.Edge {
	if !d.HasEdgeFromTo(uid, vid) {
		return nil
	}
	return gonumEdge{
		from: d.Node(uid).(gonumNode),
		to:   d.Node(vid).(gonumNode),
	}
}

// Reachable returns the set of nodes reachable from the entry node, computed
// with Gonum's breadth-first traversal. Statement nodes absent from the
// result are dead code.
func Reachable(g *Graph) map[*Node]bool {
	seen := make(map[*Node]bool, g.Size())
	byIndex := make(map[int64]*Node, g.Size())
	for _, n := range g.Nodes() {
		byIndex[int64(n.Index())] = n
	}
	bfs := traverse.BreadthFirst{
		Visit: func(n graph.Node) {
			seen[byIndex[n.ID()]] = true
		},
	}
	bfs.Walk(AsDirected(g), gonumNode{n: g.Entry()}, nil)
	return seen
}
