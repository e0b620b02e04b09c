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

package cfg_test

import (
	"testing"

	"github.com/lbr77/Tai-e-assignments/analysis/cfg"
	"github.com/lbr77/Tai-e-assignments/analysis/ir"
)

// diamond builds
//
//	entry -> cond -> thenS -> join -> exit
//	              \> elseS />
//
// and returns the graph together with the four statement nodes.
func diamond(t *testing.T) (*cfg.Graph, [4]*cfg.Node) {
	t.Helper()
	x := ir.NewVar("x", ir.Int)
	p := ir.NewVar("p", ir.Boolean)
	fn := &ir.IR{Name: "f", Params: []*ir.Var{p}}
	g := cfg.NewGraph(fn)
	cond := g.AddNode(&ir.IfStmt{Cond: p})
	thenS := g.AddNode(&ir.AssignStmt{LHS: x, RHS: &ir.IntLiteral{Value: 1}})
	elseS := g.AddNode(&ir.AssignStmt{LHS: x, RHS: &ir.IntLiteral{Value: 2}})
	join := g.AddNode(&ir.ReturnStmt{Result: x})
	g.AddEdge(cfg.FallThrough, g.Entry(), cond)
	g.AddEdge(cfg.IfTrue, cond, thenS)
	g.AddEdge(cfg.IfFalse, cond, elseS)
	g.AddEdge(cfg.Goto, thenS, join)
	g.AddEdge(cfg.Goto, elseS, join)
	g.AddEdge(cfg.Goto, join, g.Exit())
	return g, [4]*cfg.Node{cond, thenS, elseS, join}
}

func TestGraphShape(t *testing.T) {
	g, nodes := diamond(t)
	cond, thenS, elseS, join := nodes[0], nodes[1], nodes[2], nodes[3]

	if g.Size() != 6 {
		t.Errorf("Size() = %d, expected 6", g.Size())
	}
	if !g.IsEntry(g.Entry()) || !g.IsExit(g.Exit()) {
		t.Error("entry/exit nodes not recognized")
	}
	if g.IsEntry(cond) || g.IsExit(cond) {
		t.Error("statement node mistaken for a synthetic node")
	}
	all := g.Nodes()
	if all[0] != g.Entry() || all[1] != g.Exit() {
		t.Error("Nodes() must start with entry then exit")
	}
	if all[2] != cond || all[3] != thenS || all[4] != elseS || all[5] != join {
		t.Error("statement nodes not in insertion order")
	}
	for i, n := range all {
		if n.Index() != i {
			t.Errorf("node %s has index %d at position %d", n, n.Index(), i)
		}
	}

	if out := g.OutEdgesOf(cond); len(out) != 2 {
		t.Errorf("cond has %d out edges, expected 2", len(out))
	} else {
		if out[0].Kind() != cfg.IfTrue || out[0].Target() != thenS {
			t.Errorf("first out edge of cond is %s", out[0])
		}
		if out[1].Kind() != cfg.IfFalse || out[1].Target() != elseS {
			t.Errorf("second out edge of cond is %s", out[1])
		}
	}
	if in := g.InEdgesOf(join); len(in) != 2 {
		t.Errorf("join has %d in edges, expected 2", len(in))
	}
	if in := g.InEdgesOf(g.Entry()); len(in) != 0 {
		t.Errorf("entry has %d in edges, expected 0", len(in))
	}
	if out := g.OutEdgesOf(g.Exit()); len(out) != 0 {
		t.Errorf("exit has %d out edges, expected 0", len(out))
	}
}

func TestNodeString(t *testing.T) {
	g, nodes := diamond(t)
	if s := g.Entry().String(); s != "entry" {
		t.Errorf("entry String() = %q", s)
	}
	if s := g.Exit().String(); s != "exit" {
		t.Errorf("exit String() = %q", s)
	}
	if s := nodes[1].String(); s != "3: x = 1" {
		t.Errorf("assign node String() = %q", s)
	}
}

func TestDirectedAdapter(t *testing.T) {
	g, nodes := diamond(t)
	cond, thenS, elseS := nodes[0], nodes[1], nodes[2]
	d := cfg.AsDirected(g)

	if d.Node(int64(cond.Index())) == nil {
		t.Fatal("Node() did not find cond")
	}
	if d.Node(99) != nil {
		t.Error("Node() returned a node for an unknown id")
	}
	if n := d.Nodes().Len(); n != g.Size() {
		t.Errorf("Nodes().Len() = %d, expected %d", n, g.Size())
	}
	if n := d.From(int64(cond.Index())).Len(); n != 2 {
		t.Errorf("From(cond).Len() = %d, expected 2", n)
	}
	if n := d.To(int64(nodes[3].Index())).Len(); n != 2 {
		t.Errorf("To(join).Len() = %d, expected 2", n)
	}
	if !d.HasEdgeFromTo(int64(cond.Index()), int64(thenS.Index())) {
		t.Error("missing edge cond -> then")
	}
	if d.HasEdgeFromTo(int64(thenS.Index()), int64(cond.Index())) {
		t.Error("reported reversed edge then -> cond")
	}
	if !d.HasEdgeBetween(int64(thenS.Index()), int64(cond.Index())) {
		t.Error("HasEdgeBetween must ignore direction")
	}
	if e := d.Edge(int64(cond.Index()), int64(elseS.Index())); e == nil {
		t.Error("Edge(cond, else) = nil")
	} else if e.From().ID() != int64(cond.Index()) || e.To().ID() != int64(elseS.Index()) {
		t.Errorf("Edge(cond, else) has endpoints %d -> %d", e.From().ID(), e.To().ID())
	}
}

func TestReachable(t *testing.T) {
	g, nodes := diamond(t)
	dead := g.AddNode(&ir.NopStmt{Text: "dead"})
	g.AddEdge(cfg.Goto, dead, g.Exit())

	reach := cfg.Reachable(g)
	for _, n := range nodes {
		if !reach[n] {
			t.Errorf("%s should be reachable", n)
		}
	}
	if !reach[g.Entry()] || !reach[g.Exit()] {
		t.Error("entry and exit should be reachable")
	}
	if reach[dead] {
		t.Error("node with no in edges reported reachable")
	}
}

func TestHasLoops(t *testing.T) {
	g, _ := diamond(t)
	if cfg.HasLoops(g) {
		t.Error("acyclic diamond reported as loopy")
	}

	x := ir.NewVar("x", ir.Int)
	fn := &ir.IR{Name: "g"}
	loopy := cfg.NewGraph(fn)
	head := loopy.AddNode(&ir.IfStmt{Cond: x})
	body := loopy.AddNode(&ir.AssignStmt{LHS: x, RHS: &ir.IntLiteral{Value: 0}})
	loopy.AddEdge(cfg.FallThrough, loopy.Entry(), head)
	loopy.AddEdge(cfg.IfTrue, head, body)
	loopy.AddEdge(cfg.Goto, body, head)
	loopy.AddEdge(cfg.IfFalse, head, loopy.Exit())
	if !cfg.HasLoops(loopy) {
		t.Error("back edge not detected")
	}

	self := cfg.NewGraph(fn)
	n := self.AddNode(&ir.NopStmt{Text: "spin"})
	self.AddEdge(cfg.FallThrough, self.Entry(), n)
	self.AddEdge(cfg.Goto, n, n)
	if !cfg.HasLoops(self) {
		t.Error("self loop not detected")
	}
}
