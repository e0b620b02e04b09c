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

package dataflow_test

import (
	"testing"

	"github.com/lbr77/Tai-e-assignments/analysis/cfg"
	"github.com/lbr77/Tai-e-assignments/analysis/dataflow"
	"github.com/lbr77/Tai-e-assignments/analysis/dataflow/constprop"
	"github.com/lbr77/Tai-e-assignments/analysis/ir"
	"github.com/lbr77/Tai-e-assignments/internal/funcutil"
)

// TestForwardLoopConverges runs constant propagation over a loop that
// increments a variable: the loop head must stabilize at NAC and the solve
// must terminate.
func TestForwardLoopConverges(t *testing.T) {
	p := ir.NewVar("p", ir.Int)
	x := ir.NewVar("x", ir.Int)
	fn := &ir.IR{Name: "f", Params: []*ir.Var{p}}

	g := cfg.NewGraph(fn)
	init := g.AddNode(&ir.AssignStmt{LHS: x, RHS: &ir.IntLiteral{Value: 0}})
	head := g.AddNode(&ir.IfStmt{Cond: &ir.ConditionExp{Op: ir.Lt, X: x, Y: p}})
	body := g.AddNode(&ir.AssignStmt{LHS: x, RHS: &ir.ArithmeticExp{Op: ir.Add, X: x, Y: &ir.IntLiteral{Value: 1}}})
	after := g.AddNode(&ir.NopStmt{})
	g.AddEdge(cfg.FallThrough, g.Entry(), init)
	g.AddEdge(cfg.FallThrough, init, head)
	g.AddEdge(cfg.IfTrue, head, body)
	g.AddEdge(cfg.IfFalse, head, after)
	g.AddEdge(cfg.Goto, body, head)
	g.AddEdge(cfg.Goto, after, g.Exit())

	solver := dataflow.NewSolver[*cfg.Node, *cfg.Edge, constprop.CPFact](constprop.New())
	result := solver.Solve(g)

	if got := result.InFact(head).Get(x); !got.IsNAC() {
		t.Errorf("IN[head] maps x to %s, expected NAC", got)
	}
	if got := result.OutFact(init).Get(x); !got.IsConstant() || got.Constant() != 0 {
		t.Errorf("OUT[init] maps x to %s, expected 0", got)
	}
}

// liveFact is the live-variable set used by the backward test analysis.
type liveFact map[*ir.Var]bool

func (f liveFact) Equals(other liveFact) bool {
	if len(f) != len(other) {
		return false
	}
	for v := range f {
		if !other[v] {
			return false
		}
	}
	return true
}

// liveness is a minimal live-variables analysis exercising the backward
// solver: a variable is live when a path to a use avoids redefinition.
type liveness struct{}

func (liveness) IsForward() bool { return false }

func (liveness) NewBoundaryFact(dataflow.Graph[*cfg.Node, *cfg.Edge]) liveFact { return liveFact{} }

func (liveness) NewInitialFact() liveFact { return liveFact{} }

func (liveness) MeetInto(fact, target liveFact) { funcutil.Union(target, fact) }

// TransferNode receives the OUT fact first and updates the IN fact, per the
// backward solver's calling convention.
func (liveness) TransferNode(node *cfg.Node, out, in liveFact) bool {
	newIn := liveFact{}
	funcutil.Union(newIn, out)
	stmt := node.Stmt()
	if stmt == nil {
		changed := !newIn.Equals(in)
		replace(in, newIn)
		return changed
	}
	if v, ok := stmt.Def(); ok {
		delete(newIn, v)
	}
	switch s := stmt.(type) {
	case *ir.AssignStmt:
		addUses(newIn, s.RHS)
	case *ir.IfStmt:
		addUses(newIn, s.Cond)
	case *ir.ReturnStmt:
		if s.Result != nil {
			addUses(newIn, s.Result)
		}
	}
	changed := !newIn.Equals(in)
	replace(in, newIn)
	return changed
}

func (liveness) NeedTransferEdge(*cfg.Edge) bool { return false }

func (liveness) TransferEdge(_ *cfg.Edge, fact liveFact) liveFact { return fact }

func replace(dst, src liveFact) {
	for v := range dst {
		delete(dst, v)
	}
	funcutil.Union(dst, src)
}

func addUses(f liveFact, exp ir.Exp) {
	switch e := exp.(type) {
	case *ir.Var:
		f[e] = true
	case ir.BinaryExp:
		x, y := e.Operands()
		addUses(f, x)
		addUses(f, y)
	case *ir.NegExp:
		addUses(f, e.X)
	case *ir.CastExp:
		addUses(f, e.X)
	case *ir.CallExp:
		for _, a := range e.Args {
			addUses(f, a)
		}
	}
}

func TestBackwardLiveness(t *testing.T) {
	p := ir.NewVar("p", ir.Int)
	a := ir.NewVar("a", ir.Int)
	b := ir.NewVar("b", ir.Int)
	fn := &ir.IR{Name: "f", Params: []*ir.Var{p}}

	g := cfg.NewGraph(fn)
	defA := g.AddNode(&ir.AssignStmt{LHS: a, RHS: &ir.IntLiteral{Value: 1}})
	defB := g.AddNode(&ir.AssignStmt{LHS: b, RHS: &ir.ArithmeticExp{Op: ir.Add, X: a, Y: p}})
	ret := g.AddNode(&ir.ReturnStmt{Result: b})
	g.AddEdge(cfg.FallThrough, g.Entry(), defA)
	g.AddEdge(cfg.FallThrough, defA, defB)
	g.AddEdge(cfg.FallThrough, defB, ret)
	g.AddEdge(cfg.Goto, ret, g.Exit())

	solver := dataflow.NewSolver[*cfg.Node, *cfg.Edge, liveFact](liveness{})
	result := solver.Solve(g)

	tests := []struct {
		name string
		node *cfg.Node
		live []*ir.Var
	}{
		{"before-defA", defA, []*ir.Var{p}},
		{"before-defB", defB, []*ir.Var{a, p}},
		{"before-ret", ret, []*ir.Var{b}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			in := result.InFact(test.node)
			if len(in) != len(test.live) {
				t.Fatalf("IN[%s] = %v, expected exactly %v", test.node, in, test.live)
			}
			for _, v := range test.live {
				if !in[v] {
					t.Errorf("IN[%s] does not contain %s", test.node, v)
				}
			}
		})
	}
}
