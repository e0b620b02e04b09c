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

package frontend_test

import (
	"path/filepath"
	"regexp"
	"testing"

	"github.com/lbr77/Tai-e-assignments/analysis/cfg"
	"github.com/lbr77/Tai-e-assignments/analysis/config"
	"github.com/lbr77/Tai-e-assignments/analysis/dataflow"
	"github.com/lbr77/Tai-e-assignments/analysis/dataflow/constprop"
	"github.com/lbr77/Tai-e-assignments/analysis/frontend"
	"github.com/lbr77/Tai-e-assignments/analysis/ir"
)

func loadSample(t *testing.T) *frontend.File {
	t.Helper()
	logger := config.NewLogGroup(config.NewDefault())
	file, err := frontend.LoadFile(filepath.Join("testdata", "sample.go"), logger)
	if err != nil {
		t.Fatalf("LoadFile: %s", err)
	}
	return file
}

// buildNamed lowers the function with the given name from the sample file.
func buildNamed(t *testing.T, file *frontend.File, name string) *frontend.Function {
	t.Helper()
	decls := file.Functions(regexp.MustCompile("^" + name + "$"))
	if len(decls) != 1 {
		t.Fatalf("found %d declarations named %s", len(decls), name)
	}
	fn, err := frontend.BuildFunction(file, decls[0])
	if err != nil {
		t.Fatalf("BuildFunction(%s): %s", name, err)
	}
	return fn
}

// returnNode finds the unique return node of the lowered function.
func returnNode(t *testing.T, fn *frontend.Function) *cfg.Node {
	t.Helper()
	var ret *cfg.Node
	for _, n := range fn.Graph.Nodes() {
		if _, ok := n.Stmt().(*ir.ReturnStmt); ok {
			if ret != nil {
				t.Fatal("function has more than one return node")
			}
			ret = n
		}
	}
	if ret == nil {
		t.Fatal("function has no return node")
	}
	return ret
}

// varNamed finds the ir variable with the given source name among the
// function's definitions and parameters.
func varNamed(t *testing.T, fn *frontend.Function, name string) *ir.Var {
	t.Helper()
	if fn.IR.This != nil && fn.IR.This.Name() == name {
		return fn.IR.This
	}
	for _, p := range fn.IR.Params {
		if p.Name() == name {
			return p
		}
	}
	for _, n := range fn.Graph.Nodes() {
		if n.Stmt() == nil {
			continue
		}
		if v, ok := n.Stmt().Def(); ok && v.Name() == name {
			return v
		}
	}
	t.Fatalf("no variable named %s", name)
	return nil
}

func solve(fn *frontend.Function) *dataflow.Result[*cfg.Node, constprop.CPFact] {
	solver := dataflow.NewSolver[*cfg.Node, *cfg.Edge, constprop.CPFact](constprop.New())
	return solver.Solve(fn.Graph)
}

func TestFunctionsFilter(t *testing.T) {
	file := loadSample(t)
	if got := len(file.Functions(nil)); got != 7 {
		t.Errorf("Functions(nil) returned %d declarations, expected 7 with a body", got)
	}
	decls := file.Functions(regexp.MustCompile("^branchy$"))
	if len(decls) != 1 || decls[0].Name.Name != "branchy" {
		t.Errorf("filter ^branchy$ returned %v", decls)
	}
}

func TestStraightLineFunction(t *testing.T) {
	file := loadSample(t)
	fn := buildNamed(t, file, "constants")
	result := solve(fn)

	in := result.InFact(returnNode(t, fn))
	c := varNamed(t, fn, "c")
	if got := in.Get(c); !got.IsConstant() || got.Constant() != 3 {
		t.Errorf("c is %s before the return, expected 3", got)
	}
}

func TestBranchJoin(t *testing.T) {
	file := loadSample(t)
	fn := buildNamed(t, file, "branchy")
	result := solve(fn)

	in := result.InFact(returnNode(t, fn))
	x := varNamed(t, fn, "x")
	if got := in.Get(x); !got.IsNAC() {
		t.Errorf("x is %s after the join, expected NAC", got)
	}
}

func TestLongNotTracked(t *testing.T) {
	file := loadSample(t)
	fn := buildNamed(t, file, "wide")
	result := solve(fn)

	m := varNamed(t, fn, "m")
	if m.Type() != ir.Long {
		t.Fatalf("m lowered to %s, expected long", m.Type())
	}
	if got := result.InFact(returnNode(t, fn)).Get(m); !got.IsUndef() {
		t.Errorf("m is %s, expected Undef since long is not tracked", got)
	}
}

func TestUnsignedShiftLowersToLogical(t *testing.T) {
	file := loadSample(t)
	fn := buildNamed(t, file, "shifty")

	var shift *ir.ShiftExp
	for _, n := range fn.Graph.Nodes() {
		if def, ok := n.Stmt().(ir.DefinitionStmt); ok {
			if s, ok := def.RValue().(*ir.ShiftExp); ok {
				shift = s
			}
		}
	}
	if shift == nil {
		t.Fatal("no shift expression lowered")
	}
	if shift.Op != ir.UShr {
		t.Errorf("shift of an unsigned operand lowered to %v, expected logical shift", shift.Op)
	}
}

func TestReceiverSeededUnknown(t *testing.T) {
	file := loadSample(t)
	fn := buildNamed(t, file, "bump")
	if fn.IR.This == nil {
		t.Fatal("method receiver not lowered")
	}
	result := solve(fn)

	e := varNamed(t, fn, "e")
	if got := result.InFact(returnNode(t, fn)).Get(e); !got.IsNAC() {
		t.Errorf("e is %s, expected NAC since it depends on the receiver", got)
	}
}

// TestCallLowersConservatively checks that a call's result is never modeled:
// the arguments lower, the value is NAC.
func TestCallLowersConservatively(t *testing.T) {
	file := loadSample(t)
	fn := buildNamed(t, file, "caller")

	var call *ir.CallExp
	for _, n := range fn.Graph.Nodes() {
		if def, ok := n.Stmt().(ir.DefinitionStmt); ok {
			if c, ok := def.RValue().(*ir.CallExp); ok {
				call = c
			}
		}
	}
	if call == nil {
		t.Fatal("no call expression lowered")
	}
	if len(call.Args) != 2 {
		t.Fatalf("call lowered with %d arguments, expected 2", len(call.Args))
	}

	result := solve(fn)
	r := varNamed(t, fn, "r")
	if got := result.InFact(returnNode(t, fn)).Get(r); !got.IsNAC() {
		t.Errorf("r is %s, expected NAC", got)
	}
}

func TestOriginMapsBackToSyntax(t *testing.T) {
	file := loadSample(t)
	fn := buildNamed(t, file, "constants")

	if fn.Origin(fn.Graph.Entry()) != nil {
		t.Error("synthetic entry has a syntax origin")
	}
	ret := returnNode(t, fn)
	if fn.Origin(ret) == nil {
		t.Error("return node has no syntax origin")
	}
}
