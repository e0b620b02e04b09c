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

// Package refactor rewrites analyzed sources from constant-propagation
// results: assignments whose value is proven constant get their right-hand
// side replaced with the constant literal. Comments and formatting are
// preserved through the dst decorator.
package refactor

import (
	"bytes"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"strconv"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"github.com/lbr77/Tai-e-assignments/analysis/cfg"
	"github.com/lbr77/Tai-e-assignments/analysis/dataflow"
	"github.com/lbr77/Tai-e-assignments/analysis/dataflow/constprop"
	"github.com/lbr77/Tai-e-assignments/analysis/frontend"
	"github.com/lbr77/Tai-e-assignments/analysis/ir"
)

// A Folder accumulates constant-folding rewrites for one source file.
type Folder struct {
	dec   *decorator.Decorator
	df    *dst.File
	info  *types.Info
	folds int
}

// NewFolder returns a folder for the given file.
func NewFolder(file *frontend.File) (*Folder, error) {
	dec := decorator.NewDecorator(file.Fset)
	df, err := dec.DecorateFile(file.File)
	if err != nil {
		return nil, err
	}
	return &Folder{dec: dec, df: df, info: file.Info}, nil
}

// FoldConstants rewrites the assignments of fn whose defined variable has a
// constant OUT value, and returns the number of rewrites. Only plain single
// assignments are rewritten; compound assignments and declarations are left
// alone. A rewrite must preserve behavior, and the model evaluates with
// 32-bit arithmetic while the program may not: each candidate is re-evaluated
// exactly, and assignments whose exact value disagrees with the model (for
// example a shift the model masked, or a product it wrapped) are reported but
// never rewritten.
func (f *Folder) FoldConstants(fn *frontend.Function,
	result *dataflow.Result[*cfg.Node, constprop.CPFact]) int {
	folds := 0
	for _, node := range fn.Graph.Nodes() {
		assign, ok := node.Stmt().(*ir.AssignStmt)
		if !ok {
			continue
		}
		if _, isLit := assign.RHS.(*ir.IntLiteral); isLit {
			continue
		}
		value := result.OutFact(node).Get(assign.LHS)
		if !value.IsConstant() {
			continue
		}
		origin, ok := fn.Origin(node).(*ast.AssignStmt)
		if !ok || len(origin.Rhs) != 1 {
			continue
		}
		if origin.Tok != token.ASSIGN && origin.Tok != token.DEFINE {
			continue
		}
		exact, ok := f.exactValue(fn, origin.Rhs[0], result.InFact(node))
		if !ok || !agrees(exact, value) {
			continue
		}
		target, ok := f.dec.Dst.Nodes[origin].(*dst.AssignStmt)
		if !ok {
			continue
		}
		target.Rhs[0] = constantExpr(assign.LHS, value)
		folds++
	}
	f.folds += folds
	return folds
}

// exactValue evaluates e with arbitrary-precision arithmetic, taking variable
// values from the IN fact and literal and named-constant values from the type
// checker. Results are normalized to Int kind, booleans as 0 or 1, matching
// the model's domain. It reports false for anything it cannot evaluate
// exactly, such as conversions; such assignments stay unfolded.
func (f *Folder) exactValue(fn *frontend.Function, e ast.Expr, in constprop.CPFact) (constant.Value, bool) {
	if tv, ok := f.info.Types[e]; ok && tv.Value != nil {
		return asInt(tv.Value)
	}
	switch x := e.(type) {
	case *ast.ParenExpr:
		return f.exactValue(fn, x.X, in)
	case *ast.Ident:
		obj := f.info.Uses[x]
		if obj == nil {
			obj = f.info.Defs[x]
		}
		tv, ok := obj.(*types.Var)
		if !ok {
			return nil, false
		}
		v := fn.VarOf(tv)
		if v == nil {
			return nil, false
		}
		val := in.Get(v)
		if !val.IsConstant() {
			return nil, false
		}
		return constant.MakeInt64(int64(val.Constant())), true
	case *ast.UnaryExpr:
		y, ok := f.exactValue(fn, x.X, in)
		if !ok {
			return nil, false
		}
		switch x.Op {
		case token.ADD:
			return y, true
		case token.SUB:
			return constant.UnaryOp(token.SUB, y, 0), true
		}
		return nil, false
	case *ast.BinaryExpr:
		return f.exactBinary(fn, x, in)
	}
	return nil, false
}

func (f *Folder) exactBinary(fn *frontend.Function, x *ast.BinaryExpr, in constprop.CPFact) (constant.Value, bool) {
	lhs, ok := f.exactValue(fn, x.X, in)
	if !ok {
		return nil, false
	}
	rhs, ok := f.exactValue(fn, x.Y, in)
	if !ok {
		return nil, false
	}
	switch x.Op {
	case token.EQL, token.NEQ, token.LSS, token.GTR, token.LEQ, token.GEQ:
		if constant.Compare(lhs, x.Op, rhs) {
			return constant.MakeInt64(1), true
		}
		return constant.MakeInt64(0), true
	case token.SHL, token.SHR:
		s, ok := constant.Int64Val(rhs)
		if !ok || s < 0 {
			return nil, false
		}
		return constant.Shift(lhs, x.Op, uint(s)), true
	case token.QUO:
		if constant.Sign(rhs) == 0 {
			return nil, false
		}
		// QUO_ASSIGN forces integer division on Int operands.
		return constant.BinaryOp(lhs, token.QUO_ASSIGN, rhs), true
	case token.REM:
		if constant.Sign(rhs) == 0 {
			return nil, false
		}
		return constant.BinaryOp(lhs, token.REM, rhs), true
	case token.ADD, token.SUB, token.MUL, token.AND, token.OR, token.XOR:
		return constant.BinaryOp(lhs, x.Op, rhs), true
	}
	return nil, false
}

// asInt normalizes a type-checker constant to Int kind. Kinds outside the
// model's domain report false.
func asInt(v constant.Value) (constant.Value, bool) {
	switch v.Kind() {
	case constant.Int:
		return v, true
	case constant.Bool:
		if constant.BoolVal(v) {
			return constant.MakeInt64(1), true
		}
		return constant.MakeInt64(0), true
	}
	return nil, false
}

// agrees reports whether the exact value and the model value denote the same
// constant.
func agrees(exact constant.Value, value constprop.Value) bool {
	c, ok := constant.Int64Val(exact)
	return ok && c == int64(value.Constant())
}

// Folds returns the total number of rewrites recorded by this folder.
func (f *Folder) Folds() int { return f.folds }

// Bytes renders the rewritten source file.
func (f *Folder) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := decorator.NewRestorer().Fprint(&buf, f.df); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// constantExpr renders a lattice constant as source syntax, using true/false
// for boolean variables.
func constantExpr(v *ir.Var, value constprop.Value) dst.Expr {
	c := value.Constant()
	if v.Type() == ir.Boolean {
		if c != 0 {
			return dst.NewIdent("true")
		}
		return dst.NewIdent("false")
	}
	if c < 0 {
		return &dst.UnaryExpr{
			Op: token.SUB,
			X:  &dst.BasicLit{Kind: token.INT, Value: strconv.FormatInt(-int64(c), 10)},
		}
	}
	return &dst.BasicLit{Kind: token.INT, Value: strconv.FormatInt(int64(c), 10)}
}
