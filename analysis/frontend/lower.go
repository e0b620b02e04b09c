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

package frontend

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"strconv"
	"strings"

	"github.com/lbr77/Tai-e-assignments/analysis/ir"
	"github.com/lbr77/Tai-e-assignments/internal/funcutil"
)

// exprText renders a syntax node for diagnostics and unknown placeholders.
func exprText(n ast.Node) string {
	if e, ok := n.(ast.Expr); ok {
		return types.ExprString(e)
	}
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")
}

// lowerNode lowers one block element. Blocks hold statements, except that a
// block ending in a branch holds the bare condition expression as its last
// element; isBranch reports that case. A single syntax node may lower to
// several ir statements (e.g. tuple assignments).
func (b *builder) lowerNode(node ast.Node) (stmts []ir.Stmt, isBranch bool) {
	switch n := node.(type) {
	case *ast.AssignStmt:
		return b.lowerAssign(n), false
	case *ast.IncDecStmt:
		op := ir.Add
		if n.Tok == token.DEC {
			op = ir.Sub
		}
		if v := b.lhsVar(n.X); v != nil {
			return []ir.Stmt{&ir.AssignStmt{
				LHS: v,
				RHS: &ir.ArithmeticExp{Op: op, X: v, Y: &ir.IntLiteral{Value: 1}},
			}}, false
		}
		return []ir.Stmt{&ir.NopStmt{Text: exprText(n)}}, false
	case *ast.DeclStmt:
		return b.lowerDecl(n), false
	case *ast.ReturnStmt:
		var result ir.Exp
		if len(n.Results) == 1 {
			result = b.lowerExpr(n.Results[0])
		}
		return []ir.Stmt{&ir.ReturnStmt{Result: result}}, false
	case ast.Stmt:
		return []ir.Stmt{&ir.NopStmt{Text: exprText(n)}}, false
	case ast.Expr:
		// A bare expression in a block is a branch condition.
		return []ir.Stmt{&ir.IfStmt{Cond: b.lowerExpr(n)}}, true
	}
	return []ir.Stmt{&ir.NopStmt{}}, false
}

// lowerAssign handles =, := and the compound assignment operators. Tuple
// assignments define each variable from an unknown, since multi-value
// right-hand sides are not modeled.
func (b *builder) lowerAssign(n *ast.AssignStmt) []ir.Stmt {
	if len(n.Lhs) == 1 && len(n.Rhs) == 1 {
		v := b.lhsVar(n.Lhs[0])
		if v == nil {
			return []ir.Stmt{&ir.NopStmt{Text: exprText(n)}}
		}
		rhs := b.lowerExpr(n.Rhs[0])
		if op, ok := compoundOp(n.Tok); ok {
			rhs = compose(b.shiftOp(n.Lhs[0], op), v, rhs)
		}
		return []ir.Stmt{&ir.AssignStmt{LHS: v, RHS: rhs}}
	}
	var stmts []ir.Stmt
	for _, lhs := range n.Lhs {
		if v := b.lhsVar(lhs); v != nil {
			stmts = append(stmts, &ir.AssignStmt{LHS: v, RHS: &ir.UnknownExp{Text: exprText(n)}})
		}
	}
	if len(stmts) == 0 {
		stmts = append(stmts, &ir.NopStmt{Text: exprText(n)})
	}
	return stmts
}

func (b *builder) lowerDecl(n *ast.DeclStmt) []ir.Stmt {
	gen, ok := n.Decl.(*ast.GenDecl)
	if !ok || gen.Tok != token.VAR {
		return []ir.Stmt{&ir.NopStmt{Text: exprText(n)}}
	}
	var stmts []ir.Stmt
	for _, spec := range gen.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}
		for i, name := range vs.Names {
			tv, ok := b.file.Info.Defs[name].(*types.Var)
			if !ok {
				continue
			}
			v := b.varOf(tv)
			if i < len(vs.Values) {
				stmts = append(stmts, &ir.AssignStmt{LHS: v, RHS: b.lowerExpr(vs.Values[i])})
			}
		}
	}
	if len(stmts) == 0 {
		stmts = append(stmts, &ir.NopStmt{Text: exprText(n)})
	}
	return stmts
}

// lhsVar returns the ir variable for an assignable expression, or nil when
// the target is not a simple variable (field, index, deref, blank).
func (b *builder) lhsVar(e ast.Expr) *ir.Var {
	id, ok := e.(*ast.Ident)
	if !ok || id.Name == "_" {
		return nil
	}
	obj := b.file.Info.Defs[id]
	if obj == nil {
		obj = b.file.Info.Uses[id]
	}
	if tv, ok := obj.(*types.Var); ok {
		return b.varOf(tv)
	}
	return nil
}

// lowerExpr lowers a right-hand-side expression. Anything outside the
// modeled subset becomes an UnknownExp, which evaluates to NAC.
func (b *builder) lowerExpr(e ast.Expr) ir.Exp {
	switch x := e.(type) {
	case *ast.ParenExpr:
		return b.lowerExpr(x.X)
	case *ast.BasicLit:
		if x.Kind == token.INT {
			if c, err := strconv.ParseInt(x.Value, 0, 64); err == nil {
				return &ir.IntLiteral{Value: int32(c)}
			}
		}
		if x.Kind == token.CHAR {
			if c, _, _, err := strconv.UnquoteChar(x.Value[1:len(x.Value)-1], '\''); err == nil {
				return &ir.IntLiteral{Value: int32(c)}
			}
		}
		return &ir.UnknownExp{Text: exprText(x)}
	case *ast.Ident:
		switch obj := b.objectOf(x).(type) {
		case *types.Var:
			return b.varOf(obj)
		case *types.Const:
			if c, ok := constant.Int64Val(constant.ToInt(obj.Val())); ok {
				return &ir.IntLiteral{Value: int32(c)}
			}
			if obj.Val().Kind() == constant.Bool {
				if constant.BoolVal(obj.Val()) {
					return &ir.IntLiteral{Value: 1}
				}
				return &ir.IntLiteral{Value: 0}
			}
		}
		return &ir.UnknownExp{Text: x.Name}
	case *ast.BinaryExpr:
		return b.lowerBinary(x)
	case *ast.UnaryExpr:
		switch x.Op {
		case token.SUB:
			return &ir.NegExp{X: b.lowerExpr(x.X)}
		case token.ADD:
			return b.lowerExpr(x.X)
		}
		return &ir.UnknownExp{Text: exprText(x)}
	case *ast.CallExpr:
		if tv, ok := b.file.Info.Types[x.Fun]; ok && tv.IsType() && len(x.Args) == 1 {
			return &ir.CastExp{To: typeKind(tv.Type), X: b.lowerExpr(x.Args[0])}
		}
		return &ir.CallExp{Name: exprText(x.Fun), Args: funcutil.Map(x.Args, b.lowerExpr)}
	}
	return &ir.UnknownExp{Text: exprText(e)}
}

func (b *builder) lowerBinary(x *ast.BinaryExpr) ir.Exp {
	lhs := b.lowerExpr(x.X)
	rhs := b.lowerExpr(x.Y)
	if op, ok := compoundOp(x.Op); ok {
		return compose(b.shiftOp(x.X, op), lhs, rhs)
	}
	switch x.Op {
	case token.EQL:
		return &ir.ConditionExp{Op: ir.Eq, X: lhs, Y: rhs}
	case token.NEQ:
		return &ir.ConditionExp{Op: ir.Ne, X: lhs, Y: rhs}
	case token.LSS:
		return &ir.ConditionExp{Op: ir.Lt, X: lhs, Y: rhs}
	case token.GTR:
		return &ir.ConditionExp{Op: ir.Gt, X: lhs, Y: rhs}
	case token.LEQ:
		return &ir.ConditionExp{Op: ir.Le, X: lhs, Y: rhs}
	case token.GEQ:
		return &ir.ConditionExp{Op: ir.Ge, X: lhs, Y: rhs}
	}
	return &ir.UnknownExp{Text: exprText(x)}
}

// shiftOp turns an arithmetic right shift into a logical one when the
// shifted operand is unsigned, matching Go's semantics for >>.
func (b *builder) shiftOp(x ast.Expr, op any) any {
	if op != ir.Shr {
		return op
	}
	if tv, ok := b.file.Info.Types[x]; ok {
		if bt, ok := tv.Type.Underlying().(*types.Basic); ok && bt.Info()&types.IsUnsigned != 0 {
			return ir.UShr
		}
	}
	return op
}

// compoundOp maps an assignment or binary token onto the modeled operator
// kinds.
func compoundOp(tok token.Token) (any, bool) {
	switch tok {
	case token.ADD, token.ADD_ASSIGN:
		return ir.Add, true
	case token.SUB, token.SUB_ASSIGN:
		return ir.Sub, true
	case token.MUL, token.MUL_ASSIGN:
		return ir.Mul, true
	case token.QUO, token.QUO_ASSIGN:
		return ir.Div, true
	case token.REM, token.REM_ASSIGN:
		return ir.Rem, true
	case token.SHL, token.SHL_ASSIGN:
		return ir.Shl, true
	case token.SHR, token.SHR_ASSIGN:
		return ir.Shr, true
	case token.OR, token.OR_ASSIGN:
		return ir.Or, true
	case token.AND, token.AND_ASSIGN:
		return ir.And, true
	case token.XOR, token.XOR_ASSIGN:
		return ir.Xor, true
	}
	return nil, false
}

func compose(op any, x, y ir.Exp) ir.Exp {
	switch o := op.(type) {
	case ir.ArithOp:
		return &ir.ArithmeticExp{Op: o, X: x, Y: y}
	case ir.ShiftOp:
		return &ir.ShiftExp{Op: o, X: x, Y: y}
	case ir.BitOp:
		return &ir.BitwiseExp{Op: o, X: x, Y: y}
	}
	return &ir.UnknownExp{}
}

func (b *builder) objectOf(id *ast.Ident) types.Object {
	if obj := b.file.Info.Uses[id]; obj != nil {
		return obj
	}
	return b.file.Info.Defs[id]
}
