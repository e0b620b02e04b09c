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

// Package constprop implements constant propagation on the dataflow engine:
// a forward analysis over the flat Undef/Constant/NAC lattice that tracks
// 32-bit scalar variables through arithmetic, comparisons, shifts, bitwise
// operations, negation and casts.
package constprop

import (
	"github.com/lbr77/Tai-e-assignments/analysis/cfg"
	"github.com/lbr77/Tai-e-assignments/analysis/dataflow"
	"github.com/lbr77/Tai-e-assignments/analysis/ir"
	"github.com/lbr77/Tai-e-assignments/internal/funcutil"
)

// ConstantPropagation is the constant-propagation analysis. It is stateless:
// one instance can drive any number of solves.
type ConstantPropagation struct{}

// New returns the constant-propagation analysis.
func New() *ConstantPropagation { return &ConstantPropagation{} }

// IsForward reports that constant propagation is a forward analysis.
func (*ConstantPropagation) IsForward() bool { return true }

// NewBoundaryFact returns the entry fact: every parameter and the receiver
// whose type can hold an int is NAC, since their values are unknown at entry.
// Everything else stays Undef.
func (*ConstantPropagation) NewBoundaryFact(g dataflow.Graph[*cfg.Node, *cfg.Edge]) CPFact {
	fact := NewFact()
	fn := g.(interface{ IR() *ir.IR }).IR()
	if fn.This != nil && CanHoldInt(fn.This) {
		fact.Update(fn.This, NAC())
	}
	for _, param := range fn.Params {
		if CanHoldInt(param) {
			fact.Update(param, NAC())
		}
	}
	return fact
}

// NewInitialFact returns the empty fact, in which every variable is Undef.
func (*ConstantPropagation) NewInitialFact() CPFact { return NewFact() }

// MeetInto meets fact into target, in place, over the union of their keys.
// Variables absent from one side are Undef there, so they keep the other
// side's value.
func (*ConstantPropagation) MeetInto(fact, target CPFact) {
	funcutil.Merge(target, fact, MeetValue)
}

// TransferNode computes the OUT fact of node from its IN fact: OUT is a copy
// of IN, except that a statement defining an int-holding variable overwrites
// that variable with the evaluated right-hand side. It reports whether OUT
// changed.
func (*ConstantPropagation) TransferNode(node *cfg.Node, in, out CPFact) bool {
	oldOut := out.Copy()
	out.CopyFrom(in)
	if def, ok := node.Stmt().(ir.DefinitionStmt); ok {
		if v, defined := def.Def(); defined && CanHoldInt(v) {
			out.Update(v, Evaluate(def.RValue(), in))
		}
	}
	return !oldOut.Equals(out)
}

// NeedTransferEdge reports that constant propagation transforms no edges.
func (*ConstantPropagation) NeedTransferEdge(*cfg.Edge) bool { return false }

// TransferEdge passes the fact through unchanged; it is never reached since
// NeedTransferEdge is always false.
func (*ConstantPropagation) TransferEdge(_ *cfg.Edge, fact CPFact) CPFact { return fact }

// CanHoldInt reports whether the declared type of v can hold an
// integer-representable value. Only such variables are tracked; long, the
// floating-point types and references are excluded.
func CanHoldInt(v *ir.Var) bool {
	switch v.Type() {
	case ir.Byte, ir.Short, ir.Int, ir.Char, ir.Boolean:
		return true
	}
	return false
}

// Evaluate computes the abstract value of exp under the fact in.
func Evaluate(exp ir.Exp, in CPFact) Value {
	switch e := exp.(type) {
	case *ir.IntLiteral:
		return MakeConstant(e.Value)
	case *ir.Var:
		return in.Get(e)
	case ir.BinaryExp:
		return evaluateBinary(e, in)
	case *ir.NegExp:
		v := Evaluate(e.X, in)
		if !v.IsConstant() {
			return v
		}
		return MakeConstant(-v.Constant())
	case *ir.CastExp:
		// Casts between tracked scalar types are treated as value-preserving;
		// truncation is not modeled.
		v := Evaluate(e.X, in)
		if !v.IsConstant() {
			return v
		}
		return MakeConstant(v.Constant())
	}
	return NAC()
}

func evaluateBinary(exp ir.BinaryExp, in CPFact) Value {
	x, y := exp.Operands()
	v1 := Evaluate(x, in)
	v2 := Evaluate(y, in)
	if a, ok := exp.(*ir.ArithmeticExp); ok && (a.Op == ir.Div || a.Op == ir.Rem) &&
		v2.IsConstant() && v2.Constant() == 0 {
		// A constant-zero divisor faults at run time, so normal completion
		// never reaches the definition: the result is Undef, not NAC.
		return Undef()
	}
	if v1.IsNAC() || v2.IsNAC() {
		return NAC()
	}
	if v1.IsUndef() || v2.IsUndef() {
		return Undef()
	}
	c1, c2 := v1.Constant(), v2.Constant()
	switch e := exp.(type) {
	case *ir.ArithmeticExp:
		switch e.Op {
		case ir.Add:
			return MakeConstant(c1 + c2)
		case ir.Sub:
			return MakeConstant(c1 - c2)
		case ir.Mul:
			return MakeConstant(c1 * c2)
		case ir.Div:
			return MakeConstant(c1 / c2)
		case ir.Rem:
			return MakeConstant(c1 % c2)
		}
	case *ir.ConditionExp:
		var holds bool
		switch e.Op {
		case ir.Eq:
			holds = c1 == c2
		case ir.Ne:
			holds = c1 != c2
		case ir.Lt:
			holds = c1 < c2
		case ir.Gt:
			holds = c1 > c2
		case ir.Le:
			holds = c1 <= c2
		case ir.Ge:
			holds = c1 >= c2
		}
		if holds {
			return MakeConstant(1)
		}
		return MakeConstant(0)
	case *ir.ShiftExp:
		// 32-bit shift semantics: the shift amount is masked to five bits.
		s := uint32(c2) & 31
		switch e.Op {
		case ir.Shl:
			return MakeConstant(c1 << s)
		case ir.Shr:
			return MakeConstant(c1 >> s)
		case ir.UShr:
			return MakeConstant(int32(uint32(c1) >> s))
		}
	case *ir.BitwiseExp:
		switch e.Op {
		case ir.Or:
			return MakeConstant(c1 | c2)
		case ir.And:
			return MakeConstant(c1 & c2)
		case ir.Xor:
			return MakeConstant(c1 ^ c2)
		}
	}
	return NAC()
}
