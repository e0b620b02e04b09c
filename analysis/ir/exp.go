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

package ir

import (
	"fmt"
	"strings"
)

// An Exp is a right-hand-side expression. The set of implementations is
// closed: IntLiteral, Var, the four binary kinds, NegExp, CastExp, CallExp
// and UnknownExp. Analyses switch over these kinds and treat anything they
// do not model conservatively.
type Exp interface {
	fmt.Stringer
	isExp()
}

// A BinaryExp is an expression with two operands. All four binary kinds
// implement it so that analyses can fetch operands without enumerating kinds.
type BinaryExp interface {
	Exp
	Operands() (Exp, Exp)
}

// An IntLiteral is a 32-bit integer constant.
type IntLiteral struct {
	Value int32
}

func (e *IntLiteral) isExp()         {}
func (e *IntLiteral) String() string { return fmt.Sprintf("%d", e.Value) }

// ArithOp is an arithmetic operator.
type ArithOp int

const (
	Add ArithOp = iota
	Sub
	Mul
	Div
	Rem
)

func (op ArithOp) String() string { return [...]string{"+", "-", "*", "/", "%"}[op] }

// An ArithmeticExp applies an arithmetic operator to two operands.
type ArithmeticExp struct {
	Op   ArithOp
	X, Y Exp
}

func (e *ArithmeticExp) isExp()               {}
func (e *ArithmeticExp) Operands() (Exp, Exp) { return e.X, e.Y }
func (e *ArithmeticExp) String() string       { return binString(e.X, e.Op.String(), e.Y) }

// CondOp is a comparison operator.
type CondOp int

const (
	Eq CondOp = iota
	Ne
	Lt
	Gt
	Le
	Ge
)

func (op CondOp) String() string { return [...]string{"==", "!=", "<", ">", "<=", ">="}[op] }

// A ConditionExp compares two operands, producing 1 for true and 0 for false.
type ConditionExp struct {
	Op   CondOp
	X, Y Exp
}

func (e *ConditionExp) isExp()               {}
func (e *ConditionExp) Operands() (Exp, Exp) { return e.X, e.Y }
func (e *ConditionExp) String() string       { return binString(e.X, e.Op.String(), e.Y) }

// ShiftOp is a shift operator. Shr is the arithmetic right shift, UShr the
// logical (zero-filling) one.
type ShiftOp int

const (
	Shl ShiftOp = iota
	Shr
	UShr
)

func (op ShiftOp) String() string { return [...]string{"<<", ">>", ">>>"}[op] }

// A ShiftExp shifts its first operand by the second.
type ShiftExp struct {
	Op   ShiftOp
	X, Y Exp
}

func (e *ShiftExp) isExp()               {}
func (e *ShiftExp) Operands() (Exp, Exp) { return e.X, e.Y }
func (e *ShiftExp) String() string       { return binString(e.X, e.Op.String(), e.Y) }

// BitOp is a bitwise operator.
type BitOp int

const (
	Or BitOp = iota
	And
	Xor
)

func (op BitOp) String() string { return [...]string{"|", "&", "^"}[op] }

// A BitwiseExp applies a bitwise operator to two operands.
type BitwiseExp struct {
	Op   BitOp
	X, Y Exp
}

func (e *BitwiseExp) isExp()               {}
func (e *BitwiseExp) Operands() (Exp, Exp) { return e.X, e.Y }
func (e *BitwiseExp) String() string       { return binString(e.X, e.Op.String(), e.Y) }

// A NegExp is the arithmetic negation of its operand.
type NegExp struct {
	X Exp
}

func (e *NegExp) isExp()         {}
func (e *NegExp) String() string { return "-" + e.X.String() }

// A CastExp converts its operand to another scalar type. The conversion is
// treated as value-preserving by the analyses.
type CastExp struct {
	To Type
	X  Exp
}

func (e *CastExp) isExp()         {}
func (e *CastExp) String() string { return fmt.Sprintf("(%s) %s", e.To, e.X) }

// A CallExp is a function call. Its result is never modeled.
type CallExp struct {
	Name string
	Args []Exp
}

func (e *CallExp) isExp() {}

func (e *CallExp) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Name, strings.Join(args, ", "))
}

// An UnknownExp stands for any source expression the frontend does not lower.
type UnknownExp struct {
	Text string
}

func (e *UnknownExp) isExp()         {}
func (e *UnknownExp) String() string { return e.Text }

func binString(x Exp, op string, y Exp) string {
	return fmt.Sprintf("%s %s %s", x, op, y)
}
