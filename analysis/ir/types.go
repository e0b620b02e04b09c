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

// Package ir defines the minimal program representation consumed by the dataflow
// analyses: variables with declared types, a closed set of expression kinds, and
// statements. The representation is deliberately small; analyses only query it
// through the Stmt and Exp interfaces.
package ir

// A Type is the declared type of a variable. Only the kind matters to the
// analyses; scalar kinds that fit in a 32-bit integer are tracked by constant
// propagation, everything else is ignored.
type Type int

const (
	// Byte is an 8-bit signed integer type.
	Byte Type = iota
	// Short is a 16-bit signed integer type.
	Short
	// Int is a 32-bit signed integer type.
	Int
	// Char is a 16-bit unsigned integer type.
	Char
	// Boolean is the boolean type, represented as 0 or 1.
	Boolean
	// Long is a 64-bit integer type. Not tracked by constant propagation.
	Long
	// Float is a 32-bit floating point type.
	Float
	// Double is a 64-bit floating point type.
	Double
	// Reference covers all non-scalar types.
	Reference
)

func (t Type) String() string {
	switch t {
	case Byte:
		return "byte"
	case Short:
		return "short"
	case Int:
		return "int"
	case Char:
		return "char"
	case Boolean:
		return "boolean"
	case Long:
		return "long"
	case Float:
		return "float"
	case Double:
		return "double"
	case Reference:
		return "reference"
	}
	return "unknown"
}

// A Var is a local variable, parameter or receiver of the function under
// analysis. Vars are compared by identity: the frontend and the tests must
// create exactly one Var per program variable.
type Var struct {
	name string
	typ  Type
}

// NewVar returns a fresh variable with the given name and declared type.
func NewVar(name string, typ Type) *Var {
	return &Var{name: name, typ: typ}
}

// Name returns the source-level name of the variable.
func (v *Var) Name() string { return v.name }

// Type returns the declared type of the variable.
func (v *Var) Type() Type { return v.typ }

func (v *Var) String() string { return v.name }

func (v *Var) isExp() {}

// IR is the body of one function under analysis: its name, parameters, and
// optional receiver. Statements live in the control-flow graph, not here.
type IR struct {
	// Name is the name of the function.
	Name string

	// This is the receiver variable, or nil when the function has none.
	This *Var

	// Params are the formal parameters, in declaration order.
	Params []*Var
}
