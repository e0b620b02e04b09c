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

import "fmt"

// A Stmt is one statement of the function under analysis. A statement may
// define at most one variable; Def reports that variable when present.
type Stmt interface {
	fmt.Stringer

	// Def returns the variable defined by this statement, if any.
	Def() (*Var, bool)
}

// A DefinitionStmt is a statement that may define a variable from a
// right-hand-side expression.
type DefinitionStmt interface {
	Stmt

	// RValue returns the right-hand-side expression of the definition.
	RValue() Exp
}

// An AssignStmt assigns the value of RHS to LHS.
type AssignStmt struct {
	LHS *Var
	RHS Exp
}

// Def returns the assigned variable.
func (s *AssignStmt) Def() (*Var, bool) { return s.LHS, true }

// RValue returns the assigned expression.
func (s *AssignStmt) RValue() Exp { return s.RHS }

func (s *AssignStmt) String() string { return fmt.Sprintf("%s = %s", s.LHS, s.RHS) }

// An IfStmt evaluates a branch condition. It defines no variable.
type IfStmt struct {
	Cond Exp
}

// Def returns no variable; a branch defines nothing.
func (s *IfStmt) Def() (*Var, bool) { return nil, false }

func (s *IfStmt) String() string { return fmt.Sprintf("if %s", s.Cond) }

// A ReturnStmt returns from the function, with an optional result.
type ReturnStmt struct {
	Result Exp // may be nil
}

// Def returns no variable.
func (s *ReturnStmt) Def() (*Var, bool) { return nil, false }

func (s *ReturnStmt) String() string {
	if s.Result == nil {
		return "return"
	}
	return fmt.Sprintf("return %s", s.Result)
}

// A NopStmt is a statement with no effect, used for source statements the
// frontend does not model.
type NopStmt struct {
	Text string
}

// Def returns no variable.
func (s *NopStmt) Def() (*Var, bool) { return nil, false }

func (s *NopStmt) String() string {
	if s.Text == "" {
		return "nop"
	}
	return "nop: " + s.Text
}
