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

package dataflow

// A Result holds the IN and OUT facts the solver computed for each node.
// During a solve the solver is the sole mutator; afterwards the caller owns
// the result.
type Result[Node comparable, Fact any] struct {
	in  map[Node]Fact
	out map[Node]Fact
}

// NewResult returns an empty result.
func NewResult[Node comparable, Fact any]() *Result[Node, Fact] {
	return &Result[Node, Fact]{
		in:  map[Node]Fact{},
		out: map[Node]Fact{},
	}
}

// InFact returns the fact holding before node executes.
func (r *Result[Node, Fact]) InFact(node Node) Fact { return r.in[node] }

// OutFact returns the fact holding after node executes.
func (r *Result[Node, Fact]) OutFact(node Node) Fact { return r.out[node] }

// SetInFact replaces the IN fact of node.
func (r *Result[Node, Fact]) SetInFact(node Node, fact Fact) { r.in[node] = fact }

// SetOutFact replaces the OUT fact of node.
func (r *Result[Node, Fact]) SetOutFact(node Node, fact Fact) { r.out[node] = fact }
