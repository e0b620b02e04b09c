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

package constprop

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lbr77/Tai-e-assignments/analysis/ir"
	"golang.org/x/exp/maps"
)

// A CPFact maps each variable to its lattice value at one program point.
// A variable absent from the fact is Undef; Update maintains that
// normalization by never storing Undef, so Equals stays a structural map
// comparison.
type CPFact map[*ir.Var]Value

// NewFact returns an empty fact, in which every variable is Undef.
func NewFact() CPFact { return CPFact{} }

// Get returns the value of v, Undef when v is absent.
func (f CPFact) Get(v *ir.Var) Value {
	if val, ok := f[v]; ok {
		return val
	}
	return Undef()
}

// Update sets the value of v, removing the entry when value is Undef.
func (f CPFact) Update(v *ir.Var, value Value) {
	if value.IsUndef() {
		delete(f, v)
		return
	}
	f[v] = value
}

// Copy returns an independent duplicate of the fact.
func (f CPFact) Copy() CPFact {
	c := make(CPFact, len(f))
	maps.Copy(c, f)
	return c
}

// CopyFrom replaces the receiver's entries with other's, in place.
func (f CPFact) CopyFrom(other CPFact) {
	f.Clear()
	maps.Copy(f, other)
}

// Clear removes all entries, in place.
func (f CPFact) Clear() {
	maps.Clear(f)
}

// Equals reports whether the two facts map the same variables to the same
// values.
func (f CPFact) Equals(other CPFact) bool {
	if len(f) != len(other) {
		return false
	}
	for v, val := range f {
		if other.Get(v) != val {
			return false
		}
	}
	return true
}

func (f CPFact) String() string {
	entries := make([]string, 0, len(f))
	for v, val := range f {
		entries = append(entries, fmt.Sprintf("%s=%s", v, val))
	}
	sort.Strings(entries)
	return "{" + strings.Join(entries, ", ") + "}"
}
