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

import "fmt"

type valueKind uint8

const (
	undef valueKind = iota
	constant
	nac
)

// A Value is a point of the flat constant-propagation lattice: Undef at the
// bottom, NAC at the top, and all constants as incomparable siblings in
// between. Values are immutable.
type Value struct {
	kind valueKind
	c    int32
}

// Undef returns the undefined value, the lattice bottom.
func Undef() Value { return Value{kind: undef} }

// NAC returns the not-a-constant value, the lattice top.
func NAC() Value { return Value{kind: nac} }

// MakeConstant returns the value representing the constant c.
func MakeConstant(c int32) Value { return Value{kind: constant, c: c} }

// IsUndef reports whether v is the undefined value.
func (v Value) IsUndef() bool { return v.kind == undef }

// IsConstant reports whether v is a constant.
func (v Value) IsConstant() bool { return v.kind == constant }

// IsNAC reports whether v is not-a-constant.
func (v Value) IsNAC() bool { return v.kind == nac }

// Constant returns the constant held by v. It panics when v is not a
// constant; callers must check IsConstant first.
func (v Value) Constant() int32 {
	if v.kind != constant {
		panic(fmt.Sprintf("Constant called on %s", v))
	}
	return v.c
}

func (v Value) String() string {
	switch v.kind {
	case undef:
		return "Undef"
	case nac:
		return "NAC"
	default:
		return fmt.Sprintf("%d", v.c)
	}
}

// MeetValue meets two lattice values:
//
//	meet(Undef, v) = v
//	meet(NAC, v) = NAC
//	meet(c, c) = c
//	meet(c1, c2) = NAC when c1 != c2
//
// The three-valued domain is closed, so any other combination signals a
// defect in the caller and panics.
func MeetValue(v1, v2 Value) Value {
	switch {
	case v1.IsUndef():
		return v2
	case v2.IsUndef():
		return v1
	case v1.IsNAC() || v2.IsNAC():
		return NAC()
	case v1.IsConstant() && v2.IsConstant():
		if v1.Constant() == v2.Constant() {
			return v1
		}
		return NAC()
	default:
		panic(fmt.Sprintf("unexpected values in meet: %s, %s", v1, v2))
	}
}
