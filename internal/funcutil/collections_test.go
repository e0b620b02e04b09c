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

package funcutil

import (
	"sort"
	"testing"
)

func TestMerge(t *testing.T) {
	a := map[string]int{"x": 1, "y": 2}
	b := map[string]int{"y": 10, "z": 3}
	Merge(a, b, func(x, y int) int { return x + y })
	if len(a) != 3 || a["x"] != 1 || a["y"] != 12 || a["z"] != 3 {
		t.Errorf("Merge produced %v", a)
	}
}

func TestUnion(t *testing.T) {
	a := map[int]bool{1: true, 2: true}
	b := map[int]bool{2: true, 3: true}
	Union(a, b)
	if len(a) != 3 || !a[1] || !a[2] || !a[3] {
		t.Errorf("Union produced %v", a)
	}
}

func TestMap(t *testing.T) {
	got := Map([]int{1, 2, 3}, func(x int) int { return x * x })
	if len(got) != 3 || got[0] != 1 || got[1] != 4 || got[2] != 9 {
		t.Errorf("Map produced %v", got)
	}
	if Map(nil, func(x int) int { return x }) != nil {
		t.Error("Map of nil should be nil")
	}
}

func TestExistsContains(t *testing.T) {
	xs := []int{1, 3, 5}
	if !Exists(xs, func(x int) bool { return x > 4 }) {
		t.Error("Exists missed 5 > 4")
	}
	if Exists(xs, func(x int) bool { return x%2 == 0 }) {
		t.Error("Exists found an even number in an odd slice")
	}
	if !Contains(xs, 3) || Contains(xs, 2) {
		t.Error("Contains misbehaved")
	}
}

func TestSetToOrderedSlice(t *testing.T) {
	set := map[int]bool{3: true, 1: true, 2: false, 5: true}
	got := SetToOrderedSlice(set)
	if len(got) != 3 || got[0] != 1 || got[1] != 3 || got[2] != 5 {
		t.Errorf("SetToOrderedSlice produced %v", got)
	}
}

func TestIter(t *testing.T) {
	sum := 0
	Iter([]int{1, 2, 3}, func(x int) { sum += x })
	if sum != 6 {
		t.Errorf("Iter summed to %d", sum)
	}
}

func TestMapParallel(t *testing.T) {
	xs := make([]int, 100)
	for i := range xs {
		xs[i] = i
	}
	for _, routines := range []int{0, 1, 4} {
		got := MapParallel(xs, func(x int) int { return x * 2 }, routines)
		if len(got) != len(xs) {
			t.Fatalf("MapParallel with %d routines returned %d results", routines, len(got))
		}
		if !sort.SliceIsSorted(got, func(i, j int) bool { return got[i] < got[j] }) {
			t.Errorf("MapParallel with %d routines broke element order", routines)
		}
		for i, g := range got {
			if g != 2*i {
				t.Fatalf("MapParallel[%d] = %d, expected %d", i, g, 2*i)
			}
		}
	}
}
