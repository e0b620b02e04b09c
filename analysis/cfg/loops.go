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

package cfg

import "github.com/yourbasic/graph"

// HasLoops reports whether the graph contains a cycle, i.e. whether the
// function has loops. Loopy functions need more worklist iterations to reach
// the fixpoint; the driver reports this per function.
func HasLoops(g *Graph) bool {
	vg := graph.New(g.Size())
	for _, n := range g.Nodes() {
		for _, e := range g.OutEdgesOf(n) {
			if e.Source() == e.Target() {
				return true
			}
			vg.Add(e.Source().Index(), e.Target().Index())
		}
	}
	for _, component := range graph.StrongComponents(vg) {
		if len(component) > 1 {
			return true
		}
	}
	return false
}
