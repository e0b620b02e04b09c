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
	"go/types"

	"github.com/lbr77/Tai-e-assignments/analysis/cfg"
	"github.com/lbr77/Tai-e-assignments/analysis/ir"
	gocfg "golang.org/x/tools/go/cfg"
)

// A Function is the lowered form of one Go function: its ir body and
// control-flow graph, plus the mapping back to the syntax that produced each
// node. The mapping is what lets the refactor package rewrite the source
// from analysis results.
type Function struct {
	Decl  *ast.FuncDecl
	IR    *ir.IR
	Graph *cfg.Graph

	origins map[*cfg.Node]ast.Node
	vars    map[*types.Var]*ir.Var
}

// Origin returns the syntax node that n was lowered from, or nil for
// synthetic nodes.
func (f *Function) Origin(n *cfg.Node) ast.Node { return f.origins[n] }

// VarOf returns the ir variable standing for the type-checker object tv,
// or nil when tv never appeared in the body.
func (f *Function) VarOf(tv *types.Var) *ir.Var { return f.vars[tv] }

// BuildFunction lowers decl into a Function. The block structure comes from
// golang.org/x/tools/go/cfg; each statement or branch condition inside a
// block becomes one cfg node.
func BuildFunction(file *File, decl *ast.FuncDecl) (*Function, error) {
	if decl.Body == nil {
		return nil, fmt.Errorf("function %s has no body", decl.Name.Name)
	}
	b := &builder{
		file: file,
		fn: &Function{
			Decl:    decl,
			IR:      &ir.IR{Name: decl.Name.Name},
			origins: map[*cfg.Node]ast.Node{},
			vars:    map[*types.Var]*ir.Var{},
		},
	}
	b.lowerSignature(decl)
	b.graph = cfg.NewGraph(b.fn.IR)
	b.fn.Graph = b.graph
	b.lowerBody(gocfg.New(decl.Body, func(*ast.CallExpr) bool { return true }))
	return b.fn, nil
}

type builder struct {
	file  *File
	fn    *Function
	graph *cfg.Graph
}

// varOf returns the ir variable for the type-checker object tv, creating it
// on first sight. Identity is preserved: one types.Var maps to one ir.Var.
func (b *builder) varOf(tv *types.Var) *ir.Var {
	if v, ok := b.fn.vars[tv]; ok {
		return v
	}
	v := ir.NewVar(tv.Name(), typeKind(tv.Type()))
	b.fn.vars[tv] = v
	return v
}

func (b *builder) lowerSignature(decl *ast.FuncDecl) {
	if decl.Recv != nil && len(decl.Recv.List) == 1 {
		for _, name := range decl.Recv.List[0].Names {
			if tv, ok := b.file.Info.Defs[name].(*types.Var); ok {
				b.fn.IR.This = b.varOf(tv)
			}
		}
	}
	for _, field := range decl.Type.Params.List {
		for _, name := range field.Names {
			if tv, ok := b.file.Info.Defs[name].(*types.Var); ok {
				b.fn.IR.Params = append(b.fn.IR.Params, b.varOf(tv))
			}
		}
	}
}

// lowerBody translates the block graph into cfg nodes and edges. Each block
// becomes a chain of statement nodes linked by fall-through edges; blocks
// ending in a branch condition get if-true/if-false out edges, everything
// else gets goto edges. Blocks with no successor flow to the exit node.
func (b *builder) lowerBody(blocks *gocfg.CFG) {
	type chain struct {
		first, last *cfg.Node
		branches    bool // last node is a lowered branch condition
	}
	chains := make([]chain, len(blocks.Blocks))
	for i, block := range blocks.Blocks {
		var c chain
		for _, node := range block.Nodes {
			stmts, isBranch := b.lowerNode(node)
			for _, stmt := range stmts {
				n := b.graph.AddNode(stmt)
				b.fn.origins[n] = node
				if c.last != nil {
					b.graph.AddEdge(cfg.FallThrough, c.last, n)
				} else {
					c.first = n
				}
				c.last = n
				c.branches = isBranch
			}
		}
		if c.first == nil {
			// go/cfg emits empty join blocks; keep one nop node so edges
			// stay a per-node concern.
			n := b.graph.AddNode(&ir.NopStmt{})
			c.first, c.last = n, n
		}
		chains[i] = c
	}
	b.graph.AddEdge(cfg.FallThrough, b.graph.Entry(), chains[0].first)
	for i, block := range blocks.Blocks {
		c := chains[i]
		if c.branches && len(block.Succs) == 2 {
			b.graph.AddEdge(cfg.IfTrue, c.last, chains[int(block.Succs[0].Index)].first)
			b.graph.AddEdge(cfg.IfFalse, c.last, chains[int(block.Succs[1].Index)].first)
			continue
		}
		if len(block.Succs) == 0 {
			b.graph.AddEdge(cfg.Goto, c.last, b.graph.Exit())
			continue
		}
		for _, succ := range block.Succs {
			b.graph.AddEdge(cfg.Goto, c.last, chains[int(succ.Index)].first)
		}
	}
}

// typeKind maps a Go type onto the scalar kinds tracked by the analyses.
// 64-bit integers map to Long and are therefore not tracked.
func typeKind(t types.Type) ir.Type {
	basic, ok := t.Underlying().(*types.Basic)
	if !ok {
		return ir.Reference
	}
	switch basic.Kind() {
	case types.Bool, types.UntypedBool:
		return ir.Boolean
	case types.Int8:
		return ir.Byte
	case types.Int16:
		return ir.Short
	case types.Int, types.Int32, types.Uint8, types.UntypedInt, types.UntypedRune:
		return ir.Int
	case types.Uint16:
		return ir.Char
	case types.Int64, types.Uint, types.Uint32, types.Uint64, types.Uintptr:
		return ir.Long
	case types.Float32:
		return ir.Float
	case types.Float64, types.UntypedFloat:
		return ir.Double
	default:
		return ir.Reference
	}
}
