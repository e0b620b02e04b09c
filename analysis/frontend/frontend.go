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

// Package frontend lowers Go function bodies into the ir/cfg representation
// consumed by the dataflow analyses. Lowering is best effort: any statement
// or expression outside the modeled subset becomes an unknown, which the
// analyses treat conservatively.
package frontend

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"regexp"

	"github.com/lbr77/Tai-e-assignments/analysis/config"
)

// A File is a parsed and type-checked Go source file.
type File struct {
	Path string
	Fset *token.FileSet
	File *ast.File
	Info *types.Info
	Pkg  *types.Package
}

// LoadFile parses and type-checks the Go file at path. Type errors are
// reported to the logger and do not abort loading; idents without type
// information lower to unknowns.
func LoadFile(path string, logger *config.LogGroup) (*File, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("could not parse %q: %w", path, err)
	}
	info := &types.Info{
		Types: map[ast.Expr]types.TypeAndValue{},
		Defs:  map[*ast.Ident]types.Object{},
		Uses:  map[*ast.Ident]types.Object{},
	}
	conf := types.Config{
		Importer: importer.Default(),
		Error: func(err error) {
			logger.Debugf("type checker: %s", err)
		},
	}
	pkg, _ := conf.Check(f.Name.Name, fset, []*ast.File{f}, info)
	return &File{
		Path: path,
		Fset: fset,
		File: f,
		Info: info,
		Pkg:  pkg,
	}, nil
}

// Functions returns the function declarations of the file with a body whose
// name matches filter. A nil filter matches everything.
func (f *File) Functions(filter *regexp.Regexp) []*ast.FuncDecl {
	var decls []*ast.FuncDecl
	for _, d := range f.File.Decls {
		fn, ok := d.(*ast.FuncDecl)
		if !ok || fn.Body == nil {
			continue
		}
		if filter == nil || filter.MatchString(fn.Name.Name) {
			decls = append(decls, fn)
		}
	}
	return decls
}
