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

package main

import (
	"flag"
	"fmt"
	"go/ast"
	"os"
	"regexp"
	"strings"

	"github.com/lbr77/Tai-e-assignments/analysis/cfg"
	"github.com/lbr77/Tai-e-assignments/analysis/config"
	"github.com/lbr77/Tai-e-assignments/analysis/dataflow"
	"github.com/lbr77/Tai-e-assignments/analysis/dataflow/constprop"
	"github.com/lbr77/Tai-e-assignments/analysis/frontend"
	"github.com/lbr77/Tai-e-assignments/analysis/refactor"
	"github.com/lbr77/Tai-e-assignments/internal/formatutil"
	"github.com/lbr77/Tai-e-assignments/internal/funcutil"
)

// flags
var (
	configPath = flag.String("config", "", "load options from this yaml config file")
	funcFilter = flag.String("function", "", "only analyze functions matching this regex")
	verbose    = flag.Bool("verbose", false, "enable verbose output")
	fix        = flag.Bool("fix", false, "write sources with proven-constant assignments folded")
)

const usage = `Run constant propagation over Go function bodies.

Usage:
  constprop source.go
  constprop source1.go source2.go
  constprop -config config.yaml

Use the -help flag to display the options.

Use -verbose for debugging output.

Examples:
$ constprop -function 'Compute.*' hello.go
`

func main() {
	if err := doMain(); err != nil {
		fmt.Fprintf(os.Stderr, "constprop: %s\n", err)
		os.Exit(1)
	}
}

func doMain() error {
	flag.Parse()

	cfgFile := config.NewDefault()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfgFile = loaded
	}
	if *verbose {
		cfgFile.LogLevel = int(config.DebugLevel)
	}
	logger := config.NewLogGroup(cfgFile)

	targets := flag.Args()
	if len(targets) == 0 {
		targets = cfgFile.Targets
	}
	if len(targets) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	filter, err := functionFilter(cfgFile)
	if err != nil {
		return err
	}

	var done []string
	for _, target := range targets {
		// A target listed both on the command line and in the config is
		// analyzed once.
		if funcutil.Contains(done, target) {
			continue
		}
		done = append(done, target)
		if err := analyzeFile(target, filter, cfgFile, logger); err != nil {
			return err
		}
	}
	return nil
}

// functionFilter compiles the -function flag, falling back to the config's
// function-filter.
func functionFilter(c *config.Config) (*regexp.Regexp, error) {
	pattern := *funcFilter
	if pattern == "" {
		pattern = c.FunctionFilter
	}
	if pattern == "" {
		return nil, nil
	}
	r, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid function filter %q: %w", pattern, err)
	}
	return r, nil
}

// A solved pairs one analyzed function with its fixpoint result.
type solved struct {
	fn     *frontend.Function
	result *dataflow.Result[*cfg.Node, constprop.CPFact]
	err    error
}

func analyzeFile(path string, filter *regexp.Regexp, c *config.Config, logger *config.LogGroup) error {
	logger.Infof("%s", formatutil.Faint("Reading sources: "+path))
	file, err := frontend.LoadFile(path, logger)
	if err != nil {
		return err
	}
	decls := file.Functions(filter)
	if len(decls) == 0 {
		logger.Warnf("no function to analyze in %s", path)
		return nil
	}

	// Each function is an independent solve; run them in parallel.
	results := funcutil.MapParallel(decls, func(decl *ast.FuncDecl) solved {
		fn, err := frontend.BuildFunction(file, decl)
		if err != nil {
			return solved{err: err}
		}
		solver := dataflow.NewSolver[*cfg.Node, *cfg.Edge, constprop.CPFact](constprop.New())
		return solved{fn: fn, result: solver.Solve(fn.Graph)}
	}, c.MaxRoutines)

	for _, s := range results {
		if s.err != nil {
			return s.err
		}
		report(s, c, logger)
	}

	if *fix {
		return writeFolded(path, file, results, logger)
	}
	return nil
}

func report(s solved, c *config.Config, logger *config.LogGroup) {
	fmt.Printf("%s\n", formatutil.Bold(s.fn.IR.Name))
	if c.ReportLoops && cfg.HasLoops(s.fn.Graph) {
		fmt.Printf("  %s\n", formatutil.Cyan("function has loops"))
	}
	reachable := cfg.Reachable(s.fn.Graph)
	dead := map[int]bool{}
	for _, node := range s.fn.Graph.Nodes() {
		if node.Stmt() == nil {
			continue
		}
		if !reachable[node] {
			dead[node.Index()] = true
			continue
		}
		fmt.Printf("  %-40s %s\n", node, formatutil.Green(s.result.OutFact(node)))
	}
	if c.WarnUnreachable {
		nodes := s.fn.Graph.Nodes()
		for _, index := range funcutil.SetToOrderedSlice(dead) {
			logger.Warnf("%s: unreachable statement %s", s.fn.IR.Name, nodes[index])
		}
	}
}

// writeFolded writes a sibling file with every proven-constant assignment
// replaced by its constant.
func writeFolded(path string, file *frontend.File, results []solved, logger *config.LogGroup) error {
	folder, err := refactor.NewFolder(file)
	if err != nil {
		return fmt.Errorf("could not prepare rewrite of %q: %w", path, err)
	}
	funcutil.Iter(results, func(s solved) {
		folder.FoldConstants(s.fn, s.result)
	})
	if folder.Folds() == 0 {
		logger.Infof("%s: nothing to fold", path)
		return nil
	}
	out, err := folder.Bytes()
	if err != nil {
		return fmt.Errorf("could not render rewrite of %q: %w", path, err)
	}
	folded := strings.TrimSuffix(path, ".go") + "_folded.go"
	if err := os.WriteFile(folded, out, 0o600); err != nil {
		return err
	}
	logger.Infof("%s: folded %d assignments into %s", path, folder.Folds(), folded)
	return nil
}
