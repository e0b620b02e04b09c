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

package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config holds the options of an analysis run. If some field is not defined
// in the config file, it will be empty/zero in the struct.
// private fields are not populated from a yaml file, but computed after initialization.
type Config struct {
	sourceFile string

	// LogLevel controls the verbosity of the tool (see LogLevel constants).
	LogLevel int `yaml:"loglevel"`

	// Targets are the Go source files to analyze.
	Targets []string `yaml:"targets"`

	// FunctionFilter is a regex restricting which functions are analyzed.
	// An empty filter analyzes every function.
	FunctionFilter string `yaml:"function-filter"`

	// WarnUnreachable enables warnings for statements unreachable from the
	// function entry.
	WarnUnreachable bool `yaml:"warn-unreachable"`

	// ReportLoops enables per-function reporting of whether the control-flow
	// graph contains loops.
	ReportLoops bool `yaml:"report-loops"`

	// MaxRoutines bounds the number of goroutines used for per-function
	// solves. Zero or negative means one.
	MaxRoutines int `yaml:"max-routines"`

	// if the FunctionFilter is specified
	functionFilterRegex *regexp.Regexp
}

// NewDefault returns a config with the default options.
func NewDefault() *Config {
	return &Config{
		LogLevel:        int(InfoLevel),
		WarnUnreachable: true,
		ReportLoops:     false,
		MaxRoutines:     1,
	}
}

// Load reads a config from the yaml file at filename.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read config file %q: %w", filename, err)
	}
	cfg := NewDefault()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file %q: %w", filename, err)
	}
	cfg.sourceFile = filename
	if err := cfg.initialize(); err != nil {
		return nil, fmt.Errorf("invalid config file %q: %w", filename, err)
	}
	return cfg, nil
}

// SourceFile returns the file this config was loaded from, or "" for a
// default config.
func (c *Config) SourceFile() string { return c.sourceFile }

func (c *Config) initialize() error {
	if c.LogLevel < int(ErrLevel) || c.LogLevel > int(TraceLevel) {
		return fmt.Errorf("loglevel %d out of range [%d,%d]", c.LogLevel, ErrLevel, TraceLevel)
	}
	if c.FunctionFilter != "" {
		r, err := regexp.Compile(c.FunctionFilter)
		if err != nil {
			return fmt.Errorf("function-filter is not a valid regex: %w", err)
		}
		c.functionFilterRegex = r
	}
	return nil
}

// MatchFunction reports whether the function named name should be analyzed
// under this config.
func (c *Config) MatchFunction(name string) bool {
	if c.functionFilterRegex == nil {
		return true
	}
	return c.functionFilterRegex.MatchString(name)
}
