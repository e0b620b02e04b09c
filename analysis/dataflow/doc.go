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

// Package dataflow implements a generic, bidirectional, worklist-based
// iterative dataflow engine.
//
// A concrete analysis implements the Analysis interface: direction, boundary
// and initial facts, the meet operator, the per-node transfer function and an
// optional per-edge transfer. The Solver is generic over the node, edge and
// fact types and drives any such analysis over any Graph to its fixpoint.
//
// The engine is single-threaded and performs no I/O: a solve is a closed
// loop over the worklist. Distinct solves share no state and may run in
// parallel, provided the Analysis itself is stateless.
package dataflow
