// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package paramns implements the mission-parameter namespace: a recursive,
// read-only, slash-path-addressed mapping loaded from JSON.
package paramns

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Value is one node of a Namespace: either a leaf string or a nested
// mapping. Exactly one of Leaf/Children is meaningful, selected by IsLeaf.
type Value struct {
	IsLeaf   bool
	Leaf     string
	Children map[string]Value
}

// Namespace is the root of a parameter tree. Once constructed it is never
// mutated; every lookup is read-only, matching the lifecycle invariant in
// section 3.1.
type Namespace struct {
	root Value
}

// Empty returns a namespace with no entries, suitable for compilations that
// supply no mission-parameter file.
func Empty() *Namespace {
	return &Namespace{root: Value{Children: map[string]Value{}}}
}

// FromJSON parses a JSON document into a Namespace. Every JSON object
// becomes a nested mapping; every JSON string becomes a leaf. Any other
// JSON value (number, bool, array, null) at any depth is rejected, since the
// mission-parameter dialect only ever carries strings and objects — numbers
// and keywords are themselves represented as strings to be evaluated later
// by the expression evaluator.
func FromJSON(data []byte) (*Namespace, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("paramns: invalid JSON: %w", err)
	}

	root, err := convert(raw)
	if err != nil {
		return nil, err
	}

	return &Namespace{root: root}, nil
}

func convert(m map[string]any) (Value, error) {
	children := make(map[string]Value, len(m))

	for k, v := range m {
		switch t := v.(type) {
		case string:
			children[k] = Value{IsLeaf: true, Leaf: t}
		case map[string]any:
			child, err := convert(t)
			if err != nil {
				return Value{}, err
			}

			children[k] = child
		default:
			return Value{}, fmt.Errorf("paramns: key %q has unsupported JSON value type %T (only strings and objects are permitted)", k, v)
		}
	}

	return Value{Children: children}, nil
}

// Lookup descends the namespace following the slash-delimited path and
// returns the leaf string found there. It reports ok=false if any segment
// along the path is missing, or if the final node is an interior mapping
// rather than a leaf.
func (n *Namespace) Lookup(path string) (string, bool) {
	if n == nil {
		return "", false
	}

	segments := strings.Split(path, "/")

	return lookupIn(n.root, segments)
}

func lookupIn(v Value, segments []string) (string, bool) {
	if len(segments) == 0 {
		if !v.IsLeaf {
			return "", false
		}

		return v.Leaf, true
	}

	if v.IsLeaf {
		return "", false
	}

	child, ok := v.Children[segments[0]]
	if !ok {
		return "", false
	}

	return lookupIn(child, segments[1:])
}
