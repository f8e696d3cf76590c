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

// Package depwalk implements the Dependency Walker (section 4.E): a
// demand-driven iterator visiting every type reference reachable from a
// resolved AST node, via an explicit work-stack with no hidden recursion, in
// document order. Local (slash-free) references are yielded too; callers
// such as codegen's import builder keep only the cross-package ones. Grounded on the original's
// AstNode/QualifiedNameIter work-stack (codegen/dependency.rs) and on the
// teacher's generic HasNext/Next iterator shape
// (pkg/util/collection/iter), specialised here to a single AST-specific
// purpose rather than a reusable generic container iterator.
package depwalk

import "github.com/nasa-eds/edsc/pkg/eds/ast"

// node is one stack entry: exactly one of the following is non-nil.
type node struct {
	dataType  *ast.DataType
	container *ast.ContainerDataType
	entryList []ast.EntryElement
	entry     *ast.EntryElement
	ref       ast.QualifiedName
}

// Walker yields every ast.QualifiedName reachable from a starting DataType,
// via Next/HasNext, mirroring the teacher's iterator pair rather than a
// language-level range/generator.
type Walker struct {
	stack []node
}

// NewWalker returns a Walker seeded with a single DataType.
func NewWalker(dt *ast.DataType) *Walker {
	w := &Walker{}
	w.push(node{dataType: dt})

	return w
}

func (w *Walker) push(n node) {
	w.stack = append(w.stack, n)
}

// pushEntriesReverse pushes a slice of entries such that popping the stack visits
// them in original (forward, document) order.
func (w *Walker) pushEntriesReverse(entries []ast.EntryElement) {
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		w.push(node{entry: &e})
	}
}

// HasNext reports whether another qualified name remains to be visited. It
// expands composite nodes and discards reference-free entries until the top
// of the stack yields a name, so Next never runs out of work after it.
func (w *Walker) HasNext() bool {
	for len(w.stack) > 0 {
		n := w.stack[len(w.stack)-1]
		if n.dataType == nil && n.container == nil {
			if n.entry == nil {
				return true
			}

			if _, ok := n.entry.TypeRef(); ok {
				return true
			}
		}

		w.stack = w.stack[:len(w.stack)-1]
		w.expand(n)
	}

	return false
}

// Next pops and processes stack entries until it can return a
// QualifiedName, expanding composite nodes onto the stack as it goes. It
// panics if called with HasNext() false, matching the teacher's own
// iterator contract (pkg/util/collection/iter's Enumerator.Next requires a
// prior HasNext check).
func (w *Walker) Next() ast.QualifiedName {
	for len(w.stack) > 0 {
		n := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]

		if qn, ok := w.expand(n); ok {
			return qn
		}
	}

	panic("depwalk: Next called with no remaining work")
}

// expand processes one stack node. It returns (qn, true) if this node
// itself is a reference leaf; otherwise it pushes children and returns
// (_, false).
func (w *Walker) expand(n node) (ast.QualifiedName, bool) {
	switch {
	case n.dataType != nil:
		w.expandDataType(n.dataType)
		return "", false
	case n.container != nil:
		w.expandContainer(n.container)
		return "", false
	case n.entry != nil:
		return w.expandEntry(n.entry)
	default:
		return n.ref, true
	}
}

func (w *Walker) expandDataType(dt *ast.DataType) {
	switch dt.Kind {
	case ast.DTContainer:
		w.push(node{container: dt.Container})
	case ast.DTArray:
		w.push(node{ref: dt.Array.DataTypeRef})
	case ast.DTSubRange:
		w.push(node{ref: dt.SubRange.BaseType})
	case ast.DTBoolean, ast.DTInteger, ast.DTFloat, ast.DTString, ast.DTEnumerated:
		// atomic types carry no outward type reference.
	default:
		// unsupported variants simply contribute no references; codegen
		// itself is responsible for rejecting unsupported DataType kinds
		// (section 4.C) — the walker's job is only to surface references,
		// not to validate exhaustiveness.
	}
}

func (w *Walker) expandContainer(c *ast.ContainerDataType) {
	// Push in reverse of the desired document-order traversal (base, main
	// entries, trailer entries), since this is a LIFO work-stack: whatever
	// is pushed last is visited first.
	w.pushEntriesReverse(c.TrailerEntries)
	w.pushEntriesReverse(c.Entries)

	if c.BaseType != "" {
		w.push(node{ref: c.BaseType})
	}
}

func (w *Walker) expandEntry(e *ast.EntryElement) (ast.QualifiedName, bool) {
	if ref, ok := e.TypeRef(); ok {
		return ref, true
	}

	return "", false
}

// Collect drains the walker into a slice, for callers that don't need
// lazy iteration (e.g. import-list construction in codegen).
func Collect(w *Walker) []ast.QualifiedName {
	var out []ast.QualifiedName
	for w.HasNext() {
		out = append(out, w.Next())
	}

	return out
}

// Dedupe removes duplicate qualified names, preserving first-seen order
// (section 4.E: "duplicates are deduplicated by the caller").
func Dedupe(refs []ast.QualifiedName) []ast.QualifiedName {
	seen := make(map[ast.QualifiedName]struct{}, len(refs))

	var out []ast.QualifiedName

	for _, r := range refs {
		if _, ok := seen[r]; ok {
			continue
		}

		seen[r] = struct{}{}
		out = append(out, r)
	}

	return out
}
