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

// Package scope implements the Symbol Table (section 3.4, 4.D): a
// two-level path-addressed namespace of package-local type tables under a
// global root, grounded on the teacher's ModuleScope path-segment
// traversal (pkg/corset/scope.go) generalized from "submodule path" to
// "package name".
package scope

import (
	"strings"

	"github.com/nasa-eds/edsc/pkg/eds/ast"
	"github.com/nasa-eds/edsc/pkg/eds/cerr"
)

// TypeHandle is what the symbol table carries per entry: a reference to the
// resolved AST node plus its canonicalized emitter identifier. The table
// indexes the AST; it never owns or mutates it (section 9, "index, don't
// own").
type TypeHandle struct {
	DataType    *ast.DataType
	EmitterName string
}

// ComponentHandle indexes a resolved Component the same way TypeHandle
// indexes a DataType (section 4.N).
type ComponentHandle struct {
	Component   *ast.Component
	EmitterName string
}

// Package is the local table for one EDS package: a mapping from local
// type name to TypeHandle, plus components.
type Package struct {
	Name       string
	types      map[string]*TypeHandle
	components map[string]*ComponentHandle
	typeOrder  []string
}

func newPackage(name string) *Package {
	return &Package{
		Name:       name,
		types:      map[string]*TypeHandle{},
		components: map[string]*ComponentHandle{},
	}
}

// Define registers a type under its local name. Registering the same name
// twice yields ConflictingDataType (section 3.4).
func (p *Package) Define(name string, handle *TypeHandle) *cerr.Error {
	if _, exists := p.types[name]; exists {
		return cerr.New(cerr.ConflictingDataType, cerr.Location{Package: p.Name, Type: name},
			"data type %q declared more than once in package %q", name, p.Name)
	}

	p.types[name] = handle
	p.typeOrder = append(p.typeOrder, name)

	return nil
}

// DefineComponent registers a component under its local name.
func (p *Package) DefineComponent(name string, handle *ComponentHandle) *cerr.Error {
	if _, exists := p.components[name]; exists {
		return cerr.New(cerr.ConflictingDataType, cerr.Location{Package: p.Name, Type: name},
			"component %q declared more than once in package %q", name, p.Name)
	}

	p.components[name] = handle

	return nil
}

// Local looks up a bare (no-slash) local type name within this package.
func (p *Package) Local(name string) (*TypeHandle, bool) {
	h, ok := p.types[name]
	return h, ok
}

// TypeNames returns every locally-declared type name, in declaration
// order.
func (p *Package) TypeNames() []string {
	out := make([]string, len(p.typeOrder))
	copy(out, p.typeOrder)

	return out
}

// Root is the global symbol table: one Package child per EDS package,
// addressed by name (section 3.4 step 1).
type Root struct {
	packages map[string]*Package
	order    []string
}

// NewRoot constructs an empty global symbol table.
func NewRoot() *Root {
	return &Root{packages: map[string]*Package{}}
}

// DeclarePackage creates (or returns the existing) local table for a
// package name. Declaring the same package name twice across input files
// is permitted — a DataSheet may combine multiple PackageFiles into one
// compilation — the caller is responsible for not re-registering the same
// type twice within it.
func (r *Root) DeclarePackage(name string) *Package {
	if p, ok := r.packages[name]; ok {
		return p
	}

	p := newPackage(name)
	r.packages[name] = p
	r.order = append(r.order, name)

	return p
}

// Package returns the named package's local table, if declared.
func (r *Root) Package(name string) (*Package, bool) {
	p, ok := r.packages[name]
	return p, ok
}

// PackageNames returns every declared package name, in declaration order.
func (r *Root) PackageNames() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)

	return out
}

// Lookup resolves a qualified-or-local type reference against the current
// package's local table and the global root, per the algorithm in section
// 4.D: a reference containing "/" splits on the first slash into
// (package, rest) and is searched globally; a bare reference searches only
// the current package.
func (r *Root) Lookup(current *Package, ref string) (*TypeHandle, *cerr.Error) {
	if idx := strings.IndexByte(ref, '/'); idx >= 0 {
		pkgName, rest := ref[:idx], ref[idx+1:]

		pkg, ok := r.packages[pkgName]
		if !ok {
			return nil, cerr.New(cerr.InvalidType, cerr.Location{}, "no such package %q (referenced as %q)", pkgName, ref)
		}

		h, ok := pkg.Local(rest)
		if !ok {
			return nil, cerr.New(cerr.InvalidType, cerr.Location{Package: pkgName}, "no such type %q in package %q", rest, pkgName)
		}

		return h, nil
	}

	if current == nil {
		return nil, cerr.New(cerr.InvalidType, cerr.Location{}, "unqualified reference %q outside any package context", ref)
	}

	h, ok := current.Local(ref)
	if !ok {
		return nil, cerr.New(cerr.InvalidType, cerr.Location{Package: current.Name}, "no such local type %q", ref)
	}

	return h, nil
}
