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
package resolve

import (
	"github.com/nasa-eds/edsc/pkg/eds/ast"
	"github.com/nasa-eds/edsc/pkg/eds/cerr"
	"github.com/nasa-eds/edsc/pkg/eds/identname"
	"github.com/nasa-eds/edsc/pkg/eds/scope"
)

// BuildSymbolTable populates the global symbol table (section 3.4, 4.D step
// 2) from a set of already-resolved package files, indexing each data type
// and component under its declared local name and recording the PascalCase
// emitter identifier codegen will use. It is the second half of a
// compilation that may span several input files sharing one Root.
func BuildSymbolTable(root *scope.Root, pfs ...*ast.PackageFile) *cerr.Error {
	for _, pf := range pfs {
		for _, pkg := range pf.Packages {
			sp := root.DeclarePackage(string(pkg.Name))

			for i := range pkg.DataTypes {
				dt := &pkg.DataTypes[i]
				name := dt.NodeName()

				if err := sp.Define(name, &scope.TypeHandle{DataType: dt, EmitterName: identname.PascalCase(name)}); err != nil {
					return err
				}
			}

			for _, comp := range pkg.Components {
				if err := sp.DefineComponent(comp.NodeName(), &scope.ComponentHandle{Component: comp, EmitterName: identname.PascalCase(comp.NodeName())}); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// ValidateContainerChains checks the invariants over container data types
// that require the full symbol table to exist: every BaseType reference
// resolves, entry names stay unique across the transitive base chain
// (section 3.3 property 2, SPEC_FULL.md 4.J), and every ListEntry's
// lengthField names a sibling entry carrying a type reference whose resolved
// type is an integer (section 4.E supplement).
func ValidateContainerChains(root *scope.Root) *cerr.Error {
	for _, pkgName := range root.PackageNames() {
		pkg, _ := root.Package(pkgName)

		for _, typeName := range pkg.TypeNames() {
			handle, _ := pkg.Local(typeName)
			if handle.DataType.Kind != ast.DTContainer {
				continue
			}

			if err := validateChain(root, pkg, typeName, handle.DataType.Container); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateChain(root *scope.Root, pkg *scope.Package, typeName string, c *ast.ContainerDataType) *cerr.Error {
	seen := map[string]string{} // entry name -> owning type, across the chain

	register := func(entries []ast.EntryElement, owner string) *cerr.Error {
		for _, e := range entries {
			name := e.NodeName()
			if name == "" {
				continue
			}

			if prior, ok := seen[name]; ok {
				return cerr.New(cerr.ConflictingDataType, cerr.Location{Package: pkg.Name, Type: typeName, Field: name},
					"entry name %q in %q collides with one declared in base type %q", name, prior, owner)
			}

			seen[name] = owner
		}

		return nil
	}

	if err := register(c.Entries, typeName); err != nil {
		return err
	}

	if err := register(c.TrailerEntries, typeName); err != nil {
		return err
	}

	cur, curPkg, curTypeName := c, pkg, typeName

	for cur.BaseType != "" {
		handle, err := root.Lookup(curPkg, string(cur.BaseType))
		if err != nil {
			return cerr.New(cerr.InvalidType, cerr.Location{Package: curPkg.Name, Type: curTypeName, Field: "baseType"},
				"base type %q does not resolve: %s", cur.BaseType, err.Error())
		}

		if handle.DataType.Kind != ast.DTContainer {
			return cerr.New(cerr.ConflictingDataType, cerr.Location{Package: curPkg.Name, Type: curTypeName, Field: "baseType"},
				"base type %q is not a ContainerDataType", cur.BaseType)
		}

		base := handle.DataType.Container

		if err := register(base.Entries, string(cur.BaseType)); err != nil {
			return err
		}

		if err := register(base.TrailerEntries, string(cur.BaseType)); err != nil {
			return err
		}

		basePkgName, baseTypeName := splitQualified(string(cur.BaseType))
		if basePkgName == "" {
			basePkgName = curPkg.Name
		}

		nextPkg, ok := root.Package(basePkgName)
		if !ok {
			return cerr.New(cerr.InvalidType, cerr.Location{Package: curPkg.Name, Type: curTypeName, Field: "baseType"},
				"no such package %q", basePkgName)
		}

		cur, curPkg, curTypeName = base, nextPkg, baseTypeName
	}

	if err := validateListEntryFields(root, pkg, typeName, c); err != nil {
		return err
	}

	return nil
}

func validateListEntryFields(root *scope.Root, pkg *scope.Package, typeName string, c *ast.ContainerDataType) *cerr.Error {
	all := append(append([]ast.EntryElement{}, c.Entries...), c.TrailerEntries...)

	byName := map[string]ast.EntryElement{}
	for _, e := range all {
		if name := e.NodeName(); name != "" {
			byName[name] = e
		}
	}

	for _, e := range all {
		if e.Kind != ast.EEListEntry {
			continue
		}

		sibling, ok := byName[string(e.List.LengthField)]
		if !ok {
			return cerr.New(cerr.InvalidType, cerr.Location{Package: pkg.Name, Type: typeName, Field: e.List.NodeName()},
				"lengthField %q does not name an entry in this container", e.List.LengthField)
		}

		ref, hasRef := sibling.TypeRef()
		if !hasRef {
			return cerr.New(cerr.InvalidType, cerr.Location{Package: pkg.Name, Type: typeName, Field: e.List.NodeName()},
				"lengthField %q does not carry a resolvable type reference", e.List.LengthField)
		}

		handle, err := root.Lookup(pkg, string(ref))
		if err != nil {
			return err
		}

		if handle.DataType.Kind != ast.DTInteger {
			return cerr.New(cerr.InvalidType, cerr.Location{Package: pkg.Name, Type: typeName, Field: e.List.NodeName()},
				"lengthField %q must reference an integer-typed entry", e.List.LengthField)
		}
	}

	return nil
}
