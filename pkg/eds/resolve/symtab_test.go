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
	"testing"

	"github.com/nasa-eds/edsc/pkg/eds/ast"
	"github.com/nasa-eds/edsc/pkg/eds/cerr"
	"github.com/nasa-eds/edsc/pkg/eds/scope"
)

func intEntry(name string, ref ast.QualifiedName) ast.EntryElement {
	return ast.EntryElement{Kind: ast.EEPlain, Entry: &ast.Entry{NamedEntityType: ast.NamedEntityType{Name: ast.Identifier(name)}, Type: ref}}
}

func listEntry(name string, ref ast.QualifiedName, lengthField string) ast.EntryElement {
	return ast.EntryElement{Kind: ast.EEListEntry, List: &ast.ListEntry{
		NamedEntityType: ast.NamedEntityType{Name: ast.Identifier(name)},
		Type:            ref,
		LengthField:     ast.Identifier(lengthField),
	}}
}

func intType(name string) ast.DataType {
	return ast.DataType{Kind: ast.DTInteger, Integer: &ast.IntegerDataType{NamedEntityType: ast.NamedEntityType{Name: ast.Identifier(name)}}}
}

func containerType(name string, c *ast.ContainerDataType) ast.DataType {
	c.NamedEntityType = ast.NamedEntityType{Name: ast.Identifier(name)}
	return ast.DataType{Kind: ast.DTContainer, Container: c}
}

func TestValidateContainerChainsRejectsCollisionAcrossBase(t *testing.T) {
	root := scope.NewRoot()

	pf := &ast.PackageFile{Packages: []*ast.Package{
		{
			NamedEntityType: ast.NamedEntityType{Name: "pkgA"},
			DataTypes: []ast.DataType{
				intType("Byte"),
				containerType("Base", &ast.ContainerDataType{Entries: []ast.EntryElement{intEntry("id", "pkgA/Byte")}}),
				containerType("Derived", &ast.ContainerDataType{
					BaseType: "Base",
					Entries:  []ast.EntryElement{intEntry("id", "pkgA/Byte")},
				}),
			},
		},
	}}

	if err := BuildSymbolTable(root, pf); err != nil {
		t.Fatalf("unexpected error building symbol table: %v", err)
	}

	err := ValidateContainerChains(root)
	if err == nil {
		t.Fatal("expected a collision error between Derived and its base Base")
	}

	if err.Kind != cerr.ConflictingDataType {
		t.Fatalf("expected ConflictingDataType, got %v", err.Kind)
	}
}

func TestValidateContainerChainsAcceptsDisjointNames(t *testing.T) {
	root := scope.NewRoot()

	pf := &ast.PackageFile{Packages: []*ast.Package{
		{
			NamedEntityType: ast.NamedEntityType{Name: "pkgA"},
			DataTypes: []ast.DataType{
				intType("Byte"),
				containerType("Base", &ast.ContainerDataType{Entries: []ast.EntryElement{intEntry("id", "pkgA/Byte")}}),
				containerType("Derived", &ast.ContainerDataType{
					BaseType: "Base",
					Entries:  []ast.EntryElement{intEntry("payload", "pkgA/Byte")},
				}),
			},
		},
	}}

	if err := BuildSymbolTable(root, pf); err != nil {
		t.Fatalf("unexpected error building symbol table: %v", err)
	}

	if err := ValidateContainerChains(root); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateListEntryFieldsRejectsNonIntegerSibling(t *testing.T) {
	root := scope.NewRoot()

	pf := &ast.PackageFile{Packages: []*ast.Package{
		{
			NamedEntityType: ast.NamedEntityType{Name: "pkgA"},
			DataTypes: []ast.DataType{
				{Kind: ast.DTString, String: &ast.StringDataType{NamedEntityType: ast.NamedEntityType{Name: "Str"}}},
				intType("Row"),
				containerType("Table", &ast.ContainerDataType{
					Entries: []ast.EntryElement{
						intEntry("count", "pkgA/Str"),
						listEntry("rows", "pkgA/Row", "count"),
					},
				}),
			},
		},
	}}

	if err := BuildSymbolTable(root, pf); err != nil {
		t.Fatalf("unexpected error building symbol table: %v", err)
	}

	err := ValidateContainerChains(root)
	if err == nil {
		t.Fatal("expected an error: lengthField sibling is not integer-typed")
	}

	if err.Kind != cerr.InvalidType {
		t.Fatalf("expected InvalidType, got %v", err.Kind)
	}
}

func TestValidateListEntryFieldsAcceptsIntegerSibling(t *testing.T) {
	root := scope.NewRoot()

	pf := &ast.PackageFile{Packages: []*ast.Package{
		{
			NamedEntityType: ast.NamedEntityType{Name: "pkgA"},
			DataTypes: []ast.DataType{
				intType("Byte"),
				intType("Row"),
				containerType("Table", &ast.ContainerDataType{
					Entries: []ast.EntryElement{
						intEntry("count", "pkgA/Byte"),
						listEntry("rows", "pkgA/Row", "count"),
					},
				}),
			},
		},
	}}

	if err := BuildSymbolTable(root, pf); err != nil {
		t.Fatalf("unexpected error building symbol table: %v", err)
	}

	if err := ValidateContainerChains(root); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
