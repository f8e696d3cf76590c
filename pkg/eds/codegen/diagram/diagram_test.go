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

package diagram

import (
	"strings"
	"testing"

	"github.com/nasa-eds/edsc/pkg/eds/ast"
	"github.com/nasa-eds/edsc/pkg/eds/scope"
)

func defineInt(pkg *scope.Package, name string, bits uint) {
	_ = pkg.Define(name, &scope.TypeHandle{
		DataType: &ast.DataType{Kind: ast.DTInteger, Integer: &ast.IntegerDataType{
			NamedEntityType: ast.NamedEntityType{Name: ast.Identifier(name)},
			Encoding:        ast.IntegerDataEncoding{SizeInBits: bits},
		}},
		EmitterName: name,
	})
}

func plain(name string, ref ast.QualifiedName) ast.EntryElement {
	return ast.EntryElement{Kind: ast.EEPlain, Entry: &ast.Entry{NamedEntityType: ast.NamedEntityType{Name: ast.Identifier(name)}, Type: ref}}
}

func TestBuildFrameSumsEntryWidths(t *testing.T) {
	root := scope.NewRoot()
	pkg := root.DeclarePackage("pkgA")

	defineInt(pkg, "Byte", 8)
	defineInt(pkg, "Short", 16)

	c := &ast.ContainerDataType{
		NamedEntityType: ast.NamedEntityType{Name: "Header"},
		Entries: []ast.EntryElement{
			plain("version", "pkgA/Byte"),
			plain("length", "pkgA/Short"),
		},
	}

	f, err := BuildFrame(root, pkg, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.Width != 24 {
		t.Fatalf("expected total width 24, got %d", f.Width)
	}

	if len(f.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(f.Children))
	}
}

func TestBuildFrameInlinesBaseBeforeOwnEntries(t *testing.T) {
	root := scope.NewRoot()
	pkg := root.DeclarePackage("pkgA")

	defineInt(pkg, "Byte", 8)

	base := &ast.ContainerDataType{
		NamedEntityType: ast.NamedEntityType{Name: "Base"},
		Entries:         []ast.EntryElement{plain("id", "pkgA/Byte")},
	}

	_ = pkg.Define("Base", &scope.TypeHandle{DataType: &ast.DataType{Kind: ast.DTContainer, Container: base}, EmitterName: "Base"})

	derived := &ast.ContainerDataType{
		NamedEntityType: ast.NamedEntityType{Name: "Derived"},
		BaseType:        "Base",
		Entries:         []ast.EntryElement{plain("payload", "pkgA/Byte")},
	}

	f, err := BuildFrame(root, pkg, derived)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.Children) != 2 {
		t.Fatalf("expected base entry inlined before own entry, got %d children", len(f.Children))
	}

	if f.Children[0].Label != "id" || f.Children[1].Label != "payload" {
		t.Fatalf("unexpected child order: %+v", f.Children)
	}
}

func TestRenderProducesMinifiedSVG(t *testing.T) {
	root := scope.NewRoot()
	pkg := root.DeclarePackage("pkgA")

	defineInt(pkg, "Byte", 8)

	c := &ast.ContainerDataType{
		NamedEntityType: ast.NamedEntityType{Name: "Header"},
		Entries:         []ast.EntryElement{plain("version", "pkgA/Byte")},
	}

	svg, err := Render(root, pkg, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("unexpected SVG envelope: %s", svg)
	}

	if strings.Contains(svg, "  ") {
		t.Errorf("expected minified output with no double spaces: %s", svg)
	}
}
