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
package depwalk

import (
	"reflect"
	"testing"

	"github.com/nasa-eds/edsc/pkg/eds/ast"
)

func TestWalkerDocumentOrder(t *testing.T) {
	container := &ast.ContainerDataType{
		BaseType: "Common/Header",
		Entries: []ast.EntryElement{
			{Kind: ast.EEPlain, Entry: &ast.Entry{Type: "Common/U8"}},
			{Kind: ast.EELength, Length: &ast.LengthEntry{Type: "Common/U16"}},
		},
		TrailerEntries: []ast.EntryElement{
			{Kind: ast.EEErrorControl, ErrorControl: &ast.ErrorControlEntry{Type: "Common/Crc16"}},
		},
	}

	dt := &ast.DataType{Kind: ast.DTContainer, Container: container}

	w := NewWalker(dt)

	var got []ast.QualifiedName
	for w.HasNext() {
		got = append(got, w.Next())
	}

	want := []ast.QualifiedName{"Common/Header", "Common/U8", "Common/U16", "Common/Crc16"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDedupe(t *testing.T) {
	refs := []ast.QualifiedName{"A/T", "B/T", "A/T"}

	got := Dedupe(refs)

	want := []ast.QualifiedName{"A/T", "B/T"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
