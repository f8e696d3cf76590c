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

package doc

import (
	"strings"
	"testing"

	"github.com/nasa-eds/edsc/pkg/eds/ast"
)

func TestRenderConstraintTableEmpty(t *testing.T) {
	if got := RenderConstraintTable(nil); got != "" {
		t.Fatalf("expected empty string for nil constraint set, got %q", got)
	}

	if got := RenderConstraintTable(&ast.ConstraintSet{}); got != "" {
		t.Fatalf("expected empty string for empty constraint set, got %q", got)
	}
}

func TestRenderConstraintTableRows(t *testing.T) {
	cs := &ast.ConstraintSet{Constraints: []ast.Constraint{
		{Kind: ast.CValue, Entry: "mode", Value: "3"},
		{Kind: ast.CType, Entry: "payload", Type: "pkgA/Row"},
	}}

	got := RenderConstraintTable(cs)

	if !strings.Contains(got, "| mode | Value | 3 |") {
		t.Errorf("missing value-constraint row: %s", got)
	}

	if !strings.Contains(got, "| payload | Type | pkgA/Row |") {
		t.Errorf("missing type-constraint row: %s", got)
	}
}

func TestRenderRangeVariants(t *testing.T) {
	cases := []struct {
		r    ast.Range
		want string
	}{
		{ast.Range{Min: "0", Max: "10", RangeType: ast.InclusiveMinInclusiveMax}, "{x | 0 <= x <= 10}"},
		{ast.Range{Min: "0", Max: "10", RangeType: ast.ExclusiveMinExclusiveMax}, "{x | 0 < x < 10}"},
		{ast.Range{Min: "5", RangeType: ast.AtLeast}, "{x | 5 <= x}"},
		{ast.Range{Max: "5", RangeType: ast.LessThan}, "{x | x < 5}"},
	}

	for _, c := range cases {
		if got := RenderRange(c.r); got != c.want {
			t.Errorf("RenderRange(%+v) = %q, want %q", c.r, got, c.want)
		}
	}
}

func TestRenderTypeSummary(t *testing.T) {
	names := []string{"Header", "Base"}

	got := RenderTypeSummary(names, func(n string) (string, bool) {
		if n == "Header" {
			return "Base", true
		}

		return "", false
	})

	if !strings.Contains(got, "| Header | Base |") {
		t.Errorf("missing Header row: %s", got)
	}

	if !strings.Contains(got, "| Base | <None> |") {
		t.Errorf("missing fallback <None> for Base row: %s", got)
	}
}
