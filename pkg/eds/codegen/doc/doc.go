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

// Package doc implements the Doc Renderer (section 4.H): markdown-style
// tables woven into emitted doc blocks, grounded on the original's
// codegen/doc.rs table-building approach but re-expressed with plain string
// building, since no table/markdown-rendering library appears anywhere in
// the example corpus and the shape here (two small fixed-column tables) does
// not warrant one.
package doc

import (
	"fmt"
	"strings"

	"github.com/nasa-eds/edsc/pkg/eds/ast"
)

// RenderConstraintTable renders one row per constraint: entry name, kind,
// detail (section 4.H).
func RenderConstraintTable(cs *ast.ConstraintSet) string {
	if cs == nil || len(cs.Constraints) == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString("| Entry | Kind | Detail |\n")
	b.WriteString("|---|---|---|\n")

	for _, c := range cs.Constraints {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", c.Entry, constraintKindLabel(c.Kind), constraintDetail(c))
	}

	return b.String()
}

func constraintKindLabel(k ast.ConstraintKind) string {
	switch k {
	case ast.CRange:
		return "Range"
	case ast.CType:
		return "Type"
	case ast.CValue:
		return "Value"
	default:
		return "?"
	}
}

func constraintDetail(c ast.Constraint) string {
	switch c.Kind {
	case ast.CRange:
		if c.Range == nil {
			return ""
		}

		return RenderRange(*c.Range)
	case ast.CType:
		return string(c.Type)
	case ast.CValue:
		return string(c.Value)
	default:
		return ""
	}
}

// RenderRange renders a Range in set-builder notation with the appropriate
// combination of strict/non-strict inequalities (section 4.H).
func RenderRange(r ast.Range) string {
	switch r.RangeType {
	case ast.ExclusiveMinExclusiveMax:
		return fmt.Sprintf("{x | %s < x < %s}", r.Min, r.Max)
	case ast.InclusiveMinInclusiveMax:
		return fmt.Sprintf("{x | %s <= x <= %s}", r.Min, r.Max)
	case ast.InclusiveMinExclusiveMax:
		return fmt.Sprintf("{x | %s <= x < %s}", r.Min, r.Max)
	case ast.ExclusiveMinInclusiveMax:
		return fmt.Sprintf("{x | %s < x <= %s}", r.Min, r.Max)
	case ast.GreaterThan:
		return fmt.Sprintf("{x | %s < x}", r.Min)
	case ast.AtLeast:
		return fmt.Sprintf("{x | %s <= x}", r.Min)
	case ast.LessThan:
		return fmt.Sprintf("{x | x < %s}", r.Max)
	case ast.AtMost:
		return fmt.Sprintf("{x | x <= %s}", r.Max)
	default:
		return ""
	}
}

// RenderTypeSummary renders a per-package data-type summary table: name,
// base type or "<None>" (section 4.H).
func RenderTypeSummary(names []string, baseOf func(string) (string, bool)) string {
	var b strings.Builder

	b.WriteString("| Data Type | Base Type |\n")
	b.WriteString("|---|---|\n")

	for _, name := range names {
		base, ok := baseOf(name)
		if !ok || base == "" {
			base = "<None>"
		}

		fmt.Fprintf(&b, "| %s | %s |\n", name, base)
	}

	return b.String()
}
