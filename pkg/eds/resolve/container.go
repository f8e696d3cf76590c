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
	"strconv"
	"strings"

	"github.com/nasa-eds/edsc/pkg/eds/ast"
	"github.com/nasa-eds/edsc/pkg/eds/cerr"
	"github.com/nasa-eds/edsc/pkg/eds/rawmodel"
)

func (r *Resolver) resolveContainer(pkgName string, raw *rawmodel.ContainerDataType) (*ast.ContainerDataType, *cerr.Error) {
	c := &ast.ContainerDataType{
		NamedEntityType: r.namedEntity(raw.NamedEntityType),
		BaseType:        ast.QualifiedName(raw.BaseType),
		Abstract:        raw.Abstract == "true" || raw.Abstract == "1",
	}

	if raw.EntryList != nil {
		entries, err := r.resolveEntryList(pkgName, raw.Name, raw.EntryList.Entries)
		if err != nil {
			return nil, err
		}

		c.Entries = entries
	}

	if raw.TrailerEntryList != nil {
		entries, err := r.resolveEntryList(pkgName, raw.Name, raw.TrailerEntryList.Entries)
		if err != nil {
			return nil, err
		}

		c.TrailerEntries = entries
	}

	if err := validateLocalEntryUniqueness(pkgName, raw.Name, append(append([]ast.EntryElement{}, c.Entries...), c.TrailerEntries...)); err != nil {
		return nil, err
	}

	if raw.ConstraintSet != nil {
		cs, err := r.resolveConstraintSet(pkgName, raw.Name, raw.ConstraintSet)
		if err != nil {
			return nil, err
		}

		c.ConstraintSet = cs
	}

	return c, nil
}

// validateLocalEntryUniqueness checks section 3.3's "within a container,
// entry names are unique" invariant over the entries declared directly in
// this container. The extension of this invariant across a transitive base
// chain (which may live in another, not-yet-resolved package) is checked
// later by ValidateContainerChains, once the full symbol table exists.
func validateLocalEntryUniqueness(pkgName, typeName string, entries []ast.EntryElement) *cerr.Error {
	seen := map[string]bool{}

	for _, e := range entries {
		name := e.NodeName()
		if name == "" {
			continue
		}

		if seen[name] {
			return cerr.New(cerr.ConflictingDataType, cerr.Location{Package: pkgName, Type: typeName, Field: name},
				"entry name %q declared more than once in container %q", name, typeName)
		}

		seen[name] = true
	}

	return nil
}

func (r *Resolver) resolveEntryList(pkgName, typeName string, raw []rawmodel.EntryElement) ([]ast.EntryElement, *cerr.Error) {
	var out []ast.EntryElement

	// seenNames records the name of every sibling entry seen so far, of
	// any entry kind, so a ListEntry's length field (section 4.E
	// supplement) can be checked to appear earlier. Whether that sibling
	// references an IntegerDataType can only be confirmed once the symbol
	// table resolves the referenced type, so here we only confirm the
	// *name* appeared earlier; type-checking happens in
	// ValidateContainerChains.
	seenNames := map[string]bool{}

	for _, raw := range raw {
		elem, err := r.resolveEntryElement(pkgName, typeName, raw, seenNames)
		if err != nil {
			return nil, err
		}

		if name := elem.NodeName(); name != "" {
			seenNames[name] = true
		}

		out = append(out, elem)
	}

	return out, nil
}

func (r *Resolver) resolveEntryElement(pkgName, typeName string, raw rawmodel.EntryElement, seenNames map[string]bool) (ast.EntryElement, *cerr.Error) {
	switch raw.Kind {
	case rawmodel.EntryPlain:
		e := raw.Entry
		return ast.EntryElement{Kind: ast.EEPlain, Entry: &ast.Entry{
			NamedEntityType: r.namedEntity(e.NamedEntityType),
			Type:            ast.QualifiedName(e.Type),
		}}, nil

	case rawmodel.EntryFixedValue:
		e := raw.FixedValue
		loc := r.loc(pkgName, typeName, e.Name)

		val, err := r.evalString(e.FixedValue, loc)
		if err != nil {
			return ast.EntryElement{}, err
		}

		return ast.EntryElement{Kind: ast.EEFixedValue, FixedValue: &ast.FixedValueEntry{
			NamedEntityType: r.namedEntity(e.NamedEntityType),
			Type:            ast.QualifiedName(e.Type),
			FixedValue:      ast.Literal(val),
		}}, nil

	case rawmodel.EntryPadding:
		e := raw.Padding
		loc := r.loc(pkgName, typeName, e.Name)

		size, err := r.evalUint(e.SizeInBits, loc)
		if err != nil {
			return ast.EntryElement{}, err
		}

		if size == 0 {
			return ast.EntryElement{}, cerr.New(cerr.InvalidBitSize, loc, "padding entry size-in-bits must be strictly positive")
		}

		return ast.EntryElement{Kind: ast.EEPadding, Padding: &ast.PaddingEntry{
			NamedEntityType: r.namedEntity(e.NamedEntityType),
			SizeInBits:      size,
		}}, nil

	case rawmodel.EntryLength:
		e := raw.Length
		loc := r.loc(pkgName, typeName, e.Name)

		var calib *ast.PolynomialCalibrator

		if e.PolynomialCalibrator != nil {
			c, err := r.resolveCalibrator(loc, e.PolynomialCalibrator)
			if err != nil {
				return ast.EntryElement{}, err
			}

			calib = c
		}

		return ast.EntryElement{Kind: ast.EELength, Length: &ast.LengthEntry{
			NamedEntityType: r.namedEntity(e.NamedEntityType),
			Type:            ast.QualifiedName(e.Type),
			Calibration:     calib,
		}}, nil

	case rawmodel.EntryList_:
		e := raw.List
		loc := r.loc(pkgName, typeName, e.Name)

		if e.LengthField == "" {
			return ast.EntryElement{}, cerr.New(cerr.InvalidType, loc,
				"list entry %q must name the sibling entry supplying its repetition count via lengthField", e.Name)
		}

		if !seenNames[e.LengthField] {
			return ast.EntryElement{}, cerr.New(cerr.InvalidType, loc,
				"list entry %q references length field %q which does not appear earlier in the same container", e.Name, e.LengthField)
		}

		return ast.EntryElement{Kind: ast.EEListEntry, List: &ast.ListEntry{
			NamedEntityType: r.namedEntity(e.NamedEntityType),
			Type:            ast.QualifiedName(e.Type),
			LengthField:     ast.Identifier(e.LengthField),
		}}, nil

	case rawmodel.EntryErrorControl:
		e := raw.ErrorControl
		loc := r.loc(pkgName, typeName, e.Name)

		ectStr, err := r.evalString(e.ErrorControlType, loc)
		if err != nil {
			return ast.EntryElement{}, err
		}

		ect, err := lookupErrorControlType(ectStr, loc)
		if err != nil {
			return ast.EntryElement{}, err
		}

		return ast.EntryElement{Kind: ast.EEErrorControl, ErrorControl: &ast.ErrorControlEntry{
			NamedEntityType:  r.namedEntity(e.NamedEntityType),
			Type:             ast.QualifiedName(e.Type),
			ErrorControlType: ect,
		}}, nil

	default:
		return ast.EntryElement{}, cerr.New(cerr.UnsupportedEntryElement, r.loc(pkgName, typeName, ""),
			"entry element variant is not supported")
	}
}

func (r *Resolver) resolveCalibrator(loc cerr.Location, raw *rawmodel.PolynomialCalibrator) (*ast.PolynomialCalibrator, *cerr.Error) {
	if len(raw.Terms) == 0 {
		return nil, cerr.New(cerr.InvalidType, loc, "polynomial calibrator must declare at least one term")
	}

	var terms []ast.Term

	leadingExponent := -1.0
	leadingCoefficient := 0.0

	for _, t := range raw.Terms {
		coeffStr, err := r.evalString(t.Coefficient, loc)
		if err != nil {
			return nil, err
		}

		expStr, err := r.evalString(t.Exponent, loc)
		if err != nil {
			return nil, err
		}

		terms = append(terms, ast.Term{Coefficient: ast.Literal(coeffStr), Exponent: ast.Literal(expStr)})

		coeffN, coeffOK := parseFloatLiteral(coeffStr)
		expN, expOK := parseFloatLiteral(expStr)

		if coeffOK && expOK && expN > leadingExponent {
			leadingExponent = expN
			leadingCoefficient = coeffN
		}
	}

	// SPEC_FULL.md 4.C: a calibrator is only reversible if its
	// highest-exponent term has a non-zero coefficient. The reference
	// implementation accepts a calibrator without checking this; this
	// repository enforces it.
	if leadingCoefficient == 0 {
		return nil, cerr.New(cerr.InvalidType, loc, "length entry calibrator is not invertible: leading coefficient is zero")
	}

	return &ast.PolynomialCalibrator{Terms: terms}, nil
}

func parseFloatLiteral(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}

	return n, true
}

func (r *Resolver) resolveConstraintSet(pkgName, typeName string, raw *rawmodel.ConstraintSet) (*ast.ConstraintSet, *cerr.Error) {
	cs := &ast.ConstraintSet{}

	for _, c := range raw.Constraints {
		loc := r.loc(pkgName, typeName, c.Entry)

		switch c.Kind {
		case rawmodel.ConstraintRange:
			var rng *ast.Range

			if c.RangeConstraint != nil {
				resolved, err := r.resolveRange(pkgName, typeName, c.RangeConstraint)
				if err != nil {
					return nil, err
				}

				rng = resolved
			}

			cs.Constraints = append(cs.Constraints, ast.Constraint{Kind: ast.CRange, Entry: ast.Identifier(c.Entry), Range: rng})
		case rawmodel.ConstraintType:
			cs.Constraints = append(cs.Constraints, ast.Constraint{Kind: ast.CType, Entry: ast.Identifier(c.Entry), Type: ast.QualifiedName(c.TypeConstraint)})
		case rawmodel.ConstraintValue:
			val, err := r.evalString(c.ValueConstraint, loc)
			if err != nil {
				return nil, err
			}

			cs.Constraints = append(cs.Constraints, ast.Constraint{Kind: ast.CValue, Entry: ast.Identifier(c.Entry), Value: ast.Literal(val)})
		default:
			return nil, cerr.New(cerr.UnsupportedEntryElement, loc, "constraint variant is not supported")
		}
	}

	return cs, nil
}
