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

// Package resolve implements the Resolver (section 4.C): a total, pure
// traversal from the Raw Model (A) to the Resolved AST (C), evaluating
// every string attribute through the Expression Evaluator (B). It is
// exhaustive over every raw-model variant; unsupported variants are
// explicit UnsupportedDataType/UnsupportedEntryElement failures, never
// silent drops. The first error anywhere in a package short-circuits that
// package's resolution (section 4.C "Failure policy").
package resolve

import (
	"strings"

	"github.com/nasa-eds/edsc/pkg/eds/ast"
	"github.com/nasa-eds/edsc/pkg/eds/cerr"
	"github.com/nasa-eds/edsc/pkg/eds/expr"
	"github.com/nasa-eds/edsc/pkg/eds/paramns"
	"github.com/nasa-eds/edsc/pkg/eds/rawmodel"
)

// Resolver holds the one piece of shared, read-only state every resolution
// step consults: the mission-parameter namespace (section 3.1).
type Resolver struct {
	ns   *paramns.Namespace
	file string
}

// New constructs a Resolver bound to a mission-parameter namespace and the
// name of the file being resolved (used only for diagnostics).
func New(ns *paramns.Namespace, fileName string) *Resolver {
	if ns == nil {
		ns = paramns.Empty()
	}

	return &Resolver{ns: ns, file: fileName}
}

func (r *Resolver) loc(pkg, typ, field string) cerr.Location {
	return cerr.Location{File: r.file, Package: pkg, Type: typ, Field: field}
}

// evalString evaluates a raw expression string and returns its string form.
func (r *Resolver) evalString(raw string, loc cerr.Location) (string, *cerr.Error) {
	v, err := expr.Eval(r.ns, raw, loc)
	if err != nil {
		return "", err
	}

	return v.AsString(), nil
}

// evalUint evaluates a raw expression string as an unsigned integer.
func (r *Resolver) evalUint(raw string, loc cerr.Location) (uint, *cerr.Error) {
	v, err := expr.Eval(r.ns, raw, loc)
	if err != nil {
		return 0, err
	}

	n, ok := v.AsInt()
	if !ok || n < 0 {
		return 0, cerr.New(cerr.ExpressionEvalFailed, loc, "expected a non-negative integer, got %q", v.AsString())
	}

	return uint(n), nil
}

// ResolveDocument resolves every Package in a raw Document in document
// order. The first package-level error aborts processing of the remaining
// packages in this document (section 4.C).
func (r *Resolver) ResolveDocument(doc *rawmodel.Document) (*ast.PackageFile, *cerr.Error) {
	pf := &ast.PackageFile{}

	if doc.Device != nil {
		pf.Device = &ast.Device{Name: doc.Device.Name}
		if doc.Device.Metadata != nil {
			pf.Device.Metadata = &ast.MetaData{
				CreationDate: doc.Device.Metadata.CreationDate,
				Creator:      doc.Device.Metadata.Creator,
			}
		}
	}

	for _, rawPkg := range doc.Packages {
		pkg, err := r.ResolvePackage(rawPkg)
		if err != nil {
			return nil, err
		}

		pf.Packages = append(pf.Packages, pkg)
	}

	return pf, nil
}

// ResolvePackage resolves one raw Package into its typed form, in declared
// order, failing fast on the first error (section 4.C).
func (r *Resolver) ResolvePackage(raw rawmodel.Package) (*ast.Package, *cerr.Error) {
	pkg := &ast.Package{
		NamedEntityType: ast.NamedEntityType{
			Name:             ast.Identifier(raw.Name),
			ShortDescription: raw.ShortDescription,
			LongDescription:  raw.LongDescription,
		},
	}

	for _, rawDT := range raw.DataTypes {
		dt, err := r.resolveDataType(raw.Name, rawDT)
		if err != nil {
			return nil, err
		}

		pkg.DataTypes = append(pkg.DataTypes, dt)
	}

	for _, rawComp := range raw.ComponentSet {
		comp, err := r.resolveComponent(raw.Name, rawComp)
		if err != nil {
			return nil, err
		}

		pkg.Components = append(pkg.Components, comp)
	}

	return pkg, nil
}

func (r *Resolver) resolveDataType(pkgName string, raw rawmodel.DataType) (ast.DataType, *cerr.Error) {
	switch raw.Kind {
	case rawmodel.KindBoolean:
		v, err := r.resolveBoolean(pkgName, raw.Boolean)
		return ast.DataType{Kind: ast.DTBoolean, Boolean: v}, err
	case rawmodel.KindInteger:
		v, err := r.resolveInteger(pkgName, raw.Integer)
		return ast.DataType{Kind: ast.DTInteger, Integer: v}, err
	case rawmodel.KindFloat:
		v, err := r.resolveFloat(pkgName, raw.Float)
		return ast.DataType{Kind: ast.DTFloat, Float: v}, err
	case rawmodel.KindString:
		v, err := r.resolveString(pkgName, raw.String)
		return ast.DataType{Kind: ast.DTString, String: v}, err
	case rawmodel.KindEnumerated:
		v, err := r.resolveEnumerated(pkgName, raw.Enum)
		return ast.DataType{Kind: ast.DTEnumerated, Enum: v}, err
	case rawmodel.KindContainer:
		v, err := r.resolveContainer(pkgName, raw.Container)
		return ast.DataType{Kind: ast.DTContainer, Container: v}, err
	case rawmodel.KindArray:
		v, err := r.resolveArray(pkgName, raw.Array)
		return ast.DataType{Kind: ast.DTArray, Array: v}, err
	case rawmodel.KindSubRange:
		v, err := r.resolveSubRange(pkgName, raw.SubRange)
		return ast.DataType{Kind: ast.DTSubRange, SubRange: v}, err
	default:
		return ast.DataType{}, cerr.New(cerr.UnsupportedDataType, r.loc(pkgName, raw.XMLName, ""),
			"data type element %q is not supported", raw.XMLName)
	}
}

func (r *Resolver) namedEntity(raw rawmodel.NamedEntityType) ast.NamedEntityType {
	return ast.NamedEntityType{
		Name:             ast.Identifier(raw.Name),
		ShortDescription: raw.ShortDescription,
		LongDescription:  raw.LongDescription,
	}
}

func (r *Resolver) resolveBoolean(pkgName string, raw *rawmodel.BooleanDataType) (*ast.BooleanDataType, *cerr.Error) {
	loc := r.loc(pkgName, raw.Name, "")

	enc := ast.BooleanDataEncoding{SizeInBits: 1, FalseValue: ast.ZeroIsFalse}

	if raw.Encoding != nil {
		if raw.Encoding.SizeInBits != "" {
			b, err := r.evalUint(raw.Encoding.SizeInBits, loc)
			if err != nil {
				return nil, err
			}

			if _, err := chooseHostWidth(b, loc); err != nil {
				return nil, err
			}

			enc.SizeInBits = b
		}

		fv, err := r.evalString(orDefault(raw.Encoding.FalseValue), loc)
		if err != nil {
			return nil, err
		}

		kw, err := lookupBooleanFalseValue(fv, loc)
		if err != nil {
			return nil, err
		}

		enc.FalseValue = kw
	}

	return &ast.BooleanDataType{NamedEntityType: r.namedEntity(raw.NamedEntityType), Encoding: enc}, nil
}

func orDefault(s string) string { return s }

func (r *Resolver) resolveIntegerEncoding(pkgName, typeName string, raw *rawmodel.IntegerDataEncoding) (ast.IntegerDataEncoding, *cerr.Error) {
	loc := r.loc(pkgName, typeName, "sizeInBits")

	if raw == nil || raw.SizeInBits == "" {
		return ast.IntegerDataEncoding{}, cerr.New(cerr.InvalidBitSize, loc, "integer data type is missing a sizeInBits encoding attribute")
	}

	b, err := r.evalUint(raw.SizeInBits, loc)
	if err != nil {
		return ast.IntegerDataEncoding{}, err
	}

	if _, err := chooseHostWidth(b, loc); err != nil {
		return ast.IntegerDataEncoding{}, err
	}

	encStr, err := r.evalString(raw.Encoding, r.loc(pkgName, typeName, "encoding"))
	if err != nil {
		return ast.IntegerDataEncoding{}, err
	}

	enc, err := lookupIntegerEncoding(encStr, r.loc(pkgName, typeName, "encoding"))
	if err != nil {
		return ast.IntegerDataEncoding{}, err
	}

	if enc == ast.BinaryCodedDecimal && b%4 != 0 {
		return ast.IntegerDataEncoding{}, cerr.New(cerr.InvalidBitSize, loc, "packed-BCD size-in-bits %d must be a multiple of 4", b)
	}

	boStr, err := r.evalString(raw.ByteOrder, r.loc(pkgName, typeName, "byteOrder"))
	if err != nil {
		return ast.IntegerDataEncoding{}, err
	}

	bo, err := lookupByteOrder(boStr, r.loc(pkgName, typeName, "byteOrder"))
	if err != nil {
		return ast.IntegerDataEncoding{}, err
	}

	return ast.IntegerDataEncoding{SizeInBits: b, Encoding: enc, ByteOrder: bo}, nil
}

func (r *Resolver) resolveRange(pkgName, typeName string, raw *rawmodel.Range) (*ast.Range, *cerr.Error) {
	if raw == nil || raw.MinMaxRange == nil {
		return nil, nil
	}

	loc := r.loc(pkgName, typeName, "range")

	minV, err := r.evalString(raw.MinMaxRange.Min, loc)
	if err != nil {
		return nil, err
	}

	maxV, err := r.evalString(raw.MinMaxRange.Max, loc)
	if err != nil {
		return nil, err
	}

	rtStr, err := r.evalString(raw.MinMaxRange.RangeType, loc)
	if err != nil {
		return nil, err
	}

	rt, err := lookupRangeType(rtStr, loc)
	if err != nil {
		return nil, err
	}

	return &ast.Range{Min: ast.Literal(minV), Max: ast.Literal(maxV), RangeType: rt}, nil
}

func (r *Resolver) resolveInteger(pkgName string, raw *rawmodel.IntegerDataType) (*ast.IntegerDataType, *cerr.Error) {
	enc, err := r.resolveIntegerEncoding(pkgName, raw.Name, raw.Encoding)
	if err != nil {
		return nil, err
	}

	rng, err := r.resolveRange(pkgName, raw.Name, raw.Range)
	if err != nil {
		return nil, err
	}

	return &ast.IntegerDataType{NamedEntityType: r.namedEntity(raw.NamedEntityType), Encoding: enc, Range: rng}, nil
}

func (r *Resolver) resolveFloat(pkgName string, raw *rawmodel.FloatDataType) (*ast.FloatDataType, *cerr.Error) {
	loc := r.loc(pkgName, raw.Name, "FloatDataEncoding")

	if raw.Encoding == nil || raw.Encoding.SizeInBits == "" {
		return nil, cerr.New(cerr.InvalidBitSize, loc, "float data type is missing a sizeInBits encoding attribute")
	}

	b, err := r.evalUint(raw.Encoding.SizeInBits, loc)
	if err != nil {
		return nil, err
	}

	if _, err := chooseHostWidth(b, loc); err != nil {
		return nil, err
	}

	epStr, err := r.evalString(raw.Encoding.EncodingAndPrecision, loc)
	if err != nil {
		return nil, err
	}

	ep, err := lookupFloatEncoding(epStr, loc)
	if err != nil {
		return nil, err
	}

	boStr, err := r.evalString(raw.Encoding.ByteOrder, loc)
	if err != nil {
		return nil, err
	}

	bo, err := lookupByteOrder(boStr, loc)
	if err != nil {
		return nil, err
	}

	rng, err := r.resolveRange(pkgName, raw.Name, raw.Range)
	if err != nil {
		return nil, err
	}

	enc := ast.FloatDataEncoding{SizeInBits: b, EncodingAndPrecision: ep, ByteOrder: bo}

	return &ast.FloatDataType{NamedEntityType: r.namedEntity(raw.NamedEntityType), Encoding: enc, Range: rng}, nil
}

func (r *Resolver) resolveString(pkgName string, raw *rawmodel.StringDataType) (*ast.StringDataType, *cerr.Error) {
	loc := r.loc(pkgName, raw.Name, "length")

	length, err := r.evalUint(raw.Length, loc)
	if err != nil {
		return nil, err
	}

	enc := ast.StringDataEncoding{Encoding: ast.ASCII}
	fixedLength := true

	if raw.Encoding != nil {
		encStr, err := r.evalString(raw.Encoding.Encoding, loc)
		if err != nil {
			return nil, err
		}

		kw, err := lookupStringEncoding(encStr, loc)
		if err != nil {
			return nil, err
		}

		enc.Encoding = kw

		if raw.Encoding.TerminationCharacter != "" {
			termStr, err := r.evalString(raw.Encoding.TerminationCharacter, loc)
			if err != nil {
				return nil, err
			}

			if len(termStr) > 0 {
				rn := []rune(termStr)[0]
				enc.TerminationCharacter = &rn
				fixedLength = false
			}
		}
	}

	return &ast.StringDataType{
		NamedEntityType: r.namedEntity(raw.NamedEntityType),
		Length:          length,
		Encoding:        enc,
		FixedLength:     fixedLength,
	}, nil
}

func (r *Resolver) resolveEnumerated(pkgName string, raw *rawmodel.EnumeratedDataType) (*ast.EnumeratedDataType, *cerr.Error) {
	enc, err := r.resolveIntegerEncoding(pkgName, raw.Name, raw.Encoding)
	if err != nil {
		return nil, err
	}

	if raw.EnumerationList == nil || len(raw.EnumerationList.Enumeration) == 0 {
		return nil, cerr.New(cerr.InvalidEnumKeyword, r.loc(pkgName, raw.Name, "EnumerationList"),
			"enumerated data type %q must declare at least one enumeration label/value pair", raw.Name)
	}

	var entries []ast.Enumeration

	for _, e := range raw.EnumerationList.Enumeration {
		loc := r.loc(pkgName, raw.Name, e.Label)

		valStr, err := r.evalString(e.Value, loc)
		if err != nil {
			return nil, err
		}

		entries = append(entries, ast.Enumeration{
			Label:            ast.Identifier(e.Label),
			Value:            ast.Literal(valStr),
			ShortDescription: e.ShortDescription,
		})
	}

	return &ast.EnumeratedDataType{
		NamedEntityType: r.namedEntity(raw.NamedEntityType),
		Encoding:        enc,
		Enumeration:     entries,
	}, nil
}

func (r *Resolver) resolveArray(pkgName string, raw *rawmodel.ArrayDataType) (*ast.ArrayDataType, *cerr.Error) {
	loc := r.loc(pkgName, raw.Name, "DimensionList")

	if raw.DimensionList == nil || len(raw.DimensionList.Dimension) == 0 {
		return nil, cerr.New(cerr.InvalidType, loc, "array data type %q must declare at least one dimension", raw.Name)
	}

	var dims []ast.Dimension

	for _, d := range raw.DimensionList.Dimension {
		sz, err := r.evalUint(d.Size, loc)
		if err != nil {
			return nil, err
		}

		dims = append(dims, ast.Dimension{Size: sz})
	}

	return &ast.ArrayDataType{
		NamedEntityType: r.namedEntity(raw.NamedEntityType),
		DataTypeRef:     ast.QualifiedName(raw.DataTypeRef),
		Dimensions:      dims,
	}, nil
}

func (r *Resolver) resolveSubRange(pkgName string, raw *rawmodel.SubRangeDataType) (*ast.SubRangeDataType, *cerr.Error) {
	rng, err := r.resolveRange(pkgName, raw.Name, raw.Range)
	if err != nil {
		return nil, err
	}

	if rng == nil {
		rng = &ast.Range{RangeType: ast.ExclusiveMinExclusiveMax}
	}

	return &ast.SubRangeDataType{
		NamedEntityType: r.namedEntity(raw.NamedEntityType),
		BaseType:        ast.QualifiedName(raw.BaseType),
		Unit:            raw.Unit,
		Range:           *rng,
	}, nil
}

func (r *Resolver) resolveComponent(pkgName string, raw rawmodel.Component) (*ast.Component, *cerr.Error) {
	comp := &ast.Component{NamedEntityType: r.namedEntity(raw.NamedEntityType)}

	for _, ri := range raw.RequiredInterfaceSet {
		var maps []ast.GenericTypeMap

		for _, gm := range ri.GenericTypeMapSet {
			maps = append(maps, ast.GenericTypeMap{Name: gm.Name, Type: ast.QualifiedName(gm.Type)})
		}

		comp.RequiredInterfaces = append(comp.RequiredInterfaces, ast.RequiredInterface{
			Name:            ri.Name,
			Type:            ast.QualifiedName(ri.Type),
			GenericTypeMaps: maps,
		})
	}

	return comp, nil
}

// splitQualified splits a qualified name "Pkg/Type" into its parts; a bare
// name returns ("", name).
func splitQualified(q string) (string, string) {
	if idx := strings.IndexByte(q, '/'); idx >= 0 {
		return q[:idx], q[idx+1:]
	}

	return "", q
}
