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

// Package codegen implements the Codegen Core (section 4.F): for each
// resolved package it emits, in declared order, one Go struct per data type
// tagged with the bit-layout annotations a wire codec needs (width, byte
// order, encoding, padding/error-control/fixed-value/list markers), plus a
// doc block per section 4.F's "Documentation" contract. It never walks the
// raw model or evaluates expressions itself — by the time GeneratePackage
// runs, every value it touches is already a resolved ast node reached
// through the symbol table (section 4.D).
package codegen

import (
	"fmt"
	"strings"

	"github.com/nasa-eds/edsc/pkg/eds/ast"
	"github.com/nasa-eds/edsc/pkg/eds/cerr"
	"github.com/nasa-eds/edsc/pkg/eds/codegen/diagram"
	"github.com/nasa-eds/edsc/pkg/eds/codegen/doc"
	"github.com/nasa-eds/edsc/pkg/eds/depwalk"
	"github.com/nasa-eds/edsc/pkg/eds/identname"
	"github.com/nasa-eds/edsc/pkg/eds/scope"
)

// Unit is the composed Go source for one EDS package, ready to be
// dropped into a file (one file per package, mirroring section 6.4's "one
// module per EDS package").
type Unit struct {
	EDSPackage string
	GoPackage  string
	Imports    []string
	Source     string
}

// widthType maps a declared size in bits onto the Go type of the smallest
// host width (8, 16, 32, 64 or 128) that holds it (section 4.F "Width
// selection"). 128 has no native Go integer; it is carried as a
// two-word array, most-significant word first regardless of the field's own
// byte order (the byte order annotation governs serialization, not the
// in-memory straddling of the two words).
func widthType(bits uint) string {
	switch {
	case bits <= 8:
		return "uint8"
	case bits <= 16:
		return "uint16"
	case bits <= 32:
		return "uint32"
	case bits <= 64:
		return "uint64"
	default:
		return "[2]uint64"
	}
}

func byteOrderTag(bo ast.ByteOrder) string {
	if bo == ast.LittleEndian {
		return "little"
	}

	return "big"
}

// GeneratePackage emits the Go source for every data type declared in pkgName,
// in declaration order, failing fast on the first error (section 4.F "All
// errors are fatal and abort the pass").
func GeneratePackage(root *scope.Root, pkgName string) (*Unit, *cerr.Error) {
	pkg, ok := root.Package(pkgName)
	if !ok {
		return nil, cerr.New(cerr.InvalidType, cerr.Location{Package: pkgName}, "no such package %q", pkgName)
	}

	u := &Unit{EDSPackage: pkgName, GoPackage: identname.SnakeCase(pkgName)}

	var body strings.Builder

	var allRefs []ast.QualifiedName

	for _, typeName := range pkg.TypeNames() {
		handle, _ := pkg.Local(typeName)

		decl, refs, err := emitDataType(root, pkg, typeName, handle)
		if err != nil {
			return nil, err
		}

		body.WriteString(decl)
		body.WriteString("\n")
		allRefs = append(allRefs, refs...)
	}

	u.Imports = importsFor(pkgName, allRefs)
	u.Source = body.String()

	return u, nil
}

// importsFor converts every cross-package reference reachable from this
// package's types into the owning package's Go import path, deduplicated
// and excluding self-references (section 4.F "Imports").
func importsFor(pkgName string, refs []ast.QualifiedName) []string {
	var out []string

	seen := map[string]bool{}

	for _, r := range depwalk.Dedupe(refs) {
		owner, _ := splitRef(string(r))
		if owner == "" || owner == pkgName || seen[owner] {
			continue
		}

		seen[owner] = true
		out = append(out, identname.SnakeCase(owner))
	}

	return out
}

func splitRef(q string) (string, string) {
	if idx := strings.IndexByte(q, '/'); idx >= 0 {
		return q[:idx], q[idx+1:]
	}

	return "", q
}

func emitDataType(root *scope.Root, pkg *scope.Package, typeName string, handle *scope.TypeHandle) (string, []ast.QualifiedName, *cerr.Error) {
	dt := handle.DataType
	goName := handle.EmitterName

	var refs []ast.QualifiedName

	w := depwalk.NewWalker(dt)
	refs = depwalk.Collect(w)

	var fields string

	var err *cerr.Error

	switch dt.Kind {
	case ast.DTBoolean:
		fields = emitAtomicField("value", widthType(dt.Boolean.Encoding.SizeInBits), ast.BigEndian, dt.Boolean.Encoding.SizeInBits, "bool")
	case ast.DTInteger:
		fields = emitAtomicField("value", widthType(dt.Integer.Encoding.SizeInBits), dt.Integer.Encoding.ByteOrder, dt.Integer.Encoding.SizeInBits, encodingTag(dt.Integer.Encoding.Encoding))
	case ast.DTFloat:
		fields = emitAtomicField("value", widthType(dt.Float.Encoding.SizeInBits), dt.Float.Encoding.ByteOrder, dt.Float.Encoding.SizeInBits, "float")
	case ast.DTString:
		fields = emitStringFields(dt.String)
	case ast.DTEnumerated:
		return emitEnumerated(goName, dt.Enum), refs, nil
	case ast.DTContainer:
		fields, err = emitContainerFields(root, pkg, dt.Container)
	case ast.DTArray:
		fields = emitArrayField(dt.Array)
	case ast.DTSubRange:
		fields = emitSubRangeField(dt.SubRange)
	default:
		return "", nil, cerr.New(cerr.UnsupportedDataType, cerr.Location{Package: typeName}, "data type kind is not supported by codegen")
	}

	if err != nil {
		return "", nil, err
	}

	docBlock := buildDoc(root, pkg, typeName, dt)

	var b strings.Builder

	b.WriteString(docBlock)
	fmt.Fprintf(&b, "type %s struct {\n%s}\n", goName, fields)

	return b.String(), refs, nil
}

func encodingTag(enc ast.IntegerEncoding) string {
	switch enc {
	case ast.SignMagnitude:
		return "signMagnitude"
	case ast.TwosComplement:
		return "twosComplement"
	case ast.OnesComplement:
		return "onesComplement"
	case ast.BinaryCodedDecimal:
		return "bcd"
	default:
		return "unsigned"
	}
}

// emitAtomicField emits the single Value field of a boolean, integer or
// float data type, tagged with its wire width, byte order and encoding.
// Container entries (Entry/LengthEntry/FixedValueEntry and the rest) are
// emitted by emitEntryField instead.
func emitAtomicField(name, goType string, bo ast.ByteOrder, bits uint, encoding string) string {
	return fmt.Sprintf("\t%s %s `eds:\"bits=%d,order=%s,encoding=%s\"`\n",
		identname.PascalCase(name), goType, bits, byteOrderTag(bo), encoding)
}

func emitStringFields(s *ast.StringDataType) string {
	kind := "utf8"
	if s.Encoding.Encoding == ast.ASCII {
		kind = "ascii"
	}

	if s.FixedLength {
		return fmt.Sprintf("\tValue string `eds:\"chars=%d,encoding=%s,fixed=true\"`\n", s.Length, kind)
	}

	return fmt.Sprintf("\tValue string `eds:\"maxChars=%d,encoding=%s,lengthPrefix=uint8\"`\n", s.Length, kind)
}

func emitEnumerated(goName string, e *ast.EnumeratedDataType) string {
	var b strings.Builder

	docBlock := buildEnumDoc(goName, e)
	b.WriteString(docBlock)

	goType := widthType(e.Encoding.SizeInBits)
	fmt.Fprintf(&b, "type %s %s\n\nconst (\n", goName, goType)

	for _, en := range e.Enumeration {
		fmt.Fprintf(&b, "\t%s%s %s = %s // %s\n", goName, identname.PascalCase(string(en.Label)), goName, en.Value, en.ShortDescription)
	}

	b.WriteString(")\n")

	return b.String()
}

func emitArrayField(a *ast.ArrayDataType) string {
	var dims strings.Builder

	total := uint(1)

	for _, d := range a.Dimensions {
		fmt.Fprintf(&dims, "[%d]", d.Size)
		total *= d.Size
	}

	elem := identname.PascalCase(lastSegment(string(a.DataTypeRef)))

	return fmt.Sprintf("\tValue %s%s `eds:\"arrayElements=%d\"`\n", dims.String(), elem, total)
}

func emitSubRangeField(s *ast.SubRangeDataType) string {
	base := identname.PascalCase(lastSegment(string(s.BaseType)))
	return fmt.Sprintf("\tBase %s `eds:\"subRange=true\"`\n", base)
}

func lastSegment(q string) string {
	_, name := splitRef(q)
	return name
}

// emitContainerFields realizes section 4.F's "Containers" contract: the
// base type first as an embedded field, then main entries, then trailer
// entries, all in declared order (section 8 property 2).
func emitContainerFields(root *scope.Root, pkg *scope.Package, c *ast.ContainerDataType) (string, *cerr.Error) {
	var b strings.Builder

	if c.BaseType != "" {
		fmt.Fprintf(&b, "\tBase %s\n", identname.PascalCase(lastSegment(string(c.BaseType))))
	}

	for _, e := range append(append([]ast.EntryElement{}, c.Entries...), c.TrailerEntries...) {
		f, err := emitEntryField(root, pkg, e)
		if err != nil {
			return "", err
		}

		b.WriteString(f)
	}

	return b.String(), nil
}

func emitEntryField(root *scope.Root, pkg *scope.Package, e ast.EntryElement) (string, *cerr.Error) {
	switch e.Kind {
	case ast.EEPlain:
		t := identname.PascalCase(lastSegment(string(e.Entry.Type)))
		return fmt.Sprintf("\t%s %s\n", identname.PascalCase(string(e.Entry.Name)), t), nil

	case ast.EEFixedValue:
		t := identname.PascalCase(lastSegment(string(e.FixedValue.Type)))
		return fmt.Sprintf("\t%s %s `eds:\"fixedValue=%s\"`\n", identname.PascalCase(string(e.FixedValue.Name)), t, e.FixedValue.FixedValue), nil

	case ast.EEPadding:
		return fmt.Sprintf("\t_ %s `eds:\"pad,bits=%d\"`\n", widthType(e.Padding.SizeInBits), e.Padding.SizeInBits), nil

	case ast.EELength:
		t := identname.PascalCase(lastSegment(string(e.Length.Type)))

		tag := "length=true"
		if e.Length.Calibration != nil {
			tag += fmt.Sprintf(",calibration=%s", formatCalibrator(e.Length.Calibration))
		}

		return fmt.Sprintf("\t%s %s `eds:\"%s\"`\n", identname.PascalCase(string(e.Length.Name)), t, tag), nil

	case ast.EEListEntry:
		t := identname.PascalCase(lastSegment(string(e.List.Type)))
		return fmt.Sprintf("\t%s []%s `eds:\"lengthField=%s\"`\n", identname.PascalCase(string(e.List.Name)), t, identname.PascalCase(string(e.List.LengthField))), nil

	case ast.EEErrorControl:
		bits := e.ErrorControl.ErrorControlType.BitWidth()
		return fmt.Sprintf("\t%s %s `eds:\"errorControl=%s,bits=%d,computed=true\"`\n",
			identname.PascalCase(string(e.ErrorControl.Name)), widthType(bits), errorControlTag(e.ErrorControl.ErrorControlType), bits), nil

	default:
		return "", cerr.New(cerr.UnsupportedEntryElement, cerr.Location{Package: pkg.Name}, "entry element kind is not supported by codegen")
	}
}

func errorControlTag(t ast.ErrorControlType) string {
	switch t {
	case ast.CRC16CCITT:
		return "crc16ccitt"
	case ast.CRC8:
		return "crc8"
	case ast.Checksum:
		return "checksum"
	case ast.ChecksumLongitudinal:
		return "checksumLongitudinal"
	default:
		return "crc16ccitt"
	}
}

func formatCalibrator(c *ast.PolynomialCalibrator) string {
	var parts []string
	for _, t := range c.Terms {
		parts = append(parts, fmt.Sprintf("%s*x^%s", t.Coefficient, t.Exponent))
	}

	return strings.Join(parts, "+")
}

// buildDoc composes section 4.F's documentation contract: name, short/long
// description, a packet diagram SVG in place of the `#[packet_diagram]`
// placeholder when the type is a container (the placeholder itself stays
// when the diagram fails to render), and a constraint-set table when the
// container declares one.
func buildDoc(root *scope.Root, pkg *scope.Package, typeName string, dt *ast.DataType) string {
	var b strings.Builder

	name := dt.NodeName()
	named := namedEntityOf(dt)

	fmt.Fprintf(&b, "// %s", name)

	if named.ShortDescription != "" {
		fmt.Fprintf(&b, " - %s", named.ShortDescription)
	}

	b.WriteString("\n")

	if named.LongDescription != "" {
		for _, line := range strings.Split(named.LongDescription, "\n") {
			fmt.Fprintf(&b, "// %s\n", line)
		}
	}

	if dt.Kind == ast.DTContainer {
		b.WriteString("//\n")

		svg, err := diagram.Render(root, pkg, dt.Container)
		if err != nil {
			b.WriteString("// #[packet_diagram]\n")
		} else {
			for _, line := range strings.Split(svg, "\n") {
				fmt.Fprintf(&b, "// %s\n", line)
			}
		}

		if dt.Container.ConstraintSet != nil {
			b.WriteString("//\n")

			for _, line := range strings.Split(doc.RenderConstraintTable(dt.Container.ConstraintSet), "\n") {
				fmt.Fprintf(&b, "// %s\n", line)
			}
		}
	}

	return b.String()
}

func buildEnumDoc(goName string, e *ast.EnumeratedDataType) string {
	var b strings.Builder

	fmt.Fprintf(&b, "// %s", goName)

	if e.ShortDescription != "" {
		fmt.Fprintf(&b, " - %s", e.ShortDescription)
	}

	b.WriteString("\n")

	return b.String()
}

func namedEntityOf(dt *ast.DataType) ast.NamedEntityType {
	switch dt.Kind {
	case ast.DTBoolean:
		return dt.Boolean.NamedEntityType
	case ast.DTInteger:
		return dt.Integer.NamedEntityType
	case ast.DTFloat:
		return dt.Float.NamedEntityType
	case ast.DTString:
		return dt.String.NamedEntityType
	case ast.DTEnumerated:
		return dt.Enum.NamedEntityType
	case ast.DTContainer:
		return dt.Container.NamedEntityType
	case ast.DTArray:
		return dt.Array.NamedEntityType
	case ast.DTSubRange:
		return dt.SubRange.NamedEntityType
	default:
		return ast.NamedEntityType{}
	}
}
