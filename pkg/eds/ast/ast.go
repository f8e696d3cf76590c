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

// Package ast holds the resolved AST (section 3.3): a typed one-to-one
// mirror of the raw model. Every node is immutable once constructed and
// lives for the duration of one codegen pass. Where the original
// implementation used Rust tagged-union enums, this package follows the
// teacher's own idiom of polymorphism through a small interface plus a
// Kind discriminant on each struct (see pkg/corset/ast.go's Symbol/
// Declaration/Node interfaces for the model this generalizes).
package ast

// Node is implemented by every resolved AST node that participates in
// dependency walking and codegen.
type Node interface {
	// NodeName returns the node's identifier, where it has one.
	NodeName() string
}

// Identifier is a unique name string (section 3.3).
type Identifier string

// QualifiedName is a slash-delimited cross-package reference, e.g. "Pkg/T"
// (section 3.3, glossary).
type QualifiedName string

// Literal is an as-yet-uninterpreted value whose semantic type derives
// from context (section 3.3).
type Literal string

// IntegerEncoding enumerates the signedness/representation conventions.
type IntegerEncoding uint8

const (
	Unsigned IntegerEncoding = iota // default
	SignMagnitude
	TwosComplement
	OnesComplement
	BinaryCodedDecimal
)

// ByteOrder enumerates wire byte ordering. BigEndian is the default absent
// an explicit attribute (section 3.3, 9(b), SPEC_FULL.md 4.C).
type ByteOrder uint8

const (
	BigEndian ByteOrder = iota // default
	LittleEndian
)

// StringEncoding enumerates character encodings for StringDataType.
type StringEncoding uint8

const (
	ASCII StringEncoding = iota // default
	UTF8
)

// FloatEncodingAndPrecision enumerates float wire formats.
type FloatEncodingAndPrecision uint8

const (
	IEEE754Single FloatEncodingAndPrecision = iota // default
	IEEE754Double
	IEEE754Quadruple
	MILSTD1750ASimple
	MILSTD1750AExtended
)

// BooleanFalseValue enumerates the boolean false-value convention.
type BooleanFalseValue uint8

const (
	ZeroIsFalse BooleanFalseValue = iota // default
	NonZeroIsFalse
)

// MinMaxRangeType enumerates the eight interval conventions a Range may
// express, matching the set-builder forms documented in section 3.3.
type MinMaxRangeType uint8

const (
	ExclusiveMinExclusiveMax MinMaxRangeType = iota // default: {x | a < x < b}
	InclusiveMinInclusiveMax                        // {x | a <= x <= b}
	InclusiveMinExclusiveMax                        // {x | a <= x < b}
	ExclusiveMinInclusiveMax                        // {x | a < x <= b}
	GreaterThan                                     // {x | a < x}
	AtLeast                                          // {x | a <= x}
	LessThan                                         // {x | x < b}
	AtMost                                           // {x | x <= b}
)

// ErrorControlType enumerates the supported error-control field kinds.
type ErrorControlType uint8

const (
	CRC16CCITT ErrorControlType = iota // default
	CRC8
	Checksum
	ChecksumLongitudinal
)

// BitWidth returns the wire width in bits of the error-control field this
// kind occupies (used by codegen's placeholder-field emission, SPEC_FULL.md
// 4.F).
func (e ErrorControlType) BitWidth() uint {
	switch e {
	case CRC16CCITT:
		return 16
	case CRC8:
		return 8
	case Checksum:
		return 8
	case ChecksumLongitudinal:
		return 8
	default:
		return 8
	}
}

// NamedEntityType is the resolved name/description header.
type NamedEntityType struct {
	Name             Identifier
	ShortDescription string
	LongDescription  string
}

func (n NamedEntityType) NodeName() string { return string(n.Name) }

// MetaData is the resolved creation-provenance block.
type MetaData struct {
	CreationDate string
	Creator      string
}

// Device is the resolved DataSheet device header (section 4.O).
type Device struct {
	Name     string
	Metadata *MetaData
}

// PackageFile is the root of one resolved input file: the packages it
// declares, in document order.
type PackageFile struct {
	Device   *Device
	Packages []*Package
}

// Package is a resolved namespace of data types (section 3.3).
type Package struct {
	NamedEntityType
	Metadata   *MetaData
	DataTypes  []DataType
	Components []*Component
}

// DataTypeKind discriminates the DataType sum type.
type DataTypeKind uint8

const (
	DTBoolean DataTypeKind = iota
	DTInteger
	DTFloat
	DTString
	DTEnumerated
	DTContainer
	DTArray
	DTSubRange
)

// DataType is the resolved sum type standing in for the original's ~9-
// variant enum (section 9's "polymorphic AST -> tagged sum types" note).
// Exactly one Kind-selected field is populated; every traversal over
// DataType (resolver, dependency walker, codegen, diagram renderer) must
// switch over Kind exhaustively and fail with UnsupportedDataType on any
// kind it does not recognise, never silently skip it.
type DataType struct {
	Kind      DataTypeKind
	Boolean   *BooleanDataType
	Integer   *IntegerDataType
	Float     *FloatDataType
	String    *StringDataType
	Enum      *EnumeratedDataType
	Container *ContainerDataType
	Array     *ArrayDataType
	SubRange  *SubRangeDataType
}

// NodeName returns the name of whichever variant is populated.
func (d DataType) NodeName() string {
	switch d.Kind {
	case DTBoolean:
		return d.Boolean.NodeName()
	case DTInteger:
		return d.Integer.NodeName()
	case DTFloat:
		return d.Float.NodeName()
	case DTString:
		return d.String.NodeName()
	case DTEnumerated:
		return d.Enum.NodeName()
	case DTContainer:
		return d.Container.NodeName()
	case DTArray:
		return d.Array.NodeName()
	case DTSubRange:
		return d.SubRange.NodeName()
	default:
		return ""
	}
}

// BooleanDataEncoding is the resolved encoding for BooleanDataType.
type BooleanDataEncoding struct {
	SizeInBits uint
	FalseValue BooleanFalseValue
}

// BooleanDataType is a resolved boolean scalar (section 3.3).
type BooleanDataType struct {
	NamedEntityType
	Encoding BooleanDataEncoding
}

// IntegerDataEncoding is the resolved encoding for IntegerDataType.
type IntegerDataEncoding struct {
	SizeInBits uint
	Encoding   IntegerEncoding
	ByteOrder  ByteOrder
}

// IntegerDataType is a resolved integer scalar.
type IntegerDataType struct {
	NamedEntityType
	Encoding IntegerDataEncoding
	Range    *Range
}

// FloatDataEncoding is the resolved encoding for FloatDataType.
type FloatDataEncoding struct {
	SizeInBits           uint
	EncodingAndPrecision FloatEncodingAndPrecision
	ByteOrder            ByteOrder
}

// FloatDataType is a resolved float scalar.
type FloatDataType struct {
	NamedEntityType
	Encoding FloatDataEncoding
	Range    *Range
}

// StringDataEncoding is the resolved encoding for StringDataType.
type StringDataEncoding struct {
	TerminationCharacter *rune
	Encoding             StringEncoding
}

// StringDataType is a resolved string scalar. FixedLength mirrors whether
// the declared length is a fixed count (true) or a variable length capped
// by a prefix (false), per section 4.F's "length-prefixed when
// variable-length" rule.
type StringDataType struct {
	NamedEntityType
	Length      uint
	Encoding    StringDataEncoding
	FixedLength bool
}

// EnumerationList is the resolved label/value/description list.
type Enumeration struct {
	Label            Identifier
	Value            Literal
	ShortDescription string
}

// EnumeratedDataType is a resolved sum-typed scalar (section 4.F).
type EnumeratedDataType struct {
	NamedEntityType
	Encoding    IntegerDataEncoding
	Enumeration []Enumeration
}

// Range is the resolved min/max constraint (section 3.3).
type Range struct {
	Min       Literal
	Max       Literal
	RangeType MinMaxRangeType
}

// Dimension is one resolved array dimension.
type Dimension struct {
	Size uint
}

// ArrayDataType is a resolved fixed-shape array over a referenced element
// type.
type ArrayDataType struct {
	NamedEntityType
	DataTypeRef QualifiedName
	Dimensions  []Dimension
}

// SubRangeDataType narrows a base type to a tighter Range (section 4.L).
type SubRangeDataType struct {
	NamedEntityType
	BaseType QualifiedName
	Unit     string
	Range    Range
}

// ConstraintKind discriminates the Constraint sum type (section 4.K).
type ConstraintKind uint8

const (
	CRange ConstraintKind = iota
	CType
	CValue
)

// Constraint is one resolved constraint-set entry.
type Constraint struct {
	Kind  ConstraintKind
	Entry Identifier

	Range *Range
	Type  QualifiedName
	Value Literal
}

// ConstraintSet is a resolved container's optional constraint list.
type ConstraintSet struct {
	Constraints []Constraint
}

// ContainerDataType is a resolved composite data type (section 3.3, 4.J).
type ContainerDataType struct {
	NamedEntityType
	Abstract         bool
	BaseType         QualifiedName // empty if none
	Entries          []EntryElement
	TrailerEntries   []EntryElement
	ConstraintSet    *ConstraintSet
}

// EntryElementKind discriminates the EntryElement sum type.
type EntryElementKind uint8

const (
	EEPlain EntryElementKind = iota
	EEFixedValue
	EEPadding
	EELength
	EEListEntry
	EEErrorControl
)

// EntryElement is the resolved sum type standing in for the original's
// 6-variant entry enum.
type EntryElement struct {
	Kind         EntryElementKind
	Entry        *Entry
	FixedValue   *FixedValueEntry
	Padding      *PaddingEntry
	Length       *LengthEntry
	List         *ListEntry
	ErrorControl *ErrorControlEntry
}

// NodeName returns the entry's name regardless of variant.
func (e EntryElement) NodeName() string {
	switch e.Kind {
	case EEPlain:
		return e.Entry.NodeName()
	case EEFixedValue:
		return e.FixedValue.NodeName()
	case EEPadding:
		return e.Padding.NodeName()
	case EELength:
		return e.Length.NodeName()
	case EEListEntry:
		return e.List.NodeName()
	case EEErrorControl:
		return e.ErrorControl.NodeName()
	default:
		return ""
	}
}

// TypeRef returns the qualified type reference this entry carries, if any.
// PaddingEntry has none.
func (e EntryElement) TypeRef() (QualifiedName, bool) {
	switch e.Kind {
	case EEPlain:
		return e.Entry.Type, true
	case EEFixedValue:
		return e.FixedValue.Type, true
	case EELength:
		return e.Length.Type, true
	case EEListEntry:
		return e.List.Type, true
	case EEErrorControl:
		return e.ErrorControl.Type, true
	default:
		return "", false
	}
}

// Entry is a plain named field within a container.
type Entry struct {
	NamedEntityType
	Type QualifiedName
}

// FixedValueEntry is a field whose value is a compile-time constant,
// verified on read.
type FixedValueEntry struct {
	NamedEntityType
	Type       QualifiedName
	FixedValue Literal
}

// PaddingEntry reserves bits with no corresponding field value.
type PaddingEntry struct {
	NamedEntityType
	SizeInBits uint
}

// Term is one coefficient/exponent pair of a PolynomialCalibrator.
type Term struct {
	Coefficient Literal
	Exponent    Literal
}

// PolynomialCalibrator converts a wire length field to/from a logical
// length. SPEC_FULL.md 4.C requires it be invertible (non-zero leading
// coefficient); the resolver enforces this rather than merely accepting it.
type PolynomialCalibrator struct {
	Terms []Term
}

// LengthEntry carries a container's or list's length, with an optional
// calibration.
type LengthEntry struct {
	NamedEntityType
	Type        QualifiedName
	Calibration *PolynomialCalibrator
}

// ListEntry is a counted repetition whose count is supplied by a sibling
// entry in the same container, named by LengthField. Unlike the reference
// implementation (which never resolves this reference, SPEC_FULL.md 4.E),
// this is validated at resolve time to exist earlier in the same entry
// list and be integer-typed.
type ListEntry struct {
	NamedEntityType
	Type        QualifiedName
	LengthField Identifier
}

// ErrorControlEntry is a placeholder field computed post-hoc over the
// serialized container (section 4.F).
type ErrorControlEntry struct {
	NamedEntityType
	Type             QualifiedName
	ErrorControlType ErrorControlType
}

// Component is a resolved device component (section 4.N). Components are
// indexed in the symbol table and rendered in documentation, but never
// executed — per the explicit Non-goal on runtime packet execution.
type Component struct {
	NamedEntityType
	RequiredInterfaces []RequiredInterface
}

// RequiredInterface is one resolved interface reference of a Component.
type RequiredInterface struct {
	Name            string
	Type            QualifiedName
	GenericTypeMaps []GenericTypeMap
}

// GenericTypeMap binds a generic interface parameter to a concrete
// qualified name.
type GenericTypeMap struct {
	Name string
	Type QualifiedName
}
