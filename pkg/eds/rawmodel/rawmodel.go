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

// Package rawmodel is the syntactic mirror of the EDS XML dialect (section
// 6.3). Every scalar attribute is carried as a string expression, because
// EDS permits "${...}" interpolation anywhere; no semantic validation
// happens here. The raw model is the single source of truth across the
// parse/resolve boundary and must be safe to read from multiple resolver
// passes, so every exported field here is set once during decoding and
// never mutated afterward.
package rawmodel

// Document is the parsed top level of one input file: either a DataSheet
// (one Device plus one-or-more Package) or a PackageFile (exactly one
// Package). FromDataSheet is false for PackageFile inputs.
type Document struct {
	FromDataSheet bool
	Device        *Device
	Packages      []Package
}

// Device carries the DataSheet-level device metadata. It is retained
// through ingestion and copied onto the resolved ast.PackageFile, but does
// not otherwise participate in resolution and is not written into generated
// output (section 4.O).
type Device struct {
	Name     string    `xml:"name,attr"`
	Metadata *MetaData `xml:"Metadata"`
}

// MetaData is the optional creation-provenance block on a Device or
// Package.
type MetaData struct {
	CreationDate string `xml:"creationDate,attr"`
	Creator      string `xml:"creator,attr"`
}

// NamedEntityType is the common name/description header shared by data
// types, entries, components and interfaces.
type NamedEntityType struct {
	Name             string `xml:"name,attr"`
	ShortDescription string `xml:"shortDescription,attr,omitempty"`
	LongDescription  string `xml:"LongDescription"`
}

// Package is a namespace of data types: the top-level unit of a datasheet
// (section 3.2).
type Package struct {
	NamedEntityType
	DataTypes    []DataType
	ComponentSet []Component
}

// DataTypeKind discriminates the heterogeneous DataTypeSet sequence.
// Unrecognised elements decode as KindUnsupported so the resolver can raise
// UnsupportedDataType rather than silently dropping them (section 4.C).
type DataTypeKind uint8

const (
	KindUnsupported DataTypeKind = iota
	KindBoolean
	KindInteger
	KindFloat
	KindString
	KindEnumerated
	KindContainer
	KindArray
	KindSubRange
)

// DataType is one entry of a DataTypeSet. Exactly one of the Kind-selected
// fields below is populated; this stands in for the original's
// enum-variant DataType, chosen because Go has no tagged unions (see
// pkg/eds/ast for the analogous, typed version used post-resolution).
type DataType struct {
	Kind      DataTypeKind
	XMLName   string
	Boolean   *BooleanDataType
	Integer   *IntegerDataType
	Float     *FloatDataType
	String    *StringDataType
	Enum      *EnumeratedDataType
	Container *ContainerDataType
	Array     *ArrayDataType
	SubRange  *SubRangeDataType
}

// BooleanDataType mirrors <BooleanDataType>.
type BooleanDataType struct {
	NamedEntityType
	Encoding *BooleanDataEncoding `xml:"BooleanDataEncoding"`
}

// BooleanDataEncoding mirrors <BooleanDataEncoding>. All scalars are
// unevaluated expressions (section 3.2).
type BooleanDataEncoding struct {
	SizeInBits string `xml:"sizeInBits,attr,omitempty"`
	FalseValue string `xml:"falseValue,attr,omitempty"`
}

// IntegerDataType mirrors <IntegerDataType>.
type IntegerDataType struct {
	NamedEntityType
	Encoding *IntegerDataEncoding `xml:"IntegerDataEncoding"`
	Range    *Range               `xml:"Range"`
}

// IntegerDataEncoding mirrors <IntegerDataEncoding>.
type IntegerDataEncoding struct {
	SizeInBits string `xml:"sizeInBits,attr"`
	Encoding   string `xml:"encoding,attr,omitempty"`
	ByteOrder  string `xml:"byteOrder,attr,omitempty"`
}

// FloatDataType mirrors <FloatDataType>. Unlike the original reference's
// raw model (which flattens the encoding into one opaque expression
// string), this models the real EDS attribute shape with separate
// sub-attributes (section 4.M), matching every other atomic encoding.
type FloatDataType struct {
	NamedEntityType
	Encoding *FloatDataEncoding `xml:"FloatDataEncoding"`
	Range    *Range             `xml:"Range"`
}

// FloatDataEncoding mirrors <FloatDataEncoding>.
type FloatDataEncoding struct {
	SizeInBits           string `xml:"sizeInBits,attr"`
	EncodingAndPrecision string `xml:"encodingAndPrecision,attr,omitempty"`
	ByteOrder            string `xml:"byteOrder,attr,omitempty"`
}

// StringDataType mirrors <StringDataType>.
type StringDataType struct {
	NamedEntityType
	Length   string                `xml:"length,attr"`
	Encoding *StringDataEncoding   `xml:"StringDataEncoding"`
}

// StringDataEncoding mirrors <StringDataEncoding>.
type StringDataEncoding struct {
	Encoding            string `xml:"encoding,attr,omitempty"`
	TerminationCharacter string `xml:"terminationCharacter,attr,omitempty"`
}

// EnumeratedDataType mirrors <EnumeratedDataType>.
type EnumeratedDataType struct {
	NamedEntityType
	Encoding        *IntegerDataEncoding `xml:"IntegerDataEncoding"`
	EnumerationList *EnumerationList     `xml:"EnumerationList"`
}

// EnumerationList mirrors <EnumerationList>.
type EnumerationList struct {
	Enumeration []Enumeration `xml:"Enumeration"`
}

// Enumeration mirrors one <Enumeration> label/value pair.
type Enumeration struct {
	Label            string `xml:"label,attr"`
	Value            string `xml:"value,attr"`
	ShortDescription string `xml:"shortDescription,attr,omitempty"`
}

// ArrayDataType mirrors <ArrayDataType>.
type ArrayDataType struct {
	NamedEntityType
	DataTypeRef   string         `xml:"dataTypeRef,attr"`
	DimensionList *DimensionList `xml:"DimensionList"`
}

// DimensionList mirrors <DimensionList>.
type DimensionList struct {
	Dimension []Dimension `xml:"Dimension"`
}

// Dimension mirrors one <Dimension>.
type Dimension struct {
	Size string `xml:"size,attr"`
}

// SubRangeDataType mirrors <SubRangeDataType> (section 4.L).
type SubRangeDataType struct {
	NamedEntityType
	BaseType string `xml:"baseType,attr"`
	Unit     string `xml:"unit,attr,omitempty"`
	Range    *Range `xml:"Range"`
}

// Range mirrors <Range>.
type Range struct {
	MinMaxRange *MinMaxRange `xml:"MinMaxRange"`
}

// MinMaxRange mirrors <MinMaxRange>.
type MinMaxRange struct {
	Min       string `xml:"min,attr"`
	Max       string `xml:"max,attr"`
	RangeType string `xml:"rangeType,attr,omitempty"`
}

// ContainerDataType mirrors <ContainerDataType>, including the
// abstract/baseType/ConstraintSet/trailer entry list supplemented features
// (section 4.J) the distilled spec omitted but the source format and
// original reference both carry.
type ContainerDataType struct {
	NamedEntityType
	BaseType          string         `xml:"baseType,attr,omitempty"`
	Abstract          string         `xml:"abstract,attr,omitempty"`
	EntryList         *EntryList     `xml:"EntryList"`
	TrailerEntryList  *EntryList     `xml:"TrailerEntryList"`
	ConstraintSet     *ConstraintSet `xml:"ConstraintSet"`
}

// EntryList mirrors <EntryList> or <TrailerEntryList>: an ordered
// heterogeneous sequence of entry-element variants.
type EntryList struct {
	Entries []EntryElement
}

// EntryElementKind discriminates the heterogeneous EntryList sequence.
type EntryElementKind uint8

const (
	EntryUnsupported EntryElementKind = iota
	EntryPlain
	EntryFixedValue
	EntryPadding
	EntryLength
	EntryList_
	EntryErrorControl
)

// EntryElement is one entry of an EntryList. Exactly one Kind-selected
// field is populated.
type EntryElement struct {
	Kind         EntryElementKind
	Entry        *Entry
	FixedValue   *FixedValueEntry
	Padding      *PaddingEntry
	Length       *LengthEntry
	List         *ListEntry
	ErrorControl *ErrorControlEntry
}

// Entry mirrors a plain <Entry>.
type Entry struct {
	NamedEntityType
	Type string `xml:"type,attr"`
}

// FixedValueEntry mirrors <FixedValueEntry>.
type FixedValueEntry struct {
	NamedEntityType
	Type       string `xml:"type,attr"`
	FixedValue string `xml:"fixedValue,attr"`
}

// PaddingEntry mirrors <PaddingEntry>.
type PaddingEntry struct {
	NamedEntityType
	SizeInBits string `xml:"sizeInBits,attr"`
}

// LengthEntry mirrors <LengthEntry>.
type LengthEntry struct {
	NamedEntityType
	Type                string               `xml:"type,attr"`
	PolynomialCalibrator *PolynomialCalibrator `xml:"PolynomialCalibrator"`
}

// PolynomialCalibrator mirrors <PolynomialCalibrator>.
type PolynomialCalibrator struct {
	Terms []Term `xml:"Term"`
}

// Term mirrors one <Term> of a PolynomialCalibrator.
type Term struct {
	Coefficient string `xml:"coefficient,attr"`
	Exponent    string `xml:"exponent,attr"`
}

// ListEntry mirrors <ListEntry>. Unlike the reference implementation
// (which never carries the length-field reference through to emission,
// section 4.E/9(c)), this model carries it from the start as the name of
// the sibling entry supplying the repetition count.
type ListEntry struct {
	NamedEntityType
	Type        string `xml:"type,attr"`
	LengthField string `xml:"lengthField,attr"`
}

// ErrorControlEntry mirrors <ErrorControlEntry>.
type ErrorControlEntry struct {
	NamedEntityType
	Type              string `xml:"type,attr"`
	ErrorControlType  string `xml:"errorControlType,attr"`
}

// ConstraintSet mirrors <ConstraintSet> (section 4.K).
type ConstraintSet struct {
	Constraints []Constraint
}

// ConstraintKind discriminates the heterogeneous ConstraintSet sequence.
type ConstraintKind uint8

const (
	ConstraintUnsupported ConstraintKind = iota
	ConstraintRange
	ConstraintType
	ConstraintValue
)

// Constraint is one entry of a ConstraintSet.
type Constraint struct {
	Kind  ConstraintKind
	Entry string

	RangeConstraint *Range
	TypeConstraint  string
	ValueConstraint string
}

// Component mirrors <Component> (section 4.N).
type Component struct {
	NamedEntityType
	RequiredInterfaceSet []RequiredInterface `xml:"RequiredInterfaceSet>Interface"`
}

// RequiredInterface mirrors one required <Interface> reference within a
// Component's RequiredInterfaceSet.
type RequiredInterface struct {
	Name              string              `xml:"name,attr"`
	Type              string              `xml:"type,attr"`
	GenericTypeMapSet []GenericTypeMap    `xml:"GenericTypeMapSet>GenericTypeMap"`
}

// GenericTypeMap mirrors <GenericTypeMap>.
type GenericTypeMap struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
}
