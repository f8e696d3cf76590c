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
	"github.com/nasa-eds/edsc/pkg/eds/ast"
	"github.com/nasa-eds/edsc/pkg/eds/cerr"
)

// Keyword attributes map via a finite lookup table; anything outside the
// closed set fails with InvalidEnumKeyword (section 4.C).

var integerEncodingKeywords = map[string]ast.IntegerEncoding{
	"unsigned":           ast.Unsigned,
	"signMagnitude":      ast.SignMagnitude,
	"twosComplement":     ast.TwosComplement,
	"onesComplement":     ast.OnesComplement,
	"binaryCodedDecimal": ast.BinaryCodedDecimal,
}

var byteOrderKeywords = map[string]ast.ByteOrder{
	"bigEndian":    ast.BigEndian,
	"littleEndian": ast.LittleEndian,
}

var rangeTypeKeywords = map[string]ast.MinMaxRangeType{
	"exclusiveMinExclusiveMax": ast.ExclusiveMinExclusiveMax,
	"inclusiveMinInclusiveMax": ast.InclusiveMinInclusiveMax,
	"inclusiveMinExclusiveMax": ast.InclusiveMinExclusiveMax,
	"exclusiveMinInclusiveMax": ast.ExclusiveMinInclusiveMax,
	"greaterThan":              ast.GreaterThan,
	"atLeast":                  ast.AtLeast,
	"lessThan":                 ast.LessThan,
	"atMost":                   ast.AtMost,
}

var errorControlKeywords = map[string]ast.ErrorControlType{
	"crc16ccitt":           ast.CRC16CCITT,
	"crc8":                 ast.CRC8,
	"checksum":             ast.Checksum,
	"checksumLongitudinal": ast.ChecksumLongitudinal,
}

var booleanFalseValueKeywords = map[string]ast.BooleanFalseValue{
	"zeroIsFalse":    ast.ZeroIsFalse,
	"nonZeroIsFalse": ast.NonZeroIsFalse,
}

var stringEncodingKeywords = map[string]ast.StringEncoding{
	"ASCII": ast.ASCII,
	"UTF8":  ast.UTF8,
}

var floatEncodingKeywords = map[string]ast.FloatEncodingAndPrecision{
	"ieee754_2008_single": ast.IEEE754Single,
	"ieee754_2008_double": ast.IEEE754Double,
	"ieee754_2008_quad":   ast.IEEE754Quadruple,
	"milStd1750ASimple":   ast.MILSTD1750ASimple,
	"milStd1750AExtended": ast.MILSTD1750AExtended,
}

// hostWidths are the only host integer widths codegen may choose from
// (section 4.F "Width selection", section 8 property 1).
var hostWidths = []uint{8, 16, 32, 64, 128}

// chooseHostWidth returns the smallest member of hostWidths >= b, failing
// with InvalidBitSize if b exceeds the largest supported width.
func chooseHostWidth(b uint, loc cerr.Location) (uint, *cerr.Error) {
	for _, w := range hostWidths {
		if w >= b {
			return w, nil
		}
	}

	return 0, cerr.New(cerr.InvalidBitSize, loc, "declared size-in-bits %d exceeds the maximum supported width of 128", b)
}

func lookupIntegerEncoding(s string, loc cerr.Location) (ast.IntegerEncoding, *cerr.Error) {
	if s == "" {
		return ast.Unsigned, nil
	}

	v, ok := integerEncodingKeywords[s]
	if !ok {
		return 0, cerr.New(cerr.InvalidEnumKeyword, loc, "unrecognised integer encoding %q", s)
	}

	return v, nil
}

func lookupByteOrder(s string, loc cerr.Location) (ast.ByteOrder, *cerr.Error) {
	if s == "" {
		return ast.BigEndian, nil
	}

	v, ok := byteOrderKeywords[s]
	if !ok {
		return 0, cerr.New(cerr.InvalidEnumKeyword, loc, "unrecognised byte order %q", s)
	}

	return v, nil
}

func lookupRangeType(s string, loc cerr.Location) (ast.MinMaxRangeType, *cerr.Error) {
	if s == "" {
		return ast.ExclusiveMinExclusiveMax, nil
	}

	v, ok := rangeTypeKeywords[s]
	if !ok {
		return 0, cerr.New(cerr.InvalidEnumKeyword, loc, "unrecognised range type %q", s)
	}

	return v, nil
}

func lookupErrorControlType(s string, loc cerr.Location) (ast.ErrorControlType, *cerr.Error) {
	if s == "" {
		return ast.CRC16CCITT, nil
	}

	v, ok := errorControlKeywords[s]
	if !ok {
		return 0, cerr.New(cerr.InvalidEnumKeyword, loc, "unrecognised error control type %q", s)
	}

	return v, nil
}

func lookupBooleanFalseValue(s string, loc cerr.Location) (ast.BooleanFalseValue, *cerr.Error) {
	if s == "" {
		return ast.ZeroIsFalse, nil
	}

	v, ok := booleanFalseValueKeywords[s]
	if !ok {
		return 0, cerr.New(cerr.InvalidEnumKeyword, loc, "unrecognised boolean false-value convention %q", s)
	}

	return v, nil
}

func lookupStringEncoding(s string, loc cerr.Location) (ast.StringEncoding, *cerr.Error) {
	if s == "" {
		return ast.ASCII, nil
	}

	v, ok := stringEncodingKeywords[s]
	if !ok {
		return 0, cerr.New(cerr.InvalidEnumKeyword, loc, "unrecognised string encoding %q", s)
	}

	return v, nil
}

func lookupFloatEncoding(s string, loc cerr.Location) (ast.FloatEncodingAndPrecision, *cerr.Error) {
	if s == "" {
		return ast.IEEE754Single, nil
	}

	v, ok := floatEncodingKeywords[s]
	if !ok {
		return 0, cerr.New(cerr.InvalidEnumKeyword, loc, "unrecognised float encoding %q", s)
	}

	return v, nil
}
