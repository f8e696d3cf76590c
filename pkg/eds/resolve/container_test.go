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
	"testing"

	"github.com/nasa-eds/edsc/pkg/eds/ast"
	"github.com/nasa-eds/edsc/pkg/eds/cerr"
	"github.com/nasa-eds/edsc/pkg/eds/rawmodel"
)

func plainEntry(name, typ string) rawmodel.EntryElement {
	return rawmodel.EntryElement{
		Kind:  rawmodel.EntryPlain,
		Entry: &rawmodel.Entry{NamedEntityType: rawmodel.NamedEntityType{Name: name}, Type: typ},
	}
}

func TestResolveContainerBasic(t *testing.T) {
	r := New(nil, "test.xml")

	raw := &rawmodel.ContainerDataType{
		NamedEntityType: rawmodel.NamedEntityType{Name: "Header"},
		EntryList: &rawmodel.EntryList{
			Entries: []rawmodel.EntryElement{
				plainEntry("version", "uint8"),
				plainEntry("length", "uint16"),
			},
		},
	}

	c, err := r.resolveContainer("pkgA", raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(c.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(c.Entries))
	}

	if c.Entries[0].NodeName() != "version" || c.Entries[1].NodeName() != "length" {
		t.Fatalf("unexpected entry names: %+v", c.Entries)
	}
}

func TestResolveContainerDuplicateEntryNameRejected(t *testing.T) {
	r := New(nil, "test.xml")

	raw := &rawmodel.ContainerDataType{
		NamedEntityType: rawmodel.NamedEntityType{Name: "Header"},
		EntryList: &rawmodel.EntryList{
			Entries: []rawmodel.EntryElement{
				plainEntry("version", "uint8"),
				plainEntry("version", "uint8"),
			},
		},
	}

	_, err := r.resolveContainer("pkgA", raw)
	if err == nil {
		t.Fatal("expected a duplicate-name error, got nil")
	}

	if err.Kind != cerr.ConflictingDataType {
		t.Fatalf("expected ConflictingDataType, got %v", err.Kind)
	}
}

func TestResolveListEntryRequiresLengthField(t *testing.T) {
	r := New(nil, "test.xml")

	raw := &rawmodel.ContainerDataType{
		NamedEntityType: rawmodel.NamedEntityType{Name: "Table"},
		EntryList: &rawmodel.EntryList{
			Entries: []rawmodel.EntryElement{
				{
					Kind: rawmodel.EntryList_,
					List: &rawmodel.ListEntry{NamedEntityType: rawmodel.NamedEntityType{Name: "rows"}, Type: "Row"},
				},
			},
		},
	}

	_, err := r.resolveContainer("pkgA", raw)
	if err == nil {
		t.Fatal("expected an error for missing lengthField")
	}

	if err.Kind != cerr.InvalidType {
		t.Fatalf("expected InvalidType, got %v", err.Kind)
	}
}

func TestResolveListEntrySiblingMustAppearEarlier(t *testing.T) {
	r := New(nil, "test.xml")

	raw := &rawmodel.ContainerDataType{
		NamedEntityType: rawmodel.NamedEntityType{Name: "Table"},
		EntryList: &rawmodel.EntryList{
			Entries: []rawmodel.EntryElement{
				{
					Kind: rawmodel.EntryList_,
					List: &rawmodel.ListEntry{NamedEntityType: rawmodel.NamedEntityType{Name: "rows"}, Type: "Row", LengthField: "count"},
				},
				plainEntry("count", "uint8"),
			},
		},
	}

	_, err := r.resolveContainer("pkgA", raw)
	if err == nil {
		t.Fatal("expected an error: lengthField refers to a sibling declared later")
	}

	if err.Kind != cerr.InvalidType {
		t.Fatalf("expected InvalidType, got %v", err.Kind)
	}
}

func TestResolveListEntryValidWhenSiblingPrecedes(t *testing.T) {
	r := New(nil, "test.xml")

	raw := &rawmodel.ContainerDataType{
		NamedEntityType: rawmodel.NamedEntityType{Name: "Table"},
		EntryList: &rawmodel.EntryList{
			Entries: []rawmodel.EntryElement{
				plainEntry("count", "uint8"),
				{
					Kind: rawmodel.EntryList_,
					List: &rawmodel.ListEntry{NamedEntityType: rawmodel.NamedEntityType{Name: "rows"}, Type: "Row", LengthField: "count"},
				},
			},
		},
	}

	c, err := r.resolveContainer("pkgA", raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Entries[1].Kind != ast.EEListEntry || c.Entries[1].List.LengthField != "count" {
		t.Fatalf("unexpected list entry: %+v", c.Entries[1])
	}
}

func TestResolveCalibratorRejectsZeroLeadingCoefficient(t *testing.T) {
	r := New(nil, "test.xml")
	loc := cerr.Location{Package: "pkgA", Type: "Header", Field: "length"}

	raw := &rawmodel.PolynomialCalibrator{
		Terms: []rawmodel.Term{
			{Coefficient: "2", Exponent: "1"},
			{Coefficient: "0", Exponent: "2"},
		},
	}

	_, err := r.resolveCalibrator(loc, raw)
	if err == nil {
		t.Fatal("expected non-invertible calibrator error")
	}

	if err.Kind != cerr.InvalidType {
		t.Fatalf("expected InvalidType, got %v", err.Kind)
	}
}

func TestResolveCalibratorAcceptsNonZeroLeadingCoefficient(t *testing.T) {
	r := New(nil, "test.xml")
	loc := cerr.Location{Package: "pkgA", Type: "Header", Field: "length"}

	raw := &rawmodel.PolynomialCalibrator{
		Terms: []rawmodel.Term{
			{Coefficient: "0", Exponent: "0"},
			{Coefficient: "4", Exponent: "1"},
		},
	}

	calib, err := r.resolveCalibrator(loc, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(calib.Terms) != 2 {
		t.Fatalf("expected 2 terms preserved, got %d", len(calib.Terms))
	}
}

func TestResolveCalibratorRequiresAtLeastOneTerm(t *testing.T) {
	r := New(nil, "test.xml")
	loc := cerr.Location{Package: "pkgA", Type: "Header", Field: "length"}

	_, err := r.resolveCalibrator(loc, &rawmodel.PolynomialCalibrator{})
	if err == nil {
		t.Fatal("expected an error for an empty calibrator")
	}
}
