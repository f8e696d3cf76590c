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
package rawmodel

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// ParseDocument decodes one EDS XML file, choosing DataSheet or PackageFile
// shape based on the root element name. Malformed XML is surfaced verbatim
// as an error (section 4.A) — no semantic validation happens at this layer.
func ParseDocument(data []byte) (*Document, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		tok, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("rawmodel: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "DataSheet":
			doc := &Document{FromDataSheet: true}

			if err := decodeDataSheet(decoder, start, doc); err != nil {
				return nil, fmt.Errorf("rawmodel: %w", err)
			}

			return doc, nil
		case "PackageFile":
			doc := &Document{FromDataSheet: false}

			if err := decodePackageFile(decoder, start, doc); err != nil {
				return nil, fmt.Errorf("rawmodel: %w", err)
			}

			return doc, nil
		default:
			return nil, fmt.Errorf("rawmodel: unrecognised root element %q", start.Name.Local)
		}
	}
}

func decodeDataSheet(d *xml.Decoder, start xml.StartElement, doc *Document) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "Device":
				dev, err := decodeDevice(d, t)
				if err != nil {
					return err
				}

				doc.Device = dev
			case "Package":
				pkg, err := decodePackage(d, t)
				if err != nil {
					return err
				}

				doc.Packages = append(doc.Packages, pkg)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return nil
			}
		}
	}
}

func decodePackageFile(d *xml.Decoder, start xml.StartElement, doc *Document) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "Package" {
				pkg, err := decodePackage(d, t)
				if err != nil {
					return err
				}

				doc.Packages = append(doc.Packages, pkg)
			} else if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return nil
			}
		}
	}
}

func decodeDevice(d *xml.Decoder, start xml.StartElement) (*Device, error) {
	dev := &Device{Name: attr(start, "name")}

	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "Metadata" || t.Name.Local == "MetaData" {
				var md MetaData
				if err := d.DecodeElement(&md, &t); err != nil {
					return nil, err
				}

				dev.Metadata = &md
			} else if err := d.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return dev, nil
			}
		}
	}
}

func attr(start xml.StartElement, name string) string {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}

	return ""
}

func decodeNamedEntityType(start xml.StartElement) NamedEntityType {
	return NamedEntityType{
		Name:             attr(start, "name"),
		ShortDescription: attr(start, "shortDescription"),
	}
}

func decodePackage(d *xml.Decoder, start xml.StartElement) (Package, error) {
	pkg := Package{NamedEntityType: decodeNamedEntityType(start)}

	for {
		tok, err := d.Token()
		if err != nil {
			return pkg, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "LongDescription":
				var s string
				if err := d.DecodeElement(&s, &t); err != nil {
					return pkg, err
				}

				pkg.LongDescription = s
			case "Metadata", "MetaData":
				if err := d.Skip(); err != nil {
					return pkg, err
				}
			case "DataTypeSet":
				dts, err := decodeDataTypeSet(d, t)
				if err != nil {
					return pkg, err
				}

				pkg.DataTypes = dts
			case "ComponentSet":
				cs, err := decodeComponentSet(d, t)
				if err != nil {
					return pkg, err
				}

				pkg.ComponentSet = cs
			default:
				if err := d.Skip(); err != nil {
					return pkg, err
				}
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return pkg, nil
			}
		}
	}
}

func decodeDataTypeSet(d *xml.Decoder, start xml.StartElement) ([]DataType, error) {
	var out []DataType

	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			dt, err := decodeOneDataType(d, t)
			if err != nil {
				return nil, err
			}

			out = append(out, dt)
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return out, nil
			}
		}
	}
}

func decodeOneDataType(d *xml.Decoder, start xml.StartElement) (DataType, error) {
	dt := DataType{XMLName: start.Name.Local}

	switch start.Name.Local {
	case "BooleanDataType":
		dt.Kind = KindBoolean
		dt.Boolean = &BooleanDataType{}
		return dt, d.DecodeElement(dt.Boolean, &start)
	case "IntegerDataType":
		dt.Kind = KindInteger
		dt.Integer = &IntegerDataType{}
		return dt, d.DecodeElement(dt.Integer, &start)
	case "FloatDataType":
		dt.Kind = KindFloat
		dt.Float = &FloatDataType{}
		return dt, d.DecodeElement(dt.Float, &start)
	case "StringDataType":
		dt.Kind = KindString
		dt.String = &StringDataType{}
		return dt, d.DecodeElement(dt.String, &start)
	case "EnumeratedDataType":
		dt.Kind = KindEnumerated
		dt.Enum = &EnumeratedDataType{}
		return dt, d.DecodeElement(dt.Enum, &start)
	case "ArrayDataType":
		dt.Kind = KindArray
		dt.Array = &ArrayDataType{}
		return dt, d.DecodeElement(dt.Array, &start)
	case "SubRangeDataType":
		dt.Kind = KindSubRange
		dt.SubRange = &SubRangeDataType{}
		return dt, d.DecodeElement(dt.SubRange, &start)
	case "ContainerDataType":
		dt.Kind = KindContainer

		c, err := decodeContainer(d, start)
		if err != nil {
			return dt, err
		}

		dt.Container = c

		return dt, nil
	default:
		dt.Kind = KindUnsupported
		return dt, d.Skip()
	}
}

func decodeContainer(d *xml.Decoder, start xml.StartElement) (*ContainerDataType, error) {
	c := &ContainerDataType{
		NamedEntityType: decodeNamedEntityType(start),
		BaseType:        attr(start, "baseType"),
		Abstract:        attr(start, "abstract"),
	}

	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "LongDescription":
				var s string
				if err := d.DecodeElement(&s, &t); err != nil {
					return nil, err
				}

				c.LongDescription = s
			case "EntryList":
				el, err := decodeEntryList(d, t)
				if err != nil {
					return nil, err
				}

				c.EntryList = el
			case "TrailerEntryList":
				el, err := decodeEntryList(d, t)
				if err != nil {
					return nil, err
				}

				c.TrailerEntryList = el
			case "ConstraintSet":
				cs, err := decodeConstraintSet(d, t)
				if err != nil {
					return nil, err
				}

				c.ConstraintSet = cs
			default:
				if err := d.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return c, nil
			}
		}
	}
}

func decodeEntryList(d *xml.Decoder, start xml.StartElement) (*EntryList, error) {
	list := &EntryList{}

	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			elem, err := decodeOneEntry(d, t)
			if err != nil {
				return nil, err
			}

			list.Entries = append(list.Entries, elem)
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return list, nil
			}
		}
	}
}

func decodeOneEntry(d *xml.Decoder, start xml.StartElement) (EntryElement, error) {
	switch start.Name.Local {
	case "Entry":
		e := &Entry{}
		if err := d.DecodeElement(e, &start); err != nil {
			return EntryElement{}, err
		}

		return EntryElement{Kind: EntryPlain, Entry: e}, nil
	case "FixedValueEntry":
		e := &FixedValueEntry{}
		if err := d.DecodeElement(e, &start); err != nil {
			return EntryElement{}, err
		}

		return EntryElement{Kind: EntryFixedValue, FixedValue: e}, nil
	case "PaddingEntry":
		e := &PaddingEntry{}
		if err := d.DecodeElement(e, &start); err != nil {
			return EntryElement{}, err
		}

		return EntryElement{Kind: EntryPadding, Padding: e}, nil
	case "LengthEntry":
		e := &LengthEntry{}
		if err := d.DecodeElement(e, &start); err != nil {
			return EntryElement{}, err
		}

		return EntryElement{Kind: EntryLength, Length: e}, nil
	case "ListEntry":
		e := &ListEntry{}
		if err := d.DecodeElement(e, &start); err != nil {
			return EntryElement{}, err
		}

		return EntryElement{Kind: EntryList_, List: e}, nil
	case "ErrorControlEntry":
		e := &ErrorControlEntry{}
		if err := d.DecodeElement(e, &start); err != nil {
			return EntryElement{}, err
		}

		return EntryElement{Kind: EntryErrorControl, ErrorControl: e}, nil
	default:
		return EntryElement{Kind: EntryUnsupported}, d.Skip()
	}
}

func decodeConstraintSet(d *xml.Decoder, start xml.StartElement) (*ConstraintSet, error) {
	cs := &ConstraintSet{}

	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			c, err := decodeOneConstraint(d, t)
			if err != nil {
				return nil, err
			}

			cs.Constraints = append(cs.Constraints, c)
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return cs, nil
			}
		}
	}
}

func decodeOneConstraint(d *xml.Decoder, start xml.StartElement) (Constraint, error) {
	entry := attr(start, "entry")

	switch start.Name.Local {
	case "RangeConstraint":
		var r Range

		for {
			tok, err := d.Token()
			if err != nil {
				return Constraint{}, err
			}

			if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "MinMaxRange" {
				mmr := &MinMaxRange{
					Min:       attr(se, "min"),
					Max:       attr(se, "max"),
					RangeType: attr(se, "rangeType"),
				}
				r.MinMaxRange = mmr

				if err := d.Skip(); err != nil {
					return Constraint{}, err
				}
			}

			if ee, ok := tok.(xml.EndElement); ok && ee.Name.Local == start.Name.Local {
				break
			}
		}

		return Constraint{Kind: ConstraintRange, Entry: entry, RangeConstraint: &r}, nil
	case "TypeConstraint":
		typ := attr(start, "type")

		if err := d.Skip(); err != nil {
			return Constraint{}, err
		}

		return Constraint{Kind: ConstraintType, Entry: entry, TypeConstraint: typ}, nil
	case "ValueConstraint":
		value := attr(start, "value")

		if err := d.Skip(); err != nil {
			return Constraint{}, err
		}

		return Constraint{Kind: ConstraintValue, Entry: entry, ValueConstraint: value}, nil
	default:
		return Constraint{Kind: ConstraintUnsupported}, d.Skip()
	}
}

func decodeComponentSet(d *xml.Decoder, start xml.StartElement) ([]Component, error) {
	var out []Component

	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "Component" {
				var c Component
				if err := d.DecodeElement(&c, &t); err != nil {
					return nil, err
				}

				out = append(out, c)
			} else if err := d.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return out, nil
			}
		}
	}
}
