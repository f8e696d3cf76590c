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
package paramns

import "testing"

func TestFromJSONLookup(t *testing.T) {
	data := []byte(`{"CFE_MISSION": {"MAX_CPU_ADDRESS_SIZE": "32", "DATA_BYTE_ORDER": "littleEndian"}}`)

	ns, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	got, ok := ns.Lookup("CFE_MISSION/MAX_CPU_ADDRESS_SIZE")
	if !ok {
		t.Fatalf("expected lookup to succeed")
	}

	if got != "32" {
		t.Fatalf("got %q, want %q", got, "32")
	}

	if _, ok := ns.Lookup("CFE_MISSION/MISSING"); ok {
		t.Fatalf("expected missing path to fail lookup")
	}

	if _, ok := ns.Lookup("CFE_MISSION"); ok {
		t.Fatalf("expected interior node lookup to fail (not a leaf)")
	}
}

func TestFromJSONRejectsNonStringLeaf(t *testing.T) {
	data := []byte(`{"A": {"B": 32}}`)

	if _, err := FromJSON(data); err == nil {
		t.Fatalf("expected error for non-string leaf")
	}
}

func TestEmptyNamespace(t *testing.T) {
	ns := Empty()
	if _, ok := ns.Lookup("ANY/PATH"); ok {
		t.Fatalf("expected empty namespace to have no entries")
	}
}
