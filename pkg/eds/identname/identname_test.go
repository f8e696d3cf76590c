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
package identname

import "testing"

func TestPascalCase(t *testing.T) {
	cases := map[string]string{
		"CCSDS_SPACE_PACKET": "CcsdsSpacePacket",
		"maxCpuAddressSize":  "MaxCpuAddressSize",
		"U8":                 "U8",
		"primary_header":     "PrimaryHeader",
	}

	for in, want := range cases {
		if got := PascalCase(in); got != want {
			t.Errorf("PascalCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSnakeCase(t *testing.T) {
	cases := map[string]string{
		"MaxCpuAddressSize": "max_cpu_address_size",
		"seqCount":          "seq_count",
		"type":              "type_",
	}

	for in, want := range cases {
		if got := SnakeCase(in); got != want {
			t.Errorf("SnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
