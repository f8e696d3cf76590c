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
package expr

import (
	"testing"

	"github.com/nasa-eds/edsc/pkg/eds/cerr"
	"github.com/nasa-eds/edsc/pkg/eds/paramns"
)

func mustNamespace(t *testing.T, js string) *paramns.Namespace {
	t.Helper()

	ns, err := paramns.FromJSON([]byte(js))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	return ns
}

func TestEvalMissionParameterInterpolation(t *testing.T) {
	ns := mustNamespace(t, `{"CFE_MISSION": {"MAX_CPU_ADDRESS_SIZE": "32"}}`)

	v, cerrv := Eval(ns, "${CFE_MISSION/MAX_CPU_ADDRESS_SIZE}", cerr.Location{})
	if cerrv != nil {
		t.Fatalf("Eval: %v", cerrv)
	}

	n, ok := v.AsInt()
	if !ok || n != 32 {
		t.Fatalf("got %+v, want 32", v)
	}
}

func TestEvalFallsBackToStringOnKeyword(t *testing.T) {
	ns := paramns.Empty()

	v, cerrv := Eval(ns, "littleEndian", cerr.Location{})
	if cerrv != nil {
		t.Fatalf("Eval: %v", cerrv)
	}

	if v.Kind != KindString || v.AsString() != "littleEndian" {
		t.Fatalf("got %+v, want string littleEndian", v)
	}
}

func TestEvalArithmetic(t *testing.T) {
	ns := paramns.Empty()

	v, cerrv := Eval(ns, "(2 + 3) * 4", cerr.Location{})
	if cerrv != nil {
		t.Fatalf("Eval: %v", cerrv)
	}

	n, ok := v.AsInt()
	if !ok || n != 20 {
		t.Fatalf("got %+v, want 20", v)
	}
}

func TestEvalMissingVariableFails(t *testing.T) {
	ns := paramns.Empty()

	_, cerrv := Eval(ns, "${MISSION/MISSING}", cerr.Location{})
	if cerrv == nil {
		t.Fatalf("expected VariableNotFound error")
	}

	if cerrv.Kind != cerr.VariableNotFound {
		t.Fatalf("got kind %v, want VariableNotFound", cerrv.Kind)
	}
}

func TestEvalInterpolatedArithmetic(t *testing.T) {
	ns := mustNamespace(t, `{"A": {"B": "10"}}`)

	v, cerrv := Eval(ns, "${A/B} * 2", cerr.Location{})
	if cerrv != nil {
		t.Fatalf("Eval: %v", cerrv)
	}

	n, _ := v.AsInt()
	if n != 20 {
		t.Fatalf("got %d, want 20", n)
	}
}
