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

package edsc

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nasa-eds/edsc/pkg/eds/codegen"
)

func TestExpandGlobsMatchesAcrossPatterns(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"a.eds.xml", "b.eds.xml", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	files, err := expandGlobs([]string{filepath.Join(dir, "*.eds.xml")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 matches, got %d: %v", len(files), files)
	}
}

func TestExpandGlobsRejectsMalformedPattern(t *testing.T) {
	if _, err := expandGlobs([]string{"["}); err == nil {
		t.Fatal("expected an error for a malformed glob pattern")
	}
}

func TestLoadMissionParamsDefaultsWhenUnset(t *testing.T) {
	ns, err := loadMissionParams("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ns == nil {
		t.Fatal("expected a non-nil default namespace")
	}
}

func TestLoadMissionParamsReadsJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.json")

	if err := os.WriteFile(path, []byte(`{"mission":{"maxRetries":"3"}}`), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	ns, err := loadMissionParams(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, ok := ns.Lookup("mission/maxRetries")
	if !ok || v != "3" {
		t.Fatalf("expected mission/maxRetries=3, got %q, ok=%v", v, ok)
	}
}

func TestLoadMissionParamsRejectsMissingFile(t *testing.T) {
	if _, err := loadMissionParams("/nonexistent/params.json"); err == nil {
		t.Fatal("expected an error for a missing mission-params file")
	}
}

func TestEmitStdoutWritesEachPackage(t *testing.T) {
	units := map[string]*codegen.Unit{
		"pkgA": {EDSPackage: "pkgA", GoPackage: "pkga", Source: "type Header struct{}\n"},
	}

	var buf bytes.Buffer

	if err := emitStdout([]string{"pkgA"}, units, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()

	if !strings.Contains(out, "package pkga") || !strings.Contains(out, "type Header struct{}") {
		t.Fatalf("unexpected stdout output: %s", out)
	}
}

func TestEmitRejectsUnknownTarget(t *testing.T) {
	var buf bytes.Buffer

	err := emit(Config{Output: "bogus"}, nil, nil, &buf)
	if err == nil {
		t.Fatal("expected an error for an unknown output target")
	}
}

func TestEmitProjectRequiresProjectName(t *testing.T) {
	err := emitProject("", []string{"pkgA"}, map[string]*codegen.Unit{"pkgA": {GoPackage: "pkga"}})
	if err == nil {
		t.Fatal("expected an error when --project-name is unset")
	}
}

func TestEmitProjectWritesModuleAndPackageFiles(t *testing.T) {
	dir := t.TempDir()
	projectPath := filepath.Join(dir, "genproject")

	units := map[string]*codegen.Unit{
		"pkgA": {EDSPackage: "pkgA", GoPackage: "pkga", Source: "type Header struct{}\n"},
	}

	if err := emitProject(projectPath, []string{"pkgA"}, units); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(projectPath, "go.mod")); err != nil {
		t.Errorf("expected go.mod to be written: %v", err)
	}

	if _, err := os.Stat(filepath.Join(projectPath, "pkga", "pkga.go")); err != nil {
		t.Errorf("expected pkga/pkga.go to be written: %v", err)
	}
}
