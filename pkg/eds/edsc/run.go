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

// Package edsc wires the full compiler pipeline (sections 4.A-4.I) behind
// the command-line surface described in section 6.1: glob expansion, the
// mission-parameter file, resolution, symbol-table construction and
// cross-package validation, codegen, and emission to one of the three
// output targets.
package edsc

import (
	"fmt"
	"go/format"
	"io"
	"os"
	"path/filepath"

	"github.com/nasa-eds/edsc/pkg/eds/ast"
	"github.com/nasa-eds/edsc/pkg/eds/codegen"
	"github.com/nasa-eds/edsc/pkg/eds/paramns"
	"github.com/nasa-eds/edsc/pkg/eds/rawmodel"
	"github.com/nasa-eds/edsc/pkg/eds/resolve"
	"github.com/nasa-eds/edsc/pkg/eds/scope"
	"github.com/sirupsen/logrus"
)

// Config holds the command-line surface's parsed inputs (section 6.1).
type Config struct {
	Globs         []string
	MissionParams string
	Output        string
	ProjectName   string
}

// Run executes one compilation: parse -> resolve -> symbol table -> codegen
// -> emit. Every stage failure is returned as a plain error; the caller
// (cmd/edsc) is responsible for the process exit code (section 6.1 "Exit
// codes").
func Run(cfg Config, w io.Writer) error {
	files, err := expandGlobs(cfg.Globs)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no input files matched %v", cfg.Globs)
	}

	ns, err := loadMissionParams(cfg.MissionParams)
	if err != nil {
		return err
	}

	logrus.WithField("files", len(files)).Debug("parsing EDS input")

	var packageFiles []*ast.PackageFile

	for _, f := range files {
		pf, err := parseAndResolve(ns, f)
		if err != nil {
			return err
		}

		packageFiles = append(packageFiles, pf)
	}

	logrus.Debug("building symbol table")

	root := scope.NewRoot()
	if cerr := resolve.BuildSymbolTable(root, packageFiles...); cerr != nil {
		return cerr
	}

	if cerr := resolve.ValidateContainerChains(root); cerr != nil {
		return cerr
	}

	logrus.WithField("packages", len(root.PackageNames())).Debug("generating code")

	units := make(map[string]*codegen.Unit, len(root.PackageNames()))

	for _, pkgName := range root.PackageNames() {
		u, cerr := codegen.GeneratePackage(root, pkgName)
		if cerr != nil {
			return cerr
		}

		units[pkgName] = u
	}

	return emit(cfg, root.PackageNames(), units, w)
}

func expandGlobs(patterns []string) ([]string, error) {
	var out []string

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}

		out = append(out, matches...)
	}

	return out, nil
}

func loadMissionParams(path string) (*paramns.Namespace, error) {
	if path == "" {
		return paramns.Empty(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mission-params file %q: %w", path, err)
	}

	ns, err := paramns.FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parsing mission-params file %q: %w", path, err)
	}

	return ns, nil
}

func parseAndResolve(ns *paramns.Namespace, file string) (*ast.PackageFile, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", file, err)
	}

	doc, err := rawmodel.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", file, err)
	}

	r := resolve.New(ns, file)

	pf, cerr := r.ResolveDocument(doc)
	if cerr != nil {
		return nil, cerr
	}

	return pf, nil
}

// goSource composes one package's header and body into Go source text,
// formatting it with go/format (section 7 ambient "formatter invocation").
func goSource(u *codegen.Unit) (string, error) {
	var raw string

	raw += fmt.Sprintf("package %s\n\n", u.GoPackage)

	for _, imp := range u.Imports {
		raw += fmt.Sprintf("import %q\n", imp)
	}

	raw += "\n" + u.Source

	formatted, err := format.Source([]byte(raw))
	if err != nil {
		// Emit the unformatted source rather than failing the whole pass;
		// a formatter error here reflects a codegen bug, not a usage error,
		// and the raw text is still useful for diagnosing it.
		logrus.WithError(err).Warn("go/format rejected generated source; emitting unformatted")
		return raw, nil
	}

	return string(formatted), nil
}
