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

// Package identname converts EDS names (which may be screaming-snake-case,
// camelCase, or already PascalCase) into the host identifiers the symbol
// table and codegen core use: PascalCase for type names and for the struct
// field names codegen emits, snake_case for module (Go package) names. Field
// names are not emitted in snake_case.
package identname

import "strings"

// goKeywords are Go reserved words that cannot be used as bare
// identifiers; names colliding with these get an underscore suffix
// (section 4.F: "names that collide with host-language reserved words must
// be quoted or suffixed per backend policy").
var goKeywords = map[string]bool{
	"break": true, "default": true, "func": true, "interface": true, "select": true,
	"case": true, "defer": true, "go": true, "map": true, "struct": true,
	"chan": true, "else": true, "goto": true, "package": true, "switch": true,
	"const": true, "fallthrough": true, "if": true, "range": true, "type": true,
	"continue": true, "for": true, "import": true, "return": true, "var": true,
}

func splitWords(s string) []string {
	var words []string

	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == '/' || r == ' ':
			flush()
		case r >= 'A' && r <= 'Z':
			if i > 0 {
				prev := runes[i-1]
				startsNewWord := prev >= 'a' && prev <= 'z'

				nextIsLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
				prevIsUpper := prev >= 'A' && prev <= 'Z'

				if startsNewWord || (prevIsUpper && nextIsLower) {
					flush()
				}
			}

			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}

	flush()

	return words
}

// PascalCase converts an EDS name into a PascalCase Go type identifier.
func PascalCase(s string) string {
	words := splitWords(s)

	var b strings.Builder

	for _, w := range words {
		if w == "" {
			continue
		}

		lower := strings.ToLower(w)
		b.WriteString(strings.ToUpper(lower[:1]))
		b.WriteString(lower[1:])
	}

	out := b.String()
	if out == "" {
		return "X"
	}

	if out[0] >= '0' && out[0] <= '9' {
		out = "X" + out
	}

	return out
}

// SnakeCase converts an EDS name into a snake_case Go field/module
// identifier, suffixing it if it collides with a Go reserved word.
func SnakeCase(s string) string {
	words := splitWords(s)

	for i, w := range words {
		words[i] = strings.ToLower(w)
	}

	out := strings.Join(words, "_")
	if out == "" {
		out = "x"
	}

	if out[0] >= '0' && out[0] <= '9' {
		out = "x_" + out
	}

	if goKeywords[out] {
		out += "_"
	}

	return out
}
