// Copyright 2025 Supabase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
 * SQL Utility Functions for Deparsing
 *
 * This file contains utility functions for converting AST nodes back to SQL,
 * including identifier quoting, formatting helpers, and PostgreSQL-specific
 * SQL generation rules.
 */

package ast

import (
	"regexp"
	"strings"
)

// ==============================================================================
// IDENTIFIER QUOTING AND FORMATTING
// ==============================================================================

var (
	// SQL identifier regex: must start with letter or underscore, followed by letters, digits, underscores, or dollar signs
	sqlIdentifierRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_$]*$`)

	// PostgreSQL reserved keywords that always need quoting when used as identifiers
	reservedKeywords = map[string]bool{
		"all": true, "and": true, "any": true, "as": true, "asc": true, "between": true, "by": true,
		"case": true, "create": true, "desc": true, "distinct": true, "drop": true,
		"else": true, "end": true, "exists": true, "false": true, "from": true,
		"group": true, "having": true, "in": true, "insert": true, "into": true,
		"is": true, "join": true, "like": true, "not": true, "null": true, "or": true,
		"order": true, "select": true, "table": true, "then": true, "true": true,
		"union": true, "update": true, "values": true, "when": true, "where": true,
		"with": true, "limit": true, "offset": true, "inner": true, "outer": true,
		"left": true, "right": true, "full": true, "cross": true, "natural": true,
		"on": true, "using": true, "primary": true, "key": true, "foreign": true,
		"references": true, "unique": true, "check": true, "constraint": true,
		"default": true, "index": true, "alter": true, "add": true, "column": true,
	}
)

// QuoteIdentifier quotes a SQL identifier if necessary.
// Follows PostgreSQL rules: quote if it contains special characters, is a
// keyword, or would otherwise be folded to lowercase.
func QuoteIdentifier(name string) string {
	if name == "" {
		return ""
	}

	needsQuoting := !sqlIdentifierRegex.MatchString(name)

	if reservedKeywords[strings.ToLower(name)] {
		needsQuoting = true
	}

	// PostgreSQL folds unquoted identifiers to lowercase; anything with
	// uppercase must be quoted to preserve case.
	if strings.ToLower(name) != name {
		needsQuoting = true
	}

	if needsQuoting {
		escaped := strings.ReplaceAll(name, `"`, `""`)
		return `"` + escaped + `"`
	}

	return name
}

// QuoteStringLiteral quotes a string literal for SQL, choosing the escape
// introducer when the value contains a backslash. In E-mode, embedded
// backslashes are doubled in addition to the always-doubled single quote.
func QuoteStringLiteral(value string) string {
	introducer := ""
	escaped := strings.ReplaceAll(value, `'`, `''`)
	if strings.Contains(value, `\`) {
		introducer = "E"
		escaped = strings.ReplaceAll(escaped, `\`, `\\`)
	}
	return introducer + `'` + escaped + `'`
}

// QuoteBitLiteral renders a bit-string constant as B'...'. Bit strings have
// no quote or backslash special-casing since their alphabet is {0,1}.
func QuoteBitLiteral(bits string) string {
	return "B'" + bits + "'"
}

// FormatQualifiedName formats a qualified name (e.g., schema.table), quoting
// each non-empty part.
func FormatQualifiedName(parts ...string) string {
	var quotedParts []string
	for _, part := range parts {
		if part != "" {
			quotedParts = append(quotedParts, QuoteIdentifier(part))
		}
	}
	return strings.Join(quotedParts, ".")
}
