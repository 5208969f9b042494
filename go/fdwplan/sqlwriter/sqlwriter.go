// Copyright 2026 Supabase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package sqlwriter provides the append-only text buffer the deparser and
// statement builders write remote SQL into. It is caller-owned: builders
// take a *Buffer by reference and must not retain it past return.
package sqlwriter

import (
	"strconv"
	"strings"

	"github.com/multigres/pgfdwplan/go/parser/ast"
)

// Buffer is an append-only, UTF-8-safe text buffer with helpers for the
// identifier-quoting and string-literal-escaping rules remote SQL text
// requires.
type Buffer struct {
	b strings.Builder
}

// New returns an empty Buffer.
func New() *Buffer {
	return &Buffer{}
}

// WriteString appends s verbatim.
func (buf *Buffer) WriteString(s string) *Buffer {
	buf.b.WriteString(s)
	return buf
}

// WriteByte appends a single byte.
func (buf *Buffer) WriteByte(c byte) *Buffer {
	buf.b.WriteByte(c)
	return buf
}

// WriteInt appends the base-10 rendering of n.
func (buf *Buffer) WriteInt(n int64) *Buffer {
	buf.b.WriteString(strconv.FormatInt(n, 10))
	return buf
}

// WriteIdentifier appends name quoted per SQL identifier rules.
func (buf *Buffer) WriteIdentifier(name string) *Buffer {
	buf.b.WriteString(ast.QuoteIdentifier(name))
	return buf
}

// WriteQualifiedIdentifier appends schema.name, quoting each part only
// where WriteIdentifier would.
func (buf *Buffer) WriteQualifiedIdentifier(schema, name string) *Buffer {
	buf.WriteIdentifier(schema)
	buf.b.WriteByte('.')
	buf.WriteIdentifier(name)
	return buf
}

// WriteStringLiteral appends value as a SQL string literal, switching to
// the E'...' escape-string form when value contains a backslash.
func (buf *Buffer) WriteStringLiteral(value string) *Buffer {
	buf.b.WriteString(ast.QuoteStringLiteral(value))
	return buf
}

// WriteBitLiteral appends bits as a SQL bit-string literal: B'...'.
func (buf *Buffer) WriteBitLiteral(bits string) *Buffer {
	buf.b.WriteString(ast.QuoteBitLiteral(bits))
	return buf
}

// Len returns the number of bytes written so far.
func (buf *Buffer) Len() int {
	return buf.b.Len()
}

// String returns the accumulated text.
func (buf *Buffer) String() string {
	return buf.b.String()
}
