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

// Package mterrors defines the fatal, structural error kinds a query
// pushdown planner core can raise. These are not the normal "this
// expression can't be pushed down" outcome, which is expressed by returning
// false/nil, not an error. They mark cases the walker and deparser treat as
// programmer or catalog-consistency bugs: a catalog lookup that should have
// succeeded didn't, or the deparser was asked to render a node kind the
// walker should never have admitted.
package mterrors

import (
	"errors"
	"fmt"
)

// Code identifies the class of a planner-core error.
type Code string

const (
	// CodeCatalogLookupFailed marks a failed lookup against the catalog
	// oracle for an OID the walker or deparser expected to resolve.
	CodeCatalogLookupFailed Code = "CATALOG_LOOKUP_FAILED"

	// CodeUnsupportedNodeKind marks a deparse call on a node kind outside
	// the walker's admitted set, indicating a walker/deparser mismatch.
	CodeUnsupportedNodeKind Code = "UNSUPPORTED_NODE_KIND"
)

// PlannerError is a fatal, structural error raised by the safety walker,
// condition classifier, deparser, or statement builders. It always wraps
// a Code so callers can distinguish catalog inconsistency from a
// walker/deparser contract violation without string matching.
type PlannerError struct {
	Code    Code
	Message string
	Err     error
}

func (e *PlannerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *PlannerError) Unwrap() error {
	return e.Err
}

// CatalogLookupFailed builds the fatal error for a catalog lookup that
// should have succeeded, wrapping err (nil if there is no underlying
// cause) behind CodeCatalogLookupFailed. format/args follow fmt.Sprintf
// conventions, e.g.
// CatalogLookupFailed(cause, "cache lookup failed for function %d", funcOid).
// err is preserved through Unwrap so callers can still errors.As/errors.Is
// past the sentinel to the original database/sql or lib/pq error.
func CatalogLookupFailed(err error, format string, args ...any) error {
	return &PlannerError{
		Code:    CodeCatalogLookupFailed,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// UnsupportedNodeKind builds the fatal error for a deparse call on a node
// kind the walker never should have admitted.
func UnsupportedNodeKind(kind string) error {
	return &PlannerError{
		Code:    CodeUnsupportedNodeKind,
		Message: fmt.Sprintf("unsupported expression kind during deparse: %s", kind),
	}
}

// IsCode reports whether err is a *PlannerError of the given code.
func IsCode(err error, code Code) bool {
	var pe *PlannerError
	if !errors.As(err, &pe) {
		return false
	}
	return pe.Code == code
}
