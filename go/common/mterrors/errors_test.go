package mterrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogLookupFailed(t *testing.T) {
	err := CatalogLookupFailed(nil, "cache lookup failed for function %d", 1234)
	assert.True(t, IsCode(err, CodeCatalogLookupFailed))
	assert.False(t, IsCode(err, CodeUnsupportedNodeKind))
	assert.Contains(t, err.Error(), "1234")
}

func TestUnsupportedNodeKind(t *testing.T) {
	err := UnsupportedNodeKind("SubLink")
	assert.True(t, IsCode(err, CodeUnsupportedNodeKind))
	assert.Contains(t, err.Error(), "SubLink")
}

func TestCatalogLookupFailedPreservesUnderlyingError(t *testing.T) {
	cause := errors.New("connection refused")
	err := CatalogLookupFailed(cause, "cache lookup failed for namespace %d", 99)
	assert.Same(t, cause, errors.Unwrap(err))
	assert.ErrorIs(t, err, cause)
}

func TestPlannerErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	wrapped := &PlannerError{Code: CodeCatalogLookupFailed, Message: "wrapped", Err: cause}
	assert.Same(t, cause, errors.Unwrap(wrapped))
}

func TestIsCodeRejectsOtherErrorTypes(t *testing.T) {
	assert.False(t, IsCode(errors.New("plain"), CodeCatalogLookupFailed))
}
