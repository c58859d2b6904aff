package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorNilStaysNil(t *testing.T) {
	// A typed-nil *DomainError inside a non-nil error interface would make
	// every successful call through MapError look like a failure.
	err := MapError(nil)
	assert.Nil(t, err)
	assert.True(t, err == nil)
}

func TestMapErrorWrapsGenericError(t *testing.T) {
	err := MapError(errors.New("boom"))
	require.Error(t, err)

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
}

func TestMapErrorTranslatesNoRows(t *testing.T) {
	err := MapError(pgx.ErrNoRows)
	require.Error(t, err)

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}

func TestMapErrorPreservesDomainError(t *testing.T) {
	original := NewForbidden("no")
	err := MapError(original)

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}
