package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsCarryKindAndStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		kind   Kind
		code   string
		status int
	}{
		{"validation", NewValidationError("bad", nil), KindBadInput, "VALIDATION_FAILED", http.StatusBadRequest},
		{"not found", NewNotFound("area not found", nil), KindNotFound, "NOT_FOUND", http.StatusNotFound},
		{"conflict", NewConflict("area exists", nil), KindConflict, "CONFLICT", http.StatusConflict},
		{"in use", NewDependencyInUse("area in use", nil), KindDependencyInUse, "DEPENDENCY_IN_USE", http.StatusBadRequest},
		{"internal", NewInternalError(errors.New("boom")), KindInternal, "INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			require.NotNil(t, de)
			assert.Equal(t, tt.kind, de.Kind)
			assert.Equal(t, tt.code, de.Code)
			assert.Equal(t, tt.status, de.HTTPStatus)
			assert.True(t, IsKind(tt.err, tt.kind))
		})
	}
}

func TestToDomainErrorWrapsUnknownErrors(t *testing.T) {
	cause := errors.New("connection reset")
	de := ToDomainError(cause)

	assert.Equal(t, KindInternal, de.Kind)
	assert.ErrorIs(t, de, cause)
	assert.Equal(t, "internal server error: connection reset", de.Error())
}

func TestKindOfSeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("delete area: %w", NewDependencyInUse("area in use", nil))

	assert.Equal(t, KindDependencyInUse, KindOf(err))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.False(t, IsKind(nil, KindInternal))
}

func TestMapErrorNil(t *testing.T) {
	assert.NoError(t, MapError(nil))
	assert.Nil(t, ToDomainError(nil))
}
