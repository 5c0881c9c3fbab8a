package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceError_WrapsAndCategorizes(t *testing.T) {
	cause := errors.New("user rejected the request")
	err := fmt.Errorf("connect: %w", ForbiddenError(cause, "Connection request was rejected"))

	require.ErrorIs(t, err, cause)
	assert.True(t, Is(err, CategoryForbidden))
	assert.False(t, Is(err, CategoryDataConflict))
	assert.Equal(t, "Connection request was rejected", UserMessage(err, "fallback"))

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusForbidden, svcErr.StatusCode())
}

func TestServiceError_NilCauseUsesMessage(t *testing.T) {
	err := NotSupportedError(nil, "wallet not installed")
	assert.EqualError(t, err, "wallet not installed")
	assert.Equal(t, "fallback", UserMessage(errors.New("plain"), "fallback"))
}

func TestStatusCode(t *testing.T) {
	tests := map[Category]int{
		CategoryDataError:         http.StatusBadRequest,
		CategoryForbidden:         http.StatusForbidden,
		CategoryNotSupported:      http.StatusPreconditionFailed,
		CategoryDataConflict:      http.StatusConflict,
		CategoryDependencyFailure: http.StatusBadGateway,
		CategoryConnectionTimeout: http.StatusGatewayTimeout,
		CategoryGeneralError:      http.StatusInternalServerError,
	}
	for cat, want := range tests {
		assert.Equal(t, want, ServiceError{Category: cat}.StatusCode(), cat.String())
	}
}
