package apierrors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredicates(t *testing.T) {
	t.Run("nil is never classified", func(t *testing.T) {
		assert.False(t, IsUnauthorized(nil))
		assert.False(t, IsRetryable(nil))
		assert.False(t, IsServerError(nil))
	})

	t.Run("unauthorized", func(t *testing.T) {
		assert.True(t, IsUnauthorized(New("x", 401, CodeOperationFailed, nil, nil)))
		assert.True(t, IsUnauthorized(New("x", 400, CodeTokenExpired, nil, nil)))
		assert.False(t, IsUnauthorized(New("x", 403, CodeForbidden, nil, nil)))
	})

	t.Run("forbidden", func(t *testing.T) {
		assert.True(t, IsForbidden(New("x", 403, CodeForbidden, nil, nil)))
		assert.True(t, IsForbidden(New("x", 400, CodeInsufficientPermissions, nil, nil)))
	})

	t.Run("not found", func(t *testing.T) {
		assert.True(t, IsNotFound(New("x", 404, CodeOperationFailed, nil, nil)))
		assert.True(t, IsNotFound(New("x", 200, CodeNotFound, nil, nil)))
	})

	t.Run("validation", func(t *testing.T) {
		assert.True(t, IsValidationError(New("x", 422, CodeOperationFailed, nil, nil)))
		assert.True(t, IsValidationError(New("x", 0, CodeInvalidInput, nil, nil)))
		assert.False(t, IsValidationError(New("x", 0, CodeMissingField, nil, nil)))
	})

	t.Run("server error", func(t *testing.T) {
		assert.True(t, IsServerError(New("x", 500, CodeInternalError, nil, nil)))
		assert.False(t, IsServerError(New("x", 499, CodeTimeout, nil, nil)))
	})

	t.Run("retryable", func(t *testing.T) {
		for _, code := range []Code{CodeNetworkError, CodeTimeout, CodeBadGateway, CodeServiceUnavailable} {
			assert.True(t, IsRetryable(New("x", 400, code, nil, nil)), code)
		}
		for _, status := range []int{502, 503, 504} {
			assert.True(t, IsRetryable(New("x", status, CodeOperationFailed, nil, nil)), status)
		}
		assert.False(t, IsRetryable(New("x", 500, CodeInternalError, nil, nil)))
		assert.False(t, IsRetryable(New("x", 429, CodeQuotaExceeded, nil, nil)))
	})

	t.Run("raw errors are parsed first", func(t *testing.T) {
		assert.True(t, IsRetryable(errors.New("fetch failed")))
		assert.True(t, IsCancelled(context.Canceled))
		assert.True(t, IsNetworkError(errors.New("connection refused")))
		assert.False(t, IsNotFound(errors.New("boom")))
	})
}

func TestUserMessage(t *testing.T) {
	cases := map[Code]string{
		CodeUnauthorized:            "Please log in to continue",
		CodeTokenExpired:            "Please log in to continue",
		CodeForbidden:               "You don't have permission to perform this action",
		CodeInsufficientPermissions: "You don't have permission to perform this action",
		CodeNotFound:                "The requested resource was not found",
		CodeValidationError:         "Please check your input and try again",
		CodeInvalidInput:            "Please check your input and try again",
		CodeQuotaExceeded:           "Too many requests. Please try again later",
		CodeServiceUnavailable:      "Service is temporarily unavailable. Please try again later",
		CodeBadGateway:              "Service is temporarily unavailable. Please try again later",
		CodeTimeout:                 "Request timed out. Please try again",
		CodeNetworkError:            "Network error. Check your connection and try again",
	}
	for code, want := range cases {
		assert.Equal(t, want, UserMessage(New("raw", 0, code, nil, nil)), code)
	}

	assert.Equal(t, "raw conflict", UserMessage(New("raw conflict", 409, CodeConflict, nil, nil)))
	assert.Equal(t, "An error occurred", UserMessage(New("", 409, CodeConflict, nil, nil)))
	assert.Equal(t, "An error occurred", UserMessage(nil))
}
