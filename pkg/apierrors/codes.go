// Package apierrors normalizes every failure seen by the API client into a
// single error value carrying an HTTP-like status and a closed error code.
package apierrors

// Code is the closed set of normalized error codes.
type Code string

// Auth
const (
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeForbidden          Code = "FORBIDDEN"
	CodeTokenExpired       Code = "TOKEN_EXPIRED"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
)

// Validation
const (
	CodeValidationError Code = "VALIDATION_ERROR"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeMissingField    Code = "MISSING_FIELD"
)

// Resource
const (
	CodeNotFound      Code = "NOT_FOUND"
	CodeAlreadyExists Code = "ALREADY_EXISTS"
	CodeConflict      Code = "CONFLICT"
)

// Transport
const (
	CodeNetworkError       Code = "NETWORK_ERROR"
	CodeTimeout            Code = "TIMEOUT"
	CodeBadGateway         Code = "BAD_GATEWAY"
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"
)

// Server
const (
	CodeInternalError Code = "INTERNAL_ERROR"
)

// Business
const (
	CodeInsufficientPermissions Code = "INSUFFICIENT_PERMISSIONS"
	CodeQuotaExceeded           Code = "QUOTA_EXCEEDED"
	CodeOperationFailed         Code = "OPERATION_FAILED"
)

// Category groups codes for logging and metrics labels.
type Category string

const (
	CategoryAuth       Category = "auth"
	CategoryValidation Category = "validation"
	CategoryResource   Category = "resource"
	CategoryTransport  Category = "transport"
	CategoryServer     Category = "server"
	CategoryBusiness   Category = "business"
)

var codeCategories = map[Code]Category{
	CodeUnauthorized:            CategoryAuth,
	CodeForbidden:               CategoryAuth,
	CodeTokenExpired:            CategoryAuth,
	CodeInvalidCredentials:      CategoryAuth,
	CodeValidationError:         CategoryValidation,
	CodeInvalidInput:            CategoryValidation,
	CodeMissingField:            CategoryValidation,
	CodeNotFound:                CategoryResource,
	CodeAlreadyExists:           CategoryResource,
	CodeConflict:                CategoryResource,
	CodeNetworkError:            CategoryTransport,
	CodeTimeout:                 CategoryTransport,
	CodeBadGateway:              CategoryTransport,
	CodeServiceUnavailable:      CategoryTransport,
	CodeInternalError:           CategoryServer,
	CodeInsufficientPermissions: CategoryBusiness,
	CodeQuotaExceeded:           CategoryBusiness,
	CodeOperationFailed:         CategoryBusiness,
}

// Codes returns every known code in declaration order.
func Codes() []Code {
	return []Code{
		CodeUnauthorized, CodeForbidden, CodeTokenExpired, CodeInvalidCredentials,
		CodeValidationError, CodeInvalidInput, CodeMissingField,
		CodeNotFound, CodeAlreadyExists, CodeConflict,
		CodeNetworkError, CodeTimeout, CodeBadGateway, CodeServiceUnavailable,
		CodeInternalError,
		CodeInsufficientPermissions, CodeQuotaExceeded, CodeOperationFailed,
	}
}

// Known reports whether c belongs to the closed set.
func (c Code) Known() bool {
	_, ok := codeCategories[c]
	return ok
}

// Category returns the group c belongs to, or "" for unknown codes.
func (c Code) Category() Category {
	return codeCategories[c]
}

func (c Code) String() string { return string(c) }

// CodeFromStatus maps any HTTP status to exactly one code.
func CodeFromStatus(status int) Code {
	switch status {
	case 400, 422:
		return CodeValidationError
	case 401:
		return CodeUnauthorized
	case 403:
		return CodeForbidden
	case 404:
		return CodeNotFound
	case 409:
		return CodeConflict
	case 429:
		return CodeQuotaExceeded
	case 502:
		return CodeBadGateway
	case 503:
		return CodeServiceUnavailable
	case 504:
		return CodeTimeout
	}
	if status >= 500 {
		return CodeInternalError
	}
	return CodeOperationFailed
}
