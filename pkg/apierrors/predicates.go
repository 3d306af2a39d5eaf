package apierrors

func normalized(err error) *Error {
	if err == nil {
		return nil
	}
	return Parse(err)
}

func IsUnauthorized(err error) bool {
	e := normalized(err)
	return e != nil && (e.status == 401 || e.code == CodeUnauthorized || e.code == CodeTokenExpired)
}

func IsForbidden(err error) bool {
	e := normalized(err)
	return e != nil && (e.status == 403 || e.code == CodeForbidden || e.code == CodeInsufficientPermissions)
}

func IsNotFound(err error) bool {
	e := normalized(err)
	return e != nil && (e.status == 404 || e.code == CodeNotFound)
}

func IsValidationError(err error) bool {
	e := normalized(err)
	return e != nil && (e.status == 400 || e.status == 422 ||
		e.code == CodeValidationError || e.code == CodeInvalidInput)
}

func IsServerError(err error) bool {
	e := normalized(err)
	return e != nil && e.status >= 500
}

// IsRetryable reports transient failures the caller may retry.
// The client itself never retries them.
func IsRetryable(err error) bool {
	e := normalized(err)
	if e == nil {
		return false
	}
	switch e.code {
	case CodeNetworkError, CodeTimeout, CodeBadGateway, CodeServiceUnavailable:
		return true
	}
	switch e.status {
	case 502, 503, 504:
		return true
	}
	return false
}

// IsCancelled reports a request aborted by the caller or by its timeout.
func IsCancelled(err error) bool {
	e := normalized(err)
	return e != nil && e.status == StatusCancelled
}

// IsNetworkError reports a request that never got a response.
func IsNetworkError(err error) bool {
	e := normalized(err)
	return e != nil && (e.code == CodeNetworkError || e.status == StatusNetwork)
}
