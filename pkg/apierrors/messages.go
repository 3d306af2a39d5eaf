package apierrors

var userMessages = map[Code]string{
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

// UserMessage returns a short sentence suitable for end users.
func UserMessage(err error) string {
	e := normalized(err)
	if e == nil {
		return "An error occurred"
	}
	if msg, ok := userMessages[e.code]; ok {
		return msg
	}
	if e.message != "" {
		return e.message
	}
	return "An error occurred"
}
