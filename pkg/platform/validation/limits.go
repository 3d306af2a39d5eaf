package validation

import (
	"fmt"

	dErrors "tenderai/pkg/domain-errors"
)

// Pagination limits applied to every list request regardless of caller input.
const (
	// MinPage is the first page number.
	MinPage = 1

	// DefaultPageSize is used when the caller leaves the page size unset.
	DefaultPageSize = 20

	// MaxPageSize caps list requests to keep responses bounded.
	MaxPageSize = 100

	// DefaultActivityLimit is the activity feed length when unset.
	DefaultActivityLimit = 10

	// MaxActivityLimit caps the activity feed length.
	MaxActivityLimit = 100
)

// Input limits for write payloads.
const (
	// MaxSearchLength is the maximum length of a pipeline search term.
	MaxSearchLength = 200

	// MaxTitleLength is the maximum length of a tender title.
	MaxTitleLength = 500

	// MaxTags is the maximum number of tags per tender.
	MaxTags = 50

	// MaxTagLength is the maximum length of an individual tag.
	MaxTagLength = 64

	// MaxBulkTenderIDs is the maximum number of tenders in one bulk update.
	MaxBulkTenderIDs = 100
)

// ClampPage returns page, raised to MinPage.
func ClampPage(page int) int {
	return max(page, MinPage)
}

// ClampPageSize returns size clamped to [1, MaxPageSize]; zero selects DefaultPageSize.
func ClampPageSize(size int) int {
	return ClampLimit(size, DefaultPageSize, MaxPageSize)
}

// ClampLimit returns limit clamped to [1, maxLimit]; zero selects def.
func ClampLimit(limit, def, maxLimit int) int {
	if limit == 0 {
		limit = def
	}
	return min(max(limit, 1), maxLimit)
}

// ClampOffset returns offset, raised to zero.
func ClampOffset(offset int) int {
	return max(offset, 0)
}

// CheckSliceCount validates that a slice does not exceed the maximum count.
func CheckSliceCount(fieldName string, count, max int) error {
	if count > max {
		return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("too many %s: max %d allowed", fieldName, max))
	}
	return nil
}

// CheckStringLength validates that a string does not exceed the maximum length.
func CheckStringLength(fieldName, value string, max int) error {
	if len(value) > max {
		return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("%s exceeds max length of %d", fieldName, max))
	}
	return nil
}

// CheckEachStringLength validates that each string in a slice does not exceed the maximum length.
func CheckEachStringLength(fieldName string, values []string, max int) error {
	for _, v := range values {
		if len(v) > max {
			return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("%s exceeds max length of %d", fieldName, max))
		}
	}
	return nil
}
