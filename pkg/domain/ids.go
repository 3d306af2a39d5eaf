// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"strings"

	dErrors "tenderai/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing a UserID where a TenderID is expected.
// The backend issues opaque string identifiers, so the underlying type is string.
type (
	TenderID     string
	TenantID     string
	UserID       string
	ActivityID   string
	TeamMemberID string
)

// Parse functions - use at trust boundaries (mappers, CLI flags).

func ParseTenderID(s string) (TenderID, error) {
	id, err := parseID(s, "tender ID")
	return TenderID(id), err
}

func ParseTenantID(s string) (TenantID, error) {
	id, err := parseID(s, "tenant ID")
	return TenantID(id), err
}

func ParseUserID(s string) (UserID, error) {
	id, err := parseID(s, "user ID")
	return UserID(id), err
}

func ParseActivityID(s string) (ActivityID, error) {
	id, err := parseID(s, "activity ID")
	return ActivityID(id), err
}

func ParseTeamMemberID(s string) (TeamMemberID, error) {
	id, err := parseID(s, "team member ID")
	return TeamMemberID(id), err
}

// String methods - the wire representation.

func (id TenderID) String() string     { return string(id) }
func (id TenantID) String() string     { return string(id) }
func (id UserID) String() string       { return string(id) }
func (id ActivityID) String() string   { return string(id) }
func (id TeamMemberID) String() string { return string(id) }

// IsNil checks - used for service-layer validation.

func (id TenderID) IsNil() bool     { return id == "" }
func (id TenantID) IsNil() bool     { return id == "" }
func (id UserID) IsNil() bool       { return id == "" }
func (id ActivityID) IsNil() bool   { return id == "" }
func (id TeamMemberID) IsNil() bool { return id == "" }

func parseID(s, label string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	if s != strings.TrimSpace(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, label+" must not contain surrounding whitespace")
	}
	return s, nil
}
