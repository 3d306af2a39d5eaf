// Package mappers turns dashboard wire DTOs into view models. A view model is
// only produced from a DTO that passed every check.
package mappers

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"tenderai/internal/dashboard/models"
	id "tenderai/pkg/domain"
	dErrors "tenderai/pkg/domain-errors"
	"tenderai/pkg/mapping"
	"tenderai/pkg/validation"
)

const (
	entitySummary  = "DashboardSummaryDTO"
	entityActivity = "ActivityItemDTO"
	entityMember   = "TeamMemberDTO"
)

var dtoValidator = validation.New(
	validation.Enum("activity_type", models.ActivityTypes...),
	validation.Enum("team_role", models.TeamRoles...),
)

type (
	ActivityRowErrorHandler = mapping.RowErrorHandler[models.ActivityItemDTO]
	TeamRowErrorHandler     = mapping.RowErrorHandler[models.TeamMemberDTO]
)

func MapDashboardMetrics(dto models.DashboardSummaryDTO) (models.DashboardSummary, error) {
	if err := dtoValidator.CheckDTO(entitySummary, "", dto); err != nil {
		return models.DashboardSummary{}, err
	}
	return models.DashboardSummary{
		ActiveTenders:      int(*dto.ActiveTenders),
		TotalValue:         *dto.TotalValue,
		SuccessRate:        *dto.SuccessRate,
		AvgComplianceScore: *dto.AvgComplianceScore,
	}, nil
}

func MapActivityItem(dto models.ActivityItemDTO) (models.ActivityItem, error) {
	if err := dtoValidator.CheckDTO(entityActivity, deref(dto.ID), dto); err != nil {
		return models.ActivityItem{}, err
	}
	activityID, err := id.ParseActivityID(*dto.ID)
	if err != nil {
		return models.ActivityItem{}, invalidID(entityActivity, err)
	}
	ts, _ := validation.ParseISO8601(*dto.Timestamp)
	return models.ActivityItem{
		ID:         activityID,
		Type:       models.ActivityType(*dto.Type),
		Message:    *dto.Message,
		Timestamp:  ts,
		User:       *dto.User,
		UserAvatar: deref(dto.UserAvatar),
	}, nil
}

// MapActivityFeed is fail-fast without a handler and row-skipping with one.
func MapActivityFeed(rows []json.RawMessage, onRowError ActivityRowErrorHandler) ([]models.ActivityItem, error) {
	return mapping.RawRows(rows, decodeActivity, MapActivityItem, onRowError)
}

// MapActivityFeedSafe never fails; rejected rows go to onRowError or the log.
func MapActivityFeedSafe(logger *slog.Logger, rows []json.RawMessage, onRowError ActivityRowErrorHandler) []models.ActivityItem {
	return mapping.RawRowsSafe(logger, entityActivity, rows, decodeActivity, MapActivityItem, onRowError)
}

func MapTeamMember(dto models.TeamMemberDTO) (models.TeamMember, error) {
	if err := dtoValidator.CheckDTO(entityMember, deref(dto.ID), dto); err != nil {
		return models.TeamMember{}, err
	}
	memberID, err := id.ParseTeamMemberID(*dto.ID)
	if err != nil {
		return models.TeamMember{}, invalidID(entityMember, err)
	}
	return models.TeamMember{
		ID:             memberID,
		Name:           *dto.Name,
		Avatar:         deref(dto.Avatar),
		Role:           models.TeamRole(*dto.Role),
		ActiveTenders:  int(*dto.ActiveTenders),
		CompletionRate: *dto.CompletionRate,
		AvgScore:       *dto.AvgScore,
	}, nil
}

// MapTeamPerformance is fail-fast without a handler and row-skipping with one.
func MapTeamPerformance(rows []json.RawMessage, onRowError TeamRowErrorHandler) ([]models.TeamMember, error) {
	return mapping.RawRows(rows, decodeMember, MapTeamMember, onRowError)
}

func MapTeamPerformanceSafe(logger *slog.Logger, rows []json.RawMessage, onRowError TeamRowErrorHandler) []models.TeamMember {
	return mapping.RawRowsSafe(logger, entityMember, rows, decodeMember, MapTeamMember, onRowError)
}

func decodeActivity(raw json.RawMessage) (models.ActivityItemDTO, error) {
	return validation.DecodeDTO[models.ActivityItemDTO](entityActivity, raw)
}

func decodeMember(raw json.RawMessage) (models.TeamMemberDTO, error) {
	return validation.DecodeDTO[models.TeamMemberDTO](entityMember, raw)
}

func invalidID(entity string, err error) error {
	return &dErrors.Error{
		Code:    dErrors.CodeInvalidDTO,
		Message: fmt.Sprintf("invalid %s.id: %v", entity, err),
		Err:     err,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
