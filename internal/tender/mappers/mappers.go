// Package mappers validates tender DTOs and converts them to view models.
package mappers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"tenderai/internal/tender/models"
	id "tenderai/pkg/domain"
	dErrors "tenderai/pkg/domain-errors"
	"tenderai/pkg/mapping"
	"tenderai/pkg/validation"
)

const (
	entityTender = "TenderDTO"
	entityStats  = "PipelineStatsDTO"
)

// Validator knows the tender enums; the service reuses it for write payloads.
var Validator = validation.New(
	validation.Enum("tender_status", models.TenderStatuses...),
	validation.Enum("tender_priority", models.Priorities...),
	validation.Enum("currency_code", models.Currencies...),
)

type RowErrorHandler = mapping.RowErrorHandler[models.TenderDTO]

func MapTenderDTO(dto models.TenderDTO) (models.Tender, error) {
	rowID := deref(dto.ID)
	if err := Validator.CheckDTO(entityTender, rowID, dto); err != nil {
		return models.Tender{}, err
	}

	tenderID, err := id.ParseTenderID(rowID)
	if err != nil {
		return models.Tender{}, invalidField("id", rowID, err)
	}
	tender := models.Tender{
		ID:                   tenderID,
		Title:                *dto.Title,
		Buyer:                *dto.Buyer,
		Status:               models.TenderStatus(*dto.Status),
		Priority:             models.Priority(*dto.Priority),
		CompliancePercentage: *dto.CompliancePercentage,
		MissingDocuments:     int(*dto.MissingDocuments),
		TotalValue: models.Money{
			Amount:   *dto.TotalValue,
			Currency: models.CurrencyCode(*dto.Currency),
		},
		AssigneeName: *dto.Assignee,
		Description:  deref(dto.Description),
		Tags:         slices.Clone(dto.Tags),
	}
	tender.Deadline, _ = validation.ParseISO8601(*dto.Deadline)
	tender.CreatedAt, _ = validation.ParseISO8601(*dto.CreatedAt)
	tender.UpdatedAt, _ = validation.ParseISO8601(*dto.UpdatedAt)

	if dto.AssigneeID != nil {
		userID, err := id.ParseUserID(*dto.AssigneeID)
		if err != nil {
			return models.Tender{}, invalidField("assignee_id", rowID, err)
		}
		tender.AssigneeID = &userID
	}
	if dto.TenantID != nil {
		tenantID, err := id.ParseTenantID(*dto.TenantID)
		if err != nil {
			return models.Tender{}, invalidField("tenant_id", rowID, err)
		}
		tender.TenantID = &tenantID
	}
	return tender, nil
}

// MapTenderDTOs is fail-fast without a handler and row-skipping with one.
// Each raw row is decoded on its own, so a wrong-typed field only costs that row.
func MapTenderDTOs(rows []json.RawMessage, onRowError RowErrorHandler) ([]models.Tender, error) {
	return mapping.RawRows(rows, DecodeTenderDTO, MapTenderDTO, onRowError)
}

func MapTenderDTOsSafe(logger *slog.Logger, rows []json.RawMessage, onRowError RowErrorHandler) []models.Tender {
	return mapping.RawRowsSafe(logger, entityTender, rows, DecodeTenderDTO, MapTenderDTO, onRowError)
}

// DecodeTenderDTO unmarshals one tender row, naming the field on a type mismatch.
func DecodeTenderDTO(raw json.RawMessage) (models.TenderDTO, error) {
	return validation.DecodeDTO[models.TenderDTO](entityTender, raw)
}

func MapPipelineStats(dto models.PipelineStatsDTO) (models.PipelineStats, error) {
	if err := Validator.CheckDTO(entityStats, "", dto); err != nil {
		return models.PipelineStats{}, err
	}
	return models.PipelineStats{
		TotalTenders:      int(*dto.TotalTenders),
		ActiveTenders:     int(*dto.ActiveTenders),
		ComplianceAvg:     *dto.ComplianceAvg,
		PendingTasks:      int(*dto.PendingTasks),
		UpcomingDeadlines: int(*dto.UpcomingDeadlines),
		RedFlags:          int(*dto.RedFlags),
	}, nil
}

func invalidField(field, rowID string, err error) error {
	return &dErrors.Error{
		Code:    dErrors.CodeInvalidDTO,
		Message: fmt.Sprintf("invalid %s.%s (id=%s): %v", entityTender, field, rowID, err),
		Err:     err,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
