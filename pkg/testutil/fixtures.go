package testutil

import (
	"encoding/json"
	"slices"

	"tenderai/internal/tender/models"
)

// Fixture defaults shared by tender tests.
const (
	FixtureDeadline  = "2026-02-15T23:59:59Z"
	FixtureCreatedAt = "2026-01-05T09:00:00Z"
	FixtureUpdatedAt = "2026-01-20T16:45:00.250+01:00"
)

// TenderDTOBuilder provides a fluent interface for building wire tenders.
type TenderDTOBuilder struct {
	dto models.TenderDTO
}

// NewTenderDTOBuilder creates a builder for a valid tender with the given id.
func NewTenderDTOBuilder(tenderID string) *TenderDTOBuilder {
	return &TenderDTOBuilder{
		dto: models.TenderDTO{
			ID:                   ptr(tenderID),
			Title:                ptr("Road resurfacing lot " + tenderID),
			Buyer:                ptr("City of Sfax"),
			Status:               ptr(string(models.StatusNew)),
			Priority:             ptr(string(models.PriorityMedium)),
			Deadline:             ptr(FixtureDeadline),
			CompliancePercentage: ptr(72.5),
			MissingDocuments:     ptr(2.0),
			TotalValue:           ptr(250000.0),
			Currency:             ptr(string(models.CurrencyEUR)),
			Assignee:             ptr("Leila B."),
			CreatedAt:            ptr(FixtureCreatedAt),
			UpdatedAt:            ptr(FixtureUpdatedAt),
		},
	}
}

func (b *TenderDTOBuilder) WithStatus(status string) *TenderDTOBuilder {
	b.dto.Status = ptr(status)
	return b
}

func (b *TenderDTOBuilder) WithPriority(priority string) *TenderDTOBuilder {
	b.dto.Priority = ptr(priority)
	return b
}

func (b *TenderDTOBuilder) WithCurrency(currency string) *TenderDTOBuilder {
	b.dto.Currency = ptr(currency)
	return b
}

func (b *TenderDTOBuilder) WithCompliance(pct float64) *TenderDTOBuilder {
	b.dto.CompliancePercentage = ptr(pct)
	return b
}

func (b *TenderDTOBuilder) WithMissingDocuments(n float64) *TenderDTOBuilder {
	b.dto.MissingDocuments = ptr(n)
	return b
}

func (b *TenderDTOBuilder) WithDeadline(deadline string) *TenderDTOBuilder {
	b.dto.Deadline = ptr(deadline)
	return b
}

func (b *TenderDTOBuilder) WithAssigneeID(userID string) *TenderDTOBuilder {
	b.dto.AssigneeID = ptr(userID)
	return b
}

func (b *TenderDTOBuilder) WithTenantID(tenantID string) *TenderDTOBuilder {
	b.dto.TenantID = ptr(tenantID)
	return b
}

func (b *TenderDTOBuilder) WithTags(tags ...string) *TenderDTOBuilder {
	b.dto.Tags = tags
	return b
}

// Without clears a field by json name, for missing-field cases.
func (b *TenderDTOBuilder) Without(field string) *TenderDTOBuilder {
	switch field {
	case "id":
		b.dto.ID = nil
	case "title":
		b.dto.Title = nil
	case "status":
		b.dto.Status = nil
	case "deadline":
		b.dto.Deadline = nil
	case "total_value":
		b.dto.TotalValue = nil
	case "currency":
		b.dto.Currency = nil
	}
	return b
}

// Build returns a copy so the builder can be reused.
func (b *TenderDTOBuilder) Build() models.TenderDTO {
	dto := b.dto
	dto.Tags = slices.Clone(b.dto.Tags)
	return dto
}

// BuildJSON returns the tender as a JSON-ready map, omitting nil fields.
func (b *TenderDTOBuilder) BuildJSON() map[string]any {
	out := map[string]any{}
	dto := b.Build()
	put := func(key string, v any) {
		switch p := v.(type) {
		case *string:
			if p != nil {
				out[key] = *p
			}
		case *float64:
			if p != nil {
				out[key] = *p
			}
		case []string:
			if p != nil {
				out[key] = p
			}
		}
	}
	put("id", dto.ID)
	put("title", dto.Title)
	put("buyer", dto.Buyer)
	put("status", dto.Status)
	put("priority", dto.Priority)
	put("deadline", dto.Deadline)
	put("compliance_percentage", dto.CompliancePercentage)
	put("missing_documents", dto.MissingDocuments)
	put("total_value", dto.TotalValue)
	put("currency", dto.Currency)
	put("assignee", dto.Assignee)
	put("assignee_id", dto.AssigneeID)
	put("tenant_id", dto.TenantID)
	put("created_at", dto.CreatedAt)
	put("updated_at", dto.UpdatedAt)
	put("description", dto.Description)
	put("tags", dto.Tags)
	return out
}

func ptr[T any](v T) *T { return &v }

// BuildRaw returns the tender encoded as a single wire row.
func (b *TenderDTOBuilder) BuildRaw() json.RawMessage {
	raw, err := json.Marshal(b.BuildJSON())
	if err != nil {
		panic(err)
	}
	return raw
}
