package models

import "time"

// PipelineQuery filters and pages the pipeline list. Zero values mean
// "not set"; paging is clamped by the service.
type PipelineQuery struct {
	Status    []TenderStatus
	Priority  []Priority
	Search    string
	Page      int
	PageSize  int
	SortBy    SortField
	SortOrder SortOrder
}

// CreateTenderRequest is the payload for a new tender.
type CreateTenderRequest struct {
	Title        string        `json:"title" validate:"required,notblank,max=500"`
	Buyer        string        `json:"buyer,omitempty" validate:"omitempty,notblank,max=500"`
	Status       TenderStatus  `json:"status,omitempty" validate:"omitempty,tender_status"`
	Priority     Priority      `json:"priority,omitempty" validate:"omitempty,tender_priority"`
	Deadline     *time.Time    `json:"deadline,omitempty"`
	Description  string        `json:"description,omitempty"`
	Tags         []string      `json:"tags,omitempty" validate:"omitempty,max=50,dive,notblank,max=64"`
	AssigneeName string        `json:"assignee,omitempty"`
	TotalValue   *float64      `json:"total_value,omitempty" validate:"omitempty,gte=0"`
	Currency     *CurrencyCode `json:"currency,omitempty" validate:"omitempty,currency_code"`
}

// UpdateTenderRequest carries only the fields to change.
type UpdateTenderRequest struct {
	Title        *string       `json:"title,omitempty" validate:"omitempty,notblank,max=500"`
	Buyer        *string       `json:"buyer,omitempty" validate:"omitempty,notblank,max=500"`
	Status       *TenderStatus `json:"status,omitempty" validate:"omitempty,tender_status"`
	Priority     *Priority     `json:"priority,omitempty" validate:"omitempty,tender_priority"`
	Deadline     *time.Time    `json:"deadline,omitempty"`
	Description  *string       `json:"description,omitempty"`
	Tags         []string      `json:"tags,omitempty" validate:"omitempty,max=50,dive,notblank,max=64"`
	AssigneeName *string       `json:"assignee,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u UpdateTenderRequest) IsEmpty() bool {
	return u.Title == nil && u.Buyer == nil && u.Status == nil && u.Priority == nil &&
		u.Deadline == nil && u.Description == nil && u.Tags == nil && u.AssigneeName == nil
}

type BulkUpdateRequest struct {
	TenderIDs []string            `json:"tender_ids"`
	Updates   UpdateTenderRequest `json:"updates"`
}

type AssignRequest struct {
	AssigneeID string `json:"assignee_id"`
}

type StatusRequest struct {
	Status TenderStatus `json:"status"`
}

// BulkUpdateResultDTO is the data of a bulk update; Updated may be absent.
type BulkUpdateResultDTO struct {
	Updated *int `json:"updated"`
}
