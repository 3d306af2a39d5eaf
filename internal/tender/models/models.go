package models

import (
	"encoding/json"
	"math"
	"time"

	id "tenderai/pkg/domain"
)

// TenderDTO is the wire shape of a tender. Required fields are pointers so a
// missing field can be told apart from a zero value.
type TenderDTO struct {
	ID                   *string  `json:"id" validate:"required,notblank"`
	Title                *string  `json:"title" validate:"required,notblank"`
	Buyer                *string  `json:"buyer" validate:"required"`
	Status               *string  `json:"status" validate:"required,tender_status"`
	Priority             *string  `json:"priority" validate:"required,tender_priority"`
	Deadline             *string  `json:"deadline" validate:"required,iso8601"`
	CompliancePercentage *float64 `json:"compliance_percentage" validate:"required,gte=0,lte=100"`
	MissingDocuments     *float64 `json:"missing_documents" validate:"required,gte=0,wholenum"`
	TotalValue           *float64 `json:"total_value" validate:"required,gte=0"`
	Currency             *string  `json:"currency" validate:"required,currency_code"`
	Assignee             *string  `json:"assignee" validate:"required"`
	AssigneeID           *string  `json:"assignee_id,omitempty" validate:"omitempty,notblank"`
	TenantID             *string  `json:"tenant_id,omitempty" validate:"omitempty,notblank"`
	CreatedAt            *string  `json:"created_at" validate:"required,iso8601"`
	UpdatedAt            *string  `json:"updated_at" validate:"required,iso8601"`
	Description          *string  `json:"description,omitempty"`
	Tags                 []string `json:"tags,omitempty"`
}

// PipelineListDTO keeps tender rows raw so they are decoded one by one.
type PipelineListDTO struct {
	Tenders []json.RawMessage `json:"tenders"`
	Total   int               `json:"total"`
	Page    int               `json:"page"`
	Limit   int               `json:"limit"`
	HasMore bool              `json:"has_more"`
}

type PipelineStatsDTO struct {
	TotalTenders      *float64 `json:"total_tenders" validate:"required,gte=0,wholenum"`
	ActiveTenders     *float64 `json:"active_tenders" validate:"required,gte=0,wholenum"`
	ComplianceAvg     *float64 `json:"compliance_avg" validate:"required,gte=0,lte=100"`
	PendingTasks      *float64 `json:"pending_tasks" validate:"required,gte=0,wholenum"`
	UpcomingDeadlines *float64 `json:"upcoming_deadlines" validate:"required,gte=0,wholenum"`
	RedFlags          *float64 `json:"red_flags" validate:"required,gte=0,wholenum"`
}

// Money is an amount in a supported currency.
type Money struct {
	Amount   float64      `json:"amount"`
	Currency CurrencyCode `json:"currency"`
}

// Tender is the validated view of a TenderDTO.
type Tender struct {
	ID                   id.TenderID  `json:"id"`
	Title                string       `json:"title"`
	Buyer                string       `json:"buyer"`
	Status               TenderStatus `json:"status"`
	Priority             Priority     `json:"priority"`
	Deadline             time.Time    `json:"deadline"`
	CompliancePercentage float64      `json:"compliancePercentage"`
	MissingDocuments     int          `json:"missingDocuments"`
	TotalValue           Money        `json:"totalValue"`
	AssigneeName         string       `json:"assigneeName"`
	AssigneeID           *id.UserID   `json:"assigneeId,omitempty"`
	TenantID             *id.TenantID `json:"tenantId,omitempty"`
	CreatedAt            time.Time    `json:"createdAt"`
	UpdatedAt            time.Time    `json:"updatedAt"`
	Description          string       `json:"description,omitempty"`
	Tags                 []string     `json:"tags,omitempty"`
}

// IsActive reports whether the tender is still being worked on.
func (t Tender) IsActive() bool {
	return !t.Status.IsClosed()
}

// IsOverdue reports whether an active tender has passed its deadline.
func (t Tender) IsOverdue(now time.Time) bool {
	return t.IsActive() && t.Deadline.Before(now)
}

func (t Tender) IsHighPriority() bool {
	return t.Priority == PriorityHigh
}

// DaysUntilDeadline rounds partial days up; it is negative once the deadline passed.
func (t Tender) DaysUntilDeadline(now time.Time) int {
	return int(math.Ceil(t.Deadline.Sub(now).Hours() / 24))
}

type PipelineList struct {
	Tenders []Tender `json:"tenders"`
	Total   int      `json:"total"`
	Page    int      `json:"page"`
	Limit   int      `json:"limit"`
	HasMore bool     `json:"hasMore"`
}

type PipelineStats struct {
	TotalTenders      int     `json:"totalTenders"`
	ActiveTenders     int     `json:"activeTenders"`
	ComplianceAvg     float64 `json:"complianceAvg"`
	PendingTasks      int     `json:"pendingTasks"`
	UpcomingDeadlines int     `json:"upcomingDeadlines"`
	RedFlags          int     `json:"redFlags"`
}
