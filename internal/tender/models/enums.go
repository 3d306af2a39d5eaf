package models

import "slices"

type TenderStatus string

const (
	StatusNew           TenderStatus = "new"
	StatusInProgress    TenderStatus = "in_progress"
	StatusInReview      TenderStatus = "in_review"
	StatusReadyToSubmit TenderStatus = "ready_to_submit"
	StatusSubmitted     TenderStatus = "submitted"
	StatusWon           TenderStatus = "won"
	StatusLost          TenderStatus = "lost"
	StatusCancelled     TenderStatus = "cancelled"
)

var TenderStatuses = []TenderStatus{
	StatusNew, StatusInProgress, StatusInReview, StatusReadyToSubmit,
	StatusSubmitted, StatusWon, StatusLost, StatusCancelled,
}

func (s TenderStatus) IsValid() bool { return slices.Contains(TenderStatuses, s) }

// IsClosed reports whether no further work is expected on the tender.
func (s TenderStatus) IsClosed() bool {
	switch s {
	case StatusSubmitted, StatusWon, StatusLost, StatusCancelled:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) IsValid() bool { return slices.Contains(Priorities, p) }

// CurrencyCode is an ISO 4217 code.
type CurrencyCode string

const (
	CurrencyEUR CurrencyCode = "EUR"
	CurrencyUSD CurrencyCode = "USD"
	CurrencyGBP CurrencyCode = "GBP"
	CurrencyTND CurrencyCode = "TND"
	CurrencyMAD CurrencyCode = "MAD"
	CurrencyDZD CurrencyCode = "DZD"
)

var Currencies = []CurrencyCode{CurrencyEUR, CurrencyUSD, CurrencyGBP, CurrencyTND, CurrencyMAD, CurrencyDZD}

func (c CurrencyCode) IsValid() bool { return slices.Contains(Currencies, c) }

type SortField string

const (
	SortDeadline             SortField = "deadline"
	SortCreatedAt            SortField = "created_at"
	SortUpdatedAt            SortField = "updated_at"
	SortTitle                SortField = "title"
	SortPriority             SortField = "priority"
	SortStatus               SortField = "status"
	SortTotalValue           SortField = "total_value"
	SortCompliancePercentage SortField = "compliance_percentage"
)

var SortFields = []SortField{
	SortDeadline, SortCreatedAt, SortUpdatedAt, SortTitle,
	SortPriority, SortStatus, SortTotalValue, SortCompliancePercentage,
}

func (f SortField) IsValid() bool { return slices.Contains(SortFields, f) }

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

var SortOrders = []SortOrder{SortAsc, SortDesc}

func (o SortOrder) IsValid() bool { return slices.Contains(SortOrders, o) }
