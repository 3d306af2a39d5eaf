package models

import (
	"encoding/json"
	"time"

	id "tenderai/pkg/domain"
)

// Wire DTOs. Numeric and required fields are pointers so a missing field can
// be told apart from a zero value.

type DashboardSummaryDTO struct {
	ActiveTenders      *float64 `json:"active_tenders" validate:"required,gte=0,wholenum"`
	TotalValue         *float64 `json:"total_value" validate:"required,gte=0"`
	SuccessRate        *float64 `json:"success_rate" validate:"required,gte=0,lte=100"`
	AvgComplianceScore *float64 `json:"avg_compliance_score" validate:"required,gte=0,lte=100"`
}

type ActivityItemDTO struct {
	ID         *string `json:"id" validate:"required,notblank"`
	Type       *string `json:"type" validate:"required,activity_type"`
	Message    *string `json:"message" validate:"required,notblank"`
	Timestamp  *string `json:"timestamp" validate:"required,iso8601"`
	User       *string `json:"user" validate:"required,notblank"`
	UserAvatar *string `json:"user_avatar,omitempty"`
}

// ActivityFeedDTO keeps its rows raw; each one is decoded on its own so a
// malformed row can be skipped.
type ActivityFeedDTO struct {
	Activities []json.RawMessage `json:"activities"`
	Total      int               `json:"total"`
	HasMore    bool              `json:"has_more"`
}

type TeamMemberDTO struct {
	ID             *string  `json:"id" validate:"required,notblank"`
	Name           *string  `json:"name" validate:"required,notblank"`
	Role           *string  `json:"role" validate:"required,team_role"`
	ActiveTenders  *float64 `json:"active_tenders" validate:"required,gte=0,wholenum"`
	CompletionRate *float64 `json:"completion_rate" validate:"required,gte=0,lte=100"`
	AvgScore       *float64 `json:"avg_score" validate:"required,gte=0,lte=100"`
	Avatar         *string  `json:"avatar,omitempty"`
}

type TeamPerformanceDTO struct {
	Members []json.RawMessage `json:"members"`
	Total   int               `json:"total"`
}

// View models.

type DashboardSummary struct {
	ActiveTenders      int     `json:"activeTenders"`
	TotalValue         float64 `json:"totalValue"`
	SuccessRate        float64 `json:"successRate"`
	AvgComplianceScore float64 `json:"avgComplianceScore"`
}

type ActivityItem struct {
	ID         id.ActivityID `json:"id"`
	Type       ActivityType  `json:"type"`
	Message    string        `json:"message"`
	Timestamp  time.Time     `json:"timestamp"`
	User       string        `json:"user"`
	UserAvatar string        `json:"userAvatar,omitempty"`
}

type ActivityFeed struct {
	Activities []ActivityItem `json:"activities"`
	Total      int            `json:"total"`
	HasMore    bool           `json:"hasMore"`
}

type TeamMember struct {
	ID             id.TeamMemberID `json:"id"`
	Name           string          `json:"name"`
	Avatar         string          `json:"avatar"`
	Role           TeamRole        `json:"role"`
	ActiveTenders  int             `json:"activeTenders"`
	CompletionRate float64         `json:"completionRate"`
	AvgScore       float64         `json:"avgScore"`
}

// ChartData is passed through untouched; its shape depends on the chart type.
type ChartData = json.RawMessage

// Export is a downloaded dashboard export.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}
