package models

import "slices"

type ActivityType string

const (
	ActivityUpload     ActivityType = "upload"
	ActivityApproval   ActivityType = "approval"
	ActivityDeadline   ActivityType = "deadline"
	ActivitySubmission ActivityType = "submission"
	ActivityReview     ActivityType = "review"
	ActivityUpdate     ActivityType = "update"
)

var ActivityTypes = []ActivityType{
	ActivityUpload, ActivityApproval, ActivityDeadline,
	ActivitySubmission, ActivityReview, ActivityUpdate,
}

type TeamRole string

const (
	RoleBidManager        TeamRole = "bid_manager"
	RoleProposalLead      TeamRole = "proposal_lead"
	RoleComplianceOfficer TeamRole = "compliance_officer"
	RoleLegalReviewer     TeamRole = "legal_reviewer"
	RolePricingManager    TeamRole = "pricing_manager"
	RoleObserver          TeamRole = "observer"
)

var TeamRoles = []TeamRole{
	RoleBidManager, RoleProposalLead, RoleComplianceOfficer,
	RoleLegalReviewer, RolePricingManager, RoleObserver,
}

type ChartType string

const (
	ChartTenderFlow      ChartType = "tender_flow"
	ChartValueTrend      ChartType = "value_trend"
	ChartComplianceTrend ChartType = "compliance_trend"
)

var ChartTypes = []ChartType{ChartTenderFlow, ChartValueTrend, ChartComplianceTrend}

func (t ChartType) IsValid() bool { return slices.Contains(ChartTypes, t) }

type ChartPeriod string

const (
	Period7Days   ChartPeriod = "7d"
	Period30Days  ChartPeriod = "30d"
	Period90Days  ChartPeriod = "90d"
	PeriodOneYear ChartPeriod = "1y"
)

// DefaultChartPeriod is used when no period is given.
const DefaultChartPeriod = Period30Days

var ChartPeriods = []ChartPeriod{Period7Days, Period30Days, Period90Days, PeriodOneYear}

func (p ChartPeriod) IsValid() bool { return slices.Contains(ChartPeriods, p) }

type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
	ExportPDF  ExportFormat = "pdf"
)

// DefaultExportFormat is used when no format is given.
const DefaultExportFormat = ExportCSV

var ExportFormats = []ExportFormat{ExportCSV, ExportXLSX, ExportPDF}

func (f ExportFormat) IsValid() bool { return slices.Contains(ExportFormats, f) }
