// Package endpoints is the catalogue of API paths the client talks to.
// Paths with an identifier are functions; the identifier is path-escaped.
package endpoints

import (
	"net/url"
	"sort"
	"strings"
)

// Version is the API version segment shared by every path.
const Version = "v1"

const prefix = "/api/" + Version

// Auth
const (
	AuthLogin     = prefix + "/auth/login"
	AuthLogout    = prefix + "/auth/logout"
	AuthRefresh   = prefix + "/auth/refresh"
	AuthRegister  = prefix + "/auth/register"
	AuthVerify2FA = prefix + "/auth/verify-2fa"
	AuthMe        = prefix + "/auth/me"
)

// Dashboard
const (
	DashboardMetrics         = prefix + "/dashboard/metrics"
	DashboardActivity        = prefix + "/dashboard/activity"
	DashboardTeamPerformance = prefix + "/dashboard/team-performance"
	DashboardCharts          = prefix + "/dashboard/charts"
)

// Tenders
const (
	Tenders           = prefix + "/tenders"
	TendersPipeline   = prefix + "/tenders/pipeline"
	TendersStats      = prefix + "/tenders/stats"
	TendersBulkUpdate = prefix + "/tenders/bulk-update"
)

func Tender(id string) string       { return Tenders + "/" + escape(id) }
func TenderAssign(id string) string { return Tender(id) + "/assign" }
func TenderStatus(id string) string { return Tender(id) + "/status" }

// Documents
const (
	Documents      = prefix + "/documents"
	DocumentUpload = prefix + "/documents/upload"
)

func Document(id string) string          { return Documents + "/" + escape(id) }
func DocumentDownload(id string) string  { return Document(id) + "/download" }
func DocumentOCRStatus(id string) string { return Document(id) + "/ocr-status" }

// Proposals
const (
	Proposals        = prefix + "/proposals"
	ProposalGenerate = prefix + "/proposals/generate"
)

func Proposal(id string) string       { return Proposals + "/" + escape(id) }
func ProposalExport(id string) string { return Proposal(id) + "/export" }

// Compliance
const (
	ComplianceCheck = prefix + "/compliance/check"
	ComplianceRules = prefix + "/compliance/rules"
)

func ComplianceReport(documentID string) string {
	return prefix + "/compliance/report/" + escape(documentID)
}

// Named entity recognition
const NERExtract = prefix + "/ner/extract"

func NEREntities(documentID string) string {
	return prefix + "/ner/entities/" + escape(documentID)
}

// Retrieval
const (
	RAGQuery   = prefix + "/rag/query"
	RAGSimilar = prefix + "/rag/similar"
)

// Search
const (
	SearchSemantic = prefix + "/search/semantic"
	SearchFullText = prefix + "/search/full-text"
	SearchFilters  = prefix + "/search/filters"
)

// Users
const Users = prefix + "/users"

func User(id string) string { return Users + "/" + escape(id) }

// Tenants
const Tenants = prefix + "/tenants"

func Tenant(id string) string         { return Tenants + "/" + escape(id) }
func TenantSettings(id string) string { return Tenant(id) + "/settings" }

// Notifications
const (
	Notifications         = prefix + "/notifications"
	NotificationsReadAll  = prefix + "/notifications/read-all"
	NotificationsSettings = prefix + "/notifications/settings"
)

func NotificationRead(id string) string { return Notifications + "/" + escape(id) + "/read" }

// Analytics
const (
	AnalyticsOverview = prefix + "/analytics/overview"
	AnalyticsTrends   = prefix + "/analytics/trends"
	AnalyticsExport   = prefix + "/analytics/export"
)

func escape(id string) string {
	return url.PathEscape(id)
}

// Build replaces ":key" placeholders in template with the escaped values.
// Longer keys are substituted first so ":id" never clobbers ":idx".
// Placeholders without a value are left in place.
func Build(template string, params map[string]string) string {
	if len(params) == 0 {
		return template
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	out := template
	for _, k := range keys {
		out = strings.ReplaceAll(out, ":"+k, escape(params[k]))
	}
	return out
}
