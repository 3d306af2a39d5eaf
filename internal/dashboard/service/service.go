package service

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"regexp"
	"strings"
	"time"

	"tenderai/internal/dashboard/mappers"
	"tenderai/internal/dashboard/models"
	"tenderai/internal/endpoints"
	"tenderai/internal/platform/metrics"
	"tenderai/pkg/apiclient"
	dErrors "tenderai/pkg/domain-errors"
	"tenderai/pkg/envelope"
	"tenderai/pkg/mapping"
	"tenderai/pkg/platform/validation"
)

// Service reads dashboard data through the API client.
type Service struct {
	client  apiclient.Requester
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(client apiclient.Requester, opts ...Option) *Service {
	s := &Service{client: client, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

func (s *Service) GetDashboardMetrics(ctx context.Context) (models.DashboardSummary, error) {
	dto, err := get[models.DashboardSummaryDTO](ctx, s.client, endpoints.DashboardMetrics, nil)
	if err != nil {
		return models.DashboardSummary{}, err
	}
	return mappers.MapDashboardMetrics(dto)
}

// GetActivityFeed fetches one page of the activity feed. limit is clamped to
// [1, 100] with 0 meaning 10, offset is raised to 0. A nil onRowError makes
// the first bad row fail the call.
func (s *Service) GetActivityFeed(ctx context.Context, limit, offset int, onRowError mappers.ActivityRowErrorHandler) (models.ActivityFeed, error) {
	params := apiclient.Params{}.
		Add("limit", validation.ClampLimit(limit, validation.DefaultActivityLimit, validation.MaxActivityLimit)).
		Add("offset", validation.ClampOffset(offset))

	dto, err := get[models.ActivityFeedDTO](ctx, s.client, endpoints.DashboardActivity, params)
	if err != nil {
		return models.ActivityFeed{}, err
	}
	if dto.Activities == nil {
		return models.ActivityFeed{}, dErrors.New(dErrors.CodeUnexpectedShape, "Invalid activity feed response: activities must be an array")
	}

	activities, err := mappers.MapActivityFeed(dto.Activities, skipHandler(s, "ActivityItemDTO", onRowError))
	if err != nil {
		return models.ActivityFeed{}, err
	}
	return models.ActivityFeed{
		Activities: activities,
		Total:      dto.Total,
		HasMore:    dto.HasMore,
	}, nil
}

func (s *Service) GetTeamPerformance(ctx context.Context, onRowError mappers.TeamRowErrorHandler) ([]models.TeamMember, error) {
	dto, err := get[models.TeamPerformanceDTO](ctx, s.client, endpoints.DashboardTeamPerformance, nil)
	if err != nil {
		return nil, err
	}
	if dto.Members == nil {
		return nil, dErrors.New(dErrors.CodeUnexpectedShape, "Invalid team performance response: members must be an array")
	}
	return mappers.MapTeamPerformance(dto.Members, skipHandler(s, "TeamMemberDTO", onRowError))
}

// GetDashboardCharts returns chart data as raw JSON. An empty period selects
// 30d; unknown chart types or periods are rejected before any request.
func (s *Service) GetDashboardCharts(ctx context.Context, chartType models.ChartType, period models.ChartPeriod) (models.ChartData, error) {
	if period == "" {
		period = models.DefaultChartPeriod
	}
	if !chartType.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "invalid chart type %q", chartType)
	}
	if !period.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "invalid chart period %q", period)
	}

	params := apiclient.Params{}.Add("type", chartType).Add("period", period)
	return get[models.ChartData](ctx, s.client, endpoints.DashboardCharts, params)
}

// ExportDashboardData downloads an export. The filename comes from
// Content-Disposition, falling back to dashboard-YYYY-MM-DD.<format>.
func (s *Service) ExportDashboardData(ctx context.Context, format models.ExportFormat) (models.Export, error) {
	if format == "" {
		format = models.DefaultExportFormat
	}
	if !format.IsValid() {
		return models.Export{}, dErrors.Newf(dErrors.CodeInvalidInput, "invalid export format %q", format)
	}

	var blob apiclient.Blob
	err := s.client.Get(ctx, endpoints.AnalyticsExport, &blob, &apiclient.RequestConfig{
		Params:       apiclient.Params{}.Add("format", format),
		ResponseType: apiclient.ResponseBlob,
	})
	if err != nil {
		return models.Export{}, err
	}

	fallback := fmt.Sprintf("dashboard-%s.%s", s.now().UTC().Format(time.DateOnly), format)
	return models.Export{
		Filename:    filenameFromDisposition(blob.Header.Get("Content-Disposition"), fallback),
		ContentType: blob.ContentType,
		Data:        blob.Data,
	}, nil
}

var dispositionFilename = regexp.MustCompile(`filename[^;=\n]*=((['"]).*?['"]|[^;\n]*)`)

func filenameFromDisposition(header, fallback string) string {
	if header == "" {
		return fallback
	}
	if _, params, err := mime.ParseMediaType(header); err == nil {
		if name := strings.Trim(strings.TrimSpace(params["filename"]), `'"`); name != "" {
			return name
		}
	}
	if m := dispositionFilename.FindStringSubmatch(header); m != nil {
		if name := strings.Trim(strings.TrimSpace(m[1]), `'"`); name != "" {
			return name
		}
	}
	return fallback
}

// get fetches an enveloped payload and unwraps it.
func get[T any](ctx context.Context, client apiclient.Requester, endpoint string, params apiclient.Params) (T, error) {
	var env envelope.Envelope[T]
	var cfg *apiclient.RequestConfig
	if len(params) > 0 {
		cfg = &apiclient.RequestConfig{Params: params}
	}
	if err := client.Get(ctx, endpoint, &env, cfg); err != nil {
		var zero T
		return zero, err
	}
	return envelope.Unwrap(env)
}

// skipHandler counts and logs skipped rows before handing them to onRowError.
// A nil handler stays nil so the mapper keeps failing fast.
func skipHandler[D any](s *Service, entity string, onRowError mapping.RowErrorHandler[D]) mapping.RowErrorHandler[D] {
	if onRowError == nil {
		return nil
	}
	return mapping.Chain(
		func(error, D) { s.metrics.IncrementRowsSkipped(entity) },
		mapping.LogRow[D](s.logger, entity),
		onRowError,
	)
}
