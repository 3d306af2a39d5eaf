package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"tenderai/internal/endpoints"
	"tenderai/internal/platform/metrics"
	"tenderai/internal/tender/mappers"
	"tenderai/internal/tender/models"
	"tenderai/pkg/apiclient"
	id "tenderai/pkg/domain"
	dErrors "tenderai/pkg/domain-errors"
	"tenderai/pkg/envelope"
	"tenderai/pkg/mapping"
	s "tenderai/pkg/platform/strings"
	"tenderai/pkg/platform/validation"
)

const entityTender = "TenderDTO"

// Service reads and changes tenders through the API client.
type Service struct {
	client  apiclient.Requester
	logger  *slog.Logger
	metrics *metrics.Metrics
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

func New(client apiclient.Requester, opts ...Option) *Service {
	svc := &Service{client: client}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc
}

// GetPipelineData lists the pipeline. The page is raised to 1 and the page
// size clamped to [1, 100] (0 means 20) whatever the caller passes. A nil
// onRowError makes the first bad row fail the call.
func (svc *Service) GetPipelineData(ctx context.Context, query models.PipelineQuery, onRowError mappers.RowErrorHandler) (models.PipelineList, error) {
	params, err := pipelineParams(query)
	if err != nil {
		return models.PipelineList{}, err
	}

	var env envelope.Envelope[models.PipelineListDTO]
	if err := svc.client.Get(ctx, endpoints.TendersPipeline, &env, &apiclient.RequestConfig{Params: params}); err != nil {
		return models.PipelineList{}, err
	}
	dto, err := envelope.Unwrap(env)
	if err != nil {
		return models.PipelineList{}, err
	}
	if dto.Tenders == nil {
		return models.PipelineList{}, dErrors.New(dErrors.CodeUnexpectedShape, "Invalid pipeline response: tenders must be an array")
	}

	tenders, err := mappers.MapTenderDTOs(dto.Tenders, svc.skipHandler(onRowError))
	if err != nil {
		return models.PipelineList{}, err
	}
	return models.PipelineList{
		Tenders: tenders,
		Total:   dto.Total,
		Page:    dto.Page,
		Limit:   dto.Limit,
		HasMore: dto.HasMore,
	}, nil
}

func pipelineParams(query models.PipelineQuery) (apiclient.Params, error) {
	statuses := s.DedupeAndTrim(query.Status)
	for _, st := range statuses {
		if !st.IsValid() {
			return nil, dErrors.Newf(dErrors.CodeInvalidInput, "invalid status filter %q", st)
		}
	}
	priorities := s.DedupeAndTrim(query.Priority)
	for _, p := range priorities {
		if !p.IsValid() {
			return nil, dErrors.Newf(dErrors.CodeInvalidInput, "invalid priority filter %q", p)
		}
	}
	search := strings.TrimSpace(query.Search)
	if err := validation.CheckStringLength("search", search, validation.MaxSearchLength); err != nil {
		return nil, err
	}
	if query.SortBy != "" && !query.SortBy.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "invalid sort field %q", query.SortBy)
	}
	if query.SortOrder != "" && !query.SortOrder.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "invalid sort order %q", query.SortOrder)
	}

	params := apiclient.Params{}
	if len(statuses) > 0 {
		params = params.Add("status", joinComma(statuses))
	}
	if len(priorities) > 0 {
		params = params.Add("priority", joinComma(priorities))
	}
	if search != "" {
		params = params.Add("search", search)
	}
	params = params.
		Add("page", validation.ClampPage(query.Page)).
		Add("limit", validation.ClampPageSize(query.PageSize))
	if query.SortBy != "" {
		params = params.Add("sortBy", query.SortBy)
	}
	if query.SortOrder != "" {
		params = params.Add("sortOrder", query.SortOrder)
	}
	return params, nil
}

func joinComma[S ~string](values []S) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ",")
}

func (svc *Service) GetPipelineStats(ctx context.Context) (models.PipelineStats, error) {
	var env envelope.Envelope[models.PipelineStatsDTO]
	if err := svc.client.Get(ctx, endpoints.TendersStats, &env, nil); err != nil {
		return models.PipelineStats{}, err
	}
	dto, err := envelope.Unwrap(env)
	if err != nil {
		return models.PipelineStats{}, err
	}
	return mappers.MapPipelineStats(dto)
}

func (svc *Service) GetTenderDetails(ctx context.Context, tenderID id.TenderID) (models.Tender, error) {
	if err := requireTenderID(tenderID); err != nil {
		return models.Tender{}, err
	}
	var env envelope.Envelope[models.TenderDTO]
	if err := svc.client.Get(ctx, endpoints.Tender(tenderID.String()), &env, nil); err != nil {
		return models.Tender{}, err
	}
	return unwrapTender(env)
}

func (svc *Service) CreateTender(ctx context.Context, req models.CreateTenderRequest) (models.Tender, error) {
	if err := mappers.Validator.Check(req); err != nil {
		return models.Tender{}, err
	}
	req.Tags = s.DedupeAndTrim(req.Tags)

	var env envelope.Envelope[models.TenderDTO]
	if err := svc.client.Post(ctx, endpoints.Tenders, req, &env, nil); err != nil {
		return models.Tender{}, err
	}
	return unwrapTender(env)
}

func (svc *Service) UpdateTender(ctx context.Context, tenderID id.TenderID, req models.UpdateTenderRequest) (models.Tender, error) {
	if err := requireTenderID(tenderID); err != nil {
		return models.Tender{}, err
	}
	if err := checkUpdate(req); err != nil {
		return models.Tender{}, err
	}

	var env envelope.Envelope[models.TenderDTO]
	if err := svc.client.Put(ctx, endpoints.Tender(tenderID.String()), req, &env, nil); err != nil {
		return models.Tender{}, err
	}
	return unwrapTender(env)
}

func (svc *Service) DeleteTender(ctx context.Context, tenderID id.TenderID) error {
	if err := requireTenderID(tenderID); err != nil {
		return err
	}
	var env envelope.Envelope[json.RawMessage]
	if err := svc.client.Delete(ctx, endpoints.Tender(tenderID.String()), &env, nil); err != nil {
		return err
	}
	_, err := envelope.Unwrap(env)
	return err
}

// BulkUpdateTenders applies one update to up to 100 tenders and returns how
// many the server changed. When the server does not report a count every
// requested tender is assumed updated.
func (svc *Service) BulkUpdateTenders(ctx context.Context, tenderIDs []id.TenderID, req models.UpdateTenderRequest) (int, error) {
	ids := s.DedupeAndTrim(tenderIDs)
	if len(ids) == 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "at least one tender ID is required")
	}
	if err := validation.CheckSliceCount("tender_ids", len(ids), validation.MaxBulkTenderIDs); err != nil {
		return 0, err
	}
	if err := checkUpdate(req); err != nil {
		return 0, err
	}

	body := models.BulkUpdateRequest{TenderIDs: make([]string, len(ids)), Updates: req}
	for i, tid := range ids {
		body.TenderIDs[i] = tid.String()
	}

	var env envelope.Envelope[models.BulkUpdateResultDTO]
	if err := svc.client.Post(ctx, endpoints.TendersBulkUpdate, body, &env, nil); err != nil {
		return 0, err
	}
	result, err := envelope.Unwrap(env)
	if err != nil {
		return 0, err
	}
	if result.Updated == nil {
		return len(ids), nil
	}
	return *result.Updated, nil
}

func (svc *Service) AssignTender(ctx context.Context, tenderID id.TenderID, assignee id.UserID) error {
	if err := requireTenderID(tenderID); err != nil {
		return err
	}
	if assignee.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "user ID cannot be empty")
	}
	return svc.patch(ctx, endpoints.TenderAssign(tenderID.String()), models.AssignRequest{AssigneeID: assignee.String()})
}

func (svc *Service) UpdateTenderStatus(ctx context.Context, tenderID id.TenderID, status models.TenderStatus) error {
	if err := requireTenderID(tenderID); err != nil {
		return err
	}
	if !status.IsValid() {
		return dErrors.Newf(dErrors.CodeInvalidInput, "invalid status %q", status)
	}
	return svc.patch(ctx, endpoints.TenderStatus(tenderID.String()), models.StatusRequest{Status: status})
}

func (svc *Service) patch(ctx context.Context, endpoint string, body any) error {
	var env envelope.Envelope[json.RawMessage]
	if err := svc.client.Patch(ctx, endpoint, body, &env, nil); err != nil {
		return err
	}
	_, err := envelope.Unwrap(env)
	return err
}

func (svc *Service) skipHandler(onRowError mappers.RowErrorHandler) mappers.RowErrorHandler {
	if onRowError == nil {
		return nil
	}
	return mapping.Chain(
		func(error, models.TenderDTO) { svc.metrics.IncrementRowsSkipped(entityTender) },
		mapping.LogRow[models.TenderDTO](svc.logger, entityTender),
		onRowError,
	)
}

func unwrapTender(env envelope.Envelope[models.TenderDTO]) (models.Tender, error) {
	dto, err := envelope.Unwrap(env)
	if err != nil {
		return models.Tender{}, err
	}
	return mappers.MapTenderDTO(dto)
}

func requireTenderID(tenderID id.TenderID) error {
	_, err := id.ParseTenderID(tenderID.String())
	return err
}

func checkUpdate(req models.UpdateTenderRequest) error {
	if req.IsEmpty() {
		return dErrors.New(dErrors.CodeInvalidInput, "update must change at least one field")
	}
	return mappers.Validator.Check(req)
}
