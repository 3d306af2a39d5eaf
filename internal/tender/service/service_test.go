package service

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"tenderai/internal/tender/models"
	"tenderai/pkg/apiclient"
	"tenderai/pkg/apiclient/mocks"
	"tenderai/pkg/apierrors"
	id "tenderai/pkg/domain"
	dErrors "tenderai/pkg/domain-errors"
	"tenderai/pkg/testutil"
	"tenderai/pkg/testutil/stubapi"
)

// ServiceSuite runs the tender service against a stub backend through a real client.
type ServiceSuite struct {
	suite.Suite
	api *stubapi.Server
	svc *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.api = stubapi.New(s.T())
	client, err := apiclient.New(s.api.URL)
	s.Require().NoError(err)
	s.svc = New(client)
}

func (s *ServiceSuite) lastRequest() stubapi.Request {
	req, ok := s.api.LastRequest()
	s.Require().True(ok, "expected a request")
	return req
}

func emptyPage(limit int) map[string]any {
	return map[string]any{"tenders": []any{}, "total": 0, "page": 1, "limit": limit, "has_more": false}
}

func (s *ServiceSuite) TestPipelinePagingIsClamped() {
	s.api.Success(http.MethodGet, "/api/v1/tenders/pipeline", emptyPage(100))

	_, err := s.svc.GetPipelineData(context.Background(), models.PipelineQuery{Page: -5, PageSize: 9999}, nil)
	s.Require().NoError(err)

	req := s.lastRequest()
	s.Equal("1", req.Query.Get("page"))
	s.Equal("100", req.Query.Get("limit"))
	s.False(req.Query.Has("status"))
	s.False(req.Query.Has("search"))
}

func (s *ServiceSuite) TestPipelineDefaultsAndFilters() {
	s.api.Success(http.MethodGet, "/api/v1/tenders/pipeline", emptyPage(20))

	_, err := s.svc.GetPipelineData(context.Background(), models.PipelineQuery{
		Status:    []models.TenderStatus{"in_review", " new ", "in_review"},
		Priority:  []models.Priority{models.PriorityHigh},
		Search:    "  bridge  ",
		SortBy:    models.SortDeadline,
		SortOrder: models.SortAsc,
	}, nil)
	s.Require().NoError(err)

	req := s.lastRequest()
	s.Equal("in_review,new", req.Query.Get("status"))
	s.Equal("high", req.Query.Get("priority"))
	s.Equal("bridge", req.Query.Get("search"))
	s.Equal("1", req.Query.Get("page"))
	s.Equal("20", req.Query.Get("limit"))
	s.Equal("deadline", req.Query.Get("sortBy"))
	s.Equal("asc", req.Query.Get("sortOrder"))
}

func (s *ServiceSuite) TestPipelineRejectsBadFiltersLocally() {
	_, err := s.svc.GetPipelineData(context.Background(), models.PipelineQuery{Status: []models.TenderStatus{"draft"}}, nil)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = s.svc.GetPipelineData(context.Background(), models.PipelineQuery{SortBy: "value"}, nil)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

	s.Empty(s.api.Requests())
}

func (s *ServiceSuite) TestPipelineRowModes() {
	s.api.Success(http.MethodGet, "/api/v1/tenders/pipeline", map[string]any{
		"tenders": []any{
			testutil.NewTenderDTOBuilder("t-1").BuildJSON(),
			testutil.NewTenderDTOBuilder("t-2").WithCompliance(140).BuildJSON(),
			testutil.NewTenderDTOBuilder("t-3").BuildJSON(),
		},
		"total": 3, "page": 1, "limit": 20, "has_more": true,
	})

	_, err := s.svc.GetPipelineData(context.Background(), models.PipelineQuery{}, nil)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidDTO))

	var skipped []string
	list, err := s.svc.GetPipelineData(context.Background(), models.PipelineQuery{}, func(_ error, dto models.TenderDTO) {
		skipped = append(skipped, *dto.ID)
	})
	s.Require().NoError(err)
	s.Len(list.Tenders, 2)
	s.Equal([]string{"t-2"}, skipped)
	s.Equal(3, list.Total)
	s.True(list.HasMore)
}

func (s *ServiceSuite) TestPipelineMissingTenders() {
	s.api.Success(http.MethodGet, "/api/v1/tenders/pipeline", map[string]any{"total": 0})

	_, err := s.svc.GetPipelineData(context.Background(), models.PipelineQuery{}, nil)
	s.True(dErrors.HasCode(err, dErrors.CodeUnexpectedShape))
	s.Equal("Invalid pipeline response: tenders must be an array", err.Error())
}

func (s *ServiceSuite) TestEnvelopeFailure() {
	s.api.JSON(http.MethodGet, "/api/v1/tenders/stats", http.StatusOK, stubapi.Failure("no access"))

	_, err := s.svc.GetPipelineStats(context.Background())
	s.Require().Error(err)
	s.Equal("no access", err.Error())
	s.True(dErrors.HasCode(err, dErrors.CodeRequestFailed))
}

func (s *ServiceSuite) TestGetTenderDetails() {
	s.api.Success(http.MethodGet, "/api/v1/tenders/{id}", testutil.NewTenderDTOBuilder("t-42").WithTenantID("acme").BuildJSON())

	tender, err := s.svc.GetTenderDetails(context.Background(), "t-42")
	s.Require().NoError(err)
	s.Equal(id.TenderID("t-42"), tender.ID)
	s.Require().NotNil(tender.TenantID)
	s.Equal(id.TenantID("acme"), *tender.TenantID)
	s.Equal("/api/v1/tenders/t-42", s.lastRequest().Path)
}

func (s *ServiceSuite) TestGetTenderDetailsNotFound() {
	s.api.JSON(http.MethodGet, "/api/v1/tenders/{id}", http.StatusNotFound, map[string]any{
		"success": false, "error": "Tender not found", "code": "NOT_FOUND",
	})

	_, err := s.svc.GetTenderDetails(context.Background(), "missing")
	s.True(apierrors.IsNotFound(err))
	s.Equal("Tender not found", err.Error())

	_, err = s.svc.GetTenderDetails(context.Background(), "")
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *ServiceSuite) TestCreateTender() {
	s.api.Success(http.MethodPost, "/api/v1/tenders", testutil.NewTenderDTOBuilder("t-new").BuildJSON())

	tender, err := s.svc.CreateTender(context.Background(), models.CreateTenderRequest{
		Title:    "Water network upgrade",
		Priority: models.PriorityHigh,
		Tags:     []string{"water", " water ", "eu"},
	})
	s.Require().NoError(err)
	s.Equal(id.TenderID("t-new"), tender.ID)

	var body map[string]any
	s.Require().NoError(s.lastRequest().DecodeBody(&body))
	s.Equal("Water network upgrade", body["title"])
	s.Equal("high", body["priority"])
	s.Equal([]any{"water", "eu"}, body["tags"])
	s.NotContains(body, "status")
}

func (s *ServiceSuite) TestWritesAreValidatedLocally() {
	ctx := context.Background()

	_, err := s.svc.CreateTender(ctx, models.CreateTenderRequest{Title: "   "})
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	s.Equal("title must be a non-empty string", err.Error())

	bad := models.TenderStatus("archived")
	_, err = s.svc.UpdateTender(ctx, "t-1", models.UpdateTenderRequest{Status: &bad})
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = s.svc.UpdateTender(ctx, "t-1", models.UpdateTenderRequest{})
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

	s.True(dErrors.HasCode(s.svc.UpdateTenderStatus(ctx, "t-1", "archived"), dErrors.CodeInvalidInput))
	s.True(dErrors.HasCode(s.svc.AssignTender(ctx, "t-1", ""), dErrors.CodeInvalidInput))

	tooMany := make([]id.TenderID, 101)
	for i := range tooMany {
		tooMany[i] = id.TenderID(fmt.Sprintf("t-%d", i))
	}
	title := "x"
	_, err = s.svc.BulkUpdateTenders(ctx, tooMany, models.UpdateTenderRequest{Title: &title})
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

	s.Empty(s.api.Requests())
}

func (s *ServiceSuite) TestUpdateTender() {
	s.api.Success(http.MethodPut, "/api/v1/tenders/{id}", testutil.NewTenderDTOBuilder("t-1").WithStatus("in_progress").BuildJSON())

	status := models.StatusInProgress
	tender, err := s.svc.UpdateTender(context.Background(), "t-1", models.UpdateTenderRequest{Status: &status})
	s.Require().NoError(err)
	s.Equal(models.StatusInProgress, tender.Status)
	s.JSONEq(`{"status":"in_progress"}`, string(s.lastRequest().Body))
}

func (s *ServiceSuite) TestDeleteTender() {
	s.api.Success(http.MethodDelete, "/api/v1/tenders/{id}", map[string]any{"ok": true})
	s.Require().NoError(s.svc.DeleteTender(context.Background(), "t-1"))
	s.Equal(http.MethodDelete, s.lastRequest().Method)
}

func (s *ServiceSuite) TestDeleteTenderMissingData() {
	s.api.JSON(http.MethodDelete, "/api/v1/tenders/{id}", http.StatusOK, map[string]any{"success": true})
	err := s.svc.DeleteTender(context.Background(), "t-1")
	s.True(dErrors.HasCode(err, dErrors.CodeMissingData))
}

func (s *ServiceSuite) TestBulkUpdate() {
	s.api.Success(http.MethodPost, "/api/v1/tenders/bulk-update", map[string]any{"updated": 2})

	priority := models.PriorityLow
	n, err := s.svc.BulkUpdateTenders(context.Background(), []id.TenderID{"t-1", "t-2", "t-1"}, models.UpdateTenderRequest{Priority: &priority})
	s.Require().NoError(err)
	s.Equal(2, n)
	s.JSONEq(`{"tender_ids":["t-1","t-2"],"updates":{"priority":"low"}}`, string(s.lastRequest().Body))
}

func (s *ServiceSuite) TestBulkUpdateWithoutCount() {
	s.api.Success(http.MethodPost, "/api/v1/tenders/bulk-update", map[string]any{"ok": true})

	title := "Renamed"
	n, err := s.svc.BulkUpdateTenders(context.Background(), []id.TenderID{"t-1", "t-2", "t-3"}, models.UpdateTenderRequest{Title: &title})
	s.Require().NoError(err)
	s.Equal(3, n)
}

func (s *ServiceSuite) TestAssignAndStatus() {
	s.api.Success(http.MethodPatch, "/api/v1/tenders/{id}/assign", map[string]any{"ok": true})
	s.api.Success(http.MethodPatch, "/api/v1/tenders/{id}/status", map[string]any{"ok": true})

	s.Require().NoError(s.svc.AssignTender(context.Background(), "t-1", "u-7"))
	s.JSONEq(`{"assignee_id":"u-7"}`, string(s.lastRequest().Body))
	s.Equal("/api/v1/tenders/t-1/assign", s.lastRequest().Path)

	s.Require().NoError(s.svc.UpdateTenderStatus(context.Background(), "t-1", models.StatusSubmitted))
	s.JSONEq(`{"status":"submitted"}`, string(s.lastRequest().Body))
}

func (s *ServiceSuite) TestConcurrentDetails() {
	s.api.Handle(http.MethodGet, "/api/v1/tenders/{id}", func(w http.ResponseWriter, r *http.Request) {
		tenderID := chi.URLParam(r, "id")
		if tenderID == "t-3" {
			stubapi.WriteJSON(w, http.StatusNotFound, stubapi.Failure("Tender not found"))
			return
		}
		stubapi.WriteJSON(w, http.StatusOK, stubapi.Success(testutil.NewTenderDTOBuilder(tenderID).BuildJSON()))
	})

	result := testutil.RunConcurrent(6, func(i int) error {
		_, err := s.svc.GetTenderDetails(context.Background(), id.TenderID(fmt.Sprintf("t-%d", i)))
		return err
	})
	s.Equal(int32(5), result.Successes)
	s.Equal(int32(1), result.NotFounds)
}

func TestRequestErrorsPassThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	requester := mocks.NewMockRequester(ctrl)
	svc := New(requester)

	cancelled := apierrors.New("Request cancelled", apierrors.StatusCancelled, apierrors.CodeTimeout, nil, context.Canceled)
	requester.EXPECT().Get(gomock.Any(), "/api/v1/tenders/stats", gomock.Any(), gomock.Nil()).Return(cancelled)

	_, err := svc.GetPipelineStats(context.Background())
	require.Error(t, err)
	assert.Same(t, cancelled, err)
	assert.True(t, apierrors.IsCancelled(err))
}
