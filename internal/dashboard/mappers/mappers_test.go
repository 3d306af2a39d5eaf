package mappers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"tenderai/internal/dashboard/models"
	id "tenderai/pkg/domain"
	dErrors "tenderai/pkg/domain-errors"
)

func ptr[T any](v T) *T { return &v }

func rawRows[D any](dtos ...D) []json.RawMessage {
	rows := make([]json.RawMessage, len(dtos))
	for i, dto := range dtos {
		b, err := json.Marshal(dto)
		if err != nil {
			panic(err)
		}
		rows[i] = b
	}
	return rows
}

func member(memberID string, rate float64) models.TeamMemberDTO {
	return models.TeamMemberDTO{
		ID:             ptr(memberID),
		Name:           ptr("Amira " + memberID),
		Role:           ptr("bid_manager"),
		ActiveTenders:  ptr(4.0),
		CompletionRate: ptr(rate),
		AvgScore:       ptr(88.0),
	}
}

func activity(activityID string) models.ActivityItemDTO {
	return models.ActivityItemDTO{
		ID:        ptr(activityID),
		Type:      ptr("upload"),
		Message:   ptr("Uploaded tender dossier"),
		Timestamp: ptr("2026-01-31T14:30:00Z"),
		User:      ptr("Sami"),
	}
}

type MappersSuite struct {
	suite.Suite
}

func TestMappersSuite(t *testing.T) {
	suite.Run(t, new(MappersSuite))
}

func (s *MappersSuite) TestDashboardMetrics() {
	got, err := MapDashboardMetrics(models.DashboardSummaryDTO{
		ActiveTenders:      ptr(18.0),
		TotalValue:         ptr(1000000.0),
		SuccessRate:        ptr(86.5),
		AvgComplianceScore: ptr(81.0),
	})
	s.Require().NoError(err)
	s.Equal(models.DashboardSummary{
		ActiveTenders:      18,
		TotalValue:         1000000,
		SuccessRate:        86.5,
		AvgComplianceScore: 81,
	}, got)
}

func (s *MappersSuite) TestDashboardMetricsRejects() {
	valid := func() models.DashboardSummaryDTO {
		return models.DashboardSummaryDTO{
			ActiveTenders: ptr(1.0), TotalValue: ptr(0.0), SuccessRate: ptr(0.0), AvgComplianceScore: ptr(100.0),
		}
	}
	cases := map[string]struct {
		mutate func(*models.DashboardSummaryDTO)
		msg    string
	}{
		"fractional active tenders": {
			func(d *models.DashboardSummaryDTO) { d.ActiveTenders = ptr(2.5) },
			"invalid DashboardSummaryDTO.active_tenders: must be a whole number, got 2.5",
		},
		"negative total value": {
			func(d *models.DashboardSummaryDTO) { d.TotalValue = ptr(-1.0) },
			"invalid DashboardSummaryDTO.total_value: must be >= 0, got -1",
		},
		"success rate above 100": {
			func(d *models.DashboardSummaryDTO) { d.SuccessRate = ptr(100.1) },
			"invalid DashboardSummaryDTO.success_rate: must be <= 100, got 100.1",
		},
		"missing compliance score": {
			func(d *models.DashboardSummaryDTO) { d.AvgComplianceScore = nil },
			"invalid DashboardSummaryDTO.avg_compliance_score: is required, got nothing",
		},
	}
	for name, tc := range cases {
		s.Run(name, func() {
			dto := valid()
			tc.mutate(&dto)
			_, err := MapDashboardMetrics(dto)
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidDTO))
			s.Equal(tc.msg, err.Error())
		})
	}
}

func (s *MappersSuite) TestActivityItem() {
	dto := activity("a1")
	dto.UserAvatar = ptr("https://cdn.example/sami.png")

	got, err := MapActivityItem(dto)
	s.Require().NoError(err)
	s.Equal(id.ActivityID("a1"), got.ID)
	s.Equal(models.ActivityUpload, got.Type)
	s.Equal(time.Date(2026, 1, 31, 14, 30, 0, 0, time.UTC), got.Timestamp.UTC())
	s.Equal("https://cdn.example/sami.png", got.UserAvatar)
}

func (s *MappersSuite) TestActivityItemRejects() {
	bad := activity("a9")
	bad.Type = ptr("party")
	_, err := MapActivityItem(bad)
	s.Require().Error(err)
	s.Contains(err.Error(), "invalid ActivityItemDTO.type (id=a9): must be one of: upload, approval")

	bad = activity("a9")
	bad.Timestamp = ptr("31/01/2026")
	_, err = MapActivityItem(bad)
	s.Contains(err.Error(), "ActivityItemDTO.timestamp (id=a9): must be an ISO-8601 timestamp")

	bad = activity(" a9 ")
	_, err = MapActivityItem(bad)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidDTO))
	s.Contains(err.Error(), "invalid ActivityItemDTO.id")
}

func (s *MappersSuite) TestTeamPerformanceFailFast() {
	batch := rawRows(member("m1", 40), member("m2", 150), member("m3", 90))

	out, err := MapTeamPerformance(batch, nil)
	s.Require().Error(err)
	s.Nil(out)
	s.Equal("invalid TeamMemberDTO.completion_rate (id=m2): must be <= 100, got 150", err.Error())
}

func (s *MappersSuite) TestTeamPerformanceSkipsWithHandler() {
	batch := []models.TeamMemberDTO{member("m1", 40), member("m2", 150), member("m3", 90)}

	var rejected []models.TeamMemberDTO
	out, err := MapTeamPerformance(rawRows(batch...), func(err error, dto models.TeamMemberDTO) {
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidDTO))
		rejected = append(rejected, dto)
	})
	s.Require().NoError(err)
	s.Require().Len(out, 2)
	s.Equal(id.TeamMemberID("m1"), out[0].ID)
	s.Equal(id.TeamMemberID("m3"), out[1].ID)
	s.Require().Len(rejected, 1)
	s.Equal(batch[1], rejected[0])
}

func (s *MappersSuite) TestSafeMappersNeverFail() {
	members := MapTeamPerformanceSafe(nil, rawRows(member("m1", 101), member("m2", 0)), nil)
	s.Len(members, 1)
	s.Equal(0.0, members[0].CompletionRate)

	feed := MapActivityFeedSafe(nil, append(rawRows(models.ActivityItemDTO{}, activity("a2")), json.RawMessage(`"not a row"`)), nil)
	s.Len(feed, 1)
}

func (s *MappersSuite) TestWrongTypedRowIsSkipped() {
	rows := rawRows(member("m1", 40))
	rows = append(rows,
		json.RawMessage(`{"id":"m2","name":"Lina","role":"observer","active_tenders":1,"completion_rate":"high","avg_score":70}`),
	)
	rows = append(rows, rawRows(member("m3", 90))...)

	var errs []error
	var rejected []models.TeamMemberDTO
	out, err := MapTeamPerformance(rows, func(err error, dto models.TeamMemberDTO) {
		errs = append(errs, err)
		rejected = append(rejected, dto)
	})
	s.Require().NoError(err)
	s.Require().Len(out, 2)
	s.Equal(id.TeamMemberID("m3"), out[1].ID)

	s.Require().Len(errs, 1)
	s.True(dErrors.HasCode(errs[0], dErrors.CodeInvalidDTO))
	s.Equal(`invalid TeamMemberDTO.completion_rate (id=m2): must be a number, got "high"`, errs[0].Error())
	s.Equal("Lina", *rejected[0].Name, "fields that decoded reach the handler")
	s.Nil(rejected[0].CompletionRate)

	_, err = MapTeamPerformance(rows, nil)
	s.Require().Error(err)
	s.Equal(errs[0].Error(), err.Error())
}

func (s *MappersSuite) TestNonObjectRow() {
	_, err := MapActivityFeed([]json.RawMessage{json.RawMessage(`42`)}, nil)
	s.Require().Error(err)
	s.Equal("invalid ActivityItemDTO: must be an object, got number", err.Error())
}

func TestTeamMemberRoleMessage(t *testing.T) {
	dto := member("m7", 50)
	dto.Role = ptr("ceo")
	_, err := MapTeamMember(dto)
	require.Error(t, err)
	assert.Equal(t,
		`invalid TeamMemberDTO.role (id=m7): must be one of: bid_manager, proposal_lead, compliance_officer, legal_reviewer, pricing_manager, observer, got "ceo"`,
		err.Error())
}
