package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gradepro/gradepro-web/internal/dto"
	"github.com/gradepro/gradepro-web/internal/events"
	"github.com/gradepro/gradepro-web/internal/grading"
	"github.com/gradepro/gradepro-web/internal/models"
)

func revaluationGrades() []models.Grade {
	return []models.Grade{
		{ID: "g1", Marks: 12, MaxMarks: 20},
		{ID: "g2", Marks: 8, MaxMarks: 20, RevaluationRequested: true},
	}
}

func TestRevaluationCreateRejectsMissingFieldsWithoutNetwork(t *testing.T) {
	fake := &fakeBackend{grades: revaluationGrades()}
	svc := NewRevaluationService(fake, testValidator(), nil, testLogger())

	_, err := svc.Create(context.Background(), studentSession, dto.RevaluationCreateRequest{Reason: "please"})
	require.ErrorIs(t, err, grading.ErrGradingIDRequired)

	_, err = svc.Create(context.Background(), studentSession, dto.RevaluationCreateRequest{GradingID: "g1", Reason: "   "})
	require.ErrorIs(t, err, grading.ErrReasonRequired)

	_, err = svc.Create(context.Background(), studentSession, dto.RevaluationCreateRequest{GradingID: "g1", Reason: "<b></b>"})
	require.ErrorIs(t, err, grading.ErrReasonRequired)

	require.Equal(t, 0, fake.gradeListCalls)
	require.Equal(t, 0, fake.revaluationCalls)
}

func TestRevaluationCreateRejectsIneligibleGrade(t *testing.T) {
	fake := &fakeBackend{grades: revaluationGrades()}
	svc := NewRevaluationService(fake, testValidator(), nil, testLogger())

	_, err := svc.Create(context.Background(), studentSession, dto.RevaluationCreateRequest{GradingID: "g2", Reason: "recount"})
	require.ErrorIs(t, err, grading.ErrRevaluationNotEligible)

	_, err = svc.Create(context.Background(), studentSession, dto.RevaluationCreateRequest{GradingID: "someone-else", Reason: "recount"})
	require.ErrorIs(t, err, grading.ErrRevaluationNotEligible)

	require.Equal(t, 0, fake.revaluationCalls)
}

func TestRevaluationCreate(t *testing.T) {
	fake := &fakeBackend{grades: revaluationGrades()}
	publisher := &fakePublisher{}
	svc := NewRevaluationService(fake, testValidator(), publisher, testLogger())

	result, err := svc.Create(context.Background(), studentSession, dto.RevaluationCreateRequest{GradingID: " g1 ", Reason: "Question 3 was <i>marked</i> wrong"})
	require.NoError(t, err)
	require.Equal(t, 1, fake.revaluationCalls)
	require.Equal(t, "g1", result.GradingID)
	require.Equal(t, "Question 3 was marked wrong", result.Reason)
	require.Equal(t, grading.RevaluationPending, result.Status)
	require.False(t, result.Terminal)
	require.False(t, result.RequestedAt.IsZero())

	require.Len(t, publisher.events, 1)
	require.Equal(t, events.RevaluationRequested, publisher.events[0].name)
	payload := publisher.events[0].payload.(events.RevaluationRequestedPayload)
	require.Equal(t, "S1", payload.StudentID)
	require.Equal(t, "rv-1", payload.RevaluationID)
}

func TestRevaluationListSkipsUnknownStatuses(t *testing.T) {
	fake := &fakeBackend{revaluations: []models.RevaluationRequest{
		{ID: "r1", GradingID: "g1", Status: "Approved"},
		{ID: "r2", GradingID: "g2", Status: "escalated"},
	}}
	svc := NewRevaluationService(fake, testValidator(), nil, testLogger())

	result, err := svc.List(context.Background(), studentSession)
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Equal(t, grading.RevaluationApproved, result[0].Status)
	require.True(t, result[0].Terminal)
}

type emptyReplyRevaluationBackend struct {
	*fakeBackend
	reply models.RevaluationRequest
}

func (f *emptyReplyRevaluationBackend) CreateRevaluation(ctx context.Context, token string, input models.RevaluationInput) (models.RevaluationRequest, error) {
	f.revaluationCalls++
	return f.reply, nil
}

func TestRevaluationCreateFillsPartialBackendReply(t *testing.T) {
	cases := []struct {
		name  string
		reply models.RevaluationRequest
	}{
		{"no data", models.RevaluationRequest{}},
		{"id and status only", models.RevaluationRequest{ID: "rv-9", Status: "pending"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &emptyReplyRevaluationBackend{fakeBackend: &fakeBackend{grades: revaluationGrades()}, reply: tc.reply}
			svc := NewRevaluationService(stub, testValidator(), nil, testLogger()).(*revaluationService)
			fixed := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
			svc.now = func() time.Time { return fixed }

			result, err := svc.Create(context.Background(), studentSession, dto.RevaluationCreateRequest{GradingID: "g1", Reason: "recount"})
			require.NoError(t, err)
			require.Equal(t, 1, stub.revaluationCalls)
			require.Equal(t, tc.reply.ID, result.ID)
			require.Equal(t, "g1", result.GradingID)
			require.Equal(t, "recount", result.Reason)
			require.Equal(t, grading.RevaluationPending, result.Status)
			require.Equal(t, fixed, result.RequestedAt)
		})
	}
}
