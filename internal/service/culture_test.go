package service

import (
	"context"
	"testing"

	"orgpulse/internal/domain"
	"orgpulse/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockReportInvalidator struct {
	mock.Mock
}

func (m *MockReportInvalidator) InvalidateSurvey(ctx context.Context, surveyID string) error {
	args := m.Called(ctx, surveyID)
	return args.Error(0)
}

func TestSubmitResponse_Valid(t *testing.T) {
	surveys := new(MockSurveyRepository)
	responses := new(MockCultureResponseRepository)
	invalidator := new(MockReportInvalidator)
	svc := NewCultureResponseService(surveys, responses, invalidator)

	ctx := context.Background()
	surveys.On("GetSurveyByID", ctx, "s1").Return(&domain.Survey{ID: "s1"}, nil)
	responses.On("CreateResponse", ctx, mock.AnythingOfType("*domain.CultureResponse")).Return(nil)
	invalidator.On("InvalidateSurvey", ctx, "s1").Return(nil)

	ack, err := svc.SubmitResponse(ctx, &dto.SubmitCultureResponseRequest{
		SurveyID:     "s1",
		Demographics: map[string]string{"department": "Engineering"},
		Now:          dto.CultureScores{Clan: 30, Adhocracy: 20, Market: 30, Hierarchy: 20},
		Preferred:    dto.CultureScores{Clan: 40, Adhocracy: 25, Market: 15, Hierarchy: 20},
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, ack.ID)
	assert.Equal(t, "s1", ack.SurveyID)
	invalidator.AssertExpectations(t)
}

func TestSubmitResponse_ScoresMustSumTo100(t *testing.T) {
	surveys := new(MockSurveyRepository)
	responses := new(MockCultureResponseRepository)
	svc := NewCultureResponseService(surveys, responses, nil)

	_, err := svc.SubmitResponse(context.Background(), &dto.SubmitCultureResponseRequest{
		SurveyID:  "s1",
		Now:       dto.CultureScores{Clan: 25, Adhocracy: 25, Market: 25, Hierarchy: 24},
		Preferred: dto.CultureScores{Clan: 25, Adhocracy: 25, Market: 25, Hierarchy: 25},
	})

	assert.Error(t, err)
	validationErrs, ok := err.(domain.ValidationErrors)
	assert.True(t, ok)
	assert.Equal(t, "now", validationErrs[0].Field)

	// Invalid profiles never reach the store.
	responses.AssertNotCalled(t, "CreateResponse", mock.Anything, mock.Anything)
}

func TestSubmitResponse_UnknownSurvey(t *testing.T) {
	surveys := new(MockSurveyRepository)
	responses := new(MockCultureResponseRepository)
	svc := NewCultureResponseService(surveys, responses, nil)

	ctx := context.Background()
	surveys.On("GetSurveyByID", ctx, "missing").Return(nil, nil)

	_, err := svc.SubmitResponse(ctx, &dto.SubmitCultureResponseRequest{
		SurveyID:  "missing",
		Now:       dto.CultureScores{Clan: 25, Adhocracy: 25, Market: 25, Hierarchy: 25},
		Preferred: dto.CultureScores{Clan: 25, Adhocracy: 25, Market: 25, Hierarchy: 25},
	})

	assert.Error(t, err)
	domainErr, ok := err.(*domain.DomainError)
	assert.True(t, ok)
	assert.Equal(t, domain.CodeSurveyNotFound, domainErr.Code)
}

func TestSubmitResponse_InvalidationFailureIsNotFatal(t *testing.T) {
	surveys := new(MockSurveyRepository)
	responses := new(MockCultureResponseRepository)
	invalidator := new(MockReportInvalidator)
	svc := NewCultureResponseService(surveys, responses, invalidator)

	ctx := context.Background()
	surveys.On("GetSurveyByID", ctx, "s1").Return(&domain.Survey{ID: "s1"}, nil)
	responses.On("CreateResponse", ctx, mock.AnythingOfType("*domain.CultureResponse")).Return(nil)
	invalidator.On("InvalidateSurvey", ctx, "s1").Return(assert.AnError)

	ack, err := svc.SubmitResponse(ctx, &dto.SubmitCultureResponseRequest{
		SurveyID:  "s1",
		Now:       dto.CultureScores{Clan: 25, Adhocracy: 25, Market: 25, Hierarchy: 25},
		Preferred: dto.CultureScores{Clan: 25, Adhocracy: 25, Market: 25, Hierarchy: 25},
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, ack.ID)
}
