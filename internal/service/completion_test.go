package service

import (
	"context"
	"testing"
	"time"

	"orgpulse/internal/domain"
	"orgpulse/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRecordAnswer_NewAnswer(t *testing.T) {
	answers := new(MockAnswerRepository)
	progress := new(MockProgressRepository)
	questions := new(MockQuestionRepository)
	svc := NewCompletionService(answers, progress, questions)

	ctx := context.Background()
	scope := domain.StandaloneScope()
	questionID := "01HV5TESTQUESTION000000000"

	questions.On("GetQuestionByID", ctx, questionID).Return(&domain.Question{ID: questionID, Category: "Leadership", Text: "q"}, nil)
	answers.On("GetAnswer", ctx, "p1", questionID, scope).Return(nil, nil)
	answers.On("UpsertAnswer", ctx, mock.AnythingOfType("*domain.QuestionAnswer")).Return(nil)

	resp, err := svc.RecordAnswer(ctx, &dto.SaveAnswerRequest{
		ParticipantID: "p1",
		QuestionID:    questionID,
		ResponseText:  "We communicate direction quarterly.",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, questionID, resp.QuestionID)
	answers.AssertExpectations(t)
}

func TestRecordAnswer_UnchangedTextSkipsWrite(t *testing.T) {
	answers := new(MockAnswerRepository)
	progress := new(MockProgressRepository)
	questions := new(MockQuestionRepository)
	svc := NewCompletionService(answers, progress, questions)

	ctx := context.Background()
	scope := domain.StandaloneScope()
	questionID := "01HV5TESTQUESTION000000000"
	storedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	existing := &domain.QuestionAnswer{
		ID:            "01HV5EXISTINGANSWER0000000",
		ParticipantID: "p1",
		QuestionID:    questionID,
		Scope:         scope,
		ResponseText:  "Same text",
		UpdatedAt:     storedAt,
	}

	questions.On("GetQuestionByID", ctx, questionID).Return(&domain.Question{ID: questionID, Category: "Leadership", Text: "q"}, nil)
	answers.On("GetAnswer", ctx, "p1", questionID, scope).Return(existing, nil)

	// Trailing whitespace still counts as unchanged.
	resp, err := svc.RecordAnswer(ctx, &dto.SaveAnswerRequest{
		ParticipantID: "p1",
		QuestionID:    questionID,
		ResponseText:  "Same text  ",
	})

	assert.NoError(t, err)
	assert.Equal(t, existing.ID, resp.ID)
	assert.Equal(t, storedAt, resp.UpdatedAt)
	answers.AssertNotCalled(t, "UpsertAnswer", mock.Anything, mock.Anything)
}

func TestRecordAnswer_UnknownQuestion(t *testing.T) {
	answers := new(MockAnswerRepository)
	progress := new(MockProgressRepository)
	questions := new(MockQuestionRepository)
	svc := NewCompletionService(answers, progress, questions)

	ctx := context.Background()
	questionID := "01HV5MISSINGQUESTION000000"
	questions.On("GetQuestionByID", ctx, questionID).Return(nil, nil)

	_, err := svc.RecordAnswer(ctx, &dto.SaveAnswerRequest{
		ParticipantID: "p1",
		QuestionID:    questionID,
		ResponseText:  "text",
	})

	assert.Error(t, err)
	domainErr, ok := err.(*domain.DomainError)
	assert.True(t, ok)
	assert.Equal(t, domain.CodeQuestionNotFound, domainErr.Code)
}

func TestGetProgress_SynthesizesEmptyRecord(t *testing.T) {
	answers := new(MockAnswerRepository)
	progress := new(MockProgressRepository)
	questions := new(MockQuestionRepository)
	svc := NewCompletionService(answers, progress, questions)

	ctx := context.Background()
	scope := domain.ScopeForSurvey("01HV5SURVEY000000000000000")
	progress.On("GetProgress", ctx, "p1", scope).Return(nil, nil)

	resp, err := svc.GetProgress(ctx, "p1", scope)

	assert.NoError(t, err)
	assert.Equal(t, 0, resp.AnsweredCount)
	assert.False(t, resp.IsCompleted)
	assert.Empty(t, resp.AnsweredQuestionIDs)
	assert.Equal(t, "01HV5SURVEY000000000000000", resp.SurveyID)
}

func TestUpdateProgress_DedupesAnsweredIDs(t *testing.T) {
	answers := new(MockAnswerRepository)
	progress := new(MockProgressRepository)
	questions := new(MockQuestionRepository)
	svc := NewCompletionService(answers, progress, questions)

	ctx := context.Background()
	scope := domain.StandaloneScope()
	progress.On("GetProgress", ctx, "p1", scope).Return(nil, nil)
	progress.On("UpsertProgress", ctx, mock.AnythingOfType("*domain.AssessmentProgress")).Return(nil)

	resp, err := svc.UpdateProgress(ctx, &dto.ProgressRequest{
		ParticipantID:       "p1",
		AnsweredQuestionIDs: []string{"q1", "q2", "q1", "q3", "q2"},
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"q1", "q2", "q3"}, resp.AnsweredQuestionIDs)
	assert.Equal(t, 3, resp.AnsweredCount)
}

func TestUpdateProgress_CompletionIsMonotonic(t *testing.T) {
	answers := new(MockAnswerRepository)
	progress := new(MockProgressRepository)
	questions := new(MockQuestionRepository)
	svc := NewCompletionService(answers, progress, questions)

	ctx := context.Background()
	scope := domain.StandaloneScope()
	completedAt := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	record := &domain.AssessmentProgress{
		ID:                  "01HV5PROGRESS0000000000000",
		ParticipantID:       "p1",
		Scope:               scope,
		AnsweredQuestionIDs: []string{"q1"},
		IsCompleted:         true,
		CompletedAt:         &completedAt,
	}
	progress.On("GetProgress", ctx, "p1", scope).Return(record, nil)
	progress.On("UpsertProgress", ctx, mock.AnythingOfType("*domain.AssessmentProgress")).Return(nil)

	// A later update cannot reset completion or move the timestamp.
	notCompleted := false
	resp, err := svc.UpdateProgress(ctx, &dto.ProgressRequest{
		ParticipantID: "p1",
		IsCompleted:   &notCompleted,
	})

	assert.NoError(t, err)
	assert.True(t, resp.IsCompleted)
	assert.Equal(t, completedAt, *resp.CompletedAt)
}
