package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"

	"orgpulse/internal/config"
	"orgpulse/internal/domain"
	"orgpulse/internal/dto"
	"orgpulse/internal/logger"
	"orgpulse/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "info"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

// --- Service mocks ---

type MockCompletionService struct {
	mock.Mock
}

func (m *MockCompletionService) RecordAnswer(ctx context.Context, req *dto.SaveAnswerRequest) (*dto.AnswerResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AnswerResponse), args.Error(1)
}

func (m *MockCompletionService) GetProgress(ctx context.Context, participantID string, scope domain.SurveyScope) (*dto.ProgressResponse, error) {
	args := m.Called(ctx, participantID, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProgressResponse), args.Error(1)
}

func (m *MockCompletionService) UpdateProgress(ctx context.Context, req *dto.ProgressRequest) (*dto.ProgressResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProgressResponse), args.Error(1)
}

type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) ValidateAndSubmit(ctx context.Context, req *dto.SubmitRequest) (*dto.SubmissionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SubmissionResponse), args.Error(1)
}

func newTestApp(completion *MockCompletionService, submission *MockSubmissionService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := NewAssessmentHandler(completion, submission)
	vm := middleware.NewValidationMiddleware()

	api := app.Group("/api")
	api.Post("/answers", h.SaveAnswer)
	api.Get("/progress", vm.ValidateParticipantQuery(), h.GetProgress)
	api.Post("/submit", h.Submit)
	return app
}

const validQuestionID = "01HV5XJ9K2M3N4P5Q6R7S8T9VA"

func TestSaveAnswerEndpoint(t *testing.T) {
	completion := new(MockCompletionService)
	submission := new(MockSubmissionService)
	app := newTestApp(completion, submission)

	completion.On("RecordAnswer", mock.Anything, mock.AnythingOfType("*dto.SaveAnswerRequest")).
		Return(&dto.AnswerResponse{ID: "01HV5ANSWER000000000000000", QuestionID: validQuestionID}, nil)

	body, _ := json.Marshal(dto.SaveAnswerRequest{
		ParticipantID: "p1",
		QuestionID:    validQuestionID,
		ResponseText:  "an answer",
	})
	req := httptest.NewRequest("POST", "/api/answers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSaveAnswerEndpoint_ValidationFailure(t *testing.T) {
	completion := new(MockCompletionService)
	submission := new(MockSubmissionService)
	app := newTestApp(completion, submission)

	body, _ := json.Marshal(dto.SaveAnswerRequest{QuestionID: "bogus"})
	req := httptest.NewRequest("POST", "/api/answers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var errResp middleware.ValidationErrorResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Equal(t, string(domain.CodeValidation), errResp.Code)
	assert.NotEmpty(t, errResp.Errors)
	completion.AssertNotCalled(t, "RecordAnswer", mock.Anything, mock.Anything)
}

func TestGetProgressEndpoint_RequiresParticipant(t *testing.T) {
	completion := new(MockCompletionService)
	submission := new(MockSubmissionService)
	app := newTestApp(completion, submission)

	req := httptest.NewRequest("GET", "/api/progress", nil)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSubmitEndpoint_IncompleteReturnsDetails(t *testing.T) {
	completion := new(MockCompletionService)
	submission := new(MockSubmissionService)
	app := newTestApp(completion, submission)

	submission.On("ValidateAndSubmit", mock.Anything, mock.AnythingOfType("*dto.SubmitRequest")).
		Return(nil, domain.NewIncompleteError(46, 97, []string{"q047"}))

	body, _ := json.Marshal(dto.SubmitRequest{ParticipantID: "p1"})
	req := httptest.NewRequest("POST", "/api/submit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var errResp middleware.ErrorResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Equal(t, string(domain.CodeIncomplete), errResp.Code)
	assert.Equal(t, float64(51), errResp.Details["remaining_questions"])
}

func TestSubmitEndpoint_Success(t *testing.T) {
	completion := new(MockCompletionService)
	submission := new(MockSubmissionService)
	app := newTestApp(completion, submission)

	submission.On("ValidateAndSubmit", mock.Anything, mock.AnythingOfType("*dto.SubmitRequest")).
		Return(&dto.SubmissionResponse{AssessmentID: "ASSESS-ACME-2026-001", TotalQuestions: 97, AnsweredQuestions: 97, CompletionRate: 100}, nil)

	body, _ := json.Marshal(dto.SubmitRequest{ParticipantID: "p1", OrganizationID: "acme-corp"})
	req := httptest.NewRequest("POST", "/api/submit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var subResp dto.SubmissionResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&subResp))
	assert.Equal(t, "ASSESS-ACME-2026-001", subResp.AssessmentID)
}
