package service

import (
	"context"
	"os"
	"testing"
	"time"

	"orgpulse/internal/config"
	"orgpulse/internal/domain"
	"orgpulse/internal/logger"

	"github.com/stretchr/testify/mock"
)

// TestMain initializes the logger for all tests in this package
func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "info"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}

	exitVal := m.Run()

	_ = logger.Sync()
	os.Exit(exitVal)
}

// --- MockQuestionRepository ---
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) CountQuestions(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockQuestionRepository) GetQuestionIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockQuestionRepository) GetQuestionByID(ctx context.Context, id string) (*domain.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

// --- MockAnswerRepository ---
type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) GetAnswer(ctx context.Context, participantID, questionID string, scope domain.SurveyScope) (*domain.QuestionAnswer, error) {
	args := m.Called(ctx, participantID, questionID, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuestionAnswer), args.Error(1)
}

func (m *MockAnswerRepository) UpsertAnswer(ctx context.Context, answer *domain.QuestionAnswer) error {
	args := m.Called(ctx, answer)
	return args.Error(0)
}

func (m *MockAnswerRepository) CountNonEmptyAnswers(ctx context.Context, participantID string, scope domain.SurveyScope) (int, error) {
	args := m.Called(ctx, participantID, scope)
	return args.Int(0), args.Error(1)
}

func (m *MockAnswerRepository) GetAnsweredQuestionIDs(ctx context.Context, participantID string, scope domain.SurveyScope) ([]string, error) {
	args := m.Called(ctx, participantID, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- MockProgressRepository ---
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) GetProgress(ctx context.Context, participantID string, scope domain.SurveyScope) (*domain.AssessmentProgress, error) {
	args := m.Called(ctx, participantID, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssessmentProgress), args.Error(1)
}

func (m *MockProgressRepository) UpsertProgress(ctx context.Context, progress *domain.AssessmentProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

// --- MockSubmissionRepository ---
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) GetSubmission(ctx context.Context, participantID string, scope domain.SurveyScope) (*domain.Submission, error) {
	args := m.Called(ctx, participantID, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) CreateSubmission(ctx context.Context, submission *domain.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionRepository) NextAssessmentSeq(ctx context.Context, orgKey string, year int) (int, error) {
	args := m.Called(ctx, orgKey, year)
	return args.Int(0), args.Error(1)
}

// --- MockSurveyRepository ---
type MockSurveyRepository struct {
	mock.Mock
}

func (m *MockSurveyRepository) GetSurveyByID(ctx context.Context, id string) (*domain.Survey, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Survey), args.Error(1)
}

// --- MockCultureResponseRepository ---
type MockCultureResponseRepository struct {
	mock.Mock
}

func (m *MockCultureResponseRepository) CreateResponse(ctx context.Context, response *domain.CultureResponse) error {
	args := m.Called(ctx, response)
	return args.Error(0)
}

func (m *MockCultureResponseRepository) GetResponsesBySurvey(ctx context.Context, surveyID string) ([]domain.CultureResponse, error) {
	args := m.Called(ctx, surveyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CultureResponse), args.Error(1)
}

// --- MockTransactionManager ---
// Runs the transactional function directly against the same context.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
