package service

import (
	"context"
	"time"

	"orgpulse/internal/domain"
	"orgpulse/internal/dto"
	"orgpulse/internal/logger"
	"orgpulse/internal/util"

	"go.uber.org/zap"
)

// CompletionService tracks how much of the excellence instrument a
// participant has finished and maintains the resumable progress record.
type CompletionService interface {
	// RecordAnswer upserts one answer. Saving unchanged text is a no-op that
	// returns the stored record, so retries and duplicate tabs cost nothing.
	RecordAnswer(ctx context.Context, req *dto.SaveAnswerRequest) (*dto.AnswerResponse, error)

	// GetProgress returns the progress record, synthesizing an empty one when
	// the participant has not started yet.
	GetProgress(ctx context.Context, participantID string, scope domain.SurveyScope) (*dto.ProgressResponse, error)

	// UpdateProgress upserts the progress record. Completion is monotonic.
	UpdateProgress(ctx context.Context, req *dto.ProgressRequest) (*dto.ProgressResponse, error)
}

// completionService implements CompletionService
type completionService struct {
	answers   domain.AnswerRepository
	progress  domain.ProgressRepository
	questions domain.QuestionRepository
}

// NewCompletionService creates a new instance of completionService
func NewCompletionService(
	answers domain.AnswerRepository,
	progress domain.ProgressRepository,
	questions domain.QuestionRepository,
) CompletionService {
	return &completionService{
		answers:   answers,
		progress:  progress,
		questions: questions,
	}
}

// RecordAnswer implements CompletionService
func (s *completionService) RecordAnswer(ctx context.Context, req *dto.SaveAnswerRequest) (*dto.AnswerResponse, error) {
	scope := domain.ScopeForSurvey(req.SurveyID)

	answer := domain.NewQuestionAnswer(req.ParticipantID, req.QuestionID, scope, req.ResponseText, req.TimeSpentSeconds)
	if err := answer.Validate(); err != nil {
		return nil, err
	}

	question, err := s.questions.GetQuestionByID(ctx, req.QuestionID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up question", err)
	}
	if question == nil {
		return nil, domain.NewQuestionNotFoundError(req.QuestionID)
	}

	existing, err := s.answers.GetAnswer(ctx, req.ParticipantID, req.QuestionID, scope)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load existing answer", err)
	}

	if existing != nil && existing.SameText(req.ResponseText) {
		// Unchanged text (both empty included): skip the write so UpdatedAt
		// keeps its original value and retries stay free.
		logger.Get().Debug("Answer unchanged, skipping write",
			zap.String("participant_id", req.ParticipantID),
			zap.String("question_id", req.QuestionID),
			zap.String("scope", scope.Key()),
		)
		return toAnswerResponse(existing), nil
	}

	if existing != nil {
		answer.ID = existing.ID
		answer.CreatedAt = existing.CreatedAt
	} else {
		answer.ID = util.NewULID()
	}

	if err := s.answers.UpsertAnswer(ctx, answer); err != nil {
		return nil, domain.NewInternalError("Failed to save answer", err)
	}

	return toAnswerResponse(answer), nil
}

// GetProgress implements CompletionService
func (s *completionService) GetProgress(ctx context.Context, participantID string, scope domain.SurveyScope) (*dto.ProgressResponse, error) {
	record, err := s.progress.GetProgress(ctx, participantID, scope)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load progress", err)
	}
	if record == nil {
		// Never an error: a participant who has not started simply has empty
		// progress.
		record = domain.NewAssessmentProgress(participantID, scope)
	}
	return toProgressResponse(record), nil
}

// UpdateProgress implements CompletionService
func (s *completionService) UpdateProgress(ctx context.Context, req *dto.ProgressRequest) (*dto.ProgressResponse, error) {
	scope := domain.ScopeForSurvey(req.SurveyID)

	record, err := s.progress.GetProgress(ctx, req.ParticipantID, scope)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load progress", err)
	}
	if record == nil {
		record = domain.NewAssessmentProgress(req.ParticipantID, scope)
		record.ID = util.NewULID()
	}

	if req.AnsweredQuestionIDs != nil {
		record.AnsweredQuestionIDs = dedupeStrings(req.AnsweredQuestionIDs)
	}
	if req.IsCompleted != nil && *req.IsCompleted {
		record.MarkCompleted(time.Now())
	}

	if err := s.progress.UpsertProgress(ctx, record); err != nil {
		return nil, domain.NewInternalError("Failed to save progress", err)
	}

	return toProgressResponse(record), nil
}

func toAnswerResponse(a *domain.QuestionAnswer) *dto.AnswerResponse {
	return &dto.AnswerResponse{
		ID:           a.ID,
		QuestionID:   a.QuestionID,
		ResponseText: a.ResponseText,
		UpdatedAt:    a.UpdatedAt,
	}
}

func toProgressResponse(p *domain.AssessmentProgress) *dto.ProgressResponse {
	surveyID, _ := p.Scope.SurveyID()
	return &dto.ProgressResponse{
		ParticipantID:       p.ParticipantID,
		SurveyID:            surveyID,
		AnsweredQuestionIDs: p.AnsweredQuestionIDs,
		AnsweredCount:       p.AnsweredCount(),
		IsCompleted:         p.IsCompleted,
		CompletedAt:         p.CompletedAt,
	}
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
