package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"orgpulse/internal/domain"
	"orgpulse/internal/dto"
	"orgpulse/internal/logger"
	"orgpulse/internal/util"

	"go.uber.org/zap"
)

const (
	// assessmentIDTag is the fixed leading segment of every assessment ID.
	assessmentIDTag = "ASSESS"

	// orgPrefixLength is the fixed length of the organization segment.
	orgPrefixLength = 4

	// individualOrgPrefix is the sentinel for organization-less submissions.
	individualOrgPrefix = "INDV"

	// unansweredSampleLimit caps how many unanswered question IDs an
	// Incomplete error carries. The remaining count stays exact.
	unansweredSampleLimit = 10
)

// SubmissionService gates the one-time final submission of the excellence
// instrument on full coverage.
type SubmissionService interface {
	// ValidateAndSubmit re-verifies completeness server side and writes the
	// submission record. At most one submission ever exists per
	// (participant, scope); repeated calls return the first record unchanged.
	ValidateAndSubmit(ctx context.Context, req *dto.SubmitRequest) (*dto.SubmissionResponse, error)
}

// submissionService implements SubmissionService
type submissionService struct {
	questions   domain.QuestionRepository
	answers     domain.AnswerRepository
	progress    domain.ProgressRepository
	submissions domain.SubmissionRepository
	txManager   domain.TransactionManager
}

// NewSubmissionService creates a new instance of submissionService
func NewSubmissionService(
	questions domain.QuestionRepository,
	answers domain.AnswerRepository,
	progress domain.ProgressRepository,
	submissions domain.SubmissionRepository,
	txManager domain.TransactionManager,
) SubmissionService {
	return &submissionService{
		questions:   questions,
		answers:     answers,
		progress:    progress,
		submissions: submissions,
		txManager:   txManager,
	}
}

// ValidateAndSubmit implements SubmissionService
func (s *submissionService) ValidateAndSubmit(ctx context.Context, req *dto.SubmitRequest) (*dto.SubmissionResponse, error) {
	scope := domain.ScopeForSurvey(req.SurveyID)

	if strings.TrimSpace(req.ParticipantID) == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("participant_id")}
	}

	// Fast path: the benign repeated-call outcome.
	existing, err := s.submissions.GetSubmission(ctx, req.ParticipantID, scope)
	if err != nil {
		return nil, domain.NewInternalError("Failed to check for existing submission", err)
	}
	if existing != nil {
		return toSubmissionResponse(existing, true), nil
	}

	totalRequired, err := s.questions.CountQuestions(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to count required questions", err)
	}
	if totalRequired == 0 {
		return nil, domain.NewInternalError("Question catalog is empty", nil)
	}

	answeredCount, err := s.answers.CountNonEmptyAnswers(ctx, req.ParticipantID, scope)
	if err != nil {
		return nil, domain.NewInternalError("Failed to count answers", err)
	}

	if answeredCount < totalRequired {
		sample, err := s.unansweredSample(ctx, req.ParticipantID, scope)
		if err != nil {
			return nil, err
		}
		return nil, domain.NewIncompleteError(answeredCount, totalRequired, sample)
	}

	submission := &domain.Submission{
		ID:                util.NewULID(),
		ParticipantID:     req.ParticipantID,
		OrganizationID:    req.OrganizationID,
		Scope:             scope,
		TotalQuestions:    totalRequired,
		AnsweredQuestions: answeredCount,
		SubmittedAt:       time.Now(),
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		year := submission.SubmittedAt.Year()
		prefix := orgPrefix(req.OrganizationID)

		seq, err := s.submissions.NextAssessmentSeq(txCtx, prefix, year)
		if err != nil {
			return err
		}
		submission.AssessmentID = fmt.Sprintf("%s-%s-%d-%03d", assessmentIDTag, prefix, year, seq)

		if err := s.submissions.CreateSubmission(txCtx, submission); err != nil {
			return err
		}

		return s.markProgressCompleted(txCtx, req.ParticipantID, scope, submission.SubmittedAt)
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// Lost the race to a concurrent submission: the store kept the
			// first record, return it unchanged.
			winner, getErr := s.submissions.GetSubmission(ctx, req.ParticipantID, scope)
			if getErr == nil && winner != nil {
				return toSubmissionResponse(winner, true), nil
			}
			return nil, domain.NewAlreadySubmittedError("")
		}
		return nil, domain.NewInternalError("Failed to record submission", err)
	}

	logger.Get().Info("Assessment submitted",
		zap.String("assessment_id", submission.AssessmentID),
		zap.String("participant_id", submission.ParticipantID),
		zap.String("scope", scope.Key()),
		zap.Int("answered_questions", submission.AnsweredQuestions),
	)

	return toSubmissionResponse(submission, false), nil
}

// unansweredSample returns up to unansweredSampleLimit catalog question IDs
// the participant has not answered, in display order.
func (s *submissionService) unansweredSample(ctx context.Context, participantID string, scope domain.SurveyScope) ([]string, error) {
	allIDs, err := s.questions.GetQuestionIDs(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list catalog questions", err)
	}
	answeredIDs, err := s.answers.GetAnsweredQuestionIDs(ctx, participantID, scope)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list answered questions", err)
	}

	answered := make(map[string]struct{}, len(answeredIDs))
	for _, id := range answeredIDs {
		answered[id] = struct{}{}
	}

	sample := []string{}
	for _, id := range allIDs {
		if _, ok := answered[id]; ok {
			continue
		}
		sample = append(sample, id)
		if len(sample) == unansweredSampleLimit {
			break
		}
	}
	return sample, nil
}

func (s *submissionService) markProgressCompleted(ctx context.Context, participantID string, scope domain.SurveyScope, at time.Time) error {
	record, err := s.progress.GetProgress(ctx, participantID, scope)
	if err != nil {
		return err
	}
	if record == nil {
		record = domain.NewAssessmentProgress(participantID, scope)
		record.ID = util.NewULID()
	}
	record.MarkCompleted(at)
	return s.progress.UpsertProgress(ctx, record)
}

// orgPrefix derives the fixed-length uppercase organization segment of an
// assessment ID: the first alphanumerics of the organization ID uppercased,
// padded with 'X', or the individual sentinel when no organization is given.
func orgPrefix(organizationID string) string {
	trimmed := strings.TrimSpace(organizationID)
	if trimmed == "" {
		return individualOrgPrefix
	}

	var b strings.Builder
	for _, r := range strings.ToUpper(trimmed) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() == orgPrefixLength {
				break
			}
		}
	}
	for b.Len() < orgPrefixLength {
		b.WriteByte('X')
	}
	return b.String()
}

func toSubmissionResponse(sub *domain.Submission, already bool) *dto.SubmissionResponse {
	return &dto.SubmissionResponse{
		AssessmentID:      sub.AssessmentID,
		SubmittedAt:       sub.SubmittedAt,
		TotalQuestions:    sub.TotalQuestions,
		AnsweredQuestions: sub.AnsweredQuestions,
		CompletionRate:    util.Round2(sub.CompletionRate()),
		AlreadySubmitted:  already,
	}
}
