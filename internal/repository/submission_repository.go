package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"orgpulse/internal/domain"
	"orgpulse/internal/repository/models"
	"orgpulse/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxSubmissionRepository implements domain.SubmissionRepository using sqlx.
type sqlxSubmissionRepository struct {
	db *sqlx.DB
}

// NewSQLXSubmissionRepository creates a new instance of sqlxSubmissionRepository.
func NewSQLXSubmissionRepository(db *sqlx.DB) domain.SubmissionRepository {
	return &sqlxSubmissionRepository{db: db}
}

func toDomainSubmission(m *models.Submission) *domain.Submission {
	if m == nil {
		return nil
	}
	return &domain.Submission{
		ID:                m.ID,
		AssessmentID:      m.AssessmentID,
		ParticipantID:     m.ParticipantID,
		OrganizationID:    m.OrganizationID.String, // Handle NullString
		Scope:             domain.ScopeFromKey(m.SurveyKey),
		TotalQuestions:    m.TotalQuestions,
		AnsweredQuestions: m.AnsweredQuestions,
		SubmittedAt:       m.SubmittedAt,
		CreatedAt:         m.CreatedAt,
	}
}

func fromDomainSubmission(s *domain.Submission) *models.Submission {
	if s == nil {
		return nil
	}
	return &models.Submission{
		ID:                s.ID,
		AssessmentID:      s.AssessmentID,
		ParticipantID:     s.ParticipantID,
		OrganizationID:    util.StringToNullString(s.OrganizationID),
		SurveyKey:         s.Scope.Key(),
		TotalQuestions:    s.TotalQuestions,
		AnsweredQuestions: s.AnsweredQuestions,
		SubmittedAt:       s.SubmittedAt,
		CreatedAt:         s.CreatedAt,
	}
}

// isUniqueViolation reports whether the error is Oracle's unique constraint
// violation (ORA-00001).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "ORA-00001") || strings.Contains(msg, "unique constraint")
}

// GetSubmission retrieves the submission for (participant, scope), or nil
// when none exists.
func (r *sqlxSubmissionRepository) GetSubmission(ctx context.Context, participantID string, scope domain.SurveyScope) (*domain.Submission, error) {
	executor := GetExecutor(ctx, r.db)

	query := `SELECT ID, ASSESSMENT_ID, PARTICIPANT_ID, ORGANIZATION_ID, SURVEY_KEY, TOTAL_QUESTIONS, ANSWERED_QUESTIONS, SUBMITTED_AT, CREATED_AT
	          FROM assessment_submissions
	          WHERE PARTICIPANT_ID = :1 AND SURVEY_KEY = :2`

	var m models.Submission
	err := executor.GetContext(ctx, &m, query, participantID, scope.Key())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return toDomainSubmission(&m), nil
}

// CreateSubmission inserts a submission record. The unique index on
// (PARTICIPANT_ID, SURVEY_KEY) is the authority on the at-most-once
// invariant; a violation surfaces as domain.ErrAlreadyExists so the service
// can resolve the race to the benign already-submitted outcome.
func (r *sqlxSubmissionRepository) CreateSubmission(ctx context.Context, submission *domain.Submission) error {
	executor := GetExecutor(ctx, r.db)

	m := fromDomainSubmission(submission)
	if m.SubmittedAt.IsZero() {
		m.SubmittedAt = time.Now()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	query := `INSERT INTO assessment_submissions
	          (ID, ASSESSMENT_ID, PARTICIPANT_ID, ORGANIZATION_ID, SURVEY_KEY, TOTAL_QUESTIONS, ANSWERED_QUESTIONS, SUBMITTED_AT, CREATED_AT)
	          VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9)`

	_, err := executor.ExecContext(ctx, query,
		m.ID,
		m.AssessmentID,
		m.ParticipantID,
		m.OrganizationID,
		m.SurveyKey,
		m.TotalQuestions,
		m.AnsweredQuestions,
		m.SubmittedAt,
		m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("submission for participant %s already exists: %w", m.ParticipantID, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

// NextAssessmentSeq atomically increments and returns the 1-based sequence
// number for (orgKey, year). The counter row is locked by the UPDATE for the
// rest of the enclosing transaction, so concurrent submissions for the same
// organization serialize here instead of racing a count-then-format read.
func (r *sqlxSubmissionRepository) NextAssessmentSeq(ctx context.Context, orgKey string, year int) (int, error) {
	executor := GetExecutor(ctx, r.db)

	update := `UPDATE assessment_counters SET LAST_SEQ = LAST_SEQ + 1 WHERE ORG_KEY = :1 AND YEAR = :2`
	res, err := executor.ExecContext(ctx, update, orgKey, year)
	if err != nil {
		return 0, fmt.Errorf("failed to increment assessment counter: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows for assessment counter: %w", err)
	}

	if affected == 0 {
		insert := `INSERT INTO assessment_counters (ORG_KEY, YEAR, LAST_SEQ) VALUES (:1, :2, 1)`
		if _, err := executor.ExecContext(ctx, insert, orgKey, year); err != nil {
			if !isUniqueViolation(err) {
				return 0, fmt.Errorf("failed to create assessment counter: %w", err)
			}
			// Another transaction created the row first; increment it instead.
			if _, err := executor.ExecContext(ctx, update, orgKey, year); err != nil {
				return 0, fmt.Errorf("failed to increment assessment counter after race: %w", err)
			}
		}
	}

	query := `SELECT LAST_SEQ FROM assessment_counters WHERE ORG_KEY = :1 AND YEAR = :2`
	var seq int
	if err := executor.GetContext(ctx, &seq, query, orgKey, year); err != nil {
		return 0, fmt.Errorf("failed to read assessment counter: %w", err)
	}
	return seq, nil
}
