package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"orgpulse/internal/domain"
	"orgpulse/internal/repository/models"
	"orgpulse/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxProgressRepository implements domain.ProgressRepository using sqlx.
type sqlxProgressRepository struct {
	db *sqlx.DB
}

// NewSQLXProgressRepository creates a new instance of sqlxProgressRepository.
func NewSQLXProgressRepository(db *sqlx.DB) domain.ProgressRepository {
	return &sqlxProgressRepository{db: db}
}

func toDomainProgress(m *models.AssessmentProgress) *domain.AssessmentProgress {
	if m == nil {
		return nil
	}
	var completedAt *time.Time
	if m.CompletedAt.Valid {
		completedAt = &m.CompletedAt.Time
	}

	answeredIDs := []string{}
	if m.AnsweredQuestionIDs != nil {
		answeredIDs = m.AnsweredQuestionIDs
	}

	return &domain.AssessmentProgress{
		ID:                  m.ID,
		ParticipantID:       m.ParticipantID,
		Scope:               domain.ScopeFromKey(m.SurveyKey),
		AnsweredQuestionIDs: answeredIDs,
		IsCompleted:         m.IsCompleted,
		CompletedAt:         completedAt,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func fromDomainProgress(p *domain.AssessmentProgress) *models.AssessmentProgress {
	if p == nil {
		return nil
	}
	var completedAt sql.NullTime
	if p.CompletedAt != nil {
		completedAt = util.TimeToNullTime(*p.CompletedAt)
	}

	var answeredIDs models.StringSlice
	if p.AnsweredQuestionIDs != nil {
		answeredIDs = p.AnsweredQuestionIDs
	} else {
		answeredIDs = models.StringSlice{}
	}

	return &models.AssessmentProgress{
		ID:                  p.ID,
		ParticipantID:       p.ParticipantID,
		SurveyKey:           p.Scope.Key(),
		AnsweredQuestionIDs: answeredIDs,
		IsCompleted:         p.IsCompleted,
		CompletedAt:         completedAt,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

// GetProgress retrieves the progress record for (participant, scope), or nil
// when none exists. Absence is not an error; the service synthesizes an empty
// record.
func (r *sqlxProgressRepository) GetProgress(ctx context.Context, participantID string, scope domain.SurveyScope) (*domain.AssessmentProgress, error) {
	executor := GetExecutor(ctx, r.db)

	query := `SELECT ID, PARTICIPANT_ID, SURVEY_KEY, ANSWERED_QUESTION_IDS, IS_COMPLETED, COMPLETED_AT, CREATED_AT, UPDATED_AT
	          FROM assessment_progress
	          WHERE PARTICIPANT_ID = :1 AND SURVEY_KEY = :2`

	var m models.AssessmentProgress
	err := executor.GetContext(ctx, &m, query, participantID, scope.Key())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get assessment progress: %w", err)
	}
	return toDomainProgress(&m), nil
}

// UpsertProgress inserts or updates the record for (participant, scope) with
// an Oracle MERGE. The completion flag is only ever raised here, never
// lowered: the update keeps IS_COMPLETED true once set.
func (r *sqlxProgressRepository) UpsertProgress(ctx context.Context, progress *domain.AssessmentProgress) error {
	executor := GetExecutor(ctx, r.db)

	m := fromDomainProgress(progress)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	m.UpdatedAt = time.Now()
	progress.UpdatedAt = m.UpdatedAt

	// Convert StringSlice to string manually for Oracle compatibility
	answeredVal, err := m.AnsweredQuestionIDs.Value()
	if err != nil {
		return fmt.Errorf("failed to convert answered question IDs to string: %w", err)
	}
	answeredStr, _ := answeredVal.(string)

	query := `MERGE INTO assessment_progress ap
	          USING (SELECT :1 AS PARTICIPANT_ID, :2 AS SURVEY_KEY FROM dual) src
	          ON (ap.PARTICIPANT_ID = src.PARTICIPANT_ID AND ap.SURVEY_KEY = src.SURVEY_KEY)
	          WHEN MATCHED THEN UPDATE SET
	            ap.ANSWERED_QUESTION_IDS = :3,
	            ap.IS_COMPLETED = CASE WHEN ap.IS_COMPLETED = 1 THEN 1 ELSE :4 END,
	            ap.COMPLETED_AT = COALESCE(ap.COMPLETED_AT, :5),
	            ap.UPDATED_AT = :6
	          WHEN NOT MATCHED THEN INSERT
	            (ID, PARTICIPANT_ID, SURVEY_KEY, ANSWERED_QUESTION_IDS, IS_COMPLETED, COMPLETED_AT, CREATED_AT, UPDATED_AT)
	          VALUES (:7, :8, :9, :10, :11, :12, :13, :14)`

	isCompleted := 0
	if m.IsCompleted {
		isCompleted = 1
	}

	_, err = executor.ExecContext(ctx, query,
		m.ParticipantID, m.SurveyKey,
		answeredStr, isCompleted, m.CompletedAt, m.UpdatedAt,
		m.ID, m.ParticipantID, m.SurveyKey, answeredStr, isCompleted, m.CompletedAt, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert assessment progress: %w", err)
	}
	return nil
}
