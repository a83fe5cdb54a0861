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

// sqlxAnswerRepository implements domain.AnswerRepository using sqlx.
type sqlxAnswerRepository struct {
	db *sqlx.DB
}

// NewSQLXAnswerRepository creates a new instance of sqlxAnswerRepository.
func NewSQLXAnswerRepository(db *sqlx.DB) domain.AnswerRepository {
	return &sqlxAnswerRepository{db: db}
}

func toDomainQuestionAnswer(m *models.QuestionAnswer) *domain.QuestionAnswer {
	if m == nil {
		return nil
	}
	return &domain.QuestionAnswer{
		ID:               m.ID,
		ParticipantID:    m.ParticipantID,
		QuestionID:       m.QuestionID,
		Scope:            domain.ScopeFromKey(m.SurveyKey),
		ResponseText:     m.ResponseText.String, // Handle NullString
		TimeSpentSeconds: m.TimeSpentSeconds,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func fromDomainQuestionAnswer(a *domain.QuestionAnswer) *models.QuestionAnswer {
	if a == nil {
		return nil
	}
	return &models.QuestionAnswer{
		ID:               a.ID,
		ParticipantID:    a.ParticipantID,
		QuestionID:       a.QuestionID,
		SurveyKey:        a.Scope.Key(),
		ResponseText:     util.StringToNullString(a.ResponseText),
		TimeSpentSeconds: a.TimeSpentSeconds,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// GetAnswer retrieves the answer for (participant, question, scope), or nil
// when none exists.
func (r *sqlxAnswerRepository) GetAnswer(ctx context.Context, participantID, questionID string, scope domain.SurveyScope) (*domain.QuestionAnswer, error) {
	executor := GetExecutor(ctx, r.db)

	query := `SELECT ID, PARTICIPANT_ID, QUESTION_ID, SURVEY_KEY, RESPONSE_TEXT, TIME_SPENT_SECONDS, CREATED_AT, UPDATED_AT
	          FROM question_answers
	          WHERE PARTICIPANT_ID = :1 AND QUESTION_ID = :2 AND SURVEY_KEY = :3`

	var m models.QuestionAnswer
	err := executor.GetContext(ctx, &m, query, participantID, questionID, scope.Key())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question answer: %w", err)
	}
	return toDomainQuestionAnswer(&m), nil
}

// UpsertAnswer atomically inserts or updates the answer identified by
// (participant, question, scope) using an Oracle MERGE, so concurrent saves
// for the same question resolve at the store without a read-then-write race.
func (r *sqlxAnswerRepository) UpsertAnswer(ctx context.Context, answer *domain.QuestionAnswer) error {
	executor := GetExecutor(ctx, r.db)

	m := fromDomainQuestionAnswer(answer)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	m.UpdatedAt = time.Now()
	answer.UpdatedAt = m.UpdatedAt

	query := `MERGE INTO question_answers qa
	          USING (SELECT :1 AS PARTICIPANT_ID, :2 AS QUESTION_ID, :3 AS SURVEY_KEY FROM dual) src
	          ON (qa.PARTICIPANT_ID = src.PARTICIPANT_ID AND qa.QUESTION_ID = src.QUESTION_ID AND qa.SURVEY_KEY = src.SURVEY_KEY)
	          WHEN MATCHED THEN UPDATE SET
	            qa.RESPONSE_TEXT = :4,
	            qa.TIME_SPENT_SECONDS = :5,
	            qa.UPDATED_AT = :6
	          WHEN NOT MATCHED THEN INSERT
	            (ID, PARTICIPANT_ID, QUESTION_ID, SURVEY_KEY, RESPONSE_TEXT, TIME_SPENT_SECONDS, CREATED_AT, UPDATED_AT)
	          VALUES (:7, :8, :9, :10, :11, :12, :13, :14)`

	_, err := executor.ExecContext(ctx, query,
		m.ParticipantID, m.QuestionID, m.SurveyKey,
		m.ResponseText, m.TimeSpentSeconds, m.UpdatedAt,
		m.ID, m.ParticipantID, m.QuestionID, m.SurveyKey,
		m.ResponseText, m.TimeSpentSeconds, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert question answer: %w", err)
	}
	return nil
}

// CountNonEmptyAnswers counts answers whose trimmed text is non-empty for
// (participant, scope).
func (r *sqlxAnswerRepository) CountNonEmptyAnswers(ctx context.Context, participantID string, scope domain.SurveyScope) (int, error) {
	executor := GetExecutor(ctx, r.db)

	query := `SELECT COUNT(*) FROM question_answers
	          WHERE PARTICIPANT_ID = :1 AND SURVEY_KEY = :2
	            AND RESPONSE_TEXT IS NOT NULL AND LENGTH(TRIM(RESPONSE_TEXT)) > 0`

	var count int
	if err := executor.GetContext(ctx, &count, query, participantID, scope.Key()); err != nil {
		return 0, fmt.Errorf("failed to count answers: %w", err)
	}
	return count, nil
}

// GetAnsweredQuestionIDs returns the question IDs with non-empty answers for
// (participant, scope).
func (r *sqlxAnswerRepository) GetAnsweredQuestionIDs(ctx context.Context, participantID string, scope domain.SurveyScope) ([]string, error) {
	executor := GetExecutor(ctx, r.db)

	query := `SELECT QUESTION_ID FROM question_answers
	          WHERE PARTICIPANT_ID = :1 AND SURVEY_KEY = :2
	            AND RESPONSE_TEXT IS NOT NULL AND LENGTH(TRIM(RESPONSE_TEXT)) > 0
	          ORDER BY QUESTION_ID`

	var ids []string
	if err := executor.SelectContext(ctx, &ids, query, participantID, scope.Key()); err != nil {
		return nil, fmt.Errorf("failed to list answered question IDs: %w", err)
	}
	return ids, nil
}
