package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"orgpulse/internal/domain"
	"orgpulse/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxQuestionRepository implements domain.QuestionRepository using sqlx.
// The question catalog is seeded externally; this repository only reads it.
type sqlxQuestionRepository struct {
	db *sqlx.DB
}

// NewSQLXQuestionRepository creates a new instance of sqlxQuestionRepository.
func NewSQLXQuestionRepository(db *sqlx.DB) domain.QuestionRepository {
	return &sqlxQuestionRepository{db: db}
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	return &domain.Question{
		ID:           m.ID,
		Category:     m.Category,
		Text:         m.QuestionText,
		DisplayOrder: m.DisplayOrder,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// CountQuestions returns the size of the canonical catalog.
func (r *sqlxQuestionRepository) CountQuestions(ctx context.Context) (int, error) {
	executor := GetExecutor(ctx, r.db)

	var count int
	if err := executor.GetContext(ctx, &count, `SELECT COUNT(*) FROM questions`); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

// GetQuestionIDs returns all catalog question IDs in display order.
func (r *sqlxQuestionRepository) GetQuestionIDs(ctx context.Context) ([]string, error) {
	executor := GetExecutor(ctx, r.db)

	var ids []string
	query := `SELECT ID FROM questions ORDER BY DISPLAY_ORDER, ID`
	if err := executor.SelectContext(ctx, &ids, query); err != nil {
		return nil, fmt.Errorf("failed to list question IDs: %w", err)
	}
	return ids, nil
}

// GetQuestionByID retrieves a question, or nil when absent.
func (r *sqlxQuestionRepository) GetQuestionByID(ctx context.Context, id string) (*domain.Question, error) {
	executor := GetExecutor(ctx, r.db)

	query := `SELECT ID, CATEGORY, QUESTION_TEXT, DISPLAY_ORDER, CREATED_AT, UPDATED_AT FROM questions WHERE ID = :1`

	var m models.Question
	err := executor.GetContext(ctx, &m, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return toDomainQuestion(&m), nil
}
