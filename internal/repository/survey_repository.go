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

// sqlxSurveyRepository implements domain.SurveyRepository using sqlx.
type sqlxSurveyRepository struct {
	db *sqlx.DB
}

// NewSQLXSurveyRepository creates a new instance of sqlxSurveyRepository.
func NewSQLXSurveyRepository(db *sqlx.DB) domain.SurveyRepository {
	return &sqlxSurveyRepository{db: db}
}

func toDomainSurvey(m *models.Survey) *domain.Survey {
	if m == nil {
		return nil
	}
	var invited *int
	if m.InvitedCount.Valid {
		v := int(m.InvitedCount.Int64)
		invited = &v
	}
	return &domain.Survey{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		InvitedCount:   invited,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// GetSurveyByID retrieves a survey, or nil when absent.
func (r *sqlxSurveyRepository) GetSurveyByID(ctx context.Context, id string) (*domain.Survey, error) {
	executor := GetExecutor(ctx, r.db)

	query := `SELECT ID, ORGANIZATION_ID, NAME, INVITED_COUNT, CREATED_AT, UPDATED_AT FROM surveys WHERE ID = :1`

	var m models.Survey
	err := executor.GetContext(ctx, &m, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get survey: %w", err)
	}
	return toDomainSurvey(&m), nil
}
