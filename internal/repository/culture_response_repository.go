package repository

import (
	"context"
	"fmt"
	"time"

	"orgpulse/internal/domain"
	"orgpulse/internal/repository/models"
	"orgpulse/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxCultureResponseRepository implements domain.CultureResponseRepository using sqlx.
type sqlxCultureResponseRepository struct {
	db *sqlx.DB
}

// NewSQLXCultureResponseRepository creates a new instance of sqlxCultureResponseRepository.
func NewSQLXCultureResponseRepository(db *sqlx.DB) domain.CultureResponseRepository {
	return &sqlxCultureResponseRepository{db: db}
}

func toDomainCultureResponse(m *models.CultureResponse) *domain.CultureResponse {
	if m == nil {
		return nil
	}

	demographics := map[string]string{}
	if m.Demographics != nil {
		demographics = m.Demographics
	}

	return &domain.CultureResponse{
		ID:            m.ID,
		SurveyID:      m.SurveyID,
		ParticipantID: m.ParticipantID.String, // Handle NullString
		Demographics:  demographics,
		NowScores: domain.CultureScores{
			Clan:      m.NowClan,
			Adhocracy: m.NowAdhocracy,
			Market:    m.NowMarket,
			Hierarchy: m.NowHierarchy,
		},
		PrefScores: domain.CultureScores{
			Clan:      m.PrefClan,
			Adhocracy: m.PrefAdhocracy,
			Market:    m.PrefMarket,
			Hierarchy: m.PrefHierarchy,
		},
		SubmittedAt: m.SubmittedAt,
		CreatedAt:   m.CreatedAt,
	}
}

func fromDomainCultureResponse(r *domain.CultureResponse) *models.CultureResponse {
	if r == nil {
		return nil
	}

	var demographics models.StringMap
	if r.Demographics != nil {
		demographics = r.Demographics
	} else {
		demographics = models.StringMap{}
	}

	return &models.CultureResponse{
		ID:            r.ID,
		SurveyID:      r.SurveyID,
		ParticipantID: util.StringToNullString(r.ParticipantID),
		Demographics:  demographics,
		NowClan:       r.NowScores.Clan,
		NowAdhocracy:  r.NowScores.Adhocracy,
		NowMarket:     r.NowScores.Market,
		NowHierarchy:  r.NowScores.Hierarchy,
		PrefClan:      r.PrefScores.Clan,
		PrefAdhocracy: r.PrefScores.Adhocracy,
		PrefMarket:    r.PrefScores.Market,
		PrefHierarchy: r.PrefScores.Hierarchy,
		SubmittedAt:   r.SubmittedAt,
		CreatedAt:     r.CreatedAt,
	}
}

// CreateResponse inserts a scored response. Responses are immutable; there is
// no update path.
func (repo *sqlxCultureResponseRepository) CreateResponse(ctx context.Context, response *domain.CultureResponse) error {
	executor := GetExecutor(ctx, repo.db)

	m := fromDomainCultureResponse(response)
	if m.SubmittedAt.IsZero() {
		m.SubmittedAt = time.Now()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	// Convert StringMap to string manually for Oracle compatibility
	demographicsVal, err := m.Demographics.Value()
	if err != nil {
		return fmt.Errorf("failed to convert demographics to string: %w", err)
	}
	demographicsStr, _ := demographicsVal.(string)

	query := `INSERT INTO culture_responses
	          (ID, SURVEY_ID, PARTICIPANT_ID, DEMOGRAPHICS,
	           NOW_CLAN, NOW_ADHOCRACY, NOW_MARKET, NOW_HIERARCHY,
	           PREF_CLAN, PREF_ADHOCRACY, PREF_MARKET, PREF_HIERARCHY,
	           SUBMITTED_AT, CREATED_AT)
	          VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12, :13, :14)`

	_, err = executor.ExecContext(ctx, query,
		m.ID,
		m.SurveyID,
		m.ParticipantID,
		demographicsStr,
		m.NowClan, m.NowAdhocracy, m.NowMarket, m.NowHierarchy,
		m.PrefClan, m.PrefAdhocracy, m.PrefMarket, m.PrefHierarchy,
		m.SubmittedAt,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create culture response: %w", err)
	}
	return nil
}

// GetResponsesBySurvey returns all responses for a survey in submission order.
func (repo *sqlxCultureResponseRepository) GetResponsesBySurvey(ctx context.Context, surveyID string) ([]domain.CultureResponse, error) {
	executor := GetExecutor(ctx, repo.db)

	query := `SELECT ID, SURVEY_ID, PARTICIPANT_ID, DEMOGRAPHICS,
	                 NOW_CLAN, NOW_ADHOCRACY, NOW_MARKET, NOW_HIERARCHY,
	                 PREF_CLAN, PREF_ADHOCRACY, PREF_MARKET, PREF_HIERARCHY,
	                 SUBMITTED_AT, CREATED_AT
	          FROM culture_responses
	          WHERE SURVEY_ID = :1
	          ORDER BY SUBMITTED_AT, ID`

	var modelResponses []models.CultureResponse
	if err := executor.SelectContext(ctx, &modelResponses, query, surveyID); err != nil {
		return nil, fmt.Errorf("failed to list culture responses: %w", err)
	}

	responses := make([]domain.CultureResponse, len(modelResponses))
	for i := range modelResponses {
		responses[i] = *toDomainCultureResponse(&modelResponses[i])
	}
	return responses, nil
}
