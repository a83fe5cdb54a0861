package service

import (
	"context"

	"orgpulse/internal/domain"
	"orgpulse/internal/dto"
	"orgpulse/internal/logger"
	"orgpulse/internal/util"

	"go.uber.org/zap"
)

// ReportInvalidator drops any cached aggregate report for a survey. The
// aggregate cache implements it; a nil invalidator disables caching.
type ReportInvalidator interface {
	InvalidateSurvey(ctx context.Context, surveyID string) error
}

// CultureResponseService accepts scored responses to the culture instrument.
type CultureResponseService interface {
	// SubmitResponse validates and stores one scored response. Profiles that
	// do not distribute exactly 100 points are rejected and never persisted.
	SubmitResponse(ctx context.Context, req *dto.SubmitCultureResponseRequest) (*dto.CultureResponseAck, error)
}

// cultureResponseService implements CultureResponseService
type cultureResponseService struct {
	surveys     domain.SurveyRepository
	responses   domain.CultureResponseRepository
	invalidator ReportInvalidator
}

// NewCultureResponseService creates a new instance of cultureResponseService
func NewCultureResponseService(
	surveys domain.SurveyRepository,
	responses domain.CultureResponseRepository,
	invalidator ReportInvalidator,
) CultureResponseService {
	return &cultureResponseService{
		surveys:     surveys,
		responses:   responses,
		invalidator: invalidator,
	}
}

// SubmitResponse implements CultureResponseService
func (s *cultureResponseService) SubmitResponse(ctx context.Context, req *dto.SubmitCultureResponseRequest) (*dto.CultureResponseAck, error) {
	response := domain.NewCultureResponse(
		req.SurveyID,
		req.ParticipantID,
		req.Demographics,
		fromScoresDTO(req.Now),
		fromScoresDTO(req.Preferred),
	)
	if err := response.Validate(); err != nil {
		return nil, err
	}

	survey, err := s.surveys.GetSurveyByID(ctx, req.SurveyID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load survey", err)
	}
	if survey == nil {
		return nil, domain.NewSurveyNotFoundError(req.SurveyID)
	}

	response.ID = util.NewULID()
	if err := s.responses.CreateResponse(ctx, response); err != nil {
		return nil, domain.NewInternalError("Failed to store response", err)
	}

	if s.invalidator != nil {
		if err := s.invalidator.InvalidateSurvey(ctx, req.SurveyID); err != nil {
			// The cache entry expires on its own TTL; a failed invalidation
			// only widens the staleness window.
			logger.Get().Warn("Failed to invalidate aggregate report cache",
				zap.Error(err),
				zap.String("survey_id", req.SurveyID),
			)
		}
	}

	return &dto.CultureResponseAck{
		ID:          response.ID,
		SurveyID:    response.SurveyID,
		SubmittedAt: response.SubmittedAt,
	}, nil
}

func fromScoresDTO(s dto.CultureScores) domain.CultureScores {
	return domain.CultureScores{
		Clan:      s.Clan,
		Adhocracy: s.Adhocracy,
		Market:    s.Market,
		Hierarchy: s.Hierarchy,
	}
}
