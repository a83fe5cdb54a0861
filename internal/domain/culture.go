package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Dimension names of the four-dimension culture instrument.
const (
	DimensionClan      = "clan"
	DimensionAdhocracy = "adhocracy"
	DimensionMarket    = "market"
	DimensionHierarchy = "hierarchy"
)

// Dimensions lists the four dimensions in canonical order.
func Dimensions() []string {
	return []string{DimensionClan, DimensionAdhocracy, DimensionMarket, DimensionHierarchy}
}

// scoreSumTolerance absorbs floating point drift when checking that a profile
// sums to 100.
const scoreSumTolerance = 1e-6

// CultureScores holds one weight per dimension. A valid profile distributes
// exactly 100 points across the four dimensions.
type CultureScores struct {
	Clan      float64 `json:"clan"`
	Adhocracy float64 `json:"adhocracy"`
	Market    float64 `json:"market"`
	Hierarchy float64 `json:"hierarchy"`
}

// Sum returns the total weight across all dimensions.
func (s CultureScores) Sum() float64 {
	return s.Clan + s.Adhocracy + s.Market + s.Hierarchy
}

// Get returns the weight for the named dimension.
func (s CultureScores) Get(dimension string) float64 {
	switch dimension {
	case DimensionClan:
		return s.Clan
	case DimensionAdhocracy:
		return s.Adhocracy
	case DimensionMarket:
		return s.Market
	case DimensionHierarchy:
		return s.Hierarchy
	default:
		return 0
	}
}

// Set assigns the weight for the named dimension.
func (s *CultureScores) Set(dimension string, value float64) {
	switch dimension {
	case DimensionClan:
		s.Clan = value
	case DimensionAdhocracy:
		s.Adhocracy = value
	case DimensionMarket:
		s.Market = value
	case DimensionHierarchy:
		s.Hierarchy = value
	}
}

// Validate checks that every weight is within [0,100] and the profile sums to
// exactly 100 within floating tolerance.
func (s CultureScores) Validate(field string) ValidationErrors {
	var errs ValidationErrors
	for _, dim := range Dimensions() {
		v := s.Get(dim)
		if v < 0 || v > 100 {
			errs = append(errs, NewOutOfRangeError(field+"."+dim, v, 0, 100))
		}
	}
	if sum := s.Sum(); math.Abs(sum-100) > scoreSumTolerance {
		errs = append(errs, ValidationError{
			Field:   field,
			Code:    string(CodeOutOfRange),
			Message: fmt.Sprintf("scores must sum to exactly 100, got %g", sum),
		})
	}
	return errs
}

// Survey represents one run of the culture instrument for an organization.
// InvitedCount, when known, supplies the participation rate denominator; the
// engine never derives it on its own.
type Survey struct {
	ID             string
	OrganizationID string
	Name           string
	InvitedCount   *int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CultureResponse is one participant's scored answer to the culture
// instrument. Anonymous responses carry an empty participant ID. Responses are
// created once and never mutated.
type CultureResponse struct {
	ID            string
	SurveyID      string
	ParticipantID string
	Demographics  map[string]string
	NowScores     CultureScores
	PrefScores    CultureScores
	SubmittedAt   time.Time
	CreatedAt     time.Time
}

// NewCultureResponse creates a new CultureResponse instance
func NewCultureResponse(surveyID, participantID string, demographics map[string]string, now, preferred CultureScores) *CultureResponse {
	ts := time.Now()
	if demographics == nil {
		demographics = map[string]string{}
	}
	return &CultureResponse{
		SurveyID:      surveyID,
		ParticipantID: participantID,
		Demographics:  demographics,
		NowScores:     now,
		PrefScores:    preferred,
		SubmittedAt:   ts,
		CreatedAt:     ts,
	}
}

// Validate validates the response
func (r *CultureResponse) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(r.SurveyID) == "" {
		errs = append(errs, NewMissingFieldError("survey_id"))
	}
	errs = append(errs, r.NowScores.Validate("now")...)
	errs = append(errs, r.PrefScores.Validate("preferred")...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}
