package service

import (
	"context"
	"math"
	"sort"

	"orgpulse/internal/domain"
	"orgpulse/internal/dto"
	"orgpulse/internal/util"
)

// AggregationService reduces the scored responses of a survey into
// privacy-safe, demographically sliced aggregate statistics.
type AggregationService interface {
	// ComputeAggregates recomputes every slice for the survey from the
	// current response set. The computation is pure: unchanged responses
	// yield numerically identical output.
	ComputeAggregates(ctx context.Context, surveyID string) ([]dto.AggregateSliceResponse, error)
}

// aggregationService implements AggregationService
type aggregationService struct {
	surveys   domain.SurveyRepository
	responses domain.CultureResponseRepository
}

// NewAggregationService creates a new instance of aggregationService
func NewAggregationService(
	surveys domain.SurveyRepository,
	responses domain.CultureResponseRepository,
) AggregationService {
	return &aggregationService{
		surveys:   surveys,
		responses: responses,
	}
}

// ComputeAggregates implements AggregationService
func (s *aggregationService) ComputeAggregates(ctx context.Context, surveyID string) ([]dto.AggregateSliceResponse, error) {
	survey, err := s.surveys.GetSurveyByID(ctx, surveyID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load survey", err)
	}
	if survey == nil {
		return nil, domain.NewSurveyNotFoundError(surveyID)
	}

	responses, err := s.responses.GetResponsesBySurvey(ctx, surveyID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load survey responses", err)
	}

	// A survey nobody answered yet has an empty report, not an error.
	if len(responses) == 0 {
		return []dto.AggregateSliceResponse{}, nil
	}

	slices := []dto.AggregateSliceResponse{
		computeSlice(domain.WholeOrgSliceKey, domain.WholeOrgSliceLabel, responses, survey.InvitedCount),
	}

	// One slice per (attribute, value) observed across the response set.
	// Responses missing an attribute stay out of that attribute's slices but
	// are always part of the whole organization slice above. Attributes and
	// values are walked in sorted order so recomputation is byte-identical.
	byAttribute := groupByDemographics(responses)

	attributes := make([]string, 0, len(byAttribute))
	for attr := range byAttribute {
		attributes = append(attributes, attr)
	}
	sort.Strings(attributes)

	for _, attr := range attributes {
		byValue := byAttribute[attr]
		values := make([]string, 0, len(byValue))
		for v := range byValue {
			values = append(values, v)
		}
		sort.Strings(values)

		for _, v := range values {
			// The invited-count denominator applies to the survey as a whole;
			// per-group denominators are unknown, so sub-slices default to
			// their own response count.
			slices = append(slices, computeSlice(ResolveSliceKey(attr, v), SliceLabel(attr, v), byValue[v], nil))
		}
	}

	return slices, nil
}

func groupByDemographics(responses []domain.CultureResponse) map[string]map[string][]domain.CultureResponse {
	byAttribute := map[string]map[string][]domain.CultureResponse{}
	for _, r := range responses {
		for attr, value := range r.Demographics {
			if attr == "" || value == "" {
				continue
			}
			if byAttribute[attr] == nil {
				byAttribute[attr] = map[string][]domain.CultureResponse{}
			}
			byAttribute[attr][value] = append(byAttribute[attr][value], r)
		}
	}
	return byAttribute
}

// computeSlice reduces one group of responses to its aggregate. Slices below
// the k-anonymity threshold keep their computed numbers but carry the flag so
// consumer-facing rendering can suppress them; they are never dropped.
func computeSlice(key, label string, responses []domain.CultureResponse, invitedCount *int) dto.AggregateSliceResponse {
	n := len(responses)

	var now, preferred domain.CultureScores
	for _, dim := range domain.Dimensions() {
		var sumNow, sumPref float64
		for _, r := range responses {
			sumNow += r.NowScores.Get(dim)
			sumPref += r.PrefScores.Get(dim)
		}
		now.Set(dim, util.Round2(sumNow/float64(n)))
		preferred.Set(dim, util.Round2(sumPref/float64(n)))
	}

	var delta, congruence domain.CultureScores
	for _, dim := range domain.Dimensions() {
		d := util.Round2(preferred.Get(dim) - now.Get(dim))
		delta.Set(dim, d)
		congruence.Set(dim, util.Round2(util.Clamp01(1-math.Abs(d)/100)))
	}

	participationRate := 100.0
	if invitedCount != nil && *invitedCount > 0 {
		participationRate = util.Round2(float64(n) / float64(*invitedCount) * 100)
	}

	return dto.AggregateSliceResponse{
		SliceKey:             key,
		SliceLabel:           label,
		N:                    n,
		BelowThreshold:       n < domain.KAnonymityThreshold,
		ParticipationRate:    participationRate,
		Now:                  toScoresDTO(now),
		Preferred:            toScoresDTO(preferred),
		Delta:                toScoresDTO(delta),
		CongruenceIndicators: toScoresDTO(congruence),
	}
}

func toScoresDTO(s domain.CultureScores) dto.CultureScores {
	return dto.CultureScores{
		Clan:      s.Clan,
		Adhocracy: s.Adhocracy,
		Market:    s.Market,
		Hierarchy: s.Hierarchy,
	}
}
