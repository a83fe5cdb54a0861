package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"orgpulse/internal/cache"
	"orgpulse/internal/domain"
	"orgpulse/internal/dto"
	"orgpulse/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const aggregateCacheServiceName = "aggregation"

// cachedAggregationService decorates an AggregationService with a read-through
// report cache. Concurrent misses for the same survey are collapsed into a
// single recomputation.
type cachedAggregationService struct {
	inner AggregationService
	cache domain.Cache
	ttl   time.Duration
	group singleflight.Group
}

// NewCachedAggregationService wraps an AggregationService with caching. A nil
// cache returns the inner service unchanged.
func NewCachedAggregationService(inner AggregationService, cacheClient domain.Cache, ttl time.Duration) AggregationService {
	if cacheClient == nil {
		return inner
	}
	return &cachedAggregationService{
		inner: inner,
		cache: cacheClient,
		ttl:   ttl,
	}
}

// ComputeAggregates implements AggregationService
func (s *cachedAggregationService) ComputeAggregates(ctx context.Context, surveyID string) ([]dto.AggregateSliceResponse, error) {
	key := cache.GenerateCacheKey(aggregateCacheServiceName, "report", surveyID)

	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		var slices []dto.AggregateSliceResponse
		if errUnmarshal := json.Unmarshal([]byte(cached), &slices); errUnmarshal == nil {
			return slices, nil
		}
		// A corrupt entry is treated as a miss and overwritten below.
		logger.Get().Warn("Failed to unmarshal cached aggregate report",
			zap.String("key", key),
			zap.String("survey_id", surveyID),
		)
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		logger.Get().Error("Aggregate report cache lookup failed",
			zap.Error(err),
			zap.String("key", key),
		)
	}

	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		slices, err := s.inner.ComputeAggregates(ctx, surveyID)
		if err != nil {
			return nil, err
		}

		payload, errMarshal := json.Marshal(slices)
		if errMarshal != nil {
			logger.Get().Error("Failed to marshal aggregate report for caching",
				zap.Error(errMarshal),
				zap.String("survey_id", surveyID),
			)
			return slices, nil
		}
		if errSet := s.cache.Set(ctx, key, string(payload), s.ttl); errSet != nil {
			logger.Get().Error("Failed to cache aggregate report",
				zap.Error(errSet),
				zap.String("key", key),
			)
		}
		return slices, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]dto.AggregateSliceResponse), nil
}

// InvalidateSurvey drops the cached report for a survey. Called whenever a new
// scored response lands so the next read recomputes.
func (s *cachedAggregationService) InvalidateSurvey(ctx context.Context, surveyID string) error {
	key := cache.GenerateCacheKey(aggregateCacheServiceName, "report", surveyID)
	return s.cache.Delete(ctx, key)
}
