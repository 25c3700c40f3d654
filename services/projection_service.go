package services

import (
	"context"
	"fmt"
	"rentvsbuy/types"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/getsentry/sentry-go"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	DefaultCacheExpiration = 10 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

type ProjectionServiceI interface {
	Project(ctx context.Context, in types.FinancialInputs) (types.Projection, error)
}

type projectionService struct {
	cache *cache.Cache
}

// NewProjectionService returns a service that validates inputs and memoizes
// projections in c. A nil cache disables memoization.
func NewProjectionService(c *cache.Cache) ProjectionServiceI {
	return &projectionService{cache: c}
}

func (s *projectionService) Project(ctx context.Context, in types.FinancialInputs) (types.Projection, error) {
	span := sentry.StartSpan(ctx, "[SERVICE] Project")
	defer span.Finish()

	if err := in.Validate(); err != nil {
		span.Status = sentry.SpanStatusInvalidArgument
		return types.Projection{}, err
	}

	key := cacheKey(in)
	if s.cache != nil {
		if cached, found := s.cache.Get(key); found {
			zap.L().Debug("Projection served from cache", zap.String("key", key))
			span.Status = sentry.SpanStatusOK
			return cached.(types.Projection), nil
		}
	}

	projection := Project(in)
	if s.cache != nil {
		s.cache.SetDefault(key, projection)
	}

	zap.L().Info("Projection computed",
		zap.Int("years", projection.Years),
		zap.Float64("grossMonthlyPayment", projection.GrossMonthlyPayment),
		zap.Float64("finalDelta", projection.Delta[len(projection.Delta)-1]))

	span.Status = sentry.SpanStatusOK
	return projection, nil
}

func cacheKey(in types.FinancialInputs) string {
	return strconv.FormatUint(xxhash.Sum64String(fmt.Sprintf("%+v", in)), 16)
}
