package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tutorboard-api/internal/dto"
	"github.com/noah-isme/tutorboard-api/internal/models"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
)

const defaultTrendLimit = 20

type testTrendLister interface {
	ListTrend(ctx context.Context, studentID, classID string, limit int) ([]models.TestResultDetail, error)
}

// TestTrendService returns a child's test scores in the order they were taken.
type TestTrendService struct {
	childScope
	tests   testTrendLister
	metrics *MetricsService
	logger  *zap.Logger
	limit   int
}

// TestTrendServiceParams groups constructor dependencies.
type TestTrendServiceParams struct {
	Parents parentResolver
	Guard   childAccessVerifier
	Tests   testTrendLister
	Metrics *MetricsService
	Logger  *zap.Logger
	Limit   int
}

// NewTestTrendService constructs a TestTrendService.
func NewTestTrendService(params TestTrendServiceParams) *TestTrendService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultTrendLimit
	}
	return &TestTrendService{
		childScope: childScope{parents: params.Parents, guard: params.Guard},
		tests:      params.Tests,
		metrics:    params.Metrics,
		logger:     logger,
		limit:      limit,
	}
}

// Child returns the oldest-first score trend of the child.
func (s *TestTrendService) Child(ctx context.Context, hubID, childID, classID string) ([]dto.TestTrendEntry, error) {
	if _, err := s.authorize(ctx, hubID, childID); err != nil {
		return nil, err
	}
	if err := optionalID("classId", classID); err != nil {
		return nil, err
	}

	start := time.Now()
	results, err := s.tests.ListTrend(ctx, childID, classID, s.limit)
	s.metrics.ObserveDBQuery("test_results.list_trend", time.Since(start))
	if err != nil {
		return nil, appErrors.Store(err, "failed to load test trend")
	}

	trend := make([]dto.TestTrendEntry, 0, len(results))
	for _, result := range results {
		trend = append(trend, dto.TestTrendEntry{
			TestTitle:  result.TestTitle,
			ClassName:  result.ClassName,
			Score:      result.Score,
			MaxScore:   result.MaxScore,
			Percentage: percentage(result.Score, result.MaxScore),
			Date:       result.Date(),
		})
	}
	return trend, nil
}
