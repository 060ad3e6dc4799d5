package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
)

type parentChildLinkChecker interface {
	ExistsForParentChild(ctx context.Context, parentID, studentID string) (bool, error)
}

// ChildAccessGuard allows a parent to see a child only when an enrollment links them.
type ChildAccessGuard struct {
	enrollments parentChildLinkChecker
	metrics     *MetricsService
	logger      *zap.Logger
}

// NewChildAccessGuard constructs the guard.
func NewChildAccessGuard(enrollments parentChildLinkChecker, metrics *MetricsService, logger *zap.Logger) *ChildAccessGuard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChildAccessGuard{enrollments: enrollments, metrics: metrics, logger: logger}
}

// Verify returns ErrNotYourChild unless the parent has at least one enrollment for the child.
func (g *ChildAccessGuard) Verify(ctx context.Context, parentID, childID string) error {
	start := time.Now()
	linked, err := g.enrollments.ExistsForParentChild(ctx, parentID, childID)
	g.metrics.ObserveDBQuery("enrollments.exists_parent_child", time.Since(start))
	if err != nil {
		return appErrors.Store(err, "failed to verify child access")
	}
	if !linked {
		g.metrics.RecordAccessDenied()
		g.logger.Info("child access denied", zap.String("parent_id", parentID), zap.String("child_id", childID))
		return appErrors.Clone(appErrors.ErrNotYourChild, "")
	}
	return nil
}
