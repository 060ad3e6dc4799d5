package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/tutorboard-api/internal/models"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
)

type parentUpserter interface {
	UpsertParentByHubID(ctx context.Context, user *models.User) (*models.User, error)
}

// ParentResolver maps a hub identity onto the local parent user, creating the
// user the first time the hub id is seen.
type ParentResolver struct {
	users    parentUpserter
	cache    *CacheService
	cacheTTL time.Duration
	metrics  *MetricsService
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// ParentResolverParams groups constructor dependencies.
type ParentResolverParams struct {
	Users    parentUpserter
	Cache    *CacheService
	CacheTTL time.Duration
	Metrics  *MetricsService
	Logger   *zap.Logger
}

// NewParentResolver constructs a ParentResolver.
func NewParentResolver(params ParentResolverParams) *ParentResolver {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParentResolver{
		users:    params.Users,
		cache:    params.Cache,
		cacheTTL: params.CacheTTL,
		metrics:  params.Metrics,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// ParseHubID decodes the caller identity into a positive base-10 hub user id.
func ParseHubID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrInvalidIdentity, "")
	}
	return id, nil
}

// Resolve returns the local parent for the hub id. Repeated calls with the
// same hub id always return the same user.
func (r *ParentResolver) Resolve(ctx context.Context, hubID string) (*models.User, error) {
	id, err := ParseHubID(hubID)
	if err != nil {
		return nil, err
	}

	key := parentCacheKey(id)
	var cached models.User
	if hit, err := r.cache.Get(ctx, key, &cached); err == nil && hit && cached.ID != "" {
		r.metrics.RecordParentResolution("cache")
		return &cached, nil
	}

	start := time.Now()
	user, err := r.users.UpsertParentByHubID(ctx, &models.User{
		ID:        r.newID(),
		HubUserID: &id,
		Username:  fmt.Sprintf("parent_%d", id),
		Email:     fmt.Sprintf("parent_%d@tutorboard.local", id),
		Role:      models.RoleParent,
		CreatedAt: r.now().UTC(),
	})
	r.metrics.ObserveDBQuery("users.upsert_parent", time.Since(start))
	if err != nil {
		return nil, appErrors.Store(err, "failed to resolve parent")
	}
	r.metrics.RecordParentResolution("store")

	_ = r.cache.Set(ctx, key, user, r.cacheTTL)
	return user, nil
}

func parentCacheKey(hubID int64) string {
	return fmt.Sprintf("tutor:parent:%d", hubID)
}
