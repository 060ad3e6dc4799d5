package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/tutorboard-api/internal/models"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
)

type parentResolver interface {
	Resolve(ctx context.Context, hubID string) (*models.User, error)
}

type childAccessVerifier interface {
	Verify(ctx context.Context, parentID, childID string) error
}

// childScope is embedded by every service serving data about a single child.
type childScope struct {
	parents parentResolver
	guard   childAccessVerifier
}

// authorize resolves the caller and rejects children the caller is not enrolled with.
func (s childScope) authorize(ctx context.Context, hubID, childID string) (*models.User, error) {
	parent, err := s.parents.Resolve(ctx, hubID)
	if err != nil {
		return nil, err
	}
	if err := requireID("childId", childID); err != nil {
		return nil, err
	}
	if err := s.guard.Verify(ctx, parent.ID, childID); err != nil {
		return nil, err
	}
	return parent, nil
}

func requireID(field, value string) error {
	if _, err := uuid.Parse(value); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, field+" must be a valid id")
	}
	return nil
}

func optionalID(field, value string) error {
	if value == "" {
		return nil
	}
	return requireID(field, value)
}

// percentage rounds half away from zero. A non-positive max score yields 0.
func percentage(score, maxScore float64) int {
	if maxScore <= 0 {
		return 0
	}
	return int(math.Round(score / maxScore * 100))
}

// dayBounds returns [midnight, next midnight) of the calendar day containing t in loc.
func dayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

func locationOrLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
