package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutorboard-api/internal/models"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
)

func TestPercentage(t *testing.T) {
	assert.Equal(t, 85, percentage(85, 100))
	assert.Equal(t, 28, percentage(17, 60))
	assert.Equal(t, 50, percentage(0.5, 1))
	assert.Equal(t, 100, percentage(60, 60))
	assert.Equal(t, 0, percentage(10, 0))
	assert.Equal(t, 0, percentage(10, -5))
}

func TestDayBounds(t *testing.T) {
	seoul := time.FixedZone("KST", 9*3600)
	// 23:30 UTC on the 9th is already the 10th in Seoul.
	now := time.Date(2025, 3, 9, 23, 30, 0, 0, time.UTC)

	from, to := dayBounds(now, seoul)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, seoul), from)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, seoul), to)
	assert.Equal(t, "2025-03-10", dayKey(now, seoul))
}

// Every child-scoped operation must refuse a child the parent has no enrollment for.
func TestChildScopedOperationsRequireEnrollment(t *testing.T) {
	ctx := context.Background()
	guard := linkedGuard([2]string{parentID, childA})
	enrollments := &fakeEnrollments{classes: map[string][]models.EnrolledClass{
		childA: {{ClassID: classMath, Name: "Math A"}},
	}}
	timeline := NewTimelineService(TimelineServiceParams{
		Parents: parentUser(), Guard: guard, Enrollments: enrollments,
		Lessons: &fakeLessons{}, Tests: &fakeTests{}, Assignments: &fakeAssignments{},
	})
	trend := NewTestTrendService(TestTrendServiceParams{Parents: parentUser(), Guard: guard, Tests: &fakeTests{}})
	records := NewClassRecordService(ClassRecordServiceParams{
		Parents: parentUser(), Guard: guard, Enrollments: enrollments,
		Lessons: &fakeLessons{}, Assignments: &fakeAssignments{}, Tests: &fakeTests{}, Attendance: &fakeAttendance{},
	})

	operations := map[string]func(childID string) error{
		"timeline": func(childID string) error {
			_, err := timeline.Child(ctx, parentHubID, childID, "")
			return err
		},
		"trend": func(childID string) error {
			_, err := trend.Child(ctx, parentHubID, childID, "")
			return err
		},
		"class records": func(childID string) error {
			_, err := records.Child(ctx, parentHubID, childID, "")
			return err
		},
	}

	for name, op := range operations {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, op(childA))

			err := op(childB)
			require.Error(t, err)
			assert.True(t, errors.Is(err, appErrors.ErrNotYourChild))

			err = op("not-a-uuid")
			assert.True(t, errors.Is(err, appErrors.ErrValidation))
		})
	}
}

func TestChildScopePropagatesIdentityErrors(t *testing.T) {
	guard := linkedGuard()
	scope := childScope{parents: &fakeParents{err: appErrors.Clone(appErrors.ErrInvalidIdentity, "")}, guard: guard}

	_, err := scope.authorize(context.Background(), "abc", childA)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidIdentity))
	assert.Zero(t, guard.calls)
}
