package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/tutorboard-api/internal/dto"
	"github.com/noah-isme/tutorboard-api/internal/models"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
)

const (
	timelineLessonWindow     = 30
	timelineTestWindow       = 20
	timelineAssignmentWindow = 20
	defaultTimelineLimit     = 50
)

type childClassLister interface {
	ListClassesForChild(ctx context.Context, parentID, studentID string) ([]models.EnrolledClass, error)
}

type recentLessonLister interface {
	ListRecentRecords(ctx context.Context, classIDs []string, limit int) ([]models.LessonRecordDetail, error)
}

type recentTestResultLister interface {
	ListRecentResults(ctx context.Context, studentID string, classIDs []string, limit int) ([]models.TestResultDetail, error)
}

type recentAssignmentLister interface {
	ListRecentWithSubmission(ctx context.Context, studentID string, classIDs []string, limit int) ([]models.AssignmentWithSubmission, error)
}

// TimelineService merges a child's lessons, test results and assignments into one feed.
type TimelineService struct {
	childScope
	enrollments childClassLister
	lessons     recentLessonLister
	tests       recentTestResultLister
	assignments recentAssignmentLister
	metrics     *MetricsService
	logger      *zap.Logger
	limit       int
}

// TimelineServiceParams groups constructor dependencies.
type TimelineServiceParams struct {
	Parents     parentResolver
	Guard       childAccessVerifier
	Enrollments childClassLister
	Lessons     recentLessonLister
	Tests       recentTestResultLister
	Assignments recentAssignmentLister
	Metrics     *MetricsService
	Logger      *zap.Logger
	Limit       int
}

// NewTimelineService constructs a TimelineService.
func NewTimelineService(params TimelineServiceParams) *TimelineService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultTimelineLimit
	}
	return &TimelineService{
		childScope:  childScope{parents: params.Parents, guard: params.Guard},
		enrollments: params.Enrollments,
		lessons:     params.Lessons,
		tests:       params.Tests,
		assignments: params.Assignments,
		metrics:     params.Metrics,
		logger:      logger,
		limit:       limit,
	}
}

// Child returns the newest timeline entries for the child, optionally for a single class.
func (s *TimelineService) Child(ctx context.Context, hubID, childID, classID string) ([]dto.TimelineEntry, error) {
	parent, err := s.authorize(ctx, hubID, childID)
	if err != nil {
		return nil, err
	}
	if err := optionalID("classId", classID); err != nil {
		return nil, err
	}

	classIDs, err := s.candidateClasses(ctx, parent.ID, childID, classID)
	if err != nil {
		return nil, err
	}

	var (
		lessons     []models.LessonRecordDetail
		results     []models.TestResultDetail
		assignments []models.AssignmentWithSubmission
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		rows, err := s.lessons.ListRecentRecords(gctx, classIDs, timelineLessonWindow)
		s.metrics.ObserveDBQuery("lesson_records.list_recent", time.Since(start))
		if err != nil {
			return appErrors.Store(err, "failed to load lesson records")
		}
		lessons = rows
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		rows, err := s.tests.ListRecentResults(gctx, childID, classIDs, timelineTestWindow)
		s.metrics.ObserveDBQuery("test_results.list_recent", time.Since(start))
		if err != nil {
			return appErrors.Store(err, "failed to load test results")
		}
		results = rows
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		rows, err := s.assignments.ListRecentWithSubmission(gctx, childID, classIDs, timelineAssignmentWindow)
		s.metrics.ObserveDBQuery("assignments.list_recent", time.Since(start))
		if err != nil {
			return appErrors.Store(err, "failed to load assignments")
		}
		assignments = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := mergeTimeline(lessons, results, assignments)
	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}
	return entries, nil
}

func (s *TimelineService) candidateClasses(ctx context.Context, parentID, childID, classID string) ([]string, error) {
	if classID != "" {
		return []string{classID}, nil
	}
	start := time.Now()
	classes, err := s.enrollments.ListClassesForChild(ctx, parentID, childID)
	s.metrics.ObserveDBQuery("enrollments.list_child_classes", time.Since(start))
	if err != nil {
		return nil, appErrors.Store(err, "failed to load enrolled classes")
	}
	ids := make([]string, 0, len(classes))
	for _, class := range classes {
		ids = append(ids, class.ClassID)
	}
	return ids, nil
}

// mergeTimeline normalises the three sources and orders them newest first.
func mergeTimeline(lessons []models.LessonRecordDetail, results []models.TestResultDetail, assignments []models.AssignmentWithSubmission) []dto.TimelineEntry {
	entries := make([]dto.TimelineEntry, 0, len(lessons)+len(results)+len(assignments))
	for _, record := range lessons {
		entries = append(entries, dto.LessonTimelineEntry{
			TimelineBase: dto.TimelineBase{
				Type:      dto.TimelineLesson,
				ID:        record.ID,
				Date:      record.RecordDate,
				Title:     record.LessonTitle,
				ClassID:   record.ClassID,
				ClassName: record.ClassName,
			},
			Summary: record.Summary,
			Pages:   record.Pages(),
		})
	}
	for _, result := range results {
		entries = append(entries, dto.TestTimelineEntry{
			TimelineBase: dto.TimelineBase{
				Type:      dto.TimelineTest,
				ID:        result.ID,
				Date:      result.TakenAt,
				Title:     result.TestTitle,
				ClassID:   result.ClassID,
				ClassName: result.ClassName,
			},
			Score:      result.Score,
			MaxScore:   result.MaxScore,
			Percentage: percentage(result.Score, result.MaxScore),
			Feedback:   result.Feedback,
		})
	}
	for _, assignment := range assignments {
		date := assignment.CreatedAt
		if assignment.DueDate != nil {
			date = *assignment.DueDate
		}
		entries = append(entries, dto.AssignmentTimelineEntry{
			TimelineBase: dto.TimelineBase{
				Type:      dto.TimelineAssignment,
				ID:        assignment.ID,
				Date:      date,
				Title:     assignment.Title,
				ClassID:   assignment.ClassID,
				ClassName: assignment.ClassName,
			},
			Status: assignment.Status(),
			Grade:  assignment.Grade,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].EntryDate().After(entries[j].EntryDate())
	})
	return entries
}
