package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/tutorboard-api/internal/dto"
	"github.com/noah-isme/tutorboard-api/internal/models"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
)

const classRecordFanOut = 4

type classLessonLister interface {
	ListRecordsByClass(ctx context.Context, classID string) ([]models.LessonRecordDetail, error)
}

type classAssignmentLister interface {
	ListWithSubmissionByClass(ctx context.Context, classID, studentID string) ([]models.AssignmentWithSubmission, error)
}

type classTestLister interface {
	ListWithResultByClass(ctx context.Context, classID, studentID string) ([]models.TestWithResult, error)
}

type classAttendanceLister interface {
	ListByClassAndStudent(ctx context.Context, classID, studentID string) ([]models.Attendance, error)
}

// ClassRecordService builds the lesson-by-lesson record of a child's classes.
type ClassRecordService struct {
	childScope
	enrollments childClassLister
	lessons     classLessonLister
	assignments classAssignmentLister
	tests       classTestLister
	attendance  classAttendanceLister
	metrics     *MetricsService
	logger      *zap.Logger
	location    *time.Location
}

// ClassRecordServiceParams groups constructor dependencies.
type ClassRecordServiceParams struct {
	Parents     parentResolver
	Guard       childAccessVerifier
	Enrollments childClassLister
	Lessons     classLessonLister
	Assignments classAssignmentLister
	Tests       classTestLister
	Attendance  classAttendanceLister
	Metrics     *MetricsService
	Logger      *zap.Logger
	Location    *time.Location
}

// NewClassRecordService constructs a ClassRecordService.
func NewClassRecordService(params ClassRecordServiceParams) *ClassRecordService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassRecordService{
		childScope:  childScope{parents: params.Parents, guard: params.Guard},
		enrollments: params.Enrollments,
		lessons:     params.Lessons,
		assignments: params.Assignments,
		tests:       params.Tests,
		attendance:  params.Attendance,
		metrics:     params.Metrics,
		logger:      logger,
		location:    locationOrLocal(params.Location),
	}
}

// Child returns one record group per enrolled class of the child, in enrollment
// order. A classID outside the child's enrollments yields no groups.
func (s *ClassRecordService) Child(ctx context.Context, hubID, childID, classID string) ([]dto.ClassRecordGroup, error) {
	parent, err := s.authorize(ctx, hubID, childID)
	if err != nil {
		return nil, err
	}
	if err := optionalID("classId", classID); err != nil {
		return nil, err
	}

	start := time.Now()
	classes, err := s.enrollments.ListClassesForChild(ctx, parent.ID, childID)
	s.metrics.ObserveDBQuery("enrollments.list_child_classes", time.Since(start))
	if err != nil {
		return nil, appErrors.Store(err, "failed to load enrolled classes")
	}
	if classID != "" {
		classes = filterClass(classes, classID)
	}

	groups := make([]dto.ClassRecordGroup, len(classes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(classRecordFanOut)
	for i := range classes {
		i, class := i, classes[i]
		g.Go(func() error {
			group, err := s.composeClass(gctx, class, childID)
			if err != nil {
				return err
			}
			groups[i] = group
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return groups, nil
}

func (s *ClassRecordService) composeClass(ctx context.Context, class models.EnrolledClass, studentID string) (dto.ClassRecordGroup, error) {
	var (
		records     []models.LessonRecordDetail
		assignments []models.AssignmentWithSubmission
		tests       []models.TestWithResult
		attendance  []models.Attendance
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		rows, err := s.lessons.ListRecordsByClass(gctx, class.ClassID)
		s.metrics.ObserveDBQuery("lesson_records.list_by_class", time.Since(start))
		if err != nil {
			return appErrors.Store(err, "failed to load lesson records")
		}
		records = rows
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		rows, err := s.assignments.ListWithSubmissionByClass(gctx, class.ClassID, studentID)
		s.metrics.ObserveDBQuery("assignments.list_by_class", time.Since(start))
		if err != nil {
			return appErrors.Store(err, "failed to load assignments")
		}
		assignments = rows
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		rows, err := s.tests.ListWithResultByClass(gctx, class.ClassID, studentID)
		s.metrics.ObserveDBQuery("tests.list_by_class", time.Since(start))
		if err != nil {
			return appErrors.Store(err, "failed to load tests")
		}
		tests = rows
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		rows, err := s.attendance.ListByClassAndStudent(gctx, class.ClassID, studentID)
		s.metrics.ObserveDBQuery("attendances.list_by_class", time.Since(start))
		if err != nil {
			return appErrors.Store(err, "failed to load attendance")
		}
		attendance = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return dto.ClassRecordGroup{}, err
	}

	return buildClassRecordGroup(class, records, assignments, tests, attendance, s.location), nil
}

// buildClassRecordGroup nests assignments and tests under the lesson records of
// their lesson plan and looks up attendance by calendar day.
func buildClassRecordGroup(
	class models.EnrolledClass,
	records []models.LessonRecordDetail,
	assignments []models.AssignmentWithSubmission,
	tests []models.TestWithResult,
	attendance []models.Attendance,
	loc *time.Location,
) dto.ClassRecordGroup {
	// Rows arrive newest first; the latest mark of a day wins.
	statusByDay := make(map[string]models.AttendanceStatus, len(attendance))
	for _, row := range attendance {
		key := dayKey(row.Date, loc)
		if _, ok := statusByDay[key]; !ok {
			statusByDay[key] = row.Status
		}
	}

	assignmentsByPlan := make(map[string][]dto.ClassRecordAssignment)
	for _, a := range assignments {
		assignmentsByPlan[a.LessonPlanID] = append(assignmentsByPlan[a.LessonPlanID], dto.ClassRecordAssignment{
			Title:  a.Title,
			Status: a.Status(),
			Grade:  a.Grade,
		})
	}

	testsByPlan := make(map[string][]dto.ClassRecordTest)
	for _, t := range tests {
		testsByPlan[t.LessonPlanID] = append(testsByPlan[t.LessonPlanID], dto.ClassRecordTest{
			Title:    t.Title,
			Score:    t.Score,
			MaxScore: t.MaxScore,
			Feedback: t.Feedback,
		})
	}

	entries := make([]dto.ClassRecordEntry, 0, len(records))
	for _, record := range records {
		entry := dto.ClassRecordEntry{
			ID:          record.ID,
			Date:        record.RecordDate,
			LessonTitle: record.LessonTitle,
			Summary:     record.Summary,
			Pages:       record.Pages(),
			Assignments: assignmentsByPlan[record.LessonPlanID],
			Tests:       testsByPlan[record.LessonPlanID],
		}
		if status, ok := statusByDay[dayKey(record.RecordDate, loc)]; ok {
			status := status
			entry.Attendance = &status
		}
		if entry.Assignments == nil {
			entry.Assignments = []dto.ClassRecordAssignment{}
		}
		if entry.Tests == nil {
			entry.Tests = []dto.ClassRecordTest{}
		}
		entries = append(entries, entry)
	}

	return dto.ClassRecordGroup{
		ClassID:   class.ClassID,
		ClassName: class.Name,
		Subject:   class.Subject,
		Records:   entries,
	}
}

func filterClass(classes []models.EnrolledClass, classID string) []models.EnrolledClass {
	for _, class := range classes {
		if class.ClassID == classID {
			return []models.EnrolledClass{class}
		}
	}
	return []models.EnrolledClass{}
}
