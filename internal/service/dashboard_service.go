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

const dashboardFanOut = 8

type parentEnrollmentLister interface {
	ListDetailsByParent(ctx context.Context, parentID string) ([]models.EnrollmentDetail, error)
}

type dailyAttendanceLister interface {
	ListByStudentBetween(ctx context.Context, studentID string, from, to time.Time) ([]models.AttendanceWithClass, error)
}

type pendingAssignmentCounter interface {
	CountPendingByStudent(ctx context.Context, studentID string) (int, error)
}

// DashboardService composes the parent landing dashboard.
type DashboardService struct {
	parents     parentResolver
	enrollments parentEnrollmentLister
	attendance  dailyAttendanceLister
	assignments pendingAssignmentCounter
	metrics     *MetricsService
	logger      *zap.Logger
	location    *time.Location
	now         func() time.Time
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Parents     parentResolver
	Enrollments parentEnrollmentLister
	Attendance  dailyAttendanceLister
	Assignments pendingAssignmentCounter
	Metrics     *MetricsService
	Logger      *zap.Logger
	Location    *time.Location
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		parents:     params.Parents,
		enrollments: params.Enrollments,
		attendance:  params.Attendance,
		assignments: params.Assignments,
		metrics:     params.Metrics,
		logger:      logger,
		location:    locationOrLocal(params.Location),
		now:         time.Now,
	}
}

// Parent returns one summary per child the caller has enrolled, in first-enrollment order.
func (s *DashboardService) Parent(ctx context.Context, hubID string) (*dto.ParentDashboardResponse, error) {
	parent, err := s.parents.Resolve(ctx, hubID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := s.enrollments.ListDetailsByParent(ctx, parent.ID)
	s.metrics.ObserveDBQuery("enrollments.list_by_parent", time.Since(start))
	if err != nil {
		return nil, appErrors.Store(err, "failed to load enrollments")
	}

	children := groupChildren(rows)
	if len(children) == 0 {
		return &dto.ParentDashboardResponse{Children: children}, nil
	}

	from, to := dayBounds(s.now(), s.location)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(dashboardFanOut)
	for i := range children {
		child := &children[i]
		studentID := child.Student.ID

		g.Go(func() error {
			start := time.Now()
			rows, err := s.attendance.ListByStudentBetween(gctx, studentID, from, to)
			s.metrics.ObserveDBQuery("attendances.list_by_student_day", time.Since(start))
			if err != nil {
				return appErrors.Store(err, "failed to load today's attendance")
			}
			child.TodayAttendance = toTodayAttendance(rows)
			return nil
		})

		g.Go(func() error {
			start := time.Now()
			pending, err := s.assignments.CountPendingByStudent(gctx, studentID)
			s.metrics.ObserveDBQuery("assignment_submissions.count_pending", time.Since(start))
			if err != nil {
				return appErrors.Store(err, "failed to count pending assignments")
			}
			child.PendingAssignments = pending
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.ParentDashboardResponse{Children: children}, nil
}

// groupChildren folds enrollment rows into one entry per student, keeping the
// first-seen student projection and one class entry per distinct class.
func groupChildren(rows []models.EnrollmentDetail) []dto.DashboardChild {
	children := make([]dto.DashboardChild, 0)
	position := make(map[string]int)
	seenClass := make(map[[2]string]struct{})

	for _, row := range rows {
		pos, ok := position[row.StudentID]
		if !ok {
			pos = len(children)
			position[row.StudentID] = pos
			children = append(children, dto.DashboardChild{
				Student: dto.ChildProfile{
					ID:        row.StudentID,
					Username:  row.StudentUsername,
					AvatarURL: row.StudentAvatarURL,
				},
				Classes:         []dto.DashboardClass{},
				TodayAttendance: []dto.TodayAttendance{},
			})
		}

		key := [2]string{row.StudentID, row.ClassID}
		if _, dup := seenClass[key]; dup {
			continue
		}
		seenClass[key] = struct{}{}
		children[pos].Classes = append(children[pos].Classes, dto.DashboardClass{
			ID:      row.ClassID,
			Name:    row.ClassName,
			Subject: row.ClassSubject,
			Teacher: dto.TeacherSummary{
				ID:       row.TeacherID,
				Username: row.TeacherUsername,
			},
			EnrollmentCount: row.ClassEnrollmentCount,
		})
	}
	return children
}

func toTodayAttendance(rows []models.AttendanceWithClass) []dto.TodayAttendance {
	out := make([]dto.TodayAttendance, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.TodayAttendance{
			ID:        row.ID,
			ClassID:   row.ClassID,
			ClassName: row.ClassName,
			Date:      row.Date,
			Status:    row.Status,
		})
	}
	return out
}
