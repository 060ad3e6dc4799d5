package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/noah-isme/tutorboard-api/internal/models"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
)

const (
	parentID    = "0b9f2c4e-1d2a-4c1b-9a7e-1f0c2d3e4a50"
	childA      = "5a1c3f0e-8b2d-4e6f-9a1b-2c3d4e5f6a70"
	childB      = "6b2d4a1f-9c3e-4f70-8b2c-3d4e5f6a7b81"
	classMath   = "7c3e5b20-ad4f-4081-9c3d-4e5f6a7b8c92"
	classEng    = "8d4f6c31-be50-4192-8d4e-5f6a7b8c9da3"
	teacherID   = "9e507d42-cf61-42a3-9e5f-6a7b8c9daeb4"
	strangerID  = "af618e53-d072-43b4-8f60-7b8c9daebfc5"
	outsiderID  = "b0729f64-e183-44c5-9071-8c9daebfc0d6"
	parentHubID = "42"
)

// fakeParentStore emulates the ON CONFLICT upsert keyed by hub id.
type fakeParentStore struct {
	mu      sync.Mutex
	byHubID map[int64]*models.User
	calls   int
	err     error
}

func newFakeParentStore() *fakeParentStore {
	return &fakeParentStore{byHubID: make(map[int64]*models.User)}
}

func (f *fakeParentStore) UpsertParentByHubID(_ context.Context, user *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if existing, ok := f.byHubID[*user.HubUserID]; ok {
		clone := *existing
		return &clone, nil
	}
	stored := *user
	f.byHubID[*user.HubUserID] = &stored
	clone := stored
	return &clone, nil
}

type fakeParents struct {
	user *models.User
	err  error
}

func (f *fakeParents) Resolve(context.Context, string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func parentUser() *fakeParents {
	return &fakeParents{user: &models.User{ID: parentID, Username: "parent_42", Role: models.RoleParent}}
}

type fakeGuard struct {
	links map[[2]string]bool
	calls int
	err   error
}

func linkedGuard(pairs ...[2]string) *fakeGuard {
	links := make(map[[2]string]bool, len(pairs))
	for _, p := range pairs {
		links[p] = true
	}
	return &fakeGuard{links: links}
}

func (f *fakeGuard) Verify(_ context.Context, parent, child string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	if !f.links[[2]string{parent, child}] {
		return appErrors.Clone(appErrors.ErrNotYourChild, "")
	}
	return nil
}

type fakeEnrollments struct {
	details []models.EnrollmentDetail
	classes map[string][]models.EnrolledClass
	linked  map[[2]string]bool
	err     error
}

func (f *fakeEnrollments) ListDetailsByParent(context.Context, string) ([]models.EnrollmentDetail, error) {
	return f.details, f.err
}

func (f *fakeEnrollments) ListClassesForChild(_ context.Context, _ string, studentID string) ([]models.EnrolledClass, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.classes[studentID], nil
}

func (f *fakeEnrollments) ExistsForParentChild(_ context.Context, parent, student string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.linked[[2]string{parent, student}], nil
}

type fakeAttendance struct {
	mu      sync.Mutex
	today   map[string][]models.AttendanceWithClass
	byClass map[string][]models.Attendance
	from    time.Time
	to      time.Time
	err     error
}

func (f *fakeAttendance) ListByStudentBetween(_ context.Context, studentID string, from, to time.Time) ([]models.AttendanceWithClass, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.from, f.to = from, to
	if f.err != nil {
		return nil, f.err
	}
	return f.today[studentID], nil
}

func (f *fakeAttendance) ListByClassAndStudent(_ context.Context, classID, _ string) ([]models.Attendance, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byClass[classID], nil
}

type fakeAssignments struct {
	pending  map[string]int
	recent   []models.AssignmentWithSubmission
	byClass  map[string][]models.AssignmentWithSubmission
	classIDs []string
	err      error
}

func (f *fakeAssignments) CountPendingByStudent(_ context.Context, studentID string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.pending[studentID], nil
}

func (f *fakeAssignments) ListRecentWithSubmission(_ context.Context, _ string, classIDs []string, limit int) ([]models.AssignmentWithSubmission, error) {
	f.classIDs = classIDs
	if f.err != nil {
		return nil, f.err
	}
	return head(f.recent, limit), nil
}

func (f *fakeAssignments) ListWithSubmissionByClass(_ context.Context, classID, _ string) ([]models.AssignmentWithSubmission, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byClass[classID], nil
}

type fakeLessons struct {
	recent   []models.LessonRecordDetail
	byClass  map[string][]models.LessonRecordDetail
	classIDs []string
	err      error
}

func (f *fakeLessons) ListRecentRecords(_ context.Context, classIDs []string, limit int) ([]models.LessonRecordDetail, error) {
	f.classIDs = classIDs
	if f.err != nil {
		return nil, f.err
	}
	return head(f.recent, limit), nil
}

func (f *fakeLessons) ListRecordsByClass(_ context.Context, classID string) ([]models.LessonRecordDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byClass[classID], nil
}

type fakeTests struct {
	recent     []models.TestResultDetail
	trend      []models.TestResultDetail
	byClass    map[string][]models.TestWithResult
	trendClass string
	trendLimit int
	err        error
}

func (f *fakeTests) ListRecentResults(_ context.Context, _ string, _ []string, limit int) ([]models.TestResultDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	return head(f.recent, limit), nil
}

func (f *fakeTests) ListTrend(_ context.Context, _ string, classID string, limit int) ([]models.TestResultDetail, error) {
	f.trendClass, f.trendLimit = classID, limit
	if f.err != nil {
		return nil, f.err
	}
	return head(f.trend, limit), nil
}

func (f *fakeTests) ListWithResultByClass(_ context.Context, classID, _ string) ([]models.TestWithResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byClass[classID], nil
}

type fakeUsers struct {
	users map[string]*models.User
	err   error
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

// fakeCommentStore keeps comments in memory and applies the thread visibility rule.
type fakeCommentStore struct {
	users       map[string]*models.User
	rows        []models.PrivateComment
	createCalls int
	createErr   error
}

func (f *fakeCommentStore) Create(_ context.Context, comment *models.PrivateComment) (*models.PrivateCommentDetail, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.rows = append(f.rows, *comment)
	detail := f.detail(*comment)
	return &detail, nil
}

func (f *fakeCommentStore) ListThread(_ context.Context, studentID, userID string) ([]models.PrivateCommentDetail, error) {
	var out []models.PrivateCommentDetail
	for _, row := range f.rows {
		if row.StudentID == nil || *row.StudentID != studentID {
			continue
		}
		if row.AuthorID != userID && row.TargetID != userID {
			continue
		}
		out = append(out, f.detail(row))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeCommentStore) detail(row models.PrivateComment) models.PrivateCommentDetail {
	detail := models.PrivateCommentDetail{PrivateComment: row}
	if author, ok := f.users[row.AuthorID]; ok {
		detail.AuthorUsername, detail.AuthorRole, detail.AuthorAvatarURL = author.Username, author.Role, author.AvatarURL
	}
	if target, ok := f.users[row.TargetID]; ok {
		detail.TargetUsername, detail.TargetRole = target.Username, target.Role
	}
	return detail
}

type fakeCacheRepo struct {
	mu     sync.Mutex
	items  map[string][]byte
	getErr error
	sets   int
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{items: make(map[string][]byte)}
}

func (f *fakeCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return f.getErr
	}
	raw, ok := f.items[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.items[key] = raw
	f.sets++
	return nil
}

func head[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

func strPtr(v string) *string { return &v }

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func timePtr(v time.Time) *time.Time { return &v }
