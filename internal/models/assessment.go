package models

import "time"

// SubmissionStatus enumerates assignment submission states.
type SubmissionStatus string

const (
	SubmissionPending   SubmissionStatus = "pending"
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionGraded    SubmissionStatus = "graded"
)

// AssignmentWithSubmission is an assignment plus the student's submission, when one exists.
type AssignmentWithSubmission struct {
	ID               string            `db:"id"`
	LessonPlanID     string            `db:"lesson_plan_id"`
	ClassID          string            `db:"class_id"`
	ClassName        string            `db:"class_name"`
	Title            string            `db:"title"`
	DueDate          *time.Time        `db:"due_date"`
	CreatedAt        time.Time         `db:"created_at"`
	SubmissionStatus *SubmissionStatus `db:"submission_status"`
	Grade            *float64          `db:"grade"`
	SubmittedAt      *time.Time        `db:"submitted_at"`
}

// Status reports the submission state, treating a missing submission as pending.
func (a AssignmentWithSubmission) Status() SubmissionStatus {
	if a.SubmissionStatus == nil {
		return SubmissionPending
	}
	return *a.SubmissionStatus
}

// TestResultDetail is a student's test result joined with its test and class.
type TestResultDetail struct {
	ID        string     `db:"id"`
	TestID    string     `db:"test_id"`
	TestTitle string     `db:"test_title"`
	MaxScore  float64    `db:"max_score"`
	TestDate  *time.Time `db:"test_date"`
	ClassID   string     `db:"class_id"`
	ClassName string     `db:"class_name"`
	Score     float64    `db:"score"`
	Feedback  *string    `db:"feedback"`
	TakenAt   time.Time  `db:"taken_at"`
}

// Date is the scheduled test date, falling back to when the result was taken.
func (r TestResultDetail) Date() time.Time {
	if r.TestDate != nil {
		return *r.TestDate
	}
	return r.TakenAt
}

// TestWithResult is a class test plus the student's result, when one exists.
type TestWithResult struct {
	ID           string     `db:"id"`
	LessonPlanID string     `db:"lesson_plan_id"`
	Title        string     `db:"title"`
	MaxScore     float64    `db:"max_score"`
	TestDate     *time.Time `db:"test_date"`
	Score        *float64   `db:"score"`
	Feedback     *string    `db:"feedback"`
	TakenAt      *time.Time `db:"taken_at"`
}
