package dto

import (
	"time"

	"github.com/noah-isme/tutorboard-api/internal/models"
)

// ClassRecordGroup is the lesson-by-lesson record of one class for a child.
type ClassRecordGroup struct {
	ClassID   string             `json:"classId"`
	ClassName string             `json:"className"`
	Subject   string             `json:"subject"`
	Records   []ClassRecordEntry `json:"records"`
}

// ClassRecordEntry is a delivered lesson with the child's attendance and the
// work attached to its lesson plan.
type ClassRecordEntry struct {
	ID          string                   `json:"id"`
	Date        time.Time                `json:"date"`
	LessonTitle string                   `json:"lessonTitle"`
	Summary     *string                  `json:"summary"`
	Pages       *string                  `json:"pages"`
	Attendance  *models.AttendanceStatus `json:"attendance"`
	Assignments []ClassRecordAssignment  `json:"assignments"`
	Tests       []ClassRecordTest        `json:"tests"`
}

// ClassRecordAssignment is an assignment with the child's submission state.
type ClassRecordAssignment struct {
	Title  string                  `json:"title"`
	Status models.SubmissionStatus `json:"status"`
	Grade  *float64                `json:"grade"`
}

// ClassRecordTest is a test with the child's result, if taken.
type ClassRecordTest struct {
	Title    string   `json:"title"`
	Score    *float64 `json:"score"`
	MaxScore float64  `json:"maxScore"`
	Feedback *string  `json:"feedback"`
}
