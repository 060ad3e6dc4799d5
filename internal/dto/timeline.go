package dto

import (
	"time"

	"github.com/noah-isme/tutorboard-api/internal/models"
)

// TimelineEntryType tags the variant of a timeline entry.
type TimelineEntryType string

const (
	TimelineLesson     TimelineEntryType = "lesson"
	TimelineTest       TimelineEntryType = "test"
	TimelineAssignment TimelineEntryType = "assignment"
)

// TimelineEntry is one item of a child's learning timeline.
type TimelineEntry interface {
	EntryType() TimelineEntryType
	EntryDate() time.Time
}

// TimelineBase carries the fields shared by every timeline variant.
type TimelineBase struct {
	Type      TimelineEntryType `json:"type"`
	ID        string            `json:"id"`
	Date      time.Time         `json:"date"`
	Title     string            `json:"title"`
	ClassID   string            `json:"classId"`
	ClassName string            `json:"className"`
}

// EntryType implements TimelineEntry.
func (b TimelineBase) EntryType() TimelineEntryType { return b.Type }

// EntryDate implements TimelineEntry.
func (b TimelineBase) EntryDate() time.Time { return b.Date }

// LessonTimelineEntry is a delivered lesson.
type LessonTimelineEntry struct {
	TimelineBase
	Summary *string `json:"summary"`
	Pages   *string `json:"pages"`
}

// TestTimelineEntry is a graded test result.
type TestTimelineEntry struct {
	TimelineBase
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"maxScore"`
	Percentage int     `json:"percentage"`
	Feedback   *string `json:"feedback"`
}

// AssignmentTimelineEntry is an assignment with the child's submission state.
type AssignmentTimelineEntry struct {
	TimelineBase
	Status models.SubmissionStatus `json:"status"`
	Grade  *float64                `json:"grade"`
}

// TestTrendEntry is one point of a child's score trend.
type TestTrendEntry struct {
	TestTitle  string    `json:"testTitle"`
	ClassName  string    `json:"className"`
	Score      float64   `json:"score"`
	MaxScore   float64   `json:"maxScore"`
	Percentage int       `json:"percentage"`
	Date       time.Time `json:"date"`
}
