package models

import (
	"fmt"
	"time"
)

// LessonRecordDetail is a delivered lesson joined with its plan and class.
type LessonRecordDetail struct {
	ID           string    `db:"id"`
	LessonPlanID string    `db:"lesson_plan_id"`
	LessonTitle  string    `db:"lesson_title"`
	ClassID      string    `db:"class_id"`
	ClassName    string    `db:"class_name"`
	RecordDate   time.Time `db:"record_date"`
	Summary      *string   `db:"summary"`
	PagesFrom    *int      `db:"pages_from"`
	PagesTo      *int      `db:"pages_to"`
}

// Pages renders the covered page range, or nil unless both bounds are known.
func (r LessonRecordDetail) Pages() *string {
	if r.PagesFrom == nil || r.PagesTo == nil {
		return nil
	}
	pages := fmt.Sprintf("%d-%d", *r.PagesFrom, *r.PagesTo)
	return &pages
}
