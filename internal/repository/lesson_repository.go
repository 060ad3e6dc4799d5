package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/tutorboard-api/internal/models"
)

const lessonRecordSelect = `SELECT lr.id, lr.lesson_plan_id, lr.record_date, lr.summary, lr.pages_from, lr.pages_to,
        lp.title AS lesson_title, lp.class_id, c.name AS class_name
        FROM lesson_records lr
        JOIN lesson_plans lp ON lp.id = lr.lesson_plan_id
        JOIN classes c ON c.id = lp.class_id`

// LessonRepository reads delivered lesson records.
type LessonRepository struct {
	db *sqlx.DB
}

// NewLessonRepository constructs the repository.
func NewLessonRepository(db *sqlx.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

// ListRecentRecords returns up to limit lesson records of the given classes, newest first.
func (r *LessonRepository) ListRecentRecords(ctx context.Context, classIDs []string, limit int) ([]models.LessonRecordDetail, error) {
	if len(classIDs) == 0 {
		return []models.LessonRecordDetail{}, nil
	}
	query := lessonRecordSelect + `
        WHERE lp.class_id = ANY($1)
        ORDER BY lr.record_date DESC
        LIMIT $2`
	var records []models.LessonRecordDetail
	if err := r.db.SelectContext(ctx, &records, query, pq.Array(classIDs), limit); err != nil {
		return nil, fmt.Errorf("list recent lesson records: %w", err)
	}
	return records, nil
}

// ListRecordsByClass returns all lesson records of a class, newest first.
func (r *LessonRepository) ListRecordsByClass(ctx context.Context, classID string) ([]models.LessonRecordDetail, error) {
	query := lessonRecordSelect + `
        WHERE lp.class_id = $1
        ORDER BY lr.record_date DESC`
	var records []models.LessonRecordDetail
	if err := r.db.SelectContext(ctx, &records, query, classID); err != nil {
		return nil, fmt.Errorf("list class lesson records: %w", err)
	}
	return records, nil
}
