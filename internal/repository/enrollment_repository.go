package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutorboard-api/internal/models"
)

// EnrollmentRepository reads parent/child class enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// ListDetailsByParent returns every enrollment of the parent joined with the
// student, the class, its teacher and the class head count.
func (r *EnrollmentRepository) ListDetailsByParent(ctx context.Context, parentID string) ([]models.EnrollmentDetail, error) {
	const query = `SELECT e.id, e.student_id, e.class_id,
        s.username AS student_username, s.avatar_url AS student_avatar_url,
        c.name AS class_name, c.subject AS class_subject,
        t.id AS teacher_id, t.username AS teacher_username,
        (SELECT COUNT(*) FROM class_enrollments ce WHERE ce.class_id = c.id) AS class_enrollment_count
        FROM class_enrollments e
        JOIN users s ON s.id = e.student_id
        JOIN classes c ON c.id = e.class_id
        JOIN users t ON t.id = c.teacher_id
        WHERE e.parent_id = $1
        ORDER BY e.created_at ASC, e.id ASC`
	var details []models.EnrollmentDetail
	if err := r.db.SelectContext(ctx, &details, query, parentID); err != nil {
		return nil, fmt.Errorf("list parent enrollments: %w", err)
	}
	return details, nil
}

// ListClassesForChild returns the classes the parent enrolled the child in, in enrollment order.
func (r *EnrollmentRepository) ListClassesForChild(ctx context.Context, parentID, studentID string) ([]models.EnrolledClass, error) {
	const query = `SELECT e.class_id, c.name AS class_name, c.subject AS class_subject
        FROM class_enrollments e
        JOIN classes c ON c.id = e.class_id
        WHERE e.parent_id = $1 AND e.student_id = $2
        ORDER BY e.created_at ASC, e.id ASC`
	var classes []models.EnrolledClass
	if err := r.db.SelectContext(ctx, &classes, query, parentID, studentID); err != nil {
		return nil, fmt.Errorf("list child classes: %w", err)
	}
	return classes, nil
}

// ExistsForParentChild reports whether any enrollment links the parent to the child.
func (r *EnrollmentRepository) ExistsForParentChild(ctx context.Context, parentID, studentID string) (bool, error) {
	const query = `SELECT 1 FROM class_enrollments WHERE parent_id = $1 AND student_id = $2 LIMIT 1`
	var found int
	if err := r.db.GetContext(ctx, &found, query, parentID, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check parent child enrollment: %w", err)
	}
	return true, nil
}
