package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/tutorboard-api/internal/models"
)

// AssignmentRepository reads assignments and student submissions.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs the repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// ListRecentWithSubmission returns up to limit assignments of the given classes,
// newest first, each with the student's submission when present.
func (r *AssignmentRepository) ListRecentWithSubmission(ctx context.Context, studentID string, classIDs []string, limit int) ([]models.AssignmentWithSubmission, error) {
	if len(classIDs) == 0 {
		return []models.AssignmentWithSubmission{}, nil
	}
	const query = `SELECT a.id, a.lesson_plan_id, a.title, a.due_date, a.created_at,
        lp.class_id, c.name AS class_name,
        s.status AS submission_status, s.grade, s.submitted_at
        FROM assignments a
        JOIN lesson_plans lp ON lp.id = a.lesson_plan_id
        JOIN classes c ON c.id = lp.class_id
        LEFT JOIN assignment_submissions s ON s.assignment_id = a.id AND s.student_id = $1
        WHERE lp.class_id = ANY($2)
        ORDER BY a.created_at DESC
        LIMIT $3`
	var assignments []models.AssignmentWithSubmission
	if err := r.db.SelectContext(ctx, &assignments, query, studentID, pq.Array(classIDs), limit); err != nil {
		return nil, fmt.Errorf("list recent assignments: %w", err)
	}
	return assignments, nil
}

// ListWithSubmissionByClass returns every assignment of a class with the student's submission.
func (r *AssignmentRepository) ListWithSubmissionByClass(ctx context.Context, classID, studentID string) ([]models.AssignmentWithSubmission, error) {
	const query = `SELECT a.id, a.lesson_plan_id, a.title, a.due_date, a.created_at,
        lp.class_id, c.name AS class_name,
        s.status AS submission_status, s.grade, s.submitted_at
        FROM assignments a
        JOIN lesson_plans lp ON lp.id = a.lesson_plan_id
        JOIN classes c ON c.id = lp.class_id
        LEFT JOIN assignment_submissions s ON s.assignment_id = a.id AND s.student_id = $2
        WHERE lp.class_id = $1
        ORDER BY a.created_at ASC, a.id ASC`
	var assignments []models.AssignmentWithSubmission
	if err := r.db.SelectContext(ctx, &assignments, query, classID, studentID); err != nil {
		return nil, fmt.Errorf("list class assignments: %w", err)
	}
	return assignments, nil
}

// CountPendingByStudent counts the student's pending submissions across every class.
func (r *AssignmentRepository) CountPendingByStudent(ctx context.Context, studentID string) (int, error) {
	const query = `SELECT COUNT(*) FROM assignment_submissions WHERE student_id = $1 AND status = $2`
	var total int
	if err := r.db.GetContext(ctx, &total, query, studentID, string(models.SubmissionPending)); err != nil {
		return 0, fmt.Errorf("count pending submissions: %w", err)
	}
	return total, nil
}
