package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/tutorboard-api/internal/models"
)

const testResultSelect = `SELECT tr.id, tr.test_id, tr.score, tr.feedback, tr.taken_at,
        t.title AS test_title, t.max_score, t.test_date, lp.class_id, c.name AS class_name
        FROM test_results tr
        JOIN tests t ON t.id = tr.test_id
        JOIN lesson_plans lp ON lp.id = t.lesson_plan_id
        JOIN classes c ON c.id = lp.class_id`

// TestRepository reads tests and the results students obtained in them.
type TestRepository struct {
	db *sqlx.DB
}

// NewTestRepository constructs the repository.
func NewTestRepository(db *sqlx.DB) *TestRepository {
	return &TestRepository{db: db}
}

// ListRecentResults returns up to limit results of the student in the given classes, most recently taken first.
func (r *TestRepository) ListRecentResults(ctx context.Context, studentID string, classIDs []string, limit int) ([]models.TestResultDetail, error) {
	if len(classIDs) == 0 {
		return []models.TestResultDetail{}, nil
	}
	query := testResultSelect + `
        WHERE tr.student_id = $1 AND lp.class_id = ANY($2)
        ORDER BY tr.taken_at DESC
        LIMIT $3`
	var results []models.TestResultDetail
	if err := r.db.SelectContext(ctx, &results, query, studentID, pq.Array(classIDs), limit); err != nil {
		return nil, fmt.Errorf("list recent test results: %w", err)
	}
	return results, nil
}

// ListTrend returns up to limit results of the student, oldest first,
// optionally restricted to a single class.
func (r *TestRepository) ListTrend(ctx context.Context, studentID, classID string, limit int) ([]models.TestResultDetail, error) {
	conditions := []string{"tr.student_id = $1"}
	args := []interface{}{studentID}
	if classID != "" {
		conditions = append(conditions, fmt.Sprintf("lp.class_id = $%d", len(args)+1))
		args = append(args, classID)
	}
	args = append(args, limit)

	query := fmt.Sprintf(`%s
        WHERE %s
        ORDER BY tr.taken_at ASC
        LIMIT $%d`, testResultSelect, strings.Join(conditions, " AND "), len(args))
	var results []models.TestResultDetail
	if err := r.db.SelectContext(ctx, &results, query, args...); err != nil {
		return nil, fmt.Errorf("list test trend: %w", err)
	}
	return results, nil
}

// ListWithResultByClass returns every test of the class with the student's result, if any.
func (r *TestRepository) ListWithResultByClass(ctx context.Context, classID, studentID string) ([]models.TestWithResult, error) {
	const query = `SELECT t.id, t.lesson_plan_id, t.title, t.max_score, t.test_date,
        tr.score, tr.feedback, tr.taken_at
        FROM tests t
        JOIN lesson_plans lp ON lp.id = t.lesson_plan_id
        LEFT JOIN test_results tr ON tr.test_id = t.id AND tr.student_id = $2
        WHERE lp.class_id = $1
        ORDER BY t.created_at ASC, t.id ASC`
	var tests []models.TestWithResult
	if err := r.db.SelectContext(ctx, &tests, query, classID, studentID); err != nil {
		return nil, fmt.Errorf("list class tests: %w", err)
	}
	return tests, nil
}
