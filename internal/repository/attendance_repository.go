package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutorboard-api/internal/models"
)

// AttendanceRepository reads attendance rows.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// ListByStudentBetween returns the student's attendance in [from, to) across all classes.
func (r *AttendanceRepository) ListByStudentBetween(ctx context.Context, studentID string, from, to time.Time) ([]models.AttendanceWithClass, error) {
	const query = `SELECT a.id, a.class_id, a.student_id, a.date, a.status, c.name AS class_name
        FROM attendances a
        JOIN classes c ON c.id = a.class_id
        WHERE a.student_id = $1 AND a.date >= $2 AND a.date < $3
        ORDER BY a.date ASC, a.id ASC`
	var rows []models.AttendanceWithClass
	if err := r.db.SelectContext(ctx, &rows, query, studentID, from, to); err != nil {
		return nil, fmt.Errorf("list student attendance: %w", err)
	}
	return rows, nil
}

// ListByClassAndStudent returns every attendance row of the student in a class, newest first.
func (r *AttendanceRepository) ListByClassAndStudent(ctx context.Context, classID, studentID string) ([]models.Attendance, error) {
	const query = `SELECT id, class_id, student_id, date, status
        FROM attendances
        WHERE class_id = $1 AND student_id = $2
        ORDER BY date DESC`
	var rows []models.Attendance
	if err := r.db.SelectContext(ctx, &rows, query, classID, studentID); err != nil {
		return nil, fmt.Errorf("list class attendance: %w", err)
	}
	return rows, nil
}
