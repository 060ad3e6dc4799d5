package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollmentRepositoryListDetailsByParent(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "student_id", "class_id", "student_username", "student_avatar_url",
		"class_name", "class_subject", "teacher_id", "teacher_username", "class_enrollment_count",
	}).
		AddRow("enr-1", "stu-1", "class-1", "minji", nil, "Math A", "math", "teacher-1", "ms_kim", 12).
		AddRow("enr-2", "stu-1", "class-2", "minji", nil, "English B", "english", "teacher-2", "mr_lee", 8)
	mock.ExpectQuery("FROM class_enrollments e\\s+JOIN users s ON s.id = e.student_id").
		WithArgs("parent-1").
		WillReturnRows(rows)

	details, err := repo.ListDetailsByParent(context.Background(), "parent-1")
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, "Math A", details[0].ClassName)
	assert.Equal(t, 12, details[0].ClassEnrollmentCount)
	assert.Equal(t, "mr_lee", details[1].TeacherUsername)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryListClassesForChild(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	rows := sqlmock.NewRows([]string{"class_id", "class_name", "class_subject"}).
		AddRow("class-1", "Math A", "math")
	mock.ExpectQuery("WHERE e.parent_id = \\$1 AND e.student_id = \\$2").
		WithArgs("parent-1", "stu-1").
		WillReturnRows(rows)

	classes, err := repo.ListClassesForChild(context.Background(), "parent-1", "stu-1")
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "class-1", classes[0].ClassID)
	assert.Equal(t, "Math A", classes[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryExistsForParentChild(t *testing.T) {
	query := regexp.QuoteMeta("SELECT 1 FROM class_enrollments WHERE parent_id = $1 AND student_id = $2 LIMIT 1")

	t.Run("linked", func(t *testing.T) {
		db, mock, cleanup := newMock(t)
		defer cleanup()
		mock.ExpectQuery(query).WithArgs("parent-1", "stu-1").
			WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

		ok, err := NewEnrollmentRepository(db).ExistsForParentChild(context.Background(), "parent-1", "stu-1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not linked", func(t *testing.T) {
		db, mock, cleanup := newMock(t)
		defer cleanup()
		mock.ExpectQuery(query).WithArgs("parent-1", "stu-9").WillReturnError(sql.ErrNoRows)

		ok, err := NewEnrollmentRepository(db).ExistsForParentChild(context.Background(), "parent-1", "stu-9")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("store failure", func(t *testing.T) {
		db, mock, cleanup := newMock(t)
		defer cleanup()
		mock.ExpectQuery(query).WillReturnError(errors.New("timeout"))

		_, err := NewEnrollmentRepository(db).ExistsForParentChild(context.Background(), "parent-1", "stu-1")
		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
