package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testResultRowColumns = []string{"id", "test_id", "score", "feedback", "taken_at", "test_title", "max_score", "test_date", "class_id", "class_name"}

func TestTestRepositoryListRecentResults(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTestRepository(db)

	taken := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(testResultRowColumns).
		AddRow("res-1", "test-1", 17.0, "Good effort", taken, "Quiz 1", 60.0, nil, "class-1", "Math A")
	mock.ExpectQuery("WHERE tr.student_id = \\$1 AND lp.class_id = ANY\\(\\$2\\)\\s+ORDER BY tr.taken_at DESC\\s+LIMIT \\$3").
		WithArgs("stu-1", pq.Array([]string{"class-1"}), 20).
		WillReturnRows(rows)

	results, err := repo.ListRecentResults(context.Background(), "stu-1", []string{"class-1"}, 20)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 60.0, results[0].MaxScore)
	assert.Equal(t, taken, results[0].Date())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTestRepositoryListTrend(t *testing.T) {
	t.Run("all classes", func(t *testing.T) {
		db, mock, cleanup := newMock(t)
		defer cleanup()

		mock.ExpectQuery("WHERE tr.student_id = \\$1\\s+ORDER BY tr.taken_at ASC\\s+LIMIT \\$2").
			WithArgs("stu-1", 20).
			WillReturnRows(sqlmock.NewRows(testResultRowColumns))

		results, err := NewTestRepository(db).ListTrend(context.Background(), "stu-1", "", 20)
		require.NoError(t, err)
		assert.Empty(t, results)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("single class", func(t *testing.T) {
		db, mock, cleanup := newMock(t)
		defer cleanup()

		scheduled := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		rows := sqlmock.NewRows(testResultRowColumns).
			AddRow("res-1", "test-1", 85.0, nil, scheduled.Add(48*time.Hour), "Unit test", 100.0, scheduled, "class-1", "Math A")
		mock.ExpectQuery("WHERE tr.student_id = \\$1 AND lp.class_id = \\$2\\s+ORDER BY tr.taken_at ASC\\s+LIMIT \\$3").
			WithArgs("stu-1", "class-1", 20).
			WillReturnRows(rows)

		results, err := NewTestRepository(db).ListTrend(context.Background(), "stu-1", "class-1", 20)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, scheduled, results[0].Date())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTestRepositoryListWithResultByClass(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTestRepository(db)

	rows := sqlmock.NewRows([]string{"id", "lesson_plan_id", "title", "max_score", "test_date", "score", "feedback", "taken_at"}).
		AddRow("test-1", "plan-1", "Quiz 1", 100.0, nil, 92.0, "Great", time.Now()).
		AddRow("test-2", "plan-1", "Quiz 2", 50.0, nil, nil, nil, nil)
	mock.ExpectQuery("LEFT JOIN test_results tr ON tr.test_id = t.id AND tr.student_id = \\$2\\s+WHERE lp.class_id = \\$1").
		WithArgs("class-1", "stu-1").
		WillReturnRows(rows)

	tests, err := repo.ListWithResultByClass(context.Background(), "class-1", "stu-1")
	require.NoError(t, err)
	require.Len(t, tests, 2)
	require.NotNil(t, tests[0].Score)
	assert.Equal(t, 92.0, *tests[0].Score)
	assert.Nil(t, tests[1].Score)
	assert.NoError(t, mock.ExpectationsWereMet())
}
