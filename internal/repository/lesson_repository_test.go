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

var lessonRowColumns = []string{"id", "lesson_plan_id", "record_date", "summary", "pages_from", "pages_to", "lesson_title", "class_id", "class_name"}

func TestLessonRepositoryListRecentRecords(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewLessonRepository(db)

	rows := sqlmock.NewRows(lessonRowColumns).
		AddRow("rec-1", "plan-1", time.Now(), "Fractions", 12, 15, "Week 3", "class-1", "Math A").
		AddRow("rec-2", "plan-2", time.Now().Add(-24*time.Hour), nil, 4, nil, "Week 2", "class-1", "Math A")
	mock.ExpectQuery("WHERE lp.class_id = ANY\\(\\$1\\)\\s+ORDER BY lr.record_date DESC\\s+LIMIT \\$2").
		WithArgs(pq.Array([]string{"class-1", "class-2"}), 30).
		WillReturnRows(rows)

	records, err := repo.ListRecentRecords(context.Background(), []string{"class-1", "class-2"}, 30)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.NotNil(t, records[0].Pages())
	assert.Equal(t, "12-15", *records[0].Pages())
	assert.Nil(t, records[1].Pages())
	assert.Nil(t, records[1].Summary)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonRepositoryListRecentRecordsWithoutClasses(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()

	records, err := NewLessonRepository(db).ListRecentRecords(context.Background(), nil, 30)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonRepositoryListRecordsByClass(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewLessonRepository(db)

	rows := sqlmock.NewRows(lessonRowColumns).
		AddRow("rec-1", "plan-1", time.Now(), "Fractions", nil, nil, "Week 3", "class-1", "Math A")
	mock.ExpectQuery("WHERE lp.class_id = \\$1\\s+ORDER BY lr.record_date DESC").
		WithArgs("class-1").
		WillReturnRows(rows)

	records, err := repo.ListRecordsByClass(context.Background(), "class-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Week 3", records[0].LessonTitle)
	assert.NoError(t, mock.ExpectationsWereMet())
}
