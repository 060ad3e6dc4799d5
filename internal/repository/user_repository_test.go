package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutorboard-api/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

var userRowColumns = []string{"id", "hub_user_id", "username", "email", "role", "avatar_url", "created_at"}

func TestUserRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(userRowColumns).
		AddRow("teacher-1", nil, "ms_kim", "kim@example.com", string(models.RoleTeacher), "https://cdn.example.com/kim.png", now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, hub_user_id, username, email, role, avatar_url, created_at FROM users WHERE id = $1 LIMIT 1")).
		WithArgs("teacher-1").
		WillReturnRows(rows)

	user, err := repo.FindByID(context.Background(), "teacher-1")
	require.NoError(t, err)
	assert.Equal(t, "ms_kim", user.Username)
	assert.Equal(t, models.RoleTeacher, user.Role)
	assert.Nil(t, user.HubUserID)
	require.NotNil(t, user.AvatarURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("FROM users WHERE id = \\$1").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryUpsertParentByHubID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	hubID := int64(4201)
	now := time.Now()
	candidate := &models.User{
		ID:        "new-id",
		HubUserID: &hubID,
		Username:  "parent_4201",
		Email:     "parent_4201@tutorboard.local",
		Role:      models.RoleParent,
		CreatedAt: now,
	}

	// The conflict branch hands back the row created by an earlier call.
	rows := sqlmock.NewRows(userRowColumns).
		AddRow("existing-id", hubID, "parent_4201", "parent_4201@tutorboard.local", string(models.RoleParent), nil, now.Add(-time.Hour))
	mock.ExpectQuery("INSERT INTO users .* ON CONFLICT \\(hub_user_id\\) DO UPDATE SET hub_user_id = EXCLUDED.hub_user_id\\s+RETURNING id, hub_user_id").
		WithArgs("new-id", hubID, "parent_4201", "parent_4201@tutorboard.local", string(models.RoleParent), now).
		WillReturnRows(rows)

	user, err := repo.UpsertParentByHubID(context.Background(), candidate)
	require.NoError(t, err)
	assert.Equal(t, "existing-id", user.ID)
	require.NotNil(t, user.HubUserID)
	assert.Equal(t, hubID, *user.HubUserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryUpsertParentByHubIDError(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	hubID := int64(7)
	mock.ExpectQuery("INSERT INTO users").WillReturnError(errors.New("connection reset"))

	_, err := repo.UpsertParentByHubID(context.Background(), &models.User{ID: "x", HubUserID: &hubID, Role: models.RoleParent})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert parent user")
	assert.NoError(t, mock.ExpectationsWereMet())
}
