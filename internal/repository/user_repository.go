package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutorboard-api/internal/models"
)

const userColumns = `id, hub_user_id, username, email, role, avatar_url, created_at`

// UserRepository provides database access for local users.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// UpsertParentByHubID inserts the parent row for a hub user, or returns the
// existing one when the hub id is already mapped. The conflict branch rewrites
// hub_user_id with itself so RETURNING yields the stored row.
func (r *UserRepository) UpsertParentByHubID(ctx context.Context, user *models.User) (*models.User, error) {
	query := `INSERT INTO users (id, hub_user_id, username, email, role, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (hub_user_id) DO UPDATE SET hub_user_id = EXCLUDED.hub_user_id
        RETURNING ` + userColumns
	var stored models.User
	if err := r.db.GetContext(ctx, &stored, query,
		user.ID, user.HubUserID, user.Username, user.Email, user.Role, user.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("upsert parent user: %w", err)
	}
	return &stored, nil
}
