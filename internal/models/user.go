package models

import "time"

// UserRole enumerates the roles a local user can hold.
type UserRole string

const (
	RoleParent  UserRole = "parent"
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
	RoleOther   UserRole = "other"
)

// User represents a row in the users table.
type User struct {
	ID        string    `db:"id" json:"id"`
	HubUserID *int64    `db:"hub_user_id" json:"hubUserId,omitempty"`
	Username  string    `db:"username" json:"username"`
	Email     string    `db:"email" json:"email"`
	Role      UserRole  `db:"role" json:"role"`
	AvatarURL *string   `db:"avatar_url" json:"avatarUrl,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
