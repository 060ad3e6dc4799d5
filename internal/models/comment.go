package models

import "time"

// PrivateComment is a message between a parent and a teacher about a student.
type PrivateComment struct {
	ID          string    `db:"id"`
	AuthorID    string    `db:"author_id"`
	TargetID    string    `db:"target_id"`
	StudentID   *string   `db:"student_id"`
	ContextType *string   `db:"context_type"`
	ContextID   *string   `db:"context_id"`
	Content     string    `db:"content"`
	ImageURL    *string   `db:"image_url"`
	CreatedAt   time.Time `db:"created_at"`
}

// PrivateCommentDetail joins a comment with its author and target users.
type PrivateCommentDetail struct {
	PrivateComment
	AuthorUsername  string   `db:"author_username"`
	AuthorRole      UserRole `db:"author_role"`
	AuthorAvatarURL *string  `db:"author_avatar_url"`
	TargetUsername  string   `db:"target_username"`
	TargetRole      UserRole `db:"target_role"`
}
