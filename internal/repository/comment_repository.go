package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutorboard-api/internal/models"
)

const commentDetailColumns = `pc.id, pc.author_id, pc.target_id, pc.student_id, pc.context_type, pc.context_id,
        pc.content, pc.image_url, pc.created_at,
        a.username AS author_username, a.role AS author_role, a.avatar_url AS author_avatar_url,
        t.username AS target_username, t.role AS target_role`

// CommentRepository persists private comments.
type CommentRepository struct {
	db *sqlx.DB
}

// NewCommentRepository constructs the repository.
func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts the comment and returns it joined with its author and target
// in the same statement.
func (r *CommentRepository) Create(ctx context.Context, comment *models.PrivateComment) (*models.PrivateCommentDetail, error) {
	query := `WITH pc AS (
        INSERT INTO private_comments (id, author_id, target_id, student_id, context_type, context_id, content, image_url, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, author_id, target_id, student_id, context_type, context_id, content, image_url, created_at
        )
        SELECT ` + commentDetailColumns + `
        FROM pc
        JOIN users a ON a.id = pc.author_id
        JOIN users t ON t.id = pc.target_id`
	var detail models.PrivateCommentDetail
	if err := r.db.GetContext(ctx, &detail, query,
		comment.ID, comment.AuthorID, comment.TargetID, comment.StudentID,
		comment.ContextType, comment.ContextID, comment.Content, comment.ImageURL, comment.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("create private comment: %w", err)
	}
	return &detail, nil
}

// ListThread returns comments about the student where the user is author or target, oldest first.
func (r *CommentRepository) ListThread(ctx context.Context, studentID, userID string) ([]models.PrivateCommentDetail, error) {
	query := `SELECT ` + commentDetailColumns + `
        FROM private_comments pc
        JOIN users a ON a.id = pc.author_id
        JOIN users t ON t.id = pc.target_id
        WHERE pc.student_id = $1 AND (pc.author_id = $2 OR pc.target_id = $2)
        ORDER BY pc.created_at ASC, pc.id ASC`
	var comments []models.PrivateCommentDetail
	if err := r.db.SelectContext(ctx, &comments, query, studentID, userID); err != nil {
		return nil, fmt.Errorf("list private comments: %w", err)
	}
	return comments, nil
}
