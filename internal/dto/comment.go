package dto

import (
	"time"

	"github.com/noah-isme/tutorboard-api/internal/models"
)

// CreateCommentRequest is the payload for posting a private comment.
type CreateCommentRequest struct {
	TargetID    string  `json:"targetId" validate:"required,uuid"`
	StudentID   *string `json:"studentId" validate:"omitempty,uuid"`
	ContextType *string `json:"contextType" validate:"omitempty,max=50"`
	ContextID   *string `json:"contextId" validate:"omitempty,max=100"`
	Content     string  `json:"content" validate:"required,max=4000"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url,max=2048"`
}

// CommentParty is a participant of a private comment.
type CommentParty struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	Role      models.UserRole `json:"role"`
	AvatarURL *string         `json:"avatarUrl,omitempty"`
}

// CommentResponse is a private comment with its participants.
type CommentResponse struct {
	ID          string       `json:"id"`
	StudentID   *string      `json:"studentId"`
	ContextType *string      `json:"contextType"`
	ContextID   *string      `json:"contextId"`
	Content     string       `json:"content"`
	ImageURL    *string      `json:"imageUrl"`
	CreatedAt   time.Time    `json:"createdAt"`
	Author      CommentParty `json:"author"`
	Target      CommentParty `json:"target"`
}
