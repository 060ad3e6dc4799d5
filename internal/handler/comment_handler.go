package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutorboard-api/internal/dto"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
	"github.com/noah-isme/tutorboard-api/pkg/response"
)

type commentService interface {
	Post(ctx context.Context, hubID string, req dto.CreateCommentRequest) (*dto.CommentResponse, error)
	List(ctx context.Context, hubID, studentID string) ([]dto.CommentResponse, error)
}

// CommentHandler exposes private parent-teacher comments.
type CommentHandler struct {
	service commentService
}

// NewCommentHandler constructs the handler.
func NewCommentHandler(service commentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// Create godoc
// @Summary Post a private comment
// @Tags Tutor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateCommentRequest true "Comment"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /tutor/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	hubID, err := hubIDFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid comment payload"))
		return
	}
	comment, err := h.service.Post(c.Request.Context(), hubID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, comment)
}

// List godoc
// @Summary List private comments about a student
// @Description Comments the caller wrote or received about the student, oldest first
// @Tags Tutor
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /tutor/comments/{studentId} [get]
func (h *CommentHandler) List(c *gin.Context) {
	hubID, err := hubIDFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	comments, err := h.service.List(c.Request.Context(), hubID, c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, comments)
}
