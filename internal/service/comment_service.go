package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/tutorboard-api/internal/dto"
	"github.com/noah-isme/tutorboard-api/internal/models"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
)

type commentTargetFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type commentStore interface {
	Create(ctx context.Context, comment *models.PrivateComment) (*models.PrivateCommentDetail, error)
	ListThread(ctx context.Context, studentID, userID string) ([]models.PrivateCommentDetail, error)
}

// CommentService handles private comments between parents and teachers.
type CommentService struct {
	parents   parentResolver
	users     commentTargetFinder
	comments  commentStore
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

// CommentServiceParams groups constructor dependencies.
type CommentServiceParams struct {
	Parents   parentResolver
	Users     commentTargetFinder
	Comments  commentStore
	Validator *validator.Validate
	Metrics   *MetricsService
	Logger    *zap.Logger
}

// NewCommentService constructs a CommentService.
func NewCommentService(params CommentServiceParams) *CommentService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	v := params.Validator
	if v == nil {
		v = validator.New()
	}
	return &CommentService{
		parents:   params.Parents,
		users:     params.Users,
		comments:  params.Comments,
		validator: v,
		metrics:   params.Metrics,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Post stores a comment authored by the caller. The insert is attempted once.
func (s *CommentService) Post(ctx context.Context, hubID string, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	req = normaliseCommentRequest(req)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid comment payload")
	}

	author, err := s.parents.Resolve(ctx, hubID)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.FindByID(ctx, req.TargetID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "comment target not found")
		}
		return nil, appErrors.Store(err, "failed to load comment target")
	}

	start := time.Now()
	detail, err := s.comments.Create(ctx, &models.PrivateComment{
		ID:          s.newID(),
		AuthorID:    author.ID,
		TargetID:    req.TargetID,
		StudentID:   req.StudentID,
		ContextType: req.ContextType,
		ContextID:   req.ContextID,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		CreatedAt:   s.now().UTC(),
	})
	s.metrics.ObserveDBQuery("private_comments.create", time.Since(start))
	if err != nil {
		return nil, appErrors.Store(err, "failed to create comment")
	}

	s.logger.Info("private comment posted",
		zap.String("comment_id", detail.ID),
		zap.String("author_id", author.ID),
		zap.String("target_id", detail.TargetID),
	)
	resp := toCommentResponse(*detail)
	return &resp, nil
}

// List returns the caller's thread about a student, oldest first.
func (s *CommentService) List(ctx context.Context, hubID, studentID string) ([]dto.CommentResponse, error) {
	user, err := s.parents.Resolve(ctx, hubID)
	if err != nil {
		return nil, err
	}
	if err := requireID("studentId", studentID); err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := s.comments.ListThread(ctx, studentID, user.ID)
	s.metrics.ObserveDBQuery("private_comments.list_thread", time.Since(start))
	if err != nil {
		return nil, appErrors.Store(err, "failed to load comments")
	}

	out := make([]dto.CommentResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toCommentResponse(row))
	}
	return out, nil
}

func normaliseCommentRequest(req dto.CreateCommentRequest) dto.CreateCommentRequest {
	req.TargetID = strings.TrimSpace(req.TargetID)
	req.Content = strings.TrimSpace(req.Content)
	req.StudentID = trimmedOrNil(req.StudentID)
	req.ContextType = trimmedOrNil(req.ContextType)
	req.ContextID = trimmedOrNil(req.ContextID)
	req.ImageURL = trimmedOrNil(req.ImageURL)
	return req
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func toCommentResponse(row models.PrivateCommentDetail) dto.CommentResponse {
	return dto.CommentResponse{
		ID:          row.ID,
		StudentID:   row.StudentID,
		ContextType: row.ContextType,
		ContextID:   row.ContextID,
		Content:     row.Content,
		ImageURL:    row.ImageURL,
		CreatedAt:   row.CreatedAt,
		Author: dto.CommentParty{
			ID:        row.AuthorID,
			Username:  row.AuthorUsername,
			Role:      row.AuthorRole,
			AvatarURL: row.AuthorAvatarURL,
		},
		Target: dto.CommentParty{
			ID:       row.TargetID,
			Username: row.TargetUsername,
			Role:     row.TargetRole,
		},
	}
}
