package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutorboard-api/internal/dto"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
	"github.com/noah-isme/tutorboard-api/pkg/response"
)

type dashboardService interface {
	Parent(ctx context.Context, hubID string) (*dto.ParentDashboardResponse, error)
}

// DashboardHandler wires the parent dashboard to HTTP.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Parent godoc
// @Summary Parent dashboard
// @Description Children of the caller with their classes, today's attendance and pending assignment counts
// @Tags Tutor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /tutor/dashboard [get]
func (h *DashboardHandler) Parent(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	hubID, err := hubIDFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	dashboard, err := h.service.Parent(c.Request.Context(), hubID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dashboard)
}
