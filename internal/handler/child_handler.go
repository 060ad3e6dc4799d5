package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutorboard-api/internal/dto"
	"github.com/noah-isme/tutorboard-api/internal/service"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
	"github.com/noah-isme/tutorboard-api/pkg/response"
)

type timelineService interface {
	Child(ctx context.Context, hubID, childID, classID string) ([]dto.TimelineEntry, error)
}

type testTrendService interface {
	Child(ctx context.Context, hubID, childID, classID string) ([]dto.TestTrendEntry, error)
}

type classRecordService interface {
	Child(ctx context.Context, hubID, childID, classID string) ([]dto.ClassRecordGroup, error)
}

type classRecordExporter interface {
	Export(ctx context.Context, hubID, childID, classID, format string) (*service.ExportedFile, error)
}

// ChildHandler serves the child-scoped views of the tutor API.
type ChildHandler struct {
	timeline timelineService
	trend    testTrendService
	records  classRecordService
	exporter classRecordExporter
}

// ChildHandlerParams groups the child-scoped services.
type ChildHandlerParams struct {
	Timeline timelineService
	Trend    testTrendService
	Records  classRecordService
	Exporter classRecordExporter
}

// NewChildHandler constructs the handler. A nil Exporter disables downloads.
func NewChildHandler(params ChildHandlerParams) *ChildHandler {
	return &ChildHandler{
		timeline: params.Timeline,
		trend:    params.Trend,
		records:  params.Records,
		exporter: params.Exporter,
	}
}

// Timeline godoc
// @Summary Child activity timeline
// @Description Lessons, test results and assignments of one child, newest first
// @Tags Tutor
// @Produce json
// @Security BearerAuth
// @Param childId path string true "Child ID"
// @Param classId query string false "Restrict to one class"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /tutor/children/{childId}/timeline [get]
func (h *ChildHandler) Timeline(c *gin.Context) {
	hubID, err := hubIDFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	entries, err := h.timeline.Child(c.Request.Context(), hubID, c.Param("childId"), trimmedQuery(c, "classId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entries)
}

// TestTrend godoc
// @Summary Child test score trend
// @Description Most recent test results of one child, oldest first
// @Tags Tutor
// @Produce json
// @Security BearerAuth
// @Param childId path string true "Child ID"
// @Param classId query string false "Restrict to one class"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /tutor/children/{childId}/test-trend [get]
func (h *ChildHandler) TestTrend(c *gin.Context) {
	hubID, err := hubIDFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	trend, err := h.trend.Child(c.Request.Context(), hubID, c.Param("childId"), trimmedQuery(c, "classId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, trend)
}

// ClassRecords godoc
// @Summary Child class records
// @Description Lesson-by-lesson records per enrolled class with attendance, assignments and tests
// @Tags Tutor
// @Produce json
// @Security BearerAuth
// @Param childId path string true "Child ID"
// @Param classId query string false "Restrict to one class"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /tutor/children/{childId}/class-records [get]
func (h *ChildHandler) ClassRecords(c *gin.Context) {
	hubID, err := hubIDFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	groups, err := h.records.Child(c.Request.Context(), hubID, c.Param("childId"), trimmedQuery(c, "classId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, groups)
}

// ExportClassRecords godoc
// @Summary Download child class records
// @Tags Tutor
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param childId path string true "Child ID"
// @Param classId query string false "Restrict to one class"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /tutor/children/{childId}/class-records/export [get]
func (h *ChildHandler) ExportClassRecords(c *gin.Context) {
	if h.exporter == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports are disabled"))
		return
	}
	hubID, err := hubIDFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exporter.Export(c.Request.Context(), hubID, c.Param("childId"), trimmedQuery(c, "classId"), trimmedQuery(c, "format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
