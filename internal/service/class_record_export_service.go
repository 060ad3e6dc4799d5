package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tutorboard-api/internal/dto"
	"github.com/noah-isme/tutorboard-api/pkg/export"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
)

type classRecordSource interface {
	Child(ctx context.Context, hubID, childID, classID string) ([]dto.ClassRecordGroup, error)
}

// SheetRenderer renders a sheet into a downloadable document.
type SheetRenderer interface {
	Render(sheet export.Sheet) ([]byte, error)
	ContentType() string
	Extension() string
}

// ExportedFile is a rendered document ready to be streamed.
type ExportedFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

var classRecordColumns = []export.Column{
	{Key: "class", Label: "Class", Width: 1.2},
	{Key: "date", Label: "Date", Width: 0.9},
	{Key: "lesson", Label: "Lesson", Width: 1.6},
	{Key: "summary", Label: "Summary", Width: 2.2},
	{Key: "pages", Label: "Pages", Width: 0.6},
	{Key: "attendance", Label: "Attendance", Width: 0.8},
	{Key: "assignments", Label: "Assignments", Width: 1.8},
	{Key: "tests", Label: "Tests", Width: 1.8},
}

// ClassRecordExportService renders class records as CSV or PDF sheets.
type ClassRecordExportService struct {
	records   classRecordSource
	renderers map[string]SheetRenderer
	location  *time.Location
	logger    *zap.Logger
	now       func() time.Time
}

// NewClassRecordExportService constructs the service. Renderers are keyed by their extension.
func NewClassRecordExportService(records classRecordSource, location *time.Location, logger *zap.Logger, renderers ...SheetRenderer) *ClassRecordExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	byFormat := make(map[string]SheetRenderer, len(renderers))
	for _, r := range renderers {
		byFormat[r.Extension()] = r
	}
	return &ClassRecordExportService{
		records:   records,
		renderers: byFormat,
		location:  locationOrLocal(location),
		logger:    logger,
		now:       time.Now,
	}
}

// Export renders the child's class records in the requested format.
func (s *ClassRecordExportService) Export(ctx context.Context, hubID, childID, classID, format string) (*ExportedFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	groups, err := s.records.Child(ctx, hubID, childID, classID)
	if err != nil {
		return nil, err
	}

	body, err := renderer.Render(s.buildSheet(groups))
	if err != nil {
		s.logger.Error("class record render failed", zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render class records")
	}

	return &ExportedFile{
		Filename:    fmt.Sprintf("class-records-%s-%s.%s", shortID(childID), s.now().In(s.location).Format("20060102"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}

func (s *ClassRecordExportService) buildSheet(groups []dto.ClassRecordGroup) export.Sheet {
	rows := make([]map[string]string, 0)
	for _, group := range groups {
		for _, record := range group.Records {
			row := map[string]string{
				"class":       group.ClassName,
				"date":        dayKey(record.Date, s.location),
				"lesson":      record.LessonTitle,
				"summary":     deref(record.Summary),
				"pages":       deref(record.Pages),
				"assignments": formatAssignments(record.Assignments),
				"tests":       formatTests(record.Tests),
			}
			if record.Attendance != nil {
				row["attendance"] = string(*record.Attendance)
			}
			rows = append(rows, row)
		}
	}
	return export.Sheet{Title: "Class records", Columns: classRecordColumns, Rows: rows}
}

func formatAssignments(items []dto.ClassRecordAssignment) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		part := fmt.Sprintf("%s (%s", item.Title, item.Status)
		if item.Grade != nil {
			part += ", " + formatScore(*item.Grade)
		}
		parts = append(parts, part+")")
	}
	return strings.Join(parts, "; ")
}

func formatTests(items []dto.ClassRecordTest) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		score := "-"
		if item.Score != nil {
			score = formatScore(*item.Score)
		}
		parts = append(parts, fmt.Sprintf("%s %s/%s", item.Title, score, formatScore(item.MaxScore)))
	}
	return strings.Join(parts, "; ")
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
