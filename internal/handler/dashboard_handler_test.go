package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutorboard-api/internal/dto"
	"github.com/noah-isme/tutorboard-api/internal/middleware"
	"github.com/noah-isme/tutorboard-api/internal/models"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
)

type fakeDashboardSrv struct {
	resp      *dto.ParentDashboardResponse
	err       error
	lastHubID string
}

func (f *fakeDashboardSrv) Parent(_ context.Context, hubID string) (*dto.ParentDashboardResponse, error) {
	f.lastHubID = hubID
	return f.resp, f.err
}

type responseEnvelope struct {
	Data  json.RawMessage        `json:"data"`
	Error *appErrors.Error       `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func withHubID(c *gin.Context, hubID string) {
	c.Set(middleware.ContextClaimsKey, &models.HubClaims{RegisteredClaims: jwt.RegisteredClaims{ID: hubID}})
}

func TestDashboardHandlerRequiresIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(&fakeDashboardSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/tutor/dashboard", nil)

	handler.Parent(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDashboardHandlerSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeDashboardSrv{resp: &dto.ParentDashboardResponse{Children: []dto.DashboardChild{{
		Student:            dto.ChildProfile{ID: "child-1", Username: "minji"},
		Classes:            []dto.DashboardClass{},
		TodayAttendance:    []dto.TodayAttendance{},
		PendingAssignments: 3,
	}}}}
	handler := NewDashboardHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/tutor/dashboard", nil)
	withHubID(c, "42")

	handler.Parent(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", srv.lastHubID)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var data dto.ParentDashboardResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &data))
	require.Len(t, data.Children, 1)
	assert.Equal(t, "minji", data.Children[0].Student.Username)
	assert.Equal(t, 3, data.Children[0].PendingAssignments)
}

func TestDashboardHandlerMapsErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := map[string]struct {
		err    error
		status int
		code   string
	}{
		"invalid identity": {appErrors.ErrInvalidIdentity, http.StatusUnauthorized, "INVALID_IDENTITY"},
		"store failure":    {appErrors.Store(errors.New("conn refused"), "failed to load enrollments"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			handler := NewDashboardHandler(&fakeDashboardSrv{err: tc.err})
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/tutor/dashboard", nil)
			withHubID(c, "abc")

			handler.Parent(c)

			assert.Equal(t, tc.status, rec.Code)
			envelope := decodeEnvelope(t, rec)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tc.code, envelope.Error.Code)
		})
	}
}
