package handler

import "github.com/gin-gonic/gin"

// TutorRoutes groups the handlers mounted under the tutor prefix.
type TutorRoutes struct {
	Dashboard *DashboardHandler
	Children  *ChildHandler
	Comments  *CommentHandler
}

// Register mounts the tutor endpoints behind the identity middleware.
func (r TutorRoutes) Register(api gin.IRouter, identity gin.HandlerFunc) {
	tutor := api.Group("/tutor", identity)
	tutor.GET("/dashboard", r.Dashboard.Parent)

	children := tutor.Group("/children/:childId")
	children.GET("/timeline", r.Children.Timeline)
	children.GET("/test-trend", r.Children.TestTrend)
	children.GET("/class-records", r.Children.ClassRecords)
	children.GET("/class-records/export", r.Children.ExportClassRecords)

	tutor.POST("/comments", r.Comments.Create)
	tutor.GET("/comments/:studentId", r.Comments.List)
}

// RegisterOps mounts liveness, readiness and metrics endpoints.
func (h *MetricsHandler) RegisterOps(r gin.IRouter, exposeMetrics bool) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	if exposeMetrics {
		r.GET("/metrics", h.Prometheus)
	}
}
