package dto

import (
	"time"

	"github.com/noah-isme/tutorboard-api/internal/models"
)

// ParentDashboardResponse is the landing payload for a parent.
type ParentDashboardResponse struct {
	Children []DashboardChild `json:"children"`
}

// DashboardChild groups everything the dashboard shows for one child.
type DashboardChild struct {
	Student            ChildProfile      `json:"student"`
	Classes            []DashboardClass  `json:"classes"`
	TodayAttendance    []TodayAttendance `json:"todayAttendance"`
	PendingAssignments int               `json:"pendingAssignments"`
}

// ChildProfile identifies a child.
type ChildProfile struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatarUrl"`
}

// DashboardClass describes a class the child is enrolled in.
type DashboardClass struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Subject         string         `json:"subject"`
	Teacher         TeacherSummary `json:"teacher"`
	EnrollmentCount int            `json:"enrollmentCount"`
}

// TeacherSummary is the public view of a class teacher.
type TeacherSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// TodayAttendance is an attendance row recorded today.
type TodayAttendance struct {
	ID        string                  `json:"id"`
	ClassID   string                  `json:"classId"`
	ClassName string                  `json:"className"`
	Date      time.Time               `json:"date"`
	Status    models.AttendanceStatus `json:"status"`
}
