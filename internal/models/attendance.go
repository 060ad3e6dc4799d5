package models

import "time"

// AttendanceStatus enumerates per-lesson presence values.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// Attendance is a single attendance row for a student in a class.
type Attendance struct {
	ID        string           `db:"id"`
	ClassID   string           `db:"class_id"`
	StudentID string           `db:"student_id"`
	Date      time.Time        `db:"date"`
	Status    AttendanceStatus `db:"status"`
}

// AttendanceWithClass adds the class name for dashboard display.
type AttendanceWithClass struct {
	Attendance
	ClassName string `db:"class_name"`
}
