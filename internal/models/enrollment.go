package models

// EnrollmentDetail is a parent enrollment joined with its student, class and teacher.
type EnrollmentDetail struct {
	ID                   string  `db:"id"`
	StudentID            string  `db:"student_id"`
	StudentUsername      string  `db:"student_username"`
	StudentAvatarURL     *string `db:"student_avatar_url"`
	ClassID              string  `db:"class_id"`
	ClassName            string  `db:"class_name"`
	ClassSubject         string  `db:"class_subject"`
	TeacherID            string  `db:"teacher_id"`
	TeacherUsername      string  `db:"teacher_username"`
	ClassEnrollmentCount int     `db:"class_enrollment_count"`
}

// EnrolledClass is a class a parent has enrolled a child in.
type EnrolledClass struct {
	ClassID string `db:"class_id"`
	Name    string `db:"class_name"`
	Subject string `db:"class_subject"`
}
