package models

// Subject is a course keyed by an externally assigned, immutable course id.
type Subject struct {
	CourseID    string `db:"course_id" json:"course_id"`
	CourseName  string `db:"course_name" json:"course_name"`
	TeacherName string `db:"teacher_name" json:"teacher_name"`
}
