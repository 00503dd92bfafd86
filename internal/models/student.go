package models

// DefaultMajor is assigned to every newly registered student.
const DefaultMajor = "IT"

// Student is a row of the students table. StdClassID is the class/cohort code supplied at
// registration as "studentId"; StudentID is the generated key.
type Student struct {
	StudentID  int64  `db:"student_id" json:"student_id"`
	StdClassID string `db:"std_class_id" json:"std_class_id"`
	FullName   string `db:"fullname" json:"fullname"`
	Username   string `db:"username" json:"username"`
	Password   string `db:"password" json:"-"`
	Major      string `db:"major" json:"major"`
}

// StudentProfile is the password-free projection returned by student reads.
type StudentProfile struct {
	StudentID  int64  `db:"student_id" json:"student_id"`
	FullName   string `db:"fullname" json:"fullname"`
	StdClassID string `db:"std_class_id" json:"std_class_id"`
	Username   string `db:"username" json:"username"`
	Major      string `db:"major" json:"major"`
}

// StudentPatch carries a coalesce update; nil fields keep their stored value.
type StudentPatch struct {
	FullName *string
	Major    *string
}

// StudentNameMajor is the row returned by a coalesce update.
type StudentNameMajor struct {
	FullName string `db:"fullname" json:"fullname"`
	Major    string `db:"major" json:"major"`
}
