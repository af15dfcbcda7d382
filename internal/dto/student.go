package dto

import "time"

// ── student lookup DTOs ──

// ClassBrief the class a student is enrolled in.
type ClassBrief struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// AttendanceItem one recent check-in of a student.
type AttendanceItem struct {
	ID           string     `json:"id"`
	Status       string     `json:"status"`
	CheckedInAt  *time.Time `json:"checked_in_at"`
	ClassName    string     `json:"class_name"`
	SubjectName  string     `json:"subject_name"`
	MeetingStart *time.Time `json:"meeting_start,omitempty"`
}

// StudentLookupResponse profile plus, for students, class and attendance.
type StudentLookupResponse struct {
	Profile    ProfileResponse  `json:"profile"`
	Class      *ClassBrief      `json:"class"`
	Attendance []AttendanceItem `json:"attendance"`
}

// UpdateStudentRequest personal fields; empty strings clear the column.
// Role is deliberately absent.
type UpdateStudentRequest struct {
	FullName   string `json:"full_name"`
	Birthplace string `json:"birthplace"`
	Phone      string `json:"phone"`
	BirthDate  string `json:"birth_date"` // yyyy-mm-dd
}
