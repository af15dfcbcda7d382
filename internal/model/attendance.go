package model

import "time"

// Attendance is one check-in record, table diemdanh. Read-only here; the
// status is computed by the backend.
type Attendance struct {
	ID          string     `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	StudentID   string     `gorm:"column:sinh_vien_id;type:uuid"  json:"student_id"`
	MeetingID   string     `gorm:"column:buoihoc_id;type:uuid"    json:"meeting_id"`
	Status      string     `gorm:"column:trang_thai"              json:"status"`
	CheckedInAt *time.Time `gorm:"column:checkin_luc"             json:"checked_in_at"`

	Meeting *Meeting `gorm:"foreignKey:MeetingID;references:ID" json:"meeting,omitempty"`
}

// TableName maps Attendance to diemdanh.
func (Attendance) TableName() string { return "diemdanh" }
