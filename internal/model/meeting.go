package model

import "time"

// Meeting is one scheduled session of a class, table buoihoc.
// Rows are created only through the create_buoihoc procedure, which also
// opens the attendance window server-side.
type Meeting struct {
	ID                string    `gorm:"column:id;type:uuid;primaryKey"      json:"id"`
	ClassID           string    `gorm:"column:lop_id;type:uuid"             json:"class_id"`
	SubjectID         *string   `gorm:"column:monhoc_id;type:uuid"          json:"subject_id"`
	TeacherID         *string   `gorm:"column:giang_vien_id;type:uuid"      json:"teacher_id"`
	StartAt           time.Time `gorm:"column:thoi_gian_bat_dau"            json:"start_at"`
	EndAt             time.Time `gorm:"column:thoi_gian_ket_thuc"           json:"end_at"`
	OnTimeMinutes     int       `gorm:"column:dung_gio_trong_phut"          json:"on_time_minutes"`
	LateAfterMinutes  int       `gorm:"column:tre_sau_phut"                 json:"late_after_minutes"`
	QRIntervalSeconds int       `gorm:"column:qr_khoang_giay"               json:"qr_interval_seconds"`

	Class   *Class   `gorm:"foreignKey:ClassID;references:ID"   json:"class,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID;references:ID" json:"subject,omitempty"`
}

// TableName maps Meeting to buoihoc.
func (Meeting) TableName() string { return "buoihoc" }
