package model

import "time"

// ReportRow is a denormalised row of the v_diemdanh_lop_buoi view: one
// student of a class for one meeting, with the full on-time/late/absent
// status.
type ReportRow struct {
	AttendanceID *string    `gorm:"column:diemdanh_id"`
	MeetingID    string     `gorm:"column:buoihoc_id"`
	ClassID      string     `gorm:"column:lop_id"`
	ClassName    string     `gorm:"column:ten_lop"`
	ClassCode    *string    `gorm:"column:ma_lop"`
	SubjectID    *string    `gorm:"column:monhoc_id"`
	SubjectName  *string    `gorm:"column:ten_mon"`
	SubjectCode  *string    `gorm:"column:ma_mon"`
	StudentName  string     `gorm:"column:sv_ho_ten"`
	StudentCode  string     `gorm:"column:sv_ma_sinh_vien"`
	StartAt      time.Time  `gorm:"column:thoi_gian_bat_dau"`
	EndAt        time.Time  `gorm:"column:thoi_gian_ket_thuc"`
	Status       string     `gorm:"column:trang_thai_full"`
	CheckedInAt  *time.Time `gorm:"column:checkin_luc"`
}

// TableName maps ReportRow to the reporting view.
func (ReportRow) TableName() string { return "v_diemdanh_lop_buoi" }
