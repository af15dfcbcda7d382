package model

import "time"

// ImportRow is a roster entry imported from a spreadsheet before any
// account exists, table dangky_import. Bulk reconciliation promotes rows
// to profiles and enrollments; the rows themselves are kept.
type ImportRow struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClassID   string    `gorm:"column:lop_id;type:uuid;not null"                         json:"class_id"`
	FullName  string    `gorm:"column:ho_ten;not null"                                   json:"full_name"`
	Code      *string   `gorm:"column:ma_sinh_vien"                                      json:"code"`
	Pending   bool      `gorm:"column:chua_co_tai_khoan"                                 json:"pending"`
	CreatedAt time.Time `gorm:"column:created_at;->"                                     json:"created_at"`
}

// TableName maps ImportRow to dangky_import.
func (ImportRow) TableName() string { return "dangky_import" }
