package model

import "time"

// Role is a profile's role in the attendance platform.
type Role string

const (
	RoleStudent Role = "sinhvien"
	RoleTeacher Role = "giangvien"
	RoleAdmin   Role = "quantri"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// Profile is the per-identity user record, table hoso.
// Rows are soft-deleted through DisabledAt.
type Profile struct {
	UserID     string     `gorm:"column:nguoi_dung_id;type:uuid;primaryKey" json:"user_id"`
	FullName   *string    `gorm:"column:ho_ten"                             json:"full_name"`
	Code       *string    `gorm:"column:ma_sinh_vien"                       json:"code"`
	Role       Role       `gorm:"column:vai_tro"                            json:"role"`
	BirthDate  *time.Time `gorm:"column:ngay_sinh;type:date"                json:"birth_date"`
	Gender     *string    `gorm:"column:gioi_tinh"                          json:"gender"`
	Birthplace *string    `gorm:"column:que_quan"                           json:"birthplace"`
	Phone      *string    `gorm:"column:so_dien_thoai"                      json:"phone"`
	CreatedAt  *time.Time `gorm:"column:tao_luc;->"                         json:"created_at"`
	DisabledAt *time.Time `gorm:"column:da_vo_hieu_hoa_luc"                 json:"disabled_at,omitempty"`
}

// TableName maps Profile to hoso.
func (Profile) TableName() string { return "hoso" }
