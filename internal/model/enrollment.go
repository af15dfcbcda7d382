package model

// Enrollment links a student profile to a class, table dangky.
// Rows are written only by the add/remove procedures.
type Enrollment struct {
	ClassID   string `gorm:"column:lop_id;type:uuid"       json:"class_id"`
	StudentID string `gorm:"column:sinh_vien_id;type:uuid" json:"student_id"`

	Class *Class `gorm:"foreignKey:ClassID;references:ID" json:"class,omitempty"`
}

// TableName maps Enrollment to dangky.
func (Enrollment) TableName() string { return "dangky" }
