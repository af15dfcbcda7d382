package model

// Class is a teaching class, table lop.
type Class struct {
	ID        string  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string  `gorm:"column:ten_lop;not null"                                   json:"name"`
	Code      *string `gorm:"column:ma_lop"                                             json:"code"`
	SubjectID *string `gorm:"column:monhoc_id;type:uuid"                                json:"subject_id"`

	Subject *Subject `gorm:"foreignKey:SubjectID;references:ID" json:"subject,omitempty"`
}

// TableName maps Class to lop.
func (Class) TableName() string { return "lop" }
