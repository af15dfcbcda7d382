package model

// Subject, table monhoc.
type Subject struct {
	ID   string `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Code string `gorm:"column:ma_mon;not null"                                    json:"code"`
	Name string `gorm:"column:ten_mon;not null"                                   json:"name"`
}

// TableName maps Subject to monhoc.
func (Subject) TableName() string { return "monhoc" }
