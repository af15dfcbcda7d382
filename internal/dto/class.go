package dto

// ── class DTOs ──

// CreateClassRequest create a class.
type CreateClassRequest struct {
	Name      string  `json:"name"`
	Code      *string `json:"code"`
	SubjectID *string `json:"subject_id" binding:"omitempty,uuid"`
}

// ClassResponse a class with its subject.
type ClassResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	SubjectID   string `json:"subject_id,omitempty"`
	SubjectCode string `json:"subject_code,omitempty"`
	SubjectName string `json:"subject_name,omitempty"`
}

// RosterEntry one member of a class roster. Imported rows without an
// account carry an "imp:" id and NoAccount.
type RosterEntry struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Code      string `json:"code"`
	NoAccount bool   `json:"no_account"`
}

// AddStudentRequest enrol a student by code.
type AddStudentRequest struct {
	Code string `json:"code"`
}

// ImportRosterResponse result of a spreadsheet import.
type ImportRosterResponse struct {
	Inserted int `json:"inserted"`
}
