package dto

// SubjectRequest create or update a subject.
type SubjectRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// SubjectResponse a subject.
type SubjectResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}
