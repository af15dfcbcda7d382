package dto

// ReportRequest class and meeting of an attendance report.
type ReportRequest struct {
	ClassID   string `form:"class_id"`
	MeetingID string `form:"meeting_id"`
}

// ReportRowResponse one row of the attendance report.
type ReportRowResponse struct {
	ClassName   string `json:"class_name"`
	ClassCode   string `json:"class_code"`
	SubjectName string `json:"subject_name"`
	StudentCode string `json:"student_code"`
	StudentName string `json:"student_name"`
	Status      string `json:"status"`
	CheckedInAt string `json:"checked_in_at"`
	StartAt     string `json:"start_at"`
	EndAt       string `json:"end_at"`
}
