package dto

import "time"

// ── meeting DTOs ──

// CreateMeetingRequest schedule a meeting. Nil minutes fall back to the
// configured defaults.
type CreateMeetingRequest struct {
	SubjectID        *string   `json:"subject_id"         binding:"omitempty,uuid"`
	TeacherID        *string   `json:"teacher_id"         binding:"omitempty,uuid"`
	StartAt          time.Time `json:"start_at"`
	EndAt            time.Time `json:"end_at"`
	OnTimeMinutes    *int      `json:"on_time_minutes"`
	LateAfterMinutes *int      `json:"late_after_minutes"`
}

// MeetingResponse a meeting of a class.
type MeetingResponse struct {
	ID                string    `json:"id"`
	ClassID           string    `json:"class_id"`
	SubjectID         string    `json:"subject_id,omitempty"`
	SubjectName       string    `json:"subject_name,omitempty"`
	TeacherID         string    `json:"teacher_id,omitempty"`
	StartAt           time.Time `json:"start_at"`
	EndAt             time.Time `json:"end_at"`
	OnTimeMinutes     int       `json:"on_time_minutes"`
	LateAfterMinutes  int       `json:"late_after_minutes"`
	QRIntervalSeconds int       `json:"qr_interval_seconds"`
}

// TeacherResponse an active teacher for meeting assignment.
type TeacherResponse struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Code     string `json:"code"`
}
