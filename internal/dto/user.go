package dto

// ── user DTOs ──

// ProfileResponse a profile as shown in the console.
type ProfileResponse struct {
	UserID     string `json:"user_id"`
	FullName   string `json:"full_name"`
	Code       string `json:"code"`
	Role       string `json:"role"`
	BirthDate  string `json:"birth_date"` // yyyy-mm-dd
	Gender     string `json:"gender"`
	Birthplace string `json:"birthplace"`
	Phone      string `json:"phone"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// UserListRequest user list filter.
type UserListRequest struct {
	Role string `form:"role" binding:"omitempty,oneof=sinhvien giangvien quantri"`
}

// CreateUserRequest single account creation; checked by the service.
type CreateUserRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"min=6"`
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role"      validate:"oneof=sinhvien giangvien quantri"`
	Code     string `json:"code"`
}

// CreateUserResponse result of account creation.
type CreateUserResponse struct {
	UserID string `json:"user_id"`
}

// CodeCheckResponse student/teacher code availability.
type CodeCheckResponse struct {
	Code      string `json:"code"`
	Available bool   `json:"available"`
	Message   string `json:"message"`
}
