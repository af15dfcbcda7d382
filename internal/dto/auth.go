package dto

// ── auth DTOs ──

// LoginRequest console sign-in request.
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserInfo the signed-in identity.
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SessionResponse snapshot of a console session.
type SessionResponse struct {
	Loading  bool             `json:"loading"`
	User     *UserInfo        `json:"user"`
	Profile  *ProfileResponse `json:"profile"`
	Role     string           `json:"role"`
	IsAdmin  bool             `json:"is_admin"`
	Redirect string           `json:"redirect,omitempty"`
}
