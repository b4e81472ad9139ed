package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=1,max=255"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type AgentLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// CreateUserResponse carries the generated plaintext password exactly once.
// It is never persisted and cannot be retrieved again.
type CreateUserResponse struct {
	UserResponse
	OneTimePassword string `json:"one_time_password"`
}

type AgentLoginResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}
