package dto

// AuthRequest describes login/password payload. Name is only used on registration.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// UserResponse describes the authenticated user.
type UserResponse struct {
	ID    string `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
