package admin_login

import "time"

// LoginRequest HTTP request model
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse HTTP response model
type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresAt string `json:"expiresAt"`
}

func newLoginResponse(token string, expiresAt time.Time) *LoginResponse {
	return &LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt.Format(time.RFC3339),
	}
}
