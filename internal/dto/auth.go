package dto

// LoginRequest carries the single owner password.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the issued JWT.
type LoginResponse struct {
	Token string `json:"token"`
}

// VerifyResponse confirms a token is still valid.
type VerifyResponse struct {
	Valid bool `json:"valid"`
}
