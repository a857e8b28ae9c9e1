package dto

// LoginRequest carries the installation password for token issuance.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the bearer token guarding the API.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"` // Seconds
}
