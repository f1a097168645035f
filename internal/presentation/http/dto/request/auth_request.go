package request

// LoginRequest represents a passkey login request
type LoginRequest struct {
	Passkey string `json:"passkey" binding:"required"`
}
