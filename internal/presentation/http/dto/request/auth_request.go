package request

// LoginRequest represents a terminal login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Terminal string `json:"terminal" binding:"required,max=64"`
}
