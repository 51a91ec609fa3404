package dto

import "time"

// LoginRequest is shared by teacher and student login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ana.silva@aluno.postech.com"`
	Password string `json:"password" binding:"required" example:"123456"`
}

// LoginResponse carries the session token and the logged in record.
type LoginResponse struct {
	Token     string      `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
	TokenType string      `json:"tokenType" example:"Bearer"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      interface{} `json:"user"`
}

// VerifyResponse describes the actor behind a valid token
type VerifyResponse struct {
	Valid bool        `json:"valid" example:"true"`
	User  interface{} `json:"user"`
}
