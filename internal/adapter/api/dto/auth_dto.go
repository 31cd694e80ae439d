package dto

import (
	"time"

	"github.com/soliciteia/assistente/internal/domain/user"
)

// LoginRequest representa os dados para login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminResponse representa um administrador na resposta da API
type AdminResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Nome      string    `json:"nome"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse representa a resposta de login bem-sucedido
type LoginResponse struct {
	User        AdminResponse `json:"user"`
	AccessToken string        `json:"access_token"`
	ExpiresAt   time.Time     `json:"expires_at"`
}

// RefreshTokenRequest representa os dados para renovação de token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CreateAdminRequest representa os dados para criação de um administrador
type CreateAdminRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Nome     string `json:"nome" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

// ToAdminResponse converte um administrador do domínio para DTO
func ToAdminResponse(a *user.Admin) AdminResponse {
	return AdminResponse{
		ID:        a.ID,
		Email:     a.Email,
		Nome:      a.Nome,
		Role:      string(a.Role),
		CreatedAt: a.CreatedAt,
	}
}
