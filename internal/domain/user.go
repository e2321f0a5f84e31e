package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Perfis aceitos nos tokens emitidos pelo fluxo de login do banco hospedado
const (
	RoleAdmin   = 1
	RoleAnalyst = 2
	RoleViewer  = 3
)

// Claims são as informações do usuário carregadas no token de acesso do dashboard
type Claims struct {
	UserID     string `json:"user_id"`
	UserEmail  string `json:"user_email"`
	UserRoleID int    `json:"user_role_id"`
	jwt.RegisteredClaims
}
