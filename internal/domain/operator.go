package domain

import "github.com/golang-jwt/jwt/v5"

// Claims são as claims do token JWT emitido para o operador do dashboard
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
