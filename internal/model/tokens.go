package model

import "time"

// TokensPair содержит пару access и refresh токенов
// swagger:model
type TokensPair struct {
	// Access токен (JWT, scope "access_token")
	// example: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	AccessToken string `json:"access_token"`

	// Refresh токен (JWT, scope "refresh_token")
	// example: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	RefreshToken string `json:"refresh_token"`

	TokenType string `json:"token_type" example:"bearer"`
}

// RevokedToken : запись черного списка access-токенов.
// Токен попадает сюда при logout и отклоняется при любой проверке личности,
// пока фоновая очистка не удалит запись по истечении окна хранения.
type RevokedToken struct {
	AccessToken string    `db:"access_token"`
	CreatedAt   time.Time `db:"created_at"`
}
