package ports

import (
	"context"
	"time"

	"image-sharing-server/internal/model"
	"image-sharing-server/internal/security"
)

type JWTServiceInterface interface {
	CreateAccessToken(email string) (string, error)
	CreateRefreshToken(email string) (string, error)
	GenerateTokensPair(email string) (*model.TokensPair, error)
	DecodeToken(tokenStr string, expectedScope string) (*security.Claims, error)
}

// RevokedTokenRepository : персистентный черный список access-токенов
type RevokedTokenRepository interface {
	Add(ctx context.Context, accessToken string) error
	Contains(ctx context.Context, accessToken string) (bool, error)
	Purge(ctx context.Context, olderThan time.Duration) (int64, error)
}
