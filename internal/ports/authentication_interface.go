package ports

import (
	"context"

	"image-sharing-server/internal/model"
)

type AuthenticationService interface {
	Login(ctx context.Context, email, password string) (*model.TokensPair, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*model.TokensPair, error)
	Logout(ctx context.Context, accessToken string) error
	ResolveIdentity(ctx context.Context, accessToken string) (*model.User, error)
}
