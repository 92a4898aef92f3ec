package ports

import (
	"context"

	"image-sharing-server/internal/model"
)

// CacheRepository : Redis слой
type CacheRepository interface {
	SetImage(ctx context.Context, image *model.Image) error
	GetImage(ctx context.Context, uuid string) (*model.Image, error)
	DeleteImage(ctx context.Context, uuid string) error
}
