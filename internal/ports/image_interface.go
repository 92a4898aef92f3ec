package ports

import (
	"context"
	"io"

	"image-sharing-server/internal/model"
)

// ImageRepository : SQL слой для изображений и связки с тегами
type ImageRepository interface {
	Create(ctx context.Context, image *model.Image, tags []string) error
	GetByUUID(ctx context.Context, imageUUID string) (*model.Image, error)
	ListImages(ctx context.Context, ownerUUID, tag string, limit int) ([]model.Image, error)
	Update(ctx context.Context, imageUUID, description string, tags []string) error
	Delete(ctx context.Context, imageUUID string) (*model.Image, error)
}

type ImageService interface {
	UploadImage(ctx context.Context, owner *model.User, imageName, description string, tags []string, content io.Reader, size int64) (*model.Image, error)
	GetImage(ctx context.Context, imageUUID string) (*model.Image, error)
	ListImages(ctx context.Context, ownerUUID, tag string, limit int) ([]model.Image, error)
	UpdateImage(ctx context.Context, user *model.User, imageUUID, description string, tags []string) (*model.Image, error)
	DeleteImage(ctx context.Context, user *model.User, imageUUID string) error
	TransformImage(ctx context.Context, user *model.User, imageUUID string, transformation model.Transformation) (*model.Image, error)
}

// TransformProvider : внешний сервис трансформации изображений.
// Принимает идентификатор изображения и параметры, возвращает URL нового изображения
type TransformProvider interface {
	Transform(ctx context.Context, publicID string, transformation model.Transformation) (string, error)
}
