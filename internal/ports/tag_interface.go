package ports

import (
	"context"

	"image-sharing-server/internal/model"
)

type TagRepository interface {
	CreateTag(ctx context.Context, name string) (*model.Tag, error)
	GetTag(ctx context.Context, tagID int64) (*model.Tag, error)
	GetTagByName(ctx context.Context, name string) (*model.Tag, error)
	ListTags(ctx context.Context) ([]model.Tag, error)
	UpdateTag(ctx context.Context, tagID int64, name string) error
	DeleteTag(ctx context.Context, tagID int64) error
}

type TagService interface {
	CreateTag(ctx context.Context, name string) (*model.Tag, error)
	GetTag(ctx context.Context, tagID int64) (*model.Tag, error)
	GetTagByName(ctx context.Context, name string) (*model.Tag, error)
	ListTags(ctx context.Context) ([]model.Tag, error)
	UpdateTag(ctx context.Context, tagID int64, name string) (*model.Tag, error)
	DeleteTag(ctx context.Context, tagID int64) error
}
