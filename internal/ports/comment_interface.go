package ports

import (
	"context"

	"image-sharing-server/internal/model"
)

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *model.Comment) (*model.Comment, error)
	GetComment(ctx context.Context, commentID int64) (*model.Comment, error)
	ListCommentsForImage(ctx context.Context, imageUUID string) ([]model.Comment, error)
	UpdateComment(ctx context.Context, commentID int64, text string) error
	DeleteComment(ctx context.Context, commentID int64) error
}

type CommentService interface {
	CreateComment(ctx context.Context, author *model.User, imageUUID, text string) (*model.Comment, error)
	ListCommentsForImage(ctx context.Context, imageUUID string) ([]model.Comment, error)
	UpdateComment(ctx context.Context, user *model.User, commentID int64, text string) (*model.Comment, error)
	DeleteComment(ctx context.Context, user *model.User, commentID int64) error
}
