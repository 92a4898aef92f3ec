package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"image-sharing-server/internal/model"
	"image-sharing-server/internal/ports"
	"image-sharing-server/internal/util"
)

type CommentService struct {
	commentRepository ports.CommentRepository
	imageRepository   ports.ImageRepository
	eventProducer     ports.EventProducer
}

func NewCommentService(
	commentRepository ports.CommentRepository,
	imageRepository ports.ImageRepository,
	eventProducer ports.EventProducer,
) *CommentService {
	return &CommentService{
		commentRepository: commentRepository,
		imageRepository:   imageRepository,
		eventProducer:     eventProducer,
	}
}

// CreateComment : комментировать может любой аутентифицированный пользователь
func (s *CommentService) CreateComment(ctx context.Context, author *model.User, imageUUID, text string) (*model.Comment, error) {
	if text == "" {
		return nil, fmt.Errorf("[CommentService] пустой комментарий")
	}

	if _, err := s.imageRepository.GetByUUID(ctx, imageUUID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	created, err := s.commentRepository.CreateComment(ctx, &model.Comment{
		ImageUUID: imageUUID,
		UserUUID:  author.UUID,
		Comment:   text,
	})
	if err != nil {
		return nil, util.LogError("[CommentService] не удалось создать комментарий", err)
	}

	if s.eventProducer != nil {
		go func() {
			eventCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			event := map[string]interface{}{
				"event":      "comment_created",
				"comment_id": created.ID,
				"image_uuid": imageUUID,
			}
			if err := s.eventProducer.PublishEvent(eventCtx, imageUUID, event); err != nil {
				log.Printf("[CommentService] ошибка публикации события: %v", err)
			}
		}()
	}

	return created, nil
}

func (s *CommentService) ListCommentsForImage(ctx context.Context, imageUUID string) ([]model.Comment, error) {
	return s.commentRepository.ListCommentsForImage(ctx, imageUUID)
}

// UpdateComment : текст может править автор, модератор или администратор
func (s *CommentService) UpdateComment(ctx context.Context, user *model.User, commentID int64, text string) (*model.Comment, error) {
	comment, err := s.commentRepository.GetComment(ctx, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if comment.UserUUID != user.UUID && user.Role != model.RoleAdmin && user.Role != model.RoleModerator {
		return nil, ErrForbidden
	}

	if err := s.commentRepository.UpdateComment(ctx, commentID, text); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, util.LogError("[CommentService] не удалось обновить комментарий", err)
	}

	return s.commentRepository.GetComment(ctx, commentID)
}

// DeleteComment : удалять комментарии могут только модератор и администратор
func (s *CommentService) DeleteComment(ctx context.Context, user *model.User, commentID int64) error {
	if user.Role != model.RoleAdmin && user.Role != model.RoleModerator {
		return ErrForbidden
	}

	if err := s.commentRepository.DeleteComment(ctx, commentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return util.LogError("[CommentService] не удалось удалить комментарий", err)
	}
	return nil
}
